// Package view draws session frames on a tcell screen and maps pointer
// positions back to tabs.
package view

import (
	"fmt"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"
)

// stripRow is the screen row holding the tab strip.
const stripRow = 0

// Frame is everything needed to draw one screen.
type Frame struct {
	Labels   []TabLabel
	Body     string
	Updated  time.Time
	Interval time.Duration
	Err      string
}

var (
	stripStyle    = tcell.StyleDefault.Foreground(tcell.ColorSlateGray)
	selectedStyle = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true).Underline(true)
	staleStyle    = tcell.StyleDefault.Foreground(tcell.ColorOlive)
	bodyStyle     = tcell.StyleDefault
	statusStyle   = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorLightGray)
	errorStyle    = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorMaroon)
)

// Screen is the tcell render surface.
type Screen struct {
	screen tcell.Screen
}

func NewScreen(screen tcell.Screen) *Screen {
	return &Screen{screen: screen}
}

// TabStripX converts a screen position to a column within the tab strip.
func (s *Screen) TabStripX(x, y int) (int, bool) {
	if y != stripRow || x < 0 {
		return 0, false
	}
	return x, true
}

// Render draws f and flushes it to the terminal.
func (s *Screen) Render(f Frame) {
	screen := s.screen
	screen.Clear()
	width, height := screen.Size()
	if width <= 0 || height <= 0 {
		screen.Show()
		return
	}

	drawStrip(screen, width, f.Labels)
	if height >= 2 {
		drawStatus(screen, width, height-1, f)
	}

	// One cell of padding around the body, as between strip and status.
	top, bottom := stripRow+2, height-2
	lines := strings.Split(f.Body, "\n")
	for row := 0; top+row < bottom && row < len(lines); row++ {
		drawBodyLine(screen, 1, top+row, width-2, lines[row], bodyStyle)
	}
	screen.Show()
}

func drawStrip(screen tcell.Screen, width int, labels []TabLabel) {
	x := 0
	for i, l := range labels {
		style := stripStyle
		if l.Stale {
			style = staleStyle
		}
		if l.Selected {
			style = selectedStyle
			if l.Stale {
				style = style.Foreground(tcell.ColorOlive)
			}
		}
		x = drawText(screen, x, stripRow, width-x, l.Text, style)
		if i < len(labels)-1 {
			x = drawText(screen, x, stripRow, width-x, Divider, stripStyle)
		}
	}
}

func drawStatus(screen tcell.Screen, width, y int, f Frame) {
	style := statusStyle
	label := "h/l ←/→: switch tab | click: select | q: quit"
	if !f.Updated.IsZero() {
		label = fmt.Sprintf("updated %s | every %s | %s", f.Updated.Format("15:04:05"), f.Interval, label)
	}
	if f.Err != "" {
		label = "error: " + f.Err
		style = errorStyle
	}
	end := drawText(screen, 0, y, width, label, style)
	for x := end; x < width; x++ {
		screen.SetContent(x, y, ' ', nil, style)
	}
}

// drawText draws text one grapheme cluster at a time, clipped to width
// columns, and returns the column after the last cluster drawn.
func drawText(screen tcell.Screen, x, y, width int, text string, style tcell.Style) int {
	limit := x + width
	state := -1
	for text != "" {
		var cluster string
		var w int
		cluster, text, w, state = uniseg.FirstGraphemeClusterInString(text, state)
		if x+w > limit {
			break
		}
		runes := []rune(cluster)
		screen.SetContent(x, y, runes[0], runes[1:], style)
		x += w
	}
	return x
}
