package view

import (
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/x/ansi"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"
)

// onlySGR reports whether every escape sequence in line is an SGR sequence
// (ESC [ params m) that drawSGRLine can interpret.
func onlySGR(line string) bool {
	for i := 0; i < len(line); i++ {
		if line[i] != 0x1b {
			continue
		}
		if i+1 >= len(line) || line[i+1] != '[' {
			return false
		}
		j := i + 2
		for j < len(line) && (line[j] == ';' || (line[j] >= '0' && line[j] <= '9')) {
			j++
		}
		if j >= len(line) || line[j] != 'm' {
			return false
		}
		i = j
	}
	return true
}

// drawBodyLine draws one report line. Lines carrying sequences other than
// SGR are stripped and drawn plain.
func drawBodyLine(screen tcell.Screen, x, y, width int, line string, base tcell.Style) {
	if onlySGR(line) {
		drawSGRLine(screen, x, y, width, line, base)
		return
	}
	drawSGRLine(screen, x, y, width, ansi.Strip(line), base)
}

func drawSGRLine(screen tcell.Screen, x, y, width int, line string, base tcell.Style) {
	if width <= 0 {
		return
	}
	style := base
	col := 0
	for line != "" && col < width {
		if strings.HasPrefix(line, "\x1b[") {
			if end := strings.IndexByte(line, 'm'); end >= 0 {
				style = applySGR(style, base, parseSGRParams(line[2:end]))
				line = line[end+1:]
				continue
			}
		}
		text := line
		if next := strings.IndexByte(line[1:], 0x1b); next >= 0 {
			text, line = line[:next+1], line[next+1:]
		} else {
			line = ""
		}
		var full bool
		if col, full = drawClusters(screen, x, y, col, width, text, style); full {
			break
		}
	}
	for ; col < width; col++ {
		screen.SetContent(x+col, y, ' ', nil, base)
	}
}

// drawClusters draws text from column col and returns the column after it.
// full is set once a cluster does not fit in the space left; that cluster
// is not drawn.
func drawClusters(screen tcell.Screen, x, y, col, width int, text string, style tcell.Style) (next int, full bool) {
	state := -1
	for text != "" && col < width {
		var cluster string
		var w int
		cluster, text, w, state = uniseg.FirstGraphemeClusterInString(text, state)
		switch cluster {
		case "\t":
			for s := 4 - col%4; s > 0 && col < width; s-- {
				screen.SetContent(x+col, y, ' ', nil, style)
				col++
			}
			continue
		case "\r":
			continue
		}
		if w == 0 || !utf8.ValidString(cluster) {
			continue
		}
		if col+w > width {
			return col, true
		}
		runes := []rune(cluster)
		screen.SetContent(x+col, y, runes[0], runes[1:], style)
		col += w
	}
	return col, col >= width
}

// parseSGRParams reads the digits between ESC[ and m. Empty fields are 0.
func parseSGRParams(s string) []int {
	params := []int{0}
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c == ';':
			params = append(params, 0)
		case c >= '0' && c <= '9':
			if n := &params[len(params)-1]; *n < 1<<16 {
				*n = *n*10 + int(c-'0')
			}
		}
	}
	return params
}

// applySGR folds params into style. base supplies the reset and default
// colours.
func applySGR(style, base tcell.Style, params []int) tcell.Style {
	fgBase, bgBase, _ := base.Decompose()
	for i := 0; i < len(params); i++ {
		switch p := params[i]; {
		case p == 0:
			style = base
		case p == 1:
			style = style.Bold(true)
		case p == 2:
			style = style.Dim(true)
		case p == 3:
			style = style.Italic(true)
		case p == 4:
			style = style.Underline(true)
		case p == 7:
			style = style.Reverse(true)
		case p == 22:
			style = style.Bold(false).Dim(false)
		case p == 23:
			style = style.Italic(false)
		case p == 24:
			style = style.Underline(false)
		case p == 27:
			style = style.Reverse(false)
		case p >= 30 && p <= 37:
			style = style.Foreground(tcell.PaletteColor(p - 30))
		case p >= 90 && p <= 97:
			style = style.Foreground(tcell.PaletteColor(p - 90 + 8))
		case p == 39:
			style = style.Foreground(fgBase)
		case p >= 40 && p <= 47:
			style = style.Background(tcell.PaletteColor(p - 40))
		case p >= 100 && p <= 107:
			style = style.Background(tcell.PaletteColor(p - 100 + 8))
		case p == 49:
			style = style.Background(bgBase)
		case p == 38 || p == 48:
			color, used := extendedColor(params[i+1:])
			i += used
			if color == tcell.ColorDefault && used == 0 {
				continue
			}
			if p == 38 {
				style = style.Foreground(color)
			} else {
				style = style.Background(color)
			}
		}
	}
	return style
}

// extendedColor decodes the tail of a 38/48 sequence: "5;n" or "2;r;g;b".
// It returns the number of params consumed.
func extendedColor(rest []int) (tcell.Color, int) {
	if len(rest) == 0 {
		return tcell.ColorDefault, 0
	}
	switch rest[0] {
	case 5:
		if len(rest) < 2 {
			return tcell.ColorDefault, 0
		}
		return tcell.PaletteColor(byteValue(rest[1])), 2
	case 2:
		if len(rest) < 4 {
			return tcell.ColorDefault, 0
		}
		return tcell.NewRGBColor(int32(byteValue(rest[1])), int32(byteValue(rest[2])), int32(byteValue(rest[3]))), 4
	}
	return tcell.ColorDefault, 0
}

func byteValue(v int) int { return max(0, min(v, 255)) }
