package view

import (
	"fmt"

	"github.com/rivo/uniseg"

	"github.com/bma-d/tasktabs/internal/tabs"
)

// Divider separates adjacent labels in the tab strip.
const Divider = " "

// TabLabel is one entry of the tab strip.
type TabLabel struct {
	Tab      tabs.Tab
	Text     string
	Selected bool
	Stale    bool
}

// Region is the horizontal span a tab occupies in the strip.
type Region struct {
	Tab   tabs.Tab
	Width int
}

// Label formats a tab title with its row count, e.g. " Due (4) ".
func Label(title string, rows int) string {
	return fmt.Sprintf(" %s (%d) ", title, rows)
}

// Regions derives hit regions from labels in strip order. Every label but
// the last also owns the divider that follows it, so the regions tile the
// drawn strip without gaps.
func Regions(labels []TabLabel) []Region {
	regions := make([]Region, len(labels))
	dividerWidth := uniseg.StringWidth(Divider)
	for i, l := range labels {
		w := uniseg.StringWidth(l.Text)
		if i < len(labels)-1 {
			w += dividerWidth
		}
		regions[i] = Region{Tab: l.Tab, Width: w}
	}
	return regions
}

// Locate returns the tab whose region covers strip-local column x.
func Locate(x int, regions []Region) (tabs.Tab, bool) {
	if x < 0 {
		return 0, false
	}
	offset := 0
	for _, r := range regions {
		if x < offset+r.Width {
			return r.Tab, true
		}
		offset += r.Width
	}
	return 0, false
}
