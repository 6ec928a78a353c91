// Package report caches the last fetched text for every tab.
package report

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bma-d/tasktabs/internal/tabs"
)

// Report is the most recent fetch result for one tab. Reports are replaced
// wholesale, never edited.
type Report struct {
	Tab       tabs.Tab
	Text      string
	Rows      int
	Loaded    bool
	Stale     bool
	Err       error
	FetchedAt time.Time
}

// Fetcher produces the raw report text for a directive.
type Fetcher interface {
	Fetch(ctx context.Context, directive []string, color bool) (string, error)
}

// FetchFunc adapts a function to Fetcher.
type FetchFunc func(ctx context.Context, directive []string, color bool) (string, error)

func (f FetchFunc) Fetch(ctx context.Context, directive []string, color bool) (string, error) {
	return f(ctx, directive, color)
}

// RowCount is the number of data rows in text: its line count minus the
// header line, never below zero.
func RowCount(text string) int {
	if text == "" {
		return 0
	}
	lines := strings.Count(text, "\n")
	if !strings.HasSuffix(text, "\n") {
		lines++
	}
	if lines <= 1 {
		return 0
	}
	return lines - 1
}

// Policy decides what a batch refresh does when some fetches fail.
type Policy int

const (
	// PerTab keeps the last good report for each failed tab and marks it stale.
	PerTab Policy = iota
	// AllOrNothing discards the whole batch if any fetch fails.
	AllOrNothing
)

func (p Policy) String() string {
	switch p {
	case PerTab:
		return "per-tab"
	case AllOrNothing:
		return "all-or-nothing"
	}
	return fmt.Sprintf("Policy(%d)", int(p))
}

// ParsePolicy accepts the names produced by Policy.String.
func ParsePolicy(name string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "per-tab":
		return PerTab, nil
	case "all-or-nothing":
		return AllOrNothing, nil
	}
	return PerTab, fmt.Errorf("unknown refresh policy %q", name)
}
