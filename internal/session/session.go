// Package session runs the interactive loop: it waits for input, refreshes
// reports when the user is idle, and redraws after every step.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/bma-d/tasktabs/internal/input"
	"github.com/bma-d/tasktabs/internal/logging"
	"github.com/bma-d/tasktabs/internal/report"
	"github.com/bma-d/tasktabs/internal/tabs"
	"github.com/bma-d/tasktabs/internal/view"
)

// State is the session's run state.
type State int

const (
	Running State = iota
	Quitting
)

func (s State) String() string {
	if s == Quitting {
		return "quitting"
	}
	return "running"
}

// Surface draws frames and owns the screen geometry.
type Surface interface {
	Render(view.Frame)
	TabStripX(x, y int) (int, bool)
}

// Waiter yields the next input outcome within a bounded time.
type Waiter interface {
	Wait(ctx context.Context, timeout time.Duration) (input.Outcome, error)
}

// Options wires a Session. Fetcher, Surface and Input are required. A zero
// Interval means input.DefaultInterval; shorter ones are raised to
// input.MinInterval.
type Options struct {
	Fetcher    report.Fetcher
	Surface    Surface
	Input      Waiter
	Store      *report.Store
	InitialTab tabs.Tab
	Interval   time.Duration
	Logger     *log.Logger
}

type Session struct {
	tabs     *tabs.Set
	store    *report.Store
	fetcher  report.Fetcher
	surface  Surface
	input    Waiter
	interval time.Duration
	logger   *log.Logger

	state   State
	lastErr error
}

// New builds a session and loads every report. Any fetch failure here is
// fatal: a session never starts without a report for every tab.
func New(ctx context.Context, opts Options) (*Session, error) {
	if opts.Fetcher == nil || opts.Surface == nil || opts.Input == nil {
		return nil, errors.New("session: fetcher, surface and input are required")
	}
	s := &Session{
		tabs:     tabs.NewSet(opts.InitialTab),
		store:    opts.Store,
		fetcher:  opts.Fetcher,
		surface:  opts.Surface,
		input:    opts.Input,
		interval: opts.Interval,
		logger:   opts.Logger,
	}
	if s.store == nil {
		s.store = report.NewStore()
	}
	switch {
	case s.interval <= 0:
		s.interval = input.DefaultInterval
	case s.interval < input.MinInterval:
		s.interval = input.MinInterval
	}
	if s.logger == nil {
		s.logger = logging.New("session")
	}

	if err := s.store.RefreshAll(ctx, s.fetcher); err != nil {
		return nil, fmt.Errorf("loading reports: %w", err)
	}
	s.logger.Debug("reports loaded", "tab", s.tabs.Current(), "policy", s.store.Policy())
	return s, nil
}

func (s *Session) State() State { return s.state }

func (s *Session) Current() tabs.Tab { return s.tabs.Current() }

// Run draws the first frame and then processes input until the user quits,
// ctx is cancelled or the input source fails.
func (s *Session) Run(ctx context.Context) error {
	s.surface.Render(s.Snapshot())
	for s.state == Running {
		outcome, err := s.input.Wait(ctx, s.interval)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				s.logger.Info("session cancelled")
				return nil
			}
			return fmt.Errorf("reading input: %w", err)
		}
		if s.Apply(ctx, input.Classify(outcome)) == Quitting {
			break
		}
		s.surface.Render(s.Snapshot())
	}
	s.logger.Info("session ended", "tab", s.tabs.Current())
	return nil
}

// Apply performs one state transition.
func (s *Session) Apply(ctx context.Context, cmd input.Command) State {
	if s.state == Quitting {
		return s.state
	}
	switch cmd.Kind {
	case input.MoveNext:
		s.tabs.Next()
	case input.MovePrevious:
		s.tabs.Previous()
	case input.Quit:
		s.state = Quitting
	case input.PointerDown:
		s.pointerDown(cmd.X, cmd.Y)
	case input.Refresh:
		s.refresh(ctx)
	case input.Ignore:
	}
	return s.state
}

func (s *Session) pointerDown(x, y int) {
	stripX, ok := s.surface.TabStripX(x, y)
	if !ok {
		return
	}
	if tab, ok := view.Locate(stripX, view.Regions(s.labels())); ok {
		s.tabs.Select(tab)
	}
}

func (s *Session) refresh(ctx context.Context) {
	start := time.Now()
	err := s.store.RefreshAll(ctx, s.fetcher)
	s.lastErr = err
	if err != nil {
		s.logger.Warn("refresh failed; keeping previous reports", "error", err, "policy", s.store.Policy())
		return
	}
	s.logger.Debug("refreshed reports", "duration", time.Since(start))
}

func (s *Session) labels() []view.TabLabel {
	all := tabs.All()
	labels := make([]view.TabLabel, len(all))
	for i, tab := range all {
		r := s.store.Get(tab)
		labels[i] = view.TabLabel{
			Tab:      tab,
			Text:     view.Label(tab.Title(), r.Rows),
			Selected: tab == s.tabs.Current(),
			Stale:    r.Stale,
		}
	}
	return labels
}

// Snapshot is the frame for the current state.
func (s *Session) Snapshot() view.Frame {
	f := view.Frame{
		Labels:   s.labels(),
		Body:     s.store.Get(s.tabs.Current()).Text,
		Updated:  s.store.LastRefresh(),
		Interval: s.interval,
	}
	if s.lastErr != nil {
		f.Err = strings.ReplaceAll(s.lastErr.Error(), "\n", "; ")
	}
	return f
}
