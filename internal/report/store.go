package report

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/bma-d/tasktabs/internal/tabs"
)

const defaultWorkers = 3

// Store owns one Report per tab. It is not safe for concurrent use; fetches
// run on worker goroutines but results are applied by the caller of
// RefreshAll.
type Store struct {
	reports    map[tabs.Tab]Report
	policy     Policy
	workers    int
	directives map[tabs.Tab][]string
	lastOK     time.Time
	now        func() time.Time
}

// Option configures a Store.
type Option func(*Store)

func WithPolicy(p Policy) Option {
	return func(s *Store) { s.policy = p }
}

// WithWorkers bounds the number of concurrent fetches. Values below one
// are treated as one.
func WithWorkers(n int) Option {
	return func(s *Store) {
		if n < 1 {
			n = 1
		}
		s.workers = n
	}
}

// WithDirectives overrides the default directive of individual tabs.
func WithDirectives(d map[tabs.Tab][]string) Option {
	return func(s *Store) {
		for tab, args := range d {
			if tab.Valid() && len(args) > 0 {
				s.directives[tab] = append([]string(nil), args...)
			}
		}
	}
}

func withClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func NewStore(opts ...Option) *Store {
	s := &Store{
		reports:    make(map[tabs.Tab]Report, tabs.Count()),
		workers:    defaultWorkers,
		directives: make(map[tabs.Tab][]string),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) Policy() Policy { return s.policy }

// Directive returns the arguments used to fetch tab.
func (s *Store) Directive(tab tabs.Tab) []string {
	if d, ok := s.directives[tab]; ok {
		return append([]string(nil), d...)
	}
	return tab.Directive()
}

// Get returns the stored report for tab, or an unloaded placeholder.
func (s *Store) Get(tab tabs.Tab) Report {
	if r, ok := s.reports[tab]; ok {
		return r
	}
	return Report{Tab: tab}
}

func (s *Store) RowCount(tab tabs.Tab) int {
	return s.Get(tab).Rows
}

// LastRefresh is the time of the last batch in which at least one tab was
// updated.
func (s *Store) LastRefresh() time.Time { return s.lastOK }

type fetchResult struct {
	text string
	err  error
}

// RefreshAll fetches every tab and applies the results according to the
// store's policy. Under PerTab the returned error joins every tab failure;
// under AllOrNothing it is the failure that aborted the batch.
func (s *Store) RefreshAll(ctx context.Context, f Fetcher) error {
	all := tabs.All()
	results := make([]fetchResult, len(all))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, tab := range all {
		directive := s.Directive(tab)
		color := tab.Color()
		g.Go(func() error {
			text, err := f.Fetch(gctx, directive, color)
			if err != nil {
				err = fmt.Errorf("fetching %s report: %w", tab, err)
			}
			results[i] = fetchResult{text: text, err: err}
			if s.policy == AllOrNothing {
				return err
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	now := s.now()
	var errs []error
	for i, tab := range all {
		res := results[i]
		if res.err != nil {
			prev := s.Get(tab)
			prev.Stale = true
			prev.Err = res.err
			s.reports[tab] = prev
			errs = append(errs, res.err)
			continue
		}
		s.reports[tab] = Report{
			Tab:       tab,
			Text:      res.text,
			Rows:      RowCount(res.text),
			Loaded:    true,
			FetchedAt: now,
		}
	}
	if len(errs) < len(all) {
		s.lastOK = now
	}
	return errors.Join(errs...)
}
