// Package input turns terminal events and idle timeouts into session
// commands.
package input

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
)

const (
	DefaultInterval = 2 * time.Second
	MinInterval     = 200 * time.Millisecond
)

// ErrInputClosed is returned once the event source stops delivering events.
var ErrInputClosed = errors.New("input: event source closed")

// EventSource is satisfied by tcell.Screen.
type EventSource interface {
	PollEvent() tcell.Event
}

// Outcome is the result of one bounded wait: either an event or a timeout.
type Outcome struct {
	Event    tcell.Event
	TimedOut bool
}

// Poller pumps an EventSource from a single goroutine so that waits can be
// bounded by a timer.
type Poller struct {
	events    chan tcell.Event
	done      chan struct{}
	closeOnce sync.Once
}

func NewPoller(src EventSource) *Poller {
	p := &Poller{
		events: make(chan tcell.Event, 16),
		done:   make(chan struct{}),
	}
	go func() {
		for {
			ev := src.PollEvent()
			if ev == nil {
				close(p.events)
				return
			}
			select {
			case p.events <- ev:
			case <-p.done:
				return
			}
		}
	}()
	return p
}

// Close stops the pump once its current PollEvent returns. Events it has
// not delivered are dropped.
func (p *Poller) Close() {
	p.closeOnce.Do(func() { close(p.done) })
}

// Wait blocks for at most timeout. An event that is already queued when the
// timer fires wins over the timeout.
func (p *Poller) Wait(ctx context.Context, timeout time.Duration) (Outcome, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case ev, ok := <-p.events:
		return received(ev, ok)
	case <-timer.C:
		select {
		case ev, ok := <-p.events:
			return received(ev, ok)
		default:
			return Outcome{TimedOut: true}, nil
		}
	case <-ctx.Done():
		return Outcome{}, ctx.Err()
	}
}

func received(ev tcell.Event, ok bool) (Outcome, error) {
	if !ok {
		return Outcome{}, ErrInputClosed
	}
	return Outcome{Event: ev}, nil
}
