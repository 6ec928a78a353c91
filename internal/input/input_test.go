package input

import (
	"context"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chanSource feeds PollEvent from a channel; closing it ends the stream.
type chanSource chan tcell.Event

func (c chanSource) PollEvent() tcell.Event {
	ev, ok := <-c
	if !ok {
		return nil
	}
	return ev
}

func key(k tcell.Key, r rune) *tcell.EventKey {
	return tcell.NewEventKey(k, r, tcell.ModNone)
}

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		in   Outcome
		want Command
	}{
		{"timeout", Outcome{TimedOut: true}, Command{Kind: Refresh}},
		{"right arrow", Outcome{Event: key(tcell.KeyRight, 0)}, Command{Kind: MoveNext}},
		{"l", Outcome{Event: key(tcell.KeyRune, 'l')}, Command{Kind: MoveNext}},
		{"left arrow", Outcome{Event: key(tcell.KeyLeft, 0)}, Command{Kind: MovePrevious}},
		{"h", Outcome{Event: key(tcell.KeyRune, 'h')}, Command{Kind: MovePrevious}},
		{"q", Outcome{Event: key(tcell.KeyRune, 'q')}, Command{Kind: Quit}},
		{"esc", Outcome{Event: key(tcell.KeyEsc, 0)}, Command{Kind: Quit}},
		{"ctrl-c", Outcome{Event: key(tcell.KeyCtrlC, 0)}, Command{Kind: Quit}},
		{"other rune", Outcome{Event: key(tcell.KeyRune, 'x')}, Command{Kind: Ignore}},
		{"function key", Outcome{Event: key(tcell.KeyF5, 0)}, Command{Kind: Ignore}},
		{"click", Outcome{Event: tcell.NewEventMouse(12, 0, tcell.Button1, tcell.ModNone)}, Command{Kind: PointerDown, X: 12, Y: 0}},
		{"release", Outcome{Event: tcell.NewEventMouse(12, 0, tcell.ButtonNone, tcell.ModNone)}, Command{Kind: Ignore}},
		{"wheel", Outcome{Event: tcell.NewEventMouse(1, 1, tcell.WheelDown, tcell.ModNone)}, Command{Kind: Ignore}},
		{"resize", Outcome{Event: tcell.NewEventResize(80, 24)}, Command{Kind: Ignore}},
		{"nil event", Outcome{}, Command{Kind: Ignore}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, Classify(c.in))
			assert.Equal(t, c.want, Classify(c.in), "classify must be repeatable")
		})
	}
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "pointer-down", PointerDown.String())
	assert.Equal(t, "Kind(42)", Kind(42).String())
}

func TestPollerReturnsEvent(t *testing.T) {
	src := make(chanSource, 1)
	p := NewPoller(src)
	src <- key(tcell.KeyRune, 'q')

	out, err := p.Wait(context.Background(), time.Second)
	require.NoError(t, err)
	assert.False(t, out.TimedOut)
	assert.Equal(t, Command{Kind: Quit}, Classify(out))
}

func TestPollerTimesOut(t *testing.T) {
	p := NewPoller(make(chanSource))
	start := time.Now()
	out, err := p.Wait(context.Background(), 20*time.Millisecond)
	require.NoError(t, err)
	assert.True(t, out.TimedOut)
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}

func TestPollerPrefersQueuedEvent(t *testing.T) {
	src := make(chanSource, 1)
	p := NewPoller(src)
	src <- key(tcell.KeyRight, 0)
	require.Eventually(t, func() bool { return len(p.events) == 1 }, time.Second, time.Millisecond)

	out, err := p.Wait(context.Background(), 0)
	require.NoError(t, err)
	assert.False(t, out.TimedOut)
}

func TestPollerClosed(t *testing.T) {
	src := make(chanSource)
	p := NewPoller(src)
	close(src)
	_, err := p.Wait(context.Background(), time.Second)
	assert.ErrorIs(t, err, ErrInputClosed)
}

func TestPollerCancelled(t *testing.T) {
	p := NewPoller(make(chanSource))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := p.Wait(ctx, time.Second)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPollerCloseReleasesPump(t *testing.T) {
	src := make(chanSource, 40)
	for i := 0; i < cap(src); i++ {
		src <- key(tcell.KeyRune, 'x')
	}
	p := NewPoller(src)
	// 16 queued plus one held by the pump, which blocks on the full queue.
	require.Eventually(t, func() bool { return len(p.events) == cap(p.events) && len(src) == 23 }, time.Second, time.Millisecond)

	p.Close()
	p.Close()
	assert.Never(t, func() bool { return len(src) < 23 }, 50*time.Millisecond, 5*time.Millisecond)

	out, err := p.Wait(context.Background(), time.Second)
	require.NoError(t, err)
	assert.NotNil(t, out.Event)
}
