package input

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
)

// Kind enumerates the commands a session understands.
type Kind int

const (
	Ignore Kind = iota
	MoveNext
	MovePrevious
	Quit
	PointerDown
	Refresh
)

func (k Kind) String() string {
	switch k {
	case Ignore:
		return "ignore"
	case MoveNext:
		return "move-next"
	case MovePrevious:
		return "move-previous"
	case Quit:
		return "quit"
	case PointerDown:
		return "pointer-down"
	case Refresh:
		return "refresh"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Command is a classified input. X and Y are screen coordinates and are only
// meaningful for PointerDown.
type Command struct {
	Kind Kind
	X, Y int
}

// Classify maps an Outcome to exactly one Command. It has no side effects.
func Classify(o Outcome) Command {
	if o.TimedOut {
		return Command{Kind: Refresh}
	}
	switch ev := o.Event.(type) {
	case *tcell.EventKey:
		return Command{Kind: classifyKey(ev)}
	case *tcell.EventMouse:
		if ev.Buttons()&tcell.Button1 == 0 {
			return Command{Kind: Ignore}
		}
		x, y := ev.Position()
		return Command{Kind: PointerDown, X: x, Y: y}
	}
	return Command{Kind: Ignore}
}

func classifyKey(ev *tcell.EventKey) Kind {
	switch ev.Key() {
	case tcell.KeyRight:
		return MoveNext
	case tcell.KeyLeft:
		return MovePrevious
	case tcell.KeyEsc, tcell.KeyCtrlC:
		return Quit
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'l', 'L':
			return MoveNext
		case 'h', 'H':
			return MovePrevious
		case 'q', 'Q':
			return Quit
		}
	}
	return Ignore
}
