package tabs

// Set is the selection cursor over All(). Movement saturates at both ends.
type Set struct {
	index int
}

// NewSet returns a Set positioned on initial, or on the first tab when
// initial is not a member.
func NewSet(initial Tab) *Set {
	s := &Set{}
	s.Select(initial)
	return s
}

func (s *Set) Current() Tab { return Tab(s.index) }

func (s *Set) Index() int { return s.index }

// Next advances one tab; a no-op on the last tab.
func (s *Set) Next() {
	if s.index < Count()-1 {
		s.index++
	}
}

// Previous moves back one tab; a no-op on the first tab.
func (s *Set) Previous() {
	if s.index > 0 {
		s.index--
	}
}

// Select jumps to t. Tabs outside the enumeration are ignored.
func (s *Set) Select(t Tab) {
	if t.Valid() {
		s.index = int(t)
	}
}
