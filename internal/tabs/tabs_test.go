package tabs

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableOrder(t *testing.T) {
	assert.Equal(t, []Tab{Due, Active, Inbox}, All())
	assert.Equal(t, 3, Count())
	assert.Equal(t, "Due", Due.Title())
	assert.Equal(t, "Active", Active.String())
	assert.False(t, Active.Color())
	assert.True(t, Inbox.Color())
}

func TestDirectiveIsCopied(t *testing.T) {
	d := Due.Directive()
	d[0] = "mutated"
	assert.Equal(t, []string{"due"}, Due.Directive())
}

func TestInvalidTab(t *testing.T) {
	bad := Tab(7)
	assert.False(t, bad.Valid())
	assert.Nil(t, bad.Directive())
	assert.False(t, bad.Color())
	assert.Equal(t, "Tab(7)", bad.Title())
}

func TestParse(t *testing.T) {
	tab, err := Parse(" inbox ")
	require.NoError(t, err)
	assert.Equal(t, Inbox, tab)

	_, err = Parse("someday")
	assert.Error(t, err)
}

func TestSetSaturates(t *testing.T) {
	s := NewSet(Due)
	for i := 0; i < Count()-1; i++ {
		s.Next()
	}
	assert.Equal(t, Inbox, s.Current())
	s.Next()
	assert.Equal(t, Inbox, s.Current(), "next on last tab must not wrap")

	for i := 0; i < Count()+2; i++ {
		s.Previous()
	}
	assert.Equal(t, Due, s.Current(), "previous on first tab must not wrap")
}

func TestSetStaysInBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	s := NewSet(Active)
	for i := 0; i < 1000; i++ {
		if rng.Intn(2) == 0 {
			s.Next()
		} else {
			s.Previous()
		}
		require.GreaterOrEqual(t, s.Index(), 0)
		require.Less(t, s.Index(), Count())
	}
}

func TestSetSelect(t *testing.T) {
	s := NewSet(Tab(-1))
	assert.Equal(t, Due, s.Current())

	s.Select(Inbox)
	assert.Equal(t, Inbox, s.Current())

	s.Select(Tab(99))
	assert.Equal(t, Inbox, s.Current())
}
