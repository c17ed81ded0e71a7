package statechart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventQueueWraparound(t *testing.T) {
	q := newEventQueue(3)

	for round := 0; round < 5; round++ {
		base := EventID(round * 10)
		assert.True(t, q.push(Event{ID: base}))
		assert.True(t, q.push(Event{ID: base + 1}))
		assert.True(t, q.push(Event{ID: base + 2}))
		assert.False(t, q.push(Event{ID: base + 3}), "round %d: full queue accepted a push", round)

		for i := 0; i < 3; i++ {
			ev, ok := q.pop()
			require.True(t, ok)
			assert.Equal(t, base+EventID(i), ev.ID)
		}
		_, ok := q.pop()
		assert.False(t, ok)
	}
}

func TestEventQueueReset(t *testing.T) {
	q := newEventQueue(4)
	q.push(Event{ID: 1})
	q.push(Event{ID: 2})

	q.reset()
	assert.Equal(t, 0, q.len())
	_, ok := q.pop()
	assert.False(t, ok)
}

func TestRegistryAncestorChain(t *testing.T) {
	r := newRegistry()
	f := func(StateArgs) (State, error) { return nil, nil }
	require.NoError(t, r.add(0, StateIDNone, f))
	require.NoError(t, r.add(1, 0, f))
	require.NoError(t, r.add(2, 1, f))

	chain, err := r.ancestorChain(2)
	require.NoError(t, err)
	assert.Equal(t, []StateID{0, 1, 2}, chain)

	chain, err = r.ancestorChain(0)
	require.NoError(t, err)
	assert.Equal(t, []StateID{0}, chain)
}

func TestCommonPrefixLen(t *testing.T) {
	tests := []struct {
		a, b []StateID
		want int
	}{
		{[]StateID{0, 1, 2}, []StateID{0, 1, 3}, 2},
		{[]StateID{0, 1}, []StateID{0, 1, 3}, 2},
		{[]StateID{0}, []StateID{1}, 0},
		{nil, []StateID{1}, 0},
		{[]StateID{0, 1, 2}, []StateID{0, 1, 2}, 3},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, commonPrefixLen(tt.a, tt.b))
	}
}
