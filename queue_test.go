package statechart_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rosbacke/statechart"
)

const (
	evFirst statechart.EventID = iota
	evSecond
	evThird
)

func TestRunToCompletion(t *testing.T) {
	r := newRecorder(t)
	r.start(t, stD)

	// The handler for the first event posts two more and requests a
	// transition. The queued events must be observed only after the
	// transition's exit and entry actions have run, in posting order, by the
	// new leaf.
	r.onEvent[stD] = func(ev statechart.Event) bool {
		if ev.ID != evFirst {
			return false
		}
		require.NoError(t, r.m.PostEvent(statechart.NewEvent(evSecond, nil)))
		require.NoError(t, r.m.PostEvent(statechart.NewEvent(evThird, nil)))
		r.m.Transition(stE)
		return false
	}
	var seen []statechart.EventID
	r.onEvent[stE] = func(ev statechart.Event) bool {
		seen = append(seen, ev.ID)
		return true
	}

	require.NoError(t, r.m.PostEvent(statechart.NewEvent(evFirst, nil)))
	assert.Equal(t, []string{"?d", "-d", "+e", "?e", "?e"}, r.log)
	assert.Equal(t, []statechart.EventID{evSecond, evThird}, seen)
}

func TestNestedPostDoesNotReenterDispatch(t *testing.T) {
	r := newRecorder(t)
	r.start(t, stD)

	depth := 0
	maxDepth := 0
	r.onEvent[stD] = func(ev statechart.Event) bool {
		depth++
		if depth > maxDepth {
			maxDepth = depth
		}
		if ev.ID == evFirst {
			require.NoError(t, r.m.PostEvent(statechart.NewEvent(evSecond, nil)))
		}
		depth--
		return true
	}

	require.NoError(t, r.m.PostEvent(statechart.NewEvent(evFirst, nil)))
	assert.Equal(t, 1, maxDepth)
}

func TestQueueOverflow(t *testing.T) {
	r := newRecorder(t, statechart.WithQueueCapacity(2))
	r.start(t, stD)

	var overflow error
	r.onEvent[stD] = func(ev statechart.Event) bool {
		if ev.ID != evFirst {
			return true
		}
		// The slot freed by dequeuing evFirst plus one more; the third post
		// exceeds the capacity of 2.
		require.NoError(t, r.m.PostEvent(statechart.NewEvent(evSecond, nil)))
		require.NoError(t, r.m.PostEvent(statechart.NewEvent(evThird, nil)))
		overflow = r.m.PostEvent(statechart.NewEvent(evThird, nil))
		return true
	}

	require.NoError(t, r.m.PostEvent(statechart.NewEvent(evFirst, nil)))
	assert.ErrorIs(t, overflow, statechart.ErrQueueOverflow)
	// The overflowing event was dropped; the two queued ones still arrive.
	assert.Equal(t, []string{"?d", "?d", "?d"}, r.log)
}

func TestEventPayloadIsCopiedOnEnqueue(t *testing.T) {
	r := newRecorder(t)
	r.start(t, stD)

	var got []statechart.EventID
	r.onEvent[stD] = func(ev statechart.Event) bool {
		got = append(got, ev.ID)
		return true
	}

	ev := statechart.NewEvent(evFirst, "payload")
	require.NoError(t, r.m.PostEvent(ev))
	ev.ID = evThird // mutation after posting must not be observed
	require.NoError(t, r.m.PostEvent(statechart.NewEvent(evSecond, nil)))
	assert.Equal(t, []statechart.EventID{evFirst, evSecond}, got)
}
