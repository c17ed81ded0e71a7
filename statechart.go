// Package statechart implements a hierarchical finite state machine engine.
//
// States are registered once during setup, each bound to a factory and an
// optional parent. Entering a state constructs a fresh instance through its
// factory (the entry action); leaving it runs the optional Exit hook and
// discards the instance. Events posted to the machine are delivered to the
// innermost active state first and bubble up through its ancestors until a
// handler consumes them or requests a transition. Events posted while a
// dispatch is running are queued and delivered after the current event has
// fully completed, including any transitions it triggered.
//
// The engine is single-threaded: all public operations must be called from
// the goroutine that owns the machine.
package statechart

import (
	"fmt"
	"io"
	"log/slog"
)

// StateID identifies one registered state. Values are caller-defined small
// non-negative integers; each state of the machine has exactly one.
type StateID int

// StateIDNone is the sentinel returned by CurrentStateID when the machine
// holds no active state. It cannot be registered.
const StateIDNone StateID = -1

// State is a live instance of an entered state. Event is called for each
// dispatched event while the state is on the active path; returning true
// consumes the event and stops it from bubbling to ancestors.
type State interface {
	Event(ev Event) bool
}

// Exiter is implemented by states that carry an exit action. The hook runs
// when the instance leaves the active path, on every path out of the state:
// transitions, redirects, and machine teardown.
type Exiter interface {
	Exit()
}

// StateArgs is passed to a state factory on entry. It carries a non-owning
// handle to the machine, for requesting transitions and posting events, and
// the ID the state is being entered as.
type StateArgs struct {
	Machine *Machine
	ID      StateID
}

// Factory constructs a state instance. The call is the entry action; side
// effects belong here. Returning an error aborts the entry and surfaces as
// ErrConstructionFailed.
type Factory func(args StateArgs) (State, error)

// Machine is a hierarchical state machine: a state registry, the active path
// of entered instances, and a run-to-completion event dispatcher. The zero
// value is not usable; call New.
type Machine struct {
	reg   *registry
	path  activePath
	queue *eventQueue

	pending    StateID
	pendingSet bool

	dispatching bool
	entering    bool
	exiting     bool
	started     bool

	strict      bool
	reenterSelf bool
	logger      *slog.Logger
	stateChange func(from, to StateID)
}

// New creates an empty machine. Register states with AddState/AddSubState,
// then call SetStartState.
func New(opts ...Option) *Machine {
	m := &Machine{
		reg:     newRegistry(),
		queue:   newEventQueue(defaultQueueCapacity),
		pending: StateIDNone,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// AddState registers a top-level state. Registration order is irrelevant.
func (m *Machine) AddState(id StateID, factory Factory) error {
	return m.reg.add(id, StateIDNone, factory)
}

// AddSubState registers a state nested under parent. The parent may be
// registered later; the link is checked when the machine starts.
func (m *Machine) AddSubState(id, parent StateID, factory Factory) error {
	return m.reg.add(id, parent, factory)
}

// SetStartState validates the registered state tree, freezes the registry,
// and enters the chain from id's root ancestor down to id. A factory that
// requests a transition redirects entry before the next state in the chain
// is constructed.
func (m *Machine) SetStartState(id StateID) error {
	if m.started {
		return fmt.Errorf("%w: start state already set", ErrAlreadyStarted)
	}
	chain, err := m.reg.ancestorChain(id)
	if err != nil {
		return err
	}
	if !m.reg.frozen {
		if err := m.reg.validate(); err != nil {
			return err
		}
		m.reg.freeze()
	}
	m.started = true
	m.logger.Debug("starting machine", "state", id)
	return m.enterSegment(chain)
}

// PostEvent enqueues ev and, unless a dispatch is already running, drains the
// queue delivering each event to the active path. Each event runs to
// completion, including any transition it triggers, before the next is
// dequeued. A full queue drops the event and reports ErrQueueOverflow.
func (m *Machine) PostEvent(ev Event) error {
	if !m.started || m.path.depth() == 0 {
		return fmt.Errorf("%w: post of event %d", ErrNotStarted, ev.ID)
	}
	if !m.queue.push(ev) {
		return fmt.Errorf("%w: dropping event %d", ErrQueueOverflow, ev.ID)
	}
	if m.dispatching {
		return nil
	}
	m.dispatching = true
	defer func() { m.dispatching = false }()

	for m.queue.len() > 0 {
		next, _ := m.queue.pop()
		if err := m.deliver(next); err != nil {
			return err
		}
		if m.path.depth() == 0 {
			break
		}
	}
	return nil
}

// deliver walks one event from the leaf up the active path. The walk stops
// at the first handler that consumes the event or records a transition; a
// recorded transition is applied after the handler returns.
func (m *Machine) deliver(ev Event) error {
	for i := m.path.depth() - 1; i >= 0; i-- {
		consumed := m.path.entries[i].st.Event(ev)
		if m.pendingSet {
			target := m.pending
			m.clearPending()
			return m.applyTransition(target)
		}
		if consumed {
			return nil
		}
	}
	return nil
}

// CurrentStateID returns the leaf StateID, or StateIDNone when no state is
// active.
func (m *Machine) CurrentStateID() StateID {
	return m.path.leafID()
}

// IsRunning reports whether the machine holds at least one active state.
func (m *Machine) IsRunning() bool {
	return m.path.depth() > 0
}

// Depth returns the number of states on the active path.
func (m *Machine) Depth() int {
	return m.path.depth()
}

// StateIDAt returns the StateID at position i of the active path, root
// first. It panics if i is out of range.
func (m *Machine) StateIDAt(i int) StateID {
	return m.path.idAt(i)
}

// Stop tears the machine down: the active path is destroyed leaf-to-root and
// undelivered events are discarded. The registry stays frozen, but the
// machine may be started again with SetStartState. Calling Stop from a
// handler is an error; calling it on a stopped machine is a no-op.
func (m *Machine) Stop() error {
	if m.dispatching || m.entering || m.exiting {
		return fmt.Errorf("%w: stop must be called between events", ErrDispatchInProgress)
	}
	if !m.started {
		return nil
	}
	m.logger.Debug("stopping machine", "state", m.path.leafID())
	m.path.popAll(m.logger)
	m.queue.reset()
	m.clearPending()
	m.started = false
	return nil
}
