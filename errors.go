package statechart

import "errors"

// Sentinel errors returned by the engine. Call sites wrap them with context;
// test with errors.Is.
var (
	// ErrDuplicateState is returned by AddState/AddSubState when the StateID
	// is already registered.
	ErrDuplicateState = errors.New("duplicate state ID")

	// ErrUnknownState is returned when an operation references a StateID that
	// was never registered.
	ErrUnknownState = errors.New("unknown state ID")

	// ErrUnknownParent is returned by SetStartState when a registered state
	// names a parent that was never registered.
	ErrUnknownParent = errors.New("unknown parent state")

	// ErrCycleDetected is returned by SetStartState when parent links do not
	// terminate at a root.
	ErrCycleDetected = errors.New("cycle in parent chain")

	// ErrAlreadyStarted is returned by SetStartState on a running machine,
	// and by registration calls after the registry is frozen.
	ErrAlreadyStarted = errors.New("machine already started")

	// ErrNotStarted is returned by PostEvent and Transition before
	// SetStartState has succeeded.
	ErrNotStarted = errors.New("machine not started")

	// ErrQueueOverflow is returned by PostEvent when the event queue is at
	// capacity. The event is dropped.
	ErrQueueOverflow = errors.New("event queue full")

	// ErrConstructionFailed is returned when a state factory fails during
	// entry. The active path keeps the prefix entered so far.
	ErrConstructionFailed = errors.New("state construction failed")

	// ErrTransitionAlreadyPending is returned in strict mode when a handler
	// requests a second transition before returning.
	ErrTransitionAlreadyPending = errors.New("transition already pending")

	// ErrTransitionDuringExit is returned when Transition is called from an
	// exit hook.
	ErrTransitionDuringExit = errors.New("transition requested during exit")

	// ErrDispatchInProgress is returned by Stop when called from inside a
	// handler.
	ErrDispatchInProgress = errors.New("dispatch in progress")
)
