package statechart

import "fmt"

// Transition requests a change of the active leaf to target.
//
// Called from an event handler or a state factory, the request is recorded in
// a single pending slot and applied once the handler returns: the states
// between the current leaf and the least common ancestor of leaf and target
// are exited leaf-to-root, then the chain from below that ancestor down to
// target is entered root-to-leaf. A second request from the same handler
// overrides the first with a logged warning, or fails with
// ErrTransitionAlreadyPending under WithStrictTransitions.
//
// Called outside any dispatch, the transition is applied immediately.
// Calling Transition from an exit hook is rejected.
func (m *Machine) Transition(target StateID) error {
	if !m.started || m.path.depth() == 0 {
		return fmt.Errorf("%w: transition to %d", ErrNotStarted, target)
	}
	if m.exiting {
		return fmt.Errorf("%w: target %d", ErrTransitionDuringExit, target)
	}
	if _, err := m.reg.resolve(target); err != nil {
		return err
	}
	if m.dispatching || m.entering {
		if m.pendingSet {
			if m.strict {
				return fmt.Errorf("%w: %d, then %d", ErrTransitionAlreadyPending, m.pending, target)
			}
			m.logger.Warn("pending transition overridden", "old", m.pending, "new", target)
		}
		m.pending = target
		m.pendingSet = true
		return nil
	}
	return m.applyTransition(target)
}

func (m *Machine) clearPending() {
	m.pending = StateIDNone
	m.pendingSet = false
}

// applyTransition moves the active leaf to target. The exit and entry
// segments are derived from the ancestor chains of the current leaf and the
// target: everything below their common prefix is exited innermost-first,
// then the target's remaining chain is entered outermost-first.
func (m *Machine) applyTransition(target StateID) error {
	from := m.path.leafID()
	curChain, err := m.reg.ancestorChain(from)
	if err != nil {
		return err
	}
	tgtChain, err := m.reg.ancestorChain(target)
	if err != nil {
		return err
	}

	keep := commonPrefixLen(curChain, tgtChain)
	if keep == len(curChain) && keep == len(tgtChain) {
		// Self-transition. Default is a no-op; the re-entry mode exits and
		// reconstructs the leaf.
		if !m.reenterSelf {
			m.logger.Debug("self transition ignored", "state", target)
			return nil
		}
		keep--
	}

	m.logger.Debug("transition", "from", from, "to", target, "exit", len(curChain)-keep, "enter", len(tgtChain)-keep)

	m.popToDepth(keep)
	if err := m.enterSegment(tgtChain[keep:]); err != nil {
		return err
	}

	if m.stateChange != nil {
		if to := m.path.leafID(); to != from {
			m.stateChange(from, to)
		}
	}
	return nil
}

// popToDepth exits active states leaf-to-root until only depth entries
// remain. Exit hooks cannot request transitions.
func (m *Machine) popToDepth(depth int) {
	m.exiting = true
	defer func() { m.exiting = false }()
	for m.path.depth() > depth {
		m.path.popLeaf(m.logger)
	}
}

// enterSegment enters the given states in order, outermost first. A factory
// that records a transition redirects: the remainder of the segment is
// abandoned and the new transition is applied from the just-entered state.
func (m *Machine) enterSegment(ids []StateID) error {
	for i, id := range ids {
		d, err := m.reg.resolve(id)
		if err != nil {
			return err
		}
		if err := m.pushState(d); err != nil {
			m.clearPending()
			return err
		}
		if m.pendingSet {
			target := m.pending
			m.clearPending()
			if i < len(ids)-1 {
				m.logger.Debug("entry redirected", "state", id, "target", target)
			}
			return m.applyTransition(target)
		}
	}
	return nil
}

func (m *Machine) pushState(d descriptor) error {
	m.entering = true
	defer func() { m.entering = false }()
	return m.path.push(d, StateArgs{Machine: m, ID: d.id}, m.logger)
}

func commonPrefixLen(a, b []StateID) int {
	n := 0
	for n < len(a) && n < len(b) && a[n] == b[n] {
		n++
	}
	return n
}
