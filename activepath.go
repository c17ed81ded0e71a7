package statechart

import (
	"fmt"
	"log/slog"
)

// pathEntry is one slot of the active path: a live state instance and the ID
// it was entered as. The slot owns the instance exclusively.
type pathEntry struct {
	id StateID
	st State
}

// activePath owns the root-to-leaf chain of currently entered state
// instances. Entries are appended on entry and removed in reverse on exit.
type activePath struct {
	entries []pathEntry
}

func (p *activePath) depth() int {
	return len(p.entries)
}

func (p *activePath) leafID() StateID {
	if len(p.entries) == 0 {
		return StateIDNone
	}
	return p.entries[len(p.entries)-1].id
}

func (p *activePath) idAt(i int) StateID {
	return p.entries[i].id
}

// push constructs a new instance through the descriptor's factory and appends
// it. The factory call is the entry action. On failure nothing is appended.
func (p *activePath) push(d descriptor, args StateArgs, logger *slog.Logger) error {
	st, err := d.factory(args)
	if err != nil {
		return fmt.Errorf("%w: state %d: %v", ErrConstructionFailed, d.id, err)
	}
	if st == nil {
		return fmt.Errorf("%w: state %d: factory returned nil", ErrConstructionFailed, d.id)
	}
	p.entries = append(p.entries, pathEntry{id: d.id, st: st})
	logger.Debug("entered state", "state", d.id, "depth", len(p.entries))
	return nil
}

// popLeaf removes the innermost entry and runs its exit hook, if any. The
// slot is vacated before the hook runs, so a panicking hook still leaves the
// path a valid shorter prefix; the panic is logged and swallowed.
func (p *activePath) popLeaf(logger *slog.Logger) {
	n := len(p.entries) - 1
	e := p.entries[n]
	p.entries[n] = pathEntry{}
	p.entries = p.entries[:n]
	if ex, ok := e.st.(Exiter); ok {
		func() {
			defer func() {
				if r := recover(); r != nil {
					logger.Error("exit hook panicked", "state", e.id, "panic", r)
				}
			}()
			ex.Exit()
		}()
	}
	logger.Debug("exited state", "state", e.id, "depth", len(p.entries))
}

// popAll tears down the whole path leaf-to-root.
func (p *activePath) popAll(logger *slog.Logger) {
	for len(p.entries) > 0 {
		p.popLeaf(logger)
	}
}
