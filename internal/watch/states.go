package watch

import "github.com/rosbacke/statechart"

// rootState handles the quit paths shared by every mode: left arrow while
// the cursor sits at the line start, or the 'x' key.
type rootState struct {
	w *Watch
}

func (w *Watch) newRootState(statechart.StateArgs) (statechart.State, error) {
	return &rootState{w: w}, nil
}

func (s *rootState) Event(ev statechart.Event) bool {
	switch ev.ID {
	case EvArrowLeft:
		if s.w.Display.Offset == 0 {
			s.w.M.Transition(s.w.End)
		}
	case EvKey:
		if r, ok := ev.Payload.(rune); ok && r == 'x' {
			s.w.M.Transition(s.w.End)
		}
	}
	return false
}

// showTimeState displays the running clock. Up or down switches to the
// set-time mode.
type showTimeState struct {
	w *Watch
}

func (w *Watch) newShowTimeState(statechart.StateArgs) (statechart.State, error) {
	w.Display.SetMode(w.ModeString(w.ShowTime))
	return &showTimeState{w: w}, nil
}

func (s *showTimeState) Event(ev statechart.Event) bool {
	switch ev.ID {
	case EvTick:
		s.w.Display.PrintTime()
	case EvArrowUp, EvArrowDown:
		s.w.M.Transition(s.w.SetTime)
	}
	return false
}

// setTimeState edits a snapshot of the clock's time. Left/right move the
// cursor across the digit columns; up/down step the addressed digit. Moving
// right past the last column commits the snapshot and returns to the time
// display. Up or down at the line start returns to the time display without
// committing.
type setTimeState struct {
	w    *Watch
	hour int
	min  int
	sec  int
}

func (w *Watch) newSetTimeState(statechart.StateArgs) (statechart.State, error) {
	w.Display.SetMode(w.ModeString(w.SetTime))
	return &setTimeState{
		w:    w,
		hour: w.Clock.Hour(),
		min:  w.Clock.Minute(),
		sec:  w.Clock.Second(),
	}, nil
}

func (s *setTimeState) Event(ev statechart.Event) bool {
	d := s.w.Display
	switch ev.ID {
	case EvTick:
		d.Print(s.hour, s.min, s.sec, true)
	case EvArrowLeft:
		d.CursorLeft()
		return true
	case EvArrowRight:
		if !d.CursorRight() {
			d.Offset = 0
			s.w.Clock.SetTime(s.hour, s.min, s.sec)
			s.w.M.Transition(s.w.ShowTime)
		}
		return true
	case EvArrowUp:
		add := func(val *int, step, max int) {
			if *val+step < max {
				*val += step
			}
		}
		switch d.Offset {
		case 0:
			s.w.M.Transition(s.w.ShowTime)
		case 1:
			add(&s.hour, 10, 24)
		case 2:
			add(&s.hour, 1, 24)
		case 3:
			add(&s.min, 10, 60)
		case 4:
			add(&s.min, 1, 60)
		case 5:
			add(&s.sec, 10, 60)
		case 6:
			add(&s.sec, 1, 60)
		}
		return true
	case EvArrowDown:
		sub := func(val *int, step int) {
			if *val-step >= 0 {
				*val -= step
			}
		}
		switch d.Offset {
		case 0:
			s.w.M.Transition(s.w.ShowTime)
		case 1:
			sub(&s.hour, 10)
		case 2:
			sub(&s.hour, 1)
		case 3:
			sub(&s.min, 10)
		case 4:
			sub(&s.min, 1)
		case 5:
			sub(&s.sec, 10)
		case 6:
			sub(&s.sec, 1)
		}
		return true
	}
	return false
}

// endState is the terminal mode; the main loop exits when it becomes the
// leaf.
type endState struct{}

func (w *Watch) newEndState(statechart.StateArgs) (statechart.State, error) {
	return endState{}, nil
}

func (endState) Event(statechart.Event) bool {
	return false
}
