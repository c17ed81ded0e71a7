package watch

import "github.com/rosbacke/statechart"

// Event IDs posted to the watch machine.
const (
	EvTick statechart.EventID = iota
	EvKey
	EvArrowUp
	EvArrowDown
	EvArrowLeft
	EvArrowRight
)

// TickEvent is posted on every loop iteration to refresh the display.
func TickEvent() statechart.Event {
	return statechart.NewEvent(EvTick, nil)
}

// KeyEvent carries an ordinary keypress; the rune is the payload.
func KeyEvent(r rune) statechart.Event {
	return statechart.NewEvent(EvKey, r)
}
