package watch

import (
	"io"

	"github.com/rosbacke/statechart"
)

// KeyReader turns raw terminal bytes into watch events. Arrow keys arrive as
// the ANSI sequences ESC [ A/B/C/D; any other byte that does not start an
// escape sequence is a plain key event.
// The underlying reader is expected to be non-blocking: a read that yields
// no byte means no key is pending.
type KeyReader struct {
	r io.Reader
}

func NewKeyReader(r io.Reader) *KeyReader {
	return &KeyReader{r: r}
}

// ReadEvent decodes the next pending keypress. It reports false when no key
// is waiting, and also when an escape sequence is truncated or is not one of
// the four arrow sequences; the bytes read for it are discarded.
func (k *KeyReader) ReadEvent() (statechart.Event, bool) {
	b, ok := k.readByte()
	if !ok {
		return statechart.Event{}, false
	}
	if b == 0x1b {
		if b2, ok := k.readByte(); !ok || b2 != '[' {
			return statechart.Event{}, false
		}
		fin, ok := k.readByte()
		if !ok {
			return statechart.Event{}, false
		}
		switch fin {
		case 'A':
			return statechart.NewEvent(EvArrowUp, nil), true
		case 'B':
			return statechart.NewEvent(EvArrowDown, nil), true
		case 'C':
			return statechart.NewEvent(EvArrowRight, nil), true
		case 'D':
			return statechart.NewEvent(EvArrowLeft, nil), true
		default:
			return statechart.Event{}, false
		}
	}
	return KeyEvent(rune(b)), true
}

func (k *KeyReader) readByte() (byte, bool) {
	var buf [1]byte
	n, err := k.r.Read(buf[:])
	if err != nil || n == 0 {
		return 0, false
	}
	return buf[0], true
}
