// Package watch implements the digital-watch demo on top of the statechart
// engine: a settable clock, a one-line terminal display, and the mode state
// machine driving both.
package watch

import (
	_ "embed"
	"fmt"
	"io"

	"github.com/rosbacke/statechart"
	"github.com/rosbacke/statechart/chartfile"
)

//go:embed chart.yaml
var chartYAML []byte

// Watch is the demo's machine context: the engine handle plus the clock and
// display shared by all states.
type Watch struct {
	M       *statechart.Machine
	Clock   *Clock
	Display *Display

	chart *chartfile.Chart

	// Resolved state IDs from the embedded chart.
	Root     statechart.StateID
	ShowTime statechart.StateID
	SetTime  statechart.StateID
	End      statechart.StateID
}

// New builds the watch machine from the embedded chart description. The
// machine is registered but not started.
func New(out io.Writer, opts ...statechart.Option) (*Watch, error) {
	chart, err := chartfile.Parse(chartYAML)
	if err != nil {
		return nil, fmt.Errorf("watch chart: %w", err)
	}

	w := &Watch{
		Clock: NewClock(),
		chart: chart,
	}
	w.Display = NewDisplay(w.Clock, out)
	w.Root, _ = chart.StateID("root")
	w.ShowTime, _ = chart.StateID("showTime")
	w.SetTime, _ = chart.StateID("setTime")
	w.End, _ = chart.StateID("end")

	m := statechart.New(opts...)
	err = chart.Apply(m, map[string]statechart.Factory{
		"root":     w.newRootState,
		"showTime": w.newShowTimeState,
		"setTime":  w.newSetTimeState,
		"end":      w.newEndState,
	})
	if err != nil {
		return nil, fmt.Errorf("watch setup: %w", err)
	}
	w.M = m
	return w, nil
}

// Start enters the chart's start state (time display).
func (w *Watch) Start() error {
	return w.M.SetStartState(w.chart.StartID())
}

// Done reports whether the machine reached the end state.
func (w *Watch) Done() bool {
	return w.M.CurrentStateID() == w.End
}

// ModeString returns the two-letter mode indicator for a state.
func (w *Watch) ModeString(id statechart.StateID) string {
	switch id {
	case w.ShowTime:
		return "ti"
	case w.SetTime:
		return "st"
	case w.End:
		return "en"
	default:
		return "un"
	}
}

// DOT renders the watch state tree as Graphviz source.
func (w *Watch) DOT() string {
	return w.M.DOT(w.chart.NameOf)
}
