package chartfile_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rosbacke/statechart"
	"github.com/rosbacke/statechart/chartfile"
)

const watchChart = `
name: watch
start: showTime
states:
  - name: root
  - name: showTime
    parent: root
  - name: setTime
    parent: root
  - name: end
`

func TestParse(t *testing.T) {
	c, err := chartfile.Parse([]byte(watchChart))
	require.NoError(t, err)

	assert.Equal(t, "watch", c.Name)
	assert.Len(t, c.States, 4)

	root, ok := c.StateID("root")
	require.True(t, ok)
	assert.Equal(t, statechart.StateID(0), root)

	show, ok := c.StateID("showTime")
	require.True(t, ok)
	assert.Equal(t, show, c.StartID())
	assert.Equal(t, "showTime", c.NameOf(show))

	_, ok = c.StateID("missing")
	assert.False(t, ok)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr string
	}{
		{
			name:    "no states",
			doc:     "name: empty\n",
			wantErr: "no states",
		},
		{
			name: "duplicate state",
			doc: `
states:
  - name: a
  - name: a
`,
			wantErr: "duplicate state",
		},
		{
			name: "unknown parent",
			doc: `
states:
  - name: a
    parent: ghost
`,
			wantErr: "undeclared parent",
		},
		{
			name: "parent cycle",
			doc: `
states:
  - name: a
    parent: b
  - name: b
    parent: a
`,
			wantErr: "cycle",
		},
		{
			name: "unknown start",
			doc: `
start: ghost
states:
  - name: a
`,
			wantErr: "not declared",
		},
		{
			name:    "malformed yaml",
			doc:     "states: [",
			wantErr: "yaml",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := chartfile.Parse([]byte(tt.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestApply(t *testing.T) {
	c, err := chartfile.Parse([]byte(watchChart))
	require.NoError(t, err)

	null := func(statechart.StateArgs) (statechart.State, error) {
		return nullState{}, nil
	}
	m := statechart.New()
	err = c.Apply(m, map[string]statechart.Factory{
		"root": null, "showTime": null, "setTime": null, "end": null,
	})
	require.NoError(t, err)

	require.NoError(t, m.SetStartState(c.StartID()))
	assert.Equal(t, 2, m.Depth())
	show, _ := c.StateID("showTime")
	assert.Equal(t, show, m.CurrentStateID())
}

func TestApplyMissingFactory(t *testing.T) {
	c, err := chartfile.Parse([]byte(watchChart))
	require.NoError(t, err)

	m := statechart.New()
	err = c.Apply(m, map[string]statechart.Factory{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no factory")
}

type nullState struct{}

func (nullState) Event(statechart.Event) bool { return false }
