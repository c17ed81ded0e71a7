// Package chartfile loads declarative chart descriptions from YAML.
//
// A chart file names the states of a machine and their parent links:
//
//	name: watch
//	start: showTime
//	states:
//	  - name: root
//	  - name: showTime
//	    parent: root
//	  - name: setTime
//	    parent: root
//	  - name: end
//
// The document only describes the tree shape; behavior stays in code. Apply
// registers every declared state on a machine using a factory looked up by
// state name, so the set of states is still fixed before the machine starts.
package chartfile

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/rosbacke/statechart"
)

// StateDecl declares one state and its optional parent, both by name.
type StateDecl struct {
	Name   string `yaml:"name"`
	Parent string `yaml:"parent,omitempty"`
}

// Chart is a parsed chart description. StateIDs are assigned from the
// declaration order, so a chart maps to the same IDs on every load.
type Chart struct {
	Name   string      `yaml:"name"`
	Start  string      `yaml:"start,omitempty"`
	States []StateDecl `yaml:"states"`

	ids map[string]statechart.StateID
}

// Parse decodes and validates a chart document.
func Parse(data []byte) (*Chart, error) {
	var c Chart
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	c.ids = make(map[string]statechart.StateID, len(c.States))
	for i, s := range c.States {
		c.ids[s.Name] = statechart.StateID(i)
	}
	return &c, nil
}

// Load reads and parses a chart file.
func Load(path string) (*Chart, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return c, nil
}

func (c *Chart) validate() error {
	if len(c.States) == 0 {
		return errors.New("chart declares no states")
	}
	seen := make(map[string]struct{}, len(c.States))
	for _, s := range c.States {
		if s.Name == "" {
			return errors.New("state with empty name")
		}
		if _, dup := seen[s.Name]; dup {
			return fmt.Errorf("duplicate state %q", s.Name)
		}
		seen[s.Name] = struct{}{}
	}
	parents := make(map[string]string, len(c.States))
	for _, s := range c.States {
		if s.Parent == "" {
			continue
		}
		if _, ok := seen[s.Parent]; !ok {
			return fmt.Errorf("state %q references undeclared parent %q", s.Name, s.Parent)
		}
		parents[s.Name] = s.Parent
	}
	for _, s := range c.States {
		steps := 0
		for cur := s.Name; cur != ""; cur = parents[cur] {
			if steps++; steps > len(c.States) {
				return fmt.Errorf("cycle in parent chain at state %q", s.Name)
			}
		}
	}
	if c.Start != "" {
		if _, ok := seen[c.Start]; !ok {
			return fmt.Errorf("start state %q not declared", c.Start)
		}
	}
	return nil
}

// StateID returns the ID assigned to the named state.
func (c *Chart) StateID(name string) (statechart.StateID, bool) {
	id, ok := c.ids[name]
	return id, ok
}

// StartID returns the ID of the declared start state, or StateIDNone if the
// chart does not declare one.
func (c *Chart) StartID() statechart.StateID {
	if c.Start == "" {
		return statechart.StateIDNone
	}
	return c.ids[c.Start]
}

// NameOf returns the declared name for an ID. Suitable as the label function
// for Machine.DOT.
func (c *Chart) NameOf(id statechart.StateID) string {
	i := int(id)
	if i < 0 || i >= len(c.States) {
		return fmt.Sprintf("s%d", id)
	}
	return c.States[i].Name
}

// Apply registers every declared state on m, looking up each state's factory
// by name. Every declared state must have a factory.
func (c *Chart) Apply(m *statechart.Machine, factories map[string]statechart.Factory) error {
	for _, s := range c.States {
		f, ok := factories[s.Name]
		if !ok {
			return fmt.Errorf("no factory for state %q", s.Name)
		}
		var err error
		if s.Parent == "" {
			err = m.AddState(c.ids[s.Name], f)
		} else {
			err = m.AddSubState(c.ids[s.Name], c.ids[s.Parent], f)
		}
		if err != nil {
			return fmt.Errorf("register state %q: %w", s.Name, err)
		}
	}
	return nil
}
