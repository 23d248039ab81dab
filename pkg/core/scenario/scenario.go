// Package scenario replays a recorded sequence of form edits against the
// equity model. Scenarios are plain documents (JSON, YAML or Hjson) so a
// what-if can be saved, shared and re-run from the CLI or the HTTP API.
package scenario

import (
	"bytes"
	"encoding/json"
	"sort"

	"github.com/pkg/errors"

	"stock_potential/pkg/core/equity"
)

// Value is raw field text. Documents may carry numbers or strings; both
// end up as the text the user would have typed.
type Value string

// UnmarshalJSON keeps numbers verbatim and unquotes strings.
func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*v = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = Value(s)
		return nil
	}
	*v = Value(data)
	return nil
}

// Edit is one "set field X to value v" event.
type Edit struct {
	Field string `json:"field" yaml:"field"`
	Value Value  `json:"value" yaml:"value"`
}

// Document is a starting snapshot plus edits applied in order.
type Document struct {
	Name string `json:"name,omitempty" yaml:"name"`
	// Base overrides individual fields of the defaults without running any
	// synchronization.
	Base  map[string]Value `json:"base,omitempty" yaml:"base"`
	Edits []Edit           `json:"edits,omitempty" yaml:"edits"`
}

// Result reports what happened to one edit.
type Result struct {
	Field    string `json:"field"`
	Value    string `json:"value"`
	Accepted bool   `json:"accepted"`
}

// BaseState merges Base onto defaults. Unlike edits, a malformed base
// value is an error: a snapshot has no previous value to fall back to.
func (d *Document) BaseState(defaults equity.State) (equity.State, error) {
	s := defaults
	names := make([]string, 0, len(d.Base))
	for name := range d.Base {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		f, err := equity.ParseField(name)
		if err != nil {
			return s, errors.Wrap(err, "base")
		}
		v, ok := equity.ParseNumber(string(d.Base[name]))
		if !ok {
			return s, errors.Errorf("base: %s: not a number: %q", name, d.Base[name])
		}
		if err := s.Put(f, v); err != nil {
			return s, err
		}
	}
	return s, nil
}

// Apply replays the edits through the model's text setter. Malformed values
// are skipped (the field keeps its last value) and reported as not accepted;
// an unknown field name stops the replay.
func (d *Document) Apply(m *equity.Model) ([]Result, error) {
	results := make([]Result, 0, len(d.Edits))
	for i, e := range d.Edits {
		f, err := equity.ParseField(e.Field)
		if err != nil {
			return results, errors.Wrapf(err, "edit %d", i)
		}
		accepted, err := m.SetText(f, string(e.Value))
		if err != nil {
			return results, errors.Wrapf(err, "edit %d", i)
		}
		results = append(results, Result{Field: f.String(), Value: string(e.Value), Accepted: accepted})
	}
	return results, nil
}

// Build creates a model from defaults, the document's base and its edits.
func (d *Document) Build(defaults equity.State) (*equity.Model, []Result, error) {
	base, err := d.BaseState(defaults)
	if err != nil {
		return nil, nil, err
	}
	m := equity.FromState(base)
	results, err := d.Apply(m)
	if err != nil {
		return nil, results, err
	}
	return m, results, nil
}
