package submit

import (
	"sort"

	"github.com/goliatone/go-formsteps/pkg/form"
)

// Payload maps field ids to their current string value.
type Payload map[string]string

// Entry is one payload field.
type Entry struct {
	Field string
	Value string
}

// Empty reports whether the payload carries no field.
func (p Payload) Empty() bool {
	return len(p) == 0
}

// Entries returns the payload sorted by field id for deterministic output.
func (p Payload) Entries() []Entry {
	if len(p) == 0 {
		return nil
	}
	names := make([]string, 0, len(p))
	for name := range p {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]Entry, 0, len(names))
	for _, name := range names {
		out = append(out, Entry{Field: name, Value: p[name]})
	}
	return out
}

// Collect builds a fresh payload from every field holding a non-empty value.
// Exclusive-choice groups contribute their selected value under the group id.
// Hidden fields that still hold a value are included.
func Collect(f *form.Form) Payload {
	out := Payload{}
	if f == nil {
		return out
	}
	for _, field := range f.All() {
		if field.Value == "" {
			continue
		}
		out[field.ID()] = field.Value
	}
	return out
}
