// Package settings provides the hierarchical preferences model: a tree of
// ordered sections, each holding ordered, named entries.
package settings

import (
	"sort"
	"strings"
)

// Entry is a single named configurable value.
type Entry struct {
	// Name is the stable machine key (e.g., "Preferences.General.Theme").
	Name string `json:"name" jsonschema:"required,description=Stable machine key of the entry"`

	// Value is the current value. Hotkey entries hold a chord such as "Ctrl+P".
	Value string `json:"value" jsonschema:"required,description=Current value of the entry"`

	// Options is the optional closed set of allowed values.
	Options []string `json:"options,omitempty" jsonschema:"description=Closed set of allowed values"`
}

// HasOptions reports whether the entry is constrained to a closed option set.
func (e *Entry) HasOptions() bool {
	return len(e.Options) > 0
}

// Choices returns the values an editor may offer for the entry: the closed
// option set, led by the current non-empty value when it is not a member
// of that set. Returns nil for free-text entries.
func (e *Entry) Choices() []string {
	if !e.HasOptions() {
		return nil
	}
	choices := make([]string, 0, len(e.Options)+1)
	found := false
	for _, opt := range e.Options {
		if opt == e.Value {
			found = true
		}
		choices = append(choices, opt)
	}
	if !found && e.Value != "" {
		choices = append([]string{e.Value}, choices...)
	}
	return choices
}

// Allows reports whether v is an acceptable value for the entry.
func (e *Entry) Allows(v string) bool {
	if !e.HasOptions() || v == e.Value {
		return true
	}
	for _, opt := range e.Options {
		if opt == v {
			return true
		}
	}
	return false
}

// Section is a named, ordered group of entries.
type Section struct {
	Name    string   `json:"name" jsonschema:"required"`
	Order   int      `json:"order" jsonschema:"description=Display and navigation order"`
	Entries []*Entry `json:"entries" jsonschema:"required"`
}

// Entry returns the entry with the given name (case-insensitive), or nil.
func (s *Section) Entry(name string) *Entry {
	for _, e := range s.Entries {
		if strings.EqualFold(e.Name, name) {
			return e
		}
	}
	return nil
}

// Tree is the full preferences model.
type Tree struct {
	Sections []*Section `json:"sections" jsonschema:"required"`
}

// Section returns the section with the given name (case-insensitive), or nil.
func (t *Tree) Section(name string) *Section {
	if t == nil {
		return nil
	}
	for _, s := range t.Sections {
		if strings.EqualFold(s.Name, name) {
			return s
		}
	}
	return nil
}

// Entry looks an entry up across all sections (case-insensitive).
// Sections are searched in stored order; the first match wins.
func (t *Tree) Entry(name string) (*Section, *Entry) {
	if t == nil {
		return nil, nil
	}
	for _, s := range t.Sections {
		if e := s.Entry(name); e != nil {
			return s, e
		}
	}
	return nil, nil
}

// Ordered returns the sections sorted by Order. Sections sharing an order
// keep their stored relative position. The tree itself is not modified.
func (t *Tree) Ordered() []*Section {
	if t == nil {
		return nil
	}
	out := make([]*Section, len(t.Sections))
	copy(out, t.Sections)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Order < out[j].Order
	})
	return out
}

// Walk calls fn for every entry in stored section/entry order.
// Walking stops early when fn returns false.
func (t *Tree) Walk(fn func(s *Section, e *Entry) bool) {
	if t == nil {
		return
	}
	for _, s := range t.Sections {
		for _, e := range s.Entries {
			if !fn(s, e) {
				return
			}
		}
	}
}

// Clone returns a deep copy of the tree.
func (t *Tree) Clone() *Tree {
	if t == nil {
		return nil
	}
	out := &Tree{Sections: make([]*Section, 0, len(t.Sections))}
	for _, s := range t.Sections {
		sc := &Section{
			Name:    s.Name,
			Order:   s.Order,
			Entries: make([]*Entry, 0, len(s.Entries)),
		}
		for _, e := range s.Entries {
			ec := &Entry{Name: e.Name, Value: e.Value}
			if e.Options != nil {
				ec.Options = append([]string(nil), e.Options...)
			}
			sc.Entries = append(sc.Entries, ec)
		}
		out.Sections = append(out.Sections, sc)
	}
	return out
}
