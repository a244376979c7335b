package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

var (
	// ErrSectionMissing is returned when the document has no property for the preferences key.
	ErrSectionMissing = errors.New("settings: preferences property not found")

	// ErrInvalid is returned when the bound tree is structurally broken.
	ErrInvalid = errors.New("settings: invalid tree")
)

// Load binds the property named key from a JSON document into a Tree.
// An empty key binds the whole document.
func Load(doc []byte, key string) (*Tree, error) {
	if !gjson.ValidBytes(doc) {
		return nil, fmt.Errorf("settings: malformed JSON document")
	}

	raw := doc
	if key != "" {
		res := gjson.GetBytes(doc, EscapeKey(key))
		if !res.Exists() {
			return nil, fmt.Errorf("%w: %q", ErrSectionMissing, key)
		}
		raw = []byte(res.Raw)
	}

	var tree Tree
	if err := json.Unmarshal(raw, &tree); err != nil {
		return nil, fmt.Errorf("settings: failed to bind %q: %w", key, err)
	}
	if err := tree.Validate(); err != nil {
		return nil, err
	}
	return &tree, nil
}

// Validate reports structural problems: nil or unnamed sections and entries.
// Values outside a closed option set are tolerated; editors offer the
// current value alongside the options.
func (t *Tree) Validate() error {
	for i, s := range t.Sections {
		if s == nil {
			return fmt.Errorf("%w: section %d is null", ErrInvalid, i)
		}
		if strings.TrimSpace(s.Name) == "" {
			return fmt.Errorf("%w: section %d has no name", ErrInvalid, i)
		}
		for j, e := range s.Entries {
			if e == nil {
				return fmt.Errorf("%w: entry %d of %s is null", ErrInvalid, j, s.Name)
			}
			if strings.TrimSpace(e.Name) == "" {
				return fmt.Errorf("%w: entry %d of %s has no name", ErrInvalid, j, s.Name)
			}
		}
	}
	return nil
}

// EscapeKey escapes a top-level property name for use as a gjson/sjson path,
// so that names like "Preferences.General" address a single property.
func EscapeKey(key string) string {
	var b strings.Builder
	for _, r := range key {
		switch r {
		case '\\', '.', ':', '*', '?', '|', '#', '@', '!', '=', '<', '>', '%':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
