// Package document rewrites a single top-level property of a JSON
// configuration document, leaving every other property in place.
package document

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/grovetools/prefs/pkg/settings"
	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
)

var (
	// ErrIO is returned when the document cannot be read or written.
	ErrIO = errors.New("document: io failure")

	// ErrParse is returned when the document or the new value is not valid JSON.
	ErrParse = errors.New("document: parse failure")
)

var prettyOptions = &pretty.Options{
	Width:    80,
	Prefix:   "",
	Indent:   "  ",
	SortKeys: false,
}

// Update replaces the top-level property key of doc with the JSON
// serialization of value and returns the new document, pretty-printed.
// An empty key replaces the whole document. An empty doc is treated as {}.
func Update(doc []byte, key string, value any) ([]byte, error) {
	raw, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to serialize value for %q: %w", ErrParse, key, err)
	}

	if key == "" {
		return pretty.PrettyOptions(raw, prettyOptions), nil
	}

	if len(bytes.TrimSpace(doc)) == 0 {
		doc = []byte("{}")
	}
	if !gjson.ValidBytes(doc) {
		return nil, fmt.Errorf("%w: document is not valid JSON", ErrParse)
	}
	if !gjson.ParseBytes(doc).IsObject() {
		return nil, fmt.Errorf("%w: document root is not an object", ErrParse)
	}

	out, err := sjson.SetRawBytes(doc, settings.EscapeKey(key), raw)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to set %q: %w", ErrParse, key, err)
	}
	return pretty.PrettyOptions(out, prettyOptions), nil
}
