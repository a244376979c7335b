// Package i18n provides display-name catalogs for settings, sections and
// menu items. Catalog files may be YAML, TOML or JSON, flat or nested;
// nested keys are joined with dots.
package i18n

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/grovetools/prefs/pkg/logging"
	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"
)

var (
	// ErrFormat is returned for a catalog file with an unrecognised extension.
	ErrFormat = errors.New("i18n: unsupported catalog format")
	// ErrParse is returned when a catalog file cannot be decoded.
	ErrParse = errors.New("i18n: invalid catalog")
)

// Format is a catalog file encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

// FormatFor picks a format from a file extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrFormat, path)
	}
}

// Catalog maps names to display strings. The zero value and a nil
// *Catalog are empty catalogs.
type Catalog struct {
	entries map[string]string
}

// New creates a catalog from a flat name -> text map.
func New(entries map[string]string) *Catalog {
	c := &Catalog{entries: make(map[string]string, len(entries))}
	for k, v := range entries {
		c.entries[k] = v
	}
	return c
}

// Lookup returns the display string for name, or name itself when the
// catalog has no entry for it.
func (c *Catalog) Lookup(name string) string {
	if c == nil {
		return name
	}
	if v, ok := c.entries[name]; ok && v != "" {
		return v
	}
	return name
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.entries)
}

// Names returns the catalog keys in sorted order.
func (c *Catalog) Names() []string {
	if c == nil {
		return nil
	}
	names := make([]string, 0, len(c.entries))
	for k := range c.entries {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Merge copies the entries of other into c, overwriting existing names.
func (c *Catalog) Merge(other *Catalog) {
	if other == nil {
		return
	}
	if c.entries == nil {
		c.entries = make(map[string]string, len(other.entries))
	}
	for k, v := range other.entries {
		c.entries[k] = v
	}
}

// Load reads a catalog file, choosing the decoder by extension.
func Load(path string) (*Catalog, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %w", path, err)
	}
	c, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	logging.NewLogger("i18n").WithField("path", path).Debugf("Loaded %d catalog entries", c.Len())
	return c, nil
}

// Parse decodes catalog data in the given format.
func Parse(data []byte, format Format) (*Catalog, error) {
	c := &Catalog{entries: make(map[string]string)}

	switch format {
	case FormatYAML:
		var m map[string]interface{}
		if err := yaml.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrParse, err)
		}
		flatten(c.entries, "", m)
	case FormatTOML:
		var m map[string]interface{}
		if _, err := toml.Decode(string(data), &m); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrParse, err)
		}
		flatten(c.entries, "", m)
	case FormatJSON:
		if !gjson.ValidBytes(data) {
			return nil, fmt.Errorf("%w: malformed JSON", ErrParse)
		}
		root := gjson.ParseBytes(data)
		if !root.IsObject() {
			return nil, fmt.Errorf("%w: root is not an object", ErrParse)
		}
		flattenJSON(c.entries, "", root)
	default:
		return nil, fmt.Errorf("%w: %q", ErrFormat, format)
	}
	return c, nil
}

func join(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

func flatten(out map[string]string, prefix string, m map[string]interface{}) {
	for k, v := range m {
		name := join(prefix, k)
		switch val := v.(type) {
		case map[string]interface{}:
			flatten(out, name, val)
		case nil:
		default:
			out[name] = fmt.Sprint(val)
		}
	}
}

func flattenJSON(out map[string]string, prefix string, obj gjson.Result) {
	obj.ForEach(func(key, value gjson.Result) bool {
		name := join(prefix, key.String())
		switch {
		case value.IsObject():
			flattenJSON(out, name, value)
		case value.Type == gjson.Null:
		default:
			out[name] = value.String()
		}
		return true
	})
}
