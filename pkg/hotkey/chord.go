// Package hotkey turns key presses into canonical chord strings and resolves
// them against the hotkey entries of a preferences tree.
package hotkey

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Modifier is a set of held modifier keys.
type Modifier uint8

const (
	ModNone Modifier = 0
	ModCtrl Modifier = 1 << iota
	ModAlt
	ModShift
)

// Has reports whether m contains mod.
func (m Modifier) Has(mod Modifier) bool {
	return m&mod != 0
}

// String returns the held modifiers in fixed Ctrl, Alt, Shift order.
func (m Modifier) String() string {
	var parts []string
	if m.Has(ModCtrl) {
		parts = append(parts, "Ctrl")
	}
	if m.Has(ModAlt) {
		parts = append(parts, "Alt")
	}
	if m.Has(ModShift) {
		parts = append(parts, "Shift")
	}
	return strings.Join(parts, "+")
}

// KeyPress is a single key event: a base key plus held modifiers.
type KeyPress struct {
	// Key names the base key, e.g. "p", "P", "enter", "F5".
	Key  string
	Mods Modifier
}

// String returns the canonical chord for the key press.
func (k KeyPress) String() string {
	return Chord(k)
}

// ErrInvalidChord is returned by ParseChord for unusable input.
var ErrInvalidChord = errors.New("hotkey: invalid chord")

// namedKeys maps lower-cased aliases to canonical key names.
var namedKeys = map[string]string{
	"enter":      "Enter",
	"return":     "Enter",
	"esc":        "Escape",
	"escape":     "Escape",
	"tab":        "Tab",
	"space":      "Space",
	"spacebar":   "Space",
	" ":          "Space",
	"backspace":  "Backspace",
	"bs":         "Backspace",
	"delete":     "Delete",
	"del":        "Delete",
	"insert":     "Insert",
	"ins":        "Insert",
	"home":       "Home",
	"end":        "End",
	"pgup":       "PageUp",
	"pageup":     "PageUp",
	"pgdown":     "PageDown",
	"pgdn":       "PageDown",
	"pagedown":   "PageDown",
	"up":         "Up",
	"uparrow":    "Up",
	"down":       "Down",
	"downarrow":  "Down",
	"left":       "Left",
	"leftarrow":  "Left",
	"right":      "Right",
	"rightarrow": "Right",
	"plus":       "Plus",
}

// KeyName returns the canonical name for a base key identifier.
// Single letters are upper-cased, named keys are TitleCase and function
// keys are written F1..F24. Unknown multi-character names are returned
// with their first letter upper-cased.
func KeyName(key string) string {
	if key == " " {
		return "Space"
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return ""
	}
	if utf8.RuneCountInString(key) == 1 {
		r, _ := utf8.DecodeRuneInString(key)
		if r == '+' {
			return "Plus"
		}
		return string(unicode.ToUpper(r))
	}

	lower := strings.ToLower(key)
	if name, ok := namedKeys[lower]; ok {
		return name
	}
	if n, ok := functionKey(lower); ok {
		return fmt.Sprintf("F%d", n)
	}

	r, size := utf8.DecodeRuneInString(key)
	return string(unicode.ToUpper(r)) + key[size:]
}

func functionKey(lower string) (int, bool) {
	if len(lower) < 2 || lower[0] != 'f' {
		return 0, false
	}
	n := 0
	for _, c := range lower[1:] {
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int(c-'0')
	}
	if n < 1 || n > 24 {
		return 0, false
	}
	return n, true
}

// Chord builds the canonical chord string for a key press: held modifiers
// in Ctrl, Alt, Shift order, then the key name, joined by "+".
// Only k.Mods are listed; the case of the key never adds Shift.
func Chord(k KeyPress) string {
	name := KeyName(k.Key)
	if name == "" {
		return ""
	}
	if prefix := k.Mods.String(); prefix != "" {
		return prefix + "+" + name
	}
	return name
}

// ParseChord parses a configured chord such as "ctrl+shift+p" or "Alt+F4".
// Modifier names are case-insensitive and may appear in any order.
func ParseChord(s string) (KeyPress, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return KeyPress{}, fmt.Errorf("%w: empty", ErrInvalidChord)
	}

	// A trailing "+" is the plus key itself, e.g. "Ctrl++".
	var parts []string
	if strings.HasSuffix(s, "++") {
		parts = append(strings.Split(strings.TrimSuffix(s, "++"), "+"), "+")
	} else if s == "+" {
		parts = []string{"+"}
	} else {
		parts = strings.Split(s, "+")
	}

	var kp KeyPress
	for i, part := range parts {
		p := strings.TrimSpace(part)
		last := i == len(parts)-1
		if last {
			if p == "" {
				return KeyPress{}, fmt.Errorf("%w: %q has no key", ErrInvalidChord, s)
			}
			kp.Key = p
			break
		}
		switch strings.ToLower(p) {
		case "ctrl", "control", "c":
			kp.Mods |= ModCtrl
		case "alt", "option", "opt", "a":
			kp.Mods |= ModAlt
		case "shift", "s":
			kp.Mods |= ModShift
		default:
			return KeyPress{}, fmt.Errorf("%w: unknown modifier %q in %q", ErrInvalidChord, p, s)
		}
	}

	// Configured letters are case-insensitive; only an explicit Shift counts.
	if utf8.RuneCountInString(kp.Key) == 1 {
		kp.Key = strings.ToLower(kp.Key)
	}
	return kp, nil
}

// Normalize returns the canonical form of a configured chord.
func Normalize(s string) (string, error) {
	kp, err := ParseChord(s)
	if err != nil {
		return "", err
	}
	return Chord(kp), nil
}
