package hotkey

import (
	"sort"
	"strings"

	"github.com/grovetools/prefs/pkg/logging"
	"github.com/grovetools/prefs/pkg/settings"
	"github.com/sirupsen/logrus"
)

// Resolver maps key presses to action names by matching the canonical chord
// against entry values in a preferences tree.
type Resolver struct {
	logger *logrus.Entry
}

// NewResolver creates a Resolver.
func NewResolver() *Resolver {
	return &Resolver{logger: logging.NewLogger("hotkey")}
}

// Resolve returns the name of the entry whose value equals the chord of kp.
// Sections and entries are scanned in stored order and the first exact
// (case-sensitive) match wins when several entries share a chord.
// ok is false when nothing matches.
func (r *Resolver) Resolve(kp KeyPress, tree *settings.Tree) (action string, ok bool) {
	chord := Chord(kp)
	if chord == "" {
		return "", false
	}

	tree.Walk(func(_ *settings.Section, e *settings.Entry) bool {
		if e.Value != "" && e.Value == chord {
			action = e.Name
			ok = true
			return false
		}
		return true
	})

	if r.logger != nil {
		r.logger.WithFields(logrus.Fields{"chord": chord, "action": action, "matched": ok}).Debug("Resolved key press")
	}
	return action, ok
}

// Binding is a hotkey entry as listed to the user.
type Binding struct {
	Section string
	Action  string
	Chord   string
}

// IsHotkeySection reports whether a section holds hotkey entries,
// i.e. its last name segment is "HotKeys" (case-insensitive).
func IsHotkeySection(name string) bool {
	seg := name
	if i := strings.LastIndex(name, "."); i >= 0 {
		seg = name[i+1:]
	}
	return strings.EqualFold(seg, "HotKeys")
}

// Bindings lists the entries of all hotkey sections in stored order.
func Bindings(tree *settings.Tree) []Binding {
	var out []Binding
	tree.Walk(func(s *settings.Section, e *settings.Entry) bool {
		if IsHotkeySection(s.Name) {
			out = append(out, Binding{Section: s.Name, Action: e.Name, Chord: e.Value})
		}
		return true
	})
	return out
}

// ProblemKind classifies a hotkey configuration problem.
type ProblemKind string

const (
	ProblemDuplicate    ProblemKind = "duplicate"
	ProblemNonCanonical ProblemKind = "non-canonical"
	ProblemInvalid      ProblemKind = "invalid"
	ProblemReserved     ProblemKind = "reserved"
)

// ReservedChords are taken by the terminal front end before resolution:
// Ctrl+C always quits the key reader.
var ReservedChords = []string{"Ctrl+C"}

func isReserved(chord string) bool {
	for _, r := range ReservedChords {
		if r == chord {
			return true
		}
	}
	return false
}

// Problem is a single finding from Validate.
type Problem struct {
	Kind    ProblemKind
	Chord   string
	Actions []string
	// Suggestion holds the canonical chord for non-canonical values.
	Suggestion string
}

// Validate inspects the hotkey bindings of a tree. It reports chords bound to
// more than one action, values that would never match because they are
// not written in canonical form, and reserved chords. Empty values are
// unbound and skipped.
func Validate(tree *settings.Tree) []Problem {
	var problems []Problem
	usage := make(map[string][]string)

	for _, b := range Bindings(tree) {
		if b.Chord == "" {
			continue
		}
		usage[b.Chord] = append(usage[b.Chord], b.Action)

		canonical, err := Normalize(b.Chord)
		if err != nil {
			problems = append(problems, Problem{Kind: ProblemInvalid, Chord: b.Chord, Actions: []string{b.Action}})
			continue
		}
		if canonical != b.Chord {
			problems = append(problems, Problem{
				Kind:       ProblemNonCanonical,
				Chord:      b.Chord,
				Actions:    []string{b.Action},
				Suggestion: canonical,
			})
		}
		if isReserved(canonical) {
			problems = append(problems, Problem{Kind: ProblemReserved, Chord: b.Chord, Actions: []string{b.Action}})
		}
	}

	for chord, actions := range usage {
		if len(actions) > 1 {
			problems = append(problems, Problem{Kind: ProblemDuplicate, Chord: chord, Actions: actions})
		}
	}

	sort.SliceStable(problems, func(i, j int) bool {
		if problems[i].Kind != problems[j].Kind {
			return problems[i].Kind < problems[j].Kind
		}
		return problems[i].Chord < problems[j].Chord
	})
	return problems
}
