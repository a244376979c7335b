// Package editor implements the interactive preferences editing session:
// section select, entry select and value edit, with unsaved-change tracking
// and an explicit save-or-discard exit.
package editor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/grovetools/prefs/pkg/logging"
	"github.com/grovetools/prefs/pkg/settings"
	"github.com/sirupsen/logrus"
)

// Persister writes a committed tree.
type Persister interface {
	SaveTree(ctx context.Context, tree *settings.Tree) error
}

// StateKind identifies a session state.
type StateKind int

const (
	SectionSelect StateKind = iota
	EntrySelect
	EntryEdit
	Exiting
)

// String returns the state name.
func (k StateKind) String() string {
	switch k {
	case SectionSelect:
		return "section-select"
	case EntrySelect:
		return "entry-select"
	case EntryEdit:
		return "entry-edit"
	case Exiting:
		return "exiting"
	default:
		return "unknown"
	}
}

// State is the current position in the session. Section and Entry point
// into the session's draft tree.
type State struct {
	Kind    StateKind
	Section *settings.Section
	Entry   *settings.Entry
}

// Outcome is how a session ended.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeSaved
	OutcomeDiscarded
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeSaved:
		return "saved"
	case OutcomeDiscarded:
		return "discarded"
	default:
		return "none"
	}
}

// Result describes a finished session.
type Result struct {
	Outcome Outcome
	// Tree is the committed tree on OutcomeSaved and the untouched
	// original tree otherwise.
	Tree *settings.Tree
	// Changed lists the names of entries whose value changed, in edit order.
	Changed []string
	// ReapplyTheme is set when a saved change touched a theme entry.
	ReapplyTheme bool
	// Theme is the saved value of the changed theme entry.
	Theme string
}

// Option configures a Session.
type Option func(*Session)

// WithLocalizer sets the display-name lookup.
func WithLocalizer(l Localizer) Option {
	return func(s *Session) {
		if l != nil {
			s.loc = l
		}
	}
}

// Session is a single editing session over a draft copy of a tree.
// Edits never touch the original tree; it is replaced by the caller only
// after a successful save.
type Session struct {
	original  *settings.Tree
	draft     *settings.Tree
	renderer  Renderer
	persister Persister
	loc       Localizer

	state   State
	dirty   bool
	changed []string
	outcome Outcome
	logger  *logrus.Entry
}

// NewSession starts a session in SectionSelect.
func NewSession(tree *settings.Tree, r Renderer, p Persister, opts ...Option) *Session {
	if tree == nil {
		tree = &settings.Tree{}
	}
	s := &Session{
		original:  tree,
		draft:     tree.Clone(),
		renderer:  r,
		persister: p,
		loc:       identity{},
		state:     State{Kind: SectionSelect},
		logger:    logging.NewLogger("editor"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns the current state.
func (s *Session) State() State { return s.state }

// Dirty reports whether the draft has unsaved changes.
func (s *Session) Dirty() bool { return s.dirty }

// Draft returns the tree being edited.
func (s *Session) Draft() *settings.Tree { return s.draft }

// Done reports whether the session reached Exiting.
func (s *Session) Done() bool { return s.state.Kind == Exiting }

// Run steps the session until it exits. A cancelled context or closed
// input aborts the session with OutcomeDiscarded and returns the error.
func (s *Session) Run(ctx context.Context) (Result, error) {
	for !s.Done() {
		if err := s.Step(ctx); err != nil {
			s.outcome = OutcomeDiscarded
			s.transition(State{Kind: Exiting})
			return s.Result(), err
		}
	}
	return s.Result(), nil
}

// Result reports the session outcome. It is meaningful once Done is true.
func (s *Session) Result() Result {
	res := Result{
		Outcome: s.outcome,
		Tree:    s.original,
		Changed: append([]string(nil), s.changed...),
	}
	if s.outcome != OutcomeSaved {
		return res
	}
	res.Tree = s.draft
	for _, name := range s.changed {
		if isThemeEntry(name) {
			res.ReapplyTheme = true
			if _, e := s.draft.Entry(name); e != nil {
				res.Theme = e.Value
			}
		}
	}
	return res
}

// Step performs one prompt and the transition it leads to. Prompt and
// persistence failures are reported through the renderer and leave the
// state unchanged; only context cancellation and io.EOF are returned.
func (s *Session) Step(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	switch s.state.Kind {
	case SectionSelect:
		return s.stepSectionSelect(ctx)
	case EntrySelect:
		return s.stepEntrySelect(ctx)
	case EntryEdit:
		return s.stepEntryEdit(ctx)
	default:
		return nil
	}
}

func (s *Session) stepSectionSelect(ctx context.Context) error {
	sections := s.draft.Ordered()
	choices := make([]string, 0, len(sections)+2)
	for _, sec := range sections {
		choices = append(choices, s.loc.Lookup(sec.Name))
	}

	var meta []string
	if s.dirty {
		meta = []string{KeySaveAndExit, KeyCancel}
	} else {
		meta = []string{KeyExit}
	}
	for _, key := range meta {
		choices = append(choices, Text(s.loc, key))
	}

	idx, err := s.choose(ctx, Text(s.loc, KeySelectSection), choices)
	if errors.Is(err, ErrDismissed) {
		if s.dirty {
			s.renderer.Notify(LevelWarning, Text(s.loc, KeyUnsaved))
			return nil
		}
		idx, err = len(choices)-1, nil // Exit
	}
	if err != nil {
		return s.promptFailed(err)
	}

	if idx < len(sections) {
		s.transition(State{Kind: EntrySelect, Section: sections[idx]})
		return nil
	}

	switch meta[idx-len(sections)] {
	case KeySaveAndExit:
		s.save(ctx)
	case KeyCancel:
		s.outcome = OutcomeDiscarded
		s.renderer.Notify(LevelInfo, Text(s.loc, KeyDiscarded))
		s.transition(State{Kind: Exiting})
	case KeyExit:
		s.outcome = OutcomeDiscarded
		s.transition(State{Kind: Exiting})
	}
	return nil
}

func (s *Session) save(ctx context.Context) {
	var err error
	if s.persister == nil {
		err = errors.New("no persister configured")
	} else {
		err = s.persister.SaveTree(ctx, s.draft)
	}
	if err != nil {
		s.logger.WithFields(logrus.Fields{"error": err, "changed": s.changed}).Error("Failed to save preferences")
		s.renderer.Notify(LevelError, fmt.Sprintf("%s: %v", Text(s.loc, KeySaveFailed), err))
		return
	}

	s.dirty = false
	s.outcome = OutcomeSaved
	s.logger.WithField("changed", s.changed).Info("Preferences saved")
	s.renderer.Notify(LevelSuccess, Text(s.loc, KeySaved))
	s.transition(State{Kind: Exiting})
}

func (s *Session) stepEntrySelect(ctx context.Context) error {
	sec := s.state.Section
	rows := make([]Row, 0, len(sec.Entries))
	choices := make([]string, 0, len(sec.Entries)+1)
	for _, e := range sec.Entries {
		label := s.loc.Lookup(e.Name)
		rows = append(rows, Row{Name: label, Value: e.Value, Options: e.Options})
		choices = append(choices, label)
	}
	choices = append(choices, Text(s.loc, KeyBack))

	s.renderer.Table(s.loc.Lookup(sec.Name), rows)

	idx, err := s.choose(ctx, Text(s.loc, KeySelectEntry), choices)
	if errors.Is(err, ErrDismissed) {
		idx, err = len(sec.Entries), nil // Back
	}
	if err != nil {
		return s.promptFailed(err)
	}

	if idx == len(sec.Entries) {
		s.transition(State{Kind: SectionSelect})
		return nil
	}
	s.transition(State{Kind: EntryEdit, Section: sec, Entry: sec.Entries[idx]})
	return nil
}

func (s *Session) stepEntryEdit(ctx context.Context) error {
	sec, entry := s.state.Section, s.state.Entry
	title := fmt.Sprintf("%s: %s", Text(s.loc, KeyEditValue), s.loc.Lookup(entry.Name))
	back := State{Kind: EntrySelect, Section: sec}

	var newValue string
	if entry.HasOptions() {
		options := entry.Choices()
		choices := append(append([]string(nil), options...), Text(s.loc, KeyCancel))

		idx, err := s.choose(ctx, title, choices)
		if errors.Is(err, ErrDismissed) {
			s.transition(back)
			return nil
		}
		if err != nil {
			return s.promptFailed(err)
		}
		if idx == len(options) {
			s.transition(back)
			return nil
		}
		newValue = options[idx]
	} else {
		v, err := s.renderer.Input(ctx, title, entry.Value)
		if errors.Is(err, ErrDismissed) {
			s.transition(back)
			return nil
		}
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return s.promptFailed(fmt.Errorf("%w: %w", ErrPrompt, err))
		}
		newValue = v
	}

	if newValue != entry.Value {
		s.logger.WithFields(logrus.Fields{"entry": entry.Name, "from": entry.Value, "to": newValue}).Debug("Entry changed")
		entry.Value = newValue
		s.dirty = true
		s.markChanged(entry.Name)
	}
	s.transition(back)
	return nil
}

// choose wraps Renderer.Choose, validating the returned index.
func (s *Session) choose(ctx context.Context, title string, choices []string) (int, error) {
	idx, err := s.renderer.Choose(ctx, title, choices)
	if err != nil {
		if errors.Is(err, ErrDismissed) {
			return 0, err
		}
		if ctx.Err() != nil {
			return 0, ctx.Err()
		}
		return 0, fmt.Errorf("%w: %w", ErrPrompt, err)
	}
	if idx < 0 || idx >= len(choices) {
		return 0, fmt.Errorf("%w: choice %d out of range", ErrPrompt, idx)
	}
	return idx, nil
}

// promptFailed surfaces a prompt error and keeps the current state.
// Context errors and closed input end the session instead.
func (s *Session) promptFailed(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) || errors.Is(err, io.EOF) {
		return err
	}
	s.logger.WithFields(logrus.Fields{"state": s.state.Kind.String(), "error": err}).Warn("Prompt failed")
	s.renderer.Notify(LevelError, err.Error())
	return nil
}

func (s *Session) transition(next State) {
	s.logger.WithFields(logrus.Fields{"from": s.state.Kind.String(), "to": next.Kind.String()}).Debug("Transition")
	s.state = next
}

func (s *Session) markChanged(name string) {
	for _, n := range s.changed {
		if n == name {
			return
		}
	}
	s.changed = append(s.changed, name)
}

func isThemeEntry(name string) bool {
	return strings.HasSuffix(strings.ToLower(name), ".theme")
}
