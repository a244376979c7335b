package editor

import (
	"context"
	"errors"
)

var (
	// ErrPrompt wraps failures of the underlying input layer during a prompt.
	ErrPrompt = errors.New("editor: prompt failed")

	// ErrDismissed is returned by a Renderer when the user dismisses a prompt
	// (e.g. presses Esc). The session treats it as the prompt's back/cancel choice.
	ErrDismissed = errors.New("editor: prompt dismissed")
)

// Level is the severity of a transient message.
type Level int

const (
	LevelInfo Level = iota
	LevelSuccess
	LevelWarning
	LevelError
)

// String returns the lower-case level name.
func (l Level) String() string {
	switch l {
	case LevelSuccess:
		return "success"
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	default:
		return "info"
	}
}

// Row is one line of a settings table.
type Row struct {
	Name    string
	Value   string
	Options []string
}

// Renderer is the presentation capability the session drives.
// Choose and Input block until the user answers.
type Renderer interface {
	// Table displays a titled table of rows.
	Table(title string, rows []Row)
	// Choose presents a single-choice prompt and returns the chosen index.
	Choose(ctx context.Context, title string, choices []string) (int, error)
	// Input presents a free-text prompt pre-filled with initial.
	Input(ctx context.Context, title, initial string) (string, error)
	// Notify shows a transient message.
	Notify(level Level, msg string)
}

// Localizer maps a name to a display string. A miss returns the name.
type Localizer interface {
	Lookup(name string) string
}

type identity struct{}

func (identity) Lookup(name string) string { return name }

// Message keys looked up through the Localizer. When the localizer has no
// entry for a key, the English default below is used.
const (
	KeySelectSection = "Preferences.Menu.SelectSection"
	KeySelectEntry   = "Preferences.Menu.SelectEntry"
	KeyEditValue     = "Preferences.Menu.EditValue"
	KeySaveAndExit   = "Preferences.Menu.SaveAndExit"
	KeyCancel        = "Preferences.Menu.Cancel"
	KeyExit          = "Preferences.Menu.Exit"
	KeyBack          = "Preferences.Menu.Back"
	KeySaved         = "Preferences.Menu.Saved"
	KeySaveFailed    = "Preferences.Menu.SaveFailed"
	KeyDiscarded     = "Preferences.Menu.Discarded"
	KeyUnsaved       = "Preferences.Menu.Unsaved"
	KeyHotkeys       = "Preferences.Menu.HotKeys"
)

var defaultText = map[string]string{
	KeySelectSection: "Preferences",
	KeySelectEntry:   "Select a setting",
	KeyEditValue:     "Edit value",
	KeySaveAndExit:   "Save & Exit",
	KeyCancel:        "Cancel",
	KeyExit:          "Exit",
	KeyBack:          "Back",
	KeySaved:         "Preferences saved",
	KeySaveFailed:    "Failed to save preferences",
	KeyDiscarded:     "Changes discarded",
	KeyUnsaved:       "You have unsaved changes",
	KeyHotkeys:       "Hotkeys",
}

// Text returns the display string for a message key.
func Text(loc Localizer, key string) string {
	if loc == nil {
		loc = identity{}
	}
	if s := loc.Lookup(key); s != "" && s != key {
		return s
	}
	if s, ok := defaultText[key]; ok {
		return s
	}
	return key
}
