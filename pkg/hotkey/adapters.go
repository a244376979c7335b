package hotkey

import (
	"fmt"
	"strings"
	"unicode"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gdamore/tcell/v2"
)

// FromTea converts a bubbletea key message. ok is false for pastes and
// multi-rune input, which never form a chord.
func FromTea(msg tea.KeyMsg) (kp KeyPress, ok bool) {
	if msg.Paste {
		return KeyPress{}, false
	}
	if msg.Type == tea.KeyRunes {
		if len(msg.Runes) != 1 {
			return KeyPress{}, false
		}
		kp.Key = string(msg.Runes)
		if msg.Alt {
			kp.Mods |= ModAlt
		}
		kp.Mods |= shiftedRune(msg.Runes[0])
		return kp, true
	}

	s := msg.String()
	for {
		switch {
		case strings.HasPrefix(s, "ctrl+") && len(s) > len("ctrl+"):
			kp.Mods |= ModCtrl
			s = s[len("ctrl+"):]
			continue
		case strings.HasPrefix(s, "alt+") && len(s) > len("alt+"):
			kp.Mods |= ModAlt
			s = s[len("alt+"):]
			continue
		case strings.HasPrefix(s, "shift+") && len(s) > len("shift+"):
			kp.Mods |= ModShift
			s = s[len("shift+"):]
			continue
		}
		break
	}
	if s == "" {
		return KeyPress{}, false
	}
	kp.Key = s
	return kp, true
}

// shiftedRune reports Shift for an upper-case letter. Terminals deliver
// Shift+p as the rune "P" without a modifier flag.
func shiftedRune(r rune) Modifier {
	if unicode.IsUpper(r) {
		return ModShift
	}
	return ModNone
}

var tcellNames = map[tcell.Key]string{
	tcell.KeyTab:        "Tab",
	tcell.KeyEnter:      "Enter",
	tcell.KeyEscape:     "Escape",
	tcell.KeyBackspace:  "Backspace",
	tcell.KeyBackspace2: "Backspace",
	tcell.KeyDelete:     "Delete",
	tcell.KeyInsert:     "Insert",
	tcell.KeyHome:       "Home",
	tcell.KeyEnd:        "End",
	tcell.KeyPgUp:       "PageUp",
	tcell.KeyPgDn:       "PageDown",
	tcell.KeyUp:         "Up",
	tcell.KeyDown:       "Down",
	tcell.KeyLeft:       "Left",
	tcell.KeyRight:      "Right",
}

// FromTcell converts a tcell key event.
func FromTcell(ev *tcell.EventKey) KeyPress {
	var kp KeyPress
	mods := ev.Modifiers()
	if mods&tcell.ModCtrl != 0 {
		kp.Mods |= ModCtrl
	}
	if mods&tcell.ModAlt != 0 {
		kp.Mods |= ModAlt
	}
	if mods&tcell.ModShift != 0 {
		kp.Mods |= ModShift
	}

	k := ev.Key()
	switch {
	case k == tcell.KeyRune:
		kp.Key = string(ev.Rune())
		kp.Mods |= shiftedRune(ev.Rune())
	case k == tcell.KeyBacktab:
		kp.Key = "Tab"
		kp.Mods |= ModShift
	case tcellNames[k] != "":
		kp.Key = tcellNames[k]
	case k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ:
		kp.Key = string(rune('a' + int(k-tcell.KeyCtrlA)))
		kp.Mods |= ModCtrl
	case k >= tcell.KeyF1 && k <= tcell.KeyF24:
		kp.Key = fmt.Sprintf("F%d", int(k-tcell.KeyF1)+1)
	default:
		kp.Key = tcell.KeyNames[k]
	}
	return kp
}
