package tui

import (
	"bytes"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	coretheme "github.com/grovetools/core/tui/theme"
	"github.com/grovetools/prefs/pkg/editor"
	"github.com/grovetools/prefs/pkg/hotkey"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func keyMsg(t tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: t} }

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func TestChooseModel_Select(t *testing.T) {
	th := DefaultTheme
	var m tea.Model = newChooseModel(&th, "Pick", []string{"Light", "Dark", "Cancel"}, 0)

	m, _ = m.Update(keyMsg(tea.KeyDown))
	m, cmd := m.Update(keyMsg(tea.KeyEnter))
	require.NotNil(t, cmd, "select quits the program")

	cm := m.(chooseModel)
	assert.Equal(t, 1, cm.chosen)
	assert.False(t, cm.dismissed)
	assert.Empty(t, cm.View())
}

func TestChooseModel_InitialSelection(t *testing.T) {
	th := DefaultTheme
	var m tea.Model = newChooseModel(&th, "Pick", []string{"a", "b", "c"}, 2)
	m, _ = m.Update(keyMsg(tea.KeyEnter))
	assert.Equal(t, 2, m.(chooseModel).chosen)
}

func TestChooseModel_Dismiss(t *testing.T) {
	for _, k := range []tea.KeyType{tea.KeyEsc, tea.KeyCtrlC} {
		th := DefaultTheme
		var m tea.Model = newChooseModel(&th, "Pick", []string{"a", "b"}, 0)
		m, cmd := m.Update(keyMsg(k))
		require.NotNil(t, cmd)
		cm := m.(chooseModel)
		assert.True(t, cm.dismissed, "key %v", k)
		assert.Equal(t, -1, cm.chosen)
	}
}

func TestChooseModel_BaseKeys(t *testing.T) {
	th := DefaultTheme
	var m tea.Model = newChooseModel(&th, "Pick", []string{"a", "b", "c"}, 0)

	m, _ = m.Update(runes("q"))
	assert.False(t, m.(chooseModel).dismissed, "q is not a quit key in a prompt")

	m, _ = m.Update(runes("j"))
	m, _ = m.Update(runes("j"))
	m, _ = m.Update(runes("k"))
	m, _ = m.Update(keyMsg(tea.KeyEnter))
	assert.Equal(t, 1, m.(chooseModel).chosen)
}

func TestChooseModel_ViewShowsChoices(t *testing.T) {
	th := DefaultTheme
	m := newChooseModel(&th, "Preferences", []string{"General", "HotKeys"}, 0)
	view := m.View()
	assert.Contains(t, view, "General")
	assert.Contains(t, view, "HotKeys")
	assert.Contains(t, view, "select")
}

func TestInputModel(t *testing.T) {
	th := DefaultTheme
	var m tea.Model = newInputModel(&th, "User name", "ali")

	m, _ = m.Update(runes("ce"))
	m, cmd := m.Update(keyMsg(tea.KeyEnter))
	require.NotNil(t, cmd)

	im := m.(inputModel)
	assert.True(t, im.done)
	assert.Equal(t, "alice", im.Value())
}

func TestInputModel_Dismiss(t *testing.T) {
	th := DefaultTheme
	var m tea.Model = newInputModel(&th, "User name", "alice")
	m, _ = m.Update(keyMsg(tea.KeyEsc))
	assert.True(t, m.(inputModel).dismissed)
}

func TestInputModel_TypesPromptKeys(t *testing.T) {
	th := DefaultTheme
	var m tea.Model = newInputModel(&th, "Answer", "")

	m, _ = m.Update(runes("q"))
	m, _ = m.Update(runes("y"))
	im := m.(inputModel)
	assert.False(t, im.done)
	assert.False(t, im.dismissed)
	assert.Equal(t, "qy", im.Value())
}

func TestKeyModel(t *testing.T) {
	th := DefaultTheme
	var m tea.Model = keyModel{hint: "press a key", theme: &th}
	assert.Contains(t, m.View(), "press a key")

	m, cmd := m.Update(keyMsg(tea.KeyCtrlQ))
	require.NotNil(t, cmd)
	km := m.(keyModel)
	assert.True(t, km.got)
	assert.Equal(t, "Ctrl+Q", km.press.String())

	m, _ = keyModel{theme: &th}.Update(runes("h"))
	assert.Equal(t, hotkey.KeyPress{Key: "h"}, m.(keyModel).press)
}

func TestKeyModel_CtrlCInterrupts(t *testing.T) {
	th := DefaultTheme
	m, cmd := keyModel{theme: &th}.Update(keyMsg(tea.KeyCtrlC))
	require.NotNil(t, cmd)
	assert.True(t, m.(keyModel).interrupted)
	assert.False(t, m.(keyModel).got)
}

func TestRenderTable(t *testing.T) {
	long := strings.Repeat("x", 80)
	out := RenderTable(DefaultTheme, "General", []editor.Row{
		{Name: "Theme", Value: "Dark", Options: []string{"Light", "Dark"}},
		{Name: "Path", Value: long},
		{Name: "Empty"},
	})

	assert.Contains(t, out, "General")
	assert.Contains(t, out, "OPTIONS")
	assert.Contains(t, out, "Light, Dark")
	assert.Contains(t, out, "(unset)")
	assert.Contains(t, out, "…")
	assert.NotContains(t, out, long)

	plain := RenderTable(DefaultTheme, "", []editor.Row{{Name: "Exit", Value: "Ctrl+Q"}})
	assert.NotContains(t, plain, "OPTIONS")
	assert.Contains(t, plain, "Ctrl+Q")
}

func TestRenderer_ApplyAndNotify(t *testing.T) {
	var out bytes.Buffer
	r := NewRenderer(WithOutput(&out), WithTheme("light"))
	assert.Equal(t, "Light", r.Theme().Name)

	require.NoError(t, r.Apply("DARK"))
	assert.Equal(t, "Dark", r.Theme().Name)
	assert.Error(t, r.Apply("Neon"))
	assert.Equal(t, "Dark", r.Theme().Name)

	r.Notify(editor.LevelSuccess, "Preferences saved")
	r.Notify(editor.LevelError, "Failed")
	assert.Contains(t, out.String(), "Preferences saved")
	assert.Contains(t, out.String(), coretheme.IconError+" Failed")

	r.Table("HotKeys", []editor.Row{{Name: "Exit", Value: "Ctrl+Q"}})
	assert.Contains(t, out.String(), "Ctrl+Q")
}

func TestLookupTheme(t *testing.T) {
	for _, name := range ThemeNames() {
		th, ok := LookupTheme(name)
		require.True(t, ok, name)
		assert.Equal(t, name, th.Name)
	}
	_, ok := LookupTheme("unknown")
	assert.False(t, ok)
}
