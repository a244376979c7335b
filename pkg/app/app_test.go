package app

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/grovetools/prefs/pkg/editor"
	"github.com/grovetools/prefs/pkg/hotkey"
	"github.com/grovetools/prefs/pkg/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type keyQueue struct {
	keys []hotkey.KeyPress
	read int
	err  error
}

func (q *keyQueue) ReadKey(ctx context.Context) (hotkey.KeyPress, error) {
	if err := ctx.Err(); err != nil {
		return hotkey.KeyPress{}, err
	}
	if q.read >= len(q.keys) {
		if q.err != nil {
			return hotkey.KeyPress{}, q.err
		}
		return hotkey.KeyPress{}, io.EOF
	}
	kp := q.keys[q.read]
	q.read++
	return kp, nil
}

func chord(t *testing.T, s string) hotkey.KeyPress {
	t.Helper()
	kp, err := hotkey.ParseChord(s)
	require.NoError(t, err)
	return kp
}

type table struct {
	title string
	rows  []editor.Row
}

// fakeRenderer picks choices by label from a queue.
type fakeRenderer struct {
	picks   []string
	tables  []table
	notices []string
}

func (r *fakeRenderer) Table(title string, rows []editor.Row) {
	r.tables = append(r.tables, table{title, rows})
}

func (r *fakeRenderer) Choose(_ context.Context, _ string, choices []string) (int, error) {
	if len(r.picks) == 0 {
		return 0, io.EOF
	}
	want := r.picks[0]
	r.picks = r.picks[1:]
	for i, c := range choices {
		if c == want {
			return i, nil
		}
	}
	return 0, errors.New("no such choice: " + want)
}

func (r *fakeRenderer) Input(context.Context, string, string) (string, error) {
	return "", io.EOF
}

func (r *fakeRenderer) Notify(_ editor.Level, msg string) {
	r.notices = append(r.notices, msg)
}

type fakePersister struct{ calls int }

func (p *fakePersister) SaveTree(context.Context, *settings.Tree) error {
	p.calls++
	return nil
}

type fakeTheme struct {
	applied []string
	err     error
}

func (f *fakeTheme) Apply(name string) error {
	f.applied = append(f.applied, name)
	return f.err
}

func hostTree() *settings.Tree {
	return &settings.Tree{Sections: []*settings.Section{
		{Name: "Preferences.HotKeys", Entries: []*settings.Entry{
			{Name: "Preferences.HotKeys.Exit", Value: "Ctrl+Q"},
			{Name: "Preferences.HotKeys.OpenPreferences", Value: "Ctrl+P"},
			{Name: "Preferences.HotKeys.ShowHotKeys", Value: "Ctrl+H"},
			{Name: "Preferences.HotKeys.Frobnicate", Value: "Ctrl+F"},
		}},
		{Name: "Preferences.General", Order: 1, Entries: []*settings.Entry{
			{Name: "Preferences.General.Theme", Value: "Dark", Options: []string{"Light", "Dark"}},
		}},
	}}
}

func TestRun_ShutdownStopsLoop(t *testing.T) {
	keys := &keyQueue{keys: []hotkey.KeyPress{chord(t, "ctrl+q"), chord(t, "ctrl+h")}}
	a := New(hostTree(), keys, &fakeRenderer{}, &fakePersister{})

	require.NoError(t, a.Run(context.Background()))
	assert.Equal(t, 1, keys.read, "keys after Exit are not read")
}

func TestRun_UnknownActionContinues(t *testing.T) {
	keys := &keyQueue{keys: []hotkey.KeyPress{chord(t, "ctrl+f"), chord(t, "ctrl+z"), chord(t, "ctrl+q")}}
	r := &fakeRenderer{}
	a := New(hostTree(), keys, r, &fakePersister{})

	require.NoError(t, a.Run(context.Background()))
	assert.Equal(t, 3, keys.read)
	assert.Empty(t, r.notices, "unknown actions and unbound keys are only logged")
}

func TestRun_EndOfInput(t *testing.T) {
	keys := &keyQueue{keys: []hotkey.KeyPress{chord(t, "ctrl+z")}}
	a := New(hostTree(), keys, &fakeRenderer{}, &fakePersister{})
	assert.NoError(t, a.Run(context.Background()))
}

func TestRun_KeySourceError(t *testing.T) {
	boom := errors.New("terminal lost")
	a := New(hostTree(), &keyQueue{err: boom}, &fakeRenderer{}, &fakePersister{})
	assert.ErrorIs(t, a.Run(context.Background()), boom)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	a = New(hostTree(), &keyQueue{}, &fakeRenderer{}, &fakePersister{})
	assert.ErrorIs(t, a.Run(ctx), context.Canceled)
}

func TestRun_ShowHotkeys(t *testing.T) {
	tree := hostTree()
	_, exit := tree.Entry("Preferences.HotKeys.Exit")
	exit.Value = "ctrl+q"

	keys := &keyQueue{keys: []hotkey.KeyPress{chord(t, "ctrl+h")}}
	r := &fakeRenderer{}
	a := New(tree, keys, r, &fakePersister{})

	require.NoError(t, a.Run(context.Background()))
	require.Len(t, r.tables, 1)
	assert.Equal(t, "Hotkeys", r.tables[0].title)
	require.Len(t, r.tables[0].rows, 4)
	assert.Equal(t, editor.Row{Name: "Preferences.HotKeys.Exit", Value: "Ctrl+Q"}, r.tables[0].rows[0])
}

func TestRun_OpenEditorSavesAndReappliesTheme(t *testing.T) {
	tree := hostTree()
	keys := &keyQueue{keys: []hotkey.KeyPress{chord(t, "ctrl+p"), chord(t, "ctrl+q")}}
	r := &fakeRenderer{picks: []string{
		"Preferences.General",
		"Preferences.General.Theme",
		"Light",
		"Back",
		"Save & Exit",
	}}
	p := &fakePersister{}
	th := &fakeTheme{}
	a := New(tree, keys, r, p, WithTheme(th))

	require.NoError(t, a.Run(context.Background()))

	assert.Equal(t, 1, p.calls)
	assert.Equal(t, []string{"Dark", "Light"}, th.applied, "startup theme, then the saved one")
	assert.Equal(t, "Light", ThemeValue(a.Tree()))
	assert.Equal(t, "Dark", ThemeValue(tree), "committed tree is replaced, not mutated")
	assert.Equal(t, 2, keys.read)
}

func TestOpenEditor_DiscardKeepsTree(t *testing.T) {
	tree := hostTree()
	r := &fakeRenderer{picks: []string{
		"Preferences.General",
		"Preferences.General.Theme",
		"Light",
		"Back",
		"Cancel",
	}}
	th := &fakeTheme{}
	a := New(tree, &keyQueue{}, r, &fakePersister{}, WithTheme(th))

	res, err := a.OpenEditor(context.Background())
	require.NoError(t, err)
	assert.Equal(t, editor.OutcomeDiscarded, res.Outcome)
	assert.Same(t, tree, a.Tree())
	assert.Empty(t, th.applied)
}

func TestThemeApplyFailureNotifies(t *testing.T) {
	r := &fakeRenderer{}
	th := &fakeTheme{err: errors.New("no such theme")}
	a := New(hostTree(), &keyQueue{}, r, &fakePersister{}, WithTheme(th))

	require.NoError(t, a.Run(context.Background()))
	assert.Equal(t, []string{"Dark"}, th.applied)
	require.Len(t, r.notices, 1)
	assert.Contains(t, r.notices[0], "Dark")
}

func TestEditorEndOfInputStopsHost(t *testing.T) {
	keys := &keyQueue{keys: []hotkey.KeyPress{chord(t, "ctrl+p"), chord(t, "ctrl+q")}}
	a := New(hostTree(), keys, &fakeRenderer{}, &fakePersister{})

	require.NoError(t, a.Run(context.Background()))
	assert.Equal(t, 1, keys.read)
}

func TestHotkeyRows_Localized(t *testing.T) {
	loc := mapLoc{"Preferences.HotKeys.Exit": "Quit"}
	rows := HotkeyRows(hostTree(), loc)
	require.Len(t, rows, 4)
	assert.Equal(t, "Quit", rows[0].Name)
	assert.Equal(t, "Ctrl+P", rows[1].Value)
}

type mapLoc map[string]string

func (m mapLoc) Lookup(name string) string {
	if v, ok := m[name]; ok {
		return v
	}
	return name
}
