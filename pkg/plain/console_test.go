package plain

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/grovetools/prefs/pkg/editor"
	"github.com/grovetools/prefs/pkg/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newConsole(input string) (*Console, *bytes.Buffer) {
	var out bytes.Buffer
	return New(strings.NewReader(input), &out), &out
}

func TestChoose(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int
	}{
		{"by number", "2\n", 1},
		{"by label", "dark\n", 1},
		{"retry after invalid", "7\nnope\n1\n", 0},
		{"last line without newline", "3", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, out := newConsole(tt.input)
			idx, err := c.Choose(context.Background(), "Theme", []string{"Light", "Dark", "Cancel"})
			require.NoError(t, err)
			assert.Equal(t, tt.expected, idx)
			assert.Contains(t, out.String(), "  2) Dark")
		})
	}
}

func TestChoose_DismissAndEOF(t *testing.T) {
	for _, input := range []string{"\n", "-\n"} {
		c, _ := newConsole(input)
		_, err := c.Choose(context.Background(), "t", []string{"a"})
		assert.ErrorIs(t, err, editor.ErrDismissed)
	}

	c, _ := newConsole("")
	_, err := c.Choose(context.Background(), "t", []string{"a"})
	assert.ErrorIs(t, err, io.EOF)
}

func TestChoose_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c, _ := newConsole("1\n")
	_, err := c.Choose(ctx, "t", []string{"a"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestInput(t *testing.T) {
	c, out := newConsole("bob\n\n\"\"\n-\n")
	ctx := context.Background()

	v, err := c.Input(ctx, "User name", "alice")
	require.NoError(t, err)
	assert.Equal(t, "bob", v)
	assert.Contains(t, out.String(), "User name [alice]: ")

	v, err = c.Input(ctx, "User name", "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", v, "empty line keeps the current value")

	v, err = c.Input(ctx, "User name", "alice")
	require.NoError(t, err)
	assert.Equal(t, "", v, "a literal \"\" clears the value")

	_, err = c.Input(ctx, "User name", "alice")
	assert.ErrorIs(t, err, editor.ErrDismissed)
}

func TestReadKey(t *testing.T) {
	c, out := newConsole("\nnot a chord+\nctrl+q\nF5\n")
	ctx := context.Background()

	kp, err := c.ReadKey(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Ctrl+Q", kp.String())
	assert.Contains(t, out.String(), "Not a key chord")

	kp, err = c.ReadKey(ctx)
	require.NoError(t, err)
	assert.Equal(t, "F5", kp.String())

	_, err = c.ReadKey(ctx)
	assert.ErrorIs(t, err, io.EOF)
}

func TestNotifyAndTable(t *testing.T) {
	c, out := newConsole("")
	c.Notify(editor.LevelWarning, "You have unsaved changes")
	c.Table("General", []editor.Row{{Name: "Theme", Value: "Dark"}})

	assert.Contains(t, out.String(), "[warning] You have unsaved changes")
	assert.Contains(t, out.String(), "Theme")
	assert.Contains(t, out.String(), "Dark")
}

func TestSessionOverConsole(t *testing.T) {
	tree := sampleTree()
	// General, Theme, Light, Back, Save & Exit
	c, out := newConsole("2\n1\n1\n3\n3\n")
	p := &memPersister{}

	res, err := editor.NewSession(tree, c, p).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, editor.OutcomeSaved, res.Outcome)
	assert.Equal(t, "Light", res.Theme)
	assert.Equal(t, 1, p.calls)
	assert.Contains(t, out.String(), "[success] Preferences saved")
}

type memPersister struct {
	calls int
}

func (p *memPersister) SaveTree(context.Context, *settings.Tree) error {
	p.calls++
	return nil
}

func sampleTree() *settings.Tree {
	return &settings.Tree{Sections: []*settings.Section{
		{Name: "Preferences.HotKeys", Entries: []*settings.Entry{
			{Name: "Preferences.HotKeys.Exit", Value: "Ctrl+Q"},
		}},
		{Name: "Preferences.General", Order: 1, Entries: []*settings.Entry{
			{Name: "Preferences.General.Theme", Value: "Dark", Options: []string{"Light", "Dark"}},
			{Name: "Preferences.General.UserName", Value: "alice"},
		}},
	}}
}

func TestApply(t *testing.T) {
	c, _ := newConsole("")
	require.NoError(t, c.Apply("light"))
	assert.Equal(t, "Light", c.theme.Name)
	assert.Error(t, c.Apply("sepia"))
	assert.Equal(t, "Light", c.theme.Name)
}
