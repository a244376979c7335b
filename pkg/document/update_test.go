package document

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/grovetools/prefs/pkg/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const baseDoc = `{
  "Logging": {"LogLevel": {"Default": "Information", "Microsoft": "Warning"}},
  "ConnectionStrings": ["a", "b"],
  "Preferences": {"sections": []},
  "Flag": true
}`

func sampleTree() *settings.Tree {
	return &settings.Tree{Sections: []*settings.Section{{
		Name:  "Preferences.General",
		Order: 1,
		Entries: []*settings.Entry{{
			Name:    "Preferences.General.Theme",
			Value:   "Light",
			Options: []string{"Light", "Dark"},
		}},
	}}}
}

func decode(t *testing.T, data []byte) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(data, &m))
	return m
}

func TestUpdate_PreservesOtherKeys(t *testing.T) {
	out, err := Update([]byte(baseDoc), "Preferences", sampleTree())
	require.NoError(t, err)

	before := decode(t, []byte(baseDoc))
	after := decode(t, out)

	for k, v := range before {
		if k == "Preferences" {
			continue
		}
		assert.Equal(t, v, after[k], "key %s must be preserved", k)
	}

	want, err := json.Marshal(sampleTree())
	require.NoError(t, err)
	assert.Equal(t, decode(t, want), after["Preferences"])
}

func TestUpdate_AddsMissingKey(t *testing.T) {
	out, err := Update([]byte(`{"Other": 1}`), "Preferences", map[string]int{"x": 2})
	require.NoError(t, err)

	m := decode(t, out)
	assert.Equal(t, float64(1), m["Other"])
	assert.Equal(t, map[string]any{"x": float64(2)}, m["Preferences"])
}

func TestUpdate_EmptyDocument(t *testing.T) {
	out, err := Update([]byte("  \n"), "Preferences", "v")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"Preferences": "v"}, decode(t, out))
}

func TestUpdate_DottedKeyIsSingleProperty(t *testing.T) {
	out, err := Update([]byte(`{"a": {"b": 1}}`), "a.b", 2)
	require.NoError(t, err)

	m := decode(t, out)
	assert.Equal(t, map[string]any{"b": float64(1)}, m["a"])
	assert.Equal(t, float64(2), m["a.b"])
}

func TestUpdate_EmptyKeyReplacesDocument(t *testing.T) {
	out, err := Update([]byte(baseDoc), "", sampleTree())
	require.NoError(t, err)

	m := decode(t, out)
	assert.Len(t, m, 1)
	assert.Contains(t, m, "sections")
}

func TestUpdate_IsPrettyPrinted(t *testing.T) {
	out, err := Update([]byte(`{"a":1}`), "b", []string{"x"})
	require.NoError(t, err)
	assert.Contains(t, string(out), "\n  \"a\": 1")
}

func TestUpdate_ParseFailures(t *testing.T) {
	_, err := Update([]byte(`{"a":`), "a", 1)
	assert.True(t, errors.Is(err, ErrParse))

	_, err = Update([]byte(`[1, 2]`), "a", 1)
	assert.True(t, errors.Is(err, ErrParse))

	_, err = Update([]byte(`{}`), "a", make(chan int))
	assert.True(t, errors.Is(err, ErrParse))
}

func TestStore_SaveTree(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "appsettings.json")
	require.NoError(t, os.WriteFile(path, []byte(baseDoc), 0600))

	store := NewStore(path, "Preferences")
	require.NoError(t, store.SaveTree(context.Background(), sampleTree()))

	tree, err := store.LoadTree(context.Background())
	require.NoError(t, err)
	_, theme := tree.Entry("Preferences.General.Theme")
	require.NotNil(t, theme)
	assert.Equal(t, "Light", theme.Value)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestStore_MissingFileIsCreated(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "settings.json")
	store := NewStore(path, "Preferences")

	require.NoError(t, store.Save(context.Background(), "Preferences", sampleTree()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, decode(t, data), "Preferences")
}

func TestStore_InvalidDocumentIsNotOverwritten(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"a":`), 0644))

	store := NewStore(path, "Preferences")
	err := store.SaveTree(context.Background(), sampleTree())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrParse))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `{"a":`, string(data))
}

func TestStore_ReadFailure(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir, "Preferences") // a directory cannot be read as a file

	_, err := store.Load(context.Background())
	assert.True(t, errors.Is(err, ErrIO))
}

func TestStore_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	store := NewStore(filepath.Join(t.TempDir(), "x.json"), "Preferences")
	assert.ErrorIs(t, store.SaveTree(ctx, sampleTree()), context.Canceled)
}
