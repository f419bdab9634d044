package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThemeDefaultsToDarkAndPersists(t *testing.T) {
	base := t.TempDir()
	p, err := Load(testConfig{path: base})
	require.NoError(t, err)

	assert.Equal(t, Dark, p.Theme())
	require.NoError(t, p.SetTheme(p.Theme().Toggle()))

	reopened, err := Load(testConfig{path: base})
	require.NoError(t, err)
	assert.Equal(t, Light, reopened.Theme())
	assert.FileExists(t, filepath.Join(base, "prefs", "theme"))
}

func TestThemeIgnoresGarbage(t *testing.T) {
	base := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(base, "prefs"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(base, "prefs", "theme"), []byte("neon"), 0o644))

	p, err := Load(testConfig{path: base})
	require.NoError(t, err)
	assert.Equal(t, Dark, p.Theme())
	assert.Error(t, p.SetTheme("neon"))
}

func TestParseTheme(t *testing.T) {
	th, err := ParseTheme(" LIGHT ")
	require.NoError(t, err)
	assert.Equal(t, Light, th)
	assert.Equal(t, Dark, th.Toggle())
	_, err = ParseTheme("sepia")
	assert.Error(t, err)
}

func TestFilterRoundTrip(t *testing.T) {
	p, err := Load(testConfig{path: t.TempDir()})
	require.NoError(t, err)

	assert.Empty(t, p.Filter().Tags)
	want := Filter{Tags: []string{"travel", "family"}, Start: "2024-01-01"}
	require.NoError(t, p.SetFilter(want))
	assert.Equal(t, want, p.Filter())
}

func TestDraftLifecycle(t *testing.T) {
	p, err := Load(testConfig{path: t.TempDir()})
	require.NoError(t, err)

	_, ok := p.Draft()
	assert.False(t, ok)

	d := Draft{Title: "Half written", Content: "<p>so far</p>", Tags: []string{"draft"}}
	require.NoError(t, p.SaveDraft(d))
	got, ok := p.Draft()
	require.True(t, ok)
	assert.Equal(t, d, got)

	require.NoError(t, p.SaveDraft(Draft{}))
	_, ok = p.Draft()
	assert.False(t, ok)
	require.NoError(t, p.ClearDraft())
}
