package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "dark", cfg.Theme)
	assert.Equal(t, 100, cfg.FontScale)
	assert.Equal(t, 160, cfg.WordsPerPage)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "libris"), 0755))
	content := "theme: light\nfont_scale: 120\nlibrary_dir: /tmp/shelf\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "libris", "config.yaml"), []byte(content), 0644))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "light", cfg.Theme)
	assert.Equal(t, 120, cfg.FontScale)
	assert.Equal(t, "/tmp/shelf", cfg.LibraryDir)
	// Unset keys keep defaults.
	assert.Equal(t, 160, cfg.WordsPerPage)
}

func TestEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "libris"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "libris", "config.yaml"), []byte("theme: light\n"), 0644))

	t.Setenv("LIBRIS_THEME", "dark")
	t.Setenv("LIBRIS_FONT_SCALE", "150")
	t.Setenv("LIBRIS_WORDS_PER_PAGE", "200")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "dark", cfg.Theme)
	assert.Equal(t, 150, cfg.FontScale)
	assert.Equal(t, 200, cfg.WordsPerPage)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	t.Setenv("LIBRIS_THEME", "sepia")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("LIBRIS_THEME", "dark")
	t.Setenv("LIBRIS_FONT_SCALE", "10")
	_, err = Load()
	assert.Error(t, err)
}

func TestPageSize(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 160, cfg.PageSize())

	cfg.FontScale = 200
	assert.Equal(t, 80, cfg.PageSize(), "bigger type fits fewer words")

	cfg.FontScale = 50
	assert.Equal(t, 320, cfg.PageSize())
}
