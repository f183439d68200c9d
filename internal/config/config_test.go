package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadOrCreate(t *testing.T) {
	t.Run("first launch writes defaults", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "nested", DefaultConfigFileName)

		cfg, err := LoadOrCreate(path)
		require.NoError(t, err)

		_, err = os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, BackendSQLite, cfg.Backend)
		assert.Equal(t, DefaultStateKey, cfg.StateKey)
		assert.Equal(t, filepath.Join(dir, "nested", DefaultDBName), cfg.DBPath)
		assert.Equal(t, " ", cfg.Keys.Toggle)
	})

	t.Run("partial file keeps defaults for missing fields", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, DefaultConfigFileName)
		body := "backend = \"file\"\nstate_key = \"custom\"\n[keys]\nreset = \"R\"\n"
		require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

		cfg, err := LoadOrCreate(path)
		require.NoError(t, err)

		assert.Equal(t, BackendFile, cfg.Backend)
		assert.Equal(t, "custom", cfg.StateKey)
		assert.Equal(t, "R", cfg.Keys.Reset)
		assert.Equal(t, "q", cfg.Keys.Quit)
		assert.Equal(t, DefaultNotifySeconds, cfg.NotifySeconds)
		assert.Equal(t, filepath.Join(dir, DefaultStateDir), cfg.StateDir)
	})

	t.Run("unknown backend is rejected", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), DefaultConfigFileName)
		require.NoError(t, os.WriteFile(path, []byte("backend = \"redis\"\n"), 0o644))

		_, err := LoadOrCreate(path)
		assert.Error(t, err)
	})

	t.Run("malformed toml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), DefaultConfigFileName)
		require.NoError(t, os.WriteFile(path, []byte("backend = \n"), 0o644))

		_, err := LoadOrCreate(path)
		assert.Error(t, err)
	})

	t.Run("absolute and file: paths are kept", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, DefaultConfigFileName)
		abs := filepath.Join(t.TempDir(), "other.db")
		body := "db_path = \"" + filepath.ToSlash(abs) + "\"\nchecklist_path = \"file:ignored\"\n"
		require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

		cfg, err := LoadOrCreate(path)
		require.NoError(t, err)
		assert.Equal(t, filepath.ToSlash(abs), filepath.ToSlash(cfg.DBPath))
		assert.Equal(t, "file:ignored", cfg.ChecklistPath)
	})
}
