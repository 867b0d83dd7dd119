package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("missing file yields defaults", func(t *testing.T) {
		cfg, err := Load(filepath.Join(t.TempDir(), "config.toml"))
		require.NoError(t, err)
		assert.Equal(t, Default(), cfg)
		assert.NotEmpty(t, cfg.DataFile)
	})

	t.Run("file values override defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		require.NoError(t, os.WriteFile(path, []byte(
			"data_file = \"/tmp/board.json\"\nhide_archived = true\n",
		), 0o644))

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "/tmp/board.json", cfg.DataFile)
		assert.True(t, cfg.HideArchived)
	})

	t.Run("invalid file is an error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		require.NoError(t, os.WriteFile(path, []byte("data_file = [broken"), 0o644))

		_, err := Load(path)
		assert.Error(t, err)
	})

	t.Run("empty data_file falls back to default", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		require.NoError(t, os.WriteFile(path, []byte("hide_archived = true\n"), 0o644))

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, Default().DataFile, cfg.DataFile)
	})
}
