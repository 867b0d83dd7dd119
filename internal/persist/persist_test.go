package persist

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/robby/cockpit/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("missing file seeds sample", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "projects.json")
		data := Load(path)
		assert.Equal(t, domain.SampleData().Projects, data.Projects)
	})

	t.Run("unparsable file falls back to sample", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "projects.json")
		require.NoError(t, os.WriteFile(path, []byte("{broken"), 0o644))
		data := Load(path)
		assert.Equal(t, domain.SampleData().Projects, data.Projects)
	})

	t.Run("version gate failure falls back to sample", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "projects.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"projects": []}`), 0o644))
		data := Load(path)
		assert.NotEmpty(t, data.Projects)
	})

	t.Run("valid file loads normalized", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "projects.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"version": 1, "projects": [{"id": "p1"}]}`), 0o644))
		data := Load(path)
		require.Len(t, data.Projects, 1)
		assert.Equal(t, "p1", data.Projects[0].ID)
		assert.Equal(t, "Untitled Project", data.Projects[0].Title)
	})
}

func TestLoadStrict(t *testing.T) {
	t.Run("missing file errors", func(t *testing.T) {
		_, err := LoadStrict(filepath.Join(t.TempDir(), "nope.json"))
		assert.Error(t, err)
	})

	t.Run("version gate propagates", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "projects.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"projects": []}`), 0o644))
		_, err := LoadStrict(path)
		assert.ErrorIs(t, err, domain.ErrMissingVersion)
	})
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "projects.json")
	sample := domain.SampleData()

	require.NoError(t, Save(path, sample))
	assert.True(t, Exists(path))

	loaded, err := LoadStrict(path)
	require.NoError(t, err)
	assert.Equal(t, sample, loaded)

	// No temp files left behind.
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
