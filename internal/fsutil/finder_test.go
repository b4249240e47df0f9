package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindFilesByName(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	for _, p := range []string{
		"type/rgb-color/schema.json",
		"type/rgb-color/to-hex.lcs",
		"type/hex-color/schema.json",
		"function/invert/schema.json",
	} {
		full := filepath.Join(root, p)
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte("{}"), 0o600))
	}

	files, err := FindFilesByName(root, "schema.json")
	require.NoError(t, err)
	assert.Len(t, files, 3)
	for _, f := range files {
		assert.Equal(t, "schema.json", filepath.Base(f))
	}
}

func TestFindFilesByName_MissingRoot(t *testing.T) {
	t.Parallel()

	_, err := FindFilesByName(filepath.Join(t.TempDir(), "missing"), "schema.json")
	require.Error(t, err)
}

func TestFindFilesByName_EmptyNamePanics(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() {
		_, _ = FindFilesByName(t.TempDir(), "")
	})
}
