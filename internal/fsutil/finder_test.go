package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	for _, name := range []string{"a.hcl", "b.json", "c.txt", "sub/d.hcl"} {
		p := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, nil, 0o644))
	}

	files, err := FindFiles([]string{dir, filepath.Join(dir, "a.hcl"), filepath.Join(dir, "missing")}, ".hcl", ".json")
	require.NoError(t, err)

	want := []string{
		filepath.Join(dir, "a.hcl"),
		filepath.Join(dir, "b.json"),
		filepath.Join(dir, "sub", "d.hcl"),
	}
	assert.Equal(t, want, files)
}

func TestFindFiles_PanicsWithoutExtensions(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { _, _ = FindFiles([]string{"."}) })
}
