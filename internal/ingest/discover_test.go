package ingest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
}

func TestDiscover(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "b-estimate.txt"))
	touch(t, filepath.Join(root, "a-estimate.txt"))
	touch(t, filepath.Join(root, "scan.pdf"))
	touch(t, filepath.Join(root, "nested", "c-estimate.txt"))
	touch(t, filepath.Join(root, ".hidden", "d-estimate.txt"))
	touch(t, filepath.Join(root, ".ignored.txt"))

	got, err := Discover(root, nil)
	require.NoError(t, err)

	want := []string{
		filepath.Join(root, "a-estimate.txt"),
		filepath.Join(root, "b-estimate.txt"),
		filepath.Join(root, "nested", "c-estimate.txt"),
	}
	assert.Equal(t, want, got)
}

func TestDiscoverCustomExtensions(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "estimate.md"))
	touch(t, filepath.Join(root, "estimate.txt"))

	got, err := Discover(root, []string{".md"})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "estimate.md")}, got)
}

func TestDiscoverEmptyRoot(t *testing.T) {
	_, err := Discover("  ", nil)
	assert.Error(t, err)
}

func TestAllowed(t *testing.T) {
	exts := map[string]struct{}{"txt": {}}
	assert.True(t, allowed("/drop/estimate.TXT", exts))
	assert.False(t, allowed("/drop/estimate.pdf", exts))
	assert.False(t, allowed("/drop/noext", exts))
}
