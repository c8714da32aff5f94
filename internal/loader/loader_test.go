package loader_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twistorlab/mtx/internal/loader"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "amps.mtx", `# four-point invariants
<1,2,3,4> * Z1

Z1 + Z2
`)

	entries, err := loader.ReadFile(path)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "<1,2,3,4> * Z1", entries[0].Text)
	assert.Equal(t, 2, entries[0].Line)
	assert.Equal(t, path, entries[0].File)

	assert.Equal(t, "Z1 + Z2", entries[1].Text)
	assert.Equal(t, 4, entries[1].Line)
}

func TestReadFileMissing(t *testing.T) {
	_, err := loader.ReadFile(filepath.Join(t.TempDir(), "nope.mtx"))
	assert.Error(t, err)
}

func TestScanDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.mtx", "Z1\n")
	writeFile(t, dir, "sub/b.mtx", "Z2\nZ3\n")
	writeFile(t, dir, "notes.txt", "ignored\n")
	writeFile(t, dir, ".hidden/c.mtx", "Z4\n")
	writeFile(t, dir, ".skip.mtx", "Z5\n")

	entries, err := loader.ScanDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	var texts []string
	for _, e := range entries {
		texts = append(texts, e.Text)
	}
	assert.ElementsMatch(t, []string{"Z1", "Z2", "Z3"}, texts)
}

func TestScanDirMissing(t *testing.T) {
	_, err := loader.ScanDir(filepath.Join(t.TempDir(), "absent"))
	assert.Error(t, err)
}
