package source

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gotest.tools/v3/assert"
)

func TestOpen(t *testing.T) {
	name := filepath.Join(t.TempDir(), "page.html")
	content := []byte("<p>hello</p>")
	assert.NilError(t, os.WriteFile(name, content, 0o644))

	src, err := Open(name)
	assert.NilError(t, err)
	assert.Equal(t, src.Name, name)
	assert.Equal(t, string(src.Bytes()), string(content))
	assert.NilError(t, src.Close())
	assert.Assert(t, src.Bytes() == nil)
	// A second Close is a no-op.
	assert.NilError(t, src.Close())
}

func TestOpenEmptyFile(t *testing.T) {
	name := filepath.Join(t.TempDir(), "empty.html")
	assert.NilError(t, os.WriteFile(name, nil, 0o644))

	src, err := Open(name)
	assert.NilError(t, err)
	defer src.Close()
	assert.Equal(t, len(src.Bytes()), 0)
}

func TestOpenMissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing.html"))
	assert.ErrorContains(t, err, "missing.html")
}

func TestRead(t *testing.T) {
	src, err := Read(strings.NewReader("<br>"), "stdin")
	assert.NilError(t, err)
	assert.Equal(t, string(src.Bytes()), "<br>")
	assert.NilError(t, src.Close())
}
