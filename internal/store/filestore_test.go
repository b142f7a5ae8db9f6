package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testDoc struct {
	Guilds map[string][]string `json:"guilds"`
}

func TestFileStoreRoundTrip(t *testing.T) {
	assert := assert.New(t)

	fs := NewFileStore(filepath.Join(t.TempDir(), "state.json"))

	var missing testDoc
	ok, err := fs.Load(&missing)
	assert.NoError(err)
	assert.False(ok)

	in := testDoc{Guilds: map[string][]string{"123": {"a", "b"}}}
	require.NoError(t, fs.Save(in))

	var out testDoc
	ok, err = fs.Load(&out)
	assert.NoError(err)
	assert.True(ok)
	assert.Equal(in, out)
}

func TestFileStoreCrashLeavesPriorDocument(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "state.json")
	fs := NewFileStore(path)

	require.NoError(t, fs.Save(testDoc{Guilds: map[string][]string{"g": {"x"}}}))
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	// Simulate a crash between temp-write and rename: a stray temp file
	// exists but never replaced the canonical document.
	tmp := filepath.Join(dir, "state.json.tmp-crash")
	require.NoError(t, os.WriteFile(tmp, []byte("{half-written"), 0644))

	var out testDoc
	ok, err := fs.Load(&out)
	assert.NoError(err)
	assert.True(ok)

	after, err := os.ReadFile(path)
	assert.NoError(err)
	assert.Equal(before, after)
}

func TestFileStoreSaveUnmarshalableFails(t *testing.T) {
	fs := NewFileStore(filepath.Join(t.TempDir(), "state.json"))
	err := fs.Save(make(chan int))
	assert.Error(t, err)

	// Failed save must not create the canonical file.
	_, statErr := os.Stat(fs.Path())
	assert.True(t, os.IsNotExist(statErr))
}
