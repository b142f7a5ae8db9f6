package trust

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adityaska2007-maker/meta-sonic-bot/internal/store"
)

func newTestRegistry(t *testing.T) (*Registry, *store.FileStore) {
	t.Helper()
	fs := store.NewFileStore(filepath.Join(t.TempDir(), "trust.json"))
	return NewRegistry(fs), fs
}

func TestExemptionByUserAndRole(t *testing.T) {
	assert := assert.New(t)
	r, _ := newTestRegistry(t)

	assert.False(r.IsExempt("g1", "u1", nil))

	changed, err := r.AddUser("g1", "u1")
	require.NoError(t, err)
	assert.True(changed)
	assert.True(r.IsExempt("g1", "u1", nil))

	changed, err = r.AddRole("g1", "r9")
	require.NoError(t, err)
	assert.True(changed)
	assert.True(r.IsExempt("g1", "u2", []string{"r3", "r9"}))
	assert.False(r.IsExempt("g1", "u2", []string{"r3"}))

	// Exemption is per guild.
	assert.False(r.IsExempt("g2", "u1", []string{"r9"}))
}

func TestMutationsAreIdempotent(t *testing.T) {
	assert := assert.New(t)
	r, _ := newTestRegistry(t)

	changed, err := r.AddUser("g1", "u1")
	require.NoError(t, err)
	assert.True(changed)

	changed, err = r.AddUser("g1", "u1")
	require.NoError(t, err)
	assert.False(changed)

	changed, err = r.RemoveUser("g1", "u1")
	require.NoError(t, err)
	assert.True(changed)

	changed, err = r.RemoveUser("g1", "u1")
	require.NoError(t, err)
	assert.False(changed)

	// Add then remove restores the original query result.
	assert.False(r.IsExempt("g1", "u1", nil))
}

func TestMutationsPersistAcrossReload(t *testing.T) {
	assert := assert.New(t)
	r, fs := newTestRegistry(t)

	_, err := r.AddUser("g1", "u1")
	require.NoError(t, err)
	_, err = r.AddRole("g1", "r1")
	require.NoError(t, err)
	_, err = r.AddRole("g2", "r2")
	require.NoError(t, err)

	fresh := NewRegistry(fs)
	require.NoError(t, fresh.Load())

	assert.True(fresh.IsExempt("g1", "u1", nil))
	assert.True(fresh.IsExempt("g1", "x", []string{"r1"}))
	assert.True(fresh.IsExempt("g2", "x", []string{"r2"}))
	assert.False(fresh.IsExempt("g2", "u1", nil))

	users, roles := fresh.List("g1")
	assert.Equal([]string{"u1"}, users)
	assert.Equal([]string{"r1"}, roles)
}

func TestFailedPersistLeavesMemoryUnchanged(t *testing.T) {
	dir := t.TempDir()
	blocked := filepath.Join(dir, "file")
	require.NoError(t, writeFile(blocked))
	r := NewRegistry(store.NewFileStore(filepath.Join(blocked, "trust.json")))

	changed, err := r.AddUser("g1", "u1")
	assert.Error(t, err)
	assert.False(t, changed)
	assert.False(t, r.IsExempt("g1", "u1", nil))
}

func writeFile(path string) error {
	return store.NewFileStore(path).Save(struct{}{})
}
