package database

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *Database {
	t.Helper()
	d, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { d.Close() })
	return d
}

func TestRecordAndListIncidents(t *testing.T) {
	assert := assert.New(t)
	d := openTestDB(t)

	d.RecordIncident("g1", "antispam", "delete_message", "", "AntiSpam: flood", "success")
	d.RecordIncident("g1", "antiraid", "eject", "u2", "AntiRaid: mass join", "permission_denied")
	d.RecordIncident("g2", "antilink", "delete_message", "", "AntiLink", "success")

	incidents, err := d.RecentIncidents("g1", 10)
	require.NoError(t, err)
	require.Len(t, incidents, 2)
	// Newest first.
	assert.Equal("antiraid", incidents[0].Rule)
	assert.Equal("permission_denied", incidents[0].Outcome)
	assert.Equal("antispam", incidents[1].Rule)

	count, err := d.CountIncidentsSince("g1", time.Now().Add(-time.Minute))
	require.NoError(t, err)
	assert.Equal(2, count)
}

func TestAntiNukeEjectSuccessRecordsBan(t *testing.T) {
	assert := assert.New(t)
	d := openTestDB(t)

	d.RecordIncident("g1", "antinuke", "eject", "nuker", "AntiNuke: channel deleted", "success")
	assert.True(d.IsBannedUser("g1", "nuker"))
	assert.False(d.IsBannedUser("g2", "nuker"))

	// Failed ejects leave no ban record.
	d.RecordIncident("g1", "antinuke", "eject", "other", "AntiNuke: role deleted", "permission_denied")
	assert.False(d.IsBannedUser("g1", "other"))

	require.NoError(t, d.RemoveBannedUser("g1", "nuker"))
	assert.False(d.IsBannedUser("g1", "nuker"))
}

func TestAddBannedUserIdempotent(t *testing.T) {
	d := openTestDB(t)

	require.NoError(t, d.AddBannedUser("g1", "u1", "first"))
	require.NoError(t, d.AddBannedUser("g1", "u1", "second"))
	assert.True(t, d.IsBannedUser("g1", "u1"))
}
