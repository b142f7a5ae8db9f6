package database

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/adityaska2007-maker/meta-sonic-bot/internal/logging"
)

// Database is the durable incident history: every executed punishment
// sub-action and every ban the engine issued. The detection path never reads
// it; it exists for operators and the status command.
type Database struct {
	db *sql.DB
}

// Open creates the SQLite database and its schema.
func Open(path string) (*Database, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}
	if _, err := db.Exec("PRAGMA synchronous=NORMAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set synchronous mode: %w", err)
	}

	d := &Database{db: db}
	if err := d.createTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}
	return d, nil
}

// Close closes the database connection.
func (d *Database) Close() error {
	return d.db.Close()
}

func (d *Database) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS incidents (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		guild_id TEXT NOT NULL,
		rule TEXT NOT NULL,
		action TEXT NOT NULL,
		target_id TEXT DEFAULT '',
		reason TEXT NOT NULL,
		outcome TEXT NOT NULL,
		timestamp INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_incidents_guild ON incidents(guild_id);
	CREATE INDEX IF NOT EXISTS idx_incidents_timestamp ON incidents(timestamp);

	CREATE TABLE IF NOT EXISTS banned_users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		guild_id TEXT NOT NULL,
		user_id TEXT NOT NULL,
		reason TEXT NOT NULL,
		banned_at INTEGER NOT NULL,
		UNIQUE(guild_id, user_id)
	);
	`
	_, err := d.db.Exec(schema)
	return err
}

// RecordIncident appends one executed sub-action outcome. Best-effort:
// a write failure is logged, the punishment path is never blocked by it.
func (d *Database) RecordIncident(guildID, rule, action, targetID, reason, outcome string) {
	now := time.Now().Unix()

	_, err := d.db.Exec(
		`INSERT INTO incidents (guild_id, rule, action, target_id, reason, outcome, timestamp)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		guildID, rule, action, targetID, reason, outcome, now)
	if err != nil {
		logging.Warn("Failed to record incident for guild %s: %v", guildID, err)
		return
	}

	if rule == "antinuke" && action == "eject" && outcome == "success" {
		if err := d.AddBannedUser(guildID, targetID, reason); err != nil {
			logging.Warn("Failed to record ban for guild %s user %s: %v", guildID, targetID, err)
		}
	}
}

// Incident is one row of punishment history.
type Incident struct {
	ID        int64
	GuildID   string
	Rule      string
	Action    string
	TargetID  string
	Reason    string
	Outcome   string
	Timestamp int64
}

// RecentIncidents returns up to limit newest incidents of a guild.
func (d *Database) RecentIncidents(guildID string, limit int) ([]Incident, error) {
	rows, err := d.db.Query(
		`SELECT id, guild_id, rule, action, target_id, reason, outcome, timestamp
		 FROM incidents WHERE guild_id = ? ORDER BY id DESC LIMIT ?`,
		guildID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query incidents: %w", err)
	}
	defer rows.Close()

	var incidents []Incident
	for rows.Next() {
		var inc Incident
		if err := rows.Scan(&inc.ID, &inc.GuildID, &inc.Rule, &inc.Action, &inc.TargetID, &inc.Reason, &inc.Outcome, &inc.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan incident: %w", err)
		}
		incidents = append(incidents, inc)
	}
	return incidents, rows.Err()
}

// CountIncidentsSince counts a guild's incidents newer than the cutoff.
func (d *Database) CountIncidentsSince(guildID string, since time.Time) (int, error) {
	var count int
	err := d.db.QueryRow(
		`SELECT COUNT(*) FROM incidents WHERE guild_id = ? AND timestamp >= ?`,
		guildID, since.Unix()).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count incidents: %w", err)
	}
	return count, nil
}

// AddBannedUser records a ban issued by the engine. Re-banning is a no-op.
func (d *Database) AddBannedUser(guildID, userID, reason string) error {
	_, err := d.db.Exec(
		`INSERT OR IGNORE INTO banned_users (guild_id, user_id, reason, banned_at)
		 VALUES (?, ?, ?, ?)`,
		guildID, userID, reason, time.Now().Unix())
	return err
}

// IsBannedUser reports whether the engine banned this user in this guild.
func (d *Database) IsBannedUser(guildID, userID string) bool {
	var one int
	err := d.db.QueryRow(
		`SELECT 1 FROM banned_users WHERE guild_id = ? AND user_id = ?`,
		guildID, userID).Scan(&one)
	return err == nil
}

// RemoveBannedUser clears a ban record (user was unbanned externally).
func (d *Database) RemoveBannedUser(guildID, userID string) error {
	_, err := d.db.Exec(
		`DELETE FROM banned_users WHERE guild_id = ? AND user_id = ?`,
		guildID, userID)
	return err
}
