package audit

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// DiscordQuerier reads the guild audit log through the platform API.
type DiscordQuerier struct {
	session *discordgo.Session
}

func NewDiscordQuerier(session *discordgo.Session) *DiscordQuerier {
	return &DiscordQuerier{session: session}
}

// QueryLatest fetches the single newest entry of the given action kind.
func (q *DiscordQuerier) QueryLatest(guildID string, action discordgo.AuditLogAction) (*Entry, error) {
	log, err := q.session.GuildAuditLog(guildID, "", "", int(action), 1)
	if err != nil {
		return nil, fmt.Errorf("audit log fetch failed: %w", err)
	}
	if len(log.AuditLogEntries) == 0 {
		return nil, nil
	}

	raw := log.AuditLogEntries[0]

	// Entry IDs are snowflakes; the creation time is embedded in the ID.
	created, err := discordgo.SnowflakeTimestamp(raw.ID)
	if err != nil {
		return nil, fmt.Errorf("bad audit entry id %q: %w", raw.ID, err)
	}

	entry := &Entry{
		ID:        raw.ID,
		ActorID:   raw.UserID,
		Action:    action,
		CreatedAt: created,
	}
	for _, user := range log.Users {
		if user.ID == raw.UserID {
			entry.ActorBot = user.Bot
			break
		}
	}
	return entry, nil
}
