package bot

import (
	"fmt"

	"github.com/adityaska2007-maker/meta-sonic-bot/internal/logging"

	"github.com/bwmarrin/discordgo"
)

// Session wraps the gateway connection. All moderation state lives
// elsewhere; this type only owns the websocket lifecycle.
type Session struct {
	discord *discordgo.Session
}

// New creates the Discord session without connecting.
func New(token string) (*Session, error) {
	dg, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}

	// Member, message content and audit log data are all needed for
	// detection, so request the full intent set.
	dg.Identify.Intents = discordgo.IntentsAll

	return &Session{discord: dg}, nil
}

// Discord returns the underlying discordgo session.
func (s *Session) Discord() *discordgo.Session {
	return s.discord
}

// Connect opens the websocket and waits for the ready handshake.
func (s *Session) Connect() error {
	if err := s.discord.Open(); err != nil {
		return fmt.Errorf("failed to open Discord connection: %w", err)
	}
	logging.Info("[BOT] gateway connected as %s", s.SelfID())
	return nil
}

// SelfID returns the bot's own user ID, available after Connect.
func (s *Session) SelfID() string {
	if s.discord.State != nil && s.discord.State.User != nil {
		return s.discord.State.User.ID
	}
	return ""
}

// Close shuts down the websocket connection.
func (s *Session) Close() error {
	if s.discord != nil {
		return s.discord.Close()
	}
	return nil
}

// MemberRoles resolves the role IDs a member currently holds, preferring
// the state cache and falling back to a REST lookup. Returns nil when the
// member cannot be found (typically already removed from the guild).
func (s *Session) MemberRoles(guildID, userID string) []string {
	if member, err := s.discord.State.Member(guildID, userID); err == nil && member != nil {
		return member.Roles
	}
	member, err := s.discord.GuildMember(guildID, userID)
	if err != nil || member == nil {
		return nil
	}
	return member.Roles
}
