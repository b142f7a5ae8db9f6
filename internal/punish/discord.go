package punish

import (
	"errors"
	"fmt"
	"time"

	"github.com/adityaska2007-maker/meta-sonic-bot/internal/logging"

	"github.com/bwmarrin/discordgo"
)

// Discord error codes that mean the caller lacks authorization.
const (
	codeMissingAccess      = 50001
	codeMissingPermissions = 50013
)

// DiscordPlatform executes punishments through the platform REST API.
type DiscordPlatform struct {
	session *discordgo.Session
}

func NewDiscordPlatform(session *discordgo.Session) *DiscordPlatform {
	return &DiscordPlatform{session: session}
}

// RaiseVerification sets the guild's verification level to high.
func (p *DiscordPlatform) RaiseVerification(guildID string) error {
	high := discordgo.VerificationLevelHigh
	_, err := p.session.GuildEdit(guildID, &discordgo.GuildParams{
		VerificationLevel: &high,
	})
	return classify(err)
}

// Eject removes a member: ban preserves no messages, kick just removes.
func (p *DiscordPlatform) Eject(guildID, userID, reason string, ban bool) error {
	if ban {
		return classify(p.session.GuildBanCreateWithReason(guildID, userID, reason, 0))
	}
	return classify(p.session.GuildMemberDeleteWithReason(guildID, userID, reason))
}

// DeleteMessage removes one message.
func (p *DiscordPlatform) DeleteMessage(channelID, messageID string) error {
	return classify(p.session.ChannelMessageDelete(channelID, messageID))
}

// PostTransient sends a message and removes it after ttl. The removal is
// best-effort and runs detached.
func (p *DiscordPlatform) PostTransient(channelID, text string, ttl time.Duration) error {
	msg, err := p.session.ChannelMessageSend(channelID, text)
	if err != nil {
		return classify(err)
	}
	go func() {
		time.Sleep(ttl)
		if err := p.session.ChannelMessageDelete(channelID, msg.ID); err != nil {
			logging.Debug("Failed to remove transient message %s: %v", msg.ID, err)
		}
	}()
	return nil
}

// classify maps platform REST failures onto the executor's error taxonomy.
func classify(err error) error {
	if err == nil {
		return nil
	}
	var rest *discordgo.RESTError
	if !errors.As(err, &rest) || rest.Message == nil {
		return err
	}
	switch rest.Message.Code {
	case codeMissingAccess, codeMissingPermissions:
		return fmt.Errorf("%w: %s", ErrPermissionDenied, rest.Message.Message)
	}
	// 10xxx codes are "unknown X": the target is already gone.
	if rest.Message.Code >= 10000 && rest.Message.Code < 11000 {
		return fmt.Errorf("%w: %s", ErrNotFound, rest.Message.Message)
	}
	return err
}
