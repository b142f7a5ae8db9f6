package bot

import (
	"fmt"

	"github.com/adityaska2007-maker/meta-sonic-bot/internal/config"
	"github.com/adityaska2007-maker/meta-sonic-bot/internal/logging"
	"github.com/adityaska2007-maker/meta-sonic-bot/internal/rules"

	"github.com/bwmarrin/discordgo"
)

// Announcer posts informational lines to a guild's log channel.
type Announcer interface {
	Emit(channelID, text string)
}

// AttachHandlers registers the gateway event handlers that feed the rules
// engine. Call before Connect so no events are dropped during startup.
func AttachHandlers(s *Session, engine *rules.Engine, cfg *config.Store, announce Announcer) {
	dg := s.discord

	dg.AddHandler(func(_ *discordgo.Session, r *discordgo.Ready) {
		logging.Info("[BOT] ready, serving %d guilds", len(r.Guilds))
	})

	dg.AddHandler(func(_ *discordgo.Session, g *discordgo.GuildCreate) {
		logging.Info("[BOT] guild available: %s (%s)", g.Name, g.ID)
	})

	dg.AddHandler(func(_ *discordgo.Session, g *discordgo.GuildDelete) {
		logging.Info("[BOT] guild removed: %s", g.ID)
		engine.ResetGuild(g.ID)
	})

	dg.AddHandler(func(_ *discordgo.Session, m *discordgo.GuildMemberAdd) {
		if m.User == nil {
			return
		}
		announceMembership(cfg, announce, m.GuildID,
			fmt.Sprintf("📥 <@%s> (%s) joined the server.", m.User.ID, m.User.Username))
		engine.HandleMemberJoin(m.GuildID, m.User.ID)
	})

	dg.AddHandler(func(_ *discordgo.Session, m *discordgo.GuildMemberRemove) {
		if m.User != nil {
			announceMembership(cfg, announce, m.GuildID,
				fmt.Sprintf("📤 <@%s> (%s) left the server.", m.User.ID, m.User.Username))
		}
		engine.HandleMemberRemove(m.GuildID)
	})

	dg.AddHandler(func(_ *discordgo.Session, m *discordgo.MessageCreate) {
		if m.Author == nil || m.Author.Bot || m.GuildID == "" {
			return
		}
		engine.HandleMessage(rules.Message{
			GuildID:   m.GuildID,
			ChannelID: m.ChannelID,
			MessageID: m.ID,
			AuthorID:  m.Author.ID,
			Content:   m.Content,
		})
	})

	dg.AddHandler(func(_ *discordgo.Session, c *discordgo.ChannelDelete) {
		if c.GuildID == "" {
			return
		}
		engine.HandleChannelDelete(c.GuildID)
	})

	dg.AddHandler(func(_ *discordgo.Session, r *discordgo.GuildRoleDelete) {
		engine.HandleRoleDelete(r.GuildID)
	})

	dg.AddHandler(func(_ *discordgo.Session, b *discordgo.GuildBanAdd) {
		engine.HandleBan(b.GuildID)
	})
}

func announceMembership(cfg *config.Store, announce Announcer, guildID, text string) {
	if announce == nil {
		return
	}
	m := cfg.Guild(guildID)
	if m.LogChannelID == "" {
		return
	}
	announce.Emit(m.LogChannelID, text)
}
