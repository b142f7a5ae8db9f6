package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/adityaska2007-maker/meta-sonic-bot/internal/config"

	"github.com/bwmarrin/discordgo"
)

func (h *Handler) handleFeature(data discordgo.ApplicationCommandInteractionData, guildID string) (string, error) {
	var name, mode string
	for _, opt := range data.Options {
		switch opt.Name {
		case "name":
			name = opt.StringValue()
		case "mode":
			mode = opt.StringValue()
		}
	}

	feature := config.Feature(name)
	enabled := mode == "on"
	if err := h.cfg.SetFeature(guildID, feature, enabled); err != nil {
		return "", err
	}
	return fmt.Sprintf("✅ %s is now **%s**", name, strings.ToUpper(mode)), nil
}

func (h *Handler) handleLimits(data discordgo.ApplicationCommandInteractionData, guildID string) (string, error) {
	var rule string
	var windowSec, max int
	for _, opt := range data.Options {
		switch opt.Name {
		case "rule":
			rule = opt.StringValue()
		case "window":
			windowSec = int(opt.IntValue())
		case "max":
			max = int(opt.IntValue())
		}
	}

	switch rule {
	case "raid":
		if err := h.cfg.SetRaidLimits(guildID, windowSec, max); err != nil {
			return fmt.Sprintf("⚠️ %v", err), nil
		}
		return fmt.Sprintf("✅ AntiRaid limits set: max %d joins per %ds.", max, windowSec), nil
	case "spam":
		if err := h.cfg.SetSpamLimits(guildID, windowSec, max); err != nil {
			return fmt.Sprintf("⚠️ %v", err), nil
		}
		return fmt.Sprintf("✅ AntiSpam limits set: max %d messages per %ds.", max, windowSec), nil
	}
	return "", fmt.Errorf("unknown rule %q", rule)
}

func (h *Handler) handleSetLog(s *discordgo.Session, data discordgo.ApplicationCommandInteractionData, guildID string) (string, error) {
	channel := data.Options[0].ChannelValue(s)
	if err := h.cfg.SetLogChannel(guildID, channel.ID); err != nil {
		return "", err
	}
	return fmt.Sprintf("✅ Log channel set to <#%s>.", channel.ID), nil
}

func (h *Handler) handleStatus(guildID string) (string, error) {
	m := h.cfg.Guild(guildID)

	onOff := func(b bool) string {
		if b {
			return "ON"
		}
		return "OFF"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🛡️ **Protection status**\n")
	fmt.Fprintf(&b, "AntiRaid: %s (max %d joins per %ds)\n", onOff(m.AntiRaid), m.RaidMaxJoins, m.RaidWindowSec)
	fmt.Fprintf(&b, "AntiSpam: %s (max %d messages per %ds)\n", onOff(m.AntiSpam), m.SpamMaxMessages, m.SpamWindowSec)
	fmt.Fprintf(&b, "AntiLink: %s\n", onOff(m.AntiLink))
	fmt.Fprintf(&b, "AntiNuke: %s\n", onOff(m.AntiNuke))
	if m.LogChannelID != "" {
		fmt.Fprintf(&b, "Log channel: <#%s>\n", m.LogChannelID)
	} else {
		fmt.Fprintf(&b, "Log channel: not set\n")
	}

	if h.db != nil {
		count, err := h.db.CountIncidentsSince(guildID, time.Now().Add(-24*time.Hour))
		if err == nil {
			fmt.Fprintf(&b, "Incidents in the last 24h: %d\n", count)
		}
	}
	return b.String(), nil
}
