package rules

import (
	"fmt"
	"time"

	"github.com/adityaska2007-maker/meta-sonic-bot/internal/config"
	"github.com/adityaska2007-maker/meta-sonic-bot/internal/logging"
	"github.com/adityaska2007-maker/meta-sonic-bot/internal/metrics"
	"github.com/adityaska2007-maker/meta-sonic-bot/internal/window"
)

const transientWarnTTL = 3 * time.Second

// Message is one created message as seen by the evaluators.
type Message struct {
	GuildID   string
	ChannelID string
	MessageID string
	AuthorID  string
	Content   string
}

// HandleMessage feeds the anti-spam and anti-link evaluators. Spam throttles
// (delete plus a transient warning), it never ejects.
func (e *Engine) HandleMessage(msg Message) {
	metrics.EventsSeen.WithLabelValues("message_create").Inc()

	m := e.cfg.Guild(msg.GuildID)

	if m.Enabled(config.FeatureAntiSpam) {
		e.evalSpam(msg, m)
	}
	if m.Enabled(config.FeatureAntiLink) {
		e.evalLink(msg)
	}
}

func (e *Engine) evalSpam(msg Message, m config.Moderation) {
	count := e.tracker.Record(msg.GuildID, msg.AuthorID, e.now(), time.Duration(m.SpamWindowSec)*time.Second)
	if !window.Exceeded(count, m.SpamMaxMessages) {
		return
	}
	if e.isExempt(msg.GuildID, msg.AuthorID) {
		return
	}

	logging.Warn("[ANTISPAM] Guild %s: user %s sent %d messages within %ds (max %d)",
		msg.GuildID, msg.AuthorID, count, m.SpamWindowSec, m.SpamMaxMessages)

	e.dispatch(RuleAntiSpam, Decision{
		GuildID: msg.GuildID,
		Rule:    RuleAntiSpam,
		Reason:  fmt.Sprintf("AntiSpam: %d messages within %ds", count, m.SpamWindowSec),
		Actions: []SubAction{
			{Kind: ActionDeleteMessage, ChannelID: msg.ChannelID, MessageID: msg.MessageID},
			{
				Kind:      ActionPostTransient,
				ChannelID: msg.ChannelID,
				Text:      fmt.Sprintf("<@%s>, please slow down! (AntiSpam protection)", msg.AuthorID),
				TTL:       transientWarnTTL,
			},
		},
	})
}

