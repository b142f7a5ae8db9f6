package rules

import (
	"fmt"

	"github.com/adityaska2007-maker/meta-sonic-bot/internal/logging"
	"github.com/adityaska2007-maker/meta-sonic-bot/internal/matcher"
)

// evalLink fires on a single message: no rate accumulation. Any URL is a
// violation, not just invites; over-blocking generic links is the documented
// policy rather than a narrowing to fix.
func (e *Engine) evalLink(msg Message) {
	c := matcher.Classify(msg.Content)
	if !c.Violation() {
		return
	}
	if e.isExempt(msg.GuildID, msg.AuthorID) {
		return
	}

	kind := "link"
	if c.ContainsInvite {
		kind = "invite"
	}
	logging.Warn("[ANTILINK] Guild %s: user %s posted a disallowed %s", msg.GuildID, msg.AuthorID, kind)

	e.dispatch(RuleAntiLink, Decision{
		GuildID: msg.GuildID,
		Rule:    RuleAntiLink,
		Reason:  fmt.Sprintf("AntiLink: disallowed %s posted", kind),
		Actions: []SubAction{
			{Kind: ActionDeleteMessage, ChannelID: msg.ChannelID, MessageID: msg.MessageID},
			{
				Kind:      ActionPostTransient,
				ChannelID: msg.ChannelID,
				Text:      fmt.Sprintf("<@%s>, links are not allowed here.", msg.AuthorID),
				TTL:       transientWarnTTL,
			},
		},
	})
}
