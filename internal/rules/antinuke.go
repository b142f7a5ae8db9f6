package rules

import (
	"fmt"

	"github.com/adityaska2007-maker/meta-sonic-bot/internal/config"
	"github.com/adityaska2007-maker/meta-sonic-bot/internal/logging"
	"github.com/adityaska2007-maker/meta-sonic-bot/internal/metrics"

	"github.com/bwmarrin/discordgo"
)

// HandleChannelDelete feeds the anti-nuke evaluator for a deleted channel.
func (e *Engine) HandleChannelDelete(guildID string) {
	metrics.EventsSeen.WithLabelValues("channel_delete").Inc()
	e.evalNuke(guildID, discordgo.AuditLogActionChannelDelete, "channel deleted")
}

// HandleRoleDelete feeds the anti-nuke evaluator for a deleted role.
func (e *Engine) HandleRoleDelete(guildID string) {
	metrics.EventsSeen.WithLabelValues("role_delete").Inc()
	e.evalNuke(guildID, discordgo.AuditLogActionRoleDelete, "role deleted")
}

// HandleBan feeds the anti-nuke evaluator for a recorded ban.
func (e *Engine) HandleBan(guildID string) {
	metrics.EventsSeen.WithLabelValues("ban_add").Inc()
	e.evalNuke(guildID, discordgo.AuditLogActionMemberBanAdd, "member banned")
}

// HandleMemberRemove feeds the anti-nuke evaluator for a removed member. The
// removal may be a voluntary leave; only a fresh kick entry in the audit
// trail attributes an actor.
func (e *Engine) HandleMemberRemove(guildID string) {
	metrics.EventsSeen.WithLabelValues("member_remove").Inc()
	e.evalNuke(guildID, discordgo.AuditLogActionMemberKick, "member removed")
}

// evalNuke attributes a destructive event and ejects the responsible
// principal. Unknown attribution suppresses punishment entirely: the engine
// never acts on uncertain attribution.
func (e *Engine) evalNuke(guildID string, action discordgo.AuditLogAction, what string) {
	m := e.cfg.Guild(guildID)
	if !m.Enabled(config.FeatureAntiNuke) {
		return
	}

	actorID, ok := e.attributor.Attribute(guildID, action)
	if !ok {
		metrics.AttributionUnknown.Inc()
		logging.Debug("[ANTINUKE] Guild %s: %s, no attributable actor", guildID, what)
		return
	}

	if e.isExempt(guildID, actorID) {
		logging.Info("[ANTINUKE] Guild %s: %s by trusted principal %s, no action", guildID, what, actorID)
		return
	}

	logging.Warn("[ANTINUKE] Guild %s: %s attributed to %s, ejecting", guildID, what, actorID)

	e.dispatch(RuleAntiNuke, Decision{
		GuildID: guildID,
		Rule:    RuleAntiNuke,
		Reason:  fmt.Sprintf("AntiNuke: %s", what),
		Actions: []SubAction{
			{Kind: ActionEject, TargetID: actorID, Mode: EjectBan},
		},
	})
}
