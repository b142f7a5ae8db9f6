package rules

import (
	"fmt"
	"time"

	"github.com/adityaska2007-maker/meta-sonic-bot/internal/logging"
	"github.com/adityaska2007-maker/meta-sonic-bot/internal/metrics"
	"github.com/adityaska2007-maker/meta-sonic-bot/internal/window"

	"github.com/adityaska2007-maker/meta-sonic-bot/internal/config"
)

// joinSubject is the tracker subject for a guild's join stream.
const joinSubject = "joins"

// HandleMemberJoin feeds the anti-raid evaluator. Every join over the
// threshold re-triggers: the raid is still in progress and each new joiner is
// ejected in turn.
func (e *Engine) HandleMemberJoin(guildID, userID string) {
	metrics.EventsSeen.WithLabelValues("member_join").Inc()

	m := e.cfg.Guild(guildID)
	// The enabled check comes before any tracker mutation: a disabled
	// guild accumulates no join history and starts cold on re-enable.
	if !m.Enabled(config.FeatureAntiRaid) {
		return
	}

	count := e.tracker.Record(guildID, joinSubject, e.now(), time.Duration(m.RaidWindowSec)*time.Second)
	if !window.Exceeded(count, m.RaidMaxJoins) {
		return
	}

	logging.Warn("[ANTIRAID] Guild %s: %d joins within %ds (max %d)", guildID, count, m.RaidWindowSec, m.RaidMaxJoins)

	reason := fmt.Sprintf("AntiRaid: %d joins within %ds", count, m.RaidWindowSec)
	actions := []SubAction{
		{Kind: ActionRaiseVerification},
	}
	if e.isExempt(guildID, userID) {
		logging.Info("[ANTIRAID] Joiner %s is trusted, raising verification only", userID)
	} else {
		actions = append(actions, SubAction{Kind: ActionEject, TargetID: userID, Mode: EjectKick})
	}

	e.dispatch(RuleAntiRaid, Decision{
		GuildID: guildID,
		Rule:    RuleAntiRaid,
		Reason:  reason,
		Actions: actions,
	})
}
