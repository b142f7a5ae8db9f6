package punish

import (
	"errors"
	"fmt"

	"github.com/adityaska2007-maker/meta-sonic-bot/internal/config"
	"github.com/adityaska2007-maker/meta-sonic-bot/internal/logging"
	"github.com/adityaska2007-maker/meta-sonic-bot/internal/metrics"
	"github.com/adityaska2007-maker/meta-sonic-bot/internal/rules"
	"github.com/adityaska2007-maker/meta-sonic-bot/internal/trust"
)

// Sink delivers a log line to a guild channel. Best-effort: failures are
// swallowed, logging never blocks a punishment.
type Sink interface {
	Emit(channelID, text string)
}

// Recorder appends an incident to durable history. Best-effort.
type Recorder interface {
	RecordIncident(guildID, rule, action, targetID, reason, outcome string)
}

// Executor applies punishment decisions. Sub-actions are isolated: a missing
// permission on one never aborts the rest. Decisions are at-most-once, failed
// platform calls are not retried.
type Executor struct {
	platform Platform
	trust    *trust.Registry
	cfg      *config.Store
	rolesOf  rules.RolesFunc
	sink     Sink
	recorder Recorder
}

func NewExecutor(platform Platform, reg *trust.Registry, cfg *config.Store, rolesOf rules.RolesFunc, sink Sink, recorder Recorder) *Executor {
	return &Executor{
		platform: platform,
		trust:    reg,
		cfg:      cfg,
		rolesOf:  rolesOf,
		sink:     sink,
		recorder: recorder,
	}
}

// Execute runs every sub-action of the decision and reports per-action
// outcomes.
func (x *Executor) Execute(d rules.Decision) []rules.ExecutionResult {
	results := make([]rules.ExecutionResult, 0, len(d.Actions))
	for _, sa := range d.Actions {
		results = append(results, x.executeSub(d, sa))
	}
	return results
}

func (x *Executor) executeSub(d rules.Decision, sa rules.SubAction) rules.ExecutionResult {
	res := rules.ExecutionResult{Action: sa.Kind}

	// Exemption may have changed between decide and execute; re-check
	// before acting on a principal.
	if sa.Kind == rules.ActionEject {
		if x.trust.IsExempt(d.GuildID, sa.TargetID, x.rolesOf(d.GuildID, sa.TargetID)) {
			logging.Info("[EXECUTOR] Target %s became trusted, skipping eject (guild %s)", sa.TargetID, d.GuildID)
			res.Succeeded = false
			res.FailureReason = "target exempt"
			metrics.Punishments.WithLabelValues(string(sa.Kind), "exempt").Inc()
			return res
		}
	}

	err := x.invoke(d, sa)

	switch {
	case err == nil:
		res.Succeeded = true
		metrics.Punishments.WithLabelValues(string(sa.Kind), "success").Inc()
		x.report(d, sa, "success")
	case errors.Is(err, ErrNotFound):
		// Target already gone: nothing left to do, counts as done.
		res.Succeeded = true
		metrics.Punishments.WithLabelValues(string(sa.Kind), "not_found").Inc()
		logging.Info("[EXECUTOR] %s target already gone (guild %s)", sa.Kind, d.GuildID)
		x.report(d, sa, "not_found")
	case errors.Is(err, ErrPermissionDenied):
		res.FailureReason = err.Error()
		metrics.Punishments.WithLabelValues(string(sa.Kind), "permission_denied").Inc()
		logging.Warn("[EXECUTOR] %s denied in guild %s: %v", sa.Kind, d.GuildID, err)
		x.report(d, sa, "permission_denied")
	default:
		res.FailureReason = err.Error()
		metrics.Punishments.WithLabelValues(string(sa.Kind), "error").Inc()
		logging.Error("[EXECUTOR] %s failed in guild %s: %v", sa.Kind, d.GuildID, err)
		x.report(d, sa, "error")
	}
	return res
}

func (x *Executor) invoke(d rules.Decision, sa rules.SubAction) error {
	switch sa.Kind {
	case rules.ActionRaiseVerification:
		return x.platform.RaiseVerification(d.GuildID)
	case rules.ActionEject:
		return x.platform.Eject(d.GuildID, sa.TargetID, d.Reason, sa.Mode == rules.EjectBan)
	case rules.ActionDeleteMessage:
		return x.platform.DeleteMessage(sa.ChannelID, sa.MessageID)
	case rules.ActionPostTransient:
		return x.platform.PostTransient(sa.ChannelID, sa.Text, sa.TTL)
	}
	return fmt.Errorf("unknown action kind %q", sa.Kind)
}

// report emits the outcome to the guild's log channel and the incident
// history. Both are best-effort.
func (x *Executor) report(d rules.Decision, sa rules.SubAction, outcome string) {
	if x.recorder != nil {
		x.recorder.RecordIncident(d.GuildID, string(d.Rule), string(sa.Kind), sa.TargetID, d.Reason, outcome)
	}
	if x.sink == nil {
		return
	}
	channelID := x.cfg.Guild(d.GuildID).LogChannelID
	if channelID == "" {
		return
	}
	x.sink.Emit(channelID, formatLogLine(d, sa, outcome))
}

func formatLogLine(d rules.Decision, sa rules.SubAction, outcome string) string {
	switch sa.Kind {
	case rules.ActionRaiseVerification:
		return fmt.Sprintf("🔒 Verification level raised to HIGH: %s", d.Reason)
	case rules.ActionEject:
		verb, past := "kick", "kicked"
		if sa.Mode == rules.EjectBan {
			verb, past = "ban", "banned"
		}
		if outcome != "success" && outcome != "not_found" {
			return fmt.Sprintf("⚠️ Failed to %s <@%s> (%s): %s", verb, sa.TargetID, outcome, d.Reason)
		}
		return fmt.Sprintf("🔨 <@%s> was %s: %s", sa.TargetID, past, d.Reason)
	case rules.ActionDeleteMessage:
		return fmt.Sprintf("🗑️ Message removed: %s", d.Reason)
	default:
		return fmt.Sprintf("ℹ️ %s (%s): %s", sa.Kind, outcome, d.Reason)
	}
}
