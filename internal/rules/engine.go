package rules

import (
	"time"

	"github.com/adityaska2007-maker/meta-sonic-bot/internal/config"
	"github.com/adityaska2007-maker/meta-sonic-bot/internal/metrics"
	"github.com/adityaska2007-maker/meta-sonic-bot/internal/trust"
	"github.com/adityaska2007-maker/meta-sonic-bot/internal/window"

	"github.com/bwmarrin/discordgo"
)

// Attributor resolves the acting principal behind a destructive event.
type Attributor interface {
	Attribute(guildID string, action discordgo.AuditLogAction) (actorID string, ok bool)
}

// RolesFunc looks up the role IDs a member currently holds. Implementations
// may return nil when the member is unknown (already gone).
type RolesFunc func(guildID, userID string) []string

// Engine routes typed gateway events to the evaluator that declared interest
// and hands resulting decisions to the executor. Evaluators are stateless
// between events; all accumulated state lives in the tracker and attributor.
type Engine struct {
	cfg        *config.Store
	trust      *trust.Registry
	tracker    *window.Tracker
	attributor Attributor
	exec       Executor
	rolesOf    RolesFunc
	now        func() time.Time
}

func NewEngine(cfg *config.Store, reg *trust.Registry, tracker *window.Tracker, attributor Attributor, exec Executor, rolesOf RolesFunc) *Engine {
	return &Engine{
		cfg:        cfg,
		trust:      reg,
		tracker:    tracker,
		attributor: attributor,
		exec:       exec,
		rolesOf:    rolesOf,
		now:        time.Now,
	}
}

func (e *Engine) isExempt(guildID, userID string) bool {
	return e.trust.IsExempt(guildID, userID, e.rolesOf(guildID, userID))
}

func (e *Engine) dispatch(rule Rule, d Decision) {
	metrics.Detections.WithLabelValues(string(rule)).Inc()
	e.exec.Execute(d)
}

// ResetGuild drops a guild's tracker state (guild teardown).
func (e *Engine) ResetGuild(guildID string) {
	e.tracker.ResetGuild(guildID)
}
