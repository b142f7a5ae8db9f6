package rules

import "time"

// Rule names the evaluator that produced a decision.
type Rule string

const (
	RuleAntiRaid Rule = "antiraid"
	RuleAntiSpam Rule = "antispam"
	RuleAntiLink Rule = "antilink"
	RuleAntiNuke Rule = "antinuke"
)

// ActionKind is one platform capability the executor can invoke.
type ActionKind string

const (
	ActionRaiseVerification ActionKind = "raise_verification"
	ActionEject             ActionKind = "eject"
	ActionDeleteMessage     ActionKind = "delete_message"
	ActionPostTransient     ActionKind = "post_transient"
)

// EjectMode distinguishes removal flavors.
type EjectMode string

const (
	EjectKick EjectMode = "kick"
	EjectBan  EjectMode = "ban"
)

// SubAction is one independent step of a decision. Fields are used according
// to Kind; unused fields stay zero.
type SubAction struct {
	Kind      ActionKind
	TargetID  string
	Mode      EjectMode
	ChannelID string
	MessageID string
	Text      string
	TTL       time.Duration
}

// Decision is a punishment order produced by one rule evaluator and consumed
// exactly once by the executor. Sub-actions are independent: one failing must
// not block the others.
type Decision struct {
	GuildID string
	Rule    Rule
	Reason  string
	Actions []SubAction
}

// ExecutionResult is the per-sub-action outcome of executing a decision.
type ExecutionResult struct {
	Action        ActionKind
	Succeeded     bool
	FailureReason string
}

// Executor applies a decision against the platform.
type Executor interface {
	Execute(d Decision) []ExecutionResult
}
