package audit

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/adityaska2007-maker/meta-sonic-bot/internal/logging"
	"github.com/adityaska2007-maker/meta-sonic-bot/internal/metrics"

	"github.com/bwmarrin/discordgo"
)

// Entry is one audit-trail record: who did what, when.
type Entry struct {
	ID        string
	ActorID   string
	ActorBot  bool
	Action    discordgo.AuditLogAction
	CreatedAt time.Time
}

// Querier fetches the most recent audit entry of a given action kind. The
// trail is ordered newest-first and eventually consistent; a query may lag
// the event that prompted it.
type Querier interface {
	QueryLatest(guildID string, action discordgo.AuditLogAction) (*Entry, error)
}

const (
	// An entry older than this is assumed to belong to some earlier,
	// unrelated action. Attributing a fresh destructive event to a stale
	// entry would punish the wrong principal.
	defaultRecencyBound = 15 * time.Second

	// One admin action can surface through several gateway callbacks (a
	// ban fires both GuildBanAdd and GuildMemberRemove). Entries stay in
	// the dedup cache long enough to absorb every echo.
	dedupRetention = 3 * time.Minute
	dedupCacheSize = 2048
)

// Attributor resolves the acting principal behind a destructive event, or
// reports unknown. Unknown is always safe: the engine never punishes on an
// uncertain attribution.
type Attributor struct {
	querier Querier
	selfID  string
	recency time.Duration
	seen    *expirable.LRU[string, struct{}]
	now     func() time.Time
}

func NewAttributor(querier Querier, selfID string) *Attributor {
	return &Attributor{
		querier: querier,
		selfID:  selfID,
		recency: defaultRecencyBound,
		seen:    expirable.NewLRU[string, struct{}](dedupCacheSize, nil, dedupRetention),
		now:     time.Now,
	}
}

// SetSelf records the bot's own user ID once the gateway identifies it.
// Actions taken by the bot itself are never attributed.
func (a *Attributor) SetSelf(id string) {
	a.selfID = id
}

// Attribute returns the actor responsible for the most recent action of the
// given kind. ok is false when the query fails, nothing matches, the entry is
// stale, the actor is a bot (including this engine), or the same entry was
// already attributed recently.
func (a *Attributor) Attribute(guildID string, action discordgo.AuditLogAction) (actorID string, ok bool) {
	entry, err := a.querier.QueryLatest(guildID, action)
	if err != nil {
		metrics.AuditQueryErrors.Inc()
		logging.Warn("Audit query failed for guild %s action %d: %v", guildID, action, err)
		return "", false
	}
	if entry == nil {
		return "", false
	}

	if age := a.now().Sub(entry.CreatedAt); age > a.recency {
		logging.Debug("Audit entry %s too old to attribute (%s)", entry.ID, age)
		return "", false
	}

	if entry.ActorBot || entry.ActorID == a.selfID || entry.ActorID == "" {
		return "", false
	}

	// One underlying action, one attribution. Repeat callbacks for the
	// same entry come back unknown.
	if _, dup := a.seen.Get(entry.ID); dup {
		logging.Debug("Audit entry %s already attributed, suppressing repeat", entry.ID)
		return "", false
	}
	a.seen.Add(entry.ID, struct{}{})

	return entry.ActorID, true
}
