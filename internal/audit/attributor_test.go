package audit

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bwmarrin/discordgo"
)

type fakeQuerier struct {
	entry *Entry
	err   error
	calls int
}

func (f *fakeQuerier) QueryLatest(guildID string, action discordgo.AuditLogAction) (*Entry, error) {
	f.calls++
	return f.entry, f.err
}

func freshEntry(id, actor string, at time.Time) *Entry {
	return &Entry{
		ID:        id,
		ActorID:   actor,
		Action:    discordgo.AuditLogActionChannelDelete,
		CreatedAt: at,
	}
}

func newTestAttributor(q Querier) *Attributor {
	a := NewAttributor(q, "bot-self")
	a.now = func() time.Time { return time.Unix(5000, 0) }
	return a
}

func TestAttributeFreshEntry(t *testing.T) {
	now := time.Unix(5000, 0)
	q := &fakeQuerier{entry: freshEntry("e1", "actor1", now.Add(-2*time.Second))}
	a := newTestAttributor(q)

	actor, ok := a.Attribute("g1", discordgo.AuditLogActionChannelDelete)
	assert.True(t, ok)
	assert.Equal(t, "actor1", actor)
}

func TestAttributeQueryFailure(t *testing.T) {
	a := newTestAttributor(&fakeQuerier{err: errors.New("missing permission")})

	_, ok := a.Attribute("g1", discordgo.AuditLogActionChannelDelete)
	assert.False(t, ok)
}

func TestAttributeNoEntry(t *testing.T) {
	a := newTestAttributor(&fakeQuerier{})

	_, ok := a.Attribute("g1", discordgo.AuditLogActionChannelDelete)
	assert.False(t, ok)
}

func TestAttributeStaleEntry(t *testing.T) {
	now := time.Unix(5000, 0)
	q := &fakeQuerier{entry: freshEntry("e1", "actor1", now.Add(-time.Minute))}
	a := newTestAttributor(q)

	_, ok := a.Attribute("g1", discordgo.AuditLogActionChannelDelete)
	assert.False(t, ok, "stale entries must not be attributed")
}

func TestAttributeSkipsBotsAndSelf(t *testing.T) {
	now := time.Unix(5000, 0)

	bot := freshEntry("e1", "other-bot", now.Add(-time.Second))
	bot.ActorBot = true
	a := newTestAttributor(&fakeQuerier{entry: bot})
	_, ok := a.Attribute("g1", discordgo.AuditLogActionChannelDelete)
	assert.False(t, ok)

	a = newTestAttributor(&fakeQuerier{entry: freshEntry("e2", "bot-self", now.Add(-time.Second))})
	_, ok = a.Attribute("g1", discordgo.AuditLogActionChannelDelete)
	assert.False(t, ok)
}

func TestAttributeDeduplicatesEntryID(t *testing.T) {
	assert := assert.New(t)

	now := time.Unix(5000, 0)
	q := &fakeQuerier{entry: freshEntry("e1", "actor1", now.Add(-time.Second))}
	a := newTestAttributor(q)

	// A ban surfaces as both a ban event and a member-remove event; only
	// the first callback may attribute.
	actor, ok := a.Attribute("g1", discordgo.AuditLogActionMemberBanAdd)
	assert.True(ok)
	assert.Equal("actor1", actor)

	_, ok = a.Attribute("g1", discordgo.AuditLogActionMemberBanAdd)
	assert.False(ok)

	// A genuinely new entry attributes again.
	q.entry = freshEntry("e2", "actor1", now.Add(-time.Second))
	_, ok = a.Attribute("g1", discordgo.AuditLogActionMemberBanAdd)
	assert.True(ok)
}
