package punish

import (
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adityaska2007-maker/meta-sonic-bot/internal/config"
	"github.com/adityaska2007-maker/meta-sonic-bot/internal/rules"
	"github.com/adityaska2007-maker/meta-sonic-bot/internal/store"
	"github.com/adityaska2007-maker/meta-sonic-bot/internal/trust"
)

type fakePlatform struct {
	calls     []string
	verifyErr error
	ejectErr  error
	deleteErr error
	postErr   error
}

func (f *fakePlatform) RaiseVerification(guildID string) error {
	f.calls = append(f.calls, "verify:"+guildID)
	return f.verifyErr
}

func (f *fakePlatform) Eject(guildID, userID, reason string, ban bool) error {
	f.calls = append(f.calls, fmt.Sprintf("eject:%s:%s:ban=%v", guildID, userID, ban))
	return f.ejectErr
}

func (f *fakePlatform) DeleteMessage(channelID, messageID string) error {
	f.calls = append(f.calls, "delete:"+channelID+":"+messageID)
	return f.deleteErr
}

func (f *fakePlatform) PostTransient(channelID, text string, ttl time.Duration) error {
	f.calls = append(f.calls, "post:"+channelID)
	return f.postErr
}

type fakeSink struct {
	emitted []string
}

func (f *fakeSink) Emit(channelID, text string) {
	f.emitted = append(f.emitted, channelID+"|"+text)
}

func newTestExecutor(t *testing.T, p Platform, sink Sink) (*Executor, *trust.Registry, *config.Store) {
	t.Helper()
	dir := t.TempDir()
	reg := trust.NewRegistry(store.NewFileStore(filepath.Join(dir, "trust.json")))
	cfg := config.NewStore(store.NewFileStore(filepath.Join(dir, "moderation.json")))
	noRoles := func(guildID, userID string) []string { return nil }
	return NewExecutor(p, reg, cfg, noRoles, sink, nil), reg, cfg
}

func raidDecision() rules.Decision {
	return rules.Decision{
		GuildID: "g1",
		Rule:    rules.RuleAntiRaid,
		Reason:  "AntiRaid: mass join",
		Actions: []rules.SubAction{
			{Kind: rules.ActionRaiseVerification},
			{Kind: rules.ActionEject, TargetID: "u9", Mode: rules.EjectKick},
		},
	}
}

func TestExecuteAllSubActionsSucceed(t *testing.T) {
	assert := assert.New(t)

	p := &fakePlatform{}
	x, _, _ := newTestExecutor(t, p, nil)

	results := x.Execute(raidDecision())
	require.Len(t, results, 2)
	assert.True(results[0].Succeeded)
	assert.True(results[1].Succeeded)
	assert.Equal([]string{"verify:g1", "eject:g1:u9:ban=false"}, p.calls)
}

func TestPermissionDeniedDoesNotAbortRemainingActions(t *testing.T) {
	assert := assert.New(t)

	p := &fakePlatform{verifyErr: fmt.Errorf("%w: manage guild", ErrPermissionDenied)}
	x, _, _ := newTestExecutor(t, p, nil)

	results := x.Execute(raidDecision())
	require.Len(t, results, 2)
	assert.False(results[0].Succeeded)
	assert.Contains(results[0].FailureReason, "permission denied")
	assert.True(results[1].Succeeded, "eject must still run after a denied verification raise")
	assert.Len(p.calls, 2)
}

func TestNotFoundIsTreatedAsSuccess(t *testing.T) {
	p := &fakePlatform{ejectErr: fmt.Errorf("%w: unknown member", ErrNotFound)}
	x, _, _ := newTestExecutor(t, p, nil)

	results := x.Execute(rules.Decision{
		GuildID: "g1",
		Rule:    rules.RuleAntiNuke,
		Reason:  "AntiNuke: channel deleted",
		Actions: []rules.SubAction{{Kind: rules.ActionEject, TargetID: "u1", Mode: rules.EjectBan}},
	})
	require.Len(t, results, 1)
	assert.True(t, results[0].Succeeded)
}

func TestTransientErrorIsNonFatal(t *testing.T) {
	p := &fakePlatform{deleteErr: errors.New("connection reset")}
	x, _, _ := newTestExecutor(t, p, nil)

	results := x.Execute(rules.Decision{
		GuildID: "g1",
		Rule:    rules.RuleAntiSpam,
		Reason:  "AntiSpam",
		Actions: []rules.SubAction{
			{Kind: rules.ActionDeleteMessage, ChannelID: "c", MessageID: "m"},
			{Kind: rules.ActionPostTransient, ChannelID: "c", Text: "slow down", TTL: time.Second},
		},
	})
	require.Len(t, results, 2)
	assert.False(t, results[0].Succeeded)
	assert.True(t, results[1].Succeeded)
}

func TestTrustRecheckedAtExecuteTime(t *testing.T) {
	assert := assert.New(t)

	p := &fakePlatform{}
	x, reg, _ := newTestExecutor(t, p, nil)

	// The target became trusted after the decision was made.
	_, err := reg.AddUser("g1", "u9")
	require.NoError(t, err)

	results := x.Execute(raidDecision())
	require.Len(t, results, 2)
	assert.True(results[0].Succeeded)
	assert.False(results[1].Succeeded)
	assert.Equal("target exempt", results[1].FailureReason)
	assert.Equal([]string{"verify:g1"}, p.calls, "no eject call for an exempt target")
}

func TestLogEmissionOnlyWithConfiguredSink(t *testing.T) {
	assert := assert.New(t)

	sink := &fakeSink{}
	p := &fakePlatform{}
	x, _, cfg := newTestExecutor(t, p, sink)

	// No log channel configured: nothing emitted, execution unaffected.
	results := x.Execute(raidDecision())
	assert.True(results[0].Succeeded)
	assert.Empty(sink.emitted)

	require.NoError(t, cfg.SetLogChannel("g1", "log-chan"))
	x.Execute(raidDecision())
	assert.Len(sink.emitted, 2)
	assert.Contains(sink.emitted[0], "log-chan|")
}
