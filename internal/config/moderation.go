package config

import (
	"fmt"
	"sync"

	"github.com/adityaska2007-maker/meta-sonic-bot/internal/store"
)

// Feature identifies one of the four detection rules.
type Feature string

const (
	FeatureAntiRaid Feature = "antiraid"
	FeatureAntiSpam Feature = "antispam"
	FeatureAntiLink Feature = "antilink"
	FeatureAntiNuke Feature = "antinuke"
)

// Defaults match the original deployment: 4 joins per 10s, 5 messages per 7s.
const (
	DefaultRaidWindowSec   = 10
	DefaultRaidMaxJoins    = 4
	DefaultSpamWindowSec   = 7
	DefaultSpamMaxMessages = 5
)

// Moderation is the effective per-guild moderation configuration. All
// features default to enabled; thresholds default to the constants above.
type Moderation struct {
	AntiRaid bool
	AntiSpam bool
	AntiLink bool
	AntiNuke bool

	RaidWindowSec int
	RaidMaxJoins  int

	SpamWindowSec   int
	SpamMaxMessages int

	LogChannelID string
}

// Enabled reports whether the given feature is on.
func (m Moderation) Enabled(f Feature) bool {
	switch f {
	case FeatureAntiRaid:
		return m.AntiRaid
	case FeatureAntiSpam:
		return m.AntiSpam
	case FeatureAntiLink:
		return m.AntiLink
	case FeatureAntiNuke:
		return m.AntiNuke
	}
	return false
}

func defaultModeration() Moderation {
	return Moderation{
		AntiRaid:        true,
		AntiSpam:        true,
		AntiLink:        true,
		AntiNuke:        true,
		RaidWindowSec:   DefaultRaidWindowSec,
		RaidMaxJoins:    DefaultRaidMaxJoins,
		SpamWindowSec:   DefaultSpamWindowSec,
		SpamMaxMessages: DefaultSpamMaxMessages,
	}
}

// moderationDoc is the persisted form. Pointer fields distinguish "absent"
// from an explicit value so defaults apply on load.
type moderationDoc struct {
	AntiRaid        *bool  `json:"antiraid,omitempty"`
	AntiSpam        *bool  `json:"antispam,omitempty"`
	AntiLink        *bool  `json:"antilink,omitempty"`
	AntiNuke        *bool  `json:"antinuke,omitempty"`
	RaidWindowSec   int    `json:"raid_window_sec,omitempty"`
	RaidMaxJoins    int    `json:"raid_max_joins,omitempty"`
	SpamWindowSec   int    `json:"spam_window_sec,omitempty"`
	SpamMaxMessages int    `json:"spam_max_messages,omitempty"`
	LogChannelID    string `json:"log_channel_id,omitempty"`
}

func (d moderationDoc) effective() Moderation {
	m := defaultModeration()
	if d.AntiRaid != nil {
		m.AntiRaid = *d.AntiRaid
	}
	if d.AntiSpam != nil {
		m.AntiSpam = *d.AntiSpam
	}
	if d.AntiLink != nil {
		m.AntiLink = *d.AntiLink
	}
	if d.AntiNuke != nil {
		m.AntiNuke = *d.AntiNuke
	}
	if d.RaidWindowSec > 0 {
		m.RaidWindowSec = d.RaidWindowSec
	}
	if d.RaidMaxJoins > 0 {
		m.RaidMaxJoins = d.RaidMaxJoins
	}
	if d.SpamWindowSec > 0 {
		m.SpamWindowSec = d.SpamWindowSec
	}
	if d.SpamMaxMessages > 0 {
		m.SpamMaxMessages = d.SpamMaxMessages
	}
	m.LogChannelID = d.LogChannelID
	return m
}

// Store holds per-guild moderation configuration. Mutations persist through
// the file store before the in-memory state is updated, so a persistence
// failure never leaves memory ahead of disk.
type Store struct {
	mu     sync.RWMutex
	guilds map[string]moderationDoc
	fs     *store.FileStore
}

func NewStore(fs *store.FileStore) *Store {
	return &Store{
		guilds: make(map[string]moderationDoc),
		fs:     fs,
	}
}

// Load reads the persisted document. A missing file is an empty store.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := make(map[string]moderationDoc)
	if _, err := s.fs.Load(&doc); err != nil {
		return err
	}
	s.guilds = doc
	return nil
}

// Guild returns the effective configuration for a guild. Unknown guilds get
// the defaults; nothing is created or persisted on the read path.
func (s *Store) Guild(guildID string) Moderation {
	s.mu.RLock()
	doc, exists := s.guilds[guildID]
	s.mu.RUnlock()

	if !exists {
		return defaultModeration()
	}
	return doc.effective()
}

// SetFeature toggles one detection rule for a guild.
func (s *Store) SetFeature(guildID string, f Feature, enabled bool) error {
	return s.mutate(guildID, func(d *moderationDoc) error {
		v := enabled
		switch f {
		case FeatureAntiRaid:
			d.AntiRaid = &v
		case FeatureAntiSpam:
			d.AntiSpam = &v
		case FeatureAntiLink:
			d.AntiLink = &v
		case FeatureAntiNuke:
			d.AntiNuke = &v
		default:
			return fmt.Errorf("unknown feature %q", f)
		}
		return nil
	})
}

// SetRaidLimits updates the join-burst window and threshold.
func (s *Store) SetRaidLimits(guildID string, windowSec, maxJoins int) error {
	if windowSec < 1 || maxJoins < 1 {
		return fmt.Errorf("raid limits must be positive, got window=%d max=%d", windowSec, maxJoins)
	}
	return s.mutate(guildID, func(d *moderationDoc) error {
		d.RaidWindowSec = windowSec
		d.RaidMaxJoins = maxJoins
		return nil
	})
}

// SetSpamLimits updates the per-user message window and threshold.
func (s *Store) SetSpamLimits(guildID string, windowSec, maxMessages int) error {
	if windowSec < 1 || maxMessages < 1 {
		return fmt.Errorf("spam limits must be positive, got window=%d max=%d", windowSec, maxMessages)
	}
	return s.mutate(guildID, func(d *moderationDoc) error {
		d.SpamWindowSec = windowSec
		d.SpamMaxMessages = maxMessages
		return nil
	})
}

// SetLogChannel designates the guild's log sink. Empty clears it.
func (s *Store) SetLogChannel(guildID, channelID string) error {
	return s.mutate(guildID, func(d *moderationDoc) error {
		d.LogChannelID = channelID
		return nil
	})
}

func (s *Store) mutate(guildID string, apply func(*moderationDoc) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.guilds[guildID]
	if err := apply(&next); err != nil {
		return err
	}

	snapshot := make(map[string]moderationDoc, len(s.guilds)+1)
	for k, v := range s.guilds {
		snapshot[k] = v
	}
	snapshot[guildID] = next

	if err := s.fs.Save(snapshot); err != nil {
		return fmt.Errorf("failed to persist moderation config: %w", err)
	}
	s.guilds = snapshot
	return nil
}
