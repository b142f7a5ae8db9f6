package trust

import (
	"fmt"
	"sort"
	"sync"

	"github.com/adityaska2007-maker/meta-sonic-bot/internal/store"
)

// Registry tracks per-guild exempt principals: user IDs and role IDs that
// automated punishment must never touch. Every successful mutation is
// persisted before it is acknowledged.
type Registry struct {
	mu     sync.RWMutex
	guilds map[string]*guildTrust
	fs     *store.FileStore
}

type guildTrust struct {
	users map[string]struct{}
	roles map[string]struct{}
}

type guildTrustDoc struct {
	Users []string `json:"trusted_users"`
	Roles []string `json:"trusted_roles"`
}

func NewRegistry(fs *store.FileStore) *Registry {
	return &Registry{
		guilds: make(map[string]*guildTrust),
		fs:     fs,
	}
}

// Load reads the persisted trust document. A missing file is an empty
// registry.
func (r *Registry) Load() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc := make(map[string]guildTrustDoc)
	if _, err := r.fs.Load(&doc); err != nil {
		return err
	}

	guilds := make(map[string]*guildTrust, len(doc))
	for guildID, g := range doc {
		gt := newGuildTrust()
		for _, id := range g.Users {
			gt.users[id] = struct{}{}
		}
		for _, id := range g.Roles {
			gt.roles[id] = struct{}{}
		}
		guilds[guildID] = gt
	}
	r.guilds = guilds
	return nil
}

func newGuildTrust() *guildTrust {
	return &guildTrust{
		users: make(map[string]struct{}),
		roles: make(map[string]struct{}),
	}
}

// IsExempt reports whether the user, or any of its roles, is trusted in the
// guild.
func (r *Registry) IsExempt(guildID, userID string, roleIDs []string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	gt, exists := r.guilds[guildID]
	if !exists {
		return false
	}
	if _, ok := gt.users[userID]; ok {
		return true
	}
	for _, roleID := range roleIDs {
		if _, ok := gt.roles[roleID]; ok {
			return true
		}
	}
	return false
}

// AddUser trusts a user. Returns changed=false if already trusted.
func (r *Registry) AddUser(guildID, userID string) (bool, error) {
	return r.mutate(guildID, func(gt *guildTrust) bool {
		if _, ok := gt.users[userID]; ok {
			return false
		}
		gt.users[userID] = struct{}{}
		return true
	})
}

// RemoveUser untrusts a user. Returns changed=false if not trusted.
func (r *Registry) RemoveUser(guildID, userID string) (bool, error) {
	return r.mutate(guildID, func(gt *guildTrust) bool {
		if _, ok := gt.users[userID]; !ok {
			return false
		}
		delete(gt.users, userID)
		return true
	})
}

// AddRole trusts a role. Returns changed=false if already trusted.
func (r *Registry) AddRole(guildID, roleID string) (bool, error) {
	return r.mutate(guildID, func(gt *guildTrust) bool {
		if _, ok := gt.roles[roleID]; ok {
			return false
		}
		gt.roles[roleID] = struct{}{}
		return true
	})
}

// RemoveRole untrusts a role. Returns changed=false if not trusted.
func (r *Registry) RemoveRole(guildID, roleID string) (bool, error) {
	return r.mutate(guildID, func(gt *guildTrust) bool {
		if _, ok := gt.roles[roleID]; !ok {
			return false
		}
		delete(gt.roles, roleID)
		return true
	})
}

// List returns the trusted users and roles of a guild, sorted.
func (r *Registry) List(guildID string) (users, roles []string) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	gt, exists := r.guilds[guildID]
	if !exists {
		return nil, nil
	}
	return sortedKeys(gt.users), sortedKeys(gt.roles)
}

// mutate applies the change to a copy, persists, then commits. A persistence
// failure leaves the in-memory registry untouched.
func (r *Registry) mutate(guildID string, apply func(*guildTrust) bool) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	next := newGuildTrust()
	if cur, exists := r.guilds[guildID]; exists {
		for id := range cur.users {
			next.users[id] = struct{}{}
		}
		for id := range cur.roles {
			next.roles[id] = struct{}{}
		}
	}

	if !apply(next) {
		return false, nil
	}

	doc := make(map[string]guildTrustDoc, len(r.guilds)+1)
	for gid, gt := range r.guilds {
		if gid == guildID {
			continue
		}
		doc[gid] = guildTrustDoc{Users: sortedKeys(gt.users), Roles: sortedKeys(gt.roles)}
	}
	doc[guildID] = guildTrustDoc{Users: sortedKeys(next.users), Roles: sortedKeys(next.roles)}

	if err := r.fs.Save(doc); err != nil {
		return false, fmt.Errorf("failed to persist trust registry: %w", err)
	}
	r.guilds[guildID] = next
	return true, nil
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
