package punish

import (
	"errors"
	"time"
)

// ErrPermissionDenied marks a platform refusal for lack of authorization.
// Non-fatal per sub-action; never retried.
var ErrPermissionDenied = errors.New("permission denied")

// ErrNotFound marks a target that is already gone. Treated as a successful
// no-op: there is nothing left to punish.
var ErrNotFound = errors.New("not found")

// Platform is the action capability against the chat platform. Every call may
// fail with ErrPermissionDenied, ErrNotFound, or a transient error.
type Platform interface {
	RaiseVerification(guildID string) error
	Eject(guildID, userID, reason string, ban bool) error
	DeleteMessage(channelID, messageID string) error
	PostTransient(channelID, text string, ttl time.Duration) error
}
