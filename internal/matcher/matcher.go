package matcher

import "regexp"

// Classification is the result of inspecting one message body.
type Classification struct {
	ContainsInvite bool
	ContainsURL    bool
}

// Violation reports whether either signal fired. Any URL counts, not just
// invites: the link policy is intentionally permissive.
func (c Classification) Violation() bool {
	return c.ContainsInvite || c.ContainsURL
}

var (
	// Scheme and www are optional; the invite code is alphanumeric with
	// dashes, any length.
	inviteRe = regexp.MustCompile(`(?i)(?:https?://)?(?:www\.)?(?:discord\.gg|discord(?:app)?\.com/invite|discord\.me)/[a-zA-Z0-9-]+`)
	urlRe    = regexp.MustCompile(`(?i)(?:https?://|www\.)\S+`)
)

// Classify inspects a message body. Pure function, no state.
func Classify(text string) Classification {
	return Classification{
		ContainsInvite: inviteRe.MatchString(text),
		ContainsURL:    urlRe.MatchString(text),
	}
}
