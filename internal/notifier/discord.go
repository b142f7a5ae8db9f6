package notifier

import (
	"github.com/adityaska2007-maker/meta-sonic-bot/internal/logging"

	"github.com/bwmarrin/discordgo"
)

// Notifier posts moderation log lines to guild channels. Emission is
// best-effort: a failed send is logged and dropped, never surfaced to the
// caller.
type Notifier struct {
	session *discordgo.Session
}

func New(session *discordgo.Session) *Notifier {
	return &Notifier{session: session}
}

// Emit sends one line to the channel. Safe to call with an unset session
// (tests, early startup).
func (n *Notifier) Emit(channelID, text string) {
	if n.session == nil || channelID == "" {
		return
	}
	if _, err := n.session.ChannelMessageSend(channelID, text); err != nil {
		logging.Debug("Log emission to channel %s failed: %v", channelID, err)
	}
}
