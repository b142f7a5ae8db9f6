package commands

import (
	"fmt"

	"github.com/adityaska2007-maker/meta-sonic-bot/internal/config"
	"github.com/adityaska2007-maker/meta-sonic-bot/internal/database"
	"github.com/adityaska2007-maker/meta-sonic-bot/internal/logging"
	"github.com/adityaska2007-maker/meta-sonic-bot/internal/trust"

	"github.com/bwmarrin/discordgo"
)

// Handler routes admin slash commands to the config store and trust registry.
type Handler struct {
	cfg   *config.Store
	trust *trust.Registry
	db    *database.Database
}

func NewHandler(cfg *config.Store, reg *trust.Registry, db *database.Database) *Handler {
	return &Handler{cfg: cfg, trust: reg, db: db}
}

// Register attaches the interaction handler and registers the command set.
func (h *Handler) Register(session *discordgo.Session) error {
	session.AddHandler(h.handleInteraction)

	for _, cmd := range Definitions() {
		if _, err := session.ApplicationCommandCreate(session.State.User.ID, "", cmd); err != nil {
			return fmt.Errorf("failed to register command %s: %w", cmd.Name, err)
		}
		logging.Info("Registered command: /%s", cmd.Name)
	}
	return nil
}

func (h *Handler) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand || i.GuildID == "" {
		return
	}

	data := i.ApplicationCommandData()

	var reply string
	var err error
	switch data.Name {
	case "whitelist":
		reply, err = h.handleWhitelist(s, i, data)
	case "feature":
		reply, err = h.handleFeature(data, i.GuildID)
	case "limits":
		reply, err = h.handleLimits(data, i.GuildID)
	case "setlog":
		reply, err = h.handleSetLog(s, data, i.GuildID)
	case "status":
		reply, err = h.handleStatus(i.GuildID)
	default:
		return
	}

	if err != nil {
		logging.Error("Command /%s failed in guild %s: %v", data.Name, i.GuildID, err)
		reply = "An internal error occurred."
	}
	respond(s, i, reply)
}

func respond(s *discordgo.Session, i *discordgo.InteractionCreate, text string) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: text,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		logging.Warn("Failed to respond to interaction: %v", err)
	}
}
