package commands

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
)

func (h *Handler) handleWhitelist(s *discordgo.Session, i *discordgo.InteractionCreate, data discordgo.ApplicationCommandInteractionData) (string, error) {
	if len(data.Options) == 0 {
		return "", fmt.Errorf("missing subcommand")
	}
	sub := data.Options[0]
	guildID := i.GuildID

	switch sub.Name {
	case "view":
		return h.whitelistView(guildID), nil

	case "adduser":
		user := sub.Options[0].UserValue(s)
		changed, err := h.trust.AddUser(guildID, user.ID)
		if err != nil {
			return "", err
		}
		if !changed {
			return fmt.Sprintf("⚠️ <@%s> is already whitelisted.", user.ID), nil
		}
		return fmt.Sprintf("✅ Added <@%s> to the whitelist.", user.ID), nil

	case "removeuser":
		user := sub.Options[0].UserValue(s)
		changed, err := h.trust.RemoveUser(guildID, user.ID)
		if err != nil {
			return "", err
		}
		if !changed {
			return fmt.Sprintf("⚠️ <@%s> is not in the whitelist.", user.ID), nil
		}
		return fmt.Sprintf("❌ Removed <@%s> from the whitelist.", user.ID), nil

	case "addrole":
		role := sub.Options[0].RoleValue(s, guildID)
		changed, err := h.trust.AddRole(guildID, role.ID)
		if err != nil {
			return "", err
		}
		if !changed {
			return fmt.Sprintf("⚠️ <@&%s> is already whitelisted.", role.ID), nil
		}
		return fmt.Sprintf("✅ Added role <@&%s> to the whitelist.", role.ID), nil

	case "removerole":
		role := sub.Options[0].RoleValue(s, guildID)
		changed, err := h.trust.RemoveRole(guildID, role.ID)
		if err != nil {
			return "", err
		}
		if !changed {
			return fmt.Sprintf("⚠️ <@&%s> is not in the whitelist.", role.ID), nil
		}
		return fmt.Sprintf("❌ Removed role <@&%s> from the whitelist.", role.ID), nil
	}
	return "", fmt.Errorf("unknown whitelist subcommand %q", sub.Name)
}

func (h *Handler) whitelistView(guildID string) string {
	users, roles := h.trust.List(guildID)
	if len(users) == 0 && len(roles) == 0 {
		return "⚠️ Whitelist is empty."
	}

	var lines []string
	if len(users) > 0 {
		mentions := make([]string, len(users))
		for n, id := range users {
			mentions[n] = "<@" + id + ">"
		}
		lines = append(lines, "👤 Users: "+strings.Join(mentions, ", "))
	}
	if len(roles) > 0 {
		mentions := make([]string, len(roles))
		for n, id := range roles {
			mentions[n] = "<@&" + id + ">"
		}
		lines = append(lines, "📌 Roles: "+strings.Join(mentions, ", "))
	}
	return strings.Join(lines, "\n")
}
