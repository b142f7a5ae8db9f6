package commands

import "github.com/bwmarrin/discordgo"

// Definitions returns the application commands the engine registers.
func Definitions() []*discordgo.ApplicationCommand {
	adminOnly := int64(discordgo.PermissionAdministrator)

	return []*discordgo.ApplicationCommand{
		{
			Name:                     "whitelist",
			Description:              "Manage trusted users and roles",
			DefaultMemberPermissions: &adminOnly,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Name:        "view",
					Description: "Show the whitelist",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
				},
				{
					Name:        "adduser",
					Description: "Trust a user",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Options: []*discordgo.ApplicationCommandOption{
						{
							Name:        "user",
							Description: "User to trust",
							Type:        discordgo.ApplicationCommandOptionUser,
							Required:    true,
						},
					},
				},
				{
					Name:        "removeuser",
					Description: "Untrust a user",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Options: []*discordgo.ApplicationCommandOption{
						{
							Name:        "user",
							Description: "User to untrust",
							Type:        discordgo.ApplicationCommandOptionUser,
							Required:    true,
						},
					},
				},
				{
					Name:        "addrole",
					Description: "Trust a role",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Options: []*discordgo.ApplicationCommandOption{
						{
							Name:        "role",
							Description: "Role to trust",
							Type:        discordgo.ApplicationCommandOptionRole,
							Required:    true,
						},
					},
				},
				{
					Name:        "removerole",
					Description: "Untrust a role",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Options: []*discordgo.ApplicationCommandOption{
						{
							Name:        "role",
							Description: "Role to untrust",
							Type:        discordgo.ApplicationCommandOptionRole,
							Required:    true,
						},
					},
				},
			},
		},
		{
			Name:                     "feature",
			Description:              "Enable or disable a detection rule",
			DefaultMemberPermissions: &adminOnly,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Name:        "name",
					Description: "Detection rule",
					Type:        discordgo.ApplicationCommandOptionString,
					Required:    true,
					Choices: []*discordgo.ApplicationCommandOptionChoice{
						{Name: "antiraid", Value: "antiraid"},
						{Name: "antispam", Value: "antispam"},
						{Name: "antilink", Value: "antilink"},
						{Name: "antinuke", Value: "antinuke"},
					},
				},
				{
					Name:        "mode",
					Description: "on or off",
					Type:        discordgo.ApplicationCommandOptionString,
					Required:    true,
					Choices: []*discordgo.ApplicationCommandOptionChoice{
						{Name: "on", Value: "on"},
						{Name: "off", Value: "off"},
					},
				},
			},
		},
		{
			Name:                     "limits",
			Description:              "Tune detection thresholds",
			DefaultMemberPermissions: &adminOnly,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Name:        "rule",
					Description: "Rule to tune",
					Type:        discordgo.ApplicationCommandOptionString,
					Required:    true,
					Choices: []*discordgo.ApplicationCommandOptionChoice{
						{Name: "raid", Value: "raid"},
						{Name: "spam", Value: "spam"},
					},
				},
				{
					Name:        "window",
					Description: "Window in seconds",
					Type:        discordgo.ApplicationCommandOptionInteger,
					Required:    true,
				},
				{
					Name:        "max",
					Description: "Maximum events inside the window",
					Type:        discordgo.ApplicationCommandOptionInteger,
					Required:    true,
				},
			},
		},
		{
			Name:                     "setlog",
			Description:              "Designate the moderation log channel",
			DefaultMemberPermissions: &adminOnly,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Name:        "channel",
					Description: "Channel for moderation logs",
					Type:        discordgo.ApplicationCommandOptionChannel,
					Required:    true,
				},
			},
		},
		{
			Name:                     "status",
			Description:              "Show protection status and recent activity",
			DefaultMemberPermissions: &adminOnly,
		},
	}
}
