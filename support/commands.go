package support

import (
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/starshine-sys/bcr"
)

func (bot *Bot) initCommands() {
	menu := bot.Router.AddCommand(&bcr.Command{
		Name:    "contactmenu",
		Aliases: []string{"contact-menu"},
		Summary: "The contact panel members use to open tickets.",

		GuildOnly:   true,
		Permissions: discord.PermissionManageGuild,
		Command:     bot.cmdMenuShow,
	})

	menu.AddSubcommand(&bcr.Command{
		Name:    "create",
		Summary: "Post the contact panel.",
		Usage:   "[channel]",

		GuildOnly:   true,
		Permissions: discord.PermissionManageGuild,
		Command:     bot.cmdMenuCreate,
	})

	menu.AddSubcommand(&bcr.Command{
		Name:    "attach",
		Summary: "Attach the contact button to an existing message of mine.",
		Usage:   "<message link>",
		Args:    bcr.MinArgs(1),

		GuildOnly:   true,
		Permissions: discord.PermissionManageGuild,
		Command:     bot.cmdMenuAttach,
	})

	menu.AddSubcommand(&bcr.Command{
		Name:    "refresh",
		Summary: "Re-render the panel from the current configuration.",

		GuildOnly:   true,
		Permissions: discord.PermissionManageGuild,
		Command:     bot.cmdMenuRefresh,
	})

	menu.AddSubcommand(&bcr.Command{
		Name:    "disable",
		Summary: "Remove the panel's components and stop listening.",

		GuildOnly:   true,
		Permissions: discord.PermissionManageGuild,
		Command:     bot.cmdMenuDisable,
	})

	cfg := menu.AddSubcommand(&bcr.Command{
		Name:    "config",
		Summary: "Configure the contact panel.",

		GuildOnly:   true,
		Permissions: discord.PermissionManageGuild,
		Command:     bot.cmdMenuConfigShow,
	})

	cfg.AddSubcommand(&bcr.Command{
		Name:    "embed",
		Summary: "Edit the panel embed's title, description, and footer.",

		GuildOnly:   true,
		Permissions: discord.PermissionManageGuild,
		Command:     bot.cmdMenuConfigEmbed,
	})

	cfg.AddSubcommand(&bcr.Command{
		Name:    "button",
		Summary: "Edit the contact button's emoji, label, and style.",

		GuildOnly:   true,
		Permissions: discord.PermissionManageGuild,
		Command:     bot.cmdMenuConfigButton,
	})

	cfg.AddSubcommand(&bcr.Command{
		Name:    "category",
		Summary: "Get or set the default category tickets open under.",
		Usage:   "[category]",

		GuildOnly:   true,
		Permissions: discord.PermissionManageGuild,
		Command:     bot.cmdMenuConfigCategory,
	})

	cfg.AddSubcommand(&bcr.Command{
		Name:    "confirm",
		Summary: "Get or set whether opening a ticket asks for confirmation.",
		Usage:   "[true/false]",

		GuildOnly:   true,
		Permissions: discord.PermissionManageGuild,
		Command:     bot.cmdMenuConfigConfirm,
	})

	cfg.AddSubcommand(&bcr.Command{
		Name:    "clear",
		Summary: "**Reset the whole contact and feedback configuration.**",

		GuildOnly:   true,
		Permissions: discord.PermissionManageGuild,
		Command:     bot.cmdMenuConfigClear,
	})

	dd := cfg.AddSubcommand(&bcr.Command{
		Name:    "dropdown",
		Summary: "The category dropdown shown before a ticket opens.",

		GuildOnly:   true,
		Permissions: discord.PermissionManageGuild,
		Command:     bot.cmdDropdownShow,
	})

	dd.AddSubcommand(&bcr.Command{
		Name:    "enable",
		Summary: "Get or set whether the dropdown is shown.",
		Usage:   "[true/false]",

		GuildOnly:   true,
		Permissions: discord.PermissionManageGuild,
		Command:     bot.cmdDropdownEnable,
	})

	dd.AddSubcommand(&bcr.Command{
		Name:    "placeholder",
		Summary: "Edit the dropdown's placeholder text.",

		GuildOnly:   true,
		Permissions: discord.PermissionManageGuild,
		Command:     bot.cmdDropdownPlaceholder,
	})

	dd.AddSubcommand(&bcr.Command{
		Name:    "add",
		Summary: "Add a dropdown option linked to a category.",

		GuildOnly:   true,
		Permissions: discord.PermissionManageGuild,
		Command:     bot.cmdDropdownAdd,
	})

	dd.AddSubcommand(&bcr.Command{
		Name:    "list",
		Summary: "List the dropdown's options.",

		GuildOnly:   true,
		Permissions: discord.PermissionManageGuild,
		Command:     bot.cmdDropdownList,
	})

	dd.AddSubcommand(&bcr.Command{
		Name:    "clear",
		Summary: "Remove all dropdown options.",

		GuildOnly:   true,
		Permissions: discord.PermissionManageGuild,
		Command:     bot.cmdDropdownClear,
	})

	ticket := bot.Router.AddCommand(&bcr.Command{
		Name:    "ticket",
		Summary: "Support tickets.",

		GuildOnly:   true,
		Permissions: discord.PermissionManageMessages,
		Command:     bot.cmdTicketShow,
	})

	ticket.AddSubcommand(&bcr.Command{
		Name:    "close",
		Summary: "Close the ticket this channel belongs to.",

		GuildOnly:   true,
		Permissions: discord.PermissionManageMessages,
		Command:     bot.cmdTicketClose,
	})

	ticket.AddSubcommand(&bcr.Command{
		Name:    "list",
		Summary: "List this server's open tickets.",

		GuildOnly:   true,
		Permissions: discord.PermissionManageMessages,
		Command:     bot.cmdTicketList,
	})

	bot.Router.AddCommand(&bcr.Command{
		Name:    "block",
		Summary: "Block a user from opening tickets.",
		Usage:   "<user> [reason...]",
		Args:    bcr.MinArgs(1),

		GuildOnly:   true,
		Permissions: discord.PermissionManageGuild,
		Command:     bot.cmdBlock,
	})

	bot.Router.AddCommand(&bcr.Command{
		Name:    "unblock",
		Summary: "Allow a blocked user to open tickets again.",
		Usage:   "<user>",
		Args:    bcr.MinArgs(1),

		GuildOnly:   true,
		Permissions: discord.PermissionManageGuild,
		Command:     bot.cmdUnblock,
	})

	bot.Router.AddCommand(&bcr.Command{
		Name:    "blocked",
		Summary: "List users blocked from opening tickets.",

		GuildOnly:   true,
		Permissions: discord.PermissionManageGuild,
		Command:     bot.cmdBlocked,
	})

	fb := bot.Router.AddCommand(&bcr.Command{
		Name:    "feedback",
		Summary: "Ticket feedback prompts.",

		GuildOnly:   true,
		Permissions: discord.PermissionManageMessages,
		Command:     bot.cmdFeedbackShow,
	})

	fb.AddSubcommand(&bcr.Command{
		Name:    "send",
		Summary: "Send a feedback prompt. In a ticket channel, the user can be omitted.",
		Usage:   "[user]",

		GuildOnly:   true,
		Permissions: discord.PermissionManageMessages,
		Command:     bot.cmdFeedbackSend,
	})

	fb.AddSubcommand(&bcr.Command{
		Name:    "cancel",
		Summary: "Cancel a user's active feedback prompt.",
		Usage:   "<user>",
		Args:    bcr.MinArgs(1),

		GuildOnly:   true,
		Permissions: discord.PermissionManageMessages,
		Command:     bot.cmdFeedbackCancel,
	})

	fb.AddSubcommand(&bcr.Command{
		Name:    "list",
		Summary: "List active feedback prompts.",

		GuildOnly:   true,
		Permissions: discord.PermissionManageMessages,
		Command:     bot.cmdFeedbackList,
	})

	fbc := fb.AddSubcommand(&bcr.Command{
		Name:    "config",
		Summary: "Configure the feedback feature.",

		GuildOnly:   true,
		Permissions: discord.PermissionManageGuild,
		Command:     bot.cmdFeedbackConfigShow,
	})

	fbc.AddSubcommand(&bcr.Command{
		Name:    "enable",
		Summary: "Get or set whether a prompt is sent when a ticket closes.",
		Usage:   "[true/false]",

		GuildOnly:   true,
		Permissions: discord.PermissionManageGuild,
		Command:     bot.cmdFeedbackConfigEnable,
	})

	fbc.AddSubcommand(&bcr.Command{
		Name:    "channel",
		Summary: "Get or set the channel submissions are logged to.",
		Usage:   "[channel]",

		GuildOnly:   true,
		Permissions: discord.PermissionManageGuild,
		Command:     bot.cmdFeedbackConfigChannel,
	})

	fbc.AddSubcommand(&bcr.Command{
		Name:    "embed",
		Summary: "Edit the prompt embed's title, description, and footer.",

		GuildOnly:   true,
		Permissions: discord.PermissionManageGuild,
		Command:     bot.cmdFeedbackConfigEmbed,
	})

	fbc.AddSubcommand(&bcr.Command{
		Name:    "button",
		Summary: "Edit the feedback button's emoji, label, and style.",

		GuildOnly:   true,
		Permissions: discord.PermissionManageGuild,
		Command:     bot.cmdFeedbackConfigButton,
	})

	fbc.AddSubcommand(&bcr.Command{
		Name:    "response",
		Summary: "Edit the thank-you text sent after a submission.",

		GuildOnly:   true,
		Permissions: discord.PermissionManageGuild,
		Command:     bot.cmdFeedbackConfigResponse,
	})

	rating := fbc.AddSubcommand(&bcr.Command{
		Name:    "rating",
		Summary: "The star rating select on the prompt.",

		GuildOnly:   true,
		Permissions: discord.PermissionManageGuild,
		Command:     bot.cmdRatingShow,
	})

	rating.AddSubcommand(&bcr.Command{
		Name:    "enable",
		Summary: "Get or set whether the rating select is shown.",
		Usage:   "[true/false]",

		GuildOnly:   true,
		Permissions: discord.PermissionManageGuild,
		Command:     bot.cmdRatingEnable,
	})

	rating.AddSubcommand(&bcr.Command{
		Name:    "placeholder",
		Summary: "Edit the rating select's placeholder text.",

		GuildOnly:   true,
		Permissions: discord.PermissionManageGuild,
		Command:     bot.cmdRatingPlaceholder,
	})

	fbc.AddSubcommand(&bcr.Command{
		Name:    "clear",
		Summary: "**Reset the feedback configuration.**",

		GuildOnly:   true,
		Permissions: discord.PermissionManageGuild,
		Command:     bot.cmdFeedbackConfigClear,
	})
}
