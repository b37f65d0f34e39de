package invites

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/diamondburned/arikawa/v3/api"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/spf13/pflag"
	"github.com/starshine-sys/bcr"

	"doorman/common/duration"
	"doorman/db"
	"doorman/stats"
)

func (bot *Bot) initCommands() {
	inv := bot.Router.AddCommand(&bcr.Command{
		Name:    "invites",
		Aliases: []string{"invite"},
		Summary: "Invite tracking.",
		Description: `Track which invite new members used to join.
Joins and leaves are logged to the configured channel, together with the inferred invite.`,

		GuildOnly:   true,
		Permissions: discord.PermissionManageMessages,
		Command:     bot.cmdHelp,
	})

	cfg := inv.AddSubcommand(&bcr.Command{
		Name:    "config",
		Summary: "Show or change this server's invite tracking settings.",

		GuildOnly:   true,
		Permissions: discord.PermissionManageGuild,
		Command:     bot.cmdConfigShow,
	})

	cfg.AddSubcommand(&bcr.Command{
		Name:    "channel",
		Summary: "Get or set the log channel.",
		Usage:   "[channel]",
		Flags: func(fs *pflag.FlagSet) *pflag.FlagSet {
			fs.BoolP("clear", "c", false, "Clear the log channel.")
			return fs
		},

		GuildOnly:   true,
		Permissions: discord.PermissionManageGuild,
		Command:     bot.cmdConfigChannel,
	})

	cfg.AddSubcommand(&bcr.Command{
		Name:    "enable",
		Summary: "Get or set whether invite tracking is enabled.",
		Usage:   "[true/false]",

		GuildOnly:   true,
		Permissions: discord.PermissionManageGuild,
		Command:     bot.cmdConfigEnable,
	})

	cfg.AddSubcommand(&bcr.Command{
		Name:    "reset",
		Summary: "Reset this server's invite tracking settings.",

		GuildOnly:   true,
		Permissions: discord.PermissionManageGuild,
		Command:     bot.cmdConfigReset,
	})

	store := inv.AddSubcommand(&bcr.Command{
		Name:    "store",
		Summary: "Stored join data.",
		Description: `When storing data is enabled, the invite a member joined with is remembered, and can be looked up later.
Stored entries are removed when the member leaves.`,

		GuildOnly:   true,
		Permissions: discord.PermissionManageGuild,
		Command:     bot.cmdStoreHelp,
	})

	store.AddSubcommand(&bcr.Command{
		Name:    "enable",
		Summary: "Get or set whether join data is stored.",
		Usage:   "[true/false]",

		GuildOnly:   true,
		Permissions: discord.PermissionManageGuild,
		Command:     bot.cmdStoreEnable,
	})

	store.AddSubcommand(&bcr.Command{
		Name:    "get",
		Summary: "Show the invite a member used to join.",
		Usage:   "<member>",
		Args:    bcr.MinArgs(1),

		GuildOnly:   true,
		Permissions: discord.PermissionManageGuild,
		Command:     bot.cmdStoreGet,
	})

	store.AddSubcommand(&bcr.Command{
		Name:    "delete",
		Summary: "Delete a user's stored join data, in every server.",
		Usage:   "<user ID>",
		Args:    bcr.MinArgs(1),

		GuildOnly:   true,
		Permissions: discord.PermissionManageGuild,
		Command:     bot.cmdStoreDelete,
	})

	store.AddSubcommand(&bcr.Command{
		Name:    "clear",
		Summary: "**Clear all stored join data, for every user and server.**",

		OwnerOnly: true,
		Command:   bot.cmdStoreClear,
	})

	inv.AddSubcommand(&bcr.Command{
		Name:    "list",
		Summary: "List this server's invites, most used first.",

		GuildOnly:   true,
		Permissions: discord.PermissionManageMessages,
		Command:     bot.cmdList,
	})

	inv.AddSubcommand(&bcr.Command{
		Name:    "info",
		Summary: "Show details for an invite code.",
		Usage:   "<code>",
		Args:    bcr.MinArgs(1),

		GuildOnly:   true,
		Permissions: discord.PermissionManageMessages,
		Command:     bot.cmdInfo,
	})

	inv.AddSubcommand(&bcr.Command{
		Name:    "delete",
		Aliases: []string{"revoke"},
		Summary: "Delete an invite from this server.",
		Usage:   "<code>",
		Args:    bcr.MinArgs(1),

		GuildOnly:   true,
		Permissions: discord.PermissionManageGuild,
		Command:     bot.cmdDelete,
	})

	inv.AddSubcommand(&bcr.Command{
		Name:    "refresh",
		Summary: "Re-fetch this server's invite snapshot.",

		OwnerOnly: true,
		GuildOnly: true,
		Command:   bot.cmdRefresh,
	})
}

func (bot *Bot) cmdHelp(ctx *bcr.Context) (err error) {
	bot.Stats.Inc(stats.CounterCommands)

	_, err = ctx.Send("", discord.Embed{
		Title: "Invite tracking",
		Description: `Track which invite new members used to join.

**Commands**
` + "`invites config`" + `: show or change tracking settings
` + "`invites store`" + `: stored join data
` + "`invites list`" + `: list this server's invites
` + "`invites info <code>`" + `: show details for an invite
` + "`invites delete <code>`" + `: delete an invite`,
		Color: bot.Router.EmbedColor,
	})
	return
}

func (bot *Bot) cmdConfigShow(ctx *bcr.Context) (err error) {
	bot.Stats.Inc(stats.CounterCommands)

	g, err := bot.DB.InviteGuild(context.Background(), ctx.Message.GuildID)
	if err != nil {
		return bot.DB.ReportCtx(ctx, err)
	}

	channel := "not set"
	if g.Channel.IsValid() {
		channel = g.Channel.Mention()
	}
	webhook := "no"
	if g.Webhook != "" {
		webhook = "yes"
	}

	_, err = ctx.Send("", discord.Embed{
		Title: "Invite tracking settings",
		Fields: []discord.EmbedField{
			{Name: "Enabled", Value: strconv.FormatBool(g.Enabled), Inline: true},
			{Name: "Log channel", Value: channel, Inline: true},
			{Name: "Storing join data", Value: strconv.FormatBool(g.StoreData), Inline: true},
			{Name: "Webhook cached", Value: webhook, Inline: true},
		},
		Color: bot.Router.EmbedColor,
	})
	return
}

func (bot *Bot) cmdConfigChannel(ctx *bcr.Context) (err error) {
	bot.Stats.Inc(stats.CounterCommands)

	if clear, _ := ctx.Flags.GetBool("clear"); clear {
		err = bot.DB.SetInviteChannel(context.Background(), ctx.Message.GuildID, discord.NullChannelID)
		if err != nil {
			return bot.DB.ReportCtx(ctx, err)
		}
		_, err = ctx.Send("Log channel cleared. Join and leave logs are disabled until you set a new one.")
		return
	}

	if len(ctx.Args) == 0 {
		g, err := bot.DB.InviteGuild(context.Background(), ctx.Message.GuildID)
		if err != nil {
			return bot.DB.ReportCtx(ctx, err)
		}
		if !g.Channel.IsValid() {
			_, err = ctx.Send("No log channel is set.")
			return err
		}
		_, err = ctx.Sendf("The current log channel is %v.", g.Channel.Mention())
		return err
	}

	ch, err := ctx.ParseChannel(ctx.Args[0])
	if err != nil || ch.GuildID != ctx.Message.GuildID || ch.Type != discord.GuildText {
		_, err = ctx.Send("Couldn't find that channel, or it's not a text channel in this server.")
		return err
	}

	err = bot.DB.SetInviteChannel(context.Background(), ctx.Message.GuildID, ch.ID)
	if err != nil {
		return bot.DB.ReportCtx(ctx, err)
	}

	_, err = ctx.Sendf("Log channel set to %v.", ch.Mention())
	return
}

func (bot *Bot) cmdConfigEnable(ctx *bcr.Context) (err error) {
	bot.Stats.Inc(stats.CounterCommands)

	g, err := bot.DB.InviteGuild(context.Background(), ctx.Message.GuildID)
	if err != nil {
		return bot.DB.ReportCtx(ctx, err)
	}

	if len(ctx.Args) == 0 {
		state := "disabled"
		if g.Enabled {
			state = "enabled"
		}
		_, err = ctx.Sendf("Invite tracking is currently **%v**.", state)
		return err
	}

	enable, err := strconv.ParseBool(ctx.Args[0])
	if err != nil {
		_, err = ctx.Send("Couldn't parse your input as true or false.")
		return err
	}

	err = bot.DB.SetInvitesEnabled(context.Background(), ctx.Message.GuildID, enable)
	if err != nil {
		return bot.DB.ReportCtx(ctx, err)
	}

	if enable {
		// start from a current snapshot, otherwise every invite looks new
		cctx, cancel := getctx()
		defer cancel()
		if _, err := bot.refreshInvites(cctx, ctx.Message.GuildID); err != nil {
			_, err = ctx.Send("Tracking is enabled, but I couldn't fetch this server's invites. Do I have the **Manage Server** permission?")
			return err
		}
		bot.seedVanity(ctx.Message.GuildID)
		_, err = ctx.Send("Invite tracking is now **enabled**.")
		return err
	}

	_, err = ctx.Send("Invite tracking is now **disabled**.")
	return
}

func (bot *Bot) cmdConfigReset(ctx *bcr.Context) (err error) {
	bot.Stats.Inc(stats.CounterCommands)

	yes, err := bot.UI.Confirm(ctx.State, ctx.Message.ChannelID, ctx.Author.ID,
		"⚠️ **Are you sure you want to reset this server's invite tracking settings?**")
	if err != nil || !yes {
		_, err = ctx.Send("Operation cancelled.")
		return err
	}

	_, err = bot.DB.Exec(context.Background(), "delete from invite_guilds where id = $1", ctx.Message.GuildID)
	if err != nil {
		return bot.DB.ReportCtx(ctx, err)
	}

	cctx, cancel := getctx()
	defer cancel()
	if err := bot.Store.DeleteInvites(cctx, ctx.Message.GuildID); err != nil {
		return bot.DB.ReportCtx(ctx, err)
	}

	_, err = ctx.Send("Settings reset.")
	return
}

func (bot *Bot) cmdList(ctx *bcr.Context) (err error) {
	bot.Stats.Inc(stats.CounterCommands)

	is, err := ctx.State.GuildInvites(ctx.Message.GuildID)
	if err != nil {
		_, err = ctx.Send("Couldn't get this server's invites. Are you sure I have the **Manage Server** permission?")
		return err
	}

	if len(is) == 0 {
		_, err = ctx.Send("This server has no invites.")
		return err
	}

	sort.Slice(is, func(i, j int) bool { return is[i].Uses > is[j].Uses })

	fields := make([]discord.EmbedField, 0, len(is))
	for _, i := range is {
		v := fmt.Sprintf("Uses: %v", i.Uses)
		if i.MaxUses != 0 {
			v = fmt.Sprintf("Uses: %v/%v", i.Uses, i.MaxUses)
		}
		if i.Inviter != nil {
			v += fmt.Sprintf("\nCreated by %v#%v", i.Inviter.Username, i.Inviter.Discriminator)
		}
		if i.Channel.ID.IsValid() {
			v += "\nFor " + i.Channel.ID.Mention()
		}

		fields = append(fields, discord.EmbedField{
			Name:   i.Code,
			Value:  v,
			Inline: true,
		})
	}

	_, err = ctx.PagedEmbed(
		bcr.FieldPaginator("Invites", fmt.Sprintf("%v invites", len(is)), bot.Router.EmbedColor, fields, 6), false,
	)
	return
}

func (bot *Bot) cmdInfo(ctx *bcr.Context) (err error) {
	bot.Stats.Inc(stats.CounterCommands)

	code := ctx.Args[0]

	inv, err := ctx.State.Invite(code)
	if err != nil {
		_, err = ctx.Send("Couldn't find an invite with that code.")
		return err
	}

	e := discord.Embed{
		Title: "Invite " + inv.Code,
		Color: bot.Router.EmbedColor,
		Footer: &discord.EmbedFooter{
			Text: "discord.gg/" + inv.Code,
		},
	}

	if inv.Guild != nil && inv.Guild.ID == ctx.Message.GuildID {
		// our own invite: the invite list has the full metadata
		if is, err := ctx.State.GuildInvites(ctx.Message.GuildID); err == nil {
			for _, i := range is {
				if i.Code == code {
					inv = &i
					break
				}
			}
		}

		e.Fields = append(e.Fields, discord.EmbedField{
			Name:   "Uses",
			Value:  fmt.Sprint(inv.Uses),
			Inline: true,
		})
		if inv.CreatedAt.IsValid() {
			e.Fields = append(e.Fields, discord.EmbedField{
				Name:   "Created",
				Value:  duration.FormatTime(inv.CreatedAt.Time()),
				Inline: true,
			})

			expires := "Never"
			if inv.MaxAge != 0 {
				expires = duration.FormatTime(inv.CreatedAt.Time().Add(inv.MaxAge.Duration()))
			}
			e.Fields = append(e.Fields, discord.EmbedField{
				Name:   "Expires",
				Value:  expires,
				Inline: true,
			})
		}
		if inv.Inviter != nil {
			e.Fields = append(e.Fields, discord.EmbedField{
				Name:   "Created by",
				Value:  fmt.Sprintf("%v#%v", inv.Inviter.Username, inv.Inviter.Discriminator),
				Inline: true,
			})
		}
	} else {
		name := "unknown server"
		if inv.Guild != nil {
			name = inv.Guild.Name
		}
		e.Description = fmt.Sprintf("Invite to **%v**", name)
		e.Fields = append(e.Fields, discord.EmbedField{
			Name:   "Members (approximate)",
			Value:  fmt.Sprint(inv.ApproximateMembers),
			Inline: true,
		})
	}

	_, err = ctx.Send("", e)
	return
}

func (bot *Bot) cmdDelete(ctx *bcr.Context) (err error) {
	bot.Stats.Inc(stats.CounterCommands)

	code := ctx.Args[0]

	is, err := ctx.State.GuildInvites(ctx.Message.GuildID)
	if err != nil {
		_, err = ctx.Send("Couldn't get this server's invites. Are you sure I have the **Manage Server** permission?")
		return err
	}

	var inv *discord.Invite
	for i := range is {
		if is[i].Code == code {
			inv = &is[i]
			break
		}
	}
	if inv == nil {
		_, err = ctx.Send("That invite doesn't belong to this server, so I can't delete it.")
		return err
	}

	e := discord.Embed{
		Title:       "Invite deleted",
		Description: fmt.Sprintf("**%v** (%v uses)", inv.Code, inv.Uses),
		Color:       bcr.ColourRed,
		Timestamp:   discord.NowTimestamp(),
	}
	if inv.Inviter != nil {
		e.Description += fmt.Sprintf("\nCreated by %v#%v", inv.Inviter.Username, inv.Inviter.Discriminator)
	}

	_, err = ctx.State.Client.DeleteInvite(code, api.AuditLogReason("Deleted by "+ctx.Author.Tag()))
	if err != nil {
		_, err = ctx.Send("I couldn't delete that invite. Do I have the **Manage Server** permission?")
		return err
	}

	cctx, cancel := getctx()
	defer cancel()
	if _, err := bot.refreshInvites(cctx, ctx.Message.GuildID); err != nil {
		bot.DB.Report(db.ErrorContext{
			Command: "invites delete",
			UserID:  ctx.Author.ID,
			GuildID: ctx.Message.GuildID,
		}, err)
	}

	_, err = ctx.Send("", e)
	return
}

func (bot *Bot) cmdRefresh(ctx *bcr.Context) (err error) {
	bot.Stats.Inc(stats.CounterCommands)

	cctx, cancel := getctx()
	defer cancel()

	is, err := bot.refreshInvites(cctx, ctx.Message.GuildID)
	if err != nil {
		return bot.DB.ReportCtx(ctx, err)
	}

	// reset the vanity counter too
	if bot.hasVanity(ctx.Message.GuildID) {
		if v, err := bot.fetchVanity(ctx.Message.GuildID); err == nil {
			bot.vanityMu.Lock()
			bot.vanityUses[ctx.Message.GuildID] = v.Uses
			bot.vanityMu.Unlock()
		}
	}

	_, err = ctx.Sendf("Snapshot refreshed, %v invites cached.", len(is))
	return
}
