package invites

import (
	"context"
	"strconv"

	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/dustin/go-humanize"
	"github.com/starshine-sys/bcr"

	"doorman/common/duration"
	"doorman/db"
	"doorman/stats"
)

func (bot *Bot) cmdStoreHelp(ctx *bcr.Context) (err error) {
	bot.Stats.Inc(stats.CounterCommands)

	_, err = ctx.Send("", discord.Embed{
		Title: "Stored join data",
		Description: `When storing data is enabled, the invite each member joined with is remembered.

**Commands**
` + "`invites store enable [true/false]`" + `: get or set whether data is stored
` + "`invites store get <member>`" + `: show the invite a member joined with
` + "`invites store delete <user ID>`" + `: delete a user's data everywhere`,
		Color: bot.Router.EmbedColor,
	})
	return
}

func (bot *Bot) cmdStoreEnable(ctx *bcr.Context) (err error) {
	bot.Stats.Inc(stats.CounterCommands)

	g, err := bot.DB.InviteGuild(context.Background(), ctx.Message.GuildID)
	if err != nil {
		return bot.DB.ReportCtx(ctx, err)
	}

	if len(ctx.Args) == 0 {
		state := "disabled"
		if g.StoreData {
			state = "enabled"
		}
		_, err = ctx.Sendf("Storing join data is currently **%v**.", state)
		return err
	}

	enable, err := strconv.ParseBool(ctx.Args[0])
	if err != nil {
		_, err = ctx.Send("Couldn't parse your input as true or false.")
		return err
	}

	err = bot.DB.SetStoreData(context.Background(), ctx.Message.GuildID, enable)
	if err != nil {
		return bot.DB.ReportCtx(ctx, err)
	}

	if !enable {
		// no new data will be stored; drop what this guild already has
		if err := bot.DB.DeleteGuildInvites(context.Background(), ctx.Message.GuildID); err != nil {
			return bot.DB.ReportCtx(ctx, err)
		}
		_, err = ctx.Send("Storing join data is now **disabled**, and this server's stored data has been deleted.")
		return err
	}

	_, err = ctx.Send("Storing join data is now **enabled**.")
	return
}

func (bot *Bot) cmdStoreGet(ctx *bcr.Context) (err error) {
	bot.Stats.Inc(stats.CounterCommands)

	m, err := ctx.ParseMember(ctx.Args[0])
	if err != nil {
		_, err = ctx.Send("Couldn't find that member.")
		return err
	}

	inv, err := bot.DB.UserInvite(context.Background(), ctx.Message.GuildID, m.User.ID)
	if err != nil {
		if err == db.ErrNotFound {
			_, err = ctx.Sendf("No join data is stored for %v#%v.", m.User.Username, m.User.Discriminator)
			return err
		}
		return bot.DB.ReportCtx(ctx, err)
	}

	e := discord.Embed{
		Title: "Join data",
		Thumbnail: &discord.EmbedThumbnail{
			URL: m.User.AvatarURL(),
		},
		Description: m.User.Mention() + " joined using:",
		Color:       bot.Router.EmbedColor,
		Footer: &discord.EmbedFooter{
			Text: "ID: " + m.User.ID.String(),
		},
	}

	code := "**" + inv.Code + "**"
	if inv.Vanity {
		code = "Vanity URL (**" + inv.Code + "**)"
	}
	e.Fields = append(e.Fields, discord.EmbedField{
		Name:  "Invite",
		Value: code + "\ndiscord.gg/" + inv.Code,
	})

	if inv.InviterID.IsValid() {
		e.Fields = append(e.Fields, discord.EmbedField{
			Name:   "Created by",
			Value:  inv.InviterID.Mention(),
			Inline: true,
		})
	}
	if inv.ChannelID.IsValid() {
		e.Fields = append(e.Fields, discord.EmbedField{
			Name:   "For channel",
			Value:  inv.ChannelID.Mention(),
			Inline: true,
		})
	}
	if inv.CreatedAt != nil {
		e.Fields = append(e.Fields, discord.EmbedField{
			Name:   "Invite created",
			Value:  duration.FormatTime(*inv.CreatedAt),
			Inline: true,
		})
	}
	if !inv.JoinedAt.IsZero() {
		e.Fields = append(e.Fields, discord.EmbedField{
			Name:   "Joined",
			Value:  duration.FormatTime(inv.JoinedAt),
			Inline: true,
		})
	}

	_, err = ctx.Send("", e)
	return
}

func (bot *Bot) cmdStoreDelete(ctx *bcr.Context) (err error) {
	bot.Stats.Inc(stats.CounterCommands)

	u, err := ctx.ParseUser(ctx.Args[0])
	if err != nil {
		_, err = ctx.Send("Couldn't find that user. Note that this command takes a user ID.")
		return err
	}

	err = bot.DB.DeleteUserInvites(context.Background(), u.ID)
	if err != nil {
		return bot.DB.ReportCtx(ctx, err)
	}

	_, err = ctx.Sendf("Deleted all stored join data for %v#%v.", u.Username, u.Discriminator)
	return
}

func (bot *Bot) cmdStoreClear(ctx *bcr.Context) (err error) {
	bot.Stats.Inc(stats.CounterCommands)

	var count int64
	err = bot.DB.QueryRow(context.Background(), "select count(*) from user_invites").Scan(&count)
	if err != nil {
		return bot.DB.ReportCtx(ctx, err)
	}

	yes, err := bot.UI.Confirm(ctx.State, ctx.Message.ChannelID, ctx.Author.ID,
		"⚠️ **Are you sure you want to clear all stored join data?** This will delete "+humanize.Comma(count)+" records, for every server.")
	if err != nil || !yes {
		_, err = ctx.Send("Operation cancelled.")
		return err
	}

	_, err = bot.DB.Exec(context.Background(), "truncate user_invites")
	if err != nil {
		return bot.DB.ReportCtx(ctx, err)
	}

	_, err = ctx.Sendf("Done, %v records deleted.", humanize.Comma(count))
	return
}
