package support

import (
	"strings"

	"github.com/diamondburned/arikawa/v3/api"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/starshine-sys/bcr"

	"doorman/common/duration"
	"doorman/db"
	"doorman/stats"
)

func (bot *Bot) cmdTicketShow(ctx *bcr.Context) (err error) {
	bot.Stats.Inc(stats.CounterCommands)

	c, cancel := getctx()
	defer cancel()

	t, err := bot.DB.TicketByChannel(c, ctx.Message.ChannelID)
	if err == db.ErrNotFound {
		_, err = ctx.Sendf("This isn't a ticket channel. Use `%vticket list` to see open tickets.", ctx.Prefix)
		return
	} else if err != nil {
		return bot.DB.ReportCtx(ctx, err)
	}

	_, err = ctx.Send("", discord.Embed{
		Title: "Ticket",
		Color: bot.Router.EmbedColor,
		Fields: []discord.EmbedField{
			{
				Name:   "User",
				Value:  t.UserID.Mention(),
				Inline: true,
			},
			{
				Name:   "Opened",
				Value:  duration.FormatTime(t.CreatedAt),
				Inline: true,
			},
		},
	})
	return
}

func (bot *Bot) cmdTicketClose(ctx *bcr.Context) (err error) {
	bot.Stats.Inc(stats.CounterCommands)

	c, cancel := getctx()
	defer cancel()

	_, err = bot.DB.TicketByChannel(c, ctx.Message.ChannelID)
	if err == db.ErrNotFound {
		_, err = ctx.Send("This isn't a ticket channel.")
		return
	} else if err != nil {
		return bot.DB.ReportCtx(ctx, err)
	}

	// channel deletion does the rest: the gateway event removes the
	// ticket record and sends the feedback prompt.
	err = ctx.State.DeleteChannel(ctx.Message.ChannelID, api.AuditLogReason("Ticket closed by "+ctx.Author.Tag()))
	if err != nil {
		_, err = ctx.Send("I couldn't delete this channel. Do I have **Manage Channels** permissions?")
	}
	return
}

func (bot *Bot) cmdTicketList(ctx *bcr.Context) (err error) {
	bot.Stats.Inc(stats.CounterCommands)

	c, cancel := getctx()
	defer cancel()

	ts, err := bot.DB.Tickets(c, ctx.Message.GuildID)
	if err != nil {
		return bot.DB.ReportCtx(ctx, err)
	}

	if len(ts) == 0 {
		_, err = ctx.Send("There are no open tickets.")
		return
	}

	var fields []discord.EmbedField
	for _, t := range ts {
		fields = append(fields, discord.EmbedField{
			Name:  "#" + t.ChannelID.String(),
			Value: t.ChannelID.Mention() + "\nUser: " + t.UserID.Mention() + "\nOpened " + duration.FormatTime(t.CreatedAt),
		})
	}

	_, err = ctx.PagedEmbed(
		bcr.FieldPaginator("Open tickets", "", bot.Router.EmbedColor, fields, 5), false,
	)
	return
}

func (bot *Bot) cmdBlock(ctx *bcr.Context) (err error) {
	bot.Stats.Inc(stats.CounterCommands)

	u, err := ctx.ParseUser(ctx.Args[0])
	if err != nil {
		_, err = ctx.Send("User not found.")
		return
	}

	if u.Bot {
		_, err = ctx.Send("Bots can't open tickets anyway.")
		return
	}
	if u.ID == ctx.Author.ID {
		_, err = ctx.Send("You can't block yourself.")
		return
	}

	c, cancel := getctx()
	defer cancel()

	err = bot.DB.BlockUser(c, db.BlockedUser{
		GuildID:   ctx.Message.GuildID,
		UserID:    u.ID,
		Reason:    strings.Join(ctx.Args[1:], " "),
		BlockedBy: ctx.Author.ID,
	})
	if err != nil {
		return bot.DB.ReportCtx(ctx, err)
	}

	_, err = ctx.Sendf("**%v** can no longer open tickets.", u.Tag())
	return
}

func (bot *Bot) cmdUnblock(ctx *bcr.Context) (err error) {
	bot.Stats.Inc(stats.CounterCommands)

	u, err := ctx.ParseUser(ctx.Args[0])
	if err != nil {
		_, err = ctx.Send("User not found.")
		return
	}

	c, cancel := getctx()
	defer cancel()

	existed, err := bot.DB.UnblockUser(c, ctx.Message.GuildID, u.ID)
	if err != nil {
		return bot.DB.ReportCtx(ctx, err)
	}

	if !existed {
		_, err = ctx.Sendf("**%v** wasn't blocked.", u.Tag())
		return
	}

	_, err = ctx.Sendf("**%v** can open tickets again.", u.Tag())
	return
}

func (bot *Bot) cmdBlocked(ctx *bcr.Context) (err error) {
	bot.Stats.Inc(stats.CounterCommands)

	c, cancel := getctx()
	defer cancel()

	bs, err := bot.DB.BlockedUsers(c, ctx.Message.GuildID)
	if err != nil {
		return bot.DB.ReportCtx(ctx, err)
	}

	if len(bs) == 0 {
		_, err = ctx.Send("No users are blocked.")
		return
	}

	var fields []discord.EmbedField
	for _, b := range bs {
		reason := b.Reason
		if reason == "" {
			reason = "No reason given"
		}

		fields = append(fields, discord.EmbedField{
			Name:  b.UserID.String(),
			Value: b.UserID.Mention() + "\n" + reason + "\nBlocked by " + b.BlockedBy.Mention() + ", " + duration.FormatTime(b.BlockedAt),
		})
	}

	_, err = ctx.PagedEmbed(
		bcr.FieldPaginator("Blocked users", "", bcr.ColourRed, fields, 5), false,
	)
	return
}
