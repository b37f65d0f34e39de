package invites

import (
	"fmt"
	"time"

	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/diamondburned/arikawa/v3/gateway"
	"github.com/starshine-sys/bcr"

	"doorman/db"
)

func (bot *Bot) inviteCreate(ev *gateway.InviteCreateEvent) {
	ctx, cancel := getctx()
	defer cancel()

	g, err := bot.DB.InviteGuild(ctx, ev.GuildID)
	if err != nil {
		bot.DB.Report(db.ErrorContext{Event: "invite create", GuildID: ev.GuildID}, err)
		return
	}

	if !g.Enabled {
		return
	}

	// keep the snapshot current so the new invite can be diffed against
	if _, err := bot.refreshInvites(ctx, ev.GuildID); err != nil {
		bot.DB.Report(db.ErrorContext{Event: "invite create", GuildID: ev.GuildID}, err)
	}

	if !g.Channel.IsValid() {
		return
	}

	maxUses := fmt.Sprint(ev.MaxUses)
	if ev.MaxUses == 0 {
		maxUses = "Infinite"
	}

	expires := "Never"
	if ev.MaxAge != 0 {
		expires = fmt.Sprintf("<t:%v>", time.Now().UTC().Add(ev.MaxAge.Duration()).Unix())
	}

	e := discord.Embed{
		Title:       "Invite created",
		Color:       bcr.ColourGreen,
		Description: fmt.Sprintf("A new invite (**%v**) was created for %v.", ev.Code, ev.ChannelID.Mention()),

		Fields: []discord.EmbedField{
			{
				Name:   "Maximum uses",
				Value:  maxUses,
				Inline: true,
			},
			{
				Name:   "Expires",
				Value:  expires,
				Inline: true,
			},
		},

		Footer: &discord.EmbedFooter{
			Text: ev.Code,
		},
		Timestamp: discord.NowTimestamp(),
	}

	if ev.Inviter != nil {
		e.Fields = append([]discord.EmbedField{{
			Name:  "Created by",
			Value: fmt.Sprintf("%v\n%v#%v\nID: %v", ev.Inviter.Mention(), ev.Inviter.Username, ev.Inviter.Discriminator, ev.Inviter.ID),
		}}, e.Fields...)
	}

	if err := bot.sendLog(ctx, g, e); err != nil {
		bot.DB.Report(db.ErrorContext{Event: "invite create", GuildID: ev.GuildID}, err)
	}
}
