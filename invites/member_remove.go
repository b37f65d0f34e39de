package invites

import (
	"fmt"

	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/diamondburned/arikawa/v3/gateway"
	"github.com/starshine-sys/bcr"

	"doorman/common/duration"
	"doorman/db"
)

func (bot *Bot) guildMemberRemove(ev *gateway.GuildMemberRemoveEvent) {
	if ev.User.Bot {
		return
	}

	ctx, cancel := getctx()
	defer cancel()

	g, err := bot.DB.InviteGuild(ctx, ev.GuildID)
	if err != nil {
		bot.DB.Report(db.ErrorContext{Event: "member leave", GuildID: ev.GuildID}, err)
		return
	}

	stored, storedErr := bot.DB.UserInvite(ctx, ev.GuildID, ev.User.ID)

	// the guild entry is popped regardless of config: leaving is the one
	// guaranteed point where stale attributions get cleaned up
	if storedErr == nil {
		if err := bot.DB.DeleteUserInvite(ctx, ev.GuildID, ev.User.ID); err != nil {
			bot.DB.Report(db.ErrorContext{Event: "member leave", GuildID: ev.GuildID, UserID: ev.User.ID}, err)
		}
	}

	if !g.Enabled || !g.Channel.IsValid() {
		return
	}

	e := discord.Embed{
		Title: "Member left",
		Thumbnail: &discord.EmbedThumbnail{
			URL: ev.User.AvatarURL(),
		},

		Color:       bcr.ColourRed,
		Description: fmt.Sprintf("%v\n%v#%v", ev.User.Mention(), ev.User.Username, ev.User.Discriminator),

		Fields: []discord.EmbedField{
			{
				Name:   "Account created",
				Value:  duration.FormatTime(ev.User.ID.Time()),
				Inline: true,
			},
		},

		Footer: &discord.EmbedFooter{
			Text: fmt.Sprintf("ID: %v", ev.User.ID),
		},
		Timestamp: discord.NowTimestamp(),
	}

	// member info is best-effort: the gateway only sends the bare user on
	// leave, so this relies on the member still being in the state cache
	if m, err := bot.State(ev.GuildID).Cabinet.Member(ev.GuildID, ev.User.ID); err == nil {
		if m.Joined.IsValid() {
			e.Fields = append(e.Fields, discord.EmbedField{
				Name:   "Joined",
				Value:  duration.FormatTime(m.Joined.Time()),
				Inline: true,
			})
		}
		if m.Nick != "" {
			e.Fields = append(e.Fields, discord.EmbedField{
				Name:   "Nickname",
				Value:  m.Nick,
				Inline: true,
			})
		}
		if len(m.RoleIDs) > 0 {
			e.Fields = append(e.Fields, discord.EmbedField{
				Name:  "Roles",
				Value: roleList(m.RoleIDs),
			})
		}
	}

	if storedErr == nil {
		v := fmt.Sprintf("**%v**", stored.Code)
		if stored.Vanity {
			v = "Vanity URL"
		}
		if stored.InviterID.IsValid() {
			v += fmt.Sprintf(", created by <@%v>", stored.InviterID)
		}
		if stored.CreatedAt != nil {
			v += ", created " + duration.FormatTime(*stored.CreatedAt)
		}
		e.Fields = append(e.Fields, discord.EmbedField{
			Name:  "Joined with invite",
			Value: v,
		})
	}

	if err := bot.sendLog(ctx, g, e); err != nil {
		bot.DB.Report(db.ErrorContext{Event: "member leave", GuildID: ev.GuildID}, err)
	}
}

func roleList(ids []discord.RoleID) string {
	const max = 20

	var s string
	for i, id := range ids {
		if i >= max {
			s += fmt.Sprintf(" and %v more", len(ids)-max)
			break
		}
		if i > 0 {
			s += " "
		}
		s += id.Mention()
	}
	return s
}
