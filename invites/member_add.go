package invites

import (
	"context"
	"fmt"
	"time"

	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/diamondburned/arikawa/v3/gateway"
	"github.com/dustin/go-humanize"
	"github.com/starshine-sys/bcr"

	"doorman/common/duration"
	"doorman/db"
	"doorman/stats"
)

// attribution is the outcome of the invite-usage inference for one join.
type attribution struct {
	// invite is set when exactly one candidate was found.
	invite *discord.Invite
	vanity bool
	// codes of residual candidates when more than one survived filtering.
	ambiguous []string
}

func (bot *Bot) guildMemberAdd(ev *gateway.GuildMemberAddEvent) {
	if ev.User.Bot {
		return
	}

	ctx, cancel := getctx()
	defer cancel()

	g, err := bot.DB.InviteGuild(ctx, ev.GuildID)
	if err != nil {
		bot.DB.Report(db.ErrorContext{Event: "member join", GuildID: ev.GuildID}, err)
		return
	}

	if !g.Enabled || !g.Channel.IsValid() {
		return
	}

	joinedAt := ev.Joined.Time()
	if joinedAt.IsZero() {
		joinedAt = time.Now().UTC()
	}

	attr, err := bot.attributeJoin(ctx, ev.GuildID, joinedAt)
	if err != nil {
		bot.DB.Report(db.ErrorContext{Event: "member join", GuildID: ev.GuildID}, err)
		// fall through: still send a join log, just without invite info
	}

	if attr.invite != nil {
		bot.Stats.Inc(stats.CounterJoinsTracked)

		if g.StoreData {
			if err := bot.DB.SaveUserInvite(ctx, ev.GuildID, ev.User.ID, storedInvite(*attr.invite, attr.vanity, joinedAt)); err != nil {
				bot.DB.Report(db.ErrorContext{Event: "member join", GuildID: ev.GuildID, UserID: ev.User.ID}, err)
			}
		}
	} else {
		bot.Stats.Inc(stats.CounterJoinsAmbiguous)
	}

	e := bot.joinEmbed(ev, attr)
	if err := bot.sendLog(ctx, g, e); err != nil {
		bot.DB.Report(db.ErrorContext{Event: "member join", GuildID: ev.GuildID}, err)
	}
}

// attributeJoin runs the invite-usage inference: diff the stored snapshot
// against a fresh fetch, fall back to the vanity invite, then filter the
// remaining deleted-invite candidates. The fresh list always replaces the
// snapshot, whatever the outcome.
func (bot *Bot) attributeJoin(ctx context.Context, guildID discord.GuildID, joinedAt time.Time) (attr attribution, err error) {
	cached, err := bot.cachedInvites(ctx, guildID)
	if err != nil {
		return attr, err
	}

	fresh, err := bot.State(guildID).GuildInvites(guildID)
	if err != nil {
		return attr, err
	}

	defer func() {
		if serr := bot.Store.SetInvites(ctx, guildID, fresh); serr != nil && err == nil {
			err = serr
		}
	}()

	candidates, exact := diffInvites(cached, fresh)
	if exact {
		attr.invite = &candidates[0]
		return attr, nil
	}

	if bot.hasVanity(guildID) {
		if v, verr := bot.fetchVanity(guildID); verr == nil {
			if bot.bumpVanityUses(guildID, v.Uses) {
				attr.invite = &v
				attr.vanity = true
				return attr, nil
			}
		}
	}

	candidates = filterResidual(candidates, joinedAt)
	switch len(candidates) {
	case 0:
	case 1:
		attr.invite = &candidates[0]
	default:
		for _, c := range candidates {
			attr.ambiguous = append(attr.ambiguous, c.Code)
		}
	}
	return attr, nil
}

func storedInvite(inv discord.Invite, vanity bool, joinedAt time.Time) db.StoredInvite {
	s := db.StoredInvite{
		Code:     inv.Code,
		MaxAge:   int(inv.MaxAge),
		MaxUses:  inv.MaxUses,
		Vanity:   vanity,
		JoinedAt: joinedAt,
	}
	if inv.Inviter != nil {
		s.InviterID = inv.Inviter.ID
	}
	if inv.Channel.ID.IsValid() {
		s.ChannelID = inv.Channel.ID
	}
	if inv.CreatedAt.IsValid() {
		t := inv.CreatedAt.Time()
		s.CreatedAt = &t
	}
	return s
}

func (bot *Bot) joinEmbed(ev *gateway.GuildMemberAddEvent, attr attribution) discord.Embed {
	e := discord.Embed{
		Title: "Member joined",
		Thumbnail: &discord.EmbedThumbnail{
			URL: ev.User.AvatarURL(),
		},

		Color:       bcr.ColourGreen,
		Description: fmt.Sprintf("%v\n%v#%v", ev.User.Mention(), ev.User.Username, ev.User.Discriminator),

		Fields: []discord.EmbedField{
			{
				Name:   "Account age",
				Value:  duration.FormatTime(ev.User.ID.Time()),
				Inline: true,
			},
		},

		Footer: &discord.EmbedFooter{
			Text: fmt.Sprintf("ID: %v", ev.User.ID),
		},
		Timestamp: discord.NowTimestamp(),
	}

	if g, err := bot.State(ev.GuildID).GuildWithCount(ev.GuildID); err == nil {
		e.Fields = append(e.Fields, discord.EmbedField{
			Name:   "Member count",
			Value:  humanize.Ordinal(int(g.ApproximateMembers)) + " member",
			Inline: true,
		})
	}

	switch {
	case attr.invite != nil && attr.vanity:
		e.Fields = append(e.Fields, discord.EmbedField{
			Name:  "Invite used",
			Value: fmt.Sprintf("Vanity URL (**%v**), %v uses", attr.invite.Code, attr.invite.Uses),
		})
	case attr.invite != nil:
		e.Fields = append(e.Fields, inviteField(*attr.invite))
	case len(attr.ambiguous) > 0:
		e.Fields = append(e.Fields, discord.EmbedField{
			Name:  "Invite used",
			Value: "⚠️ Multiple possible invites: " + codeList(attr.ambiguous),
		})
	default:
		e.Fields = append(e.Fields, discord.EmbedField{
			Name:  "Invite used",
			Value: "⚠️ Could not determine which invite was used.",
		})
	}

	return e
}

func inviteField(inv discord.Invite) discord.EmbedField {
	v := fmt.Sprintf("**%v** (%v uses)", inv.Code, inv.Uses)
	if inv.Inviter != nil {
		v += fmt.Sprintf("\nCreated by %v#%v", inv.Inviter.Username, inv.Inviter.Discriminator)
	}
	if inv.Channel.ID.IsValid() {
		v += "\nFor channel " + inv.Channel.ID.Mention()
	}
	if inv.CreatedAt.IsValid() {
		v += "\nCreated " + duration.FormatTime(inv.CreatedAt.Time())
		if inv.MaxAge != 0 {
			v += ", expires " + duration.FormatTime(inv.CreatedAt.Time().Add(inv.MaxAge.Duration()))
		}
	}
	return discord.EmbedField{Name: "Invite used", Value: v}
}

func codeList(codes []string) (s string) {
	for i, c := range codes {
		if i > 0 {
			s += ", "
		}
		s += "`" + c + "`"
	}
	return s
}
