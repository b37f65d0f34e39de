package support

import (
	"context"
	"fmt"
	"strings"

	"emperror.dev/errors"
	"github.com/diamondburned/arikawa/v3/api"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/diamondburned/arikawa/v3/gateway"
	"github.com/diamondburned/arikawa/v3/state"
	"github.com/starshine-sys/bcr"

	"doorman/common/log"
	"doorman/db"
	"doorman/stats"
)

// createTicket creates the ticket channel under the given category (or the
// configured default) and records the ticket. Opening a ticket cancels any
// feedback prompt the user still has pending.
func (bot *Bot) createTicket(ctx context.Context, s *state.State, guildID discord.GuildID, user discord.User, category discord.ChannelID) (*discord.Channel, error) {
	cfg, err := bot.DB.SupportConfig(ctx, guildID)
	if err != nil {
		return nil, err
	}

	if !category.IsValid() {
		category = cfg.Contact.Category
	}

	data := api.CreateChannelData{
		Name:  ticketChannelName(user),
		Type:  discord.GuildText,
		Topic: user.ID.String(),
	}
	if category.IsValid() {
		data.CategoryID = category
	}

	ch, err := s.CreateChannel(guildID, data)
	if err != nil {
		return nil, errors.Wrap(err, "creating ticket channel")
	}

	err = bot.DB.CreateTicket(ctx, db.Ticket{
		GuildID:   guildID,
		UserID:    user.ID,
		ChannelID: ch.ID,
	})
	if err != nil {
		// racing ticket creation: drop the channel we just made
		if err == db.ErrTicketExists {
			if derr := s.DeleteChannel(ch.ID, api.AuditLogReason("Duplicate ticket channel")); derr != nil {
				log.Errorf("Error deleting duplicate ticket channel %v: %v", ch.ID, derr)
			}
		}
		return nil, err
	}

	bot.Stats.Inc(stats.CounterTicketsOpened)
	bot.cancelFeedbackSession(ctx, s, guildID, user.ID)

	_, err = s.SendMessageComplex(ch.ID, api.SendMessageData{
		Content: user.Mention(),
		Embeds: []discord.Embed{{
			Title:       "New ticket",
			Description: fmt.Sprintf("Ticket opened by %v (%v#%v).", user.Mention(), user.Username, user.Discriminator),
			Color:       bcr.ColourGreen,
			Footer: &discord.EmbedFooter{
				Text: "User ID: " + user.ID.String(),
			},
			Timestamp: discord.NowTimestamp(),
		}},
	})
	if err != nil {
		log.Errorf("Error sending ticket opening message: %v", err)
	}

	return ch, nil
}

// ticketChannelName derives a channel name from the user's tag.
func ticketChannelName(user discord.User) string {
	name := strings.ToLower(user.Username)
	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		case r == ' ':
			return '-'
		}
		return -1
	}, name)

	if name == "" {
		name = "ticket"
	}
	return name + "-" + user.Discriminator
}

// channelDelete clears the ticket row when a ticket channel is deleted, by
// whatever means, and kicks off the feedback prompt.
func (bot *Bot) channelDelete(ev *gateway.ChannelDeleteEvent) {
	if !ev.GuildID.IsValid() {
		return
	}

	ctx, cancel := getctx()
	defer cancel()

	t, err := bot.DB.DeleteTicket(ctx, ev.ID)
	if err != nil {
		if err != db.ErrNotFound {
			bot.DB.Report(db.ErrorContext{Event: "channel delete", GuildID: ev.GuildID}, err)
		}
		return
	}

	cfg, err := bot.DB.SupportConfig(ctx, t.GuildID)
	if err != nil {
		bot.DB.Report(db.ErrorContext{Event: "channel delete", GuildID: t.GuildID}, err)
		return
	}

	if !cfg.Feedback.Enabled {
		return
	}

	if err := bot.sendFeedbackPrompt(ctx, t.GuildID, t.UserID); err != nil {
		log.Errorf("Error sending feedback prompt to %v: %v", t.UserID, err)
	}
}
