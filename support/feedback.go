package support

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"emperror.dev/errors"
	"github.com/diamondburned/arikawa/v3/api"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/diamondburned/arikawa/v3/gateway"
	"github.com/diamondburned/arikawa/v3/state"
	"github.com/diamondburned/arikawa/v3/utils/json/option"
	"github.com/starshine-sys/bcr"

	"doorman/common/log"
	"doorman/db"
	"doorman/stats"
	"doorman/ui"
)

// sessionLifetime is how long a feedback prompt stays answerable.
const sessionLifetime = 24 * time.Hour

// sendFeedbackPrompt DMs the user the configured feedback prompt and
// records the session. A new prompt replaces the user's previous one.
func (bot *Bot) sendFeedbackPrompt(ctx context.Context, guildID discord.GuildID, userID discord.UserID) error {
	cfg, err := bot.DB.SupportConfig(ctx, guildID)
	if err != nil {
		return err
	}

	s := bot.State(guildID)

	// if the user still has an older prompt, disable it first
	bot.cancelFeedbackSession(ctx, s, guildID, userID)

	dm, err := s.CreatePrivateChannel(userID)
	if err != nil {
		return errors.Wrap(err, "opening DM channel")
	}

	msg, err := s.SendMessageComplex(dm.ID, api.SendMessageData{
		Embeds:     []discord.Embed{configEmbed(cfg.Feedback.Embed, bot.Router.EmbedColor)},
		Components: feedbackComponents(cfg.Feedback),
	})
	if err != nil {
		return errors.Wrap(err, "sending prompt")
	}

	err = bot.DB.CreateFeedbackSession(ctx, db.FeedbackSession{
		MessageID: msg.ID,
		ChannelID: dm.ID,
		GuildID:   guildID,
		UserID:    userID,
	})
	if err != nil {
		// without a session the prompt is dead weight, remove it
		bot.disablePrompt(s, dm.ID, msg.ID)
		return err
	}

	return nil
}

// cancelFeedbackSession ends the user's active session, if any, and strips
// the prompt's components.
func (bot *Bot) cancelFeedbackSession(ctx context.Context, s *state.State, guildID discord.GuildID, userID discord.UserID) {
	sess, err := bot.DB.UserFeedbackSession(ctx, guildID, userID)
	if err != nil {
		if err != db.ErrNotFound {
			log.Errorf("Error getting feedback session for %v: %v", userID, err)
		}
		return
	}

	if err := bot.DB.DeleteFeedbackSession(ctx, sess.MessageID); err != nil {
		log.Errorf("Error deleting feedback session for %v: %v", userID, err)
		return
	}

	bot.disablePrompt(s, sess.ChannelID, sess.MessageID)
}

// disablePrompt removes a prompt message's components.
func (bot *Bot) disablePrompt(s *state.State, chID discord.ChannelID, msgID discord.MessageID) {
	_, err := s.EditMessageComplex(chID, msgID, api.EditMessageData{
		Components: &discord.ContainerComponents{},
	})
	if err != nil {
		log.Errorf("Error removing prompt components on %v: %v", msgID, err)
	}
}

// expireSessions sweeps expired feedback sessions and disables their
// prompts. Runs for the lifetime of the process.
func (bot *Bot) expireSessions() {
	tick := time.NewTicker(10 * time.Minute)
	defer tick.Stop()

	for range tick.C {
		ctx, cancel := getctx()
		expired, err := bot.DB.ExpireFeedbackSessions(ctx, sessionLifetime)
		cancel()
		if err != nil {
			log.Errorf("Error expiring feedback sessions: %v", err)
			continue
		}

		for _, sess := range expired {
			bot.disablePrompt(bot.State(sess.GuildID), sess.ChannelID, sess.MessageID)
		}
	}
}

func (bot *Bot) feedbackInteraction(s *state.State, ev *gateway.InteractionCreateEvent, data discord.ComponentInteraction) {
	if ev.Message == nil {
		return
	}

	ctx, cancel := getctx()
	defer cancel()

	sess, err := bot.DB.FeedbackSession(ctx, ev.Message.ID)
	if err != nil {
		if err == db.ErrNotFound {
			// expired or already answered
			_ = ui.Ephemeral(s, ev, "This feedback prompt is no longer active.")
			return
		}
		bot.DB.Report(db.ErrorContext{Event: "feedback interaction"}, err)
		return
	}

	switch data.ID() {
	case customIDFeedbackRating:
		sel, ok := data.(*discord.SelectInteraction)
		if !ok || len(sel.Values) == 0 {
			return
		}

		rating, err := strconv.Atoi(sel.Values[0])
		if err != nil || rating < 1 || rating > 5 {
			return
		}

		if err := bot.DB.SetFeedbackRating(ctx, sess.MessageID, rating); err != nil {
			bot.DB.Report(db.ErrorContext{Event: "feedback rating", UserID: sess.UserID}, err)
			return
		}

		err = ui.Ephemeral(s, ev, fmt.Sprintf("Rating of %v recorded. Press the button to add a message, or just leave it at that!", strings.Repeat("⭐", rating)))
		if err != nil {
			log.Errorf("Error responding to interaction: %v", err)
		}

	case customIDFeedbackOpen:
		err := ui.ShowModal(s, ev,
			customIDFeedbackModal+":"+sess.MessageID.String(),
			"Feedback",
			discord.ContainerComponents{
				&discord.ActionRowComponent{
					&discord.TextInputComponent{
						CustomID: customIDFeedbackText,
						Style:    discord.TextInputParagraphStyle,
						Label:    "Your feedback",
						Required: true,
					},
				},
			})
		if err != nil {
			log.Errorf("Error showing feedback modal: %v", err)
		}
	}
}

func (bot *Bot) feedbackModal(s *state.State, ev *gateway.InteractionCreateEvent, data *discord.ModalInteraction) {
	rest := strings.TrimPrefix(string(data.CustomID), customIDFeedbackModal+":")
	sf, err := discord.ParseSnowflake(rest)
	if err != nil {
		return
	}
	msgID := discord.MessageID(sf)

	ctx, cancel := getctx()
	defer cancel()

	sess, err := bot.DB.FeedbackSession(ctx, msgID)
	if err != nil {
		if err == db.ErrNotFound {
			_ = ui.Ephemeral(s, ev, "This feedback prompt is no longer active.")
			return
		}
		bot.DB.Report(db.ErrorContext{Event: "feedback modal"}, err)
		return
	}

	text := modalValue(data.Components, customIDFeedbackText)

	cfg, err := bot.DB.SupportConfig(ctx, sess.GuildID)
	if err != nil {
		bot.DB.Report(db.ErrorContext{Event: "feedback modal", GuildID: sess.GuildID}, err)
		return
	}

	_, err = bot.DB.SaveFeedback(ctx, db.Feedback{
		GuildID: sess.GuildID,
		UserID:  sess.UserID,
		Rating:  sess.Rating,
		Message: text,
	})
	if err != nil {
		bot.DB.Report(db.ErrorContext{Event: "feedback modal", GuildID: sess.GuildID, UserID: sess.UserID}, err)
		_ = ui.Ephemeral(s, ev, "Something went wrong saving your feedback. Please try again later.")
		return
	}

	bot.Stats.Inc(stats.CounterFeedbackEntries)

	if err := bot.DB.DeleteFeedbackSession(ctx, sess.MessageID); err != nil {
		log.Errorf("Error deleting feedback session: %v", err)
	}
	bot.disablePrompt(bot.State(sess.GuildID), sess.ChannelID, sess.MessageID)

	bot.logFeedback(sess, cfg, text)

	err = ui.Respond(s, ev, api.InteractionResponseData{
		Content: option.NewNullableString(cfg.Feedback.Response),
	})
	if err != nil {
		log.Errorf("Error responding to interaction: %v", err)
	}
}

// logFeedback posts a submission to the configured feedback channel.
func (bot *Bot) logFeedback(sess db.FeedbackSession, cfg db.SupportConfig, text string) {
	if !cfg.Feedback.Channel.IsValid() {
		return
	}

	e := discord.Embed{
		Title:       "Feedback received",
		Description: text,
		Color:       bcr.ColourGold,
		Footer: &discord.EmbedFooter{
			Text: "User ID: " + sess.UserID.String(),
		},
		Timestamp: discord.NowTimestamp(),
		Fields: []discord.EmbedField{
			{
				Name:   "User",
				Value:  sess.UserID.Mention(),
				Inline: true,
			},
		},
	}
	if sess.Rating > 0 {
		e.Fields = append(e.Fields, discord.EmbedField{
			Name:   "Rating",
			Value:  strings.Repeat("⭐", sess.Rating),
			Inline: true,
		})
	}

	_, err := bot.State(sess.GuildID).SendEmbeds(cfg.Feedback.Channel, e)
	if err != nil {
		log.Errorf("Error sending feedback log: %v", err)
	}
}
