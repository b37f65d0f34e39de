package invites

import (
	"context"
	"strings"

	"emperror.dev/errors"
	"github.com/diamondburned/arikawa/v3/api"
	"github.com/diamondburned/arikawa/v3/api/webhook"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/diamondburned/arikawa/v3/gateway"

	"doorman/common/log"
	"doorman/db"
)

// parseWebhookURL splits a webhook URL into its ID and token, the last two
// path segments.
func parseWebhookURL(url string) (discord.WebhookID, string, bool) {
	parts := strings.Split(strings.TrimSuffix(url, "/"), "/")
	if len(parts) < 2 {
		return 0, "", false
	}

	token := parts[len(parts)-1]
	sf, err := discord.ParseSnowflake(parts[len(parts)-2])
	if err != nil || token == "" {
		return 0, "", false
	}
	return discord.WebhookID(sf), token, true
}

// sendLog delivers a log embed to the guild's configured channel. A webhook
// is preferred; if none can be found or executing it fails, the embed is
// sent directly to the channel instead and the stored webhook URL is
// cleared.
func (bot *Bot) sendLog(ctx context.Context, g db.InviteGuild, embeds ...discord.Embed) error {
	url, err := bot.webhookURL(ctx, g)
	if err == nil {
		err = errors.New("invalid webhook URL")
		if id, token, ok := parseWebhookURL(url); ok {
			err = webhook.New(id, token).Execute(webhook.ExecuteData{
				Username:  bot.Router.Bot.Username,
				AvatarURL: bot.Router.Bot.AvatarURL(),
				Embeds:    embeds,
			})
			if err == nil {
				return nil
			}
		}

		log.Errorf("Error executing webhook for %v, falling back to channel send: %v", g.ID, err)
		if err := bot.DB.SetInviteWebhook(ctx, g.ID, ""); err != nil {
			log.Errorf("Error clearing webhook for %v: %v", g.ID, err)
		}
	}

	_, err = bot.State(g.ID).SendEmbeds(g.Channel, embeds...)
	return errors.Wrap(err, "sending log message")
}

// webhookURL returns the guild's log webhook URL, reusing a webhook the bot
// owns on the log channel or creating a new one if the config has none
// stored yet.
func (bot *Bot) webhookURL(ctx context.Context, g db.InviteGuild) (string, error) {
	if g.Webhook != "" {
		return g.Webhook, nil
	}

	s := bot.State(g.ID)

	var wh *discord.Webhook
	ws, err := s.ChannelWebhooks(g.Channel)
	if err != nil {
		return "", errors.Wrap(err, "listing webhooks")
	}
	for i, w := range ws {
		if w.User.ID == bot.Router.Bot.ID && w.Token != "" {
			wh = &ws[i]
			break
		}
	}

	if wh == nil {
		wh, err = s.CreateWebhook(g.Channel, api.CreateWebhookData{
			Name: bot.Router.Bot.Username,
		})
		if err != nil {
			return "", errors.Wrap(err, "creating webhook")
		}
	}

	url := api.EndpointWebhooks + wh.ID.String() + "/" + wh.Token

	err = bot.DB.SetInviteWebhook(ctx, g.ID, url)
	if err != nil {
		log.Errorf("Error storing webhook for %v: %v", g.ID, err)
	}
	return url, nil
}

// webhooksUpdate drops the stored webhook URL when the log channel's
// webhooks change, so a deleted webhook doesn't break logging.
func (bot *Bot) webhooksUpdate(ev *gateway.WebhooksUpdateEvent) {
	ctx, cancel := getctx()
	defer cancel()

	g, err := bot.DB.InviteGuild(ctx, ev.GuildID)
	if err != nil {
		bot.DB.Report(db.ErrorContext{Event: "webhooks update", GuildID: ev.GuildID}, err)
		return
	}

	if g.Webhook == "" || ev.ChannelID != g.Channel {
		return
	}

	if err := bot.DB.SetInviteWebhook(ctx, ev.GuildID, ""); err != nil {
		bot.DB.Report(db.ErrorContext{Event: "webhooks update", GuildID: ev.GuildID}, err)
	}
}
