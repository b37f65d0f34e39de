package support

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/starshine-sys/bcr"

	"doorman/common/duration"
	"doorman/db"
	"doorman/stats"
)

func (bot *Bot) cmdFeedbackShow(ctx *bcr.Context) (err error) {
	bot.Stats.Inc(stats.CounterCommands)

	c, cancel := getctx()
	defer cancel()

	cfg, err := bot.DB.SupportConfig(c, ctx.Message.GuildID)
	if err != nil {
		return bot.DB.ReportCtx(ctx, err)
	}

	channel := "None (submissions aren't logged)"
	if cfg.Feedback.Channel.IsValid() {
		channel = cfg.Feedback.Channel.Mention()
	}

	_, err = ctx.Send("", discord.Embed{
		Title:       "Feedback",
		Description: fmt.Sprintf("Feedback prompts are **%v**. When enabled, users get a DM prompt after their ticket closes.", enabledString(cfg.Feedback.Enabled)),
		Color:       bot.Router.EmbedColor,
		Fields: []discord.EmbedField{
			{
				Name:   "Log channel",
				Value:  channel,
				Inline: true,
			},
			{
				Name:   "Rating select",
				Value:  enabledString(cfg.Feedback.Rating.Enabled),
				Inline: true,
			},
		},
	})
	return
}

func (bot *Bot) cmdFeedbackSend(ctx *bcr.Context) (err error) {
	bot.Stats.Inc(stats.CounterCommands)

	c, cancel := getctx()
	defer cancel()

	var userID discord.UserID
	if len(ctx.Args) > 0 {
		u, err := ctx.ParseUser(strings.Join(ctx.Args, " "))
		if err != nil {
			_, err = ctx.Send("User not found.")
			return err
		}
		userID = u.ID
	} else {
		// inside a ticket channel the recipient is implied
		t, err := bot.DB.TicketByChannel(c, ctx.Message.ChannelID)
		if err == db.ErrNotFound {
			_, err = ctx.Send("This isn't a ticket channel, so you need to tell me who to send the prompt to.")
			return err
		} else if err != nil {
			return bot.DB.ReportCtx(ctx, err)
		}
		userID = t.UserID
	}

	err = bot.sendFeedbackPrompt(c, ctx.Message.GuildID, userID)
	if err != nil {
		_, err = ctx.Sendf("I couldn't send a prompt to %v. They may have DMs disabled.", userID.Mention())
		return
	}

	_, err = ctx.Sendf("Feedback prompt sent to %v.", userID.Mention())
	return
}

func (bot *Bot) cmdFeedbackCancel(ctx *bcr.Context) (err error) {
	bot.Stats.Inc(stats.CounterCommands)

	u, err := ctx.ParseUser(ctx.Args[0])
	if err != nil {
		_, err = ctx.Send("User not found.")
		return
	}

	c, cancel := getctx()
	defer cancel()

	_, err = bot.DB.UserFeedbackSession(c, ctx.Message.GuildID, u.ID)
	if err == db.ErrNotFound {
		_, err = ctx.Sendf("**%v** doesn't have an active feedback prompt.", u.Tag())
		return
	} else if err != nil {
		return bot.DB.ReportCtx(ctx, err)
	}

	bot.cancelFeedbackSession(c, ctx.State, ctx.Message.GuildID, u.ID)

	_, err = ctx.Sendf("Cancelled **%v**'s feedback prompt.", u.Tag())
	return
}

func (bot *Bot) cmdFeedbackList(ctx *bcr.Context) (err error) {
	bot.Stats.Inc(stats.CounterCommands)

	c, cancel := getctx()
	defer cancel()

	ss, err := bot.DB.FeedbackSessions(c, ctx.Message.GuildID)
	if err != nil {
		return bot.DB.ReportCtx(ctx, err)
	}

	if len(ss) == 0 {
		_, err = ctx.Send("There are no active feedback prompts.")
		return
	}

	var fields []discord.EmbedField
	for _, s := range ss {
		rating := "No rating yet"
		if s.Rating != 0 {
			rating = fmt.Sprintf("Rated ⭐ %v/5", s.Rating)
		}

		fields = append(fields, discord.EmbedField{
			Name:  s.UserID.String(),
			Value: s.UserID.Mention() + "\n" + rating + "\nSent " + duration.FormatTime(s.StartedAt),
		})
	}

	_, err = ctx.PagedEmbed(
		bcr.FieldPaginator("Active feedback prompts", "", bot.Router.EmbedColor, fields, 5), false,
	)
	return
}

func (bot *Bot) cmdFeedbackConfigShow(ctx *bcr.Context) (err error) {
	bot.Stats.Inc(stats.CounterCommands)

	c, cancel := getctx()
	defer cancel()

	cfg, err := bot.DB.SupportConfig(c, ctx.Message.GuildID)
	if err != nil {
		return bot.DB.ReportCtx(ctx, err)
	}

	channel := "None"
	if cfg.Feedback.Channel.IsValid() {
		channel = cfg.Feedback.Channel.Mention()
	}

	_, err = ctx.Send("", discord.Embed{
		Title: "Feedback configuration",
		Color: bot.Router.EmbedColor,
		Fields: []discord.EmbedField{
			{
				Name:   "Enabled",
				Value:  enabledString(cfg.Feedback.Enabled),
				Inline: true,
			},
			{
				Name:   "Log channel",
				Value:  channel,
				Inline: true,
			},
			{
				Name:   "Button",
				Value:  buttonString(cfg.Feedback.Button),
				Inline: true,
			},
			{
				Name:  "Prompt embed",
				Value: fmt.Sprintf("**%v**\n%v", cfg.Feedback.Embed.Title, cfg.Feedback.Embed.Description),
			},
			{
				Name:  "Response",
				Value: cfg.Feedback.Response,
			},
			{
				Name:  "Rating select",
				Value: fmt.Sprintf("%v\nPlaceholder: %v", enabledString(cfg.Feedback.Rating.Enabled), cfg.Feedback.Rating.Placeholder),
			},
		},
	})
	return
}

func (bot *Bot) cmdFeedbackConfigEnable(ctx *bcr.Context) (err error) {
	bot.Stats.Inc(stats.CounterCommands)

	c, cancel := getctx()
	defer cancel()

	cfg, err := bot.DB.SupportConfig(c, ctx.Message.GuildID)
	if err != nil {
		return bot.DB.ReportCtx(ctx, err)
	}

	if len(ctx.Args) == 0 {
		_, err = ctx.Sendf("Feedback prompts are currently **%v**.", enabledString(cfg.Feedback.Enabled))
		return
	}

	b, perr := strconv.ParseBool(ctx.Args[0])
	if perr != nil {
		_, err = ctx.Send("I don't know what you mean by that, try `true` or `false`.")
		return
	}

	cfg.Feedback.Enabled = b
	if err = bot.DB.SetSupportConfig(c, ctx.Message.GuildID, cfg); err != nil {
		return bot.DB.ReportCtx(ctx, err)
	}

	_, err = ctx.Sendf("Feedback prompts are now **%v**.", enabledString(b))
	return
}

func (bot *Bot) cmdFeedbackConfigChannel(ctx *bcr.Context) (err error) {
	bot.Stats.Inc(stats.CounterCommands)

	c, cancel := getctx()
	defer cancel()

	cfg, err := bot.DB.SupportConfig(c, ctx.Message.GuildID)
	if err != nil {
		return bot.DB.ReportCtx(ctx, err)
	}

	if len(ctx.Args) == 0 {
		if !cfg.Feedback.Channel.IsValid() {
			_, err = ctx.Send("No log channel set. Submissions aren't logged anywhere.")
			return
		}
		_, err = ctx.Sendf("Feedback is logged to %v.", cfg.Feedback.Channel.Mention())
		return
	}

	arg := strings.Join(ctx.Args, " ")
	if arg == "clear" || arg == "none" {
		cfg.Feedback.Channel = discord.NullChannelID
		if err = bot.DB.SetSupportConfig(c, ctx.Message.GuildID, cfg); err != nil {
			return bot.DB.ReportCtx(ctx, err)
		}
		_, err = ctx.Send("Log channel cleared.")
		return
	}

	ch, err := ctx.ParseChannel(arg)
	if err != nil || ch.GuildID != ctx.Message.GuildID || ch.Type != discord.GuildText {
		_, err = ctx.Send("That's not a text channel in this server.")
		return
	}

	cfg.Feedback.Channel = ch.ID
	if err = bot.DB.SetSupportConfig(c, ctx.Message.GuildID, cfg); err != nil {
		return bot.DB.ReportCtx(ctx, err)
	}

	_, err = ctx.Sendf("Feedback will now be logged to %v.", ch.Mention())
	return
}

func (bot *Bot) cmdFeedbackConfigEmbed(ctx *bcr.Context) (err error) {
	bot.Stats.Inc(stats.CounterCommands)

	c, cancel := getctx()
	defer cancel()

	cfg, err := bot.DB.SupportConfig(c, ctx.Message.GuildID)
	if err != nil {
		return bot.DB.ReportCtx(ctx, err)
	}

	current := fmt.Sprintf("**%v**\n%v", cfg.Feedback.Embed.Title, cfg.Feedback.Embed.Description)

	return bot.editor(ctx, "Feedback prompt embed", current, []editorField{
		{id: "title", label: "Title", value: cfg.Feedback.Embed.Title, required: true},
		{id: "description", label: "Description", value: cfg.Feedback.Embed.Description, long: true, required: true},
		{id: "footer", label: "Footer", value: cfg.Feedback.Embed.Footer},
	}, func(values func(discord.ComponentID) string) (string, error) {
		c, cancel := getctx()
		defer cancel()

		cfg, err := bot.DB.SupportConfig(c, ctx.Message.GuildID)
		if err != nil {
			return "", err
		}

		cfg.Feedback.Embed.Title = values("title")
		cfg.Feedback.Embed.Description = values("description")
		cfg.Feedback.Embed.Footer = values("footer")

		if err := bot.DB.SetSupportConfig(c, ctx.Message.GuildID, cfg); err != nil {
			return "", err
		}
		return "Feedback prompt embed updated.", nil
	})
}

func (bot *Bot) cmdFeedbackConfigButton(ctx *bcr.Context) (err error) {
	bot.Stats.Inc(stats.CounterCommands)

	c, cancel := getctx()
	defer cancel()

	cfg, err := bot.DB.SupportConfig(c, ctx.Message.GuildID)
	if err != nil {
		return bot.DB.ReportCtx(ctx, err)
	}

	return bot.editor(ctx, "Feedback button", buttonString(cfg.Feedback.Button), []editorField{
		{id: "emoji", label: "Emoji", value: cfg.Feedback.Button.Emoji},
		{id: "label", label: "Label", value: cfg.Feedback.Button.Label, required: true},
		{id: "style", label: "Style (primary/secondary/success/danger)", value: cfg.Feedback.Button.Style},
	}, func(values func(discord.ComponentID) string) (string, error) {
		emoji := values("emoji")
		style := values("style")

		if _, err := parseEmoji(emoji); err != nil {
			return "", fmt.Errorf("``%v`` doesn't look like an emoji I can use.", bcr.EscapeBackticks(emoji))
		}
		if style != "" {
			if _, err := parseButtonStyle(style); err != nil {
				return "", fmt.Errorf("``%v`` isn't a button style. Use primary, secondary, success, or danger.", bcr.EscapeBackticks(style))
			}
		}

		c, cancel := getctx()
		defer cancel()

		cfg, err := bot.DB.SupportConfig(c, ctx.Message.GuildID)
		if err != nil {
			return "", err
		}

		cfg.Feedback.Button.Emoji = emoji
		cfg.Feedback.Button.Label = values("label")
		cfg.Feedback.Button.Style = style

		if err := bot.DB.SetSupportConfig(c, ctx.Message.GuildID, cfg); err != nil {
			return "", err
		}
		return "Feedback button updated.", nil
	})
}

func (bot *Bot) cmdFeedbackConfigResponse(ctx *bcr.Context) (err error) {
	bot.Stats.Inc(stats.CounterCommands)

	c, cancel := getctx()
	defer cancel()

	cfg, err := bot.DB.SupportConfig(c, ctx.Message.GuildID)
	if err != nil {
		return bot.DB.ReportCtx(ctx, err)
	}

	return bot.editor(ctx, "Feedback response", cfg.Feedback.Response, []editorField{
		{id: "response", label: "Response", value: cfg.Feedback.Response, long: true, required: true},
	}, func(values func(discord.ComponentID) string) (string, error) {
		c, cancel := getctx()
		defer cancel()

		cfg, err := bot.DB.SupportConfig(c, ctx.Message.GuildID)
		if err != nil {
			return "", err
		}

		cfg.Feedback.Response = values("response")

		if err := bot.DB.SetSupportConfig(c, ctx.Message.GuildID, cfg); err != nil {
			return "", err
		}
		return "Feedback response updated.", nil
	})
}

func (bot *Bot) cmdRatingShow(ctx *bcr.Context) (err error) {
	bot.Stats.Inc(stats.CounterCommands)

	c, cancel := getctx()
	defer cancel()

	cfg, err := bot.DB.SupportConfig(c, ctx.Message.GuildID)
	if err != nil {
		return bot.DB.ReportCtx(ctx, err)
	}

	_, err = ctx.Sendf("The rating select is **%v**. Placeholder: %v", enabledString(cfg.Feedback.Rating.Enabled), cfg.Feedback.Rating.Placeholder)
	return
}

func (bot *Bot) cmdRatingEnable(ctx *bcr.Context) (err error) {
	bot.Stats.Inc(stats.CounterCommands)

	c, cancel := getctx()
	defer cancel()

	cfg, err := bot.DB.SupportConfig(c, ctx.Message.GuildID)
	if err != nil {
		return bot.DB.ReportCtx(ctx, err)
	}

	if len(ctx.Args) == 0 {
		_, err = ctx.Sendf("The rating select is currently **%v**.", enabledString(cfg.Feedback.Rating.Enabled))
		return
	}

	b, perr := strconv.ParseBool(ctx.Args[0])
	if perr != nil {
		_, err = ctx.Send("I don't know what you mean by that, try `true` or `false`.")
		return
	}

	cfg.Feedback.Rating.Enabled = b
	if err = bot.DB.SetSupportConfig(c, ctx.Message.GuildID, cfg); err != nil {
		return bot.DB.ReportCtx(ctx, err)
	}

	_, err = ctx.Sendf("The rating select is now **%v**.", enabledString(b))
	return
}

func (bot *Bot) cmdRatingPlaceholder(ctx *bcr.Context) (err error) {
	bot.Stats.Inc(stats.CounterCommands)

	c, cancel := getctx()
	defer cancel()

	cfg, err := bot.DB.SupportConfig(c, ctx.Message.GuildID)
	if err != nil {
		return bot.DB.ReportCtx(ctx, err)
	}

	return bot.editor(ctx, "Rating placeholder", cfg.Feedback.Rating.Placeholder, []editorField{
		{id: "placeholder", label: "Placeholder", value: cfg.Feedback.Rating.Placeholder, required: true},
	}, func(values func(discord.ComponentID) string) (string, error) {
		c, cancel := getctx()
		defer cancel()

		cfg, err := bot.DB.SupportConfig(c, ctx.Message.GuildID)
		if err != nil {
			return "", err
		}

		cfg.Feedback.Rating.Placeholder = values("placeholder")

		if err := bot.DB.SetSupportConfig(c, ctx.Message.GuildID, cfg); err != nil {
			return "", err
		}
		return "Rating placeholder updated.", nil
	})
}

func (bot *Bot) cmdFeedbackConfigClear(ctx *bcr.Context) (err error) {
	bot.Stats.Inc(stats.CounterCommands)

	ok, err := bot.UI.Confirm(ctx.State, ctx.Message.ChannelID, ctx.Author.ID,
		"This resets the feedback configuration to the defaults. Continue?")
	if err != nil || !ok {
		_, err = ctx.Send("Cancelled.")
		return
	}

	c, cancel := getctx()
	defer cancel()

	cfg, err := bot.DB.SupportConfig(c, ctx.Message.GuildID)
	if err != nil {
		return bot.DB.ReportCtx(ctx, err)
	}

	cfg.Feedback = db.DefaultSupportConfig().Feedback
	if err = bot.DB.SetSupportConfig(c, ctx.Message.GuildID, cfg); err != nil {
		return bot.DB.ReportCtx(ctx, err)
	}

	_, err = ctx.Send("Feedback configuration reset.")
	return
}
