package support

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/starshine-sys/bcr"

	"doorman/common/log"
	"doorman/db"
	"doorman/stats"
)

func (bot *Bot) cmdMenuConfigShow(ctx *bcr.Context) (err error) {
	bot.Stats.Inc(stats.CounterCommands)

	c, cancel := getctx()
	defer cancel()

	cfg, err := bot.DB.SupportConfig(c, ctx.Message.GuildID)
	if err != nil {
		return bot.DB.ReportCtx(ctx, err)
	}

	category := "None"
	if cfg.Contact.Category.IsValid() {
		category = cfg.Contact.Category.Mention()
	}

	_, err = ctx.Send("", discord.Embed{
		Title: "Contact configuration",
		Color: bot.Router.EmbedColor,
		Fields: []discord.EmbedField{
			{
				Name:  "Embed",
				Value: fmt.Sprintf("**%v**\n%v", cfg.Contact.Embed.Title, cfg.Contact.Embed.Description),
			},
			{
				Name:   "Button",
				Value:  buttonString(cfg.Contact.Button),
				Inline: true,
			},
			{
				Name:   "Default category",
				Value:  category,
				Inline: true,
			},
			{
				Name:   "Confirmation",
				Value:  fmt.Sprintf("%v\n%v", enabledString(cfg.Contact.Confirm.Enabled), cfg.Contact.Confirm.Text),
				Inline: true,
			},
			{
				Name:  "Dropdown",
				Value: fmt.Sprintf("%v, %v option(s)\nPlaceholder: %v", enabledString(cfg.Contact.Dropdown.Enabled), len(cfg.Contact.Dropdown.Options), cfg.Contact.Dropdown.Placeholder),
			},
		},
	})
	return
}

func buttonString(c db.ButtonConfig) string {
	s := c.Label
	if c.Emoji != "" {
		s = c.Emoji + " " + s
	}
	return s + " (" + c.Style + ")"
}

// saveAndRefresh persists cfg and re-renders the panel if one is active.
func (bot *Bot) saveAndRefresh(ctx *bcr.Context, cfg db.SupportConfig) error {
	c, cancel := getctx()
	defer cancel()

	err := bot.DB.SetSupportConfig(c, ctx.Message.GuildID, cfg)
	if err != nil {
		return err
	}

	if err := bot.refreshPanel(ctx, cfg); err != nil {
		log.Errorf("Error refreshing panel in %v: %v", ctx.Message.GuildID, err)
	}
	return nil
}

func (bot *Bot) cmdMenuConfigEmbed(ctx *bcr.Context) (err error) {
	bot.Stats.Inc(stats.CounterCommands)

	c, cancel := getctx()
	defer cancel()

	cfg, err := bot.DB.SupportConfig(c, ctx.Message.GuildID)
	if err != nil {
		return bot.DB.ReportCtx(ctx, err)
	}

	current := fmt.Sprintf("**%v**\n%v", cfg.Contact.Embed.Title, cfg.Contact.Embed.Description)
	if cfg.Contact.Embed.Footer != "" {
		current += "\n-# " + cfg.Contact.Embed.Footer
	}

	return bot.editor(ctx, "Panel embed", current, []editorField{
		{id: "title", label: "Title", value: cfg.Contact.Embed.Title, required: true},
		{id: "description", label: "Description", value: cfg.Contact.Embed.Description, long: true, required: true},
		{id: "footer", label: "Footer", value: cfg.Contact.Embed.Footer},
	}, func(values func(discord.ComponentID) string) (string, error) {
		c, cancel := getctx()
		defer cancel()

		cfg, err := bot.DB.SupportConfig(c, ctx.Message.GuildID)
		if err != nil {
			return "", err
		}

		cfg.Contact.Embed.Title = values("title")
		cfg.Contact.Embed.Description = values("description")
		cfg.Contact.Embed.Footer = values("footer")

		if err := bot.saveAndRefresh(ctx, cfg); err != nil {
			return "", err
		}
		return "Panel embed updated.", nil
	})
}

func (bot *Bot) cmdMenuConfigButton(ctx *bcr.Context) (err error) {
	bot.Stats.Inc(stats.CounterCommands)

	c, cancel := getctx()
	defer cancel()

	cfg, err := bot.DB.SupportConfig(c, ctx.Message.GuildID)
	if err != nil {
		return bot.DB.ReportCtx(ctx, err)
	}

	return bot.editor(ctx, "Contact button", buttonString(cfg.Contact.Button), []editorField{
		{id: "emoji", label: "Emoji", value: cfg.Contact.Button.Emoji},
		{id: "label", label: "Label", value: cfg.Contact.Button.Label, required: true},
		{id: "style", label: "Style (primary/secondary/success/danger)", value: cfg.Contact.Button.Style},
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

		cfg.Contact.Button.Emoji = emoji
		cfg.Contact.Button.Label = values("label")
		cfg.Contact.Button.Style = style

		if err := bot.saveAndRefresh(ctx, cfg); err != nil {
			return "", err
		}
		return "Contact button updated.", nil
	})
}

func (bot *Bot) cmdMenuConfigCategory(ctx *bcr.Context) (err error) {
	bot.Stats.Inc(stats.CounterCommands)

	c, cancel := getctx()
	defer cancel()

	cfg, err := bot.DB.SupportConfig(c, ctx.Message.GuildID)
	if err != nil {
		return bot.DB.ReportCtx(ctx, err)
	}

	if len(ctx.Args) == 0 {
		if !cfg.Contact.Category.IsValid() {
			_, err = ctx.Send("No default category set. Tickets open at the top of the channel list.")
			return
		}
		_, err = ctx.Sendf("Tickets open under %v.", cfg.Contact.Category.Mention())
		return
	}

	arg := strings.Join(ctx.Args, " ")
	if arg == "clear" || arg == "none" {
		cfg.Contact.Category = discord.NullChannelID
		if err = bot.DB.SetSupportConfig(c, ctx.Message.GuildID, cfg); err != nil {
			return bot.DB.ReportCtx(ctx, err)
		}
		_, err = ctx.Send("Default category cleared.")
		return
	}

	ch, err := ctx.ParseChannel(arg)
	if err != nil || ch.GuildID != ctx.Message.GuildID || ch.Type != discord.GuildCategory {
		_, err = ctx.Send("That's not a category in this server.")
		return
	}

	cfg.Contact.Category = ch.ID
	if err = bot.DB.SetSupportConfig(c, ctx.Message.GuildID, cfg); err != nil {
		return bot.DB.ReportCtx(ctx, err)
	}
	_, err = ctx.Sendf("Tickets will now open under **%v**.", ch.Name)
	return
}

func (bot *Bot) cmdMenuConfigConfirm(ctx *bcr.Context) (err error) {
	bot.Stats.Inc(stats.CounterCommands)

	c, cancel := getctx()
	defer cancel()

	cfg, err := bot.DB.SupportConfig(c, ctx.Message.GuildID)
	if err != nil {
		return bot.DB.ReportCtx(ctx, err)
	}

	if len(ctx.Args) == 0 {
		_, err = ctx.Sendf("Confirmation is currently **%v**. The prompt is:\n> %v", enabledString(cfg.Contact.Confirm.Enabled), cfg.Contact.Confirm.Text)
		return
	}

	// a bool toggles the step, anything else replaces the prompt text
	if b, perr := strconv.ParseBool(ctx.Args[0]); perr == nil && len(ctx.Args) == 1 {
		cfg.Contact.Confirm.Enabled = b
		if err = bot.DB.SetSupportConfig(c, ctx.Message.GuildID, cfg); err != nil {
			return bot.DB.ReportCtx(ctx, err)
		}
		_, err = ctx.Sendf("Confirmation is now **%v**.", enabledString(b))
		return
	}

	cfg.Contact.Confirm.Text = strings.Join(ctx.Args, " ")
	if err = bot.DB.SetSupportConfig(c, ctx.Message.GuildID, cfg); err != nil {
		return bot.DB.ReportCtx(ctx, err)
	}
	_, err = ctx.Sendf("Confirmation prompt set to:\n> %v", cfg.Contact.Confirm.Text)
	return
}

func (bot *Bot) cmdMenuConfigClear(ctx *bcr.Context) (err error) {
	bot.Stats.Inc(stats.CounterCommands)

	ok, err := bot.UI.Confirm(ctx.State, ctx.Message.ChannelID, ctx.Author.ID,
		"This resets the **entire** contact and feedback configuration to the defaults. Continue?")
	if err != nil || !ok {
		_, err = ctx.Send("Cancelled.")
		return
	}

	c, cancel := getctx()
	defer cancel()

	err = bot.DB.DeleteSupportConfig(c, ctx.Message.GuildID)
	if err != nil {
		return bot.DB.ReportCtx(ctx, err)
	}

	_, err = ctx.Send("Configuration reset. The panel message, if any, is no longer tracked.")
	return
}
