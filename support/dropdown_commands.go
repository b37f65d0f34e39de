package support

import (
	"fmt"
	"strconv"

	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/starshine-sys/bcr"

	"doorman/db"
	"doorman/stats"
)

// Discord caps select menus at 25 options.
const maxDropdownOptions = 25

func (bot *Bot) cmdDropdownShow(ctx *bcr.Context) (err error) {
	bot.Stats.Inc(stats.CounterCommands)

	c, cancel := getctx()
	defer cancel()

	cfg, err := bot.DB.SupportConfig(c, ctx.Message.GuildID)
	if err != nil {
		return bot.DB.ReportCtx(ctx, err)
	}

	_, err = ctx.Send("", discord.Embed{
		Title:       "Category dropdown",
		Description: fmt.Sprintf("The dropdown is **%v** and has **%v** option(s). It's only shown when at least one option is set.", enabledString(cfg.Contact.Dropdown.Enabled), len(cfg.Contact.Dropdown.Options)),
		Color:       bot.Router.EmbedColor,
		Footer: &discord.EmbedFooter{
			Text: fmt.Sprintf("Placeholder: %v", cfg.Contact.Dropdown.Placeholder),
		},
	})
	return
}

func (bot *Bot) cmdDropdownEnable(ctx *bcr.Context) (err error) {
	bot.Stats.Inc(stats.CounterCommands)

	c, cancel := getctx()
	defer cancel()

	cfg, err := bot.DB.SupportConfig(c, ctx.Message.GuildID)
	if err != nil {
		return bot.DB.ReportCtx(ctx, err)
	}

	if len(ctx.Args) == 0 {
		_, err = ctx.Sendf("The dropdown is currently **%v**.", enabledString(cfg.Contact.Dropdown.Enabled))
		return
	}

	b, perr := strconv.ParseBool(ctx.Args[0])
	if perr != nil {
		_, err = ctx.Send("I don't know what you mean by that, try `true` or `false`.")
		return
	}

	cfg.Contact.Dropdown.Enabled = b
	if err = bot.saveAndRefresh(ctx, cfg); err != nil {
		return bot.DB.ReportCtx(ctx, err)
	}

	_, err = ctx.Sendf("The dropdown is now **%v**.", enabledString(b))
	return
}

func (bot *Bot) cmdDropdownPlaceholder(ctx *bcr.Context) (err error) {
	bot.Stats.Inc(stats.CounterCommands)

	c, cancel := getctx()
	defer cancel()

	cfg, err := bot.DB.SupportConfig(c, ctx.Message.GuildID)
	if err != nil {
		return bot.DB.ReportCtx(ctx, err)
	}

	return bot.editor(ctx, "Dropdown placeholder", cfg.Contact.Dropdown.Placeholder, []editorField{
		{id: "placeholder", label: "Placeholder", value: cfg.Contact.Dropdown.Placeholder, required: true},
	}, func(values func(discord.ComponentID) string) (string, error) {
		c, cancel := getctx()
		defer cancel()

		cfg, err := bot.DB.SupportConfig(c, ctx.Message.GuildID)
		if err != nil {
			return "", err
		}

		cfg.Contact.Dropdown.Placeholder = values("placeholder")

		if err := bot.saveAndRefresh(ctx, cfg); err != nil {
			return "", err
		}
		return "Dropdown placeholder updated.", nil
	})
}

func (bot *Bot) cmdDropdownAdd(ctx *bcr.Context) (err error) {
	bot.Stats.Inc(stats.CounterCommands)

	c, cancel := getctx()
	defer cancel()

	cfg, err := bot.DB.SupportConfig(c, ctx.Message.GuildID)
	if err != nil {
		return bot.DB.ReportCtx(ctx, err)
	}

	if len(cfg.Contact.Dropdown.Options) >= maxDropdownOptions {
		_, err = ctx.Sendf("The dropdown already has %v options, which is as many as Discord allows.", maxDropdownOptions)
		return
	}

	return bot.editor(ctx, "New dropdown option", "Link a dropdown option to a channel category.", []editorField{
		{id: "label", label: "Label", required: true},
		{id: "description", label: "Description", long: true},
		{id: "emoji", label: "Emoji"},
		{id: "category", label: "Category (name or ID)", required: true},
	}, func(values func(discord.ComponentID) string) (string, error) {
		emoji := values("emoji")
		if _, err := parseEmoji(emoji); err != nil {
			return "", fmt.Errorf("``%v`` doesn't look like an emoji I can use.", bcr.EscapeBackticks(emoji))
		}

		cat, err := bot.findCategory(ctx, values("category"))
		if err != nil {
			return "", err
		}

		c, cancel := getctx()
		defer cancel()

		cfg, err := bot.DB.SupportConfig(c, ctx.Message.GuildID)
		if err != nil {
			return "", err
		}

		label := values("label")
		for _, o := range cfg.Contact.Dropdown.Options {
			if o.Label == label {
				return "", fmt.Errorf("There's already an option named ``%v``.", bcr.EscapeBackticks(label))
			}
			if o.Category == cat.ID {
				return "", fmt.Errorf("The **%v** category is already linked to the ``%v`` option.", cat.Name, bcr.EscapeBackticks(o.Label))
			}
		}

		cfg.Contact.Dropdown.Options = append(cfg.Contact.Dropdown.Options, db.OptionConfig{
			Emoji:       emoji,
			Label:       label,
			Description: values("description"),
			Category:    cat.ID,
		})

		if err := bot.saveAndRefresh(ctx, cfg); err != nil {
			return "", err
		}
		return fmt.Sprintf("Added option **%v** for the **%v** category.", label, cat.Name), nil
	})
}

// findCategory resolves a category by ID, mention, or name.
func (bot *Bot) findCategory(ctx *bcr.Context, s string) (*discord.Channel, error) {
	ch, err := ctx.ParseChannel(s)
	if err != nil {
		return nil, fmt.Errorf("I can't find a category matching ``%v``.", bcr.EscapeBackticks(s))
	}
	if ch.GuildID != ctx.Message.GuildID || ch.Type != discord.GuildCategory {
		return nil, fmt.Errorf("``%v`` isn't a category in this server.", bcr.EscapeBackticks(s))
	}
	return ch, nil
}

func (bot *Bot) cmdDropdownList(ctx *bcr.Context) (err error) {
	bot.Stats.Inc(stats.CounterCommands)

	c, cancel := getctx()
	defer cancel()

	cfg, err := bot.DB.SupportConfig(c, ctx.Message.GuildID)
	if err != nil {
		return bot.DB.ReportCtx(ctx, err)
	}

	if len(cfg.Contact.Dropdown.Options) == 0 {
		_, err = ctx.Sendf("The dropdown has no options. Add some with `%vcontactmenu config dropdown add`.", ctx.Prefix)
		return
	}

	var fields []discord.EmbedField
	for _, o := range cfg.Contact.Dropdown.Options {
		name := o.Label
		if o.Emoji != "" {
			name = o.Emoji + " " + name
		}

		value := "Category: " + o.Category.Mention()
		if o.Description != "" {
			value = o.Description + "\n" + value
		}

		fields = append(fields, discord.EmbedField{
			Name:  name,
			Value: value,
		})
	}

	_, err = ctx.PagedEmbed(
		bcr.FieldPaginator("Dropdown options", "", bot.Router.EmbedColor, fields, 5), false,
	)
	return
}

func (bot *Bot) cmdDropdownClear(ctx *bcr.Context) (err error) {
	bot.Stats.Inc(stats.CounterCommands)

	c, cancel := getctx()
	defer cancel()

	cfg, err := bot.DB.SupportConfig(c, ctx.Message.GuildID)
	if err != nil {
		return bot.DB.ReportCtx(ctx, err)
	}

	if len(cfg.Contact.Dropdown.Options) == 0 {
		_, err = ctx.Send("The dropdown has no options.")
		return
	}

	ok, err := bot.UI.Confirm(ctx.State, ctx.Message.ChannelID, ctx.Author.ID,
		fmt.Sprintf("Remove all %v dropdown option(s)?", len(cfg.Contact.Dropdown.Options)))
	if err != nil || !ok {
		_, err = ctx.Send("Cancelled.")
		return
	}

	cfg.Contact.Dropdown.Options = nil
	if err = bot.saveAndRefresh(ctx, cfg); err != nil {
		return bot.DB.ReportCtx(ctx, err)
	}

	_, err = ctx.Send("Dropdown options cleared.")
	return
}
