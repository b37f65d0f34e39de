package support

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/diamondburned/arikawa/v3/api"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/starshine-sys/bcr"

	"doorman/db"
	"doorman/stats"
)

func (bot *Bot) cmdMenuShow(ctx *bcr.Context) (err error) {
	bot.Stats.Inc(stats.CounterCommands)

	c, cancel := getctx()
	defer cancel()

	cfg, err := bot.DB.SupportConfig(c, ctx.Message.GuildID)
	if err != nil {
		return bot.DB.ReportCtx(ctx, err)
	}

	e := discord.Embed{
		Title: "Contact panel",
		Color: bot.Router.EmbedColor,
	}

	if cfg.Contact.Message.IsValid() {
		e.Description = fmt.Sprintf("Active in %v.", cfg.Contact.Channel.Mention())
	} else {
		e.Description = fmt.Sprintf("Not set up. Use `%vcontactmenu create` to post one.", ctx.Prefix)
	}

	category := "None (top of channel list)"
	if cfg.Contact.Category.IsValid() {
		category = cfg.Contact.Category.Mention()
	}

	e.Fields = append(e.Fields, []discord.EmbedField{
		{
			Name:   "Default category",
			Value:  category,
			Inline: true,
		},
		{
			Name:   "Confirmation",
			Value:  enabledString(cfg.Contact.Confirm.Enabled),
			Inline: true,
		},
		{
			Name:   "Dropdown",
			Value:  fmt.Sprintf("%v, %v option(s)", enabledString(cfg.Contact.Dropdown.Enabled), len(cfg.Contact.Dropdown.Options)),
			Inline: true,
		},
	}...)

	_, err = ctx.Send("", e)
	return
}

func (bot *Bot) cmdMenuCreate(ctx *bcr.Context) (err error) {
	bot.Stats.Inc(stats.CounterCommands)

	c, cancel := getctx()
	defer cancel()

	cfg, err := bot.DB.SupportConfig(c, ctx.Message.GuildID)
	if err != nil {
		return bot.DB.ReportCtx(ctx, err)
	}

	if cfg.Contact.Message.IsValid() {
		// tolerate a deleted panel message, otherwise refuse
		_, err = ctx.State.Message(cfg.Contact.Channel, cfg.Contact.Message)
		if err == nil {
			_, err = ctx.Sendf("There's already a panel in %v. Use `%vcontactmenu disable` first, or `%vcontactmenu refresh` to update it.", cfg.Contact.Channel.Mention(), ctx.Prefix, ctx.Prefix)
			return
		}
	}

	ch := ctx.Channel
	if len(ctx.Args) > 0 {
		ch, err = ctx.ParseChannel(strings.Join(ctx.Args, " "))
		if err != nil {
			_, err = ctx.Send("Channel not found.")
			return
		}
	}
	if ch.GuildID != ctx.Message.GuildID || ch.Type != discord.GuildText {
		_, err = ctx.Send("I can only post the panel in a text channel in this server.")
		return
	}

	msg, err := ctx.State.SendMessageComplex(ch.ID, api.SendMessageData{
		Embeds:     []discord.Embed{configEmbed(cfg.Contact.Embed, bot.Router.EmbedColor)},
		Components: panelComponents(cfg.Contact),
	})
	if err != nil {
		_, err = ctx.Sendf("I couldn't send a message to %v. Do I have permissions there?", ch.Mention())
		return
	}

	cfg.Contact.Channel = ch.ID
	cfg.Contact.Message = msg.ID
	err = bot.DB.SetSupportConfig(c, ctx.Message.GuildID, cfg)
	if err != nil {
		return bot.DB.ReportCtx(ctx, err)
	}

	_, err = ctx.Sendf("Panel posted in %v.", ch.Mention())
	return
}

var messageLinkRe = regexp.MustCompile(`https?://(?:[\w-]+\.)?discord(?:app)?\.com/channels/\d+/(\d+)/(\d+)`)

// parseMessageRef resolves a message link, a "channelID-messageID" pair, or a
// bare message ID in the invoking channel.
func parseMessageRef(ctx *bcr.Context, s string) (*discord.Message, error) {
	if groups := messageLinkRe.FindStringSubmatch(s); groups != nil {
		chID, err := discord.ParseSnowflake(groups[1])
		if err != nil {
			return nil, err
		}
		msgID, err := discord.ParseSnowflake(groups[2])
		if err != nil {
			return nil, err
		}
		return ctx.State.Message(discord.ChannelID(chID), discord.MessageID(msgID))
	}

	if ch, msg, ok := strings.Cut(s, "-"); ok {
		chID, err := discord.ParseSnowflake(ch)
		if err != nil {
			return nil, err
		}
		msgID, err := discord.ParseSnowflake(msg)
		if err != nil {
			return nil, err
		}
		return ctx.State.Message(discord.ChannelID(chID), discord.MessageID(msgID))
	}

	msgID, err := discord.ParseSnowflake(s)
	if err != nil {
		return nil, err
	}
	return ctx.State.Message(ctx.Message.ChannelID, discord.MessageID(msgID))
}

func (bot *Bot) cmdMenuAttach(ctx *bcr.Context) (err error) {
	bot.Stats.Inc(stats.CounterCommands)

	msg, err := parseMessageRef(ctx, ctx.Args[0])
	if err != nil {
		_, err = ctx.Send("Message not found. Use a message link, or run this in the message's channel with its ID.")
		return
	}

	if msg.GuildID != ctx.Message.GuildID && msg.GuildID.IsValid() {
		_, err = ctx.Send("That message isn't in this server.")
		return
	}

	me, err := ctx.State.Me()
	if err != nil {
		return bot.DB.ReportCtx(ctx, err)
	}
	if msg.Author.ID != me.ID {
		_, err = ctx.Send("I can only attach the panel to my own messages.")
		return
	}

	c, cancel := getctx()
	defer cancel()

	cfg, err := bot.DB.SupportConfig(c, ctx.Message.GuildID)
	if err != nil {
		return bot.DB.ReportCtx(ctx, err)
	}

	components := panelComponents(cfg.Contact)
	_, err = ctx.State.EditMessageComplex(msg.ChannelID, msg.ID, api.EditMessageData{
		Components: &components,
	})
	if err != nil {
		_, err = ctx.Send("I couldn't edit that message.")
		return
	}

	cfg.Contact.Channel = msg.ChannelID
	cfg.Contact.Message = msg.ID
	err = bot.DB.SetSupportConfig(c, ctx.Message.GuildID, cfg)
	if err != nil {
		return bot.DB.ReportCtx(ctx, err)
	}

	_, err = ctx.Sendf("Panel attached to the message in %v.", msg.ChannelID.Mention())
	return
}

// refreshPanel re-renders the stored panel message from cfg. A missing panel
// is not an error.
func (bot *Bot) refreshPanel(ctx *bcr.Context, cfg db.SupportConfig) error {
	if !cfg.Contact.Message.IsValid() {
		return nil
	}

	components := panelComponents(cfg.Contact)
	embeds := []discord.Embed{configEmbed(cfg.Contact.Embed, bot.Router.EmbedColor)}
	_, err := ctx.State.EditMessageComplex(cfg.Contact.Channel, cfg.Contact.Message, api.EditMessageData{
		Embeds:     &embeds,
		Components: &components,
	})
	return err
}

func (bot *Bot) cmdMenuRefresh(ctx *bcr.Context) (err error) {
	bot.Stats.Inc(stats.CounterCommands)

	c, cancel := getctx()
	defer cancel()

	cfg, err := bot.DB.SupportConfig(c, ctx.Message.GuildID)
	if err != nil {
		return bot.DB.ReportCtx(ctx, err)
	}

	if !cfg.Contact.Message.IsValid() {
		_, err = ctx.Sendf("There's no panel to refresh. Use `%vcontactmenu create` first.", ctx.Prefix)
		return
	}

	err = bot.refreshPanel(ctx, cfg)
	if err != nil {
		_, err = ctx.Send("I couldn't edit the panel message. Was it deleted?")
		return
	}

	_, err = ctx.Send("Panel refreshed.")
	return
}

func (bot *Bot) cmdMenuDisable(ctx *bcr.Context) (err error) {
	bot.Stats.Inc(stats.CounterCommands)

	c, cancel := getctx()
	defer cancel()

	cfg, err := bot.DB.SupportConfig(c, ctx.Message.GuildID)
	if err != nil {
		return bot.DB.ReportCtx(ctx, err)
	}

	if !cfg.Contact.Message.IsValid() {
		_, err = ctx.Send("There's no active panel.")
		return
	}

	empty := discord.ContainerComponents{}
	_, err = ctx.State.EditMessageComplex(cfg.Contact.Channel, cfg.Contact.Message, api.EditMessageData{
		Components: &empty,
	})
	if err != nil {
		// message is gone, nothing left to strip
		err = nil
	}

	cfg.Contact.Channel = discord.NullChannelID
	cfg.Contact.Message = 0
	err = bot.DB.SetSupportConfig(c, ctx.Message.GuildID, cfg)
	if err != nil {
		return bot.DB.ReportCtx(ctx, err)
	}

	_, err = ctx.Send("Panel disabled.")
	return
}

func enabledString(b bool) string {
	if b {
		return "enabled"
	}
	return "disabled"
}
