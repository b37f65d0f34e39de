package support

import (
	"strings"

	"github.com/diamondburned/arikawa/v3/api"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/diamondburned/arikawa/v3/gateway"
	"github.com/diamondburned/arikawa/v3/state"
	"github.com/diamondburned/arikawa/v3/utils/json/option"
	"github.com/starshine-sys/bcr"

	"doorman/common/log"
	"doorman/db"
	"doorman/ui"
)

func (bot *Bot) contactInteraction(s *state.State, ev *gateway.InteractionCreateEvent, data discord.ComponentInteraction) {
	id := string(data.ID())

	switch {
	case id == customIDContactOpen:
		bot.contactOpen(s, ev)
	case id == customIDContactCategory:
		sel, ok := data.(*discord.SelectInteraction)
		if !ok || len(sel.Values) == 0 {
			return
		}
		bot.contactChose(s, ev, parseChannelID(sel.Values[0]))
	case strings.HasPrefix(id, customIDContactConfirm+":"):
		bot.contactConfirmed(s, ev, parseChannelID(strings.TrimPrefix(id, customIDContactConfirm+":")))
	case id == customIDContactCancel:
		err := ui.Update(s, ev, api.InteractionResponseData{
			Content:    option.NewNullableString("Cancelled."),
			Components: &discord.ContainerComponents{},
		})
		if err != nil {
			log.Errorf("Error responding to interaction: %v", err)
		}
	}
}

func parseChannelID(s string) discord.ChannelID {
	sf, err := discord.ParseSnowflake(s)
	if err != nil {
		return discord.NullChannelID
	}
	return discord.ChannelID(sf)
}

// contactOpen handles the panel button: runs the block and open-ticket
// checks, then either shows the category dropdown, asks for confirmation,
// or opens the ticket outright.
func (bot *Bot) contactOpen(s *state.State, ev *gateway.InteractionCreateEvent) {
	if ev.Member == nil || !ev.GuildID.IsValid() {
		return
	}
	user := ev.Member.User

	ctx, cancel := getctx()
	defer cancel()

	cfg, err := bot.DB.SupportConfig(ctx, ev.GuildID)
	if err != nil {
		bot.DB.Report(db.ErrorContext{Event: "contact open", GuildID: ev.GuildID, UserID: user.ID}, err)
		return
	}

	if !bot.contactChecks(s, ev, user.ID) {
		return
	}

	if cfg.Contact.Dropdown.Enabled && len(cfg.Contact.Dropdown.Options) > 0 {
		err = ui.Respond(s, ev, api.InteractionResponseData{
			Content: option.NewNullableString("What do you need help with?"),
			Components: &discord.ContainerComponents{
				&discord.ActionRowComponent{categorySelect(cfg.Contact.Dropdown)},
			},
			Flags: api.EphemeralResponse,
		})
		if err != nil {
			log.Errorf("Error responding to interaction: %v", err)
		}
		return
	}

	bot.confirmOrCreate(s, ev, cfg, cfg.Contact.Category, false)
}

// contactChose handles the category dropdown.
func (bot *Bot) contactChose(s *state.State, ev *gateway.InteractionCreateEvent, category discord.ChannelID) {
	if ev.Member == nil {
		return
	}

	ctx, cancel := getctx()
	defer cancel()

	cfg, err := bot.DB.SupportConfig(ctx, ev.GuildID)
	if err != nil {
		bot.DB.Report(db.ErrorContext{Event: "contact select", GuildID: ev.GuildID, UserID: ev.Member.User.ID}, err)
		return
	}

	bot.confirmOrCreate(s, ev, cfg, category, true)
}

// confirmOrCreate either shows the confirmation prompt for the chosen
// category or opens the ticket straight away. update selects between a
// fresh ephemeral response and editing the ephemeral select message.
func (bot *Bot) confirmOrCreate(s *state.State, ev *gateway.InteractionCreateEvent, cfg db.SupportConfig, category discord.ChannelID, update bool) {
	if cfg.Contact.Confirm.Enabled {
		data := api.InteractionResponseData{
			Content: option.NewNullableString(cfg.Contact.Confirm.Text),
			Components: &discord.ContainerComponents{
				&discord.ActionRowComponent{
					&discord.ButtonComponent{
						CustomID: discord.ComponentID(customIDContactConfirm + ":" + category.String()),
						Label:    "Open ticket",
						Style:    discord.SuccessButtonStyle(),
					},
					&discord.ButtonComponent{
						CustomID: customIDContactCancel,
						Label:    "Cancel",
						Style:    discord.SecondaryButtonStyle(),
					},
				},
			},
			Flags: api.EphemeralResponse,
		}

		var err error
		if update {
			err = ui.Update(s, ev, data)
		} else {
			err = ui.Respond(s, ev, data)
		}
		if err != nil {
			log.Errorf("Error responding to interaction: %v", err)
		}
		return
	}

	bot.openTicket(s, ev, category, update)
}

// contactConfirmed handles the confirmation button.
func (bot *Bot) contactConfirmed(s *state.State, ev *gateway.InteractionCreateEvent, category discord.ChannelID) {
	bot.openTicket(s, ev, category, true)
}

// contactChecks runs the block and open-ticket checks, responding with an
// ephemeral error on failure. Reports whether the flow may continue.
func (bot *Bot) contactChecks(s *state.State, ev *gateway.InteractionCreateEvent, userID discord.UserID) bool {
	ctx, cancel := getctx()
	defer cancel()

	blocked, err := bot.DB.UserBlocked(ctx, ev.GuildID, userID)
	if err != nil {
		bot.DB.Report(db.ErrorContext{Event: "contact open", GuildID: ev.GuildID, UserID: userID}, err)
		return false
	}
	if blocked {
		_ = ui.Ephemeral(s, ev, "", discord.Embed{
			Description: "You are blocked from opening tickets in this server.",
			Color:       bcr.ColourRed,
		})
		return false
	}

	t, err := bot.DB.Ticket(ctx, ev.GuildID, userID)
	if err == nil {
		_ = ui.Ephemeral(s, ev, "", discord.Embed{
			Description: "You already have an open ticket: " + t.ChannelID.Mention(),
			Color:       bcr.ColourRed,
		})
		return false
	}
	if err != db.ErrNotFound {
		bot.DB.Report(db.ErrorContext{Event: "contact open", GuildID: ev.GuildID, UserID: userID}, err)
		return false
	}

	return true
}

// openTicket creates the ticket channel and records the ticket, responding
// to the interaction with the result.
func (bot *Bot) openTicket(s *state.State, ev *gateway.InteractionCreateEvent, category discord.ChannelID, update bool) {
	if ev.Member == nil {
		return
	}
	user := ev.Member.User

	// re-run the checks: the button may be pressed long after the panel
	// (or a second time from a stale ephemeral prompt)
	if !bot.contactChecks(s, ev, user.ID) {
		return
	}

	ctx, cancel := getctx()
	defer cancel()

	ch, err := bot.createTicket(ctx, s, ev.GuildID, user, category)
	if err != nil {
		bot.DB.Report(db.ErrorContext{Event: "ticket open", GuildID: ev.GuildID, UserID: user.ID}, err)
		_ = ui.Ephemeral(s, ev, "", discord.Embed{
			Description: "Something went wrong opening your ticket. Please try again later.",
			Color:       bcr.ColourRed,
		})
		return
	}

	data := api.InteractionResponseData{
		Content:    option.NewNullableString("Your ticket has been opened: " + ch.Mention()),
		Components: &discord.ContainerComponents{},
		Flags:      api.EphemeralResponse,
	}

	if update {
		err = ui.Update(s, ev, data)
	} else {
		err = ui.Respond(s, ev, data)
	}
	if err != nil {
		log.Errorf("Error responding to interaction: %v", err)
	}
}
