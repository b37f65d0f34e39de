package support

import (
	"github.com/diamondburned/arikawa/v3/api"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/diamondburned/arikawa/v3/gateway"
	"github.com/diamondburned/arikawa/v3/state"
	"github.com/diamondburned/arikawa/v3/utils/json/option"
	"github.com/starshine-sys/bcr"

	"doorman/common/log"
	"doorman/ui"
)

// editorField is one text input in a config editor modal.
type editorField struct {
	id       discord.ComponentID
	label    string
	value    string
	long     bool
	required bool
}

// editor posts an embed with Set and Cancel buttons. Set opens a modal
// with the given fields; the submitted values go to apply, which validates
// and persists them and returns the confirmation text shown to the user.
// A validation failure is returned as an error whose message is shown
// verbatim.
func (bot *Bot) editor(ctx *bcr.Context, title, current string, fields []editorField, apply func(values func(discord.ComponentID) string) (string, error)) error {
	msg, err := ctx.Send("", discord.Embed{
		Title:       title,
		Description: current,
		Color:       bot.Router.EmbedColor,
		Footer: &discord.EmbedFooter{
			Text: "Press Set to edit, or Cancel to keep the current values.",
		},
	})
	if err != nil {
		return err
	}

	_, err = ctx.State.EditMessageComplex(msg.ChannelID, msg.ID, api.EditMessageData{
		Components: &discord.ContainerComponents{
			&discord.ActionRowComponent{
				&discord.ButtonComponent{
					CustomID: "editor:set",
					Label:    "Set",
					Style:    discord.PrimaryButtonStyle(),
				},
				&discord.ButtonComponent{
					CustomID: "editor:cancel",
					Label:    "Cancel",
					Style:    discord.SecondaryButtonStyle(),
				},
			},
		},
	})
	if err != nil {
		return err
	}

	author := ctx.Author.ID

	bot.UI.Session(msg.ID, func(s *state.State, ev *gateway.InteractionCreateEvent, data discord.ComponentInteraction) {
		var presser discord.UserID
		if ev.Member != nil {
			presser = ev.Member.User.ID
		}
		if presser != author {
			_ = ui.Ephemeral(s, ev, "This editor isn't yours.")
			return
		}

		switch data.ID() {
		case "editor:cancel":
			bot.UI.EndSession(msg.ID)
			err := ui.Update(s, ev, api.InteractionResponseData{
				Components: &discord.ContainerComponents{},
			})
			if err != nil {
				log.Errorf("Error responding to interaction: %v", err)
			}

		case "editor:set":
			modalID := "editor:" + msg.ID.String()

			bot.UI.ModalSession(modalID, func(s *state.State, ev *gateway.InteractionCreateEvent, data *discord.ModalInteraction) {
				values := func(id discord.ComponentID) string {
					return modalValue(data.Components, id)
				}

				done, err := apply(values)
				if err != nil {
					_ = ui.Ephemeral(s, ev, "", discord.Embed{
						Description: err.Error(),
						Color:       bcr.ColourRed,
					})
					return
				}

				bot.UI.EndSession(msg.ID)
				bot.stripComponents(s, msg.ChannelID, msg.ID)

				rerr := ui.Respond(s, ev, api.InteractionResponseData{
					Embeds: &[]discord.Embed{{
						Description: done,
						Color:       bcr.ColourGreen,
					}},
				})
				if rerr != nil {
					log.Errorf("Error responding to interaction: %v", rerr)
				}
			})

			var rows discord.ContainerComponents
			for _, f := range fields {
				input := &discord.TextInputComponent{
					CustomID: f.id,
					Label:    f.label,
					Style:    discord.TextInputShortStyle,
					Required: f.required,
				}
				if f.long {
					input.Style = discord.TextInputParagraphStyle
				}
				if f.value != "" {
					input.Value = option.NewNullableString(f.value)
				}
				rows = append(rows, &discord.ActionRowComponent{input})
			}

			if err := ui.ShowModal(s, ev, modalID, title, rows); err != nil {
				log.Errorf("Error showing editor modal: %v", err)
			}
		}
	})

	return nil
}

func (bot *Bot) stripComponents(s *state.State, chID discord.ChannelID, msgID discord.MessageID) {
	_, err := s.EditMessageComplex(chID, msgID, api.EditMessageData{
		Components: &discord.ContainerComponents{},
	})
	if err != nil {
		log.Errorf("Error removing editor components on %v: %v", msgID, err)
	}
}
