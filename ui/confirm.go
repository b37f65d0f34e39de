package ui

import (
	"time"

	"emperror.dev/errors"
	"github.com/diamondburned/arikawa/v3/api"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/diamondburned/arikawa/v3/gateway"
	"github.com/diamondburned/arikawa/v3/state"
	"github.com/diamondburned/arikawa/v3/utils/json/option"
)

// ConfirmTimeout is how long a confirmation prompt waits for a button press.
const ConfirmTimeout = time.Minute

const ErrConfirmTimeout = errors.Sentinel("confirmation timed out")

// Confirm sends a yes/no prompt to a channel and blocks until the given user
// presses a button or the prompt times out. The prompt's buttons are
// disabled afterwards.
func (m *Manager) Confirm(s *state.State, chID discord.ChannelID, userID discord.UserID, prompt string) (bool, error) {
	components := discord.ContainerComponents{
		&discord.ActionRowComponent{
			&discord.ButtonComponent{
				CustomID: "confirm:yes",
				Label:    "Confirm",
				Style:    discord.DangerButtonStyle(),
			},
			&discord.ButtonComponent{
				CustomID: "confirm:no",
				Label:    "Cancel",
				Style:    discord.SecondaryButtonStyle(),
			},
		},
	}

	msg, err := s.SendMessageComplex(chID, api.SendMessageData{
		Content:    prompt,
		Components: components,
	})
	if err != nil {
		return false, errors.Wrap(err, "sending prompt")
	}

	ch := make(chan bool, 1)

	m.Session(msg.ID, func(s *state.State, ev *gateway.InteractionCreateEvent, data discord.ComponentInteraction) {
		var presser discord.UserID
		if ev.Member != nil {
			presser = ev.Member.User.ID
		} else if ev.User != nil {
			presser = ev.User.ID
		}

		if presser != userID {
			_ = Ephemeral(s, ev, "This prompt isn't for you.")
			return
		}

		_ = Update(s, ev, api.InteractionResponseData{
			Content:    option.NewNullableString(prompt),
			Components: &discord.ContainerComponents{},
		})

		select {
		case ch <- data.ID() == "confirm:yes":
		default:
		}
	})
	defer m.EndSession(msg.ID)

	select {
	case ok := <-ch:
		return ok, nil
	case <-time.After(ConfirmTimeout):
		_, _ = s.EditMessageComplex(chID, msg.ID, api.EditMessageData{
			Components: &discord.ContainerComponents{},
		})
		return false, ErrConfirmTimeout
	}
}
