package ui

import (
	"testing"

	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/diamondburned/arikawa/v3/gateway"
	"github.com/diamondburned/arikawa/v3/state"
	"github.com/stretchr/testify/assert"
)

func TestIDPrefix(t *testing.T) {
	assert.Equal(t, "contact", idPrefix("contact:open"))
	assert.Equal(t, "contact", idPrefix("contact:confirm:123"))
	assert.Equal(t, "feedback", idPrefix("feedback"))
	assert.Equal(t, "", idPrefix(""))
}

func componentEvent(msgID discord.MessageID, customID discord.ComponentID) (*gateway.InteractionCreateEvent, discord.ComponentInteraction) {
	data := &discord.ButtonInteraction{CustomID: customID}
	ev := &gateway.InteractionCreateEvent{
		InteractionEvent: discord.InteractionEvent{
			Data:    data,
			Message: &discord.Message{ID: msgID},
		},
	}
	return ev, data
}

func TestDispatchPrefix(t *testing.T) {
	m := NewManager()

	var got discord.ComponentID
	m.Component("contact", func(_ *state.State, _ *gateway.InteractionCreateEvent, data discord.ComponentInteraction) {
		got = data.ID()
	})

	ev, data := componentEvent(1, "contact:category")
	m.handleComponent(nil, ev, data)
	assert.Equal(t, discord.ComponentID("contact:category"), got)

	// unknown prefixes are ignored
	got = ""
	ev, data = componentEvent(1, "other:thing")
	m.handleComponent(nil, ev, data)
	assert.Empty(t, got)
}

func TestDispatchSessionPriority(t *testing.T) {
	m := NewManager()

	var calls []string
	m.Component("confirm", func(_ *state.State, _ *gateway.InteractionCreateEvent, _ discord.ComponentInteraction) {
		calls = append(calls, "static")
	})
	m.Session(5, func(_ *state.State, _ *gateway.InteractionCreateEvent, _ discord.ComponentInteraction) {
		calls = append(calls, "session")
	})

	// a message with a session handler goes to the session, even if the
	// custom ID also matches a static prefix
	ev, data := componentEvent(5, "confirm:yes")
	m.handleComponent(nil, ev, data)
	assert.Equal(t, []string{"session"}, calls)

	// other messages still hit the static handler
	ev, data = componentEvent(6, "confirm:yes")
	m.handleComponent(nil, ev, data)
	assert.Equal(t, []string{"session", "static"}, calls)

	// ended sessions fall through
	m.EndSession(5)
	ev, data = componentEvent(5, "confirm:yes")
	m.handleComponent(nil, ev, data)
	assert.Equal(t, []string{"session", "static", "static"}, calls)
}

func TestDispatchModalSession(t *testing.T) {
	m := NewManager()

	var calls int
	m.ModalSession("editor:abc", func(_ *state.State, _ *gateway.InteractionCreateEvent, _ *discord.ModalInteraction) {
		calls++
	})

	data := &discord.ModalInteraction{CustomID: "editor:abc"}
	ev := &gateway.InteractionCreateEvent{InteractionEvent: discord.InteractionEvent{Data: data}}

	// modal sessions are one-shot
	m.handleModal(nil, ev, data)
	m.handleModal(nil, ev, data)
	assert.Equal(t, 1, calls)
}
