// Package ui routes message component and modal interactions to handlers.
//
// Handlers come in two flavours: static handlers, registered once at startup
// under a custom ID prefix, which survive restarts because all state they
// need is in the custom ID or the database; and session handlers, registered
// under a message or custom ID with a TTL, for short-lived flows like
// confirmation prompts and config editors.
package ui

import (
	"strings"
	"sync"
	"time"

	"github.com/ReneKroon/ttlcache/v2"
	"github.com/diamondburned/arikawa/v3/api"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/diamondburned/arikawa/v3/gateway"
	"github.com/diamondburned/arikawa/v3/state"
	"github.com/diamondburned/arikawa/v3/utils/json/option"

	"doorman/common/log"
)

// SessionTTL is how long message- and modal-scoped handlers stay registered.
const SessionTTL = 15 * time.Minute

type ComponentFunc func(s *state.State, ev *gateway.InteractionCreateEvent, data discord.ComponentInteraction)

type ModalFunc func(s *state.State, ev *gateway.InteractionCreateEvent, data *discord.ModalInteraction)

type Manager struct {
	mu           sync.RWMutex
	components   map[string]ComponentFunc
	staticModals map[string]ModalFunc

	// message ID -> ComponentFunc
	sessions *ttlcache.Cache
	// modal custom ID -> ModalFunc
	modals *ttlcache.Cache
}

func NewManager() *Manager {
	m := &Manager{
		components:   map[string]ComponentFunc{},
		staticModals: map[string]ModalFunc{},
		sessions:     ttlcache.NewCache(),
		modals:       ttlcache.NewCache(),
	}

	m.sessions.SetTTL(SessionTTL)
	m.sessions.SkipTTLExtensionOnHit(true)
	m.modals.SetTTL(SessionTTL)
	m.modals.SkipTTLExtensionOnHit(true)

	return m
}

// Component registers a permanent handler for component interactions whose
// custom ID starts with the given prefix (the part before ':').
func (m *Manager) Component(prefix string, fn ComponentFunc) {
	m.mu.Lock()
	m.components[prefix] = fn
	m.mu.Unlock()
}

// Modal registers a permanent handler for modal submissions whose custom ID
// starts with the given prefix.
func (m *Manager) Modal(prefix string, fn ModalFunc) {
	m.mu.Lock()
	m.staticModals[prefix] = fn
	m.mu.Unlock()
}

// Session registers a handler for component interactions on a single
// message. It expires after SessionTTL.
func (m *Manager) Session(msgID discord.MessageID, fn ComponentFunc) {
	m.sessions.Set(msgID.String(), fn)
}

// EndSession removes a message-scoped handler.
func (m *Manager) EndSession(msgID discord.MessageID) {
	m.sessions.Remove(msgID.String())
}

// ModalSession registers a handler for a single modal custom ID. It expires
// after SessionTTL.
func (m *Manager) ModalSession(customID string, fn ModalFunc) {
	m.modals.Set(customID, fn)
}

// Register attaches the manager's interaction handler to a state.
func (m *Manager) Register(s *state.State) {
	s.AddHandler(func(ev *gateway.InteractionCreateEvent) {
		m.handle(s, ev)
	})
}

func (m *Manager) handle(s *state.State, ev *gateway.InteractionCreateEvent) {
	defer func() {
		if r := recover(); r != nil {
			log.Errorf("panic in interaction handler: %v", r)
		}
	}()

	switch data := ev.Data.(type) {
	case *discord.ModalInteraction:
		m.handleModal(s, ev, data)
	case discord.ComponentInteraction:
		m.handleComponent(s, ev, data)
	}
}

func (m *Manager) handleComponent(s *state.State, ev *gateway.InteractionCreateEvent, data discord.ComponentInteraction) {
	// message-scoped sessions take priority
	if ev.Message != nil {
		if v, err := m.sessions.Get(ev.Message.ID.String()); err == nil {
			v.(ComponentFunc)(s, ev, data)
			return
		}
	}

	prefix := idPrefix(string(data.ID()))

	m.mu.RLock()
	fn, ok := m.components[prefix]
	m.mu.RUnlock()
	if ok {
		fn(s, ev, data)
	}
}

func (m *Manager) handleModal(s *state.State, ev *gateway.InteractionCreateEvent, data *discord.ModalInteraction) {
	if v, err := m.modals.Get(string(data.CustomID)); err == nil {
		m.modals.Remove(string(data.CustomID))
		v.(ModalFunc)(s, ev, data)
		return
	}

	m.mu.RLock()
	fn, ok := m.staticModals[idPrefix(string(data.CustomID))]
	m.mu.RUnlock()
	if ok {
		fn(s, ev, data)
	}
}

func idPrefix(id string) string {
	if i := strings.IndexByte(id, ':'); i >= 0 {
		return id[:i]
	}
	return id
}

// Respond sends an initial message response to an interaction.
func Respond(s *state.State, ev *gateway.InteractionCreateEvent, data api.InteractionResponseData) error {
	return s.RespondInteraction(ev.ID, ev.Token, api.InteractionResponse{
		Type: api.MessageInteractionWithSource,
		Data: &data,
	})
}

// Ephemeral responds with an ephemeral message.
func Ephemeral(s *state.State, ev *gateway.InteractionCreateEvent, content string, embeds ...discord.Embed) error {
	data := api.InteractionResponseData{
		Content: option.NewNullableString(content),
		Flags:   api.EphemeralResponse,
	}
	if len(embeds) > 0 {
		data.Embeds = &embeds
	}
	return Respond(s, ev, data)
}

// Update responds by editing the message the component is attached to.
func Update(s *state.State, ev *gateway.InteractionCreateEvent, data api.InteractionResponseData) error {
	return s.RespondInteraction(ev.ID, ev.Token, api.InteractionResponse{
		Type: api.UpdateMessage,
		Data: &data,
	})
}

// Defer acknowledges the interaction without a visible response.
func Defer(s *state.State, ev *gateway.InteractionCreateEvent) error {
	return s.RespondInteraction(ev.ID, ev.Token, api.InteractionResponse{
		Type: api.DeferredMessageUpdate,
	})
}

// ShowModal responds by opening a modal.
func ShowModal(s *state.State, ev *gateway.InteractionCreateEvent, customID, title string, components discord.ContainerComponents) error {
	return s.RespondInteraction(ev.ID, ev.Token, api.InteractionResponse{
		Type: api.ModalResponse,
		Data: &api.InteractionResponseData{
			CustomID:   option.NewNullableString(customID),
			Title:      option.NewNullableString(title),
			Components: &components,
		},
	})
}
