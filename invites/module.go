// Package invites tracks which invite new members used to join.
package invites

import (
	"context"
	"sync"
	"time"

	"emperror.dev/errors"
	"github.com/diamondburned/arikawa/v3/api"
	"github.com/diamondburned/arikawa/v3/discord"

	"doorman/bot"
	"doorman/common/log"
	"doorman/store"
)

type Bot struct {
	*bot.Bot

	// vanity invite use counts, keyed by guild. Kept in process: the
	// vanity invite isn't part of the regular invite list, so it's not in
	// the snapshot store.
	vanityMu   sync.Mutex
	vanityUses map[discord.GuildID]int
}

func Init(b *bot.Bot) {
	bot := &Bot{
		Bot:        b,
		vanityUses: map[discord.GuildID]int{},
	}

	bot.AddHandler(
		bot.guildCreate,
		bot.guildDelete,
		bot.inviteCreate,
		bot.guildMemberAdd,
		bot.guildMemberRemove,
		bot.webhooksUpdate,
	)

	bot.initCommands()
}

func getctx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 10*time.Second)
}

// refreshInvites fetches the guild's invites and replaces the stored
// snapshot with them.
func (bot *Bot) refreshInvites(ctx context.Context, guildID discord.GuildID) ([]discord.Invite, error) {
	is, err := bot.State(guildID).GuildInvites(guildID)
	if err != nil {
		return nil, errors.Wrap(err, "fetching invites")
	}

	err = bot.Store.SetInvites(ctx, guildID, is)
	return is, errors.Wrap(err, "storing snapshot")
}

// cachedInvites returns the stored snapshot, or nil if there is none yet.
func (bot *Bot) cachedInvites(ctx context.Context, guildID discord.GuildID) ([]discord.Invite, error) {
	is, err := bot.Store.Invites(ctx, guildID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	return is, err
}

// fetchVanity fetches the guild's vanity invite. The vanity URL isn't
// included in the regular invite list endpoint.
func (bot *Bot) fetchVanity(guildID discord.GuildID) (inv discord.Invite, err error) {
	err = bot.State(guildID).Client.RequestJSON(
		&inv, "GET",
		api.EndpointGuilds+guildID.String()+"/vanity-url")
	return inv, errors.Wrap(err, "fetching vanity invite")
}

// bumpVanityUses records the vanity invite's current use count and reports
// whether it increased since the last recorded value. An unseeded counter
// never reports an increase.
func (bot *Bot) bumpVanityUses(guildID discord.GuildID, uses int) bool {
	bot.vanityMu.Lock()
	defer bot.vanityMu.Unlock()

	prev, ok := bot.vanityUses[guildID]
	bot.vanityUses[guildID] = uses
	return ok && uses > prev
}

// seedVanity primes the vanity use counter alongside the invite snapshot,
// so the first vanity join after startup can still be attributed.
func (bot *Bot) seedVanity(guildID discord.GuildID) {
	if !bot.hasVanity(guildID) {
		return
	}

	v, err := bot.fetchVanity(guildID)
	if err != nil {
		log.Errorf("Error fetching vanity invite for %v: %v", guildID, err)
		return
	}
	bot.bumpVanityUses(guildID, v.Uses)
}

// hasVanity reports whether the guild has the vanity URL feature.
func (bot *Bot) hasVanity(guildID discord.GuildID) bool {
	g, err := bot.State(guildID).Guild(guildID)
	if err != nil {
		return false
	}

	for _, f := range g.Features {
		if f == discord.VanityURL {
			return true
		}
	}
	return false
}
