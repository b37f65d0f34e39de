package invites

import (
	"github.com/diamondburned/arikawa/v3/gateway"

	"doorman/common/log"
	"doorman/db"
)

// guildCreate populates the invite snapshot for guilds with tracking
// enabled, so joins right after startup can still be attributed.
func (bot *Bot) guildCreate(ev *gateway.GuildCreateEvent) {
	ctx, cancel := getctx()
	defer cancel()

	g, err := bot.DB.InviteGuild(ctx, ev.ID)
	if err != nil {
		bot.DB.Report(db.ErrorContext{Event: "guild create", GuildID: ev.ID}, err)
		return
	}

	if !g.Enabled {
		return
	}

	if _, err := bot.refreshInvites(ctx, ev.ID); err != nil {
		log.Errorf("Error refreshing invites for %v: %v", ev.ID, err)
	}
	bot.seedVanity(ev.ID)
}

// guildDelete drops the guild's snapshot when the bot is removed. Stored
// attribution data stays; users can still ask for it to be deleted.
func (bot *Bot) guildDelete(ev *gateway.GuildDeleteEvent) {
	if ev.Unavailable {
		return
	}

	ctx, cancel := getctx()
	defer cancel()

	if err := bot.Store.DeleteInvites(ctx, ev.ID); err != nil {
		log.Errorf("Error deleting invite snapshot for %v: %v", ev.ID, err)
	}

	bot.vanityMu.Lock()
	delete(bot.vanityUses, ev.ID)
	bot.vanityMu.Unlock()
}
