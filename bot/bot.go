// Package bot holds the shared state all modules hang off.
package bot

import (
	"context"

	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/diamondburned/arikawa/v3/session/shard"
	"github.com/diamondburned/arikawa/v3/state"
	"github.com/starshine-sys/bcr"

	"doorman/db"
	"doorman/stats"
	"doorman/store"
	"doorman/ui"
)

type Bot struct {
	Router *bcr.Router
	DB     *db.DB
	Store  store.Store
	UI     *ui.Manager
	Stats  *stats.Client
}

// New wires up a bot. Stats may be nil.
func New(r *bcr.Router, database *db.DB, st store.Store, statsClient *stats.Client) *Bot {
	b := &Bot{
		Router: r,
		DB:     database,
		Store:  st,
		UI:     ui.NewManager(),
		Stats:  statsClient,
	}

	b.ForEach(func(s *state.State) {
		b.UI.Register(s)
		if b.Stats != nil {
			s.AddHandler(b.Stats.EventHandler)
		}
	})

	return b
}

// State returns the state for the shard handling the given guild.
func (b *Bot) State(guildID discord.GuildID) *state.State {
	s, _ := b.Router.StateFromGuildID(guildID)
	return s
}

// ForEach runs fn for every shard's state.
func (b *Bot) ForEach(fn func(s *state.State)) {
	b.Router.ShardManager.ForEach(func(sh shard.Shard) {
		fn(sh.(*state.State))
	})
}

// AddHandler adds the given handlers to all shards.
func (b *Bot) AddHandler(handlers ...interface{}) {
	b.ForEach(func(s *state.State) {
		for _, h := range handlers {
			s.AddHandler(h)
		}
	})
}

func (b *Bot) Open(ctx context.Context) error {
	return b.Router.ShardManager.Open(ctx)
}

func (b *Bot) Close() error {
	return b.Router.ShardManager.Close()
}
