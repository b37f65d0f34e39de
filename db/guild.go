package db

import (
	"context"

	"emperror.dev/errors"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/georgysavva/scany/pgxscan"
)

// InviteGuild is a guild's invite tracking configuration.
type InviteGuild struct {
	ID      discord.GuildID
	Channel discord.ChannelID
	Webhook string
	Enabled bool
	// StoreData controls whether join attributions are persisted per user.
	StoreData bool `db:"store_data"`
}

// InviteGuild returns the guild's invite tracking settings, creating a
// disabled default row if none exists yet.
func (db *DB) InviteGuild(ctx context.Context, id discord.GuildID) (g InviteGuild, err error) {
	sql, args, err := sq.Insert("invite_guilds").
		Columns("id").Values(id).
		Suffix("on conflict (id) do update set id = invite_guilds.id returning *").
		ToSql()
	if err != nil {
		return g, errors.Wrap(err, "building query")
	}

	err = pgxscan.Get(ctx, db, &g, sql, args...)
	return g, errors.Wrap(err, "getting guild")
}

// SetInviteChannel sets the channel join/leave logs are sent to.
// Setting the channel clears any cached webhook URL.
func (db *DB) SetInviteChannel(ctx context.Context, id discord.GuildID, ch discord.ChannelID) error {
	_, err := db.Exec(ctx,
		"insert into invite_guilds (id, channel) values ($1, $2) on conflict (id) do update set channel = $2, webhook = ''",
		id, ch)
	return errors.Wrap(err, "setting invite channel")
}

// SetInviteWebhook caches the log webhook URL for the guild's configured channel.
func (db *DB) SetInviteWebhook(ctx context.Context, id discord.GuildID, url string) error {
	_, err := db.Exec(ctx, "update invite_guilds set webhook = $1 where id = $2", url, id)
	return errors.Wrap(err, "setting invite webhook")
}

// SetInvitesEnabled toggles invite tracking for the guild.
func (db *DB) SetInvitesEnabled(ctx context.Context, id discord.GuildID, enabled bool) error {
	_, err := db.Exec(ctx,
		"insert into invite_guilds (id, enabled) values ($1, $2) on conflict (id) do update set enabled = $2",
		id, enabled)
	return errors.Wrap(err, "setting invites enabled")
}

// SetStoreData toggles persisting per-user join attributions.
func (db *DB) SetStoreData(ctx context.Context, id discord.GuildID, store bool) error {
	_, err := db.Exec(ctx,
		"insert into invite_guilds (id, store_data) values ($1, $2) on conflict (id) do update set store_data = $2",
		id, store)
	return errors.Wrap(err, "setting store_data")
}

// InviteGuilds returns all guilds with invite tracking enabled.
func (db *DB) InviteGuilds(ctx context.Context) (gs []InviteGuild, err error) {
	err = pgxscan.Select(ctx, db, &gs, "select * from invite_guilds where enabled = true")
	return gs, errors.Wrap(err, "getting enabled guilds")
}
