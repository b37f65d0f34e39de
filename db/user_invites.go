package db

import (
	"context"
	"encoding/json"
	"time"

	"emperror.dev/errors"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/georgysavva/scany/pgxscan"
)

const ErrNotFound = errors.Sentinel("record not found")

// StoredInvite is the invite a user was attributed to when they joined a
// guild. It keeps only the fields needed to show the attribution later, not
// the full invite object.
type StoredInvite struct {
	Code      string            `json:"code"`
	InviterID discord.UserID    `json:"inviter_id,omitempty"`
	ChannelID discord.ChannelID `json:"channel_id,omitempty"`
	CreatedAt *time.Time        `json:"created_at,omitempty"`
	MaxAge    int               `json:"max_age,omitempty"`
	MaxUses   int               `json:"max_uses,omitempty"`
	Vanity    bool              `json:"vanity,omitempty"`
	JoinedAt  time.Time         `json:"joined_at"`
}

// UserInvites maps guilds to the invite the user joined through.
type UserInvites struct {
	UserID discord.UserID
	Guilds map[discord.GuildID]StoredInvite
}

// UserInvite returns the stored join attribution for a user in a guild.
// Returns ErrNotFound if nothing is stored.
func (db *DB) UserInvite(ctx context.Context, guildID discord.GuildID, userID discord.UserID) (inv StoredInvite, err error) {
	u, err := db.UserInvites(ctx, userID)
	if err != nil {
		return inv, err
	}

	inv, ok := u.Guilds[guildID]
	if !ok {
		return inv, ErrNotFound
	}
	return inv, nil
}

// UserInvites returns all stored join attributions for a user.
func (db *DB) UserInvites(ctx context.Context, userID discord.UserID) (u UserInvites, err error) {
	u.UserID = userID
	u.Guilds = map[discord.GuildID]StoredInvite{}

	var raw []byte
	err = db.QueryRow(ctx, "select guilds from user_invites where user_id = $1", userID).Scan(&raw)
	if err != nil {
		if pgxscan.NotFound(err) {
			return u, ErrNotFound
		}
		return u, errors.Wrap(err, "getting user invites")
	}

	return u, errors.Wrap(json.Unmarshal(raw, &u.Guilds), "unmarshaling user invites")
}

// SaveUserInvite records the invite a user joined a guild through,
// overwriting any previous attribution for that guild.
func (db *DB) SaveUserInvite(ctx context.Context, guildID discord.GuildID, userID discord.UserID, inv StoredInvite) error {
	patch, err := json.Marshal(map[discord.GuildID]StoredInvite{guildID: inv})
	if err != nil {
		return errors.Wrap(err, "marshaling invite")
	}

	_, err = db.Exec(ctx,
		"insert into user_invites (user_id, guilds) values ($1, $2) on conflict (user_id) do update set guilds = user_invites.guilds || excluded.guilds",
		userID, patch)
	return errors.Wrap(err, "saving user invite")
}

// DeleteUserInvite removes the stored attribution for a single guild. A
// record whose last guild entry is removed is deleted outright.
func (db *DB) DeleteUserInvite(ctx context.Context, guildID discord.GuildID, userID discord.UserID) error {
	var raw []byte
	err := db.QueryRow(ctx,
		"update user_invites set guilds = guilds - $1 where user_id = $2 returning guilds",
		guildID.String(), userID).Scan(&raw)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil
		}
		return errors.Wrap(err, "deleting user invite")
	}

	if !pruneUserInvites(raw) {
		return nil
	}

	// the guard keeps a racing SaveUserInvite from being deleted with it
	_, err = db.Exec(ctx,
		"delete from user_invites where user_id = $1 and guilds = '{}'::jsonb", userID)
	return errors.Wrap(err, "pruning empty record")
}

// pruneUserInvites reports whether a user's guild document is empty after an
// attribution was removed, meaning the whole record should go.
func pruneUserInvites(raw []byte) bool {
	guilds := map[discord.GuildID]StoredInvite{}
	if err := json.Unmarshal(raw, &guilds); err != nil {
		return false
	}
	return len(guilds) == 0
}

// DeleteUserInvites removes all stored attributions for a user.
func (db *DB) DeleteUserInvites(ctx context.Context, userID discord.UserID) error {
	_, err := db.Exec(ctx, "delete from user_invites where user_id = $1", userID)
	return errors.Wrap(err, "deleting user invites")
}

// DeleteGuildInvites removes a guild's key from every stored user record,
// for when the bot leaves a guild or data storage is turned off.
func (db *DB) DeleteGuildInvites(ctx context.Context, guildID discord.GuildID) error {
	_, err := db.Exec(ctx,
		"update user_invites set guilds = guilds - $1 where guilds ? $1",
		guildID.String())
	if err != nil {
		return errors.Wrap(err, "deleting guild invites")
	}

	_, err = db.Exec(ctx, "delete from user_invites where guilds = '{}'::jsonb")
	return errors.Wrap(err, "pruning empty records")
}
