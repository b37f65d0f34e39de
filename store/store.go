// Package store defines the persistent invite snapshot store.
// Invite lists aren't sent in ready/guild create events, so they have to be
// fetched from Discord; keeping the snapshot outside the process means it
// survives bot restarts instead of starting cold.
package store

import (
	"context"

	"emperror.dev/errors"
	"github.com/diamondburned/arikawa/v3/discord"
)

const ErrNotFound = errors.Sentinel("value not found in store")

type Store interface {
	// Invites returns the cached invite snapshot for the guild.
	// Returns ErrNotFound if no snapshot exists yet.
	Invites(ctx context.Context, guildID discord.GuildID) ([]discord.Invite, error)
	// SetInvites replaces the guild's snapshot wholesale.
	SetInvites(ctx context.Context, guildID discord.GuildID, is []discord.Invite) error
	// DeleteInvites drops the guild's snapshot, for when the bot leaves a
	// guild or tracking is disabled.
	DeleteInvites(ctx context.Context, guildID discord.GuildID) error

	Close() error
}
