package db

import (
	"context"
	"time"

	"emperror.dev/errors"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/georgysavva/scany/pgxscan"
	"github.com/jackc/pgx/v4"
)

// Ticket is an open support ticket. A user has at most one open ticket per
// guild.
type Ticket struct {
	GuildID   discord.GuildID
	UserID    discord.UserID
	ChannelID discord.ChannelID
	CreatedAt time.Time
}

const ErrTicketExists = errors.Sentinel("user already has an open ticket")

// CreateTicket records a new open ticket. Returns ErrTicketExists if the
// user already has one in this guild.
func (db *DB) CreateTicket(ctx context.Context, t Ticket) error {
	ct, err := db.Exec(ctx,
		"insert into tickets (guild_id, user_id, channel_id) values ($1, $2, $3) on conflict (guild_id, user_id) do nothing",
		t.GuildID, t.UserID, t.ChannelID)
	if err != nil {
		return errors.Wrap(err, "creating ticket")
	}
	if ct.RowsAffected() == 0 {
		return ErrTicketExists
	}
	return nil
}

// Ticket returns the user's open ticket in the guild, if any.
func (db *DB) Ticket(ctx context.Context, guildID discord.GuildID, userID discord.UserID) (t Ticket, err error) {
	err = pgxscan.Get(ctx, db, &t,
		"select * from tickets where guild_id = $1 and user_id = $2", guildID, userID)
	if err != nil {
		if errors.Cause(err) == pgx.ErrNoRows {
			return t, ErrNotFound
		}
		return t, errors.Wrap(err, "getting ticket")
	}
	return t, nil
}

// TicketByChannel returns the ticket bound to the given channel, if any.
func (db *DB) TicketByChannel(ctx context.Context, chID discord.ChannelID) (t Ticket, err error) {
	err = pgxscan.Get(ctx, db, &t,
		"select * from tickets where channel_id = $1", chID)
	if err != nil {
		if errors.Cause(err) == pgx.ErrNoRows {
			return t, ErrNotFound
		}
		return t, errors.Wrap(err, "getting ticket")
	}
	return t, nil
}

// Tickets returns all open tickets in a guild, oldest first.
func (db *DB) Tickets(ctx context.Context, guildID discord.GuildID) (ts []Ticket, err error) {
	err = pgxscan.Select(ctx, db, &ts,
		"select * from tickets where guild_id = $1 order by created_at", guildID)
	return ts, errors.Wrap(err, "getting tickets")
}

// DeleteTicket removes the ticket bound to the given channel and returns it.
// Returns ErrNotFound if the channel had no ticket.
func (db *DB) DeleteTicket(ctx context.Context, chID discord.ChannelID) (t Ticket, err error) {
	err = pgxscan.Get(ctx, db, &t,
		"delete from tickets where channel_id = $1 returning *", chID)
	if err != nil {
		if errors.Cause(err) == pgx.ErrNoRows {
			return t, ErrNotFound
		}
		return t, errors.Wrap(err, "deleting ticket")
	}
	return t, nil
}

// BlockedUser is a user who can't open tickets in a guild.
type BlockedUser struct {
	GuildID   discord.GuildID
	UserID    discord.UserID
	Reason    string
	BlockedBy discord.UserID
	BlockedAt time.Time
}

// BlockUser blocks a user from opening tickets.
func (db *DB) BlockUser(ctx context.Context, b BlockedUser) error {
	_, err := db.Exec(ctx,
		"insert into blocked_users (guild_id, user_id, reason, blocked_by) values ($1, $2, $3, $4) on conflict (guild_id, user_id) do update set reason = $3, blocked_by = $4",
		b.GuildID, b.UserID, b.Reason, b.BlockedBy)
	return errors.Wrap(err, "blocking user")
}

// UnblockUser lifts a block. Reports whether a block existed.
func (db *DB) UnblockUser(ctx context.Context, guildID discord.GuildID, userID discord.UserID) (bool, error) {
	ct, err := db.Exec(ctx,
		"delete from blocked_users where guild_id = $1 and user_id = $2", guildID, userID)
	if err != nil {
		return false, errors.Wrap(err, "unblocking user")
	}
	return ct.RowsAffected() != 0, nil
}

// UserBlocked reports whether the user is blocked from opening tickets.
func (db *DB) UserBlocked(ctx context.Context, guildID discord.GuildID, userID discord.UserID) (blocked bool, err error) {
	err = db.QueryRow(ctx,
		"select exists (select 1 from blocked_users where guild_id = $1 and user_id = $2)",
		guildID, userID).Scan(&blocked)
	return blocked, errors.Wrap(err, "checking block")
}

// BlockedUsers returns all blocks in a guild.
func (db *DB) BlockedUsers(ctx context.Context, guildID discord.GuildID) (bs []BlockedUser, err error) {
	err = pgxscan.Select(ctx, db, &bs,
		"select * from blocked_users where guild_id = $1 order by blocked_at", guildID)
	return bs, errors.Wrap(err, "getting blocked users")
}
