package db

import (
	"context"
	"time"

	"emperror.dev/errors"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/georgysavva/scany/pgxscan"
	"github.com/jackc/pgx/v4"
)

// FeedbackSession is an outstanding feedback prompt sent to a user's DMs.
// Sessions live in the database so prompts keep working across restarts.
type FeedbackSession struct {
	MessageID discord.MessageID
	ChannelID discord.ChannelID
	GuildID   discord.GuildID
	UserID    discord.UserID
	// Rating picked from the star select, 0 while unset.
	Rating    int
	StartedAt time.Time
}

// CreateFeedbackSession records a prompt message that's waiting for a reply.
// A new prompt replaces the user's previous one in the same guild.
func (db *DB) CreateFeedbackSession(ctx context.Context, s FeedbackSession) error {
	_, err := db.Exec(ctx,
		"insert into feedback_sessions (message_id, channel_id, guild_id, user_id) values ($1, $2, $3, $4) on conflict (guild_id, user_id) do update set message_id = excluded.message_id, channel_id = excluded.channel_id, rating = 0, started_at = excluded.started_at",
		s.MessageID, s.ChannelID, s.GuildID, s.UserID)
	return errors.Wrap(err, "creating feedback session")
}

// SetFeedbackRating stores the rating picked on a prompt.
func (db *DB) SetFeedbackRating(ctx context.Context, msgID discord.MessageID, rating int) error {
	_, err := db.Exec(ctx,
		"update feedback_sessions set rating = $1 where message_id = $2", rating, msgID)
	return errors.Wrap(err, "setting feedback rating")
}

// UserFeedbackSession returns the user's active session in a guild, if any.
// A user has at most one active session per guild.
func (db *DB) UserFeedbackSession(ctx context.Context, guildID discord.GuildID, userID discord.UserID) (s FeedbackSession, err error) {
	err = pgxscan.Get(ctx, db, &s,
		"select * from feedback_sessions where guild_id = $1 and user_id = $2", guildID, userID)
	if err != nil {
		if errors.Cause(err) == pgx.ErrNoRows {
			return s, ErrNotFound
		}
		return s, errors.Wrap(err, "getting feedback session")
	}
	return s, nil
}

// FeedbackSessions returns all active sessions in a guild, oldest first.
func (db *DB) FeedbackSessions(ctx context.Context, guildID discord.GuildID) (ss []FeedbackSession, err error) {
	err = pgxscan.Select(ctx, db, &ss,
		"select * from feedback_sessions where guild_id = $1 order by started_at", guildID)
	return ss, errors.Wrap(err, "getting feedback sessions")
}

// FeedbackSession looks up the session for a prompt message.
func (db *DB) FeedbackSession(ctx context.Context, msgID discord.MessageID) (s FeedbackSession, err error) {
	err = pgxscan.Get(ctx, db, &s,
		"select * from feedback_sessions where message_id = $1", msgID)
	if err != nil {
		if errors.Cause(err) == pgx.ErrNoRows {
			return s, ErrNotFound
		}
		return s, errors.Wrap(err, "getting feedback session")
	}
	return s, nil
}

// DeleteFeedbackSession removes a session once it's been answered.
func (db *DB) DeleteFeedbackSession(ctx context.Context, msgID discord.MessageID) error {
	_, err := db.Exec(ctx, "delete from feedback_sessions where message_id = $1", msgID)
	return errors.Wrap(err, "deleting feedback session")
}

// ExpireFeedbackSessions removes sessions older than the given age and
// returns them, so the prompts can be disabled.
func (db *DB) ExpireFeedbackSessions(ctx context.Context, age time.Duration) (ss []FeedbackSession, err error) {
	err = pgxscan.Select(ctx, db, &ss,
		"delete from feedback_sessions where started_at < $1 returning *",
		time.Now().UTC().Add(-age))
	return ss, errors.Wrap(err, "expiring feedback sessions")
}

// Feedback is a submitted feedback entry.
type Feedback struct {
	ID          int64
	GuildID     discord.GuildID
	UserID      discord.UserID
	Rating      int
	Message     string
	SubmittedAt time.Time
}

// SaveFeedback stores a submission and returns its ID.
func (db *DB) SaveFeedback(ctx context.Context, f Feedback) (int64, error) {
	err := db.QueryRow(ctx,
		"insert into feedback (guild_id, user_id, rating, message) values ($1, $2, $3, $4) returning id",
		f.GuildID, f.UserID, f.Rating, f.Message).Scan(&f.ID)
	return f.ID, errors.Wrap(err, "saving feedback")
}
