package invites

import (
	"testing"
	"time"

	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func inv(code string, uses, maxUses int, maxAge discord.Seconds, createdAt time.Time) discord.Invite {
	return discord.Invite{
		Code: code,
		InviteMetadata: discord.InviteMetadata{
			Uses:      uses,
			MaxUses:   maxUses,
			MaxAge:    maxAge,
			CreatedAt: discord.NewTimestamp(createdAt),
		},
	}
}

func TestDiffInvites(t *testing.T) {
	now := time.Now().UTC()

	t.Run("single incremented invite is returned exactly", func(t *testing.T) {
		cached := []discord.Invite{
			inv("aaa", 3, 0, 0, now),
			inv("bbb", 1, 0, 0, now),
		}
		fresh := []discord.Invite{
			inv("aaa", 3, 0, 0, now),
			inv("bbb", 2, 0, 0, now),
		}

		candidates, exact := diffInvites(cached, fresh)
		require.True(t, exact)
		require.Len(t, candidates, 1)
		assert.Equal(t, "bbb", candidates[0].Code)
		assert.Equal(t, 2, candidates[0].Uses)
	})

	t.Run("no changes yields no candidates", func(t *testing.T) {
		cached := []discord.Invite{inv("aaa", 3, 0, 0, now)}

		candidates, exact := diffInvites(cached, cached)
		assert.False(t, exact)
		assert.Empty(t, candidates)
	})

	t.Run("deleted invites become candidates", func(t *testing.T) {
		cached := []discord.Invite{
			inv("aaa", 3, 0, 0, now),
			inv("bbb", 1, 2, 0, now),
			inv("ccc", 0, 1, 0, now),
		}
		fresh := []discord.Invite{inv("aaa", 3, 0, 0, now)}

		candidates, exact := diffInvites(cached, fresh)
		assert.False(t, exact)
		require.Len(t, candidates, 2)
		assert.Equal(t, "bbb", candidates[0].Code)
		assert.Equal(t, "ccc", candidates[1].Code)
	})

	t.Run("new invites in the fresh list are ignored", func(t *testing.T) {
		cached := []discord.Invite{inv("aaa", 3, 0, 0, now)}
		fresh := []discord.Invite{
			inv("aaa", 3, 0, 0, now),
			inv("new", 0, 0, 0, now),
		}

		candidates, exact := diffInvites(cached, fresh)
		assert.False(t, exact)
		assert.Empty(t, candidates)
	})

	t.Run("empty snapshot can't attribute anything", func(t *testing.T) {
		fresh := []discord.Invite{inv("aaa", 4, 0, 0, now)}

		candidates, exact := diffInvites(nil, fresh)
		assert.False(t, exact)
		assert.Empty(t, candidates)
	})
}

func TestFilterResidual(t *testing.T) {
	now := time.Now().UTC()

	t.Run("invite at max uses minus one is attributed", func(t *testing.T) {
		candidates := []discord.Invite{inv("aaa", 4, 5, 0, now.Add(-time.Hour))}

		kept := filterResidual(candidates, now)
		require.Len(t, kept, 1)
		assert.Equal(t, "aaa", kept[0].Code)
		// the surviving invite's use count reflects the join
		assert.Equal(t, 5, kept[0].Uses)
	})

	t.Run("invite not at its use limit is dropped", func(t *testing.T) {
		candidates := []discord.Invite{
			inv("aaa", 2, 5, 0, now.Add(-time.Hour)),
			inv("bbb", 0, 0, 0, now.Add(-time.Hour)),
		}

		assert.Empty(t, filterResidual(candidates, now))
	})

	t.Run("expired invite is not attributed", func(t *testing.T) {
		candidates := []discord.Invite{
			// created two hours ago with a one hour max age
			inv("aaa", 4, 5, discord.Seconds(3600), now.Add(-2*time.Hour)),
		}

		assert.Empty(t, filterResidual(candidates, now))
	})

	t.Run("max age zero never expires", func(t *testing.T) {
		candidates := []discord.Invite{
			inv("aaa", 4, 5, 0, now.Add(-24*365*time.Hour)),
		}

		assert.Len(t, filterResidual(candidates, now), 1)
	})

	t.Run("multiple survivors stay ambiguous with uses untouched", func(t *testing.T) {
		candidates := []discord.Invite{
			inv("aaa", 4, 5, 0, now.Add(-time.Hour)),
			inv("bbb", 0, 1, 0, now.Add(-time.Hour)),
		}

		kept := filterResidual(candidates, now)
		require.Len(t, kept, 2)
		assert.Equal(t, 4, kept[0].Uses)
		assert.Equal(t, 0, kept[1].Uses)
	})
}

func TestBumpVanityUses(t *testing.T) {
	const guild discord.GuildID = 123

	t.Run("unseeded counter never attributes", func(t *testing.T) {
		bot := &Bot{vanityUses: map[discord.GuildID]int{}}

		assert.False(t, bot.bumpVanityUses(guild, 5))
		// but the call itself seeds the counter
		assert.True(t, bot.bumpVanityUses(guild, 6))
	})

	t.Run("seeded counter attributes the first increase", func(t *testing.T) {
		bot := &Bot{vanityUses: map[discord.GuildID]int{guild: 5}}

		assert.True(t, bot.bumpVanityUses(guild, 6))
	})

	t.Run("unchanged count is not an increase", func(t *testing.T) {
		bot := &Bot{vanityUses: map[discord.GuildID]int{guild: 5}}

		assert.False(t, bot.bumpVanityUses(guild, 5))
		assert.False(t, bot.bumpVanityUses(guild, 4))
	})
}

func TestExpiredAt(t *testing.T) {
	now := time.Now().UTC()

	tests := []struct {
		name    string
		invite  discord.Invite
		expired bool
	}{
		{"no max age", inv("a", 0, 0, 0, now.Add(-100*time.Hour)), false},
		{"within max age", inv("a", 0, 0, discord.Seconds(7200), now.Add(-time.Hour)), false},
		{"past max age", inv("a", 0, 0, discord.Seconds(1800), now.Add(-time.Hour)), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expired, expiredAt(tt.invite, now))
		})
	}
}
