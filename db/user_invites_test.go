package db

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPruneUserInvites(t *testing.T) {
	t.Run("empty document prunes", func(t *testing.T) {
		assert.True(t, pruneUserInvites([]byte(`{}`)))
	})

	t.Run("remaining guilds keep the record", func(t *testing.T) {
		raw, err := json.Marshal(map[string]StoredInvite{
			"123456789": {Code: "abcdef", JoinedAt: time.Now().UTC()},
		})
		require.NoError(t, err)

		assert.False(t, pruneUserInvites(raw))
	})

	t.Run("removing the last guild prunes", func(t *testing.T) {
		guilds := map[string]StoredInvite{
			"123456789": {Code: "abcdef", JoinedAt: time.Now().UTC()},
		}
		delete(guilds, "123456789")

		raw, err := json.Marshal(guilds)
		require.NoError(t, err)

		assert.True(t, pruneUserInvites(raw))
	})

	t.Run("garbage is left alone", func(t *testing.T) {
		assert.False(t, pruneUserInvites([]byte(`{`)))
	})
}
