package invites

import (
	"time"

	"github.com/diamondburned/arikawa/v3/discord"
)

// diffInvites compares a cached invite snapshot against a freshly fetched
// list. Invites missing from the fresh list are returned as candidates:
// they may have been deleted after hitting their maximum uses. An invite
// whose use count increased is *the* used invite; it's returned alone with
// exact set.
func diffInvites(cached, fresh []discord.Invite) (candidates []discord.Invite, exact bool) {
	byCode := make(map[string]discord.Invite, len(fresh))
	for _, inv := range fresh {
		byCode[inv.Code] = inv
	}

	for _, old := range cached {
		cur, ok := byCode[old.Code]
		if !ok {
			candidates = append(candidates, old)
			continue
		}

		if cur.Uses > old.Uses {
			return []discord.Invite{cur}, true
		}
	}

	return candidates, false
}

// filterResidual narrows deleted-invite candidates down to those that could
// actually have caused the join: the invite must have just hit its maximum
// uses, and must not have been expired at join time. If that leaves exactly
// one invite, its use count is bumped to reflect the join.
func filterResidual(candidates []discord.Invite, joinedAt time.Time) []discord.Invite {
	kept := candidates[:0:0]
	for _, inv := range candidates {
		if inv.MaxUses != inv.Uses+1 {
			continue
		}
		if expiredAt(inv, joinedAt) {
			continue
		}
		kept = append(kept, inv)
	}

	if len(kept) == 1 {
		kept[0].Uses++
	}
	return kept
}

// expiredAt reports whether the invite had already expired at time t.
// A max age of 0 means the invite never expires.
func expiredAt(inv discord.Invite, t time.Time) bool {
	if inv.MaxAge == 0 {
		return false
	}
	return inv.CreatedAt.Time().Add(inv.MaxAge.Duration()).Before(t)
}
