package invites

import (
	"testing"

	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/stretchr/testify/assert"
)

func TestParseWebhookURL(t *testing.T) {
	tests := []struct {
		name  string
		url   string
		id    discord.WebhookID
		token string
		ok    bool
	}{
		{
			name:  "full url",
			url:   "https://discord.com/api/v9/webhooks/123456789012345678/abc_DEF-123",
			id:    123456789012345678,
			token: "abc_DEF-123",
			ok:    true,
		},
		{
			name:  "trailing slash",
			url:   "https://discord.com/api/v9/webhooks/123456789012345678/abc_DEF-123/",
			id:    123456789012345678,
			token: "abc_DEF-123",
			ok:    true,
		},
		{name: "empty", url: "", ok: false},
		{name: "no token", url: "https://discord.com/api/v9/webhooks/123456789012345678/", ok: false},
		{name: "non-numeric id", url: "https://discord.com/api/v9/webhooks/notanid/token", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, token, ok := parseWebhookURL(tt.url)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.id, id)
				assert.Equal(t, tt.token, token)
			}
		})
	}
}
