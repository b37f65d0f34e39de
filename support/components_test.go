package support

import (
	"testing"

	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/diamondburned/arikawa/v3/utils/json/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"doorman/db"
)

func TestParseEmoji(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		e, err := parseEmoji("")
		require.NoError(t, err)
		assert.Nil(t, e)
	})

	t.Run("unicode", func(t *testing.T) {
		e, err := parseEmoji("📨")
		require.NoError(t, err)
		require.NotNil(t, e)
		assert.Equal(t, "📨", e.Name)
		assert.False(t, e.ID.IsValid())
	})

	t.Run("custom", func(t *testing.T) {
		tests := []struct {
			in       string
			name     string
			animated bool
		}{
			{"<:blobheart:446356773539870740>", "blobheart", false},
			{"<a:blobwave:446356773539870740>", "blobwave", true},
			{"blobheart:446356773539870740", "blobheart", false},
			{"a:blobwave:446356773539870740", "blobwave", true},
		}

		for _, tt := range tests {
			e, err := parseEmoji(tt.in)
			require.NoError(t, err, tt.in)
			require.NotNil(t, e, tt.in)
			assert.Equal(t, tt.name, e.Name, tt.in)
			assert.Equal(t, discord.EmojiID(446356773539870740), e.ID, tt.in)
			assert.Equal(t, tt.animated, e.Animated, tt.in)
		}
	})

	t.Run("invalid", func(t *testing.T) {
		for _, in := range []string{"hello", ":)", "<:x:123>", "not an emoji"} {
			_, err := parseEmoji(in)
			assert.Error(t, err, in)
		}
	})
}

func TestParseButtonStyle(t *testing.T) {
	tests := []struct {
		in   string
		want discord.ButtonComponentStyle
	}{
		{"primary", discord.PrimaryButtonStyle()},
		{"Blurple", discord.PrimaryButtonStyle()},
		{"secondary", discord.SecondaryButtonStyle()},
		{"grey", discord.SecondaryButtonStyle()},
		{"gray", discord.SecondaryButtonStyle()},
		{"SUCCESS", discord.SuccessButtonStyle()},
		{"green", discord.SuccessButtonStyle()},
		{"danger", discord.DangerButtonStyle()},
		{" red ", discord.DangerButtonStyle()},
	}

	for _, tt := range tests {
		style, err := parseButtonStyle(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, style, tt.in)
	}

	_, err := parseButtonStyle("sparkly")
	assert.Error(t, err)
}

func TestConfigButton(t *testing.T) {
	t.Run("configured", func(t *testing.T) {
		b := configButton("contact:open", db.ButtonConfig{
			Emoji: "📨",
			Label: "Contact",
			Style: "success",
		})

		assert.Equal(t, discord.ComponentID("contact:open"), b.CustomID)
		assert.Equal(t, "Contact", b.Label)
		assert.Equal(t, discord.SuccessButtonStyle(), b.Style)
		require.NotNil(t, b.Emoji)
		assert.Equal(t, "📨", b.Emoji.Name)
	})

	t.Run("bad config falls back", func(t *testing.T) {
		b := configButton("contact:open", db.ButtonConfig{
			Emoji: "definitely not an emoji",
			Label: "Contact",
			Style: "sparkly",
		})

		assert.Equal(t, discord.PrimaryButtonStyle(), b.Style)
		assert.Nil(t, b.Emoji)
	})
}

func TestCategorySelect(t *testing.T) {
	sel := categorySelect(db.DropdownConfig{
		Placeholder: "Pick a topic",
		Options: []db.OptionConfig{
			{Emoji: "❓", Label: "General", Description: "Anything else", Category: 123},
			{Label: "Appeals", Category: 456},
		},
	})

	assert.Equal(t, discord.ComponentID(customIDContactCategory), sel.CustomID)
	assert.Equal(t, "Pick a topic", sel.Placeholder)
	require.Len(t, sel.Options, 2)

	assert.Equal(t, "General", sel.Options[0].Label)
	assert.Equal(t, "123", sel.Options[0].Value)
	require.NotNil(t, sel.Options[0].Emoji)

	assert.Equal(t, "456", sel.Options[1].Value)
	assert.Nil(t, sel.Options[1].Emoji)
}

func TestFeedbackComponents(t *testing.T) {
	cfg := db.DefaultSupportConfig().Feedback

	t.Run("with rating", func(t *testing.T) {
		cfg := cfg
		cfg.Rating.Enabled = true

		components := feedbackComponents(cfg)
		require.Len(t, components, 2)

		row, ok := components[0].(*discord.ActionRowComponent)
		require.True(t, ok)
		sel, ok := (*row)[0].(*discord.SelectComponent)
		require.True(t, ok)
		require.Len(t, sel.Options, 5)
		assert.Equal(t, "5", sel.Options[0].Value)
		assert.Equal(t, "1", sel.Options[4].Value)
	})

	t.Run("without rating", func(t *testing.T) {
		components := feedbackComponents(cfg)
		require.Len(t, components, 1)

		row, ok := components[0].(*discord.ActionRowComponent)
		require.True(t, ok)
		_, ok = (*row)[0].(*discord.ButtonComponent)
		assert.True(t, ok)
	})
}

func TestModalValue(t *testing.T) {
	components := discord.ContainerComponents{
		&discord.ActionRowComponent{
			&discord.TextInputComponent{
				CustomID: "title",
				Value:    option.NewNullableString("A title"),
			},
		},
		&discord.ActionRowComponent{
			&discord.TextInputComponent{
				CustomID: "footer",
			},
		},
	}

	assert.Equal(t, "A title", modalValue(components, "title"))
	assert.Equal(t, "", modalValue(components, "footer"))
	assert.Equal(t, "", modalValue(components, "missing"))
}

func TestTicketChannelName(t *testing.T) {
	tests := []struct {
		username      string
		discriminator string
		want          string
	}{
		{"Starshine", "0001", "starshine-0001"},
		{"some user", "1234", "some-user-1234"},
		{"日本語のみ", "5678", "ticket-5678"},
		{"mixed 日本語 name", "0002", "mixed--name-0002"},
		{"under_score-dash", "0003", "under_score-dash-0003"},
	}

	for _, tt := range tests {
		got := ticketChannelName(discord.User{
			Username:      tt.username,
			Discriminator: tt.discriminator,
		})
		assert.Equal(t, tt.want, got, tt.username)
	}
}
