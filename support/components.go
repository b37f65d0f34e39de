package support

import (
	"regexp"
	"strings"

	"emperror.dev/errors"
	"github.com/diamondburned/arikawa/v3/discord"

	"doorman/db"
)

const (
	customIDContactOpen     = "contact:open"
	customIDContactCategory = "contact:category"
	customIDContactConfirm  = "contact:confirm" // :<categoryID> appended
	customIDContactCancel   = "contact:cancel"

	customIDFeedbackRating = "feedback:rating"
	customIDFeedbackOpen   = "feedback:open"
	customIDFeedbackModal  = "feedback:modal" // :<messageID> appended
	customIDFeedbackText   = "feedback:text"
)

var customEmojiRe = regexp.MustCompile(`^<?(a)?:?(\w{2,32}):(\d{15,20})>?$`)

// parseEmoji converts user emoji input into a component emoji: either a
// plain unicode emoji, or custom emoji syntax like <:name:id>, a:name:id,
// or name:id.
func parseEmoji(s string) (*discord.ComponentEmoji, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	if m := customEmojiRe.FindStringSubmatch(s); m != nil {
		sf, err := discord.ParseSnowflake(m[3])
		if err != nil {
			return nil, errors.Wrap(err, "parsing emoji ID")
		}
		return &discord.ComponentEmoji{
			ID:       discord.EmojiID(sf),
			Name:     m[2],
			Animated: m[1] == "a",
		}, nil
	}

	// reject things that are clearly not unicode emoji
	for _, r := range s {
		if r < 0x80 {
			return nil, errors.Sentinel("not a valid emoji")
		}
	}

	return &discord.ComponentEmoji{Name: s}, nil
}

// parseButtonStyle converts a style name from the config document into a
// component style. Accepts the colour aliases Discord clients use.
func parseButtonStyle(s string) (discord.ButtonComponentStyle, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "primary", "blurple":
		return discord.PrimaryButtonStyle(), nil
	case "secondary", "grey", "gray":
		return discord.SecondaryButtonStyle(), nil
	case "success", "green":
		return discord.SuccessButtonStyle(), nil
	case "danger", "red":
		return discord.DangerButtonStyle(), nil
	}
	return nil, errors.Sentinel("unknown button style")
}

// configButton renders a ButtonConfig. Invalid stored styles or emoji fall
// back to a plain primary button rather than breaking the panel.
func configButton(customID string, c db.ButtonConfig) *discord.ButtonComponent {
	b := &discord.ButtonComponent{
		CustomID: discord.ComponentID(customID),
		Label:    c.Label,
		Style:    discord.PrimaryButtonStyle(),
	}

	if style, err := parseButtonStyle(c.Style); err == nil {
		b.Style = style
	}
	if emoji, err := parseEmoji(c.Emoji); err == nil {
		b.Emoji = emoji
	}

	return b
}

// configEmbed renders an EmbedConfig.
func configEmbed(c db.EmbedConfig, color discord.Color) discord.Embed {
	e := discord.Embed{
		Title:       c.Title,
		Description: c.Description,
		Color:       color,
	}
	if c.Footer != "" {
		e.Footer = &discord.EmbedFooter{Text: c.Footer}
	}
	return e
}

// panelComponents builds the contact panel's components from config.
func panelComponents(c db.ContactConfig) discord.ContainerComponents {
	return discord.ContainerComponents{
		&discord.ActionRowComponent{
			configButton(customIDContactOpen, c.Button),
		},
	}
}

// categorySelect builds the ephemeral category dropdown. Option values
// carry the linked category channel ID, so the select needs no
// server-side session.
func categorySelect(c db.DropdownConfig) *discord.SelectComponent {
	sel := &discord.SelectComponent{
		CustomID:    customIDContactCategory,
		Placeholder: c.Placeholder,
	}

	for _, o := range c.Options {
		opt := discord.SelectOption{
			Label:       o.Label,
			Value:       o.Category.String(),
			Description: o.Description,
		}
		if emoji, err := parseEmoji(o.Emoji); err == nil {
			opt.Emoji = emoji
		}
		sel.Options = append(sel.Options, opt)
	}

	return sel
}

// feedbackComponents builds the DM prompt's components: an optional star
// rating select and the feedback button.
func feedbackComponents(c db.FeedbackConfig) discord.ContainerComponents {
	var components discord.ContainerComponents

	if c.Rating.Enabled {
		sel := &discord.SelectComponent{
			CustomID:    customIDFeedbackRating,
			Placeholder: c.Rating.Placeholder,
		}
		for n := 5; n >= 1; n-- {
			sel.Options = append(sel.Options, discord.SelectOption{
				Label: strings.Repeat("⭐", n),
				Value: string(rune('0' + n)),
			})
		}
		components = append(components, &discord.ActionRowComponent{sel})
	}

	components = append(components, &discord.ActionRowComponent{
		configButton(customIDFeedbackOpen, c.Button),
	})

	return components
}

// modalValue extracts a text input's value from a submitted modal.
func modalValue(components discord.ContainerComponents, id discord.ComponentID) string {
	for _, row := range components {
		ar, ok := row.(*discord.ActionRowComponent)
		if !ok {
			continue
		}
		for _, c := range *ar {
			if input, ok := c.(*discord.TextInputComponent); ok && input.CustomID == id {
				if input.Value == nil {
					return ""
				}
				return input.Value.Val
			}
		}
	}
	return ""
}
