package db

import (
	"context"
	"encoding/json"

	"emperror.dev/errors"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/jackc/pgx/v4"
)

// SupportConfig is a guild's contact panel and feedback configuration.
// It's stored as a single JSON document; any key not present in the stored
// document keeps its default, so old documents keep working when new
// settings are added.
type SupportConfig struct {
	Contact  ContactConfig  `json:"contact"`
	Feedback FeedbackConfig `json:"feedback"`
}

type ContactConfig struct {
	Embed    EmbedConfig      `json:"embed"`
	Button   ButtonConfig     `json:"button"`
	Dropdown DropdownConfig   `json:"dropdown"`
	Confirm  ConfirmConfig    `json:"confirmation"`
	Category discord.ChannelID `json:"category"`

	// Message is the panel message the button/dropdown is attached to,
	// so it can be refreshed in place.
	Channel discord.ChannelID `json:"channel"`
	Message discord.MessageID `json:"message"`
}

type ConfirmConfig struct {
	Enabled bool   `json:"enable"`
	Text    string `json:"text"`
}

type EmbedConfig struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Footer      string `json:"footer"`
}

type ButtonConfig struct {
	Emoji string `json:"emoji"`
	Label string `json:"label"`
	Style string `json:"style"`
}

type DropdownConfig struct {
	Enabled     bool           `json:"enable"`
	Placeholder string         `json:"placeholder"`
	Options     []OptionConfig `json:"options"`
}

type OptionConfig struct {
	Emoji       string            `json:"emoji"`
	Label       string            `json:"label"`
	Description string            `json:"description"`
	Category    discord.ChannelID `json:"category"`
}

type FeedbackConfig struct {
	Enabled  bool              `json:"enable"`
	Channel  discord.ChannelID `json:"channel"`
	Embed    EmbedConfig       `json:"embed"`
	Button   ButtonConfig      `json:"button"`
	Response string            `json:"response"`
	Rating   RatingConfig      `json:"rating"`
}

type RatingConfig struct {
	Enabled     bool   `json:"enable"`
	Placeholder string `json:"placeholder"`
}

// DefaultSupportConfig returns the configuration a guild starts out with.
func DefaultSupportConfig() SupportConfig {
	return SupportConfig{
		Contact: ContactConfig{
			Embed: EmbedConfig{
				Title:       "Contact the moderators",
				Description: "Press the button below to open a ticket with the moderators.",
			},
			Button: ButtonConfig{
				Emoji: "\U0001f4e8",
				Label: "Contact",
				Style: "primary",
			},
			Dropdown: DropdownConfig{
				Placeholder: "What do you need help with?",
			},
			Confirm: ConfirmConfig{
				Enabled: true,
				Text:    "Are you sure you want to open a ticket?",
			},
		},
		Feedback: FeedbackConfig{
			Embed: EmbedConfig{
				Title:       "How did we do?",
				Description: "Press the button below to leave feedback on your ticket.",
			},
			Button: ButtonConfig{
				Emoji: "\U0001f4dd",
				Label: "Feedback",
				Style: "primary",
			},
			Response: "Thank you for your feedback!",
			Rating: RatingConfig{
				Placeholder: "Rate your experience",
			},
		},
	}
}

// mergeSupportConfig applies a stored (possibly partial, possibly outdated)
// JSON document on top of the defaults. Keys present in the document
// overwrite defaults; missing keys keep them.
func mergeSupportConfig(raw []byte) (SupportConfig, error) {
	c := DefaultSupportConfig()
	if len(raw) == 0 {
		return c, nil
	}
	err := json.Unmarshal(raw, &c)
	return c, errors.Wrap(err, "unmarshaling config")
}

// SupportConfig returns the guild's support configuration, filled in with
// defaults for anything unset.
func (db *DB) SupportConfig(ctx context.Context, guildID discord.GuildID) (c SupportConfig, err error) {
	var raw []byte
	err = db.QueryRow(ctx, "select config from support_guilds where id = $1", guildID).Scan(&raw)
	return scannedSupportConfig(raw, err)
}

// scannedSupportConfig turns a config row scan result into a usable config.
// A missing row means the guild was never configured, so the defaults apply;
// any other error has to propagate, or the next read-modify-write save would
// overwrite the stored config with the defaults.
func scannedSupportConfig(raw []byte, err error) (SupportConfig, error) {
	if err != nil {
		if errors.Cause(err) == pgx.ErrNoRows {
			return DefaultSupportConfig(), nil
		}
		return SupportConfig{}, errors.Wrap(err, "getting config")
	}
	return mergeSupportConfig(raw)
}

// SetSupportConfig stores the guild's support configuration wholesale.
func (db *DB) SetSupportConfig(ctx context.Context, guildID discord.GuildID, c SupportConfig) error {
	raw, err := json.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "marshaling config")
	}

	_, err = db.Exec(ctx,
		"insert into support_guilds (id, config) values ($1, $2) on conflict (id) do update set config = $2",
		guildID, raw)
	return errors.Wrap(err, "setting config")
}

// DeleteSupportConfig resets the guild to the default configuration.
func (db *DB) DeleteSupportConfig(ctx context.Context, guildID discord.GuildID) error {
	_, err := db.Exec(ctx, "delete from support_guilds where id = $1", guildID)
	return errors.Wrap(err, "deleting config")
}
