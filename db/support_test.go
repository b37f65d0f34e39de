package db

import (
	"testing"

	"emperror.dev/errors"
	"github.com/jackc/pgx/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeSupportConfig(t *testing.T) {
	t.Run("empty document keeps defaults", func(t *testing.T) {
		c, err := mergeSupportConfig(nil)
		require.NoError(t, err)
		assert.Equal(t, DefaultSupportConfig(), c)

		c, err = mergeSupportConfig([]byte(`{}`))
		require.NoError(t, err)
		assert.Equal(t, DefaultSupportConfig(), c)
	})

	t.Run("present keys overwrite, missing keys keep defaults", func(t *testing.T) {
		raw := []byte(`{"contact": {"embed": {"title": "Open a ticket"}, "button": {"style": "success"}}}`)

		c, err := mergeSupportConfig(raw)
		require.NoError(t, err)

		assert.Equal(t, "Open a ticket", c.Contact.Embed.Title)
		assert.Equal(t, "success", c.Contact.Button.Style)

		// untouched keys at every nesting level keep their defaults
		def := DefaultSupportConfig()
		assert.Equal(t, def.Contact.Embed.Description, c.Contact.Embed.Description)
		assert.Equal(t, def.Contact.Button.Label, c.Contact.Button.Label)
		assert.Equal(t, def.Contact.Confirm, c.Contact.Confirm)
		assert.Equal(t, def.Feedback, c.Feedback)
	})

	t.Run("explicit false overrides a true default", func(t *testing.T) {
		raw := []byte(`{"contact": {"confirmation": {"enable": false}}}`)

		c, err := mergeSupportConfig(raw)
		require.NoError(t, err)

		assert.False(t, c.Contact.Confirm.Enabled)
		// sibling key still defaulted
		assert.Equal(t, DefaultSupportConfig().Contact.Confirm.Text, c.Contact.Confirm.Text)
	})

	t.Run("dropdown options round-trip", func(t *testing.T) {
		raw := []byte(`{"contact": {"dropdown": {"enable": true, "options": [
			{"label": "Appeals", "description": "Ban appeals", "category": "123456789"}
		]}}}`)

		c, err := mergeSupportConfig(raw)
		require.NoError(t, err)

		require.Len(t, c.Contact.Dropdown.Options, 1)
		assert.True(t, c.Contact.Dropdown.Enabled)
		assert.Equal(t, "Appeals", c.Contact.Dropdown.Options[0].Label)
		assert.EqualValues(t, 123456789, c.Contact.Dropdown.Options[0].Category)
	})

	t.Run("invalid document errors", func(t *testing.T) {
		_, err := mergeSupportConfig([]byte(`{"contact": [`))
		assert.Error(t, err)
	})
}

func TestScannedSupportConfig(t *testing.T) {
	t.Run("missing row falls back to defaults", func(t *testing.T) {
		c, err := scannedSupportConfig(nil, pgx.ErrNoRows)
		require.NoError(t, err)
		assert.Equal(t, DefaultSupportConfig(), c)

		c, err = scannedSupportConfig(nil, errors.Wrap(pgx.ErrNoRows, "getting config"))
		require.NoError(t, err)
		assert.Equal(t, DefaultSupportConfig(), c)
	})

	t.Run("other errors propagate instead of defaulting", func(t *testing.T) {
		// a read failure must never look like an unconfigured guild: the
		// editors read-modify-write, so defaults here would get saved back
		_, err := scannedSupportConfig(nil, errors.New("connection refused"))
		assert.Error(t, err)
	})

	t.Run("stored document merges over defaults", func(t *testing.T) {
		c, err := scannedSupportConfig([]byte(`{"contact": {"embed": {"title": "Support"}}}`), nil)
		require.NoError(t, err)
		assert.Equal(t, "Support", c.Contact.Embed.Title)
		assert.Equal(t, DefaultSupportConfig().Feedback, c.Feedback)
	})
}
