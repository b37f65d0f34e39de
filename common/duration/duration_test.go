package duration

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "less than a second"},
		{500 * time.Millisecond, "less than a second"},
		{time.Second, "1 second"},
		{90 * time.Second, "1 minute and 30 seconds"},
		{26 * time.Hour, "1 day and 2 hours"},
		{(365 + 60) * 24 * time.Hour, "1 year and 2 months"},
		// no more than three units
		{(365+31)*24*time.Hour + 2*time.Hour + 5*time.Minute, "1 year, 1 month, and 1 day"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Format(tt.d), tt.d.String())
	}
}

func TestFormatAt(t *testing.T) {
	now := time.Date(2022, time.June, 1, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, "2 days ago", FormatAt(now.Add(-48*time.Hour), now))
	assert.Equal(t, "3 hours from now", FormatAt(now.Add(3*time.Hour), now))
}

func TestSeconds(t *testing.T) {
	assert.Equal(t, "never", Seconds(0))
	assert.Equal(t, "1 day", Seconds(86400))
	assert.Equal(t, "7 days", Seconds(7*86400))
}
