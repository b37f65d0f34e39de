// Package duration formats durations for embeds.
package duration

import (
	"time"

	"github.com/dustin/go-humanize/english"
)

const (
	day   = 24 * time.Hour
	month = 30 * day
	year  = 365 * day
)

type unit struct {
	d    time.Duration
	name string
}

// Months and years use fixed lengths (30 and 365 days) so output
// stays stable regardless of the current date.
var units = []unit{
	{year, "year"},
	{month, "month"},
	{day, "day"},
	{time.Hour, "hour"},
	{time.Minute, "minute"},
	{time.Second, "second"},
}

// Format returns d as a human-readable string such as
// "2 months, 3 days, and 5 hours". At most three units are shown,
// starting from the largest non-zero one.
func Format(d time.Duration) string {
	if d < time.Second {
		return "less than a second"
	}

	parts := make([]string, 0, 3)
	for _, u := range units {
		if len(parts) >= 3 {
			break
		}
		n := int(d / u.d)
		if n == 0 {
			continue
		}
		d -= time.Duration(n) * u.d
		parts = append(parts, english.Plural(n, u.name, ""))
	}

	return english.OxfordWordSeries(parts, "and")
}

// FormatTime returns t relative to now, e.g. "3 days ago" or
// "until 2 hours from now".
func FormatTime(t time.Time) string {
	if until := time.Until(t); until > 0 {
		return Format(until) + " from now"
	}
	return Format(time.Since(t)) + " ago"
}

// FormatAt is like FormatTime but relative to a fixed reference time.
func FormatAt(t, now time.Time) string {
	if t.After(now) {
		return Format(t.Sub(now)) + " from now"
	}
	return Format(now.Sub(t)) + " ago"
}

// Seconds formats a raw second count, as used for invite max ages.
// Zero means no limit.
func Seconds(secs int) string {
	if secs == 0 {
		return "never"
	}
	return Format(time.Duration(secs) * time.Second)
}
