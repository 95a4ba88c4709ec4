package repository

import (
	"time"
)

const timeLayout = time.RFC3339Nano

// parseTime parses a stored timestamp. Unparseable values read as the zero
// time.
func parseTime(s string) time.Time {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// formatTime converts a time to the stored UTC form.
func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}
