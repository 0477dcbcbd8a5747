package utils

import (
	"strings"
	"time"
)

const (
	layoutDate     = "2006-01-02"
	layoutDateTime = "2006-01-02 15:04:05"
)

// NowUTC returns current time in UTC.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// ParseDate parses YYYY-MM-DD.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(layoutDate, strings.TrimSpace(s))
}

// ParseDateTime parses "YYYY-MM-DD HH:MM:SS".
func ParseDateTime(s string) (time.Time, error) {
	return time.Parse(layoutDateTime, strings.TrimSpace(s))
}

// NormalizeDateTime coerces common client datetime shapes (RFC3339 or
// date-only) into "YYYY-MM-DD HH:MM:SS". Empty input stays empty; anything
// unparsable is returned trimmed as-is so the caller can validate.
func NormalizeDateTime(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if t, err := time.Parse(layoutDateTime, s); err == nil {
		return t.Format(layoutDateTime)
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC().Format(layoutDateTime)
	}
	if t, err := time.Parse(layoutDate, s); err == nil {
		return t.Format(layoutDateTime)
	}
	return s
}

// FormatDate formats time to YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(layoutDate)
}

// FormatDateTime formats time to "YYYY-MM-DD HH:MM:SS".
func FormatDateTime(t time.Time) string {
	return t.Format(layoutDateTime)
}
