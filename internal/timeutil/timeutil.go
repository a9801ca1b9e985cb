package timeutil

import (
	"errors"
	"strings"
	"time"
)

// DateLayout defines the canonical date format (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// zonelessLayout matches upstream GMT timestamps that omit an offset.
const zonelessLayout = "2006-01-02T15:04:05"

// ErrUnparseable is returned when a timestamp matches none of the accepted layouts.
var ErrUnparseable = errors.New("timeutil: unparseable timestamp")

// ParseDate parses a YYYY-MM-DD date string as midnight UTC.
func ParseDate(value string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, value, time.UTC)
}

// ParseTimestamp accepts RFC3339, a zone-less ISO timestamp (read as UTC), or a bare date.
func ParseTimestamp(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, ErrUnparseable
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.ParseInLocation(zonelessLayout, value, time.UTC); err == nil {
		return t, nil
	}
	if t, err := ParseDate(value); err == nil {
		return t, nil
	}
	return time.Time{}, ErrUnparseable
}

// FirstTimestamp returns the first candidate that parses, or the zero time.
func FirstTimestamp(candidates ...string) time.Time {
	for _, c := range candidates {
		if t, err := ParseTimestamp(c); err == nil {
			return t
		}
	}
	return time.Time{}
}

// ResolveLocation returns the named location, or UTC when the name is empty or unknown.
func ResolveLocation(name string) *time.Location {
	if strings.TrimSpace(name) == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}
