package core

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/huangsam/trendplot/schema"
)

// isoLayouts are the ISO-8601 shapes seen in historical inputs.
// Layouts without a zone are read as UTC.
var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// mailLayouts back up net/mail for RFC-2822 variants it rejects.
var mailLayouts = []string{
	time.RFC1123Z,
	time.RFC1123,
	time.RFC822Z,
	time.RFC822,
	time.UnixDate,
	time.RubyDate,
	"Mon Jan 2 15:04:05 2006 -0700", // git log default
}

type timeParser func(string) (time.Time, error)

func parseMailDate(s string) (time.Time, error) {
	if t, err := mail.ParseDate(s); err == nil {
		return t, nil
	}
	return parseLayouts(s, mailLayouts)
}

func parseISODate(s string) (time.Time, error) {
	return parseLayouts(s, isoLayouts)
}

func parseLayouts(s string, layouts []string) (time.Time, error) {
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("no layout matched %q", s)
}

// parsersFor orders the known parsers so the hinted one is tried first.
// A hint that is not a known name is treated as a custom Go time layout.
func parsersFor(hint schema.DateHint) []timeParser {
	switch hint {
	case "", schema.AutoDates, schema.ISO8601Dates:
		return []timeParser{parseISODate, parseMailDate}
	case schema.RFC2822Dates:
		return []timeParser{parseMailDate, parseISODate}
	default:
		layout := string(hint)
		custom := func(s string) (time.Time, error) { return time.Parse(layout, s) }
		return []timeParser{custom, parseISODate, parseMailDate}
	}
}

// ParseTimestamp converts a date key into a UTC timestamp.
// It accepts RFC-2822 mail dates and ISO-8601 dates in the same run.
// Keys that match nothing yield an error wrapping ErrMalformedTimestamp.
func ParseTimestamp(key string, hint schema.DateHint) (time.Time, error) {
	s := strings.TrimSpace(key)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: empty key", ErrMalformedTimestamp)
	}
	for _, parse := range parsersFor(hint) {
		if t, err := parse(s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrMalformedTimestamp, key)
}
