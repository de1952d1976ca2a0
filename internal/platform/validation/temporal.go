package validation

import (
	"errors"
	"strings"
	"time"
)

// DateLayout is the wire format of calendar dates.
const DateLayout = "2006-01-02"

const (
	DateFormatMessage     = "Date has wrong format. Use one of these formats instead: YYYY-MM-DD."
	DateTimeFormatMessage = "Datetime has wrong format. Use one of these formats instead: YYYY-MM-DDThh:mm[:ss[.uuuuuu]][+HH:MM|-HH:MM|Z]."
)

var errBadTemporal = errors.New("bad temporal value")

// Timestamps without an offset are taken as UTC.
var dateTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05",
}

// ParseDate parses a YYYY-MM-DD calendar date at UTC midnight.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, errBadTemporal
	}
	return t, nil
}

// ParseDateTime accepts ISO 8601 timestamps with or without an offset.
func ParseDateTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errBadTemporal
}

// Parses fails when raw is set and parse rejects it. A nil raw passes so
// that partial updates without the field are not affected.
func Parses(raw *string, parse func(string) (time.Time, error), message string) Rule {
	return Predicate(message, func() bool {
		if raw == nil {
			return true
		}
		_, err := parse(*raw)
		return err == nil
	})
}
