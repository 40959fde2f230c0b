// Package dates parses the calendar dates accepted by the admin forms.
package dates

import (
	"fmt"
	"strings"
	"time"
)

var layouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01",
}

// Parse accepts YYYY-MM-DD, RFC 3339 timestamps and YYYY-MM.
func Parse(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range layouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", raw)
}

// ParseOptional treats nil and blank input as "no date".
func ParseOptional(raw *string) (*time.Time, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	t, err := Parse(*raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
