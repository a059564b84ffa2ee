package domain

import (
	"fmt"
	"strings"
	"time"
)

// TimeLayout is the fixed textual date-time representation used on the wire.
const TimeLayout = "2006-01-02T15:04:05"

// DateTime is a time.Time that marshals to/from the fixed TimeLayout format
// instead of RFC 3339.
type DateTime struct {
	time.Time
}

func NewDateTime(t time.Time) *DateTime {
	dt := DateTime{t}
	return &dt
}

// ParseDateTime parses a wire timestamp. Empty input yields nil.
func ParseDateTime(s string) (*DateTime, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(TimeLayout, s)
	if err != nil {
		return nil, fmt.Errorf("invalid date-time %q (want %s): %w", s, TimeLayout, ErrValidation)
	}
	return NewDateTime(t), nil
}

func (d DateTime) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(TimeLayout) + `"`), nil
}

func (d *DateTime) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		return nil
	}
	t, err := time.Parse(TimeLayout, s)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}
