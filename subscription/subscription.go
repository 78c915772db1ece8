package subscription

import (
	"encoding/json"
	"fmt"
	"time"
)

// DateLayout is the wire format for subscription dates.
const DateLayout = "2006-01-02"

// Date is a calendar date without a time component. The zero value is the
// zero date. Dates marshal to and from ISO 8601 (YYYY-MM-DD) strings.
type Date struct {
	t time.Time
}

// NewDate builds a date from year, month, and day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses an ISO 8601 date string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: end date %q must match %s", ErrInvalidInput, s, DateLayout)
	}
	return Date{t: t}, nil
}

// DateOf truncates an instant to its calendar date in the instant's location.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// AddDays returns the date shifted by n calendar days.
func (d Date) AddDays(n int) Date {
	return Date{t: d.t.AddDate(0, 0, n)}
}

// DaysUntil returns the number of whole days from d to other.
func (d Date) DaysUntil(other Date) int {
	return int(other.t.Sub(d.t) / (24 * time.Hour))
}

// Before reports whether d is strictly before other.
func (d Date) Before(other Date) bool { return d.t.Before(other.t) }

// Equal reports whether both values name the same calendar day.
func (d Date) Equal(other Date) bool { return d.t.Equal(other.t) }

// IsZero reports whether d is the zero date.
func (d Date) IsZero() bool { return d.t.IsZero() }

func (d Date) String() string { return d.t.Format(DateLayout) }

// MarshalJSON encodes the date as a quoted YYYY-MM-DD string.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON decodes a quoted YYYY-MM-DD string.
func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Subscription is a client's subscription to a product.
//
// LicenseKey is a pointer so an absent key is distinguishable from an empty
// one; both survive the JSON round trip.
type Subscription struct {
	Index       int     `json:"index"`
	ClientName  string  `json:"client_name"`
	ProductName string  `json:"product_name"`
	EndDate     Date    `json:"end_date"`
	LicenseKey  *string `json:"license_key,omitempty"`
}

// NextIndex computes the index for the next record: one more than the current
// maximum, or 1 for an empty collection. It is a pure function of the
// snapshot and must be recomputed on every assignment; a standalone counter
// would drift after deletions.
func NextIndex(subs []Subscription) int {
	next := 1
	for _, s := range subs {
		if s.Index >= next {
			next = s.Index + 1
		}
	}
	return next
}
