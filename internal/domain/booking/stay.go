package booking

import (
	"math"
	"strings"
	"time"
)

const (
	DateLayout = "2006-01-02"
	MaxNights  = 365
)

// Stay is a half-open range of calendar dates [check-in, check-out).
type Stay struct {
	checkIn  time.Time
	checkOut time.Time
}

// ParseDate accepts a calendar date ("2025-01-31") or an RFC 3339 timestamp,
// whose calendar date in its own offset is used.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrInvalidDate
	}
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return toDate(t), nil
}

func toDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func NewStay(checkIn, checkOut time.Time) (Stay, error) {
	if checkIn.IsZero() || checkOut.IsZero() {
		return Stay{}, ErrInvalidDate
	}
	in, out := toDate(checkIn), toDate(checkOut)
	if !out.After(in) {
		return Stay{}, ErrCheckOutNotAfterCheckIn
	}
	return Stay{checkIn: in, checkOut: out}, nil
}

func (s Stay) CheckIn() time.Time  { return s.checkIn }
func (s Stay) CheckOut() time.Time { return s.checkOut }

// Nights is the number of nights charged: the stay length in days, rounded up.
func (s Stay) Nights() int64 {
	return int64(math.Ceil(s.checkOut.Sub(s.checkIn).Hours() / 24))
}

// CheckLength rejects stays longer than MaxNights.
func (s Stay) CheckLength() error {
	if s.Nights() > MaxNights {
		return ErrStayTooLong
	}
	return nil
}

// Overlaps reports whether two half-open stays share at least one night.
func (s Stay) Overlaps(other Stay) bool {
	return s.checkIn.Before(other.checkOut) && other.checkIn.Before(s.checkOut)
}
