package services

import (
	"fmt"
	"strings"
	"time"
)

const dayLayout = "2006-01-02"

// Day truncates t to midnight UTC of its calendar date.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDay accepts "2006-01-02" or an RFC 3339 timestamp.
func ParseDay(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(dayLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: cannot parse date %q", ErrInvalidDateRange, s)
	}
	return Day(t), nil
}

// DateRange is a stay: the nights CheckIn, CheckIn+1, ..., CheckOut-1.
type DateRange struct {
	CheckIn  time.Time `json:"check_in"`
	CheckOut time.Time `json:"check_out"`
}

// NewDateRange validates a stay. maxNights <= 0 disables the length check.
func NewDateRange(checkIn, checkOut time.Time, maxNights int) (DateRange, error) {
	r := DateRange{CheckIn: Day(checkIn), CheckOut: Day(checkOut)}
	if !r.CheckOut.After(r.CheckIn) {
		return DateRange{}, invalid(ErrInvalidDateRange, "check_out", "must be after check_in")
	}
	if maxNights > 0 && r.Nights() > maxNights {
		return DateRange{}, invalid(ErrInvalidDateRange, "check_out", fmt.Sprintf("stay is limited to %d nights", maxNights))
	}
	return r, nil
}

func ParseDateRange(checkIn, checkOut string, maxNights int) (DateRange, error) {
	in, err := ParseDay(checkIn)
	if err != nil {
		return DateRange{}, err
	}
	out, err := ParseDay(checkOut)
	if err != nil {
		return DateRange{}, err
	}
	return NewDateRange(in, out, maxNights)
}

func (r DateRange) Nights() int {
	return int(r.CheckOut.Sub(r.CheckIn).Hours() / 24)
}

// Days lists every night of the stay.
func (r DateRange) Days() []time.Time {
	days := make([]time.Time, 0, r.Nights())
	for d := r.CheckIn; d.Before(r.CheckOut); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// LastNight is the final night of the stay (CheckOut - 1 day).
func (r DateRange) LastNight() time.Time {
	return r.CheckOut.AddDate(0, 0, -1)
}

func (r DateRange) String() string {
	return r.CheckIn.Format(dayLayout) + ".." + r.CheckOut.Format(dayLayout)
}

func dayKey(t time.Time) string {
	return Day(t).Format(dayLayout)
}
