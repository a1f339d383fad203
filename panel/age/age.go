// Package age computes a person's age in completed years from a date of
// birth.
package age

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Layout is the accepted date format.
const Layout = "2006-01-02"

var (
	// ErrInvalidDate is returned for text that is not a YYYY-MM-DD date.
	ErrInvalidDate = errors.New("Invalid Date Format")
	// ErrFutureDate is returned for a date of birth after today.
	ErrFutureDate = errors.New("date of birth is in the future")
)

// Parse parses a date of birth in YYYY-MM-DD form.
func Parse(s string) (time.Time, error) {
	t, err := time.Parse(Layout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return t, nil
}

// Years returns the number of completed years between dob and today. One
// year is subtracted when today's month and day come before the birthday's.
// Only the calendar dates of dob and today are considered.
func Years(dob, today time.Time) int {
	n := today.Year() - dob.Year()
	tm, dm := today.Month(), dob.Month()
	if tm < dm || tm == dm && today.Day() < dob.Day() {
		n--
	}
	return n
}

// Result is a computed age.
type Result struct {
	Years int
}

func (r Result) String() string {
	return fmt.Sprintf("Your age is: %d years", r.Years)
}

// Compute parses a date of birth and returns the age on the date today.
func Compute(dob string, today time.Time) (Result, error) {
	d, err := Parse(dob)
	if err != nil {
		return Result{}, err
	}
	y, m, dd := today.Date()
	if d.After(time.Date(y, m, dd, 0, 0, 0, 0, time.UTC)) {
		return Result{}, fmt.Errorf("%w: %s", ErrFutureDate, d.Format(Layout))
	}
	return Result{Years: Years(d, today)}, nil
}

// Message returns the text a panel shows for an error from Compute.
func Message(err error) string {
	switch {
	case errors.Is(err, ErrFutureDate):
		return "Date of birth is in the future"
	default:
		return ErrInvalidDate.Error()
	}
}
