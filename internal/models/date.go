package models

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
)

// IsoDateLayout is the canonical YYYY-MM-DD layout used for grouping and cache keys.
const IsoDateLayout = "2006-01-02"

// APIDateLayout is the compact YYYYMMDD layout spoken by the upstream feed API.
const APIDateLayout = "20060102"

// ErrInvalidDate is returned for strings that are not a real calendar date.
var ErrInvalidDate = errors.New("invalid date")

var (
	apiDatePattern = regexp.MustCompile(`^\d{8}$`)
	isoDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// IsoDate is a calendar date in YYYY-MM-DD form.
type IsoDate = string

// FormatIsoDate renders t as an IsoDate in t's own location.
func FormatIsoDate(t time.Time) IsoDate {
	return t.Format(IsoDateLayout)
}

// Today returns now's calendar date in now's location.
func Today(now time.Time) IsoDate {
	return FormatIsoDate(now)
}

// ToAPIDate converts YYYY-MM-DD into the upstream YYYYMMDD form.
func ToAPIDate(date IsoDate) string {
	return strings.ReplaceAll(date, "-", "")
}

// FromAPIDate converts an 8-digit YYYYMMDD string into YYYY-MM-DD.
// Anything else is returned unchanged.
func FromAPIDate(date string) IsoDate {
	if !apiDatePattern.MatchString(date) {
		return date
	}
	return date[0:4] + "-" + date[4:6] + "-" + date[6:8]
}

// NormalizeIsoDate accepts either YYYYMMDD or YYYY-MM-DD and returns the
// YYYY-MM-DD form, or false when the value is neither.
func NormalizeIsoDate(date string) (IsoDate, bool) {
	switch {
	case apiDatePattern.MatchString(date):
		return FromAPIDate(date), true
	case isoDatePattern.MatchString(date):
		return date, true
	default:
		return "", false
	}
}

// ParseIsoDate parses a YYYY-MM-DD string as midnight in loc.
func ParseIsoDate(date string, loc *time.Location) (time.Time, error) {
	if !isoDatePattern.MatchString(date) {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	t, err := time.ParseInLocation(IsoDateLayout, date, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	return t, nil
}

// ValidIsoDate reports whether date is a well-formed, existing calendar date.
func ValidIsoDate(date string) bool {
	_, err := ParseIsoDate(date, time.UTC)
	return err == nil
}

// DaysBefore returns the date offset calendar days before now, in now's location.
func DaysBefore(now time.Time, offset int) IsoDate {
	y, m, d := now.Date()
	return FormatIsoDate(time.Date(y, m, d-offset, 0, 0, 0, 0, now.Location()))
}
