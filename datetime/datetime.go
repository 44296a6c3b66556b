// Package datetime formats and parses naive dates and date-times with
// yyyy-MM-dd style patterns.
//
// Values are civil.DateTime and civil.Date: wall-clock readings without a
// time zone. The current time is read from the host's local clock. All
// functions are safe for concurrent use.
package datetime

import (
	"time"

	"cloud.google.com/go/civil"
)

const (
	DateTimePattern = "yyyy-MM-dd HH:mm:ss"
	DatePattern     = "yyyy-MM-dd"
)

var (
	dateTimeFormat = MustCompile(DateTimePattern)
	dateFormat     = MustCompile(DatePattern)
)

var now = time.Now

// CurrentDateTime returns the local date and time.
func CurrentDateTime() civil.DateTime {
	return civil.DateTimeOf(now())
}

// CurrentDate returns the local date.
func CurrentDate() civil.Date {
	return civil.DateOf(now())
}

// CurrentDateTimeString returns the local date and time as yyyy-MM-dd HH:mm:ss.
func CurrentDateTimeString() string {
	return render(dateTimeFormat.elements, now())
}

// CurrentDateString returns the local date as yyyy-MM-dd.
func CurrentDateString() string {
	return render(dateFormat.elements, now())
}

// FormatDateTime renders value with pattern. It returns ErrInvalidArgument if
// value is not a valid date-time or pattern is empty, and a *FormatError if
// the pattern is malformed.
func FormatDateTime(value civil.DateTime, pattern string) (string, error) {
	if !value.IsValid() || pattern == "" {
		return "", invalidArgument("dateTime and pattern must not be empty")
	}
	p, err := lookup(pattern)
	if err != nil {
		return "", err
	}
	return p.FormatDateTime(value)
}

// FormatDate renders value with pattern. Besides the errors of
// FormatDateTime, a pattern with time-of-day fields is a *FormatError.
func FormatDate(value civil.Date, pattern string) (string, error) {
	if !value.IsValid() || pattern == "" {
		return "", invalidArgument("date and pattern must not be empty")
	}
	p, err := lookup(pattern)
	if err != nil {
		return "", err
	}
	return p.FormatDate(value)
}

// ParseDateTime reads a date-time from text using pattern. It returns
// ErrInvalidArgument if either is empty, a *FormatError if the pattern is
// malformed and a *ParseError if text does not match.
func ParseDateTime(text, pattern string) (civil.DateTime, error) {
	if text == "" || pattern == "" {
		return civil.DateTime{}, invalidArgument("dateTimeString and pattern must not be empty")
	}
	p, err := lookup(pattern)
	if err != nil {
		return civil.DateTime{}, err
	}
	return p.ParseDateTime(text)
}

// ParseDate reads a date from text using pattern, with the errors of
// ParseDateTime.
func ParseDate(text, pattern string) (civil.Date, error) {
	if text == "" || pattern == "" {
		return civil.Date{}, invalidArgument("dateString and pattern must not be empty")
	}
	p, err := lookup(pattern)
	if err != nil {
		return civil.Date{}, err
	}
	return p.ParseDate(text)
}
