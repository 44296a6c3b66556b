package datetime

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrInvalidArgument is returned when a required value, text or pattern is
// missing. It is reported before any formatting or parsing is attempted.
var ErrInvalidArgument = errors.New("datetime: invalid argument")

func invalidArgument(format string, args ...interface{}) error {
	return errors.Wrapf(ErrInvalidArgument, format, args...)
}

// FormatError reports a pattern that is malformed, or that cannot render or
// parse the requested kind of value.
type FormatError struct {
	Pattern string
	Offset  int
	Reason  string
}

func (e *FormatError) Error() string {
	if e.Offset < 0 {
		return fmt.Sprintf("datetime: pattern %q: %s", e.Pattern, e.Reason)
	}
	return fmt.Sprintf("datetime: pattern %q at offset %d: %s", e.Pattern, e.Offset, e.Reason)
}

// ParseError reports text that does not conform to a pattern.
type ParseError struct {
	Text    string
	Pattern string
	Reason  string
	Err     error
}

func (e *ParseError) Error() string {
	msg := fmt.Sprintf("datetime: cannot parse %q with pattern %q", e.Text, e.Pattern)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
