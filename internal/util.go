package internal

import (
	"strings"

	"cloud.google.com/go/civil"
)

// Values on the command line are ISO 8601 without a zone. A space is
// accepted in place of the T.

func ParseValueDateTime(s string) (civil.DateTime, error) {
	return civil.ParseDateTime(strings.Replace(strings.TrimSpace(s), " ", "T", 1))
}

func ParseValueDate(s string) (civil.Date, error) {
	return civil.ParseDate(strings.TrimSpace(s))
}
