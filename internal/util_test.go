package internal

import (
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseValueDateTime(t *testing.T) {
	want := civil.DateTime{
		Date: civil.Date{Year: 2024, Month: time.January, Day: 5},
		Time: civil.Time{Hour: 10, Minute: 11, Second: 12},
	}
	for _, s := range []string{"2024-01-05T10:11:12", "2024-01-05 10:11:12", " 2024-01-05T10:11:12\n"} {
		dt, err := ParseValueDateTime(s)
		require.NoError(t, err)
		assert.Equal(t, want, dt)
	}

	dt, err := ParseValueDateTime("2024-01-05T10:11:12.5")
	require.NoError(t, err)
	assert.Equal(t, 500000000, dt.Time.Nanosecond)

	_, err = ParseValueDateTime("2024-01-05")
	assert.Error(t, err)
}

func TestParseValueDate(t *testing.T) {
	d, err := ParseValueDate("2024-01-05")
	require.NoError(t, err)
	assert.Equal(t, civil.Date{Year: 2024, Month: time.January, Day: 5}, d)

	_, err = ParseValueDate("05/01/2024")
	assert.Error(t, err)
}
