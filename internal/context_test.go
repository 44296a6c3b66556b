package internal

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/furious-luke/datetimeutils/datetime"
)

// TestPrepareContextDefaults tests an empty context
// GIVEN no patterns, logger or output
// WHEN the context is prepared
// THEN the default patterns, a logger and stdout are filled in
func TestPrepareContextDefaults(t *testing.T) {
	ctx := Context{}
	require.NoError(t, PrepareContext(&ctx))
	assert.Equal(t, datetime.DateTimePattern, ctx.Patterns.DateTime)
	assert.Equal(t, datetime.DatePattern, ctx.Patterns.Date)
	assert.NotNil(t, ctx.Log)
	assert.Equal(t, os.Stdout, ctx.Out)

	debug := Context{Debug: true}
	require.NoError(t, PrepareContext(&debug))
	assert.NotNil(t, debug.Log)
}

// TestPrepareContextIndirectValues tests env: and file: values
// GIVEN patterns given through the environment and a file
// WHEN the context is prepared
// THEN the values are read, trimmed and followed through two levels
func TestPrepareContextIndirectValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pattern")
	require.NoError(t, os.WriteFile(path, []byte("yyyy.MM.dd\n"), 0644))
	t.Setenv("DATETIMEUTILS_TEST_DATETIME", "dd/MM/yyyy HH:mm")
	t.Setenv("DATETIMEUTILS_TEST_DATE", "file:"+path)

	ctx := Context{Patterns: Patterns{
		DateTime: "env:DATETIMEUTILS_TEST_DATETIME",
		Date:     "env:DATETIMEUTILS_TEST_DATE",
	}}
	require.NoError(t, PrepareContext(&ctx))
	assert.Equal(t, "dd/MM/yyyy HH:mm", ctx.Patterns.DateTime)
	assert.Equal(t, "yyyy.MM.dd", ctx.Patterns.Date)
}

// TestPrepareContextErrors tests configuration that cannot be used
// GIVEN a missing value file or a malformed pattern
// WHEN the context is prepared
// THEN an error is returned
func TestPrepareContextErrors(t *testing.T) {
	ctx := Context{Patterns: Patterns{Date: "file:" + filepath.Join(t.TempDir(), "missing")}}
	assert.Error(t, PrepareContext(&ctx))

	ctx = Context{Patterns: Patterns{DateTime: "yyyy-MM-dd zzz"}}
	err := PrepareContext(&ctx)
	var formatErr *datetime.FormatError
	require.True(t, errors.As(err, &formatErr))
	assert.Equal(t, "yyyy-MM-dd zzz", formatErr.Pattern)
}
