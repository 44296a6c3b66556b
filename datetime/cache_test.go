package datetime

import (
	"fmt"
	"strconv"
	"sync"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLookupCaches tests that compiled patterns are reused
// GIVEN a pattern looked up twice
// WHEN the second lookup runs
// THEN the same compiled pattern is returned
func TestLookupCaches(t *testing.T) {
	first, err := lookup("yyyy.MM.dd")
	require.NoError(t, err)
	second, err := lookup("yyyy.MM.dd")
	require.NoError(t, err)
	assert.Same(t, first, second)
}

// TestLookupSkipsInvalid tests that malformed patterns are not cached
// GIVEN a malformed pattern
// WHEN it is looked up
// THEN an error is returned and nothing is stored
func TestLookupSkipsInvalid(t *testing.T) {
	_, err := lookup("yyyy 'open")
	assert.Error(t, err)

	cache.Lock()
	_, ok := cache.patterns.Get("yyyy 'open")
	cache.Unlock()
	assert.False(t, ok)
}

// tag spells i with the letters a-j so the literal never reads as a layout element.
func tag(i int) string {
	b := []byte(strconv.Itoa(i))
	for k := range b {
		b[k] = 'a' + b[k] - '0'
	}
	return string(b)
}

// TestConcurrentUse tests the package-level functions from many goroutines
// GIVEN more distinct patterns than the cache holds
// WHEN goroutines format and parse with them at the same time
// THEN every call succeeds with the right result
func TestConcurrentUse(t *testing.T) {
	dt := civil.DateTime{
		Date: civil.Date{Year: 2024, Month: time.January, Day: 5},
		Time: civil.Time{Hour: 10, Minute: 11, Second: 12},
	}

	var wg sync.WaitGroup
	errs := make(chan error, 2*cacheSize)
	for i := 0; i < 2*cacheSize; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			pattern := fmt.Sprintf("'%s' yyyy-MM-dd HH:mm:ss", tag(i))
			s, err := FormatDateTime(dt, pattern)
			if err != nil {
				errs <- err
				return
			}
			got, err := ParseDateTime(s, pattern)
			if err != nil {
				errs <- err
				return
			}
			if got != dt {
				errs <- fmt.Errorf("pattern %q: got %s", pattern, got)
			}
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Error(err)
	}
}
