package breaker

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecutePassesThrough(t *testing.T) {
	b := New("test", 3, time.Minute)

	result, err := b.Execute(func() (interface{}, error) {
		return 42, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 42, result)
}

func TestOpensAfterConsecutiveFailures(t *testing.T) {
	b := New("test", 3, time.Minute)

	boom := func() (interface{}, error) { return nil, fmt.Errorf("boom") }

	for i := 0; i < 3; i++ {
		_, err := b.Execute(boom)
		assert.Error(t, err)
	}

	// Next call is rejected without invoking fn
	called := false
	_, err := b.Execute(func() (interface{}, error) {
		called = true
		return nil, nil
	})
	assert.Error(t, err)
	assert.False(t, called)
	assert.Equal(t, "open", b.State())
}

func TestSuccessResetsFailureCount(t *testing.T) {
	b := New("test", 3, time.Minute)

	boom := func() (interface{}, error) { return nil, fmt.Errorf("boom") }
	ok := func() (interface{}, error) { return "ok", nil }

	b.Execute(boom)
	b.Execute(boom)
	b.Execute(ok)
	b.Execute(boom)
	b.Execute(boom)

	// Never reached three consecutive failures
	_, err := b.Execute(ok)
	assert.NoError(t, err)
}
