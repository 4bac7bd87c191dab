package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestWithCapacity verifies custom capacity configuration.
func TestWithCapacity(t *testing.T) {
	cfg := newConfig([]Option{WithCapacity(128)})
	assert.Equal(t, 128, cfg.capacity)
}

// TestWithCapacityDefault verifies the default capacity.
func TestWithCapacityDefault(t *testing.T) {
	cfg := newConfig(nil)
	assert.Equal(t, defaultCapacity, cfg.capacity)
}

// TestWithCapacityInvalid verifies non-positive capacities are rejected.
func TestWithCapacityInvalid(t *testing.T) {
	cfg := newConfig([]Option{WithCapacity(-1)})
	assert.Equal(t, defaultCapacity, cfg.capacity)
}

// TestWithPanicHandler verifies a panicking handler is recovered and reported
// without disturbing the rest of the broadcast.
func TestWithPanicHandler(t *testing.T) {
	var recovered any
	e := New[int](WithPanicHandler(func(v any) { recovered = v }))
	defer e.Close()

	h1, err := e.Add(func(_ int) { panic("boom") })
	require.NoError(t, err)
	defer h1.Close()

	var got int
	h2, err := e.Add(func(v int) { got = v })
	require.NoError(t, err)
	defer h2.Close()

	e.Invoke(5)

	assert.Equal(t, "boom", recovered)
	assert.Equal(t, 5, got, "remaining handlers still fire after a recovered panic")
	assert.Equal(t, 2, e.Len())
}

// TestPanicPropagatesWithoutHandler verifies the default policy: a handler
// panic unwinds through Invoke, and the registry stays usable afterwards.
func TestPanicPropagatesWithoutHandler(t *testing.T) {
	e := New[int]()
	defer e.Close()

	handle, err := e.Add(func(_ int) { panic("boom") })
	require.NoError(t, err)

	require.Panics(t, func() { e.Invoke(1) })

	// Locks are released on unwind; the registry is not poisoned.
	handle.Close()
	require.Equal(t, 0, e.Len())

	var got int
	h2, err := e.Add(func(v int) { got = v })
	require.NoError(t, err)
	defer h2.Close()

	e.Invoke(2)
	assert.Equal(t, 2, got)
}
