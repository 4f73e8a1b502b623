package realtime

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestRegistry_BindAndLookup(t *testing.T) {
	r := NewRegistry()
	userID := uuid.New()
	c := &Client{}

	prev := r.Bind(userID, c)
	assert.Nil(t, prev)

	got, ok := r.Lookup(userID)
	assert.True(t, ok)
	assert.Same(t, c, got)
	assert.Equal(t, 1, r.Count())
}

func TestRegistry_LastConnectionWins(t *testing.T) {
	r := NewRegistry()
	userID := uuid.New()
	first := &Client{}
	second := &Client{}

	r.Bind(userID, first)
	prev := r.Bind(userID, second)

	assert.Same(t, first, prev)

	got, ok := r.Lookup(userID)
	assert.True(t, ok)
	assert.Same(t, second, got)
	assert.Equal(t, 1, r.Count())
}

func TestRegistry_Unbind(t *testing.T) {
	r := NewRegistry()
	userID := uuid.New()
	c := &Client{}

	r.Bind(userID, c)
	r.Unbind(userID, c)

	_, ok := r.Lookup(userID)
	assert.False(t, ok)
	assert.Equal(t, 0, r.Count())
}

func TestRegistry_StaleUnbindKeepsSuccessor(t *testing.T) {
	r := NewRegistry()
	userID := uuid.New()
	old := &Client{}
	replacement := &Client{}

	r.Bind(userID, old)
	r.Bind(userID, replacement)

	// The old connection's disconnect fires after the reconnect; it must not
	// evict the replacement.
	r.Unbind(userID, old)

	got, ok := r.Lookup(userID)
	assert.True(t, ok)
	assert.Same(t, replacement, got)
}

func TestRegistry_UnbindUnknownUserIsNoop(t *testing.T) {
	r := NewRegistry()

	r.Unbind(uuid.New(), &Client{})

	assert.Equal(t, 0, r.Count())
}

func TestRegistry_LookupMiss(t *testing.T) {
	r := NewRegistry()

	_, ok := r.Lookup(uuid.New())
	assert.False(t, ok)
}
