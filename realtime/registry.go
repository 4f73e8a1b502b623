package realtime

import (
	"sync"

	"github.com/google/uuid"
)

// Registry maps an authenticated user to at most one live connection.
// A reconnect overwrites the prior handle (last connection wins). The
// registry is process-local: in a multi-instance deployment a user connected
// elsewhere is indistinguishable from disconnected.
type Registry struct {
	mu      sync.RWMutex
	clients map[uuid.UUID]*Client
}

func NewRegistry() *Registry {
	return &Registry{
		clients: make(map[uuid.UUID]*Client),
	}
}

// Bind registers the client as the user's connection and returns the handle
// it replaced, if any, so the caller can shut it down.
func (r *Registry) Bind(userID uuid.UUID, c *Client) *Client {
	r.mu.Lock()
	defer r.mu.Unlock()

	prev := r.clients[userID]
	r.clients[userID] = c
	return prev
}

// Unbind removes the mapping only if it still points at this client. A
// disconnect of an already-replaced connection must not evict its successor.
func (r *Registry) Unbind(userID uuid.UUID, c *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.clients[userID] == c {
		delete(r.clients, userID)
	}
}

func (r *Registry) Lookup(userID uuid.UUID) (*Client, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.clients[userID]
	return c, ok
}

func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.clients)
}
