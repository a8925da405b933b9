package ws

import (
	"sync"

	"github.com/google/uuid"
)

// Registry maps account ids to their live connection. One handle per user:
// a second connection for the same account overwrites the first (last writer
// wins), and the abandoned handle is simply no longer reachable.
type Registry struct {
	mu      sync.RWMutex
	clients map[int64]*Client
}

func NewRegistry() *Registry {
	return &Registry{
		clients: make(map[int64]*Client),
	}
}

// Set registers the client under its user id, replacing any prior handle.
func (r *Registry) Set(client *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clients[client.UserID] = client
}

// Get returns the live connection for the user, if any.
func (r *Registry) Get(userID int64) (*Client, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	client, ok := r.clients[userID]
	return client, ok
}

// Remove drops the user's entry, but only if it still belongs to the given
// connection. A close racing with a reconnect must not evict the newer handle.
// Reports whether an entry was removed.
func (r *Registry) Remove(userID int64, connID uuid.UUID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if client, ok := r.clients[userID]; ok && client.ID == connID {
		delete(r.clients, userID)
		return true
	}
	return false
}

// Len returns the number of registered connections.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.clients)
}
