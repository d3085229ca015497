package socket

import "sync"

// Registry maps a user id to its single live connection. A reconnect replaces
// the prior connection (last-connection-wins); there is no multi-device
// fan-out. State is process-local and cleared on disconnect.
type Registry struct {
	mu      sync.RWMutex
	clients map[int]*Client
}

// NewRegistry creates an empty connection registry
func NewRegistry() *Registry {
	return &Registry{clients: make(map[int]*Client)}
}

// Register records the client as the user's live connection. A replaced
// connection is shut down so its pumps terminate.
func (r *Registry) Register(userID int, client *Client) {
	r.mu.Lock()
	prior := r.clients[userID]
	r.clients[userID] = client
	r.mu.Unlock()

	if prior != nil && prior != client {
		prior.shutdown()
	}
}

// Unregister removes the mapping, but only if it still points at client.
// A stale disconnect from a replaced connection must not evict the newer one.
func (r *Registry) Unregister(userID int, client *Client) {
	r.mu.Lock()
	if r.clients[userID] == client {
		delete(r.clients, userID)
	}
	r.mu.Unlock()
}

// Lookup returns the user's live connection, if any
func (r *Registry) Lookup(userID int) (*Client, bool) {
	r.mu.RLock()
	client, ok := r.clients[userID]
	r.mu.RUnlock()
	return client, ok
}

// Count returns the number of connected users
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.clients)
}
