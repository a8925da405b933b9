package ws

import (
	"sync"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
)

// dedupWindowSize bounds the per-connection fingerprint cache. Once full, the
// oldest fingerprint is evicted first.
const dedupWindowSize = 100

// Conn is the transport surface the hub needs from a connection. Satisfied by
// *websocket.Conn.
type Conn interface {
	WriteJSON(v any) error
	ReadJSON(v any) error
	Close() error
}

// Client binds an account to a live connection. It owns the connection's
// dedup window, which dies with the client: reconnecting starts with an empty
// window.
type Client struct {
	ID     uuid.UUID
	UserID int64

	conn Conn
	mu   sync.Mutex // serializes writes to the connection
	seen *lru.Cache[string, struct{}]
}

func NewClient(userID int64, conn Conn) *Client {
	// Fingerprints are only ever added, never refreshed, so eviction follows
	// insertion order.
	seen, _ := lru.New[string, struct{}](dedupWindowSize)
	return &Client{
		ID:     uuid.New(),
		UserID: userID,
		conn:   conn,
		seen:   seen,
	}
}

// Seen reports whether the fingerprint was already processed on this
// connection, recording it when it was not.
func (c *Client) Seen(fingerprint string) bool {
	if c.seen.Contains(fingerprint) {
		return true
	}
	c.seen.Add(fingerprint, struct{}{})
	return false
}

// Send writes an event to the connection.
func (c *Client) Send(event any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(event)
}
