package ws

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeConn struct {
	mu         sync.Mutex
	events     []any
	failWrites bool
}

func (c *fakeConn) WriteJSON(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failWrites {
		return errors.New("write on closed connection")
	}
	c.events = append(c.events, v)
	return nil
}

func (c *fakeConn) ReadJSON(v any) error { return io.EOF }
func (c *fakeConn) Close() error         { return nil }

func (c *fakeConn) sent() []any {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]any(nil), c.events...)
}

func TestClientSeenSuppressesDuplicates(t *testing.T) {
	c := NewClient(1, &fakeConn{})

	assert.False(t, c.Seen("fp-1"))
	assert.True(t, c.Seen("fp-1"))
	assert.False(t, c.Seen("fp-2"))
}

func TestClientSeenEvictsOldestAtCapacity(t *testing.T) {
	c := NewClient(1, &fakeConn{})

	for i := 0; i < dedupWindowSize; i++ {
		assert.False(t, c.Seen(fmt.Sprintf("fp-%d", i)))
	}
	// Still within the window.
	assert.True(t, c.Seen("fp-0"))

	// The 101st distinct fingerprint evicts the oldest entry, so a resend of
	// the first message is treated as new again.
	assert.False(t, c.Seen("fp-overflow"))
	assert.False(t, c.Seen("fp-0"))
}

func TestClientWindowDiesWithConnection(t *testing.T) {
	first := NewClient(1, &fakeConn{})
	assert.False(t, first.Seen("fp-1"))

	// Reconnecting starts with an empty window.
	second := NewClient(1, &fakeConn{})
	assert.False(t, second.Seen("fp-1"))
}
