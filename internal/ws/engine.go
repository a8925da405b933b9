package ws

import (
	"context"
	"fmt"
	"log"
	"time"

	"peerprep/internal/domain"
)

// bodyPrefixLen is how much of the message body participates in the dedup
// fingerprint.
const bodyPrefixLen = 32

// Intent is an inbound request to deliver a message, before any validation.
type Intent struct {
	SenderID   int64
	ReceiverID int64
	Body       string
}

// Engine accepts message intents, suppresses duplicates seen on the sender's
// live connection, persists every accepted message, and pushes a copy to the
// receiver's connection when one exists. The durable write is the success
// criterion; the live push is best-effort.
type Engine struct {
	registry *Registry
	messages domain.MessageRepository
}

func NewEngine(registry *Registry, messages domain.MessageRepository) *Engine {
	return &Engine{
		registry: registry,
		messages: messages,
	}
}

// fingerprint identifies a message by sender, receiver, unix second, and body
// prefix. The same message submitted through both the socket and the REST
// path within the same second collapses to one entry.
func fingerprint(in Intent, now time.Time) string {
	prefix := in.Body
	if r := []rune(prefix); len(r) > bodyPrefixLen {
		prefix = string(r[:bodyPrefixLen])
	}
	return fmt.Sprintf("%d|%d|%d|%s", in.SenderID, in.ReceiverID, now.Unix(), prefix)
}

// Submit processes one message intent. Returns the persisted message and
// whether the live push reached the receiver. A nil message with a nil error
// means the intent was suppressed by the dedup window.
//
// The window lives on the sender's connection; an intent from a sender with
// no live connection (REST-only client) is never deduplicated.
func (e *Engine) Submit(ctx context.Context, in Intent) (*domain.Message, bool, error) {
	if in.SenderID == 0 || in.ReceiverID == 0 || in.Body == "" {
		log.Printf("ws: dropping invalid message intent from user %d", in.SenderID)
		return nil, false, domain.ErrInvalidInput
	}

	if sender, ok := e.registry.Get(in.SenderID); ok {
		if sender.Seen(fingerprint(in, time.Now())) {
			return nil, false, nil
		}
	}

	msg := &domain.Message{
		SenderID:   in.SenderID,
		ReceiverID: in.ReceiverID,
		Body:       in.Body,
	}
	if err := e.messages.Create(ctx, msg); err != nil {
		return nil, false, fmt.Errorf("persist message: %w", err)
	}

	delivered := e.Notify(in.ReceiverID, MessageEvent{
		Type:     EventReceiveMessage,
		SenderID: in.SenderID,
		Message:  in.Body,
	})
	return msg, delivered, nil
}

// Notify pushes an event to the user's live connection if one exists.
// Best-effort: a missing connection or a failed write is reported via the
// return value and never retried.
func (e *Engine) Notify(userID int64, event any) bool {
	client, ok := e.registry.Get(userID)
	if !ok {
		return false
	}
	if err := client.Send(event); err != nil {
		log.Printf("ws: push to user %d failed: %v", userID, err)
		return false
	}
	return true
}
