package service

import (
	"context"
	"fmt"

	"peerprep/internal/domain"
	"peerprep/internal/ws"
)

// Delivery is the surface of the real-time engine used by services.
type Delivery interface {
	Submit(ctx context.Context, in ws.Intent) (*domain.Message, bool, error)
	Notify(userID int64, event any) bool
}

// MessageService exposes the REST-facing messaging operations. Sending goes
// through the same delivery engine as socket submissions, so a message
// emitted on both paths is deduplicated on the sender's connection window.
type MessageService struct {
	users    domain.UserRepository
	messages domain.MessageRepository
	delivery Delivery
}

func NewMessageService(users domain.UserRepository, messages domain.MessageRepository, delivery Delivery) *MessageService {
	return &MessageService{
		users:    users,
		messages: messages,
		delivery: delivery,
	}
}

// Send validates the receiver and hands the intent to the delivery engine.
// Returns the persisted message (nil when suppressed as a duplicate) and
// whether the live push reached the receiver.
func (s *MessageService) Send(ctx context.Context, senderID, receiverID int64, body string) (*domain.Message, bool, error) {
	if senderID == 0 || receiverID == 0 || body == "" {
		return nil, false, domain.ErrInvalidInput
	}

	receiver, err := s.users.GetByID(ctx, receiverID)
	if err != nil {
		return nil, false, fmt.Errorf("get receiver: %w", err)
	}
	if receiver == nil {
		return nil, false, domain.ErrNotFound
	}

	return s.delivery.Submit(ctx, ws.Intent{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Body:       body,
	})
}

// GetConversation returns every message between the two users in creation
// order.
func (s *MessageService) GetConversation(ctx context.Context, userID, otherID int64) ([]*domain.Message, error) {
	if otherID == 0 {
		return nil, domain.ErrInvalidInput
	}
	return s.messages.ListConversation(ctx, userID, otherID)
}

// ListContacts returns the peers the user has exchanged messages with.
func (s *MessageService) ListContacts(ctx context.Context, userID int64) ([]*domain.Contact, error) {
	return s.messages.ListContacts(ctx, userID)
}
