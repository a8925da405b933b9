package service

import (
	"context"
	"fmt"
	"log"

	"golang.org/x/sync/errgroup"

	"peerprep/internal/domain"
	"peerprep/internal/video"
	"peerprep/internal/ws"
)

const callInvitationBody = "Incoming video call"

// MeetingService creates ephemeral video rooms and pushes the invitation to
// the target. The room is returned synchronously so the caller joins
// immediately; the push shares the engine's best-effort semantics, only the
// underlying invite message is durable.
type MeetingService struct {
	users    domain.UserRepository
	messages domain.MessageRepository
	rooms    video.Provider
	delivery Delivery
}

func NewMeetingService(
	users domain.UserRepository,
	messages domain.MessageRepository,
	rooms video.Provider,
	delivery Delivery,
) *MeetingService {
	return &MeetingService{
		users:    users,
		messages: messages,
		rooms:    rooms,
		delivery: delivery,
	}
}

func (s *MeetingService) CreateMeeting(ctx context.Context, callerID, targetID int64) (*video.Room, error) {
	if callerID == 0 {
		return nil, domain.ErrUnauthorized
	}
	if targetID == 0 {
		return nil, domain.ErrInvalidInput
	}

	var caller, target *domain.User
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		caller, err = s.users.GetByID(gCtx, callerID)
		return err
	})
	g.Go(func() error {
		var err error
		target, err = s.users.GetByID(gCtx, targetID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("resolve participants: %w", err)
	}
	if caller == nil {
		return nil, domain.ErrUnauthorized
	}
	if target == nil {
		return nil, domain.ErrNotFound
	}

	room, err := s.rooms.CreateRoom(ctx)
	if err != nil {
		return nil, fmt.Errorf("create room: %w", err)
	}

	msg := &domain.Message{
		SenderID:   callerID,
		ReceiverID: targetID,
		Body:       callInvitationBody,
		VideoCall:  true,
		RoomID:     &room.ID,
		RoomName:   &room.Name,
	}
	if err := s.messages.Create(ctx, msg); err != nil {
		return nil, fmt.Errorf("persist invitation: %w", err)
	}

	delivered := s.delivery.Notify(targetID, ws.CallEvent{
		Type:        ws.EventReceiveMessage,
		SenderID:    callerID,
		Message:     callInvitationBody,
		IsVideoCall: true,
		RoomName:    room.Name,
		RoomID:      room.ID,
	})
	if !delivered {
		log.Printf("meeting: invitation push to user %d not delivered", targetID)
	}

	return room, nil
}

// AccessToken issues a signed grant for the user to join the given room.
func (s *MeetingService) AccessToken(ctx context.Context, userID int64, roomID string) (string, error) {
	if userID == 0 {
		return "", domain.ErrUnauthorized
	}
	if roomID == "" {
		return "", domain.ErrInvalidInput
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("get user: %w", err)
	}
	if user == nil {
		return "", domain.ErrUnauthorized
	}

	return s.rooms.AccessToken(user.Name, roomID)
}
