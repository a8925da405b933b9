package service

import (
	"context"
	"fmt"

	"peerprep/internal/domain"
)

// FriendService implements the friend-request bookkeeping: two-sided pending
// requests and symmetric friendships.
type FriendService struct {
	users   domain.UserRepository
	friends domain.FriendRepository
}

func NewFriendService(users domain.UserRepository, friends domain.FriendRepository) *FriendService {
	return &FriendService{
		users:   users,
		friends: friends,
	}
}

// Request records a pending friend request: a sent entry on the requester and
// a received entry on the target.
//
// The two inserts are not transactional; a failure between them leaves a
// one-sided request behind. Known limitation, kept as-is.
func (s *FriendService) Request(ctx context.Context, fromID, toID int64) error {
	if fromID == 0 || toID == 0 || fromID == toID {
		return domain.ErrInvalidInput
	}

	target, err := s.users.GetByID(ctx, toID)
	if err != nil {
		return fmt.Errorf("get target: %w", err)
	}
	if target == nil {
		return domain.ErrNotFound
	}

	sent, err := s.friends.HasSentRequest(ctx, fromID, toID)
	if err != nil {
		return fmt.Errorf("check sent request: %w", err)
	}
	if sent {
		return domain.ErrConflict
	}

	if err := s.friends.AddRequest(ctx, fromID, toID, domain.RequestSent); err != nil {
		return fmt.Errorf("add sent request: %w", err)
	}
	if err := s.friends.AddRequest(ctx, toID, fromID, domain.RequestReceived); err != nil {
		return fmt.Errorf("add received request: %w", err)
	}
	return nil
}

// Accept resolves a pending request. An affirmative decision writes the
// friendship on both sides; every decision clears the pending entries for the
// pair.
func (s *FriendService) Accept(ctx context.Context, userID, friendID int64, decision string) error {
	if userID == 0 || friendID == 0 {
		return domain.ErrInvalidInput
	}

	friend, err := s.users.GetByID(ctx, friendID)
	if err != nil {
		return fmt.Errorf("get friend: %w", err)
	}
	if friend == nil {
		return domain.ErrNotFound
	}

	if decision == "yes" {
		already, err := s.friends.AreFriends(ctx, userID, friendID)
		if err != nil {
			return fmt.Errorf("check friendship: %w", err)
		}
		if already {
			// Still clear the stale pending entries below.
			if err := s.friends.RemoveRequests(ctx, userID, friendID); err != nil {
				return fmt.Errorf("remove requests: %w", err)
			}
			return domain.ErrConflict
		}
		if err := s.friends.AddFriendship(ctx, userID, friendID); err != nil {
			return fmt.Errorf("add friendship: %w", err)
		}
	}

	if err := s.friends.RemoveRequests(ctx, userID, friendID); err != nil {
		return fmt.Errorf("remove requests: %w", err)
	}
	return nil
}

func (s *FriendService) ListRequests(ctx context.Context, userID int64) ([]*domain.FriendRequest, error) {
	return s.friends.ListRequests(ctx, userID)
}

func (s *FriendService) ListFriends(ctx context.Context, userID int64) ([]*domain.Friend, error) {
	return s.friends.ListFriends(ctx, userID)
}

// ListOnline returns online users that are strangers to the caller: not
// self, not a friend, and without a pending request in either direction.
func (s *FriendService) ListOnline(ctx context.Context, userID int64) ([]*domain.User, error) {
	related, err := s.friends.ListRelatedIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list related ids: %w", err)
	}
	exclude := append(related, userID)
	return s.users.ListOnlineExcluding(ctx, exclude)
}
