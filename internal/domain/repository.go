package domain

import (
	"context"
	"time"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByResetToken(ctx context.Context, token string) (*User, error)
	SetOnlineStatus(ctx context.Context, id int64, online bool) error
	SetResetToken(ctx context.Context, id int64, token *string, expires *time.Time) error
	UpdatePassword(ctx context.Context, id int64, hashedPassword string) error
	ListOnlineExcluding(ctx context.Context, excludeIDs []int64) ([]*User, error)
}

// FriendRepository defines persistence operations for the friend graph:
// symmetric friendships and the two-sided pending-request rows.
type FriendRepository interface {
	AddRequest(ctx context.Context, userID, peerID int64, direction string) error
	HasSentRequest(ctx context.Context, userID, peerID int64) (bool, error)
	// RemoveRequests deletes the pending rows for the pair on both sides.
	RemoveRequests(ctx context.Context, userID, peerID int64) error
	ListRequests(ctx context.Context, userID int64) ([]*FriendRequest, error)
	// AddFriendship writes both directed rows of the relationship.
	AddFriendship(ctx context.Context, userID, friendID int64) error
	AreFriends(ctx context.Context, userID, friendID int64) (bool, error)
	ListFriends(ctx context.Context, userID int64) ([]*Friend, error)
	// ListRelatedIDs returns friends plus request peers in either direction,
	// used to filter the online-people listing.
	ListRelatedIDs(ctx context.Context, userID int64) ([]int64, error)
}

// MessageRepository defines persistence operations for the append-only
// message log.
type MessageRepository interface {
	Create(ctx context.Context, m *Message) error
	// ListConversation returns all messages between the two users in
	// creation order.
	ListConversation(ctx context.Context, userID, otherID int64) ([]*Message, error)
	// ListContacts returns the distinct peers the user has messaged with.
	ListContacts(ctx context.Context, userID int64) ([]*Contact, error)
}
