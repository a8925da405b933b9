package domain

import "time"

// User represents a registered account with its credentials and social graph
// state. Friend and friend-request rows live in their own tables and are
// loaded on demand rather than embedded here.
type User struct {
	ID                   int64      `db:"id" json:"id"`
	Name                 string     `db:"name" json:"name"`
	Email                string     `db:"email" json:"email"`
	HashedPassword       string     `db:"hashed_password" json:"-"`
	Online               bool       `db:"online" json:"online"`
	ResetPasswordToken   *string    `db:"reset_password_token" json:"-"`
	ResetPasswordExpires *time.Time `db:"reset_password_expires" json:"-"`
	CreatedAt            time.Time  `db:"created_at" json:"created_at"`
}

// Request directions as stored on each side of a pending friend request.
const (
	RequestSent     = "sent"
	RequestReceived = "received"
)

// FriendRequest is one side of a pending request. Every request is recorded
// twice: a "sent" row on the requester and a "received" row on the target.
type FriendRequest struct {
	UserID    int64     `db:"user_id" json:"-"`
	PeerID    int64     `db:"peer_id" json:"userId"`
	PeerName  string    `db:"peer_name" json:"name"`
	Direction string    `db:"direction" json:"type"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// Friend is a resolved entry of a user's friend list.
type Friend struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

// Message is a single direct message. Messages are append-only: once created
// they are never updated or deleted. A message that represents a video-call
// invitation carries the room reference.
type Message struct {
	ID         int64     `db:"id" json:"id"`
	SenderID   int64     `db:"sender_id" json:"senderId"`
	ReceiverID int64     `db:"receiver_id" json:"receiverId"`
	Body       string    `db:"body" json:"message"`
	Seen       bool      `db:"seen" json:"seen"`
	VideoCall  bool      `db:"video_call" json:"video_call"`
	RoomID     *string   `db:"room_id" json:"room_id,omitempty"`
	RoomName   *string   `db:"room_name" json:"room_name,omitempty"`
	CreatedAt  time.Time `db:"created_at" json:"createdAt"`
}

// Contact is an aggregation row: a peer the user has exchanged at least one
// message with, regardless of friendship.
type Contact struct {
	ID     int64  `db:"id" json:"id"`
	Name   string `db:"name" json:"name"`
	Online bool   `db:"online" json:"online"`
}
