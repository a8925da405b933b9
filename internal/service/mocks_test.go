package service_test

import (
	"context"
	"errors"
	"time"

	"github.com/stretchr/testify/mock"

	"peerprep/internal/domain"
	"peerprep/internal/video"
	"peerprep/internal/ws"
)

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepo) GetByResetToken(ctx context.Context, token string) (*domain.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepo) SetOnlineStatus(ctx context.Context, id int64, online bool) error {
	args := m.Called(ctx, id, online)
	return args.Error(0)
}

func (m *MockUserRepo) SetResetToken(ctx context.Context, id int64, token *string, expires *time.Time) error {
	args := m.Called(ctx, id, token, expires)
	return args.Error(0)
}

func (m *MockUserRepo) UpdatePassword(ctx context.Context, id int64, hashedPassword string) error {
	args := m.Called(ctx, id, hashedPassword)
	return args.Error(0)
}

func (m *MockUserRepo) ListOnlineExcluding(ctx context.Context, excludeIDs []int64) ([]*domain.User, error) {
	args := m.Called(ctx, excludeIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.User), args.Error(1)
}

type MockFriendRepo struct {
	mock.Mock
}

func (m *MockFriendRepo) AddRequest(ctx context.Context, userID, peerID int64, direction string) error {
	args := m.Called(ctx, userID, peerID, direction)
	return args.Error(0)
}

func (m *MockFriendRepo) HasSentRequest(ctx context.Context, userID, peerID int64) (bool, error) {
	args := m.Called(ctx, userID, peerID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFriendRepo) RemoveRequests(ctx context.Context, userID, peerID int64) error {
	args := m.Called(ctx, userID, peerID)
	return args.Error(0)
}

func (m *MockFriendRepo) ListRequests(ctx context.Context, userID int64) ([]*domain.FriendRequest, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.FriendRequest), args.Error(1)
}

func (m *MockFriendRepo) AddFriendship(ctx context.Context, userID, friendID int64) error {
	args := m.Called(ctx, userID, friendID)
	return args.Error(0)
}

func (m *MockFriendRepo) AreFriends(ctx context.Context, userID, friendID int64) (bool, error) {
	args := m.Called(ctx, userID, friendID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFriendRepo) ListFriends(ctx context.Context, userID int64) ([]*domain.Friend, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Friend), args.Error(1)
}

func (m *MockFriendRepo) ListRelatedIDs(ctx context.Context, userID int64) ([]int64, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

type MockMessageRepo struct {
	mock.Mock
}

func (m *MockMessageRepo) Create(ctx context.Context, msg *domain.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *MockMessageRepo) ListConversation(ctx context.Context, userID, otherID int64) ([]*domain.Message, error) {
	args := m.Called(ctx, userID, otherID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Message), args.Error(1)
}

func (m *MockMessageRepo) ListContacts(ctx context.Context, userID int64) ([]*domain.Contact, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Contact), args.Error(1)
}

type MockDelivery struct {
	mock.Mock
}

func (m *MockDelivery) Submit(ctx context.Context, in ws.Intent) (*domain.Message, bool, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*domain.Message), args.Bool(1), args.Error(2)
}

func (m *MockDelivery) Notify(userID int64, event any) bool {
	args := m.Called(userID, event)
	return args.Bool(0)
}

// fakeMailer records sent mail and optionally fails.
type fakeMailer struct {
	sent []string
	fail bool
}

func (f *fakeMailer) Send(ctx context.Context, to, subject, body string) error {
	if f.fail {
		return errors.New("smtp unreachable")
	}
	f.sent = append(f.sent, to)
	return nil
}

// fakeRoomProvider returns a fixed room or a configured error.
type fakeRoomProvider struct {
	room *video.Room
	err  error
}

func (f *fakeRoomProvider) CreateRoom(ctx context.Context) (*video.Room, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.room, nil
}

func (f *fakeRoomProvider) AccessToken(identity, roomID string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "grant-" + identity + "-" + roomID, nil
}
