package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"peerprep/internal/domain"
	"peerprep/internal/service"
)

func TestFriendRequest(t *testing.T) {
	target := &domain.User{ID: 2, Name: "bob"}

	t.Run("Success", func(t *testing.T) {
		users := new(MockUserRepo)
		friends := new(MockFriendRepo)
		svc := service.NewFriendService(users, friends)

		users.On("GetByID", mock.Anything, int64(2)).Return(target, nil)
		friends.On("HasSentRequest", mock.Anything, int64(1), int64(2)).Return(false, nil)
		friends.On("AddRequest", mock.Anything, int64(1), int64(2), domain.RequestSent).Return(nil).Once()
		friends.On("AddRequest", mock.Anything, int64(2), int64(1), domain.RequestReceived).Return(nil).Once()

		err := svc.Request(context.Background(), 1, 2)
		assert.NoError(t, err)
		friends.AssertExpectations(t)
	})

	t.Run("DuplicateConflict", func(t *testing.T) {
		users := new(MockUserRepo)
		friends := new(MockFriendRepo)
		svc := service.NewFriendService(users, friends)

		users.On("GetByID", mock.Anything, int64(2)).Return(target, nil)
		friends.On("HasSentRequest", mock.Anything, int64(1), int64(2)).Return(true, nil)

		err := svc.Request(context.Background(), 1, 2)
		assert.ErrorIs(t, err, domain.ErrConflict)
		friends.AssertNotCalled(t, "AddRequest", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("TargetMissing", func(t *testing.T) {
		users := new(MockUserRepo)
		friends := new(MockFriendRepo)
		svc := service.NewFriendService(users, friends)

		users.On("GetByID", mock.Anything, int64(9)).Return(nil, nil)

		err := svc.Request(context.Background(), 1, 9)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("SelfRequest", func(t *testing.T) {
		svc := service.NewFriendService(new(MockUserRepo), new(MockFriendRepo))

		err := svc.Request(context.Background(), 1, 1)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestFriendAccept(t *testing.T) {
	friend := &domain.User{ID: 1, Name: "alice"}

	t.Run("Affirmative", func(t *testing.T) {
		users := new(MockUserRepo)
		friends := new(MockFriendRepo)
		svc := service.NewFriendService(users, friends)

		users.On("GetByID", mock.Anything, int64(1)).Return(friend, nil)
		friends.On("AreFriends", mock.Anything, int64(2), int64(1)).Return(false, nil)
		friends.On("AddFriendship", mock.Anything, int64(2), int64(1)).Return(nil).Once()
		friends.On("RemoveRequests", mock.Anything, int64(2), int64(1)).Return(nil).Once()

		err := svc.Accept(context.Background(), 2, 1, "yes")
		assert.NoError(t, err)
		friends.AssertExpectations(t)
	})

	t.Run("Decline", func(t *testing.T) {
		users := new(MockUserRepo)
		friends := new(MockFriendRepo)
		svc := service.NewFriendService(users, friends)

		users.On("GetByID", mock.Anything, int64(1)).Return(friend, nil)
		friends.On("RemoveRequests", mock.Anything, int64(2), int64(1)).Return(nil).Once()

		err := svc.Accept(context.Background(), 2, 1, "no")
		assert.NoError(t, err)
		friends.AssertNotCalled(t, "AddFriendship", mock.Anything, mock.Anything, mock.Anything)
		friends.AssertExpectations(t)
	})

	t.Run("AlreadyFriends", func(t *testing.T) {
		users := new(MockUserRepo)
		friends := new(MockFriendRepo)
		svc := service.NewFriendService(users, friends)

		users.On("GetByID", mock.Anything, int64(1)).Return(friend, nil)
		friends.On("AreFriends", mock.Anything, int64(2), int64(1)).Return(true, nil)
		friends.On("RemoveRequests", mock.Anything, int64(2), int64(1)).Return(nil).Once()

		err := svc.Accept(context.Background(), 2, 1, "yes")
		assert.ErrorIs(t, err, domain.ErrConflict)
		friends.AssertNotCalled(t, "AddFriendship", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestListOnlineExcludesRelated(t *testing.T) {
	users := new(MockUserRepo)
	friends := new(MockFriendRepo)
	svc := service.NewFriendService(users, friends)

	online := []*domain.User{{ID: 4, Name: "dave", Online: true}}

	friends.On("ListRelatedIDs", mock.Anything, int64(1)).Return([]int64{2, 3}, nil)
	// Friends, pending peers in either direction, and self are all excluded.
	users.On("ListOnlineExcluding", mock.Anything, []int64{2, 3, 1}).Return(online, nil)

	got, err := svc.ListOnline(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, online, got)
	users.AssertExpectations(t)
}
