package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"peerprep/internal/domain"
	"peerprep/internal/security"
	"peerprep/internal/service"
)

func newAuthService(users *MockUserRepo, mailer *fakeMailer) *service.AuthService {
	tokenSvc := security.NewTokenService("secret", time.Hour)
	hasher := security.NewPasswordHasher(4) // low cost for tests
	return service.NewAuthService(users, tokenSvc, hasher, mailer, "http://localhost:3000/")
}

func TestRegister(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		svc := newAuthService(mockRepo, &fakeMailer{})

		mockRepo.On("GetByEmail", mock.Anything, "new@example.com").Return(nil, nil)
		mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
			return u.Name == "newuser" && u.Email == "new@example.com" && u.HashedPassword != "Password1!"
		})).Return(nil)

		user, err := svc.Register(context.Background(), service.RegisterInput{
			Name:     "newuser",
			Email:    "new@example.com",
			Password: "Password1!",
		})
		assert.NoError(t, err)
		assert.NotNil(t, user)
		assert.Equal(t, "newuser", user.Name)
	})

	t.Run("EmailTaken", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		svc := newAuthService(mockRepo, &fakeMailer{})

		existing := &domain.User{Email: "taken@example.com"}
		mockRepo.On("GetByEmail", mock.Anything, "taken@example.com").Return(existing, nil)

		user, err := svc.Register(context.Background(), service.RegisterInput{
			Name:     "someone",
			Email:    "taken@example.com",
			Password: "Password1!",
		})
		assert.ErrorIs(t, err, domain.ErrConflict)
		assert.Nil(t, user)
	})

	t.Run("MissingFields", func(t *testing.T) {
		svc := newAuthService(new(MockUserRepo), &fakeMailer{})

		_, err := svc.Register(context.Background(), service.RegisterInput{Email: "x@example.com"})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestLogin(t *testing.T) {
	hasher := security.NewPasswordHasher(4)
	hashed, _ := hasher.Hash("Password1!")
	user := &domain.User{ID: 5, Name: "u", Email: "u@example.com", HashedPassword: hashed}

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		svc := newAuthService(mockRepo, &fakeMailer{})

		mockRepo.On("GetByEmail", mock.Anything, "u@example.com").Return(user, nil)

		resp, err := svc.Login(context.Background(), service.LoginInput{
			Email:    "u@example.com",
			Password: "Password1!",
		})
		assert.NoError(t, err)
		assert.NotEmpty(t, resp.AccessToken)
		assert.Equal(t, "bearer", resp.TokenType)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		svc := newAuthService(mockRepo, &fakeMailer{})

		mockRepo.On("GetByEmail", mock.Anything, "u@example.com").Return(user, nil)

		_, err := svc.Login(context.Background(), service.LoginInput{
			Email:    "u@example.com",
			Password: "nope",
		})
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("UnknownEmail", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		svc := newAuthService(mockRepo, &fakeMailer{})

		mockRepo.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, nil)

		_, err := svc.Login(context.Background(), service.LoginInput{
			Email:    "ghost@example.com",
			Password: "Password1!",
		})
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})
}

func TestRequestPasswordReset(t *testing.T) {
	user := &domain.User{ID: 5, Email: "u@example.com"}

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		mailer := &fakeMailer{}
		svc := newAuthService(mockRepo, mailer)

		mockRepo.On("GetByEmail", mock.Anything, "u@example.com").Return(user, nil)
		mockRepo.On("SetResetToken", mock.Anything, int64(5), mock.Anything, mock.Anything).Return(nil)

		token, err := svc.RequestPasswordReset(context.Background(), "u@example.com")
		assert.NoError(t, err)
		assert.Len(t, token, 64) // 32 random bytes, hex encoded
		assert.Equal(t, []string{"u@example.com"}, mailer.sent)
	})

	t.Run("MailerDown", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		svc := newAuthService(mockRepo, &fakeMailer{fail: true})

		mockRepo.On("GetByEmail", mock.Anything, "u@example.com").Return(user, nil)
		mockRepo.On("SetResetToken", mock.Anything, int64(5), mock.Anything, mock.Anything).Return(nil)

		_, err := svc.RequestPasswordReset(context.Background(), "u@example.com")
		assert.ErrorIs(t, err, domain.ErrDependency)
	})

	t.Run("UnknownEmail", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		svc := newAuthService(mockRepo, &fakeMailer{})

		mockRepo.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, nil)

		_, err := svc.RequestPasswordReset(context.Background(), "ghost@example.com")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestResetPassword(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		svc := newAuthService(mockRepo, &fakeMailer{})

		expires := time.Now().Add(30 * time.Minute)
		token := "sometoken"
		user := &domain.User{ID: 5, ResetPasswordToken: &token, ResetPasswordExpires: &expires}

		mockRepo.On("GetByResetToken", mock.Anything, "sometoken").Return(user, nil)
		mockRepo.On("UpdatePassword", mock.Anything, int64(5), mock.AnythingOfType("string")).Return(nil)

		err := svc.ResetPassword(context.Background(), "sometoken", "NewPassword1!")
		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Expired", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		svc := newAuthService(mockRepo, &fakeMailer{})

		expires := time.Now().Add(-time.Minute)
		token := "oldtoken"
		user := &domain.User{ID: 5, ResetPasswordToken: &token, ResetPasswordExpires: &expires}

		mockRepo.On("GetByResetToken", mock.Anything, "oldtoken").Return(user, nil)

		err := svc.ResetPassword(context.Background(), "oldtoken", "NewPassword1!")
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
		mockRepo.AssertNotCalled(t, "UpdatePassword", mock.Anything, mock.Anything, mock.Anything)
	})
}
