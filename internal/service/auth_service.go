package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log"
	"time"

	"peerprep/internal/domain"
	"peerprep/internal/mail"
	"peerprep/internal/security"
)

const resetTokenTTL = time.Hour

// AuthService handles registration, login, and the password-reset flow.
type AuthService struct {
	users       domain.UserRepository
	tokens      *security.TokenService
	hash        *security.PasswordHasher
	mailer      mail.Sender
	frontendURL string
}

func NewAuthService(
	users domain.UserRepository,
	tokens *security.TokenService,
	hash *security.PasswordHasher,
	mailer mail.Sender,
	frontendURL string,
) *AuthService {
	return &AuthService{
		users:       users,
		tokens:      tokens,
		hash:        hash,
		mailer:      mailer,
		frontendURL: frontendURL,
	}
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

type LoginInput struct {
	Email    string
	Password string
}

type TokenResponse struct {
	AccessToken string
	TokenType   string
	User        *domain.User
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	if in.Name == "" || in.Email == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}

	if existing, err := s.users.GetByEmail(ctx, in.Email); err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	} else if existing != nil {
		return nil, domain.ErrConflict
	}

	hashed, err := s.hash.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Name:           in.Name,
		Email:          in.Email,
		HashedPassword: hashed,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AuthService) Login(ctx context.Context, in LoginInput) (*TokenResponse, error) {
	if in.Email == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}

	user, err := s.users.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := s.hash.Verify(in.Password, user.HashedPassword); err != nil {
		return nil, domain.ErrUnauthorized
	}

	token, err := s.tokens.CreateForUser(user.ID)
	if err != nil {
		return nil, fmt.Errorf("create token: %w", err)
	}

	return &TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User:        user,
	}, nil
}

// RequestPasswordReset stores a fresh reset token on the account and emails
// the reset link. Returns the token so the caller can echo it in the
// response.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	if email == "" {
		return "", domain.ErrInvalidInput
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return "", fmt.Errorf("get user: %w", err)
	}
	if user == nil {
		return "", domain.ErrNotFound
	}

	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("generate reset token: %w", err)
	}
	token := hex.EncodeToString(raw)
	expires := time.Now().Add(resetTokenTTL)

	if err := s.users.SetResetToken(ctx, user.ID, &token, &expires); err != nil {
		return "", fmt.Errorf("store reset token: %w", err)
	}

	resetURL := fmt.Sprintf("%sreset-password?token=%s", s.frontendURL, token)
	body := fmt.Sprintf(
		"You are receiving this email because you (or someone else) have requested the reset of a password. Please make a put request to: \n\n %s",
		resetURL,
	)
	if err := s.mailer.Send(ctx, user.Email, "Password Reset Request", body); err != nil {
		log.Printf("auth: reset mail to %s failed: %v", user.Email, err)
		return "", fmt.Errorf("send reset mail: %w", domain.ErrDependency)
	}

	return token, nil
}

func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if token == "" || newPassword == "" {
		return domain.ErrInvalidInput
	}

	user, err := s.users.GetByResetToken(ctx, token)
	if err != nil {
		return fmt.Errorf("get user by token: %w", err)
	}
	if user == nil || user.ResetPasswordExpires == nil || user.ResetPasswordExpires.Before(time.Now()) {
		return domain.ErrUnauthorized
	}

	hashed, err := s.hash.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.users.UpdatePassword(ctx, user.ID, hashed); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}
