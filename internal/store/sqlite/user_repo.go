package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"peerprep/internal/domain"
)

type UserRepo struct {
	db *sql.DB
}

func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

var _ domain.UserRepository = (*UserRepo)(nil)

const userColumns = `id, name, email, hashed_password, online, reset_password_token, reset_password_expires, created_at`

func (r *UserRepo) Create(ctx context.Context, u *domain.User) error {
	query := `
		INSERT INTO users (name, email, hashed_password, online, created_at)
		VALUES (?, ?, ?, 0, CURRENT_TIMESTAMP)
	`
	res, err := r.db.ExecContext(ctx, query, u.Name, u.Email, u.HashedPassword)
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("last insert id: %w", err)
	}
	u.ID = id
	return nil
}

func (r *UserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = ?`
	return r.scanUser(ctx, query, id)
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = ?`
	return r.scanUser(ctx, query, email)
}

func (r *UserRepo) GetByResetToken(ctx context.Context, token string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE reset_password_token = ?`
	return r.scanUser(ctx, query, token)
}

func (r *UserRepo) SetOnlineStatus(ctx context.Context, id int64, online bool) error {
	val := 0
	if online {
		val = 1
	}
	query := `UPDATE users SET online = ? WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, query, val, id); err != nil {
		return fmt.Errorf("set online status: %w", err)
	}
	return nil
}

func (r *UserRepo) SetResetToken(ctx context.Context, id int64, token *string, expires *time.Time) error {
	query := `UPDATE users SET reset_password_token = ?, reset_password_expires = ? WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, query, token, expires, id); err != nil {
		return fmt.Errorf("set reset token: %w", err)
	}
	return nil
}

func (r *UserRepo) UpdatePassword(ctx context.Context, id int64, hashedPassword string) error {
	query := `
		UPDATE users
		SET hashed_password = ?, reset_password_token = NULL, reset_password_expires = NULL
		WHERE id = ?
	`
	if _, err := r.db.ExecContext(ctx, query, hashedPassword, id); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}

func (r *UserRepo) ListOnlineExcluding(ctx context.Context, excludeIDs []int64) ([]*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE online = 1`
	args := make([]any, 0, len(excludeIDs))
	if len(excludeIDs) > 0 {
		query += ` AND id NOT IN (?` + strings.Repeat(",?", len(excludeIDs)-1) + `)`
		for _, id := range excludeIDs {
			args = append(args, id)
		}
	}
	query += ` ORDER BY name ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list online users: %w", err)
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		u := &domain.User{}
		if err := rows.Scan(
			&u.ID,
			&u.Name,
			&u.Email,
			&u.HashedPassword,
			&u.Online,
			&u.ResetPasswordToken,
			&u.ResetPasswordExpires,
			&u.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *UserRepo) scanUser(ctx context.Context, query string, arg any) (*domain.User, error) {
	u := &domain.User{}
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.HashedPassword,
		&u.Online,
		&u.ResetPasswordToken,
		&u.ResetPasswordExpires,
		&u.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return u, nil
}
