package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"peerprep/internal/domain"
)

type FriendRepo struct {
	db *sql.DB
}

func NewFriendRepo(db *sql.DB) *FriendRepo {
	return &FriendRepo{db: db}
}

var _ domain.FriendRepository = (*FriendRepo)(nil)

func (r *FriendRepo) AddRequest(ctx context.Context, userID, peerID int64, direction string) error {
	query := `
		INSERT INTO friend_requests (user_id, peer_id, direction, created_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
	`
	if _, err := r.db.ExecContext(ctx, query, userID, peerID, direction); err != nil {
		return fmt.Errorf("insert friend request: %w", err)
	}
	return nil
}

func (r *FriendRepo) HasSentRequest(ctx context.Context, userID, peerID int64) (bool, error) {
	query := `
		SELECT COUNT(*) FROM friend_requests
		WHERE user_id = ? AND peer_id = ? AND direction = ?
	`
	var count int
	if err := r.db.QueryRowContext(ctx, query, userID, peerID, domain.RequestSent).Scan(&count); err != nil {
		return false, fmt.Errorf("count sent requests: %w", err)
	}
	return count > 0, nil
}

func (r *FriendRepo) RemoveRequests(ctx context.Context, userID, peerID int64) error {
	query := `
		DELETE FROM friend_requests
		WHERE (user_id = ? AND peer_id = ?) OR (user_id = ? AND peer_id = ?)
	`
	if _, err := r.db.ExecContext(ctx, query, userID, peerID, peerID, userID); err != nil {
		return fmt.Errorf("remove friend requests: %w", err)
	}
	return nil
}

func (r *FriendRepo) ListRequests(ctx context.Context, userID int64) ([]*domain.FriendRequest, error) {
	query := `
		SELECT fr.user_id, fr.peer_id, u.name, fr.direction, fr.created_at
		FROM friend_requests fr
		JOIN users u ON u.id = fr.peer_id
		WHERE fr.user_id = ?
		ORDER BY fr.created_at ASC
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list friend requests: %w", err)
	}
	defer rows.Close()

	var requests []*domain.FriendRequest
	for rows.Next() {
		fr := &domain.FriendRequest{}
		if err := rows.Scan(&fr.UserID, &fr.PeerID, &fr.PeerName, &fr.Direction, &fr.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan friend request: %w", err)
		}
		requests = append(requests, fr)
	}
	return requests, rows.Err()
}

func (r *FriendRepo) AddFriendship(ctx context.Context, userID, friendID int64) error {
	query := `
		INSERT INTO friends (user_id, friend_id, created_at)
		VALUES (?, ?, CURRENT_TIMESTAMP), (?, ?, CURRENT_TIMESTAMP)
	`
	if _, err := r.db.ExecContext(ctx, query, userID, friendID, friendID, userID); err != nil {
		return fmt.Errorf("insert friendship: %w", err)
	}
	return nil
}

func (r *FriendRepo) AreFriends(ctx context.Context, userID, friendID int64) (bool, error) {
	query := `SELECT COUNT(*) FROM friends WHERE user_id = ? AND friend_id = ?`
	var count int
	if err := r.db.QueryRowContext(ctx, query, userID, friendID).Scan(&count); err != nil {
		return false, fmt.Errorf("count friendship: %w", err)
	}
	return count > 0, nil
}

func (r *FriendRepo) ListFriends(ctx context.Context, userID int64) ([]*domain.Friend, error) {
	query := `
		SELECT u.id, u.name
		FROM friends f
		JOIN users u ON u.id = f.friend_id
		WHERE f.user_id = ?
		ORDER BY u.name ASC
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list friends: %w", err)
	}
	defer rows.Close()

	var friends []*domain.Friend
	for rows.Next() {
		f := &domain.Friend{}
		if err := rows.Scan(&f.ID, &f.Name); err != nil {
			return nil, fmt.Errorf("scan friend: %w", err)
		}
		friends = append(friends, f)
	}
	return friends, rows.Err()
}

func (r *FriendRepo) ListRelatedIDs(ctx context.Context, userID int64) ([]int64, error) {
	query := `
		SELECT friend_id FROM friends WHERE user_id = ?
		UNION
		SELECT peer_id FROM friend_requests WHERE user_id = ?
	`
	rows, err := r.db.QueryContext(ctx, query, userID, userID)
	if err != nil {
		return nil, fmt.Errorf("list related ids: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan related id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
