package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"peerprep/internal/domain"
)

type MessageRepo struct {
	db *sql.DB
}

func NewMessageRepo(db *sql.DB) *MessageRepo {
	return &MessageRepo{db: db}
}

var _ domain.MessageRepository = (*MessageRepo)(nil)

func (r *MessageRepo) Create(ctx context.Context, m *domain.Message) error {
	query := `
		INSERT INTO messages (sender_id, receiver_id, body, seen, video_call, room_id, room_name, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
	`
	res, err := r.db.ExecContext(ctx, query,
		m.SenderID,
		m.ReceiverID,
		m.Body,
		m.Seen,
		m.VideoCall,
		m.RoomID,
		m.RoomName,
	)
	if err != nil {
		return fmt.Errorf("insert message: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("last insert id: %w", err)
	}
	m.ID = id
	return nil
}

func (r *MessageRepo) ListConversation(ctx context.Context, userID, otherID int64) ([]*domain.Message, error) {
	// created_at has second granularity, so id breaks ties to keep
	// per-connection submission order.
	query := `
		SELECT id, sender_id, receiver_id, body, seen, video_call, room_id, room_name, created_at
		FROM messages
		WHERE (sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)
		ORDER BY created_at ASC, id ASC
	`
	rows, err := r.db.QueryContext(ctx, query, userID, otherID, otherID, userID)
	if err != nil {
		return nil, fmt.Errorf("list conversation: %w", err)
	}
	defer rows.Close()

	var msgs []*domain.Message
	for rows.Next() {
		m := &domain.Message{}
		if err := rows.Scan(
			&m.ID,
			&m.SenderID,
			&m.ReceiverID,
			&m.Body,
			&m.Seen,
			&m.VideoCall,
			&m.RoomID,
			&m.RoomName,
			&m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}

func (r *MessageRepo) ListContacts(ctx context.Context, userID int64) ([]*domain.Contact, error) {
	query := `
		SELECT u.id, u.name, u.online
		FROM users u
		WHERE u.id IN (
			SELECT CASE WHEN sender_id = ? THEN receiver_id ELSE sender_id END
			FROM messages
			WHERE sender_id = ? OR receiver_id = ?
		)
		ORDER BY u.name ASC
	`
	rows, err := r.db.QueryContext(ctx, query, userID, userID, userID)
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	defer rows.Close()

	var contacts []*domain.Contact
	for rows.Next() {
		c := &domain.Contact{}
		if err := rows.Scan(&c.ID, &c.Name, &c.Online); err != nil {
			return nil, fmt.Errorf("scan contact: %w", err)
		}
		contacts = append(contacts, c)
	}
	return contacts, rows.Err()
}
