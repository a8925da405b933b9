package sqlite

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// Open opens a SQLite database with the given DSN.
func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	if _, err := db.Exec(`PRAGMA foreign_keys = ON;`); err != nil {
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	return db, nil
}

// Migrate creates the schema. Statements are idempotent so the server can run
// them on every start.
func Migrate(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id INTEGER PRIMARY KEY,
			name VARCHAR(100) NOT NULL,
			email VARCHAR(100) UNIQUE NOT NULL,
			hashed_password VARCHAR(255) NOT NULL,
			online BOOLEAN DEFAULT FALSE,
			reset_password_token VARCHAR(64) DEFAULT NULL,
			reset_password_expires DATETIME DEFAULT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);`,
		// Friendships are stored as two directed rows written together at
		// accept time, keeping the relationship symmetric.
		`CREATE TABLE IF NOT EXISTS friends (
			user_id INTEGER NOT NULL,
			friend_id INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (user_id, friend_id),
			FOREIGN KEY (user_id) REFERENCES users(id),
			FOREIGN KEY (friend_id) REFERENCES users(id)
		);`,
		// Pending requests are also two-sided: a 'sent' row on the requester
		// and a 'received' row on the target.
		`CREATE TABLE IF NOT EXISTS friend_requests (
			user_id INTEGER NOT NULL,
			peer_id INTEGER NOT NULL,
			direction VARCHAR(10) NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (user_id, peer_id, direction),
			FOREIGN KEY (user_id) REFERENCES users(id),
			FOREIGN KEY (peer_id) REFERENCES users(id)
		);`,
		`CREATE TABLE IF NOT EXISTS messages (
			id INTEGER PRIMARY KEY,
			sender_id INTEGER NOT NULL,
			receiver_id INTEGER NOT NULL,
			body TEXT NOT NULL,
			seen BOOLEAN DEFAULT 0,
			video_call BOOLEAN DEFAULT 0,
			room_id VARCHAR(64) DEFAULT NULL,
			room_name VARCHAR(64) DEFAULT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (sender_id) REFERENCES users(id),
			FOREIGN KEY (receiver_id) REFERENCES users(id)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_users_email ON users(email);`,
		`CREATE INDEX IF NOT EXISTS idx_users_online ON users(online);`,
		`CREATE INDEX IF NOT EXISTS idx_users_reset_token ON users(reset_password_token);`,
		`CREATE INDEX IF NOT EXISTS idx_friends_user ON friends(user_id);`,
		`CREATE INDEX IF NOT EXISTS idx_friend_requests_user ON friend_requests(user_id);`,
		`CREATE INDEX IF NOT EXISTS idx_messages_sender ON messages(sender_id, receiver_id);`,
		`CREATE INDEX IF NOT EXISTS idx_messages_receiver ON messages(receiver_id, sender_id);`,
		`CREATE INDEX IF NOT EXISTS idx_messages_created_at ON messages(created_at);`,
	}

	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	return nil
}
