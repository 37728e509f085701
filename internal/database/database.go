// internal/database/database.go
package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"fitblog/internal/models"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

// Store defines the persistence contract for the application. Every call is
// one self-contained logical operation against the single-file database.
type Store interface {
	// Connection
	Close() error

	// User methods
	SaveUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByHashedExternalID(ctx context.Context, hashedID string) (*models.User, error)
	UpdateUserAvatar(ctx context.Context, id int64, avatarRef string) error
	CountUsers(ctx context.Context) (int, error)

	// Post methods
	SavePost(ctx context.Context, post *models.Post) error
	GetPost(ctx context.Context, id int64) (*models.Post, error)
	GetPosts(ctx context.Context, order models.PostOrder) ([]*models.Post, error)
	ToggleLike(ctx context.Context, postID, userID int64) (*models.Post, error)
	DeletePost(ctx context.Context, postID int64) error
	CountPosts(ctx context.Context) (int, error)

	// Comment methods
	SaveComment(ctx context.Context, comment *models.Comment) error
	GetPostComments(ctx context.Context, postID int64) ([]*models.Comment, error)
}

// SQLiteDB represents a connection to the single-file SQLite database.
type SQLiteDB struct {
	DB *sqlx.DB
}

var _ Store = (*SQLiteDB)(nil)

// NewSQLiteDB opens (creating if needed) the database file and prepares the
// schema. Foreign keys are enabled per connection; the busy timeout lets
// concurrent writers queue instead of failing immediately.
func NewSQLiteDB(path string) (*SQLiteDB, error) {
	dsn := fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000", path)
	db, err := sqlx.Connect("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to SQLite: %v", err)
	}

	// SQLite allows a single writer; a small pool is enough for reads.
	db.SetMaxOpenConns(8)
	db.SetMaxIdleConns(4)
	db.SetConnMaxLifetime(5 * time.Minute)

	s := &SQLiteDB{DB: db}
	if err := s.InitializeTables(context.Background()); err != nil {
		db.Close()
		return nil, err
	}

	log.Printf("Connected to the SQLite database at %s", path)
	return s, nil
}

// Close closes the database connection
func (s *SQLiteDB) Close() error {
	log.Println("Closing SQLite connection...")
	return s.DB.Close()
}

// InitializeTables creates all necessary tables if they don't exist
func (s *SQLiteDB) InitializeTables(ctx context.Context) error {
	_, err := s.DB.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS users (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			username TEXT NOT NULL UNIQUE,
			hashed_google_id TEXT,
			avatar_url TEXT,
			member_since DATETIME NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create users table: %v", err)
	}

	_, err = s.DB.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS posts (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title TEXT NOT NULL,
			content TEXT NOT NULL,
			username TEXT NOT NULL,
			timestamp DATETIME NOT NULL,
			likes INTEGER NOT NULL DEFAULT 0,
			liked_by TEXT NOT NULL DEFAULT '[]',
			image TEXT
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create posts table: %v", err)
	}

	_, err = s.DB.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS comments (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			post_id INTEGER NOT NULL REFERENCES posts(id) ON DELETE CASCADE,
			username TEXT NOT NULL,
			content TEXT NOT NULL,
			timestamp DATETIME NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create comments table: %v", err)
	}

	_, err = s.DB.ExecContext(ctx, `
		CREATE INDEX IF NOT EXISTS idx_comments_post_id ON comments(post_id)
	`)
	if err != nil {
		return fmt.Errorf("failed to create comments index: %v", err)
	}

	return nil
}

// CountUsers returns the number of registered users.
func (s *SQLiteDB) CountUsers(ctx context.Context) (int, error) {
	var n int
	if err := s.DB.GetContext(ctx, &n, `SELECT COUNT(*) FROM users`); err != nil {
		return 0, wrapDBError("failed to count users", err)
	}
	return n, nil
}

// CountPosts returns the number of stored posts.
func (s *SQLiteDB) CountPosts(ctx context.Context) (int, error) {
	var n int
	if err := s.DB.GetContext(ctx, &n, `SELECT COUNT(*) FROM posts`); err != nil {
		return 0, wrapDBError("failed to count posts", err)
	}
	return n, nil
}
