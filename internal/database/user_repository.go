// internal/database/user_repository.go
package database

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"fitblog/internal/models"
	"fitblog/internal/utils"
)

// userRow mirrors the users table. hashed_google_id and avatar_url are
// nullable in the schema; the model uses empty strings for both.
type userRow struct {
	ID             int64          `db:"id"`
	Username       string         `db:"username"`
	HashedGoogleID sql.NullString `db:"hashed_google_id"`
	AvatarURL      sql.NullString `db:"avatar_url"`
	MemberSince    time.Time      `db:"member_since"`
}

func (r *userRow) toModel() *models.User {
	return &models.User{
		ID:               r.ID,
		Username:         r.Username,
		HashedExternalID: r.HashedGoogleID.String,
		AvatarRef:        r.AvatarURL.String,
		MemberSince:      r.MemberSince,
	}
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// wrapDBError converts a driver error into the application taxonomy. Unique
// constraint violations become DUPLICATE; everything else is a storage error.
func wrapDBError(message string, err error) *utils.AppError {
	if strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return utils.NewAppError(utils.ErrDuplicate, message, err)
	}
	return utils.NewAppError(utils.ErrDatabase, message, err)
}

// SaveUser inserts a new user and fills in the generated ID. Usernames are
// unique at the store level; a collision surfaces as DUPLICATE.
func (s *SQLiteDB) SaveUser(ctx context.Context, user *models.User) error {
	if user.MemberSince.IsZero() {
		user.MemberSince = time.Now().UTC()
	}

	res, err := s.DB.ExecContext(ctx, `
		INSERT INTO users (username, hashed_google_id, avatar_url, member_since)
		VALUES (?, ?, ?, ?)`,
		user.Username,
		nullable(user.HashedExternalID),
		nullable(user.AvatarRef),
		user.MemberSince,
	)
	if err != nil {
		return wrapDBError("failed to save user", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return utils.NewAppError(utils.ErrDatabase, "failed to read new user id", err)
	}
	user.ID = id
	return nil
}

// GetUserByID fetches a user by primary key (session fast-path).
func (s *SQLiteDB) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	var row userRow
	err := s.DB.GetContext(ctx, &row,
		`SELECT id, username, hashed_google_id, avatar_url, member_since FROM users WHERE id = ?`, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, utils.NewAppError(utils.ErrNotFound, "user not found", err)
		}
		return nil, wrapDBError("failed to query user by id", err)
	}
	return row.toModel(), nil
}

// GetUserByUsername fetches a user by their unique username (registration check, login).
func (s *SQLiteDB) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var row userRow
	err := s.DB.GetContext(ctx, &row,
		`SELECT id, username, hashed_google_id, avatar_url, member_since FROM users WHERE username = ?`, username)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, utils.NewAppError(utils.ErrNotFound, "user not found", err)
		}
		return nil, wrapDBError("failed to query user by username", err)
	}
	return row.toModel(), nil
}

// GetUserByHashedExternalID fetches a user by the one-way hash of their
// OAuth subject id (external login fast-path).
func (s *SQLiteDB) GetUserByHashedExternalID(ctx context.Context, hashedID string) (*models.User, error) {
	var row userRow
	err := s.DB.GetContext(ctx, &row,
		`SELECT id, username, hashed_google_id, avatar_url, member_since FROM users WHERE hashed_google_id = ?`, hashedID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, utils.NewAppError(utils.ErrNotFound, "user not found", err)
		}
		return nil, wrapDBError("failed to query user by hashed external id", err)
	}
	return row.toModel(), nil
}

// UpdateUserAvatar sets the avatar reference for a user.
func (s *SQLiteDB) UpdateUserAvatar(ctx context.Context, id int64, avatarRef string) error {
	res, err := s.DB.ExecContext(ctx,
		`UPDATE users SET avatar_url = ? WHERE id = ?`, nullable(avatarRef), id)
	if err != nil {
		return wrapDBError("failed to update user avatar", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return utils.NewAppError(utils.ErrDatabase, "failed to get rows affected after update", err)
	}
	if rows == 0 {
		return utils.NewAppError(utils.ErrNotFound, "user not found for avatar update", nil)
	}
	return nil
}
