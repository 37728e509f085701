// internal/database/comment_repository.go
package database

import (
	"context"
	"database/sql"
	"time"

	"fitblog/internal/models"
	"fitblog/internal/utils"
)

// SaveComment inserts a new comment. The parent post is verified inside the
// same transaction so a comment can never attach to a post deleted between
// the caller's check and the insert.
func (s *SQLiteDB) SaveComment(ctx context.Context, comment *models.Comment) error {
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now().UTC()
	}

	tx, err := s.DB.BeginTxx(ctx, nil)
	if err != nil {
		return utils.NewAppError(utils.ErrDatabase, "failed to begin transaction for save comment", err)
	}
	defer tx.Rollback()

	var exists int
	err = tx.GetContext(ctx, &exists, `SELECT 1 FROM posts WHERE id = ?`, comment.PostID)
	if err != nil {
		if err == sql.ErrNoRows {
			return utils.NewPostNotFoundError(comment.PostID)
		}
		return utils.NewAppError(utils.ErrDatabase, "failed to check parent post", err)
	}

	res, err := tx.ExecContext(ctx, `
		INSERT INTO comments (post_id, username, content, timestamp)
		VALUES (?, ?, ?, ?)`,
		comment.PostID,
		comment.AuthorUsername,
		comment.Content,
		comment.CreatedAt,
	)
	if err != nil {
		return wrapDBError("failed to save comment", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return utils.NewAppError(utils.ErrDatabase, "failed to read new comment id", err)
	}

	if err := tx.Commit(); err != nil {
		return utils.NewAppError(utils.ErrDatabase, "failed to commit comment", err)
	}
	comment.ID = id
	return nil
}

// GetPostComments fetches all comments for a post, newest first.
func (s *SQLiteDB) GetPostComments(ctx context.Context, postID int64) ([]*models.Comment, error) {
	comments := []*models.Comment{}
	err := s.DB.SelectContext(ctx, &comments, `
		SELECT id, post_id, username, content, timestamp
		FROM comments
		WHERE post_id = ?
		ORDER BY timestamp DESC, id DESC`, postID)
	if err != nil {
		return nil, wrapDBError("failed to query post comments", err)
	}
	return comments, nil
}
