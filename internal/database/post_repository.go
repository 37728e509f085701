// internal/database/post_repository.go
package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"fitblog/internal/models"
	"fitblog/internal/utils"
)

// likeToggleAttempts bounds the compare-and-swap retry loop in ToggleLike.
const likeToggleAttempts = 5

// postRow mirrors the posts table, with the liker set still serialized.
type postRow struct {
	ID        int64          `db:"id"`
	Title     string         `db:"title"`
	Content   string         `db:"content"`
	Username  string         `db:"username"`
	Timestamp time.Time      `db:"timestamp"`
	Likes     int            `db:"likes"`
	LikedBy   string         `db:"liked_by"`
	Image     sql.NullString `db:"image"`
}

func (r *postRow) toModel() *models.Post {
	return &models.Post{
		ID:             r.ID,
		Title:          r.Title,
		Content:        r.Content,
		AuthorUsername: r.Username,
		CreatedAt:      r.Timestamp,
		Likes:          r.Likes,
		LikedBy:        decodeLikerSet(r.LikedBy),
		ImageRef:       r.Image.String,
	}
}

// decodeLikerSet deserializes the stored liker-id set. Malformed or missing
// data decodes as an empty set; the like counter stays authoritative for
// display, so a corrupt set must not fail the read.
func decodeLikerSet(raw string) []int64 {
	if raw == "" {
		return []int64{}
	}
	var ids []int64
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		return []int64{}
	}
	return ids
}

func encodeLikerSet(ids []int64) string {
	if ids == nil {
		ids = []int64{}
	}
	b, _ := json.Marshal(ids)
	return string(b)
}

// SavePost inserts a new post and fills in the generated ID. Likes always
// start at zero with an empty liker set regardless of what the caller put in
// the model.
func (s *SQLiteDB) SavePost(ctx context.Context, post *models.Post) error {
	if post.CreatedAt.IsZero() {
		post.CreatedAt = time.Now().UTC()
	}
	post.Likes = 0
	post.LikedBy = []int64{}

	res, err := s.DB.ExecContext(ctx, `
		INSERT INTO posts (title, content, username, timestamp, likes, liked_by, image)
		VALUES (?, ?, ?, ?, 0, '[]', ?)`,
		post.Title,
		post.Content,
		post.AuthorUsername,
		post.CreatedAt,
		nullable(post.ImageRef),
	)
	if err != nil {
		return wrapDBError("failed to save post", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return utils.NewAppError(utils.ErrDatabase, "failed to read new post id", err)
	}
	post.ID = id
	return nil
}

// GetPost fetches a single post by its ID.
func (s *SQLiteDB) GetPost(ctx context.Context, id int64) (*models.Post, error) {
	var row postRow
	err := s.DB.GetContext(ctx, &row,
		`SELECT id, title, content, username, timestamp, likes, liked_by, image FROM posts WHERE id = ?`, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, utils.NewPostNotFoundError(id)
		}
		return nil, wrapDBError("failed to query post by id", err)
	}
	return row.toModel(), nil
}

// GetPosts fetches all posts in the requested order.
func (s *SQLiteDB) GetPosts(ctx context.Context, order models.PostOrder) ([]*models.Post, error) {
	var query string
	switch order {
	case models.OrderMostLiked:
		query = `SELECT id, title, content, username, timestamp, likes, liked_by, image FROM posts ORDER BY likes DESC, timestamp DESC`
	case models.OrderOldest:
		query = `SELECT id, title, content, username, timestamp, likes, liked_by, image FROM posts ORDER BY timestamp ASC`
	default:
		query = `SELECT id, title, content, username, timestamp, likes, liked_by, image FROM posts ORDER BY timestamp DESC`
	}

	rows := []postRow{}
	if err := s.DB.SelectContext(ctx, &rows, query); err != nil {
		return nil, wrapDBError("failed to query posts", err)
	}

	posts := make([]*models.Post, len(rows))
	for i := range rows {
		posts[i] = rows[i].toModel()
	}
	return posts, nil
}

// ToggleLike records a like by userID on postID. The counter and the liker
// set move together in one UPDATE guarded by a compare-and-swap on the
// serialized set, so two concurrent likes on the same row cannot lose an
// update: the loser's predicate no longer matches and it retries against the
// fresh row. A like from a user already in the set fails with ALREADY_LIKED;
// there is no unlike path.
func (s *SQLiteDB) ToggleLike(ctx context.Context, postID, userID int64) (*models.Post, error) {
	for attempt := 0; attempt < likeToggleAttempts; attempt++ {
		var row postRow
		err := s.DB.GetContext(ctx, &row,
			`SELECT id, title, content, username, timestamp, likes, liked_by, image FROM posts WHERE id = ?`, postID)
		if err != nil {
			if err == sql.ErrNoRows {
				return nil, utils.NewPostNotFoundError(postID)
			}
			return nil, wrapDBError("failed to query post for like", err)
		}

		likers := decodeLikerSet(row.LikedBy)
		for _, id := range likers {
			if id == userID {
				return nil, utils.NewAlreadyLikedError(postID)
			}
		}

		newSet := encodeLikerSet(append(likers, userID))
		res, err := s.DB.ExecContext(ctx,
			`UPDATE posts SET likes = likes + 1, liked_by = ? WHERE id = ? AND liked_by = ?`,
			newSet, postID, row.LikedBy)
		if err != nil {
			return nil, wrapDBError("failed to update post likes", err)
		}

		rowsAffected, err := res.RowsAffected()
		if err != nil {
			return nil, utils.NewAppError(utils.ErrDatabase, "failed to get rows affected after like", err)
		}
		if rowsAffected == 1 {
			return s.GetPost(ctx, postID)
		}
		// Concurrent writer changed the set (or the post vanished); retry.
	}
	return nil, utils.NewAppError(utils.ErrDatabase, "like update contention not resolved", nil)
}

// DeletePost removes a post and cascades to its comments in one transaction.
// Ownership is the caller's concern; the store only guarantees the delete is
// never a silent no-op.
func (s *SQLiteDB) DeletePost(ctx context.Context, postID int64) error {
	tx, err := s.DB.BeginTxx(ctx, nil)
	if err != nil {
		return utils.NewAppError(utils.ErrDatabase, "failed to begin transaction for delete post", err)
	}
	defer tx.Rollback() // Rollback is ignored if tx is committed.

	if _, err := tx.ExecContext(ctx, `DELETE FROM comments WHERE post_id = ?`, postID); err != nil {
		return utils.NewAppError(utils.ErrDatabase, "failed to delete post comments", err)
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM posts WHERE id = ?`, postID)
	if err != nil {
		return utils.NewAppError(utils.ErrDatabase, "failed to delete post", err)
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return utils.NewPostNotFoundError(postID)
	}

	if err := tx.Commit(); err != nil {
		return utils.NewAppError(utils.ErrDatabase, "failed to commit post deletion", err)
	}
	return nil
}
