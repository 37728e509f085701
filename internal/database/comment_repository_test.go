package database

import (
	"context"
	"testing"
	"time"

	"fitblog/internal/models"
	"fitblog/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveCommentRequiresExistingPost(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	newTestUser(t, db, "alice")

	comment := &models.Comment{
		PostID:         424242,
		AuthorUsername: "alice",
		Content:        "into the void",
		CreatedAt:      time.Now().UTC(),
	}
	err := db.SaveComment(ctx, comment)
	assert.True(t, utils.IsErrorCode(err, utils.ErrNotFound))
}

func TestGetPostCommentsNewestFirst(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	newTestUser(t, db, "alice")
	post := newTestPost(t, db, "alice", "Discussion")

	base := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	for i, text := range []string{"first", "second", "third"} {
		comment := &models.Comment{
			PostID:         post.ID,
			AuthorUsername: "alice",
			Content:        text,
			CreatedAt:      base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, db.SaveComment(ctx, comment))
		require.NotZero(t, comment.ID)
	}

	comments, err := db.GetPostComments(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, comments, 3)
	assert.Equal(t, "third", comments[0].Content)
	assert.Equal(t, "first", comments[2].Content)
}
