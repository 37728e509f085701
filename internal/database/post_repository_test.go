package database

import (
	"context"
	"sync"
	"testing"
	"time"

	"fitblog/internal/models"
	"fitblog/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSavePostResetsLikeState(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	newTestUser(t, db, "author")
	post := &models.Post{
		Title:          "Fresh",
		Content:        "body",
		AuthorUsername: "author",
		Likes:          42,
		LikedBy:        []int64{7, 8, 9},
	}
	require.NoError(t, db.SavePost(ctx, post))

	stored, err := db.GetPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stored.Likes)
	assert.Empty(t, stored.LikedBy)
}

func TestGetPostNotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := db.GetPost(context.Background(), 9999)
	assert.True(t, utils.IsErrorCode(err, utils.ErrNotFound))
}

func TestToggleLikeKeepsCounterAndSetInStep(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	alice := newTestUser(t, db, "alice")
	bob := newTestUser(t, db, "bob")
	post := newTestPost(t, db, "alice", "Hi")

	liked, err := db.ToggleLike(ctx, post.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, liked.Likes)
	assert.Equal(t, []int64{bob.ID}, liked.LikedBy)

	liked, err = db.ToggleLike(ctx, post.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, liked.Likes)
	assert.Len(t, liked.LikedBy, liked.Likes)
}

func TestToggleLikeRejectsDuplicate(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	bob := newTestUser(t, db, "bob")
	post := newTestPost(t, db, "bob", "Own post")

	_, err := db.ToggleLike(ctx, post.ID, bob.ID)
	require.NoError(t, err)

	_, err = db.ToggleLike(ctx, post.ID, bob.ID)
	assert.True(t, utils.IsErrorCode(err, utils.ErrAlreadyLiked))

	// The failed attempt must not disturb the stored state.
	stored, err := db.GetPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.Likes)
	assert.Equal(t, []int64{bob.ID}, stored.LikedBy)
}

func TestToggleLikeMissingPost(t *testing.T) {
	db := newTestDB(t)

	bob := newTestUser(t, db, "bob")
	_, err := db.ToggleLike(context.Background(), 12345, bob.ID)
	assert.True(t, utils.IsErrorCode(err, utils.ErrNotFound))
}

func TestToggleLikeConcurrent(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	alice := newTestUser(t, db, "alice")
	bob := newTestUser(t, db, "bob")
	post := newTestPost(t, db, "alice", "Contested")

	var wg sync.WaitGroup
	for _, userID := range []int64{alice.ID, bob.ID} {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			_, err := db.ToggleLike(ctx, post.ID, id)
			assert.NoError(t, err)
		}(userID)
	}
	wg.Wait()

	stored, err := db.GetPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stored.Likes)
	assert.Len(t, stored.LikedBy, 2)
	assert.ElementsMatch(t, []int64{alice.ID, bob.ID}, stored.LikedBy)
}

func TestGetPostsOrdering(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	alice := newTestUser(t, db, "alice")
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	titles := []string{"first", "second", "third"}
	ids := make([]int64, len(titles))
	for i, title := range titles {
		post := &models.Post{
			Title:          title,
			Content:        "body",
			AuthorUsername: "alice",
			CreatedAt:      base.Add(time.Duration(i) * time.Hour),
		}
		require.NoError(t, db.SavePost(ctx, post))
		ids[i] = post.ID
	}

	// Middle post gets a like so mostliked puts it on top.
	_, err := db.ToggleLike(ctx, ids[1], alice.ID)
	require.NoError(t, err)

	newest, err := db.GetPosts(ctx, models.OrderNewest)
	require.NoError(t, err)
	require.Len(t, newest, 3)
	assert.Equal(t, "third", newest[0].Title)
	assert.Equal(t, "first", newest[2].Title)

	oldest, err := db.GetPosts(ctx, models.OrderOldest)
	require.NoError(t, err)
	assert.Equal(t, "first", oldest[0].Title)
	assert.Equal(t, "third", oldest[2].Title)

	mostLiked, err := db.GetPosts(ctx, models.OrderMostLiked)
	require.NoError(t, err)
	assert.Equal(t, "second", mostLiked[0].Title)
	// Ties fall back to newest-first.
	assert.Equal(t, "third", mostLiked[1].Title)
	assert.Equal(t, "first", mostLiked[2].Title)
}

func TestDeletePostCascadesComments(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	newTestUser(t, db, "alice")
	post := newTestPost(t, db, "alice", "Doomed")

	comment := &models.Comment{
		PostID:         post.ID,
		AuthorUsername: "alice",
		Content:        "self reply",
		CreatedAt:      time.Now().UTC(),
	}
	require.NoError(t, db.SaveComment(ctx, comment))

	require.NoError(t, db.DeletePost(ctx, post.ID))

	_, err := db.GetPost(ctx, post.ID)
	assert.True(t, utils.IsErrorCode(err, utils.ErrNotFound))

	comments, err := db.GetPostComments(ctx, post.ID)
	require.NoError(t, err)
	assert.Empty(t, comments)

	// Deleting again reports the missing post.
	err = db.DeletePost(ctx, post.ID)
	assert.True(t, utils.IsErrorCode(err, utils.ErrNotFound))
}

func TestDecodeLikerSetLenient(t *testing.T) {
	assert.Equal(t, []int64{}, decodeLikerSet(""))
	assert.Equal(t, []int64{}, decodeLikerSet("not json"))
	assert.Equal(t, []int64{}, decodeLikerSet(`{"a":1}`))
	assert.Equal(t, []int64{3, 5}, decodeLikerSet(`[3,5]`))
}

func TestMalformedLikerSetReadsAsEmpty(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	newTestUser(t, db, "alice")
	post := newTestPost(t, db, "alice", "Corrupt")

	_, err := db.DB.ExecContext(ctx, `UPDATE posts SET liked_by = 'garbage' WHERE id = ?`, post.ID)
	require.NoError(t, err)

	stored, err := db.GetPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{}, stored.LikedBy)
}
