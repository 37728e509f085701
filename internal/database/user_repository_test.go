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

func TestSaveUserEnforcesUniqueUsername(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	newTestUser(t, db, "alice")

	dup := &models.User{Username: "alice", MemberSince: time.Now().UTC()}
	err := db.SaveUser(ctx, dup)
	assert.True(t, utils.IsErrorCode(err, utils.ErrDuplicate))
}

func TestUserLookups(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	user := &models.User{
		Username:         "alice",
		HashedExternalID: utils.HashExternalID("google-subject-1"),
		AvatarRef:        "/upload/alice.png",
		MemberSince:      time.Date(2025, 1, 15, 9, 0, 0, 0, time.UTC),
	}
	require.NoError(t, db.SaveUser(ctx, user))

	byID, err := db.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", byID.Username)
	assert.Equal(t, "/upload/alice.png", byID.AvatarRef)

	byName, err := db.GetUserByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byName.ID)

	byHash, err := db.GetUserByHashedExternalID(ctx, utils.HashExternalID("google-subject-1"))
	require.NoError(t, err)
	assert.Equal(t, user.ID, byHash.ID)

	// Hashing is deterministic, so a different subject cannot collide.
	_, err = db.GetUserByHashedExternalID(ctx, utils.HashExternalID("google-subject-2"))
	assert.True(t, utils.IsErrorCode(err, utils.ErrNotFound))
}

func TestUserLookupsNotFound(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	_, err := db.GetUserByID(ctx, 404)
	assert.True(t, utils.IsErrorCode(err, utils.ErrNotFound))

	_, err = db.GetUserByUsername(ctx, "ghost")
	assert.True(t, utils.IsErrorCode(err, utils.ErrNotFound))
}

func TestUpdateUserAvatar(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	user := newTestUser(t, db, "alice")
	require.NoError(t, db.UpdateUserAvatar(ctx, user.ID, "/upload/new.png"))

	updated, err := db.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "/upload/new.png", updated.AvatarRef)

	err = db.UpdateUserAvatar(ctx, 9999, "/upload/none.png")
	assert.True(t, utils.IsErrorCode(err, utils.ErrNotFound))
}
