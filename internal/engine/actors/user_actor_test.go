package actors

import (
	"testing"
	"time"

	"fitblog/internal/models"
	"fitblog/internal/utils"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserActorRegistrationAndLogin(t *testing.T) {
	store := newActorTestStore(t)
	system := actor.NewActorSystem()
	pid := system.Root.Spawn(actor.PropsFromProducer(func() actor.Actor {
		return NewUserActor(store, utils.NewMetricsCollector())
	}))

	hashed := utils.HashExternalID("subject-123")

	// Register
	future := system.Root.RequestFuture(pid, &RegisterUserMsg{
		Username:         "alice",
		HashedExternalID: hashed,
		AvatarRef:        "/upload/alice.png",
	}, 5*time.Second)
	result, err := future.Result()
	require.NoError(t, err)

	user, ok := result.(*models.User)
	require.True(t, ok, "unexpected reply: %v", result)
	assert.Equal(t, "alice", user.Username)
	assert.NotZero(t, user.ID)

	// Duplicate username is rejected
	future = system.Root.RequestFuture(pid, &RegisterUserMsg{Username: "alice"}, 5*time.Second)
	result, err = future.Result()
	require.NoError(t, err)
	appErr := result.(*utils.AppError)
	assert.Equal(t, utils.ErrUserAlreadyExists, appErr.Code)

	// Blank username is rejected
	future = system.Root.RequestFuture(pid, &RegisterUserMsg{Username: "   "}, 5*time.Second)
	result, err = future.Result()
	require.NoError(t, err)
	appErr = result.(*utils.AppError)
	assert.Equal(t, utils.ErrInvalidInput, appErr.Code)

	// Login by username
	future = system.Root.RequestFuture(pid, &LoginMsg{Username: "alice"}, 5*time.Second)
	result, err = future.Result()
	require.NoError(t, err)
	assert.Equal(t, user.ID, result.(*models.User).ID)

	// Unknown username
	future = system.Root.RequestFuture(pid, &LoginMsg{Username: "ghost"}, 5*time.Second)
	result, err = future.Result()
	require.NoError(t, err)
	appErr = result.(*utils.AppError)
	assert.Equal(t, utils.ErrUserNotFound, appErr.Code)

	// External login by hashed identity
	future = system.Root.RequestFuture(pid, &ExternalLoginMsg{HashedExternalID: hashed}, 5*time.Second)
	result, err = future.Result()
	require.NoError(t, err)
	assert.Equal(t, user.ID, result.(*models.User).ID)

	// Unknown external identity
	future = system.Root.RequestFuture(pid, &ExternalLoginMsg{
		HashedExternalID: utils.HashExternalID("someone-else"),
	}, 5*time.Second)
	result, err = future.Result()
	require.NoError(t, err)
	appErr = result.(*utils.AppError)
	assert.Equal(t, utils.ErrUserNotFound, appErr.Code)
}

func TestUserActorProfileAndAvatar(t *testing.T) {
	store := newActorTestStore(t)
	system := actor.NewActorSystem()
	pid := system.Root.Spawn(actor.PropsFromProducer(func() actor.Actor {
		return NewUserActor(store, utils.NewMetricsCollector())
	}))

	future := system.Root.RequestFuture(pid, &RegisterUserMsg{Username: "bob"}, 5*time.Second)
	result, err := future.Result()
	require.NoError(t, err)
	user := result.(*models.User)

	future = system.Root.RequestFuture(pid, &GetUserProfileMsg{UserID: user.ID}, 5*time.Second)
	result, err = future.Result()
	require.NoError(t, err)
	assert.Equal(t, "bob", result.(*models.User).Username)

	future = system.Root.RequestFuture(pid, &UpdateAvatarMsg{UserID: user.ID, AvatarRef: "/upload/bob.png"}, 5*time.Second)
	result, err = future.Result()
	require.NoError(t, err)
	assert.Equal(t, "/upload/bob.png", result.(*models.User).AvatarRef)

	future = system.Root.RequestFuture(pid, &GetCountsMsg{}, 5*time.Second)
	result, err = future.Result()
	require.NoError(t, err)
	assert.Equal(t, 1, result.(int))
}
