package actors

import (
	"context"
	"log"
	"strings"
	"time"

	"fitblog/internal/database"
	"fitblog/internal/models"
	"fitblog/internal/utils"

	"github.com/asynkron/protoactor-go/actor"
)

// Message types for User operations
type (
	RegisterUserMsg struct {
		Username         string
		HashedExternalID string
		AvatarRef        string
	}

	LoginMsg struct {
		Username string
	}

	ExternalLoginMsg struct {
		HashedExternalID string
	}

	GetUserProfileMsg struct {
		UserID int64
	}

	UpdateAvatarMsg struct {
		UserID    int64
		AvatarRef string
	}
)

// UserActor handles registration and identity lookups.
type UserActor struct {
	store   database.Store
	metrics *utils.MetricsCollector
}

// NewUserActor creates a new UserActor instance
func NewUserActor(store database.Store, metrics *utils.MetricsCollector) actor.Actor {
	return &UserActor{
		store:   store,
		metrics: metrics,
	}
}

// Receive handles incoming messages
func (a *UserActor) Receive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case *actor.Started:
		log.Printf("UserActor started")
	case *actor.Stopping:
		log.Printf("UserActor stopping")
	case *RegisterUserMsg:
		a.handleRegisterUser(ctx, msg)
	case *LoginMsg:
		a.handleLogin(ctx, msg)
	case *ExternalLoginMsg:
		a.handleExternalLogin(ctx, msg)
	case *GetUserProfileMsg:
		a.handleGetUserProfile(ctx, msg)
	case *UpdateAvatarMsg:
		a.handleUpdateAvatar(ctx, msg)
	case *GetCountsMsg:
		count, err := a.store.CountUsers(context.Background())
		if err != nil {
			ctx.Respond(err)
			return
		}
		ctx.Respond(count)
	}
}

func (a *UserActor) handleRegisterUser(ctx actor.Context, msg *RegisterUserMsg) {
	startTime := time.Now()

	username := strings.TrimSpace(msg.Username)
	if username == "" {
		ctx.Respond(utils.NewAppError(utils.ErrInvalidInput, "Username is required", nil))
		return
	}

	newUser := &models.User{
		Username:         username,
		HashedExternalID: msg.HashedExternalID,
		AvatarRef:        msg.AvatarRef,
		MemberSince:      time.Now().UTC(),
	}

	if err := a.store.SaveUser(context.Background(), newUser); err != nil {
		if utils.IsErrorCode(err, utils.ErrDuplicate) {
			ctx.Respond(utils.NewAppError(utils.ErrUserAlreadyExists, "Username is already taken", err))
			return
		}
		ctx.Respond(err)
		return
	}

	log.Printf("UserActor: Registered user %d (%s)", newUser.ID, newUser.Username)
	a.metrics.AddOperationLatency("register_user", time.Since(startTime))
	ctx.Respond(newUser)
}

func (a *UserActor) handleLogin(ctx actor.Context, msg *LoginMsg) {
	startTime := time.Now()

	user, err := a.store.GetUserByUsername(context.Background(), strings.TrimSpace(msg.Username))
	if err != nil {
		if utils.IsErrorCode(err, utils.ErrNotFound) {
			ctx.Respond(utils.NewUserNotFoundError(msg.Username))
			return
		}
		ctx.Respond(err)
		return
	}

	a.metrics.AddOperationLatency("login", time.Since(startTime))
	ctx.Respond(user)
}

func (a *UserActor) handleExternalLogin(ctx actor.Context, msg *ExternalLoginMsg) {
	startTime := time.Now()

	if msg.HashedExternalID == "" {
		ctx.Respond(utils.NewAppError(utils.ErrInvalidInput, "External identity is required", nil))
		return
	}

	user, err := a.store.GetUserByHashedExternalID(context.Background(), msg.HashedExternalID)
	if err != nil {
		if utils.IsErrorCode(err, utils.ErrNotFound) {
			// No local account bound to this identity yet; the caller decides
			// whether to register one.
			ctx.Respond(utils.NewAppError(utils.ErrUserNotFound, "No account for this external identity", err))
			return
		}
		ctx.Respond(err)
		return
	}

	a.metrics.AddOperationLatency("external_login", time.Since(startTime))
	ctx.Respond(user)
}

func (a *UserActor) handleGetUserProfile(ctx actor.Context, msg *GetUserProfileMsg) {
	user, err := a.store.GetUserByID(context.Background(), msg.UserID)
	if err != nil {
		ctx.Respond(err)
		return
	}
	ctx.Respond(user)
}

func (a *UserActor) handleUpdateAvatar(ctx actor.Context, msg *UpdateAvatarMsg) {
	if err := a.store.UpdateUserAvatar(context.Background(), msg.UserID, msg.AvatarRef); err != nil {
		ctx.Respond(err)
		return
	}

	user, err := a.store.GetUserByID(context.Background(), msg.UserID)
	if err != nil {
		ctx.Respond(err)
		return
	}
	ctx.Respond(user)
}
