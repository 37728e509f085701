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

// Message types for Post operations
type (
	CreatePostMsg struct {
		Title    string
		Content  string
		ImageRef string
		Session  models.SessionContext
	}

	GetPostMsg struct {
		PostID int64
	}

	ListPostsMsg struct {
		Order        models.PostOrder
		WithComments bool
	}

	ToggleLikeMsg struct {
		PostID  int64
		Session models.SessionContext
	}

	DeletePostMsg struct {
		PostID  int64
		Session models.SessionContext
	}

	AddCommentMsg struct {
		PostID  int64
		Content string
		Session models.SessionContext
	}

	GetPostCommentsMsg struct {
		PostID int64
	}

	// DeletePostResult acknowledges a delete; the operation never no-ops
	// silently, so the caller always gets this or an AppError.
	DeletePostResult struct {
		PostID  int64 `json:"postId"`
		Success bool  `json:"success"`
	}

	GetCountsMsg struct{}
)

// PostActor owns the post lifecycle and the like-toggle path. All mutations
// on posts flow through its single mailbox, so like toggles on one post are
// serialized in-process on top of the store's own compare-and-swap.
type PostActor struct {
	store   database.Store
	metrics *utils.MetricsCollector
}

// NewPostActor creates a new PostActor instance
func NewPostActor(store database.Store, metrics *utils.MetricsCollector) actor.Actor {
	return &PostActor{
		store:   store,
		metrics: metrics,
	}
}

// Receive handles incoming messages
func (a *PostActor) Receive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case *actor.Started:
		log.Printf("PostActor started")
	case *actor.Stopping:
		log.Printf("PostActor stopping")
	case *CreatePostMsg:
		a.handleCreatePost(ctx, msg)
	case *GetPostMsg:
		a.handleGetPost(ctx, msg)
	case *ListPostsMsg:
		a.handleListPosts(ctx, msg)
	case *ToggleLikeMsg:
		a.handleToggleLike(ctx, msg)
	case *DeletePostMsg:
		a.handleDeletePost(ctx, msg)
	case *AddCommentMsg:
		a.handleAddComment(ctx, msg)
	case *GetPostCommentsMsg:
		a.handleGetPostComments(ctx, msg)
	case *GetCountsMsg:
		count, err := a.store.CountPosts(context.Background())
		if err != nil {
			ctx.Respond(err)
			return
		}
		ctx.Respond(count)
	}
}

func (a *PostActor) handleCreatePost(ctx actor.Context, msg *CreatePostMsg) {
	startTime := time.Now()

	if !msg.Session.Authenticated() {
		ctx.Respond(utils.NewUnauthorizedError("publishing requires a session"))
		return
	}
	if strings.TrimSpace(msg.Title) == "" || strings.TrimSpace(msg.Content) == "" {
		ctx.Respond(utils.NewAppError(utils.ErrInvalidInput, "Title and content are required", nil))
		return
	}

	newPost := &models.Post{
		Title:          msg.Title,
		Content:        msg.Content,
		AuthorUsername: msg.Session.Username,
		ImageRef:       msg.ImageRef,
		CreatedAt:      time.Now().UTC(),
	}

	if err := a.store.SavePost(context.Background(), newPost); err != nil {
		ctx.Respond(err)
		return
	}

	log.Printf("PostActor: Created post %d by %s", newPost.ID, newPost.AuthorUsername)
	a.metrics.AddOperationLatency("create_post", time.Since(startTime))
	ctx.Respond(newPost)
}

func (a *PostActor) handleGetPost(ctx actor.Context, msg *GetPostMsg) {
	post, err := a.store.GetPost(context.Background(), msg.PostID)
	if err != nil {
		ctx.Respond(err)
		return
	}

	comments, err := a.store.GetPostComments(context.Background(), post.ID)
	if err != nil {
		ctx.Respond(err)
		return
	}
	post.Comments = comments
	ctx.Respond(post)
}

func (a *PostActor) handleListPosts(ctx actor.Context, msg *ListPostsMsg) {
	startTime := time.Now()

	posts, err := a.store.GetPosts(context.Background(), msg.Order)
	if err != nil {
		ctx.Respond(err)
		return
	}

	if msg.WithComments {
		// One query per post; trades round trips for simplicity over a join.
		for _, post := range posts {
			comments, err := a.store.GetPostComments(context.Background(), post.ID)
			if err != nil {
				ctx.Respond(err)
				return
			}
			post.Comments = comments
		}
	}

	a.metrics.AddOperationLatency("list_posts", time.Since(startTime))
	ctx.Respond(posts)
}

func (a *PostActor) handleToggleLike(ctx actor.Context, msg *ToggleLikeMsg) {
	startTime := time.Now()

	if !msg.Session.Authenticated() {
		ctx.Respond(utils.NewUnauthorizedError("liking requires a session"))
		return
	}

	post, err := a.store.ToggleLike(context.Background(), msg.PostID, msg.Session.UserID)
	if err != nil {
		ctx.Respond(err)
		return
	}

	log.Printf("PostActor: Post %d liked by user %d (total %d)", post.ID, msg.Session.UserID, post.Likes)
	a.metrics.AddOperationLatency("toggle_like", time.Since(startTime))
	ctx.Respond(post)
}

func (a *PostActor) handleDeletePost(ctx actor.Context, msg *DeletePostMsg) {
	startTime := time.Now()

	if !msg.Session.Authenticated() {
		ctx.Respond(utils.NewUnauthorizedError("deleting requires a session"))
		return
	}

	post, err := a.store.GetPost(context.Background(), msg.PostID)
	if err != nil {
		ctx.Respond(err)
		return
	}

	if post.AuthorUsername != msg.Session.Username && !msg.Session.IsAdmin {
		ctx.Respond(utils.NewForbiddenError("only the owner or an administrator may delete this post"))
		return
	}

	if err := a.store.DeletePost(context.Background(), msg.PostID); err != nil {
		ctx.Respond(err)
		return
	}

	log.Printf("PostActor: Post %d deleted by %s", msg.PostID, msg.Session.Username)
	a.metrics.AddOperationLatency("delete_post", time.Since(startTime))
	ctx.Respond(&DeletePostResult{PostID: msg.PostID, Success: true})
}

func (a *PostActor) handleAddComment(ctx actor.Context, msg *AddCommentMsg) {
	startTime := time.Now()

	if !msg.Session.Authenticated() {
		ctx.Respond(utils.NewUnauthorizedError("commenting requires a session"))
		return
	}
	if strings.TrimSpace(msg.Content) == "" {
		ctx.Respond(utils.NewAppError(utils.ErrInvalidInput, "Comment content is required", nil))
		return
	}

	comment := &models.Comment{
		PostID:         msg.PostID,
		AuthorUsername: msg.Session.Username,
		Content:        msg.Content,
		CreatedAt:      time.Now().UTC(),
	}

	if err := a.store.SaveComment(context.Background(), comment); err != nil {
		ctx.Respond(err)
		return
	}

	a.metrics.AddOperationLatency("add_comment", time.Since(startTime))
	ctx.Respond(comment)
}

func (a *PostActor) handleGetPostComments(ctx actor.Context, msg *GetPostCommentsMsg) {
	comments, err := a.store.GetPostComments(context.Background(), msg.PostID)
	if err != nil {
		ctx.Respond(err)
		return
	}
	ctx.Respond(comments)
}
