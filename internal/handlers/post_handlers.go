package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"fitblog/internal/engine/actors"
	"fitblog/internal/middleware"
	"fitblog/internal/models"
)

// CreatePostRequest represents a request to publish a new post
type CreatePostRequest struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	ImageRef string `json:"imageRef,omitempty"`
}

// LikePostRequest represents a request to like a post
type LikePostRequest struct {
	PostID int64 `json:"postId"`
}

// CreateCommentRequest represents a request to comment on a post
type CreateCommentRequest struct {
	PostID  int64  `json:"postId"`
	Content string `json:"content"`
}

// parseIDParam reads an int64 query parameter, writing a 400 on failure.
func parseIDParam(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		http.Error(w, name+" required", http.StatusBadRequest)
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		http.Error(w, "Invalid "+name+" format", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

// HandlePosts handles listing posts (GET) and publishing a post (POST)
func (s *Server) HandlePosts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			order := models.ParsePostOrder(r.URL.Query().Get("order"))
			withComments := r.URL.Query().Get("withComments") == "true"

			result, err := s.request(s.Engine.GetPostActor(), &actors.ListPostsMsg{
				Order:        order,
				WithComments: withComments,
			})
			s.respond(w, result, err)

		case http.MethodPost:
			var req CreatePostRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				http.Error(w, "Invalid request", http.StatusBadRequest)
				return
			}

			result, err := s.request(s.Engine.GetPostActor(), &actors.CreatePostMsg{
				Title:    req.Title,
				Content:  req.Content,
				ImageRef: req.ImageRef,
				Session:  middleware.SessionFromContext(r.Context()),
			})
			s.respond(w, result, err)

		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}
}

// HandlePost handles fetching (GET) and deleting (DELETE) a single post
func (s *Server) HandlePost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			postID, ok := parseIDParam(w, r, "id")
			if !ok {
				return
			}
			result, err := s.request(s.Engine.GetPostActor(), &actors.GetPostMsg{PostID: postID})
			s.respond(w, result, err)

		case http.MethodDelete:
			postID, ok := parseIDParam(w, r, "id")
			if !ok {
				return
			}
			result, err := s.request(s.Engine.GetPostActor(), &actors.DeletePostMsg{
				PostID:  postID,
				Session: middleware.SessionFromContext(r.Context()),
			})
			s.respond(w, result, err)

		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}
}

// HandleLike handles requests to like a post
func (s *Server) HandleLike() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req LikePostRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}

		result, err := s.request(s.Engine.GetPostActor(), &actors.ToggleLikeMsg{
			PostID:  req.PostID,
			Session: middleware.SessionFromContext(r.Context()),
		})
		s.respond(w, result, err)
	}
}

// HandleComment handles requests to comment on a post
func (s *Server) HandleComment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req CreateCommentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}

		result, err := s.request(s.Engine.GetPostActor(), &actors.AddCommentMsg{
			PostID:  req.PostID,
			Content: req.Content,
			Session: middleware.SessionFromContext(r.Context()),
		})
		s.respond(w, result, err)
	}
}

// HandleGetPostComments handles requests to list a post's comments
func (s *Server) HandleGetPostComments() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		postID, ok := parseIDParam(w, r, "postId")
		if !ok {
			return
		}

		result, err := s.request(s.Engine.GetPostActor(), &actors.GetPostCommentsMsg{PostID: postID})
		s.respond(w, result, err)
	}
}
