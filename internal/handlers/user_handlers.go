package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"fitblog/internal/engine/actors"
	"fitblog/internal/middleware"
	"fitblog/internal/models"
	"fitblog/internal/utils"
)

// RegisterUserRequest represents a request to register a new user
type RegisterUserRequest struct {
	Username  string `json:"username"`
	GoogleID  string `json:"googleId,omitempty"`
	AvatarRef string `json:"avatarRef,omitempty"`
}

// LoginRequest represents a request to log in a user
type LoginRequest struct {
	Username string `json:"username"`
}

// ExternalLoginRequest carries the raw subject identifier issued by the
// external provider. Only its hash ever reaches the engine or the store.
type ExternalLoginRequest struct {
	GoogleID string `json:"googleId"`
}

// LoginResponse represents a response to a login or registration request
type LoginResponse struct {
	Success  bool   `json:"success"`
	Token    string `json:"token,omitempty"`
	Error    string `json:"error,omitempty"`
	UserID   int64  `json:"userId"`
	Username string `json:"username,omitempty"`
}

// ProfileResponse bundles a user with the posts they authored
type ProfileResponse struct {
	User  *models.User   `json:"user"`
	Posts []*models.Post `json:"posts"`
}

// issueSession wraps a resolved user into a LoginResponse with a fresh token.
func (s *Server) issueSession(w http.ResponseWriter, user *models.User) {
	token, err := s.Sessions.GenerateToken(user.ID, user.Username)
	if err != nil {
		log.Printf("HTTP Handler: Failed to generate token: %v", err)
		http.Error(w, "Failed to generate auth token", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(&LoginResponse{
		Success:  true,
		Token:    token,
		UserID:   user.ID,
		Username: user.Username,
	})
}

// HandleUserRegistration handles requests to register a new user
func (s *Server) HandleUserRegistration() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req RegisterUserRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}

		msg := &actors.RegisterUserMsg{
			Username:  req.Username,
			AvatarRef: req.AvatarRef,
		}
		if req.GoogleID != "" {
			msg.HashedExternalID = utils.HashExternalID(req.GoogleID)
		}

		result, err := s.request(s.Engine.GetUserActor(), msg)
		if err != nil {
			s.respond(w, nil, err)
			return
		}

		user, ok := result.(*models.User)
		if !ok {
			s.respond(w, result, nil)
			return
		}

		s.issueSession(w, user)
	}
}

// HandleUserLogin handles requests to log in a user by username
func (s *Server) HandleUserLogin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}

		log.Printf("HTTP Handler: Received login request for username: %s", req.Username)

		result, err := s.request(s.Engine.GetUserActor(), &actors.LoginMsg{Username: req.Username})
		if err != nil {
			s.respond(w, nil, err)
			return
		}

		user, ok := result.(*models.User)
		if !ok {
			s.respond(w, result, nil)
			return
		}

		s.issueSession(w, user)
	}
}

// HandleExternalLogin handles requests to log in via an external identity
func (s *Server) HandleExternalLogin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req ExternalLoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}

		result, err := s.request(s.Engine.GetUserActor(), &actors.ExternalLoginMsg{
			HashedExternalID: utils.HashExternalID(req.GoogleID),
		})
		if err != nil {
			s.respond(w, nil, err)
			return
		}

		user, ok := result.(*models.User)
		if !ok {
			s.respond(w, result, nil)
			return
		}

		s.issueSession(w, user)
	}
}

// HandleUserProfile handles requests to get a user's profile with their posts
func (s *Server) HandleUserProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var userID int64
		if userIDStr := r.URL.Query().Get("userId"); userIDStr != "" {
			parsed, err := strconv.ParseInt(userIDStr, 10, 64)
			if err != nil {
				http.Error(w, "Invalid user ID format", http.StatusBadRequest)
				return
			}
			userID = parsed
		} else {
			session := middleware.SessionFromContext(r.Context())
			if !session.Authenticated() {
				http.Error(w, "User ID required", http.StatusBadRequest)
				return
			}
			userID = session.UserID
		}

		result, err := s.request(s.Engine.GetUserActor(), &actors.GetUserProfileMsg{UserID: userID})
		if err != nil {
			s.respond(w, nil, err)
			return
		}

		user, ok := result.(*models.User)
		if !ok {
			s.respond(w, result, nil)
			return
		}

		postsResult, err := s.request(s.Engine.GetPostActor(), &actors.ListPostsMsg{Order: models.OrderNewest})
		if err != nil {
			s.respond(w, nil, err)
			return
		}

		allPosts, ok := postsResult.([]*models.Post)
		if !ok {
			s.respond(w, postsResult, nil)
			return
		}

		authored := make([]*models.Post, 0)
		for _, post := range allPosts {
			if post.AuthorUsername == user.Username {
				authored = append(authored, post)
			}
		}

		s.respond(w, &ProfileResponse{User: user, Posts: authored}, nil)
	}
}
