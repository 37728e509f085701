// internal/middleware/session.go
package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"fitblog/internal/config"
	"fitblog/internal/models"
	"fitblog/internal/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims represents the JWT claims for our application
type Claims struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// SessionManager issues and validates the signed session tokens that stand
// in for server-side session state.
type SessionManager struct {
	secret []byte
	ttl    time.Duration
	admins map[string]bool
}

// NewSessionManager builds a manager from the loaded configuration.
func NewSessionManager(cfg *config.Config) *SessionManager {
	admins := make(map[string]bool, len(cfg.AdminUsers))
	for _, name := range cfg.AdminUsers {
		admins[name] = true
	}
	return &SessionManager{
		secret: []byte(cfg.Session.Secret),
		ttl:    cfg.Session.TTL,
		admins: admins,
	}
}

// GenerateToken creates a new JWT token for the given user
func (m *SessionManager) GenerateToken(userID int64, username string) (string, error) {
	now := time.Now()

	claims := &Claims{
		UserID:   userID,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    "fitblog-api",
			Subject:   username,
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// ValidateToken validates the provided JWT token and returns the session it
// represents.
func (m *SessionManager) ValidateToken(tokenString string) (models.SessionContext, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&Claims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return m.secret, nil
		},
	)
	if err != nil {
		return models.SessionContext{}, utils.NewAppError(utils.ErrInvalidToken, "Invalid session token", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return models.SessionContext{}, utils.NewAppError(utils.ErrInvalidToken, "Invalid session token", errors.New("invalid claims"))
	}

	return models.SessionContext{
		UserID:   claims.UserID,
		Username: claims.Username,
		IsAdmin:  m.admins[claims.Username],
	}, nil
}

// Attach resolves an optional bearer token into a SessionContext on the
// request context. Requests without a token pass through anonymous; each
// handler decides whether its operation needs an identity.
func (m *SessionManager) Attach(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			next.ServeHTTP(w, r)
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			http.Error(w, "Invalid authorization format", http.StatusUnauthorized)
			return
		}

		session, err := m.ValidateToken(strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			http.Error(w, "Invalid token", http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r.WithContext(SetSessionInContext(r.Context(), session)))
	})
}

// Define a custom context key type to avoid collisions
type contextKey string

// SessionKey is the key used to store the session in the context
const SessionKey contextKey = "session"

// SetSessionInContext saves the session in the request context
func SetSessionInContext(ctx context.Context, session models.SessionContext) context.Context {
	return context.WithValue(ctx, SessionKey, session)
}

// SessionFromContext retrieves the session from the context. The zero value
// is returned for anonymous requests.
func SessionFromContext(ctx context.Context) models.SessionContext {
	session, _ := ctx.Value(SessionKey).(models.SessionContext)
	return session
}
