package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fitblog/internal/config"
	"fitblog/internal/models"
	"fitblog/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSessionManager(ttl time.Duration, admins ...string) *SessionManager {
	return NewSessionManager(&config.Config{
		Session:    &config.SessionConfig{Secret: "test_secret", TTL: ttl},
		AdminUsers: admins,
	})
}

func TestTokenRoundTrip(t *testing.T) {
	m := newTestSessionManager(time.Hour)

	token, err := m.GenerateToken(7, "alice")
	require.NoError(t, err)

	session, err := m.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), session.UserID)
	assert.Equal(t, "alice", session.Username)
	assert.False(t, session.IsAdmin)
	assert.True(t, session.Authenticated())
}

func TestAdminFlagFromConfig(t *testing.T) {
	m := newTestSessionManager(time.Hour, "root")

	token, err := m.GenerateToken(1, "root")
	require.NoError(t, err)

	session, err := m.ValidateToken(token)
	require.NoError(t, err)
	assert.True(t, session.IsAdmin)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	m := newTestSessionManager(time.Hour)

	_, err := m.ValidateToken("not.a.token")
	assert.True(t, utils.IsErrorCode(err, utils.ErrInvalidToken))
}

func TestValidateTokenRejectsForeignSignature(t *testing.T) {
	issuer := newTestSessionManager(time.Hour)
	verifier := NewSessionManager(&config.Config{
		Session: &config.SessionConfig{Secret: "other_secret", TTL: time.Hour},
	})

	token, err := issuer.GenerateToken(7, "alice")
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.True(t, utils.IsErrorCode(err, utils.ErrInvalidToken))
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	m := newTestSessionManager(-time.Minute)

	token, err := m.GenerateToken(7, "alice")
	require.NoError(t, err)

	_, err = m.ValidateToken(token)
	assert.True(t, utils.IsErrorCode(err, utils.ErrInvalidToken))
}

func TestAttachMiddleware(t *testing.T) {
	m := newTestSessionManager(time.Hour)

	var seen models.SessionContext
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = SessionFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	handler := m.Attach(next)

	// Anonymous requests pass through with a zero session.
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/posts", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, seen.Authenticated())

	// A valid token resolves to the session.
	token, err := m.GenerateToken(7, "alice")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/posts", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "alice", seen.Username)

	// A mangled token is refused outright.
	req = httptest.NewRequest(http.MethodGet, "/posts", nil)
	req.Header.Set("Authorization", "Bearer bogus")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
