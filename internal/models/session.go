package models

// SessionContext carries the resolved identity of the requesting user into
// core operations. The zero value means anonymous. It is always passed as an
// explicit value; no operation reads identity from ambient state.
type SessionContext struct {
	UserID   int64  `json:"userId"`
	Username string `json:"username"`
	IsAdmin  bool   `json:"isAdmin"`
}

// Authenticated reports whether the session belongs to a logged-in user.
func (s SessionContext) Authenticated() bool {
	return s.UserID != 0
}
