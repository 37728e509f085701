package models

import "time"

type User struct {
	ID               int64     `json:"id" db:"id"`
	Username         string    `json:"username" db:"username"`
	HashedExternalID string    `json:"-" db:"hashed_google_id"`
	AvatarRef        string    `json:"avatarUrl,omitempty" db:"avatar_url"`
	MemberSince      time.Time `json:"memberSince" db:"member_since"`
}
