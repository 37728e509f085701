package models

import "time"

type Comment struct {
	ID             int64     `json:"id" db:"id"`
	PostID         int64     `json:"postId" db:"post_id"`
	AuthorUsername string    `json:"username" db:"username"`
	Content        string    `json:"content" db:"content"`
	CreatedAt      time.Time `json:"timestamp" db:"timestamp"`
}
