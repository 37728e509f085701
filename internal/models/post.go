package models

import "time"

type Post struct {
	ID             int64     `json:"id"`
	Title          string    `json:"title"`
	Content        string    `json:"content"`
	AuthorUsername string    `json:"username"`
	CreatedAt      time.Time `json:"timestamp"`
	Likes          int       `json:"likes"`
	LikedBy        []int64   `json:"likedBy"` // User IDs that liked this post; len == Likes
	ImageRef       string    `json:"image,omitempty"`

	// Populated only when comments are eagerly attached to a listing.
	Comments []*Comment `json:"comments,omitempty"`
}

// PostOrder selects the sort order for post listings.
type PostOrder string

const (
	OrderNewest    PostOrder = "newest"    // creation time descending (default)
	OrderOldest    PostOrder = "oldest"    // creation time ascending
	OrderMostLiked PostOrder = "mostliked" // like counter descending
)

// ParsePostOrder maps a query-string value to a PostOrder, falling back to
// newest-first for anything unrecognized.
func ParsePostOrder(s string) PostOrder {
	switch PostOrder(s) {
	case OrderOldest:
		return OrderOldest
	case OrderMostLiked:
		return OrderMostLiked
	default:
		return OrderNewest
	}
}
