package notification

import "time"

const (
	TypeNewPost    = "new_post"
	TypeNewComment = "new_comment"
	TypeNewLike    = "new_like"
	TypeNewRating  = "new_rating"
)

// Notification lives in a per-user redis list, newest first. Entries expire
// with the list after 30 days of inactivity.
type Notification struct {
	ID        string    `json:"id"`
	UserID    uint64    `json:"-"`
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	PostID    uint64    `json:"post_id,omitempty"`
	ActorID   uint64    `json:"actor_id,omitempty"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}
