package events

import "time"

// Topics carrying domain events from the API server to the worker.
const (
	TopicPostPublished  = "posts.published"
	TopicPostLiked      = "posts.liked"
	TopicPostRated      = "posts.rated"
	TopicCommentCreated = "comments.created"
)

type PostPublished struct {
	PostID     uint64    `json:"post_id"`
	Title      string    `json:"title"`
	AuthorID   uint64    `json:"author_id"`
	AuthorName string    `json:"author_name"`
	CategoryID uint64    `json:"category_id,omitempty"`
	Category   string    `json:"category_name,omitempty"`
	At         time.Time `json:"published_at"`
}

type PostLiked struct {
	PostID     uint64    `json:"post_id"`
	Title      string    `json:"title"`
	AuthorID   uint64    `json:"author_id"`
	LikerID    uint64    `json:"liker_id"`
	LikerName  string    `json:"liker_name"`
	At         time.Time `json:"liked_at"`
}

type PostRated struct {
	PostID    uint64    `json:"post_id"`
	Title     string    `json:"title"`
	AuthorID  uint64    `json:"author_id"`
	RaterID   uint64    `json:"rater_id"`
	RaterName string    `json:"rater_name"`
	Rating    int       `json:"rating"`
	At        time.Time `json:"rated_at"`
}

type CommentCreated struct {
	PostID        uint64    `json:"post_id"`
	Title         string    `json:"title"`
	PostAuthorID  uint64    `json:"post_author_id"`
	CommenterID   uint64    `json:"commenter_id"`
	CommenterName string    `json:"commenter_name"`
	At            time.Time `json:"commented_at"`
}
