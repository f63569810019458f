package rating

import "time"

// Rating is one user's score for one post, unique per pair. Review text is
// optional.
type Rating struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	PostID    uint64    `gorm:"uniqueIndex:idx_rating_post_user" json:"post"`
	UserID    uint64    `gorm:"uniqueIndex:idx_rating_post_user" json:"-"`
	Rating    int       `json:"rating"`
	Review    string    `gorm:"size:1000" json:"review"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type UpsertReq struct {
	Rating int    `json:"rating" validate:"required,min=1,max=5"`
	Review string `json:"review" validate:"omitempty,max=1000"`
}

type View struct {
	Rating
	User string `json:"user"`
}

// Stats is the aggregate shown on post detail pages.
type Stats struct {
	Average float64 `json:"average_rating"`
	Count   int64   `json:"ratings_count"`
}
