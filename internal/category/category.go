package category

import "time"

type Category struct {
	ID          uint64    `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"uniqueIndex;size:100" json:"name"`
	Description string    `json:"description"`
	Slug        string    `gorm:"uniqueIndex;size:100" json:"slug"`
	CreatedAt   time.Time `json:"created_at"`
}

type CreateReq struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description"`
}

type UpdateReq struct {
	Name        *string `json:"name" validate:"omitempty,max=100"`
	Description *string `json:"description"`
}

// WithCount is the list/detail payload carrying the published-post count.
type WithCount struct {
	Category
	PostsCount int64 `json:"posts_count"`
}
