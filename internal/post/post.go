package post

import (
	"time"

	"github.com/kimanithuo1/backendCapstoneProject/internal/tag"
)

const (
	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusArchived  = "archived"
)

type Post struct {
	ID               uint64     `gorm:"primaryKey" json:"id"`
	Title            string     `gorm:"size:200" json:"title"`
	Slug             string     `gorm:"uniqueIndex;size:250" json:"slug"`
	Content          string     `json:"content"`
	Excerpt          string     `gorm:"size:300" json:"excerpt"`
	AuthorID         uint64     `gorm:"index" json:"author_id"`
	CategoryID       *uint64    `gorm:"index" json:"category"`
	Tags             []tag.Tag  `gorm:"many2many:post_tags" json:"tags"`
	Status           string     `gorm:"size:10;index;default:draft" json:"status"`
	FeaturedImage    string     `gorm:"size:512" json:"featured_image"`
	PublishedDate    *time.Time `json:"published_date"`
	ScheduledPublish *time.Time `json:"scheduled_publish"`
	CreatedAt        time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
	ViewsCount       int64      `json:"views_count"`
}

// PostLike is one user's like on one post, unique per pair.
type PostLike struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	PostID    uint64    `gorm:"uniqueIndex:idx_post_user" json:"post"`
	UserID    uint64    `gorm:"uniqueIndex:idx_post_user" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

type CreateReq struct {
	Title            string     `json:"title" validate:"required,min=5,max=200"`
	Content          string     `json:"content" validate:"required,min=20"`
	Excerpt          string     `json:"excerpt" validate:"omitempty,max=300"`
	CategoryID       *uint64    `json:"category"`
	TagIDs           []uint64   `json:"tag_ids"`
	FeaturedImage    string     `json:"featured_image" validate:"omitempty,url"`
	ScheduledPublish *time.Time `json:"scheduled_publish"`
}

type UpdateReq struct {
	Title            *string    `json:"title" validate:"omitempty,min=5,max=200"`
	Content          *string    `json:"content" validate:"omitempty,min=20"`
	Excerpt          *string    `json:"excerpt" validate:"omitempty,max=300"`
	CategoryID       *uint64    `json:"category"`
	TagIDs           []uint64   `json:"tag_ids"`
	FeaturedImage    *string    `json:"featured_image" validate:"omitempty,url"`
	ScheduledPublish *time.Time `json:"scheduled_publish"`
}

// ListItem is the card-sized payload used on listing pages; the feed reader
// renders these directly.
type ListItem struct {
	ID            uint64     `json:"id"`
	Title         string     `json:"title"`
	Slug          string     `json:"slug"`
	Excerpt       string     `json:"excerpt"`
	Author        string     `json:"author"`
	CategoryName  string     `json:"category_name"`
	Tags          []tag.Tag  `json:"tags"`
	FeaturedImage string     `json:"featured_image"`
	PublishedDate *time.Time `json:"published_date"`
	ViewsCount    int64      `json:"views_count"`
	LikesCount    int64      `json:"likes_count"`
	CommentsCount int64      `json:"comments_count"`
	Status        string     `json:"status"`
}

// Detail is the full payload for a single post.
type Detail struct {
	Post
	Author        string      `json:"author"`
	CategoryName  string      `json:"category_name"`
	LikesCount    int64       `json:"likes_count"`
	AverageRating float64     `json:"average_rating"`
	RatingsCount  int64       `json:"ratings_count"`
	CommentsCount int64       `json:"comments_count"`
	UserHasLiked  bool        `json:"user_has_liked"`
	UserRating    *UserRating `json:"user_rating"`
}

type UserRating struct {
	Rating int    `json:"rating"`
	Review string `json:"review"`
}
