package comment

import "time"

// Comment belongs to a post; a non-nil ParentID makes it a reply. Only
// approved comments are visible to readers.
type Comment struct {
	ID         uint64    `gorm:"primaryKey" json:"id"`
	PostID     uint64    `gorm:"index" json:"post"`
	AuthorID   uint64    `gorm:"index" json:"author_id"`
	ParentID   *uint64   `gorm:"index" json:"parent"`
	Content    string    `json:"content"`
	IsApproved bool      `gorm:"default:true" json:"is_approved"`
	CreatedAt  time.Time `gorm:"index" json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type CreateReq struct {
	Content  string  `json:"content" validate:"required,min=3"`
	ParentID *uint64 `json:"parent"`
}

type UpdateReq struct {
	Content string `json:"content" validate:"required,min=3"`
}

// View is a comment with its author's display name and approved replies
// nested one level deep.
type View struct {
	Comment
	Author  string `json:"author"`
	Replies []View `json:"replies"`
}
