package tag

import "time"

type Tag struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;size:50" json:"name"`
	Slug      string    `gorm:"uniqueIndex;size:50" json:"slug"`
	CreatedAt time.Time `json:"created_at"`
}

type CreateReq struct {
	Name string `json:"name" validate:"required,max=50"`
}
