package user

import "time"

type User struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"uniqueIndex;size:120" json:"email"`
	PassHash  string    `gorm:"size:255" json:"-"`
	Name      string    `gorm:"size:100" json:"name"`
	CreatedAt time.Time `json:"date_joined"`
	UpdatedAt time.Time `json:"-"`
}

type Profile struct {
	ID         uint64     `gorm:"primaryKey" json:"id"`
	UserID     uint64     `gorm:"uniqueIndex" json:"user_id"`
	Bio        string     `json:"bio"`
	PictureURL string     `gorm:"size:512" json:"profile_picture"`
	Website    string     `gorm:"size:255" json:"website"`
	Location   string     `gorm:"size:100" json:"location"`
	BirthDate  *time.Time `json:"birth_date"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

type RegisterReq struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name" validate:"required"`
}

type LoginReq struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UpdateProfileReq struct {
	Bio        *string    `json:"bio"`
	PictureURL *string    `json:"profile_picture"`
	Website    *string    `json:"website" validate:"omitempty,url"`
	Location   *string    `json:"location"`
	BirthDate  *time.Time `json:"birth_date"`
}

// PublicUser is the user payload enriched with the published-post count.
type PublicUser struct {
	User
	PostsCount int64 `json:"posts_count"`
}
