package subscription

import "time"

const (
	TypeAuthor   = "author"
	TypeCategory = "category"
)

// Subscription follows either an author or a category. Unsubscribing flips
// IsActive off; subscribing again reactivates the same row.
type Subscription struct {
	ID           uint64    `gorm:"primaryKey" json:"id"`
	SubscriberID uint64    `gorm:"uniqueIndex:idx_sub_target" json:"-"`
	Type         string    `gorm:"size:10;uniqueIndex:idx_sub_target" json:"type"`
	TargetID     uint64    `gorm:"uniqueIndex:idx_sub_target" json:"target_id"`
	IsActive     bool      `gorm:"default:true" json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type SubscribeReq struct {
	Type     string `json:"type" validate:"required,oneof=author category"`
	TargetID uint64 `json:"target_id" validate:"required"`
}

// View decorates a subscription with the target's display name.
type View struct {
	Subscription
	TargetName string `json:"target_name"`
}
