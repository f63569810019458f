package subscription

import (
	"errors"

	"gorm.io/gorm"

	"github.com/kimanithuo1/backendCapstoneProject/internal/shared/db"
)

var ErrNotFound = errors.New("subscription not found")

type Repository interface {
	Create(sub *Subscription) error
	Get(subscriberID uint64, typ string, targetID uint64) (*Subscription, error)
	Save(sub *Subscription) error
	ListBySubscriber(subscriberID uint64, limit, offset int) ([]Subscription, int64, error)

	// ActiveSubscribers returns subscriber ids following the given target;
	// the worker fans notifications out to them.
	ActiveSubscribers(typ string, targetID uint64) ([]uint64, error)
}

type repo struct{ store *db.Store }

func NewRepository(store *db.Store) Repository { return &repo{store: store} }

func (r *repo) Create(sub *Subscription) error {
	return r.store.Base.Create(sub).Error
}

func (r *repo) Get(subscriberID uint64, typ string, targetID uint64) (*Subscription, error) {
	var sub Subscription
	err := r.store.Base.
		Where("subscriber_id = ? AND type = ? AND target_id = ?", subscriberID, typ, targetID).
		First(&sub).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *repo) Save(sub *Subscription) error {
	return r.store.Base.Save(sub).Error
}

func (r *repo) ListBySubscriber(subscriberID uint64, limit, offset int) ([]Subscription, int64, error) {
	q := r.store.Base.Model(&Subscription{}).
		Where("subscriber_id = ? AND is_active = ?", subscriberID, true)
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return nil, 0, err
	}
	var subs []Subscription
	if err := q.Order("created_at desc").Limit(limit).Offset(offset).Find(&subs).Error; err != nil {
		return nil, 0, err
	}
	return subs, count, nil
}

func (r *repo) ActiveSubscribers(typ string, targetID uint64) ([]uint64, error) {
	var ids []uint64
	err := r.store.Base.Model(&Subscription{}).
		Where("type = ? AND target_id = ? AND is_active = ?", typ, targetID, true).
		Pluck("subscriber_id", &ids).Error
	return ids, err
}
