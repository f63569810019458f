package rating

import (
	"errors"

	"gorm.io/gorm"

	"github.com/kimanithuo1/backendCapstoneProject/internal/shared/db"
)

var ErrNotFound = errors.New("rating not found")

type Repository interface {
	Create(rt *Rating) error
	GetByPostAndUser(postID, userID uint64) (*Rating, error)
	Save(rt *Rating) error
	Delete(id uint64) error

	ListByPost(postID uint64, limit, offset int) ([]Rating, int64, error)
	StatsByPost(postID uint64) (float64, int64, error)
}

type repo struct{ store *db.Store }

func NewRepository(store *db.Store) Repository { return &repo{store: store} }

func (r *repo) Create(rt *Rating) error {
	return r.store.Base.Create(rt).Error
}

func (r *repo) GetByPostAndUser(postID, userID uint64) (*Rating, error) {
	var rt Rating
	err := r.store.Base.Where("post_id = ? AND user_id = ?", postID, userID).First(&rt).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rt, nil
}

func (r *repo) Save(rt *Rating) error {
	return r.store.Base.Save(rt).Error
}

func (r *repo) Delete(id uint64) error {
	return r.store.Base.Delete(&Rating{}, id).Error
}

func (r *repo) ListByPost(postID uint64, limit, offset int) ([]Rating, int64, error) {
	q := r.store.Base.Model(&Rating{}).Where("post_id = ?", postID)
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return nil, 0, err
	}
	var ratings []Rating
	if err := q.Order("created_at desc").Limit(limit).Offset(offset).Find(&ratings).Error; err != nil {
		return nil, 0, err
	}
	return ratings, count, nil
}

func (r *repo) StatsByPost(postID uint64) (float64, int64, error) {
	var row struct {
		Avg float64
		N   int64
	}
	err := r.store.Base.Model(&Rating{}).
		Select("COALESCE(AVG(rating), 0) as avg, COUNT(*) as n").
		Where("post_id = ?", postID).
		Scan(&row).Error
	return row.Avg, row.N, err
}
