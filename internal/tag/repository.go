package tag

import (
	"errors"

	"gorm.io/gorm"

	"github.com/kimanithuo1/backendCapstoneProject/internal/shared/db"
)

var ErrNotFound = errors.New("tag not found")

type Repository interface {
	GetByID(id uint64) (*Tag, error)
	GetByName(name string) (*Tag, error)
	Create(t *Tag) (*Tag, error)
	List(search, ordering string, limit, offset int) ([]Tag, int64, error)
	Delete(id uint64) error
}

type repo struct{ store *db.Store }

func NewRepository(store *db.Store) Repository { return &repo{store: store} }

func (r *repo) GetByID(id uint64) (*Tag, error) {
	var t Tag
	err := r.store.Base.First(&t, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *repo) GetByName(name string) (*Tag, error) {
	var t Tag
	err := r.store.Base.Where("name = ?", name).First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *repo) Create(t *Tag) (*Tag, error) {
	if err := r.store.Base.Create(t).Error; err != nil {
		return nil, err
	}
	return t, nil
}

func (r *repo) List(search, ordering string, limit, offset int) ([]Tag, int64, error) {
	q := r.store.Base.Model(&Tag{})
	if search != "" {
		q = q.Where("name ILIKE ?", "%"+search+"%")
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return nil, 0, err
	}
	switch ordering {
	case "created_at":
		q = q.Order("created_at")
	case "-created_at":
		q = q.Order("created_at desc")
	default:
		q = q.Order("name")
	}
	var tags []Tag
	if err := q.Limit(limit).Offset(offset).Find(&tags).Error; err != nil {
		return nil, 0, err
	}
	return tags, count, nil
}

func (r *repo) Delete(id uint64) error {
	return r.store.Base.Delete(&Tag{}, id).Error
}
