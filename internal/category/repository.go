package category

import (
	"errors"

	"gorm.io/gorm"

	"github.com/kimanithuo1/backendCapstoneProject/internal/shared/db"
)

var ErrNotFound = errors.New("category not found")

type Repository interface {
	Create(c *Category) (*Category, error)
	GetByID(id uint64) (*Category, error)
	GetBySlug(slug string) (*Category, error)
	List(search, ordering string, limit, offset int) ([]Category, int64, error)
	Save(c *Category) error
	Delete(id uint64) error
}

type repo struct{ store *db.Store }

func NewRepository(store *db.Store) Repository { return &repo{store: store} }

func (r *repo) Create(c *Category) (*Category, error) {
	if err := r.store.Base.Create(c).Error; err != nil {
		return nil, err
	}
	return c, nil
}

func (r *repo) GetByID(id uint64) (*Category, error) {
	var c Category
	err := r.store.Base.First(&c, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repo) GetBySlug(slug string) (*Category, error) {
	var c Category
	err := r.store.Base.Where("slug = ?", slug).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repo) List(search, ordering string, limit, offset int) ([]Category, int64, error) {
	q := r.store.Base.Model(&Category{})
	if search != "" {
		like := "%" + search + "%"
		q = q.Where("name ILIKE ? OR description ILIKE ?", like, like)
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
	case "-name":
		q = q.Order("name desc")
	default:
		q = q.Order("name")
	}
	var cats []Category
	if err := q.Limit(limit).Offset(offset).Find(&cats).Error; err != nil {
		return nil, 0, err
	}
	return cats, count, nil
}

func (r *repo) Save(c *Category) error { return r.store.Base.Save(c).Error }

func (r *repo) Delete(id uint64) error {
	return r.store.Base.Delete(&Category{}, id).Error
}
