package user

import (
	"errors"

	"gorm.io/gorm"

	"github.com/kimanithuo1/backendCapstoneProject/internal/shared/db"
)

var ErrNotFound = errors.New("user not found")

type Repository interface {
	Create(u *User) (*User, error)
	GetByEmail(email string) (*User, error)
	GetByID(id uint64) (*User, error)
	List(search string, limit, offset int) ([]User, int64, error)

	CreateProfile(p *Profile) error
	GetProfile(userID uint64) (*Profile, error)
	SaveProfile(p *Profile) error
}

type repo struct {
	store *db.Store
}

func NewRepository(store *db.Store) Repository { return &repo{store: store} }

func (r *repo) Create(u *User) (*User, error) {
	if err := r.store.Base.Create(u).Error; err != nil {
		return nil, err
	}
	return u, nil
}

func (r *repo) GetByEmail(email string) (*User, error) {
	var u User
	err := r.store.Base.Where("email = ?", email).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repo) GetByID(id uint64) (*User, error) {
	var u User
	err := r.store.Base.First(&u, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repo) List(search string, limit, offset int) ([]User, int64, error) {
	q := r.store.Base.Model(&User{})
	if search != "" {
		like := "%" + search + "%"
		q = q.Where("name ILIKE ? OR email ILIKE ?", like, like)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return nil, 0, err
	}
	var users []User
	if err := q.Order("id").Limit(limit).Offset(offset).Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, count, nil
}

func (r *repo) CreateProfile(p *Profile) error {
	return r.store.Base.Create(p).Error
}

func (r *repo) GetProfile(userID uint64) (*Profile, error) {
	var p Profile
	err := r.store.Base.Where("user_id = ?", userID).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repo) SaveProfile(p *Profile) error {
	return r.store.Base.Save(p).Error
}
