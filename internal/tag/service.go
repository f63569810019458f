package tag

import (
	"errors"

	"github.com/kimanithuo1/backendCapstoneProject/internal/shared/slug"
)

type Service interface {
	Create(name string) (*Tag, error)
	GetByID(id uint64) (*Tag, error)
	List(search, ordering string, limit, offset int) ([]Tag, int64, error)
	Delete(id uint64) error
	// EnsureAll resolves tag names to records, creating the missing ones.
	EnsureAll(names []string) ([]Tag, error)
}

type service struct{ repo Repository }

func NewService(r Repository) Service { return &service{repo: r} }

func (s *service) Create(name string) (*Tag, error) {
	if name == "" {
		return nil, errors.New("tag name required")
	}
	if exist, _ := s.repo.GetByName(name); exist != nil {
		return nil, errors.New("tag exists")
	}
	return s.repo.Create(&Tag{Name: name, Slug: slug.Make(name)})
}

func (s *service) GetByID(id uint64) (*Tag, error) { return s.repo.GetByID(id) }

func (s *service) List(search, ordering string, limit, offset int) ([]Tag, int64, error) {
	return s.repo.List(search, ordering, limit, offset)
}

func (s *service) Delete(id uint64) error {
	if _, err := s.repo.GetByID(id); err != nil {
		return err
	}
	return s.repo.Delete(id)
}

func (s *service) EnsureAll(names []string) ([]Tag, error) {
	out := make([]Tag, 0, len(names))
	for _, name := range names {
		if name == "" {
			continue
		}
		t, err := s.repo.GetByName(name)
		if errors.Is(err, ErrNotFound) {
			t, err = s.repo.Create(&Tag{Name: name, Slug: slug.Make(name)})
		}
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	return out, nil
}
