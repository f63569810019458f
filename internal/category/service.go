package category

import (
	"github.com/kimanithuo1/backendCapstoneProject/internal/shared/slug"
)

// PostCounter reports the published-post count per category; implemented by
// the post package.
type PostCounter interface {
	CountPublishedByCategory(categoryID uint64) (int64, error)
}

type Service interface {
	Create(in CreateReq) (*Category, error)
	GetByID(id uint64) (*WithCount, error)
	List(search, ordering string, limit, offset int) ([]WithCount, int64, error)
	Update(id uint64, in UpdateReq) (*Category, error)
	Delete(id uint64) error
}

type service struct {
	repo  Repository
	posts PostCounter
}

func NewService(r Repository, posts PostCounter) Service {
	return &service{repo: r, posts: posts}
}

func (s *service) Create(in CreateReq) (*Category, error) {
	return s.repo.Create(&Category{
		Name:        in.Name,
		Description: in.Description,
		Slug:        slug.Make(in.Name),
	})
}

func (s *service) GetByID(id uint64) (*WithCount, error) {
	c, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	n, _ := s.posts.CountPublishedByCategory(c.ID)
	return &WithCount{Category: *c, PostsCount: n}, nil
}

func (s *service) List(search, ordering string, limit, offset int) ([]WithCount, int64, error) {
	cats, count, err := s.repo.List(search, ordering, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	out := make([]WithCount, 0, len(cats))
	for _, c := range cats {
		n, _ := s.posts.CountPublishedByCategory(c.ID)
		out = append(out, WithCount{Category: c, PostsCount: n})
	}
	return out, count, nil
}

func (s *service) Update(id uint64, in UpdateReq) (*Category, error) {
	c, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		c.Name = *in.Name
		c.Slug = slug.Make(*in.Name)
	}
	if in.Description != nil {
		c.Description = *in.Description
	}
	if err := s.repo.Save(c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) Delete(id uint64) error {
	if _, err := s.repo.GetByID(id); err != nil {
		return err
	}
	return s.repo.Delete(id)
}
