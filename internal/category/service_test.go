package category

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memRepo struct {
	mu     sync.Mutex
	nextID uint64
	cats   map[uint64]*Category
}

func newMemRepo() *memRepo { return &memRepo{cats: map[uint64]*Category{}} }

func (m *memRepo) Create(c *Category) (*Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	c.ID = m.nextID
	cp := *c
	m.cats[c.ID] = &cp
	return c, nil
}

func (m *memRepo) GetByID(id uint64) (*Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.cats[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (m *memRepo) GetBySlug(s string) (*Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.cats {
		if c.Slug == s {
			cp := *c
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (m *memRepo) List(search, ordering string, limit, offset int) ([]Category, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Category
	for id := uint64(1); id <= m.nextID; id++ {
		if c, ok := m.cats[id]; ok {
			out = append(out, *c)
		}
	}
	return out, int64(len(out)), nil
}

func (m *memRepo) Save(c *Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *c
	m.cats[c.ID] = &cp
	return nil
}

func (m *memRepo) Delete(id uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.cats, id)
	return nil
}

type fivePosts struct{}

func (fivePosts) CountPublishedByCategory(uint64) (int64, error) { return 5, nil }

func TestCreateSlugsName(t *testing.T) {
	svc := NewService(newMemRepo(), fivePosts{})

	c, err := svc.Create(CreateReq{Name: "Web Development", Description: "all things web"})
	require.NoError(t, err)
	assert.Equal(t, "web-development", c.Slug)
}

func TestGetByIDIncludesPostsCount(t *testing.T) {
	svc := NewService(newMemRepo(), fivePosts{})

	c, err := svc.Create(CreateReq{Name: "Tech"})
	require.NoError(t, err)

	got, err := svc.GetByID(c.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 5, got.PostsCount)
}

func TestUpdateReslugsOnRename(t *testing.T) {
	svc := NewService(newMemRepo(), fivePosts{})

	c, err := svc.Create(CreateReq{Name: "Tech"})
	require.NoError(t, err)

	name := "Tech & Gadgets"
	up, err := svc.Update(c.ID, UpdateReq{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "tech-gadgets", up.Slug)

	// Description-only updates keep the slug.
	desc := "reviews and news"
	up, err = svc.Update(c.ID, UpdateReq{Description: &desc})
	require.NoError(t, err)
	assert.Equal(t, "tech-gadgets", up.Slug)
	assert.Equal(t, "reviews and news", up.Description)
}

func TestDeleteMissingCategory(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo, fivePosts{})

	c, err := svc.Create(CreateReq{Name: "Tech"})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(c.ID))
	assert.ErrorIs(t, svc.Delete(c.ID), ErrNotFound)
}
