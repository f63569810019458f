package rating

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kimanithuo1/backendCapstoneProject/internal/user"
)

type memRepo struct {
	mu      sync.Mutex
	nextID  uint64
	ratings map[uint64]*Rating
}

func newMemRepo() *memRepo { return &memRepo{ratings: map[uint64]*Rating{}} }

func (m *memRepo) Create(rt *Rating) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	rt.ID = m.nextID
	cp := *rt
	m.ratings[rt.ID] = &cp
	return nil
}

func (m *memRepo) GetByPostAndUser(postID, userID uint64) (*Rating, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, rt := range m.ratings {
		if rt.PostID == postID && rt.UserID == userID {
			cp := *rt
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (m *memRepo) Save(rt *Rating) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *rt
	m.ratings[rt.ID] = &cp
	return nil
}

func (m *memRepo) Delete(id uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.ratings, id)
	return nil
}

func (m *memRepo) ListByPost(postID uint64, limit, offset int) ([]Rating, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Rating
	for id := uint64(1); id <= m.nextID; id++ {
		if rt, ok := m.ratings[id]; ok && rt.PostID == postID {
			out = append(out, *rt)
		}
	}
	return out, int64(len(out)), nil
}

func (m *memRepo) StatsByPost(postID uint64) (float64, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var sum, n int64
	for _, rt := range m.ratings {
		if rt.PostID == postID {
			sum += int64(rt.Rating)
			n++
		}
	}
	if n == 0 {
		return 0, 0, nil
	}
	return float64(sum) / float64(n), n, nil
}

type fakePosts struct{ authorID uint64 }

func (f fakePosts) PostMeta(uint64) (string, uint64, error) { return "Rated Post", f.authorID, nil }

type fakeUsers struct{}

func (fakeUsers) Create(u *user.User) (*user.User, error)           { return u, nil }
func (fakeUsers) GetByEmail(string) (*user.User, error)             { return nil, user.ErrNotFound }
func (fakeUsers) GetByID(id uint64) (*user.User, error)             { return &user.User{ID: id, Name: "Rater"}, nil }
func (fakeUsers) List(string, int, int) ([]user.User, int64, error) { return nil, 0, nil }
func (fakeUsers) CreateProfile(*user.Profile) error                 { return nil }
func (fakeUsers) GetProfile(uint64) (*user.Profile, error)          { return nil, user.ErrNotFound }
func (fakeUsers) SaveProfile(*user.Profile) error                   { return nil }

type recProducer struct {
	mu     sync.Mutex
	topics []string
}

func (p *recProducer) Publish(_ context.Context, topic string, _ any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.topics = append(p.topics, topic)
	return nil
}
func (p *recProducer) Close() error { return nil }

func newTestService() (Service, *memRepo, *recProducer) {
	repo := newMemRepo()
	prod := &recProducer{}
	return NewService(repo, fakePosts{authorID: 1}, fakeUsers{}, prod), repo, prod
}

func TestCreateRejectsSecondRating(t *testing.T) {
	svc, _, prod := newTestService()
	ctx := context.Background()

	v, err := svc.Create(ctx, 10, 2, UpsertReq{Rating: 4, Review: "solid"})
	require.NoError(t, err)
	assert.Equal(t, 4, v.Rating.Rating)
	assert.Contains(t, prod.topics, "posts.rated")

	_, err = svc.Create(ctx, 10, 2, UpsertReq{Rating: 5})
	assert.ErrorIs(t, err, ErrAlreadyRated)
	assert.Contains(t, err.Error(), "use PUT to update")
}

func TestSelfRatingEmitsNoEvent(t *testing.T) {
	svc, _, prod := newTestService()
	_, err := svc.Create(context.Background(), 10, 1, UpsertReq{Rating: 5})
	require.NoError(t, err)
	assert.Empty(t, prod.topics)
}

func TestUpdateReplacesOwnRating(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Create(ctx, 10, 2, UpsertReq{Rating: 2, Review: "meh"})
	require.NoError(t, err)

	v, err := svc.Update(10, 2, UpsertReq{Rating: 5, Review: "grew on me"})
	require.NoError(t, err)
	assert.Equal(t, 5, v.Rating.Rating)
	assert.Equal(t, "grew on me", v.Review)

	// No prior rating means nothing to update.
	_, err = svc.Update(10, 3, UpsertReq{Rating: 3})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStatsAverageRoundsToTwoDecimals(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Create(ctx, 10, 2, UpsertReq{Rating: 5})
	require.NoError(t, err)
	_, err = svc.Create(ctx, 10, 3, UpsertReq{Rating: 4})
	require.NoError(t, err)
	_, err = svc.Create(ctx, 10, 4, UpsertReq{Rating: 4})
	require.NoError(t, err)

	avg, n, err := svc.StatsByPost(10)
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)
	assert.InDelta(t, 4.33, avg, 0.001)
}

func TestUserRating(t *testing.T) {
	repo := newMemRepo()
	reader := NewReader(repo)
	svc := NewService(repo, fakePosts{authorID: 1}, fakeUsers{}, &recProducer{})

	got, err := reader.UserRating(10, 2)
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = svc.Create(context.Background(), 10, 2, UpsertReq{Rating: 3, Review: "ok"})
	require.NoError(t, err)

	got, err = reader.UserRating(10, 2)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 3, got.Rating)
	assert.Equal(t, "ok", got.Review)
}

func TestDeleteOwnRating(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Create(ctx, 10, 2, UpsertReq{Rating: 1})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(10, 2))

	_, n, err := svc.StatsByPost(10)
	require.NoError(t, err)
	assert.Zero(t, n)

	assert.ErrorIs(t, svc.Delete(10, 2), ErrNotFound)
}
