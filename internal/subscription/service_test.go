package subscription

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kimanithuo1/backendCapstoneProject/internal/category"
	"github.com/kimanithuo1/backendCapstoneProject/internal/user"
)

type memRepo struct {
	mu     sync.Mutex
	nextID uint64
	subs   map[uint64]*Subscription
}

func newMemRepo() *memRepo { return &memRepo{subs: map[uint64]*Subscription{}} }

func (m *memRepo) Create(sub *Subscription) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	sub.ID = m.nextID
	cp := *sub
	m.subs[sub.ID] = &cp
	return nil
}

func (m *memRepo) Get(subscriberID uint64, typ string, targetID uint64) (*Subscription, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, sub := range m.subs {
		if sub.SubscriberID == subscriberID && sub.Type == typ && sub.TargetID == targetID {
			cp := *sub
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (m *memRepo) Save(sub *Subscription) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *sub
	m.subs[sub.ID] = &cp
	return nil
}

func (m *memRepo) ListBySubscriber(subscriberID uint64, limit, offset int) ([]Subscription, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Subscription
	for id := uint64(1); id <= m.nextID; id++ {
		if sub, ok := m.subs[id]; ok && sub.SubscriberID == subscriberID && sub.IsActive {
			out = append(out, *sub)
		}
	}
	return out, int64(len(out)), nil
}

func (m *memRepo) ActiveSubscribers(typ string, targetID uint64) ([]uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []uint64
	for id := uint64(1); id <= m.nextID; id++ {
		if sub, ok := m.subs[id]; ok && sub.Type == typ && sub.TargetID == targetID && sub.IsActive {
			out = append(out, sub.SubscriberID)
		}
	}
	return out, nil
}

type fakeUsers struct{}

func (fakeUsers) Create(u *user.User) (*user.User, error) { return u, nil }
func (fakeUsers) GetByEmail(string) (*user.User, error)   { return nil, user.ErrNotFound }
func (fakeUsers) GetByID(id uint64) (*user.User, error) {
	if id > 100 {
		return nil, user.ErrNotFound
	}
	return &user.User{ID: id, Name: "Writer"}, nil
}
func (fakeUsers) List(string, int, int) ([]user.User, int64, error) { return nil, 0, nil }
func (fakeUsers) CreateProfile(*user.Profile) error                 { return nil }
func (fakeUsers) GetProfile(uint64) (*user.Profile, error)          { return nil, user.ErrNotFound }
func (fakeUsers) SaveProfile(*user.Profile) error                   { return nil }

type fakeCats struct{}

func (fakeCats) Create(c *category.Category) (*category.Category, error) { return c, nil }
func (fakeCats) GetByID(id uint64) (*category.Category, error) {
	if id > 100 {
		return nil, category.ErrNotFound
	}
	return &category.Category{ID: id, Name: "Tech"}, nil
}
func (fakeCats) GetBySlug(string) (*category.Category, error) { return nil, category.ErrNotFound }
func (fakeCats) List(string, string, int, int) ([]category.Category, int64, error) {
	return nil, 0, nil
}
func (fakeCats) Save(*category.Category) error { return nil }
func (fakeCats) Delete(uint64) error           { return nil }

func newTestService() Service {
	return NewService(newMemRepo(), fakeUsers{}, fakeCats{})
}

func TestSubscribeToAuthor(t *testing.T) {
	svc := newTestService()

	v, err := svc.Subscribe(2, SubscribeReq{Type: TypeAuthor, TargetID: 1})
	require.NoError(t, err)
	assert.True(t, v.IsActive)
	assert.Equal(t, "Writer", v.TargetName)

	subs, err := svc.AuthorSubscribers(1)
	require.NoError(t, err)
	assert.Equal(t, []uint64{2}, subs)
}

func TestSelfSubscribeRejected(t *testing.T) {
	svc := newTestService()
	_, err := svc.Subscribe(1, SubscribeReq{Type: TypeAuthor, TargetID: 1})
	assert.ErrorIs(t, err, ErrSelfSubscribe)
}

func TestDuplicateActiveSubscriptionRejected(t *testing.T) {
	svc := newTestService()
	_, err := svc.Subscribe(2, SubscribeReq{Type: TypeCategory, TargetID: 5})
	require.NoError(t, err)
	_, err = svc.Subscribe(2, SubscribeReq{Type: TypeCategory, TargetID: 5})
	assert.ErrorIs(t, err, ErrAlreadySubscribed)
}

func TestUnsubscribeDeactivatesAndResubscribeReactivates(t *testing.T) {
	svc := newTestService()

	first, err := svc.Subscribe(2, SubscribeReq{Type: TypeAuthor, TargetID: 1})
	require.NoError(t, err)

	require.NoError(t, svc.Unsubscribe(2, TypeAuthor, 1))
	subs, err := svc.AuthorSubscribers(1)
	require.NoError(t, err)
	assert.Empty(t, subs)

	// Unsubscribing twice has nothing left to deactivate.
	assert.ErrorIs(t, svc.Unsubscribe(2, TypeAuthor, 1), ErrNotFound)

	// Subscribing again reuses the same row.
	again, err := svc.Subscribe(2, SubscribeReq{Type: TypeAuthor, TargetID: 1})
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID)
	assert.True(t, again.IsActive)
}

func TestSubscribeUnknownTargetRejected(t *testing.T) {
	svc := newTestService()
	_, err := svc.Subscribe(2, SubscribeReq{Type: TypeAuthor, TargetID: 999})
	assert.ErrorIs(t, err, ErrBadTarget)

	_, err = svc.Subscribe(2, SubscribeReq{Type: TypeCategory, TargetID: 999})
	assert.ErrorIs(t, err, ErrBadTarget)
}

func TestListMineOnlyActive(t *testing.T) {
	svc := newTestService()

	_, err := svc.Subscribe(2, SubscribeReq{Type: TypeAuthor, TargetID: 1})
	require.NoError(t, err)
	_, err = svc.Subscribe(2, SubscribeReq{Type: TypeCategory, TargetID: 7})
	require.NoError(t, err)
	require.NoError(t, svc.Unsubscribe(2, TypeAuthor, 1))

	views, count, err := svc.ListMine(2, 50, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
	require.Len(t, views, 1)
	assert.Equal(t, TypeCategory, views[0].Type)
	assert.Equal(t, "Tech", views[0].TargetName)
}
