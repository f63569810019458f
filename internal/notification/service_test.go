package notification

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kimanithuo1/backendCapstoneProject/internal/events"
)

type memRepo struct {
	byUser map[uint64][]Notification
}

func newMemRepo() *memRepo { return &memRepo{byUser: map[uint64][]Notification{}} }

func (m *memRepo) Push(_ context.Context, n Notification) error {
	// Newest first, like the redis list.
	m.byUser[n.UserID] = append([]Notification{n}, m.byUser[n.UserID]...)
	return nil
}

func (m *memRepo) List(_ context.Context, userID uint64, limit, offset int) ([]Notification, int64, error) {
	all := m.byUser[userID]
	if offset > len(all) {
		offset = len(all)
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], int64(len(all)), nil
}

func (m *memRepo) MarkRead(_ context.Context, userID uint64, id string) error {
	for i := range m.byUser[userID] {
		if m.byUser[userID][i].ID == id {
			m.byUser[userID][i].Read = true
			return nil
		}
	}
	return ErrNotFound
}

func (m *memRepo) MarkAllRead(_ context.Context, userID uint64) error {
	for i := range m.byUser[userID] {
		m.byUser[userID][i].Read = true
	}
	return nil
}

func (m *memRepo) UnreadCount(_ context.Context, userID uint64) (int64, error) {
	var n int64
	for _, it := range m.byUser[userID] {
		if !it.Read {
			n++
		}
	}
	return n, nil
}

type fakeSubs struct {
	byAuthor   map[uint64][]uint64
	byCategory map[uint64][]uint64
}

func (f fakeSubs) AuthorSubscribers(id uint64) ([]uint64, error)   { return f.byAuthor[id], nil }
func (f fakeSubs) CategorySubscribers(id uint64) ([]uint64, error) { return f.byCategory[id], nil }

func TestNotifyPostPublishedFansOutAndDedupes(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo, fakeSubs{
		byAuthor:   map[uint64][]uint64{1: {2, 3}},
		byCategory: map[uint64][]uint64{7: {3, 4, 1}},
	})
	ctx := context.Background()

	err := svc.NotifyPostPublished(ctx, events.PostPublished{
		PostID: 10, Title: "Hello", AuthorID: 1, AuthorName: "Writer",
		CategoryID: 7, Category: "Tech", At: time.Now(),
	})
	require.NoError(t, err)

	var got []uint64
	for uid := range repo.byUser {
		got = append(got, uid)
	}
	sort.Slice(got, func(i, j int) bool { return got[i] < got[j] })
	// User 3 follows both but gets one notification; the author gets none.
	assert.Equal(t, []uint64{2, 3, 4}, got)
	assert.Len(t, repo.byUser[3], 1)
	assert.Contains(t, repo.byUser[2][0].Message, "Writer")
	assert.Contains(t, repo.byUser[2][0].Message, "Hello")
	assert.Equal(t, TypeNewPost, repo.byUser[2][0].Type)
}

func TestNotifyDirectEvents(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo, fakeSubs{})
	ctx := context.Background()

	require.NoError(t, svc.NotifyPostLiked(ctx, events.PostLiked{
		PostID: 10, Title: "Hello", AuthorID: 1, LikerID: 2, LikerName: "Fan",
	}))
	require.NoError(t, svc.NotifyCommentCreated(ctx, events.CommentCreated{
		PostID: 10, Title: "Hello", PostAuthorID: 1, CommenterID: 3, CommenterName: "Reader",
	}))
	require.NoError(t, svc.NotifyPostRated(ctx, events.PostRated{
		PostID: 10, Title: "Hello", AuthorID: 1, RaterID: 4, RaterName: "Critic", Rating: 5,
	}))

	items, count, err := svc.List(ctx, 1, 10, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 3, count)
	require.Len(t, items, 3)
	// Newest first.
	assert.Equal(t, TypeNewRating, items[0].Type)
	assert.Contains(t, items[0].Message, "5/5")
	assert.Equal(t, TypeNewComment, items[1].Type)
	assert.Equal(t, TypeNewLike, items[2].Type)
	for _, it := range items {
		assert.NotEmpty(t, it.ID)
		assert.False(t, it.Read)
	}
}

func TestMarkReadFlow(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo, fakeSubs{})
	ctx := context.Background()

	require.NoError(t, svc.NotifyPostLiked(ctx, events.PostLiked{AuthorID: 1, LikerName: "a"}))
	require.NoError(t, svc.NotifyPostLiked(ctx, events.PostLiked{AuthorID: 1, LikerName: "b"}))

	n, err := svc.UnreadCount(ctx, 1)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	items, _, err := svc.List(ctx, 1, 10, 0)
	require.NoError(t, err)
	require.NoError(t, svc.MarkRead(ctx, 1, items[0].ID))

	n, err = svc.UnreadCount(ctx, 1)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	assert.ErrorIs(t, svc.MarkRead(ctx, 1, "missing-id"), ErrNotFound)

	require.NoError(t, svc.MarkAllRead(ctx, 1))
	n, err = svc.UnreadCount(ctx, 1)
	require.NoError(t, err)
	assert.Zero(t, n)
}
