package notification

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kimanithuo1/backendCapstoneProject/internal/events"
)

// Subscribers resolves who follows an author or category; implemented by the
// subscription package.
type Subscribers interface {
	AuthorSubscribers(authorID uint64) ([]uint64, error)
	CategorySubscribers(categoryID uint64) ([]uint64, error)
}

type Service interface {
	List(ctx context.Context, userID uint64, limit, offset int) ([]Notification, int64, error)
	MarkRead(ctx context.Context, userID uint64, id string) error
	MarkAllRead(ctx context.Context, userID uint64) error
	UnreadCount(ctx context.Context, userID uint64) (int64, error)

	// Fan-out entry points; the worker calls these off kafka events.
	NotifyPostPublished(ctx context.Context, ev events.PostPublished) error
	NotifyPostLiked(ctx context.Context, ev events.PostLiked) error
	NotifyPostRated(ctx context.Context, ev events.PostRated) error
	NotifyCommentCreated(ctx context.Context, ev events.CommentCreated) error
}

type service struct {
	repo Repository
	subs Subscribers
}

func NewService(repo Repository, subs Subscribers) Service {
	return &service{repo: repo, subs: subs}
}

func (s *service) List(ctx context.Context, userID uint64, limit, offset int) ([]Notification, int64, error) {
	return s.repo.List(ctx, userID, limit, offset)
}

func (s *service) MarkRead(ctx context.Context, userID uint64, id string) error {
	return s.repo.MarkRead(ctx, userID, id)
}

func (s *service) MarkAllRead(ctx context.Context, userID uint64) error {
	return s.repo.MarkAllRead(ctx, userID)
}

func (s *service) UnreadCount(ctx context.Context, userID uint64) (int64, error) {
	return s.repo.UnreadCount(ctx, userID)
}

func (s *service) push(ctx context.Context, userID uint64, typ, msg string, postID, actorID uint64, at time.Time) error {
	if at.IsZero() {
		at = time.Now()
	}
	return s.repo.Push(ctx, Notification{
		ID:        uuid.NewString(),
		UserID:    userID,
		Type:      typ,
		Message:   msg,
		PostID:    postID,
		ActorID:   actorID,
		CreatedAt: at,
	})
}

// NotifyPostPublished fans out to author and category followers, deduping
// users who follow both.
func (s *service) NotifyPostPublished(ctx context.Context, ev events.PostPublished) error {
	targets := map[uint64]bool{}
	if ids, err := s.subs.AuthorSubscribers(ev.AuthorID); err == nil {
		for _, id := range ids {
			targets[id] = true
		}
	}
	if ev.CategoryID != 0 {
		if ids, err := s.subs.CategorySubscribers(ev.CategoryID); err == nil {
			for _, id := range ids {
				targets[id] = true
			}
		}
	}
	delete(targets, ev.AuthorID)

	msg := fmt.Sprintf("%s published a new post: %s", ev.AuthorName, ev.Title)
	var firstErr error
	for id := range targets {
		if err := s.push(ctx, id, TypeNewPost, msg, ev.PostID, ev.AuthorID, ev.At); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (s *service) NotifyPostLiked(ctx context.Context, ev events.PostLiked) error {
	msg := fmt.Sprintf("%s liked your post: %s", ev.LikerName, ev.Title)
	return s.push(ctx, ev.AuthorID, TypeNewLike, msg, ev.PostID, ev.LikerID, ev.At)
}

func (s *service) NotifyPostRated(ctx context.Context, ev events.PostRated) error {
	msg := fmt.Sprintf("%s rated your post %d/5: %s", ev.RaterName, ev.Rating, ev.Title)
	return s.push(ctx, ev.AuthorID, TypeNewRating, msg, ev.PostID, ev.RaterID, ev.At)
}

func (s *service) NotifyCommentCreated(ctx context.Context, ev events.CommentCreated) error {
	msg := fmt.Sprintf("%s commented on your post: %s", ev.CommenterName, ev.Title)
	return s.push(ctx, ev.PostAuthorID, TypeNewComment, msg, ev.PostID, ev.CommenterID, ev.At)
}
