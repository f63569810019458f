package rating

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/kimanithuo1/backendCapstoneProject/internal/events"
	"github.com/kimanithuo1/backendCapstoneProject/internal/post"
	"github.com/kimanithuo1/backendCapstoneProject/internal/user"
)

var ErrAlreadyRated = errors.New("you have already rated this post, use PUT to update")

type PostGetter interface {
	PostMeta(id uint64) (title string, authorID uint64, err error)
}

type Service interface {
	Create(ctx context.Context, postID, userID uint64, in UpsertReq) (*View, error)
	Update(postID, userID uint64, in UpsertReq) (*View, error)
	Delete(postID, userID uint64) error

	ListByPost(postID uint64, limit, offset int) ([]View, int64, error)
	Stats(postID uint64) (Stats, error)

	// StatsByPost and UserRating feed post payload assembly.
	StatsByPost(postID uint64) (float64, int64, error)
	UserRating(postID, userID uint64) (*post.UserRating, error)
}

type service struct {
	repo     Repository
	posts    PostGetter
	users    user.Repository
	producer events.Producer
}

func NewService(repo Repository, posts PostGetter, users user.Repository, producer events.Producer) Service {
	return &service{repo: repo, posts: posts, users: users, producer: producer}
}

func (s *service) Create(ctx context.Context, postID, userID uint64, in UpsertReq) (*View, error) {
	title, postAuthor, err := s.posts.PostMeta(postID)
	if err != nil {
		return nil, err
	}
	if _, err := s.repo.GetByPostAndUser(postID, userID); err == nil {
		return nil, ErrAlreadyRated
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	rt := &Rating{PostID: postID, UserID: userID, Rating: in.Rating, Review: in.Review}
	if err := s.repo.Create(rt); err != nil {
		return nil, err
	}

	if postAuthor != userID {
		ev := events.PostRated{
			PostID:   postID,
			Title:    title,
			AuthorID: postAuthor,
			RaterID:  userID,
			Rating:   in.Rating,
			At:       time.Now(),
		}
		if u, err := s.users.GetByID(userID); err == nil {
			ev.RaterName = u.Name
		}
		_ = s.producer.Publish(ctx, events.TopicPostRated, ev)
	}
	v := s.view(rt)
	return &v, nil
}

func (s *service) Update(postID, userID uint64, in UpsertReq) (*View, error) {
	rt, err := s.repo.GetByPostAndUser(postID, userID)
	if err != nil {
		return nil, err
	}
	rt.Rating = in.Rating
	rt.Review = in.Review
	if err := s.repo.Save(rt); err != nil {
		return nil, err
	}
	v := s.view(rt)
	return &v, nil
}

func (s *service) Delete(postID, userID uint64) error {
	rt, err := s.repo.GetByPostAndUser(postID, userID)
	if err != nil {
		return err
	}
	return s.repo.Delete(rt.ID)
}

func (s *service) ListByPost(postID uint64, limit, offset int) ([]View, int64, error) {
	ratings, count, err := s.repo.ListByPost(postID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	views := make([]View, 0, len(ratings))
	for i := range ratings {
		views = append(views, s.view(&ratings[i]))
	}
	return views, count, nil
}

func (s *service) Stats(postID uint64) (Stats, error) {
	avg, n, err := s.StatsByPost(postID)
	return Stats{Average: avg, Count: n}, err
}

func (s *service) StatsByPost(postID uint64) (float64, int64, error) {
	avg, n, err := s.repo.StatsByPost(postID)
	if err != nil {
		return 0, 0, err
	}
	return math.Round(avg*100) / 100, n, nil
}

func (s *service) UserRating(postID, userID uint64) (*post.UserRating, error) {
	rt, err := s.repo.GetByPostAndUser(postID, userID)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &post.UserRating{Rating: rt.Rating, Review: rt.Review}, nil
}

func (s *service) view(rt *Rating) View {
	name := ""
	if u, err := s.users.GetByID(rt.UserID); err == nil {
		name = u.Name
	}
	return View{Rating: *rt, User: name}
}
