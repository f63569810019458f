package comment

import (
	"context"
	"errors"
	"time"

	"github.com/kimanithuo1/backendCapstoneProject/internal/events"
	"github.com/kimanithuo1/backendCapstoneProject/internal/user"
)

var (
	ErrNotAuthor   = errors.New("you can only modify your own comments")
	ErrParentOther = errors.New("parent comment belongs to a different post")
)

// PostGetter is the slice of the post service comments need; it keeps this
// package from importing post.
type PostGetter interface {
	PostMeta(id uint64) (title string, authorID uint64, err error)
}

type Service interface {
	Create(ctx context.Context, postID, authorID uint64, in CreateReq) (*View, error)
	Update(id, authorID uint64, in UpdateReq) (*View, error)
	Delete(id, authorID uint64) error

	ListByPost(postID uint64, limit, offset int) ([]View, int64, error)
	ListByAuthor(authorID uint64, limit, offset int) ([]View, int64, error)

	CountApprovedByPost(postID uint64) (int64, error)
	CountApprovedByPosts(ids []uint64) (map[uint64]int64, error)
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

func (s *service) Create(ctx context.Context, postID, authorID uint64, in CreateReq) (*View, error) {
	title, postAuthor, err := s.posts.PostMeta(postID)
	if err != nil {
		return nil, err
	}
	if in.ParentID != nil {
		parent, err := s.repo.GetByID(*in.ParentID)
		if err != nil {
			return nil, err
		}
		if parent.PostID != postID {
			return nil, ErrParentOther
		}
	}
	c := &Comment{
		PostID:     postID,
		AuthorID:   authorID,
		ParentID:   in.ParentID,
		Content:    in.Content,
		IsApproved: true,
	}
	if err := s.repo.Create(c); err != nil {
		return nil, err
	}

	if postAuthor != authorID {
		ev := events.CommentCreated{
			PostID:       postID,
			Title:        title,
			PostAuthorID: postAuthor,
			CommenterID:  authorID,
			At:           time.Now(),
		}
		if u, err := s.users.GetByID(authorID); err == nil {
			ev.CommenterName = u.Name
		}
		_ = s.producer.Publish(ctx, events.TopicCommentCreated, ev)
	}
	v := s.view(c)
	return &v, nil
}

func (s *service) Update(id, authorID uint64, in UpdateReq) (*View, error) {
	c, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if c.AuthorID != authorID {
		return nil, ErrNotAuthor
	}
	c.Content = in.Content
	if err := s.repo.Save(c); err != nil {
		return nil, err
	}
	v := s.view(c)
	return &v, nil
}

func (s *service) Delete(id, authorID uint64) error {
	c, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if c.AuthorID != authorID {
		return ErrNotAuthor
	}
	return s.repo.Delete(id)
}

func (s *service) ListByPost(postID uint64, limit, offset int) ([]View, int64, error) {
	roots, count, err := s.repo.ListTopLevel(postID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	ids := make([]uint64, len(roots))
	for i, c := range roots {
		ids[i] = c.ID
	}
	replies, err := s.repo.ListReplies(ids)
	if err != nil {
		return nil, 0, err
	}
	byParent := map[uint64][]View{}
	names := map[uint64]string{}
	for i := range replies {
		r := &replies[i]
		byParent[*r.ParentID] = append(byParent[*r.ParentID], s.viewCached(r, names))
	}
	views := make([]View, 0, len(roots))
	for i := range roots {
		v := s.viewCached(&roots[i], names)
		if kids, ok := byParent[roots[i].ID]; ok {
			v.Replies = kids
		}
		views = append(views, v)
	}
	return views, count, nil
}

func (s *service) ListByAuthor(authorID uint64, limit, offset int) ([]View, int64, error) {
	comments, count, err := s.repo.ListByAuthor(authorID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	names := map[uint64]string{}
	views := make([]View, 0, len(comments))
	for i := range comments {
		views = append(views, s.viewCached(&comments[i], names))
	}
	return views, count, nil
}

func (s *service) CountApprovedByPost(postID uint64) (int64, error) {
	return s.repo.CountApprovedByPost(postID)
}

func (s *service) CountApprovedByPosts(ids []uint64) (map[uint64]int64, error) {
	return s.repo.CountApprovedByPosts(ids)
}

func (s *service) view(c *Comment) View {
	return s.viewCached(c, map[uint64]string{})
}

func (s *service) viewCached(c *Comment, names map[uint64]string) View {
	name, ok := names[c.AuthorID]
	if !ok {
		if u, err := s.users.GetByID(c.AuthorID); err == nil {
			name = u.Name
		}
		names[c.AuthorID] = name
	}
	return View{Comment: *c, Author: name, Replies: []View{}}
}
