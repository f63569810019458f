package subscription

import (
	"errors"

	"github.com/kimanithuo1/backendCapstoneProject/internal/category"
	"github.com/kimanithuo1/backendCapstoneProject/internal/user"
)

var (
	ErrSelfSubscribe     = errors.New("you cannot subscribe to yourself")
	ErrAlreadySubscribed = errors.New("already subscribed")
	ErrBadTarget         = errors.New("subscription target does not exist")
)

type Service interface {
	Subscribe(subscriberID uint64, in SubscribeReq) (*View, error)
	Unsubscribe(subscriberID uint64, typ string, targetID uint64) error
	ListMine(subscriberID uint64, limit, offset int) ([]View, int64, error)

	AuthorSubscribers(authorID uint64) ([]uint64, error)
	CategorySubscribers(categoryID uint64) ([]uint64, error)
}

type service struct {
	repo  Repository
	users user.Repository
	cats  category.Repository
}

func NewService(repo Repository, users user.Repository, cats category.Repository) Service {
	return &service{repo: repo, users: users, cats: cats}
}

func (s *service) Subscribe(subscriberID uint64, in SubscribeReq) (*View, error) {
	if in.Type == TypeAuthor && in.TargetID == subscriberID {
		return nil, ErrSelfSubscribe
	}
	name, err := s.targetName(in.Type, in.TargetID)
	if err != nil {
		return nil, ErrBadTarget
	}

	sub, err := s.repo.Get(subscriberID, in.Type, in.TargetID)
	switch {
	case err == nil && sub.IsActive:
		return nil, ErrAlreadySubscribed
	case err == nil:
		sub.IsActive = true
		if err := s.repo.Save(sub); err != nil {
			return nil, err
		}
	case errors.Is(err, ErrNotFound):
		sub = &Subscription{
			SubscriberID: subscriberID,
			Type:         in.Type,
			TargetID:     in.TargetID,
			IsActive:     true,
		}
		if err := s.repo.Create(sub); err != nil {
			return nil, err
		}
	default:
		return nil, err
	}
	return &View{Subscription: *sub, TargetName: name}, nil
}

func (s *service) Unsubscribe(subscriberID uint64, typ string, targetID uint64) error {
	sub, err := s.repo.Get(subscriberID, typ, targetID)
	if err != nil {
		return err
	}
	if !sub.IsActive {
		return ErrNotFound
	}
	sub.IsActive = false
	return s.repo.Save(sub)
}

func (s *service) ListMine(subscriberID uint64, limit, offset int) ([]View, int64, error) {
	subs, count, err := s.repo.ListBySubscriber(subscriberID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	views := make([]View, 0, len(subs))
	for _, sub := range subs {
		name, _ := s.targetName(sub.Type, sub.TargetID)
		views = append(views, View{Subscription: sub, TargetName: name})
	}
	return views, count, nil
}

func (s *service) AuthorSubscribers(authorID uint64) ([]uint64, error) {
	return s.repo.ActiveSubscribers(TypeAuthor, authorID)
}

func (s *service) CategorySubscribers(categoryID uint64) ([]uint64, error) {
	return s.repo.ActiveSubscribers(TypeCategory, categoryID)
}

func (s *service) targetName(typ string, targetID uint64) (string, error) {
	switch typ {
	case TypeAuthor:
		u, err := s.users.GetByID(targetID)
		if err != nil {
			return "", err
		}
		return u.Name, nil
	case TypeCategory:
		c, err := s.cats.GetByID(targetID)
		if err != nil {
			return "", err
		}
		return c.Name, nil
	}
	return "", ErrBadTarget
}
