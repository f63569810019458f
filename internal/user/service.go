package user

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// PostCounter reports published-post counts; the post package provides the
// real implementation, keeping the dependency one-directional.
type PostCounter interface {
	CountPublishedByAuthor(authorID uint64) (int64, error)
}

type Service interface {
	Register(email, password, name string) (*User, error)
	Login(email, password string) (*User, error)
	GetByID(id uint64) (*PublicUser, error)
	List(search string, limit, offset int) ([]User, int64, error)
	GetProfile(userID uint64) (*Profile, error)
	UpdateProfile(userID uint64, in UpdateProfileReq) (*Profile, error)
}

type service struct {
	repo  Repository
	posts PostCounter
}

func NewService(r Repository, posts PostCounter) Service {
	return &service{repo: r, posts: posts}
}

func (s *service) Register(email, password, name string) (*User, error) {
	if exist, _ := s.repo.GetByEmail(email); exist != nil {
		return nil, errors.New("user exists")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.New("hash fail")
	}
	u, err := s.repo.Create(&User{Email: email, PassHash: string(hash), Name: name})
	if err != nil {
		return nil, err
	}
	// Every account gets an empty profile up front.
	if err := s.repo.CreateProfile(&Profile{UserID: u.ID}); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *service) Login(email, password string) (*User, error) {
	u, err := s.repo.GetByEmail(email)
	if err != nil {
		return nil, errors.New("wrong credentials")
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PassHash), []byte(password)) != nil {
		return nil, errors.New("wrong credentials")
	}
	return u, nil
}

func (s *service) GetByID(id uint64) (*PublicUser, error) {
	u, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	n, _ := s.posts.CountPublishedByAuthor(u.ID)
	return &PublicUser{User: *u, PostsCount: n}, nil
}

func (s *service) List(search string, limit, offset int) ([]User, int64, error) {
	return s.repo.List(search, limit, offset)
}

func (s *service) GetProfile(userID uint64) (*Profile, error) {
	p, err := s.repo.GetProfile(userID)
	if errors.Is(err, ErrNotFound) {
		// Accounts predating auto-created profiles get one lazily.
		p = &Profile{UserID: userID}
		if cerr := s.repo.CreateProfile(p); cerr != nil {
			return nil, cerr
		}
		return p, nil
	}
	return p, err
}

func (s *service) UpdateProfile(userID uint64, in UpdateProfileReq) (*Profile, error) {
	p, err := s.GetProfile(userID)
	if err != nil {
		return nil, err
	}
	if in.Bio != nil {
		p.Bio = *in.Bio
	}
	if in.PictureURL != nil {
		p.PictureURL = *in.PictureURL
	}
	if in.Website != nil {
		p.Website = *in.Website
	}
	if in.Location != nil {
		p.Location = *in.Location
	}
	if in.BirthDate != nil {
		p.BirthDate = in.BirthDate
	}
	if err := s.repo.SaveProfile(p); err != nil {
		return nil, err
	}
	return p, nil
}
