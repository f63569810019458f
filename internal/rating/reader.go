package rating

import (
	"errors"
	"math"

	"github.com/kimanithuo1/backendCapstoneProject/internal/post"
)

// Reader exposes rating aggregates straight off the repository for post
// payload assembly. It exists so the post service can be built before the
// rating service, which itself needs the post service.
type Reader struct{ repo Repository }

func NewReader(repo Repository) *Reader { return &Reader{repo: repo} }

func (r *Reader) StatsByPost(postID uint64) (float64, int64, error) {
	avg, n, err := r.repo.StatsByPost(postID)
	if err != nil {
		return 0, 0, err
	}
	return math.Round(avg*100) / 100, n, nil
}

func (r *Reader) UserRating(postID, userID uint64) (*post.UserRating, error) {
	rt, err := r.repo.GetByPostAndUser(postID, userID)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &post.UserRating{Rating: rt.Rating, Review: rt.Review}, nil
}
