package comment

import (
	"errors"

	"gorm.io/gorm"

	"github.com/kimanithuo1/backendCapstoneProject/internal/shared/db"
)

var ErrNotFound = errors.New("comment not found")

type Repository interface {
	Create(c *Comment) error
	GetByID(id uint64) (*Comment, error)
	Save(c *Comment) error
	Delete(id uint64) error

	// ListTopLevel returns approved root comments of a post, oldest first.
	ListTopLevel(postID uint64, limit, offset int) ([]Comment, int64, error)
	ListReplies(parentIDs []uint64) ([]Comment, error)
	ListByAuthor(authorID uint64, limit, offset int) ([]Comment, int64, error)

	CountApprovedByPost(postID uint64) (int64, error)
	CountApprovedByPosts(ids []uint64) (map[uint64]int64, error)
}

type repo struct{ store *db.Store }

func NewRepository(store *db.Store) Repository { return &repo{store: store} }

func (r *repo) Create(c *Comment) error {
	return r.store.Base.Create(c).Error
}

func (r *repo) GetByID(id uint64) (*Comment, error) {
	var c Comment
	err := r.store.Base.First(&c, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repo) Save(c *Comment) error {
	return r.store.Base.Save(c).Error
}

func (r *repo) Delete(id uint64) error {
	// Replies go with the parent.
	if err := r.store.Base.Where("parent_id = ?", id).Delete(&Comment{}).Error; err != nil {
		return err
	}
	return r.store.Base.Delete(&Comment{}, id).Error
}

func (r *repo) ListTopLevel(postID uint64, limit, offset int) ([]Comment, int64, error) {
	q := r.store.Base.Model(&Comment{}).
		Where("post_id = ? AND parent_id IS NULL AND is_approved = ?", postID, true)
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return nil, 0, err
	}
	var comments []Comment
	if err := q.Order("created_at").Limit(limit).Offset(offset).Find(&comments).Error; err != nil {
		return nil, 0, err
	}
	return comments, count, nil
}

func (r *repo) ListReplies(parentIDs []uint64) ([]Comment, error) {
	if len(parentIDs) == 0 {
		return nil, nil
	}
	var replies []Comment
	err := r.store.Base.
		Where("parent_id IN ? AND is_approved = ?", parentIDs, true).
		Order("created_at").Find(&replies).Error
	return replies, err
}

func (r *repo) ListByAuthor(authorID uint64, limit, offset int) ([]Comment, int64, error) {
	q := r.store.Base.Model(&Comment{}).Where("author_id = ?", authorID)
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return nil, 0, err
	}
	var comments []Comment
	if err := q.Order("created_at desc").Limit(limit).Offset(offset).Find(&comments).Error; err != nil {
		return nil, 0, err
	}
	return comments, count, nil
}

func (r *repo) CountApprovedByPost(postID uint64) (int64, error) {
	var n int64
	err := r.store.Base.Model(&Comment{}).
		Where("post_id = ? AND is_approved = ?", postID, true).Count(&n).Error
	return n, err
}

func (r *repo) CountApprovedByPosts(ids []uint64) (map[uint64]int64, error) {
	out := make(map[uint64]int64, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var rows []struct {
		PostID uint64
		N      int64
	}
	err := r.store.Base.Model(&Comment{}).
		Select("post_id, COUNT(*) as n").
		Where("post_id IN ? AND is_approved = ?", ids, true).
		Group("post_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.PostID] = row.N
	}
	return out, nil
}
