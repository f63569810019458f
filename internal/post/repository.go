package post

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/kimanithuo1/backendCapstoneProject/internal/shared/db"
	"github.com/kimanithuo1/backendCapstoneProject/internal/tag"
)

var (
	ErrNotFound     = errors.New("post not found")
	ErrAlreadyLiked = errors.New("already liked")
	ErrNotLiked     = errors.New("not liked")
)

// ListFilter narrows List queries. Zero values mean "no constraint";
// ViewerID widens visibility from published-only to published-or-own.
type ListFilter struct {
	Status     string
	AuthorID   uint64
	CategoryID uint64
	TagID      uint64
	Search     string
	Ordering   string
	ViewerID   uint64
	// MineOnly restricts to the viewer's posts regardless of status.
	MineOnly bool
	// ScheduledOnly keeps only posts with a pending scheduled publish time.
	ScheduledOnly bool
}

type Repository interface {
	Create(p *Post) error
	GetByID(id uint64) (*Post, error)
	GetBySlug(slug string) (*Post, error)
	Save(p *Post) error
	ReplaceTags(p *Post, tags []tag.Tag) error
	Delete(id uint64) error
	List(f ListFilter, limit, offset int) ([]Post, int64, error)
	IncrementViews(id uint64) error

	Like(postID, userID uint64) error
	Unlike(postID, userID uint64) error
	LikesCount(postID uint64) (int64, error)
	LikesCountByPosts(ids []uint64) (map[uint64]int64, error)
	UserHasLiked(postID, userID uint64) (bool, error)
	ListLikedBy(userID uint64, limit, offset int) ([]PostLike, int64, error)

	CountPublishedByAuthor(authorID uint64) (int64, error)
	CountPublishedByCategory(categoryID uint64) (int64, error)

	MostLiked(limit int) ([]Post, error)
	TopRated(limit int) ([]Post, error)
	Trending(since time.Time, limit int) ([]Post, error)
	DueScheduled(now time.Time) ([]Post, error)
}

type repo struct{ store *db.Store }

func NewRepository(store *db.Store) Repository { return &repo{store: store} }

func (r *repo) Create(p *Post) error {
	return r.store.Base.Create(p).Error
}

func (r *repo) GetByID(id uint64) (*Post, error) {
	var p Post
	err := r.store.Base.Preload("Tags").First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repo) GetBySlug(slug string) (*Post, error) {
	var p Post
	err := r.store.Base.Preload("Tags").Where("slug = ?", slug).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repo) Save(p *Post) error {
	return r.store.Base.Omit("Tags").Save(p).Error
}

func (r *repo) ReplaceTags(p *Post, tags []tag.Tag) error {
	return r.store.Base.Model(p).Association("Tags").Replace(tags)
}

func (r *repo) Delete(id uint64) error {
	return r.store.Base.Select("Tags").Delete(&Post{ID: id}).Error
}

func (r *repo) List(f ListFilter, limit, offset int) ([]Post, int64, error) {
	q := r.store.Base.Model(&Post{})

	switch {
	case f.MineOnly && f.ViewerID != 0:
		q = q.Where("author_id = ?", f.ViewerID)
	case f.ViewerID != 0:
		q = q.Where("status = ? OR author_id = ?", StatusPublished, f.ViewerID)
	default:
		q = q.Where("status = ?", StatusPublished)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.AuthorID != 0 {
		q = q.Where("author_id = ?", f.AuthorID)
	}
	if f.CategoryID != 0 {
		q = q.Where("category_id = ?", f.CategoryID)
	}
	if f.TagID != 0 {
		q = q.Where("id IN (?)",
			r.store.Base.Table("post_tags").Select("post_id").Where("tag_id = ?", f.TagID))
	}
	if f.Search != "" {
		like := "%" + f.Search + "%"
		q = q.Where("title ILIKE ? OR content ILIKE ?", like, like)
	}
	if f.ScheduledOnly {
		q = q.Where("scheduled_publish IS NOT NULL")
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	switch f.Ordering {
	case "published_date":
		q = q.Order("published_date")
	case "-published_date":
		q = q.Order("published_date desc")
	case "created_at":
		q = q.Order("created_at")
	case "title":
		q = q.Order("title")
	case "-title":
		q = q.Order("title desc")
	case "views_count":
		q = q.Order("views_count")
	case "-views_count":
		q = q.Order("views_count desc")
	case "-likes":
		q = q.Order("(SELECT COUNT(*) FROM post_likes WHERE post_likes.post_id = posts.id) desc")
	default:
		q = q.Order("created_at desc")
	}

	var posts []Post
	if err := q.Preload("Tags").Limit(limit).Offset(offset).Find(&posts).Error; err != nil {
		return nil, 0, err
	}
	return posts, count, nil
}

func (r *repo) IncrementViews(id uint64) error {
	return r.store.Base.Model(&Post{}).Where("id = ?", id).
		UpdateColumn("views_count", gorm.Expr("views_count + 1")).Error
}

func (r *repo) Like(postID, userID uint64) error {
	res := r.store.Base.Where(PostLike{PostID: postID, UserID: userID}).
		FirstOrCreate(&PostLike{PostID: postID, UserID: userID})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrAlreadyLiked
	}
	return nil
}

func (r *repo) Unlike(postID, userID uint64) error {
	res := r.store.Base.Where("post_id = ? AND user_id = ?", postID, userID).Delete(&PostLike{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotLiked
	}
	return nil
}

func (r *repo) LikesCount(postID uint64) (int64, error) {
	var n int64
	err := r.store.Base.Model(&PostLike{}).Where("post_id = ?", postID).Count(&n).Error
	return n, err
}

func (r *repo) LikesCountByPosts(ids []uint64) (map[uint64]int64, error) {
	out := make(map[uint64]int64, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var rows []struct {
		PostID uint64
		N      int64
	}
	err := r.store.Base.Model(&PostLike{}).
		Select("post_id, COUNT(*) as n").
		Where("post_id IN ?", ids).
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

func (r *repo) UserHasLiked(postID, userID uint64) (bool, error) {
	var n int64
	err := r.store.Base.Model(&PostLike{}).
		Where("post_id = ? AND user_id = ?", postID, userID).Count(&n).Error
	return n > 0, err
}

func (r *repo) ListLikedBy(userID uint64, limit, offset int) ([]PostLike, int64, error) {
	q := r.store.Base.Model(&PostLike{}).Where("user_id = ?", userID)
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return nil, 0, err
	}
	var likes []PostLike
	if err := q.Order("created_at desc").Limit(limit).Offset(offset).Find(&likes).Error; err != nil {
		return nil, 0, err
	}
	return likes, count, nil
}

func (r *repo) CountPublishedByAuthor(authorID uint64) (int64, error) {
	var n int64
	err := r.store.Base.Model(&Post{}).
		Where("author_id = ? AND status = ?", authorID, StatusPublished).Count(&n).Error
	return n, err
}

func (r *repo) CountPublishedByCategory(categoryID uint64) (int64, error) {
	var n int64
	err := r.store.Base.Model(&Post{}).
		Where("category_id = ? AND status = ?", categoryID, StatusPublished).Count(&n).Error
	return n, err
}

func (r *repo) MostLiked(limit int) ([]Post, error) {
	var posts []Post
	err := r.store.Base.Preload("Tags").
		Where("status = ?", StatusPublished).
		Order("(SELECT COUNT(*) FROM post_likes WHERE post_likes.post_id = posts.id) desc").
		Limit(limit).Find(&posts).Error
	return posts, err
}

func (r *repo) TopRated(limit int) ([]Post, error) {
	var posts []Post
	err := r.store.Base.Preload("Tags").
		Where("status = ?", StatusPublished).
		Where("id IN (?)", r.store.Base.Table("post_ratings").Select("post_id")).
		Order("(SELECT AVG(rating) FROM post_ratings WHERE post_ratings.post_id = posts.id) desc").
		Limit(limit).Find(&posts).Error
	return posts, err
}

func (r *repo) Trending(since time.Time, limit int) ([]Post, error) {
	var posts []Post
	err := r.store.Base.Preload("Tags").
		Where("status = ? AND published_date >= ?", StatusPublished, since).
		Order("views_count desc").
		Order("(SELECT COUNT(*) FROM post_likes WHERE post_likes.post_id = posts.id) desc").
		Limit(limit).Find(&posts).Error
	return posts, err
}

func (r *repo) DueScheduled(now time.Time) ([]Post, error) {
	var posts []Post
	err := r.store.Base.
		Where("status = ? AND scheduled_publish IS NOT NULL AND scheduled_publish <= ?", StatusDraft, now).
		Find(&posts).Error
	return posts, err
}
