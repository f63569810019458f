package post

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kimanithuo1/backendCapstoneProject/internal/category"
	"github.com/kimanithuo1/backendCapstoneProject/internal/events"
	"github.com/kimanithuo1/backendCapstoneProject/internal/shared/slug"
	"github.com/kimanithuo1/backendCapstoneProject/internal/tag"
	"github.com/kimanithuo1/backendCapstoneProject/internal/user"
)

var (
	ErrNotAuthor       = errors.New("you can only modify your own posts")
	ErrAlreadyPub      = errors.New("post is already published")
	ErrNotPublished    = errors.New("only published posts can be unpublished")
	ErrScheduledInPast = errors.New("scheduled publish date must be in the future")
)

// CommentCounter reports approved-comment counts; implemented by the comment
// package.
type CommentCounter interface {
	CountApprovedByPost(postID uint64) (int64, error)
	CountApprovedByPosts(ids []uint64) (map[uint64]int64, error)
}

// RatingReader surfaces rating aggregates on post payloads; implemented by
// the rating package.
type RatingReader interface {
	StatsByPost(postID uint64) (avg float64, count int64, err error)
	UserRating(postID, userID uint64) (*UserRating, error)
}

// Indexer keeps the full-text index in step with post mutations. Only
// published posts are searchable.
type Indexer interface {
	IndexPost(id uint64, title, content, authorName string, tags []string, published bool) error
	DeletePost(id uint64) error
}

type NopIndexer struct{}

func (NopIndexer) IndexPost(uint64, string, string, string, []string, bool) error { return nil }
func (NopIndexer) DeletePost(uint64) error                                        { return nil }

type Service interface {
	Create(authorID uint64, in CreateReq) (*Detail, error)
	Get(id, viewerID uint64) (*Detail, error)
	GetBySlug(slug string, viewerID uint64) (*Detail, error)
	Update(id, authorID uint64, in UpdateReq) (*Detail, error)
	Delete(id, authorID uint64) error

	Publish(ctx context.Context, id, authorID uint64) (*Detail, error)
	Unpublish(id, authorID uint64) (*Detail, error)
	Archive(id, authorID uint64) (*Detail, error)

	Like(ctx context.Context, id, userID uint64) (int64, error)
	Unlike(id, userID uint64) (int64, error)
	ListLikedBy(userID uint64, limit, offset int) ([]ListItem, int64, error)

	List(f ListFilter, limit, offset int) ([]ListItem, int64, error)
	MostLiked() ([]ListItem, error)
	TopRated() ([]ListItem, error)
	Trending() ([]ListItem, error)

	// PostMeta supports cross-package notification flows without exposing
	// the whole model.
	PostMeta(id uint64) (title string, authorID uint64, err error)
	CountPublishedByAuthor(authorID uint64) (int64, error)
	CountPublishedByCategory(categoryID uint64) (int64, error)
	CountPublishedByTag(tagID uint64) (int64, error)

	// PublishDue moves scheduled drafts whose time has come to published;
	// the worker's cron calls it once a minute.
	PublishDue(ctx context.Context, now time.Time) (int, error)
}

type service struct {
	repo     Repository
	tags     tag.Service
	users    user.Repository
	cats     category.Repository
	comments CommentCounter
	ratings  RatingReader
	producer events.Producer
	index    Indexer
}

func NewService(
	repo Repository,
	tags tag.Service,
	users user.Repository,
	cats category.Repository,
	comments CommentCounter,
	ratings RatingReader,
	producer events.Producer,
	index Indexer,
) Service {
	return &service{
		repo: repo, tags: tags, users: users, cats: cats,
		comments: comments, ratings: ratings, producer: producer, index: index,
	}
}

func (s *service) Create(authorID uint64, in CreateReq) (*Detail, error) {
	if in.ScheduledPublish != nil && in.ScheduledPublish.Before(time.Now()) {
		return nil, ErrScheduledInPast
	}
	excerpt := in.Excerpt
	if excerpt == "" {
		excerpt = makeExcerpt(in.Content)
	}
	p := &Post{
		Title:            in.Title,
		Slug:             s.uniqueSlug(slug.Make(in.Title)),
		Content:          in.Content,
		Excerpt:          excerpt,
		AuthorID:         authorID,
		CategoryID:       in.CategoryID,
		Status:           StatusDraft,
		FeaturedImage:    in.FeaturedImage,
		ScheduledPublish: in.ScheduledPublish,
	}
	if len(in.TagIDs) > 0 {
		tags, err := s.resolveTags(in.TagIDs)
		if err != nil {
			return nil, err
		}
		p.Tags = tags
	}
	if err := s.repo.Create(p); err != nil {
		return nil, err
	}
	return s.detail(p, authorID), nil
}

func (s *service) Get(id, viewerID uint64) (*Detail, error) {
	p, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p.Status != StatusPublished && viewerID != p.AuthorID {
		return nil, ErrNotFound
	}
	// Every retrieve counts as a view.
	_ = s.repo.IncrementViews(p.ID)
	p.ViewsCount++
	return s.detail(p, viewerID), nil
}

func (s *service) GetBySlug(sl string, viewerID uint64) (*Detail, error) {
	p, err := s.repo.GetBySlug(sl)
	if err != nil {
		return nil, err
	}
	if p.Status != StatusPublished && viewerID != p.AuthorID {
		return nil, ErrNotFound
	}
	_ = s.repo.IncrementViews(p.ID)
	p.ViewsCount++
	return s.detail(p, viewerID), nil
}

func (s *service) Update(id, authorID uint64, in UpdateReq) (*Detail, error) {
	p, err := s.ownPost(id, authorID)
	if err != nil {
		return nil, err
	}
	if in.ScheduledPublish != nil && in.ScheduledPublish.Before(time.Now()) {
		return nil, ErrScheduledInPast
	}
	if in.Title != nil && *in.Title != p.Title {
		p.Title = *in.Title
		p.Slug = s.uniqueSlug(slug.Make(*in.Title))
	}
	if in.Content != nil {
		p.Content = *in.Content
		if in.Excerpt == nil && p.Excerpt == "" {
			p.Excerpt = makeExcerpt(*in.Content)
		}
	}
	if in.Excerpt != nil {
		p.Excerpt = *in.Excerpt
	}
	if in.CategoryID != nil {
		p.CategoryID = in.CategoryID
	}
	if in.FeaturedImage != nil {
		p.FeaturedImage = *in.FeaturedImage
	}
	if in.ScheduledPublish != nil {
		p.ScheduledPublish = in.ScheduledPublish
	}
	if err := s.repo.Save(p); err != nil {
		return nil, err
	}
	if in.TagIDs != nil {
		tags, err := s.resolveTags(in.TagIDs)
		if err != nil {
			return nil, err
		}
		if err := s.repo.ReplaceTags(p, tags); err != nil {
			return nil, err
		}
		p.Tags = tags
	}
	s.reindex(p)
	return s.detail(p, authorID), nil
}

func (s *service) Delete(id, authorID uint64) error {
	if _, err := s.ownPost(id, authorID); err != nil {
		return err
	}
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	return s.index.DeletePost(id)
}

func (s *service) Publish(ctx context.Context, id, authorID uint64) (*Detail, error) {
	p, err := s.ownPost(id, authorID)
	if err != nil {
		return nil, err
	}
	if p.Status == StatusPublished {
		return nil, ErrAlreadyPub
	}
	d, err := s.publish(ctx, p)
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (s *service) publish(ctx context.Context, p *Post) (*Detail, error) {
	now := time.Now()
	p.Status = StatusPublished
	p.PublishedDate = &now
	if err := s.repo.Save(p); err != nil {
		return nil, err
	}
	s.reindex(p)

	ev := events.PostPublished{
		PostID:   p.ID,
		Title:    p.Title,
		AuthorID: p.AuthorID,
		At:       now,
	}
	if author, err := s.users.GetByID(p.AuthorID); err == nil {
		ev.AuthorName = author.Name
	}
	if p.CategoryID != nil {
		if cat, err := s.cats.GetByID(*p.CategoryID); err == nil {
			ev.CategoryID = cat.ID
			ev.Category = cat.Name
		}
	}
	if err := s.producer.Publish(ctx, events.TopicPostPublished, ev); err != nil {
		// Subscribers miss one notification; the post itself is out.
		return s.detail(p, p.AuthorID), nil
	}
	return s.detail(p, p.AuthorID), nil
}

func (s *service) Unpublish(id, authorID uint64) (*Detail, error) {
	p, err := s.ownPost(id, authorID)
	if err != nil {
		return nil, err
	}
	if p.Status != StatusPublished {
		return nil, ErrNotPublished
	}
	p.Status = StatusDraft
	if err := s.repo.Save(p); err != nil {
		return nil, err
	}
	s.reindex(p)
	return s.detail(p, authorID), nil
}

func (s *service) Archive(id, authorID uint64) (*Detail, error) {
	p, err := s.ownPost(id, authorID)
	if err != nil {
		return nil, err
	}
	p.Status = StatusArchived
	if err := s.repo.Save(p); err != nil {
		return nil, err
	}
	s.reindex(p)
	return s.detail(p, authorID), nil
}

func (s *service) Like(ctx context.Context, id, userID uint64) (int64, error) {
	p, err := s.repo.GetByID(id)
	if err != nil {
		return 0, err
	}
	if err := s.repo.Like(id, userID); err != nil {
		return 0, err
	}
	if p.AuthorID != userID {
		ev := events.PostLiked{
			PostID: p.ID, Title: p.Title, AuthorID: p.AuthorID,
			LikerID: userID, At: time.Now(),
		}
		if liker, err := s.users.GetByID(userID); err == nil {
			ev.LikerName = liker.Name
		}
		_ = s.producer.Publish(ctx, events.TopicPostLiked, ev)
	}
	return s.repo.LikesCount(id)
}

func (s *service) Unlike(id, userID uint64) (int64, error) {
	if _, err := s.repo.GetByID(id); err != nil {
		return 0, err
	}
	if err := s.repo.Unlike(id, userID); err != nil {
		return 0, err
	}
	return s.repo.LikesCount(id)
}

func (s *service) ListLikedBy(userID uint64, limit, offset int) ([]ListItem, int64, error) {
	likes, count, err := s.repo.ListLikedBy(userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	items := make([]ListItem, 0, len(likes))
	for _, l := range likes {
		p, err := s.repo.GetByID(l.PostID)
		if err != nil {
			continue
		}
		items = append(items, s.listItem(p, nil, nil))
	}
	return items, count, nil
}

func (s *service) List(f ListFilter, limit, offset int) ([]ListItem, int64, error) {
	posts, count, err := s.repo.List(f, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return s.listItems(posts), count, nil
}

func (s *service) MostLiked() ([]ListItem, error) {
	posts, err := s.repo.MostLiked(10)
	if err != nil {
		return nil, err
	}
	return s.listItems(posts), nil
}

func (s *service) TopRated() ([]ListItem, error) {
	posts, err := s.repo.TopRated(10)
	if err != nil {
		return nil, err
	}
	return s.listItems(posts), nil
}

func (s *service) Trending() ([]ListItem, error) {
	posts, err := s.repo.Trending(time.Now().AddDate(0, 0, -7), 10)
	if err != nil {
		return nil, err
	}
	return s.listItems(posts), nil
}

func (s *service) PostMeta(id uint64) (string, uint64, error) {
	p, err := s.repo.GetByID(id)
	if err != nil {
		return "", 0, err
	}
	return p.Title, p.AuthorID, nil
}

func (s *service) CountPublishedByAuthor(authorID uint64) (int64, error) {
	return s.repo.CountPublishedByAuthor(authorID)
}

func (s *service) CountPublishedByCategory(categoryID uint64) (int64, error) {
	return s.repo.CountPublishedByCategory(categoryID)
}

func (s *service) CountPublishedByTag(tagID uint64) (int64, error) {
	_, count, err := s.repo.List(ListFilter{TagID: tagID}, 1, 0)
	return count, err
}

func (s *service) PublishDue(ctx context.Context, now time.Time) (int, error) {
	due, err := s.repo.DueScheduled(now)
	if err != nil {
		return 0, err
	}
	n := 0
	for i := range due {
		if _, err := s.publish(ctx, &due[i]); err == nil {
			n++
		}
	}
	return n, nil
}

// ---- assembly ----

func (s *service) ownPost(id, authorID uint64) (*Post, error) {
	p, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p.AuthorID != authorID {
		return nil, ErrNotAuthor
	}
	return p, nil
}

func (s *service) resolveTags(ids []uint64) ([]tag.Tag, error) {
	out := make([]tag.Tag, 0, len(ids))
	for _, id := range ids {
		t, err := s.tags.GetByID(id)
		if err != nil {
			return nil, fmt.Errorf("tag %d: %w", id, err)
		}
		out = append(out, *t)
	}
	return out, nil
}

func (s *service) uniqueSlug(base string) string {
	if base == "" {
		base = "post"
	}
	if _, err := s.repo.GetBySlug(base); errors.Is(err, ErrNotFound) {
		return base
	}
	for i := 2; i < 100; i++ {
		cand := fmt.Sprintf("%s-%d", base, i)
		if _, err := s.repo.GetBySlug(cand); errors.Is(err, ErrNotFound) {
			return cand
		}
	}
	return fmt.Sprintf("%s-%d", base, time.Now().Unix())
}

func (s *service) reindex(p *Post) {
	names := make([]string, 0, len(p.Tags))
	for _, t := range p.Tags {
		names = append(names, t.Name)
	}
	authorName := ""
	if u, err := s.users.GetByID(p.AuthorID); err == nil {
		authorName = u.Name
	}
	_ = s.index.IndexPost(p.ID, p.Title, p.Content, authorName, names, p.Status == StatusPublished)
}

func (s *service) authorName(id uint64, cache map[uint64]string) string {
	if name, ok := cache[id]; ok {
		return name
	}
	name := ""
	if u, err := s.users.GetByID(id); err == nil {
		name = u.Name
	}
	cache[id] = name
	return name
}

func (s *service) categoryName(id *uint64, cache map[uint64]string) string {
	if id == nil {
		return ""
	}
	if name, ok := cache[*id]; ok {
		return name
	}
	name := ""
	if c, err := s.cats.GetByID(*id); err == nil {
		name = c.Name
	}
	cache[*id] = name
	return name
}

func (s *service) listItems(posts []Post) []ListItem {
	ids := make([]uint64, len(posts))
	for i, p := range posts {
		ids[i] = p.ID
	}
	likes, _ := s.repo.LikesCountByPosts(ids)
	comments, _ := s.comments.CountApprovedByPosts(ids)
	authors := map[uint64]string{}
	cats := map[uint64]string{}
	items := make([]ListItem, 0, len(posts))
	for i := range posts {
		items = append(items, s.listItemCached(&posts[i], likes, comments, authors, cats))
	}
	return items
}

func (s *service) listItem(p *Post, likes, comments map[uint64]int64) ListItem {
	return s.listItemCached(p, likes, comments, map[uint64]string{}, map[uint64]string{})
}

func (s *service) listItemCached(p *Post, likes, comments map[uint64]int64, authors, cats map[uint64]string) ListItem {
	likesN := int64(0)
	if likes != nil {
		likesN = likes[p.ID]
	} else {
		likesN, _ = s.repo.LikesCount(p.ID)
	}
	commentsN := int64(0)
	if comments != nil {
		commentsN = comments[p.ID]
	} else {
		commentsN, _ = s.comments.CountApprovedByPost(p.ID)
	}
	tags := p.Tags
	if tags == nil {
		tags = []tag.Tag{}
	}
	return ListItem{
		ID:            p.ID,
		Title:         p.Title,
		Slug:          p.Slug,
		Excerpt:       p.Excerpt,
		Author:        s.authorName(p.AuthorID, authors),
		CategoryName:  s.categoryName(p.CategoryID, cats),
		Tags:          tags,
		FeaturedImage: p.FeaturedImage,
		PublishedDate: p.PublishedDate,
		ViewsCount:    p.ViewsCount,
		LikesCount:    likesN,
		CommentsCount: commentsN,
		Status:        p.Status,
	}
}

func (s *service) detail(p *Post, viewerID uint64) *Detail {
	likesN, _ := s.repo.LikesCount(p.ID)
	commentsN, _ := s.comments.CountApprovedByPost(p.ID)
	avg, ratingsN, _ := s.ratings.StatsByPost(p.ID)
	d := &Detail{
		Post:          *p,
		Author:        s.authorName(p.AuthorID, map[uint64]string{}),
		CategoryName:  s.categoryName(p.CategoryID, map[uint64]string{}),
		LikesCount:    likesN,
		AverageRating: avg,
		RatingsCount:  ratingsN,
		CommentsCount: commentsN,
	}
	if d.Tags == nil {
		d.Tags = []tag.Tag{}
	}
	if viewerID != 0 {
		d.UserHasLiked, _ = s.repo.UserHasLiked(p.ID, viewerID)
		d.UserRating, _ = s.ratings.UserRating(p.ID, viewerID)
	}
	return d
}

func makeExcerpt(content string) string {
	runes := []rune(content)
	if len(runes) <= 200 {
		return content
	}
	return string(runes[:200]) + "..."
}
