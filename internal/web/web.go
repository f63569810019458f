package web

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/kimanithuo1/backendCapstoneProject/internal/feed"
	"github.com/kimanithuo1/backendCapstoneProject/internal/post"
	"github.com/kimanithuo1/backendCapstoneProject/internal/shared/httpx"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// Handler serves the server-rendered pages. The listing page carries the
// first page of cards in the HTML; feed clients such as cmd/reader fetch
// from page 2 onward.
type Handler struct {
	posts post.Service
}

func NewHandler(posts post.Service) *Handler { return &Handler{posts: posts} }

type indexData struct {
	Cards   []template.HTML
	HasMore bool
}

func (h *Handler) Index(w http.ResponseWriter, r *http.Request) error {
	items, count, err := h.posts.List(post.ListFilter{Status: post.StatusPublished}, httpx.DefaultPageSize, 0)
	if err != nil {
		return err
	}
	data := indexData{HasMore: count > int64(len(items))}
	for _, it := range items {
		data.Cards = append(data.Cards, feed.RenderCard(toFeedPost(it)))
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return pages.ExecuteTemplate(w, "index.html", data)
}

func (h *Handler) PostPage(w http.ResponseWriter, r *http.Request) error {
	d, err := h.posts.GetBySlug(r.PathValue("slug"), httpx.UserOrZero(r))
	if err != nil {
		return httpx.ErrNotFound
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return pages.ExecuteTemplate(w, "post.html", d)
}

func toFeedPost(it post.ListItem) feed.Post {
	return feed.Post{
		ID:            it.ID,
		Title:         it.Title,
		Slug:          it.Slug,
		Excerpt:       it.Excerpt,
		Author:        it.Author,
		CategoryName:  it.CategoryName,
		FeaturedImage: it.FeaturedImage,
		PublishedDate: it.PublishedDate,
		ViewsCount:    it.ViewsCount,
		LikesCount:    it.LikesCount,
		CommentsCount: it.CommentsCount,
	}
}
