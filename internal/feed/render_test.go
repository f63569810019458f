package feed

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRenderCard(t *testing.T) {
	published := time.Date(2026, time.March, 7, 12, 0, 0, 0, time.UTC)
	p := Post{
		Title:         "Go Generics in Practice",
		Slug:          "go-generics-in-practice",
		Excerpt:       "A short excerpt.",
		Author:        "Jane Doe",
		CategoryName:  "Programming",
		PublishedDate: &published,
		ViewsCount:    12,
		LikesCount:    3,
		CommentsCount: 1,
	}
	html := string(RenderCard(p))

	assert.Contains(t, html, `href="/posts/go-generics-in-practice/"`)
	assert.Contains(t, html, "Go Generics in Practice")
	assert.Contains(t, html, `<span class="category-badge">Programming</span>`)
	assert.Contains(t, html, "Mar 7, 2026")
	assert.Contains(t, html, "ui-avatars.com/api/?name=Jane+Doe")
	// No featured image falls back to the placeholder.
	assert.Contains(t, html, placeholderImage)
}

func TestRenderCardWithImageSkipsPlaceholder(t *testing.T) {
	p := Post{Title: "t", Slug: "t", FeaturedImage: "https://cdn.example.com/pic.png"}
	html := string(RenderCard(p))
	assert.Contains(t, html, "https://cdn.example.com/pic.png")
	assert.NotContains(t, html, placeholderImage)
}

func TestRenderCardOmitsEmptyCategoryBadge(t *testing.T) {
	html := string(RenderCard(Post{Title: "t", Slug: "t"}))
	assert.NotContains(t, html, "category-badge")
}

func TestTruncateExcerpt(t *testing.T) {
	short := "short enough"
	assert.Equal(t, short, TruncateExcerpt(short))

	long := strings.Repeat("x", 200)
	got := TruncateExcerpt(long)
	assert.Equal(t, strings.Repeat("x", 150)+"...", got)

	// Multi-byte runes count as single characters.
	wide := strings.Repeat("ä", 160)
	assert.Equal(t, strings.Repeat("ä", 150)+"...", TruncateExcerpt(wide))
}
