package feed

import (
	"html/template"
	"net/url"
	"strings"
)

const (
	placeholderImage = "https://via.placeholder.com/400x200?text=Blog+Post"
	excerptLimit     = 150
)

var cardTmpl = template.Must(template.New("card").Parse(`<article class="post-card">
  <div class="post-card-image">
    <img src="{{.Image}}" alt="{{.Title}}">
    {{if .CategoryName}}<span class="category-badge">{{.CategoryName}}</span>{{end}}
  </div>
  <div class="post-card-body">
    <h3 class="post-title"><a href="/posts/{{.Slug}}/">{{.Title}}</a></h3>
    <p class="post-excerpt">{{.Excerpt}}</p>
    <div class="post-meta">
      <img class="author-avatar" src="{{.AvatarURL}}" alt="{{.Author}}">
      <span class="author-name">{{.Author}}</span>
      <span class="post-date">{{.Date}}</span>
    </div>
    <div class="post-stats">
      <span class="stat">&#128065; {{.ViewsCount}}</span>
      <span class="stat">&#10084; {{.LikesCount}}</span>
      <span class="stat">&#128172; {{.CommentsCount}}</span>
    </div>
  </div>
</article>`))

type cardData struct {
	Post
	Image     string
	AvatarURL string
	Excerpt   string
	Date      string
}

// RenderCard builds the HTML card for one post: featured image or a
// placeholder, category badge, generated author avatar, en-US short date,
// truncated excerpt and the view/like/comment counters.
func RenderCard(p Post) template.HTML {
	data := cardData{
		Post:      p,
		Image:     p.FeaturedImage,
		AvatarURL: AvatarURL(p.Author),
		Excerpt:   TruncateExcerpt(p.Excerpt),
	}
	if data.Image == "" {
		data.Image = placeholderImage
	}
	if p.PublishedDate != nil {
		data.Date = p.PublishedDate.Format("Jan 2, 2006")
	}
	var b strings.Builder
	if err := cardTmpl.Execute(&b, data); err != nil {
		return ""
	}
	return template.HTML(b.String())
}

// AvatarURL derives an avatar image for an author name from the
// ui-avatars generation service.
func AvatarURL(name string) string {
	return "https://ui-avatars.com/api/?name=" + url.QueryEscape(name) + "&background=random&size=64"
}

// TruncateExcerpt caps the excerpt at 150 characters with an ellipsis.
func TruncateExcerpt(s string) string {
	runes := []rune(s)
	if len(runes) <= excerptLimit {
		return s
	}
	return string(runes[:excerptLimit]) + "..."
}
