// Package feed implements the infinite-scroll controller behind the post
// listing: it watches scroll position on a rendering surface, fetches the
// next page of posts when the reader nears the bottom, and appends the
// results as cards. Page 1 is rendered server-side, so the controller
// starts fetching at page 2.
package feed

import "time"

// Post is the card-sized view item the listing API returns. The controller
// renders it verbatim and never mutates it.
type Post struct {
	ID            uint64     `json:"id"`
	Title         string     `json:"title"`
	Slug          string     `json:"slug"`
	Excerpt       string     `json:"excerpt"`
	Author        string     `json:"author"`
	CategoryName  string     `json:"category_name"`
	FeaturedImage string     `json:"featured_image"`
	PublishedDate *time.Time `json:"published_date"`
	ViewsCount    int64      `json:"views_count"`
	LikesCount    int64      `json:"likes_count"`
	CommentsCount int64      `json:"comments_count"`
}

// Page is one chunk of the paginated listing. A nil Next means the server
// has no further pages.
type Page struct {
	Results []Post  `json:"results"`
	Next    *string `json:"next"`
}

// Surface is the minimal rendering capability the controller needs. It
// keeps the gating and ordering logic testable without a real UI.
type Surface interface {
	// ScrollMetrics reports the current scroll position (viewport bottom)
	// and the total page height, in the same distance units.
	ScrollMetrics() (scrollPos, pageHeight float64)
	// Append renders one more card at the end of the list.
	Append(p Post)
	// ObserveScroll registers the handler to run on every scroll event.
	ObserveScroll(handler func())
}
