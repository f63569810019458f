package httpx

import (
	"fmt"
	"net/http"
	"net/url"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// PageParams reads page/page_size query parameters with the standard bounds.
func PageParams(r *http.Request) (page, pageSize int) {
	page = QueryInt(r, "page", 1)
	if page < 1 {
		page = 1
	}
	pageSize = QueryInt(r, "page_size", DefaultPageSize)
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return page, pageSize
}

// Page is the paginated list envelope. Next and Previous are absolute page
// URLs; Next is null on the last page, which is the signal infinite-scroll
// clients stop on.
type Page[T any] struct {
	Count    int64   `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

// NewPage builds the envelope for one page of results. publicURL is the
// externally visible base of the server, so links survive reverse proxies.
func NewPage[T any](r *http.Request, publicURL string, count int64, page, pageSize int, results []T) Page[T] {
	if results == nil {
		results = []T{}
	}
	out := Page[T]{Count: count, Results: results}
	last := int((count + int64(pageSize) - 1) / int64(pageSize))
	if page < last {
		u := pageURL(r, publicURL, page+1, pageSize)
		out.Next = &u
	}
	if page > 1 {
		u := pageURL(r, publicURL, page-1, pageSize)
		out.Previous = &u
	}
	return out
}

func pageURL(r *http.Request, publicURL string, page, pageSize int) string {
	q := url.Values{}
	for k, vs := range r.URL.Query() {
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	q.Set("page", fmt.Sprintf("%d", page))
	if pageSize != DefaultPageSize {
		q.Set("page_size", fmt.Sprintf("%d", pageSize))
	}
	return publicURL + r.URL.Path + "?" + q.Encode()
}

// Offset converts page params to the repository's limit/offset pair.
func Offset(page, pageSize int) (limit, offset int) {
	return pageSize, (page - 1) * pageSize
}
