package httpx

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageParams(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		wantPage int
		wantSize int
	}{
		{"defaults", "", 1, DefaultPageSize},
		{"explicit", "page=3&page_size=25", 3, 25},
		{"zero page clamps to one", "page=0", 1, DefaultPageSize},
		{"negative size falls back", "page_size=-5", 1, DefaultPageSize},
		{"oversize clamps to max", "page_size=5000", 1, MaxPageSize},
		{"garbage falls back", "page=abc&page_size=xyz", 1, DefaultPageSize},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/api/posts/?"+tt.query, nil)
			page, size := PageParams(r)
			assert.Equal(t, tt.wantPage, page)
			assert.Equal(t, tt.wantSize, size)
		})
	}
}

func TestNewPageLinks(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/posts/?page=2", nil)
	pg := NewPage(r, "http://example.com", 25, 2, 10, []string{"a", "b"})

	require.NotNil(t, pg.Next)
	assert.Equal(t, "http://example.com/api/posts/?page=3", *pg.Next)
	require.NotNil(t, pg.Previous)
	assert.Equal(t, "http://example.com/api/posts/?page=1", *pg.Previous)
	assert.EqualValues(t, 25, pg.Count)
}

func TestNewPageLastPageHasNullNext(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/posts/?page=3", nil)
	pg := NewPage(r, "http://example.com", 25, 3, 10, []string{"x"})
	assert.Nil(t, pg.Next)
	require.NotNil(t, pg.Previous)
}

func TestNewPagePreservesQueryAndPageSize(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/posts/?page=1&page_size=5&search=go", nil)
	pg := NewPage(r, "http://example.com", 12, 1, 5, []string{"a"})
	require.NotNil(t, pg.Next)
	assert.Contains(t, *pg.Next, "search=go")
	assert.Contains(t, *pg.Next, "page_size=5")
	assert.Contains(t, *pg.Next, "page=2")
	assert.Nil(t, pg.Previous)
}

func TestNewPageNilResultsEncodeAsEmptyList(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/posts/", nil)
	pg := NewPage[string](r, "http://example.com", 0, 1, 10, nil)
	assert.NotNil(t, pg.Results)
	assert.Empty(t, pg.Results)
	assert.Nil(t, pg.Next)
}

func TestOffset(t *testing.T) {
	limit, offset := Offset(1, 10)
	assert.Equal(t, 10, limit)
	assert.Equal(t, 0, offset)

	limit, offset = Offset(4, 25)
	assert.Equal(t, 25, limit)
	assert.Equal(t, 75, offset)
}
