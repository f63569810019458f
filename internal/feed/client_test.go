package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIClientFetchPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/posts/", r.URL.Path)
		assert.Equal(t, "3", r.URL.Query().Get("page"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results":[{"slug":"a","title":"A"}],"next":null}`))
	}))
	defer srv.Close()

	pg, err := NewAPIClient(srv.URL).FetchPage(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, pg.Results, 1)
	assert.Equal(t, "a", pg.Results[0].Slug)
	assert.Nil(t, pg.Next)
}

func TestAPIClientNonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := NewAPIClient(srv.URL).FetchPage(context.Background(), 2)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}
