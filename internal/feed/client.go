package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Client fetches one page of the post listing.
type Client interface {
	FetchPage(ctx context.Context, page int) (Page, error)
}

// APIClient talks to the listing endpoint over HTTP.
type APIClient struct {
	base string
	http *http.Client
}

func NewAPIClient(base string) *APIClient {
	return &APIClient{
		base: strings.TrimRight(base, "/"),
		http: &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *APIClient) FetchPage(ctx context.Context, page int) (Page, error) {
	url := fmt.Sprintf("%s/api/posts/?page=%d", c.base, page)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Page{}, err
	}
	res, err := c.http.Do(req)
	if err != nil {
		return Page{}, fmt.Errorf("fetch page %d: %w", page, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return Page{}, fmt.Errorf("fetch page %d: unexpected status %d", page, res.StatusCode)
	}
	var pg Page
	if err := json.NewDecoder(res.Body).Decode(&pg); err != nil {
		return Page{}, fmt.Errorf("fetch page %d: decode: %w", page, err)
	}
	return pg, nil
}
