package feed

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSurface struct {
	scrollPos  float64
	pageHeight float64
	appended   []Post
	handler    func()
}

func (s *fakeSurface) ScrollMetrics() (float64, float64) { return s.scrollPos, s.pageHeight }
func (s *fakeSurface) Append(p Post)                     { s.appended = append(s.appended, p) }
func (s *fakeSurface) ObserveScroll(h func())            { s.handler = h }

func (s *fakeSurface) scroll(remaining float64) {
	s.pageHeight = 2000
	s.scrollPos = s.pageHeight - remaining
	if s.handler != nil {
		s.handler()
	}
}

// fakeClient serves canned pages and records every requested page number.
type fakeClient struct {
	mu    sync.Mutex
	pages map[int]Page
	err   error
	calls []int
	// block, when non-nil, holds FetchPage until closed.
	block chan struct{}
}

func (c *fakeClient) FetchPage(_ context.Context, page int) (Page, error) {
	c.mu.Lock()
	c.calls = append(c.calls, page)
	block := c.block
	c.mu.Unlock()
	if block != nil {
		<-block
	}
	if c.err != nil {
		return Page{}, c.err
	}
	return c.pages[page], nil
}

func (c *fakeClient) Calls() []int {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]int, len(c.calls))
	copy(out, c.calls)
	return out
}

func strptr(s string) *string { return &s }

func newTestController(client Client) (*Controller, *fakeSurface) {
	c := NewController(client, zerolog.Nop())
	s := &fakeSurface{}
	c.Initialize(s)
	return c, s
}

func TestScrollAboveThresholdDoesNothing(t *testing.T) {
	client := &fakeClient{pages: map[int]Page{}}
	c, s := newTestController(client)

	s.scroll(600)
	c.Wait()

	assert.Empty(t, client.Calls())
	assert.False(t, c.Loading())
	assert.True(t, c.HasMore())
	assert.Empty(t, s.appended)
}

func TestScrollWithinThresholdDispatchesPageTwo(t *testing.T) {
	client := &fakeClient{
		pages: map[int]Page{
			2: {Results: []Post{{Slug: "a"}, {Slug: "b"}}, Next: strptr("/api/posts/?page=3")},
		},
		block: make(chan struct{}),
	}
	c, s := newTestController(client)

	s.scroll(400)
	require.Equal(t, []int{2}, client.Calls())
	assert.True(t, c.Loading())

	close(client.block)
	c.Wait()

	require.Len(t, s.appended, 2)
	assert.Equal(t, "a", s.appended[0].Slug)
	assert.Equal(t, "b", s.appended[1].Slug)
	assert.False(t, c.Loading())
	assert.True(t, c.HasMore())
}

func TestLoadingGateSuppressesConcurrentFetches(t *testing.T) {
	client := &fakeClient{
		pages: map[int]Page{2: {Results: []Post{{Slug: "a"}}, Next: strptr("next")}},
		block: make(chan struct{}),
	}
	c, s := newTestController(client)

	s.scroll(100)
	for i := 0; i < 25; i++ {
		s.scroll(100)
	}
	require.Equal(t, []int{2}, client.Calls())

	close(client.block)
	c.Wait()
	assert.Equal(t, []int{2}, client.Calls())
}

func TestSequentialPagesAppendInOrder(t *testing.T) {
	client := &fakeClient{
		pages: map[int]Page{
			2: {Results: []Post{{Slug: "p2-a"}, {Slug: "p2-b"}}, Next: strptr("/api/posts/?page=3")},
			3: {Results: []Post{{Slug: "p3-a"}}, Next: nil},
		},
	}
	c, s := newTestController(client)
	// Page 1 arrives server-rendered.
	s.appended = []Post{{Slug: "p1-a"}, {Slug: "p1-b"}}

	s.scroll(200)
	c.Wait()
	require.Equal(t, []int{2}, client.Calls())
	assert.True(t, c.HasMore())

	s.scroll(200)
	c.Wait()
	require.Equal(t, []int{2, 3}, client.Calls())

	got := make([]string, len(s.appended))
	for i, p := range s.appended {
		got[i] = p.Slug
	}
	assert.Equal(t, []string{"p1-a", "p1-b", "p2-a", "p2-b", "p3-a"}, got)

	// next was null on page 3, so the feed is complete.
	assert.False(t, c.HasMore())
	s.scroll(200)
	c.Wait()
	assert.Equal(t, []int{2, 3}, client.Calls())
}

func TestEmptyResultsOverrideNonNullNext(t *testing.T) {
	client := &fakeClient{
		pages: map[int]Page{
			2: {Results: []Post{}, Next: strptr("/api/posts/?page=3")},
		},
	}
	c, s := newTestController(client)

	s.scroll(300)
	c.Wait()

	assert.Empty(t, s.appended)
	assert.False(t, c.HasMore())
	assert.False(t, c.Loading())

	// Terminal: further scrolls never fetch again.
	for i := 0; i < 5; i++ {
		s.scroll(0)
	}
	c.Wait()
	assert.Equal(t, []int{2}, client.Calls())
}

func TestFetchFailureReleasesGateAndAllowsRetry(t *testing.T) {
	client := &fakeClient{err: errors.New("boom")}
	c, s := newTestController(client)

	s.scroll(100)
	c.Wait()

	assert.Empty(t, s.appended)
	assert.False(t, c.Loading())
	assert.True(t, c.HasMore())

	// The page counter advanced at dispatch, so the retry asks for the
	// following page.
	client.mu.Lock()
	client.err = nil
	client.pages = map[int]Page{3: {Results: []Post{{Slug: "c"}}, Next: nil}}
	client.mu.Unlock()

	s.scroll(100)
	c.Wait()
	assert.Equal(t, []int{2, 3}, client.Calls())
	require.Len(t, s.appended, 1)
	assert.Equal(t, "c", s.appended[0].Slug)
}

func TestNilSurfaceIsInert(t *testing.T) {
	client := &fakeClient{pages: map[int]Page{}}
	c := NewController(client, zerolog.Nop())

	c.Initialize(nil)
	c.OnScroll()
	c.Wait()

	assert.Empty(t, client.Calls())
	assert.True(t, c.HasMore())
}

func TestThresholdBoundary(t *testing.T) {
	tests := []struct {
		name      string
		remaining float64
		wantFetch bool
	}{
		{"well above threshold", 600, false},
		{"just above threshold", 501, false},
		{"exactly at threshold", 500, true},
		{"below threshold", 400, true},
		{"at bottom", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &fakeClient{pages: map[int]Page{2: {Results: []Post{{Slug: "x"}}, Next: nil}}}
			c, s := newTestController(client)

			s.scroll(tt.remaining)
			c.Wait()

			if tt.wantFetch {
				assert.Equal(t, []int{2}, client.Calls())
			} else {
				assert.Empty(t, client.Calls())
			}
		})
	}
}
