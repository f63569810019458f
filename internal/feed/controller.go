package feed

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
)

// Threshold is the remaining scroll distance below which the next page is
// pre-fetched.
const Threshold = 500

// firstPage is the first page the controller requests; page 1 arrives with
// the initial server render.
const firstPage = 2

// Controller grows the visible post list as the reader scrolls. It owns its
// pagination state exclusively: only the scroll handler and the fetch
// settlement mutate page, loading and hasMore.
//
// At most one fetch is in flight at a time. page advances when a fetch is
// dispatched, not when it completes, so scroll events landing before the
// response cannot request the same page twice. hasMore is terminal: once
// false, scroll events are permanent no-ops.
type Controller struct {
	client  Client
	log     zerolog.Logger
	surface Surface

	mu      sync.Mutex
	page    int
	loading bool
	hasMore bool

	wg sync.WaitGroup
}

func NewController(client Client, log zerolog.Logger) *Controller {
	return &Controller{
		client:  client,
		log:     log,
		page:    firstPage,
		hasMore: true,
	}
}

// Initialize binds the controller to a rendering surface and starts
// observing its scroll events. A nil surface leaves the controller inert;
// a page without a feed is not an error.
func (c *Controller) Initialize(surface Surface) {
	if surface == nil {
		return
	}
	c.surface = surface
	surface.ObserveScroll(c.OnScroll)
}

// OnScroll runs on every scroll event and decides whether to fetch.
func (c *Controller) OnScroll() {
	if c.surface == nil {
		return
	}
	scrollPos, pageHeight := c.surface.ScrollMetrics()
	c.maybeLoadMore(scrollPos, pageHeight)
}

func (c *Controller) maybeLoadMore(scrollPos, pageHeight float64) {
	c.mu.Lock()
	if c.loading || !c.hasMore {
		c.mu.Unlock()
		return
	}
	if pageHeight-scrollPos > Threshold {
		c.mu.Unlock()
		return
	}
	c.loading = true
	page := c.page
	c.page++
	c.mu.Unlock()

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		pg, err := c.client.FetchPage(context.Background(), page)
		c.settle(page, pg, err)
	}()
}

// settle applies one fetch outcome. Results append in response order, after
// everything already rendered. An empty results list marks the feed complete
// even when next is non-null; the server said the page was empty and
// re-probing it would loop. Failures only release the loading gate so a
// later scroll can retry.
func (c *Controller) settle(page int, pg Page, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = false

	if err != nil {
		c.log.Error().Err(err).Int("page", page).Msg("feed fetch failed")
		return
	}
	if len(pg.Results) == 0 {
		c.hasMore = false
		return
	}
	for _, p := range pg.Results {
		c.surface.Append(p)
	}
	c.hasMore = pg.Next != nil
}

// Wait blocks until any in-flight fetch has settled.
func (c *Controller) Wait() { c.wg.Wait() }

// HasMore reports whether the feed may still grow.
func (c *Controller) HasMore() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hasMore
}

// Loading reports whether a fetch is currently in flight.
func (c *Controller) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}
