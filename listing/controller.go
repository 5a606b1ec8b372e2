package listing

import (
	"rentscout/models"
)

// PageSize is the fixed number of listings fetched per page.
const PageSize = 10

// Request describes one fetch the caller must execute against the API. Gen
// ties the eventual Result back to the request that issued it; the Filter is
// the exact snapshot active when the fetch was requested.
type Request struct {
	Gen    uint64
	Filter models.Filter
	Limit  int
	Offset int
	Page   int
}

// Result settles a Request.
type Result struct {
	Gen  uint64
	Page *models.PropertyPage
	Err  error
}

// Controller owns the listing view state for one search surface: current
// page data, filter snapshot, loading flag, and error line. Each fetch runs
// Idle -> Loading -> (Success | Failed). A generation counter identifies the
// latest request; responses from superseded generations are discarded
// entirely so a slow early reply can never overwrite newer data.
type Controller struct {
	gen         uint64
	filters     models.Filter
	page        *models.PropertyPage
	currentPage int
	pendingPage int
	loading     bool
	errMsg      string
}

func NewController() *Controller {
	return &Controller{}
}

// LoadPage issues a fetch for pageIndex under the given filter snapshot.
// The index is clamped to the known page range; offset is always a multiple
// of PageSize. Loading stays set until the matching Result is applied.
func (c *Controller) LoadPage(pageIndex int, f models.Filter) Request {
	if pageIndex < 0 {
		pageIndex = 0
	}
	if tp := c.TotalPages(); tp > 0 && pageIndex > tp-1 {
		pageIndex = tp - 1
	}

	c.gen++
	c.filters = f
	c.loading = true
	c.errMsg = ""
	c.pendingPage = pageIndex

	return Request{
		Gen:    c.gen,
		Filter: f,
		Limit:  PageSize,
		Offset: pageIndex * PageSize,
		Page:   pageIndex,
	}
}

// SetPage fetches pageIndex with the currently stored filters.
func (c *Controller) SetPage(pageIndex int) Request {
	return c.LoadPage(pageIndex, c.filters)
}

// ApplyFilters stores the new snapshot and fetches page 0: changing filters
// always resets to the first page.
func (c *Controller) ApplyFilters(f models.Filter) Request {
	return c.LoadPage(0, f)
}

// Apply settles a fetch. A Result whose generation is no longer current is
// discarded whole, leaving data, loading, and error state untouched; the
// return value reports whether the Result was applied. Loading clears last
// in both arms so it covers the entire round trip.
func (c *Controller) Apply(res Result) bool {
	if res.Gen != c.gen {
		return false
	}

	if res.Err != nil {
		c.errMsg = res.Err.Error()
		c.loading = false
		return true
	}

	c.page = res.Page
	c.currentPage = c.pendingPage
	c.errMsg = ""
	c.loading = false
	return true
}

// TotalPages is derived from the last result, never stored.
func (c *Controller) TotalPages() int {
	if c.page == nil || c.page.TotalCount <= 0 {
		return 0
	}
	return (c.page.TotalCount + PageSize - 1) / PageSize
}

func (c *Controller) Page() *models.PropertyPage {
	return c.page
}

func (c *Controller) CurrentPage() int {
	return c.currentPage
}

func (c *Controller) Filters() models.Filter {
	return c.filters
}

func (c *Controller) Loading() bool {
	return c.loading
}

func (c *Controller) ErrMsg() string {
	return c.errMsg
}
