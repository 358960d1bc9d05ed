// Package controller reconciles search, filter, sort and paging input into
// one outgoing query per change and folds out-of-order responses into a
// consistent result.
//
// All mutations, timer callbacks and fetch completions are serialised
// through one mutex. Only the latest dispatch is ever applied.
package controller

import (
	"context"
	"sync"
	"time"

	"ticketlist/internal/clock"
	"ticketlist/internal/controller/services/fetch"
	"ticketlist/internal/controller/services/filter"
	"ticketlist/internal/controller/services/pager"
	"ticketlist/internal/controller/services/query"
	"ticketlist/internal/controller/services/search"
	"ticketlist/internal/controller/services/sorting"
	"ticketlist/internal/domain"
	perr "ticketlist/internal/errors"
	"ticketlist/internal/eventbus"
	"ticketlist/internal/listing"
	"ticketlist/internal/logger"
)

// Fetcher retrieves one raw page from the Listing Service
type Fetcher interface {
	Fetch(ctx context.Context, e listing.Endpoint, q domain.QueryDescriptor) ([]domain.Record, error)
}

// Options configures a Controller
type Options struct {
	Spec          SurfaceSpec
	Fetcher       Fetcher
	Bus           eventbus.EventBus
	Clock         clock.Clock
	Location      *time.Location
	Debounce      time.Duration
	Weekend       domain.WeekendPolicy
	InitialSearch string
	Logger        *logger.Logger
}

// Snapshot is a consistent copy of everything the view needs
type Snapshot struct {
	Surface     domain.Surface
	Status      domain.Status
	Result      domain.DisplayResult
	Err         error
	Search      domain.SearchTerm
	Filter      domain.FilterDescriptor
	FilterLabel string
	Sort        domain.SortDescriptor
	Page        domain.PageState
	HasMore     bool
	Query       domain.QueryDescriptor
	Seq         uint64
}

// Controller drives one listing surface
type Controller struct {
	mu      sync.Mutex
	spec    SurfaceSpec
	fetcher Fetcher
	bus     eventbus.EventBus
	log     *logger.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	search *search.Service
	filter *filter.Service
	sort   *sorting.Service
	pager  *pager.Service
	query  *query.Service
	fetch  *fetch.Service

	started bool
	closed  bool
}

// New wires the services of one surface
func New(opt Options) (*Controller, error) {
	if opt.Fetcher == nil {
		return nil, perr.New(perr.KindValidation, "controller needs a fetcher")
	}
	if opt.Spec.PageSize <= 0 {
		return nil, perr.Newf(perr.KindValidation, "page size must be positive, got %d", opt.Spec.PageSize)
	}
	if opt.Bus == nil {
		opt.Bus = eventbus.New()
	}
	if opt.Clock == nil {
		opt.Clock = clock.Real()
	}
	log := opt.Logger
	if log == nil {
		log = logger.Named("controller")
	}
	l := log.With().Str("surface", string(opt.Spec.Name)).Logger()

	ctx, cancel := context.WithCancel(context.Background())
	c := &Controller{
		spec:    opt.Spec,
		fetcher: opt.Fetcher,
		bus:     opt.Bus,
		log:     &l,
		ctx:     ctx,
		cancel:  cancel,
	}

	name := opt.Spec.Name
	c.search = search.NewService(opt.Bus, name, opt.Clock, opt.Debounce, opt.InitialSearch)
	c.filter = filter.NewService(opt.Bus, name, opt.Clock, opt.Location, opt.Weekend)
	c.sort = sorting.NewService(opt.Bus, name, opt.Spec.DefaultSort)
	c.pager = pager.NewService(opt.Bus, name, opt.Spec.PageSize)
	c.query = query.NewService(opt.Bus, name)
	c.fetch = fetch.NewService(opt.Bus, name, opt.Spec.Project)

	c.query.SetResetFunction(c.pager.ResetToFirst)
	c.search.SetSettleFunction(c.onSearchSettled)

	return c, nil
}

// Spec returns the surface this controller drives
func (c *Controller) Spec() SurfaceSpec {
	return c.spec
}

// Start issues the first fetch
func (c *Controller) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.started || c.closed {
		return
	}
	c.started = true
	c.dispatch("start")
}

// Close stops timers, cancels the in-flight request and waits for it
func (c *Controller) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.search.Stop()
	c.fetch.Close()
	c.cancel()
	c.mu.Unlock()

	c.wg.Wait()
}

// Wait blocks until every dispatched fetch has resolved
func (c *Controller) Wait() {
	c.wg.Wait()
}

// TypeSearch records a keystroke; a fetch follows once typing pauses
func (c *Controller) TypeSearch(raw string) error {
	if err := c.requireSearchable("search"); err != nil {
		return err
	}
	c.search.Update(raw)
	return nil
}

// SearchNow settles the typed text immediately and fetches
func (c *Controller) SearchNow() error {
	if err := c.requireSearchable("search"); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.search.Flush()
	c.dispatch("search")
	return nil
}

func (c *Controller) onSearchSettled(term string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || term != c.search.Settled() {
		return
	}
	if b, ok := c.query.Baseline(); ok && b.Search == term {
		return
	}
	c.dispatch("search settled")
}

// SetCategory switches the category tab. Visible items are cleared
// until the new tab's first page arrives.
func (c *Controller) SetCategory(cat domain.Category) error {
	if err := c.requireSearchable("category"); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	changed, err := c.filter.SetCategory(cat)
	if err != nil || !changed || c.closed {
		return err
	}
	c.fetch.ClearResult()
	c.dispatch("category")
	return nil
}

// ApplyDatePreset selects Today, Tomorrow or the weekend
func (c *Controller) ApplyDatePreset(p domain.DatePreset) error {
	if err := c.requireSearchable("date"); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	changed, err := c.filter.ApplyPreset(p)
	if err != nil || !changed || c.closed {
		return err
	}
	c.dispatch("date preset")
	return nil
}

// SetCustomRange sets explicit date bounds; either may be nil
func (c *Controller) SetCustomRange(from, to *time.Time) error {
	if err := c.requireSearchable("date"); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	changed, err := c.filter.SetCustomRange(from, to)
	if err != nil || !changed || c.closed {
		return err
	}
	c.dispatch("custom range")
	return nil
}

// ClearDates removes the date filter
func (c *Controller) ClearDates() error {
	if err := c.requireSearchable("date"); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.filter.ClearDates() || c.closed {
		return nil
	}
	c.dispatch("clear dates")
	return nil
}

// SelectSort is a column header click
func (c *Controller) SelectSort(f domain.SortField) error {
	if err := c.requireSortable(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.sort.Select(f); err != nil {
		return err
	}
	if !c.closed {
		c.dispatch("sort")
	}
	return nil
}

// CycleSort moves to the next sort column
func (c *Controller) CycleSort() error {
	if err := c.requireSortable(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.sort.NextField()
	if !c.closed {
		c.dispatch("sort")
	}
	return nil
}

// NextPage advances when the current page had a lookahead record
func (c *Controller) NextPage() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || !c.pager.Next() {
		return false
	}
	c.dispatch("next page")
	return true
}

// PreviousPage goes back one page, never below 1
func (c *Controller) PreviousPage() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || !c.pager.Previous() {
		return false
	}
	c.dispatch("previous page")
	return true
}

// Refresh fetches the current query again
func (c *Controller) Refresh() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.closed {
		c.dispatch("refresh")
	}
}

// Snapshot returns a consistent copy of the controller state
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	st := c.fetch.State()
	return Snapshot{
		Surface:     c.spec.Name,
		Status:      st.Status,
		Result:      st.Result,
		Err:         st.Err,
		Search:      c.search.Term(),
		Filter:      c.filter.Descriptor(),
		FilterLabel: c.filter.Label(),
		Sort:        c.sort.Descriptor(),
		Page:        c.pager.Page(),
		HasMore:     c.pager.HasMore(),
		Query:       st.Query,
		Seq:         st.Latest,
	}
}

// dispatch composes the current query and fetches it. Caller holds mu.
func (c *Controller) dispatch(reason string) {
	q := c.query.Compose(c.search.Settled(), c.filter.Descriptor(), c.sort.Descriptor(), c.pager.Page())
	ticket, ctx := c.fetch.Begin(c.ctx, q)
	endpoint := c.spec.EndpointFor(q)

	c.log.Debug().
		Str("reason", reason).
		Uint64("seq", ticket.Seq).
		Int("page", q.Page.Number).
		Str("search", q.Search).
		Str("category", string(q.Filter.Category)).
		Msg("dispatch")

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()

		raw, err := c.fetcher.Fetch(ctx, endpoint, q)

		c.mu.Lock()
		defer c.mu.Unlock()

		if !c.fetch.Resolve(ticket, raw, err) {
			c.log.Debug().Uint64("seq", ticket.Seq).Msg("discarded stale response")
			return
		}
		if err != nil {
			c.log.Warn().Err(err).Uint64("seq", ticket.Seq).Str("kind", perr.KindOf(err).String()).Msg("fetch failed")
			return
		}
		c.pager.SetHasMore(c.fetch.Result().HasMore)
	}()
}

func (c *Controller) requireSearchable(field string) error {
	if !c.spec.Searchable {
		return perr.InvalidInput(field, "%s does not support %s", c.spec.Name, field)
	}
	return nil
}

func (c *Controller) requireSortable() error {
	if !c.spec.Sortable {
		return perr.InvalidInput("sort_by", "%s does not support sorting", c.spec.Name)
	}
	return nil
}
