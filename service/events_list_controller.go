package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"evently/api"
	"evently/api/ticketmaster"
	"evently/models"
	"evently/models/sorting"
	"evently/util"
)

var (
	ErrInvalidCountry = errors.New("invalid country code")
	ErrLoadInProgress = errors.New("load in progress")
)

type DisplayMode string

const (
	DisplayModeList DisplayMode = "list"
	DisplayModeGrid DisplayMode = "grid"
)

// EventsListState is what a list screen renders. Events keeps server order
// across pages and is never deduplicated.
type EventsListState struct {
	Events       []models.Event   `json:"events"`
	IsLoading    bool             `json:"is_loading"`
	Error        string           `json:"error,omitempty"`
	CurrentPage  int              `json:"current_page"`
	SortStrategy sorting.Strategy `json:"sort_strategy"`
	Country      string           `json:"country"`
	DisplayMode  DisplayMode      `json:"display_mode"`
}

// Rows renders the list as display labels.
func (s EventsListState) Rows(loc *time.Location) []util.EventLabels {
	rows := make([]util.EventLabels, len(s.Events))
	for i, e := range s.Events {
		rows[i] = util.EventRowLabels(e, loc)
	}
	return rows
}

type pageRequest struct {
	generation uint64
	page       int
	country    string
	strategy   sorting.Strategy
	appendTo   bool
}

// EventsListController drives paginated, sortable retrieval of the event
// collection. At most one fetch runs at a time; overlapping calls are
// dropped, not queued.
type EventsListController struct {
	api      ticketmaster.EventsAPI
	pageSize int
	observer func(EventsListState)

	mu         sync.Mutex
	state      EventsListState
	generation uint64
	closed     bool
}

func NewEventsListController(eventsAPI ticketmaster.EventsAPI, country string, pageSize int) *EventsListController {
	return &EventsListController{
		api:      eventsAPI,
		pageSize: pageSize,
		state: EventsListState{
			Events:       []models.Event{},
			SortStrategy: sorting.Default,
			Country:      strings.ToUpper(country),
			DisplayMode:  DisplayModeList,
		},
	}
}

// SetObserver registers fn to receive the state after every change.
func (c *EventsListController) SetObserver(fn func(EventsListState)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.observer = fn
}

// State returns a copy; later loads never mutate a returned slice.
func (c *EventsListController) State() EventsListState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *EventsListController) snapshotLocked() EventsListState {
	s := c.state
	s.Events = append(make([]models.Event, 0, len(c.state.Events)), c.state.Events...)
	return s
}

// LoadFirst clears the list and fetches page 0 with the current strategy.
func (c *EventsListController) LoadFirst(ctx context.Context) {
	c.mu.Lock()
	if !c.readyLocked("LoadFirst") {
		c.mu.Unlock()
		return
	}
	req := c.beginLocked(0, false)
	c.run(ctx, req)
}

// LoadMore fetches the page after CurrentPage and appends it.
func (c *EventsListController) LoadMore(ctx context.Context) {
	c.mu.Lock()
	if !c.readyLocked("LoadMore") {
		c.mu.Unlock()
		return
	}
	req := c.beginLocked(c.state.CurrentPage+1, true)
	c.run(ctx, req)
}

// ChooseSortStrategy reloads from page 0 under the new strategy. Choosing the
// current strategy does nothing. Choosing another one while a load is running
// leaves the state untouched and returns ErrLoadInProgress.
func (c *EventsListController) ChooseSortStrategy(ctx context.Context, key sorting.Key, direction sorting.Direction) error {
	strategy, err := sorting.New(key, direction)
	if err != nil {
		return err
	}

	c.mu.Lock()
	if c.state.SortStrategy == strategy {
		c.mu.Unlock()
		return nil
	}
	if ok, err := c.reloadableLocked("ChooseSortStrategy"); !ok {
		c.mu.Unlock()
		return err
	}
	log.Printf("[EventsListController] Sort strategy %s -> %s", c.state.SortStrategy, strategy)
	c.state.SortStrategy = strategy
	req := c.beginLocked(0, false)
	c.run(ctx, req)
	return nil
}

func (c *EventsListController) IsCurrentStrategy(strategy sorting.Strategy) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.SortStrategy == strategy
}

func (c *EventsListController) Country() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Country
}

// ChooseCountry reloads from page 0 for an ISO 3166-1 alpha-2 country code.
// It returns ErrLoadInProgress under the same conditions as ChooseSortStrategy.
func (c *EventsListController) ChooseCountry(ctx context.Context, code string) error {
	code = strings.ToUpper(strings.TrimSpace(code))
	if len(code) != 2 {
		return fmt.Errorf("%w: %q", ErrInvalidCountry, code)
	}

	c.mu.Lock()
	if c.state.Country == code {
		c.mu.Unlock()
		return nil
	}
	if ok, err := c.reloadableLocked("ChooseCountry"); !ok {
		c.mu.Unlock()
		return err
	}
	c.state.Country = code
	req := c.beginLocked(0, false)
	c.run(ctx, req)
	return nil
}

func (c *EventsListController) DisplayMode() DisplayMode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.DisplayMode
}

func (c *EventsListController) ToggleDisplayMode() DisplayMode {
	c.mu.Lock()
	if c.state.DisplayMode == DisplayModeList {
		c.state.DisplayMode = DisplayModeGrid
	} else {
		c.state.DisplayMode = DisplayModeList
	}
	snapshot, observer := c.snapshotLocked(), c.observer
	c.mu.Unlock()
	notify(observer, snapshot)
	return snapshot.DisplayMode
}

// Close dismisses the screen. A fetch still in flight completes but its
// result is dropped.
func (c *EventsListController) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	c.generation++
}

func (c *EventsListController) readyLocked(op string) bool {
	if c.closed {
		log.Printf("[EventsListController] %s ignored, screen closed", op)
		return false
	}
	if c.state.IsLoading {
		log.Printf("[EventsListController] %s ignored, load in progress", op)
		return false
	}
	return true
}

// reloadableLocked is readyLocked for user choices: a running load is
// reported to the caller instead of being swallowed.
func (c *EventsListController) reloadableLocked(op string) (bool, error) {
	if c.state.IsLoading && !c.closed {
		log.Printf("[EventsListController] %s rejected, load in progress", op)
		return false, ErrLoadInProgress
	}
	return c.readyLocked(op), nil
}

func (c *EventsListController) beginLocked(page int, appendTo bool) pageRequest {
	c.generation++
	c.state.IsLoading = true
	c.state.Error = ""
	if !appendTo {
		c.state.Events = []models.Event{}
		c.state.CurrentPage = 0
	}
	return pageRequest{
		generation: c.generation,
		page:       page,
		country:    c.state.Country,
		strategy:   c.state.SortStrategy,
		appendTo:   appendTo,
	}
}

// run must be entered with c.mu held and releases it.
func (c *EventsListController) run(ctx context.Context, req pageRequest) {
	snapshot, observer := c.snapshotLocked(), c.observer
	c.mu.Unlock()
	notify(observer, snapshot)

	log.Printf("[EventsListController] Fetching page %d (%s, %s)", req.page, req.country, req.strategy)
	events, err := c.api.FetchEvents(ctx, req.country, req.page, c.pageSize, req.strategy)

	c.mu.Lock()
	if req.generation != c.generation {
		c.mu.Unlock()
		log.Printf("[EventsListController] Dropping stale result for page %d", req.page)
		return
	}
	c.state.IsLoading = false
	if err != nil {
		log.Printf("[EventsListController] Failed to fetch page %d: %v", req.page, err)
		c.state.Error = api.Message(err)
	} else {
		if req.appendTo {
			c.state.Events = append(c.state.Events, events...)
		} else {
			c.state.Events = append([]models.Event{}, events...)
		}
		c.state.CurrentPage = req.page
		log.Printf("[EventsListController] Loaded %d events, %d total", len(events), len(c.state.Events))
	}
	snapshot, observer = c.snapshotLocked(), c.observer
	c.mu.Unlock()
	notify(observer, snapshot)
}
