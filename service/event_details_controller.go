package services

import (
	"context"
	"log"
	"sync"
	"time"

	"evently/api"
	"evently/api/ticketmaster"
	"evently/cache"
	"evently/models"
	"evently/util"
)

// EventDetailsState is what a details screen renders. Data stays nil until a
// load succeeds.
type EventDetailsState struct {
	EventID   string               `json:"event_id"`
	Data      *models.EventDetails `json:"data,omitempty"`
	IsLoading bool                 `json:"is_loading"`
	Error     string               `json:"error,omitempty"`
}

// EventDetailsLabels are the derived display values of a details screen.
type EventDetailsLabels struct {
	DateTime       string   `json:"date_time"`
	Place          string   `json:"place"`
	Classification string   `json:"classification"`
	Price          string   `json:"price"`
	SeatMapURL     *string  `json:"seat_map_url,omitempty"`
	Images         []string `json:"images"`
}

// EventDetailsController drives one details screen: cache first, network on a
// miss, network always on Refresh.
type EventDetailsController struct {
	eventID  string
	api      ticketmaster.EventDetailsAPI
	cache    cache.DetailsCache
	observer func(EventDetailsState)

	mu     sync.Mutex
	state  EventDetailsState
	closed bool
}

func NewEventDetailsController(eventID string, detailsAPI ticketmaster.EventDetailsAPI, detailsCache cache.DetailsCache) *EventDetailsController {
	return &EventDetailsController{
		eventID: eventID,
		api:     detailsAPI,
		cache:   detailsCache,
		state:   EventDetailsState{EventID: eventID},
	}
}

// SetObserver registers fn to receive the state after every change.
func (c *EventDetailsController) SetObserver(fn func(EventDetailsState)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.observer = fn
}

func (c *EventDetailsController) EventID() string {
	return c.eventID
}

func (c *EventDetailsController) State() EventDetailsState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// snapshotLocked copies the state so callers never share Data with the
// controller.
func (c *EventDetailsController) snapshotLocked() EventDetailsState {
	s := c.state
	if s.Data != nil {
		data := s.Data.Clone()
		s.Data = &data
	}
	return s
}

// Load resolves the screen's initial data. A cache hit never touches the
// network.
func (c *EventDetailsController) Load(ctx context.Context) {
	c.mu.Lock()
	if c.closed || c.state.IsLoading {
		c.mu.Unlock()
		return
	}

	if details, ok := c.cache.Get(c.eventID); ok {
		log.Printf("[EventDetailsController] Cache hit for %s", c.eventID)
		c.state.Data = details
		c.state.Error = ""
		snapshot, observer := c.snapshotLocked(), c.observer
		c.mu.Unlock()
		notify(observer, snapshot)
		return
	}

	log.Printf("[EventDetailsController] Cache miss for %s", c.eventID)
	c.fetch(ctx)
}

// Refresh re-fetches from the network regardless of cache state and
// overwrites the cache entry on success.
func (c *EventDetailsController) Refresh(ctx context.Context) {
	c.mu.Lock()
	if c.closed || c.state.IsLoading {
		c.mu.Unlock()
		return
	}
	log.Printf("[EventDetailsController] Refreshing %s", c.eventID)
	c.fetch(ctx)
}

// fetch must be entered with c.mu held and releases it.
func (c *EventDetailsController) fetch(ctx context.Context) {
	c.state.IsLoading = true
	c.state.Error = ""
	snapshot, observer := c.snapshotLocked(), c.observer
	c.mu.Unlock()
	notify(observer, snapshot)

	details, err := c.api.FetchEventDetails(ctx, c.eventID)
	if err == nil {
		c.cache.Put(c.eventID, *details)
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		log.Printf("[EventDetailsController] Discarding result for closed screen %s", c.eventID)
		return
	}
	c.state.IsLoading = false
	if err != nil {
		log.Printf("[EventDetailsController] Failed to load %s: %v", c.eventID, err)
		c.state.Error = api.Message(err)
	} else {
		c.state.Data = details
	}
	snapshot, observer = c.snapshotLocked(), c.observer
	c.mu.Unlock()
	notify(observer, snapshot)
}

// Close marks the screen as dismissed. Results arriving later are dropped.
func (c *EventDetailsController) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
}

func (c *EventDetailsController) DateTimeLabel(loc *time.Location) string {
	data := c.State().Data
	if data == nil {
		return util.DATE_NOT_AVAILABLE
	}
	return util.DateTimeLabel(data.Dates.Start, loc)
}

func (c *EventDetailsController) ClassificationLabel() string {
	data := c.State().Data
	if data == nil {
		return util.CLASSIFICATION_NOT_AVAILABLE
	}
	return util.ClassificationLabel(data.Classifications)
}

// PriceLabel never returns an empty string: a missing price is the sentinel,
// a zero price is rendered as such.
func (c *EventDetailsController) PriceLabel() string {
	data := c.State().Data
	if data == nil {
		return util.PRICE_NOT_AVAILABLE
	}
	return util.MinPriceLabel(data.PriceRanges)
}

func (c *EventDetailsController) SeatMapURL() (string, bool) {
	data := c.State().Data
	if data == nil {
		return "", false
	}
	return util.SeatMapURL(data.SeatMap)
}

func (c *EventDetailsController) ImageURLs() []string {
	data := c.State().Data
	if data == nil {
		return []string{}
	}
	return models.ImageURLs(data.Images)
}

// Labels computes every derived value from a single state snapshot.
func (s EventDetailsState) Labels(loc *time.Location) EventDetailsLabels {
	labels := EventDetailsLabels{
		DateTime:       util.DATE_NOT_AVAILABLE,
		Place:          util.PLACE_NOT_AVAILABLE,
		Classification: util.CLASSIFICATION_NOT_AVAILABLE,
		Price:          util.PRICE_NOT_AVAILABLE,
		Images:         []string{},
	}
	if s.Data == nil {
		return labels
	}
	labels.DateTime = util.DateTimeLabel(s.Data.Dates.Start, loc)
	labels.Place = util.PlaceLabel(s.Data.Venue())
	labels.Classification = util.ClassificationLabel(s.Data.Classifications)
	labels.Price = util.MinPriceLabel(s.Data.PriceRanges)
	if url, ok := util.SeatMapURL(s.Data.SeatMap); ok {
		labels.SeatMapURL = &url
	}
	labels.Images = models.ImageURLs(s.Data.Images)
	return labels
}

func notify[S any](observer func(S), state S) {
	if observer != nil {
		observer(state)
	}
}
