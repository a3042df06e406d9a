package services

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/google/uuid"

	"evently/api/ticketmaster"
	"evently/cache"
)

var ErrScreenNotFound = errors.New("screen not found")

// ScreenRegistry owns the controllers of every open screen so that an
// out-of-process renderer can address them by id.
type ScreenRegistry struct {
	eventsAPI  ticketmaster.EventsAPI
	detailsAPI ticketmaster.EventDetailsAPI
	cache      cache.DetailsCache
	notifier   Notifier
	country    string
	pageSize   int

	mu      sync.RWMutex
	lists   map[string]*EventsListController
	details map[string]*EventDetailsController
}

func NewScreenRegistry(
	eventsAPI ticketmaster.EventsAPI,
	detailsAPI ticketmaster.EventDetailsAPI,
	detailsCache cache.DetailsCache,
	notifier Notifier,
	country string,
	pageSize int) *ScreenRegistry {

	if notifier == nil {
		notifier = nopNotifier{}
	}
	return &ScreenRegistry{
		eventsAPI:  eventsAPI,
		detailsAPI: detailsAPI,
		cache:      detailsCache,
		notifier:   notifier,
		country:    country,
		pageSize:   pageSize,
		lists:      make(map[string]*EventsListController),
		details:    make(map[string]*EventDetailsController),
	}
}

// OpenList registers a new list screen and loads its first page.
func (r *ScreenRegistry) OpenList(ctx context.Context) (string, *EventsListController) {
	id := newScreenID()
	controller := NewEventsListController(r.eventsAPI, r.country, r.pageSize)
	controller.SetObserver(func(s EventsListState) {
		r.notifier.Notify(id, ScreenKindList, s)
	})

	r.mu.Lock()
	r.lists[id] = controller
	r.mu.Unlock()
	log.Printf("[ScreenRegistry] Opened list screen %s", id)

	controller.LoadFirst(ctx)
	return id, controller
}

func (r *ScreenRegistry) List(id string) (*EventsListController, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	controller, ok := r.lists[id]
	if !ok {
		return nil, ErrScreenNotFound
	}
	return controller, nil
}

func (r *ScreenRegistry) CloseList(id string) error {
	r.mu.Lock()
	controller, ok := r.lists[id]
	delete(r.lists, id)
	r.mu.Unlock()
	if !ok {
		return ErrScreenNotFound
	}
	controller.Close()
	log.Printf("[ScreenRegistry] Closed list screen %s", id)
	return nil
}

// OpenDetails registers a details screen for eventID and resolves its data.
func (r *ScreenRegistry) OpenDetails(ctx context.Context, eventID string) (string, *EventDetailsController) {
	id := newScreenID()
	controller := NewEventDetailsController(eventID, r.detailsAPI, r.cache)
	controller.SetObserver(func(s EventDetailsState) {
		r.notifier.Notify(id, ScreenKindDetails, s)
	})

	r.mu.Lock()
	r.details[id] = controller
	r.mu.Unlock()
	log.Printf("[ScreenRegistry] Opened details screen %s for event %s", id, eventID)

	controller.Load(ctx)
	return id, controller
}

func (r *ScreenRegistry) Details(id string) (*EventDetailsController, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	controller, ok := r.details[id]
	if !ok {
		return nil, ErrScreenNotFound
	}
	return controller, nil
}

func (r *ScreenRegistry) CloseDetails(id string) error {
	r.mu.Lock()
	controller, ok := r.details[id]
	delete(r.details, id)
	r.mu.Unlock()
	if !ok {
		return ErrScreenNotFound
	}
	controller.Close()
	log.Printf("[ScreenRegistry] Closed details screen %s", id)
	return nil
}

// CloseAll dismisses every open screen, used on shutdown.
func (r *ScreenRegistry) CloseAll() {
	r.mu.Lock()
	lists, details := r.lists, r.details
	r.lists = make(map[string]*EventsListController)
	r.details = make(map[string]*EventDetailsController)
	r.mu.Unlock()

	for _, c := range lists {
		c.Close()
	}
	for _, c := range details {
		c.Close()
	}
	log.Printf("[ScreenRegistry] Closed %d list and %d details screens", len(lists), len(details))
}

func (r *ScreenRegistry) Counts() (lists, details int) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.lists), len(r.details)
}

func newScreenID() string {
	return uuid.NewString()
}
