package services

import (
	"context"
	"sync"

	"evently/models"
	"evently/models/sorting"
)

type fetchCall struct {
	country  string
	page     int
	size     int
	strategy sorting.Strategy
}

// fakeEventsAPI records every call. When gate is set each call signals
// entered and blocks until gate is closed.
type fakeEventsAPI struct {
	mu      sync.Mutex
	calls   []fetchCall
	pages   func(page int) ([]models.Event, error)
	entered chan struct{}
	gate    chan struct{}
}

func (f *fakeEventsAPI) FetchEvents(ctx context.Context, country string, page, size int, strategy sorting.Strategy) ([]models.Event, error) {
	f.mu.Lock()
	f.calls = append(f.calls, fetchCall{country: country, page: page, size: size, strategy: strategy})
	f.mu.Unlock()

	if f.gate != nil {
		f.entered <- struct{}{}
		<-f.gate
	}
	return f.pages(page)
}

func (f *fakeEventsAPI) Calls() []fetchCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]fetchCall(nil), f.calls...)
}

func newGatedEventsAPI(pages func(int) ([]models.Event, error)) *fakeEventsAPI {
	return &fakeEventsAPI{pages: pages, entered: make(chan struct{}, 1), gate: make(chan struct{})}
}

type fakeDetailsAPI struct {
	mu      sync.Mutex
	calls   int
	details *models.EventDetails
	err     error
	entered chan struct{}
	gate    chan struct{}
}

func (f *fakeDetailsAPI) FetchEventDetails(ctx context.Context, eventID string) (*models.EventDetails, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()

	if f.gate != nil {
		f.entered <- struct{}{}
		<-f.gate
	}
	if f.err != nil {
		return nil, f.err
	}
	d := *f.details
	return &d, nil
}

func (f *fakeDetailsAPI) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// recordingCache is an in-memory DetailsCache that counts puts.
type recordingCache struct {
	mu      sync.Mutex
	entries map[string]models.EventDetails
	puts    []string
}

func newRecordingCache() *recordingCache {
	return &recordingCache{entries: make(map[string]models.EventDetails)}
}

func (c *recordingCache) Get(eventID string) (*models.EventDetails, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	d, ok := c.entries[eventID]
	if !ok {
		return nil, false
	}
	return &d, true
}

func (c *recordingCache) Put(eventID string, details models.EventDetails) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[eventID] = details
	c.puts = append(c.puts, eventID)
}

func (c *recordingCache) Remove(eventID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, eventID)
}

func (c *recordingCache) Puts() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.puts...)
}

func sampleEvent(id string) models.Event {
	return models.Event{
		ID:    id,
		Name:  "Event " + id,
		Dates: models.Dates{Start: models.StartDate{LocalDate: "2024-05-01"}},
	}
}

func sampleDetails(id, name string) *models.EventDetails {
	return &models.EventDetails{
		ID:    id,
		Name:  name,
		Dates: models.Dates{Start: models.StartDate{LocalDate: "2024-05-01"}},
	}
}
