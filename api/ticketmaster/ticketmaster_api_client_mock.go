package ticketmaster

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"evently/api"
	"evently/models"
	"evently/models/sorting"
	"evently/util"
)

// TicketmasterApiClientMock serves events from JSON fixtures on disk.
type TicketmasterApiClientMock struct {
	eventsPath  string
	detailsPath string
}

// NewTicketmasterApiClientMock creates a new instance of TicketmasterApiClientMock
func NewTicketmasterApiClientMock(eventsPath, detailsPath string) *TicketmasterApiClientMock {
	return &TicketmasterApiClientMock{
		eventsPath:  eventsPath,
		detailsPath: detailsPath,
	}
}

// FetchEvents pages through the fixture events. The sort strategy is ignored.
func (c *TicketmasterApiClientMock) FetchEvents(ctx context.Context, country string, page, size int, strategy sorting.Strategy) ([]models.Event, error) {
	if page < 0 || size <= 0 {
		return nil, fmt.Errorf("%w: page %d size %d", api.ErrInvalidURL, page, size)
	}

	response, err := util.ReadEventsResponseFromJSON(c.eventsPath)
	if err != nil {
		log.Println("[TicketmasterApiClientMock] Could not read events response from json")
		return nil, fmt.Errorf("%w: %v", api.ErrDecoding, err)
	}
	if response.Embedded == nil {
		return []models.Event{}, nil
	}

	events := response.Embedded.Events
	start := page * size
	if start >= len(events) {
		return []models.Event{}, nil
	}
	end := start + size
	if end > len(events) {
		end = len(events)
	}
	return append([]models.Event(nil), events[start:end]...), nil
}

// FetchEventDetails looks the event up in the details fixture.
func (c *TicketmasterApiClientMock) FetchEventDetails(ctx context.Context, eventID string) (*models.EventDetails, error) {
	details, err := util.ReadEventDetailsFromJSON(c.detailsPath)
	if err != nil {
		log.Println("[TicketmasterApiClientMock] Could not read event details from json")
		return nil, fmt.Errorf("%w: %v", api.ErrDecoding, err)
	}

	for i := range details {
		if details[i].ID == eventID {
			return &details[i], nil
		}
	}
	return nil, &api.StatusError{
		StatusCode: http.StatusNotFound,
		Status:     "404 Not Found",
		Endpoint:   EventDetailsEndpoint(eventID),
	}
}
