package ticketmaster

import (
	"context"

	"evently/models"
	"evently/models/sorting"
)

// EventsAPI fetches pages of the event collection.
type EventsAPI interface {
	FetchEvents(ctx context.Context, country string, page, size int, strategy sorting.Strategy) ([]models.Event, error)
}

// EventDetailsAPI fetches the full record of a single event.
type EventDetailsAPI interface {
	FetchEventDetails(ctx context.Context, eventID string) (*models.EventDetails, error)
}

// TicketmasterAPI defines the interface for interacting with the Ticketmaster Discovery API
type TicketmasterAPI interface {
	EventsAPI
	EventDetailsAPI
}

// Query parameter names understood by the Discovery API.
const (
	CountryCodeParam = "countryCode"
	PageParam        = "page"
	SizeParam        = "size"
	SortParam        = "sort"
)

const EventsEndpoint = "/events"

// EventDetailsEndpoint returns the path of a single event.
func EventDetailsEndpoint(eventID string) string {
	return EventsEndpoint + "/" + eventID
}
