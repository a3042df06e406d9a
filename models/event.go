package models

import (
	"errors"
	"fmt"
)

// ErrInvalidEvent is returned by Validate when a decoded record is missing a
// field every event is guaranteed to carry.
var ErrInvalidEvent = errors.New("invalid event record")

// Event is the list-level summary of a Discovery API event. Identity is
// defined by ID alone.
type Event struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Dates    Dates    `json:"dates"`
	Place    *Place   `json:"place,omitempty"`
	Embedded Embedded `json:"_embedded"`
	Images   []Image  `json:"images"`
}

// Equal reports whether both events share the same identifier.
func (e Event) Equal(other Event) bool {
	return e.ID == other.ID
}

// Venue returns the event place, falling back to the first embedded venue.
func (e Event) Venue() *Place {
	return venueOf(e.Place, e.Embedded)
}

func (e Event) Validate() error {
	return validateRecord(e.ID, e.Dates)
}

func venueOf(place *Place, embedded Embedded) *Place {
	if place != nil {
		return place
	}
	if len(embedded.Venues) > 0 {
		v := embedded.Venues[0]
		return &v
	}
	return nil
}

func validateRecord(id string, dates Dates) error {
	if id == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidEvent)
	}
	if dates.Start.LocalDate == "" {
		return fmt.Errorf("%w: event %s has no start localDate", ErrInvalidEvent, id)
	}
	return nil
}
