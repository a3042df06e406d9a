// Package cache holds decoded event details between visits of the same
// details screen. Entries may disappear at any time; callers must treat a
// miss as a normal outcome.
package cache

import "evently/models"

// Entry wraps exactly one EventDetails value.
type Entry struct {
	Details models.EventDetails `json:"details"`
}

func NewEntry(details models.EventDetails) Entry {
	return Entry{Details: details}
}

// DetailsCache is safe for concurrent use by any number of screens.
type DetailsCache interface {
	// Get returns the cached details, or false on a miss.
	Get(eventID string) (*models.EventDetails, bool)
	// Put overwrites any existing entry for eventID.
	Put(eventID string, details models.EventDetails)
	// Remove is idempotent.
	Remove(eventID string)
}
