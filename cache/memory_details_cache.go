package cache

import (
	"fmt"
	"log"

	lru "github.com/hashicorp/golang-lru/v2"

	"evently/models"
)

// MemoryDetailsCache keeps up to capacity entries in process memory and
// evicts the least recently used one when full. Eviction is best-effort and
// not a correctness guarantee. Records are deep-copied on the way in and out.
type MemoryDetailsCache struct {
	entries *lru.Cache[string, Entry]
}

func NewMemoryDetailsCache(capacity int) (*MemoryDetailsCache, error) {
	entries, err := lru.NewWithEvict[string, Entry](capacity, func(eventID string, _ Entry) {
		log.Printf("[MemoryDetailsCache] Evicted event %s", eventID)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create details cache: %w", err)
	}
	return &MemoryDetailsCache{entries: entries}, nil
}

func (c *MemoryDetailsCache) Get(eventID string) (*models.EventDetails, bool) {
	entry, ok := c.entries.Get(eventID)
	if !ok {
		return nil, false
	}
	details := entry.Details.Clone()
	return &details, true
}

func (c *MemoryDetailsCache) Put(eventID string, details models.EventDetails) {
	c.entries.Add(eventID, NewEntry(details.Clone()))
}

func (c *MemoryDetailsCache) Remove(eventID string) {
	c.entries.Remove(eventID)
}

func (c *MemoryDetailsCache) Len() int {
	return c.entries.Len()
}

// Purge drops every entry.
func (c *MemoryDetailsCache) Purge() {
	c.entries.Purge()
}
