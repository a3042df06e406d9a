package redis

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"evently/cache"
	"evently/db"
	"evently/models"
)

const EVENT_DETAILS_KEY_FORMAT_V1 = "event_details_v1:%s"

// RedisEventDetailsDAO is a DetailsCache whose entries live in Redis under a
// TTL. Redis failures are logged and reported as misses.
type RedisEventDetailsDAO struct {
	client db.RedisClient
	ttl    time.Duration
}

// NewRedisEventDetailsDAO initializes a RedisEventDetailsDAO with the Redis client.
// A non-positive ttl stores entries without expiry.
func NewRedisEventDetailsDAO(client db.RedisClient, ttl time.Duration) *RedisEventDetailsDAO {
	return &RedisEventDetailsDAO{client: client, ttl: ttl}
}

func eventDetailsKey(eventID string) string {
	return fmt.Sprintf(EVENT_DETAILS_KEY_FORMAT_V1, eventID)
}

// SetEventDetails stores the details for eventID, overwriting any previous value.
func (dao *RedisEventDetailsDAO) SetEventDetails(eventID string, details models.EventDetails) error {
	data, err := json.Marshal(cache.NewEntry(details))
	if err != nil {
		return fmt.Errorf("failed to marshal event details %s: %w", eventID, err)
	}
	if err := dao.client.Set(eventDetailsKey(eventID), string(data), dao.ttl); err != nil {
		return fmt.Errorf("failed to set event details in redis: %w", err)
	}
	return nil
}

// GetEventDetails returns db.ErrKeyNotFound on a miss.
func (dao *RedisEventDetailsDAO) GetEventDetails(eventID string) (*models.EventDetails, error) {
	str, err := dao.client.Get(eventDetailsKey(eventID))
	if err != nil {
		return nil, fmt.Errorf("failed to get event details from redis: %w", err)
	}
	var entry cache.Entry
	if err := json.Unmarshal([]byte(str), &entry); err != nil {
		return nil, fmt.Errorf("failed to unmarshal event details JSON: %w", err)
	}
	return &entry.Details, nil
}

func (dao *RedisEventDetailsDAO) DeleteEventDetails(eventID string) error {
	key := eventDetailsKey(eventID)
	if err := dao.client.Del(key); err != nil {
		return fmt.Errorf("failed to delete event details key %s: %w", key, err)
	}
	log.Printf("[RedisEventDetailsDAO] Deleted event details cache for %s", eventID)
	return nil
}

// ListCachedEventIDs returns the ids of every cached details entry.
func (dao *RedisEventDetailsDAO) ListCachedEventIDs() ([]string, error) {
	keys, err := dao.client.Keys(eventDetailsKey("*"))
	if err != nil {
		return nil, fmt.Errorf("failed to list event details keys: %w", err)
	}
	prefix := eventDetailsKey("")
	ids := make([]string, 0, len(keys))
	for _, k := range keys {
		ids = append(ids, strings.TrimPrefix(k, prefix))
	}
	return ids, nil
}

func (dao *RedisEventDetailsDAO) Get(eventID string) (*models.EventDetails, bool) {
	details, err := dao.GetEventDetails(eventID)
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			log.Printf("[RedisEventDetailsDAO] Treating %s as a miss: %v", eventID, err)
		}
		return nil, false
	}
	return details, true
}

func (dao *RedisEventDetailsDAO) Put(eventID string, details models.EventDetails) {
	if err := dao.SetEventDetails(eventID, details); err != nil {
		log.Printf("[RedisEventDetailsDAO] Failed to cache %s: %v", eventID, err)
	}
}

func (dao *RedisEventDetailsDAO) Remove(eventID string) {
	if err := dao.DeleteEventDetails(eventID); err != nil {
		log.Printf("[RedisEventDetailsDAO] Failed to remove %s: %v", eventID, err)
	}
}

var _ cache.DetailsCache = (*RedisEventDetailsDAO)(nil)
