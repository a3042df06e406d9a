package db_test

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"evently/db"
)

// Test the Set and Get methods
func TestRedisClient_SetAndGet(t *testing.T) {
	tests := []struct {
		name   string
		client db.RedisClient
	}{
		{"MockRedisClient", db.NewMockRedisClient(context.Background())},
		// Replace with a real Redis client configuration for integration testing
		// {"GoRedisClient", db.NewGoRedisClient(context.Background(), realRedisClient)},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			require.NoError(t, test.client.Set("test-key", "test-value", 0))

			retrieved, err := test.client.Get("test-key")
			require.NoError(t, err)
			assert.Equal(t, "test-value", retrieved)

			require.NoError(t, test.client.Del("test-key"))
			_, err = test.client.Get("test-key")
			assert.True(t, errors.Is(err, db.ErrKeyNotFound))

			// deleting twice is fine
			assert.NoError(t, test.client.Del("test-key"))
		})
	}
}

func TestMockRedisClient_TTL(t *testing.T) {
	client := db.NewMockRedisClient(context.Background())
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	client.SetClock(func() time.Time { return now })

	require.NoError(t, client.Set("k", "v", time.Minute))

	_, err := client.Get("k")
	require.NoError(t, err)

	now = now.Add(time.Minute)
	_, err = client.Get("k")
	assert.ErrorIs(t, err, db.ErrKeyNotFound)

	keys, err := client.Keys("*")
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestMockRedisClient_Keys(t *testing.T) {
	client := db.NewMockRedisClient(context.Background())
	_ = client.Set("event_details_v1:a", "1", 0)
	_ = client.Set("event_details_v1:b", "2", 0)
	_ = client.Set("other:c", "3", 0)

	keys, err := client.Keys("event_details_v1:*")
	require.NoError(t, err)
	sort.Strings(keys)
	assert.Equal(t, []string{"event_details_v1:a", "event_details_v1:b"}, keys)
}

func TestRedisClient_Ping(t *testing.T) {
	client := db.NewMockRedisClient(context.Background())
	assert.NoError(t, client.Ping())
	assert.NotNil(t, client.GetContext())
}
