package di

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"evently/api/ticketmaster"
	"evently/cache"
	"evently/config"
)

func TestNewContainer_DevUsesMockAndMemoryCache(t *testing.T) {
	t.Setenv("PROJECT_ROOT", "..")
	cfg := config.Default()

	c, err := NewContainer(cfg)
	require.NoError(t, err)
	defer c.Close()

	assert.IsType(t, &ticketmaster.TicketmasterApiClientMock{}, c.TicketmasterAPI)
	assert.IsType(t, &cache.MemoryDetailsCache{}, c.DetailsCache)
	assert.Nil(t, c.RedisClient)

	_, list := c.ScreenRegistry.OpenList(context.Background())
	assert.Len(t, list.State().Events, 3)
}

func TestNewContainer_ProdUsesRealClient(t *testing.T) {
	cfg := config.Default()
	cfg.Env = config.ENV_PROD

	c, err := NewContainer(cfg)
	require.NoError(t, err)
	defer c.Close()

	assert.IsType(t, &ticketmaster.TicketmasterApiClient{}, c.TicketmasterAPI)
}

func TestNewContainer_RoutesRegistered(t *testing.T) {
	t.Setenv("PROJECT_ROOT", "..")
	c, err := NewContainer(config.Default())
	require.NoError(t, err)
	defer c.Close()

	rr := httptest.NewRecorder()
	c.MuxRouter.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestNewContainer_InvalidTimeZone(t *testing.T) {
	cfg := config.Default()
	cfg.Events.TimeZone = "Nowhere/Atlantis"

	_, err := NewContainer(cfg)
	assert.Error(t, err)
}
