package di

import (
	"context"
	"fmt"
	"log"

	"github.com/gorilla/mux"

	"evently/api"
	"evently/api/apikey"
	"evently/api/ticketmaster"
	"evently/cache"
	"evently/config"
	"evently/dao/redis"
	"evently/db"
	"evently/server"
	"evently/server/handlers"
	"evently/server/websocket"
	services "evently/service"
)

// Container holds all application dependencies.
type Container struct {
	Config            *config.Config
	TicketmasterAPI   ticketmaster.TicketmasterAPI
	RedisClient       *db.GoRedisClient
	DetailsCache      cache.DetailsCache
	Hub               *websocket.Hub
	ScreenRegistry    *services.ScreenRegistry
	EventsListHandler *handlers.EventsListHandler
	DetailsHandler    *handlers.EventDetailsHandler
	MetaHandler       *handlers.MetaHandler
	WebSocketHandler  *handlers.WebSocketHandler
	MuxRouter         *mux.Router
	Router            *server.Router
	EventlyHttpServer *server.EventlyHttpServer
}

// NewContainer initializes and wires up all dependencies.
func NewContainer(cfg *config.Config) (*Container, error) {
	log.Printf("initializing container - env: %s", cfg.Env)

	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	ticketmasterAPI := newTicketmasterAPI(cfg)

	c := &Container{Config: cfg, TicketmasterAPI: ticketmasterAPI}

	switch cfg.Cache.Backend {
	case config.CACHE_BACKEND_REDIS:
		redisClient, err := db.NewGoRedisClientFromOptions(context.Background(), cfg.Redis.Address, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return nil, err
		}
		log.Printf("Using redis details cache at %s", cfg.Redis.Address)
		c.RedisClient = redisClient
		c.DetailsCache = redis.NewRedisEventDetailsDAO(redisClient, cfg.RedisTTL())
	default:
		memoryCache, err := cache.NewMemoryDetailsCache(cfg.Cache.Capacity)
		if err != nil {
			return nil, err
		}
		log.Printf("Using in-memory details cache (capacity %d)", cfg.Cache.Capacity)
		c.DetailsCache = memoryCache
	}

	c.Hub = websocket.NewHub()
	notifier := services.NotifierFunc(func(screenID string, kind services.ScreenKind, state any) {
		c.Hub.Publish(screenID, string(kind), state)
	})

	c.ScreenRegistry = services.NewScreenRegistry(
		ticketmasterAPI,
		ticketmasterAPI,
		c.DetailsCache,
		notifier,
		cfg.Events.CountryCode,
		cfg.Events.PageSize,
	)

	c.EventsListHandler = handlers.NewEventsListHandler(c.ScreenRegistry, loc)
	c.DetailsHandler = handlers.NewEventDetailsHandler(c.ScreenRegistry, loc)
	c.MetaHandler = handlers.NewMetaHandler()
	c.WebSocketHandler = handlers.NewWebSocketHandler(c.Hub)

	c.MuxRouter = mux.NewRouter()
	c.Router = server.NewRouter(c.EventsListHandler, c.DetailsHandler, c.MetaHandler, c.WebSocketHandler, c.MuxRouter)

	c.EventlyHttpServer = server.NewEventlyHttpServer(
		c.Router,
		cfg.Server.Port,
		cfg.ReadTimeout(),
		cfg.WriteTimeout(),
		cfg.ShutdownTimeout(),
	)
	c.EventlyHttpServer.OnShutdown(c.Close)

	return c, nil
}

func newTicketmasterAPI(cfg *config.Config) ticketmaster.TicketmasterAPI {
	if !cfg.IsProd() {
		log.Printf("Using mock ticketmaster api")
		return ticketmaster.NewTicketmasterApiClientMock(
			config.GetResourcePath(config.EVENTS_RESPONSE_RESOURCE),
			config.GetResourcePath(config.EVENT_DETAILS_RESOURCE),
		)
	}

	log.Printf("Using prod ticketmaster api")
	keyProvider := apikey.Chain{
		apikey.NewEnvProvider(config.TICKETMASTER_API_KEY_ENV),
		apikey.NewFileProvider(cfg.Ticketmaster.APIKeyFile),
	}
	httpClient := api.NewHTTPClient(cfg.Ticketmaster.BaseURL)
	return ticketmaster.NewTicketmasterApiClient(httpClient, keyProvider)
}

// Start runs the hub and blocks serving HTTP until the process is signalled.
func (c *Container) Start() error {
	go c.Hub.Run()
	if err := c.EventlyHttpServer.Start(); err != nil {
		return fmt.Errorf("evently server: %w", err)
	}
	return nil
}

// Close releases everything the container opened.
func (c *Container) Close() {
	c.ScreenRegistry.CloseAll()
	c.Hub.Stop()
	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			log.Printf("Failed to close redis client: %v", err)
		}
	}
}
