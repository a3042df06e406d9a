package server

import (
	"github.com/gorilla/mux"

	"evently/server/handlers"
	"evently/server/middleware"
)

type Router struct {
	listHandler      *handlers.EventsListHandler
	detailsHandler   *handlers.EventDetailsHandler
	metaHandler      *handlers.MetaHandler
	websocketHandler *handlers.WebSocketHandler
	router           *mux.Router
}

// NewRouter creates a router with the app’s routes.
func NewRouter(
	listHandler *handlers.EventsListHandler,
	detailsHandler *handlers.EventDetailsHandler,
	metaHandler *handlers.MetaHandler,
	websocketHandler *handlers.WebSocketHandler,
	router *mux.Router) *Router {
	return &Router{
		listHandler:      listHandler,
		detailsHandler:   detailsHandler,
		metaHandler:      metaHandler,
		websocketHandler: websocketHandler,
		router:           router,
	}
}

func (r *Router) RegisterRoutes() {
	r.router.Use(middleware.Logging)
	r.router.Use(middleware.ErrorRecovery)

	r.router.HandleFunc("/ping", r.metaHandler.Ping).Methods("GET")
	r.router.HandleFunc("/ws", r.websocketHandler.Upgrade).Methods("GET")

	v1 := r.router.PathPrefix("/v1").Subrouter()
	v1.HandleFunc("/sort-strategies", r.metaHandler.SortStrategies).Methods("GET")

	// list screens
	v1.HandleFunc("/lists", r.listHandler.OpenList).Methods("POST")
	v1.HandleFunc("/lists/{id}", r.listHandler.GetList).Methods("GET")
	v1.HandleFunc("/lists/{id}", r.listHandler.CloseList).Methods("DELETE")
	v1.HandleFunc("/lists/{id}/reload", r.listHandler.Reload).Methods("POST")
	v1.HandleFunc("/lists/{id}/more", r.listHandler.LoadMore).Methods("POST")
	// expects {"key": "date", "direction": "asc"}
	v1.HandleFunc("/lists/{id}/sort", r.listHandler.ChooseSort).Methods("PUT")
	// expects {"country": "PL"}
	v1.HandleFunc("/lists/{id}/country", r.listHandler.ChooseCountry).Methods("PUT")
	v1.HandleFunc("/lists/{id}/display-mode", r.listHandler.ToggleDisplayMode).Methods("POST")
	v1.HandleFunc("/lists/{id}/chart", r.listHandler.Chart).Methods("GET")

	// details screens
	v1.HandleFunc("/details/screens/{id}", r.detailsHandler.GetDetails).Methods("GET")
	v1.HandleFunc("/details/screens/{id}", r.detailsHandler.CloseDetails).Methods("DELETE")
	v1.HandleFunc("/details/screens/{id}/refresh", r.detailsHandler.Refresh).Methods("POST")
	v1.HandleFunc("/details/{eventId}", r.detailsHandler.OpenDetails).Methods("POST")
}

// Handler exposes the underlying mux router.
func (r *Router) Handler() *mux.Router {
	return r.router
}
