package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"

	services "evently/service"
	"evently/server/middleware"
)

const EVENT_ID_PATH_VAR = "eventId"

// EventDetailsResponse is the body returned by every details screen endpoint.
type EventDetailsResponse struct {
	ID     string                      `json:"id"`
	State  services.EventDetailsState  `json:"state"`
	Labels services.EventDetailsLabels `json:"labels"`
}

type EventDetailsHandler struct {
	registry *services.ScreenRegistry
	loc      *time.Location
}

func NewEventDetailsHandler(registry *services.ScreenRegistry, loc *time.Location) *EventDetailsHandler {
	return &EventDetailsHandler{registry: registry, loc: loc}
}

// OpenDetails handles POST /v1/details/{eventId}
func (h *EventDetailsHandler) OpenDetails(w http.ResponseWriter, r *http.Request) {
	eventID := strings.TrimSpace(mux.Vars(r)[EVENT_ID_PATH_VAR])
	if eventID == "" {
		middleware.WriteError(w, http.StatusBadRequest, middleware.ErrBadRequest, "Missing event id")
		return
	}
	id, controller := h.registry.OpenDetails(r.Context(), eventID)
	h.respond(w, http.StatusCreated, id, controller)
}

// GetDetails handles GET /v1/details/screens/{id}
func (h *EventDetailsHandler) GetDetails(w http.ResponseWriter, r *http.Request) {
	id, controller, ok := h.lookup(w, r)
	if !ok {
		return
	}
	h.respond(w, http.StatusOK, id, controller)
}

// Refresh handles POST /v1/details/screens/{id}/refresh
func (h *EventDetailsHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	id, controller, ok := h.lookup(w, r)
	if !ok {
		return
	}
	controller.Refresh(r.Context())
	h.respond(w, http.StatusOK, id, controller)
}

// CloseDetails handles DELETE /v1/details/screens/{id}
func (h *EventDetailsHandler) CloseDetails(w http.ResponseWriter, r *http.Request) {
	if err := h.registry.CloseDetails(mux.Vars(r)[SCREEN_ID_PATH_VAR]); err != nil {
		writeLookupError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *EventDetailsHandler) lookup(w http.ResponseWriter, r *http.Request) (string, *services.EventDetailsController, bool) {
	id := mux.Vars(r)[SCREEN_ID_PATH_VAR]
	controller, err := h.registry.Details(id)
	if err != nil {
		writeLookupError(w, err)
		return "", nil, false
	}
	return id, controller, true
}

func (h *EventDetailsHandler) respond(w http.ResponseWriter, status int, id string, controller *services.EventDetailsController) {
	state := controller.State()
	writeJSON(w, status, EventDetailsResponse{
		ID:     id,
		State:  state,
		Labels: state.Labels(h.loc),
	})
}
