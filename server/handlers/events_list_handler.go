package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"evently/models/sorting"
	services "evently/service"
	"evently/server/middleware"
	"evently/util"
)

const SCREEN_ID_PATH_VAR = "id"

// EventsListResponse is the body returned by every list screen endpoint.
type EventsListResponse struct {
	ID    string                   `json:"id"`
	State services.EventsListState `json:"state"`
	Rows  []util.EventLabels       `json:"rows"`
}

type ChooseSortRequest struct {
	Key       sorting.Key       `json:"key"`
	Direction sorting.Direction `json:"direction"`
}

type ChooseCountryRequest struct {
	Country string `json:"country"`
}

type EventsListHandler struct {
	registry *services.ScreenRegistry
	loc      *time.Location
}

func NewEventsListHandler(registry *services.ScreenRegistry, loc *time.Location) *EventsListHandler {
	return &EventsListHandler{registry: registry, loc: loc}
}

// OpenList handles POST /v1/lists
func (h *EventsListHandler) OpenList(w http.ResponseWriter, r *http.Request) {
	id, controller := h.registry.OpenList(r.Context())
	h.respond(w, http.StatusCreated, id, controller)
}

// GetList handles GET /v1/lists/{id}
func (h *EventsListHandler) GetList(w http.ResponseWriter, r *http.Request) {
	id, controller, ok := h.lookup(w, r)
	if !ok {
		return
	}
	h.respond(w, http.StatusOK, id, controller)
}

// Reload handles POST /v1/lists/{id}/reload
func (h *EventsListHandler) Reload(w http.ResponseWriter, r *http.Request) {
	id, controller, ok := h.lookup(w, r)
	if !ok {
		return
	}
	controller.LoadFirst(r.Context())
	h.respond(w, http.StatusOK, id, controller)
}

// LoadMore handles POST /v1/lists/{id}/more
func (h *EventsListHandler) LoadMore(w http.ResponseWriter, r *http.Request) {
	id, controller, ok := h.lookup(w, r)
	if !ok {
		return
	}
	controller.LoadMore(r.Context())
	h.respond(w, http.StatusOK, id, controller)
}

// ChooseSort handles PUT /v1/lists/{id}/sort
func (h *EventsListHandler) ChooseSort(w http.ResponseWriter, r *http.Request) {
	id, controller, ok := h.lookup(w, r)
	if !ok {
		return
	}
	var req ChooseSortRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, middleware.ErrBadRequest, "Invalid request body")
		return
	}
	if err := controller.ChooseSortStrategy(r.Context(), req.Key, req.Direction); err != nil {
		if errors.Is(err, sorting.ErrUnsupportedStrategy) {
			middleware.WriteError(w, http.StatusBadRequest, middleware.ErrValidation, err.Error())
			return
		}
		if writeBusyError(w, err) {
			return
		}
		log.Println("Error choosing sort strategy:", err)
		middleware.WriteError(w, http.StatusInternalServerError, middleware.ErrInternalError, "Internal server error")
		return
	}
	h.respond(w, http.StatusOK, id, controller)
}

// ChooseCountry handles PUT /v1/lists/{id}/country
func (h *EventsListHandler) ChooseCountry(w http.ResponseWriter, r *http.Request) {
	id, controller, ok := h.lookup(w, r)
	if !ok {
		return
	}
	var req ChooseCountryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, middleware.ErrBadRequest, "Invalid request body")
		return
	}
	if err := controller.ChooseCountry(r.Context(), req.Country); err != nil {
		if writeBusyError(w, err) {
			return
		}
		middleware.WriteError(w, http.StatusBadRequest, middleware.ErrValidation, err.Error())
		return
	}
	h.respond(w, http.StatusOK, id, controller)
}

// ToggleDisplayMode handles POST /v1/lists/{id}/display-mode
func (h *EventsListHandler) ToggleDisplayMode(w http.ResponseWriter, r *http.Request) {
	id, controller, ok := h.lookup(w, r)
	if !ok {
		return
	}
	controller.ToggleDisplayMode()
	h.respond(w, http.StatusOK, id, controller)
}

// Chart handles GET /v1/lists/{id}/chart and renders an HTML page.
func (h *EventsListHandler) Chart(w http.ResponseWriter, r *http.Request) {
	id, controller, ok := h.lookup(w, r)
	if !ok {
		return
	}
	state := controller.State()
	title := fmt.Sprintf("Events in %s by %s", state.Country, state.SortStrategy.Key.DisplayName())

	var buf bytes.Buffer
	if err := util.PlotEventsPerDay(&buf, title, state.Events); err != nil {
		log.Printf("Error rendering chart for list %s: %v", id, err)
		middleware.WriteError(w, http.StatusInternalServerError, middleware.ErrInternalError, "Internal server error")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// CloseList handles DELETE /v1/lists/{id}
func (h *EventsListHandler) CloseList(w http.ResponseWriter, r *http.Request) {
	if err := h.registry.CloseList(mux.Vars(r)[SCREEN_ID_PATH_VAR]); err != nil {
		writeLookupError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *EventsListHandler) lookup(w http.ResponseWriter, r *http.Request) (string, *services.EventsListController, bool) {
	id := mux.Vars(r)[SCREEN_ID_PATH_VAR]
	controller, err := h.registry.List(id)
	if err != nil {
		writeLookupError(w, err)
		return "", nil, false
	}
	return id, controller, true
}

func (h *EventsListHandler) respond(w http.ResponseWriter, status int, id string, controller *services.EventsListController) {
	state := controller.State()
	writeJSON(w, status, EventsListResponse{
		ID:    id,
		State: state,
		Rows:  state.Rows(h.loc),
	})
}
