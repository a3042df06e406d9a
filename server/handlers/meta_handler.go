package handlers

import (
	"log"
	"net/http"

	"evently/models/sorting"
)

type MetaHandler struct{}

func NewMetaHandler() *MetaHandler {
	return &MetaHandler{}
}

// Ping handles GET /ping
func (h *MetaHandler) Ping(w http.ResponseWriter, r *http.Request) {
	log.Println("Pinging server")
	writeJSON(w, http.StatusOK, map[string]string{"status": "pong"})
}

// SortStrategies handles GET /v1/sort-strategies
func (h *MetaHandler) SortStrategies(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, sorting.AvailableStrategies())
}
