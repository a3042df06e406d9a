package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	services "evently/service"
	"evently/server/middleware"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Println("Error encoding response:", err)
	}
}

func writeLookupError(w http.ResponseWriter, err error) {
	if errors.Is(err, services.ErrScreenNotFound) {
		middleware.WriteError(w, http.StatusNotFound, middleware.ErrNotFound, err.Error())
		return
	}
	log.Println("Error resolving screen:", err)
	middleware.WriteError(w, http.StatusInternalServerError, middleware.ErrInternalError, "Internal server error")
}

// writeBusyError answers 409 when the screen is still loading and reports
// whether it wrote a response.
func writeBusyError(w http.ResponseWriter, err error) bool {
	if !errors.Is(err, services.ErrLoadInProgress) {
		return false
	}
	middleware.WriteError(w, http.StatusConflict, middleware.ErrConflict, err.Error())
	return true
}
