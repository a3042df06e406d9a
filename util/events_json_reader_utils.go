package util

import (
	"encoding/json"
	"fmt"
	"os"

	"evently/models"
)

// ReadEventsResponseFromJSON loads an EventsResponse envelope from JSON on disk.
func ReadEventsResponseFromJSON(filePath string) (*models.EventsResponse, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", filePath, err)
	}
	var resp models.EventsResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal EventsResponse: %w", err)
	}
	return &resp, nil
}

// ReadEventDetailsFromJSON loads a list of EventDetails from JSON on disk.
func ReadEventDetailsFromJSON(filePath string) ([]models.EventDetails, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", filePath, err)
	}
	var details []models.EventDetails
	if err := json.Unmarshal(data, &details); err != nil {
		return nil, fmt.Errorf("failed to unmarshal EventDetails: %w", err)
	}
	return details, nil
}
