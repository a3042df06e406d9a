package api

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidURL      = errors.New("invalid url")
	ErrMissingAPIKey   = errors.New("missing api key")
	ErrInvalidResponse = errors.New("invalid response")
	ErrDecoding        = errors.New("decoding error")
	ErrNetwork         = errors.New("network error")
)

// StatusError is returned when the API answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Status     string
	Endpoint   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status code: %s (%s)", e.Status, e.Endpoint)
}

func (e *StatusError) Unwrap() error {
	return ErrInvalidResponse
}

// Message maps an API error to the text shown to the user.
func Message(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrMissingAPIKey):
		return "The API key is missing. Check the application configuration."
	case errors.Is(err, ErrInvalidURL):
		return "The request could not be built."
	case errors.Is(err, ErrInvalidResponse):
		return "The server returned an unexpected response."
	case errors.Is(err, ErrDecoding):
		return "The server response could not be read."
	case errors.Is(err, ErrNetwork):
		return "The server could not be reached. Check your connection."
	}
	return "An unknown error occurred."
}
