package models

// EventsResponse is the envelope returned by GET /events.
type EventsResponse struct {
	Embedded *ResponseEmbedded `json:"_embedded,omitempty"`
	Page     *PageInfo         `json:"page,omitempty"`
}

type ResponseEmbedded struct {
	Events []Event `json:"events"`
}

// PageInfo mirrors the "page" object the API attaches to list responses.
type PageInfo struct {
	Size          int `json:"size"`
	TotalElements int `json:"totalElements"`
	TotalPages    int `json:"totalPages"`
	Number        int `json:"number"`
}
