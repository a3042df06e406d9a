package models

// PriceRange currency is free-form and not validated against ISO-4217.
type PriceRange struct {
	Type     string  `json:"type,omitempty"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Currency string  `json:"currency"`
}

type SeatMap struct {
	StaticURL string `json:"staticUrl"`
}
