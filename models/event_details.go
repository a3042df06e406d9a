package models

import "slices"

// EventDetails is the full record of a single event. Identity is defined by
// ID alone, as for Event.
type EventDetails struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	Dates           Dates            `json:"dates"`
	Place           *Place           `json:"place,omitempty"`
	Classifications []Classification `json:"classifications"`
	PriceRanges     []PriceRange     `json:"priceRanges,omitempty"`
	Embedded        Embedded         `json:"_embedded"`
	Images          []Image          `json:"images"`
	SeatMap         *SeatMap         `json:"seatmap,omitempty"`
}

func (d EventDetails) Equal(other EventDetails) bool {
	return d.ID == other.ID
}

func (d EventDetails) Venue() *Place {
	return venueOf(d.Place, d.Embedded)
}

func (d EventDetails) Validate() error {
	return validateRecord(d.ID, d.Dates)
}

// Clone returns a copy that shares no memory with d.
func (d EventDetails) Clone() EventDetails {
	out := d
	out.Dates = d.Dates.clone()
	if d.Place != nil {
		p := d.Place.Clone()
		out.Place = &p
	}
	if d.Classifications != nil {
		out.Classifications = make([]Classification, len(d.Classifications))
		for i, c := range d.Classifications {
			out.Classifications[i] = c.clone()
		}
	}
	out.PriceRanges = slices.Clone(d.PriceRanges)
	if d.Embedded.Venues != nil {
		out.Embedded.Venues = make([]Place, len(d.Embedded.Venues))
		for i, v := range d.Embedded.Venues {
			out.Embedded.Venues[i] = v.Clone()
		}
	}
	out.Images = slices.Clone(d.Images)
	if d.SeatMap != nil {
		m := *d.SeatMap
		out.SeatMap = &m
	}
	return out
}
