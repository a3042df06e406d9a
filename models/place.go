package models

import "strings"

// Place is a venue as returned by the Discovery API. Every address line is
// independently optional.
type Place struct {
	Name    string  `json:"name"`
	Address Address `json:"address"`
	City    City    `json:"city"`
	Country Country `json:"country"`
}

type Address struct {
	Line1 *string `json:"line1,omitempty"`
	Line2 *string `json:"line2,omitempty"`
	Line3 *string `json:"line3,omitempty"`
}

type City struct {
	Name string `json:"name"`
}

type Country struct {
	Name string `json:"name"`
}

func (p Place) Clone() Place {
	out := p
	out.Address = Address{
		Line1: clonePtr(p.Address.Line1),
		Line2: clonePtr(p.Address.Line2),
		Line3: clonePtr(p.Address.Line3),
	}
	return out
}

// Lines returns the non-empty address lines in order.
func (a Address) Lines() []string {
	var lines []string
	for _, l := range []*string{a.Line1, a.Line2, a.Line3} {
		if l != nil && strings.TrimSpace(*l) != "" {
			lines = append(lines, *l)
		}
	}
	return lines
}

// Embedded holds the "_embedded" collections nested inside an event.
type Embedded struct {
	Venues []Place `json:"venues"`
}
