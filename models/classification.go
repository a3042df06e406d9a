package models

// Classification is one segment/genre/subgenre triple attached to an event.
type Classification struct {
	Segment  NamedItem  `json:"segment"`
	Genre    NamedItem  `json:"genre"`
	SubGenre *NamedItem `json:"subGenre,omitempty"`
}

type NamedItem struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name"`
}

func (c Classification) clone() Classification {
	out := c
	out.SubGenre = clonePtr(c.SubGenre)
	return out
}
