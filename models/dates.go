package models

// Dates wraps the "dates" object of a Discovery API event.
type Dates struct {
	Start StartDate `json:"start"`
}

// StartDate describes when an event begins. LocalDate (YYYY-MM-DD) is always
// present; LocalTime and the absolute UTC DateTime are optional.
type StartDate struct {
	LocalDate string  `json:"localDate"`
	LocalTime *string `json:"localTime,omitempty"`
	DateTime  *string `json:"dateTime,omitempty"`
}

func (d Dates) clone() Dates {
	return Dates{Start: StartDate{
		LocalDate: d.Start.LocalDate,
		LocalTime: clonePtr(d.Start.LocalTime),
		DateTime:  clonePtr(d.Start.DateTime),
	}}
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
