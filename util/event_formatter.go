package util

import (
	"fmt"
	"strings"
	"time"

	"evently/models"
)

// Sentinels shown in place of a value the event does not carry.
const (
	DATE_NOT_AVAILABLE           = "Date not available"
	PLACE_NOT_AVAILABLE          = "Place not available"
	PRICE_NOT_AVAILABLE          = "Price not available"
	CLASSIFICATION_NOT_AVAILABLE = "Classification not available"
)

const (
	apiLocalDateLayout = "2006-01-02"
	apiLocalTimeLayout = "15:04:05"
	displayDateLayout  = "02.01.2006"
	displayTimeLayout  = "15:04"
	classificationSep  = " • "
)

// DateLabel formats the start date, preferring the absolute timestamp
// rendered in loc over the local calendar date.
func DateLabel(start models.StartDate, loc *time.Location) (string, bool) {
	if t, ok := absoluteTime(start); ok {
		return t.In(loc).Format(displayDateLayout), true
	}
	d, err := time.Parse(apiLocalDateLayout, start.LocalDate)
	if err != nil {
		return "", false
	}
	return d.Format(displayDateLayout), true
}

// TimeLabel formats the start time with the same preference as DateLabel.
func TimeLabel(start models.StartDate, loc *time.Location) (string, bool) {
	if t, ok := absoluteTime(start); ok {
		return t.In(loc).Format(displayTimeLayout), true
	}
	if start.LocalTime == nil {
		return "", false
	}
	t, err := time.Parse(apiLocalTimeLayout, *start.LocalTime)
	if err != nil {
		return "", false
	}
	return t.Format(displayTimeLayout), true
}

// DateTimeLabel joins date and time, dropping the time when it is unknown.
func DateTimeLabel(start models.StartDate, loc *time.Location) string {
	date, ok := DateLabel(start, loc)
	if !ok {
		return DATE_NOT_AVAILABLE
	}
	if tm, ok := TimeLabel(start, loc); ok {
		return date + ", " + tm
	}
	return date
}

func absoluteTime(start models.StartDate) (time.Time, bool) {
	if start.DateTime == nil {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, *start.DateTime)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// ClassificationLabel joins segment and genre of the first classification.
func ClassificationLabel(classifications []models.Classification) string {
	if len(classifications) == 0 {
		return CLASSIFICATION_NOT_AVAILABLE
	}
	first := classifications[0]
	var parts []string
	for _, name := range []string{first.Segment.Name, first.Genre.Name} {
		if strings.TrimSpace(name) != "" {
			parts = append(parts, name)
		}
	}
	if len(parts) == 0 {
		return CLASSIFICATION_NOT_AVAILABLE
	}
	return strings.Join(parts, classificationSep)
}

// MinPriceLabel formats the minimum of the first price range. A zero price is
// a real price and is rendered, never confused with the sentinel.
func MinPriceLabel(ranges []models.PriceRange) string {
	if len(ranges) == 0 {
		return PRICE_NOT_AVAILABLE
	}
	first := ranges[0]
	return strings.TrimSpace(fmt.Sprintf("from %.2f %s", first.Min, first.Currency))
}

// SeatMapURL returns the static seat map URL when one is present.
func SeatMapURL(seatMap *models.SeatMap) (string, bool) {
	if seatMap == nil || strings.TrimSpace(seatMap.StaticURL) == "" {
		return "", false
	}
	return seatMap.StaticURL, true
}

// PlaceLabel renders "<venue>, <city>, <country>" skipping empty parts.
func PlaceLabel(place *models.Place) string {
	if place == nil {
		return PLACE_NOT_AVAILABLE
	}
	var parts []string
	for _, p := range []string{place.Name, place.City.Name, place.Country.Name} {
		if strings.TrimSpace(p) != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return PLACE_NOT_AVAILABLE
	}
	return strings.Join(parts, ", ")
}

// EventLabels are the row values a list screen renders for one event.
type EventLabels struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Date      string `json:"date"`
	Place     string `json:"place"`
	Thumbnail string `json:"thumbnail,omitempty"`
}

func EventRowLabels(e models.Event, loc *time.Location) EventLabels {
	labels := EventLabels{
		ID:    e.ID,
		Name:  e.Name,
		Date:  DateTimeLabel(e.Dates.Start, loc),
		Place: PlaceLabel(e.Venue()),
	}
	if len(e.Images) > 0 {
		labels.Thumbnail = e.Images[0].URL
	}
	return labels
}
