// Package sorting describes the sort orders the Discovery API accepts for
// event lists.
package sorting

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnsupportedStrategy = errors.New("unsupported sort strategy")

// Key is the API name of a sort field.
type Key string

const (
	KeyName          Key = "name"
	KeyDate          Key = "date"
	KeyRelevance     Key = "relevance"
	KeyDistance      Key = "distance"
	KeySaleStartDate Key = "onSaleStartDate"
	KeyVenueName     Key = "venueName"
)

// Direction is the API name of a sort direction.
type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// Keys lists every sort key in display order.
var Keys = []Key{KeyName, KeyDate, KeyRelevance, KeyDistance, KeySaleStartDate, KeyVenueName}

var keyNames = map[Key]string{
	KeyName:          "Name",
	KeyDate:          "Date",
	KeyRelevance:     "Relevance",
	KeyDistance:      "Distance",
	KeySaleStartDate: "Sale Start Date",
	KeyVenueName:     "Venue Name",
}

var keyDirections = map[Key][]Direction{
	KeyName:          {Ascending, Descending},
	KeyDate:          {Ascending, Descending},
	KeyRelevance:     {Ascending, Descending},
	KeyDistance:      {Ascending},
	KeySaleStartDate: {Ascending},
	KeyVenueName:     {Ascending, Descending},
}

// DisplayName returns the human-readable label of the key.
func (k Key) DisplayName() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	return string(k)
}

// Directions returns the directions the API supports for this key.
func (k Key) Directions() []Direction {
	return append([]Direction(nil), keyDirections[k]...)
}

func (d Direction) DisplayName() string {
	switch d {
	case Ascending:
		return "Ascending"
	case Descending:
		return "Descending"
	}
	return string(d)
}

// Strategy is a (key, direction) pair.
type Strategy struct {
	Key       Key       `json:"key"`
	Direction Direction `json:"direction"`
}

// Default is the order a fresh list screen starts with.
var Default = Strategy{Key: KeyDate, Direction: Ascending}

// New returns the strategy for key and direction, or ErrUnsupportedStrategy
// when the API does not offer that combination.
func New(key Key, direction Direction) (Strategy, error) {
	s := Strategy{Key: key, Direction: direction}
	if !s.Valid() {
		return Strategy{}, fmt.Errorf("%w: %s", ErrUnsupportedStrategy, s)
	}
	return s, nil
}

// Valid reports whether the pair is one of the declared combinations.
func (s Strategy) Valid() bool {
	for _, d := range keyDirections[s.Key] {
		if d == s.Direction {
			return true
		}
	}
	return false
}

// String encodes the strategy as the API "sort" parameter, e.g. "date,asc".
func (s Strategy) String() string {
	return string(s.Key) + "," + string(s.Direction)
}

// Parse decodes a "<key>,<direction>" sort parameter.
func Parse(value string) (Strategy, error) {
	parts := strings.Split(value, ",")
	if len(parts) != 2 {
		return Strategy{}, fmt.Errorf("%w: malformed %q", ErrUnsupportedStrategy, value)
	}
	return New(Key(strings.TrimSpace(parts[0])), Direction(strings.TrimSpace(parts[1])))
}

// Option is a catalog entry describing one valid strategy.
type Option struct {
	Strategy  Strategy `json:"strategy"`
	Encoded   string   `json:"encoded"`
	KeyName   string   `json:"key_name"`
	Direction string   `json:"direction_name"`
}

// AvailableStrategies lists every valid strategy in declaration order.
func AvailableStrategies() []Option {
	var out []Option
	for _, k := range Keys {
		for _, d := range keyDirections[k] {
			s := Strategy{Key: k, Direction: d}
			out = append(out, Option{
				Strategy:  s,
				Encoded:   s.String(),
				KeyName:   k.DisplayName(),
				Direction: d.DisplayName(),
			})
		}
	}
	return out
}
