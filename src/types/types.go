package types

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

const DateLayout = "2006-01-02"

var (
	ErrCatalogUnavailable = errors.New("restaurant catalog unavailable")
	ErrMalformedRecord    = fmt.Errorf("%w: malformed restaurant record", ErrCatalogUnavailable)
)

type Restaurant struct {
	Blurhash   string   `json:"blurhash"`
	LaunchDate Date     `json:"launch_date"`
	Location   GeoPoint `json:"location"`
	Name       string   `json:"name"`
	Online     bool     `json:"online"`
	Popularity float64  `json:"popularity"`
}

// GeoPoint is serialized as a [lat, lon] pair.
type GeoPoint struct {
	Lat float64
	Lon float64
}

func (p GeoPoint) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{p.Lat, p.Lon})
}

func (p *GeoPoint) UnmarshalJSON(data []byte) error {
	var pair []float64
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("location must have 2 elements, got %d", len(pair))
	}
	p.Lat, p.Lon = pair[0], pair[1]
	return nil
}

// Date is a calendar date without time of day, kept at UTC midnight.
type Date struct {
	time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func ParseDate(s string) (Date, error) {
	t, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return Date{}, err
	}
	return Date{t}, nil
}

func (d Date) String() string {
	return d.Format(DateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

type Coordinate struct {
	Lat float64
	Lon float64
}

type Section struct {
	Title       string       `json:"title"`
	Restaurants []Restaurant `json:"restaurants"`
}

type Discovery struct {
	Sections []Section `json:"sections"`
}

// CatalogStore returns the full restaurant catalog in a stable order.
// Failures wrap ErrCatalogUnavailable.
type CatalogStore interface {
	Restaurants(ctx context.Context) ([]Restaurant, error)
}
