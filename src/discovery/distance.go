package discovery

import (
	"math"
	"time"

	"github.com/tidwall/geodesic"

	"Go_Discovery/src/types"
)

const (
	DefaultRadiusKm      = 1.5
	DefaultNewWithinDays = 120
	DefaultCutoff        = 10
)

// EnrichedRestaurant is a catalog record with the request-dependent values
// used for ranking. It is never serialized.
type EnrichedRestaurant struct {
	types.Restaurant
	DistanceKm   float64
	LaunchedDays int
}

type FilterConfig struct {
	RadiusKm float64
	Now      func() time.Time
}

type DistanceFilter struct {
	radiusKm float64
	now      func() time.Time
}

func NewDistanceFilter(cfg FilterConfig) *DistanceFilter {
	f := &DistanceFilter{radiusKm: cfg.RadiusKm, now: cfg.Now}
	if f.radiusKm <= 0 {
		f.radiusKm = DefaultRadiusKm
	}
	if f.now == nil {
		f.now = time.Now
	}
	return f
}

// Filter enriches every record and keeps the ones within the radius, in
// catalog order.
func (f *DistanceFilter) Filter(customer types.Coordinate, catalog []types.Restaurant) []EnrichedRestaurant {
	now := f.now()
	within := make([]EnrichedRestaurant, 0, len(catalog))

	for _, r := range catalog {
		enriched := EnrichedRestaurant{
			Restaurant:   r,
			DistanceKm:   DistanceKm(customer, types.Coordinate{Lat: r.Location.Lat, Lon: r.Location.Lon}),
			LaunchedDays: LaunchedDays(r.LaunchDate, now),
		}
		if enriched.DistanceKm <= f.radiusKm {
			within = append(within, enriched)
		}
	}
	return within
}

// DistanceKm is the geodesic distance on the WGS84 ellipsoid.
func DistanceKm(a, b types.Coordinate) float64 {
	var meters float64
	geodesic.WGS84.Inverse(a.Lat, a.Lon, b.Lat, b.Lon, &meters, nil, nil)
	return meters / 1000
}

// LaunchedDays counts whole days from the launch date to now, rounding down.
func LaunchedDays(launch types.Date, now time.Time) int {
	elapsed := now.UTC().Sub(launch.Time)
	return int(math.Floor(elapsed.Hours() / 24))
}
