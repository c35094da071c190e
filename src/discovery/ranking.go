package discovery

import (
	"cmp"
	"slices"
)

// Ranked is a non-empty ranked list. Ranking passes return nil instead of an
// empty Ranked so the section can be left out.
type Ranked struct {
	Restaurants []EnrichedRestaurant
}

type rankPass struct {
	keep    func(EnrichedRestaurant) bool
	compare func(a, b EnrichedRestaurant) int
}

var (
	popularPass = rankPass{
		compare: func(a, b EnrichedRestaurant) int { return cmp.Compare(b.Popularity, a.Popularity) },
	}
	nearbyPass = rankPass{
		compare: func(a, b EnrichedRestaurant) int { return cmp.Compare(a.DistanceKm, b.DistanceKm) },
	}
)

func newPass(withinDays int) rankPass {
	return rankPass{
		keep:    func(r EnrichedRestaurant) bool { return r.LaunchedDays <= withinDays },
		compare: func(a, b EnrichedRestaurant) int { return cmp.Compare(a.LaunchedDays, b.LaunchedDays) },
	}
}

// RankPopular orders online restaurants first, then by popularity descending.
func RankPopular(restaurants []EnrichedRestaurant, cutoff int) *Ranked {
	return popularPass.rank(restaurants, cutoff)
}

// RankNearby orders online restaurants first, then by distance ascending.
func RankNearby(restaurants []EnrichedRestaurant, cutoff int) *Ranked {
	return nearbyPass.rank(restaurants, cutoff)
}

// RankNew keeps restaurants launched at most withinDays ago and orders
// online ones first, then the most recently launched.
func RankNew(restaurants []EnrichedRestaurant, withinDays, cutoff int) *Ranked {
	return newPass(withinDays).rank(restaurants, cutoff)
}

func (p rankPass) rank(restaurants []EnrichedRestaurant, cutoff int) *Ranked {
	candidates := make([]EnrichedRestaurant, 0, len(restaurants))
	for _, r := range restaurants {
		if p.keep == nil || p.keep(r) {
			candidates = append(candidates, r)
		}
	}

	slices.SortStableFunc(candidates, func(a, b EnrichedRestaurant) int {
		if a.Online != b.Online {
			if a.Online {
				return -1
			}
			return 1
		}
		return p.compare(a, b)
	})

	if cutoff >= 0 && len(candidates) > cutoff {
		candidates = candidates[:cutoff]
	}
	if len(candidates) == 0 {
		return nil
	}
	return &Ranked{Restaurants: candidates}
}
