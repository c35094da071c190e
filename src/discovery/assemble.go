package discovery

import "Go_Discovery/src/types"

const (
	PopularTitle = "Popular Restaurants"
	NewTitle     = "New Restaurants"
	NearbyTitle  = "Nearby Restaurants"
)

// Assemble builds the response in the order popular, new, nearby. A nil
// ranking leaves its section out.
func Assemble(popular, fresh, nearby *Ranked) types.Discovery {
	response := types.Discovery{Sections: make([]types.Section, 0, 3)}

	for _, s := range []struct {
		title  string
		ranked *Ranked
	}{
		{PopularTitle, popular},
		{NewTitle, fresh},
		{NearbyTitle, nearby},
	} {
		if s.ranked == nil {
			continue
		}
		response.Sections = append(response.Sections, buildSection(s.title, s.ranked))
	}

	return response
}

func buildSection(title string, ranked *Ranked) types.Section {
	restaurants := make([]types.Restaurant, 0, len(ranked.Restaurants))
	for _, r := range ranked.Restaurants {
		restaurants = append(restaurants, r.Restaurant)
	}
	return types.Section{Title: title, Restaurants: restaurants}
}
