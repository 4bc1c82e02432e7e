package analytics

import (
	"math"
	"sort"
	"strings"

	"fieldsales-backend/internal/domain"
)

// CityStats is one coverage row for the city table.
type CityStats struct {
	City            string
	Visits          int
	Sales           int
	Revenue         float64
	ConversionPct   int
	ContributionPct float64
}

// CityCoverage aggregates the already-filtered current-window visits per
// city, sorted by visit count descending. Contribution defaults to 0 when
// the window has no revenue at all.
func CityCoverage(visits []domain.Visit) []CityStats {
	byCity := make(map[string]*CityStats)
	var totalRevenue float64

	for _, v := range visits {
		city := strings.TrimSpace(v.City)
		if city == "" {
			city = "—"
		}
		key := strings.ToLower(city)
		s, ok := byCity[key]
		if !ok {
			s = &CityStats{City: city}
			byCity[key] = s
		}
		s.Visits++
		if IsPurchase(v) {
			s.Sales++
			s.Revenue += EffectivePrice(v)
			totalRevenue += EffectivePrice(v)
		}
	}

	out := make([]CityStats, 0, len(byCity))
	for _, s := range byCity {
		if s.Visits > 0 {
			s.ConversionPct = int(math.Round(float64(s.Sales) / float64(s.Visits) * 100))
		}
		if totalRevenue > 0 {
			s.ContributionPct = s.Revenue / totalRevenue * 100
		}
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Visits != out[j].Visits {
			return out[i].Visits > out[j].Visits
		}
		return out[i].City < out[j].City
	})
	return out
}
