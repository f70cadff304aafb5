package catalog

import (
	"math"
	"sort"
)

// PriceStats summarizes the resolved market prices across a catalog.
type PriceStats struct {
	CardsWithPrice    int     `json:"cardsWithPrice"`
	CardsMissingPrice int     `json:"cardsMissingPrice"`
	Mean              float64 `json:"mean"`
	Median            float64 `json:"median"`
	StdDev            float64 `json:"stdDev"`
	Min               float64 `json:"min"`
	Max               float64 `json:"max"`
}

// ComputePriceStats resolves every card's market price and returns summary
// statistics over the cards that have one. Used for offline calibration of
// the seeding curve, not by the rating path itself.
func ComputePriceStats(cards []Card) PriceStats {
	var prices []float64
	missing := 0

	for i := range cards {
		if p := cards[i].ResolveMarketPrice(); p != nil {
			prices = append(prices, *p)
		} else {
			missing++
		}
	}

	stats := PriceStats{
		CardsWithPrice:    len(prices),
		CardsMissingPrice: missing,
	}
	if len(prices) == 0 {
		return stats
	}

	sorted := make([]float64, len(prices))
	copy(sorted, prices)
	sort.Float64s(sorted)

	var sum float64
	for _, p := range sorted {
		sum += p
	}
	stats.Mean = sum / float64(len(sorted))

	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		stats.Median = (sorted[mid-1] + sorted[mid]) / 2
	} else {
		stats.Median = sorted[mid]
	}

	if len(sorted) > 1 {
		var sumSq float64
		for _, p := range sorted {
			d := p - stats.Mean
			sumSq += d * d
		}
		stats.StdDev = math.Sqrt(sumSq / float64(len(sorted)-1))
	}

	stats.Min = sorted[0]
	stats.Max = sorted[len(sorted)-1]

	return stats
}
