package elo

import (
	"math"
)

const (
	// DefaultRating is the starting rating when no market price is known.
	DefaultRating = 1200

	// MeanMarketPrice is the mean market price of the catalog the seeding
	// curve was calibrated against. A card priced exactly at the mean
	// seeds to DefaultRating.
	MeanMarketPrice = 25.34

	// Seed ratings are clamped to this range. Post-comparison updates are not.
	SeedRatingMin = 900
	SeedRatingMax = 1700
)

// SeedRating derives a deterministic initial rating from an optional market
// price. Prices are log-compressed so a handful of extremely expensive cards
// do not dominate the scale, while pricier cards still start above cheaper
// ones on average.
func SeedRating(marketPrice *float64) float64 {
	if marketPrice == nil || *marketPrice < 0 {
		return DefaultRating
	}

	logPrice := math.Log(*marketPrice + 1)
	logMean := math.Log(MeanMarketPrice + 1)

	rating := DefaultRating + 200*(logPrice-logMean)/logMean

	rating = math.Max(SeedRatingMin, math.Min(SeedRatingMax, rating))

	return math.Round(rating)
}
