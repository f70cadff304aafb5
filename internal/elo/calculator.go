package elo

import (
	"math"
)

const (
	// K-factors based on number of comparisons played and current rating
	KFactorNew         = 50 // < 10 comparisons, new cards move quickly
	KFactorFresh       = 40 // 10-49 comparisons
	KFactorEstablished = 30 // >= 50 comparisons, rating below 1800
	KFactorHigh        = 20 // >= 50 comparisons, rating 1800 or above

	highRatingThreshold = 1800
)

type Calculator struct{}

func NewCalculator() *Calculator {
	return &Calculator{}
}

// CalculateNewRatings returns the post-comparison ratings for both sides.
// winnerRating/loserRating: current ratings
// winnerMatches/loserMatches: comparisons each side has played (used for K-factor)
// Each side uses its own K-factor, so the winner's gain and the loser's loss
// are generally not symmetric. Ratings are not clamped here; the seeding
// range is a starting convention, not a bound.
func (c *Calculator) CalculateNewRatings(winnerRating, loserRating float64, winnerMatches, loserMatches int) (float64, float64) {
	expectedWinner := c.ExpectedScore(winnerRating, loserRating)
	expectedLoser := c.ExpectedScore(loserRating, winnerRating)

	kWinner := c.getKFactor(winnerRating, winnerMatches)
	kLoser := c.getKFactor(loserRating, loserMatches)

	// ΔR = K × (S - E), with S = 1 for the winner and 0 for the loser
	newWinner := winnerRating + float64(kWinner)*(1.0-expectedWinner)
	newLoser := loserRating + float64(kLoser)*(0.0-expectedLoser)

	return newWinner, newLoser
}

// ExpectedScore calculates the probability that a side at ratingA beats a
// side at ratingB, using the standard logistic Elo model:
// E = 1 / (1 + 10^((ratingB - ratingA) / 400))
func (c *Calculator) ExpectedScore(ratingA, ratingB float64) float64 {
	exponent := (ratingB - ratingA) / 400.0
	return 1.0 / (1.0 + math.Pow(10, exponent))
}

// getKFactor returns the K-factor for a side based on its own comparison
// count and, once established, its own rating.
func (c *Calculator) getKFactor(rating float64, matches int) int {
	switch {
	case matches < 10:
		return KFactorNew
	case matches < 50:
		return KFactorFresh
	case rating < highRatingThreshold:
		return KFactorEstablished
	default:
		return KFactorHigh
	}
}
