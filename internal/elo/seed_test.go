package elo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func price(p float64) *float64 {
	return &p
}

func TestSeedRating_NoPrice(t *testing.T) {
	assert.Equal(t, float64(DefaultRating), SeedRating(nil))
}

func TestSeedRating_NegativePrice(t *testing.T) {
	assert.Equal(t, float64(DefaultRating), SeedRating(price(-3)))
}

func TestSeedRating_MeanPriceSeedsDefault(t *testing.T) {
	assert.Equal(t, float64(DefaultRating), SeedRating(price(MeanMarketPrice)))
}

func TestSeedRating_Deterministic(t *testing.T) {
	for _, p := range []float64{0, 0.25, 7.89, 25.34, 79.51, 12000} {
		assert.Equal(t, SeedRating(price(p)), SeedRating(price(p)), "price %v", p)
	}
}

func TestSeedRating_WithinClampRange(t *testing.T) {
	for _, p := range []float64{0, 0.01, 1, 25.34, 500, 1e6} {
		seed := SeedRating(price(p))
		assert.GreaterOrEqual(t, seed, float64(SeedRatingMin), "price %v", p)
		assert.LessOrEqual(t, seed, float64(SeedRatingMax), "price %v", p)
	}
}

func TestSeedRating_ExtremePricesClamp(t *testing.T) {
	assert.Equal(t, float64(SeedRatingMax), SeedRating(price(1e6)))
}

func TestSeedRating_MonotonicInPrice(t *testing.T) {
	prices := []float64{0, 1, 5, 25.34, 100, 1000}
	prev := SeedRating(price(prices[0]))
	for _, p := range prices[1:] {
		next := SeedRating(price(p))
		assert.GreaterOrEqual(t, next, prev, "price %v", p)
		prev = next
	}
}

func TestSeedRating_RoundsToInteger(t *testing.T) {
	for _, p := range []float64{0.37, 3.99, 42.42, 77.77} {
		seed := SeedRating(price(p))
		assert.Equal(t, math.Round(seed), seed, "price %v", p)
	}
}
