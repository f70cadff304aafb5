package models

import (
	"time"
)

// Card is the runtime entity the store owns. It merges static catalog data
// with the evolving rating state produced by pairwise comparisons.
type Card struct {
	ID            string    `json:"id" bson:"_id"`
	Name          string    `json:"name" bson:"name"`
	ImageURL      string    `json:"imageUrl" bson:"imageUrl"`
	Rarity        string    `json:"rarity,omitempty" bson:"rarity,omitempty"`
	Rating        float64   `json:"rating" bson:"rating"`
	MatchesPlayed int       `json:"matchesPlayed" bson:"matchesPlayed"`
	Wins          int       `json:"wins" bson:"wins"`
	IsFavorite    bool      `json:"isFavorite" bson:"isFavorite"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt" bson:"lastUpdatedAt"`
	MarketPrice   *float64  `json:"marketPrice,omitempty" bson:"marketPrice,omitempty"`
	TCGPlayerURL  string    `json:"tcgplayerUrl,omitempty" bson:"tcgplayerUrl,omitempty"`
}

// CardRating is the persisted rating state for a single card. The catalog
// never changes at runtime, so only this slice of a Card is made durable.
type CardRating struct {
	Rating        float64   `json:"rating" bson:"rating"`
	MatchesPlayed int       `json:"matchesPlayed" bson:"matchesPlayed"`
	Wins          int       `json:"wins" bson:"wins"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt" bson:"lastUpdatedAt"`
}

// ComparisonResult holds both sides of a recorded comparison, mirroring the
// shape the frontend needs to show rating swings.
type ComparisonResult struct {
	Winner      Card    `json:"winner"`
	Loser       Card    `json:"loser"`
	WinnerDelta float64 `json:"winnerDelta"`
	LoserDelta  float64 `json:"loserDelta"`
}
