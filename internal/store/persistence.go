package store

import (
	"context"

	"card-ranker/internal/models"
)

// Persistence is the durable layer the store reads at startup and writes on
// every mutation. Implementations must treat unreadable or corrupt state as
// empty on the load paths rather than failing the whole startup.
type Persistence interface {
	// LoadRatings returns the persisted rating state keyed by card id.
	LoadRatings(ctx context.Context) (map[string]models.CardRating, error)

	// SaveRatings replaces the full persisted rating state.
	SaveRatings(ctx context.Context, ratings map[string]models.CardRating) error

	// LoadFavorites returns the set of favorited card ids.
	LoadFavorites(ctx context.Context) (map[string]bool, error)

	// SaveFavorites replaces the full persisted favorite set.
	SaveFavorites(ctx context.Context, favorites map[string]bool) error

	// Reset clears all persisted rating data. Favorites are untouched.
	Reset(ctx context.Context) error
}
