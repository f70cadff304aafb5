package store

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"sync"
	"time"

	"card-ranker/internal/catalog"
	"card-ranker/internal/elo"
	"card-ranker/internal/models"
)

// Store is the sole owner of card entities. Every read goes through a
// snapshot copy and every mutation is serialized by the store's mutex and
// written through to the persistence layer before the call returns.
type Store struct {
	mu          sync.Mutex
	persistence Persistence
	catalog     []catalog.Card
	calculator  *elo.Calculator
	rng         *rand.Rand

	cards       map[string]*models.Card
	order       []string // catalog order, fixed after Initialize
	initialized bool
}

func NewStore(catalogCards []catalog.Card, persistence Persistence) *Store {
	return &Store{
		persistence: persistence,
		catalog:     catalogCards,
		calculator:  elo.NewCalculator(),
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Initialize builds the card set from the catalog, persisted overrides and
// price seeding. Idempotent: a second call leaves existing state untouched,
// so in-progress ratings are never re-seeded.
func (s *Store) Initialize(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return nil
	}

	ratings, err := s.persistence.LoadRatings(ctx)
	if err != nil {
		log.Printf("Failed to load persisted ratings, falling back to seed values: %v", err)
		ratings = map[string]models.CardRating{}
	}
	favorites, err := s.persistence.LoadFavorites(ctx)
	if err != nil {
		log.Printf("Failed to load persisted favorites, starting empty: %v", err)
		favorites = map[string]bool{}
	}

	now := time.Now().UTC()
	s.cards = make(map[string]*models.Card, len(s.catalog))
	s.order = make([]string, 0, len(s.catalog))

	for i := range s.catalog {
		entry := &s.catalog[i]
		if _, exists := s.cards[entry.ID]; exists {
			log.Printf("Duplicate catalog id %s ignored", entry.ID)
			continue
		}

		card := &models.Card{
			ID:            entry.ID,
			Name:          entry.Name,
			ImageURL:      entry.ImageURL(),
			Rarity:        entry.Rarity,
			IsFavorite:    favorites[entry.ID],
			MarketPrice:   entry.ResolveMarketPrice(),
			TCGPlayerURL:  entry.TCGPlayerURL(),
			LastUpdatedAt: now,
		}

		// Persisted state wins over catalog-provided state, which wins
		// over a fresh price seed.
		switch {
		case hasRating(ratings, entry.ID):
			persisted := ratings[entry.ID]
			card.Rating = persisted.Rating
			card.MatchesPlayed = persisted.MatchesPlayed
			card.Wins = persisted.Wins
			card.LastUpdatedAt = persisted.LastUpdatedAt
		case entry.Rating != nil:
			card.Rating = *entry.Rating
			card.MatchesPlayed = entry.MatchesPlayed
			card.Wins = entry.Wins
			if entry.LastUpdatedAt != nil {
				card.LastUpdatedAt = *entry.LastUpdatedAt
			}
		default:
			card.Rating = elo.SeedRating(card.MarketPrice)
		}

		s.cards[entry.ID] = card
		s.order = append(s.order, entry.ID)
	}

	s.initialized = true
	log.Printf("Store initialized with %d cards (%d persisted ratings, %d favorites)",
		len(s.cards), len(ratings), len(favorites))
	return nil
}

func hasRating(ratings map[string]models.CardRating, id string) bool {
	_, ok := ratings[id]
	return ok
}

// Size returns the number of cards in the store.
func (s *Store) Size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.order)
}

// GetAll returns an independent snapshot of every card in catalog order.
// Mutating the returned slice never affects store state.
func (s *Store) GetAll() []models.Card {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := make([]models.Card, 0, len(s.order))
	for _, id := range s.order {
		snapshot = append(snapshot, *s.cards[id])
	}
	return snapshot
}

// GetByID returns a copy of a single card.
func (s *Store) GetByID(id string) (models.Card, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	card, ok := s.cards[id]
	if !ok {
		return models.Card{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return *card, nil
}

// GetRandom returns n distinct cards chosen uniformly at random without
// replacement.
func (s *Store) GetRandom(n int) ([]models.Card, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if n <= 0 {
		return nil, fmt.Errorf("%w: count must be positive, got %d", ErrInvalidArgument, n)
	}
	if n > len(s.order) {
		return nil, fmt.Errorf("%w: count %d exceeds catalog size %d", ErrInvalidArgument, n, len(s.order))
	}

	picks := s.rng.Perm(len(s.order))[:n]
	cards := make([]models.Card, 0, n)
	for _, i := range picks {
		cards = append(cards, *s.cards[s.order[i]])
	}
	return cards, nil
}

// RecordComparison applies the outcome of one pairwise comparison: both
// ratings move by their own K-factor, both match counts increment, the
// winner's win count increments, and the full rating state is persisted.
// On a failed durable write the in-memory result is still returned together
// with a *PersistenceError; the UI stays responsive but the change may not
// survive a restart.
func (s *Store) RecordComparison(ctx context.Context, winnerID, loserID string) (*models.ComparisonResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if winnerID == loserID {
		return nil, fmt.Errorf("%w: a card cannot be compared against itself", ErrInvalidArgument)
	}
	winner, ok := s.cards[winnerID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, winnerID)
	}
	loser, ok := s.cards[loserID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, loserID)
	}

	oldWinnerRating := winner.Rating
	oldLoserRating := loser.Rating

	newWinnerRating, newLoserRating := s.calculator.CalculateNewRatings(
		winner.Rating, loser.Rating, winner.MatchesPlayed, loser.MatchesPlayed)

	now := time.Now().UTC()
	winner.Rating = newWinnerRating
	winner.MatchesPlayed++
	winner.Wins++
	winner.LastUpdatedAt = now
	loser.Rating = newLoserRating
	loser.MatchesPlayed++
	loser.LastUpdatedAt = now

	result := &models.ComparisonResult{
		Winner:      *winner,
		Loser:       *loser,
		WinnerDelta: newWinnerRating - oldWinnerRating,
		LoserDelta:  newLoserRating - oldLoserRating,
	}

	log.Printf("Comparison %s beats %s: %.1f -> %.1f (%+.1f), %.1f -> %.1f (%+.1f)",
		winnerID, loserID,
		oldWinnerRating, newWinnerRating, result.WinnerDelta,
		oldLoserRating, newLoserRating, result.LoserDelta)

	if err := s.persistence.SaveRatings(ctx, s.ratingsSnapshot()); err != nil {
		return result, &PersistenceError{Op: "save ratings", Err: err}
	}
	return result, nil
}

// ToggleFavorite flips a card's favorite flag and persists the full
// favorite set. Same partial-failure policy as RecordComparison.
func (s *Store) ToggleFavorite(ctx context.Context, id string) (models.Card, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	card, ok := s.cards[id]
	if !ok {
		return models.Card{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	card.IsFavorite = !card.IsFavorite

	favorites := make(map[string]bool)
	for _, cid := range s.order {
		if s.cards[cid].IsFavorite {
			favorites[cid] = true
		}
	}

	if err := s.persistence.SaveFavorites(ctx, favorites); err != nil {
		return *card, &PersistenceError{Op: "save favorites", Err: err}
	}
	return *card, nil
}

// Reset clears all persisted rating data and discards in-memory state, so
// the next Initialize re-seeds from the catalog. Favorites survive.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.persistence.Reset(ctx); err != nil {
		return &PersistenceError{Op: "reset", Err: err}
	}

	s.cards = nil
	s.order = nil
	s.initialized = false
	log.Println("All rating data has been reset")
	return nil
}

func (s *Store) ratingsSnapshot() map[string]models.CardRating {
	ratings := make(map[string]models.CardRating, len(s.order))
	for _, id := range s.order {
		c := s.cards[id]
		ratings[id] = models.CardRating{
			Rating:        c.Rating,
			MatchesPlayed: c.MatchesPlayed,
			Wins:          c.Wins,
			LastUpdatedAt: c.LastUpdatedAt,
		}
	}
	return ratings
}
