package persistence

import (
	"context"
	"fmt"
	"log"
	"time"

	"card-ranker/internal/db"
	"card-ranker/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const writeTimeout = 5 * time.Second

// Mongo persists rating and favorite state in MongoDB. One document per
// card in each collection, keyed by card id. Load failures degrade to empty
// state so a corrupt store falls back to catalog seeding instead of taking
// the service down.
type Mongo struct {
	db *db.MongoDB
}

func NewMongo(database *db.MongoDB) *Mongo {
	return &Mongo{db: database}
}

type ratingDoc struct {
	ID            string    `bson:"_id"`
	Rating        float64   `bson:"rating"`
	MatchesPlayed int       `bson:"matchesPlayed"`
	Wins          int       `bson:"wins"`
	LastUpdatedAt time.Time `bson:"lastUpdatedAt"`
}

type favoriteDoc struct {
	ID string `bson:"_id"`
}

func (m *Mongo) LoadRatings(ctx context.Context) (map[string]models.CardRating, error) {
	ratings := make(map[string]models.CardRating)

	cursor, err := m.db.Ratings().Find(ctx, bson.M{})
	if err != nil {
		log.Printf("Failed to read ratings collection, treating as empty: %v", err)
		return ratings, nil
	}
	defer cursor.Close(ctx)

	var docs []ratingDoc
	if err := cursor.All(ctx, &docs); err != nil {
		log.Printf("Failed to decode ratings collection, treating as empty: %v", err)
		return ratings, nil
	}

	for _, d := range docs {
		ratings[d.ID] = models.CardRating{
			Rating:        d.Rating,
			MatchesPlayed: d.MatchesPlayed,
			Wins:          d.Wins,
			LastUpdatedAt: d.LastUpdatedAt,
		}
	}
	return ratings, nil
}

// SaveRatings replaces the persisted rating state with the given mapping:
// every entry is upserted and any document not in the mapping is removed.
func (m *Mongo) SaveRatings(ctx context.Context, ratings map[string]models.CardRating) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	ids := make([]string, 0, len(ratings))
	writes := make([]mongo.WriteModel, 0, len(ratings))
	for id, r := range ratings {
		ids = append(ids, id)
		doc := ratingDoc{
			ID:            id,
			Rating:        r.Rating,
			MatchesPlayed: r.MatchesPlayed,
			Wins:          r.Wins,
			LastUpdatedAt: r.LastUpdatedAt,
		}
		writes = append(writes, mongo.NewReplaceOneModel().
			SetFilter(bson.M{"_id": id}).
			SetReplacement(doc).
			SetUpsert(true))
	}

	if len(writes) > 0 {
		if _, err := m.db.Ratings().BulkWrite(ctx, writes); err != nil {
			return fmt.Errorf("failed to write ratings: %w", err)
		}
	}

	if _, err := m.db.Ratings().DeleteMany(ctx, bson.M{"_id": bson.M{"$nin": ids}}); err != nil {
		return fmt.Errorf("failed to prune stale ratings: %w", err)
	}
	return nil
}

func (m *Mongo) LoadFavorites(ctx context.Context) (map[string]bool, error) {
	favorites := make(map[string]bool)

	cursor, err := m.db.Favorites().Find(ctx, bson.M{})
	if err != nil {
		log.Printf("Failed to read favorites collection, treating as empty: %v", err)
		return favorites, nil
	}
	defer cursor.Close(ctx)

	var docs []favoriteDoc
	if err := cursor.All(ctx, &docs); err != nil {
		log.Printf("Failed to decode favorites collection, treating as empty: %v", err)
		return favorites, nil
	}

	for _, d := range docs {
		favorites[d.ID] = true
	}
	return favorites, nil
}

// SaveFavorites replaces the persisted favorite set.
func (m *Mongo) SaveFavorites(ctx context.Context, favorites map[string]bool) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	if _, err := m.db.Favorites().DeleteMany(ctx, bson.M{}); err != nil {
		return fmt.Errorf("failed to clear favorites: %w", err)
	}

	if len(favorites) == 0 {
		return nil
	}

	docs := make([]interface{}, 0, len(favorites))
	for id, isFavorite := range favorites {
		if isFavorite {
			docs = append(docs, favoriteDoc{ID: id})
		}
	}
	if len(docs) == 0 {
		return nil
	}

	if _, err := m.db.Favorites().InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("failed to write favorites: %w", err)
	}
	return nil
}

// Reset drops all persisted rating data. Favorites are left untouched.
func (m *Mongo) Reset(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	if _, err := m.db.Ratings().DeleteMany(ctx, bson.M{}); err != nil {
		return fmt.Errorf("failed to clear ratings: %w", err)
	}
	return nil
}
