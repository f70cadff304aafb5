package audit

import (
	"context"
	"log"
	"time"

	"card-ranker/internal/db"
	"card-ranker/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ComparisonRecord is the durable trail of a single pairwise comparison,
// including before/after ratings for both sides.
type ComparisonRecord struct {
	ID                 primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	WinnerID           string             `json:"winnerId" bson:"winnerId"`
	WinnerName         string             `json:"winnerName" bson:"winnerName"`
	WinnerRatingBefore float64            `json:"winnerRatingBefore" bson:"winnerRatingBefore"`
	WinnerRatingAfter  float64            `json:"winnerRatingAfter" bson:"winnerRatingAfter"`
	LoserID            string             `json:"loserId" bson:"loserId"`
	LoserName          string             `json:"loserName" bson:"loserName"`
	LoserRatingBefore  float64            `json:"loserRatingBefore" bson:"loserRatingBefore"`
	LoserRatingAfter   float64            `json:"loserRatingAfter" bson:"loserRatingAfter"`
	CompletedAt        time.Time          `json:"completedAt" bson:"completedAt"`
}

// LogComparison writes a comparison record to the database (fire-and-forget).
// History is diagnostic; a failed write never fails the comparison itself.
func LogComparison(database *db.MongoDB, result *models.ComparisonResult) {
	if database == nil {
		return
	}
	record := ComparisonRecord{
		WinnerID:           result.Winner.ID,
		WinnerName:         result.Winner.Name,
		WinnerRatingBefore: result.Winner.Rating - result.WinnerDelta,
		WinnerRatingAfter:  result.Winner.Rating,
		LoserID:            result.Loser.ID,
		LoserName:          result.Loser.Name,
		LoserRatingBefore:  result.Loser.Rating - result.LoserDelta,
		LoserRatingAfter:   result.Loser.Rating,
		CompletedAt:        time.Now().UTC(),
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if _, err := database.Comparisons().InsertOne(ctx, record); err != nil {
			log.Printf("Comparison history write failed: %v", err)
		}
	}()
}

// RecentComparisons returns the newest comparison records, newest first.
func RecentComparisons(ctx context.Context, database *db.MongoDB, limit int64) ([]ComparisonRecord, error) {
	opts := options.Find().
		SetSort(bson.M{"completedAt": -1}).
		SetLimit(limit)

	cursor, err := database.Comparisons().Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []ComparisonRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}
