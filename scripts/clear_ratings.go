package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"card-ranker/internal/config"
	"card-ranker/internal/db"
)

func main() {
	// Load config
	cfg, err := config.Load(config.GetEnv())
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Connect to MongoDB
	mongodb, err := db.NewMongoDB(cfg.MongoDB.URI, cfg.MongoDB.Database)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		mongodb.Close(ctx)
	}()

	ctx := context.Background()

	// Delete all persisted ratings; the server re-seeds from the catalog on
	// its next startup. Favorites are deliberately left alone.
	ratingsResult, err := mongodb.Ratings().DeleteMany(ctx, map[string]interface{}{})
	if err != nil {
		log.Fatalf("Failed to delete ratings: %v", err)
	}
	fmt.Printf("Deleted %d ratings\n", ratingsResult.DeletedCount)

	// Comparison history describes the deleted ratings, clear it too
	comparisonsResult, err := mongodb.Comparisons().DeleteMany(ctx, map[string]interface{}{})
	if err != nil {
		log.Fatalf("Failed to delete comparisons: %v", err)
	}
	fmt.Printf("Deleted %d comparison records\n", comparisonsResult.DeletedCount)

	fmt.Println("Rating data cleared successfully")
}
