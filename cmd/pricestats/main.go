package main

import (
	"flag"
	"fmt"
	"log"

	"card-ranker/internal/catalog"
	"card-ranker/internal/elo"
)

// Prints market price statistics for a catalog file. Used when recalibrating
// the seeding curve against a new card set.
func main() {
	path := flag.String("catalog", "data/cards.json", "path to the catalog file")
	flag.Parse()

	cards, err := catalog.Load(*path)
	if err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}

	stats := catalog.ComputePriceStats(cards)

	fmt.Printf("Analyzed %d cards\n", len(cards))
	fmt.Printf("  with market price:    %d\n", stats.CardsWithPrice)
	fmt.Printf("  missing market price: %d\n", stats.CardsMissingPrice)
	if stats.CardsWithPrice == 0 {
		return
	}
	fmt.Printf("  mean:   $%.2f\n", stats.Mean)
	fmt.Printf("  median: $%.2f\n", stats.Median)
	fmt.Printf("  stddev: $%.2f\n", stats.StdDev)
	fmt.Printf("  range:  $%.2f - $%.2f\n", stats.Min, stats.Max)
	fmt.Printf("Seeding curve is calibrated for mean $%.2f\n", float64(elo.MeanMarketPrice))
}
