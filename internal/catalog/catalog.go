package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Card is a raw catalog record as produced by the card data pipeline.
// Read once at startup; the core never writes catalog data.
type Card struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	Supertype  string      `json:"supertype,omitempty"`
	Rarity     string      `json:"rarity,omitempty"`
	Images     *Images     `json:"images,omitempty"`
	TCGPlayer  *TCGPlayer  `json:"tcgplayer,omitempty"`
	Cardmarket *Cardmarket `json:"cardmarket,omitempty"`

	// Optional pre-existing rating state shipped with the catalog.
	Rating        *float64   `json:"elo,omitempty"`
	MatchesPlayed int        `json:"matches,omitempty"`
	Wins          int        `json:"wins,omitempty"`
	LastUpdatedAt *time.Time `json:"lastUpdated,omitempty"`
}

type Images struct {
	Small string `json:"small,omitempty"`
	Large string `json:"large,omitempty"`
}

// TCGPlayer holds the primary marketplace listing: a URL plus per-printing
// price tiers (normal, holofoil, ...), each with its own market price.
type TCGPlayer struct {
	URL    string                `json:"url,omitempty"`
	Prices map[string]*PriceTier `json:"prices,omitempty"`
}

type PriceTier struct {
	Low    float64 `json:"low,omitempty"`
	Mid    float64 `json:"mid,omitempty"`
	High   float64 `json:"high,omitempty"`
	Market float64 `json:"market,omitempty"`
}

// Cardmarket is the secondary marketplace, used as a price fallback.
type Cardmarket struct {
	URL    string            `json:"url,omitempty"`
	Prices *CardmarketPrices `json:"prices,omitempty"`
}

type CardmarketPrices struct {
	AverageSellPrice float64 `json:"averageSellPrice,omitempty"`
	TrendPrice       float64 `json:"trendPrice,omitempty"`
}

type file struct {
	Cards []Card `json:"cards"`
}

// priceTierOrder fixes the lookup order across tcgplayer printings so price
// resolution does not depend on JSON map iteration.
var priceTierOrder = []string{
	"normal",
	"holofoil",
	"reverseHolofoil",
	"firstEditionHolofoil",
	"firstEditionNormal",
}

// Load reads the static catalog file. Card order in the file is preserved.
func Load(path string) ([]Card, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file %s: %w", path, err)
	}

	var f file
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse catalog file %s: %w", path, err)
	}

	if len(f.Cards) == 0 {
		return nil, fmt.Errorf("catalog file %s contains no cards", path)
	}

	return f.Cards, nil
}

// ResolveMarketPrice picks the market price for a card: the first nonzero
// market price among the tcgplayer tiers (in fixed tier order), falling back
// to the cardmarket average sell price. Returns nil when no source has a
// usable price; absence propagates to the caller.
func (c *Card) ResolveMarketPrice() *float64 {
	if c.TCGPlayer != nil {
		for _, tier := range priceTierOrder {
			if t, ok := c.TCGPlayer.Prices[tier]; ok && t != nil && t.Market > 0 {
				price := t.Market
				return &price
			}
		}
	}

	if c.Cardmarket != nil && c.Cardmarket.Prices != nil && c.Cardmarket.Prices.AverageSellPrice > 0 {
		price := c.Cardmarket.Prices.AverageSellPrice
		return &price
	}

	return nil
}

// ImageURL returns the best available image reference for a card.
func (c *Card) ImageURL() string {
	if c.Images == nil {
		return ""
	}
	if c.Images.Large != "" {
		return c.Images.Large
	}
	return c.Images.Small
}

// TCGPlayerURL returns the primary marketplace link, if any.
func (c *Card) TCGPlayerURL() string {
	if c.TCGPlayer == nil {
		return ""
	}
	return c.TCGPlayer.URL
}
