// Package ranking derives display orderings from card snapshots. It holds
// no state of its own: every projection is recomputed from the snapshot it
// is handed and never mutates its input.
package ranking

import (
	"fmt"
	"sort"
	"strings"

	"card-ranker/internal/models"
)

type SortKey string

const (
	SortByRating  SortKey = "rating"
	SortByName    SortKey = "name"
	SortByMatches SortKey = "matchesPlayed"
	SortByPrice   SortKey = "marketPrice"
)

type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// ParseSortKey validates a sort key from the presentation layer. An empty
// value defaults to rating.
func ParseSortKey(s string) (SortKey, error) {
	switch SortKey(s) {
	case "":
		return SortByRating, nil
	case SortByRating, SortByName, SortByMatches, SortByPrice:
		return SortKey(s), nil
	default:
		return "", fmt.Errorf("unknown sort key %q", s)
	}
}

// ParseDirection validates a sort direction. An empty value defaults to
// descending, the view the ranking list opens with.
func ParseDirection(s string) (Direction, error) {
	switch Direction(s) {
	case "":
		return Descending, nil
	case Ascending, Descending:
		return Direction(s), nil
	default:
		return "", fmt.Errorf("unknown sort direction %q", s)
	}
}

// Project produces the display ordering for a snapshot of cards.
//
// Cards are first partitioned into four disjoint groups, in fixed priority
// order: favorited with matches, favorited without matches, non-favorited
// with matches, non-favorited without matches. Favorites always precede
// non-favorites; no sort key can move a favorite below a non-favorite.
// Each group is then stable-sorted on the key and direction, so equal keys
// keep their prior relative order. Finally the name filter and the
// favorites-only filter remove members without reordering survivors.
func Project(cards []models.Card, key SortKey, direction Direction, filterText string, favoritesOnly bool) []models.Card {
	var favWithMatches, favNoMatches, withMatches, noMatches []models.Card

	for _, card := range cards {
		switch {
		case card.IsFavorite && card.MatchesPlayed > 0:
			favWithMatches = append(favWithMatches, card)
		case card.IsFavorite:
			favNoMatches = append(favNoMatches, card)
		case card.MatchesPlayed > 0:
			withMatches = append(withMatches, card)
		default:
			noMatches = append(noMatches, card)
		}
	}

	ordered := make([]models.Card, 0, len(cards))
	for _, group := range [][]models.Card{favWithMatches, favNoMatches, withMatches, noMatches} {
		sortGroup(group, key, direction)
		ordered = append(ordered, group...)
	}

	if filterText != "" {
		needle := strings.ToLower(filterText)
		filtered := ordered[:0:0]
		for _, card := range ordered {
			if strings.Contains(strings.ToLower(card.Name), needle) {
				filtered = append(filtered, card)
			}
		}
		ordered = filtered
	}

	if favoritesOnly {
		filtered := ordered[:0:0]
		for _, card := range ordered {
			if card.IsFavorite {
				filtered = append(filtered, card)
			}
		}
		ordered = filtered
	}

	return ordered
}

func sortGroup(group []models.Card, key SortKey, direction Direction) {
	sort.SliceStable(group, func(i, j int) bool {
		return less(&group[i], &group[j], key, direction)
	})
}

func less(a, b *models.Card, key SortKey, direction Direction) bool {
	if key == SortByPrice {
		// Missing prices rank strictly last in both directions.
		switch {
		case a.MarketPrice == nil && b.MarketPrice == nil:
			return false
		case a.MarketPrice == nil:
			return false
		case b.MarketPrice == nil:
			return true
		}
	}

	var cmp int
	switch key {
	case SortByName:
		cmp = strings.Compare(a.Name, b.Name)
	case SortByMatches:
		cmp = compareInt(a.MatchesPlayed, b.MatchesPlayed)
	case SortByPrice:
		cmp = compareFloat(*a.MarketPrice, *b.MarketPrice)
	default:
		cmp = compareFloat(a.Rating, b.Rating)
	}

	if direction == Ascending {
		return cmp < 0
	}
	return cmp > 0
}

func compareInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
