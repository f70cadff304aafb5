package ranking

import (
	"testing"

	"card-ranker/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func card(id, name string, rating float64, matches int, favorite bool, marketPrice *float64) models.Card {
	return models.Card{
		ID:            id,
		Name:          name,
		Rating:        rating,
		MatchesPlayed: matches,
		IsFavorite:    favorite,
		MarketPrice:   marketPrice,
	}
}

func priceOf(p float64) *float64 {
	return &p
}

func ids(cards []models.Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.ID
	}
	return out
}

func TestParseSortKey(t *testing.T) {
	key, err := ParseSortKey("")
	require.NoError(t, err)
	assert.Equal(t, SortByRating, key)

	for _, valid := range []string{"rating", "name", "matchesPlayed", "marketPrice"} {
		_, err := ParseSortKey(valid)
		assert.NoError(t, err, valid)
	}

	_, err = ParseSortKey("hp")
	assert.Error(t, err)
}

func TestParseDirection(t *testing.T) {
	dir, err := ParseDirection("")
	require.NoError(t, err)
	assert.Equal(t, Descending, dir)

	_, err = ParseDirection("sideways")
	assert.Error(t, err)
}

func TestProject_GroupOrder(t *testing.T) {
	cards := []models.Card{
		card("plain-new", "D", 1500, 0, false, nil),
		card("plain-played", "C", 1100, 3, false, nil),
		card("fav-new", "B", 1600, 0, true, nil),
		card("fav-played", "A", 1000, 5, true, nil),
	}

	got := Project(cards, SortByRating, Descending, "", false)
	assert.Equal(t, []string{"fav-played", "fav-new", "plain-played", "plain-new"}, ids(got))
}

func TestProject_FavoritesAlwaysPrecedeNonFavorites(t *testing.T) {
	// The favorite has the worst value on every sort key; it must still
	// come first under all key/direction combinations.
	cards := []models.Card{
		card("top", "Aardvark", 1900, 40, false, priceOf(250)),
		card("mid", "Mewtwo", 1500, 20, false, priceOf(40)),
		card("fav", "Zubat", 950, 1, true, priceOf(0.05)),
	}

	for _, key := range []SortKey{SortByRating, SortByName, SortByMatches, SortByPrice} {
		for _, dir := range []Direction{Ascending, Descending} {
			got := Project(cards, key, dir, "", false)
			require.Len(t, got, 3)
			assert.Equal(t, "fav", got[0].ID, "key=%s dir=%s", key, dir)
		}
	}
}

func TestProject_SortWithinGroup(t *testing.T) {
	cards := []models.Card{
		card("b", "Bulbasaur", 1300, 2, false, nil),
		card("a", "Abra", 1100, 4, false, nil),
		card("c", "Charmander", 1200, 1, false, nil),
	}

	got := Project(cards, SortByRating, Descending, "", false)
	assert.Equal(t, []string{"b", "c", "a"}, ids(got))

	got = Project(cards, SortByRating, Ascending, "", false)
	assert.Equal(t, []string{"a", "c", "b"}, ids(got))

	got = Project(cards, SortByName, Ascending, "", false)
	assert.Equal(t, []string{"a", "b", "c"}, ids(got))

	got = Project(cards, SortByMatches, Descending, "", false)
	assert.Equal(t, []string{"a", "b", "c"}, ids(got))
}

func TestProject_StableOnEqualKeys(t *testing.T) {
	cards := []models.Card{
		card("first", "Eevee", 1200, 1, false, nil),
		card("second", "Flareon", 1200, 1, false, nil),
		card("third", "Jolteon", 1200, 1, false, nil),
	}

	for _, dir := range []Direction{Ascending, Descending} {
		got := Project(cards, SortByRating, dir, "", false)
		assert.Equal(t, []string{"first", "second", "third"}, ids(got), "dir=%s", dir)
	}
}

func TestProject_MissingPriceRanksLast(t *testing.T) {
	cards := []models.Card{
		card("unpriced", "Misprint", 1200, 1, false, nil),
		card("cheap", "Rattata", 1200, 1, false, priceOf(0.10)),
		card("pricey", "Lugia", 1200, 1, false, priceOf(180)),
	}

	got := Project(cards, SortByPrice, Ascending, "", false)
	assert.Equal(t, []string{"cheap", "pricey", "unpriced"}, ids(got))

	got = Project(cards, SortByPrice, Descending, "", false)
	assert.Equal(t, []string{"pricey", "cheap", "unpriced"}, ids(got))
}

func TestProject_NameFilter(t *testing.T) {
	cards := []models.Card{
		card("1", "Charizard", 1400, 2, false, nil),
		card("2", "Charmeleon", 1300, 2, false, nil),
		card("3", "Squirtle", 1350, 2, false, nil),
	}

	got := Project(cards, SortByRating, Descending, "CHAR", false)
	assert.Equal(t, []string{"1", "2"}, ids(got))

	// Filtering removes members but never reorders survivors
	got = Project(cards, SortByRating, Ascending, "char", false)
	assert.Equal(t, []string{"2", "1"}, ids(got))
}

func TestProject_FavoritesOnly(t *testing.T) {
	cards := []models.Card{
		card("1", "Mew", 1400, 2, true, nil),
		card("2", "Ditto", 1300, 2, false, nil),
		card("3", "Celebi", 1350, 0, true, nil),
	}

	got := Project(cards, SortByRating, Descending, "", true)
	assert.Equal(t, []string{"1", "3"}, ids(got))
}

func TestProject_DoesNotMutateInput(t *testing.T) {
	cards := []models.Card{
		card("z", "Zapdos", 1500, 2, false, nil),
		card("a", "Articuno", 1400, 2, false, nil),
	}

	Project(cards, SortByName, Ascending, "", false)
	assert.Equal(t, []string{"z", "a"}, ids(cards))
}

func TestProject_EmptyInput(t *testing.T) {
	got := Project(nil, SortByRating, Descending, "", false)
	assert.Empty(t, got)
}
