package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"card-ranker/internal/eventbus"
	"card-ranker/internal/models"
	"card-ranker/internal/ranking"
	"card-ranker/internal/store"

	"github.com/gorilla/mux"
)

type CardsHandler struct {
	store *store.Store
	bus   *eventbus.EventBus
}

func NewCardsHandler(cardStore *store.Store, bus *eventbus.EventBus) *CardsHandler {
	return &CardsHandler{store: cardStore, bus: bus}
}

// GetAllCards returns a snapshot of every card.
// GET /api/cards
func (h *CardsHandler) GetAllCards(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.GetAll())
}

// GetCard returns a single card by id.
// GET /api/cards/{id}
func (h *CardsHandler) GetCard(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	card, err := h.store.GetByID(vars["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, card)
}

// GetRandomCards returns distinct random cards, by default the pair for the
// next comparison.
// GET /api/cards/random?count=2
func (h *CardsHandler) GetRandomCards(w http.ResponseWriter, r *http.Request) {
	count := 2
	if raw := r.URL.Query().Get("count"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "count must be an integer"})
			return
		}
		count = parsed
	}

	cards, err := h.store.GetRandom(count)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cards)
}

// GetRankings returns the projected ranking view.
// GET /api/rankings?sort=rating&direction=desc&filter=&favorites=false
func (h *CardsHandler) GetRankings(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	sortKey, err := ranking.ParseSortKey(query.Get("sort"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	direction, err := ranking.ParseDirection(query.Get("direction"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	favoritesOnly := query.Get("favorites") == "true" || query.Get("favorites") == "1"

	ranked := ranking.Project(h.store.GetAll(), sortKey, direction, query.Get("filter"), favoritesOnly)
	writeJSON(w, http.StatusOK, ranked)
}

// ToggleFavorite flips a card's favorite flag.
// POST /api/cards/{id}/favorite
func (h *CardsHandler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	vars := mux.Vars(r)

	card, err := h.store.ToggleFavorite(ctx, vars["id"])
	if err != nil {
		var persistErr *store.PersistenceError
		if !errors.As(err, &persistErr) {
			writeError(w, err)
			return
		}
		// The in-memory flip already happened; keep the UI responsive and
		// surface the durability problem on the diagnostic channel.
		log.Printf("Favorite toggle for %s applied in memory but not persisted: %v", card.ID, err)
	}

	h.bus.Publish(eventbus.Event{
		Type:  eventbus.EventFavoriteToggled,
		Cards: []models.Card{card},
	})
	writeJSON(w, http.StatusOK, card)
}
