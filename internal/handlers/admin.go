package handlers

import (
	"context"
	"net/http"
	"time"

	"card-ranker/internal/eventbus"
	"card-ranker/internal/store"
)

type AdminHandler struct {
	store *store.Store
	bus   *eventbus.EventBus
}

func NewAdminHandler(cardStore *store.Store, bus *eventbus.EventBus) *AdminHandler {
	return &AdminHandler{store: cardStore, bus: bus}
}

// ResetRatings clears all persisted rating data and re-seeds the store from
// the catalog. Favorites survive a reset.
// POST /api/admin/reset
func (h *AdminHandler) ResetRatings(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	if err := h.store.Reset(ctx); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if err := h.store.Initialize(ctx); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	h.bus.Publish(eventbus.Event{Type: eventbus.EventRatingsReset})
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "rating data reset, cards re-seeded from catalog",
		"cards":   h.store.Size(),
	})
}
