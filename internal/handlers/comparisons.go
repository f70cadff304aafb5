package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"card-ranker/internal/audit"
	"card-ranker/internal/db"
	"card-ranker/internal/eventbus"
	"card-ranker/internal/models"
	"card-ranker/internal/store"
)

type ComparisonsHandler struct {
	store *store.Store
	db    *db.MongoDB
	bus   *eventbus.EventBus
}

func NewComparisonsHandler(cardStore *store.Store, database *db.MongoDB, bus *eventbus.EventBus) *ComparisonsHandler {
	return &ComparisonsHandler{store: cardStore, db: database, bus: bus}
}

type RecordComparisonRequest struct {
	WinnerID string `json:"winnerId"`
	LoserID  string `json:"loserId"`
}

// RecordComparison applies one "winner beats loser" judgment.
// POST /api/comparisons
func (h *ComparisonsHandler) RecordComparison(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var req RecordComparisonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.WinnerID == "" || req.LoserID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "winnerId and loserId are required"})
		return
	}

	result, err := h.store.RecordComparison(ctx, req.WinnerID, req.LoserID)
	if err != nil {
		var persistErr *store.PersistenceError
		if !errors.As(err, &persistErr) {
			writeError(w, err)
			return
		}
		// The ratings moved in memory; report the comparison and note that
		// it may not survive a restart.
		log.Printf("Comparison %s/%s applied in memory but not persisted: %v",
			req.WinnerID, req.LoserID, err)
	}

	audit.LogComparison(h.db, result)
	h.bus.Publish(eventbus.Event{
		Type:  eventbus.EventCardsUpdated,
		Cards: []models.Card{result.Winner, result.Loser},
	})

	writeJSON(w, http.StatusOK, result)
}

// GetRecentComparisons returns the latest comparison history records.
// GET /api/comparisons/recent?limit=20
func (h *ComparisonsHandler) GetRecentComparisons(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	limit := int64(20)
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed < 1 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "limit must be a positive integer"})
			return
		}
		if parsed > 100 {
			parsed = 100
		}
		limit = parsed
	}

	records, err := audit.RecentComparisons(ctx, h.db, limit)
	if err != nil {
		log.Printf("Failed to read comparison history: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to read comparison history"})
		return
	}
	if records == nil {
		records = []audit.ComparisonRecord{}
	}
	writeJSON(w, http.StatusOK, records)
}
