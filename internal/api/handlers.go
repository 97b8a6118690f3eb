// ReelMatch - Content-Based Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/tomtom215/reelmatch/internal/pipeline"
	"github.com/tomtom215/reelmatch/internal/recommend"
)

// recommendTimeout bounds a single recommendation query end to end.
const recommendTimeout = 10 * time.Second

// Handler serves the recommendation endpoints.
type Handler struct {
	rec *pipeline.Recommender
}

// NewHandler creates a handler over the recommender.
func NewHandler(rec *pipeline.Recommender) *Handler {
	return &Handler{rec: rec}
}

// GetItems handles GET /api/v1/items.
// Returns the full item collection.
func (h *Handler) GetItems(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	items := h.rec.Items()
	respondSuccess(w, http.StatusOK, map[string]interface{}{
		"total": len(items),
		"items": items,
	}, time.Since(start))
}

// GetItem handles GET /api/v1/items/{itemID}.
func (h *Handler) GetItem(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	id, err := strconv.Atoi(chi.URLParam(r, "itemID"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid item ID", err)
		return
	}

	item, err := h.rec.Item(id)
	if err != nil {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "Item not found", nil)
		return
	}
	respondSuccess(w, http.StatusOK, item, time.Since(start))
}

// GetSimilar handles GET /api/v1/items/{itemID}/similar?k=10.
// Returns the most similar items by raw content score, without preference
// adjustment.
func (h *Handler) GetSimilar(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	id, err := strconv.Atoi(chi.URLParam(r, "itemID"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid item ID", err)
		return
	}

	k := 0
	if kStr := r.URL.Query().Get("k"); kStr != "" {
		if k, err = strconv.Atoi(kStr); err != nil || k < 1 {
			respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid k parameter", err)
			return
		}
	}

	results, err := h.rec.SimilarByID(id, k)
	if err != nil {
		if recommend.IsNotFound(err) {
			respondError(w, http.StatusNotFound, "NOT_FOUND", "Item not found", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Similarity query failed", err)
		return
	}

	respondSuccess(w, http.StatusOK, map[string]interface{}{
		"item_id": id,
		"total":   len(results),
		"results": results,
	}, time.Since(start))
}

// PostRecommendations handles POST /api/v1/recommendations.
// The request body is a pipeline.Request; the query item is identified by
// item_id or title.
func (h *Handler) PostRecommendations(w http.ResponseWriter, r *http.Request) {
	var req pipeline.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", err)
		return
	}
	if req.ItemID <= 0 && req.Title == "" {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Either item_id or title is required", nil)
		return
	}
	if req.RequestID == "" {
		req.RequestID = r.Header.Get("X-Request-ID")
	}

	ctx, cancel := context.WithTimeout(r.Context(), recommendTimeout)
	defer cancel()

	start := time.Now()
	resp, err := h.rec.Recommend(ctx, req)
	if err != nil {
		switch {
		case recommend.IsNotFound(err):
			respondError(w, http.StatusNotFound, "NOT_FOUND", "Query item not found", nil)
		case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
			respondError(w, http.StatusGatewayTimeout, "TIMEOUT", "Recommendation query timed out", err)
		default:
			respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Recommendation failed", err)
		}
		return
	}

	respondSuccess(w, http.StatusOK, resp, time.Since(start))
}

// GetGenres handles GET /api/v1/genres.
func (h *Handler) GetGenres(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	respondSuccess(w, http.StatusOK, map[string]interface{}{
		"genres": h.rec.Genres(),
	}, time.Since(start))
}

// GetLanguages handles GET /api/v1/languages.
func (h *Handler) GetLanguages(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	respondSuccess(w, http.StatusOK, map[string]interface{}{
		"languages": h.rec.Languages(),
	}, time.Since(start))
}

// GetHealthz handles GET /api/v1/healthz.
func (h *Handler) GetHealthz(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"items":  len(h.rec.Items()),
	}, 0)
}
