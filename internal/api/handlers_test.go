// ReelMatch - Content-Based Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/reelmatch/internal/pipeline"
	"github.com/tomtom215/reelmatch/internal/recommend"
)

func testRouter(t *testing.T) http.Handler {
	t.Helper()

	items := []recommend.Item{
		{ID: 1, Title: "Star Voyage", Genres: []string{"Sci-Fi", "Adventure"}, Overview: "epic space exploration among distant stars and wormholes", Language: "en", Rating: 8.4},
		{ID: 2, Title: "Star Marines", Genres: []string{"Sci-Fi", "Action"}, Overview: "space marines fight alien invaders across distant stars", Language: "en", Rating: 6.5},
		{ID: 3, Title: "Quiet Rooms", Genres: []string{"Drama"}, Overview: "quiet family drama about memory loss and reconciliation", Language: "fr", Rating: 7.9},
	}
	rec, err := pipeline.New(items, recommend.DefaultConfig(), zerolog.Nop())
	if err != nil {
		t.Fatalf("pipeline.New() error = %v", err)
	}
	return NewRouter(NewHandler(rec), RouterConfig{})
}

func doRequest(t *testing.T, router http.Handler, method, path, body string) (*httptest.ResponseRecorder, *APIResponse) {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	var envelope APIResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("%s %s: invalid JSON response %q: %v", method, path, rr.Body.String(), err)
	}
	return rr, &envelope
}

func TestGetHealthz(t *testing.T) {
	router := testRouter(t)

	rr, envelope := doRequest(t, router, http.MethodGet, "/api/v1/healthz", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	if envelope.Status != "success" {
		t.Errorf("envelope status = %q", envelope.Status)
	}
}

func TestGetItem(t *testing.T) {
	router := testRouter(t)

	rr, envelope := doRequest(t, router, http.MethodGet, "/api/v1/items/1", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rr.Code, rr.Body.String())
	}

	data, _ := json.Marshal(envelope.Data)
	var item recommend.Item
	if err := json.Unmarshal(data, &item); err != nil {
		t.Fatalf("decode item: %v", err)
	}
	if item.ID != 1 || item.Title != "Star Voyage" {
		t.Errorf("item = %+v", item)
	}
}

func TestGetItemErrors(t *testing.T) {
	router := testRouter(t)

	tests := []struct {
		path     string
		wantCode int
		wantErr  string
	}{
		{"/api/v1/items/999", http.StatusNotFound, "NOT_FOUND"},
		{"/api/v1/items/abc", http.StatusBadRequest, "VALIDATION_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rr, envelope := doRequest(t, router, http.MethodGet, tt.path, "")
			if rr.Code != tt.wantCode {
				t.Errorf("status = %d, want %d", rr.Code, tt.wantCode)
			}
			if envelope.Error == nil || envelope.Error.Code != tt.wantErr {
				t.Errorf("error = %+v, want code %q", envelope.Error, tt.wantErr)
			}
		})
	}
}

func TestGetSimilar(t *testing.T) {
	router := testRouter(t)

	rr, envelope := doRequest(t, router, http.MethodGet, "/api/v1/items/1/similar?k=2", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rr.Code, rr.Body.String())
	}

	data, _ := json.Marshal(envelope.Data)
	var payload struct {
		ItemID  int                      `json:"item_id"`
		Total   int                      `json:"total"`
		Results []recommend.ScoredResult `json:"results"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if payload.ItemID != 1 || payload.Total != 2 {
		t.Errorf("payload = %+v", payload)
	}
	for _, res := range payload.Results {
		if res.ID == 1 {
			t.Error("query item present in similar results")
		}
	}
}

func TestGetSimilarBadK(t *testing.T) {
	router := testRouter(t)

	rr, _ := doRequest(t, router, http.MethodGet, "/api/v1/items/1/similar?k=zero", "")
	if rr.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rr.Code)
	}
}

func TestPostRecommendations(t *testing.T) {
	router := testRouter(t)

	body := `{"title": "star voyage", "k": 2, "preferences": {"genres": ["Drama"], "languages": ["fr"]}}`
	rr, envelope := doRequest(t, router, http.MethodPost, "/api/v1/recommendations", body)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rr.Code, rr.Body.String())
	}

	data, _ := json.Marshal(envelope.Data)
	var resp pipeline.Response
	if err := json.Unmarshal(data, &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.QueryID != 1 {
		t.Errorf("QueryID = %d, want 1", resp.QueryID)
	}
	if !resp.Personalized {
		t.Error("Personalized = false")
	}
	if len(resp.Results) == 0 || len(resp.Results) > 2 {
		t.Errorf("len(Results) = %d, want 1..2", len(resp.Results))
	}
}

func TestPostRecommendationsErrors(t *testing.T) {
	router := testRouter(t)

	tests := []struct {
		name     string
		body     string
		wantCode int
	}{
		{"empty body", `{}`, http.StatusBadRequest},
		{"invalid json", `{"title":`, http.StatusBadRequest},
		{"unknown title", `{"title": "Galactic Empire"}`, http.StatusNotFound},
		{"unknown id", `{"item_id": 999}`, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr, _ := doRequest(t, router, http.MethodPost, "/api/v1/recommendations", tt.body)
			if rr.Code != tt.wantCode {
				t.Errorf("status = %d, want %d: %s", rr.Code, tt.wantCode, rr.Body.String())
			}
		})
	}
}

func TestGetGenresAndLanguages(t *testing.T) {
	router := testRouter(t)

	rr, envelope := doRequest(t, router, http.MethodGet, "/api/v1/genres", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	data, _ := json.Marshal(envelope.Data)
	var genres struct {
		Genres []string `json:"genres"`
	}
	if err := json.Unmarshal(data, &genres); err != nil {
		t.Fatalf("decode genres: %v", err)
	}
	if len(genres.Genres) != 4 {
		t.Errorf("Genres = %v, want 4 distinct", genres.Genres)
	}

	rr, _ = doRequest(t, router, http.MethodGet, "/api/v1/languages", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("languages status = %d, want 200", rr.Code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	router := testRouter(t)

	// Serve one API request first so the request counter has samples.
	doRequest(t, router, http.MethodGet, "/api/v1/healthz", "")

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "api_requests_total") {
		t.Error("metrics output missing api_requests_total")
	}
}
