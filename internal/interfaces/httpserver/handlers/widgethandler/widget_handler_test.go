package widgethandler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"shoprec-server/internal/domain/widgetfeed"
	"shoprec-server/internal/interfaces/httpserver/responses"
)

type stubRepository struct {
	items []widgetfeed.Item
}

func (r *stubRepository) All() []widgetfeed.Item {
	out := make([]widgetfeed.Item, len(r.items))
	copy(out, r.items)
	return out
}

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	repo := &stubRepository{items: []widgetfeed.Item{
		{ID: "1", Name: "Headphones", Price: 199.99, CreatedAt: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)},
		{ID: "2", Name: "Bottle", Price: 24.99, CreatedAt: time.Date(2024, 1, 16, 0, 0, 0, 0, time.UTC)},
		{ID: "3", Name: "Watch", Price: 299.99, CreatedAt: time.Date(2024, 1, 14, 0, 0, 0, 0, time.UTC)},
	}}
	handler := NewWidgetHandler(widgetfeed.NewService(repo, zerolog.Nop()), zerolog.Nop())

	router := gin.New()
	router.GET("/api/widget", handler.Feed)
	return router
}

func get(router *gin.Engine, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	router.ServeHTTP(rec, req)
	return rec
}

func TestFeedRequiresClient(t *testing.T) {
	router := newTestRouter()

	rec := get(router, "/api/widget?type=latest")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}

	var body responses.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Error != "Client ID is required" {
		t.Errorf("error = %q, want %q", body.Error, "Client ID is required")
	}
}

func TestFeedLatest(t *testing.T) {
	router := newTestRouter()

	rec := get(router, "/api/widget?client=acme&type=latest&limit=2")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body %s", rec.Code, rec.Body.String())
	}

	var body widgetfeed.Result
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(body.Products) != 2 || body.Products[0].ID != "2" {
		t.Errorf("products = %+v, want newest first, limit 2", body.Products)
	}
	if body.Total != 3 {
		t.Errorf("Total = %d, want 3", body.Total)
	}
	if body.Client != "acme" || body.Type != "latest" {
		t.Error("request parameters must be echoed")
	}
	if body.Timestamp.IsZero() {
		t.Error("response must carry a timestamp")
	}
}

func TestFeedUnparsableLimitUsesDefault(t *testing.T) {
	router := newTestRouter()

	rec := get(router, "/api/widget?client=acme&limit=nope")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var body widgetfeed.Result
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	// Catalog is smaller than the default limit, so everything comes back.
	if len(body.Products) != 3 {
		t.Errorf("len(Products) = %d, want 3", len(body.Products))
	}
}

func TestFeedFeaturedStyle(t *testing.T) {
	router := newTestRouter()

	rec := get(router, "/api/widget?client=acme&style=2")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var body widgetfeed.Result
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Total != 2 {
		t.Errorf("Total = %d, want 2 items above the featured threshold", body.Total)
	}
	for _, item := range body.Products {
		if item.Price <= 50 {
			t.Errorf("item %s priced %v must be filtered", item.ID, item.Price)
		}
	}
}
