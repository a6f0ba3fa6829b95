package widgetfeed

import (
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

type stubRepository struct {
	items []Item
}

func (r *stubRepository) All() []Item {
	out := make([]Item, len(r.items))
	copy(out, r.items)
	return out
}

func day(n int) time.Time {
	return time.Date(2024, 1, n, 10, 0, 0, 0, time.UTC)
}

func testService() (*Service, time.Time) {
	repo := &stubRepository{items: []Item{
		{ID: "1", Name: "Headphones", Price: 199.99, CreatedAt: day(15)},
		{ID: "2", Name: "Bottle", Price: 24.99, CreatedAt: day(16)},
		{ID: "3", Name: "Watch", Price: 299.99, CreatedAt: day(14)},
		{ID: "4", Name: "Mat", Price: 39.99, CreatedAt: day(13)},
		{ID: "5", Name: "Lamp", Price: 59.99, CreatedAt: day(12)},
	}}

	now := time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC)
	svc := NewService(repo, zerolog.Nop())
	svc.now = func() time.Time { return now }
	svc.shuffle = func(n int, swap func(i, j int)) {
		// Deterministic: reverse the slice.
		for i, j := 0, n-1; i < j; i, j = i+1, j-1 {
			swap(i, j)
		}
	}
	return svc, now
}

func TestQueryRequiresClient(t *testing.T) {
	svc, _ := testService()

	_, err := svc.Query(Params{})
	if !errors.Is(err, ErrClientRequired) {
		t.Fatalf("Query() error = %v, want ErrClientRequired", err)
	}
}

func TestQueryLatestSortsAndLimits(t *testing.T) {
	svc, now := testService()

	result, err := svc.Query(Params{Client: "acme", Type: TypeLatest, Limit: 2})
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}

	if len(result.Products) != 2 {
		t.Fatalf("len(Products) = %d, want 2", len(result.Products))
	}
	if result.Products[0].ID != "2" || result.Products[1].ID != "1" {
		t.Errorf("products = [%s %s], want newest first [2 1]",
			result.Products[0].ID, result.Products[1].ID)
	}
	if result.Total != 5 {
		t.Errorf("Total = %d, want pre-limit count 5", result.Total)
	}
	if !result.Timestamp.Equal(now) {
		t.Errorf("Timestamp = %v, want %v", result.Timestamp, now)
	}
	if result.Client != "acme" || result.Type != TypeLatest {
		t.Error("request parameters must be echoed")
	}
}

func TestQueryFeaturedStyleFilters(t *testing.T) {
	svc, _ := testService()

	result, err := svc.Query(Params{Client: "acme", Type: TypeLatest, Style: StyleFeatured, Limit: 10})
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}

	// Items at or under the featured threshold are dropped.
	if result.Total != 3 {
		t.Errorf("Total = %d, want 3", result.Total)
	}
	for _, item := range result.Products {
		if item.Price <= 50 {
			t.Errorf("item %s priced %v must be filtered in featured style", item.ID, item.Price)
		}
	}
}

func TestQueryRandomUsesShuffle(t *testing.T) {
	svc, _ := testService()

	result, err := svc.Query(Params{Client: "acme", Type: TypeRandom, Limit: 5})
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}

	// The injected shuffle reverses catalog order.
	want := []string{"5", "4", "3", "2", "1"}
	for i, id := range want {
		if result.Products[i].ID != id {
			t.Errorf("Products[%d].ID = %q, want %q", i, result.Products[i].ID, id)
		}
	}
}

func TestQueryUnknownTypeKeepsCatalogOrder(t *testing.T) {
	svc, _ := testService()

	result, err := svc.Query(Params{Client: "acme", Type: "alphabetical", Limit: 5})
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}

	want := []string{"1", "2", "3", "4", "5"}
	for i, id := range want {
		if result.Products[i].ID != id {
			t.Errorf("Products[%d].ID = %q, want %q", i, result.Products[i].ID, id)
		}
	}
}

func TestQueryDefaults(t *testing.T) {
	svc, _ := testService()

	result, err := svc.Query(Params{Client: "acme"})
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}

	if result.Type != TypeRandom {
		t.Errorf("Type = %q, want default %q", result.Type, TypeRandom)
	}
	if result.Style != StyleGrid {
		t.Errorf("Style = %q, want default %q", result.Style, StyleGrid)
	}
	// Default limit exceeds the catalog, so everything is returned.
	if len(result.Products) != 5 {
		t.Errorf("len(Products) = %d, want 5", len(result.Products))
	}
}
