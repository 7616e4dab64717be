package usecases_test

import (
	"context"
	"testing"

	"github.com/samirrijal/fitpass/internal/core/domain"
	"github.com/samirrijal/fitpass/internal/core/usecases"
)

// memoryCache is a trivial in-process ports.CacheService for tests.
type memoryCache struct {
	data map[string][]byte
}

func newMemoryCache() *memoryCache {
	return &memoryCache{data: make(map[string][]byte)}
}

func (c *memoryCache) Get(ctx context.Context, key string) ([]byte, error) {
	if v, ok := c.data[key]; ok {
		return v, nil
	}
	return nil, context.Canceled // any error means miss
}

func (c *memoryCache) Set(ctx context.Context, key string, value []byte, ttlSeconds int) error {
	c.data[key] = value
	return nil
}

func (c *memoryCache) Delete(ctx context.Context, key string) error {
	delete(c.data, key)
	return nil
}

func TestGymService_Create_Valid(t *testing.T) {
	created := false
	repo := &mockGymRepo{
		createFn: func(ctx context.Context, gym *domain.Gym) error {
			created = true
			return nil
		},
	}

	svc := usecases.NewGymService(repo, nil)
	err := svc.Create(context.Background(), &domain.Gym{
		Title:    "Iron Temple",
		Location: domain.GeoPoint{Lat: 43.263, Lon: -2.935},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !created {
		t.Error("repo was not called")
	}
}

func TestGymService_Create_InvalidCoordinates(t *testing.T) {
	svc := usecases.NewGymService(&mockGymRepo{}, nil)

	cases := []domain.GeoPoint{
		{Lat: 91, Lon: 0},
		{Lat: -91, Lon: 0},
		{Lat: 0, Lon: 181},
		{Lat: 0, Lon: -181},
	}
	for _, loc := range cases {
		if err := svc.Create(context.Background(), &domain.Gym{Title: "X", Location: loc}); err == nil {
			t.Errorf("expected error for coordinates %+v", loc)
		}
	}
}

func TestGymService_Create_EmptyTitle(t *testing.T) {
	svc := usecases.NewGymService(&mockGymRepo{}, nil)
	if err := svc.Create(context.Background(), &domain.Gym{}); err == nil {
		t.Error("expected error for empty title")
	}
}

func TestGymService_Search_PageMath(t *testing.T) {
	var gotLimit, gotOffset int
	repo := &mockGymRepo{
		searchFn: func(ctx context.Context, query string, limit, offset int) ([]domain.Gym, int, error) {
			gotLimit, gotOffset = limit, offset
			return []domain.Gym{{ID: "1", Title: "Iron Temple"}}, 41, nil
		},
	}

	svc := usecases.NewGymService(repo, nil)
	gyms, total, err := svc.SearchByTitle(context.Background(), "iron", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotLimit != usecases.PageSize || gotOffset != usecases.PageSize {
		t.Errorf("expected limit=%d offset=%d, got %d/%d", usecases.PageSize, usecases.PageSize, gotLimit, gotOffset)
	}
	if total != 41 || len(gyms) != 1 {
		t.Errorf("unexpected result: %d gyms, total %d", len(gyms), total)
	}
}

func TestGymService_Search_EmptyQuery(t *testing.T) {
	svc := usecases.NewGymService(&mockGymRepo{}, nil)
	if _, _, err := svc.SearchByTitle(context.Background(), "", 1); err == nil {
		t.Error("expected error for empty query")
	}
}

func TestGymService_Search_ServedFromCache(t *testing.T) {
	calls := 0
	repo := &mockGymRepo{
		searchFn: func(ctx context.Context, query string, limit, offset int) ([]domain.Gym, int, error) {
			calls++
			return []domain.Gym{{ID: "1", Title: "Iron Temple"}}, 1, nil
		},
	}

	svc := usecases.NewGymService(repo, newMemoryCache())
	for i := 0; i < 2; i++ {
		if _, _, err := svc.SearchByTitle(context.Background(), "iron", 1); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if calls != 1 {
		t.Errorf("expected 1 repo call, got %d", calls)
	}
}

func TestGymService_FindNearby_RadiusAndClamp(t *testing.T) {
	var gotRadius float64
	var gotLimit int
	repo := &mockGymRepo{
		findNearbyFn: func(ctx context.Context, lat, lon, radius float64, limit int) ([]domain.Gym, error) {
			gotRadius, gotLimit = radius, limit
			return nil, nil
		},
	}

	svc := usecases.NewGymService(repo, nil)
	if _, err := svc.FindNearby(context.Background(), 43.263, -2.935, 999); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotRadius != usecases.NearbyRadiusMeters {
		t.Errorf("expected radius %d, got %f", usecases.NearbyRadiusMeters, gotRadius)
	}
	if gotLimit != usecases.PageSize {
		t.Errorf("expected limit clamped to %d, got %d", usecases.PageSize, gotLimit)
	}
}
