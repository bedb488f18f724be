package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pricelens/backend/internal/domain"
)

type fakeCatalog struct {
	collections []string
	products    map[string][]domain.ProductRecord
	listErr     error
	fetchCalls  int
}

func (c *fakeCatalog) ListCollections(ctx context.Context) ([]string, error) {
	if c.listErr != nil {
		return nil, c.listErr
	}
	return c.collections, nil
}

func (c *fakeCatalog) FetchProducts(ctx context.Context, collection string) ([]domain.ProductRecord, error) {
	products, ok := c.products[collection]
	if !ok {
		return nil, domain.ErrCollectionNotFound
	}
	return products, nil
}

func (c *fakeCatalog) FetchCollections(ctx context.Context, collections []string) ([]domain.ProductRecord, error) {
	c.fetchCalls++
	var all []domain.ProductRecord
	for _, name := range collections {
		products, err := c.FetchProducts(ctx, name)
		if errors.Is(err, domain.ErrCollectionNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		all = append(all, products...)
	}
	return all, nil
}

type fakeCache struct {
	values map[string]interface{}
	sets   int
}

func newFakeCache() *fakeCache {
	return &fakeCache{values: make(map[string]interface{})}
}

func (c *fakeCache) Get(ctx context.Context, key string) (interface{}, error) {
	value, ok := c.values[key]
	if !ok {
		return nil, domain.ErrCacheMiss
	}
	return value, nil
}

func (c *fakeCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	c.values[key] = value
	c.sets++
	return nil
}

func (c *fakeCache) Delete(ctx context.Context, key string) error {
	delete(c.values, key)
	return nil
}

func (c *fakeCache) Exists(ctx context.Context, key string) (bool, error) {
	_, ok := c.values[key]
	return ok, nil
}

func jeansCatalog() *fakeCatalog {
	desc := &domain.AnalyzedDescription{
		Genre:   "casual",
		Length:  "long",
		Type:    "jeans",
		Pattern: "plain",
		Graphic: domain.GraphicAbsent,
		Fabrics: []string{"denim"},
		Color:   "blue",
	}
	return &fakeCatalog{
		collections: []string{"all-products", "hm-men-jeans", "hm-women-dress"},
		products: map[string][]domain.ProductRecord{
			"hm-men-jeans": {
				{
					ID:                  "p1",
					Name:                "Slim Blue Jeans",
					Collection:          "hm-men-jeans",
					Price:               &domain.Price{Original: 49.99, Currency: "EUR"},
					Store:               domain.Store{Name: "H&M", URL: "https://hm.example"},
					AnalyzedDescription: desc,
				},
				{
					ID:         "p2",
					Name:       "Slim Blue Jeans Relaxed",
					Collection: "hm-men-jeans",
					Price:      &domain.Price{Original: 59.99, Currency: "EUR"},
					Store:      domain.Store{Name: "H&M", URL: "https://hm.example"},
				},
			},
			"hm-women-dress": {
				{
					ID:         "p3",
					Name:       "Summer Dress",
					Collection: "hm-women-dress",
					Price:      &domain.Price{Original: 39.99, Currency: "EUR"},
					Store:      domain.Store{Name: "H&M"},
				},
			},
		},
	}
}

func newTestService(catalog *fakeCatalog, cache *fakeCache) *IntelligenceService {
	return NewIntelligenceService(cache, catalog, IntelligenceConfig{})
}

func TestListCollectionsService(t *testing.T) {
	ctx := context.Background()

	t.Run("hides reserved system groupings", func(t *testing.T) {
		svc := newTestService(jeansCatalog(), newFakeCache())

		collections, err := svc.ListCollections(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := []string{"hm-men-jeans", "hm-women-dress"}
		if len(collections) != len(want) {
			t.Fatalf("collections = %v, want %v", collections, want)
		}
		for i, c := range collections {
			if c != want[i] {
				t.Errorf("collections[%d] = %q, want %q", i, c, want[i])
			}
		}
	})

	t.Run("propagates catalog errors", func(t *testing.T) {
		catalog := jeansCatalog()
		catalog.listErr = domain.ErrCatalogUnavailable
		svc := newTestService(catalog, newFakeCache())

		if _, err := svc.ListCollections(ctx); !errors.Is(err, domain.ErrCatalogUnavailable) {
			t.Errorf("error = %v, want ErrCatalogUnavailable", err)
		}
	})
}

func TestSearchByText(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects a blank query", func(t *testing.T) {
		svc := newTestService(jeansCatalog(), newFakeCache())

		for _, query := range []string{"", "   ", "\t\n"} {
			if _, err := svc.SearchByText(ctx, query, 0); !errors.Is(err, domain.ErrInvalidRequest) {
				t.Errorf("SearchByText(%q) error = %v, want ErrInvalidRequest", query, err)
			}
		}
	})

	t.Run("scans only relevant collections", func(t *testing.T) {
		svc := newTestService(jeansCatalog(), newFakeCache())

		resp, err := svc.SearchByText(ctx, "blue jeans", 0)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(resp.Collections) != 1 || resp.Collections[0] != "hm-men-jeans" {
			t.Errorf("Collections = %v, want [hm-men-jeans]", resp.Collections)
		}
		if resp.Scanned != 2 {
			t.Errorf("Scanned = %d, want 2", resp.Scanned)
		}
		if len(resp.Results) != 2 {
			t.Fatalf("len(Results) = %d, want 2", len(resp.Results))
		}
		if resp.Results[0].Score < resp.Results[1].Score {
			t.Error("results are not sorted by descending score")
		}
	})

	t.Run("returns an empty response when only reserved collections exist", func(t *testing.T) {
		catalog := &fakeCatalog{collections: []string{"all-products", "product-inputs"}}
		svc := newTestService(catalog, newFakeCache())

		resp, err := svc.SearchByText(ctx, "blue jeans", 0)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(resp.Results) != 0 || len(resp.Collections) != 0 || resp.Scanned != 0 {
			t.Errorf("response = %+v, want empty", resp)
		}
	})

	t.Run("propagates catalog errors", func(t *testing.T) {
		catalog := jeansCatalog()
		catalog.listErr = domain.ErrCatalogUnavailable
		svc := newTestService(catalog, newFakeCache())

		if _, err := svc.SearchByText(ctx, "blue jeans", 0); !errors.Is(err, domain.ErrCatalogUnavailable) {
			t.Errorf("error = %v, want ErrCatalogUnavailable", err)
		}
	})
}

func TestSearchByImage(t *testing.T) {
	ctx := context.Background()

	query := &domain.AnalyzedDescription{
		Genre:   "casual",
		Length:  "long",
		Type:    "jeans",
		Pattern: "plain",
		Graphic: domain.GraphicAbsent,
		Fabrics: []string{"denim"},
		Color:   "blue",
	}

	t.Run("rejects an incomplete description", func(t *testing.T) {
		svc := newTestService(jeansCatalog(), newFakeCache())

		_, err := svc.SearchByImage(ctx, &domain.AnalyzedDescription{Type: "jeans"}, nil)
		if !errors.Is(err, domain.ErrInvalidDescription) {
			t.Errorf("error = %v, want ErrInvalidDescription", err)
		}
	})

	t.Run("narrows collections by garment type", func(t *testing.T) {
		svc := newTestService(jeansCatalog(), newFakeCache())

		resp, err := svc.SearchByImage(ctx, query, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(resp.Collections) != 1 || resp.Collections[0] != "hm-men-jeans" {
			t.Errorf("Collections = %v, want [hm-men-jeans]", resp.Collections)
		}
		if len(resp.Results) != 1 {
			t.Fatalf("len(Results) = %d, want 1 (products without descriptions are skipped)", len(resp.Results))
		}
		if resp.Results[0].Product.ID != "p1" {
			t.Errorf("top result = %q, want p1", resp.Results[0].Product.ID)
		}
	})

	t.Run("returns an empty response when no collection fits the type", func(t *testing.T) {
		svc := newTestService(jeansCatalog(), newFakeCache())

		skirt := *query
		skirt.Type = "skirt"

		resp, err := svc.SearchByImage(ctx, &skirt, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(resp.Results) != 0 || len(resp.Collections) != 0 {
			t.Errorf("response = %+v, want empty", resp)
		}
	})
}

func TestRecommendPrice(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects a blank query", func(t *testing.T) {
		svc := newTestService(jeansCatalog(), newFakeCache())

		if _, err := svc.RecommendPrice(ctx, "  "); !errors.Is(err, domain.ErrInvalidRequest) {
			t.Errorf("error = %v, want ErrInvalidRequest", err)
		}
	})

	t.Run("recommends within the competitor price band", func(t *testing.T) {
		svc := newTestService(jeansCatalog(), newFakeCache())

		rec, err := svc.RecommendPrice(ctx, "blue jeans")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if rec.RecommendedPrice < 49.99 || rec.RecommendedPrice > 59.99 {
			t.Errorf("RecommendedPrice = %v, want within [49.99, 59.99]", rec.RecommendedPrice)
		}
		if rec.Currency != "EUR" {
			t.Errorf("Currency = %q, want EUR", rec.Currency)
		}
		if len(rec.Competitors) != 2 {
			t.Errorf("len(Competitors) = %d, want 2", len(rec.Competitors))
		}
	})

	t.Run("returns the empty skeleton when no collection is relevant", func(t *testing.T) {
		catalog := &fakeCatalog{collections: []string{"all-products"}}
		svc := newTestService(catalog, newFakeCache())

		rec, err := svc.RecommendPrice(ctx, "blue jeans")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if rec.RecommendedPrice != 0 || len(rec.Competitors) != 0 {
			t.Errorf("recommendation = %+v, want empty skeleton", rec)
		}
		if len(rec.Reasoning) == 0 {
			t.Error("skeleton should carry reasoning")
		}
	})
}

func TestProductCaching(t *testing.T) {
	ctx := context.Background()

	t.Run("fetches once and serves repeats from the cache", func(t *testing.T) {
		catalog := jeansCatalog()
		cache := newFakeCache()
		svc := newTestService(catalog, cache)

		first, err := svc.SearchByText(ctx, "blue jeans", 0)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if catalog.fetchCalls != 1 {
			t.Fatalf("fetchCalls = %d after first search, want 1", catalog.fetchCalls)
		}
		if cache.sets != 1 {
			t.Errorf("cache sets = %d, want 1 (one relevant collection)", cache.sets)
		}

		second, err := svc.SearchByText(ctx, "blue jeans", 0)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if catalog.fetchCalls != 1 {
			t.Errorf("fetchCalls = %d after second search, want 1", catalog.fetchCalls)
		}
		if len(second.Results) != len(first.Results) {
			t.Errorf("cached search returned %d results, fresh returned %d", len(second.Results), len(first.Results))
		}
	})

	t.Run("stores product lists under lowercase catalog keys", func(t *testing.T) {
		catalog := jeansCatalog()
		cache := newFakeCache()
		svc := newTestService(catalog, cache)

		if _, err := svc.SearchByText(ctx, "blue jeans", 0); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		value, ok := cache.values["catalog:hm-men-jeans"]
		if !ok {
			t.Fatalf("cache keys = %v, want catalog:hm-men-jeans", cache.values)
		}
		if _, isString := value.(string); !isString {
			t.Errorf("cached value is %T, want JSON string", value)
		}
	})

	t.Run("survives a cache that loses writes", func(t *testing.T) {
		catalog := jeansCatalog()
		cache := newFakeCache()
		svc := newTestService(catalog, cache)

		if _, err := svc.SearchByText(ctx, "blue jeans", 0); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		cache.values = map[string]interface{}{}

		resp, err := svc.SearchByText(ctx, "blue jeans", 0)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.Scanned != 2 {
			t.Errorf("Scanned = %d after cache flush, want 2", resp.Scanned)
		}
		if catalog.fetchCalls != 2 {
			t.Errorf("fetchCalls = %d, want 2 (refetch after flush)", catalog.fetchCalls)
		}
	})
}
