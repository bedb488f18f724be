package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/pricelens/backend/internal/domain"
)

// IntelligenceConfig holds configuration for the intelligence service
type IntelligenceConfig struct {
	CacheTTL           time.Duration
	RelevanceThreshold float64
	EnableDebugLogging bool
}

// IntelligenceService orchestrates the search and pricing pipeline:
// narrow collections, fetch products, rank, aggregate.
type IntelligenceService struct {
	cache            domain.CacheRepository
	catalog          domain.CatalogRepository
	search           *SearchService
	imageMatcher     *ImageMatcher
	collectionFilter *CollectionFilter
	pricing          *PriceService
	cacheTTL         time.Duration
	debugLogging     bool
}

// SearchResponse is the ranked result set plus the collections that were
// actually scanned to produce it.
type SearchResponse struct {
	Results     []domain.ScoredResult `json:"results"`
	Collections []string              `json:"collections"`
	Scanned     int                   `json:"scanned"`
}

// NewIntelligenceService creates a new intelligence service with dependencies
func NewIntelligenceService(
	cache domain.CacheRepository,
	catalog domain.CatalogRepository,
	config IntelligenceConfig,
) *IntelligenceService {
	cacheTTL := config.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 15 * time.Minute
	}

	return &IntelligenceService{
		cache:   cache,
		catalog: catalog,
		search: NewSearchService(SearchConfig{
			RelevanceThreshold: config.RelevanceThreshold,
			EnableDebugLogging: config.EnableDebugLogging,
		}),
		imageMatcher:     NewImageMatcher(config.EnableDebugLogging),
		collectionFilter: NewCollectionFilter(),
		pricing:          NewPriceService(),
		cacheTTL:         cacheTTL,
		debugLogging:     config.EnableDebugLogging,
	}
}

// ListCollections returns the upstream collection names minus reserved
// system groupings.
func (s *IntelligenceService) ListCollections(ctx context.Context) ([]string, error) {
	collections, err := s.catalog.ListCollections(ctx)
	if err != nil {
		return nil, err
	}

	visible := make([]string, 0, len(collections))
	for _, c := range collections {
		if s.collectionFilter.IsReserved(c) {
			continue
		}
		visible = append(visible, c)
	}
	return visible, nil
}

// SearchByText ranks the catalog against a free-text query. An empty
// relevant collection set yields an empty response, not an error.
func (s *IntelligenceService) SearchByText(ctx context.Context, query string, threshold float64) (*SearchResponse, error) {
	if strings.TrimSpace(query) == "" {
		return nil, domain.ErrInvalidRequest
	}

	relevant, products, err := s.gatherProducts(ctx, query)
	if err != nil {
		return nil, err
	}

	results := s.search.RankByText(query, products, threshold)

	if s.debugLogging {
		log.Printf("[INTEL] query %q: %d collections, %d products, %d results",
			query, len(relevant), len(products), len(results))
	}

	return &SearchResponse{Results: results, Collections: relevant, Scanned: len(products)}, nil
}

// SearchByImage ranks the catalog against a structured visual description.
// The garment type narrows the collection set before scoring.
func (s *IntelligenceService) SearchByImage(ctx context.Context, desc *domain.AnalyzedDescription, colors []string) (*SearchResponse, error) {
	if !desc.Valid() {
		return nil, domain.ErrInvalidDescription
	}

	collections, err := s.catalog.ListCollections(ctx)
	if err != nil {
		return nil, err
	}

	relevant := s.collectionFilter.FilterByType(collections, desc.Type)
	if len(relevant) == 0 {
		return &SearchResponse{Results: []domain.ScoredResult{}, Collections: []string{}}, nil
	}

	products, err := s.fetchCached(ctx, relevant)
	if err != nil {
		return nil, err
	}

	results, err := s.imageMatcher.RankByImage(desc, colors, products, s.search.Threshold())
	if err != nil {
		return nil, err
	}

	return &SearchResponse{Results: results, Collections: relevant, Scanned: len(products)}, nil
}

// RecommendPrice runs a text search and aggregates the ranked competitors
// into a price recommendation. No relevant collections yields the empty
// skeleton; no comparable priced competitors is ErrNoComparableProducts.
func (s *IntelligenceService) RecommendPrice(ctx context.Context, query string) (*domain.PriceRecommendation, error) {
	if strings.TrimSpace(query) == "" {
		return nil, domain.ErrInvalidRequest
	}

	relevant, products, err := s.gatherProducts(ctx, query)
	if err != nil {
		return nil, err
	}
	if len(relevant) == 0 {
		return s.pricing.EmptyRecommendation(), nil
	}

	results := s.search.RankByText(query, products, 0)

	return s.pricing.Recommend(results, MarketStats{
		RelevantProducts: len(results),
		TotalProducts:    len(products),
	})
}

// gatherProducts narrows collections for a free-text query and fetches their
// products through the cache.
func (s *IntelligenceService) gatherProducts(ctx context.Context, query string) ([]string, []domain.ProductRecord, error) {
	collections, err := s.catalog.ListCollections(ctx)
	if err != nil {
		return nil, nil, err
	}

	relevant := s.collectionFilter.FilterRelevant(collections, query)
	if len(relevant) == 0 {
		return []string{}, nil, nil
	}

	products, err := s.fetchCached(ctx, relevant)
	if err != nil {
		return nil, nil, err
	}
	return relevant, products, nil
}

// fetchCached loads per-collection product lists cache-aside: cached
// collections are decoded locally, the rest are fetched from the catalog
// store in one bounded-concurrency pass.
func (s *IntelligenceService) fetchCached(ctx context.Context, collections []string) ([]domain.ProductRecord, error) {
	products := make([]domain.ProductRecord, 0)
	missing := make([]string, 0)

	for _, c := range collections {
		cached, err := s.getCachedProducts(ctx, cacheKey(c))
		if err != nil {
			missing = append(missing, c)
			continue
		}
		products = append(products, cached...)
	}

	if len(missing) == 0 {
		return products, nil
	}

	fetched, err := s.catalog.FetchCollections(ctx, missing)
	if err != nil {
		return nil, err
	}
	products = append(products, fetched...)

	byCollection := make(map[string][]domain.ProductRecord, len(missing))
	for _, p := range fetched {
		byCollection[p.Collection] = append(byCollection[p.Collection], p)
	}
	for _, c := range missing {
		if err := s.setCachedProducts(ctx, cacheKey(c), byCollection[c]); err != nil && s.debugLogging {
			log.Printf("[INTEL] cache write failed for %q: %v", c, err)
		}
	}

	return products, nil
}

// cacheKey builds the cache key for one collection's product list.
func cacheKey(collection string) string {
	return fmt.Sprintf("catalog:%s", strings.ToLower(collection))
}

// getCachedProducts decodes a cached product list. Values come back as JSON
// text from redis and as a JSON round-trip from the memory cache, so decode
// through an encoded form either way.
func (s *IntelligenceService) getCachedProducts(ctx context.Context, key string) ([]domain.ProductRecord, error) {
	value, err := s.cache.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	var raw []byte
	switch v := value.(type) {
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		raw, err = json.Marshal(v)
		if err != nil {
			return nil, domain.ErrCacheMiss
		}
	}

	var products []domain.ProductRecord
	if err := json.Unmarshal(raw, &products); err != nil {
		return nil, domain.ErrCacheMiss
	}
	return products, nil
}

func (s *IntelligenceService) setCachedProducts(ctx context.Context, key string, products []domain.ProductRecord) error {
	encoded, err := json.Marshal(products)
	if err != nil {
		return err
	}
	return s.cache.Set(ctx, key, string(encoded), s.cacheTTL)
}
