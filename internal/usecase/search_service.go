package usecase

import (
	"log"
	"sort"

	"github.com/pricelens/backend/internal/domain"
)

// Field weights for text ranking. Name matches are the most trustworthy
// signal, generic descriptions the least.
const (
	weightName        = 2.0
	weightDescription = 1.0
	weightColor       = 1.5
	weightCategory    = 1.2

	// DefaultRelevanceThreshold is the minimum score for a product to appear
	// in ranked results.
	DefaultRelevanceThreshold = 0.1
)

// SearchConfig holds configuration for the search service
type SearchConfig struct {
	RelevanceThreshold float64
	EnableDebugLogging bool
}

// SearchService ranks product records against free-text queries
type SearchService struct {
	relevanceThreshold float64
	enableDebugLogging bool
}

// NewSearchService creates a new search service with the given configuration
func NewSearchService(config SearchConfig) *SearchService {
	threshold := config.RelevanceThreshold
	if threshold <= 0 {
		threshold = DefaultRelevanceThreshold
	}

	return &SearchService{
		relevanceThreshold: threshold,
		enableDebugLogging: config.EnableDebugLogging,
	}
}

// Threshold returns the configured relevance threshold.
func (s *SearchService) Threshold() float64 {
	return s.relevanceThreshold
}

// RankByText scores every product against the query across its weighted text
// fields, drops products at or below the threshold and returns the rest in
// descending score order. A threshold <= 0 falls back to the configured one.
// The sort is stable, so equal scores keep their input order.
func (s *SearchService) RankByText(query string, products []domain.ProductRecord, threshold float64) []domain.ScoredResult {
	if threshold <= 0 {
		threshold = s.relevanceThreshold
	}

	results := make([]domain.ScoredResult, 0, len(products))
	for _, product := range products {
		score, details := s.scoreProduct(query, product)

		if s.enableDebugLogging {
			log.Printf("[SEARCH] %q vs %q | score: %.3f | details: %v", query, product.Name, score, details)
		}

		if score <= threshold {
			continue
		}

		results = append(results, domain.ScoredResult{
			Product:      product,
			Score:        score,
			MatchDetails: details,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	return results
}

// scoreProduct computes the weighted per-field sub-scores and keeps the
// maximum. A single strong field match suffices; fields are not summed so
// that missing optional text never penalizes a product.
func (s *SearchService) scoreProduct(query string, product domain.ProductRecord) (float64, map[string]float64) {
	details := map[string]float64{
		"name":        TextSimilarity(query, product.Name) * weightName,
		"description": TextSimilarity(query, product.Description) * weightDescription,
		"color":       TextSimilarity(query, product.Color) * weightColor,
		"category":    TextSimilarity(query, product.Category) * weightCategory,
	}

	score := 0.0
	for _, sub := range details {
		if sub > score {
			score = sub
		}
	}

	return score, details
}
