package usecase

import (
	"fmt"
	"math"
	"sort"

	"github.com/pricelens/backend/internal/domain"
)

// Price aggregation constants. These thresholds are part of the observable
// behavioral contract and are not configurable at runtime.
const (
	// priceScoreThreshold is the minimum similarity for a product to count
	// as a comparable competitor.
	priceScoreThreshold = 0.3

	// maxCompetitors caps the final competitor set.
	maxCompetitors = 6

	// Insight thresholds.
	priceVariationThreshold    = 0.3  // (max-min)/avg
	priceVolatilityThreshold   = 0.2  // stddev/avg
	marketCompetitionThreshold = 0.1  // relevant/total products
	highCompetitionThreshold   = 0.3  // relevant/total products, negative impact
	premiumPositioningFactor   = 1.15 // price above avg * factor counts as premium
)

// MarketStats carries the corpus counts needed for the market-competition
// insight.
type MarketStats struct {
	RelevantProducts int
	TotalProducts    int
}

// PriceService aggregates scored competitors into a price recommendation
type PriceService struct{}

// NewPriceService creates a new price service
func NewPriceService() *PriceService {
	return &PriceService{}
}

// Recommend computes a similarity-weighted price recommendation from scored
// competitors. Competitors must have a positive effective price, a store
// name and a score above the comparability threshold; when none qualify the
// result is ErrNoComparableProducts.
func (s *PriceService) Recommend(scored []domain.ScoredResult, market MarketStats) (*domain.PriceRecommendation, error) {
	competitors := make([]domain.ScoredResult, 0, len(scored))
	for _, r := range scored {
		if !r.Product.HasValidPrice() {
			continue
		}
		if r.Product.Store.Name == "" {
			continue
		}
		if r.Score <= priceScoreThreshold {
			continue
		}
		competitors = append(competitors, r)
	}

	if len(competitors) == 0 {
		return nil, domain.ErrNoComparableProducts
	}

	sort.SliceStable(competitors, func(i, j int) bool {
		return competitors[i].Score > competitors[j].Score
	})
	if len(competitors) > maxCompetitors {
		competitors = competitors[:maxCompetitors]
	}

	prices := make([]float64, len(competitors))
	for i, c := range competitors {
		prices[i] = c.Product.EffectivePrice()
	}

	recommendation := &domain.PriceRecommendation{
		RecommendedPrice: weightedPrice(competitors),
		Currency:         competitors[0].Product.CurrencyCode(),
		PriceRange:       priceRange(prices),
		Competitors:      quotes(competitors),
	}
	recommendation.Insights = s.insights(recommendation.PriceRange, prices, market)
	recommendation.Reasoning = s.reasoning(competitors, recommendation.PriceRange)

	return recommendation, nil
}

// weightedPrice is the similarity-weighted mean of competitor prices. A zero
// total weight cannot occur past the comparability filter, but degrade to 0
// rather than dividing by it.
func weightedPrice(competitors []domain.ScoredResult) float64 {
	var weightedSum, totalScore float64
	for _, c := range competitors {
		weightedSum += c.Product.EffectivePrice() * c.Score
		totalScore += c.Score
	}
	if totalScore == 0 {
		return 0
	}
	return weightedSum / totalScore
}

// priceRange computes min/max/mean and population variance over prices.
func priceRange(prices []float64) domain.PriceRange {
	r := domain.PriceRange{Min: prices[0], Max: prices[0]}

	var sum float64
	for _, p := range prices {
		sum += p
		if p < r.Min {
			r.Min = p
		}
		if p > r.Max {
			r.Max = p
		}
	}
	r.Avg = sum / float64(len(prices))

	var sumSq float64
	for _, p := range prices {
		d := p - r.Avg
		sumSq += d * d
	}
	r.Variance = sumSq / float64(len(prices))

	return r
}

func quotes(competitors []domain.ScoredResult) []domain.CompetitorQuote {
	result := make([]domain.CompetitorQuote, len(competitors))
	for i, c := range competitors {
		url := c.Product.URL
		if url == "" {
			url = c.Product.Store.URL
		}
		result[i] = domain.CompetitorQuote{
			Name:       c.Product.Store.Name,
			Price:      c.Product.EffectivePrice(),
			URL:        url,
			Similarity: c.Score,
		}
	}
	return result
}

// insights evaluates each market observation independently; several can
// co-occur on one recommendation.
func (s *PriceService) insights(r domain.PriceRange, prices []float64, market MarketStats) []domain.Insight {
	insights := []domain.Insight{}

	if r.Avg > 0 {
		if spread := (r.Max - r.Min) / r.Avg; spread > priceVariationThreshold {
			insights = append(insights, domain.Insight{
				Type:        "Price Variation",
				Description: fmt.Sprintf("Price range varies by %.0f%% across competitors", spread*100),
				Impact:      domain.ImpactPositive,
			})
		}

		if cv := math.Sqrt(r.Variance) / r.Avg; cv > priceVolatilityThreshold {
			insights = append(insights, domain.Insight{
				Type:        "Price Volatility",
				Description: fmt.Sprintf("Competitor prices show %.0f%% volatility", cv*100),
				Impact:      domain.ImpactNeutral,
			})
		}
	}

	if market.TotalProducts > 0 {
		ratio := float64(market.RelevantProducts) / float64(market.TotalProducts)
		if ratio > marketCompetitionThreshold {
			impact := domain.ImpactNeutral
			if ratio > highCompetitionThreshold {
				impact = domain.ImpactNegative
			}
			insights = append(insights, domain.Insight{
				Type:        "Market Competition",
				Description: fmt.Sprintf("%.0f%% of scanned products compete in this segment", ratio*100),
				Impact:      impact,
			})
		}
	}

	premiumCount := 0
	for _, p := range prices {
		if p > r.Avg*premiumPositioningFactor {
			premiumCount++
		}
	}
	if premiumCount > 0 {
		insights = append(insights, domain.Insight{
			Type:        "Premium Positioning",
			Description: fmt.Sprintf("%d competitor(s) price above the market average, leaving room for premium positioning", premiumCount),
			Impact:      domain.ImpactPositive,
		})
	}

	return insights
}

// reasoning builds the free-text summary of how the recommendation was
// derived.
func (s *PriceService) reasoning(competitors []domain.ScoredResult, r domain.PriceRange) []string {
	var totalScore float64
	for _, c := range competitors {
		totalScore += c.Score
	}
	avgSimilarity := totalScore / float64(len(competitors))

	return []string{
		fmt.Sprintf("Analysis based on %d comparable products with %.0f%% average similarity", len(competitors), avgSimilarity*100),
		fmt.Sprintf("Competitor prices span %.2f to %.2f with an average of %.2f", r.Min, r.Max, r.Avg),
		"Recommended price weights each competitor by its similarity to your product",
	}
}

// EmptyRecommendation returns the zero-value recommendation skeleton used
// when no relevant collections were found, keeping the response shape
// uniform for callers.
func (s *PriceService) EmptyRecommendation() *domain.PriceRecommendation {
	return &domain.PriceRecommendation{
		Competitors: []domain.CompetitorQuote{},
		Insights:    []domain.Insight{},
		Reasoning:   []string{"No relevant collections found for this query"},
	}
}
