package domain

// Insight impact levels.
const (
	ImpactPositive = "positive"
	ImpactNegative = "negative"
	ImpactNeutral  = "neutral"
)

// PriceRange summarizes the spread of competitor prices.
type PriceRange struct {
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Avg      float64 `json:"avg"`
	Variance float64 `json:"variance"` // population variance
}

// Insight is one qualitative observation derived from the competitor set.
type Insight struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	Impact      string `json:"impact"` // positive, negative or neutral
}

// CompetitorQuote is the per-competitor slice of a recommendation response.
type CompetitorQuote struct {
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	URL        string  `json:"url,omitempty"`
	Similarity float64 `json:"similarity"`
}

// PriceRecommendation is the derived, per-request pricing result. It is
// never persisted.
type PriceRecommendation struct {
	RecommendedPrice float64           `json:"recommendedPrice"`
	Currency         string            `json:"currency,omitempty"`
	PriceRange       PriceRange        `json:"priceRange"`
	Competitors      []CompetitorQuote `json:"competitors"`
	Insights         []Insight         `json:"insights"`
	Reasoning        []string          `json:"reasoning"`
}
