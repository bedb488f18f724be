package domain

// Price holds the commercial fields scraped for a product. Discounted == 0
// means "no discount", not "free".
type Price struct {
	Original   float64 `json:"original"`
	Discounted float64 `json:"discounted"`
	Currency   string  `json:"currency"`
}

// Materials holds free-text material information for a product.
type Materials struct {
	Fabric string `json:"fabric,omitempty"`
}

// Store identifies the competitor shop a product was scraped from.
type Store struct {
	Name string `json:"name"`
	URL  string `json:"url,omitempty"`
}

// ProductRecord represents one scraped item. Upstream data is heterogeneous
// and partial by nature of multi-source scraping, so every non-identity field
// may be absent or empty.
type ProductRecord struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Color       string    `json:"color,omitempty"`
	Category    string    `json:"category,omitempty"`
	ProductType string    `json:"productType,omitempty"`
	Colors      []string  `json:"colors,omitempty"`
	Materials   Materials `json:"materials,omitempty"`
	Price       *Price    `json:"price,omitempty"`
	Store       Store     `json:"store,omitempty"`
	URL         string    `json:"url,omitempty"`

	// AnalyzedDescription is attached when an image was analyzed for this
	// product; nil means the product was never analyzed.
	AnalyzedDescription *AnalyzedDescription `json:"analyzedDescription,omitempty"`

	// Collection is the source grouping this record was fetched from.
	Collection string `json:"collection,omitempty"`
}

// EffectivePrice returns the discounted price if positive, else the original
// price. A record with no price object yields 0. Missing and zero are
// deliberately conflated here; this is the single place that decision lives.
func (p *ProductRecord) EffectivePrice() float64 {
	if p.Price == nil {
		return 0
	}
	if p.Price.Discounted > 0 {
		return p.Price.Discounted
	}
	return p.Price.Original
}

// HasValidPrice reports whether this record can participate in price
// aggregation.
func (p *ProductRecord) HasValidPrice() bool {
	return p.EffectivePrice() > 0
}

// CurrencyCode returns the price currency, or "" for unpriced records.
func (p *ProductRecord) CurrencyCode() string {
	if p.Price == nil {
		return ""
	}
	return p.Price.Currency
}

// ScoredResult is a product record plus its relevance score. MatchDetails
// carries per-field sub-scores for diagnostics only; nothing downstream
// computes with them.
type ScoredResult struct {
	Product      ProductRecord      `json:"product"`
	Score        float64            `json:"score"`
	MatchDetails map[string]float64 `json:"matchDetails,omitempty"`
}
