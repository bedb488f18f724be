package usecase

import (
	"log"
	"sort"
	"strings"

	"github.com/pricelens/backend/internal/domain"
)

// Attribute weights for structured-description matching. Garment type is the
// dominant signal: a type mismatch should dominate the final score.
const (
	weightAttrType    = 4.0
	weightAttrGenre   = 1.5
	weightAttrFabrics = 1.2
	weightAttrPattern = 1.0
	weightAttrLength  = 0.8
	weightAttrGraphic = 0.5
	weightAttrColor   = 1.8

	// denimBonusFactor boosts the fabric sub-score when both sides are in
	// the denim material class.
	denimBonusFactor = 1.5

	// categoryVetoScore is returned when one side is shorts-like and the
	// other underwear-like; those categories are never similar.
	categoryVetoScore = 0.01

	// Blend of "best single signal" and "overall attribute agreement".
	blendBestWeight    = 0.7
	blendAverageWeight = 0.3
)

// ImageMatcher scores products against a structured visual description
type ImageMatcher struct {
	enableDebugLogging bool
}

// NewImageMatcher creates a new image matcher
func NewImageMatcher(enableDebugLogging bool) *ImageMatcher {
	return &ImageMatcher{enableDebugLogging: enableDebugLogging}
}

// MatchDescriptions compares two analyzed descriptions and returns a
// similarity score. Both descriptions must carry type, genre, pattern and
// length; a partial description is a data-quality error, never a silent 0.
func (m *ImageMatcher) MatchDescriptions(query, product *domain.AnalyzedDescription) (float64, error) {
	score, _, err := m.matchWithDetails(query, product)
	return score, err
}

func (m *ImageMatcher) matchWithDetails(query, product *domain.AnalyzedDescription) (float64, map[string]float64, error) {
	if !query.Valid() || !product.Valid() {
		return 0, nil, domain.ErrInvalidDescription
	}

	// Shorts and underwear must never be treated as similar, regardless of
	// how well the remaining attributes agree.
	if categoriesConflict(query.Type, product.Type) {
		return categoryVetoScore, map[string]float64{"categoryVeto": categoryVetoScore}, nil
	}

	details := map[string]float64{
		"type":    TextSimilarity(query.Type, product.Type) * weightAttrType,
		"genre":   TextSimilarity(query.Genre, product.Genre) * weightAttrGenre,
		"pattern": TextSimilarity(query.Pattern, product.Pattern) * weightAttrPattern,
		"length":  TextSimilarity(query.Length, product.Length) * weightAttrLength,
	}
	totalWeight := weightAttrType + weightAttrGenre + weightAttrPattern + weightAttrLength

	if len(query.Fabrics) > 0 && len(product.Fabrics) > 0 {
		details["fabrics"] = fabricScore(query.Fabrics, product.Fabrics) * weightAttrFabrics
		totalWeight += weightAttrFabrics
	}

	if query.Graphic != "" && product.Graphic != "" {
		// Binary attribute: exact string equality only, never cosine.
		if query.Graphic == product.Graphic {
			details["graphic"] = weightAttrGraphic
		} else {
			details["graphic"] = 0
		}
		totalWeight += weightAttrGraphic
	}

	if query.Color != "" && product.Color != "" {
		details["color"] = TextSimilarity(query.Color, product.Color) * weightAttrColor
		totalWeight += weightAttrColor
	}

	var maxScore, sum float64
	for _, sub := range details {
		sum += sub
		if sub > maxScore {
			maxScore = sub
		}
	}

	// The best-signal term is normalized by the dominant weight so that a
	// full attribute match lands at exactly 1.0 while garment type still
	// dominates the maximum.
	score := blendBestWeight*(maxScore/weightAttrType) + blendAverageWeight*(sum/totalWeight)

	if m.enableDebugLogging {
		log.Printf("[IMAGE] %q vs %q | score: %.3f | details: %v", query.Type, product.Type, score, details)
	}

	return score, details, nil
}

// MatchProduct scores one product record against a query description,
// blending in color-array similarity when both sides carry color lists.
// Products without an analyzed description cannot be matched.
func (m *ImageMatcher) MatchProduct(query *domain.AnalyzedDescription, queryColors []string, product domain.ProductRecord) (float64, map[string]float64, error) {
	score, details, err := m.matchWithDetails(query, product.AnalyzedDescription)
	if err != nil {
		return 0, nil, err
	}

	if len(queryColors) > 0 && len(product.Colors) > 0 {
		colorScore := colorArrayScore(queryColors, product.Colors)
		score = blendBestWeight*score + blendAverageWeight*colorScore
		if details == nil {
			details = make(map[string]float64)
		}
		details["colorArray"] = colorScore
	}

	return score, details, nil
}

// RankByImage scores every analyzed product against the query description
// and returns those above the threshold in descending score order. Products
// that were never analyzed are skipped; a present but incomplete product
// description fails the whole ranking.
func (m *ImageMatcher) RankByImage(query *domain.AnalyzedDescription, queryColors []string, products []domain.ProductRecord, threshold float64) ([]domain.ScoredResult, error) {
	if !query.Valid() {
		return nil, domain.ErrInvalidDescription
	}
	if threshold <= 0 {
		threshold = DefaultRelevanceThreshold
	}

	results := make([]domain.ScoredResult, 0, len(products))
	for _, product := range products {
		if product.AnalyzedDescription == nil {
			continue
		}

		score, details, err := m.MatchProduct(query, queryColors, product)
		if err != nil {
			return nil, err
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

	sortByScore(results)
	return results, nil
}

// fabricScore takes, for each query fabric, the best match against any
// product fabric and averages across query fabrics. Both sides mentioning
// denim or jean earns the material-class bonus.
func fabricScore(queryFabrics, productFabrics []string) float64 {
	var total float64
	for _, qf := range queryFabrics {
		best := 0.0
		for _, pf := range productFabrics {
			if sim := TextSimilarity(qf, pf); sim > best {
				best = sim
			}
		}
		total += best
	}
	score := total / float64(len(queryFabrics))

	if mentionsDenim(queryFabrics) && mentionsDenim(productFabrics) {
		score *= denimBonusFactor
	}
	return score
}

// mentionsDenim reports whether any fabric entry names the denim material class.
func mentionsDenim(fabrics []string) bool {
	for _, f := range fabrics {
		lower := strings.ToLower(f)
		if strings.Contains(lower, "denim") || strings.Contains(lower, "jean") {
			return true
		}
	}
	return false
}

// colorArrayScore averages, over the query colors, the best similarity
// against any product color.
func colorArrayScore(queryColors, productColors []string) float64 {
	var total float64
	for _, qc := range queryColors {
		best := 0.0
		for _, pc := range productColors {
			if sim := TextSimilarity(qc, pc); sim > best {
				best = sim
			}
		}
		total += best
	}
	return total / float64(len(queryColors))
}

// categoriesConflict applies the shorts-vs-underwear veto in both directions.
// The list is deliberately narrow; it is not a general mutually-exclusive
// category mechanism.
func categoriesConflict(typeA, typeB string) bool {
	return (isShortsLike(typeA) && isUnderwearLike(typeB)) ||
		(isUnderwearLike(typeA) && isShortsLike(typeB))
}

func isShortsLike(garmentType string) bool {
	lower := strings.ToLower(garmentType)
	return strings.Contains(lower, "shorts")
}

func isUnderwearLike(garmentType string) bool {
	lower := strings.ToLower(garmentType)
	return strings.Contains(lower, "underwear") ||
		strings.Contains(lower, "briefs") ||
		strings.Contains(lower, "boxers")
}

// sortByScore sorts results in descending score order, stable on ties.
func sortByScore(results []domain.ScoredResult) {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
}
