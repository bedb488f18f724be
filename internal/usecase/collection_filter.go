package usecase

import (
	"sort"
	"strings"
)

// Reserved system collection names that never participate in relevance
// filtering: the catalog-wide aggregate and the input-staging grouping.
var reservedCollections = map[string]bool{
	"all-products":   true,
	"product-inputs": true,
}

// Collection relevance scoring tiers for free-text queries.
const (
	scoreExactMatch   = 3
	scoreSegmentMatch = 2
	scoreSubstring    = 1

	// maxRelevantCollections caps the relevant set for free-text queries.
	// Deliberately asymmetric with the unbounded ranker output.
	maxRelevantCollections = 10

	// genericTokenLimit: names with this many dash tokens or fewer carry too
	// little information to exclude.
	genericTokenLimit = 2
)

// collectionTypeSynonyms maps a garment type to terms that mark a collection
// as relevant for it.
var collectionTypeSynonyms = map[string][]string{
	"pants":     {"jeans", "bottoms", "trousers", "chinos", "shorts", "denim", "pants", "leggings", "joggers"},
	"jeans":     {"jeans", "denim", "pants", "bottoms", "trousers"},
	"shorts":    {"shorts", "bermudas", "denim", "jean"},
	"shirt":     {"shirt", "tee", "tshirt", "top", "blouse", "polo", "tops"},
	"dress":     {"dress", "dresses", "gown", "sundress"},
	"jacket":    {"jacket", "coat", "blazer", "outerwear", "parka"},
	"sweater":   {"sweater", "hoodie", "sweatshirt", "cardigan", "knitwear", "pullover"},
	"skirt":     {"skirt", "skirts"},
	"shoes":     {"shoes", "sneakers", "boots", "sandals", "footwear"},
	"underwear": {"underwear", "briefs", "boxers", "lingerie"},
}

// CollectionFilter narrows the set of product collections worth scanning
type CollectionFilter struct{}

// NewCollectionFilter creates a new collection filter
func NewCollectionFilter() *CollectionFilter {
	return &CollectionFilter{}
}

// IsReserved reports whether a collection name is a system grouping.
func (f *CollectionFilter) IsReserved(name string) bool {
	return reservedCollections[strings.ToLower(name)]
}

// IsRelevant reports whether a collection could hold products of the given
// garment type. Brand-only names (two dash tokens or fewer) are always
// relevant; otherwise the name must contain the garment type or one of its
// synonyms.
func (f *CollectionFilter) IsRelevant(collectionName, garmentType string) bool {
	name := strings.ToLower(collectionName)
	if f.IsReserved(name) {
		return false
	}

	if len(strings.Split(name, "-")) <= genericTokenLimit {
		return true
	}

	garment := strings.ToLower(garmentType)

	// "jean shorts" spans the jeans and shorts classes; match either.
	if (strings.Contains(garment, "jean") || strings.Contains(garment, "denim")) &&
		strings.Contains(garment, "shorts") {
		return strings.Contains(name, "jean") || strings.Contains(name, "denim") ||
			strings.Contains(name, "shorts")
	}

	if strings.Contains(name, garment) {
		return true
	}

	for key, synonyms := range collectionTypeSynonyms {
		if !strings.Contains(garment, key) {
			continue
		}
		for _, syn := range synonyms {
			if strings.Contains(name, syn) {
				return true
			}
		}
	}

	return false
}

// FilterByType returns the collections relevant to a garment type.
func (f *CollectionFilter) FilterByType(collections []string, garmentType string) []string {
	relevant := make([]string, 0, len(collections))
	for _, c := range collections {
		if f.IsRelevant(c, garmentType) {
			relevant = append(relevant, c)
		}
	}
	return relevant
}

// FilterRelevant scores every collection name against the expanded query
// terms and returns the top scorers. When nothing matches at all, it falls
// back to the first collections in lexical order so callers always have a
// search space.
func (f *CollectionFilter) FilterRelevant(collections []string, query string) []string {
	terms := ExpandQuery(query)

	type scored struct {
		name  string
		score int
	}

	candidates := make([]scored, 0, len(collections))
	for _, c := range collections {
		if f.IsReserved(c) {
			continue
		}
		candidates = append(candidates, scored{name: c, score: scoreCollectionName(strings.ToLower(c), terms)})
	}

	anyMatch := false
	for _, c := range candidates {
		if c.score > 0 {
			anyMatch = true
			break
		}
	}

	if !anyMatch {
		names := make([]string, 0, len(candidates))
		for _, c := range candidates {
			names = append(names, c.name)
		}
		sort.Strings(names)
		if len(names) > maxRelevantCollections {
			names = names[:maxRelevantCollections]
		}
		return names
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	result := make([]string, 0, maxRelevantCollections)
	for _, c := range candidates {
		if c.score == 0 {
			continue
		}
		result = append(result, c.name)
		if len(result) == maxRelevantCollections {
			break
		}
	}
	return result
}

// scoreCollectionName sums, over every expanded term, the highest applicable
// tier: exact name match, dash-delimited segment, or plain substring.
func scoreCollectionName(name string, terms map[string]bool) int {
	score := 0
	for term := range terms {
		switch {
		case name == term:
			score += scoreExactMatch
		case strings.Contains(name, "-"+term+"-") ||
			strings.HasPrefix(name, term+"-") ||
			strings.HasSuffix(name, "-"+term):
			score += scoreSegmentMatch
		case strings.Contains(name, term):
			score += scoreSubstring
		}
	}
	return score
}
