package usecase

import "strings"

// Static synonym tables for query expansion. These are read-only resource
// tables loaded once at process start; the expansion functions never mutate
// them.

// categorySynonyms maps a garment category to related garment words.
var categorySynonyms = map[string][]string{
	"jeans":     {"jeans", "denim", "pants", "bottoms", "trousers", "chinos", "slacks"},
	"pants":     {"pants", "trousers", "jeans", "bottoms", "chinos", "leggings", "joggers", "slacks"},
	"shorts":    {"shorts", "bermudas", "cutoffs", "denim shorts", "jean shorts"},
	"shirt":     {"shirt", "tee", "tshirt", "top", "blouse", "polo", "tank"},
	"dress":     {"dress", "gown", "frock", "sundress", "maxi"},
	"jacket":    {"jacket", "coat", "blazer", "parka", "windbreaker", "bomber", "outerwear"},
	"sweater":   {"sweater", "jumper", "pullover", "cardigan", "hoodie", "sweatshirt", "knitwear"},
	"skirt":     {"skirt", "miniskirt", "midi"},
	"underwear": {"underwear", "briefs", "boxers", "trunks", "lingerie"},
	"shoes":     {"shoes", "sneakers", "trainers", "boots", "sandals", "loafers", "footwear"},
}

// attributeSynonyms maps fit, length, material and pattern descriptors to
// their variants.
var attributeSynonyms = map[string][]string{
	// Fit
	"slim":  {"slim", "skinny", "fitted", "tight", "tapered"},
	"loose": {"loose", "relaxed", "baggy", "oversized", "wide"},
	// Length
	"short": {"short", "cropped", "mini"},
	"long":  {"long", "full length", "maxi", "ankle"},
	// Material
	"denim":   {"denim", "jean"},
	"cotton":  {"cotton", "jersey"},
	"leather": {"leather", "suede"},
	"wool":    {"wool", "knit", "knitted", "cashmere", "merino"},
	"linen":   {"linen", "flax"},
	// Pattern
	"striped": {"striped", "stripes", "stripe", "pinstripe"},
	"floral":  {"floral", "flower", "flowers", "botanical"},
	"plaid":   {"plaid", "checked", "checkered", "tartan", "gingham"},
	"graphic": {"graphic", "print", "printed", "logo"},
	"plain":   {"plain", "solid", "basic"},
}

// colorSynonyms maps a base color name to its shade variants.
var colorSynonyms = map[string][]string{
	"blue":   {"blue", "navy", "indigo", "denim", "azure", "royal"},
	"red":    {"red", "crimson", "burgundy", "maroon", "scarlet"},
	"green":  {"green", "olive", "khaki", "emerald", "sage", "mint"},
	"black":  {"black", "charcoal", "jet", "onyx"},
	"white":  {"white", "ivory", "cream", "offwhite"},
	"grey":   {"grey", "gray", "slate", "heather", "silver"},
	"brown":  {"brown", "tan", "beige", "camel", "taupe", "chocolate"},
	"pink":   {"pink", "rose", "blush", "fuchsia", "salmon"},
	"yellow": {"yellow", "mustard", "gold", "lemon"},
	"purple": {"purple", "violet", "lavender", "plum", "lilac"},
	"orange": {"orange", "rust", "coral", "peach"},
}

// ExpandQuery expands a raw query string into the set of related search
// terms: morphological variants of every token plus the variants of every
// entry in any matched synonym table. Pure and deterministic; an empty query
// yields an empty set.
func ExpandQuery(query string) map[string]bool {
	expanded := make(map[string]bool)

	for _, token := range strings.Fields(strings.ToLower(query)) {
		variants := morphologicalVariants(token)
		for v := range variants {
			expanded[v] = true
		}

		expandFromTable(expanded, variants, categorySynonyms)
		expandFromTable(expanded, variants, attributeSynonyms)
		expandFromTable(expanded, variants, colorSynonyms)
	}

	return expanded
}

// expandFromTable unions the variant sets of every value of a table entry
// whose key matches any token variant by substring containment.
func expandFromTable(expanded map[string]bool, variants map[string]bool, table map[string][]string) {
	for key, values := range table {
		if !matchesKey(variants, key) {
			continue
		}
		for _, value := range values {
			for v := range morphologicalVariants(value) {
				expanded[v] = true
			}
		}
	}
}

// matchesKey reports whether any variant contains the table key or vice
// versa.
func matchesKey(variants map[string]bool, key string) bool {
	for v := range variants {
		if strings.Contains(v, key) || strings.Contains(key, v) {
			return true
		}
	}
	return false
}

// morphologicalVariants generates the word itself plus plural/singular and
// -ing/-ed stem variants. Multi-word values contribute themselves unchanged
// alongside their whole-string variants.
func morphologicalVariants(word string) map[string]bool {
	variants := map[string]bool{word: true}
	if len(word) < 3 {
		return variants
	}

	// Plural -> singular
	switch {
	case strings.HasSuffix(word, "ies") && len(word) > 3:
		variants[strings.TrimSuffix(word, "ies")+"y"] = true
	case strings.HasSuffix(word, "es") && hasSibilantStem(strings.TrimSuffix(word, "es")):
		variants[strings.TrimSuffix(word, "es")] = true
	case strings.HasSuffix(word, "s") && !strings.HasSuffix(word, "ss"):
		variants[strings.TrimSuffix(word, "s")] = true
	}

	// Singular -> plural
	switch {
	case strings.HasSuffix(word, "y"):
		variants[strings.TrimSuffix(word, "y")+"ies"] = true
	case hasSibilantStem(word):
		variants[word+"es"] = true
	case !strings.HasSuffix(word, "s"):
		variants[word+"s"] = true
	}

	// -ing / -ed stem stripping, with and without trailing "e" restored
	if strings.HasSuffix(word, "ing") && len(word) > 5 {
		stem := strings.TrimSuffix(word, "ing")
		variants[stem] = true
		variants[stem+"e"] = true
	}
	if strings.HasSuffix(word, "ed") && len(word) > 4 {
		variants[strings.TrimSuffix(word, "ed")] = true
		variants[strings.TrimSuffix(word, "d")] = true
	}

	return variants
}

// hasSibilantStem reports whether a stem ends in a sibilant sound that takes
// an "-es" plural (s, sh, ch, x, z).
func hasSibilantStem(stem string) bool {
	return strings.HasSuffix(stem, "s") || strings.HasSuffix(stem, "sh") ||
		strings.HasSuffix(stem, "ch") || strings.HasSuffix(stem, "x") ||
		strings.HasSuffix(stem, "z")
}
