package usecase

import (
	"math"
	"regexp"
	"strings"
)

// Package-level compiled regex patterns for performance
var (
	nonAlphanumericRegex = regexp.MustCompile(`[^a-z0-9]`)
	multipleSpacesRegex  = regexp.MustCompile(`\s+`)
)

// TextSimilarity computes the cosine similarity of the word-frequency
// vectors of two strings. It is symmetric, order-independent and returns a
// value in [0,1]; two strings with the same bag of words score 1.0 regardless
// of arrangement. Empty input on either side scores 0.
func TextSimilarity(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}

	freqA := wordFrequencies(a)
	freqB := wordFrequencies(b)
	if len(freqA) == 0 || len(freqB) == 0 {
		return 0
	}

	var dot, sumSqA, sumSqB float64
	for word, countA := range freqA {
		sumSqA += countA * countA
		if countB, ok := freqB[word]; ok {
			dot += countA * countB
		}
	}
	for _, countB := range freqB {
		sumSqB += countB * countB
	}

	// Single sqrt over the product keeps identical inputs at exactly 1.0.
	magnitude := math.Sqrt(sumSqA * sumSqB)
	if magnitude == 0 {
		return 0
	}

	return dot / magnitude
}

// wordFrequencies normalizes a string and returns its term-frequency vector.
// Normalization: lowercase, replace non [a-z0-9] runs with spaces, collapse
// whitespace, trim, split. Empty tokens are discarded.
func wordFrequencies(s string) map[string]float64 {
	cleaned := nonAlphanumericRegex.ReplaceAllString(strings.ToLower(s), " ")
	cleaned = multipleSpacesRegex.ReplaceAllString(cleaned, " ")
	cleaned = strings.TrimSpace(cleaned)

	freq := make(map[string]float64)
	for _, word := range strings.Fields(cleaned) {
		freq[word]++
	}
	return freq
}
