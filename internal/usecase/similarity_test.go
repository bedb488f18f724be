package usecase

import (
	"math"
	"testing"
)

func TestTextSimilarity(t *testing.T) {
	t.Run("returns zero for empty inputs", func(t *testing.T) {
		if got := TextSimilarity("", "anything"); got != 0 {
			t.Errorf("TextSimilarity(\"\", ...) = %v, want 0", got)
		}
		if got := TextSimilarity("anything", ""); got != 0 {
			t.Errorf("TextSimilarity(..., \"\") = %v, want 0", got)
		}
		if got := TextSimilarity("", ""); got != 0 {
			t.Errorf("TextSimilarity(\"\", \"\") = %v, want 0", got)
		}
	})

	t.Run("self similarity is exactly one", func(t *testing.T) {
		inputs := []string{"jeans", "blue slim fit jeans", "Denim-Shorts, Distressed!"}
		for _, s := range inputs {
			if got := TextSimilarity(s, s); got != 1.0 {
				t.Errorf("TextSimilarity(%q, %q) = %v, want exactly 1.0", s, s, got)
			}
		}
	})

	t.Run("is symmetric", func(t *testing.T) {
		pairs := [][2]string{
			{"blue jeans", "jeans"},
			{"striped cotton shirt", "cotton shirt with stripes"},
			{"denim shorts", "red dress"},
		}
		for _, p := range pairs {
			ab := TextSimilarity(p[0], p[1])
			ba := TextSimilarity(p[1], p[0])
			if ab != ba {
				t.Errorf("similarity not symmetric: (%q,%q)=%v, (%q,%q)=%v", p[0], p[1], ab, p[1], p[0], ba)
			}
		}
	})

	t.Run("same bag of words scores one regardless of order and case", func(t *testing.T) {
		got := TextSimilarity("Blue Slim Fit Jeans", "blue jeans slim fit")
		if got != 1.0 {
			t.Errorf("TextSimilarity = %v, want 1.0", got)
		}
	})

	t.Run("disjoint word sets score zero", func(t *testing.T) {
		if got := TextSimilarity("red cotton shirt", "blue jeans"); got != 0 {
			t.Errorf("TextSimilarity = %v, want 0", got)
		}
	})

	t.Run("partial overlap lands strictly between zero and one", func(t *testing.T) {
		got := TextSimilarity("blue jeans", "blue dress")
		if got <= 0 || got >= 1 {
			t.Errorf("TextSimilarity = %v, want in (0,1)", got)
		}
		// One shared word of two on each side: 1/sqrt(2*2) = 0.5
		if math.Abs(got-0.5) > 1e-9 {
			t.Errorf("TextSimilarity = %v, want 0.5", got)
		}
	})

	t.Run("normalization strips punctuation and collapses whitespace", func(t *testing.T) {
		got := TextSimilarity("blue---jeans!!", "  BLUE   jeans  ")
		if got != 1.0 {
			t.Errorf("TextSimilarity = %v, want 1.0", got)
		}
	})

	t.Run("punctuation-only input scores zero", func(t *testing.T) {
		if got := TextSimilarity("!!! --- ???", "blue jeans"); got != 0 {
			t.Errorf("TextSimilarity = %v, want 0", got)
		}
	})

	t.Run("word frequency matters", func(t *testing.T) {
		// "blue blue" vs "blue" share the word but differ in magnitude.
		got := TextSimilarity("blue blue", "blue")
		if got != 1.0 {
			// dot=2, mags sqrt(4)*... -> 2/sqrt(4*1)=1.0: identical direction
			t.Errorf("TextSimilarity = %v, want 1.0 (parallel vectors)", got)
		}

		got = TextSimilarity("blue blue jeans", "blue jeans")
		if got <= 0.9 || got >= 1.0 {
			t.Errorf("TextSimilarity = %v, want slightly below 1.0", got)
		}
	})

	t.Run("is deterministic", func(t *testing.T) {
		a, b := "slim fit denim jacket", "denim jacket with slim fit"
		first := TextSimilarity(a, b)
		for i := 0; i < 10; i++ {
			if got := TextSimilarity(a, b); got != first {
				t.Fatalf("TextSimilarity varied between calls: %v vs %v", got, first)
			}
		}
	})
}
