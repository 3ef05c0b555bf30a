// Package insight turns a category's score history and free-text QC comments
// into a structured coaching analysis: recency-weighted score, consistency,
// trend, mined strength/gap/technique examples, an improvement projection and
// a rendered summary.
package insight

import (
	"strings"

	"github.com/trustedhb/qc-server/internal/scoring"
)

// Bucket is the classification target of one matched sentence.
type Bucket int

const (
	BucketStrength Bucket = iota
	BucketWeakness
	BucketTechnique
)

// Match is one keyword hit inside a sentence.
type Match struct {
	Bucket  Bucket
	Keyword string
}

// Classifier decides which buckets a comment sentence belongs to for a given
// category. The keyword implementation below is a deliberate non-ML baseline;
// the interface exists so it can be swapped for a model without touching the
// aggregation math.
type Classifier interface {
	Classify(sentence string, category scoring.Category) []Match
}

// KeywordClassifier matches sentences against hand-curated, category-specific
// keyword lists by case-insensitive substring search.
type KeywordClassifier struct{}

func NewKeywordClassifier() *KeywordClassifier {
	return &KeywordClassifier{}
}

func (c *KeywordClassifier) Classify(sentence string, category scoring.Category) []Match {
	lex := lexiconFor(category)
	lower := strings.ToLower(sentence)

	var matches []Match
	for _, kw := range lex.Strengths {
		if strings.Contains(lower, strings.ToLower(kw)) {
			matches = append(matches, Match{Bucket: BucketStrength, Keyword: kw})
		}
	}
	for _, kw := range lex.Weaknesses {
		if strings.Contains(lower, strings.ToLower(kw)) {
			matches = append(matches, Match{Bucket: BucketWeakness, Keyword: kw})
		}
	}
	for _, kw := range lex.Techniques {
		if strings.Contains(lower, strings.ToLower(kw)) {
			matches = append(matches, Match{Bucket: BucketTechnique, Keyword: kw})
		}
	}
	return matches
}
