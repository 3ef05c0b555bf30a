package insight

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/trustedhb/qc-server/internal/scoring"
)

// RatingObservation is one session's contribution to a category analysis:
// the rating (1-5, fractional for the synthetic Closing value), the QC
// comment attached to it, and the call date. Callers supply these in
// chronological order.
type RatingObservation struct {
	Rating  float64
	Comment string
	Date    time.Time
}

// Gap is one confirmed development need: the verbatim QC sentence plus the
// dictionary's coaching payload.
type Gap struct {
	Text      string `json:"text"`
	Keyword   string `json:"keyword"`
	Rationale string `json:"rationale"`
	Fix       string `json:"fix"`
	Impact    string `json:"impact"`
}

// Patterns are the keyword themes confirmed by two or more mentions.
type Patterns struct {
	Strengths  []string `json:"strengths"`
	Issues     []string `json:"issues"`
	Techniques []string `json:"techniques"`
}

// CategoryAnalysis is the full per-category deep-dive result.
type CategoryAnalysis struct {
	Category      scoring.Category `json:"-"`
	CategoryName  string           `json:"category"`
	Score         float64          `json:"score"`
	Consistency   float64          `json:"consistency"`
	Trend         string           `json:"trend"`
	TrendStrength int              `json:"trend_strength"`
	Strengths     []string         `json:"strengths"`
	Techniques    []string         `json:"techniques"`
	Gaps          []Gap            `json:"gaps"`
	FocusAreas    []string         `json:"focus_areas"`
	Patterns      Patterns         `json:"patterns"`
	Projection    Projection       `json:"projection"`
	Summary       string           `json:"summary"`
	SessionCount  int              `json:"session_count"`
	HasData       bool             `json:"has_data"`
}

// Trend labels, from strongest positive to strongest negative.
const (
	TrendAccelerating  = "accelerating"
	TrendImproving     = "improving"
	TrendStable        = "stable"
	TrendDeclining     = "declining"
	TrendDeteriorating = "deteriorating"
)

// Sentence and example retention thresholds for comment mining.
const (
	minSentenceLen     = 15
	minExampleLen      = 30
	maxExampleLen      = 150
	strengthMinRating  = 4
	weaknessMaxRating  = 3
	confirmedMinCount  = 2
	maxExamplesPerKind = 2
)

// Analyzer runs the per-category analysis with a pluggable classifier.
type Analyzer struct {
	classifier Classifier
}

func NewAnalyzer(classifier Classifier) *Analyzer {
	if classifier == nil {
		classifier = NewKeywordClassifier()
	}
	return &Analyzer{classifier: classifier}
}

// AnalyzeCategory produces the deep-dive result for one agent's category
// history. Empty history yields a zero-valued, non-nil result.
func (a *Analyzer) AnalyzeCategory(category scoring.Category, history []RatingObservation) CategoryAnalysis {
	analysis := CategoryAnalysis{
		Category:     category,
		CategoryName: category.DisplayName(),
		Trend:        TrendStable,
		Strengths:    []string{},
		Techniques:   []string{},
		Gaps:         []Gap{},
		FocusAreas:   []string{},
		Patterns:     Patterns{Strengths: []string{}, Issues: []string{}, Techniques: []string{}},
		SessionCount: len(history),
	}
	if len(history) == 0 {
		analysis.Summary = fmt.Sprintf("No QC data available for %s yet.", category.DisplayName())
		return analysis
	}
	analysis.HasData = true

	obs := make([]scoring.Observation, len(history))
	for i, h := range history {
		obs[i] = scoring.Observation{Score: h.Rating, Date: h.Date}
	}
	analysis.Score = scoring.Round1(scoring.WeightedAverage(obs) / 5 * 100)
	analysis.Consistency = scoring.Round1(consistency(history))
	analysis.Trend, analysis.TrendStrength = classifyTrend(history)

	a.mineComments(category, history, &analysis)

	analysis.Projection = projectImprovement(analysis.Score)
	analysis.Summary = renderSummary(category, analysis)
	return analysis
}

// consistency converts the population standard deviation of the raw ratings
// into a 0-100 uniformity score.
func consistency(history []RatingObservation) float64 {
	mean := 0.0
	for _, h := range history {
		mean += h.Rating
	}
	mean /= float64(len(history))

	variance := 0.0
	for _, h := range history {
		d := h.Rating - mean
		variance += d * d
	}
	variance /= float64(len(history))

	return math.Max(0, 100-math.Sqrt(variance)*40)
}

// classifyTrend compares the recency-weighted average of the newest ten
// ratings against the ten immediately before them.
func classifyTrend(history []RatingObservation) (string, int) {
	if len(history) < 2 {
		return TrendStable, 0
	}

	recentStart := len(history) - 10
	if recentStart < 0 {
		recentStart = 0
	}
	recent := history[recentStart:]
	older := history[:recentStart]
	if len(older) > 10 {
		older = older[len(older)-10:]
	}
	if len(older) == 0 {
		return TrendStable, 0
	}

	toObs := func(hs []RatingObservation) []scoring.Observation {
		out := make([]scoring.Observation, len(hs))
		for i, h := range hs {
			out[i] = scoring.Observation{Score: h.Rating, Date: h.Date}
		}
		return out
	}
	delta := scoring.WeightedAverage(toObs(recent)) - scoring.WeightedAverage(toObs(older))
	strength := int(math.Round(math.Min(math.Abs(delta), 2) / 2 * 100))

	switch {
	case math.Abs(delta) < 0.3:
		return TrendStable, strength
	case delta > 0.5:
		return TrendAccelerating, strength
	case delta > 0:
		return TrendImproving, strength
	case delta < -0.5:
		return TrendDeteriorating, strength
	default:
		return TrendDeclining, strength
	}
}

type minedExample struct {
	bucket  Bucket
	text    string
	rating  float64
	keyword string
}

// mineComments classifies comment sentences, counts keyword themes, and
// retains verbatim supporting examples.
func (a *Analyzer) mineComments(category scoring.Category, history []RatingObservation, analysis *CategoryAnalysis) {
	freq := map[Bucket]map[string]int{
		BucketStrength:  {},
		BucketWeakness:  {},
		BucketTechnique: {},
	}
	var examples []minedExample

	for _, h := range history {
		if strings.TrimSpace(h.Comment) == "" {
			continue
		}
		for _, sentence := range splitSentences(h.Comment) {
			for _, m := range a.classifier.Classify(sentence, category) {
				freq[m.Bucket][strings.ToLower(m.Keyword)]++
				if !exampleWorthy(sentence, h.Rating, m.Bucket) {
					continue
				}
				examples = append(examples, minedExample{
					bucket:  m.Bucket,
					text:    sentence,
					rating:  h.Rating,
					keyword: m.Keyword,
				})
			}
		}
	}

	analysis.Patterns.Strengths = confirmedThemes(freq[BucketStrength], "mentioned %dx")
	analysis.Patterns.Issues = confirmedThemes(freq[BucketWeakness], "%d sessions")
	analysis.Patterns.Techniques = confirmedThemes(freq[BucketTechnique], "mentioned %dx")

	lex := lexiconFor(category)
	// History is chronological, so trailing examples are the most recent.
	for _, ex := range lastN(filterExamples(examples, BucketStrength), maxExamplesPerKind) {
		analysis.Strengths = append(analysis.Strengths, ex.text)
	}
	for _, ex := range lastN(filterExamples(examples, BucketTechnique), maxExamplesPerKind) {
		analysis.Techniques = append(analysis.Techniques, ex.text)
	}
	for _, ex := range lastN(filterExamples(examples, BucketWeakness), maxExamplesPerKind) {
		advice := lex.AdviceFor(ex.keyword)
		analysis.Gaps = append(analysis.Gaps, Gap{
			Text:      ex.text,
			Keyword:   ex.keyword,
			Rationale: advice.Rationale,
			Fix:       advice.Fix,
			Impact:    advice.Impact,
		})
		analysis.FocusAreas = append(analysis.FocusAreas, ex.text)
	}
}

// splitSentences breaks a comment on sentence punctuation and drops fragments
// too short to mean anything.
func splitSentences(comment string) []string {
	raw := strings.FieldsFunc(comment, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	})
	var out []string
	for _, s := range raw {
		s = strings.TrimSpace(s)
		if len(s) > minSentenceLen {
			out = append(out, s)
		}
	}
	return out
}

// exampleWorthy gates which sentences are quoted verbatim: they must be in
// the readable length window and come from a session whose rating makes the
// quote relevant (high for strengths/techniques, low for weaknesses).
func exampleWorthy(sentence string, rating float64, bucket Bucket) bool {
	if len(sentence) < minExampleLen || len(sentence) > maxExampleLen {
		return false
	}
	if bucket == BucketWeakness {
		return rating <= weaknessMaxRating
	}
	return rating >= strengthMinRating
}

func filterExamples(examples []minedExample, bucket Bucket) []minedExample {
	var out []minedExample
	for _, ex := range examples {
		if ex.bucket == bucket {
			out = append(out, ex)
		}
	}
	return out
}

func lastN(examples []minedExample, n int) []minedExample {
	if len(examples) > n {
		return examples[len(examples)-n:]
	}
	return examples
}

// confirmedThemes keeps keywords mentioned at least twice, most frequent
// first, top three.
func confirmedThemes(counts map[string]int, format string) []string {
	type theme struct {
		keyword string
		count   int
	}
	var themes []theme
	for kw, n := range counts {
		if n >= confirmedMinCount {
			themes = append(themes, theme{keyword: kw, count: n})
		}
	}
	sort.Slice(themes, func(i, j int) bool {
		if themes[i].count != themes[j].count {
			return themes[i].count > themes[j].count
		}
		return themes[i].keyword < themes[j].keyword
	})
	if len(themes) > 3 {
		themes = themes[:3]
	}
	out := make([]string, 0, len(themes))
	for _, t := range themes {
		out = append(out, fmt.Sprintf("%s ("+format+")", t.keyword, t.count))
	}
	return out
}
