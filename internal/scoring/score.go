package scoring

import "math"

// BinaryAnswer is one yes/no/n-a checklist answer.
type BinaryAnswer int

const (
	BinaryNotApplicable BinaryAnswer = iota
	BinaryNo
	BinaryYes
)

// BinaryAnswers holds the three fixed checklist answers of one session.
type BinaryAnswers struct {
	Intro             BinaryAnswer
	FirstAsk          BinaryAnswer
	PropertyCondition BinaryAnswer
}

// Ratings holds the seven 1-5 rubric ratings of one session. A nil field
// means the category was not applicable; values outside 1-5 are treated the
// same as nil everywhere.
type Ratings struct {
	BondingRapport    *int
	MagicProblem      *int
	SecondAsk         *int
	ObjectionHandling *int
	ClosingOffer      *int
	ClosingMotivation *int
	ClosingObjections *int
}

const (
	binaryWeight   = 0.3
	categoryWeight = 0.7
)

// presentRating filters out nil and out-of-range ratings.
func presentRating(p *int) (int, bool) {
	if p == nil || *p < 1 || *p > 5 {
		return 0, false
	}
	return *p, true
}

// ClosingSynthetic blends the three closing sub-ratings with weights
// 0.4/0.4/0.2, renormalized over the sub-ratings that are present. ok is
// false when none of the three was scored.
func ClosingSynthetic(r Ratings) (float64, bool) {
	var sum, weight float64
	if v, ok := presentRating(r.ClosingOffer); ok {
		sum += float64(v) * closingOfferWeight
		weight += closingOfferWeight
	}
	if v, ok := presentRating(r.ClosingMotivation); ok {
		sum += float64(v) * closingMotivationWeight
		weight += closingMotivationWeight
	}
	if v, ok := presentRating(r.ClosingObjections); ok {
		sum += float64(v) * closingObjectionsWeight
		weight += closingObjectionsWeight
	}
	if weight == 0 {
		return 0, false
	}
	return sum / weight, true
}

// ComputeOverallScore converts one session's raw answers into the 0-100
// overall score, rounded to one decimal.
//
// Binary questions carry 30% of the total: the Yes-fraction among non-N/A
// answers, or full credit when every answer is N/A. Rated categories carry
// 70%: the plain mean of the present category values (the three closing
// sub-ratings collapse into one synthetic value), scaled from the 1-5 scale
// to a percentage. A session with no ratings at all therefore scores 100.0
// on vacuous binary credit alone; that degenerate case is intentional.
func ComputeOverallScore(bin BinaryAnswers, r Ratings) float64 {
	var answered, yes int
	for _, a := range []BinaryAnswer{bin.Intro, bin.FirstAsk, bin.PropertyCondition} {
		if a == BinaryNotApplicable {
			continue
		}
		answered++
		if a == BinaryYes {
			yes++
		}
	}
	binaryPct := 100.0
	if answered > 0 {
		binaryPct = 100 * float64(yes) / float64(answered)
	}
	binaryWeighted := binaryPct * binaryWeight

	var values []float64
	if v, ok := ratingValue(r.BondingRapport); ok {
		values = append(values, v)
	}
	if v, ok := ratingValue(r.MagicProblem); ok {
		values = append(values, v)
	}
	if v, ok := ratingValue(r.SecondAsk); ok {
		values = append(values, v)
	}
	if v, ok := ratingValue(r.ObjectionHandling); ok {
		values = append(values, v)
	}
	if v, ok := ClosingSynthetic(r); ok {
		values = append(values, v)
	}

	var categoryAvg float64
	for _, v := range values {
		categoryAvg += v
	}
	if len(values) > 0 {
		categoryAvg /= float64(len(values))
	}
	categoryPct := categoryAvg / 5 * 100
	categoryWeighted := categoryPct * categoryWeight

	return Round1(binaryWeighted + categoryWeighted)
}

// Round1 rounds to one decimal place.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}
