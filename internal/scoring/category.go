package scoring

// Category identifies one rubric category together with its rating-column key
// and its display name, so display strings never need to be slugified back
// into column names.
type Category int

const (
	CategoryBondingRapport Category = iota
	CategoryMagicProblem
	CategorySecondAsk
	CategoryObjectionHandling
	CategoryClosing
)

// Closing sub-rating weights. Renormalized over the sub-ratings that are
// actually present when some are N/A.
const (
	closingOfferWeight      = 0.4
	closingMotivationWeight = 0.4
	closingObjectionsWeight = 0.2
)

// RollupCategories are the categories shown on the per-agent breakdown.
// ObjectionHandling still participates in the single-session overall formula
// but the final dashboard generation dropped it from this list; kept as-is.
var RollupCategories = []Category{
	CategoryBondingRapport,
	CategoryMagicProblem,
	CategorySecondAsk,
	CategoryClosing,
}

func (c Category) Key() string {
	switch c {
	case CategoryBondingRapport:
		return "bonding_rapport"
	case CategoryMagicProblem:
		return "magic_problem"
	case CategorySecondAsk:
		return "second_ask"
	case CategoryObjectionHandling:
		return "objection_handling"
	case CategoryClosing:
		return "closing"
	}
	return "unknown"
}

func (c Category) DisplayName() string {
	switch c {
	case CategoryBondingRapport:
		return "Bonding & Rapport"
	case CategoryMagicProblem:
		return "Magic Problem Discovery"
	case CategorySecondAsk:
		return "Second Ask"
	case CategoryObjectionHandling:
		return "Objection Handling"
	case CategoryClosing:
		return "Closing"
	}
	return "Unknown"
}

// CategoryByKey resolves a rating-column key back to its Category.
func CategoryByKey(key string) (Category, bool) {
	for _, c := range []Category{
		CategoryBondingRapport,
		CategoryMagicProblem,
		CategorySecondAsk,
		CategoryObjectionHandling,
		CategoryClosing,
	} {
		if c.Key() == key {
			return c, true
		}
	}
	return 0, false
}

// Value returns the category's 1-5 value for one session's ratings. For
// Closing this is the present-weighted synthetic blend of the three closing
// sub-ratings; for everything else it is the raw rating. ok is false when the
// category was not scored in that session.
func (c Category) Value(r Ratings) (float64, bool) {
	switch c {
	case CategoryBondingRapport:
		return ratingValue(r.BondingRapport)
	case CategoryMagicProblem:
		return ratingValue(r.MagicProblem)
	case CategorySecondAsk:
		return ratingValue(r.SecondAsk)
	case CategoryObjectionHandling:
		return ratingValue(r.ObjectionHandling)
	case CategoryClosing:
		return ClosingSynthetic(r)
	}
	return 0, false
}

func ratingValue(p *int) (float64, bool) {
	if v, ok := presentRating(p); ok {
		return float64(v), true
	}
	return 0, false
}
