package insight

import "math"

// Projection is the banded improvement outlook for one category.
type Projection struct {
	Current              float64 `json:"current"`
	Target               float64 `json:"target"`
	Stretch              float64 `json:"stretch"`
	Timeline             string  `json:"timeline"`
	EstimatedConversions int     `json:"estimated_conversions"`
}

type projectionBand struct {
	basePts    float64
	stretchPts float64
	timeline   string
}

// Fixed bands keyed by current percentage. Lower scores get larger projected
// gains on shorter timelines.
func bandFor(current float64) projectionBand {
	switch {
	case current < 60:
		return projectionBand{basePts: 10, stretchPts: 20, timeline: "4-6 weeks"}
	case current < 75:
		return projectionBand{basePts: 8, stretchPts: 15, timeline: "4-6 weeks"}
	case current < 85:
		return projectionBand{basePts: 6, stretchPts: 12, timeline: "6-8 weeks"}
	default:
		return projectionBand{basePts: 5, stretchPts: 10, timeline: "6-8 weeks"}
	}
}

func projectImprovement(current float64) Projection {
	band := bandFor(current)
	conversions := int(math.Round(band.basePts * 0.3))
	if conversions < 2 {
		conversions = 2
	}
	return Projection{
		Current:              current,
		Target:               math.Min(100, current+band.basePts),
		Stretch:              math.Min(100, current+band.stretchPts),
		Timeline:             band.timeline,
		EstimatedConversions: conversions,
	}
}
