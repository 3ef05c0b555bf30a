package scoring

import "time"

// SessionScore is the slice of one session the aggregation engine needs:
// the raw answers plus the cached overall score and the call date.
type SessionScore struct {
	Binary  BinaryAnswers
	Ratings Ratings
	Overall float64
	Date    time.Time
}

// Status tiers for dashboard display.
const (
	StatusGreen  = "green"
	StatusYellow = "yellow"
	StatusRed    = "red"
)

// StatusTier maps an overall percentage onto the traffic-light tier.
func StatusTier(score float64) string {
	switch {
	case score >= 70:
		return StatusGreen
	case score >= 50:
		return StatusYellow
	default:
		return StatusRed
	}
}

// AgentRollup is the derived, recomputed-on-fetch aggregate for one agent.
type AgentRollup struct {
	OverallScore   float64
	CategoryPct    map[Category]float64
	Status         string
	LastEvaluation time.Time
	SessionCount   int
}

// ComputeAgentRollup rolls all of an agent's sessions up into per-category
// percentages and an overall score. Each rollup category averages only the
// sessions where it was actually scored. LastEvaluation follows the order of
// the given slice; callers fetch sessions in chronological order, and the
// source app relied on that order rather than a max-by-date pass.
func ComputeAgentRollup(sessions []SessionScore) AgentRollup {
	rollup := AgentRollup{
		CategoryPct:  make(map[Category]float64, len(RollupCategories)),
		SessionCount: len(sessions),
	}
	if len(sessions) == 0 {
		rollup.Status = StatusRed
		return rollup
	}

	var overallSum float64
	var scoredCategories int
	for _, cat := range RollupCategories {
		var sum float64
		var count int
		for _, s := range sessions {
			if v, ok := cat.Value(s.Ratings); ok {
				sum += v
				count++
			}
		}
		var pct float64
		if count > 0 {
			pct = 100 * (sum / float64(count)) / 5
			overallSum += pct
			scoredCategories++
		}
		rollup.CategoryPct[cat] = Round1(pct)
	}

	if scoredCategories > 0 {
		rollup.OverallScore = Round1(overallSum / float64(scoredCategories))
	}
	rollup.Status = StatusTier(rollup.OverallScore)
	rollup.LastEvaluation = sessions[len(sessions)-1].Date
	return rollup
}
