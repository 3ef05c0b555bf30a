package scoring

import (
	"math"
	"time"
)

// AgentHistory pairs an agent with their full session history, in the order
// the store returned it (chronological).
type AgentHistory struct {
	AgentID  int64
	Name     string
	Sessions []SessionScore
}

// TopRep is the best recency-weighted performer over the trailing seven days.
type TopRep struct {
	AgentID      int64
	Name         string
	Score        float64
	SessionCount int
}

// MostImprovedRep is the agent with the largest positive week-over-week gain.
type MostImprovedRep struct {
	AgentID     int64
	Name        string
	Improvement float64
	Current     float64
	Previous    float64
}

// TeamAverage is the mean of the agents' rolled-up overall scores.
func TeamAverage(rollups []AgentRollup) float64 {
	if len(rollups) == 0 {
		return 0
	}
	var sum float64
	for _, r := range rollups {
		sum += r.OverallScore
	}
	return Round1(sum / float64(len(rollups)))
}

// TeamGreatestStrength finds the rollup category with the highest
// recency-weighted team-wide percentage. Ties break in category order.
func TeamGreatestStrength(sessions []SessionScore) (Category, float64) {
	best := RollupCategories[0]
	bestScore := 0.0
	for _, cat := range RollupCategories {
		var obs []Observation
		for _, s := range sessions {
			if v, ok := cat.Value(s.Ratings); ok {
				obs = append(obs, Observation{Score: v, Date: s.Date})
			}
		}
		if len(obs) == 0 {
			continue
		}
		pct := Round1(WeightedAverage(obs) / 5 * 100)
		if pct > bestScore {
			best = cat
			bestScore = pct
		}
	}
	return best, bestScore
}

// TopRepThisWeek ranks agents by the recency-weighted average of their
// overall session scores over the last seven days. Near-ties (within 0.1)
// break toward the agent with more sessions in the window. Returns nil when
// nobody was evaluated this week.
func TopRepThisWeek(agents []AgentHistory, now time.Time) *TopRep {
	cutoff := now.AddDate(0, 0, -7)

	var top *TopRep
	for _, agent := range agents {
		var obs []Observation
		for _, s := range agent.Sessions {
			if s.Date.Before(cutoff) {
				continue
			}
			obs = append(obs, Observation{Score: s.Overall, Date: s.Date})
		}
		if len(obs) == 0 {
			continue
		}
		candidate := &TopRep{
			AgentID:      agent.AgentID,
			Name:         agent.Name,
			Score:        Round1(WeightedAverage(obs)),
			SessionCount: len(obs),
		}
		if top == nil {
			top = candidate
			continue
		}
		if math.Abs(candidate.Score-top.Score) < 0.1 {
			if candidate.SessionCount > top.SessionCount {
				top = candidate
			}
		} else if candidate.Score > top.Score {
			top = candidate
		}
	}
	return top
}

// businessWeekStart returns the Monday 00:00 of the week containing t.
func businessWeekStart(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

// MostImproved compares each agent's recency-weighted overall average over
// the current Monday-to-Friday business week against the preceding one.
// Agents need sessions in both windows to qualify. Returns nil when no agent
// shows a positive gain; callers render that as "no improvement data".
func MostImproved(agents []AgentHistory, now time.Time) *MostImprovedRep {
	currentStart := businessWeekStart(now)
	currentEnd := currentStart.AddDate(0, 0, 5)
	previousStart := currentStart.AddDate(0, 0, -7)
	previousEnd := previousStart.AddDate(0, 0, 5)

	windowScores := func(sessions []SessionScore, start, end time.Time) []Observation {
		var obs []Observation
		for _, s := range sessions {
			if s.Date.Before(start) || !s.Date.Before(end) {
				continue
			}
			obs = append(obs, Observation{Score: s.Overall, Date: s.Date})
		}
		return obs
	}

	var best *MostImprovedRep
	for _, agent := range agents {
		current := windowScores(agent.Sessions, currentStart, currentEnd)
		previous := windowScores(agent.Sessions, previousStart, previousEnd)
		if len(current) == 0 || len(previous) == 0 {
			continue
		}
		currentAvg := WeightedAverage(current)
		previousAvg := WeightedAverage(previous)
		improvement := Round1(currentAvg - previousAvg)
		if improvement <= 0 {
			continue
		}
		if best == nil || improvement > best.Improvement {
			best = &MostImprovedRep{
				AgentID:     agent.AgentID,
				Name:        agent.Name,
				Improvement: improvement,
				Current:     Round1(currentAvg),
				Previous:    Round1(previousAvg),
			}
		}
	}
	return best
}
