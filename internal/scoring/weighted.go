package scoring

import (
	"sort"
	"time"
)

// Observation is one dated score, the input unit of recency weighting.
type Observation struct {
	Score float64
	Date  time.Time
}

// Rank-based recency weights: the newest ten observations count triple, the
// next ten double, the next ten 1.5x, everything older counts once.
func recencyWeight(rank int) float64 {
	switch {
	case rank < 10:
		return 3.0
	case rank < 20:
		return 2.0
	case rank < 30:
		return 1.5
	default:
		return 1.0
	}
}

// WeightedAverage returns the recency-weighted mean of the observations,
// newest first. An empty list yields 0.
func WeightedAverage(obs []Observation) float64 {
	if len(obs) == 0 {
		return 0
	}

	sorted := make([]Observation, len(obs))
	copy(sorted, obs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.After(sorted[j].Date)
	})

	var weightedSum, totalWeight float64
	for i, o := range sorted {
		w := recencyWeight(i)
		weightedSum += o.Score * w
		totalWeight += w
	}
	return weightedSum / totalWeight
}
