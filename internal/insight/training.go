package insight

import (
	"strings"

	"github.com/trustedhb/qc-server/internal/scoring"
)

// TrainingCandidate is a category performance worth saving to the training
// library: highly rated with clearly positive QC language.
type TrainingCandidate struct {
	Category scoring.Category `json:"-"`
	Name     string           `json:"category"`
	Rating   int              `json:"rating"`
	Comment  string           `json:"comment"`
}

var trainingPositiveWords = []string{
	"great", "excellent", "amazing", "outstanding", "superb", "fantastic",
	"good", "well", "strong",
}

// ScoredCategory is one rated category with its comment, as submitted on the
// scoring form.
type ScoredCategory struct {
	Category scoring.Category
	Rating   *int
	Comment  string
}

// TrainingCandidates filters a session's scored categories down to the ones
// worth flagging for the training library: rating of at least 4 and a comment
// containing positive language.
func TrainingCandidates(scored []ScoredCategory) []TrainingCandidate {
	var candidates []TrainingCandidate
	for _, sc := range scored {
		if sc.Rating == nil || *sc.Rating < 4 {
			continue
		}
		lower := strings.ToLower(sc.Comment)
		positive := false
		for _, w := range trainingPositiveWords {
			if strings.Contains(lower, w) {
				positive = true
				break
			}
		}
		if !positive {
			continue
		}
		candidates = append(candidates, TrainingCandidate{
			Category: sc.Category,
			Name:     sc.Category.DisplayName(),
			Rating:   *sc.Rating,
			Comment:  sc.Comment,
		})
	}
	return candidates
}
