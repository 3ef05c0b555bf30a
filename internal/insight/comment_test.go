package insight

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trustedhb/qc-server/internal/scoring"
)

func TestGenerateOverallComment(t *testing.T) {
	t.Run("no data at all", func(t *testing.T) {
		comment := GenerateOverallComment("Jordan", 0, []CategoryAnalysis{
			{CategoryName: "Closing", HasData: false},
		})
		assert.Contains(t, comment, "Jordan needs more QC sessions")
	})

	t.Run("high performer quotes their strongest category", func(t *testing.T) {
		analyses := []CategoryAnalysis{
			{
				CategoryName: "Bonding & Rapport",
				Score:        88,
				Consistency:  90,
				Strengths:    []string{"kept the seller laughing through the whole intro"},
				HasData:      true,
			},
			{CategoryName: "Second Ask", Score: 82, HasData: true},
		}

		comment := GenerateOverallComment("Sam", 85, analyses)

		assert.Contains(t, comment, "crushing it")
		assert.Contains(t, comment, "Bonding & Rapport")
		assert.Contains(t, comment, "kept the seller laughing")
	})

	t.Run("weak category becomes the primary focus", func(t *testing.T) {
		analyses := []CategoryAnalysis{
			{CategoryName: "Bonding & Rapport", Score: 72, HasData: true},
			{
				CategoryName: "Closing",
				Score:        48,
				FocusAreas:   []string{"gave up after the first price objection"},
				HasData:      true,
			},
		}

		comment := GenerateOverallComment("Sam", 61, analyses)

		assert.Contains(t, comment, "building momentum")
		assert.Contains(t, comment, "Primary focus: **Closing**")
		assert.Contains(t, comment, "gave up after the first price objection")
	})

	t.Run("trend callouts", func(t *testing.T) {
		analyses := []CategoryAnalysis{
			{CategoryName: "Second Ask", Score: 75, Trend: TrendAccelerating, HasData: true},
			{CategoryName: "Closing", Score: 74, Trend: TrendDeclining, HasData: true},
		}

		comment := GenerateOverallComment("Sam", 74, analyses)

		assert.Contains(t, comment, "upward trajectory in **Second Ask**")
		assert.Contains(t, comment, "Watch **Closing**")
	})
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "0123456789...", truncate("0123456789abcdef", 10))
}

func TestTrainingCandidates(t *testing.T) {
	t.Run("high rating with positive language qualifies", func(t *testing.T) {
		candidates := TrainingCandidates([]ScoredCategory{
			{Category: scoring.CategoryBondingRapport, Rating: intPtr(5), Comment: "Excellent rapport from the first minute."},
		})
		assert.Len(t, candidates, 1)
		assert.Equal(t, "Bonding & Rapport", candidates[0].Name)
		assert.Equal(t, 5, candidates[0].Rating)
	})

	t.Run("high rating without positive language does not", func(t *testing.T) {
		candidates := TrainingCandidates([]ScoredCategory{
			{Category: scoring.CategorySecondAsk, Rating: intPtr(4), Comment: "Covered the checklist items."},
		})
		assert.Empty(t, candidates)
	})

	t.Run("positive language with a low rating does not", func(t *testing.T) {
		candidates := TrainingCandidates([]ScoredCategory{
			{Category: scoring.CategorySecondAsk, Rating: intPtr(3), Comment: "Great energy but missed the ask."},
		})
		assert.Empty(t, candidates)
	})

	t.Run("unrated categories are skipped", func(t *testing.T) {
		candidates := TrainingCandidates([]ScoredCategory{
			{Category: scoring.CategoryClosing, Rating: nil, Comment: "Great close."},
		})
		assert.Empty(t, candidates)
	})
}

func intPtr(v int) *int { return &v }
