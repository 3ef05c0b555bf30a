package scoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func dayN(n int) time.Time {
	return time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
}

func TestComputeAgentRollup(t *testing.T) {
	t.Run("per-category averages use only scored sessions", func(t *testing.T) {
		sessions := []SessionScore{
			{
				Ratings: Ratings{BondingRapport: intPtr(4), MagicProblem: intPtr(2)},
				Date:    dayN(0),
			},
			{
				Ratings: Ratings{BondingRapport: intPtr(2)},
				Date:    dayN(1),
			},
		}

		rollup := ComputeAgentRollup(sessions)

		// bonding averages both sessions, magic only the one that scored it.
		assert.Equal(t, 60.0, rollup.CategoryPct[CategoryBondingRapport])
		assert.Equal(t, 40.0, rollup.CategoryPct[CategoryMagicProblem])
		assert.Equal(t, 0.0, rollup.CategoryPct[CategorySecondAsk])
		assert.Equal(t, 0.0, rollup.CategoryPct[CategoryClosing])
		// overall averages only the categories that were scored at all.
		assert.Equal(t, 50.0, rollup.OverallScore)
		assert.Equal(t, 2, rollup.SessionCount)
	})

	t.Run("objection handling stays out of the breakdown", func(t *testing.T) {
		sessions := []SessionScore{
			{Ratings: Ratings{ObjectionHandling: intPtr(5)}, Date: dayN(0)},
		}

		rollup := ComputeAgentRollup(sessions)

		_, present := rollup.CategoryPct[CategoryObjectionHandling]
		assert.False(t, present)
		assert.Equal(t, 0.0, rollup.OverallScore)
	})

	t.Run("closing synthetic feeds the closing column", func(t *testing.T) {
		sessions := []SessionScore{
			{
				Ratings: Ratings{
					ClosingOffer:      intPtr(4),
					ClosingMotivation: intPtr(4),
					ClosingObjections: intPtr(2),
				},
				Date: dayN(0),
			},
		}

		rollup := ComputeAgentRollup(sessions)

		assert.Equal(t, 72.0, rollup.CategoryPct[CategoryClosing])
	})

	t.Run("last evaluation follows slice order", func(t *testing.T) {
		sessions := []SessionScore{
			{Ratings: Ratings{BondingRapport: intPtr(3)}, Date: dayN(0)},
			{Ratings: Ratings{BondingRapport: intPtr(3)}, Date: dayN(5)},
		}

		rollup := ComputeAgentRollup(sessions)
		assert.Equal(t, dayN(5), rollup.LastEvaluation)
	})

	t.Run("status tier tracks overall", func(t *testing.T) {
		green := ComputeAgentRollup([]SessionScore{
			{Ratings: Ratings{BondingRapport: intPtr(5)}, Date: dayN(0)},
		})
		assert.Equal(t, StatusGreen, green.Status)

		red := ComputeAgentRollup([]SessionScore{
			{Ratings: Ratings{BondingRapport: intPtr(1)}, Date: dayN(0)},
		})
		assert.Equal(t, StatusRed, red.Status)
	})

	t.Run("no sessions", func(t *testing.T) {
		rollup := ComputeAgentRollup(nil)
		assert.Equal(t, 0.0, rollup.OverallScore)
		assert.Equal(t, StatusRed, rollup.Status)
		assert.Zero(t, rollup.SessionCount)
		assert.True(t, rollup.LastEvaluation.IsZero())
	})
}
