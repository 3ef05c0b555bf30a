package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int { return &v }

func TestComputeOverallScore(t *testing.T) {
	t.Run("end to end", func(t *testing.T) {
		// 2 Yes + 1 No -> binaryPct 66.7 -> 20.0 weighted.
		// Ratings [4,3,5] + closing synthetic 3.6 -> mean 3.9 -> 54.6 weighted.
		bin := BinaryAnswers{Intro: BinaryYes, FirstAsk: BinaryYes, PropertyCondition: BinaryNo}
		r := Ratings{
			BondingRapport:    intPtr(4),
			MagicProblem:      intPtr(3),
			SecondAsk:         intPtr(5),
			ObjectionHandling: nil,
			ClosingOffer:      intPtr(4),
			ClosingMotivation: intPtr(4),
			ClosingObjections: intPtr(2),
		}

		assert.Equal(t, 74.6, ComputeOverallScore(bin, r))
	})

	t.Run("all answers absent scores full binary credit", func(t *testing.T) {
		score := ComputeOverallScore(BinaryAnswers{}, Ratings{})
		assert.Equal(t, 100.0, score)
	})

	t.Run("perfect session", func(t *testing.T) {
		bin := BinaryAnswers{Intro: BinaryYes, FirstAsk: BinaryYes, PropertyCondition: BinaryYes}
		r := Ratings{
			BondingRapport:    intPtr(5),
			MagicProblem:      intPtr(5),
			SecondAsk:         intPtr(5),
			ObjectionHandling: intPtr(5),
			ClosingOffer:      intPtr(5),
			ClosingMotivation: intPtr(5),
			ClosingObjections: intPtr(5),
		}
		assert.Equal(t, 100.0, ComputeOverallScore(bin, r))
	})

	t.Run("objection handling counts toward overall when present", func(t *testing.T) {
		bin := BinaryAnswers{Intro: BinaryYes, FirstAsk: BinaryYes, PropertyCondition: BinaryYes}
		withObjection := Ratings{BondingRapport: intPtr(5), ObjectionHandling: intPtr(1)}
		withoutObjection := Ratings{BondingRapport: intPtr(5)}

		assert.Less(t,
			ComputeOverallScore(bin, withObjection),
			ComputeOverallScore(bin, withoutObjection))
	})

	t.Run("out of range rating is ignored", func(t *testing.T) {
		bin := BinaryAnswers{Intro: BinaryYes, FirstAsk: BinaryYes, PropertyCondition: BinaryYes}
		valid := Ratings{BondingRapport: intPtr(4)}
		withJunk := Ratings{BondingRapport: intPtr(4), MagicProblem: intPtr(9)}

		assert.Equal(t, ComputeOverallScore(bin, valid), ComputeOverallScore(bin, withJunk))
	})
}

func TestClosingSynthetic(t *testing.T) {
	t.Run("all three present", func(t *testing.T) {
		v, ok := ClosingSynthetic(Ratings{
			ClosingOffer:      intPtr(4),
			ClosingMotivation: intPtr(4),
			ClosingObjections: intPtr(2),
		})
		assert.True(t, ok)
		assert.InDelta(t, 3.6, v, 1e-9)
	})

	t.Run("weights renormalize over present sub-ratings", func(t *testing.T) {
		v, ok := ClosingSynthetic(Ratings{
			ClosingOffer:      intPtr(3),
			ClosingObjections: intPtr(4),
		})
		assert.True(t, ok)
		// (3*0.4 + 4*0.2) / 0.6
		assert.InDelta(t, 10.0/3.0, v, 1e-9)
	})

	t.Run("single sub-rating is returned as-is", func(t *testing.T) {
		v, ok := ClosingSynthetic(Ratings{ClosingMotivation: intPtr(5)})
		assert.True(t, ok)
		assert.InDelta(t, 5.0, v, 1e-9)
	})

	t.Run("nothing scored", func(t *testing.T) {
		_, ok := ClosingSynthetic(Ratings{})
		assert.False(t, ok)
	})
}

func TestStatusTier(t *testing.T) {
	assert.Equal(t, StatusGreen, StatusTier(70))
	assert.Equal(t, StatusGreen, StatusTier(92.3))
	assert.Equal(t, StatusYellow, StatusTier(69.9))
	assert.Equal(t, StatusYellow, StatusTier(50))
	assert.Equal(t, StatusRed, StatusTier(49.9))
	assert.Equal(t, StatusRed, StatusTier(0))
}
