package scoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func sessionAt(date time.Time, overall float64) SessionScore {
	return SessionScore{Overall: overall, Date: date}
}

func TestTeamAverage(t *testing.T) {
	rollups := []AgentRollup{
		{OverallScore: 80},
		{OverallScore: 60},
		{OverallScore: 71},
	}
	assert.InDelta(t, 70.3, TeamAverage(rollups), 0.01)
	assert.Equal(t, 0.0, TeamAverage(nil))
}

func TestTeamGreatestStrength(t *testing.T) {
	now := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)
	sessions := []SessionScore{
		{Ratings: Ratings{BondingRapport: intPtr(5), SecondAsk: intPtr(2)}, Date: now},
		{Ratings: Ratings{BondingRapport: intPtr(4), SecondAsk: intPtr(3)}, Date: now.AddDate(0, 0, -1)},
	}

	cat, score := TeamGreatestStrength(sessions)
	assert.Equal(t, CategoryBondingRapport, cat)
	assert.Greater(t, score, 80.0)
}

func TestTopRepThisWeek(t *testing.T) {
	now := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)

	t.Run("only the trailing seven days count", func(t *testing.T) {
		agents := []AgentHistory{
			{
				AgentID: 1, Name: "Ana",
				Sessions: []SessionScore{sessionAt(now.AddDate(0, 0, -10), 99)},
			},
			{
				AgentID: 2, Name: "Bo",
				Sessions: []SessionScore{sessionAt(now.AddDate(0, 0, -2), 70)},
			},
		}

		top := TopRepThisWeek(agents, now)
		assert.NotNil(t, top)
		assert.Equal(t, int64(2), top.AgentID)
		assert.Equal(t, 70.0, top.Score)
	})

	t.Run("near-tie breaks toward more sessions", func(t *testing.T) {
		agents := []AgentHistory{
			{
				AgentID: 1, Name: "Ana",
				Sessions: []SessionScore{sessionAt(now.AddDate(0, 0, -1), 80.05)},
			},
			{
				AgentID: 2, Name: "Bo",
				Sessions: []SessionScore{
					sessionAt(now.AddDate(0, 0, -1), 80),
					sessionAt(now.AddDate(0, 0, -2), 80),
				},
			},
		}

		top := TopRepThisWeek(agents, now)
		assert.NotNil(t, top)
		assert.Equal(t, int64(2), top.AgentID)
		assert.Equal(t, 2, top.SessionCount)
	})

	t.Run("nobody evaluated this week", func(t *testing.T) {
		agents := []AgentHistory{
			{AgentID: 1, Sessions: []SessionScore{sessionAt(now.AddDate(0, 0, -30), 90)}},
		}
		assert.Nil(t, TopRepThisWeek(agents, now))
	})
}

func TestMostImproved(t *testing.T) {
	// Thursday 2026-08-20; current business week starts Monday 2026-08-17.
	now := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	currentWeek := time.Date(2026, 8, 18, 0, 0, 0, 0, time.UTC)
	previousWeek := time.Date(2026, 8, 11, 0, 0, 0, 0, time.UTC)

	t.Run("largest positive gain wins", func(t *testing.T) {
		agents := []AgentHistory{
			{
				AgentID: 1, Name: "Ana",
				Sessions: []SessionScore{
					sessionAt(previousWeek, 60),
					sessionAt(currentWeek, 70),
				},
			},
			{
				AgentID: 2, Name: "Bo",
				Sessions: []SessionScore{
					sessionAt(previousWeek, 50),
					sessionAt(currentWeek, 75),
				},
			},
		}

		best := MostImproved(agents, now)
		assert.NotNil(t, best)
		assert.Equal(t, int64(2), best.AgentID)
		assert.Equal(t, 25.0, best.Improvement)
		assert.Equal(t, 75.0, best.Current)
		assert.Equal(t, 50.0, best.Previous)
	})

	t.Run("needs sessions in both weeks", func(t *testing.T) {
		agents := []AgentHistory{
			{AgentID: 1, Sessions: []SessionScore{sessionAt(currentWeek, 95)}},
		}
		assert.Nil(t, MostImproved(agents, now))
	})

	t.Run("no positive gains means no winner", func(t *testing.T) {
		agents := []AgentHistory{
			{
				AgentID: 1,
				Sessions: []SessionScore{
					sessionAt(previousWeek, 80),
					sessionAt(currentWeek, 70),
				},
			},
		}
		assert.Nil(t, MostImproved(agents, now))
	})

	t.Run("weekend sessions fall outside the window", func(t *testing.T) {
		saturday := time.Date(2026, 8, 22, 0, 0, 0, 0, time.UTC)
		agents := []AgentHistory{
			{
				AgentID: 1,
				Sessions: []SessionScore{
					sessionAt(previousWeek, 60),
					sessionAt(saturday, 100),
				},
			},
		}
		assert.Nil(t, MostImproved(agents, now))
	})
}
