package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/trustedhb/qc-server/internal/repository"
	"github.com/trustedhb/qc-server/internal/repository/models"
	"github.com/trustedhb/qc-server/internal/service/mocks"
)

func bondingSession(agentID int64, date time.Time, rating int, overall float64, lead string) models.Session {
	return models.Session{
		AgentID:      agentID,
		CallDate:     date,
		LeadStatus:   lead,
		OverallScore: overall,
		Categories: models.CategoryScores{
			BondingRapport:        intPtr(rating),
			BondingRapportComment: "Kept the seller talking comfortably through the open.",
		},
	}
}

func TestNewAnalyticsService(t *testing.T) {
	t.Run("nil storage panics", func(t *testing.T) {
		assert.Panics(t, func() {
			NewAnalyticsService(nil, &mocks.MockAgentStore{}, zap.NewNop())
		})
	})
}

func TestDashboard(t *testing.T) {
	ctx := context.Background()
	// Thursday; the business week runs Monday the 17th through Saturday.
	now := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	day := func(d int) time.Time {
		return time.Date(2026, 8, d, 0, 0, 0, 0, time.UTC)
	}

	agents := &mocks.MockAgentStore{
		ListAgentsFunc: func(ctx context.Context) ([]models.Agent, error) {
			return []models.Agent{
				{ID: 1, Name: "Ana"},
				{ID: 2, Name: "Bo"},
				{ID: 3, Name: "Cam"},
			}, nil
		},
	}
	sessions := &mocks.MockSessionStore{
		ListFunc: func(ctx context.Context) ([]models.Session, error) {
			return []models.Session{
				bondingSession(1, day(17), 4, 80, "Active"),
				bondingSession(2, day(18), 2, 40, "Pending"),
				bondingSession(1, day(19), 4, 80, "Active"),
			}, nil
		},
	}

	svc := NewAnalyticsService(sessions, agents, zap.NewNop())
	svc.now = func() time.Time { return now }

	dashboard, err := svc.Dashboard(ctx)
	require.NoError(t, err)

	t.Run("one card per roster agent", func(t *testing.T) {
		require.Len(t, dashboard.Agents, 3)

		ana := dashboard.Agents[0]
		assert.Equal(t, "Ana", ana.Name)
		assert.Equal(t, 80.0, ana.OverallScore)
		assert.Equal(t, 80.0, ana.CategoryScores["bonding_rapport"])
		assert.Equal(t, "green", ana.Status)
		assert.Equal(t, day(19), ana.LastEvaluation)
		assert.Equal(t, 2, ana.SessionCount)
		assert.Equal(t, map[string]int{"Active": 2}, ana.LeadStatusCounts)

		bo := dashboard.Agents[1]
		assert.Equal(t, 40.0, bo.OverallScore)
		assert.Equal(t, "red", bo.Status)
	})

	t.Run("unevaluated agents still get a card", func(t *testing.T) {
		cam := dashboard.Agents[2]
		assert.Equal(t, "Cam", cam.Name)
		assert.Zero(t, cam.OverallScore)
		assert.Equal(t, "red", cam.Status)
		assert.Zero(t, cam.SessionCount)
	})

	t.Run("lead status counts", func(t *testing.T) {
		assert.Equal(t, 3, dashboard.SessionCount)
		assert.Equal(t, 2, dashboard.LeadStatusCounts["Active"])
		assert.Equal(t, 1, dashboard.LeadStatusCounts["Pending"])
	})

	t.Run("team metrics skip the unevaluated agent", func(t *testing.T) {
		// (80 + 40) / 2, Cam contributes nothing.
		assert.Equal(t, 60.0, dashboard.Team.TeamAverage)
	})

	t.Run("greatest strength pools every session", func(t *testing.T) {
		require.NotNil(t, dashboard.Team.GreatestStrength)
		assert.Equal(t, "Bonding & Rapport", dashboard.Team.GreatestStrength.Category)
		// mean of 4, 2, 4 on the 1-5 scale.
		assert.InDelta(t, 66.7, dashboard.Team.GreatestStrength.Score, 0.01)
	})

	t.Run("top rep this week", func(t *testing.T) {
		require.NotNil(t, dashboard.Team.TopRepThisWeek)
		assert.Equal(t, "Ana", dashboard.Team.TopRepThisWeek.Name)
		assert.Equal(t, 80.0, dashboard.Team.TopRepThisWeek.Score)
		assert.Equal(t, 2, dashboard.Team.TopRepThisWeek.SessionCount)
	})

	t.Run("no previous-week data means no most improved", func(t *testing.T) {
		assert.Nil(t, dashboard.Team.MostImproved)
	})
}

func TestDashboardStorageFailure(t *testing.T) {
	agents := &mocks.MockAgentStore{}

	svc := NewAnalyticsService(&mocks.MockSessionStore{}, agents, zap.NewNop())
	_, err := svc.Dashboard(context.Background())
	assert.ErrorIs(t, err, ErrStorageFailure)
}

func TestAgentInsight(t *testing.T) {
	ctx := context.Background()
	day := func(d int) time.Time {
		return time.Date(2026, 8, d, 0, 0, 0, 0, time.UTC)
	}

	t.Run("covers every category and generates a comment", func(t *testing.T) {
		agents := &mocks.MockAgentStore{
			GetAgentFunc: func(ctx context.Context, id int64) (models.Agent, error) {
				return models.Agent{ID: id, Name: "Ana"}, nil
			},
		}
		sessions := &mocks.MockSessionStore{
			ListByAgentFunc: func(ctx context.Context, agentID int64) ([]models.Session, error) {
				return []models.Session{
					bondingSession(agentID, day(17), 4, 80, "Active"),
					bondingSession(agentID, day(19), 4, 80, "Active"),
				}, nil
			},
		}

		svc := NewAnalyticsService(sessions, agents, zap.NewNop())
		result, err := svc.AgentInsight(ctx, 1)
		require.NoError(t, err)

		assert.Equal(t, "Ana", result.AgentName)
		assert.Equal(t, 80.0, result.OverallScore)
		assert.Equal(t, "green", result.Status)
		assert.Equal(t, 2, result.SessionCount)
		require.Len(t, result.Categories, 5)
		assert.Equal(t, "Bonding & Rapport", result.Categories[0].CategoryName)
		assert.True(t, result.Categories[0].HasData)
		assert.False(t, result.Categories[4].HasData)
		assert.Contains(t, result.OverallComment, "Ana")
	})

	t.Run("unknown agent", func(t *testing.T) {
		agents := &mocks.MockAgentStore{
			GetAgentFunc: func(ctx context.Context, id int64) (models.Agent, error) {
				return models.Agent{}, repository.ErrNotFound
			},
		}

		svc := NewAnalyticsService(&mocks.MockSessionStore{}, agents, zap.NewNop())
		_, err := svc.AgentInsight(ctx, 99)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestAgentCategoryInsight(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown category key", func(t *testing.T) {
		svc := NewAnalyticsService(&mocks.MockSessionStore{}, &mocks.MockAgentStore{}, zap.NewNop())

		_, err := svc.AgentCategoryInsight(ctx, 1, "charisma")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("valid key analyzes that category's history", func(t *testing.T) {
		day := time.Date(2026, 8, 19, 0, 0, 0, 0, time.UTC)
		agents := &mocks.MockAgentStore{
			GetAgentFunc: func(ctx context.Context, id int64) (models.Agent, error) {
				return models.Agent{ID: id, Name: "Ana"}, nil
			},
		}
		sessions := &mocks.MockSessionStore{
			ListByAgentFunc: func(ctx context.Context, agentID int64) ([]models.Session, error) {
				return []models.Session{bondingSession(agentID, day, 5, 90, "Active")}, nil
			},
		}

		svc := NewAnalyticsService(sessions, agents, zap.NewNop())
		analysis, err := svc.AgentCategoryInsight(ctx, 1, "bonding_rapport")
		require.NoError(t, err)

		assert.True(t, analysis.HasData)
		assert.Equal(t, 100.0, analysis.Score)
		assert.Equal(t, 1, analysis.SessionCount)
	})
}

func TestAgentSessions(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown agent", func(t *testing.T) {
		agents := &mocks.MockAgentStore{
			GetAgentFunc: func(ctx context.Context, id int64) (models.Agent, error) {
				return models.Agent{}, repository.ErrNotFound
			},
		}

		svc := NewAnalyticsService(&mocks.MockSessionStore{}, agents, zap.NewNop())
		_, err := svc.AgentSessions(ctx, 99)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("returns the store's chronological list", func(t *testing.T) {
		day := time.Date(2026, 8, 19, 0, 0, 0, 0, time.UTC)
		agents := &mocks.MockAgentStore{
			GetAgentFunc: func(ctx context.Context, id int64) (models.Agent, error) {
				return models.Agent{ID: id, Name: "Ana"}, nil
			},
		}
		sessions := &mocks.MockSessionStore{
			ListByAgentFunc: func(ctx context.Context, agentID int64) ([]models.Session, error) {
				return []models.Session{
					bondingSession(agentID, day.AddDate(0, 0, -1), 3, 60, "Active"),
					bondingSession(agentID, day, 4, 80, "Active"),
				}, nil
			},
		}

		svc := NewAnalyticsService(sessions, agents, zap.NewNop())
		got, err := svc.AgentSessions(ctx, 1)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.True(t, got[0].CallDate.Before(got[1].CallDate))
	})
}
