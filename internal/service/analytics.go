package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/trustedhb/qc-server/internal/insight"
	"github.com/trustedhb/qc-server/internal/repository/models"
	"github.com/trustedhb/qc-server/internal/scoring"
)

// AnalyticsService handles the read path: dashboard rollups, team metrics,
// and the per-agent deep dive. Everything is recomputed from raw sessions on
// every call; nothing aggregated is persisted.
type AnalyticsService struct {
	sessions SessionStore
	agents   AgentStore
	analyzer *insight.Analyzer
	logger   *zap.Logger
	now      func() time.Time
}

// NewAnalyticsService creates a new AnalyticsService instance.
func NewAnalyticsService(sessions SessionStore, agents AgentStore, logger *zap.Logger) *AnalyticsService {
	if sessions == nil || agents == nil {
		panic("storage must not be nil")
	}
	if logger == nil {
		l, _ := zap.NewProduction()
		logger = l
	}
	return &AnalyticsService{
		sessions: sessions,
		agents:   agents,
		analyzer: insight.NewAnalyzer(nil),
		logger:   logger,
		now:      time.Now,
	}
}

// Dashboard recomputes the full dashboard: one rollup card per roster agent,
// the team summary strip, and the lead-status counts.
func (s *AnalyticsService) Dashboard(ctx context.Context) (Dashboard, error) {
	dbCtx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	roster, err := s.agents.ListAgents(dbCtx)
	if err != nil {
		return Dashboard{}, wrapStoreErr(err)
	}
	sessions, err := s.sessions.List(dbCtx)
	if err != nil {
		return Dashboard{}, wrapStoreErr(err)
	}

	byAgent := make(map[int64][]models.Session)
	for _, sess := range sessions {
		byAgent[sess.AgentID] = append(byAgent[sess.AgentID], sess)
	}

	dashboard := Dashboard{
		Agents:           make([]DashboardAgent, 0, len(roster)),
		LeadStatusCounts: leadStatusCounts(sessions),
		SessionCount:     len(sessions),
	}

	var rollups []scoring.AgentRollup
	var histories []scoring.AgentHistory
	for _, agent := range roster {
		scores := sessionScores(byAgent[agent.ID])
		rollup := scoring.ComputeAgentRollup(scores)

		card := DashboardAgent{
			AgentID:          agent.ID,
			Name:             agent.Name,
			OverallScore:     rollup.OverallScore,
			CategoryScores:   make(map[string]float64, len(rollup.CategoryPct)),
			Status:           rollup.Status,
			LastEvaluation:   rollup.LastEvaluation,
			SessionCount:     rollup.SessionCount,
			LeadStatusCounts: leadStatusCounts(byAgent[agent.ID]),
		}
		for cat, pct := range rollup.CategoryPct {
			card.CategoryScores[cat.Key()] = pct
		}
		dashboard.Agents = append(dashboard.Agents, card)

		if len(scores) > 0 {
			rollups = append(rollups, rollup)
			histories = append(histories, scoring.AgentHistory{
				AgentID:  agent.ID,
				Name:     agent.Name,
				Sessions: scores,
			})
		}
	}

	dashboard.Team = s.teamMetrics(rollups, histories, sessionScores(sessions))

	s.logger.Debug("dashboard computed",
		zap.Int("agents", len(roster)),
		zap.Int("sessions", len(sessions)))

	return dashboard, nil
}

func leadStatusCounts(sessions []models.Session) map[string]int {
	counts := make(map[string]int)
	for _, s := range sessions {
		counts[s.LeadStatus]++
	}
	return counts
}

func (s *AnalyticsService) teamMetrics(rollups []scoring.AgentRollup, histories []scoring.AgentHistory, all []scoring.SessionScore) TeamMetrics {
	metrics := TeamMetrics{
		TeamAverage: scoring.TeamAverage(rollups),
	}
	if len(all) > 0 {
		cat, score := scoring.TeamGreatestStrength(all)
		if score > 0 {
			metrics.GreatestStrength = &TeamStrength{Category: cat.DisplayName(), Score: score}
		}
	}
	now := s.now()
	if top := scoring.TopRepThisWeek(histories, now); top != nil {
		metrics.TopRepThisWeek = &TopRep{
			AgentID:      top.AgentID,
			Name:         top.Name,
			Score:        top.Score,
			SessionCount: top.SessionCount,
		}
	}
	if improved := scoring.MostImproved(histories, now); improved != nil {
		metrics.MostImproved = &MostImproved{
			AgentID:     improved.AgentID,
			Name:        improved.Name,
			Improvement: improved.Improvement,
			Current:     improved.Current,
			Previous:    improved.Previous,
		}
	}
	return metrics
}

// AgentInsight runs the full deep dive for one agent: every category's
// analysis plus the generated overall comment.
func (s *AnalyticsService) AgentInsight(ctx context.Context, agentID int64) (AgentInsight, error) {
	dbCtx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	agent, err := s.agents.GetAgent(dbCtx, agentID)
	if err != nil {
		return AgentInsight{}, wrapStoreErr(err)
	}
	sessions, err := s.sessions.ListByAgent(dbCtx, agentID)
	if err != nil {
		return AgentInsight{}, wrapStoreErr(err)
	}

	rollup := scoring.ComputeAgentRollup(sessionScores(sessions))

	analyses := make([]insight.CategoryAnalysis, 0, len(insightCategories))
	for _, cat := range insightCategories {
		analyses = append(analyses, s.analyzer.AnalyzeCategory(cat, categoryHistory(sessions, cat)))
	}

	result := AgentInsight{
		AgentID:        agent.ID,
		AgentName:      agent.Name,
		OverallScore:   rollup.OverallScore,
		Status:         rollup.Status,
		SessionCount:   len(sessions),
		Categories:     analyses,
		OverallComment: insight.GenerateOverallComment(agent.Name, rollup.OverallScore, analyses),
	}

	s.logger.Debug("agent insight computed",
		zap.Int64("agent_id", agentID),
		zap.Int("sessions", len(sessions)))

	return result, nil
}

// AgentReport recomputes the rollup card for one agent.
func (s *AnalyticsService) AgentReport(ctx context.Context, agentID int64) (DashboardAgent, error) {
	dbCtx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	agent, err := s.agents.GetAgent(dbCtx, agentID)
	if err != nil {
		return DashboardAgent{}, wrapStoreErr(err)
	}
	sessions, err := s.sessions.ListByAgent(dbCtx, agentID)
	if err != nil {
		return DashboardAgent{}, wrapStoreErr(err)
	}

	rollup := scoring.ComputeAgentRollup(sessionScores(sessions))
	card := DashboardAgent{
		AgentID:          agent.ID,
		Name:             agent.Name,
		OverallScore:     rollup.OverallScore,
		CategoryScores:   make(map[string]float64, len(rollup.CategoryPct)),
		Status:           rollup.Status,
		LastEvaluation:   rollup.LastEvaluation,
		SessionCount:     rollup.SessionCount,
		LeadStatusCounts: leadStatusCounts(sessions),
	}
	for cat, pct := range rollup.CategoryPct {
		card.CategoryScores[cat.Key()] = pct
	}
	return card, nil
}

// AgentCategoryInsight runs the deep dive for a single category, addressed by
// its rating-column key.
func (s *AnalyticsService) AgentCategoryInsight(ctx context.Context, agentID int64, categoryKey string) (insight.CategoryAnalysis, error) {
	cat, ok := scoring.CategoryByKey(categoryKey)
	if !ok {
		return insight.CategoryAnalysis{}, fmt.Errorf("category %q: %w", categoryKey, ErrNotFound)
	}

	dbCtx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	if _, err := s.agents.GetAgent(dbCtx, agentID); err != nil {
		return insight.CategoryAnalysis{}, wrapStoreErr(err)
	}
	sessions, err := s.sessions.ListByAgent(dbCtx, agentID)
	if err != nil {
		return insight.CategoryAnalysis{}, wrapStoreErr(err)
	}
	return s.analyzer.AnalyzeCategory(cat, categoryHistory(sessions, cat)), nil
}

// AgentSessions returns one agent's sessions in chronological order.
func (s *AnalyticsService) AgentSessions(ctx context.Context, agentID int64) ([]models.Session, error) {
	dbCtx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	if _, err := s.agents.GetAgent(dbCtx, agentID); err != nil {
		return nil, wrapStoreErr(err)
	}
	sessions, err := s.sessions.ListByAgent(dbCtx, agentID)
	if err != nil {
		return nil, wrapStoreErr(err)
	}
	return sessions, nil
}
