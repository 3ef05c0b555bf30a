package mocks

import (
	"context"
	"errors"

	"github.com/trustedhb/qc-server/internal/insight"
	"github.com/trustedhb/qc-server/internal/repository/models"
	"github.com/trustedhb/qc-server/internal/service"
)

// MockSessionService is a mock implementation of the SessionService interface
// for testing the handler layer.
type MockSessionService struct {
	ListSessionsFunc         func(ctx context.Context) ([]models.Session, error)
	GetSessionFunc           func(ctx context.Context, id int64) (models.Session, error)
	CreateSessionFunc        func(ctx context.Context, in service.SessionInput) (service.SessionResult, error)
	UpdateSessionFunc        func(ctx context.Context, id int64, in service.SessionInput) (models.Session, error)
	DeleteSessionFunc        func(ctx context.Context, id int64) error
	ArchiveSessionFunc       func(ctx context.Context, id int64) (string, error)
	ListArchivedSessionsFunc func(ctx context.Context) ([]models.ArchivedSession, error)
	RestoreSessionFunc       func(ctx context.Context, archiveID string) (models.Session, error)
	ListAgentsFunc           func(ctx context.Context) ([]models.Agent, error)
	CreateAgentFunc          func(ctx context.Context, name string) (models.Agent, error)
	ListQCAgentsFunc         func(ctx context.Context) ([]models.QCAgent, error)
	CreateQCAgentFunc        func(ctx context.Context, name string) (models.QCAgent, error)
	ListObjectionsFunc       func(ctx context.Context) ([]models.LibraryEntry, error)
	ListSkillsFunc           func(ctx context.Context) ([]models.LibraryEntry, error)
	AddObjectionFunc         func(ctx context.Context, text, category string) (models.LibraryEntry, error)
	AddSkillFunc             func(ctx context.Context, text, category string) (models.LibraryEntry, error)
	AddTrainingExampleFunc   func(ctx context.Context, ex models.TrainingExample) (models.TrainingExample, error)
	ListTrainingExamplesFunc func(ctx context.Context) ([]models.TrainingExample, error)
}

func (m *MockSessionService) ListSessions(ctx context.Context) ([]models.Session, error) {
	if m.ListSessionsFunc != nil {
		return m.ListSessionsFunc(ctx)
	}
	return nil, errors.New("ListSessionsFunc not implemented")
}

func (m *MockSessionService) GetSession(ctx context.Context, id int64) (models.Session, error) {
	if m.GetSessionFunc != nil {
		return m.GetSessionFunc(ctx, id)
	}
	return models.Session{}, errors.New("GetSessionFunc not implemented")
}

func (m *MockSessionService) CreateSession(ctx context.Context, in service.SessionInput) (service.SessionResult, error) {
	if m.CreateSessionFunc != nil {
		return m.CreateSessionFunc(ctx, in)
	}
	return service.SessionResult{}, errors.New("CreateSessionFunc not implemented")
}

func (m *MockSessionService) UpdateSession(ctx context.Context, id int64, in service.SessionInput) (models.Session, error) {
	if m.UpdateSessionFunc != nil {
		return m.UpdateSessionFunc(ctx, id, in)
	}
	return models.Session{}, errors.New("UpdateSessionFunc not implemented")
}

func (m *MockSessionService) DeleteSession(ctx context.Context, id int64) error {
	if m.DeleteSessionFunc != nil {
		return m.DeleteSessionFunc(ctx, id)
	}
	return errors.New("DeleteSessionFunc not implemented")
}

func (m *MockSessionService) ArchiveSession(ctx context.Context, id int64) (string, error) {
	if m.ArchiveSessionFunc != nil {
		return m.ArchiveSessionFunc(ctx, id)
	}
	return "", errors.New("ArchiveSessionFunc not implemented")
}

func (m *MockSessionService) ListArchivedSessions(ctx context.Context) ([]models.ArchivedSession, error) {
	if m.ListArchivedSessionsFunc != nil {
		return m.ListArchivedSessionsFunc(ctx)
	}
	return nil, errors.New("ListArchivedSessionsFunc not implemented")
}

func (m *MockSessionService) RestoreSession(ctx context.Context, archiveID string) (models.Session, error) {
	if m.RestoreSessionFunc != nil {
		return m.RestoreSessionFunc(ctx, archiveID)
	}
	return models.Session{}, errors.New("RestoreSessionFunc not implemented")
}

func (m *MockSessionService) ListAgents(ctx context.Context) ([]models.Agent, error) {
	if m.ListAgentsFunc != nil {
		return m.ListAgentsFunc(ctx)
	}
	return nil, errors.New("ListAgentsFunc not implemented")
}

func (m *MockSessionService) CreateAgent(ctx context.Context, name string) (models.Agent, error) {
	if m.CreateAgentFunc != nil {
		return m.CreateAgentFunc(ctx, name)
	}
	return models.Agent{}, errors.New("CreateAgentFunc not implemented")
}

func (m *MockSessionService) ListQCAgents(ctx context.Context) ([]models.QCAgent, error) {
	if m.ListQCAgentsFunc != nil {
		return m.ListQCAgentsFunc(ctx)
	}
	return nil, errors.New("ListQCAgentsFunc not implemented")
}

func (m *MockSessionService) CreateQCAgent(ctx context.Context, name string) (models.QCAgent, error) {
	if m.CreateQCAgentFunc != nil {
		return m.CreateQCAgentFunc(ctx, name)
	}
	return models.QCAgent{}, errors.New("CreateQCAgentFunc not implemented")
}

func (m *MockSessionService) ListObjections(ctx context.Context) ([]models.LibraryEntry, error) {
	if m.ListObjectionsFunc != nil {
		return m.ListObjectionsFunc(ctx)
	}
	return nil, errors.New("ListObjectionsFunc not implemented")
}

func (m *MockSessionService) ListSkills(ctx context.Context) ([]models.LibraryEntry, error) {
	if m.ListSkillsFunc != nil {
		return m.ListSkillsFunc(ctx)
	}
	return nil, errors.New("ListSkillsFunc not implemented")
}

func (m *MockSessionService) AddObjection(ctx context.Context, text, category string) (models.LibraryEntry, error) {
	if m.AddObjectionFunc != nil {
		return m.AddObjectionFunc(ctx, text, category)
	}
	return models.LibraryEntry{}, errors.New("AddObjectionFunc not implemented")
}

func (m *MockSessionService) AddSkill(ctx context.Context, text, category string) (models.LibraryEntry, error) {
	if m.AddSkillFunc != nil {
		return m.AddSkillFunc(ctx, text, category)
	}
	return models.LibraryEntry{}, errors.New("AddSkillFunc not implemented")
}

func (m *MockSessionService) AddTrainingExample(ctx context.Context, ex models.TrainingExample) (models.TrainingExample, error) {
	if m.AddTrainingExampleFunc != nil {
		return m.AddTrainingExampleFunc(ctx, ex)
	}
	return models.TrainingExample{}, errors.New("AddTrainingExampleFunc not implemented")
}

func (m *MockSessionService) ListTrainingExamples(ctx context.Context) ([]models.TrainingExample, error) {
	if m.ListTrainingExamplesFunc != nil {
		return m.ListTrainingExamplesFunc(ctx)
	}
	return nil, errors.New("ListTrainingExamplesFunc not implemented")
}

// MockAnalyticsService is a mock implementation of the AnalyticsService
// interface for testing the handler layer.
type MockAnalyticsService struct {
	DashboardFunc            func(ctx context.Context) (service.Dashboard, error)
	AgentReportFunc          func(ctx context.Context, agentID int64) (service.DashboardAgent, error)
	AgentInsightFunc         func(ctx context.Context, agentID int64) (service.AgentInsight, error)
	AgentCategoryInsightFunc func(ctx context.Context, agentID int64, categoryKey string) (insight.CategoryAnalysis, error)
	AgentSessionsFunc        func(ctx context.Context, agentID int64) ([]models.Session, error)
}

func (m *MockAnalyticsService) Dashboard(ctx context.Context) (service.Dashboard, error) {
	if m.DashboardFunc != nil {
		return m.DashboardFunc(ctx)
	}
	return service.Dashboard{}, errors.New("DashboardFunc not implemented")
}

func (m *MockAnalyticsService) AgentReport(ctx context.Context, agentID int64) (service.DashboardAgent, error) {
	if m.AgentReportFunc != nil {
		return m.AgentReportFunc(ctx, agentID)
	}
	return service.DashboardAgent{}, errors.New("AgentReportFunc not implemented")
}

func (m *MockAnalyticsService) AgentInsight(ctx context.Context, agentID int64) (service.AgentInsight, error) {
	if m.AgentInsightFunc != nil {
		return m.AgentInsightFunc(ctx, agentID)
	}
	return service.AgentInsight{}, errors.New("AgentInsightFunc not implemented")
}

func (m *MockAnalyticsService) AgentCategoryInsight(ctx context.Context, agentID int64, categoryKey string) (insight.CategoryAnalysis, error) {
	if m.AgentCategoryInsightFunc != nil {
		return m.AgentCategoryInsightFunc(ctx, agentID, categoryKey)
	}
	return insight.CategoryAnalysis{}, errors.New("AgentCategoryInsightFunc not implemented")
}

func (m *MockAnalyticsService) AgentSessions(ctx context.Context, agentID int64) ([]models.Session, error) {
	if m.AgentSessionsFunc != nil {
		return m.AgentSessionsFunc(ctx, agentID)
	}
	return nil, errors.New("AgentSessionsFunc not implemented")
}
