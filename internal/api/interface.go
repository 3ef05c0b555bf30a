package api

import (
	"context"
	"time"

	"github.com/trustedhb/qc-server/internal/insight"
	"github.com/trustedhb/qc-server/internal/repository/models"
	"github.com/trustedhb/qc-server/internal/service"
)

// Cacher defines the interface for cache operations.
type Cacher interface {
	Close() error
	Get(ctx context.Context, key string, dest any) error
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

// SessionService is the write-path surface the handlers depend on.
type SessionService interface {
	ListSessions(ctx context.Context) ([]models.Session, error)
	GetSession(ctx context.Context, id int64) (models.Session, error)
	CreateSession(ctx context.Context, in service.SessionInput) (service.SessionResult, error)
	UpdateSession(ctx context.Context, id int64, in service.SessionInput) (models.Session, error)
	DeleteSession(ctx context.Context, id int64) error
	ArchiveSession(ctx context.Context, id int64) (string, error)
	ListArchivedSessions(ctx context.Context) ([]models.ArchivedSession, error)
	RestoreSession(ctx context.Context, archiveID string) (models.Session, error)
	ListAgents(ctx context.Context) ([]models.Agent, error)
	CreateAgent(ctx context.Context, name string) (models.Agent, error)
	ListQCAgents(ctx context.Context) ([]models.QCAgent, error)
	CreateQCAgent(ctx context.Context, name string) (models.QCAgent, error)
	ListObjections(ctx context.Context) ([]models.LibraryEntry, error)
	ListSkills(ctx context.Context) ([]models.LibraryEntry, error)
	AddObjection(ctx context.Context, text, category string) (models.LibraryEntry, error)
	AddSkill(ctx context.Context, text, category string) (models.LibraryEntry, error)
	AddTrainingExample(ctx context.Context, ex models.TrainingExample) (models.TrainingExample, error)
	ListTrainingExamples(ctx context.Context) ([]models.TrainingExample, error)
}

// AnalyticsService is the read-path surface the handlers depend on.
type AnalyticsService interface {
	Dashboard(ctx context.Context) (service.Dashboard, error)
	AgentReport(ctx context.Context, agentID int64) (service.DashboardAgent, error)
	AgentInsight(ctx context.Context, agentID int64) (service.AgentInsight, error)
	AgentCategoryInsight(ctx context.Context, agentID int64, categoryKey string) (insight.CategoryAnalysis, error)
	AgentSessions(ctx context.Context, agentID int64) ([]models.Session, error)
}
