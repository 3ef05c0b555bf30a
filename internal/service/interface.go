package service

import (
	"context"

	"github.com/trustedhb/qc-server/internal/repository/models"
)

// SessionStore defines the session persistence operations the services need.
type SessionStore interface {
	List(ctx context.Context) ([]models.Session, error)
	ListByAgent(ctx context.Context, agentID int64) ([]models.Session, error)
	Get(ctx context.Context, id int64) (models.Session, error)
	Create(ctx context.Context, s models.Session) (int64, error)
	Update(ctx context.Context, s models.Session) error
	Delete(ctx context.Context, id int64) error
}

// AgentStore manages the agent and QC-agent rosters.
type AgentStore interface {
	ListAgents(ctx context.Context) ([]models.Agent, error)
	GetAgent(ctx context.Context, id int64) (models.Agent, error)
	CreateAgent(ctx context.Context, name string) (int64, error)
	ListQCAgents(ctx context.Context) ([]models.QCAgent, error)
	CreateQCAgent(ctx context.Context, name string) (int64, error)
}

// ArchiveStore moves sessions in and out of the archive.
type ArchiveStore interface {
	Archive(ctx context.Context, s models.Session) (string, error)
	List(ctx context.Context) ([]models.ArchivedSession, error)
	Restore(ctx context.Context, archiveID string) (int64, error)
}

// LibraryStore manages the objection/skill phrase libraries and the training
// example store.
type LibraryStore interface {
	ListObjections(ctx context.Context) ([]models.LibraryEntry, error)
	ListSkills(ctx context.Context) ([]models.LibraryEntry, error)
	AddObjection(ctx context.Context, text, category string) (int64, error)
	AddSkill(ctx context.Context, text, category string) (int64, error)
	BumpObjectionUsage(ctx context.Context, id int64) error
	BumpSkillUsage(ctx context.Context, id int64) error
	AddTrainingExample(ctx context.Context, ex models.TrainingExample) (int64, error)
	ListTrainingExamples(ctx context.Context) ([]models.TrainingExample, error)
}
