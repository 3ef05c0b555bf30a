package mocks

import (
	"context"
	"errors"

	"github.com/trustedhb/qc-server/internal/repository/models"
)

// MockSessionStore is a mock implementation of the SessionStore interface
// for testing the service layer.
type MockSessionStore struct {
	ListFunc        func(ctx context.Context) ([]models.Session, error)
	ListByAgentFunc func(ctx context.Context, agentID int64) ([]models.Session, error)
	GetFunc         func(ctx context.Context, id int64) (models.Session, error)
	CreateFunc      func(ctx context.Context, s models.Session) (int64, error)
	UpdateFunc      func(ctx context.Context, s models.Session) error
	DeleteFunc      func(ctx context.Context, id int64) error
}

func (m *MockSessionStore) List(ctx context.Context) ([]models.Session, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, errors.New("ListFunc not implemented")
}

func (m *MockSessionStore) ListByAgent(ctx context.Context, agentID int64) ([]models.Session, error) {
	if m.ListByAgentFunc != nil {
		return m.ListByAgentFunc(ctx, agentID)
	}
	return nil, errors.New("ListByAgentFunc not implemented")
}

func (m *MockSessionStore) Get(ctx context.Context, id int64) (models.Session, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	return models.Session{}, errors.New("GetFunc not implemented")
}

func (m *MockSessionStore) Create(ctx context.Context, s models.Session) (int64, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, s)
	}
	return 0, errors.New("CreateFunc not implemented")
}

func (m *MockSessionStore) Update(ctx context.Context, s models.Session) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, s)
	}
	return errors.New("UpdateFunc not implemented")
}

func (m *MockSessionStore) Delete(ctx context.Context, id int64) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return errors.New("DeleteFunc not implemented")
}

// MockAgentStore is a mock implementation of the AgentStore interface.
type MockAgentStore struct {
	ListAgentsFunc    func(ctx context.Context) ([]models.Agent, error)
	GetAgentFunc      func(ctx context.Context, id int64) (models.Agent, error)
	CreateAgentFunc   func(ctx context.Context, name string) (int64, error)
	ListQCAgentsFunc  func(ctx context.Context) ([]models.QCAgent, error)
	CreateQCAgentFunc func(ctx context.Context, name string) (int64, error)
}

func (m *MockAgentStore) ListAgents(ctx context.Context) ([]models.Agent, error) {
	if m.ListAgentsFunc != nil {
		return m.ListAgentsFunc(ctx)
	}
	return nil, errors.New("ListAgentsFunc not implemented")
}

func (m *MockAgentStore) GetAgent(ctx context.Context, id int64) (models.Agent, error) {
	if m.GetAgentFunc != nil {
		return m.GetAgentFunc(ctx, id)
	}
	return models.Agent{}, errors.New("GetAgentFunc not implemented")
}

func (m *MockAgentStore) CreateAgent(ctx context.Context, name string) (int64, error) {
	if m.CreateAgentFunc != nil {
		return m.CreateAgentFunc(ctx, name)
	}
	return 0, errors.New("CreateAgentFunc not implemented")
}

func (m *MockAgentStore) ListQCAgents(ctx context.Context) ([]models.QCAgent, error) {
	if m.ListQCAgentsFunc != nil {
		return m.ListQCAgentsFunc(ctx)
	}
	return nil, errors.New("ListQCAgentsFunc not implemented")
}

func (m *MockAgentStore) CreateQCAgent(ctx context.Context, name string) (int64, error) {
	if m.CreateQCAgentFunc != nil {
		return m.CreateQCAgentFunc(ctx, name)
	}
	return 0, errors.New("CreateQCAgentFunc not implemented")
}

// MockArchiveStore is a mock implementation of the ArchiveStore interface.
type MockArchiveStore struct {
	ArchiveFunc func(ctx context.Context, s models.Session) (string, error)
	ListFunc    func(ctx context.Context) ([]models.ArchivedSession, error)
	RestoreFunc func(ctx context.Context, archiveID string) (int64, error)
}

func (m *MockArchiveStore) Archive(ctx context.Context, s models.Session) (string, error) {
	if m.ArchiveFunc != nil {
		return m.ArchiveFunc(ctx, s)
	}
	return "", errors.New("ArchiveFunc not implemented")
}

func (m *MockArchiveStore) List(ctx context.Context) ([]models.ArchivedSession, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, errors.New("ListFunc not implemented")
}

func (m *MockArchiveStore) Restore(ctx context.Context, archiveID string) (int64, error) {
	if m.RestoreFunc != nil {
		return m.RestoreFunc(ctx, archiveID)
	}
	return 0, errors.New("RestoreFunc not implemented")
}

// MockLibraryStore is a mock implementation of the LibraryStore interface.
type MockLibraryStore struct {
	ListObjectionsFunc       func(ctx context.Context) ([]models.LibraryEntry, error)
	ListSkillsFunc           func(ctx context.Context) ([]models.LibraryEntry, error)
	AddObjectionFunc         func(ctx context.Context, text, category string) (int64, error)
	AddSkillFunc             func(ctx context.Context, text, category string) (int64, error)
	BumpObjectionUsageFunc   func(ctx context.Context, id int64) error
	BumpSkillUsageFunc       func(ctx context.Context, id int64) error
	AddTrainingExampleFunc   func(ctx context.Context, ex models.TrainingExample) (int64, error)
	ListTrainingExamplesFunc func(ctx context.Context) ([]models.TrainingExample, error)
}

func (m *MockLibraryStore) ListObjections(ctx context.Context) ([]models.LibraryEntry, error) {
	if m.ListObjectionsFunc != nil {
		return m.ListObjectionsFunc(ctx)
	}
	return nil, errors.New("ListObjectionsFunc not implemented")
}

func (m *MockLibraryStore) ListSkills(ctx context.Context) ([]models.LibraryEntry, error) {
	if m.ListSkillsFunc != nil {
		return m.ListSkillsFunc(ctx)
	}
	return nil, errors.New("ListSkillsFunc not implemented")
}

func (m *MockLibraryStore) AddObjection(ctx context.Context, text, category string) (int64, error) {
	if m.AddObjectionFunc != nil {
		return m.AddObjectionFunc(ctx, text, category)
	}
	return 0, errors.New("AddObjectionFunc not implemented")
}

func (m *MockLibraryStore) AddSkill(ctx context.Context, text, category string) (int64, error) {
	if m.AddSkillFunc != nil {
		return m.AddSkillFunc(ctx, text, category)
	}
	return 0, errors.New("AddSkillFunc not implemented")
}

func (m *MockLibraryStore) BumpObjectionUsage(ctx context.Context, id int64) error {
	if m.BumpObjectionUsageFunc != nil {
		return m.BumpObjectionUsageFunc(ctx, id)
	}
	return nil
}

func (m *MockLibraryStore) BumpSkillUsage(ctx context.Context, id int64) error {
	if m.BumpSkillUsageFunc != nil {
		return m.BumpSkillUsageFunc(ctx, id)
	}
	return nil
}

func (m *MockLibraryStore) AddTrainingExample(ctx context.Context, ex models.TrainingExample) (int64, error) {
	if m.AddTrainingExampleFunc != nil {
		return m.AddTrainingExampleFunc(ctx, ex)
	}
	return 0, errors.New("AddTrainingExampleFunc not implemented")
}

func (m *MockLibraryStore) ListTrainingExamples(ctx context.Context) ([]models.TrainingExample, error) {
	if m.ListTrainingExamplesFunc != nil {
		return m.ListTrainingExamplesFunc(ctx)
	}
	return nil, errors.New("ListTrainingExamplesFunc not implemented")
}
