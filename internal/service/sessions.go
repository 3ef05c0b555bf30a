package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/trustedhb/qc-server/internal/insight"
	"github.com/trustedhb/qc-server/internal/repository"
	"github.com/trustedhb/qc-server/internal/repository/models"
	"github.com/trustedhb/qc-server/internal/scoring"
)

const (
	dbTimeout = 2 * time.Second
)

var (
	ErrNoSessions     = errors.New("no sessions found")
	ErrNotFound       = errors.New("not found")
	ErrStorageFailure = errors.New("storage failure")
)

// wrapStoreErr maps repository errors onto the service sentinels.
func wrapStoreErr(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	return fmt.Errorf("%w: %v", ErrStorageFailure, err)
}

// SessionService handles the scoring-form write path: session CRUD, archive
// and restore, the roster, and the phrase libraries.
type SessionService struct {
	sessions SessionStore
	agents   AgentStore
	archive  ArchiveStore
	library  LibraryStore
	logger   *zap.Logger
}

// NewSessionService creates a new SessionService instance.
func NewSessionService(sessions SessionStore, agents AgentStore, archive ArchiveStore, library LibraryStore, logger *zap.Logger) *SessionService {
	if sessions == nil || agents == nil || archive == nil || library == nil {
		panic("storage must not be nil")
	}
	if logger == nil {
		l, _ := zap.NewProduction()
		logger = l
	}
	return &SessionService{
		sessions: sessions,
		agents:   agents,
		archive:  archive,
		library:  library,
		logger:   logger,
	}
}

// ListSessions returns every session in chronological order.
func (s *SessionService) ListSessions(ctx context.Context) ([]models.Session, error) {
	dbCtx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	sessions, err := s.sessions.List(dbCtx)
	if err != nil {
		return nil, wrapStoreErr(err)
	}
	return sessions, nil
}

// GetSession returns one session by id.
func (s *SessionService) GetSession(ctx context.Context, id int64) (models.Session, error) {
	dbCtx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	session, err := s.sessions.Get(dbCtx, id)
	if err != nil {
		return models.Session{}, wrapStoreErr(err)
	}
	return session, nil
}

// CreateSession scores the form submission, persists it, and bumps the usage
// counters of the library phrases used. Standout category performances come
// back as training candidates for the scorer to confirm.
func (s *SessionService) CreateSession(ctx context.Context, in SessionInput) (SessionResult, error) {
	dbCtx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	session := sessionFromInput(in)
	session.OverallScore = scoring.ComputeOverallScore(sessionBinary(in.Binary), sessionRatings(in.Categories))

	id, err := s.sessions.Create(dbCtx, session)
	if err != nil {
		return SessionResult{}, wrapStoreErr(err)
	}

	s.bumpLibraryUsage(ctx, in)

	s.logger.Info("session created",
		zap.Int64("session_id", id),
		zap.Int64("agent_id", session.AgentID),
		zap.Float64("overall_score", session.OverallScore))

	stored, err := s.GetSession(ctx, id)
	if err != nil {
		return SessionResult{}, err
	}
	return SessionResult{
		Session:            stored,
		TrainingCandidates: insight.TrainingCandidates(scoredCategories(stored.Categories)),
	}, nil
}

// UpdateSession applies the edited form and recomputes the overall score from
// the stored raw answers, so edits can never leave a stale cached score.
func (s *SessionService) UpdateSession(ctx context.Context, id int64, in SessionInput) (models.Session, error) {
	dbCtx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	existing, err := s.sessions.Get(dbCtx, id)
	if err != nil {
		return models.Session{}, wrapStoreErr(err)
	}

	session := sessionFromInput(in)
	session.ID = existing.ID
	session.AgentID = existing.AgentID
	session.QCAgentID = existing.QCAgentID
	session.SessionDate = existing.SessionDate
	session.OverallScore = scoring.ComputeOverallScore(sessionBinary(in.Binary), sessionRatings(in.Categories))

	if err := s.sessions.Update(dbCtx, session); err != nil {
		return models.Session{}, wrapStoreErr(err)
	}

	s.logger.Info("session updated",
		zap.Int64("session_id", id),
		zap.Float64("overall_score", session.OverallScore))

	return s.GetSession(ctx, id)
}

// DeleteSession permanently removes a session.
func (s *SessionService) DeleteSession(ctx context.Context, id int64) error {
	dbCtx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	if err := s.sessions.Delete(dbCtx, id); err != nil {
		return wrapStoreErr(err)
	}
	s.logger.Info("session deleted", zap.Int64("session_id", id))
	return nil
}

// ArchiveSession freezes a session into the archive and removes it from the
// live tables. Returns the archive id.
func (s *SessionService) ArchiveSession(ctx context.Context, id int64) (string, error) {
	dbCtx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	session, err := s.sessions.Get(dbCtx, id)
	if err != nil {
		return "", wrapStoreErr(err)
	}
	archiveID, err := s.archive.Archive(dbCtx, session)
	if err != nil {
		return "", wrapStoreErr(err)
	}
	s.logger.Info("session archived",
		zap.Int64("session_id", id),
		zap.String("archive_id", archiveID))
	return archiveID, nil
}

// ListArchivedSessions returns the archive, most recent first.
func (s *SessionService) ListArchivedSessions(ctx context.Context) ([]models.ArchivedSession, error) {
	dbCtx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	archived, err := s.archive.List(dbCtx)
	if err != nil {
		return nil, wrapStoreErr(err)
	}
	return archived, nil
}

// RestoreSession moves an archived session back to the live tables under a
// new session id.
func (s *SessionService) RestoreSession(ctx context.Context, archiveID string) (models.Session, error) {
	dbCtx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	id, err := s.archive.Restore(dbCtx, archiveID)
	if err != nil {
		return models.Session{}, wrapStoreErr(err)
	}
	s.logger.Info("session restored",
		zap.String("archive_id", archiveID),
		zap.Int64("session_id", id))
	return s.GetSession(ctx, id)
}

// ListAgents returns the rep roster.
func (s *SessionService) ListAgents(ctx context.Context) ([]models.Agent, error) {
	dbCtx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	agents, err := s.agents.ListAgents(dbCtx)
	if err != nil {
		return nil, wrapStoreErr(err)
	}
	return agents, nil
}

// CreateAgent adds a rep to the roster.
func (s *SessionService) CreateAgent(ctx context.Context, name string) (models.Agent, error) {
	dbCtx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	id, err := s.agents.CreateAgent(dbCtx, name)
	if err != nil {
		return models.Agent{}, wrapStoreErr(err)
	}
	return models.Agent{ID: id, Name: name}, nil
}

// ListQCAgents returns the scorer roster.
func (s *SessionService) ListQCAgents(ctx context.Context) ([]models.QCAgent, error) {
	dbCtx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	agents, err := s.agents.ListQCAgents(dbCtx)
	if err != nil {
		return nil, wrapStoreErr(err)
	}
	return agents, nil
}

// CreateQCAgent adds a scorer to the roster.
func (s *SessionService) CreateQCAgent(ctx context.Context, name string) (models.QCAgent, error) {
	dbCtx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	id, err := s.agents.CreateQCAgent(dbCtx, name)
	if err != nil {
		return models.QCAgent{}, wrapStoreErr(err)
	}
	return models.QCAgent{ID: id, Name: name}, nil
}

// ListObjections returns the objection phrase library, most used first.
func (s *SessionService) ListObjections(ctx context.Context) ([]models.LibraryEntry, error) {
	dbCtx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	entries, err := s.library.ListObjections(dbCtx)
	if err != nil {
		return nil, wrapStoreErr(err)
	}
	return entries, nil
}

// ListSkills returns the skill phrase library, most used first.
func (s *SessionService) ListSkills(ctx context.Context) ([]models.LibraryEntry, error) {
	dbCtx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	entries, err := s.library.ListSkills(dbCtx)
	if err != nil {
		return nil, wrapStoreErr(err)
	}
	return entries, nil
}

// AddObjection adds a phrase to the objection library.
func (s *SessionService) AddObjection(ctx context.Context, text, category string) (models.LibraryEntry, error) {
	dbCtx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	id, err := s.library.AddObjection(dbCtx, text, category)
	if err != nil {
		return models.LibraryEntry{}, wrapStoreErr(err)
	}
	return models.LibraryEntry{ID: id, Text: text, Category: category}, nil
}

// AddSkill adds a phrase to the skill library.
func (s *SessionService) AddSkill(ctx context.Context, text, category string) (models.LibraryEntry, error) {
	dbCtx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	id, err := s.library.AddSkill(dbCtx, text, category)
	if err != nil {
		return models.LibraryEntry{}, wrapStoreErr(err)
	}
	return models.LibraryEntry{ID: id, Text: text, Category: category}, nil
}

// ListTrainingExamples returns the saved training library.
func (s *SessionService) ListTrainingExamples(ctx context.Context) ([]models.TrainingExample, error) {
	dbCtx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	examples, err := s.library.ListTrainingExamples(dbCtx)
	if err != nil {
		return nil, wrapStoreErr(err)
	}
	return examples, nil
}

// bumpLibraryUsage increments the counters of the phrases picked on the form
// and inserts phrases typed ad hoc, counting them as used once. Failures are
// logged, not surfaced: the session itself is already stored.
func (s *SessionService) bumpLibraryUsage(ctx context.Context, in SessionInput) {
	dbCtx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	for _, id := range in.UsedObjectionIDs {
		if err := s.library.BumpObjectionUsage(dbCtx, id); err != nil {
			s.logger.Warn("bump objection usage failed", zap.Int64("id", id), zap.Error(err))
		}
	}
	for _, id := range in.UsedSkillIDs {
		if err := s.library.BumpSkillUsage(dbCtx, id); err != nil {
			s.logger.Warn("bump skill usage failed", zap.Int64("id", id), zap.Error(err))
		}
	}

	for _, text := range in.NewObjections {
		id, err := s.library.AddObjection(dbCtx, text, "custom")
		if err != nil {
			s.logger.Warn("ad-hoc objection insert failed", zap.String("text", text), zap.Error(err))
			continue
		}
		if err := s.library.BumpObjectionUsage(dbCtx, id); err != nil {
			s.logger.Warn("bump objection usage failed", zap.Int64("id", id), zap.Error(err))
		}
	}
	for _, text := range in.NewSkills {
		id, err := s.library.AddSkill(dbCtx, text, "custom")
		if err != nil {
			s.logger.Warn("ad-hoc skill insert failed", zap.String("text", text), zap.Error(err))
			continue
		}
		if err := s.library.BumpSkillUsage(dbCtx, id); err != nil {
			s.logger.Warn("bump skill usage failed", zap.Int64("id", id), zap.Error(err))
		}
	}
}

// AddTrainingExample persists one confirmed training candidate.
func (s *SessionService) AddTrainingExample(ctx context.Context, ex models.TrainingExample) (models.TrainingExample, error) {
	dbCtx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	id, err := s.library.AddTrainingExample(dbCtx, ex)
	if err != nil {
		return models.TrainingExample{}, wrapStoreErr(err)
	}
	ex.ID = id
	s.logger.Info("training example saved",
		zap.Int64("agent_id", ex.AgentID),
		zap.String("category", ex.Category))
	return ex, nil
}

func sessionFromInput(in SessionInput) models.Session {
	sessionDate := in.SessionDate
	if sessionDate == "" {
		sessionDate = time.Now().UTC().Format("2006-01-02")
	}
	return models.Session{
		AgentID:         in.AgentID,
		QCAgentID:       in.QCAgentID,
		SessionDate:     sessionDate,
		CallDate:        in.CallDate,
		CallTime:        in.CallTime,
		PropertyAddress: in.PropertyAddress,
		LeadStatus:      in.LeadStatus,
		FinalComment:    in.FinalComment,
		Binary:          in.Binary,
		Categories:      in.Categories,
	}
}
