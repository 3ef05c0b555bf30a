package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/trustedhb/qc-server/internal/repository"
	"github.com/trustedhb/qc-server/internal/repository/models"
	"github.com/trustedhb/qc-server/internal/service/mocks"
)

func intPtr(v int) *int    { return &v }
func boolPtr(v bool) *bool { return &v }

func newSessionService(sessions *mocks.MockSessionStore, agents *mocks.MockAgentStore, archive *mocks.MockArchiveStore, library *mocks.MockLibraryStore) *SessionService {
	if sessions == nil {
		sessions = &mocks.MockSessionStore{}
	}
	if agents == nil {
		agents = &mocks.MockAgentStore{}
	}
	if archive == nil {
		archive = &mocks.MockArchiveStore{}
	}
	if library == nil {
		library = &mocks.MockLibraryStore{}
	}
	return NewSessionService(sessions, agents, archive, library, zap.NewNop())
}

func TestNewSessionService(t *testing.T) {
	t.Run("nil storage panics", func(t *testing.T) {
		assert.Panics(t, func() {
			NewSessionService(nil, &mocks.MockAgentStore{}, &mocks.MockArchiveStore{}, &mocks.MockLibraryStore{}, zap.NewNop())
		})
	})

	t.Run("nil logger gets default", func(t *testing.T) {
		svc := newSessionService(nil, nil, nil, nil)
		assert.NotNil(t, svc.logger)
	})
}

func scoringInput() SessionInput {
	return SessionInput{
		AgentID:   1,
		QCAgentID: 2,
		CallDate:  time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC),
		Binary: models.BinaryScores{
			Intro:             boolPtr(true),
			FirstAsk:          boolPtr(true),
			PropertyCondition: boolPtr(false),
		},
		Categories: models.CategoryScores{
			BondingRapport:    intPtr(4),
			MagicProblem:      intPtr(3),
			SecondAsk:         intPtr(5),
			ClosingOffer:      intPtr(4),
			ClosingMotivation: intPtr(4),
			ClosingObjections: intPtr(2),
		},
	}
}

func TestCreateSession(t *testing.T) {
	ctx := context.Background()

	t.Run("computes the overall score before storing", func(t *testing.T) {
		var stored models.Session
		sessions := &mocks.MockSessionStore{
			CreateFunc: func(ctx context.Context, s models.Session) (int64, error) {
				stored = s
				return 42, nil
			},
			GetFunc: func(ctx context.Context, id int64) (models.Session, error) {
				stored.ID = id
				return stored, nil
			},
		}

		svc := newSessionService(sessions, nil, nil, nil)
		result, err := svc.CreateSession(ctx, scoringInput())

		assert.NoError(t, err)
		assert.Equal(t, int64(42), result.Session.ID)
		assert.Equal(t, 74.6, stored.OverallScore)
	})

	t.Run("bumps used library entries", func(t *testing.T) {
		var bumpedObjections, bumpedSkills []int64
		library := &mocks.MockLibraryStore{
			BumpObjectionUsageFunc: func(ctx context.Context, id int64) error {
				bumpedObjections = append(bumpedObjections, id)
				return nil
			},
			BumpSkillUsageFunc: func(ctx context.Context, id int64) error {
				bumpedSkills = append(bumpedSkills, id)
				return nil
			},
		}
		sessions := &mocks.MockSessionStore{
			CreateFunc: func(ctx context.Context, s models.Session) (int64, error) { return 1, nil },
			GetFunc: func(ctx context.Context, id int64) (models.Session, error) {
				return models.Session{ID: id}, nil
			},
		}

		in := scoringInput()
		in.UsedObjectionIDs = []int64{3, 9}
		in.UsedSkillIDs = []int64{7}

		svc := newSessionService(sessions, nil, nil, library)
		_, err := svc.CreateSession(ctx, in)

		assert.NoError(t, err)
		assert.Equal(t, []int64{3, 9}, bumpedObjections)
		assert.Equal(t, []int64{7}, bumpedSkills)
	})

	t.Run("ad-hoc phrases get inserted and counted once", func(t *testing.T) {
		var addedText string
		var bumped []int64
		library := &mocks.MockLibraryStore{
			AddObjectionFunc: func(ctx context.Context, text, category string) (int64, error) {
				addedText = text
				assert.Equal(t, "custom", category)
				return 77, nil
			},
			BumpObjectionUsageFunc: func(ctx context.Context, id int64) error {
				bumped = append(bumped, id)
				return nil
			},
		}
		sessions := &mocks.MockSessionStore{
			CreateFunc: func(ctx context.Context, s models.Session) (int64, error) { return 1, nil },
			GetFunc: func(ctx context.Context, id int64) (models.Session, error) {
				return models.Session{ID: id}, nil
			},
		}

		in := scoringInput()
		in.NewObjections = []string{"We already got a better offer"}

		svc := newSessionService(sessions, nil, nil, library)
		_, err := svc.CreateSession(ctx, in)

		assert.NoError(t, err)
		assert.Equal(t, "We already got a better offer", addedText)
		assert.Equal(t, []int64{77}, bumped)
	})

	t.Run("counter failures do not fail the create", func(t *testing.T) {
		library := &mocks.MockLibraryStore{
			BumpObjectionUsageFunc: func(ctx context.Context, id int64) error {
				return errors.New("redis is not sql")
			},
		}
		sessions := &mocks.MockSessionStore{
			CreateFunc: func(ctx context.Context, s models.Session) (int64, error) { return 1, nil },
			GetFunc: func(ctx context.Context, id int64) (models.Session, error) {
				return models.Session{ID: id}, nil
			},
		}

		in := scoringInput()
		in.UsedObjectionIDs = []int64{3}

		svc := newSessionService(sessions, nil, nil, library)
		_, err := svc.CreateSession(ctx, in)
		assert.NoError(t, err)
	})

	t.Run("flags training candidates from the stored session", func(t *testing.T) {
		sessions := &mocks.MockSessionStore{
			CreateFunc: func(ctx context.Context, s models.Session) (int64, error) { return 1, nil },
			GetFunc: func(ctx context.Context, id int64) (models.Session, error) {
				return models.Session{
					ID: id,
					Categories: models.CategoryScores{
						SecondAsk:        intPtr(5),
						SecondAskComment: "Excellent setup into the second number.",
					},
				}, nil
			},
		}

		svc := newSessionService(sessions, nil, nil, nil)
		result, err := svc.CreateSession(ctx, scoringInput())

		assert.NoError(t, err)
		assert.Len(t, result.TrainingCandidates, 1)
		assert.Equal(t, "Second Ask", result.TrainingCandidates[0].Name)
	})

	t.Run("storage failure", func(t *testing.T) {
		sessions := &mocks.MockSessionStore{
			CreateFunc: func(ctx context.Context, s models.Session) (int64, error) {
				return 0, errors.New("database is locked")
			},
		}

		svc := newSessionService(sessions, nil, nil, nil)
		_, err := svc.CreateSession(ctx, scoringInput())
		assert.ErrorIs(t, err, ErrStorageFailure)
	})
}

func TestUpdateSession(t *testing.T) {
	ctx := context.Background()

	t.Run("recomputes the overall score from raw answers", func(t *testing.T) {
		var updated models.Session
		sessions := &mocks.MockSessionStore{
			GetFunc: func(ctx context.Context, id int64) (models.Session, error) {
				return models.Session{ID: id, AgentID: 1, QCAgentID: 2, SessionDate: "2026-08-01", OverallScore: 12.3}, nil
			},
			UpdateFunc: func(ctx context.Context, s models.Session) error {
				updated = s
				return nil
			},
		}

		svc := newSessionService(sessions, nil, nil, nil)
		_, err := svc.UpdateSession(ctx, 7, scoringInput())

		assert.NoError(t, err)
		assert.Equal(t, 74.6, updated.OverallScore)
		// identity fields survive from the stored row
		assert.Equal(t, int64(7), updated.ID)
		assert.Equal(t, "2026-08-01", updated.SessionDate)
	})

	t.Run("recompute is idempotent for an unmodified session", func(t *testing.T) {
		in := scoringInput()
		var first, second float64
		call := 0
		sessions := &mocks.MockSessionStore{
			GetFunc: func(ctx context.Context, id int64) (models.Session, error) {
				return models.Session{ID: id, AgentID: in.AgentID, QCAgentID: in.QCAgentID}, nil
			},
			UpdateFunc: func(ctx context.Context, s models.Session) error {
				if call == 0 {
					first = s.OverallScore
				} else {
					second = s.OverallScore
				}
				call++
				return nil
			},
		}

		svc := newSessionService(sessions, nil, nil, nil)
		_, err := svc.UpdateSession(ctx, 7, in)
		assert.NoError(t, err)
		_, err = svc.UpdateSession(ctx, 7, in)
		assert.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("missing session", func(t *testing.T) {
		sessions := &mocks.MockSessionStore{
			GetFunc: func(ctx context.Context, id int64) (models.Session, error) {
				return models.Session{}, repository.ErrNotFound
			},
		}

		svc := newSessionService(sessions, nil, nil, nil)
		_, err := svc.UpdateSession(ctx, 7, scoringInput())
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestArchiveAndRestore(t *testing.T) {
	ctx := context.Background()

	t.Run("archive fetches then freezes", func(t *testing.T) {
		var frozen models.Session
		sessions := &mocks.MockSessionStore{
			GetFunc: func(ctx context.Context, id int64) (models.Session, error) {
				return models.Session{ID: id, AgentID: 3, AgentName: "Ana"}, nil
			},
		}
		archive := &mocks.MockArchiveStore{
			ArchiveFunc: func(ctx context.Context, s models.Session) (string, error) {
				frozen = s
				return "uuid-1", nil
			},
		}

		svc := newSessionService(sessions, nil, archive, nil)
		archiveID, err := svc.ArchiveSession(ctx, 9)

		assert.NoError(t, err)
		assert.Equal(t, "uuid-1", archiveID)
		assert.Equal(t, int64(9), frozen.ID)
	})

	t.Run("restore returns the re-created session", func(t *testing.T) {
		archive := &mocks.MockArchiveStore{
			RestoreFunc: func(ctx context.Context, archiveID string) (int64, error) {
				return 33, nil
			},
		}
		sessions := &mocks.MockSessionStore{
			GetFunc: func(ctx context.Context, id int64) (models.Session, error) {
				return models.Session{ID: id}, nil
			},
		}

		svc := newSessionService(sessions, nil, archive, nil)
		restored, err := svc.RestoreSession(ctx, "uuid-1")

		assert.NoError(t, err)
		assert.Equal(t, int64(33), restored.ID)
	})

	t.Run("restore of missing archive", func(t *testing.T) {
		archive := &mocks.MockArchiveStore{
			RestoreFunc: func(ctx context.Context, archiveID string) (int64, error) {
				return 0, repository.ErrNotFound
			},
		}

		svc := newSessionService(nil, nil, archive, nil)
		_, err := svc.RestoreSession(ctx, "nope")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
