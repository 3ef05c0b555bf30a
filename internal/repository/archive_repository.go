package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/trustedhb/qc-server/internal/repository/models"
)

// ArchiveRepository moves sessions between the live tables and the archive.
// Archived sessions are frozen as a JSON payload so restore reproduces every
// field even if the live schema has since gained columns.
type ArchiveRepository struct {
	db *sql.DB
}

func NewArchiveRepository(db *sql.DB) *ArchiveRepository {
	return &ArchiveRepository{db: db}
}

// Archive freezes the given session into archived_sessions and removes the
// live rows in one transaction. Returns the archive id.
func (r *ArchiveRepository) Archive(ctx context.Context, s models.Session) (string, error) {
	payload, err := json.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("encode archive payload: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("begin archive: %w", err)
	}
	defer tx.Rollback()

	id := uuid.NewString()
	_, err = tx.ExecContext(ctx, `
		INSERT INTO archived_sessions (id, agent_id, agent_name, payload, archived_at)
		VALUES (?, ?, ?, ?, ?)`,
		id, s.AgentID, s.AgentName, string(payload), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return "", fmt.Errorf("insert archive: %w", err)
	}

	if err := deleteSession(ctx, tx, s.ID); err != nil {
		return "", err
	}
	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit archive: %w", err)
	}
	return id, nil
}

// List returns all archived sessions, most recently archived first.
func (r *ArchiveRepository) List(ctx context.Context) ([]models.ArchivedSession, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, agent_id, agent_name, payload, archived_at
		FROM archived_sessions
		ORDER BY archived_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("query archive: %w", err)
	}
	defer rows.Close()

	var archived []models.ArchivedSession
	for rows.Next() {
		var (
			a          models.ArchivedSession
			payload    string
			archivedAt string
		)
		if err := rows.Scan(&a.ID, &a.AgentID, &a.AgentName, &payload, &archivedAt); err != nil {
			return nil, fmt.Errorf("scan archive row: %w", err)
		}
		if err := json.Unmarshal([]byte(payload), &a.Payload); err != nil {
			return nil, fmt.Errorf("decode archive payload %s: %w", a.ID, err)
		}
		if t, err := time.Parse(time.RFC3339, archivedAt); err == nil {
			a.ArchivedAt = t
		}
		archived = append(archived, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate archive: %w", err)
	}
	return archived, nil
}

// Restore re-inserts the archived session into the live tables under a new
// identity and deletes the archive row. Returns the new session id.
func (r *ArchiveRepository) Restore(ctx context.Context, archiveID string) (int64, error) {
	var payload string
	err := r.db.QueryRowContext(ctx,
		`SELECT payload FROM archived_sessions WHERE id = ?`, archiveID).Scan(&payload)
	if err == sql.ErrNoRows {
		return 0, fmt.Errorf("archive %s: %w", archiveID, ErrNotFound)
	}
	if err != nil {
		return 0, fmt.Errorf("query archive payload: %w", err)
	}

	var s models.Session
	if err := json.Unmarshal([]byte(payload), &s); err != nil {
		return 0, fmt.Errorf("decode archive payload %s: %w", archiveID, err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin restore: %w", err)
	}
	defer tx.Rollback()

	id, err := insertSession(ctx, tx, s)
	if err != nil {
		return 0, err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM archived_sessions WHERE id = ?`, archiveID); err != nil {
		return 0, fmt.Errorf("delete archive row: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit restore: %w", err)
	}
	return id, nil
}
