package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/trustedhb/qc-server/internal/repository/models"
)

// LibraryRepository manages the reusable objection and skill phrase libraries
// and the training-example store.
type LibraryRepository struct {
	db *sql.DB
}

func NewLibraryRepository(db *sql.DB) *LibraryRepository {
	return &LibraryRepository{db: db}
}

func (r *LibraryRepository) ListObjections(ctx context.Context) ([]models.LibraryEntry, error) {
	return r.listEntries(ctx, `
		SELECT id, objection_text, category, usage_count
		FROM objections_library
		ORDER BY usage_count DESC, objection_text ASC`)
}

func (r *LibraryRepository) ListSkills(ctx context.Context) ([]models.LibraryEntry, error) {
	return r.listEntries(ctx, `
		SELECT id, skill_text, category, usage_count
		FROM skills_library
		ORDER BY usage_count DESC, skill_text ASC`)
}

func (r *LibraryRepository) listEntries(ctx context.Context, query string) ([]models.LibraryEntry, error) {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query library: %w", err)
	}
	defer rows.Close()

	var entries []models.LibraryEntry
	for rows.Next() {
		var e models.LibraryEntry
		if err := rows.Scan(&e.ID, &e.Text, &e.Category, &e.UsageCount); err != nil {
			return nil, fmt.Errorf("scan library entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate library: %w", err)
	}
	return entries, nil
}

func (r *LibraryRepository) AddObjection(ctx context.Context, text, category string) (int64, error) {
	return r.addEntry(ctx, `INSERT INTO objections_library (objection_text, category) VALUES (?, ?)`, text, category)
}

func (r *LibraryRepository) AddSkill(ctx context.Context, text, category string) (int64, error) {
	return r.addEntry(ctx, `INSERT INTO skills_library (skill_text, category) VALUES (?, ?)`, text, category)
}

func (r *LibraryRepository) addEntry(ctx context.Context, query, text, category string) (int64, error) {
	res, err := r.db.ExecContext(ctx, query, text, category)
	if err != nil {
		return 0, fmt.Errorf("insert library entry: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("library insert id: %w", err)
	}
	return id, nil
}

// BumpObjectionUsage increments the usage counter. Concurrent bumps are
// serialized by sqlite, so the counter never loses increments.
func (r *LibraryRepository) BumpObjectionUsage(ctx context.Context, id int64) error {
	return r.bumpUsage(ctx, `UPDATE objections_library SET usage_count = usage_count + 1 WHERE id = ?`, id)
}

func (r *LibraryRepository) BumpSkillUsage(ctx context.Context, id int64) error {
	return r.bumpUsage(ctx, `UPDATE skills_library SET usage_count = usage_count + 1 WHERE id = ?`, id)
}

func (r *LibraryRepository) bumpUsage(ctx context.Context, query string, id int64) error {
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("bump usage: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("bump usage result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("library entry %d: %w", id, ErrNotFound)
	}
	return nil
}

func (r *LibraryRepository) AddTrainingExample(ctx context.Context, ex models.TrainingExample) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO training_examples
			(agent_id, category, score, qc_comment, property_address, call_date, call_time, timestamp_start)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		ex.AgentID, ex.Category, ex.Score, ex.QCComment, ex.PropertyAddress, ex.CallDate, ex.CallTime, ex.TimestampStart)
	if err != nil {
		return 0, fmt.Errorf("insert training example: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("training example insert id: %w", err)
	}
	return id, nil
}

func (r *LibraryRepository) ListTrainingExamples(ctx context.Context) ([]models.TrainingExample, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, agent_id, category, score, qc_comment, property_address, call_date, call_time, timestamp_start
		FROM training_examples
		ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("query training examples: %w", err)
	}
	defer rows.Close()

	var examples []models.TrainingExample
	for rows.Next() {
		var ex models.TrainingExample
		if err := rows.Scan(&ex.ID, &ex.AgentID, &ex.Category, &ex.Score, &ex.QCComment,
			&ex.PropertyAddress, &ex.CallDate, &ex.CallTime, &ex.TimestampStart); err != nil {
			return nil, fmt.Errorf("scan training example: %w", err)
		}
		examples = append(examples, ex)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate training examples: %w", err)
	}
	return examples, nil
}
