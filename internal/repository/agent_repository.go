package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/trustedhb/qc-server/internal/repository/models"
)

// AgentRepository manages the agents and qc_agents rosters.
type AgentRepository struct {
	db *sql.DB
}

func NewAgentRepository(db *sql.DB) *AgentRepository {
	return &AgentRepository{db: db}
}

func (r *AgentRepository) ListAgents(ctx context.Context) ([]models.Agent, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM agents ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("query agents: %w", err)
	}
	defer rows.Close()

	var agents []models.Agent
	for rows.Next() {
		var a models.Agent
		if err := rows.Scan(&a.ID, &a.Name); err != nil {
			return nil, fmt.Errorf("scan agent: %w", err)
		}
		agents = append(agents, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate agents: %w", err)
	}
	return agents, nil
}

func (r *AgentRepository) CreateAgent(ctx context.Context, name string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `INSERT INTO agents (name) VALUES (?)`, name)
	if err != nil {
		return 0, fmt.Errorf("insert agent: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("agent insert id: %w", err)
	}
	return id, nil
}

func (r *AgentRepository) GetAgent(ctx context.Context, id int64) (models.Agent, error) {
	var a models.Agent
	err := r.db.QueryRowContext(ctx, `SELECT id, name FROM agents WHERE id = ?`, id).Scan(&a.ID, &a.Name)
	if err == sql.ErrNoRows {
		return models.Agent{}, fmt.Errorf("agent %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return models.Agent{}, fmt.Errorf("query agent: %w", err)
	}
	return a, nil
}

func (r *AgentRepository) ListQCAgents(ctx context.Context) ([]models.QCAgent, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM qc_agents ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("query qc agents: %w", err)
	}
	defer rows.Close()

	var agents []models.QCAgent
	for rows.Next() {
		var a models.QCAgent
		if err := rows.Scan(&a.ID, &a.Name); err != nil {
			return nil, fmt.Errorf("scan qc agent: %w", err)
		}
		agents = append(agents, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate qc agents: %w", err)
	}
	return agents, nil
}

func (r *AgentRepository) CreateQCAgent(ctx context.Context, name string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `INSERT INTO qc_agents (name) VALUES (?)`, name)
	if err != nil {
		return 0, fmt.Errorf("insert qc agent: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("qc agent insert id: %w", err)
	}
	return id, nil
}
