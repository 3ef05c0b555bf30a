package repository

import (
	"context"
	"database/sql"
	"fmt"
)

const schema = `
CREATE TABLE IF NOT EXISTS agents (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS qc_agents (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS qc_sessions (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	agent_id INTEGER NOT NULL REFERENCES agents(id),
	qc_agent_id INTEGER NOT NULL REFERENCES qc_agents(id),
	session_date TEXT NOT NULL,
	call_date TEXT NOT NULL,
	call_time TEXT NOT NULL DEFAULT '',
	property_address TEXT NOT NULL DEFAULT '',
	lead_status TEXT NOT NULL DEFAULT 'Active',
	final_comment TEXT NOT NULL DEFAULT '',
	overall_score REAL NOT NULL
);
CREATE TABLE IF NOT EXISTS binary_scores (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id INTEGER NOT NULL REFERENCES qc_sessions(id) ON DELETE CASCADE,
	intro INTEGER,
	first_ask INTEGER,
	property_condition INTEGER
);
CREATE TABLE IF NOT EXISTS category_scores (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id INTEGER NOT NULL REFERENCES qc_sessions(id) ON DELETE CASCADE,
	bonding_rapport INTEGER,
	bonding_rapport_comment TEXT NOT NULL DEFAULT '',
	bonding_rapport_skills TEXT NOT NULL DEFAULT '[]',
	magic_problem INTEGER,
	magic_problem_comment TEXT NOT NULL DEFAULT '',
	magic_problem_skills TEXT NOT NULL DEFAULT '[]',
	second_ask INTEGER,
	second_ask_comment TEXT NOT NULL DEFAULT '',
	second_ask_skills TEXT NOT NULL DEFAULT '[]',
	objection_handling INTEGER,
	objection_handling_comment TEXT NOT NULL DEFAULT '',
	objection_handling_skills TEXT NOT NULL DEFAULT '[]',
	closing_offer_presentation INTEGER,
	closing_offer_comment TEXT NOT NULL DEFAULT '',
	closing_motivation INTEGER,
	closing_motivation_comment TEXT NOT NULL DEFAULT '',
	closing_objections INTEGER,
	closing_objections_comment TEXT NOT NULL DEFAULT '',
	closing_skills TEXT NOT NULL DEFAULT '[]'
);
CREATE TABLE IF NOT EXISTS objections_library (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	objection_text TEXT NOT NULL,
	category TEXT NOT NULL DEFAULT 'custom',
	usage_count INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE IF NOT EXISTS skills_library (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	skill_text TEXT NOT NULL,
	category TEXT NOT NULL DEFAULT 'custom',
	usage_count INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE IF NOT EXISTS archived_sessions (
	id TEXT PRIMARY KEY,
	agent_id INTEGER NOT NULL,
	agent_name TEXT NOT NULL DEFAULT '',
	payload TEXT NOT NULL,
	archived_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS training_examples (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	agent_id INTEGER NOT NULL,
	category TEXT NOT NULL,
	score INTEGER NOT NULL,
	qc_comment TEXT NOT NULL DEFAULT '',
	property_address TEXT NOT NULL DEFAULT '',
	call_date TEXT NOT NULL DEFAULT '',
	call_time TEXT NOT NULL DEFAULT '',
	timestamp_start TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_sessions_agent ON qc_sessions(agent_id, call_date);
CREATE INDEX IF NOT EXISTS idx_binary_session ON binary_scores(session_id);
CREATE INDEX IF NOT EXISTS idx_category_session ON category_scores(session_id);
`

// Migrate creates the schema if it does not exist.
func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
