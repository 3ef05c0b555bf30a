package service

import (
	"time"

	"github.com/trustedhb/qc-server/internal/insight"
	"github.com/trustedhb/qc-server/internal/repository/models"
)

// SessionInput is the scoring form payload for creating or editing a session.
type SessionInput struct {
	AgentID         int64                 `json:"agent_id"`
	QCAgentID       int64                 `json:"qc_agent_id"`
	SessionDate     string                `json:"session_date"`
	CallDate        time.Time             `json:"call_date"`
	CallTime        string                `json:"call_time"`
	PropertyAddress string                `json:"property_address"`
	LeadStatus      string                `json:"lead_status"`
	FinalComment    string                `json:"final_comment"`
	Binary          models.BinaryScores   `json:"binary_scores"`
	Categories      models.CategoryScores `json:"category_scores"`

	// Library entries picked on the form; their usage counters get bumped.
	UsedObjectionIDs []int64 `json:"used_objection_ids"`
	UsedSkillIDs     []int64 `json:"used_skill_ids"`

	// Phrases typed ad hoc on the form; inserted into the libraries and
	// counted as used on this call.
	NewObjections []string `json:"new_objections"`
	NewSkills     []string `json:"new_skills"`
}

// SessionResult is a stored session plus the standout category performances
// the scorer can confirm into the training library.
type SessionResult struct {
	Session            models.Session              `json:"session"`
	TrainingCandidates []insight.TrainingCandidate `json:"training_candidates"`
}

// DashboardAgent is one agent card: the recomputed rollup plus identity.
type DashboardAgent struct {
	AgentID          int64              `json:"agent_id"`
	Name             string             `json:"name"`
	OverallScore     float64            `json:"overall_score"`
	CategoryScores   map[string]float64 `json:"category_scores"`
	Status           string             `json:"status"`
	LastEvaluation   time.Time          `json:"last_evaluation"`
	SessionCount     int                `json:"session_count"`
	LeadStatusCounts map[string]int     `json:"lead_status_counts"`
}

// TeamStrength is the category the whole team currently scores best in.
type TeamStrength struct {
	Category string  `json:"category"`
	Score    float64 `json:"score"`
}

// TopRep is the best performer over the trailing seven days.
type TopRep struct {
	AgentID      int64   `json:"agent_id"`
	Name         string  `json:"name"`
	Score        float64 `json:"score"`
	SessionCount int     `json:"session_count"`
}

// MostImproved is the largest positive week-over-week gain. Nil on the
// dashboard means there is no improvement data yet.
type MostImproved struct {
	AgentID     int64   `json:"agent_id"`
	Name        string  `json:"name"`
	Improvement float64 `json:"improvement"`
	Current     float64 `json:"current"`
	Previous    float64 `json:"previous"`
}

// TeamMetrics is the dashboard's team-wide summary strip.
type TeamMetrics struct {
	TeamAverage      float64       `json:"team_average"`
	GreatestStrength *TeamStrength `json:"greatest_strength"`
	TopRepThisWeek   *TopRep       `json:"top_rep_this_week"`
	MostImproved     *MostImproved `json:"most_improved"`
}

// Dashboard is the full dashboard payload.
type Dashboard struct {
	Agents           []DashboardAgent `json:"agents"`
	Team             TeamMetrics      `json:"team"`
	LeadStatusCounts map[string]int   `json:"lead_status_counts"`
	SessionCount     int              `json:"session_count"`
}

// AgentInsight is the per-agent deep dive: every category's analysis plus the
// generated narrative comment.
type AgentInsight struct {
	AgentID        int64                      `json:"agent_id"`
	AgentName      string                     `json:"agent_name"`
	OverallScore   float64                    `json:"overall_score"`
	Status         string                     `json:"status"`
	SessionCount   int                        `json:"session_count"`
	Categories     []insight.CategoryAnalysis `json:"categories"`
	OverallComment string                     `json:"overall_comment"`
}
