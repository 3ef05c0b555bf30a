package models

import "time"

// Agent is a sales rep being scored.
type Agent struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// QCAgent is a scorer.
type QCAgent struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// BinaryScores is the yes/no/n-a checklist row of one session. Nil means N/A.
type BinaryScores struct {
	Intro             *bool `json:"intro"`
	FirstAsk          *bool `json:"first_ask"`
	PropertyCondition *bool `json:"property_condition"`
}

// CategoryScores is the ratings row of one session. Nil ratings mean the
// category was not applicable on that call.
type CategoryScores struct {
	BondingRapport           *int     `json:"bonding_rapport"`
	BondingRapportComment    string   `json:"bonding_rapport_comment"`
	BondingRapportSkills     []string `json:"bonding_rapport_skills"`
	MagicProblem             *int     `json:"magic_problem"`
	MagicProblemComment      string   `json:"magic_problem_comment"`
	MagicProblemSkills       []string `json:"magic_problem_skills"`
	SecondAsk                *int     `json:"second_ask"`
	SecondAskComment         string   `json:"second_ask_comment"`
	SecondAskSkills          []string `json:"second_ask_skills"`
	ObjectionHandling        *int     `json:"objection_handling"`
	ObjectionHandlingComment string   `json:"objection_handling_comment"`
	ObjectionHandlingSkills  []string `json:"objection_handling_skills"`
	ClosingOffer             *int     `json:"closing_offer_presentation"`
	ClosingOfferComment      string   `json:"closing_offer_comment"`
	ClosingMotivation        *int     `json:"closing_motivation"`
	ClosingMotivationComment string   `json:"closing_motivation_comment"`
	ClosingObjections        *int     `json:"closing_objections"`
	ClosingObjectionsComment string   `json:"closing_objections_comment"`
	ClosingSkills            []string `json:"closing_skills"`
}

// Session is one QC evaluation with its joined binary and category rows.
type Session struct {
	ID              int64          `json:"id"`
	AgentID         int64          `json:"agent_id"`
	AgentName       string         `json:"agent_name"`
	QCAgentID       int64          `json:"qc_agent_id"`
	QCAgentName     string         `json:"qc_agent_name"`
	SessionDate     string         `json:"session_date"`
	CallDate        time.Time      `json:"call_date"`
	CallTime        string         `json:"call_time"`
	PropertyAddress string         `json:"property_address"`
	LeadStatus      string         `json:"lead_status"`
	FinalComment    string         `json:"final_comment"`
	OverallScore    float64        `json:"overall_score"`
	Binary          BinaryScores   `json:"binary_scores"`
	Categories      CategoryScores `json:"category_scores"`
}

// ArchivedSession is a frozen session payload. The payload is the full
// flattened Session JSON so restore can reproduce it field for field.
type ArchivedSession struct {
	ID         string    `json:"id"`
	AgentID    int64     `json:"agent_id"`
	AgentName  string    `json:"agent_name"`
	Payload    Session   `json:"payload"`
	ArchivedAt time.Time `json:"archived_at"`
}

// LibraryEntry is one objection or skill phrase with its usage counter.
type LibraryEntry struct {
	ID         int64  `json:"id"`
	Text       string `json:"text"`
	Category   string `json:"category"`
	UsageCount int    `json:"usage_count"`
}

// TrainingExample is a confirmed high-score call snippet for the training
// library.
type TrainingExample struct {
	ID              int64  `json:"id"`
	AgentID         int64  `json:"agent_id"`
	Category        string `json:"category"`
	Score           int    `json:"score"`
	QCComment       string `json:"qc_comment"`
	PropertyAddress string `json:"property_address"`
	CallDate        string `json:"call_date"`
	CallTime        string `json:"call_time"`
	TimestampStart  string `json:"timestamp_start"`
}
