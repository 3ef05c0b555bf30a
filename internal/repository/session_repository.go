package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/trustedhb/qc-server/internal/repository/models"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

const callDateFormat = "2006-01-02"

// SessionRepository provides CRUD over qc_sessions and its 1:1 binary and
// category rows.
type SessionRepository struct {
	db *sql.DB
}

func NewSessionRepository(db *sql.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

const sessionSelect = `
	SELECT
		s.id, s.agent_id, a.name, s.qc_agent_id, q.name,
		s.session_date, s.call_date, s.call_time,
		s.property_address, s.lead_status, s.final_comment, s.overall_score,
		b.intro, b.first_ask, b.property_condition,
		c.bonding_rapport, c.bonding_rapport_comment, c.bonding_rapport_skills,
		c.magic_problem, c.magic_problem_comment, c.magic_problem_skills,
		c.second_ask, c.second_ask_comment, c.second_ask_skills,
		c.objection_handling, c.objection_handling_comment, c.objection_handling_skills,
		c.closing_offer_presentation, c.closing_offer_comment,
		c.closing_motivation, c.closing_motivation_comment,
		c.closing_objections, c.closing_objections_comment,
		c.closing_skills
	FROM qc_sessions AS s
	JOIN agents AS a ON a.id = s.agent_id
	JOIN qc_agents AS q ON q.id = s.qc_agent_id
	LEFT JOIN binary_scores AS b ON b.session_id = s.id
	LEFT JOIN category_scores AS c ON c.session_id = s.id
`

// List returns every session with its joined rows, ordered chronologically.
// The chronological order is load-bearing: rollups take the last element as
// the latest evaluation.
func (r *SessionRepository) List(ctx context.Context) ([]models.Session, error) {
	return r.query(ctx, sessionSelect+" ORDER BY s.call_date ASC, s.id ASC")
}

// ListByAgent returns one agent's sessions, ordered chronologically.
func (r *SessionRepository) ListByAgent(ctx context.Context, agentID int64) ([]models.Session, error) {
	return r.query(ctx, sessionSelect+" WHERE s.agent_id = ? ORDER BY s.call_date ASC, s.id ASC", agentID)
}

// Get returns one session by id.
func (r *SessionRepository) Get(ctx context.Context, id int64) (models.Session, error) {
	sessions, err := r.query(ctx, sessionSelect+" WHERE s.id = ?", id)
	if err != nil {
		return models.Session{}, err
	}
	if len(sessions) == 0 {
		return models.Session{}, fmt.Errorf("session %d: %w", id, ErrNotFound)
	}
	return sessions[0], nil
}

func (r *SessionRepository) query(ctx context.Context, query string, args ...any) ([]models.Session, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	var sessions []models.Session
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("scan session row: %w", err)
		}
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}
	return sessions, nil
}

func scanSession(rows *sql.Rows) (models.Session, error) {
	var (
		s                                  models.Session
		callDate                           string
		intro, firstAsk, propertyCondition sql.NullBool
		bonding, magic, second, objection  sql.NullInt64
		closOffer, closMotiv, closObj      sql.NullInt64
		bondingC, magicC, secondC          sql.NullString
		objectionC                         sql.NullString
		closOfferC, closMotivC, closObjC   sql.NullString
		bondingS, magicS, secondS          sql.NullString
		objectionS, closingS               sql.NullString
	)

	err := rows.Scan(
		&s.ID, &s.AgentID, &s.AgentName, &s.QCAgentID, &s.QCAgentName,
		&s.SessionDate, &callDate, &s.CallTime,
		&s.PropertyAddress, &s.LeadStatus, &s.FinalComment, &s.OverallScore,
		&intro, &firstAsk, &propertyCondition,
		&bonding, &bondingC, &bondingS,
		&magic, &magicC, &magicS,
		&second, &secondC, &secondS,
		&objection, &objectionC, &objectionS,
		&closOffer, &closOfferC,
		&closMotiv, &closMotivC,
		&closObj, &closObjC,
		&closingS,
	)
	if err != nil {
		return models.Session{}, err
	}

	if t, err := time.Parse(callDateFormat, callDate); err == nil {
		s.CallDate = t
	}
	s.Binary = models.BinaryScores{
		Intro:             nullableBool(intro),
		FirstAsk:          nullableBool(firstAsk),
		PropertyCondition: nullableBool(propertyCondition),
	}
	s.Categories = models.CategoryScores{
		BondingRapport:           nullableInt(bonding),
		BondingRapportComment:    bondingC.String,
		BondingRapportSkills:     decodeSkills(bondingS),
		MagicProblem:             nullableInt(magic),
		MagicProblemComment:      magicC.String,
		MagicProblemSkills:       decodeSkills(magicS),
		SecondAsk:                nullableInt(second),
		SecondAskComment:         secondC.String,
		SecondAskSkills:          decodeSkills(secondS),
		ObjectionHandling:        nullableInt(objection),
		ObjectionHandlingComment: objectionC.String,
		ObjectionHandlingSkills:  decodeSkills(objectionS),
		ClosingOffer:             nullableInt(closOffer),
		ClosingOfferComment:      closOfferC.String,
		ClosingMotivation:        nullableInt(closMotiv),
		ClosingMotivationComment: closMotivC.String,
		ClosingObjections:        nullableInt(closObj),
		ClosingObjectionsComment: closObjC.String,
		ClosingSkills:            decodeSkills(closingS),
	}
	return s, nil
}

// Create inserts the session and its binary and category rows in one
// transaction and returns the new session id.
func (r *SessionRepository) Create(ctx context.Context, s models.Session) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin create session: %w", err)
	}
	defer tx.Rollback()

	id, err := insertSession(ctx, tx, s)
	if err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit create session: %w", err)
	}
	return id, nil
}

// insertSession writes the three related rows. Shared with archive restore.
func insertSession(ctx context.Context, tx *sql.Tx, s models.Session) (int64, error) {
	res, err := tx.ExecContext(ctx, `
		INSERT INTO qc_sessions
			(agent_id, qc_agent_id, session_date, call_date, call_time,
			 property_address, lead_status, final_comment, overall_score)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.AgentID, s.QCAgentID, s.SessionDate, s.CallDate.Format(callDateFormat), s.CallTime,
		s.PropertyAddress, s.LeadStatus, s.FinalComment, s.OverallScore)
	if err != nil {
		return 0, fmt.Errorf("insert session: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("session insert id: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO binary_scores (session_id, intro, first_ask, property_condition)
		VALUES (?, ?, ?, ?)`,
		id, s.Binary.Intro, s.Binary.FirstAsk, s.Binary.PropertyCondition)
	if err != nil {
		return 0, fmt.Errorf("insert binary scores: %w", err)
	}

	c := s.Categories
	_, err = tx.ExecContext(ctx, `
		INSERT INTO category_scores
			(session_id,
			 bonding_rapport, bonding_rapport_comment, bonding_rapport_skills,
			 magic_problem, magic_problem_comment, magic_problem_skills,
			 second_ask, second_ask_comment, second_ask_skills,
			 objection_handling, objection_handling_comment, objection_handling_skills,
			 closing_offer_presentation, closing_offer_comment,
			 closing_motivation, closing_motivation_comment,
			 closing_objections, closing_objections_comment,
			 closing_skills)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id,
		c.BondingRapport, c.BondingRapportComment, encodeSkills(c.BondingRapportSkills),
		c.MagicProblem, c.MagicProblemComment, encodeSkills(c.MagicProblemSkills),
		c.SecondAsk, c.SecondAskComment, encodeSkills(c.SecondAskSkills),
		c.ObjectionHandling, c.ObjectionHandlingComment, encodeSkills(c.ObjectionHandlingSkills),
		c.ClosingOffer, c.ClosingOfferComment,
		c.ClosingMotivation, c.ClosingMotivationComment,
		c.ClosingObjections, c.ClosingObjectionsComment,
		encodeSkills(c.ClosingSkills))
	if err != nil {
		return 0, fmt.Errorf("insert category scores: %w", err)
	}

	return id, nil
}

// Update mutates the session fields, binary row and category row. The caller
// must have recomputed OverallScore before calling.
func (r *SessionRepository) Update(ctx context.Context, s models.Session) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin update session: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE qc_sessions
		SET call_date = ?, call_time = ?, property_address = ?,
		    lead_status = ?, final_comment = ?, overall_score = ?
		WHERE id = ?`,
		s.CallDate.Format(callDateFormat), s.CallTime, s.PropertyAddress,
		s.LeadStatus, s.FinalComment, s.OverallScore, s.ID)
	if err != nil {
		return fmt.Errorf("update session: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update session result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("session %d: %w", s.ID, ErrNotFound)
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE binary_scores
		SET intro = ?, first_ask = ?, property_condition = ?
		WHERE session_id = ?`,
		s.Binary.Intro, s.Binary.FirstAsk, s.Binary.PropertyCondition, s.ID)
	if err != nil {
		return fmt.Errorf("update binary scores: %w", err)
	}

	c := s.Categories
	_, err = tx.ExecContext(ctx, `
		UPDATE category_scores
		SET bonding_rapport = ?, bonding_rapport_comment = ?, bonding_rapport_skills = ?,
		    magic_problem = ?, magic_problem_comment = ?, magic_problem_skills = ?,
		    second_ask = ?, second_ask_comment = ?, second_ask_skills = ?,
		    objection_handling = ?, objection_handling_comment = ?, objection_handling_skills = ?,
		    closing_offer_presentation = ?, closing_offer_comment = ?,
		    closing_motivation = ?, closing_motivation_comment = ?,
		    closing_objections = ?, closing_objections_comment = ?,
		    closing_skills = ?
		WHERE session_id = ?`,
		c.BondingRapport, c.BondingRapportComment, encodeSkills(c.BondingRapportSkills),
		c.MagicProblem, c.MagicProblemComment, encodeSkills(c.MagicProblemSkills),
		c.SecondAsk, c.SecondAskComment, encodeSkills(c.SecondAskSkills),
		c.ObjectionHandling, c.ObjectionHandlingComment, encodeSkills(c.ObjectionHandlingSkills),
		c.ClosingOffer, c.ClosingOfferComment,
		c.ClosingMotivation, c.ClosingMotivationComment,
		c.ClosingObjections, c.ClosingObjectionsComment,
		encodeSkills(c.ClosingSkills),
		s.ID)
	if err != nil {
		return fmt.Errorf("update category scores: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit update session: %w", err)
	}
	return nil
}

// Delete removes the session and its sub-rows.
func (r *SessionRepository) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete session: %w", err)
	}
	defer tx.Rollback()

	if err := deleteSession(ctx, tx, id); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit delete session: %w", err)
	}
	return nil
}

func deleteSession(ctx context.Context, tx *sql.Tx, id int64) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM binary_scores WHERE session_id = ?`, id); err != nil {
		return fmt.Errorf("delete binary scores: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM category_scores WHERE session_id = ?`, id); err != nil {
		return fmt.Errorf("delete category scores: %w", err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM qc_sessions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete session result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("session %d: %w", id, ErrNotFound)
	}
	return nil
}

func nullableBool(v sql.NullBool) *bool {
	if !v.Valid {
		return nil
	}
	b := v.Bool
	return &b
}

func nullableInt(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	i := int(v.Int64)
	return &i
}

func encodeSkills(skills []string) string {
	if len(skills) == 0 {
		return "[]"
	}
	data, err := json.Marshal(skills)
	if err != nil {
		return "[]"
	}
	return string(data)
}

func decodeSkills(v sql.NullString) []string {
	if !v.Valid || v.String == "" {
		return []string{}
	}
	var skills []string
	if err := json.Unmarshal([]byte(v.String), &skills); err != nil {
		return []string{}
	}
	return skills
}
