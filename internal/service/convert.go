package service

import (
	"strings"

	"github.com/trustedhb/qc-server/internal/insight"
	"github.com/trustedhb/qc-server/internal/repository/models"
	"github.com/trustedhb/qc-server/internal/scoring"
)

// insightCategories is every category the deep dive covers, in display order.
var insightCategories = []scoring.Category{
	scoring.CategoryBondingRapport,
	scoring.CategoryMagicProblem,
	scoring.CategorySecondAsk,
	scoring.CategoryObjectionHandling,
	scoring.CategoryClosing,
}

func binaryAnswer(p *bool) scoring.BinaryAnswer {
	switch {
	case p == nil:
		return scoring.BinaryNotApplicable
	case *p:
		return scoring.BinaryYes
	default:
		return scoring.BinaryNo
	}
}

func sessionBinary(b models.BinaryScores) scoring.BinaryAnswers {
	return scoring.BinaryAnswers{
		Intro:             binaryAnswer(b.Intro),
		FirstAsk:          binaryAnswer(b.FirstAsk),
		PropertyCondition: binaryAnswer(b.PropertyCondition),
	}
}

func sessionRatings(c models.CategoryScores) scoring.Ratings {
	return scoring.Ratings{
		BondingRapport:    c.BondingRapport,
		MagicProblem:      c.MagicProblem,
		SecondAsk:         c.SecondAsk,
		ObjectionHandling: c.ObjectionHandling,
		ClosingOffer:      c.ClosingOffer,
		ClosingMotivation: c.ClosingMotivation,
		ClosingObjections: c.ClosingObjections,
	}
}

func sessionScore(s models.Session) scoring.SessionScore {
	return scoring.SessionScore{
		Binary:  sessionBinary(s.Binary),
		Ratings: sessionRatings(s.Categories),
		Overall: s.OverallScore,
		Date:    s.CallDate,
	}
}

func sessionScores(sessions []models.Session) []scoring.SessionScore {
	out := make([]scoring.SessionScore, len(sessions))
	for i, s := range sessions {
		out[i] = sessionScore(s)
	}
	return out
}

// categoryComment returns the QC comment belonging to one category. Closing
// joins its three sub-comments since the synthetic closing value blends the
// three sub-ratings.
func categoryComment(c models.CategoryScores, cat scoring.Category) string {
	switch cat {
	case scoring.CategoryBondingRapport:
		return c.BondingRapportComment
	case scoring.CategoryMagicProblem:
		return c.MagicProblemComment
	case scoring.CategorySecondAsk:
		return c.SecondAskComment
	case scoring.CategoryObjectionHandling:
		return c.ObjectionHandlingComment
	case scoring.CategoryClosing:
		var parts []string
		for _, p := range []string{c.ClosingOfferComment, c.ClosingMotivationComment, c.ClosingObjectionsComment} {
			if strings.TrimSpace(p) != "" {
				parts = append(parts, strings.TrimSpace(p))
			}
		}
		return strings.Join(parts, ". ")
	}
	return ""
}

// categoryHistory extracts one category's rating observations from a
// chronological session list, skipping sessions where it was not scored.
func categoryHistory(sessions []models.Session, cat scoring.Category) []insight.RatingObservation {
	var history []insight.RatingObservation
	for _, s := range sessions {
		v, ok := cat.Value(sessionRatings(s.Categories))
		if !ok {
			continue
		}
		history = append(history, insight.RatingObservation{
			Rating:  v,
			Comment: categoryComment(s.Categories, cat),
			Date:    s.CallDate,
		})
	}
	return history
}

// scoredCategories flattens a session's ratings into the per-category form the
// training filter consumes. The three closing sub-ratings stay separate so a
// strong sub-comment can qualify on its own.
func scoredCategories(c models.CategoryScores) []insight.ScoredCategory {
	return []insight.ScoredCategory{
		{Category: scoring.CategoryBondingRapport, Rating: c.BondingRapport, Comment: c.BondingRapportComment},
		{Category: scoring.CategoryMagicProblem, Rating: c.MagicProblem, Comment: c.MagicProblemComment},
		{Category: scoring.CategorySecondAsk, Rating: c.SecondAsk, Comment: c.SecondAskComment},
		{Category: scoring.CategoryObjectionHandling, Rating: c.ObjectionHandling, Comment: c.ObjectionHandlingComment},
		{Category: scoring.CategoryClosing, Rating: c.ClosingOffer, Comment: c.ClosingOfferComment},
		{Category: scoring.CategoryClosing, Rating: c.ClosingMotivation, Comment: c.ClosingMotivationComment},
		{Category: scoring.CategoryClosing, Rating: c.ClosingObjections, Comment: c.ClosingObjectionsComment},
	}
}
