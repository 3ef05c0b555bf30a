package insight

import (
	"fmt"
	"strings"
)

// GenerateOverallComment renders the agent-level narrative blurb from the
// already-computed category analyses. Pure string assembly — no new scoring
// logic lives here.
func GenerateOverallComment(agentName string, overallScore float64, analyses []CategoryAnalysis) string {
	var withData []CategoryAnalysis
	for _, a := range analyses {
		if a.HasData {
			withData = append(withData, a)
		}
	}
	if len(withData) == 0 {
		return fmt.Sprintf("📊 %s needs more QC sessions to generate an analysis. Score a few calls to unlock insights!", agentName)
	}

	var emoji, level string
	switch {
	case overallScore >= 80:
		emoji, level = "🔥", "crushing it"
	case overallScore >= 70:
		emoji, level = "💪", "on solid ground"
	case overallScore >= 60:
		emoji, level = "📈", "building momentum"
	default:
		emoji, level = "🌱", "in growth mode"
	}

	strongest := withData[0]
	weakest := withData[0]
	var improving, declining []string
	for _, a := range withData {
		if a.Score > strongest.Score {
			strongest = a
		}
		if a.Score < weakest.Score {
			weakest = a
		}
		switch a.Trend {
		case TrendImproving, TrendAccelerating:
			improving = append(improving, a.CategoryName)
		case TrendDeclining, TrendDeteriorating:
			declining = append(declining, a.CategoryName)
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s **%s is %s** with %.1f%% overall performance. ", emoji, agentName, level, overallScore)

	if strongest.Score >= 75 {
		quote := "consistently strong execution"
		if len(strongest.Strengths) > 0 {
			quote = fmt.Sprintf("%q", truncate(strongest.Strengths[0], 80))
		}
		fmt.Fprintf(&b, "**%s** (%.1f%%, %.0f%% consistent) is their superpower — %s. ",
			strongest.CategoryName, strongest.Score, strongest.Consistency, quote)
	}

	if len(improving) > 0 {
		fmt.Fprintf(&b, "Excellent upward trajectory in **%s** 🚀. ", improving[0])
	}
	if len(declining) > 0 {
		fmt.Fprintf(&b, "⚠️ Watch **%s** - recent decline detected. ", declining[0])
	}

	if weakest.Score < 70 {
		quote := "targeted skill development here could unlock significant performance gains"
		if len(weakest.FocusAreas) > 0 {
			quote = fmt.Sprintf("%q", truncate(weakest.FocusAreas[0], 80))
		}
		fmt.Fprintf(&b, "Primary focus: **%s** (%.1f%%) — %s. ", weakest.CategoryName, weakest.Score, quote)
	}

	switch {
	case overallScore >= 75:
		b.WriteString("Document these wins and keep pushing! 🎯")
	case overallScore >= 65:
		b.WriteString("The foundation is solid - targeted coaching on weak spots will elevate performance significantly! 💪")
	default:
		b.WriteString("Clear development path identified - focused daily practice on these specific areas will drive rapid improvement! 🚀")
	}

	return b.String()
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
