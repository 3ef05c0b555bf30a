package insight

import (
	"fmt"
	"strings"

	"github.com/trustedhb/qc-server/internal/scoring"
)

// interpretPerformance labels a percentage and a consistency score the way
// the coaching summaries phrase them.
func interpretPerformance(pct, consistency float64) string {
	var level string
	switch {
	case pct >= 90:
		level = "Elite Performance"
	case pct >= 80:
		level = "Strong Performance"
	case pct >= 70:
		level = "Solid Performance"
	case pct >= 60:
		level = "Developing Performance"
	case pct >= 50:
		level = "Emerging Performance"
	default:
		level = "Foundational Stage"
	}

	var note string
	switch {
	case consistency >= 85:
		note = "Highly Consistent"
	case consistency >= 70:
		note = "Generally Consistent"
	case consistency >= 55:
		note = "Variable"
	default:
		note = "Inconsistent"
	}

	return fmt.Sprintf("%s (%s)", level, note)
}

func trendLabel(trend string, strength int) string {
	switch trend {
	case TrendAccelerating:
		return fmt.Sprintf(" 🚀 ACCELERATING (+%d%%)", strength)
	case TrendImproving:
		return fmt.Sprintf(" 📈 IMPROVING (+%d%%)", strength)
	case TrendDeclining:
		return fmt.Sprintf(" 📉 DECLINING (-%d%%)", strength)
	case TrendDeteriorating:
		return fmt.Sprintf(" ⚠️ DETERIORATING (-%d%%)", strength)
	}
	return ""
}

// renderSummary builds the deterministic coaching summary: header, strengths,
// performance opportunities, projection, and a trend alert when performance
// is slipping.
func renderSummary(category scoring.Category, a CategoryAnalysis) string {
	plural := "s"
	if a.SessionCount == 1 {
		plural = ""
	}
	header := fmt.Sprintf("**%s** — %.0f%% average (%.0f%% consistency) across %d session%s%s",
		interpretPerformance(a.Score, a.Consistency),
		a.Score, a.Consistency, a.SessionCount, plural,
		trendLabel(a.Trend, a.TrendStrength))

	var sections []string

	if len(a.Strengths) > 0 {
		var b strings.Builder
		b.WriteString("**✅ Strengths:**\n")
		for i, s := range a.Strengths {
			fmt.Fprintf(&b, "%d. %s\n", i+1, s)
		}
		sections = append(sections, strings.TrimSpace(b.String()))
	}

	if len(a.Techniques) > 0 {
		var b strings.Builder
		b.WriteString("**🎯 Effective Techniques:**\n")
		for i, t := range a.Techniques {
			fmt.Fprintf(&b, "%d. %s\n", i+1, t)
		}
		sections = append(sections, strings.TrimSpace(b.String()))
	}

	if len(a.Gaps) > 0 {
		var b strings.Builder
		b.WriteString("**🔧 Performance Opportunities:**\n")
		for i, g := range a.Gaps {
			fmt.Fprintf(&b, "%d. \"%s\"\n   Why it matters: %s\n   Fix: %s\n   Expected impact: %s\n",
				i+1, g.Text, g.Rationale, g.Fix, g.Impact)
		}
		sections = append(sections, strings.TrimSpace(b.String()))
	} else if a.Score < 70 {
		sections = append(sections,
			fmt.Sprintf("**🔧 Performance Opportunity:** Build consistency in %s through focused practice and technique refinement.",
				category.DisplayName()))
	}

	if len(a.Patterns.Issues) > 0 {
		sections = append(sections,
			"**⚠️ Recurring Issues:** "+strings.Join(a.Patterns.Issues, ", "))
	}

	p := a.Projection
	sections = append(sections, fmt.Sprintf(
		"**📊 Projection:** %.1f%% → %.1f%% (stretch %.1f%%) over %s, est. +%d conversions.",
		p.Current, p.Target, p.Stretch, p.Timeline, p.EstimatedConversions))

	if a.Trend == TrendDeclining || a.Trend == TrendDeteriorating {
		sections = append(sections,
			"📉 **Trend Alert:** Performance declining. Investigate root causes promptly — possible burnout, confidence issues, or environmental factors.")
	}

	return strings.TrimSpace(header + "\n\n" + strings.Join(sections, "\n\n"))
}
