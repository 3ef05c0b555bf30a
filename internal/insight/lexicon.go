package insight

import "github.com/trustedhb/qc-server/internal/scoring"

// GapAdvice is the coaching payload attached to a weakness keyword: why it
// hurts, what to do instead, and what fixing it is expected to buy.
type GapAdvice struct {
	Rationale string
	Fix       string
	Impact    string
}

// Lexicon is one category's keyword dictionary.
type Lexicon struct {
	Strengths  []string
	Weaknesses []string
	Techniques []string
	Advice     map[string]GapAdvice
	// DefaultAdvice backs weaknesses with no dedicated entry. Must never be
	// empty so rendering cannot fail.
	DefaultAdvice GapAdvice
}

// AdviceFor returns the coaching payload for a weakness keyword.
func (l Lexicon) AdviceFor(keyword string) GapAdvice {
	if a, ok := l.Advice[keyword]; ok {
		return a
	}
	return l.DefaultAdvice
}

// lexiconFor selects the dictionary for a category, falling back to the
// generic one for anything unrecognized.
func lexiconFor(category scoring.Category) Lexicon {
	switch category {
	case scoring.CategoryBondingRapport:
		return bondingLexicon
	case scoring.CategoryMagicProblem:
		return magicProblemLexicon
	case scoring.CategorySecondAsk:
		return secondAskLexicon
	case scoring.CategoryClosing:
		return closingLexicon
	case scoring.CategoryObjectionHandling:
		return objectionHandlingLexicon
	}
	return defaultLexicon
}

var bondingLexicon = Lexicon{
	Strengths: []string{
		"genuine empathy", "natural conversation", "excellent rapport", "warm tone",
		"patient", "listening skills", "made client comfortable", "built trust",
		"relatable", "friendly", "professional demeanor", "connected well",
	},
	Weaknesses: []string{
		"rushed", "interrupting", "robotic", "scripted", "cold tone", "impatient",
		"didn't listen", "talking too much", "not engaged", "mechanical",
	},
	Techniques: []string{
		"ice breaker", "small talk", "active listening", "mirroring",
		"asked about client", "personal connection", "humor", "empathy statements",
	},
	Advice: map[string]GapAdvice{
		"rushed": {
			Rationale: "Sellers shut down when the call feels like a transaction instead of a conversation.",
			Fix:       "Slow the open: two minutes of genuine small talk before any qualifying question.",
			Impact:    "Warmer opens carry through the whole call and lift second-ask cooperation.",
		},
		"interrupting": {
			Rationale: "Cutting sellers off signals their story doesn't matter, which kills trust early.",
			Fix:       "Let the seller finish, pause a beat, then respond to what they actually said.",
			Impact:    "Uninterrupted sellers volunteer the motivation details the pain funnel needs.",
		},
		"scripted": {
			Rationale: "A read-aloud cadence keeps the seller guarded and the rapport surface-level.",
			Fix:       "Drill the talk track until it can be delivered conversationally, off the page.",
			Impact:    "Natural delivery makes every later ask land as advice instead of a pitch.",
		},
		"robotic": {
			Rationale: "Flat delivery reads as disinterest even when the words are right.",
			Fix:       "Role-play with tone feedback; match the seller's pace and energy.",
			Impact:    "Tone matching alone typically moves bonding ratings a full point.",
		},
	},
	DefaultAdvice: GapAdvice{
		Rationale: "Weak rapport caps everything downstream; sellers don't open up to strangers.",
		Fix:       "Open with the seller's situation, not the property, and prove you listened.",
		Impact:    "Stronger personal connection raises cooperation on every later question.",
	},
}

var magicProblemLexicon = Lexicon{
	Strengths: []string{
		"excellent probing", "uncovered pain", "discovered motivation", "deep questions",
		"found urgency", "identified real problem", "great questions", "pain funnel",
	},
	Weaknesses: []string{
		"didn't probe", "surface level", "missed pain", "no follow-up", "didn't dig",
		"superficial questions", "didn't discover", "skipped pain funnel",
	},
	Techniques: []string{
		"open-ended questions", "why questions", "pain funnel", "follow-up probing",
		"discovered timeline", "uncovered motivation", "asked about consequences",
	},
	Advice: map[string]GapAdvice{
		"didn't probe": {
			Rationale: "Without the real reason for selling there is nothing to anchor the offer to.",
			Fix:       "Run the pain funnel on every call: why now, what happens if not, what's it costing.",
			Impact:    "A named motivation makes the closing conversation about their problem, not price.",
		},
		"surface level": {
			Rationale: "Stopping at the first answer leaves the actual urgency undiscovered.",
			Fix:       "Follow every first answer with at least two deeper why/what-then questions.",
			Impact:    "Deeper discovery routinely converts 'just curious' leads into motivated sellers.",
		},
		"no follow-up": {
			Rationale: "Pain mentioned but not explored never makes it into the offer positioning.",
			Fix:       "When a seller hints at a problem, stop the script and dig into it on the spot.",
			Impact:    "Leveraged pain points are the strongest predictor of accepted offers.",
		},
	},
	DefaultAdvice: GapAdvice{
		Rationale: "The magic problem is the lever the whole offer rests on; missing it means selling on price.",
		Fix:       "Practice the pain funnel daily until discovery questions are automatic.",
		Impact:    "Reliable discovery typically lifts close rates more than any closing technique.",
	},
}

var secondAskLexicon = Lexicon{
	Strengths: []string{
		"set clear expectations", "smooth transition", "confirmed interest",
		"great setup", "natural flow", "positioned appointment", "closed for appointment",
	},
	Weaknesses: []string{
		"didn't ask", "weak close", "unclear expectations", "no call to action",
		"missed opportunity", "hesitant", "didn't transition",
	},
	Techniques: []string{
		"assumptive close", "trial close", "confirmed availability",
		"set specific time", "addressed objections", "clear next steps",
	},
	Advice: map[string]GapAdvice{
		"didn't ask": {
			Rationale: "Repair-cost review without a second price ask leaves the call without a next step.",
			Fix:       "Always convert the repair discussion into a concrete second number before moving on.",
			Impact:    "Calls with a clean second ask advance to offers at roughly double the rate.",
		},
		"hesitant": {
			Rationale: "Hesitation at the ask transfers doubt straight to the seller.",
			Fix:       "Script and drill the transition sentence until it is delivered without a pause.",
			Impact:    "A confident ask keeps momentum and pulls the seller toward commitment.",
		},
		"unclear expectations": {
			Rationale: "Sellers who don't know what happens next go cold between touches.",
			Fix:       "Close every call by stating the next step, who does it, and when.",
			Impact:    "Clear next steps measurably cut lead decay between calls.",
		},
	},
	DefaultAdvice: GapAdvice{
		Rationale: "The second ask is where interest becomes a number; skipping it stalls the deal.",
		Fix:       "Use the repair-cost review as the natural bridge into the second price question.",
		Impact:    "A reliable second ask keeps pipelines moving and shortens time to offer.",
	},
}

var closingLexicon = Lexicon{
	Strengths: []string{
		"strong close", "confident", "handled objections", "secured commitment",
		"assumptive language", "addressed concerns", "closed deal",
	},
	Weaknesses: []string{
		"weak close", "gave up", "didn't overcome objection", "uncertain",
		"lost control", "didn't ask", "passive",
	},
	Techniques: []string{
		"trial close", "assumptive close", "alternative choice", "urgency",
		"addressed hesitation", "reframed objection", "confirmed commitment",
	},
	Advice: map[string]GapAdvice{
		"gave up": {
			Rationale: "The first no is usually a reflex, not a decision; stopping there leaves deals on the table.",
			Fix:       "Prepare one reframe and one fallback close for each of the top five objections.",
			Impact:    "Working past the first objection recovers a meaningful share of 'lost' calls.",
		},
		"weak close": {
			Rationale: "An apologetic close invites the seller to postpone instead of decide.",
			Fix:       "Drill assumptive closing language tied to the motivation surfaced earlier.",
			Impact:    "Confident closes convert pending leads that would otherwise drift to dead.",
		},
		"lost control": {
			Rationale: "When the seller drives the end of the call, the offer never gets presented on its merits.",
			Fix:       "Use answer-then-redirect: acknowledge, respond briefly, return to the close.",
			Impact:    "Keeping the frame doubles the chance the CASH/RBP comparison actually lands.",
		},
	},
	DefaultAdvice: GapAdvice{
		Rationale: "Everything before the close is spent effort if the commitment question never lands.",
		Fix:       "Anchor the close in the seller's stated motivation and ask directly.",
		Impact:    "Tighter closes are the shortest path from QC score to signed contracts.",
	},
}

var objectionHandlingLexicon = Lexicon{
	Strengths: []string{
		"handled objection", "stayed calm", "acknowledged concern", "reframed",
		"turned it around", "confident response", "prepared answer",
	},
	Weaknesses: []string{
		"caught off guard", "argued", "dismissed concern", "froze",
		"conceded too fast", "didn't acknowledge", "defensive",
	},
	Techniques: []string{
		"feel felt found", "acknowledge and redirect", "isolate the objection",
		"answered with question", "third-party story", "preemptive handling",
	},
	Advice: map[string]GapAdvice{
		"argued": {
			Rationale: "Winning the argument loses the seller; objections are requests for reassurance.",
			Fix:       "Acknowledge first, then reframe; never contradict the seller directly.",
			Impact:    "Acknowledged sellers stay in the conversation long enough to hear the answer.",
		},
		"froze": {
			Rationale: "Silence after an objection reads as confirmation of the seller's doubt.",
			Fix:       "Memorize responses to the library's top objections until recall is instant.",
			Impact:    "Prepared responses keep call momentum and protect the closing window.",
		},
	},
	DefaultAdvice: GapAdvice{
		Rationale: "Unhandled objections compound; each one left standing hardens the next.",
		Fix:       "Review the objection library weekly and rehearse the highest-usage entries.",
		Impact:    "Consistent objection handling stabilizes scores across every other category.",
	},
}

var defaultLexicon = Lexicon{
	Strengths: []string{
		"excellent", "strong", "effective", "great", "outstanding", "professional",
		"natural", "confident", "skilled", "mastery",
	},
	Weaknesses: []string{
		"needs improvement", "should", "could", "missed", "didn't", "lacking",
		"weak", "struggled", "improve", "work on",
	},
	Techniques: []string{
		"used", "applied", "demonstrated", "asked", "probed", "discovered",
		"established", "built", "maintained",
	},
	Advice: map[string]GapAdvice{},
	DefaultAdvice: GapAdvice{
		Rationale: "Recurring QC notes in this area point to a repeatable gap, not a one-off call.",
		Fix:       "Review the flagged calls with a coach and isolate the specific behavior to change.",
		Impact:    "Closing a confirmed recurring gap moves this category faster than general practice.",
	},
}
