package consensus

import "fmt"

// Outcome classifies a verdict.
type Outcome string

const (
	// OutcomeInsufficient means at least one card lacked an extractable
	// pick; no decision is forced.
	OutcomeInsufficient Outcome = "insufficient"
	// OutcomeAgree means both canonical picks matched.
	OutcomeAgree Outcome = "agree"
	// OutcomeSplit means the picks differed; no decision is forced and
	// neither agent wins a tie-break.
	OutcomeSplit Outcome = "no_agreement"
)

// Verdict is the pure derived value combining two decision cards.
type Verdict struct {
	Outcome   Outcome
	Agreement bool

	// Pick and Reason are set only on agreement. Pick keeps the first
	// agent's raw wording for display.
	Pick   string
	Reason string

	// Cards preserves both raw cards for the no-agreement and
	// insufficient outcomes.
	Cards [2]Card
}

// Arbitrate reduces two decision cards to one verdict. Deterministic, no
// side effects.
func Arbitrate(a, b Card) Verdict {
	v := Verdict{Cards: [2]Card{a, b}}

	if normalize(a.Pick) == "" || normalize(b.Pick) == "" {
		v.Outcome = OutcomeInsufficient
		return v
	}

	keyA := a.CanonicalPick()
	if keyA != "" && keyA == b.CanonicalPick() {
		v.Outcome = OutcomeAgree
		v.Agreement = true
		v.Pick = a.Pick
		v.Reason = firstNonEmpty(a.Reason, b.Reason, "Aligned edge.")
		return v
	}

	v.Outcome = OutcomeSplit
	return v
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// RenderMessage formats a verdict for the delivery layer, naming the two
// agents in order.
func RenderMessage(v Verdict, nameA, nameB string) string {
	switch v.Outcome {
	case OutcomeInsufficient:
		return "⚖️ Consensus: insufficient structured card data this turn.\nNo forced bet."

	case OutcomeAgree:
		a, b := v.Cards[0], v.Cards[1]
		return fmt.Sprintf(
			"🤝 Consensus: AGREE\nPick: %s\nConfidence: %s %s | %s %s\nReason: %s\nDecision: aligned edge.",
			v.Pick,
			nameA, orNA(a.Confidence),
			nameB, orNA(b.Confidence),
			v.Reason,
		)

	default:
		a, b := v.Cards[0], v.Cards[1]
		return fmt.Sprintf(
			"⚖️ Consensus: NO AGREEMENT\n%s -> Pick: %s | Confidence: %s | Reason: %s\n%s -> Pick: %s | Confidence: %s | Reason: %s\nDecision: no forced bet.",
			nameA, orNA(a.Pick), orNA(a.Confidence), orNA(a.Reason),
			nameB, orNA(b.Pick), orNA(b.Confidence), orNA(b.Reason),
		)
	}
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
