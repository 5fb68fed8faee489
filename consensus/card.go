// Package consensus turns two agents' free-text answers into one verdict:
// it extracts the structured decision card each agent must emit, repairs a
// missing card with a single follow-up round, and arbitrates the pair.
package consensus

import (
	"regexp"
	"strings"
)

// Card is the fixed-shape decision block an agent emits at turn end.
// Confidence is parsed when present but never required.
type Card struct {
	Pick       string
	Confidence string
	Reason     string
}

// Complete reports whether the card is usable by the arbiter.
func (c Card) Complete() bool {
	return c.Pick != "" && c.Reason != ""
}

// CanonicalPick returns the normalized comparison key for the card's pick.
func (c Card) CanonicalPick() string {
	return CanonicalPick(c.Pick)
}

var (
	markupRe = regexp.MustCompile("[*`_]")
	pickRe   = fieldRe("Pick")
	confRe   = fieldRe("Confidence")
	reasonRe = fieldRe("Reason")

	wsRe     = regexp.MustCompile(`\s+`)
	underRe  = regexp.MustCompile(`\bunder\b`)
	overRe   = regexp.MustCompile(`\bover\b`)
	parenRe  = regexp.MustCompile(`\([^)]*\)`)
	numRe    = regexp.MustCompile(`[+-]?\b\d+(?:\.\d+)?\b`)
	jargonRe = regexp.MustCompile(`\b(ml|moneyline|spread|line|points?|best|available)\b`)
)

// fieldRe matches a labeled card line, tolerating leading bullet glyphs and
// requiring non-empty trailing text after the label.
func fieldRe(label string) *regexp.Regexp {
	return regexp.MustCompile(`(?im)^\s*[-•]?\s*` + label + `\s*:\s*(.+?)\s*$`)
}

// ExtractCard parses the decision card from a turn's final text. Fields the
// text does not carry stay empty.
func ExtractCard(text string) Card {
	cleaned := markupRe.ReplaceAllString(text, "")
	return Card{
		Pick:       extractField(pickRe, cleaned),
		Confidence: extractField(confRe, cleaned),
		Reason:     extractField(reasonRe, cleaned),
	}
}

func extractField(re *regexp.Regexp, cleaned string) string {
	m := re.FindStringSubmatch(cleaned)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

func normalize(value string) string {
	return wsRe.ReplaceAllString(strings.ToLower(strings.TrimSpace(value)), " ")
}

// CanonicalPick derives the comparison key for a raw pick string. Used only
// for agreement detection, never for display.
func CanonicalPick(value string) string {
	norm := normalize(value)
	if norm == "" {
		return ""
	}

	if strings.Contains(norm, "no bet") || norm == "pass" || norm == "skip" {
		return "no bet"
	}
	if underRe.MatchString(norm) {
		return "under"
	}
	if overRe.MatchString(norm) {
		return "over"
	}

	// Side picks: strip betting noise and compare the core team/side text.
	norm = parenRe.ReplaceAllString(norm, " ")
	norm = numRe.ReplaceAllString(norm, " ")
	norm = jargonRe.ReplaceAllString(norm, " ")
	return strings.TrimSpace(wsRe.ReplaceAllString(norm, " "))
}
