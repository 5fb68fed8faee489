package consensus

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractCard(t *testing.T) {
	text := "The matchup favors LA on efficiency.\n\n" +
		"Pick: Lakers -4.5\nConfidence: 72\nReason: Efficiency edge."

	card := ExtractCard(text)
	assert.Equal(t, "Lakers -4.5", card.Pick)
	assert.Equal(t, "72", card.Confidence)
	assert.Equal(t, "Efficiency edge.", card.Reason)
	assert.True(t, card.Complete())
}

func TestExtractCardStripsMarkupAndBullets(t *testing.T) {
	text := "Analysis done.\n" +
		"- **Pick**: `Warriors -3`\n" +
		"- _Confidence_: 64\n" +
		"- Reason: Rest advantage at home.\n"

	card := ExtractCard(text)
	assert.Equal(t, "Warriors -3", card.Pick)
	assert.Equal(t, "64", card.Confidence)
	assert.Equal(t, "Rest advantage at home.", card.Reason)
}

func TestExtractCardCaseInsensitiveLabels(t *testing.T) {
	card := ExtractCard("PICK: Over 228.5\nconfidence: 55\nREASON: Pace mismatch.")
	assert.Equal(t, "Over 228.5", card.Pick)
	assert.Equal(t, "55", card.Confidence)
	assert.Equal(t, "Pace mismatch.", card.Reason)
}

func TestExtractCardMissingFields(t *testing.T) {
	card := ExtractCard("I like the Lakers tonight but I won't commit to a line.")
	assert.Empty(t, card.Pick)
	assert.Empty(t, card.Reason)
	assert.False(t, card.Complete())
}

func TestCompleteDoesNotRequireConfidence(t *testing.T) {
	card := ExtractCard("Pick: no bet\nReason: No edge on this slate.")
	assert.True(t, card.Complete())
	assert.Empty(t, card.Confidence)
}

func TestCanonicalPickEquivalences(t *testing.T) {
	same := [][2]string{
		{"Lakers -4.5 (best line)", "Lakers"},
		{"Lakers", "LAKERS"},
		{"lakers ml", "Lakers moneyline"},
		{"Over 228.5", "OVER"},
		{"under 210 points", "Under"},
		{"No Bet", "pass"},
		{"no bet tonight", "skip"},
		{"Warriors -3", "warriors +3.5"},
	}
	for _, pair := range same {
		assert.Equal(t, CanonicalPick(pair[0]), CanonicalPick(pair[1]),
			"%q should match %q", pair[0], pair[1])
	}
}

func TestCanonicalPickDistinctions(t *testing.T) {
	different := [][2]string{
		{"Lakers", "Warriors"},
		{"Over 228.5", "Under 228.5"},
		{"Warriors -3", "no bet"},
	}
	for _, pair := range different {
		assert.NotEqual(t, CanonicalPick(pair[0]), CanonicalPick(pair[1]),
			"%q should not match %q", pair[0], pair[1])
	}
}

func TestCanonicalPickKeepsDigitsInsideNames(t *testing.T) {
	// The team name's digits are not a betting number.
	assert.Equal(t, "76ers", CanonicalPick("76ers -2.5"))
}

func TestCanonicalPickEmpty(t *testing.T) {
	assert.Equal(t, "", CanonicalPick(""))
	assert.Equal(t, "", CanonicalPick("   "))
}
