package consensus

import (
	"context"
	"log/slog"
	"strings"

	"courtside/model"
)

// Responder issues one non-streaming turn through the model interaction
// loop. Satisfied by *agent.Agent.
type Responder interface {
	Respond(ctx context.Context, history []model.Message) (string, error)
}

const repairPrompt = "Return ONLY this exact 3-line decision card based on your previous analysis. " +
	"No extra text.\n" +
	"Pick: <team/side | over | under | no bet>\n" +
	"Confidence: <0-100>\n" +
	"Reason: <one sentence, max 20 words>"

// EnsureCard guarantees a turn ends with a usable decision card when the
// model cooperates, issuing at most one repair round. When the text already
// carries a complete card, or the repair round fails or stays incomplete,
// the original text is returned unchanged. A successful repair appends the
// repaired card below the original answer and replaces the extracted card.
func EnsureCard(ctx context.Context, r Responder, history []model.Message, text string, logger *slog.Logger) (string, Card) {
	card := ExtractCard(text)
	if card.Complete() {
		return text, card
	}

	repairHistory := append(model.CloneHistory(history),
		model.Message{Role: model.RoleAssistant, Content: text},
		model.NewUserMessage(repairPrompt),
	)

	repaired, err := r.Respond(ctx, repairHistory)
	if err != nil {
		if logger != nil {
			logger.Warn("agent.card_repair.failed", "error", err.Error())
		}
		return text, card
	}

	repaired = strings.TrimSpace(repaired)
	repairedCard := ExtractCard(repaired)
	if !repairedCard.Complete() {
		return text, card
	}

	return strings.TrimRight(text, " \t\n") + "\n\n" + repaired, repairedCard
}
