package agent

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"courtside/consensus"
	"courtside/model"
	"courtside/session"
)

const defaultHistoryWindow = 30

// Duet runs two agents side by side over a shared session history and
// arbitrates their decision cards into one verdict per user message.
type Duet struct {
	first    *Agent
	second   *Agent
	sessions session.Store
	logger   *slog.Logger
	window   int
}

// DuetOption configures a Duet.
type DuetOption func(*Duet)

// WithHistoryWindow bounds how many trailing messages a session keeps.
func WithHistoryWindow(n int) DuetOption {
	return func(d *Duet) {
		if n > 0 {
			d.window = n
		}
	}
}

// WithDuetLogger sets the structured logger.
func WithDuetLogger(logger *slog.Logger) DuetOption {
	return func(d *Duet) { d.logger = logger }
}

// NewDuet creates a duet over the two agents and the session store.
func NewDuet(first, second *Agent, sessions session.Store, opts ...DuetOption) *Duet {
	d := &Duet{
		first:    first,
		second:   second,
		sessions: sessions,
		logger:   slog.Default(),
		window:   defaultHistoryWindow,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Reply is one agent's finalized side of a turn. Text keeps any partial
// streamed output even when Err is set.
type Reply struct {
	Agent string
	Text  string
	Card  consensus.Card
	Err   error
}

// TurnResult is the outcome of one user message: both replies plus the
// arbitrated verdict.
type TurnResult struct {
	Replies [2]Reply
	Verdict consensus.Verdict
}

// DeltaFunc receives streamed content fragments tagged with the emitting
// agent's name. Both agents stream from their own goroutines, so
// implementations must be safe for concurrent use. May be nil.
type DeltaFunc func(agentName, chunk string) error

// HandleMessage appends the user message to the session, runs both agents
// concurrently over a read-only snapshot of the history, persists their
// replies, and arbitrates the two decision cards.
func (d *Duet) HandleMessage(ctx context.Context, sessionID, text string, onDelta DeltaFunc) (*TurnResult, error) {
	if err := d.sessions.Append(sessionID, model.NewUserMessage(text)); err != nil {
		return nil, err
	}
	snapshot, err := d.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}

	agents := [2]*Agent{d.first, d.second}
	var replies [2]Reply

	var wg sync.WaitGroup
	for i, ag := range agents {
		wg.Add(1)
		go func(i int, ag *Agent) {
			defer wg.Done()
			replies[i] = d.runTurn(ctx, ag, snapshot, onDelta)
		}(i, ag)
	}
	wg.Wait()

	for _, r := range replies {
		if r.Text == "" {
			continue
		}
		err := d.sessions.Append(sessionID, model.Message{
			Role:      model.RoleAssistant,
			Name:      r.Agent,
			Content:   r.Text,
			Timestamp: time.Now(),
		})
		if err != nil {
			return nil, err
		}
	}
	if err := d.sessions.Trim(sessionID, d.window); err != nil {
		return nil, err
	}

	return &TurnResult{
		Replies: replies,
		Verdict: consensus.Arbitrate(replies[0].Card, replies[1].Card),
	}, nil
}

// runTurn drives one agent's streamed turn, captures partial text so an
// upstream failure still surfaces whatever was produced, and runs the
// single card-repair round on success.
func (d *Duet) runTurn(ctx context.Context, ag *Agent, snapshot []model.Message, onDelta DeltaFunc) Reply {
	var partial strings.Builder
	capture := func(chunk string) error {
		partial.WriteString(chunk)
		if onDelta != nil {
			return onDelta(ag.Name(), chunk)
		}
		return nil
	}

	text, err := ag.RespondStream(ctx, snapshot, capture)
	if err != nil {
		streamed := partial.String()
		return Reply{
			Agent: ag.Name(),
			Text:  streamed,
			Card:  consensus.ExtractCard(streamed),
			Err:   err,
		}
	}

	text, card := consensus.EnsureCard(ctx, ag, snapshot, text, d.logger)
	return Reply{Agent: ag.Name(), Text: text, Card: card}
}

// Agents returns both agent display names in turn order.
func (d *Duet) Agents() [2]string {
	return [2]string{d.first.Name(), d.second.Name()}
}

// RenderVerdict formats a verdict naming this duet's agents.
func (d *Duet) RenderVerdict(v consensus.Verdict) string {
	return consensus.RenderMessage(v, d.first.Name(), d.second.Name())
}

// Reset discards the session's history.
func (d *Duet) Reset(sessionID string) error {
	return d.sessions.Reset(sessionID)
}
