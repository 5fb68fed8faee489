// Package agent drives one model's turn to a final answer, transparently
// resolving tool-call rounds through the dispatch engine, and runs two such
// agents side by side as a duet with consensus arbitration.
package agent

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"courtside/model"
	"courtside/tools"

	mcptypes "github.com/mark3labs/mcp-go/mcp"
)

const (
	defaultMaxRounds    = 8
	defaultModelTimeout = 2 * time.Minute
)

// Agent owns one side of the conversation: a provider, a persona prompt,
// and access to the shared tool dispatcher.
type Agent struct {
	name         string
	systemPrompt string
	provider     model.Provider
	dispatcher   *tools.Dispatcher
	logger       *slog.Logger
	location     *time.Location
	maxRounds    int
	modelTimeout time.Duration
	now          func() time.Time
}

// Option configures an Agent.
type Option func(*Agent)

// WithMaxRounds caps tool-call rounds per turn.
func WithMaxRounds(n int) Option {
	return func(a *Agent) {
		if n > 0 {
			a.maxRounds = n
		}
	}
}

// WithModelTimeout bounds each top-level model call.
func WithModelTimeout(d time.Duration) Option {
	return func(a *Agent) { a.modelTimeout = d }
}

// WithLogger sets the structured logger for turn events.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Agent) { a.logger = logger }
}

// WithLocation sets the timezone used for the live-context preamble.
func WithLocation(loc *time.Location) Option {
	return func(a *Agent) {
		if loc != nil {
			a.location = loc
		}
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(a *Agent) { a.now = now }
}

// New creates an agent. The preamble timezone defaults to US Central, where
// most national games are scheduled.
func New(name, systemPrompt string, provider model.Provider, dispatcher *tools.Dispatcher, opts ...Option) *Agent {
	loc, err := time.LoadLocation("America/Chicago")
	if err != nil {
		loc = time.UTC
	}
	a := &Agent{
		name:         name,
		systemPrompt: systemPrompt,
		provider:     provider,
		dispatcher:   dispatcher.Scoped(name),
		logger:       slog.Default(),
		location:     loc,
		maxRounds:    defaultMaxRounds,
		modelTimeout: defaultModelTimeout,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Name returns the agent's display name.
func (a *Agent) Name() string {
	return a.name
}

// Provider returns the agent's model backend.
func (a *Agent) Provider() model.Provider {
	return a.provider
}

// Respond runs one full turn in batch mode and returns the final answer.
// Satisfies the repair round's Responder contract.
func (a *Agent) Respond(ctx context.Context, history []model.Message) (string, error) {
	return a.run(ctx, history, nil)
}

// RespondStream runs one full turn, yielding content fragments through
// onDelta as they arrive. Tool-call rounds are resolved silently between
// fragments.
func (a *Agent) RespondStream(ctx context.Context, history []model.Message, onDelta model.StreamCallback) (string, error) {
	return a.run(ctx, history, onDelta)
}

func (a *Agent) run(ctx context.Context, history []model.Message, onDelta model.StreamCallback) (string, error) {
	messages := a.seed(history)
	catalog := a.dispatcher.Catalog()
	start := a.now()

	for round := 1; round <= a.maxRounds; round++ {
		completion, err := a.modelRound(ctx, messages, catalog, onDelta)
		if err != nil {
			return "", &UpstreamError{Agent: a.name, Err: err}
		}

		if len(completion.ToolCalls) == 0 {
			event := "agent.chat.complete"
			if onDelta != nil {
				event = "agent.stream.complete"
			}
			a.logger.Info(event,
				"agent", a.name,
				"tool_call_rounds", round-1,
				"response_len", len(completion.Content),
				"latency_ms", time.Since(start).Milliseconds(),
			)
			return completion.Content, nil
		}

		messages = append(messages, model.Message{
			Role:      model.RoleAssistant,
			Name:      a.name,
			Content:   completion.Content,
			ToolCalls: completion.ToolCalls,
			Timestamp: a.now(),
		})

		batch := make([]tools.Invocation, len(completion.ToolCalls))
		for i, tc := range completion.ToolCalls {
			batch[i] = tools.Invocation{
				ID:           tc.ID,
				Name:         tc.Name,
				Arguments:    tc.Arguments,
				RawArguments: tc.RawArguments,
			}
		}
		for _, res := range a.dispatcher.Run(ctx, batch) {
			messages = append(messages, model.Message{
				Role:       model.RoleTool,
				Name:       res.Name,
				Content:    res.Content,
				ToolCallID: res.InvocationID,
				Timestamp:  a.now(),
			})
		}
	}

	return "", fmt.Errorf("%s: %w after %d rounds", a.name, ErrRoundLimit, a.maxRounds)
}

func (a *Agent) modelRound(ctx context.Context, messages []model.Message, catalog []mcptypes.Tool, onDelta model.StreamCallback) (*model.Completion, error) {
	if a.modelTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.modelTimeout)
		defer cancel()
	}
	if onDelta != nil {
		return a.provider.Stream(ctx, messages, catalog, onDelta)
	}
	return a.provider.Complete(ctx, messages, catalog)
}

// seed prepends the persona prompt plus the live-context preamble so the
// model can classify games as live, upcoming, or finished.
func (a *Agent) seed(history []model.Message) []model.Message {
	messages := make([]model.Message, 0, len(history)+1)
	if a.systemPrompt != "" {
		messages = append(messages, model.NewSystemMessage(a.systemPrompt+"\n\n"+a.preamble()))
	}
	return append(messages, history...)
}

func (a *Agent) preamble() string {
	now := a.now().In(a.location)
	return fmt.Sprintf(
		"Current date and time: %s. Treat games tipping off before this time today as live or finished, later tip-offs as upcoming.",
		now.Format("Monday, January 2, 2006 at 3:04 PM MST"),
	)
}
