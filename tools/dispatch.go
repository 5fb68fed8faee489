package tools

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"courtside/model"

	mcptypes "github.com/mark3labs/mcp-go/mcp"
)

// Invocation is one tool call requested by the model within a round.
// Arguments is nil when the model's argument payload could not be parsed.
type Invocation struct {
	ID           string
	Name         string
	Arguments    map[string]any
	RawArguments string
}

// Result is the outcome of one invocation. Results are always returned in
// the same order as the invocations that produced them.
type Result struct {
	InvocationID string
	Name         string
	Content      string
	IsError      bool
}

// StartHook fires synchronously immediately before a tool executes, e.g.
// for UI feedback. A panicking hook is logged and swallowed; it never
// aborts the tool call.
type StartHook func(name string, args map[string]any)

const defaultWorkers = 5

// Dispatcher executes one batch of invocations concurrently on a bounded
// worker pool, preserving request order in the results.
type Dispatcher struct {
	registry *Registry
	logger   *slog.Logger
	workers  int
	timeout  time.Duration
	hook     StartHook
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithWorkers bounds the number of concurrently executing tools.
func WithWorkers(n int) DispatcherOption {
	return func(d *Dispatcher) {
		if n > 0 {
			d.workers = n
		}
	}
}

// WithToolTimeout bounds each individual tool execution. A timed-out tool
// yields an error-valued result so its batch still completes.
func WithToolTimeout(timeout time.Duration) DispatcherOption {
	return func(d *Dispatcher) { d.timeout = timeout }
}

// WithStartHook installs the pre-execution callback.
func WithStartHook(hook StartHook) DispatcherOption {
	return func(d *Dispatcher) { d.hook = hook }
}

// WithLogger sets the structured logger used for tool-call events.
func WithLogger(logger *slog.Logger) DispatcherOption {
	return func(d *Dispatcher) { d.logger = logger }
}

// NewDispatcher creates a dispatcher over the given registry.
func NewDispatcher(registry *Registry, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		registry: registry,
		logger:   slog.Default(),
		workers:  defaultWorkers,
		timeout:  30 * time.Second,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Catalog exposes the registry's tool definitions.
func (d *Dispatcher) Catalog() []mcptypes.Tool {
	return d.registry.Catalog()
}

// Scoped returns a dispatcher over the same registry and settings whose
// events carry the agent attribute. Agents dispatching concurrently share
// one registry, so without the attribute their interleaved tool-call
// events cannot be told apart.
func (d *Dispatcher) Scoped(agent string) *Dispatcher {
	clone := *d
	clone.logger = d.logger.With("agent", agent)
	return &clone
}

// Run executes every invocation in the batch and returns one result per
// invocation, order-aligned with the batch regardless of completion order.
// A failure in one invocation never aborts its siblings.
func (d *Dispatcher) Run(ctx context.Context, batch []Invocation) []Result {
	results := make([]Result, len(batch))

	var wg sync.WaitGroup
	slots := make(chan struct{}, d.workers)

	for i, inv := range batch {
		wg.Add(1)
		go func(i int, inv Invocation) {
			defer wg.Done()
			slots <- struct{}{}
			defer func() { <-slots }()
			results[i] = d.runOne(ctx, inv)
		}(i, inv)
	}
	wg.Wait()

	return results
}

func (d *Dispatcher) runOne(ctx context.Context, inv Invocation) Result {
	args := inv.Arguments
	if args == nil {
		// The provider could not parse the model's argument payload;
		// retry here so hand-built invocations with raw JSON still work.
		args = model.ParseToolArguments(inv.RawArguments)
		if args == nil {
			d.logger.Warn("agent.tool_call.bad_arguments", "tool", inv.Name)
			return Result{
				InvocationID: inv.ID,
				Name:         inv.Name,
				Content:      fmt.Sprintf("Error: invalid arguments for %s: not valid JSON.", inv.Name),
				IsError:      true,
			}
		}
	}

	d.logger.Info("agent.tool_call.start", "tool", inv.Name, "args", args)

	d.fireHook(inv.Name, args)

	t, ok := d.registry.Get(inv.Name)
	if !ok {
		d.logger.Warn("agent.tool_call.not_found", "tool", inv.Name)
		return Result{
			InvocationID: inv.ID,
			Name:         inv.Name,
			Content:      fmt.Sprintf("Error: Tool %s not found.", inv.Name),
			IsError:      true,
		}
	}

	callCtx := ctx
	if d.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}

	start := time.Now()
	content, err := safeCall(callCtx, t, args)
	latency := time.Since(start)

	if err != nil {
		d.logger.Error("agent.tool_call.error",
			"tool", inv.Name,
			"latency_ms", latency.Milliseconds(),
			"error", err.Error(),
		)
		return Result{
			InvocationID: inv.ID,
			Name:         inv.Name,
			Content:      fmt.Sprintf("Error executing %s: %v", inv.Name, err),
			IsError:      true,
		}
	}

	d.logger.Info("agent.tool_call.ok",
		"tool", inv.Name,
		"latency_ms", latency.Milliseconds(),
		"response_len", len(content),
	)
	return Result{InvocationID: inv.ID, Name: inv.Name, Content: content}
}

// safeCall isolates a panicking tool to its own error-valued result.
func safeCall(ctx context.Context, t Tool, args map[string]any) (content string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("tool panicked: %v", r)
		}
	}()
	return t.Call(ctx, args)
}

func (d *Dispatcher) fireHook(name string, args map[string]any) {
	if d.hook == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			d.logger.Warn("agent.tool_callback.failed", "error", fmt.Sprint(r))
		}
	}()
	d.hook(name, args)
}
