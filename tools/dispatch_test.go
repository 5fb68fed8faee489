package tools

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	mcptypes "github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testTool(name string, fn func(ctx context.Context, args map[string]any) (string, error)) Tool {
	return &funcTool{
		def: mcptypes.Tool{Name: name, InputSchema: objectSchema(map[string]any{})},
		fn:  fn,
	}
}

func echoTool(name string) Tool {
	return testTool(name, func(ctx context.Context, args map[string]any) (string, error) {
		return "result from " + name, nil
	})
}

func TestDispatchPreservesRequestOrder(t *testing.T) {
	registry := NewRegistry()
	// slow finishes last; its result must still come first.
	require.NoError(t, registry.Register(testTool("slow", func(ctx context.Context, args map[string]any) (string, error) {
		time.Sleep(50 * time.Millisecond)
		return "slow done", nil
	})))
	require.NoError(t, registry.Register(echoTool("fast")))

	d := NewDispatcher(registry, WithLogger(quietLogger()))
	results := d.Run(context.Background(), []Invocation{
		{ID: "call_1", Name: "slow", Arguments: map[string]any{}},
		{ID: "call_2", Name: "fast", Arguments: map[string]any{}},
		{ID: "call_3", Name: "fast", Arguments: map[string]any{}},
	})

	require.Len(t, results, 3)
	assert.Equal(t, "call_1", results[0].InvocationID)
	assert.Equal(t, "slow done", results[0].Content)
	assert.Equal(t, "call_2", results[1].InvocationID)
	assert.Equal(t, "call_3", results[2].InvocationID)
}

func TestDispatchIsolatesFailures(t *testing.T) {
	registry := NewRegistry()
	require.NoError(t, registry.Register(echoTool("ok")))
	require.NoError(t, registry.Register(testTool("fails", func(ctx context.Context, args map[string]any) (string, error) {
		return "", errors.New("boom")
	})))
	require.NoError(t, registry.Register(testTool("panics", func(ctx context.Context, args map[string]any) (string, error) {
		panic("unexpected state")
	})))

	d := NewDispatcher(registry, WithLogger(quietLogger()))
	results := d.Run(context.Background(), []Invocation{
		{ID: "a", Name: "ok", Arguments: map[string]any{}},
		{ID: "b", Name: "fails", Arguments: map[string]any{}},
		{ID: "c", Name: "panics", Arguments: map[string]any{}},
		{ID: "d", Name: "ok", Arguments: map[string]any{}},
	})

	require.Len(t, results, 4)
	assert.False(t, results[0].IsError)
	assert.True(t, results[1].IsError)
	assert.Contains(t, results[1].Content, "Error executing fails")
	assert.True(t, results[2].IsError)
	assert.Contains(t, results[2].Content, "panicked")
	assert.False(t, results[3].IsError)
}

func TestDispatchUnknownTool(t *testing.T) {
	d := NewDispatcher(NewRegistry(), WithLogger(quietLogger()))
	results := d.Run(context.Background(), []Invocation{
		{ID: "x", Name: "get_moon_phase", Arguments: map[string]any{}},
	})

	require.Len(t, results, 1)
	assert.True(t, results[0].IsError)
	assert.Equal(t, "Error: Tool get_moon_phase not found.", results[0].Content)
}

func TestDispatchMalformedArguments(t *testing.T) {
	registry := NewRegistry()
	require.NoError(t, registry.Register(echoTool("ok")))

	d := NewDispatcher(registry, WithLogger(quietLogger()))
	results := d.Run(context.Background(), []Invocation{
		{ID: "x", Name: "ok", Arguments: nil, RawArguments: `{"date": `},
	})

	require.Len(t, results, 1)
	assert.True(t, results[0].IsError)
	assert.Contains(t, results[0].Content, "invalid arguments")
}

func TestDispatchBoundedConcurrency(t *testing.T) {
	var running, peak int64
	registry := NewRegistry()
	require.NoError(t, registry.Register(testTool("work", func(ctx context.Context, args map[string]any) (string, error) {
		n := atomic.AddInt64(&running, 1)
		for {
			p := atomic.LoadInt64(&peak)
			if n <= p || atomic.CompareAndSwapInt64(&peak, p, n) {
				break
			}
		}
		time.Sleep(20 * time.Millisecond)
		atomic.AddInt64(&running, -1)
		return "done", nil
	})))

	d := NewDispatcher(registry, WithWorkers(2), WithLogger(quietLogger()))

	batch := make([]Invocation, 10)
	for i := range batch {
		batch[i] = Invocation{ID: fmt.Sprintf("c%d", i), Name: "work", Arguments: map[string]any{}}
	}
	results := d.Run(context.Background(), batch)

	require.Len(t, results, 10)
	assert.LessOrEqual(t, atomic.LoadInt64(&peak), int64(2))
}

func TestDispatchToolTimeout(t *testing.T) {
	registry := NewRegistry()
	require.NoError(t, registry.Register(testTool("hangs", func(ctx context.Context, args map[string]any) (string, error) {
		<-ctx.Done()
		return "", ctx.Err()
	})))
	require.NoError(t, registry.Register(echoTool("ok")))

	d := NewDispatcher(registry, WithToolTimeout(20*time.Millisecond), WithLogger(quietLogger()))
	results := d.Run(context.Background(), []Invocation{
		{ID: "a", Name: "hangs", Arguments: map[string]any{}},
		{ID: "b", Name: "ok", Arguments: map[string]any{}},
	})

	// The batch completes even though one tool timed out.
	require.Len(t, results, 2)
	assert.True(t, results[0].IsError)
	assert.False(t, results[1].IsError)
}

func TestDispatchStartHook(t *testing.T) {
	registry := NewRegistry()
	require.NoError(t, registry.Register(echoTool("ok")))

	var mu sync.Mutex
	var seen []string
	d := NewDispatcher(registry,
		WithLogger(quietLogger()),
		WithStartHook(func(name string, args map[string]any) {
			mu.Lock()
			seen = append(seen, name)
			mu.Unlock()
		}),
	)

	d.Run(context.Background(), []Invocation{
		{ID: "a", Name: "ok", Arguments: map[string]any{}},
		{ID: "b", Name: "ok", Arguments: map[string]any{}},
	})

	assert.Len(t, seen, 2)
}

func TestScopedDispatchEventsCarryAgentName(t *testing.T) {
	registry := NewRegistry()
	require.NoError(t, registry.Register(echoTool("ok")))

	var buf bytes.Buffer
	d := NewDispatcher(registry, WithLogger(slog.New(slog.NewTextHandler(&buf, nil))))

	d.Scoped("The Sharp").Run(context.Background(), []Invocation{
		{ID: "a", Name: "ok", Arguments: map[string]any{}},
		{ID: "b", Name: "get_moon_phase", Arguments: map[string]any{}},
	})

	logs := buf.String()
	assert.Contains(t, logs, "agent.tool_call.start")
	assert.Contains(t, logs, "agent.tool_call.ok")
	assert.Contains(t, logs, "agent.tool_call.not_found")
	for _, line := range strings.Split(strings.TrimSpace(logs), "\n") {
		assert.Contains(t, line, `agent="The Sharp"`)
	}
}

func TestDispatchPanickingHookDoesNotAbortCall(t *testing.T) {
	registry := NewRegistry()
	require.NoError(t, registry.Register(echoTool("ok")))

	d := NewDispatcher(registry,
		WithLogger(quietLogger()),
		WithStartHook(func(name string, args map[string]any) {
			panic("hook blew up")
		}),
	)

	results := d.Run(context.Background(), []Invocation{
		{ID: "a", Name: "ok", Arguments: map[string]any{}},
	})

	require.Len(t, results, 1)
	assert.False(t, results[0].IsError)
	assert.Equal(t, "result from ok", results[0].Content)
}
