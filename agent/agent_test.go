package agent

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"courtside/model"
	"courtside/provider/testutil"
	"courtside/tools"

	mcptypes "github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func fixedTool(name, result string) tools.Tool {
	return recordingTool(name, result, nil)
}

type toolFunc struct {
	def mcptypes.Tool
	fn  func(ctx context.Context, args map[string]any) (string, error)
}

func (t *toolFunc) Definition() mcptypes.Tool { return t.def }
func (t *toolFunc) Call(ctx context.Context, args map[string]any) (string, error) {
	return t.fn(ctx, args)
}

func recordingTool(name, result string, calls *int) tools.Tool {
	return &toolFunc{
		def: mcptypes.Tool{Name: name, InputSchema: mcptypes.ToolInputSchema{Type: "object"}},
		fn: func(ctx context.Context, args map[string]any) (string, error) {
			if calls != nil {
				*calls++
			}
			return result, nil
		},
	}
}

func testDispatcher(t *testing.T, ts ...tools.Tool) *tools.Dispatcher {
	t.Helper()
	registry := tools.NewRegistry()
	require.NoError(t, registry.RegisterAll(ts...))
	return tools.NewDispatcher(registry, tools.WithLogger(quietLogger()))
}

func toolRound(calls ...model.ToolCall) testutil.ScriptedRound {
	return testutil.ScriptedRound{Completion: &model.Completion{ToolCalls: calls}}
}

func finalRound(text string) testutil.ScriptedRound {
	return testutil.ScriptedRound{Completion: &model.Completion{Content: text}}
}

func TestRespondWithoutToolCalls(t *testing.T) {
	mock := testutil.NewMockProvider("test-model", finalRound("Lakers look strong tonight."))
	ag := New("The Sharp", "persona", mock, testDispatcher(t), WithLogger(quietLogger()))

	text, err := ag.Respond(context.Background(), []model.Message{model.NewUserMessage("thoughts?")})
	require.NoError(t, err)
	assert.Equal(t, "Lakers look strong tonight.", text)
	assert.Equal(t, 1, mock.CallCount())
}

func TestRespondResolvesToolRounds(t *testing.T) {
	injuryCalls := 0
	mock := testutil.NewMockProvider("test-model",
		toolRound(model.ToolCall{ID: "c1", Name: "get_injuries", Arguments: map[string]any{"team_name": "Heat"}}),
		finalRound("Heat are healthy. Pick: Heat\nReason: Full roster."),
	)
	ag := New("The Sharp", "persona", mock,
		testDispatcher(t, recordingTool("get_injuries", `{"injuries":[]}`, &injuryCalls)),
		WithLogger(quietLogger()))

	text, err := ag.Respond(context.Background(), []model.Message{model.NewUserMessage("Heat tonight?")})
	require.NoError(t, err)
	assert.Contains(t, text, "Heat are healthy")
	assert.Equal(t, 1, injuryCalls)
	assert.Equal(t, 2, mock.CallCount())

	// The second round must carry the intent and the tool result.
	second := mock.Calls[1].Messages
	var sawIntent, sawResult bool
	for _, msg := range second {
		if msg.Role == model.RoleAssistant && len(msg.ToolCalls) > 0 {
			sawIntent = true
		}
		if msg.Role == model.RoleTool && msg.ToolCallID == "c1" {
			sawResult = true
			assert.Equal(t, `{"injuries":[]}`, msg.Content)
		}
	}
	assert.True(t, sawIntent)
	assert.True(t, sawResult)
}

func TestRespondToolResultsOrderAligned(t *testing.T) {
	mock := testutil.NewMockProvider("test-model",
		toolRound(
			model.ToolCall{ID: "c1", Name: "alpha", Arguments: map[string]any{}},
			model.ToolCall{ID: "c2", Name: "beta", Arguments: map[string]any{}},
		),
		finalRound("done"),
	)
	ag := New("The Sharp", "persona", mock,
		testDispatcher(t, fixedTool("alpha", "A"), fixedTool("beta", "B")),
		WithLogger(quietLogger()))

	_, err := ag.Respond(context.Background(), nil)
	require.NoError(t, err)

	var results []model.Message
	for _, msg := range mock.Calls[1].Messages {
		if msg.Role == model.RoleTool {
			results = append(results, msg)
		}
	}
	require.Len(t, results, 2)
	assert.Equal(t, "c1", results[0].ToolCallID)
	assert.Equal(t, "A", results[0].Content)
	assert.Equal(t, "c2", results[1].ToolCallID)
	assert.Equal(t, "B", results[1].Content)
}

func TestRespondRoundLimit(t *testing.T) {
	// The model never stops asking for tools.
	loop := toolRound(model.ToolCall{ID: "c", Name: "alpha", Arguments: map[string]any{}})
	mock := testutil.NewMockProvider("test-model", loop)
	ag := New("The Sharp", "persona", mock,
		testDispatcher(t, fixedTool("alpha", "A")),
		WithMaxRounds(3), WithLogger(quietLogger()))

	_, err := ag.Respond(context.Background(), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRoundLimit)
	assert.Equal(t, 3, mock.CallCount())
}

func TestRespondUpstreamErrorIsBounded(t *testing.T) {
	mock := testutil.NewMockProvider("test-model", testutil.ScriptedRound{
		Err: errors.New(strings.Repeat("x", 1000)),
	})
	ag := New("The Sharp", "persona", mock, testDispatcher(t), WithLogger(quietLogger()))

	_, err := ag.Respond(context.Background(), nil)
	require.Error(t, err)

	var upstream *UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.Less(t, len(err.Error()), 300)
	assert.Contains(t, err.Error(), "The Sharp")
}

func TestRespondStreamYieldsDeltas(t *testing.T) {
	mock := testutil.NewMockProvider("test-model", testutil.ScriptedRound{
		Completion: &model.Completion{Content: "Lakers by six."},
		Chunks:     []string{"Lakers ", "by ", "six."},
	})
	ag := New("The Sharp", "persona", mock, testDispatcher(t), WithLogger(quietLogger()))

	var chunks []string
	text, err := ag.RespondStream(context.Background(), nil, func(chunk string) error {
		chunks = append(chunks, chunk)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "Lakers by six.", text)
	assert.Equal(t, []string{"Lakers ", "by ", "six."}, chunks)
	assert.True(t, mock.Calls[0].Streamed)
}

func TestToolEventsCarryAgentName(t *testing.T) {
	registry := tools.NewRegistry()
	require.NoError(t, registry.Register(fixedTool("get_injuries", "{}")))

	// Both agents share this dispatcher in production, so its events need
	// the agent attribute to stay attributable.
	var buf bytes.Buffer
	dispatcher := tools.NewDispatcher(registry,
		tools.WithLogger(slog.New(slog.NewTextHandler(&buf, nil))))

	mock := testutil.NewMockProvider("test-model",
		toolRound(model.ToolCall{ID: "c1", Name: "get_injuries", Arguments: map[string]any{}}),
		finalRound("done"),
	)
	ag := New("The Contrarian", "persona", mock, dispatcher, WithLogger(quietLogger()))

	_, err := ag.Respond(context.Background(), nil)
	require.NoError(t, err)

	logs := buf.String()
	assert.Contains(t, logs, "agent.tool_call.start")
	assert.Contains(t, logs, "agent.tool_call.ok")
	assert.Contains(t, logs, `agent="The Contrarian"`)
}

func TestSeedPrependsPersonaWithPreamble(t *testing.T) {
	mock := testutil.NewMockProvider("test-model", finalRound("ok"))
	ag := New("The Sharp", "You are The Sharp.", mock, testDispatcher(t), WithLogger(quietLogger()))

	_, err := ag.Respond(context.Background(), []model.Message{model.NewUserMessage("hi")})
	require.NoError(t, err)

	seeded := mock.Calls[0].Messages
	require.NotEmpty(t, seeded)
	assert.Equal(t, model.RoleSystem, seeded[0].Role)
	assert.Contains(t, seeded[0].Content, "You are The Sharp.")
	assert.Contains(t, seeded[0].Content, "Current date and time:")
}

func TestToolCatalogReachesProvider(t *testing.T) {
	mock := testutil.NewMockProvider("test-model", finalRound("ok"))
	ag := New("The Sharp", "persona", mock,
		testDispatcher(t, fixedTool("get_injuries", "{}")),
		WithLogger(quietLogger()))

	_, err := ag.Respond(context.Background(), nil)
	require.NoError(t, err)

	require.Len(t, mock.Calls[0].Tools, 1)
	assert.Equal(t, "get_injuries", mock.Calls[0].Tools[0].Name)
}
