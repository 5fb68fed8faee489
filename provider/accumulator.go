package provider

import (
	"sort"
	"strings"

	"courtside/model"

	"github.com/google/uuid"
)

// toolCallAccumulator assembles streamed tool-call fragments. Argument text
// arrives as incremental fragments tagged by a positional index across
// multiple stream events; fragments are concatenated per index until the
// call is promoted to a real invocation request.
type toolCallAccumulator struct {
	partials map[int64]*partialToolCall
}

type partialToolCall struct {
	id   string
	name strings.Builder
	args strings.Builder
}

// ready reports whether the partial can be promoted: a name has fully
// arrived. Arguments may legitimately be empty for zero-arg tools.
func (p *partialToolCall) ready() bool {
	return p.name.Len() > 0
}

func newToolCallAccumulator() *toolCallAccumulator {
	return &toolCallAccumulator{partials: make(map[int64]*partialToolCall)}
}

// add folds one stream fragment into the partial call at index.
func (a *toolCallAccumulator) add(index int64, id, nameFragment, argsFragment string) {
	p, ok := a.partials[index]
	if !ok {
		p = &partialToolCall{}
		a.partials[index] = p
	}
	if id != "" {
		p.id = id
	}
	p.name.WriteString(nameFragment)
	p.args.WriteString(argsFragment)
}

func (a *toolCallAccumulator) empty() bool {
	return len(a.partials) == 0
}

// promote converts every ready partial into a tool call, ordered by
// positional index. Calls the stream never named are dropped; calls the
// stream never gave an id are assigned one so results can reference them.
func (a *toolCallAccumulator) promote() []model.ToolCall {
	indexes := make([]int64, 0, len(a.partials))
	for idx := range a.partials {
		indexes = append(indexes, idx)
	}
	sort.Slice(indexes, func(i, j int) bool { return indexes[i] < indexes[j] })

	calls := make([]model.ToolCall, 0, len(indexes))
	for _, idx := range indexes {
		p := a.partials[idx]
		if !p.ready() {
			continue
		}
		id := p.id
		if id == "" {
			id = "call_" + uuid.NewString()
		}
		raw := p.args.String()
		calls = append(calls, model.ToolCall{
			ID:           id,
			Name:         p.name.String(),
			Arguments:    model.ParseToolArguments(raw),
			RawArguments: raw,
		})
	}
	return calls
}

// assignToolCallIDs fills in ids for calls whose provider never issued one.
func assignToolCallIDs(calls []model.ToolCall) {
	for i := range calls {
		if calls[i].ID == "" {
			calls[i].ID = "call_" + uuid.NewString()
		}
	}
}
