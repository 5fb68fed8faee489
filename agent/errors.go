package agent

import (
	"errors"
	"fmt"
)

// ErrRoundLimit means a turn kept requesting tool calls past the round cap.
var ErrRoundLimit = errors.New("tool-call round limit exceeded")

// maxErrorLen bounds upstream error text surfaced to callers; provider SDKs
// can embed whole response bodies in their errors.
const maxErrorLen = 200

// UpstreamError wraps a failed top-level model call. Fatal to the turn that
// produced it; the message is bounded and human-readable.
type UpstreamError struct {
	Agent string
	Err   error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("model call failed for %s: %s", e.Agent, truncate(e.Err.Error(), maxErrorLen))
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
