package calculator

import "github.com/Areg888/toolbox-app/internal/calculator/engine"

// CalcRequest is the JSON body for binary operations.
type CalcRequest struct {
	A float64 `json:"a"`
	B float64 `json:"b"`
}

// CalcResponse is the JSON response for stateless calculator endpoints.
type CalcResponse struct {
	Operation string  `json:"operation"`
	A         float64 `json:"a"`
	B         float64 `json:"b,omitempty"`
	Result    float64 `json:"result"`
}

// FunctionRequest is the JSON body for POST /calculator/function/{name}.
type FunctionRequest struct {
	X float64 `json:"x"`
}

// ChainStep describes a single step in a chained calculation.
type ChainStep struct {
	Op    engine.Operator `json:"op"`    // "add", "+", "multiply", "×", ...
	Value float64         `json:"value"` // the operand applied with the running total
}

// ChainRequest is the JSON body for POST /calculator/chain.
type ChainRequest struct {
	Initial float64     `json:"initial"`
	Steps   []ChainStep `json:"steps"`
}

// ChainResponse is the JSON response for POST /calculator/chain.
type ChainResponse struct {
	Initial float64       `json:"initial"`
	Steps   []ChainResult `json:"steps"`
	Result  float64       `json:"result"`
}

// ChainResult records one executed step.
type ChainResult struct {
	Op     string  `json:"op"`
	Value  float64 `json:"value"`
	Result float64 `json:"result"`
}

// SessionResponse carries a session ID and its current display state.
type SessionResponse struct {
	ID    string          `json:"id"`
	State engine.Snapshot `json:"state"`
}

// InputRequest is the JSON body for POST /calculator/sessions/{id}/input.
// Exactly one of Tokens or Keys must be set.
type InputRequest struct {
	Tokens []engine.Token `json:"tokens,omitempty"`
	Keys   []string       `json:"keys,omitempty"`
}

// StreamMessage is one inbound websocket frame: either a key press or a
// token.
type StreamMessage struct {
	Key   string        `json:"key,omitempty"`
	Token *engine.Token `json:"token,omitempty"`
}

// StreamFrame is one outbound websocket frame.
type StreamFrame struct {
	State *engine.Snapshot `json:"state,omitempty"`
	Error string           `json:"error,omitempty"`
}
