package model

import "time"

// TurnState is per-invocation local state of the turn graph.
// It is registered via compose.WithGenLocalState and touched only inside
// state handlers or compose.ProcessState.
type TurnState struct {
	SessionID string
	StartedAt time.Time
	Intent    Intent
	Updates   int
}

// QueryInput is the public input of one turn.
type QueryInput struct {
	SessionID string `json:"session_id"`
	Query     string `json:"query"`
}

// Turn is the value flowing between graph nodes.
type Turn struct {
	SessionID string
	Query     string
	State     *ConversationState
	Intent    Intent
	Updates   []ParameterUpdate
	Response  *Response
}
