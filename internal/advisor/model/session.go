package model

import (
	"context"

	"github.com/cloudwego/eino/schema"
)

type SessionRepository interface {
	// LoadState returns the stored state, or errx.ErrSessionNotFound.
	LoadState(ctx context.Context, sessionID string) (*ConversationState, error)

	// SaveState replaces the stored state for the session
	SaveState(ctx context.Context, sessionID string, state *ConversationState) error

	// SaveTurn stores the state and appends the turn's messages in one write
	SaveTurn(ctx context.Context, sessionID string, state *ConversationState, messages ...*schema.Message) error

	// AddMessage appends a message to the session transcript
	AddMessage(ctx context.Context, sessionID string, message *schema.Message) error

	// LoadHistory retrieves the session transcript
	LoadHistory(ctx context.Context, sessionID string) (*SessionHistory, error)

	// ClearSession removes state and transcript
	ClearSession(ctx context.Context, sessionID string) error

	// GetMessageCount returns the number of transcript messages
	GetMessageCount(ctx context.Context, sessionID string) (int, error)
}

// SessionHistory is a loaded transcript.
type SessionHistory struct {
	SessionID string
	Messages  []*schema.Message
}
