package repo

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/cloudwego/eino/schema"

	"github.com/petrolito-ai/advisor/internal/advisor/model"
	errx "github.com/petrolito-ai/advisor/internal/core/error"
)

// MemorySessionRepository keeps sessions in process memory. States are stored
// as JSON so callers never share a pointer with the store.
type MemorySessionRepository struct {
	mu       sync.Mutex
	states   map[string][]byte
	messages map[string][]*schema.Message
}

func NewMemorySessionRepository() *MemorySessionRepository {
	return &MemorySessionRepository{
		states:   make(map[string][]byte),
		messages: make(map[string][]*schema.Message),
	}
}

func (m *MemorySessionRepository) LoadState(_ context.Context, sessionID string) (*model.ConversationState, error) {
	m.mu.Lock()
	raw, ok := m.states[sessionID]
	m.mu.Unlock()
	if !ok {
		return nil, errx.ErrSessionNotFound
	}
	var st model.ConversationState
	if err := json.Unmarshal(raw, &st); err != nil {
		return nil, fmt.Errorf("%w: unmarshal: %w", errx.ErrCorruptSession, err)
	}
	return &st, nil
}

func (m *MemorySessionRepository) SaveState(_ context.Context, sessionID string, state *model.ConversationState) error {
	b, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal session state: %w", err)
	}
	m.mu.Lock()
	m.states[sessionID] = b
	m.mu.Unlock()
	return nil
}

func (m *MemorySessionRepository) SaveTurn(_ context.Context, sessionID string, state *model.ConversationState, messages ...*schema.Message) error {
	b, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal session state: %w", err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.states[sessionID] = b
	m.messages[sessionID] = append(m.messages[sessionID], messages...)
	return nil
}

func (m *MemorySessionRepository) AddMessage(_ context.Context, sessionID string, message *schema.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages[sessionID] = append(m.messages[sessionID], message)
	return nil
}

func (m *MemorySessionRepository) LoadHistory(_ context.Context, sessionID string) (*model.SessionHistory, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	msgs := make([]*schema.Message, len(m.messages[sessionID]))
	copy(msgs, m.messages[sessionID])
	return &model.SessionHistory{SessionID: sessionID, Messages: msgs}, nil
}

func (m *MemorySessionRepository) ClearSession(_ context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.states, sessionID)
	delete(m.messages, sessionID)
	return nil
}

func (m *MemorySessionRepository) GetMessageCount(_ context.Context, sessionID string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.messages[sessionID]), nil
}

var _ model.SessionRepository = (*MemorySessionRepository)(nil)
