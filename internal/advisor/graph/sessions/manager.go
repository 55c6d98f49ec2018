package sessions

import (
	"context"
	"errors"
	"strings"

	"github.com/cloudwego/eino/schema"

	"github.com/petrolito-ai/advisor/internal/advisor/dialog"
	"github.com/petrolito-ai/advisor/internal/advisor/model"
	errx "github.com/petrolito-ai/advisor/internal/core/error"
	logx "github.com/petrolito-ai/advisor/pkg/logger"
)

type SessionManager struct {
	repo            model.SessionRepository
	engine          *dialog.Engine
	historyMaxTurns int
}

func NewSessionManager(repo model.SessionRepository, engine *dialog.Engine, config model.ConversationConfig) *SessionManager {
	return &SessionManager{
		repo:            repo,
		engine:          engine,
		historyMaxTurns: config.History.MaxTurns,
	}
}

// LoadState returns the stored state of the session, or a fresh one when the
// session is new. A stored state that cannot be decoded or that breaks the
// topic/depth invariants is discarded. Parameters missing from an older state get their defaults.
func (sm *SessionManager) LoadState(ctx context.Context, sessionID string) (*model.ConversationState, error) {
	st, err := sm.repo.LoadState(ctx, sessionID)
	if errors.Is(err, errx.ErrSessionNotFound) {
		logx.Debug().Str("session_id", sessionID).Msg("new session")
		return sm.engine.NewState(), nil
	}
	if errors.Is(err, errx.ErrCorruptSession) {
		logx.Warn().
			Str("session_id", sessionID).
			Err(err).
			Msg("stored session state is unreadable; starting over")
		return sm.engine.NewState(), nil
	}
	if err != nil {
		return nil, err
	}

	if !st.Valid() {
		logx.Warn().
			Str("session_id", sessionID).
			Int("depth", st.DepthLevel).
			Str("topic", st.CurrentTopic.String()).
			Msg("stored session state is invalid; starting over")
		return sm.engine.NewState(), nil
	}

	if st.LearnedParameters == nil {
		st.LearnedParameters = make(map[model.ParamName]float64)
	}
	for name, v := range sm.engine.Knowledge().Defaults() {
		if _, ok := st.LearnedParameters[name]; !ok {
			st.LearnedParameters[name] = v
		}
	}
	return st, nil
}

// SaveTurn persists the state and appends the user query and the rendered
// response to the transcript in a single repository write.
func (sm *SessionManager) SaveTurn(ctx context.Context, sessionID, query string, state *model.ConversationState, resp *model.Response) error {
	return sm.repo.SaveTurn(ctx, sessionID, state,
		schema.UserMessage(query),
		schema.AssistantMessage(Transcript(resp), nil),
	)
}

// RecentHistory returns the last configured number of transcript messages.
func (sm *SessionManager) RecentHistory(ctx context.Context, sessionID string) ([]*schema.Message, error) {
	history, err := sm.repo.LoadHistory(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return trimTail(history.Messages, sm.historyMaxTurns), nil
}

func (sm *SessionManager) MessageCount(ctx context.Context, sessionID string) (int, error) {
	return sm.repo.GetMessageCount(ctx, sessionID)
}

// Reset drops everything stored for the session.
func (sm *SessionManager) Reset(ctx context.Context, sessionID string) error {
	return sm.repo.ClearSession(ctx, sessionID)
}

// Transcript flattens a response into the text kept in the session history.
func Transcript(resp *model.Response) string {
	if resp == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(resp.Title)
	for _, s := range []string{resp.Body, resp.KeyFact, resp.GuidanceFooter} {
		if s == "" {
			continue
		}
		b.WriteString("\n")
		b.WriteString(s)
	}
	return b.String()
}

// ====================== Helper function ======================
func trimTail(messages []*schema.Message, maxTurns int) []*schema.Message {
	if maxTurns <= 0 || len(messages) <= maxTurns {
		result := make([]*schema.Message, len(messages))
		copy(result, messages)
		return result
	}
	source := messages[len(messages)-maxTurns:]
	result := make([]*schema.Message, len(source))
	copy(result, source)
	return result
}
