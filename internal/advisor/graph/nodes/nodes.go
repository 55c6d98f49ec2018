package nodes

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cloudwego/eino/compose"

	"github.com/petrolito-ai/advisor/internal/advisor/dialog"
	"github.com/petrolito-ai/advisor/internal/advisor/graph/sessions"
	"github.com/petrolito-ai/advisor/internal/advisor/model"
	logx "github.com/petrolito-ai/advisor/pkg/logger"
)

// NewInputConverterPreHandler resets the per-turn local state.
func NewInputConverterPreHandler() func(context.Context, model.QueryInput, *model.TurnState) (model.QueryInput, error) {
	return func(ctx context.Context, in model.QueryInput, s *model.TurnState) (model.QueryInput, error) {
		s.SessionID = strings.TrimSpace(in.SessionID)
		s.StartedAt = time.Now()
		s.Intent = model.Intent{}
		s.Updates = 0
		return in, nil
	}
}

// NewInputConverterNode loads the session state for the query.
func NewInputConverterNode(sm *sessions.SessionManager) *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, input model.QueryInput) (*model.Turn, error) {
		sessionID := strings.TrimSpace(input.SessionID)
		if sessionID == "" {
			return nil, fmt.Errorf("session id is required")
		}

		state, err := sm.LoadState(ctx, sessionID)
		if err != nil {
			return nil, fmt.Errorf("load session state: %w", err)
		}

		return &model.Turn{
			SessionID: sessionID,
			Query:     input.Query,
			State:     state,
		}, nil
	})
}

// NewClassifierNode runs intent classification.
func NewClassifierNode(engine *dialog.Engine) *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, turn *model.Turn) (*model.Turn, error) {
		turn.Intent = engine.Classify(turn.Query, turn.State)
		return turn, nil
	})
}

// NewClassifierPostHandler records the intent in local state.
func NewClassifierPostHandler() func(context.Context, *model.Turn, *model.TurnState) (*model.Turn, error) {
	return func(ctx context.Context, out *model.Turn, s *model.TurnState) (*model.Turn, error) {
		s.Intent = out.Intent
		logx.Debug().
			Str("session_id", s.SessionID).
			Str("intent", out.Intent.Kind.String()).
			Str("intent_topic", out.Intent.Topic.String()).
			Str("match", out.Intent.Match).
			Msg("Intent classified")
		return out, nil
	}
}

// NewExtractorNode applies parameter mentions to the session state.
func NewExtractorNode(engine *dialog.Engine) *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, turn *model.Turn) (*model.Turn, error) {
		turn.Updates = engine.Extract(turn.Query, turn.State)
		return turn, nil
	})
}

func NewExtractorPostHandler() func(context.Context, *model.Turn, *model.TurnState) (*model.Turn, error) {
	return func(ctx context.Context, out *model.Turn, s *model.TurnState) (*model.Turn, error) {
		s.Updates = len(out.Updates)
		for _, u := range out.Updates {
			logx.Debug().
				Str("session_id", s.SessionID).
				Str("parameter", string(u.Name)).
				Float64("value", u.Value).
				Msg("Parameter learned")
		}
		return out, nil
	}
}

// NewResponderNode advances the depth state machine and renders the response.
func NewResponderNode(engine *dialog.Engine) *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, turn *model.Turn) (*model.Turn, error) {
		resp := engine.Respond(turn.Intent, turn.State, turn.Updates)
		turn.Response = &resp
		return turn, nil
	})
}

// NewFinalizerNode persists state and transcript and emits the response.
func NewFinalizerNode(sm *sessions.SessionManager) *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, turn *model.Turn) (*model.Response, error) {
		if turn.Response == nil {
			return nil, fmt.Errorf("missing response for session %s", turn.SessionID)
		}
		if err := sm.SaveTurn(ctx, turn.SessionID, turn.Query, turn.State, turn.Response); err != nil {
			logx.Error().
				Str("session_id", turn.SessionID).
				Err(err).
				Msg("Error saving turn")
			return nil, fmt.Errorf("save turn: %w", err)
		}
		return turn.Response, nil
	})
}

func NewFinalizerPostHandler() func(context.Context, *model.Response, *model.TurnState) (*model.Response, error) {
	return func(ctx context.Context, out *model.Response, s *model.TurnState) (*model.Response, error) {
		logx.Debug().
			Str("session_id", s.SessionID).
			Str("response", string(out.Kind)).
			Str("topic", out.Topic.String()).
			Int("depth", out.Depth).
			Int("updates", s.Updates).
			Dur("elapsed", time.Since(s.StartedAt)).
			Msg("Turn completed")
		return out, nil
	}
}
