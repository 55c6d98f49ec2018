package dialog

import (
	"github.com/petrolito-ai/advisor/internal/advisor/forecast"
	"github.com/petrolito-ai/advisor/internal/advisor/model"
	logx "github.com/petrolito-ai/advisor/pkg/logger"
)

// Engine runs one conversational turn: classify, extract, transition, respond.
// It holds no per-session data; callers own a ConversationState per session
// and must not process two turns of the same session at once.
type Engine struct {
	kb         *KnowledgeBase
	classifier *Classifier
	extractor  *Extractor
	forecaster *forecast.Forecaster
}

func NewEngine(kb *KnowledgeBase, fc *forecast.Forecaster) *Engine {
	return &Engine{
		kb:         kb,
		classifier: NewClassifier(kb),
		extractor:  NewExtractor(kb),
		forecaster: fc,
	}
}

// Knowledge returns the validated knowledge table.
func (e *Engine) Knowledge() *KnowledgeBase {
	return e.kb
}

// NewState returns the initial state of a session.
func (e *Engine) NewState() *model.ConversationState {
	return model.NewConversationState(e.kb.Defaults())
}

// Classify runs intent classification against the state's current topic.
func (e *Engine) Classify(text string, state *model.ConversationState) model.Intent {
	return e.classifier.Classify(text, state.CurrentTopic)
}

// Extract applies parameter mentions in text to state.
func (e *Engine) Extract(text string, state *model.ConversationState) []model.ParameterUpdate {
	return e.extractor.Apply(text, state)
}

// Respond advances the depth state machine and builds the response.
func (e *Engine) Respond(in model.Intent, state *model.ConversationState, updates []model.ParameterUpdate) model.Response {
	tr := Advance(state, in)
	r := e.render(tr, state)
	r.LearnedParameterUpdates = updates
	if len(updates) > 0 {
		r.Body = r.Body + "\n\n" + e.describeUpdates(updates, state)
	}
	return r
}

// ProcessTurn is the single entry point used by presentation layers.
func (e *Engine) ProcessTurn(text string, state *model.ConversationState) model.Response {
	intent := e.Classify(text, state)
	updates := e.Extract(text, state)
	resp := e.Respond(intent, state, updates)

	logx.Debug().
		Str("component", "dialog").
		Str("intent", intent.Kind.String()).
		Str("match", intent.Match).
		Str("topic", state.CurrentTopic.String()).
		Int("depth", state.DepthLevel).
		Int("updates", len(updates)).
		Str("response", string(resp.Kind)).
		Msg("turn processed")
	return resp
}
