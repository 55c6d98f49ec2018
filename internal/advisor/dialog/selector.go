package dialog

import "github.com/petrolito-ai/advisor/internal/advisor/model"

// Transition is the selector decision for one turn.
type Transition struct {
	Kind  model.ResponseKind
	Topic model.Topic
	Depth int
}

// Advance applies the depth state machine to state in place:
//
//	topic T == current      -> depth = min(depth+1, 2)
//	topic T != current      -> topic = T, depth = 0
//	same-as-previous        -> depth = min(depth+1, 2)
//	none, no active topic   -> clarification, no change
//	none, active topic      -> fallback, no change
func Advance(state *model.ConversationState, in model.Intent) Transition {
	switch {
	case in.Kind == model.IntentTopic && in.Topic != model.TopicNone && in.Topic.Valid():
		if in.Topic == state.CurrentTopic {
			state.DepthLevel = deeper(state.DepthLevel)
		} else {
			state.CurrentTopic = in.Topic
			state.DepthLevel = 0
		}
		return Transition{Kind: model.ResponseEntry, Topic: state.CurrentTopic, Depth: state.DepthLevel}

	case in.Kind == model.IntentSameAsPrevious && state.CurrentTopic != model.TopicNone:
		state.DepthLevel = deeper(state.DepthLevel)
		return Transition{Kind: model.ResponseEntry, Topic: state.CurrentTopic, Depth: state.DepthLevel}

	case state.CurrentTopic == model.TopicNone:
		return Transition{Kind: model.ResponseClarification}

	default:
		// topic and depth are kept; there is no reset to general help
		return Transition{Kind: model.ResponseFallback, Topic: state.CurrentTopic, Depth: state.DepthLevel}
	}
}

func deeper(depth int) int {
	return min(depth+1, model.MaxDepth)
}
