package model

// MaxDepth is the deepest detail level; it is absorbing per topic.
const MaxDepth = 2

// ParamName identifies a learnable numeric input.
type ParamName string

const (
	ParamCommodityPrice ParamName = "commodity_price"
	ParamOutputRate     ParamName = "output_rate"
	ParamDebtService    ParamName = "debt_service"
)

// ParamNames lists every known parameter.
func ParamNames() []ParamName {
	return []ParamName{ParamCommodityPrice, ParamOutputRate, ParamDebtService}
}

// Known reports whether p is one of the defined parameters.
func (p ParamName) Known() bool {
	for _, n := range ParamNames() {
		if n == p {
			return true
		}
	}
	return false
}

// ParameterUpdate is a value learned from one user turn.
type ParameterUpdate struct {
	Name  ParamName `json:"name"`
	Value float64   `json:"value"`
}

// ConversationState is owned by one session and mutated in place by each turn.
type ConversationState struct {
	CurrentTopic      Topic                 `json:"current_topic"`
	DepthLevel        int                   `json:"depth_level"`
	LearnedParameters map[ParamName]float64 `json:"learned_parameters"`
}

// NewConversationState returns the initial state (None, 0) with defaults copied in.
func NewConversationState(defaults map[ParamName]float64) *ConversationState {
	params := make(map[ParamName]float64, len(defaults))
	for k, v := range defaults {
		params[k] = v
	}
	return &ConversationState{
		CurrentTopic:      TopicNone,
		DepthLevel:        0,
		LearnedParameters: params,
	}
}

// Valid reports whether the state satisfies the topic and depth invariants.
func (s *ConversationState) Valid() bool {
	if s == nil || !s.CurrentTopic.Valid() {
		return false
	}
	if s.DepthLevel < 0 || s.DepthLevel > MaxDepth {
		return false
	}
	return s.CurrentTopic != TopicNone || s.DepthLevel == 0
}

// Param returns the learned value of p.
func (s *ConversationState) Param(p ParamName) float64 {
	return s.LearnedParameters[p]
}
