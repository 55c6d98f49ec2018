package dialog

import (
	"math"
	"strconv"

	"github.com/petrolito-ai/advisor/internal/advisor/model"
)

// Extractor finds numeric parameter mentions in free text.
//
// Parameters are tried in configured order. A number already claimed by an
// earlier parameter is not reused by a later one, so the first pattern wins
// when one figure could satisfy two. Per parameter the first unclaimed match
// is taken. Values are accepted verbatim, without range checks.
type Extractor struct {
	params []ParameterSpec
}

func NewExtractor(kb *KnowledgeBase) *Extractor {
	return &Extractor{params: kb.Parameters()}
}

// Extract returns the updates found in text without touching any state.
func (e *Extractor) Extract(text string) []model.ParameterUpdate {
	text = clip(text)
	var (
		updates []model.ParameterUpdate
		claimed [][2]int
	)

	for _, p := range e.params {
		for _, m := range p.Pattern.FindAllStringSubmatchIndex(text, -1) {
			start, end := m[2], m[3]
			if start < 0 || overlaps(claimed, start, end) {
				continue
			}
			v, err := strconv.ParseFloat(text[start:end], 64)
			if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			claimed = append(claimed, [2]int{start, end})
			updates = append(updates, model.ParameterUpdate{Name: p.Name, Value: v})
			break
		}
	}
	return updates
}

// Apply extracts updates and writes them into state.LearnedParameters.
func (e *Extractor) Apply(text string, state *model.ConversationState) []model.ParameterUpdate {
	updates := e.Extract(text)
	if len(updates) == 0 {
		return nil
	}
	if state.LearnedParameters == nil {
		state.LearnedParameters = make(map[model.ParamName]float64)
	}
	for _, u := range updates {
		state.LearnedParameters[u.Name] = u.Value
	}
	return updates
}

func overlaps(spans [][2]int, start, end int) bool {
	for _, s := range spans {
		if start < s[1] && s[0] < end {
			return true
		}
	}
	return false
}
