package dialog

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/petrolito-ai/advisor/internal/advisor/model"
)

// maxInputLen bounds the text inspected per turn.
const maxInputLen = 16 * 1024

// Classifier maps free text to a topic by lower-cased substring containment.
// There is no tokenization or stemming: "operation" matches "cooperation".
type Classifier struct {
	kb *KnowledgeBase
}

func NewClassifier(kb *KnowledgeBase) *Classifier {
	return &Classifier{kb: kb}
}

// Classify is a pure function of (text, current). Topics are tried in the
// configured priority order and the first keyword hit wins. Continuation words
// only count when no topic matched and a topic is already active.
func (c *Classifier) Classify(text string, current model.Topic) model.Intent {
	text = strings.TrimSpace(clip(text))
	if text == "" {
		return model.Intent{Kind: model.IntentNone}
	}
	lower := fold(text)

	for _, topic := range c.kb.order {
		for _, kw := range c.kb.keywords[topic] {
			if strings.Contains(lower, kw) {
				return model.Intent{Kind: model.IntentTopic, Topic: topic, Match: kw}
			}
		}
	}

	if current != model.TopicNone {
		for _, w := range c.kb.continuation {
			if strings.Contains(lower, w) {
				return model.Intent{Kind: model.IntentSameAsPrevious, Match: w}
			}
		}
	}

	return model.Intent{Kind: model.IntentNone}
}

// fold lower-cases s with Unicode rules so "DEUDA" and "Operación" match
// their configured keywords. A Caser is stateful, hence one per call.
func fold(s string) string {
	return cases.Lower(language.Und).String(s)
}

// clip cuts s to maxInputLen bytes on a rune boundary.
func clip(s string) string {
	if len(s) <= maxInputLen {
		return s
	}
	cut := maxInputLen
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
