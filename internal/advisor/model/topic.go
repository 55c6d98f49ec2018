package model

import "strings"

// Topic is one of the closed set of subjects the advisor can discuss.
// TopicNone means no topic has been established yet.
type Topic int

const (
	TopicNone Topic = iota
	TopicDebt
	TopicLiquidity
	TopicOperations
	TopicMacro
)

var topicNames = map[Topic]string{
	TopicNone:       "none",
	TopicDebt:       "debt",
	TopicLiquidity:  "liquidity",
	TopicOperations: "operations",
	TopicMacro:      "macro",
}

// Topics returns every concrete topic in declaration order.
func Topics() []Topic {
	return []Topic{TopicDebt, TopicLiquidity, TopicOperations, TopicMacro}
}

func (t Topic) String() string {
	if n, ok := topicNames[t]; ok {
		return n
	}
	return "unknown"
}

// Valid reports whether t is TopicNone or one of the concrete topics.
func (t Topic) Valid() bool {
	_, ok := topicNames[t]
	return ok
}

// ParseTopic maps a configured topic id to the enum. TopicNone is not parseable.
func ParseTopic(s string) (Topic, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, t := range Topics() {
		if topicNames[t] == s {
			return t, true
		}
	}
	return TopicNone, false
}

// MarshalText stores topics by name so persisted sessions survive enum reordering.
func (t Topic) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Topic) UnmarshalText(b []byte) error {
	s := string(b)
	if s == "" || s == topicNames[TopicNone] {
		*t = TopicNone
		return nil
	}
	if parsed, ok := ParseTopic(s); ok {
		*t = parsed
		return nil
	}
	// keep an out-of-range marker; session validation discards the state
	*t = Topic(-1)
	return nil
}

// IntentKind is the outcome class of intent classification.
type IntentKind int

const (
	// IntentNone: no topic keyword and no usable continuation.
	IntentNone IntentKind = iota
	// IntentTopic: a concrete topic keyword matched.
	IntentTopic
	// IntentSameAsPrevious: a continuation word with an active topic.
	IntentSameAsPrevious
)

func (k IntentKind) String() string {
	switch k {
	case IntentTopic:
		return "topic"
	case IntentSameAsPrevious:
		return "same_as_previous"
	default:
		return "none"
	}
}

// Intent is the classifier output for one turn.
type Intent struct {
	Kind  IntentKind
	Topic Topic  // set only when Kind == IntentTopic
	Match string // keyword or continuation word that decided the intent
}
