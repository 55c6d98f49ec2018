package model

import "fmt"

// AttachmentKind names the optional visual an entry carries.
type AttachmentKind string

const (
	AttachNone       AttachmentKind = "none"
	AttachProjection AttachmentKind = "projection"
	AttachForecast   AttachmentKind = "forecast"
	AttachSimulation AttachmentKind = "simulation"
	AttachSavings    AttachmentKind = "savings"
)

// Valid reports whether k is a known attachment kind.
func (k AttachmentKind) Valid() bool {
	switch k {
	case AttachNone, AttachProjection, AttachForecast, AttachSimulation, AttachSavings:
		return true
	}
	return false
}

// EntryKey is the composite key of the knowledge table.
type EntryKey struct {
	Topic Topic
	Depth int
}

func (k EntryKey) String() string {
	return fmt.Sprintf("%s/%d", k.Topic, k.Depth)
}

// KnowledgeEntry is a pre-authored, immutable response block.
type KnowledgeEntry struct {
	Title      string
	Body       string
	KeyFact    string
	Attachment AttachmentKind
}
