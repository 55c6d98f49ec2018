package model

// ResponseKind says which branch of the selector produced a response.
type ResponseKind string

const (
	ResponseEntry         ResponseKind = "entry"
	ResponseClarification ResponseKind = "clarification"
	ResponseFallback      ResponseKind = "fallback"
)

// Response is what the presentation layer renders for one turn.
type Response struct {
	Kind                    ResponseKind
	Topic                   Topic
	Depth                   int
	Title                   string
	Body                    string
	KeyFact                 string
	GuidanceFooter          string
	LearnedParameterUpdates []ParameterUpdate
	Attachment              Attachment
}

// Attachment is a closed sum type: NoAttachment, ChartAttachment or TableAttachment.
type Attachment interface {
	attachment()
}

type NoAttachment struct{}

// Point is one chart sample; Label is the x-axis tick text.
type Point struct {
	X     float64
	Label string
	Y     float64
}

type Series struct {
	Name   string
	Points []Point
}

type ChartAttachment struct {
	Title  string
	XLabel string
	YLabel string
	Series []Series
}

type TableAttachment struct {
	Title   string
	Columns []string
	Rows    [][]string
}

func (NoAttachment) attachment()    {}
func (ChartAttachment) attachment() {}
func (TableAttachment) attachment() {}
