package nodes

// Graph node keys.
const (
	NodeInputConverter = "InputConverter"
	NodeClassifier     = "Classifier"
	NodeExtractor      = "Extractor"
	NodeResponder      = "Responder"
	NodeFinalizer      = "Finalizer"
)
