package domain

// Query is one inbound question with its correlation metadata. It lives for
// a single request and is never persisted.
type Query struct {
	Question       string
	ConversationID string
	Page           string
}

// RetrievedPassage is one ranked result from the knowledge store.
type RetrievedPassage struct {
	LocationID string
	Text       string
	Score      float64
}

// Source is the user-facing attribution derived from a RetrievedPassage.
type Source struct {
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	Type       string  `json:"type"`
	Confidence float64 `json:"confidence"`
	Excerpt    string  `json:"excerpt"`
}

// QueryResult is the final structured answer. Sources is empty exactly when
// retrieval failed, was skipped, or returned nothing; Answer is never empty.
type QueryResult struct {
	Answer         string   `json:"answer"`
	Sources        []Source `json:"sources"`
	ConversationID string   `json:"conversationId"`
}

// Source type labels produced by title classification.
const (
	SourceTypeResume       = "Resume"
	SourceTypeArchitecture = "Architecture Doc"
	SourceTypeCaseStudy    = "Case Study"
	SourceTypeBlog         = "Technical Blog"
	SourceTypeDefault      = "Document"
)

// Fixed user-facing answers substituted when a pipeline stage degrades.
// Callers distinguish the degradation mode only by the exact text.
const (
	FallbackAnswerProcessing = "I apologize, but I'm having trouble processing your question right now. " +
		"Please try again in a moment."
	FallbackAnswerEmptyCompletion  = "I received your question but couldn't generate a proper response. Please try again."
	FallbackAnswerGenerationFailed = "I received your question but an error occurred. Please try again later."
)
