package ports

import (
	"context"

	"github.com/perryrosenberg/portfolio-assistant/internal/core/domain"
)

// PassageRetriever searches the knowledge store for passages relevant to a
// question. An error signals unavailability, distinct from zero results;
// domain.ErrNoKnowledgeBase marks the configured-off skip.
type PassageRetriever interface {
	Retrieve(ctx context.Context, question string, limit int) ([]domain.RetrievedPassage, error)
}

// AnswerGenerator produces the answer text for a question with optional
// assembled context. domain.ErrEmptyCompletion distinguishes "ran but
// returned nothing usable" from a failed call.
type AnswerGenerator interface {
	Generate(ctx context.Context, question, contextText string) (string, error)
}
