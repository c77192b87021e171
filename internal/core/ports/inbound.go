package ports

import (
	"context"

	"github.com/perryrosenberg/portfolio-assistant/internal/core/domain"
)

// QueryService is the inbound contract for answering a visitor question.
// It never fails: every degradation is folded into the result.
type QueryService interface {
	Answer(ctx context.Context, query domain.Query) domain.QueryResult
}
