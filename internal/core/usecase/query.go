package usecase

import (
	"context"
	"log/slog"

	"github.com/perryrosenberg/portfolio-assistant/internal/core/domain"
	"github.com/perryrosenberg/portfolio-assistant/internal/core/ports"
)

// QueryUseCase runs the retrieval -> assembly -> generation pipeline. Every
// stage failure degrades into data: empty sources for retrieval, a fixed
// fallback answer for generation. The caller always receives a usable result.
type QueryUseCase struct {
	retriever  ports.PassageRetriever
	generator  ports.AnswerGenerator
	topK       int
	excerptMax int
}

func NewQueryUseCase(
	retriever ports.PassageRetriever,
	generator ports.AnswerGenerator,
	topK int,
	excerptMax int,
) *QueryUseCase {
	if topK <= 0 {
		topK = 5
	}
	if excerptMax <= 0 {
		excerptMax = 200
	}
	return &QueryUseCase{
		retriever:  retriever,
		generator:  generator,
		topK:       topK,
		excerptMax: excerptMax,
	}
}

// Answer processes one question to completion. The deferred recover is the
// last-resort net for defects in the pipeline itself; modeled external
// failures never reach it.
func (uc *QueryUseCase) Answer(ctx context.Context, query domain.Query) (result domain.QueryResult) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("query_pipeline_panic",
				"conversation_id", query.ConversationID,
				"panic", r,
			)
			result = domain.QueryResult{
				Answer:         domain.FallbackAnswerProcessing,
				Sources:        []domain.Source{},
				ConversationID: query.ConversationID,
			}
		}
	}()

	passages := uc.retrievePassages(ctx, query)
	contextText, sources := assembleContext(passages, uc.excerptMax)
	answer := uc.generateAnswer(ctx, query, contextText)

	return domain.QueryResult{
		Answer:         answer,
		Sources:        sources,
		ConversationID: query.ConversationID,
	}
}

func (uc *QueryUseCase) retrievePassages(ctx context.Context, query domain.Query) []domain.RetrievedPassage {
	passages, err := uc.retriever.Retrieve(ctx, query.Question, uc.topK)
	if err != nil {
		if domain.IsKind(err, domain.ErrNoKnowledgeBase) {
			slog.Warn("retrieval_skipped",
				"conversation_id", query.ConversationID,
				"reason", err,
			)
			return nil
		}
		slog.Error("retrieval_failed",
			"conversation_id", query.ConversationID,
			"error", err,
		)
		return nil
	}
	return passages
}

func (uc *QueryUseCase) generateAnswer(ctx context.Context, query domain.Query, contextText string) string {
	answer, err := uc.generator.Generate(ctx, query.Question, contextText)
	if err != nil {
		if domain.IsKind(err, domain.ErrEmptyCompletion) {
			slog.Warn("generation_empty", "conversation_id", query.ConversationID)
			return domain.FallbackAnswerEmptyCompletion
		}
		slog.Error("generation_failed",
			"conversation_id", query.ConversationID,
			"error", err,
		)
		return domain.FallbackAnswerGenerationFailed
	}
	return answer
}
