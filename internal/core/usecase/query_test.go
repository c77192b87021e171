package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/perryrosenberg/portfolio-assistant/internal/core/domain"
)

type retrieverFake struct {
	passages []domain.RetrievedPassage
	err      error

	question string
	limit    int
}

func (f *retrieverFake) Retrieve(_ context.Context, question string, limit int) ([]domain.RetrievedPassage, error) {
	f.question = question
	f.limit = limit
	if f.err != nil {
		return nil, f.err
	}
	return f.passages, nil
}

type generatorFake struct {
	answer string
	err    error

	question    string
	contextText string
}

func (f *generatorFake) Generate(_ context.Context, question, contextText string) (string, error) {
	f.question = question
	f.contextText = contextText
	if f.err != nil {
		return "", f.err
	}
	return f.answer, nil
}

type panickingRetriever struct{}

func (panickingRetriever) Retrieve(context.Context, string, int) ([]domain.RetrievedPassage, error) {
	panic("retriever defect")
}

func TestQueryUseCaseAnswerWithSources(t *testing.T) {
	retriever := &retrieverFake{passages: []domain.RetrievedPassage{
		{LocationID: "s3://bucket/documents/resume.md", Text: "5 years of experience", Score: 0.92},
	}}
	generator := &generatorFake{answer: "I have 5 years of experience."}
	uc := NewQueryUseCase(retriever, generator, 5, 200)

	result := uc.Answer(context.Background(), domain.Query{
		Question:       "What is your experience?",
		ConversationID: "conv-123",
	})

	if result.Answer != "I have 5 years of experience." {
		t.Fatalf("unexpected answer %q", result.Answer)
	}
	if result.ConversationID != "conv-123" {
		t.Fatalf("expected conversation id echoed, got %q", result.ConversationID)
	}
	if len(result.Sources) != 1 {
		t.Fatalf("expected 1 source, got %d", len(result.Sources))
	}
	if result.Sources[0].Title != "resume.md" || result.Sources[0].Type != domain.SourceTypeResume {
		t.Fatalf("unexpected source %+v", result.Sources[0])
	}
	if retriever.question != "What is your experience?" || retriever.limit != 5 {
		t.Fatalf("retriever called with question=%q limit=%d", retriever.question, retriever.limit)
	}
	if !strings.Contains(generator.contextText, "--- resume.md ---") {
		t.Fatalf("expected assembled context passed to generator, got %q", generator.contextText)
	}
}

func TestQueryUseCaseDefaultTopK(t *testing.T) {
	retriever := &retrieverFake{}
	uc := NewQueryUseCase(retriever, &generatorFake{answer: "ok"}, 0, 0)

	uc.Answer(context.Background(), domain.Query{Question: "q"})

	if retriever.limit != 5 {
		t.Fatalf("expected default limit=5, got %d", retriever.limit)
	}
}

func TestQueryUseCaseRetrievalFailureDegrades(t *testing.T) {
	retriever := &retrieverFake{err: errors.New("store unreachable")}
	generator := &generatorFake{answer: "general answer"}
	uc := NewQueryUseCase(retriever, generator, 5, 200)

	result := uc.Answer(context.Background(), domain.Query{Question: "q", ConversationID: "c-1"})

	if result.Answer != "general answer" {
		t.Fatalf("expected generated answer despite retrieval failure, got %q", result.Answer)
	}
	if result.Sources == nil || len(result.Sources) != 0 {
		t.Fatalf("expected empty non-nil sources, got %#v", result.Sources)
	}
	if generator.contextText != "" {
		t.Fatalf("expected empty context after retrieval failure, got %q", generator.contextText)
	}
}

func TestQueryUseCaseNoKnowledgeBaseDegrades(t *testing.T) {
	retriever := &retrieverFake{err: domain.ErrNoKnowledgeBase}
	generator := &generatorFake{answer: "general answer"}
	uc := NewQueryUseCase(retriever, generator, 5, 200)

	result := uc.Answer(context.Background(), domain.Query{Question: "q"})

	if len(result.Sources) != 0 {
		t.Fatalf("expected no sources when knowledge base is not configured, got %d", len(result.Sources))
	}
	if generator.question != "q" || generator.contextText != "" {
		t.Fatalf("expected raw question without context, got question=%q context=%q", generator.question, generator.contextText)
	}
}

func TestQueryUseCaseGenerationFailureFallback(t *testing.T) {
	retriever := &retrieverFake{passages: []domain.RetrievedPassage{
		{LocationID: "s3://bucket/documents/notes.txt", Text: "text", Score: 0.5},
	}}
	generator := &generatorFake{err: errors.New("invoke failed")}
	uc := NewQueryUseCase(retriever, generator, 5, 200)

	result := uc.Answer(context.Background(), domain.Query{Question: "q", ConversationID: "c-2"})

	if result.Answer != domain.FallbackAnswerGenerationFailed {
		t.Fatalf("expected invocation fallback, got %q", result.Answer)
	}
	if len(result.Sources) != 1 {
		t.Fatalf("expected sources kept on generation failure, got %d", len(result.Sources))
	}
	if result.ConversationID != "c-2" {
		t.Fatalf("expected conversation id echoed, got %q", result.ConversationID)
	}
}

func TestQueryUseCaseEmptyCompletionFallback(t *testing.T) {
	generator := &generatorFake{err: domain.WrapError(domain.ErrEmptyCompletion, "generate", errors.New("no content"))}
	uc := NewQueryUseCase(&retrieverFake{}, generator, 5, 200)

	result := uc.Answer(context.Background(), domain.Query{Question: "q"})

	if result.Answer != domain.FallbackAnswerEmptyCompletion {
		t.Fatalf("expected empty-completion fallback, got %q", result.Answer)
	}
}

func TestQueryUseCaseRecoversFromPanic(t *testing.T) {
	uc := NewQueryUseCase(panickingRetriever{}, &generatorFake{answer: "never"}, 5, 200)

	result := uc.Answer(context.Background(), domain.Query{Question: "q", ConversationID: "c-3"})

	if result.Answer != domain.FallbackAnswerProcessing {
		t.Fatalf("expected processing fallback after panic, got %q", result.Answer)
	}
	if result.Sources == nil || len(result.Sources) != 0 {
		t.Fatalf("expected empty non-nil sources after panic, got %#v", result.Sources)
	}
	if result.ConversationID != "c-3" {
		t.Fatalf("expected conversation id echoed after panic, got %q", result.ConversationID)
	}
}
