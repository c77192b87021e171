package lambdaadapter

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/aws/aws-lambda-go/events"

	httpadapter "github.com/perryrosenberg/portfolio-assistant/internal/adapters/http"
	"github.com/perryrosenberg/portfolio-assistant/internal/core/domain"
	"github.com/perryrosenberg/portfolio-assistant/internal/observability/metrics"
)

type queryServiceStub struct {
	result domain.QueryResult
}

func (s *queryServiceStub) Answer(_ context.Context, _ domain.Query) domain.QueryResult {
	return s.result
}

func newTestHandler(result domain.QueryResult) *Handler {
	router := httpadapter.NewRouter("lambda", &queryServiceStub{result: result}, metrics.NewAssistantMetrics("lambda"))
	return NewHandler(router)
}

func TestHandleProxiesQueryEvent(t *testing.T) {
	handler := newTestHandler(domain.QueryResult{
		Answer:         "Perry knows Go.",
		Sources:        []domain.Source{},
		ConversationID: "conv-7",
	})

	resp, err := handler.Handle(context.Background(), events.APIGatewayProxyRequest{
		HTTPMethod: http.MethodPost,
		Path:       "/prod/api/query",
		Body:       `{"question":"Go?","conversationId":"conv-7"}`,
	})
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if !strings.Contains(resp.Body, `"conversationId":"conv-7"`) {
		t.Fatalf("conversation id not echoed: %s", resp.Body)
	}
	if resp.Headers["Access-Control-Allow-Origin"] != "*" {
		t.Fatalf("missing CORS header on proxy response")
	}
}

func TestHandlePreflightEvent(t *testing.T) {
	handler := newTestHandler(domain.QueryResult{})

	resp, err := handler.Handle(context.Background(), events.APIGatewayProxyRequest{
		HTTPMethod: http.MethodOptions,
		Path:       "/prod/api/query",
	})
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if resp.StatusCode != http.StatusOK || resp.Body != "" {
		t.Fatalf("unexpected preflight response %d %q", resp.StatusCode, resp.Body)
	}
}

func TestHandleNeverReturnsInvocationError(t *testing.T) {
	handler := newTestHandler(domain.QueryResult{})

	requests := []events.APIGatewayProxyRequest{
		{HTTPMethod: http.MethodGet, Path: "/nope"},
		{HTTPMethod: http.MethodPost, Path: "/api/query", Body: `{"question":`},
		{HTTPMethod: http.MethodPost, Path: "/api/query"},
	}
	for _, event := range requests {
		if _, err := handler.Handle(context.Background(), event); err != nil {
			t.Fatalf("%s %s: unexpected invocation error %v", event.HTTPMethod, event.Path, err)
		}
	}
}
