package httpadapter

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/perryrosenberg/portfolio-assistant/internal/core/domain"
	"github.com/perryrosenberg/portfolio-assistant/internal/core/ports"
	"github.com/perryrosenberg/portfolio-assistant/internal/observability/metrics"
)

// Request is the transport-neutral shape of one inbound call. The HTTP
// server and the Lambda adapter both reduce their native request to it.
type Request struct {
	Method string
	Path   string
	Body   string
}

// Response carries the status, headers and serialized body back to whichever
// transport produced the Request.
type Response struct {
	StatusCode int
	Headers    map[string]string
	Body       string
}

type Router struct {
	service      string
	queryService ports.QueryService
	metrics      *metrics.AssistantMetrics
}

func NewRouter(service string, queryService ports.QueryService, m *metrics.AssistantMetrics) *Router {
	return &Router{
		service:      service,
		queryService: queryService,
		metrics:      m,
	}
}

// Handle routes one request. Paths match by suffix so behavior is identical
// bare or behind an API Gateway stage prefix.
func (rt *Router) Handle(ctx context.Context, req Request) Response {
	switch {
	case req.Method == http.MethodOptions:
		return respondRaw(http.StatusOK, "")
	case req.Method == http.MethodGet && strings.HasSuffix(req.Path, "/health"):
		return respondRaw(http.StatusOK, `{"status":"healthy"}`)
	case req.Method == http.MethodPost && strings.HasSuffix(req.Path, "/query"):
		return rt.answerQuery(ctx, req)
	default:
		return respondError(http.StatusNotFound, "Not found")
	}
}

func (rt *Router) answerQuery(ctx context.Context, req Request) Response {
	if req.Body == "" {
		return respondError(http.StatusBadRequest, "Request body is required")
	}

	var payload struct {
		Question       string `json:"question"`
		ConversationID string `json:"conversationId"`
		Context        struct {
			Page string `json:"page"`
		} `json:"context"`
	}
	if err := json.Unmarshal([]byte(req.Body), &payload); err != nil {
		return respondError(http.StatusInternalServerError, "Internal server error: "+err.Error())
	}
	if payload.Question == "" {
		return respondError(http.StatusBadRequest, "Question is required")
	}

	slog.Info("query_received",
		"method", req.Method,
		"path", req.Path,
		"conversation_id", payload.ConversationID,
	)

	start := time.Now()
	result := rt.queryService.Answer(ctx, domain.Query{
		Question:       payload.Question,
		ConversationID: payload.ConversationID,
		Page:           payload.Context.Page,
	})
	rt.observe(result, time.Since(start))

	// Wire contract: sources is a JSON array, never null.
	if result.Sources == nil {
		result.Sources = []domain.Source{}
	}
	return respondJSON(http.StatusOK, result)
}

func (rt *Router) observe(result domain.QueryResult, duration time.Duration) {
	rt.metrics.RecordQueryObservation(rt.service, len(result.Sources), duration)
	switch result.Answer {
	case domain.FallbackAnswerProcessing:
		rt.metrics.RecordFallback(rt.service, "processing")
	case domain.FallbackAnswerEmptyCompletion:
		rt.metrics.RecordFallback(rt.service, "parsing")
	case domain.FallbackAnswerGenerationFailed:
		rt.metrics.RecordFallback(rt.service, "invocation")
	}
}

// Handler adapts the router onto net/http for the standalone server binary,
// layering request ids, access logs and HTTP metrics around the core.
func (rt *Router) Handler() http.Handler {
	core := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			writeResponse(w, respondError(http.StatusInternalServerError, "Internal server error: "+err.Error()))
			return
		}
		writeResponse(w, rt.Handle(r.Context(), Request{
			Method: r.Method,
			Path:   r.URL.Path,
			Body:   string(body),
		}))
	})
	return requestIDMiddleware(accessLogMiddleware(rt.metrics.Middleware(rt.service, core)))
}

func writeResponse(w http.ResponseWriter, resp Response) {
	for key, value := range resp.Headers {
		w.Header().Set(key, value)
	}
	w.WriteHeader(resp.StatusCode)
	if resp.Body != "" {
		_, _ = io.WriteString(w, resp.Body)
	}
}

func respondJSON(status int, payload any) Response {
	body, _ := json.Marshal(payload)
	return Response{StatusCode: status, Headers: corsHeaders(), Body: string(body)}
}

func respondError(status int, message string) Response {
	return respondJSON(status, map[string]string{"error": message})
}

func respondRaw(status int, body string) Response {
	return Response{StatusCode: status, Headers: corsHeaders(), Body: body}
}

// corsHeaders returns a fresh map per response; transports are free to
// mutate theirs.
func corsHeaders() map[string]string {
	return map[string]string{
		"Content-Type":                 "application/json",
		"Access-Control-Allow-Origin":  "*",
		"Access-Control-Allow-Methods": "GET, POST, OPTIONS",
		"Access-Control-Allow-Headers": "Content-Type, Authorization",
	}
}
