package lambdaadapter

import (
	"context"

	"github.com/aws/aws-lambda-go/events"

	httpadapter "github.com/perryrosenberg/portfolio-assistant/internal/adapters/http"
)

// Handler bridges API Gateway proxy events onto the shared router.
type Handler struct {
	router *httpadapter.Router
}

func NewHandler(router *httpadapter.Router) *Handler {
	return &Handler{router: router}
}

// Handle never returns an error: failures travel as HTTP status codes so
// API Gateway does not substitute its own 502 for the mapped response.
func (h *Handler) Handle(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	resp := h.router.Handle(ctx, httpadapter.Request{
		Method: event.HTTPMethod,
		Path:   event.Path,
		Body:   event.Body,
	})
	return events.APIGatewayProxyResponse{
		StatusCode: resp.StatusCode,
		Headers:    resp.Headers,
		Body:       resp.Body,
	}, nil
}
