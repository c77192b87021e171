package bedrock

import (
	"context"
	"errors"
	"net"
	"net/http"

	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/smithy-go"

	"github.com/perryrosenberg/portfolio-assistant/internal/core/domain"
	"github.com/perryrosenberg/portfolio-assistant/internal/infrastructure/resilience"
)

// classifyBedrockError reports whether an error should count against the
// Bedrock circuit breakers. Caller-side cancellation and client mistakes
// (4xx, validation, access) do not; throttling, server faults and network
// failures do.
func classifyBedrockError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var respErr *awshttp.ResponseError
	if errors.As(err, &respErr) {
		return isBreakerHTTPStatus(respErr.HTTPStatusCode())
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "ThrottlingException",
			"ServiceUnavailableException",
			"InternalServerException",
			"ModelTimeoutException",
			"ModelNotReadyException",
			"DependencyFailedException",
			"BadGatewayException":
			return true
		}
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	return true
}

func wrapTemporaryIfNeeded(operation string, err error) error {
	if err == nil {
		return nil
	}
	if domain.IsKind(err, domain.ErrTemporary) {
		return err
	}
	if classifyBedrockError(err) || resilience.IsCircuitOpen(err) {
		return domain.WrapError(domain.ErrTemporary, operation, err)
	}
	return err
}

func isBreakerHTTPStatus(statusCode int) bool {
	switch statusCode {
	case http.StatusRequestTimeout, http.StatusTooManyRequests, http.StatusInternalServerError, http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	default:
		return false
	}
}
