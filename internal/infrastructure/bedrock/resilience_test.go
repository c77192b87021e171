package bedrock

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"testing"

	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/smithy-go"
	smithyhttp "github.com/aws/smithy-go/transport/http"

	"github.com/perryrosenberg/portfolio-assistant/internal/core/domain"
)

func httpResponseError(statusCode int) error {
	return &awshttp.ResponseError{
		ResponseError: &smithyhttp.ResponseError{
			Response: &smithyhttp.Response{Response: &http.Response{StatusCode: statusCode}},
			Err:      fmt.Errorf("http status %d", statusCode),
		},
	}
}

func TestClassifyBedrockError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"canceled", context.Canceled, false},
		{"deadline", fmt.Errorf("retrieve: %w", context.DeadlineExceeded), false},
		{"throttling", &smithy.GenericAPIError{Code: "ThrottlingException"}, true},
		{"service unavailable", &smithy.GenericAPIError{Code: "ServiceUnavailableException"}, true},
		{"model timeout", &smithy.GenericAPIError{Code: "ModelTimeoutException"}, true},
		{"validation", &smithy.GenericAPIError{Code: "ValidationException"}, false},
		{"access denied", &smithy.GenericAPIError{Code: "AccessDeniedException"}, false},
		{"http 503", httpResponseError(http.StatusServiceUnavailable), true},
		{"http 429", httpResponseError(http.StatusTooManyRequests), true},
		{"http 404", httpResponseError(http.StatusNotFound), false},
		{"dns timeout", &net.DNSError{Err: "timeout", IsTimeout: true}, true},
		{"unknown", errors.New("connection reset"), true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := classifyBedrockError(tc.err); got != tc.want {
				t.Fatalf("classifyBedrockError(%v) = %v, want %v", tc.err, got, tc.want)
			}
		})
	}
}

func TestWrapTemporaryIfNeeded(t *testing.T) {
	base := &smithy.GenericAPIError{Code: "ThrottlingException"}
	wrapped := wrapTemporaryIfNeeded("invoke model", base)
	if !domain.IsKind(wrapped, domain.ErrTemporary) {
		t.Fatalf("expected temporary kind, got %v", wrapped)
	}
	if !errors.As(wrapped, new(*smithy.GenericAPIError)) {
		t.Fatalf("expected original error preserved, got %v", wrapped)
	}
}

func TestWrapTemporaryIfNeededPassThrough(t *testing.T) {
	already := domain.WrapError(domain.ErrTemporary, "retrieve", errors.New("flaky"))
	if got := wrapTemporaryIfNeeded("retrieve", already); got != already {
		t.Fatalf("expected pass-through, got %v", got)
	}
}

func TestWrapTemporaryIfNeededKeepsCallerFaults(t *testing.T) {
	base := &smithy.GenericAPIError{Code: "ValidationException"}
	if got := wrapTemporaryIfNeeded("retrieve", base); domain.IsKind(got, domain.ErrTemporary) {
		t.Fatalf("caller fault must not become temporary: %v", got)
	}
}

func TestWrapTemporaryIfNeededNil(t *testing.T) {
	if got := wrapTemporaryIfNeeded("retrieve", nil); got != nil {
		t.Fatalf("expected nil, got %v", got)
	}
}
