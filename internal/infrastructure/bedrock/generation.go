package bedrock

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"

	"github.com/perryrosenberg/portfolio-assistant/internal/core/domain"
	"github.com/perryrosenberg/portfolio-assistant/internal/infrastructure/resilience"
)

// InvokeAPI is the Bedrock runtime surface the client depends on.
type InvokeAPI interface {
	InvokeModel(ctx context.Context, params *bedrockruntime.InvokeModelInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.InvokeModelOutput, error)
}

// ModelClientConfig carries the fixed per-deployment invocation policy.
type ModelClientConfig struct {
	ModelID          string
	AnthropicVersion string
	MaxTokens        int
	SystemPrompt     string
	Timeout          time.Duration
}

func (c ModelClientConfig) normalize() ModelClientConfig {
	out := c
	if out.AnthropicVersion == "" {
		out.AnthropicVersion = "bedrock-2023-05-31"
	}
	if out.MaxTokens <= 0 {
		out.MaxTokens = 1024
	}
	if out.Timeout <= 0 {
		out.Timeout = 30 * time.Second
	}
	return out
}

// ModelClient invokes the Anthropic model family through Bedrock Runtime.
type ModelClient struct {
	api      InvokeAPI
	cfg      ModelClientConfig
	executor *resilience.Executor
}

func NewModelClient(api InvokeAPI, cfg ModelClientConfig, executor *resilience.Executor) *ModelClient {
	if executor == nil {
		executor = resilience.NewExecutor(resilience.DefaultConfig())
	}
	return &ModelClient{
		api:      api,
		cfg:      cfg.normalize(),
		executor: executor,
	}
}

type anthropicRequest struct {
	AnthropicVersion string             `json:"anthropic_version"`
	MaxTokens        int                `json:"max_tokens"`
	Messages         []anthropicMessage `json:"messages"`
	System           string             `json:"system"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicResponse struct {
	Content []anthropicContent `json:"content"`
}

type anthropicContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Generate answers the question, grounding it in contextText when present.
// A completed call without text content returns domain.ErrEmptyCompletion;
// every other failure is a plain error.
func (c *ModelClient) Generate(ctx context.Context, question, contextText string) (string, error) {
	payload, err := json.Marshal(anthropicRequest{
		AnthropicVersion: c.cfg.AnthropicVersion,
		MaxTokens:        c.cfg.MaxTokens,
		Messages: []anthropicMessage{
			{Role: "user", Content: buildUserPrompt(question, contextText)},
		},
		System: c.cfg.SystemPrompt,
	})
	if err != nil {
		return "", fmt.Errorf("marshal invoke request: %w", err)
	}

	callCtx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	var out *bedrockruntime.InvokeModelOutput
	err = c.executor.Execute(callCtx, "bedrock.invoke_model", func(ctx context.Context) error {
		resp, err := c.api.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
			ModelId:     aws.String(c.cfg.ModelID),
			ContentType: aws.String("application/json"),
			Accept:      aws.String("application/json"),
			Body:        payload,
		})
		if err != nil {
			return err
		}
		out = resp
		return nil
	}, classifyBedrockError)
	if err != nil {
		return "", wrapTemporaryIfNeeded("invoke model", err)
	}

	var decoded anthropicResponse
	if err := json.Unmarshal(out.Body, &decoded); err != nil {
		return "", fmt.Errorf("decode invoke response: %w", err)
	}
	if len(decoded.Content) == 0 || decoded.Content[0].Text == "" {
		return "", domain.WrapError(domain.ErrEmptyCompletion, "invoke model", errors.New("no text content in response"))
	}
	return decoded.Content[0].Text, nil
}
