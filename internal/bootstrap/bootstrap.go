package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockagentruntime"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"

	httpadapter "github.com/perryrosenberg/portfolio-assistant/internal/adapters/http"
	"github.com/perryrosenberg/portfolio-assistant/internal/config"
	"github.com/perryrosenberg/portfolio-assistant/internal/core/usecase"
	"github.com/perryrosenberg/portfolio-assistant/internal/infrastructure/bedrock"
	"github.com/perryrosenberg/portfolio-assistant/internal/infrastructure/resilience"
	"github.com/perryrosenberg/portfolio-assistant/internal/observability/metrics"
)

type App struct {
	Config  config.Config
	Metrics *metrics.AssistantMetrics
	Router  *httpadapter.Router
}

// New wires one process end to end: AWS clients, circuit breakers, the
// query pipeline and the transport-neutral router. The service name labels
// logs and metrics so api and lambda deployments stay distinguishable.
func New(ctx context.Context, cfg config.Config, service string) (*App, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWSRegion))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	resilienceCfg := resilience.DefaultConfig()
	resilienceCfg.BreakerEnabled = cfg.BreakerEnabled
	executor := resilience.NewExecutor(resilienceCfg)

	if cfg.KnowledgeBaseID == "" {
		slog.Warn("knowledge_base_not_configured", "service", service)
	}

	retriever := bedrock.NewKnowledgeBaseClient(
		bedrockagentruntime.NewFromConfig(awsCfg),
		cfg.KnowledgeBaseID,
		cfg.RetrievalDefaultScore,
		time.Duration(cfg.RetrieveTimeoutSeconds)*time.Second,
		executor,
	)
	generator := bedrock.NewModelClient(
		bedrockruntime.NewFromConfig(awsCfg),
		bedrock.ModelClientConfig{
			ModelID:          cfg.ModelID,
			AnthropicVersion: cfg.AnthropicAPIVersion,
			MaxTokens:        cfg.MaxTokens,
			SystemPrompt:     cfg.SystemPrompt,
			Timeout:          time.Duration(cfg.GenerateTimeoutSeconds) * time.Second,
		},
		executor,
	)

	queryService := usecase.NewQueryUseCase(retriever, generator, cfg.MaxRetrievalResults, cfg.ExcerptMaxLength)

	assistantMetrics := metrics.NewAssistantMetrics(service)
	router := httpadapter.NewRouter(service, queryService, assistantMetrics)

	return &App{
		Config:  cfg,
		Metrics: assistantMetrics,
		Router:  router,
	}, nil
}
