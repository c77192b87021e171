package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/lambda"

	lambdaadapter "github.com/perryrosenberg/portfolio-assistant/internal/adapters/lambda"
	"github.com/perryrosenberg/portfolio-assistant/internal/bootstrap"
	"github.com/perryrosenberg/portfolio-assistant/internal/config"
	"github.com/perryrosenberg/portfolio-assistant/internal/observability/logging"
)

func main() {
	cfg := config.Load()
	slog.SetDefault(logging.NewJSONLogger("lambda", cfg.LogLevel))

	app, err := bootstrap.New(context.Background(), cfg, "lambda")
	if err != nil {
		slog.Error("bootstrap_failed", "error", err)
		os.Exit(1)
	}

	lambda.Start(lambdaadapter.NewHandler(app.Router).Handle)
}
