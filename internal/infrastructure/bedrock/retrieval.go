package bedrock

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockagentruntime"
	agenttypes "github.com/aws/aws-sdk-go-v2/service/bedrockagentruntime/types"

	"github.com/perryrosenberg/portfolio-assistant/internal/core/domain"
	"github.com/perryrosenberg/portfolio-assistant/internal/infrastructure/resilience"
)

// RetrieveAPI is the Bedrock agent-runtime surface the client depends on.
type RetrieveAPI interface {
	Retrieve(ctx context.Context, params *bedrockagentruntime.RetrieveInput, optFns ...func(*bedrockagentruntime.Options)) (*bedrockagentruntime.RetrieveOutput, error)
}

// KnowledgeBaseClient wraps Bedrock Knowledge Base vector retrieval. An empty
// knowledge base id disables retrieval: the client reports
// domain.ErrNoKnowledgeBase without attempting a network call.
type KnowledgeBaseClient struct {
	api             RetrieveAPI
	knowledgeBaseID string
	defaultScore    float64
	timeout         time.Duration
	executor        *resilience.Executor
}

func NewKnowledgeBaseClient(
	api RetrieveAPI,
	knowledgeBaseID string,
	defaultScore float64,
	timeout time.Duration,
	executor *resilience.Executor,
) *KnowledgeBaseClient {
	if defaultScore <= 0 {
		defaultScore = 0.5
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if executor == nil {
		executor = resilience.NewExecutor(resilience.DefaultConfig())
	}
	return &KnowledgeBaseClient{
		api:             api,
		knowledgeBaseID: knowledgeBaseID,
		defaultScore:    defaultScore,
		timeout:         timeout,
		executor:        executor,
	}
}

func (c *KnowledgeBaseClient) Retrieve(ctx context.Context, question string, limit int) ([]domain.RetrievedPassage, error) {
	if c.knowledgeBaseID == "" {
		return nil, domain.ErrNoKnowledgeBase
	}
	if limit <= 0 {
		limit = 5
	}

	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	input := &bedrockagentruntime.RetrieveInput{
		KnowledgeBaseId: aws.String(c.knowledgeBaseID),
		RetrievalQuery: &agenttypes.KnowledgeBaseQuery{
			Text: aws.String(question),
		},
		RetrievalConfiguration: &agenttypes.KnowledgeBaseRetrievalConfiguration{
			VectorSearchConfiguration: &agenttypes.KnowledgeBaseVectorSearchConfiguration{
				NumberOfResults: aws.Int32(int32(limit)),
			},
		},
	}

	var out *bedrockagentruntime.RetrieveOutput
	err := c.executor.Execute(callCtx, "bedrock.retrieve", func(ctx context.Context) error {
		resp, err := c.api.Retrieve(ctx, input)
		if err != nil {
			return err
		}
		out = resp
		return nil
	}, classifyBedrockError)
	if err != nil {
		return nil, wrapTemporaryIfNeeded("retrieve", err)
	}

	passages := make([]domain.RetrievedPassage, 0, len(out.RetrievalResults))
	for _, result := range out.RetrievalResults {
		passages = append(passages, domain.RetrievedPassage{
			LocationID: resultLocationID(result),
			Text:       resultText(result),
			Score:      resultScore(result, c.defaultScore),
		})
	}
	return passages, nil
}

func resultText(result agenttypes.KnowledgeBaseRetrievalResult) string {
	if result.Content == nil || result.Content.Text == nil {
		return ""
	}
	return *result.Content.Text
}

// resultLocationID falls back to the literal "unknown" when the store
// returns a result without an S3 location.
func resultLocationID(result agenttypes.KnowledgeBaseRetrievalResult) string {
	if result.Location == nil || result.Location.S3Location == nil || result.Location.S3Location.Uri == nil {
		return "unknown"
	}
	return *result.Location.S3Location.Uri
}

func resultScore(result agenttypes.KnowledgeBaseRetrievalResult, fallback float64) float64 {
	if result.Score == nil {
		return fallback
	}
	return *result.Score
}
