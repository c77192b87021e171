package config

import (
	"os"
	"strconv"
)

// defaultSystemPrompt keeps the model on resume and documentation topics.
// Override through SYSTEM_PROMPT when the knowledge base changes character.
const defaultSystemPrompt = "You are an AI assistant for Perry Rosenberg's personal resume website. " +
	"You help visitors learn about Perry's resume experience and the documentation he's used " +
	"by utilizing a knowledge database of sources he is familiar with to provide answers to architectural questions. " +
	"Answer questions based on the provided context. Be helpful, professional, and concise. " +
	"If the context doesn't contain relevant information, provide a general helpful response " +
	"and suggest what topics you can help with. " +
	"Please don't refer to: projects, portfolio or anything other than his \"resume\" or the documentation " +
	"when referring to Perry's experience, since you don't have that stuff in your database. "

type Config struct {
	APIPort  string
	LogLevel string

	AWSRegion       string
	KnowledgeBaseID string

	ModelID             string
	AnthropicAPIVersion string
	MaxTokens           int
	SystemPrompt        string

	MaxRetrievalResults   int
	ExcerptMaxLength      int
	RetrievalDefaultScore float64

	RetrieveTimeoutSeconds int
	GenerateTimeoutSeconds int

	BreakerEnabled bool
}

func Load() Config {
	return Config{
		APIPort:  mustEnv("API_PORT", "8080"),
		LogLevel: mustEnv("LOG_LEVEL", "info"),

		AWSRegion:       mustEnv("AWS_REGION", "us-east-1"),
		KnowledgeBaseID: mustEnv("KNOWLEDGE_BASE_ID", ""),

		ModelID:             mustEnv("LLM_MODEL_ID", "us.anthropic.claude-haiku-4-5-20251001-v1:0"),
		AnthropicAPIVersion: mustEnv("ANTHROPIC_API_VERSION", "bedrock-2023-05-31"),
		MaxTokens:           mustEnvInt("MAX_TOKENS", 1024),
		SystemPrompt:        mustEnv("SYSTEM_PROMPT", defaultSystemPrompt),

		MaxRetrievalResults:   mustEnvInt("MAX_RETRIEVAL_RESULTS", 5),
		ExcerptMaxLength:      mustEnvInt("EXCERPT_MAX_LENGTH", 200),
		RetrievalDefaultScore: mustEnvFloat("RETRIEVAL_DEFAULT_SCORE", 0.5),

		RetrieveTimeoutSeconds: mustEnvInt("RETRIEVE_TIMEOUT_SECONDS", 10),
		GenerateTimeoutSeconds: mustEnvInt("GENERATE_TIMEOUT_SECONDS", 30),

		BreakerEnabled: mustEnvBool("BREAKER_ENABLED", true),
	}
}

func mustEnv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func mustEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func mustEnvFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}

func mustEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}
