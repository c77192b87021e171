package usecase

import (
	"strings"

	"github.com/perryrosenberg/portfolio-assistant/internal/core/domain"
)

// assembleContext turns ranked passages into the prompt context block and the
// user-facing source attributions. Excerpt truncation applies only to the
// sources; the generator receives the full passage text.
func assembleContext(passages []domain.RetrievedPassage, excerptMax int) (string, []domain.Source) {
	sources := make([]domain.Source, 0, len(passages))
	if len(passages) == 0 {
		return "", sources
	}

	var contextBuilder strings.Builder
	for _, passage := range passages {
		title := documentTitle(passage.LocationID)

		sources = append(sources, domain.Source{
			ID:         passage.LocationID,
			Title:      title,
			Type:       classifyDocumentType(title),
			Confidence: passage.Score,
			Excerpt:    buildExcerpt(passage.Text, excerptMax),
		})

		contextBuilder.WriteString("--- ")
		contextBuilder.WriteString(title)
		contextBuilder.WriteString(" ---\n")
		contextBuilder.WriteString(passage.Text)
		contextBuilder.WriteString("\n\n")
	}

	return contextBuilder.String(), sources
}

func documentTitle(locationID string) string {
	if locationID == "" {
		return "Document"
	}
	lastSlash := strings.LastIndex(locationID, "/")
	if lastSlash >= 0 && lastSlash < len(locationID)-1 {
		return locationID[lastSlash+1:]
	}
	return locationID
}

// classifyDocumentType matches keyword rules in fixed order; the first hit
// wins.
func classifyDocumentType(title string) string {
	lower := strings.ToLower(title)
	switch {
	case strings.Contains(lower, "resume"), strings.Contains(lower, "cv"):
		return domain.SourceTypeResume
	case strings.Contains(lower, "architecture"), strings.Contains(lower, "design"):
		return domain.SourceTypeArchitecture
	case strings.Contains(lower, "case"), strings.Contains(lower, "study"):
		return domain.SourceTypeCaseStudy
	case strings.Contains(lower, "blog"), strings.Contains(lower, "post"):
		return domain.SourceTypeBlog
	default:
		return domain.SourceTypeDefault
	}
}

func buildExcerpt(text string, maxLen int) string {
	runes := []rune(text)
	if len(runes) <= maxLen {
		return text
	}
	return string(runes[:maxLen]) + "..."
}
