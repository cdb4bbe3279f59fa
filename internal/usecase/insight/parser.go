package insight

import (
	"encoding/json"
	"strings"

	"github.com/johnquangdev/meeting-insights/internal/domain/entities"
)

// Parser handles parsing and normalization of extraction responses
type Parser struct{}

// NewParser creates a new Parser instance
func NewParser() *Parser {
	return &Parser{}
}

// ParseExtraction parses the raw assistant content into an ExtractionResult.
// A body that cannot be parsed degrades to the empty result: a successful
// call with a garbled payload must never fail ingestion. The boolean reports
// whether parsing succeeded, so the caller can log the degradation.
func (p *Parser) ParseExtraction(content string) (*entities.ExtractionResult, bool) {
	content = extractJSON(content)

	var result entities.ExtractionResult
	if err := json.Unmarshal([]byte(content), &result); err != nil {
		return entities.EmptyExtraction(), false
	}

	result.Sentiment = entities.NormalizeSentiment(result.Sentiment)
	if result.Topics == nil {
		result.Topics = []string{}
	}
	if result.ActionItems == nil {
		result.ActionItems = []entities.ActionItemExtracted{}
	}

	return &result, true
}

// extractJSON extracts JSON content from markdown code blocks or plain text
func extractJSON(content string) string {
	content = strings.TrimSpace(content)

	if strings.HasPrefix(content, "```json") {
		content = strings.TrimPrefix(content, "```json")
		if idx := strings.LastIndex(content, "```"); idx != -1 {
			content = content[:idx]
		}
	} else if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```")
		if idx := strings.LastIndex(content, "```"); idx != -1 {
			content = content[:idx]
		}
	}

	return strings.TrimSpace(content)
}
