package entities

// ExtractionResult represents the structured output of the LLM extraction
// call. All fields are optional in the raw response; missing ones stay at
// their zero value.
type ExtractionResult struct {
	Summary     string                `json:"summary"`
	Sentiment   string                `json:"sentiment"`
	Topics      []string              `json:"topics"`
	ActionItems []ActionItemExtracted `json:"action_items"`
}

// ActionItemExtracted is an action item as the model reports it, before
// due-date normalization
type ActionItemExtracted struct {
	Description string `json:"description"`
	Assignee    string `json:"assignee,omitempty"`
	DueDate     string `json:"due_date,omitempty"`
}

// EmptyExtraction returns the degraded result used when the model response
// could not be parsed
func EmptyExtraction() *ExtractionResult {
	return &ExtractionResult{
		Sentiment:   SentimentNeutral,
		Topics:      []string{},
		ActionItems: []ActionItemExtracted{},
	}
}
