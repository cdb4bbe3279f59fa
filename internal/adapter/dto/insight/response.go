package insight

import "time"

// IngestResponse confirms a persisted transcript
type IngestResponse struct {
	Success bool   `json:"success"`
	ID      string `json:"id"`
}

// TopicResponse is a topic link on a transcript
type TopicResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ActionItemResponse is an extracted action item
type ActionItemResponse struct {
	ID          string     `json:"id"`
	Description string     `json:"description"`
	Assignee    *string    `json:"assignee,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}

// TranscriptResponse is the full stored transcript view
type TranscriptResponse struct {
	ID           string               `json:"id"`
	Title        string               `json:"title"`
	Participants string               `json:"participants"`
	Transcript   string               `json:"transcript"`
	Summary      string               `json:"summary"`
	Sentiment    string               `json:"sentiment"`
	Topics       []TopicResponse      `json:"topics"`
	ActionItems  []ActionItemResponse `json:"action_items"`
	CreatedAt    time.Time            `json:"created_at"`
}

// SearchResultResponse is a transcript with its similarity score
type SearchResultResponse struct {
	TranscriptResponse
	Score float64 `json:"score"`
}

// NameCountResponse is an analytics frequency pair
type NameCountResponse struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}
