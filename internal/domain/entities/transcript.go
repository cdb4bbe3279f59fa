package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Sentiment values allowed on a stored transcript
const (
	SentimentPositive = "positive"
	SentimentNegative = "negative"
	SentimentNeutral  = "neutral"
)

// DefaultTitle is used when the caller does not name the meeting
const DefaultTitle = "Untitled Meeting"

// Transcript is the stored transcript model. Derived fields (summary,
// sentiment, extracted payload, embedding) are produced once at ingestion
// and not updated afterwards.
type Transcript struct {
	ID           uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Title        string         `json:"title" gorm:"type:varchar(255);not null"`
	Participants string         `json:"participants" gorm:"type:text"`
	Text         string         `json:"transcript" gorm:"type:text;not null"`
	Summary      string         `json:"summary" gorm:"type:text"`
	Sentiment    string         `json:"sentiment" gorm:"type:varchar(20);default:'neutral'"`
	Extracted    datatypes.JSON `json:"extracted_json,omitempty" gorm:"type:jsonb"`
	Embedding    []float64      `json:"-" gorm:"type:jsonb;serializer:json"`
	Topics       []Topic        `json:"topics,omitempty" gorm:"many2many:transcript_topics"`
	ActionItems  []ActionItem   `json:"action_items,omitempty" gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time      `json:"created_at" gorm:"autoCreateTime;index"`
	UpdatedAt    time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (Transcript) TableName() string {
	return "transcripts"
}

// NewTranscript creates a new transcript with a generated id and the
// placeholder title applied when none is given
func NewTranscript(title, text string) *Transcript {
	if title == "" {
		title = DefaultTitle
	}
	return &Transcript{
		ID:        uuid.New(),
		Title:     title,
		Text:      text,
		Sentiment: SentimentNeutral,
	}
}

// Topic is a globally deduplicated label. Two transcripts citing the same
// name reference the same row; enforcement is the unique index on name.
type Topic struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name      string    `json:"name" gorm:"type:varchar(255);not null;uniqueIndex"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName specifies the table name for Topic
func (Topic) TableName() string {
	return "topics"
}

// ActionItem is a task extracted from a transcript. It is owned by exactly
// one transcript and removed with it.
type ActionItem struct {
	ID           uuid.UUID  `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	TranscriptID uuid.UUID  `json:"transcript_id" gorm:"type:uuid;not null;index"`
	Description  string     `json:"description" gorm:"type:text"`
	Assignee     *string    `json:"assignee,omitempty" gorm:"type:varchar(255)"`
	DueDate      *time.Time `json:"due_date,omitempty"`
	CreatedAt    time.Time  `json:"created_at" gorm:"autoCreateTime"`
}

// TableName specifies the table name for ActionItem
func (ActionItem) TableName() string {
	return "action_items"
}

// NormalizeSentiment coerces an extracted sentiment string to one of the
// three allowed values, defaulting to neutral
func NormalizeSentiment(s string) string {
	switch s {
	case SentimentPositive, SentimentNegative, SentimentNeutral:
		return s
	default:
		return SentimentNeutral
	}
}
