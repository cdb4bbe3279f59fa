package presenter

import (
	"github.com/johnquangdev/meeting-insights/internal/adapter/dto/insight"
	"github.com/johnquangdev/meeting-insights/internal/domain/entities"
	usecase "github.com/johnquangdev/meeting-insights/internal/usecase/insight"
)

// ToTranscriptResponse converts a Transcript entity to its response DTO
func ToTranscriptResponse(t *entities.Transcript) *insight.TranscriptResponse {
	if t == nil {
		return nil
	}

	topics := make([]insight.TopicResponse, 0, len(t.Topics))
	for _, topic := range t.Topics {
		topics = append(topics, insight.TopicResponse{
			ID:   topic.ID.String(),
			Name: topic.Name,
		})
	}

	items := make([]insight.ActionItemResponse, 0, len(t.ActionItems))
	for _, item := range t.ActionItems {
		items = append(items, insight.ActionItemResponse{
			ID:          item.ID.String(),
			Description: item.Description,
			Assignee:    item.Assignee,
			DueDate:     item.DueDate,
		})
	}

	return &insight.TranscriptResponse{
		ID:           t.ID.String(),
		Title:        t.Title,
		Participants: t.Participants,
		Transcript:   t.Text,
		Summary:      t.Summary,
		Sentiment:    t.Sentiment,
		Topics:       topics,
		ActionItems:  items,
		CreatedAt:    t.CreatedAt,
	}
}

// ToTranscriptList converts a slice of transcripts
func ToTranscriptList(transcripts []*entities.Transcript) []*insight.TranscriptResponse {
	out := make([]*insight.TranscriptResponse, 0, len(transcripts))
	for _, t := range transcripts {
		out = append(out, ToTranscriptResponse(t))
	}
	return out
}

// ToSearchResults converts ranked search results with their scores
func ToSearchResults(results []usecase.ScoredTranscript) []*insight.SearchResultResponse {
	out := make([]*insight.SearchResultResponse, 0, len(results))
	for _, r := range results {
		out = append(out, &insight.SearchResultResponse{
			TranscriptResponse: *ToTranscriptResponse(r.Transcript),
			Score:              r.Score,
		})
	}
	return out
}

// ToNameCounts converts analytics frequency pairs
func ToNameCounts(counts []usecase.NameCount) []insight.NameCountResponse {
	out := make([]insight.NameCountResponse, 0, len(counts))
	for _, c := range counts {
		out = append(out, insight.NameCountResponse{Name: c.Name, Count: c.Count})
	}
	return out
}
