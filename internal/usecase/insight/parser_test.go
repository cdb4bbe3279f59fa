package insight

import (
	"testing"

	"github.com/johnquangdev/meeting-insights/internal/domain/entities"
)

func TestParseExtraction_ValidJSON(t *testing.T) {
	p := NewParser()
	content := `{"summary":"Quarterly planning","sentiment":"positive","topics":["budget"],"action_items":[{"description":"Send report","assignee":"Alice","due_date":"friday"}]}`

	got, ok := p.ParseExtraction(content)
	if !ok {
		t.Fatal("expected parse to succeed")
	}
	if got.Summary != "Quarterly planning" {
		t.Fatalf("summary = %q", got.Summary)
	}
	if got.Sentiment != entities.SentimentPositive {
		t.Fatalf("sentiment = %q", got.Sentiment)
	}
	if len(got.Topics) != 1 || got.Topics[0] != "budget" {
		t.Fatalf("topics = %v", got.Topics)
	}
	if len(got.ActionItems) != 1 || got.ActionItems[0].Assignee != "Alice" {
		t.Fatalf("action items = %+v", got.ActionItems)
	}
}

func TestParseExtraction_MarkdownFence(t *testing.T) {
	p := NewParser()
	content := "```json\n{\"summary\":\"Standup\",\"sentiment\":\"neutral\",\"topics\":[],\"action_items\":[]}\n```"

	got, ok := p.ParseExtraction(content)
	if !ok {
		t.Fatal("expected fenced JSON to parse")
	}
	if got.Summary != "Standup" {
		t.Fatalf("summary = %q", got.Summary)
	}
}

func TestParseExtraction_GarbledDegrades(t *testing.T) {
	p := NewParser()

	got, ok := p.ParseExtraction("I could not produce JSON, sorry.")
	if ok {
		t.Fatal("expected parse to report failure")
	}
	if got == nil {
		t.Fatal("degraded result must not be nil")
	}
	if got.Sentiment != entities.SentimentNeutral {
		t.Fatalf("degraded sentiment = %q, want neutral", got.Sentiment)
	}
	if got.Topics == nil || got.ActionItems == nil {
		t.Fatal("degraded slices must be empty, not nil")
	}
}

func TestParseExtraction_NormalizesSentiment(t *testing.T) {
	p := NewParser()

	got, ok := p.ParseExtraction(`{"summary":"x","sentiment":"ecstatic"}`)
	if !ok {
		t.Fatal("expected parse to succeed")
	}
	if got.Sentiment != entities.SentimentNeutral {
		t.Fatalf("sentiment = %q, want neutral", got.Sentiment)
	}
	if got.Topics == nil || got.ActionItems == nil {
		t.Fatal("missing arrays must decode to empty slices")
	}
}
