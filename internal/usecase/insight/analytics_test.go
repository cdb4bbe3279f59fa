package insight

import (
	"testing"

	"github.com/johnquangdev/meeting-insights/internal/domain/entities"
)

func TestTopicFrequency(t *testing.T) {
	transcripts := []*entities.Transcript{
		{Topics: []entities.Topic{{Name: "budget"}, {Name: "roadmap"}}},
		{Topics: []entities.Topic{{Name: "budget"}, {Name: "hiring"}}},
		{Topics: []entities.Topic{{Name: "budget"}}},
	}

	got := topicFrequency(transcripts)

	want := []NameCount{
		{Name: "budget", Count: 3},
		{Name: "roadmap", Count: 1},
		{Name: "hiring", Count: 1},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d entries, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("entry %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestParticipantFrequency_SplitsAndTrims(t *testing.T) {
	transcripts := []*entities.Transcript{
		{Participants: "Alice, Bob"},
		{Participants: "Bob,  Carol , "},
		{Participants: ""},
	}

	got := participantFrequency(transcripts)

	want := []NameCount{
		{Name: "Bob", Count: 2},
		{Name: "Alice", Count: 1},
		{Name: "Carol", Count: 1},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d entries, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("entry %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestFrequency_EmptyCorpus(t *testing.T) {
	if got := topicFrequency(nil); len(got) != 0 {
		t.Fatalf("topicFrequency(nil) = %v, want empty", got)
	}
	if got := participantFrequency(nil); len(got) != 0 {
		t.Fatalf("participantFrequency(nil) = %v, want empty", got)
	}
}
