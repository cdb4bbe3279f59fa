package insight

import (
	"sort"
	"strings"

	"github.com/johnquangdev/meeting-insights/internal/domain/entities"
)

// NameCount is a frequency pair emitted by the analytics aggregations
type NameCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// topicFrequency counts distinct topic names across all transcripts' topic
// links, sorted descending by count
func topicFrequency(transcripts []*entities.Transcript) []NameCount {
	counts := map[string]int{}
	var order []string
	for _, t := range transcripts {
		for _, topic := range t.Topics {
			if topic.Name == "" {
				continue
			}
			if _, seen := counts[topic.Name]; !seen {
				order = append(order, topic.Name)
			}
			counts[topic.Name]++
		}
	}
	return sortedCounts(counts, order)
}

// participantFrequency splits each transcript's denormalized participants
// string on commas and counts distinct names across the corpus
func participantFrequency(transcripts []*entities.Transcript) []NameCount {
	counts := map[string]int{}
	var order []string
	for _, t := range transcripts {
		for _, part := range strings.Split(t.Participants, ",") {
			name := strings.TrimSpace(part)
			if name == "" {
				continue
			}
			if _, seen := counts[name]; !seen {
				order = append(order, name)
			}
			counts[name]++
		}
	}
	return sortedCounts(counts, order)
}

// sortedCounts turns the count map into pairs sorted descending by count,
// first-seen order breaking ties
func sortedCounts(counts map[string]int, order []string) []NameCount {
	out := make([]NameCount, 0, len(order))
	for _, name := range order {
		out = append(out, NameCount{Name: name, Count: counts[name]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	return out
}
