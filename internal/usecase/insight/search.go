package insight

import (
	"math"
	"sort"

	"github.com/johnquangdev/meeting-insights/internal/domain/entities"
)

// searchLimit caps how many ranked results a search returns
const searchLimit = 5

// ScoredTranscript pairs a stored transcript with its similarity to a query
type ScoredTranscript struct {
	Transcript *entities.Transcript
	Score      float64
}

// cosineSimilarity computes the normalized dot product of two vectors.
// Mismatched lengths or a zero-magnitude operand yield 0, never NaN.
func cosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, magA, magB float64
	for i := range a {
		dot += a[i] * b[i]
		magA += a[i] * a[i]
		magB += b[i] * b[i]
	}
	if magA == 0 || magB == 0 {
		return 0
	}
	return dot / (math.Sqrt(magA) * math.Sqrt(magB))
}

// rankBySimilarity scores every stored transcript against the query vector
// and returns the top results, ties preserving corpus order.
//
// This is a brute-force scan of the full corpus on every query. It is fine
// while all embeddings fit in memory; past that point this needs a real
// vector index, not a bigger machine.
func rankBySimilarity(query []float64, corpus []*entities.Transcript) []ScoredTranscript {
	scored := make([]ScoredTranscript, 0, len(corpus))
	for _, t := range corpus {
		scored = append(scored, ScoredTranscript{
			Transcript: t,
			Score:      cosineSimilarity(query, t.Embedding),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if len(scored) > searchLimit {
		scored = scored[:searchLimit]
	}
	return scored
}
