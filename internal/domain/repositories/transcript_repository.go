package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/johnquangdev/meeting-insights/internal/domain/entities"
)

// TranscriptRepository defines persistence operations for transcripts and
// their derived relations
type TranscriptRepository interface {
	// CreateWithRelations persists the transcript together with its topic
	// links and action items in a single transaction. Topic names resolve
	// against the global topic set with find-or-create semantics; the write
	// is all-or-nothing.
	CreateWithRelations(ctx context.Context, t *entities.Transcript, topicNames []string, items []*entities.ActionItem) error

	// ListAll returns every stored transcript with topics and action items
	// preloaded, newest first.
	ListAll(ctx context.Context) ([]*entities.Transcript, error)

	// GetByID returns one transcript or nil when absent.
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Transcript, error)
}
