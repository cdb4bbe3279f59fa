package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/johnquangdev/meeting-insights/internal/domain/entities"
	repo "github.com/johnquangdev/meeting-insights/internal/domain/repositories"
)

type transcriptRepository struct {
	db *gorm.DB
}

// NewTranscriptRepository creates a new transcript repository backed by GORM
func NewTranscriptRepository(db *gorm.DB) repo.TranscriptRepository {
	return &transcriptRepository{db: db}
}

func (r *transcriptRepository) CreateWithRelations(ctx context.Context, t *entities.Transcript, topicNames []string, items []*entities.ActionItem) error {
	if t == nil {
		return errors.New("transcript cannot be nil")
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Topics", "ActionItems").Create(t).Error; err != nil {
			return err
		}

		for _, name := range topicNames {
			topic, err := findOrCreateTopic(tx, name)
			if err != nil {
				return err
			}
			if err := tx.Exec(
				`INSERT INTO transcript_topics (transcript_id, topic_id) VALUES (?, ?) ON CONFLICT DO NOTHING`,
				t.ID, topic.ID,
			).Error; err != nil {
				return err
			}
			t.Topics = append(t.Topics, *topic)
		}

		for _, item := range items {
			item.TranscriptID = t.ID
			if err := tx.Create(item).Error; err != nil {
				return err
			}
			t.ActionItems = append(t.ActionItems, *item)
		}

		return nil
	})
}

// findOrCreateTopic resolves a topic name against the global topic set.
// The insert races with concurrent ingestions, so it leans on the unique
// index: ON CONFLICT DO NOTHING, then re-select whichever row won.
func findOrCreateTopic(tx *gorm.DB, name string) (*entities.Topic, error) {
	topic := entities.Topic{ID: uuid.New(), Name: name}
	if err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoNothing: true,
	}).Create(&topic).Error; err != nil {
		return nil, err
	}

	var found entities.Topic
	if err := tx.Where("name = ?", name).First(&found).Error; err != nil {
		return nil, err
	}
	return &found, nil
}

func (r *transcriptRepository) ListAll(ctx context.Context) ([]*entities.Transcript, error) {
	var transcripts []*entities.Transcript
	err := r.db.WithContext(ctx).
		Preload("Topics").
		Preload("ActionItems").
		Order("created_at DESC").
		Find(&transcripts).Error
	if err != nil {
		return nil, err
	}
	return transcripts, nil
}

func (r *transcriptRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Transcript, error) {
	var transcript entities.Transcript
	err := r.db.WithContext(ctx).
		Preload("Topics").
		Preload("ActionItems").
		Where("id = ?", id).
		First(&transcript).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &transcript, nil
}
