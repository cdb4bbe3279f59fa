package insight

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/johnquangdev/meeting-insights/errors"
	"github.com/johnquangdev/meeting-insights/internal/domain/entities"
	"github.com/johnquangdev/meeting-insights/internal/domain/repositories"
)

// ExtractionClient produces raw structured-extraction content for a transcript
type ExtractionClient interface {
	ExtractInsights(ctx context.Context, transcript string) (string, error)
}

// EmbeddingClient produces a fixed-length vector for a text
type EmbeddingClient interface {
	Embed(ctx context.Context, text string) ([]float64, error)
}

// Transcriber converts an audio recording URL into transcript text
type Transcriber interface {
	TranscribeURL(ctx context.Context, audioURL string) (string, error)
}

// EmbeddingCache caches query embeddings between searches. Implementations
// must treat failures as misses; the cache is an optimization only.
type EmbeddingCache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string, ttl time.Duration)
}

// queryCacheTTL bounds how long a query embedding stays cached
const queryCacheTTL = 15 * time.Minute

// IngestInput carries the caller-supplied fields for a text ingestion
type IngestInput struct {
	ID           *uuid.UUID
	Title        string
	Participants []string
	Transcript   string
}

// AudioIngestInput carries the fields for an audio ingestion
type AudioIngestInput struct {
	Title        string
	Participants []string
	AudioURL     string
}

// Service defines the insight operations exposed to the HTTP layer
type Service interface {
	Ingest(ctx context.Context, in IngestInput) (*entities.Transcript, error)
	IngestAudio(ctx context.Context, in AudioIngestInput) (*entities.Transcript, error)
	List(ctx context.Context) ([]*entities.Transcript, error)
	Get(ctx context.Context, id uuid.UUID) (*entities.Transcript, error)
	Search(ctx context.Context, query string) ([]ScoredTranscript, error)
	TopicFrequency(ctx context.Context) ([]NameCount, error)
	ParticipantFrequency(ctx context.Context) ([]NameCount, error)
}

type service struct {
	repo        repositories.TranscriptRepository
	extractor   ExtractionClient
	embedder    EmbeddingClient
	transcriber Transcriber
	cache       EmbeddingCache
	parser      *Parser
	logger      *zap.Logger
	now         func() time.Time
}

// NewService constructs the insight service. transcriber and cache may be
// nil: audio ingestion is then unavailable and query embeddings uncached.
func NewService(
	repo repositories.TranscriptRepository,
	extractor ExtractionClient,
	embedder EmbeddingClient,
	transcriber Transcriber,
	cache EmbeddingCache,
	logger *zap.Logger,
) Service {
	return &service{
		repo:        repo,
		extractor:   extractor,
		embedder:    embedder,
		transcriber: transcriber,
		cache:       cache,
		parser:      NewParser(),
		logger:      logger,
		now:         time.Now,
	}
}

func (s *service) Ingest(ctx context.Context, in IngestInput) (*entities.Transcript, error) {
	if strings.TrimSpace(in.Transcript) == "" {
		return nil, errors.ErrTranscriptRequired()
	}

	// Extraction and embedding are independent outbound calls; either
	// failing after retries aborts ingestion before anything is written.
	var content string
	extractFn := func() error {
		var err error
		content, err = s.extractor.ExtractInsights(ctx, in.Transcript)
		return err
	}
	if err := backoff.Retry(extractFn, s.newBackoff(ctx)); err != nil {
		s.logger.Error("extraction call failed", zap.Error(err))
		return nil, errors.ErrExtractionFailed(err)
	}

	var embedding []float64
	embedFn := func() error {
		var err error
		embedding, err = s.embedder.Embed(ctx, in.Transcript)
		return err
	}
	if err := backoff.Retry(embedFn, s.newBackoff(ctx)); err != nil {
		s.logger.Error("embedding call failed", zap.Error(err))
		return nil, errors.ErrEmbeddingFailed(err)
	}

	extracted, parsed := s.parser.ParseExtraction(content)
	if !parsed {
		s.logger.Warn("extraction payload unparseable, storing empty fields",
			zap.Int("content_len", len(content)))
	}

	t := entities.NewTranscript(in.Title, in.Transcript)
	if in.ID != nil {
		t.ID = *in.ID
	}
	t.Participants = strings.Join(in.Participants, ", ")
	t.Summary = extracted.Summary
	t.Sentiment = extracted.Sentiment
	t.Extracted = rawPayload(content)
	t.Embedding = embedding

	topicNames := make([]string, 0, len(extracted.Topics))
	for _, name := range extracted.Topics {
		if name = strings.TrimSpace(name); name != "" {
			topicNames = append(topicNames, name)
		}
	}

	now := s.now()
	items := make([]*entities.ActionItem, 0, len(extracted.ActionItems))
	for _, raw := range extracted.ActionItems {
		item := &entities.ActionItem{
			ID:          uuid.New(),
			Description: raw.Description,
			DueDate:     normalizeDueDate(raw.DueDate, now),
		}
		if raw.Assignee != "" {
			assignee := raw.Assignee
			item.Assignee = &assignee
		}
		items = append(items, item)
	}

	if err := s.repo.CreateWithRelations(ctx, t, topicNames, items); err != nil {
		s.logger.Error("transcript create failed", zap.Error(err))
		return nil, errors.ErrDBTransaction(err)
	}

	s.logger.Info("transcript ingested",
		zap.String("transcript_id", t.ID.String()),
		zap.Int("topics", len(topicNames)),
		zap.Int("action_items", len(items)),
		zap.Int("embedding_dims", len(embedding)),
	)
	return t, nil
}

func (s *service) IngestAudio(ctx context.Context, in AudioIngestInput) (*entities.Transcript, error) {
	if s.transcriber == nil {
		return nil, errors.ErrTranscriptionUnavailable()
	}
	if strings.TrimSpace(in.AudioURL) == "" {
		return nil, errors.ErrInvalidArgument("audio_url is required")
	}

	text, err := s.transcriber.TranscribeURL(ctx, in.AudioURL)
	if err != nil {
		s.logger.Error("audio transcription failed", zap.Error(err))
		return nil, errors.ErrTranscriptionFailed(err)
	}

	return s.Ingest(ctx, IngestInput{
		Title:        in.Title,
		Participants: in.Participants,
		Transcript:   text,
	})
}

func (s *service) List(ctx context.Context) ([]*entities.Transcript, error) {
	transcripts, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, errors.ErrInternal(err)
	}
	return transcripts, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*entities.Transcript, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.ErrInternal(err)
	}
	if t == nil {
		return nil, errors.ErrTranscriptNotFound()
	}
	return t, nil
}

func (s *service) Search(ctx context.Context, query string) ([]ScoredTranscript, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []ScoredTranscript{}, nil
	}

	queryVec, err := s.embedQuery(ctx, query)
	if err != nil {
		s.logger.Error("query embedding failed", zap.Error(err))
		return nil, errors.ErrEmbeddingFailed(err)
	}

	corpus, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, errors.ErrInternal(err)
	}

	return rankBySimilarity(queryVec, corpus), nil
}

// embedQuery embeds the query text, going through the cache when one is
// configured. Cache errors never surface; they just cost one extra API call.
func (s *service) embedQuery(ctx context.Context, query string) ([]float64, error) {
	cacheKey := "query-embedding:" + query

	if s.cache != nil {
		if cached, ok := s.cache.Get(ctx, cacheKey); ok {
			var vec []float64
			if err := json.Unmarshal([]byte(cached), &vec); err == nil && len(vec) > 0 {
				return vec, nil
			}
		}
	}

	var vec []float64
	embedFn := func() error {
		var err error
		vec, err = s.embedder.Embed(ctx, query)
		return err
	}
	if err := backoff.Retry(embedFn, s.newBackoff(ctx)); err != nil {
		return nil, err
	}

	if s.cache != nil {
		if encoded, err := json.Marshal(vec); err == nil {
			s.cache.Set(ctx, cacheKey, string(encoded), queryCacheTTL)
		}
	}
	return vec, nil
}

func (s *service) TopicFrequency(ctx context.Context) ([]NameCount, error) {
	transcripts, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, errors.ErrInternal(err)
	}
	return topicFrequency(transcripts), nil
}

func (s *service) ParticipantFrequency(ctx context.Context) ([]NameCount, error) {
	transcripts, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, errors.ErrInternal(err)
	}
	return participantFrequency(transcripts), nil
}

func (s *service) newBackoff(ctx context.Context) backoff.BackOffContext {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 2 * time.Second
	bo.MaxInterval = 10 * time.Second
	bo.MaxElapsedTime = 30 * time.Second
	return backoff.WithContext(bo, ctx)
}

// rawPayload preserves the extraction response verbatim for the jsonb
// column. Non-JSON content is stored as a JSON string so nothing is lost.
func rawPayload(content string) datatypes.JSON {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return datatypes.JSON([]byte(`{}`))
	}
	if json.Valid([]byte(trimmed)) {
		return datatypes.JSON([]byte(trimmed))
	}
	encoded, err := json.Marshal(content)
	if err != nil {
		return datatypes.JSON([]byte(`{}`))
	}
	return datatypes.JSON(encoded)
}
