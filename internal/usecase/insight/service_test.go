package insight

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "github.com/johnquangdev/meeting-insights/errors"
	"github.com/johnquangdev/meeting-insights/internal/domain/entities"
)

type fakeRepo struct {
	created      *entities.Transcript
	createdTopic []string
	createdItems []*entities.ActionItem
	createErr    error

	listResult []*entities.Transcript
	listErr    error

	getResult *entities.Transcript
	getErr    error
}

func (r *fakeRepo) CreateWithRelations(_ context.Context, t *entities.Transcript, topicNames []string, items []*entities.ActionItem) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.created = t
	r.createdTopic = topicNames
	r.createdItems = items
	return nil
}

func (r *fakeRepo) ListAll(_ context.Context) ([]*entities.Transcript, error) {
	return r.listResult, r.listErr
}

func (r *fakeRepo) GetByID(_ context.Context, _ uuid.UUID) (*entities.Transcript, error) {
	return r.getResult, r.getErr
}

type fakeExtractor struct {
	content string
	err     error
	calls   int
}

func (e *fakeExtractor) ExtractInsights(_ context.Context, _ string) (string, error) {
	e.calls++
	if e.err != nil {
		// Permanent so the retry loop does not sleep through its budget
		return "", backoff.Permanent(e.err)
	}
	return e.content, nil
}

type fakeEmbedder struct {
	vec   []float64
	err   error
	calls int
}

func (e *fakeEmbedder) Embed(_ context.Context, _ string) ([]float64, error) {
	e.calls++
	if e.err != nil {
		return nil, backoff.Permanent(e.err)
	}
	return e.vec, nil
}

type fakeTranscriber struct {
	text string
	err  error
}

func (t *fakeTranscriber) TranscribeURL(_ context.Context, _ string) (string, error) {
	return t.text, t.err
}

type fakeCache struct {
	data map[string]string
	sets int
}

func (c *fakeCache) Get(_ context.Context, key string) (string, bool) {
	v, ok := c.data[key]
	return v, ok
}

func (c *fakeCache) Set(_ context.Context, key, value string, _ time.Duration) {
	if c.data == nil {
		c.data = map[string]string{}
	}
	c.data[key] = value
	c.sets++
}

const validExtraction = `{"summary":"Planning sync","sentiment":"positive","topics":["budget "," roadmap",""],"action_items":[{"description":"Send deck","assignee":"Alice","due_date":"friday"},{"description":"File tickets"}]}`

func newTestService(repo *fakeRepo, extractor *fakeExtractor, embedder *fakeEmbedder, transcriber Transcriber, cache EmbeddingCache) *service {
	svc := NewService(repo, extractor, embedder, transcriber, cache, zap.NewNop()).(*service)
	svc.now = func() time.Time { return testNow }
	return svc
}

func assertCode(t *testing.T, err error, code apperrors.ErrorCode) {
	t.Helper()
	var appErr apperrors.AppError
	if !stderrors.As(err, &appErr) {
		t.Fatalf("expected AppError, got %T: %v", err, err)
	}
	if appErr.Code != code {
		t.Fatalf("error code = %s, want %s", appErr.Code, code)
	}
}

func TestIngest_HappyPath(t *testing.T) {
	repo := &fakeRepo{}
	extractor := &fakeExtractor{content: validExtraction}
	embedder := &fakeEmbedder{vec: []float64{0.1, 0.2, 0.3}}
	svc := newTestService(repo, extractor, embedder, nil, nil)

	got, err := svc.Ingest(context.Background(), IngestInput{
		Title:        "Q1 Planning",
		Participants: []string{"Alice", "Bob"},
		Transcript:   "Alice: let's plan the quarter.",
	})
	if err != nil {
		t.Fatalf("Ingest failed: %v", err)
	}

	if repo.created == nil {
		t.Fatal("nothing persisted")
	}
	if got.Title != "Q1 Planning" {
		t.Fatalf("title = %q", got.Title)
	}
	if got.Participants != "Alice, Bob" {
		t.Fatalf("participants = %q", got.Participants)
	}
	if got.Summary != "Planning sync" || got.Sentiment != entities.SentimentPositive {
		t.Fatalf("derived fields: summary=%q sentiment=%q", got.Summary, got.Sentiment)
	}
	if len(got.Embedding) != 3 {
		t.Fatalf("embedding dims = %d", len(got.Embedding))
	}

	// Blank topic dropped, names trimmed
	if len(repo.createdTopic) != 2 || repo.createdTopic[0] != "budget" || repo.createdTopic[1] != "roadmap" {
		t.Fatalf("topics = %v", repo.createdTopic)
	}

	if len(repo.createdItems) != 2 {
		t.Fatalf("action items = %d", len(repo.createdItems))
	}
	first := repo.createdItems[0]
	if first.Assignee == nil || *first.Assignee != "Alice" {
		t.Fatalf("assignee = %v", first.Assignee)
	}
	if first.DueDate == nil || first.DueDate.Weekday() != time.Friday {
		t.Fatalf("due date = %v, want a Friday", first.DueDate)
	}
	second := repo.createdItems[1]
	if second.Assignee != nil || second.DueDate != nil {
		t.Fatalf("item without assignee/due date got %v / %v", second.Assignee, second.DueDate)
	}
}

func TestIngest_DefaultTitleAndCallerID(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(repo, &fakeExtractor{content: validExtraction}, &fakeEmbedder{vec: []float64{1}}, nil, nil)

	id := uuid.New()
	got, err := svc.Ingest(context.Background(), IngestInput{
		ID:         &id,
		Transcript: "short standup",
	})
	if err != nil {
		t.Fatalf("Ingest failed: %v", err)
	}
	if got.Title != entities.DefaultTitle {
		t.Fatalf("title = %q, want %q", got.Title, entities.DefaultTitle)
	}
	if got.ID != id {
		t.Fatalf("id = %s, want caller-supplied %s", got.ID, id)
	}
}

func TestIngest_EmptyTranscript(t *testing.T) {
	svc := newTestService(&fakeRepo{}, &fakeExtractor{}, &fakeEmbedder{}, nil, nil)

	_, err := svc.Ingest(context.Background(), IngestInput{Transcript: "   "})
	assertCode(t, err, apperrors.ErrorCode_TRANSCRIPT_REQUIRED)
}

func TestIngest_ExtractionFailure(t *testing.T) {
	repo := &fakeRepo{}
	extractor := &fakeExtractor{err: stderrors.New("rate limited")}
	svc := newTestService(repo, extractor, &fakeEmbedder{vec: []float64{1}}, nil, nil)

	_, err := svc.Ingest(context.Background(), IngestInput{Transcript: "text"})
	assertCode(t, err, apperrors.ErrorCode_EXTRACTION_FAILED)
	if repo.created != nil {
		t.Fatal("nothing must be persisted when extraction fails")
	}
}

func TestIngest_EmbeddingFailure(t *testing.T) {
	repo := &fakeRepo{}
	embedder := &fakeEmbedder{err: stderrors.New("connection reset")}
	svc := newTestService(repo, &fakeExtractor{content: validExtraction}, embedder, nil, nil)

	_, err := svc.Ingest(context.Background(), IngestInput{Transcript: "text"})
	assertCode(t, err, apperrors.ErrorCode_EMBEDDING_FAILED)
	if repo.created != nil {
		t.Fatal("nothing must be persisted when embedding fails")
	}
}

func TestIngest_GarbledExtractionStillPersists(t *testing.T) {
	repo := &fakeRepo{}
	extractor := &fakeExtractor{content: "not json at all"}
	svc := newTestService(repo, extractor, &fakeEmbedder{vec: []float64{1, 2}}, nil, nil)

	got, err := svc.Ingest(context.Background(), IngestInput{Transcript: "text"})
	if err != nil {
		t.Fatalf("Ingest failed: %v", err)
	}
	if got.Summary != "" || got.Sentiment != entities.SentimentNeutral {
		t.Fatalf("degraded fields: summary=%q sentiment=%q", got.Summary, got.Sentiment)
	}
	if len(repo.createdTopic) != 0 || len(repo.createdItems) != 0 {
		t.Fatal("degraded ingestion must carry no topics or items")
	}
	if len(got.Embedding) != 2 {
		t.Fatal("embedding must still be stored")
	}
}

func TestIngest_RepoFailure(t *testing.T) {
	repo := &fakeRepo{createErr: stderrors.New("deadlock")}
	svc := newTestService(repo, &fakeExtractor{content: validExtraction}, &fakeEmbedder{vec: []float64{1}}, nil, nil)

	_, err := svc.Ingest(context.Background(), IngestInput{Transcript: "text"})
	assertCode(t, err, apperrors.ErrorCode_DB_TRANSACTION_FAILED)
}

func TestIngestAudio_NoTranscriber(t *testing.T) {
	svc := newTestService(&fakeRepo{}, &fakeExtractor{}, &fakeEmbedder{}, nil, nil)

	_, err := svc.IngestAudio(context.Background(), AudioIngestInput{AudioURL: "https://x/a.mp3"})
	assertCode(t, err, apperrors.ErrorCode_TRANSCRIPTION_UNAVAILABLE)
}

func TestIngestAudio_EmptyURL(t *testing.T) {
	svc := newTestService(&fakeRepo{}, &fakeExtractor{}, &fakeEmbedder{}, &fakeTranscriber{}, nil)

	_, err := svc.IngestAudio(context.Background(), AudioIngestInput{})
	assertCode(t, err, apperrors.ErrorCode_INVALID_ARGUMENT)
}

func TestIngestAudio_TranscriptionFailure(t *testing.T) {
	transcriber := &fakeTranscriber{err: stderrors.New("unsupported codec")}
	svc := newTestService(&fakeRepo{}, &fakeExtractor{}, &fakeEmbedder{}, transcriber, nil)

	_, err := svc.IngestAudio(context.Background(), AudioIngestInput{AudioURL: "https://x/a.mp3"})
	assertCode(t, err, apperrors.ErrorCode_TRANSCRIPTION_FAILED)
}

func TestIngestAudio_DelegatesToIngest(t *testing.T) {
	repo := &fakeRepo{}
	transcriber := &fakeTranscriber{text: "Speaker A: hello everyone."}
	svc := newTestService(repo, &fakeExtractor{content: validExtraction}, &fakeEmbedder{vec: []float64{1}}, transcriber, nil)

	got, err := svc.IngestAudio(context.Background(), AudioIngestInput{
		Title:    "Recorded sync",
		AudioURL: "https://x/a.mp3",
	})
	if err != nil {
		t.Fatalf("IngestAudio failed: %v", err)
	}
	if got.Text != "Speaker A: hello everyone." {
		t.Fatalf("stored text = %q", got.Text)
	}
	if repo.created == nil {
		t.Fatal("nothing persisted")
	}
}

func TestSearch_EmptyQuery(t *testing.T) {
	embedder := &fakeEmbedder{vec: []float64{1}}
	svc := newTestService(&fakeRepo{}, &fakeExtractor{}, embedder, nil, nil)

	got, err := svc.Search(context.Background(), "   ")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("got %d results, want 0", len(got))
	}
	if embedder.calls != 0 {
		t.Fatal("empty query must not call the embedder")
	}
}

func TestSearch_RanksCorpus(t *testing.T) {
	repo := &fakeRepo{listResult: []*entities.Transcript{
		{Title: "far", Embedding: []float64{0, 1}},
		{Title: "near", Embedding: []float64{1, 0}},
	}}
	embedder := &fakeEmbedder{vec: []float64{1, 0}}
	svc := newTestService(repo, &fakeExtractor{}, embedder, nil, nil)

	got, err := svc.Search(context.Background(), "budget review")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d results", len(got))
	}
	if got[0].Transcript.Title != "near" {
		t.Fatalf("best match = %s", got[0].Transcript.Title)
	}
}

func TestSearch_CacheHitSkipsEmbedder(t *testing.T) {
	repo := &fakeRepo{listResult: []*entities.Transcript{{Title: "only", Embedding: []float64{1, 0}}}}
	embedder := &fakeEmbedder{vec: []float64{0, 1}}
	cache := &fakeCache{data: map[string]string{"query-embedding:budget": "[1,0]"}}
	svc := newTestService(repo, &fakeExtractor{}, embedder, nil, cache)

	got, err := svc.Search(context.Background(), "budget")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if embedder.calls != 0 {
		t.Fatal("cache hit must not call the embedder")
	}
	if got[0].Score < 0.99 {
		t.Fatalf("cached vector not used, score = %v", got[0].Score)
	}
}

func TestSearch_CacheMissStoresEmbedding(t *testing.T) {
	repo := &fakeRepo{}
	embedder := &fakeEmbedder{vec: []float64{1, 0}}
	cache := &fakeCache{}
	svc := newTestService(repo, &fakeExtractor{}, embedder, nil, cache)

	if _, err := svc.Search(context.Background(), "budget"); err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if embedder.calls != 1 {
		t.Fatalf("embedder calls = %d, want 1", embedder.calls)
	}
	if cache.sets != 1 {
		t.Fatalf("cache sets = %d, want 1", cache.sets)
	}
	if _, ok := cache.data["query-embedding:budget"]; !ok {
		t.Fatal("embedding not cached under the query key")
	}
}

func TestSearch_EmbeddingFailure(t *testing.T) {
	embedder := &fakeEmbedder{err: stderrors.New("boom")}
	svc := newTestService(&fakeRepo{}, &fakeExtractor{}, embedder, nil, nil)

	_, err := svc.Search(context.Background(), "budget")
	assertCode(t, err, apperrors.ErrorCode_EMBEDDING_FAILED)
}

func TestGet_NotFound(t *testing.T) {
	svc := newTestService(&fakeRepo{}, &fakeExtractor{}, &fakeEmbedder{}, nil, nil)

	_, err := svc.Get(context.Background(), uuid.New())
	assertCode(t, err, apperrors.ErrorCode_TRANSCRIPT_NOT_FOUND)
}

func TestGet_Found(t *testing.T) {
	want := &entities.Transcript{ID: uuid.New(), Title: "retro"}
	svc := newTestService(&fakeRepo{getResult: want}, &fakeExtractor{}, &fakeEmbedder{}, nil, nil)

	got, err := svc.Get(context.Background(), want.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.ID != want.ID {
		t.Fatalf("id = %s, want %s", got.ID, want.ID)
	}
}

func TestTopicFrequency_Service(t *testing.T) {
	repo := &fakeRepo{listResult: []*entities.Transcript{
		{Topics: []entities.Topic{{Name: "budget"}}},
		{Topics: []entities.Topic{{Name: "budget"}}},
	}}
	svc := newTestService(repo, &fakeExtractor{}, &fakeEmbedder{}, nil, nil)

	got, err := svc.TopicFrequency(context.Background())
	if err != nil {
		t.Fatalf("TopicFrequency failed: %v", err)
	}
	if len(got) != 1 || got[0].Count != 2 {
		t.Fatalf("got %v", got)
	}
}

func TestRawPayload(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{`{"summary":"x"}`, `{"summary":"x"}`},
		{"", "{}"},
		{"plain text", `"plain text"`},
	}

	for _, c := range cases {
		got := string(rawPayload(c.in))
		if got != c.want {
			t.Fatalf("rawPayload(%q) = %s, want %s", c.in, got, c.want)
		}
	}
}
