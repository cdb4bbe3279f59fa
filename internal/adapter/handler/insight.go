package handler

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-insights/errors"
	dto "github.com/johnquangdev/meeting-insights/internal/adapter/dto/insight"
	"github.com/johnquangdev/meeting-insights/internal/adapter/presenter"
	insightuse "github.com/johnquangdev/meeting-insights/internal/usecase/insight"
)

// InsightController handles transcript ingestion, retrieval, search and
// analytics endpoints
type InsightController struct {
	svc    insightuse.Service
	logger *zap.Logger
}

// NewInsightController creates a new insight controller
func NewInsightController(svc insightuse.Service, logger *zap.Logger) *InsightController {
	return &InsightController{svc: svc, logger: logger}
}

// Ingest ingests a raw transcript
// @Summary      Ingest a meeting transcript
// @Description  Extracts summary, sentiment, topics and action items, embeds the transcript and persists everything atomically
// @Tags         Transcripts
// @Accept       json
// @Produce      json
// @Param        request  body      dto.IngestTranscriptRequest  true  "Transcript to ingest"
// @Success      200      {object}  dto.IngestResponse           "Persisted transcript id"
// @Failure      400      {object}  map[string]interface{}       "Missing transcript text"
// @Failure      502      {object}  map[string]interface{}       "Extraction or embedding call failed"
// @Router       /ingest [post]
func (ic *InsightController) Ingest(c echo.Context) error {
	var req dto.IngestTranscriptRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(ic.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(ic.logger, c, errors.ErrInvalidArgument(err.Error()))
	}

	in := insightuse.IngestInput{
		Title:        req.Title,
		Participants: dto.Names(req.Participants),
		Transcript:   req.Transcript,
	}
	if req.TranscriptID != nil {
		id, err := uuid.Parse(*req.TranscriptID)
		if err != nil {
			return HandleError(ic.logger, c, errors.ErrInvalidArgument("invalid transcript_id"))
		}
		in.ID = &id
	}

	t, err := ic.svc.Ingest(c.Request().Context(), in)
	if err != nil {
		return HandleError(ic.logger, c, err)
	}
	return HandleSuccess(ic.logger, c, dto.IngestResponse{Success: true, ID: t.ID.String()})
}

// IngestAudio ingests a meeting recording by URL
// @Summary      Ingest a meeting recording
// @Description  Transcribes the audio at the given URL, then runs the standard transcript ingestion pipeline
// @Tags         Transcripts
// @Accept       json
// @Produce      json
// @Param        request  body      dto.IngestAudioRequest  true  "Recording to ingest"
// @Success      200      {object}  dto.IngestResponse      "Persisted transcript id"
// @Failure      400      {object}  map[string]interface{}  "Missing audio URL"
// @Failure      502      {object}  map[string]interface{}  "Transcription, extraction or embedding failed"
// @Failure      503      {object}  map[string]interface{}  "Audio transcription not configured"
// @Router       /ingest/audio [post]
func (ic *InsightController) IngestAudio(c echo.Context) error {
	var req dto.IngestAudioRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(ic.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(ic.logger, c, errors.ErrInvalidArgument(err.Error()))
	}

	t, err := ic.svc.IngestAudio(c.Request().Context(), insightuse.AudioIngestInput{
		Title:        req.Title,
		Participants: dto.Names(req.Participants),
		AudioURL:     req.AudioURL,
	})
	if err != nil {
		return HandleError(ic.logger, c, err)
	}
	return HandleSuccess(ic.logger, c, dto.IngestResponse{Success: true, ID: t.ID.String()})
}

// List returns all transcripts, newest first
// @Summary      List transcripts
// @Tags         Transcripts
// @Produce      json
// @Success      200  {array}  dto.TranscriptResponse
// @Router       /transcripts [get]
func (ic *InsightController) List(c echo.Context) error {
	transcripts, err := ic.svc.List(c.Request().Context())
	if err != nil {
		return HandleError(ic.logger, c, err)
	}
	return HandleSuccess(ic.logger, c, presenter.ToTranscriptList(transcripts))
}

// Get returns one transcript by id
// @Summary      Get a transcript
// @Tags         Transcripts
// @Produce      json
// @Param        id   path      string  true  "Transcript ID (UUID)"
// @Success      200  {object}  dto.TranscriptResponse
// @Failure      404  {object}  map[string]interface{}  "Transcript not found"
// @Router       /transcripts/{id} [get]
func (ic *InsightController) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(ic.logger, c, errors.ErrInvalidArgument("invalid transcript id"))
	}

	t, err := ic.svc.Get(c.Request().Context(), id)
	if err != nil {
		return HandleError(ic.logger, c, err)
	}
	return HandleSuccess(ic.logger, c, presenter.ToTranscriptResponse(t))
}

// Search ranks transcripts by semantic similarity to the query
// @Summary      Semantic transcript search
// @Description  Embeds the query and ranks stored transcripts by cosine similarity, returning the top matches. An empty query yields an empty list.
// @Tags         Search
// @Produce      json
// @Param        q    query    string  false  "Query text"
// @Success      200  {array}  dto.SearchResultResponse
// @Router       /search [get]
func (ic *InsightController) Search(c echo.Context) error {
	results, err := ic.svc.Search(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return HandleError(ic.logger, c, err)
	}
	return HandleSuccess(ic.logger, c, presenter.ToSearchResults(results))
}

// TopicAnalytics returns topic frequencies across all transcripts
// @Summary      Topic frequency analytics
// @Tags         Analytics
// @Produce      json
// @Success      200  {array}  dto.NameCountResponse
// @Router       /analytics/topics [get]
func (ic *InsightController) TopicAnalytics(c echo.Context) error {
	counts, err := ic.svc.TopicFrequency(c.Request().Context())
	if err != nil {
		return HandleError(ic.logger, c, err)
	}
	return HandleSuccess(ic.logger, c, presenter.ToNameCounts(counts))
}

// ParticipantAnalytics returns participant frequencies across all transcripts
// @Summary      Participant frequency analytics
// @Tags         Analytics
// @Produce      json
// @Success      200  {array}  dto.NameCountResponse
// @Router       /analytics/participants [get]
func (ic *InsightController) ParticipantAnalytics(c echo.Context) error {
	counts, err := ic.svc.ParticipantFrequency(c.Request().Context())
	if err != nil {
		return HandleError(ic.logger, c, err)
	}
	return HandleSuccess(ic.logger, c, presenter.ToNameCounts(counts))
}
