package handler

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-insights/errors"
	"github.com/johnquangdev/meeting-insights/internal/infrastructure/storage"
)

// recordingURLExpiry must outlive the transcription provider's fetch
const recordingURLExpiry = 24 * time.Hour

// StorageHandler handles recording uploads
type StorageHandler struct {
	minioClient *storage.MinIOClient
	logger      *zap.Logger
}

// NewStorageHandler creates a new storage handler
func NewStorageHandler(minioClient *storage.MinIOClient, logger *zap.Logger) *StorageHandler {
	return &StorageHandler{minioClient: minioClient, logger: logger}
}

// UploadRecording uploads an audio recording and returns a presigned URL
// @Summary      Upload a meeting recording
// @Description  Stores the uploaded audio file and returns a presigned URL usable with the audio ingestion endpoint
// @Tags         Storage
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Audio recording"
// @Success      200   {object}  map[string]interface{}  "Object name and presigned URL"
// @Failure      400   {object}  map[string]interface{}  "Missing file"
// @Failure      500   {object}  map[string]interface{}  "Upload failed"
// @Router       /recordings [post]
func (h *StorageHandler) UploadRecording(c echo.Context) error {
	ctx := c.Request().Context()

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("file is required"))
	}

	src, err := fileHeader.Open()
	if err != nil {
		return HandleError(h.logger, c, errors.ErrStorageFailed(err))
	}
	defer src.Close()

	objectName := fmt.Sprintf("recordings/%s%s", uuid.New().String(), filepath.Ext(fileHeader.Filename))
	contentType := fileHeader.Header.Get("Content-Type")

	if err := h.minioClient.UploadRecording(ctx, objectName, src, fileHeader.Size, contentType); err != nil {
		if h.logger != nil {
			h.logger.Error("failed to upload recording",
				zap.String("object_name", objectName),
				zap.Error(err))
		}
		return HandleError(h.logger, c, errors.ErrStorageFailed(err))
	}

	url, err := h.minioClient.GetRecordingURL(ctx, objectName, recordingURLExpiry)
	if err != nil {
		if h.logger != nil {
			h.logger.Error("uploaded but failed to generate URL",
				zap.String("object_name", objectName),
				zap.Error(err))
		}
		return HandleError(h.logger, c, errors.ErrStorageFailed(err))
	}

	if h.logger != nil {
		h.logger.Info("recording uploaded",
			zap.String("object_name", objectName),
			zap.Int64("size", fileHeader.Size))
	}

	return HandleSuccess(h.logger, c, map[string]interface{}{
		"object_name": objectName,
		"url":         url,
	})
}
