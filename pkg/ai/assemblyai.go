package ai

import (
	"context"
	"fmt"

	aai "github.com/AssemblyAI/assemblyai-go-sdk"

	"github.com/johnquangdev/meeting-insights/pkg/config"
)

// AssemblyAIClient wraps the official SDK for audio transcription.
// Used only by the audio ingestion path; text ingestion never touches it.
type AssemblyAIClient struct {
	client *aai.Client
}

// NewAssemblyAIClient creates an AssemblyAI client. Returns nil when no API
// key is configured; callers treat a nil client as audio ingestion disabled.
func NewAssemblyAIClient(cfg *config.AssemblyAIConfig) *AssemblyAIClient {
	if cfg == nil || cfg.APIKey == "" {
		return nil
	}
	return &AssemblyAIClient{client: aai.NewClient(cfg.APIKey)}
}

// TranscribeURL submits the audio at the given URL and blocks until the
// transcription completes, returning the plain transcript text.
func (a *AssemblyAIClient) TranscribeURL(ctx context.Context, audioURL string) (string, error) {
	transcript, err := a.client.Transcripts.TranscribeFromURL(ctx, audioURL, &aai.TranscriptOptionalParams{
		SpeakerLabels: aai.Bool(true),
	})
	if err != nil {
		return "", fmt.Errorf("assemblyai transcription failed: %w", err)
	}

	if transcript.Status == aai.TranscriptStatusError {
		msg := "unknown error"
		if transcript.Error != nil {
			msg = *transcript.Error
		}
		return "", fmt.Errorf("assemblyai transcription failed: %s", msg)
	}

	if transcript.Text == nil || *transcript.Text == "" {
		return "", fmt.Errorf("assemblyai returned empty transcript")
	}
	return *transcript.Text, nil
}
