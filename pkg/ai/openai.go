package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/johnquangdev/meeting-insights/pkg/config"
)

// EmbedMaxChars is the truncation threshold for embedding input. Text past
// this prefix is dropped for similarity purposes only; the full text is
// still stored.
const EmbedMaxChars = 8000

const extractionInstruction = "Extract JSON with: summary (string), sentiment (positive|negative|neutral), topics (string[]), action_items (array of {description: string, assignee?: string, due_date?: string})"

// OpenAIClient is a minimal client for the OpenAI chat and embeddings APIs
type OpenAIClient struct {
	apiKey         string
	baseURL        string
	chatModel      string
	embeddingModel string
	client         *http.Client
}

// NewOpenAIClient creates an OpenAI client using values from the provided
// config. Pass a nil config to fall back to environment variables.
func NewOpenAIClient(cfg *config.OpenAIConfig) *OpenAIClient {
	var apiKey string
	if cfg != nil {
		apiKey = cfg.APIKey
	}
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}

	var base string
	if cfg != nil && cfg.BaseURL != "" {
		base = cfg.BaseURL
	} else {
		base = os.Getenv("OPENAI_API_URL")
		if base == "" {
			base = "https://api.openai.com"
		}
	}

	chatModel := "gpt-3.5-turbo"
	if cfg != nil && cfg.ChatModel != "" {
		chatModel = cfg.ChatModel
	}
	embeddingModel := "text-embedding-3-small"
	if cfg != nil && cfg.EmbeddingModel != "" {
		embeddingModel = cfg.EmbeddingModel
	}

	return &OpenAIClient{
		apiKey:         apiKey,
		baseURL:        base,
		chatModel:      chatModel,
		embeddingModel: embeddingModel,
		client:         &http.Client{Timeout: 60 * time.Second},
	}
}

// ChatRequest is the shape for chat completion requests
type ChatRequest struct {
	Model          string      `json:"model,omitempty"`
	Messages       interface{} `json:"messages,omitempty"`
	Temperature    float64     `json:"temperature"`
	ResponseFormat interface{} `json:"response_format,omitempty"`
}

// ChatResponse is a minimal response shape
type ChatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// EmbeddingRequest is the shape for embedding requests
type EmbeddingRequest struct {
	Model string `json:"model"`
	Input string `json:"input"`
}

// EmbeddingResponse is a minimal response shape
type EmbeddingResponse struct {
	Data []struct {
		Embedding []float64 `json:"embedding"`
	} `json:"data"`
}

// ExtractInsights sends the transcript to the chat completions API and
// returns the raw assistant content. The content is expected to be a JSON
// object but is not parsed here; a garbled body from a successful call is
// the caller's problem, while any transport or status error is a hard error.
func (o *OpenAIClient) ExtractInsights(ctx context.Context, transcript string) (string, error) {
	reqBody := ChatRequest{
		Model: o.chatModel,
		Messages: []map[string]string{
			{"role": "system", "content": extractionInstruction},
			{"role": "user", "content": transcript},
		},
		Temperature:    0.3,
		ResponseFormat: map[string]string{"type": "json_object"},
	}

	b, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	endpoint := o.baseURL + "/v1/chat/completions"
	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+o.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("openai returned status %d", resp.StatusCode)
	}

	var cr ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return "", err
	}
	if len(cr.Choices) == 0 {
		return "", fmt.Errorf("empty response from openai")
	}
	return cr.Choices[0].Message.Content, nil
}

// Embed returns the embedding vector for the given text. Input longer than
// EmbedMaxChars is truncated to that prefix before the call.
func (o *OpenAIClient) Embed(ctx context.Context, text string) ([]float64, error) {
	if len(text) > EmbedMaxChars {
		text = text[:EmbedMaxChars]
	}

	b, err := json.Marshal(EmbeddingRequest{Model: o.embeddingModel, Input: text})
	if err != nil {
		return nil, err
	}

	endpoint := o.baseURL + "/v1/embeddings"
	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+o.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("openai returned status %d", resp.StatusCode)
	}

	var er EmbeddingResponse
	if err := json.NewDecoder(resp.Body).Decode(&er); err != nil {
		return nil, err
	}
	if len(er.Data) == 0 {
		return nil, fmt.Errorf("empty embedding response from openai")
	}
	return er.Data[0].Embedding, nil
}
