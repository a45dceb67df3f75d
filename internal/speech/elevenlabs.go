package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"
)

const elevenLabsDefaultURL = "https://api.elevenlabs.io/v1/speech-to-text"

// ElevenLabsClient transcribes audio through the ElevenLabs scribe API
type ElevenLabsClient struct {
	apiKey     string
	modelID    string
	baseURL    string
	httpClient *http.Client
}

// NewElevenLabsClient creates a scribe client. modelID defaults to scribe_v1
// when empty
func NewElevenLabsClient(apiKey, modelID string, timeout time.Duration) *ElevenLabsClient {
	if modelID == "" {
		modelID = "scribe_v1"
	}
	return &ElevenLabsClient{
		apiKey:     apiKey,
		modelID:    modelID,
		baseURL:    elevenLabsDefaultURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *ElevenLabsClient) Name() string {
	return "elevenlabs"
}

// Transcribe uploads the audio as a multipart form and parses the transcript
func (c *ElevenLabsClient) Transcribe(ctx context.Context, audio io.Reader, filename string) (*Result, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	if err := writer.WriteField("model_id", c.modelID); err != nil {
		return nil, fmt.Errorf("failed to write model field: %w", err)
	}

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := io.Copy(part, audio); err != nil {
		return nil, fmt.Errorf("failed to copy audio: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, &body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("xi-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("elevenlabs request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("elevenlabs returned status %d: %s", resp.StatusCode, string(respBody))
	}

	var payload struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode elevenlabs response: %w", err)
	}

	return &Result{Text: payload.Text}, nil
}
