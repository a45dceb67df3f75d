package speech

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// VoskClient talks to a vosk-server instance over its HTTP endpoint. The
// server takes raw audio in the request body and answers with the final
// recognition result as JSON
type VoskClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewVoskClient creates a client for the vosk-server at baseURL
func NewVoskClient(baseURL string, timeout time.Duration) *VoskClient {
	return &VoskClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *VoskClient) Name() string {
	return "vosk"
}

// Transcribe posts the audio bytes and parses the recognizer's final text
func (c *VoskClient) Transcribe(ctx context.Context, audio io.Reader, filename string) (*Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, audio)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "audio/wav")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("vosk request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("vosk returned status %d: %s", resp.StatusCode, string(body))
	}

	var payload struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode vosk response: %w", err)
	}

	return &Result{Text: payload.Text}, nil
}
