package analysis

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Result is the structured output of one vision analysis call.
type Result struct {
	Summary      string   `json:"summary"`
	Productivity string   `json:"productivity"`
	Applications []string `json:"applications"`
	ContentTypes []string `json:"content_types"`
}

// VisionClient submits an image plus the fixed prompt to the external
// vision-analysis service.
type VisionClient interface {
	Analyze(ctx context.Context, image []byte, prompt Prompt) (Result, error)
}

type HTTPVisionClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewHTTPVisionClient(baseURL, apiKey string, timeout time.Duration) *HTTPVisionClient {
	if timeout <= 0 {
		timeout = 45 * time.Second
	}
	return &HTTPVisionClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
	}
}

type analyzeRequest struct {
	Model       string `json:"model"`
	Prompt      string `json:"prompt"`
	ImageBase64 string `json:"image_base64"`
}

func (c *HTTPVisionClient) Analyze(ctx context.Context, image []byte, prompt Prompt) (Result, error) {
	body, err := json.Marshal(analyzeRequest{
		Model:       prompt.Model,
		Prompt:      prompt.Text,
		ImageBase64: base64.StdEncoding.EncodeToString(image),
	})
	if err != nil {
		return Result{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/analyze", bytes.NewReader(body))
	if err != nil {
		return Result{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return Result{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return Result{}, fmt.Errorf("vision: unexpected status %d", resp.StatusCode)
	}

	var result Result
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(&result); err != nil {
		return Result{}, fmt.Errorf("vision: malformed response: %w", err)
	}
	if result.Summary == "" {
		return Result{}, fmt.Errorf("vision: response missing summary")
	}
	if !prompt.labelAllowed(result.Productivity) {
		return Result{}, fmt.Errorf("vision: unknown productivity label %q", result.Productivity)
	}
	return result, nil
}
