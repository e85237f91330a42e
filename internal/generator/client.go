package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// DefaultBaseURL is the OpenAI API root.
const DefaultBaseURL = "https://api.openai.com/v1"

// Client calls the OpenAI Responses API with a strict JSON-schema format.
type Client struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float64
	HTTPClient  *http.Client
	Limiter     *RateLimiter
}

// NewClient creates a Client. It fails only when no API key is given.
func NewClient(apiKey, baseURL, model string, temperature float64) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		APIKey:      apiKey,
		BaseURL:     strings.TrimRight(baseURL, "/"),
		Model:       model,
		Temperature: temperature,
		HTTPClient:  &http.Client{},
	}, nil
}

type apiRequest struct {
	Model       string       `json:"model"`
	Temperature float64      `json:"temperature"`
	Text        apiText      `json:"text"`
	Input       []apiMessage `json:"input"`
}

type apiText struct {
	Format textFormat `json:"format"`
}

type apiMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type apiResponse struct {
	OutputText string          `json:"output_text"`
	Output     []apiOutputItem `json:"output"`
	Error      *apiError       `json:"error,omitempty"`
}

type apiOutputItem struct {
	Type    string            `json:"type"`
	Content []apiContentBlock `json:"content"`
}

type apiContentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type apiError struct {
	Type    string `json:"type"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// APIError is a non-success answer from the upstream.
type APIError struct {
	StatusCode int
	Type       string
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	label := e.Code
	if label == "" {
		label = e.Type
	}
	if label == "" {
		return fmt.Sprintf("API returned status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("API error %d (%s): %s", e.StatusCode, label, e.Message)
}

// IsQuotaOrRateLimit reports whether err means the upstream refuses calls for
// now: HTTP 429 or an insufficient_quota / rate_limit error code.
func IsQuotaOrRateLimit(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	if apiErr.StatusCode == http.StatusTooManyRequests {
		return true
	}
	for _, s := range []string{apiErr.Code, apiErr.Type} {
		if strings.Contains(s, "insufficient_quota") || strings.Contains(s, "rate_limit") {
			return true
		}
	}
	return false
}

// Complete sends one prompt under the quest schema and returns the raw text
// the model produced. Upstream and network failures are returned as errors.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	if err := c.Limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("waiting for rate limiter: %w", err)
	}

	reqBody := apiRequest{
		Model:       c.Model,
		Temperature: c.Temperature,
		Text:        apiText{Format: questFormat()},
		Input: []apiMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/responses", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.APIKey)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}

	var apiResp apiResponse
	decodeErr := json.Unmarshal(respBody, &apiResp)

	if resp.StatusCode != http.StatusOK {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: string(respBody)}
		if decodeErr == nil && apiResp.Error != nil {
			apiErr.Type = apiResp.Error.Type
			apiErr.Code = apiResp.Error.Code
			apiErr.Message = apiResp.Error.Message
		}
		return "", apiErr
	}

	if decodeErr != nil {
		return "", fmt.Errorf("parsing response: %w", decodeErr)
	}

	if apiResp.Error != nil {
		return "", &APIError{
			StatusCode: resp.StatusCode,
			Type:       apiResp.Error.Type,
			Code:       apiResp.Error.Code,
			Message:    apiResp.Error.Message,
		}
	}

	return strings.TrimSpace(extractText(&apiResp)), nil
}

// extractText prefers the aggregated output_text and otherwise concatenates
// every text part of the structured output blocks.
func extractText(resp *apiResponse) string {
	if strings.TrimSpace(resp.OutputText) != "" {
		return resp.OutputText
	}

	var sb strings.Builder
	for _, item := range resp.Output {
		for _, block := range item.Content {
			if block.Text != "" {
				sb.WriteString(block.Text)
			}
		}
	}
	return sb.String()
}
