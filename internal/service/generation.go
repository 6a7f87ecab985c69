package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

const defaultGeminiURL = "https://generativelanguage.googleapis.com"

// GenerateRequest is a single-prompt text generation request
type GenerateRequest struct {
	Model       string
	Prompt      string
	Temperature float64
}

// Generator produces text for a prompt. Implementations must be safe for
// concurrent use.
type Generator interface {
	Generate(ctx context.Context, req GenerateRequest) (string, error)
}

// APIError is returned when the generation service answers with an error status
type APIError struct {
	Code    int
	Status  string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%d %s. %s", e.Code, e.Status, e.Message)
}

// GeminiClient calls the Gemini generateContent REST endpoint
type GeminiClient struct {
	apiKey string
	apiURL string
	client *http.Client
	log    logrus.FieldLogger
}

// NewGeminiClient creates a new GeminiClient instance
func NewGeminiClient(apiKey, apiURL string, timeout time.Duration, log logrus.FieldLogger) (*GeminiClient, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY or GEMINI_API_KEY_FILE must be set")
	}
	if apiURL == "" {
		apiURL = defaultGeminiURL
	}
	if log == nil {
		log = logrus.StandardLogger()
	}

	return &GeminiClient{
		apiKey: apiKey,
		apiURL: strings.TrimRight(apiURL, "/"),
		client: &http.Client{Timeout: timeout},
		log:    log.WithField("component", "gemini"),
	}, nil
}

type geminiPart struct {
	Text    string `json:"text,omitempty"`
	Thought bool   `json:"thought,omitempty"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	Contents         []geminiContent `json:"contents"`
	GenerationConfig struct {
		Temperature float64 `json:"temperature"`
	} `json:"generationConfig"`
}

type geminiResponse struct {
	Candidates []struct {
		Content      geminiContent `json:"content"`
		FinishReason string        `json:"finishReason"`
	} `json:"candidates"`
	PromptFeedback struct {
		BlockReason string `json:"blockReason"`
	} `json:"promptFeedback"`
}

type geminiErrorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// Generate sends the prompt as a single user turn and returns the text of the
// first candidate. Thought parts are skipped. A candidate with no text is an
// error, never an empty recipe.
func (c *GeminiClient) Generate(ctx context.Context, req GenerateRequest) (string, error) {
	var payload geminiRequest
	payload.Contents = []geminiContent{{
		Role:  "user",
		Parts: []geminiPart{{Text: req.Prompt}},
	}}
	payload.GenerationConfig.Temperature = req.Temperature

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.apiURL, url.PathEscape(req.Model))
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		c.log.WithFields(logrus.Fields{
			"status": resp.StatusCode,
			"model":  req.Model,
		}).Warn("generation request rejected")
		return "", newAPIError(resp.StatusCode, body)
	}

	var result geminiResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if len(result.Candidates) == 0 {
		if reason := result.PromptFeedback.BlockReason; reason != "" {
			return "", fmt.Errorf("no candidates in response (block reason: %s)", reason)
		}
		return "", fmt.Errorf("no candidates in response")
	}

	var text strings.Builder
	for _, part := range result.Candidates[0].Content.Parts {
		if part.Thought {
			continue
		}
		text.WriteString(part.Text)
	}
	if text.Len() == 0 {
		return "", fmt.Errorf("empty text in response (finish reason: %s)", result.Candidates[0].FinishReason)
	}

	return text.String(), nil
}

func newAPIError(code int, body []byte) *APIError {
	apiErr := &APIError{Code: code, Status: http.StatusText(code)}

	var parsed geminiErrorResponse
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Error.Message != "" {
		apiErr.Message = parsed.Error.Message
		if parsed.Error.Status != "" {
			apiErr.Status = parsed.Error.Status
		}
		return apiErr
	}

	apiErr.Message = strings.TrimSpace(string(body))
	return apiErr
}
