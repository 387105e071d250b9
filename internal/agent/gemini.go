package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/phadkeamruta/jobalign-ai/internal/apierr"
)

// Gemini API configuration.
const (
	// API endpoint
	defaultGeminiBaseURL = "https://generativelanguage.googleapis.com"

	// Model configuration
	defaultGeminiModel          = "gemini-1.5-flash"
	defaultGeminiMaxInputTokens = 100000

	// HTTP timeout for generateContent requests.
	defaultGeminiHTTPTimeout = 5 * time.Minute

	// Response size limit to prevent OOM from malformed responses (10MB)
	maxResponseSize = 10 * 1024 * 1024
)

// httpDoer abstracts HTTP client for testing.
type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Compile-time interface compliance check.
var _ Analyzer = (*GeminiAnalyzer)(nil)

// GeminiAnalyzer analyzes resumes using the Gemini generateContent REST API.
// It supports automatic retries with exponential backoff for transient errors.
type GeminiAnalyzer struct {
	apiKey         string
	baseURL        string
	model          string
	maxInputTokens int
	retry          apierr.Policy
	httpTimeout    time.Duration
	httpClient     httpDoer
}

// GeminiOption configures a GeminiAnalyzer.
type GeminiOption func(*GeminiAnalyzer)

// WithGeminiModel sets the model for analysis.
func WithGeminiModel(model string) GeminiOption {
	return func(a *GeminiAnalyzer) {
		if model != "" {
			a.model = model
		}
	}
}

// WithGeminiMaxInputTokens sets the maximum input token limit.
func WithGeminiMaxInputTokens(max int) GeminiOption {
	return func(a *GeminiAnalyzer) {
		if max > 0 {
			a.maxInputTokens = max
		}
	}
}

// WithGeminiRetryPolicy sets the backoff policy for transient API failures.
func WithGeminiRetryPolicy(p apierr.Policy) GeminiOption {
	return func(a *GeminiAnalyzer) {
		a.retry = p
	}
}

// WithGeminiBaseURL sets a custom base URL (for testing or proxies).
func WithGeminiBaseURL(url string) GeminiOption {
	return func(a *GeminiAnalyzer) {
		a.baseURL = strings.TrimSuffix(url, "/")
	}
}

// WithGeminiHTTPTimeout sets the HTTP client timeout.
func WithGeminiHTTPTimeout(timeout time.Duration) GeminiOption {
	return func(a *GeminiAnalyzer) {
		if timeout > 0 {
			a.httpTimeout = timeout
		}
	}
}

// withGeminiHTTPClient sets a custom HTTP client (for testing).
func withGeminiHTTPClient(client httpDoer) GeminiOption {
	return func(a *GeminiAnalyzer) {
		a.httpClient = client
	}
}

// NewGeminiAnalyzer creates a new GeminiAnalyzer.
// apiKey is required. Returns nil and ErrEmptyAPIKey if apiKey is empty.
func NewGeminiAnalyzer(apiKey string, opts ...GeminiOption) (*GeminiAnalyzer, error) {
	if apiKey == "" {
		return nil, ErrEmptyAPIKey
	}

	a := &GeminiAnalyzer{
		apiKey:         apiKey,
		baseURL:        defaultGeminiBaseURL,
		model:          defaultGeminiModel,
		maxInputTokens: defaultGeminiMaxInputTokens,
		retry:          defaultRetryPolicy,
		httpTimeout:    defaultGeminiHTTPTimeout,
	}
	for _, opt := range opts {
		opt(a)
	}
	// Create HTTP client after options are applied (timeout may be customized)
	if a.httpClient == nil {
		a.httpClient = &http.Client{Timeout: a.httpTimeout}
	}
	return a, nil
}

// Analyze compares a resume against a job description and returns the
// optimization report. Transient failures (rate limits, server errors)
// are retried automatically; quota exhaustion and auth failures are not.
func (a *GeminiAnalyzer) Analyze(ctx context.Context, jobDescription, resumeText string) (string, error) {
	if strings.TrimSpace(jobDescription) == "" {
		return "", ErrEmptyJobDescription
	}
	if strings.TrimSpace(resumeText) == "" {
		return "", ErrEmptyResume
	}

	input := analyzeInput(jobDescription, resumeText)
	estimated := estimateTokens(input)
	if estimated > a.maxInputTokens {
		return "", fmt.Errorf("input too long (%dK tokens estimated, max %dK): %w",
			estimated/1000, a.maxInputTokens/1000, ErrInputTooLong)
	}

	req := geminiRequest{
		Contents: []geminiContent{
			{Parts: []geminiPart{{Text: analyzePrompt + "\n\n" + input}}},
		},
		GenerationConfig: &geminiGenerationConfig{Temperature: analyzeTemperature},
	}

	result, _, err := apierr.Do(ctx, a.retry, func() (string, error) {
		resp, err := a.callAPI(ctx, req)
		if err != nil {
			return "", classifyGeminiError(err)
		}
		text := resp.text()
		if text == "" {
			return "", fmt.Errorf("no response from Gemini API")
		}
		return text, nil
	}, apierr.IsTransient)
	return result, err
}

// Gemini generateContent request/response types.

type geminiRequest struct {
	Contents         []geminiContent         `json:"contents"`
	GenerationConfig *geminiGenerationConfig `json:"generationConfig,omitempty"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiGenerationConfig struct {
	Temperature float64 `json:"temperature"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
		FinishReason string `json:"finishReason"`
	} `json:"candidates"`
}

// text joins the parts of the first candidate.
func (r *geminiResponse) text() string {
	if len(r.Candidates) == 0 {
		return ""
	}
	var b strings.Builder
	for _, p := range r.Candidates[0].Content.Parts {
		b.WriteString(p.Text)
	}
	return b.String()
}

// geminiErrorResponse represents the JSON error envelope from the Gemini API.
type geminiErrorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// geminiAPIError represents a typed Gemini API error.
// Unexported: only used for error classification within this package.
type geminiAPIError struct {
	StatusCode int
	Status     string
	Message    string
}

func (e *geminiAPIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("Gemini API error %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("Gemini API error %d", e.StatusCode)
}

// callAPI makes an HTTP request to the Gemini generateContent API.
func (a *GeminiAnalyzer) callAPI(ctx context.Context, reqBody geminiRequest) (_ *geminiResponse, err error) {
	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", a.baseURL, a.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", a.apiKey)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close response body: %w", closeErr)
		}
	}()

	// Limit response size to prevent OOM from malformed responses
	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, parseGeminiError(resp.StatusCode, respBody)
	}

	var result geminiResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	return &result, nil
}

// parseGeminiError parses an error response from the Gemini API.
func parseGeminiError(statusCode int, body []byte) *geminiAPIError {
	var errResp geminiErrorResponse
	if err := json.Unmarshal(body, &errResp); err != nil {
		return &geminiAPIError{
			StatusCode: statusCode,
			Message:    string(body),
		}
	}

	return &geminiAPIError{
		StatusCode: statusCode,
		Status:     errResp.Error.Status,
		Message:    errResp.Error.Message,
	}
}

// classifyGeminiError maps Gemini API errors to apierr sentinel errors.
// Gemini reports both short-term throttling and monthly quota exhaustion
// as 429 RESOURCE_EXHAUSTED; only messages naming quota/billing are
// treated as terminal.
func classifyGeminiError(err error) error {
	if err == nil {
		return nil
	}

	var apiErr *geminiAPIError
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case http.StatusTooManyRequests:
			if strings.Contains(apiErr.Message, "quota") ||
				strings.Contains(apiErr.Message, "billing") {
				return fmt.Errorf("%s: %w", apiErr.Message, apierr.ErrQuotaExceeded)
			}
			return fmt.Errorf("%s: %w", apiErr.Message, apierr.ErrRateLimit)
		case http.StatusUnauthorized, http.StatusForbidden:
			return fmt.Errorf("%s: %w", apiErr.Message, apierr.ErrAuthFailed)
		case http.StatusRequestTimeout, http.StatusGatewayTimeout:
			return fmt.Errorf("%s: %w", apiErr.Message, apierr.ErrTimeout)
		case http.StatusInternalServerError, http.StatusBadGateway, http.StatusServiceUnavailable:
			return fmt.Errorf("%s: %w", apiErr.Message, apierr.ErrTimeout) // Retryable server error
		case http.StatusBadRequest:
			// An invalid key surfaces as 400 INVALID_ARGUMENT, not 401.
			if strings.Contains(apiErr.Message, "API key") {
				return fmt.Errorf("%s: %w", apiErr.Message, apierr.ErrAuthFailed)
			}
			return fmt.Errorf("%s: %w", apiErr.Message, apierr.ErrBadRequest)
		case http.StatusNotFound:
			return fmt.Errorf("%s: %w", apiErr.Message, apierr.ErrBadRequest)
		}
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("request timed out: %w", apierr.ErrTimeout)
	}

	return err
}
