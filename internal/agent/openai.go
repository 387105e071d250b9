package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/phadkeamruta/jobalign-ai/internal/apierr"
	"github.com/phadkeamruta/jobalign-ai/internal/resume"
)

// Default OpenAI configuration.
const (
	// Model configuration. Parsing needs the stronger model for reliable
	// JSON extraction; analysis tolerates the cheaper one.
	defaultParseModel   = "gpt-4.1"
	defaultAnalyzeModel = "gpt-3.5-turbo"

	defaultMaxInputTokens = 100000

	// Temperature: deterministic extraction, slightly creative analysis.
	parseTemperature   = 0
	analyzeTemperature = 0.2
)

// defaultRetryPolicy backs off 1s, 2s, 4s... capped at 30s.
var defaultRetryPolicy = apierr.Policy{
	MaxAttempts: 3,
	BaseDelay:   1 * time.Second,
	Multiplier:  2,
	MaxDelay:    30 * time.Second,
}

// chatCompleter is an internal interface for OpenAI chat completion.
// *openai.Client implements this implicitly.
// This allows injecting mocks in tests.
type chatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Compile-time interface compliance checks.
var (
	_ Parser   = (*OpenAIAgent)(nil)
	_ Analyzer = (*OpenAIAgent)(nil)
)

// OpenAIAgent implements resume parsing and analysis using OpenAI's chat
// completion API. It retries transient failures with exponential backoff.
type OpenAIAgent struct {
	client         chatCompleter
	parseModel     string
	analyzeModel   string
	maxInputTokens int
	retry          apierr.Policy
}

// OpenAIOption configures an OpenAIAgent.
type OpenAIOption func(*OpenAIAgent)

// WithParseModel sets the model used for structured extraction.
func WithParseModel(model string) OpenAIOption {
	return func(a *OpenAIAgent) {
		if model != "" {
			a.parseModel = model
		}
	}
}

// WithAnalyzeModel sets the model used for resume analysis.
func WithAnalyzeModel(model string) OpenAIOption {
	return func(a *OpenAIAgent) {
		if model != "" {
			a.analyzeModel = model
		}
	}
}

// WithMaxInputTokens sets the maximum input token limit.
func WithMaxInputTokens(max int) OpenAIOption {
	return func(a *OpenAIAgent) {
		if max > 0 {
			a.maxInputTokens = max
		}
	}
}

// WithRetryPolicy sets the backoff policy for transient API failures.
func WithRetryPolicy(p apierr.Policy) OpenAIOption {
	return func(a *OpenAIAgent) {
		a.retry = p
	}
}

// withChatCompleter sets a custom chat completer (for testing).
func withChatCompleter(cc chatCompleter) OpenAIOption {
	return func(a *OpenAIAgent) {
		a.client = cc
	}
}

// NewOpenAIAgent creates a new OpenAIAgent with the given client.
// Use options to customize models, token limits, and retry behavior.
func NewOpenAIAgent(client *openai.Client, opts ...OpenAIOption) *OpenAIAgent {
	a := &OpenAIAgent{
		client:         client,
		parseModel:     defaultParseModel,
		analyzeModel:   defaultAnalyzeModel,
		maxInputTokens: defaultMaxInputTokens,
		retry:          defaultRetryPolicy,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Parse extracts structured fields from raw resume text.
// Returns ErrEmptyResume for blank input and ErrInputTooLong when the text
// exceeds the token limit (estimated). Transient API failures (rate limits,
// timeouts, server errors) are retried automatically; quota and auth
// failures are not.
func (a *OpenAIAgent) Parse(ctx context.Context, resumeText string) (resume.Resume, error) {
	if strings.TrimSpace(resumeText) == "" {
		return resume.Resume{}, ErrEmptyResume
	}
	if err := a.checkInputSize(resumeText); err != nil {
		return resume.Resume{}, err
	}

	req := openai.ChatCompletionRequest{
		Model: a.parseModel,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: parsePrompt},
			{Role: openai.ChatMessageRoleUser, Content: resumeText},
		},
		Temperature: parseTemperature,
	}

	content, err := a.completeWithRetry(ctx, req)
	if err != nil {
		return resume.Resume{}, err
	}

	return decodeResume(content)
}

// Analyze compares a resume against a job description and returns the
// optimization report as markdown text.
func (a *OpenAIAgent) Analyze(ctx context.Context, jobDescription, resumeText string) (string, error) {
	if strings.TrimSpace(jobDescription) == "" {
		return "", ErrEmptyJobDescription
	}
	if strings.TrimSpace(resumeText) == "" {
		return "", ErrEmptyResume
	}

	input := analyzeInput(jobDescription, resumeText)
	if err := a.checkInputSize(input); err != nil {
		return "", err
	}

	req := openai.ChatCompletionRequest{
		Model: a.analyzeModel,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: analyzePrompt},
			{Role: openai.ChatMessageRoleUser, Content: input},
		},
		Temperature: analyzeTemperature,
	}

	return a.completeWithRetry(ctx, req)
}

// checkInputSize enforces the estimated token limit before spending an
// API call that the provider would reject anyway.
func (a *OpenAIAgent) checkInputSize(text string) error {
	estimated := estimateTokens(text)
	if estimated > a.maxInputTokens {
		return fmt.Errorf("input too long (%dK tokens estimated, max %dK): %w",
			estimated/1000, a.maxInputTokens/1000, ErrInputTooLong)
	}
	return nil
}

// completeWithRetry executes one chat completion under the retry policy.
func (a *OpenAIAgent) completeWithRetry(ctx context.Context, req openai.ChatCompletionRequest) (string, error) {
	content, _, err := apierr.Do(ctx, a.retry, func() (string, error) {
		resp, err := a.client.CreateChatCompletion(ctx, req)
		if err != nil {
			return "", classifyOpenAIError(err)
		}
		if len(resp.Choices) == 0 {
			return "", fmt.Errorf("no response from API")
		}
		return resp.Choices[0].Message.Content, nil
	}, apierr.IsTransient)
	return content, err
}

// decodeResume unmarshals model output into a Resume, falling back to
// JSON-substring extraction when the model wrapped the object in prose
// or code fences.
func decodeResume(content string) (resume.Resume, error) {
	var r resume.Resume
	if err := json.Unmarshal([]byte(content), &r); err == nil {
		return r, nil
	}

	cleaned, err := extractJSON(content)
	if err != nil {
		return resume.Resume{}, err
	}
	if err := json.Unmarshal([]byte(cleaned), &r); err != nil {
		return resume.Resume{}, fmt.Errorf("failed to parse extraction output: %w", ErrMalformedOutput)
	}
	return r, nil
}

// classifyOpenAIError maps OpenAI API errors to apierr sentinel errors.
// Uses errors.As for robust error type checking instead of string matching.
func classifyOpenAIError(err error) error {
	if err == nil {
		return nil
	}

	// Check for typed API errors first (most reliable).
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.HTTPStatusCode {
		case http.StatusTooManyRequests:
			// Distinguish between temporary rate limit and quota exceeded (billing issue).
			if strings.Contains(apiErr.Message, "quota") ||
				strings.Contains(apiErr.Message, "billing") {
				return fmt.Errorf("%s: %w", apiErr.Message, apierr.ErrQuotaExceeded)
			}
			return fmt.Errorf("%s: %w", apiErr.Message, apierr.ErrRateLimit)
		case http.StatusPaymentRequired:
			return fmt.Errorf("%s: %w", apiErr.Message, apierr.ErrQuotaExceeded)
		case http.StatusUnauthorized:
			return fmt.Errorf("%s: %w", apiErr.Message, apierr.ErrAuthFailed)
		case http.StatusRequestTimeout, http.StatusGatewayTimeout:
			return fmt.Errorf("%s: %w", apiErr.Message, apierr.ErrTimeout)
		case http.StatusInternalServerError, http.StatusBadGateway, http.StatusServiceUnavailable:
			return fmt.Errorf("%s: %w", apiErr.Message, apierr.ErrTimeout) // Retryable server error
		case http.StatusBadRequest:
			// Check for context length exceeded in message.
			if strings.Contains(apiErr.Message, "context_length") ||
				strings.Contains(apiErr.Message, "maximum context length") {
				return fmt.Errorf("API rejected: %w", ErrInputTooLong)
			}
			return fmt.Errorf("%s: %w", apiErr.Message, apierr.ErrBadRequest)
		case http.StatusForbidden, http.StatusNotFound:
			return fmt.Errorf("%s: %w", apiErr.Message, apierr.ErrBadRequest)
		}
	}

	// Check for context timeout/deadline exceeded.
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("request timed out: %w", apierr.ErrTimeout)
	}

	return err
}
