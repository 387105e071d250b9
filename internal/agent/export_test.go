package agent

// Exports for testing. These allow black-box tests to inject dependencies
// without modifying the public API.

// Option exports for dependency injection in tests.
var (
	WithChatCompleter    = withChatCompleter
	WithGeminiHTTPClient = withGeminiHTTPClient
)

// Function exports for unit testing internal logic.
var (
	ClassifyOpenAIError = classifyOpenAIError
	ClassifyGeminiError = classifyGeminiError
	ParseGeminiError    = parseGeminiError
	ExtractJSON         = extractJSON
	EstimateTokens      = estimateTokens
)
