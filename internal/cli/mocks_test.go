package cli

import (
	"context"
	"sync"

	"github.com/phadkeamruta/jobalign-ai/internal/agent"
	"github.com/phadkeamruta/jobalign-ai/internal/config"
	"github.com/phadkeamruta/jobalign-ai/internal/resume"
)

// ---------------------------------------------------------------------------
// Mock ConfigLoader
// ---------------------------------------------------------------------------

type mockConfigLoader struct {
	LoadFunc func() (config.Config, error)

	mu        sync.Mutex
	loadCalls int
}

func (m *mockConfigLoader) Load() (config.Config, error) {
	m.mu.Lock()
	m.loadCalls++
	m.mu.Unlock()

	if m.LoadFunc != nil {
		return m.LoadFunc()
	}
	return config.Config{}, nil
}

func (m *mockConfigLoader) LoadCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loadCalls
}

// ---------------------------------------------------------------------------
// Mock ParserFactory + Parser
// ---------------------------------------------------------------------------

type mockParserFactory struct {
	NewParserFunc func(apiKey string, opts ...agent.OpenAIOption) agent.Parser

	mu             sync.Mutex
	newParserCalls []string // API keys passed
	mockParser     *mockParser
}

func (m *mockParserFactory) NewParser(apiKey string, opts ...agent.OpenAIOption) agent.Parser {
	m.mu.Lock()
	m.newParserCalls = append(m.newParserCalls, apiKey)
	m.mu.Unlock()

	if m.NewParserFunc != nil {
		return m.NewParserFunc(apiKey, opts...)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.mockParser == nil {
		m.mockParser = &mockParser{}
	}
	return m.mockParser
}

func (m *mockParserFactory) NewParserCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.newParserCalls...)
}

type mockParser struct {
	ParseFunc func(ctx context.Context, resumeText string) (resume.Resume, error)

	mu         sync.Mutex
	parseCalls []string // resume texts passed
}

func (m *mockParser) Parse(ctx context.Context, resumeText string) (resume.Resume, error) {
	m.mu.Lock()
	m.parseCalls = append(m.parseCalls, resumeText)
	m.mu.Unlock()

	if m.ParseFunc != nil {
		return m.ParseFunc(ctx, resumeText)
	}
	return resume.Resume{Name: "Test Person"}, nil
}

func (m *mockParser) ParseCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.parseCalls...)
}

// ---------------------------------------------------------------------------
// Mock AnalyzerFactory + Analyzer
// ---------------------------------------------------------------------------

type mockAnalyzerFactory struct {
	NewOpenAIAnalyzerFunc func(apiKey string, opts ...agent.OpenAIOption) agent.Analyzer
	NewGeminiAnalyzerFunc func(apiKey string, opts ...agent.GeminiOption) (agent.Analyzer, error)

	mu           sync.Mutex
	openaiCalls  []string // API keys passed
	geminiCalls  []string
	mockAnalyzer *mockAnalyzer
}

func (m *mockAnalyzerFactory) NewOpenAIAnalyzer(apiKey string, opts ...agent.OpenAIOption) agent.Analyzer {
	m.mu.Lock()
	m.openaiCalls = append(m.openaiCalls, apiKey)
	m.mu.Unlock()

	if m.NewOpenAIAnalyzerFunc != nil {
		return m.NewOpenAIAnalyzerFunc(apiKey, opts...)
	}
	return m.analyzer()
}

func (m *mockAnalyzerFactory) NewGeminiAnalyzer(apiKey string, opts ...agent.GeminiOption) (agent.Analyzer, error) {
	m.mu.Lock()
	m.geminiCalls = append(m.geminiCalls, apiKey)
	m.mu.Unlock()

	if m.NewGeminiAnalyzerFunc != nil {
		return m.NewGeminiAnalyzerFunc(apiKey, opts...)
	}
	return m.analyzer(), nil
}

func (m *mockAnalyzerFactory) analyzer() *mockAnalyzer {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.mockAnalyzer == nil {
		m.mockAnalyzer = &mockAnalyzer{}
	}
	return m.mockAnalyzer
}

func (m *mockAnalyzerFactory) OpenAICalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.openaiCalls...)
}

func (m *mockAnalyzerFactory) GeminiCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.geminiCalls...)
}

type mockAnalyzer struct {
	AnalyzeFunc func(ctx context.Context, jobDescription, resumeText string) (string, error)

	mu           sync.Mutex
	analyzeCalls []analyzeCall
}

type analyzeCall struct {
	JobDescription string
	ResumeText     string
}

func (m *mockAnalyzer) Analyze(ctx context.Context, jobDescription, resumeText string) (string, error) {
	m.mu.Lock()
	m.analyzeCalls = append(m.analyzeCalls, analyzeCall{JobDescription: jobDescription, ResumeText: resumeText})
	m.mu.Unlock()

	if m.AnalyzeFunc != nil {
		return m.AnalyzeFunc(ctx, jobDescription, resumeText)
	}
	return "## Match Report\n\nStrong fit.", nil
}

func (m *mockAnalyzer) AnalyzeCalls() []analyzeCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]analyzeCall, len(m.analyzeCalls))
	copy(result, m.analyzeCalls)
	return result
}

// ---------------------------------------------------------------------------
// Mock StoreOpener
// ---------------------------------------------------------------------------

type mockStoreOpener struct {
	OpenFunc func(dir string) (*resume.Store, error)

	mu        sync.Mutex
	openCalls []string // directories passed
}

func (m *mockStoreOpener) Open(dir string) (*resume.Store, error) {
	m.mu.Lock()
	m.openCalls = append(m.openCalls, dir)
	m.mu.Unlock()

	if m.OpenFunc != nil {
		return m.OpenFunc(dir)
	}
	return resume.OpenStore(dir)
}

func (m *mockStoreOpener) OpenCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.openCalls...)
}

// Compile-time interface verification.
var (
	_ ConfigLoader    = (*mockConfigLoader)(nil)
	_ ParserFactory   = (*mockParserFactory)(nil)
	_ AnalyzerFactory = (*mockAnalyzerFactory)(nil)
	_ StoreOpener     = (*mockStoreOpener)(nil)
	_ agent.Parser    = (*mockParser)(nil)
	_ agent.Analyzer  = (*mockAnalyzer)(nil)
)
