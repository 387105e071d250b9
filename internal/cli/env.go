package cli

import (
	"io"
	"os"

	openai "github.com/sashabaranov/go-openai"

	"github.com/phadkeamruta/jobalign-ai/internal/agent"
	"github.com/phadkeamruta/jobalign-ai/internal/config"
	"github.com/phadkeamruta/jobalign-ai/internal/resume"
)

// Environment variable names for API keys.
const (
	EnvOpenAIAPIKey = "OPENAI_API_KEY"
	EnvGeminiAPIKey = "GEMINI_API_KEY"
)

// Env holds injectable dependencies for CLI commands.
// This is the central injection point for testing CLI commands in isolation.
//
// All fields have sensible defaults via DefaultEnv(). Tests can override
// specific fields using the With* options or by creating a custom Env.
//
// Env must not be nil when passed to command functions. Use DefaultEnv()
// or NewEnv() to create a valid instance.
type Env struct {
	// I/O and environment
	Stderr io.Writer
	Stdin  io.Reader
	Getenv func(string) string

	// Factories for domain objects
	ConfigLoader    ConfigLoader
	ParserFactory   ParserFactory
	AnalyzerFactory AnalyzerFactory
	StoreOpener     StoreOpener
}

// ConfigLoader loads and provides access to configuration.
type ConfigLoader interface {
	Load() (config.Config, error)
}

// ParserFactory creates resume parsers.
type ParserFactory interface {
	NewParser(apiKey string, opts ...agent.OpenAIOption) agent.Parser
}

// AnalyzerFactory creates job-match analyzers for a given provider.
type AnalyzerFactory interface {
	NewOpenAIAnalyzer(apiKey string, opts ...agent.OpenAIOption) agent.Analyzer
	NewGeminiAnalyzer(apiKey string, opts ...agent.GeminiOption) (agent.Analyzer, error)
}

// StoreOpener opens the named-resume store rooted at dir.
type StoreOpener interface {
	Open(dir string) (*resume.Store, error)
}

// EnvOption configures an Env.
type EnvOption func(*Env)

// WithStderr sets the stderr writer.
func WithStderr(w io.Writer) EnvOption {
	return func(e *Env) {
		e.Stderr = w
	}
}

// WithStdin sets the stdin reader.
func WithStdin(r io.Reader) EnvOption {
	return func(e *Env) {
		e.Stdin = r
	}
}

// WithGetenv sets the environment variable getter.
func WithGetenv(fn func(string) string) EnvOption {
	return func(e *Env) {
		e.Getenv = fn
	}
}

// WithConfigLoader sets the config loader.
func WithConfigLoader(l ConfigLoader) EnvOption {
	return func(e *Env) {
		e.ConfigLoader = l
	}
}

// WithParserFactory sets the parser factory.
func WithParserFactory(f ParserFactory) EnvOption {
	return func(e *Env) {
		e.ParserFactory = f
	}
}

// WithAnalyzerFactory sets the analyzer factory.
func WithAnalyzerFactory(f AnalyzerFactory) EnvOption {
	return func(e *Env) {
		e.AnalyzerFactory = f
	}
}

// WithStoreOpener sets the resume store opener.
func WithStoreOpener(o StoreOpener) EnvOption {
	return func(e *Env) {
		e.StoreOpener = o
	}
}

// DefaultEnv returns an Env with production defaults.
func DefaultEnv() *Env {
	return &Env{
		Stderr:          os.Stderr,
		Stdin:           os.Stdin,
		Getenv:          os.Getenv,
		ConfigLoader:    &defaultConfigLoader{},
		ParserFactory:   &defaultParserFactory{},
		AnalyzerFactory: &defaultAnalyzerFactory{},
		StoreOpener:     &defaultStoreOpener{},
	}
}

// NewEnv creates an Env with the given options applied to defaults.
func NewEnv(opts ...EnvOption) *Env {
	env := DefaultEnv()
	for _, opt := range opts {
		opt(env)
	}
	return env
}

// ---------------------------------------------------------------------------
// Default implementations - delegate to real packages
// ---------------------------------------------------------------------------

// defaultConfigLoader implements ConfigLoader using the config package.
type defaultConfigLoader struct{}

func (defaultConfigLoader) Load() (config.Config, error) {
	return config.Load()
}

// defaultParserFactory implements ParserFactory using OpenAI.
type defaultParserFactory struct{}

func (defaultParserFactory) NewParser(apiKey string, opts ...agent.OpenAIOption) agent.Parser {
	client := openai.NewClient(apiKey)
	return agent.NewOpenAIAgent(client, opts...)
}

// defaultAnalyzerFactory implements AnalyzerFactory for both providers.
type defaultAnalyzerFactory struct{}

func (defaultAnalyzerFactory) NewOpenAIAnalyzer(apiKey string, opts ...agent.OpenAIOption) agent.Analyzer {
	client := openai.NewClient(apiKey)
	return agent.NewOpenAIAgent(client, opts...)
}

func (defaultAnalyzerFactory) NewGeminiAnalyzer(apiKey string, opts ...agent.GeminiOption) (agent.Analyzer, error) {
	return agent.NewGeminiAnalyzer(apiKey, opts...)
}

// defaultStoreOpener implements StoreOpener using the resume package.
type defaultStoreOpener struct{}

func (defaultStoreOpener) Open(dir string) (*resume.Store, error) {
	return resume.OpenStore(dir)
}

// Compile-time interface verification.
var (
	_ ConfigLoader    = (*defaultConfigLoader)(nil)
	_ ParserFactory   = (*defaultParserFactory)(nil)
	_ AnalyzerFactory = (*defaultAnalyzerFactory)(nil)
	_ StoreOpener     = (*defaultStoreOpener)(nil)
)
