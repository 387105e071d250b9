package cli

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/spf13/cobra"

	"github.com/phadkeamruta/jobalign-ai/internal/config"
)

// ---------------------------------------------------------------------------
// syncBuffer - thread-safe bytes.Buffer for concurrent test output
// ---------------------------------------------------------------------------

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (n int, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// Compile-time check that syncBuffer implements io.Writer.
var _ io.Writer = (*syncBuffer)(nil)

// ---------------------------------------------------------------------------
// testMocks - convenience struct for grouping all mocks
// ---------------------------------------------------------------------------

type testMocks struct {
	configLoader *mockConfigLoader
	parser       *mockParserFactory
	analyzer     *mockAnalyzerFactory
	store        *mockStoreOpener
}

func newTestMocks() *testMocks {
	return &testMocks{
		configLoader: &mockConfigLoader{},
		parser:       &mockParserFactory{},
		analyzer:     &mockAnalyzerFactory{},
		store:        &mockStoreOpener{},
	}
}

// ---------------------------------------------------------------------------
// testEnv - creates a fully mocked Env for testing
// ---------------------------------------------------------------------------

// testEnvOptions configures a test environment.
type testEnvOptions struct {
	stderr io.Writer
	stdin  io.Reader
	getenv func(string) string
	mocks  *testMocks
}

// testEnvOption configures testEnv.
type testEnvOption func(*testEnvOptions)

// withTestGetenv overrides the environment variable getter.
func withTestGetenv(fn func(string) string) testEnvOption {
	return func(o *testEnvOptions) {
		o.getenv = fn
	}
}

// withTestStdin sets stdin content.
func withTestStdin(content string) testEnvOption {
	return func(o *testEnvOptions) {
		o.stdin = strings.NewReader(content)
	}
}

// withTestMocks substitutes a prepared set of mocks.
func withTestMocks(m *testMocks) testEnvOption {
	return func(o *testEnvOptions) {
		o.mocks = m
	}
}

// testEnv creates a test Env with all dependencies mocked.
// Returns the Env and the mocks for assertions.
func testEnv(opts ...testEnvOption) (*Env, *testMocks) {
	options := &testEnvOptions{
		stderr: &syncBuffer{},
		stdin:  strings.NewReader(""),
		getenv: defaultTestEnv,
		mocks:  newTestMocks(),
	}

	for _, opt := range opts {
		opt(options)
	}

	env := &Env{
		Stderr:          options.stderr,
		Stdin:           options.stdin,
		Getenv:          options.getenv,
		ConfigLoader:    options.mocks.configLoader,
		ParserFactory:   options.mocks.parser,
		AnalyzerFactory: options.mocks.analyzer,
		StoreOpener:     options.mocks.store,
	}

	return env, options.mocks
}

// ---------------------------------------------------------------------------
// Test helpers
// ---------------------------------------------------------------------------

// staticEnv returns a getenv function that returns values from the given map.
func staticEnv(env map[string]string) func(string) string {
	return func(key string) string {
		return env[key]
	}
}

// defaultTestEnv returns API keys for both OpenAI and Gemini.
func defaultTestEnv(key string) string {
	switch key {
	case EnvOpenAIAPIKey:
		return "test-openai-key"
	case EnvGeminiAPIKey:
		return "test-gemini-key"
	default:
		return ""
	}
}

// writeTestFile creates a file with the given content in a temp directory.
// Returns the file path. The file is automatically cleaned up after the test.
func writeTestFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}
	return path
}

// configWithOutputDir returns a ConfigLoader that returns a config with the given output directory.
func configWithOutputDir(outputDir string) *mockConfigLoader {
	return &mockConfigLoader{
		LoadFunc: func() (config.Config, error) {
			return config.Config{OutputDir: outputDir}, nil
		},
	}
}

// runCommand executes cmd with args, capturing stdout.
func runCommand(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), err
}
