package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/phadkeamruta/jobalign-ai/internal/agent"
	"github.com/phadkeamruta/jobalign-ai/internal/config"
)

// MatchCmd creates the match command.
// The env parameter provides injectable dependencies for testing.
func MatchCmd(env *Env) *cobra.Command {
	var (
		job        string
		output     string
		provider   string
		model      string
		saveParsed string
	)

	cmd := &cobra.Command{
		Use:   "match <resume-file>",
		Short: "Analyze how well a resume matches a job description",
		Long: `Compare a resume against a job description and produce a match report.

The report covers strengths, gaps, and suggested improvements. Analysis
uses OpenAI by default, or Gemini with --provider gemini. Pass "-" as
the resume file or --job to read from stdin (only one of them may be
stdin), or as --output to print the report to stdout.

With --save-parsed, structured extraction runs concurrently with the
analysis and the parsed JSON is written alongside the report. Extraction
always uses OpenAI.`,
		Example: `  jobalign match resume.txt --job posting.txt
  jobalign match resume.txt -j posting.txt -o report.md
  jobalign match resume.txt -j posting.txt --provider gemini
  jobalign match resume.txt -j posting.txt --save-parsed fields.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMatch(cmd, env, args[0], job, output, provider, model, saveParsed)
		},
	}

	cmd.Flags().StringVarP(&job, "job", "j", "", "Job description file (required)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file path (default: <input>_analysis.md)")
	cmd.Flags().StringVar(&provider, "provider", ProviderOpenAI, "LLM provider for analysis: openai, gemini")
	cmd.Flags().StringVar(&model, "model", "", "Model override for the chosen provider")
	cmd.Flags().StringVar(&saveParsed, "save-parsed", "", "Also write parsed resume JSON to this path")
	_ = cmd.MarkFlagRequired("job")

	return cmd
}

// runMatch executes the match analysis pipeline.
// Validation order: inputs readable -> output path -> provider -> API keys
func runMatch(cmd *cobra.Command, env *Env, resumePath, jobPath, output, providerName, model, saveParsed string) error {
	ctx := cmd.Context()

	// 1. Inputs readable and non-empty (at most one may be stdin)
	if resumePath == stdinPath && jobPath == stdinPath {
		return fmt.Errorf("%w: resume and job description cannot both be stdin", ErrEmptyInput)
	}
	resumeText, err := readDocument(env, resumePath)
	if err != nil {
		return err
	}
	jobText, err := readDocument(env, jobPath)
	if err != nil {
		return err
	}

	// 2. Load config for output-dir and model defaults
	cfg, err := env.ConfigLoader.Load()
	if err != nil {
		fmt.Fprintf(env.Stderr, "Warning: failed to load config: %v\n", err)
	}

	// 3. Output path (resolve with output-dir, derive default from input)
	if output != stdinPath {
		defaultOutput := deriveOutputPath(resumePath, "_analysis.md")
		output = config.ResolveOutputPath(output, cfg.OutputDir, defaultOutput)
	}

	// 4. Provider valid
	prov, err := ParseProvider(providerName)
	if err != nil {
		return err
	}

	// 5. API keys present
	openaiKey := env.Getenv(EnvOpenAIAPIKey)
	if prov.IsOpenAI() || saveParsed != "" {
		// Extraction always runs on OpenAI, so --save-parsed needs the
		// key even when Gemini does the analysis.
		if openaiKey == "" {
			return fmt.Errorf("%w (set it with: export %s=sk-...)", ErrAPIKeyMissing, EnvOpenAIAPIKey)
		}
	}

	if model == "" {
		model = cfg.Model
	}

	analyzer, err := newAnalyzer(env, prov, openaiKey, model)
	if err != nil {
		return err
	}

	fmt.Fprintf(env.Stderr, "Analyzing match (provider: %s)...\n", prov)

	// Analysis and optional extraction are independent API calls, so
	// run them concurrently and fail fast on the first error.
	var (
		report string
		parsed []byte
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		r, err := analyzer.Analyze(gctx, jobText, resumeText)
		if err != nil {
			return err
		}
		report = r
		return nil
	})
	if saveParsed != "" {
		g.Go(func() error {
			var opts []agent.OpenAIOption
			if model != "" {
				opts = append(opts, agent.WithParseModel(model))
			}
			parser := env.ParserFactory.NewParser(openaiKey, opts...)
			res, err := parser.Parse(gctx, resumeText)
			if err != nil {
				return err
			}
			data, err := json.MarshalIndent(res, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to encode parsed resume: %w", err)
			}
			parsed = data
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if saveParsed != "" {
		if err := writeFileAtomic(saveParsed, string(parsed)+"\n"); err != nil {
			return err
		}
		fmt.Fprintf(env.Stderr, "Wrote %s\n", saveParsed)
	}

	if output == stdinPath {
		fmt.Fprintln(cmd.OutOrStdout(), report)
		return nil
	}
	if err := writeFileAtomic(output, report+"\n"); err != nil {
		return err
	}
	fmt.Fprintf(env.Stderr, "Wrote %s\n", output)
	return nil
}

// newAnalyzer constructs the analyzer for the chosen provider, checking
// the provider's key.
func newAnalyzer(env *Env, prov Provider, openaiKey, model string) (agent.Analyzer, error) {
	if prov.IsGemini() {
		geminiKey := env.Getenv(EnvGeminiAPIKey)
		if geminiKey == "" {
			return nil, fmt.Errorf("%w (set it with: export %s=...)", ErrGeminiKeyMissing, EnvGeminiAPIKey)
		}
		var opts []agent.GeminiOption
		if model != "" {
			opts = append(opts, agent.WithGeminiModel(model))
		}
		return env.AnalyzerFactory.NewGeminiAnalyzer(geminiKey, opts...)
	}

	var opts []agent.OpenAIOption
	if model != "" {
		opts = append(opts, agent.WithAnalyzeModel(model))
	}
	return env.AnalyzerFactory.NewOpenAIAnalyzer(openaiKey, opts...), nil
}
