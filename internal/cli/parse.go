package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/phadkeamruta/jobalign-ai/internal/agent"
	"github.com/phadkeamruta/jobalign-ai/internal/config"
)

// ParseCmd creates the parse command.
// The env parameter provides injectable dependencies for testing.
func ParseCmd(env *Env) *cobra.Command {
	var (
		output string
		model  string
		save   string
	)

	cmd := &cobra.Command{
		Use:   "parse <resume-file>",
		Short: "Extract structured fields from a resume",
		Long: `Parse a plain-text resume into structured JSON using OpenAI.

The extracted fields include name, contact information, skills, work
experience, education, and ATS keywords. Pass "-" as the resume file to
read from stdin, or as --output to print JSON to stdout.`,
		Example: `  jobalign parse resume.txt
  jobalign parse resume.txt -o fields.json
  jobalign parse resume.txt --save backend  # Also store the raw text
  cat resume.txt | jobalign parse - -o -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, env, args[0], output, model, save)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file path (default: <input>_parsed.json)")
	cmd.Flags().StringVar(&model, "model", "", "OpenAI model for extraction (default: gpt-4.1)")
	cmd.Flags().StringVar(&save, "save", "", "Also save the raw resume text under this name")

	return cmd
}

// runParse executes the resume extraction pipeline.
// Validation order: input readable -> output path -> API key
func runParse(cmd *cobra.Command, env *Env, inputPath, output, model, save string) error {
	ctx := cmd.Context()

	// 1. Input readable and non-empty
	resumeText, err := readDocument(env, inputPath)
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
		defaultOutput := deriveOutputPath(inputPath, "_parsed.json")
		output = config.ResolveOutputPath(output, cfg.OutputDir, defaultOutput)
	}

	// 4. API key present
	apiKey := env.Getenv(EnvOpenAIAPIKey)
	if apiKey == "" {
		return fmt.Errorf("%w (set it with: export %s=sk-...)", ErrAPIKeyMissing, EnvOpenAIAPIKey)
	}

	var opts []agent.OpenAIOption
	if model == "" {
		model = cfg.Model
	}
	if model != "" {
		opts = append(opts, agent.WithParseModel(model))
	}

	// Optional raw-text save happens before the API call so a stored
	// copy survives transient API failures.
	if save != "" {
		if err := saveRawResume(env, cfg, save, resumeText); err != nil {
			return err
		}
		fmt.Fprintf(env.Stderr, "Saved resume %q\n", save)
	}

	fmt.Fprintln(env.Stderr, "Extracting resume fields...")

	parser := env.ParserFactory.NewParser(apiKey, opts...)
	parsed, err := parser.Parse(ctx, resumeText)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(parsed, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode parsed resume: %w", err)
	}

	if output == stdinPath {
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}
	if err := writeFileAtomic(output, string(data)+"\n"); err != nil {
		return err
	}
	fmt.Fprintf(env.Stderr, "Wrote %s\n", output)
	return nil
}

// saveRawResume stores resume text in the named-resume store.
func saveRawResume(env *Env, cfg config.Config, name, text string) error {
	store, err := openResumeStore(env, cfg)
	if err != nil {
		return err
	}
	_, err = store.Save(name, text)
	return err
}
