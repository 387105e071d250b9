package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/phadkeamruta/jobalign-ai/internal/config"
	"github.com/phadkeamruta/jobalign-ai/internal/resume"
)

// ResumesCmd creates the resumes command with its subcommands.
func ResumesCmd(env *Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resumes",
		Short: "Manage stored resumes",
		Long: `Manage the local store of named resume texts.

Stored resumes live under the resume-dir config key, or
~/.local/share/jobalign/resumes by default.`,
	}

	cmd.AddCommand(resumesListCmd(env))
	cmd.AddCommand(resumesSaveCmd(env))
	cmd.AddCommand(resumesShowCmd(env))

	return cmd
}

func resumesListCmd(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored resume names",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResumesList(cmd, env)
		},
	}
}

func resumesSaveCmd(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "save <name> <resume-file>",
		Short: "Store a resume under a name",
		Example: `  jobalign resumes save backend resume.txt
  cat resume.txt | jobalign resumes save backend -`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResumesSave(cmd, env, args[0], args[1])
		},
	}
}

func resumesShowCmd(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Print a stored resume",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResumesShow(cmd, env, args[0])
		},
	}
}

func runResumesList(cmd *cobra.Command, env *Env) error {
	store, err := openStoreFromConfig(env)
	if err != nil {
		return err
	}
	names, err := store.List()
	if err != nil {
		return err
	}
	if len(names) == 0 {
		fmt.Fprintf(env.Stderr, "No stored resumes in %s\n", store.Dir())
		return nil
	}
	for _, name := range names {
		fmt.Fprintln(cmd.OutOrStdout(), name)
	}
	return nil
}

func runResumesSave(cmd *cobra.Command, env *Env, name, inputPath string) error {
	text, err := readDocument(env, inputPath)
	if err != nil {
		return err
	}
	store, err := openStoreFromConfig(env)
	if err != nil {
		return err
	}
	path, err := store.Save(name, text)
	if err != nil {
		return err
	}
	fmt.Fprintf(env.Stderr, "Saved resume %q to %s\n", name, path)
	return nil
}

func runResumesShow(cmd *cobra.Command, env *Env, name string) error {
	store, err := openStoreFromConfig(env)
	if err != nil {
		return err
	}
	text, err := store.Load(name)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), text)
	return nil
}

// openStoreFromConfig opens the resume store at the configured
// directory, warning on config load failure like the other commands.
func openStoreFromConfig(env *Env) (*resume.Store, error) {
	cfg, err := env.ConfigLoader.Load()
	if err != nil {
		fmt.Fprintf(env.Stderr, "Warning: failed to load config: %v\n", err)
	}
	return openResumeStore(env, cfg)
}

// openResumeStore opens the resume store for cfg, falling back to the
// default directory when resume-dir is unset.
func openResumeStore(env *Env, cfg config.Config) (*resume.Store, error) {
	dir := config.ExpandPath(cfg.ResumeDir)
	if dir == "" {
		var err error
		dir, err = resume.DefaultDir()
		if err != nil {
			return nil, err
		}
	}
	return env.StoreOpener.Open(dir)
}
