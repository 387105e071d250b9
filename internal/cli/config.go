package cli

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/phadkeamruta/jobalign-ai/internal/config"
)

// validConfigKeys lists all supported configuration keys.
var validConfigKeys = []string{
	config.KeyOutputDir,
	config.KeyModel,
	config.KeyResumeDir,
}

// configEnvVars maps config keys to their environment variable fallbacks.
var configEnvVars = map[string]string{
	config.KeyOutputDir: config.EnvOutputDir,
	config.KeyModel:     config.EnvModel,
	config.KeyResumeDir: config.EnvResumeDir,
}

// ConfigCmd creates the config command with subcommands.
// The env parameter provides injectable dependencies for testing.
func ConfigCmd(env *Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration settings",
		Long: `Manage persistent configuration settings.

Configuration is stored in ~/.config/jobalign/config.
Settings can also be overridden via environment variables.

Supported settings:
  output-dir    Default directory for output files (env: JOBALIGN_OUTPUT_DIR)
  model         Default model for both agents (env: JOBALIGN_MODEL)
  resume-dir    Directory for stored resumes (env: JOBALIGN_RESUME_DIR)`,
		Example: `  jobalign config set output-dir ~/Documents/jobalign
  jobalign config get model
  jobalign config list`,
	}

	cmd.AddCommand(configSetCmd(env))
	cmd.AddCommand(configGetCmd(env))
	cmd.AddCommand(configListCmd(env))

	return cmd
}

// configSetCmd creates the "config set" subcommand.
func configSetCmd(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Long: `Set a configuration value.

Supported keys:
  output-dir    Default directory for output files
  model         Default model for both agents
  resume-dir    Directory for stored resumes

Directory keys are created if they don't exist.`,
		Example: `  jobalign config set output-dir ~/Documents/jobalign
  jobalign config set model gpt-4.1`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, value := args[0], args[1]
			return runConfigSet(env, key, value)
		},
	}
}

// configGetCmd creates the "config get" subcommand.
func configGetCmd(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Get a configuration value",
		Long: `Get a configuration value.

Prints the value to stdout, or nothing if not set.`,
		Example: `  jobalign config get output-dir`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigGet(cmd, env, args[0])
		},
	}
}

// configListCmd creates the "config list" subcommand.
func configListCmd(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all configuration values",
		Long: `List all configuration values.

Shows both values from the config file and environment variable overrides.`,
		Example: `  jobalign config list`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigList(cmd, env)
		},
	}
}

// runConfigSet handles the "config set" command.
func runConfigSet(env *Env, key, value string) error {
	// Validate key.
	if !config.IsValidKey(key) {
		return fmt.Errorf("unknown config key %q (valid keys: %v)", key, validConfigKeys)
	}

	// Key-specific validation.
	switch key {
	case config.KeyOutputDir:
		// Expand ~ and validate directory.
		expanded := config.ExpandPath(value)
		if err := config.ValidOutputDir(expanded); err != nil {
			return fmt.Errorf("invalid output-dir: %w", err)
		}
		// Store the expanded path for consistency.
		value = expanded
	case config.KeyResumeDir:
		value = config.ExpandPath(value)
	}

	// Save to config file.
	if err := config.Save(key, value); err != nil {
		return err
	}

	fmt.Fprintf(env.Stderr, "Set %s = %s\n", key, value)
	return nil
}

// runConfigGet handles the "config get" command.
func runConfigGet(cmd *cobra.Command, env *Env, key string) error {
	// Validate key.
	if !config.IsValidKey(key) {
		return fmt.Errorf("unknown config key %q (valid keys: %v)", key, validConfigKeys)
	}

	value, err := config.Get(key)
	if err != nil {
		return err
	}

	// Check environment variable fallback.
	if value == "" {
		value = env.Getenv(configEnvVars[key])
	}

	if value != "" {
		fmt.Fprintln(cmd.OutOrStdout(), value)
	}

	return nil
}

// runConfigList handles the "config list" command.
func runConfigList(cmd *cobra.Command, env *Env) error {
	data, err := config.List()
	if err != nil {
		return err
	}

	// Add environment variable values for completeness.
	for _, key := range validConfigKeys {
		if _, ok := data[key]; ok {
			continue
		}
		if envVal := env.Getenv(configEnvVars[key]); envVal != "" {
			data[key] = envVal + " (from env)"
		}
	}

	out := cmd.OutOrStdout()
	if len(data) == 0 {
		fmt.Fprintln(out, "No configuration set.")
		fmt.Fprintln(out, "\nAvailable settings:")
		for _, key := range validConfigKeys {
			fmt.Fprintf(out, "  %s\n", key)
		}
		return nil
	}

	keys := make([]string, 0, len(data))
	for key := range data {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	for _, key := range keys {
		fmt.Fprintf(out, "%s=%s\n", key, data[key])
	}

	return nil
}
