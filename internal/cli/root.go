// Package cli provides the command-line interface for formghost.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/raphaelgruber/formghost/internal/agent"
	"github.com/raphaelgruber/formghost/internal/config"
	"github.com/raphaelgruber/formghost/internal/llm"
	"github.com/spf13/cobra"
)

var (
	// Version is set at build time.
	Version = "0.1.0"

	// Global flags
	verbose bool

	// Global config and logger cleanup
	cfg        config.Config
	logCleanup func() error
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "formghost",
	Short: "Fill and submit web survey forms as synthetic personas",
	Long: `Formghost answers web survey forms through an LLM while impersonating a
freshly synthesized persona per submission. Each submission keeps its own
conversation memory so answers stay mutually consistent.

Configure the model backend with FORMGHOST_* environment variables
(provider, persona/answer models, API keys).`,
	Version: Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg = config.Load()

		level := cfg.LogLevel
		if verbose {
			level = slog.LevelDebug
		}
		logger, cleanup := config.SetupLogger(cfg.LogFile, level)
		slog.SetDefault(logger)
		logCleanup = cleanup

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logCleanup != nil {
			if err := logCleanup(); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to close log file: %v\n", err)
			}
		}
	},
}

// newSession builds the two-model engine: a persona synthesizer on the
// persona model and an answerer on the answer model.
func newSession(profile agent.Profile) (*agent.Session, error) {
	personaModel, err := llm.NewModel(cfg, cfg.PersonaModel, cfg.PersonaTemperature)
	if err != nil {
		return nil, fmt.Errorf("init persona model: %w", err)
	}
	answerModel, err := llm.NewModel(cfg, cfg.AnswerModel, cfg.AnswerTemperature)
	if err != nil {
		return nil, fmt.Errorf("init answer model: %w", err)
	}

	return agent.NewSession(
		agent.NewPersonaSynthesizer(personaModel),
		agent.NewAnswerer(answerModel),
		profile, nil, nil,
	), nil
}

// resolveProfile picks the answering profile: explicit file, then flag,
// then environment default.
func resolveProfile(name, path string) (agent.Profile, error) {
	if path == "" {
		path = cfg.ProfilePath
	}
	if path != "" {
		return agent.LoadProfile(path)
	}
	if name == "" {
		name = cfg.ProfileName
	}
	return agent.ProfileByName(name)
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(fillCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(personaCmd)
}
