// Package cli implements the beenthere command line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/beenthere-labs/beenthere/internal/adapters/driven/config/file"
	"github.com/beenthere-labs/beenthere/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

var (
	configDir string
	verbose   bool

	cfg file.Config
	log zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "beenthere",
	Short: "Peer story matching for people going through hard times",
	Long: `beenthere matches personal stories by meaning, not keywords.

It embeds a story corpus into vectors, serves similarity queries over
them, screens both queries and results through a content-risk
classifier, and runs a conversational intake that suggests stories
once it understands what someone is going through.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		// A .env file is optional; absence is not an error.
		_ = godotenv.Load()

		var err error
		cfg, err = file.Load(configDir)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		level := cfg.Log.Level
		if verbose {
			level = "debug"
		}
		log = logger.New(logger.Config{
			Level:  level,
			Pretty: cfg.Log.Pretty || isTerminal(),
			Output: cmd.ErrOrStderr(),
		})
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config", "", "config directory (default ~/.beenthere)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// isTerminal reports whether stderr is a terminal, for pretty logs.
func isTerminal() bool {
	return term.IsTerminal(int(os.Stderr.Fd()))
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
