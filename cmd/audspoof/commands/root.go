// SPDX-License-Identifier: EPL-2.0

package commands

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ik5/audspoof/internal/config"
)

var (
	// Global flags
	configPath string
	verbose    bool

	// Loaded in PersistentPreRunE
	globalConfig config.Config
)

var rootCmd = &cobra.Command{
	Use:   "audspoof",
	Short: "Feature-based detector for synthetic speech",
	Long: `audspoof - classify speech clips as AI_GENERATED or HUMAN.

The decision is a fixed heuristic over four acoustic features
(zero-crossing rate, spectral centroid, spectral flatness and short-time
energy deviation). It is not a trained model.

Configuration is read from --config (YAML), then AUDSPOOF_API_KEY,
AUDSPOOF_ADDR and AUDSPOOF_FFMPEG, then command flags.

Examples:
  # Run the API
  AUDSPOOF_API_KEY=secret audspoof serve --addr :8001

  # Classify a file locally
  audspoof analyze clip.mp3

  # Call a running server
  audspoof client detect clip.wav --api-key secret --language English`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
}

// setup loads the configuration and installs the default logger.
func setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if verbose {
		cfg.Log.Level = "debug"
	}

	logger, err := cfg.Log.NewLogger(os.Stderr)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)

	globalConfig = cfg
	return nil
}
