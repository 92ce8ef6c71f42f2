// SPDX-License-Identifier: EPL-2.0

package commands

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ik5/audspoof/detect"
	"github.com/ik5/audspoof/formats/ffmpeg"
	"github.com/ik5/audspoof/internal/config"
	"github.com/ik5/audspoof/internal/metrics"
	"github.com/ik5/audspoof/internal/server"
)

var (
	serveAddr    string
	serveAPIKey  string
	serveFFmpeg  string
	serveMaxBody int64
	serveMetrics bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long: `Run the detection API until SIGINT or SIGTERM.

Routes:
  POST /detect   classify one clip (X-API-Key required)
  GET  /health   readiness
  GET  /         service description
  GET  /metrics  Prometheus metrics (unless --metrics=false)

Example:
  audspoof serve --addr :8001 --api-key secret`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg := globalConfig
		applyServeFlags(cmd, &cfg)
		if err := cfg.Validate(); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return runServer(ctx, cfg, serveMetrics)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides config)")
	serveCmd.Flags().StringVar(&serveAPIKey, "api-key", "", "shared API key (overrides config)")
	serveCmd.Flags().StringVar(&serveFFmpeg, "ffmpeg", "", "ffmpeg binary (overrides config)")
	serveCmd.Flags().Int64Var(&serveMaxBody, "max-upload-bytes", 0, "request body limit (overrides config)")
	serveCmd.Flags().BoolVar(&serveMetrics, "metrics", true, "expose GET /metrics")

	rootCmd.AddCommand(serveCmd)
}

// applyServeFlags copies the flags the user actually set onto cfg.
func applyServeFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("addr") {
		cfg.Addr = serveAddr
	}
	if flags.Changed("api-key") {
		cfg.APIKey = serveAPIKey
	}
	if flags.Changed("ffmpeg") {
		cfg.FFmpegBin = serveFFmpeg
	}
	if flags.Changed("max-upload-bytes") {
		cfg.MaxUploadBytes = serveMaxBody
	}
}

func runServer(ctx context.Context, cfg config.Config, withMetrics bool) error {
	logger := slog.Default()

	reg := detect.NewRegistryWith(detect.FFmpegConfig{
		Bin:     cfg.FFmpegBin,
		TempDir: cfg.TempDir,
		Timeout: cfg.FFmpegTimeout.Std(),
	})
	det := detect.New(reg, detect.WithLogger(logger))

	hasFFmpeg := ffmpeg.Decoder{Bin: cfg.FFmpegBin}.Available()
	if !hasFFmpeg {
		logger.Warn("ffmpeg not found; m4a and aac requests will fail",
			slog.String("ffmpeg_bin", cfg.FFmpegBin))
	}

	opts := server.Options{
		Detector:        det,
		APIKey:          cfg.APIKey,
		MaxUploadBytes:  cfg.MaxUploadBytes,
		Logger:          logger,
		FFmpegAvailable: hasFFmpeg,
	}
	if withMetrics {
		opts.Metrics = metrics.New()
	}

	srv := server.NewServer(cfg.Addr, server.NewHandler(opts),
		cfg.ReadHeaderTimeout.Std(), cfg.ShutdownTimeout.Std(), logger)

	return srv.Run(ctx)
}
