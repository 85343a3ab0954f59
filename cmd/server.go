package cmd

import (
	"log/slog"
	"os"

	"github.com/fieldserve/backoffice/internal/api"
	"github.com/fieldserve/backoffice/internal/config"
	"github.com/fieldserve/backoffice/internal/telemetry"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the back office API server",
	Run: func(cmd *cobra.Command, args []string) {
		conf := config.ReadConfig()

		// Production emits JSON log lines for the collector
		if conf.IsProduction() {
			slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))
		}

		shutdownTelemetry := telemetry.NewProvider(conf.OTEL_EXPORTER_OTLP_ENDPOINT)
		defer shutdownTelemetry()

		s := api.New()
		s.Start()
	},
}

// Register the "serve" command
func init() {
	rootCmd.AddCommand(serveCmd)
}
