package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/novaforge/sitekit/internal/config"
	"github.com/novaforge/sitekit/internal/logging"
	"github.com/novaforge/sitekit/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the content API server",
	Long: `Start the content API server.

Serves the content collections as JSON, the contact-form endpoints, a
Prometheus metrics endpoint, and (with --watch) a WebSocket channel that
notifies browsers when content files change.

Examples:
  sitekit serve                              # Embedded content
  sitekit serve --source dir --dir ./content # Content directory
  sitekit serve --source dir --dir ./content --watch
  sitekit serve --source sqlite --database content.db`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	bindServeFlags(serveCmd.Flags())
}

// bindServeFlags declares the serve flags and binds each one into viper so
// the flag > env > file precedence holds.
func bindServeFlags(flags *pflag.FlagSet) {
	flags.IntP("port", "p", 8090, "Port to serve on")
	flags.String("host", "localhost", "Host to bind to")
	flags.String("source", "embedded", "Content source (embedded, dir, sqlite)")
	flags.String("dir", "", "Content directory for the dir source")
	flags.String("database", "", "Seed database path for the sqlite source")
	flags.BoolP("watch", "w", false, "Reload content on file changes (dir source)")

	viper.BindPFlag("server.port", flags.Lookup("port"))
	viper.BindPFlag("server.host", flags.Lookup("host"))
	viper.BindPFlag("content.source", flags.Lookup("source"))
	viper.BindPFlag("content.dir", flags.Lookup("dir"))
	viper.BindPFlag("content.database", flags.Lookup("database"))
	viper.BindPFlag("content.watch", flags.Lookup("watch"))
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := logging.New(&logging.Config{
		Level:  logging.ParseLevel(cfg.Logging.Level),
		Format: cfg.Logging.Format,
	})

	srv, err := server.New(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		if shutdownErr := srv.Shutdown(ctx); shutdownErr != nil {
			logger.Error(ctx, shutdownErr, "error during server shutdown")
		}
		cancel()
	}()

	fmt.Printf("Starting sitekit at http://%s:%d\n", cfg.Server.Host, cfg.Server.Port)

	if err := srv.Start(ctx); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}
