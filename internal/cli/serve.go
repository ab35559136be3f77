package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/resumeats/internal/extract"
	"github.com/vijay-prabhu/resumeats/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP upload service",
	Long: `Start the HTTP upload service.

Endpoints:
  POST /upload     multipart form, field "file" (optional field "domain")
  GET  /health     service status
  GET  /profiles   configured profiles and sections

The listen port comes from [server] in the config file, or RESUMEATS_PORT.`,
	RunE: runServe,
}

var servePort int

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "Port to listen on (overrides config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if servePort > 0 {
		cfg.Server.Port = servePort
	}
	log := newLogger(cfg)

	engine, err := newEngine(cfg)
	if err != nil {
		return err
	}

	db, err := openHistory(cfg, false)
	if err != nil {
		return err
	}
	if db != nil {
		defer db.Close()
	}

	if cfg.Extraction.Mode == "remote" {
		remote := extract.NewRemote(cfg.Extraction.ServiceURL)
		if !remote.IsRunning(cmd.Context()) {
			log.Warn("extraction service not reachable", "url", cfg.Extraction.ServiceURL)
		}
	}

	srv := server.New(server.Options{
		Engine:    engine,
		Extractor: extract.New(cfg.Extraction),
		DB:        db,
		Logger:    log,
		BodyLimit: cfg.Server.BodyLimit,
		MaxBytes:  cfg.Extraction.MaxBytes,
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	go func() {
		<-quit
		log.Info("shutting down server")
		if err := srv.Shutdown(); err != nil {
			log.Error("server forced to shutdown", "error", err)
		}
	}()

	addr := cfg.Address()
	fmt.Fprintf(os.Stderr, "Listening on http://%s\n", addr)
	return srv.Listen(addr)
}
