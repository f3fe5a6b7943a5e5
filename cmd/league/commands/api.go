package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/reellords/studio-league/backend/internal/api"
	"github.com/reellords/studio-league/backend/internal/api/handlers"
)

// apiCmd represents the api command
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Start the REST API server",
	Long: `Start the REST API server.

Endpoints:
  GET  /health                                           - Health check
  POST /api/seasons/{id}/weeks/{w}/compute               - Trigger weekly scoring
  GET  /api/seasons/{id}/weeks/{w}/totals                - Per-studio revenue totals
  GET  /api/seasons/{id}/weeks/{w}/ranking               - Weekly ranking
  GET  /api/seasons/{id}/standings                       - Season standings
  POST /api/seasons/{id}/ownerships                      - Acquire a movie
  GET  /api/seasons/{id}/ownerships                      - Season roster
  POST /api/ownerships/{id}/retire                       - Retire an ownership
  POST /api/seasons/{id}/awards                          - Apply an award bonus
  GET  /api/seasons/{id}/awards                          - Season award ledger

Example:
  go run ./cmd/league api
  go run ./cmd/league api --port 8080`,
	RunE: runAPIServer,
}

var apiPort string

func init() {
	rootCmd.AddCommand(apiCmd)

	apiCmd.Flags().StringVar(&apiPort, "port", "", "API server port (overrides PORT)")
}

func runAPIServer(cmd *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}
	defer app.Close()

	if apiPort != "" {
		app.cfg.Port = apiPort
	}

	log := app.logger
	log.WithFields(map[string]interface{}{
		"port": app.cfg.Port,
		"env":  app.cfg.Env,
	}).Info("Initializing API server")

	scoringHandler := handlers.NewScoringHandler(app.scoring, app.seasons, log)
	rosterHandler := handlers.NewRosterHandler(app.roster, log)
	awardsHandler := handlers.NewAwardsHandler(app.awards, log)

	router := api.NewRouter(scoringHandler, rosterHandler, awardsHandler, app.limiter, log)
	server := api.New(app.cfg, log, router)

	go func() {
		if err := server.Start(); err != nil {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	fmt.Printf("Server running on http://localhost:%s\n", app.cfg.Port)
	fmt.Println("Press Ctrl+C to stop")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Info("Server stopped")
	return nil
}
