package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/saral-ai/landing/pkg/api"
	"github.com/saral-ai/landing/pkg/clients/airtable"
	"github.com/saral-ai/landing/pkg/clients/textmagic"
	"github.com/saral-ai/landing/pkg/config"
	"github.com/saral-ai/landing/pkg/form"
	"github.com/saral-ai/landing/pkg/middleware"
	"github.com/saral-ai/landing/pkg/modal"
	"github.com/saral-ai/landing/pkg/services"
	"github.com/saral-ai/landing/pkg/store"
)

const sweepInterval = time.Minute

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the landing page server",
	Long: `Start the HTTP server for the landing page, the access dialog form
actions and its JSON API.

Submitted leads are always written to the local lead database. They are
also forwarded to Airtable and confirmed by SMS through TextMagic when
those credentials are configured.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

// app holds everything the server needs, so it can be torn down in one place
type app struct {
	router   *gin.Engine
	handlers *api.Handlers
	sessions *services.SessionRegistry
	leads    *store.Store
}

func (a *app) Close() {
	a.sessions.Stop()
	if err := a.leads.Close(); err != nil {
		log.Error().Err(err).Msg("error closing lead database")
	}
}

func newApp(cfg *config.Config) (*app, error) {
	variant, err := form.BuiltinVariants().Get(cfg.FormVariant)
	if err != nil {
		return nil, err
	}

	leads, err := store.Open(cfg.LeadsDBPath)
	if err != nil {
		return nil, fmt.Errorf("open lead database: %w", err)
	}

	sinks := []services.LeadSink{services.NewStoreSink(leads)}
	if cfg.Airtable.Enabled() {
		client := airtable.NewClient(cfg.Airtable.APIKey, cfg.Airtable.BaseID, "")
		sinks = append(sinks, services.NewAirtableSink(client, cfg.Airtable.LeadsTable))
	}
	if cfg.TextMagic.Enabled() {
		client := textmagic.NewClient(cfg.TextMagic.Username, cfg.TextMagic.APIKey, cfg.TextMagic.ListID, "")
		sinks = append(sinks, services.NewTextMagicSink(client))
	}
	submissionService := services.NewLeadSubmissionService(sinks...)

	sessions := services.NewSessionRegistry(variant, cfg.SessionTTL, log.Logger, modal.WithResetDelay(cfg.ResetDelay))

	gin.SetMode(cfg.GinMode)
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger())
	if len(cfg.CORSOrigins) > 0 {
		router.Use(middleware.CORS(cfg.CORSOrigins))
	}

	handlers := api.NewHandlers(sessions, submissionService, cfg.SessionTTL, cfg.CookieSecure)
	api.RegisterRoutes(router, handlers)

	log.Info().
		Str("variant", variant.Name).
		Int("sinks", len(sinks)).
		Str("leads_db", cfg.LeadsDBPath).
		Msg("application configured")

	return &app{router: router, handlers: handlers, sessions: sessions, leads: leads}, nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(envFiles...)
	if err != nil {
		return err
	}
	if err := setupLogging(cfg); err != nil {
		return err
	}

	a, err := newApp(cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.sessions.StartSweeper(sweepInterval); err != nil {
		return fmt.Errorf("start session sweeper: %w", err)
	}

	httpServer := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      a.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()
	log.Info().Str("addr", cfg.Addr()).Msg("server starting")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info().Str("signal", sig.String()).Msg("received signal, shutting down")
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown error")
	}
	// leads accepted before shutdown still need the database
	if err := a.handlers.Wait(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("lead deliveries still running at shutdown")
	}

	log.Info().Msg("server stopped")
	return nil
}
