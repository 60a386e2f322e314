package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"photomotion/internal/assets"
	"photomotion/internal/credential"
	"photomotion/internal/http/handlers"
	"photomotion/internal/http/httpapi"
	"photomotion/internal/infra"
	"photomotion/internal/infra/credentials"
	"photomotion/internal/infra/geoip"
	"photomotion/internal/middleware"
	"photomotion/internal/providers/prompt"
	"photomotion/internal/providers/veo"
	"photomotion/internal/sse"
	"photomotion/internal/workflow"
)

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)
	ctx := context.Background()

	// Credential source: the database when configured, otherwise an
	// in-process source seeded from the environment that keeps keys posted
	// to the credential endpoint.
	var (
		source credential.Source
		saver  handlers.CredentialSaver
	)
	if cfg.DatabaseURL != "" {
		dbpool, err := infra.NewDBPool(ctx, cfg)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect database")
		}
		defer dbpool.Close()
		store := credentials.NewStore(infra.NewSQLRunner(dbpool, logger))
		source = store
		saver = store
	} else {
		mem := credential.NewMemorySource(cfg.GeminiAPIKey)
		source = mem
		saver = mem
	}

	gate := credential.NewGate(source, nil, logger)
	gate.Sync(ctx)

	hub := sse.NewHub()
	assetStore := assets.NewStore()
	fetcher := assets.NewFetcher(http.DefaultClient, logger)

	machine := workflow.NewMachine(workflow.Config{
		Gate: gate,
		NewGenerator: func(ctx context.Context, apiKey string) (workflow.Generator, error) {
			return veo.NewClient(ctx, veo.Options{
				APIKey:       apiKey,
				Model:        cfg.VeoModel,
				BaseURL:      cfg.GeminiBaseURL,
				PollInterval: cfg.PollInterval,
				Logger:       &logger,
			})
		},
		Fetcher:  fetcher,
		Assets:   assetStore,
		Observer: sse.NewMachineObserver(hub),
		Logger:   logger,
	})

	app := &handlers.App{
		Logger:  logger,
		Machine: machine,
		Assets:  assetStore,
		Gate:    gate,
		Creds:   saver,
		Ideas:   prompt.NewStaticIdeas(),
		Hub:     hub,
	}

	var lookup middleware.CountryLookup
	resolver, err := geoip.NewResolver(cfg.GeoIPDBPath)
	if err != nil {
		logger.Warn().Err(err).Msg("geoip database unavailable")
	} else if resolver != nil {
		lookup = resolver.CountryCode
	}

	router := httpapi.NewRouter(app, cfg, logger, lookup)
	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Msgf("API listening on :%s", cfg.Port)
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}
