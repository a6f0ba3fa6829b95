package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"resty.dev/v3"

	"shoprec-server/internal/config"
	catalogdomain "shoprec-server/internal/domain/catalog"
	"shoprec-server/internal/domain/recommendation"
	widgetdomain "shoprec-server/internal/domain/widgetfeed"
	"shoprec-server/internal/infrastructure/completion"
	"shoprec-server/internal/infrastructure/embedscript"
	"shoprec-server/internal/infrastructure/logger"
	"shoprec-server/internal/infrastructure/observability"
	catalogrepo "shoprec-server/internal/infrastructure/repository/catalog"
	widgetrepo "shoprec-server/internal/infrastructure/repository/widgetfeed"
	"shoprec-server/internal/interfaces/httpserver"
	"shoprec-server/internal/interfaces/httpserver/handlers"
)

type Application struct {
	httpServer *httpserver.HttpServer
	log        zerolog.Logger
}

func NewApplication(httpServer *httpserver.HttpServer, log zerolog.Logger) *Application {
	return &Application{
		httpServer: httpServer,
		log:        log,
	}
}

func (a *Application) Start(ctx context.Context) error {
	return a.httpServer.Run(ctx)
}

func main() {
	loadEnvFiles()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		panic(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTelemetry, err := observability.Setup(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("initialize observability")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := shutdownTelemetry(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown telemetry")
		}
	}()

	catalogRepository, err := loadCatalog(cfg.CatalogFile)
	if err != nil {
		log.Fatal().Err(err).Msg("load product catalog")
	}
	widgetRepository, err := loadWidgetCatalog(cfg.WidgetCatalogFile)
	if err != nil {
		log.Fatal().Err(err).Msg("load widget catalog")
	}

	prompts, err := completion.NewPromptBuilder(catalogRepository)
	if err != nil {
		log.Fatal().Err(err).Msg("build system prompt")
	}

	completionClient := completion.NewClient(
		resty.New(),
		cfg.CompletionBaseURL,
		cfg.CompletionAPIKey,
		cfg.CompletionTimeout,
		log,
	)

	interpreter := recommendation.NewInterpreter(catalogRepository, log)
	feedService := widgetdomain.NewService(widgetRepository, log)
	generator := embedscript.NewGenerator(cfg.WidgetDomain)

	handlerProvider := handlers.NewProvider(
		cfg,
		completionClient,
		prompts,
		interpreter,
		catalogRepository,
		feedService,
		generator,
		log,
	)

	httpServer := httpserver.New(cfg, log, handlerProvider)
	app := NewApplication(httpServer, log)

	if err := app.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("application stopped with error")
	}

	log.Info().Msg("application exited cleanly")
}

func loadCatalog(path string) (catalogdomain.Repository, error) {
	if path != "" {
		return catalogrepo.NewFileRepository(path)
	}
	return catalogrepo.NewEmbeddedRepository()
}

func loadWidgetCatalog(path string) (widgetdomain.Repository, error) {
	if path != "" {
		return widgetrepo.NewFileRepository(path)
	}
	return widgetrepo.NewEmbeddedRepository()
}

func loadEnvFiles() {
	paths := []string{".env", "../.env"}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Overload(path); err != nil {
				fmt.Fprintf(os.Stderr, "warning: failed to load %s: %v\n", path, err)
			}
		}
	}
}
