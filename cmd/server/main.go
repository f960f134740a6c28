package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"culinarycompass/broker"
	"culinarycompass/catalog"
	"culinarycompass/config"
	"culinarycompass/database"
	"culinarycompass/handlers"
	"culinarycompass/logging"
	"culinarycompass/search"
	"culinarycompass/worker"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

// main wires the catalog, search service, reload triggers and HTTP server.
func main() {
	if err := godotenv.Overload(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, ".env load warning: %v\n", err)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load error: %v\n", err)
		os.Exit(1)
	}

	logCloser, err := logging.Setup(cfg.Logging.Directory, logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging setup error: %v\n", err)
		os.Exit(1)
	}
	defer logCloser.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	source, cleanup, err := newSource(cfg.Catalog)
	if err != nil {
		slog.Error("catalog source unavailable", slog.String("source", cfg.Catalog.Source), slog.Any("error", err))
		os.Exit(1)
	}
	defer cleanup()

	store := catalog.NewStore(source)
	loadCtx, cancelLoad := context.WithTimeout(ctx, worker.ReloadTimeout)
	if err := store.Reload(loadCtx); err != nil {
		slog.Warn("starting with an empty catalog", slog.Any("error", err))
	}
	cancelLoad()

	refreshDone := worker.StartRefreshWorker(ctx, store, cfg.Catalog.RefreshInterval)
	broker.StartReloadConsumer(ctx, store, cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.ReloadTopic)

	svc := search.NewService(store, cfg.Clock.Now())

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/search", handlers.SearchHandler(svc))
	mux.HandleFunc("GET /api/cuisines", handlers.CuisinesHandler(store))
	mux.HandleFunc("GET /api/special-flags", handlers.SpecialFlagsHandler(store))
	mux.HandleFunc("GET /api/health", handlers.HealthHandler(store))
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.Server.StaticDir))))

	if tmpl, err := handlers.LoadTemplate(cfg.Server.TemplatePath); err != nil {
		slog.Warn("landing page disabled", slog.String("template", cfg.Server.TemplatePath), slog.Any("error", err))
	} else {
		mux.HandleFunc("GET /{$}", handlers.HomeHandler(tmpl, store))
	}

	c := cors.New(cors.Options{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "Content-Length", "Accept-Encoding", handlers.RequestIDHeader},
		ExposedHeaders: []string{handlers.RequestIDHeader},
	})

	server := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           handlers.WithRequestLogging(c.Handler(mux)),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("server starting", slog.String("port", cfg.Server.Port), slog.String("catalog", cfg.Catalog.Source))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("graceful shutdown failed", slog.Any("error", err))
	}
	<-refreshDone
}

// newSource builds the configured catalog source and a cleanup func for any
// connection it holds.
func newSource(cfg config.CatalogConfig) (catalog.Source, func(), error) {
	switch cfg.Source {
	case config.SourcePostgres:
		db, err := database.Connect(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return database.NewSource(db), func() { db.Close() }, nil
	case config.SourceElastic:
		es, err := catalog.NewElasticSource(cfg.ElasticURL, cfg.ElasticIndex)
		if err != nil {
			return nil, nil, err
		}
		return es, es.Client.Stop, nil
	default:
		return catalog.NewFileSource(cfg.Path), func() {}, nil
	}
}
