package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	prodattr "github.com/goliatone/go-prodattr"
	"github.com/goliatone/go-prodattr/components/catalog"
	"github.com/goliatone/go-prodattr/internal/config"
	"github.com/goliatone/go-prodattr/pkg/dataloader"
	"github.com/goliatone/go-prodattr/pkg/labels"
	"github.com/goliatone/go-prodattr/pkg/notify"
)

func main() {
	configPath := flag.String("config", "", "YAML config file")
	envFile := flag.String("env", ".env", "dotenv file loaded before the config")
	flag.Parse()

	if err := config.LoadDotEnv(*envFile); err != nil {
		log.Fatalf("env: %v", err)
	}
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := cfg.Logging.NewLogger()
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config.Config, logger *zap.Logger) error {
	reporter, flush, err := newReporter(cfg.Sentry, logger)
	if err != nil {
		return err
	}
	defer flush()

	store, closeStore, err := openStore(ctx, cfg.Catalog)
	if err != nil {
		return err
	}
	defer closeStore()

	set := labels.Defaults()
	if cfg.Labels.File != "" {
		if set, err = labels.LoadFile(cfg.Labels.File); err != nil {
			return err
		}
	}

	component := catalog.New(
		catalog.WithStore(store),
		catalog.WithLogger(logger.Named("catalog")),
	)

	var loader dataloader.Loader = component.Loader()
	if cfg.Backend.Endpoint != "" {
		loader = prodattr.NewLoader(cfg.Backend.LoaderOptions(logger.Named("loader"))...)
	}

	mod, err := prodattr.New(loader,
		prodattr.WithLabels(set),
		prodattr.WithReporter(reporter),
		prodattr.WithLogger(logger),
		prodattr.WithTheme(cfg.Theme.RendererConfig()),
		prodattr.WithMaxConcurrentLoads(cfg.Backend.MaxLoads),
	)
	if err != nil {
		return err
	}

	router, err := newRouter(cfg.Server.BasePath, component, mod, logger)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errs := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", cfg.Server.Addr))
		errs <- srv.ListenAndServe()
	}()

	select {
	case err := <-errs:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdown)
}

func newRouter(basePath string, component *catalog.Component, mod *prodattr.Module, logger *zap.Logger) (chi.Router, error) {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)

	pattern, err := component.RegisterRoutes(router, basePath)
	if err != nil {
		return nil, err
	}
	logger.Debug("catalog mounted", zap.String("pattern", pattern))

	router.Method(http.MethodPost, mountPreview(basePath), previewHandler(mod, logger.Named("preview")))
	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	return router, nil
}

func newReporter(cfg config.SentryConfig, logger *zap.Logger) (notify.Reporter, func(), error) {
	zapReporter := notify.NewZapReporter(logger.Named("notify"))
	if cfg.DSN == "" {
		return zapReporter, func() {}, nil
	}
	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         cfg.DSN,
		Environment: cfg.Environment,
	}); err != nil {
		return nil, nil, fmt.Errorf("sentry: %w", err)
	}
	flush := func() { sentry.Flush(2 * time.Second) }
	return notify.Multi(zapReporter, notify.NewSentryReporter(sentry.CurrentHub())), flush, nil
}

func openStore(ctx context.Context, cfg config.CatalogConfig) (catalog.Store, func(), error) {
	switch {
	case cfg.Database != "":
		db, err := sqlx.Open("sqlite3", cfg.Database)
		if err != nil {
			return nil, nil, fmt.Errorf("catalog db: %w", err)
		}
		store := catalog.NewSQLStore(db)
		if err := store.Migrate(ctx); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		return store, func() { _ = db.Close() }, nil
	case cfg.File != "":
		store, err := catalog.LoadFile(cfg.File)
		if err != nil {
			return nil, nil, err
		}
		return store, func() {}, nil
	default:
		return catalog.NewMemoryStore(), func() {}, nil
	}
}
