package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"

	"github.com/Skotchmaster/storefront/internal/httpserver"
	"github.com/Skotchmaster/storefront/internal/repo"
	"github.com/Skotchmaster/storefront/internal/search"
	"github.com/Skotchmaster/storefront/internal/seed"
	"github.com/Skotchmaster/storefront/internal/service"
	"github.com/Skotchmaster/storefront/internal/session"
	"github.com/Skotchmaster/storefront/pkg/config"
	pkgdb "github.com/Skotchmaster/storefront/pkg/db"
	"github.com/Skotchmaster/storefront/pkg/logging"
	loggingmw "github.com/Skotchmaster/storefront/pkg/middleware/logging"
	"github.com/Skotchmaster/storefront/pkg/mykafka"
)

func main() {
	cfg := config.Load()
	cfg.Validate()

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	slog.SetDefault(logger)
	rootCtx := logging.IntoContext(context.Background(), logger)

	initCtx, cancel := context.WithTimeout(rootCtx, 30*time.Second)
	db, err := pkgdb.Open(initCtx, cfg.DBDriver, cfg.DatabaseURL)
	if err != nil {
		cancel()
		log.Fatalf("db open: %v", err)
	}
	if err := repo.Migrate(initCtx, db); err != nil {
		cancel()
		log.Fatalf("db migrate: %v", err)
	}

	gormRepo := &repo.GormRepo{DB: db}
	if cfg.Seed {
		if err := seed.Run(initCtx, gormRepo, seed.Admin{
			Email:    cfg.AdminEmail,
			Username: cfg.AdminUsername,
			Password: cfg.AdminPassword,
		}); err != nil {
			cancel()
			log.Fatalf("seed: %v", err)
		}
	}

	store, closeStore, err := openSessionStore(initCtx, cfg)
	if err != nil {
		cancel()
		log.Fatalf("session store: %v", err)
	}
	defer closeStore()

	index := openSearchIndex(initCtx, cfg, gormRepo)
	cancel()

	var events service.Publisher = service.NopPublisher{}
	if len(cfg.KafkaBrokers) > 0 {
		producer, err := mykafka.NewProducer(cfg.KafkaBrokers)
		if err != nil {
			log.Fatalf("kafka producer: %v", err)
		}
		defer producer.Close()
		events = producer
		logger.Info("kafka_enabled", "brokers", cfg.KafkaBrokers)
	}

	authSvc := &service.AuthService{Repo: gormRepo, Sessions: store, TTL: cfg.SessionTTL, Events: events}

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(loggingmw.RequestLogger(logger))

	httpserver.Register(e, &httpserver.Deps{
		AuthHandler: &httpserver.AuthHTTP{
			Svc:          authSvc,
			Secret:       cfg.SessionSecret,
			CookieSecure: cfg.CookieSecure,
		},
		CartHandler:    &httpserver.CartHTTP{Svc: &service.CartService{Repo: gormRepo, Sessions: store, Events: events}},
		CatalogHandler: &httpserver.CatalogHTTP{Svc: &service.CatalogService{Repo: gormRepo, Search: index, Events: events}},
		BannerHandler:  &httpserver.BannerHTTP{Svc: &service.BannerService{Repo: gormRepo, Events: events}},
		ContactHandler: &httpserver.ContactHTTP{Svc: &service.ContactService{Repo: gormRepo, Events: events}},
		Sessions: &httpserver.SessionMiddleware{
			Auth:         authSvc,
			Secret:       cfg.SessionSecret,
			CookieSecure: cfg.CookieSecure,
		},
		OperatorSecret: cfg.OperatorSecret,
		Ready:          readiness(db),
		StaticDir:      staticDir(cfg.StaticDir),
	})
	if cfg.OperatorSecret == "" {
		logger.Info("operator_routes_disabled", "reason", "OPERATOR_SECRET not set")
	}

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.ServerPort),
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
	}

	go func() {
		logger.Info("storefront_listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown_failed", "error", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}

	logger.Info("storefront_stopped")
}

func openSessionStore(ctx context.Context, cfg config.Config) (session.Store, func(), error) {
	switch cfg.SessionBackend {
	case "redis":
		rdb, err := session.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			return nil, nil, err
		}
		return session.NewRedisStore(rdb), func() { _ = rdb.Close() }, nil
	case "valkey":
		client, err := session.NewValkeyClient(cfg.ValkeyURI)
		if err != nil {
			return nil, nil, fmt.Errorf("valkey client: %w", err)
		}
		return session.NewValkeyStore(client), client.Close, nil
	default:
		return session.NewMemoryStore(), func() {}, nil
	}
}

// openSearchIndex prefers Elasticsearch and falls back to SQL matching when
// it is not configured or not reachable.
func openSearchIndex(ctx context.Context, cfg config.Config, r *repo.GormRepo) search.Index {
	l := logging.FromContext(ctx)
	fallback := &search.Database{Repo: r}
	if cfg.ESURL == "" {
		return fallback
	}

	client, err := search.NewClient(ctx, cfg.ESURL, cfg.ESUser, cfg.ESPassword)
	if err != nil {
		l.Warn("elasticsearch_unavailable", "error", err)
		return fallback
	}
	idx := &search.Elastic{Client: client, Index: cfg.ESIndex}
	if err := idx.EnsureIndex(ctx); err != nil {
		l.Warn("elasticsearch_index_failed", "error", err)
		return fallback
	}
	n, err := search.Reindex(ctx, idx, r)
	if err != nil {
		l.Warn("elasticsearch_reindex_failed", "indexed", n, "error", err)
	} else {
		l.Info("elasticsearch_ready", "index", cfg.ESIndex, "indexed", n)
	}
	return idx
}

func readiness(db *gorm.DB) func(c echo.Context) error {
	return func(c echo.Context) error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
		defer cancel()
		return sqlDB.PingContext(ctx)
	}
}

func staticDir(dir string) string {
	if dir == "" {
		return ""
	}
	if st, err := os.Stat(dir); err != nil || !st.IsDir() {
		return ""
	}
	return dir
}
