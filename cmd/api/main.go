package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/streamfit/streamfit/internal/application"
	appeval "github.com/streamfit/streamfit/internal/application/evaluation"
	appmaint "github.com/streamfit/streamfit/internal/application/maintenance"
	appprofile "github.com/streamfit/streamfit/internal/application/profile"
	"github.com/streamfit/streamfit/internal/config"
	domanalysis "github.com/streamfit/streamfit/internal/domain/analysis"
	domcompany "github.com/streamfit/streamfit/internal/domain/company"
	domstreamer "github.com/streamfit/streamfit/internal/domain/streamer"
	openaigw "github.com/streamfit/streamfit/internal/infra/ai/openai"
	mysqlp "github.com/streamfit/streamfit/internal/infra/db/mysql"
	postgresp "github.com/streamfit/streamfit/internal/infra/db/postgres"
	"github.com/streamfit/streamfit/internal/infra/httpserver"
	minioStore "github.com/streamfit/streamfit/internal/infra/storage"
	"github.com/streamfit/streamfit/internal/infra/twitch"
	"github.com/streamfit/streamfit/internal/logger"
	"github.com/streamfit/streamfit/internal/middleware"
)

func main() {
	// path config.yaml
	path := "config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		path = v
	}

	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	zlog, err := logger.New(cfg.Server.LogJSON, cfg.Server.LogDebug)
	if err != nil {
		log.Fatalf("logger init error: %v", err)
	}
	defer zlog.Sync()

	ctx := context.Background()

	var (
		db        *sql.DB
		streamers domstreamer.Repository
		analyses  domanalysis.Repository
		entries   domanalysis.HistoryRepository
		saver     domanalysis.Saver
		companies domcompany.Repository
		migrator  appmaint.Migrator
	)
	switch cfg.Database.Driver {
	case "", "mysql":
		db, err = mysqlp.Connect(ctx, cfg.MySQLDSN())
		if err != nil {
			zlog.Fatal("mysql connect failed", zap.Error(err))
		}
		streamers = mysqlp.NewStreamerRepository(db)
		analyses = mysqlp.NewAnalysisRepository(db)
		entries = mysqlp.NewHistoryRepository(db)
		saver = mysqlp.NewEvaluationSaver(db)
		companies = mysqlp.NewCompanyRepository(db)
		migrator = mysqlp.NewMigrator(db)
	case "postgres":
		db, err = postgresp.Connect(ctx, cfg.PostgresDSN())
		if err != nil {
			zlog.Fatal("postgres connect failed", zap.Error(err))
		}
		streamers = postgresp.NewStreamerRepository(db)
		analyses = postgresp.NewAnalysisRepository(db)
		entries = postgresp.NewHistoryRepository(db)
		saver = postgresp.NewEvaluationSaver(db)
		companies = postgresp.NewCompanyRepository(db)
		migrator = postgresp.NewMigrator(db)
	default:
		zlog.Fatal("unknown database driver", zap.String("driver", cfg.Database.Driver))
	}
	defer db.Close()

	// archival is optional; without minio config raw payloads just are not kept
	var archive domstreamer.Archive
	if cfg.Minio.Endpoint != "" {
		store, err := minioStore.New(ctx,
			cfg.Minio.Endpoint,
			cfg.Minio.Region,
			cfg.Minio.BucketName,
			cfg.Minio.AccessKey,
			cfg.Minio.SecretKey,
			cfg.Minio.UseSSL,
		)
		if err != nil {
			zlog.Fatal("minio init failed", zap.Error(err))
		}
		archive = store
	}

	provider := twitch.NewClient(cfg.Twitch.DataBaseURL, cfg.Twitch.SearchBaseURL)
	gateway := openaigw.NewClient(cfg.OpenAI.APIKey, cfg.OpenAI.Model)

	evalSvc := &appeval.Service{
		Streamers: streamers,
		Analyses:  analyses,
		Entries:   entries,
		Saver:     saver,
		Companies: companies,
		Provider:  provider,
		Archive:   archive,
		AI:        gateway,
		Clock:     application.SystemClock{},
		Logger:    zlog,
	}
	profileSvc := &appprofile.Service{
		Companies: companies,
		Analyses:  analyses,
		Logger:    zlog,
	}
	maintSvc := &appmaint.Service{
		Migrator: migrator,
		Logger:   zlog,
	}

	mux := chi.NewRouter()
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	mux.Use(middleware.Logging(zlog))
	mux.Use(middleware.MetricsMiddleware)
	mux.Use(middleware.APIKeyAuth(cfg.Auth.APIKeys))
	mux.Use(middleware.RateLimitMiddleware(cfg.RateLimit.Capacity, cfg.RateLimit.RefillRate))

	mux.Get("/health", middleware.HealthHandler(map[string]middleware.HealthChecker{
		"database": &middleware.DatabaseHealthChecker{DB: db},
	}))
	mux.Get("/metrics", middleware.MetricsHandler)
	mux.Mount("/", httpserver.NewRouter(evalSvc, profileSvc, maintSvc))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		zlog.Info("server listening", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zlog.Fatal("server error", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	zlog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Error("shutdown error", zap.Error(err))
	}
}
