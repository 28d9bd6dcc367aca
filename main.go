package main

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
	"github.com/pakdocs/pakdocs/backend/go-services/handlers"
	"github.com/pakdocs/pakdocs/backend/go-services/internal/audit"
	"github.com/pakdocs/pakdocs/backend/go-services/internal/config"
	"github.com/pakdocs/pakdocs/backend/go-services/internal/database"
	"github.com/pakdocs/pakdocs/backend/go-services/internal/document/service"
	"github.com/pakdocs/pakdocs/backend/go-services/internal/drafting"
	"github.com/pakdocs/pakdocs/backend/go-services/internal/export"
	"github.com/pakdocs/pakdocs/backend/go-services/internal/sessions"
	"github.com/pakdocs/pakdocs/backend/go-services/internal/storage"
	"github.com/pakdocs/pakdocs/backend/go-services/internal/tracing"
	"github.com/pakdocs/pakdocs/backend/go-services/internal/users"
	"github.com/pakdocs/pakdocs/backend/go-services/pkg/logger"
	"github.com/pakdocs/pakdocs/backend/go-services/pkg/metrics"
	"github.com/pakdocs/pakdocs/backend/go-services/pkg/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const serviceName = "pakdocs-api"

var startTime = time.Now()

func main() {
	// LOG_LEVEL: debug|info|warn|error|fatal
	logger.Init(os.Getenv("LOG_LEVEL"))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	logger.Infof("config loaded: db=%s redis=%v mongo=%v minio=%v", cfg.Database.Driver, cfg.Redis.Addr() != "", cfg.MongoDB.URI != "", cfg.MinIO.Endpoint != "")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.Init(ctx, serviceName, cfg.Server.Environment)
	if err != nil {
		logger.Warnf("tracing init failed: %v", err)
		shutdownTracing = func(context.Context) error { return nil }
	}

	db, err := database.Open(cfg.Database)
	if err != nil {
		logger.Fatalf("failed to open database: %v", err)
	}
	defer database.Close(db)

	// Redis backs sessions and the shared rate limiter; without it both stay in-process.
	var rdb *redis.Client
	if addr := cfg.Redis.Addr(); addr != "" {
		client := redis.NewClient(&redis.Options{Addr: addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err := client.Ping(ctx).Err(); err != nil {
			logger.Warnf("failed to connect to Redis (%s): %v; using in-process sessions", addr, err)
			_ = client.Close()
		} else {
			rdb = client
			defer rdb.Close()
			logger.Infof("connected to Redis at %s", addr)
		}
	}

	var recorder audit.Recorder = audit.Noop{}
	var mongoClient *mongo.Client
	if cfg.MongoDB.URI != "" {
		client, err := database.ConnectMongoRetry(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout, 5)
		if err != nil {
			logger.Warnf("could not connect to MongoDB: %v; generation audit disabled", err)
		} else {
			mongoClient = client
			defer func() { _ = mongoClient.Disconnect(context.Background()) }()
			rec := audit.NewMongoRecorder(client.Database(cfg.MongoDB.Database).Collection("generations"))
			if err := rec.EnsureIndexes(ctx); err != nil {
				logger.Warnf("audit indexes: %v", err)
			}
			recorder = rec
		}
	}

	var archiver export.Archiver
	var objectStore *storage.MinIOStorage
	if cfg.MinIO.Endpoint != "" {
		s, err := storage.NewMinIOStorage(ctx, cfg.MinIO)
		if err != nil {
			logger.Warnf("MinIO unavailable: %v; PDF exports will not be archived", err)
		} else {
			objectStore = s
			archiver = s
		}
	}

	var limiter gin.HandlerFunc
	if cfg.RateLimit.Enabled {
		if cfg.RateLimit.UseRedis && rdb != nil {
			win := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
			limiter = middleware.RedisRateLimitMiddleware(rdb, cfg.RateLimit.RPS, cfg.RateLimit.Burst, win)
		} else {
			limiter = middleware.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
		}
	}

	r := handlers.NewRouter(handlers.Deps{
		Session:      cfg.Session,
		SessionStore: sessions.NewStore(cfg.Session, rdb),
		CORSOrigins:  cfg.Server.CORSOrigins,
		Users:        users.NewService(users.NewGormUserRepository(db)),
		Documents:    service.NewGormService(db),
		Drafts:       drafting.NewService(drafting.NewOpenAIProvider(cfg.Provider), cfg.Provider.MaxTokens, recorder),
		Renderer:     export.NewRenderer(cfg.PDF.FontPath),
		Archiver:     archiver,
		RateLimit:    limiter,
	})

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})

	// readiness: 200 only when every configured dependency answers
	r.GET("/ready", func(c *gin.Context) {
		pctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		deps := map[string]bool{}
		sqlDB, err := db.DB()
		deps["database"] = err == nil && sqlDB.PingContext(pctx) == nil
		if cfg.Redis.Addr() != "" {
			deps["redis"] = rdb != nil && rdb.Ping(pctx).Err() == nil
		}
		if cfg.MongoDB.URI != "" {
			deps["mongodb"] = mongoClient != nil && mongoClient.Ping(pctx, nil) == nil
		}
		if cfg.MinIO.Endpoint != "" {
			deps["minio"] = objectStore != nil && objectStore.Ping(pctx) == nil
		}

		status, code := "ready", http.StatusOK
		for _, ok := range deps {
			if !ok {
				status, code = "not_ready", http.StatusServiceUnavailable
				break
			}
		}
		c.JSON(code, gin.H{"status": status, "deps": deps, "uptime": time.Since(startTime).Round(time.Second).String()})
	})

	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      otelhttp.NewHandler(r, serviceName),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Infof("starting %s on %s", serviceName, addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("server failed: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("server shutdown: %v", err)
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		logger.Warnf("tracing shutdown: %v", err)
	}
}
