package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/bistroboss/bistro-services/handlers"
	"github.com/bistroboss/bistro-services/internal/cart"
	"github.com/bistroboss/bistro-services/internal/config"
	"github.com/bistroboss/bistro-services/internal/database"
	"github.com/bistroboss/bistro-services/internal/menu"
	"github.com/bistroboss/bistro-services/internal/review"
	"github.com/bistroboss/bistro-services/internal/storage"
	"github.com/bistroboss/bistro-services/internal/tokens"
	"github.com/bistroboss/bistro-services/internal/users"
	"github.com/bistroboss/bistro-services/pkg/logger"
	"github.com/bistroboss/bistro-services/pkg/metrics"
	"github.com/bistroboss/bistro-services/pkg/middleware"
)

var startTime = time.Now()

func main() {
	// initialize logging (can be controlled with LOG_LEVEL env: debug|info|warn|error|fatal)
	logger.Init(os.Getenv("LOG_LEVEL"))
	logger.Debugf("startup: LOG_LEVEL=%s", logger.LevelString())

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Infof("config loaded: mongo=%v redis=%v secret_set=%v", cfg.MongoDB.URI != "", cfg.Redis.Host != "", cfg.JWT.Secret != "")

	r := gin.New()

	// Lightweight CORS middleware for dev/test: set common headers and respond to OPTIONS.
	// (Keep this intentionally simple — production should use a stricter policy.)
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "Content-Length")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(200)
			return
		}
		c.Next()
	})

	// Global middlewares: logging + recovery
	r.Use(gin.Logger(), gin.Recovery())

	// Connect to Redis early so the rate-limiter can use it when configured
	var importedRedis *redis.Client
	if cfg.Redis.Host != "" {
		importedRedis = redis.NewClient(&redis.Options{Addr: cfg.Redis.Host + ":" + cfg.Redis.Port, Password: cfg.Redis.Password})
		if err := importedRedis.Ping(context.Background()).Err(); err != nil {
			logger.Warnf("failed to connect to Redis (%s:%s): %v", cfg.Redis.Host, cfg.Redis.Port, err)
			importedRedis = nil
		} else {
			logger.Infof("Connected to Redis: %s:%s", cfg.Redis.Host, cfg.Redis.Port)
		}
	}

	// Optional global rate limiter (per-user when authenticated, otherwise per-IP)
	if cfg.RateLimit.Enabled {
		if cfg.RateLimit.UseRedis && importedRedis != nil {
			win := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
			r.Use(middleware.RedisRateLimitMiddleware(importedRedis, cfg.RateLimit.RPS, cfg.RateLimit.Burst, win))
		} else {
			r.Use(middleware.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
		}
	}

	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "boss is sitting")
	})

	// Basic health endpoint
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})

	// Connect to MongoDB with retry/backoff to tolerate startup races
	ctx := context.Background()
	const maxAttempts = 5
	backoff := time.Second
	var client *mongo.Client
	var errConn error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		client, errConn = database.ConnectMongo(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout)
		if errConn == nil {
			break
		}
		logger.Warnf("attempt %d/%d: failed to connect to MongoDB: %v", attempt, maxAttempts, errConn)
		if attempt < maxAttempts {
			time.Sleep(backoff)
			backoff *= 2
		}
	}
	if errConn != nil {
		logger.Fatalf("could not connect to MongoDB after %d attempts: %v", maxAttempts, errConn)
	}
	defer func() { _ = client.Disconnect(ctx) }()

	cols := database.BistroCollections(client, cfg.MongoDB.Database)
	usersSvc := users.NewService(users.NewMongoRepository(cols.Users))
	menuRepo := menu.NewMongoRepository(cols.Menu)
	reviewRepo := review.NewMongoRepository(cols.Review)
	cartRepo := cart.NewMongoRepository(cols.Cart)

	// Optional MinIO-backed image store for menu items
	var images *storage.ImageStore
	if mcfg := storage.LoadMinIOConfig(); mcfg.Endpoint != "" {
		images, err = storage.NewImageStore(mcfg)
		if err != nil {
			logger.Warnf("image store unavailable: %v", err)
			images = nil
		}
	}

	issuer := tokens.NewIssuer(cfg.JWT.Secret, cfg.JWT.TokenTTL)
	requireAuth := middleware.RequireAuth(issuer)
	requireAdmin := middleware.RequireAdmin(usersSvc)

	root := r.Group("/")
	handlers.NewAuthHandler(issuer).Register(root)
	handlers.NewMenuHandler(menuRepo, images, requireAuth, requireAdmin).Register(root)
	handlers.NewReviewHandler(reviewRepo, requireAuth).Register(root)
	handlers.NewCartHandler(cartRepo, requireAuth).Register(root)
	handlers.NewUserHandler(usersSvc, requireAuth).Register(root)
	handlers.RegisterSwagger(r)

	// readiness endpoint — return 200 only when critical dependencies are available
	r.GET("/ready", func(c *gin.Context) {
		ready := true
		deps := map[string]bool{}

		if err := client.Ping(c.Request.Context(), nil); err != nil {
			deps["mongo"] = false
			ready = false
		} else {
			deps["mongo"] = true
		}

		// Redis only matters when the limiter depends on it
		if cfg.Redis.Host != "" && cfg.RateLimit.UseRedis {
			deps["redis"] = importedRedis != nil && importedRedis.Ping(c.Request.Context()).Err() == nil
			if !deps["redis"] {
				ready = false
			}
		} else {
			deps["redis"] = true
		}

		status := http.StatusOK
		state := "ready"
		if !ready {
			status = http.StatusServiceUnavailable
			state = "not_ready"
		}
		c.JSON(status, gin.H{"status": state, "deps": deps, "uptime": time.Since(startTime).String()})
	})

	// Expose Prometheus metrics
	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	logger.Infof("bistro boss is sitting on %s", addr)
	if err := r.Run(addr); err != nil {
		logger.Fatalf("server failed: %v", err)
	}
}
