package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/samuveljohnson/portfolio/backend/go-services/handlers"
	"github.com/samuveljohnson/portfolio/backend/go-services/internal/config"
	"github.com/samuveljohnson/portfolio/backend/go-services/internal/database"
	"github.com/samuveljohnson/portfolio/backend/go-services/internal/portfolio/handler"
	"github.com/samuveljohnson/portfolio/backend/go-services/internal/portfolio/repository"
	"github.com/samuveljohnson/portfolio/backend/go-services/internal/portfolio/service"
	"github.com/samuveljohnson/portfolio/backend/go-services/internal/sessions"
	"github.com/samuveljohnson/portfolio/backend/go-services/internal/storage"
	"github.com/samuveljohnson/portfolio/backend/go-services/internal/tokens"
	"github.com/samuveljohnson/portfolio/backend/go-services/internal/users"
	"github.com/samuveljohnson/portfolio/backend/go-services/pkg/logger"
	"github.com/samuveljohnson/portfolio/backend/go-services/pkg/metrics"
	"github.com/samuveljohnson/portfolio/backend/go-services/pkg/middleware"
)

var startTime = time.Now()

func main() {
	// initialize logging (can be controlled with LOG_LEVEL env: debug|info|warn|error|fatal)
	logger.Init(os.Getenv("LOG_LEVEL"))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Infof("config loaded: mongo=%v redis=%v minio=%v", cfg.Store.MongoURI != "", cfg.Redis.Host != "", os.Getenv("MINIO_ENDPOINT") != "")

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.CORS.Origins) > 0 {
		corsCfg.AllowOrigins = cfg.CORS.Origins
	} else {
		corsCfg.AllowAllOrigins = true
		corsCfg.AllowCredentials = false
	}
	r.Use(cors.New(corsCfg))

	// Connect to Redis early so the rate-limiter and token blacklist can use it
	var redisClient *redis.Client
	if cfg.Redis.Host != "" {
		redisClient = redis.NewClient(&redis.Options{Addr: cfg.Redis.Host + ":" + cfg.Redis.Port, Password: cfg.Redis.Password})
		if err := redisClient.Ping(context.Background()).Err(); err == nil {
			sessions.SetBlacklistClient(redisClient)
			logger.Infof("Connected to Redis for blacklist/rate-limit features: %s:%s", cfg.Redis.Host, cfg.Redis.Port)
		} else {
			logger.Warnf("failed to connect to Redis (%s:%s): %v", cfg.Redis.Host, cfg.Redis.Port, err)
			redisClient = nil
		}
	}

	if cfg.RateLimit.Enabled {
		if cfg.RateLimit.UseRedis && redisClient != nil {
			win := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
			r.Use(middleware.RedisRateLimitMiddleware(redisClient, cfg.RateLimit.RPS, cfg.RateLimit.Burst, win))
		} else {
			r.Use(middleware.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
		}
	}

	// Portfolio repository: Mongo when configured, the JSON data file otherwise.
	ctx := context.Background()
	var repo repository.Repository
	if cfg.Store.MongoURI != "" {
		// Retry with backoff to tolerate startup races against the database container
		const maxAttempts = 5
		backoff := time.Second
		for attempt := 1; attempt <= maxAttempts; attempt++ {
			client, errConn := database.ConnectMongo(ctx, cfg.Store.MongoURI, cfg.Store.MongoTimeout)
			if errConn == nil {
				defer func() { _ = client.Disconnect(ctx) }()
				repo = repository.NewMongoRepo(client.Database(cfg.Store.MongoDB))
				break
			}
			logger.Warnf("attempt %d/%d: failed to connect to MongoDB: %v", attempt, maxAttempts, errConn)
			if attempt < maxAttempts {
				time.Sleep(backoff)
				backoff *= 2
			}
		}
		if repo == nil {
			logger.Warnf("could not connect to MongoDB after %d attempts, falling back to file store", maxAttempts)
		}
	}
	if repo == nil {
		repo = repository.NewFileRepo(cfg.Store.DataFile)
		logger.Infof("using file-backed portfolio store at %s", cfg.Store.DataFile)
	}

	// Image storage: MinIO bucket when configured, local uploads dir otherwise.
	var images storage.ImageStore
	minioCfg := storage.LoadMinIOConfig()
	if minioCfg.Endpoint != "" {
		ms, err := storage.NewMinIOStorage(minioCfg, cfg.Uploads.PublicPrefix)
		if err != nil {
			logger.Fatalf("failed to initialize MinIO storage: %v", err)
		}
		images = ms
		// stream stored objects on the same public path the SPA expects
		r.GET("/uploads/:name", func(c *gin.Context) {
			obj, err := ms.Open(c.Request.Context(), c.Param("name"))
			if err != nil {
				c.Status(http.StatusNotFound)
				return
			}
			defer obj.Close()
			c.Status(http.StatusOK)
			_, _ = io.Copy(c.Writer, obj)
		})
		logger.Infof("using MinIO image storage: %s/%s", minioCfg.Endpoint, minioCfg.Bucket)
	} else {
		ds, err := storage.NewDiskStore(cfg.Uploads.Dir, cfg.Uploads.PublicPrefix)
		if err != nil {
			logger.Fatalf("failed to initialize uploads dir: %v", err)
		}
		images = ds
		r.Static(cfg.Uploads.PublicPrefix, cfg.Uploads.Dir)
	}

	// Seed the single admin account on first startup
	usersSvc := users.NewService(users.NewFileUserRepository(cfg.Store.UsersFile))
	if err := usersSvc.EnsureSeedAdmin(ctx, cfg.Admin.Username, cfg.Admin.Email, cfg.Admin.Password); err != nil {
		logger.Fatalf("failed to seed admin user: %v", err)
	}

	// Basic health endpoint
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})

	// readiness endpoint: 200 only when critical dependencies are available
	r.GET("/ready", func(c *gin.Context) {
		ready := true
		deps := map[string]bool{}

		if _, err := repo.Get(c.Request.Context()); err != nil {
			deps["storage"] = false
			ready = false
		} else {
			deps["storage"] = true
		}

		if cfg.Redis.Host != "" {
			deps["redis"] = redisClient != nil && redisClient.Ping(c.Request.Context()).Err() == nil
			if !deps["redis"] && cfg.RateLimit.UseRedis {
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

	// Register auth and content routes
	handlers.NewAuthHandler(cfg, usersSvc).Register(r.Group("/"))
	handlers.RegisterSwagger(r)
	contentHandler := handler.NewHandler(service.NewService(repo), images, cfg.Uploads.MaxBytes)
	contentHandler.Register(r, tokens.NewHMACVerifier(cfg))

	// Expose Prometheus metrics
	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	logger.Infof("Starting content service on %s", addr)
	if err := r.Run(addr); err != nil {
		logger.Fatalf("server failed: %v", err)
	}
}
