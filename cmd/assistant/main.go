package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/samuveljohnson/portfolio/backend/go-services/internal/assistant"
	"github.com/samuveljohnson/portfolio/backend/go-services/internal/assistant/handler"
	"github.com/samuveljohnson/portfolio/backend/go-services/internal/config"
	"github.com/samuveljohnson/portfolio/backend/go-services/pkg/logger"
	"github.com/samuveljohnson/portfolio/backend/go-services/pkg/metrics"
	"github.com/samuveljohnson/portfolio/backend/go-services/pkg/middleware"
)

func main() {
	logger.Init(os.Getenv("LOG_LEVEL"))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	if cfg.Assistant.APIKey == "" {
		logger.Fatalf("GEMINI_API_KEY is required")
	}

	resume, err := assistant.LoadResume(cfg.Assistant.ResumeFile)
	if err != nil {
		logger.Fatalf("failed to load resume data from %s: %v", cfg.Assistant.ResumeFile, err)
	}

	ctx := context.Background()
	gen, err := assistant.NewGeminiClient(ctx, cfg.Assistant.APIKey, cfg.Assistant.Model)
	if err != nil {
		logger.Fatalf("failed to create Gemini client: %v", err)
	}

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	corsCfg := cors.Config{
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept"},
		MaxAge:       12 * time.Hour,
	}
	if len(cfg.CORS.Origins) > 0 {
		corsCfg.AllowOrigins = cfg.CORS.Origins
	} else {
		corsCfg.AllowAllOrigins = true
	}
	r.Use(cors.New(corsCfg))

	if cfg.RateLimit.Enabled {
		r.Use(middleware.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
	}

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})

	handler.NewHandler(gen, cfg.Assistant.OwnerName, resume).Register(r)

	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	port := os.Getenv("ASSISTANT_PORT")
	if port == "" {
		port = "8080"
	}
	addr := cfg.Server.Host + ":" + port
	logger.Infof("Starting assistant service on %s (model=%s)", addr, cfg.Assistant.Model)
	if err := r.Run(addr); err != nil {
		logger.Fatalf("server failed: %v", err)
	}
}
