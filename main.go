package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"tubetext/api-gateway/cache"
	"tubetext/api-gateway/config"
	"tubetext/api-gateway/handlers"
	"tubetext/api-gateway/internal/ytsource"
	"tubetext/api-gateway/middleware"
	"tubetext/api-gateway/ratelimit"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	config.InitLogger()
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// One cache and one limiter for the whole process, passed into the
	// handlers rather than reached for globally.
	transcriptCache := cache.New(cfg.CacheTTL, cfg.CacheMaxEntries)
	transcriptCache.StartJanitor(ctx, cfg.CacheSweepEvery)

	limiter := ratelimit.New(cfg.RateLimit, cfg.RateWindow)
	limiter.StartJanitor(ctx, cfg.RateSweepEvery)

	source := ytsource.New(&http.Client{Timeout: cfg.HTTPTimeout}, config.Log)
	h := handlers.NewApplicationHandler(source, transcriptCache, config.Log)

	app := fiber.New(fiber.Config{
		ProxyHeader: cfg.ProxyHeader,
	})

	// Middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))
	app.Use(middleware.RequestLogger(config.Log))
	app.Use(middleware.RateLimiter(limiter, "/api/health"))

	// API routes
	app.Post("/api/transcript", h.GetTranscript)
	app.Get("/api/languages/:videoId", h.GetLanguages)
	app.Get("/api/health", h.HealthCheck)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = app.ShutdownWithContext(shutdownCtx)
	}()

	config.Log.WithFields(logrus.Fields{
		"addr":        cfg.ListenAddr,
		"rate_limit":  cfg.RateLimit,
		"rate_window": cfg.RateWindow.String(),
		"cache_ttl":   cfg.CacheTTL.String(),
		"cache_max":   cfg.CacheMaxEntries,
	}).Info("Starting transcript API gateway")

	if err := app.Listen(cfg.ListenAddr); err != nil {
		config.Log.WithField("error", err.Error()).Fatal("Server exited")
	}
}
