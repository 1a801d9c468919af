package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"securecampus/internal/announcement"
	"securecampus/internal/attendance"
	"securecampus/internal/audit"
	"securecampus/internal/auth"
	"securecampus/internal/config"
	"securecampus/internal/httpmiddleware"
	"securecampus/internal/store"
	"securecampus/internal/user"
)

func main() {
	cfg := config.Load()

	if cfg.Env == "production" || cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := runHTTP(cfg); err != nil {
		log.Fatalf("http server failed: %v", err)
	}
}

func runHTTP(cfg config.App) error {
	db, err := store.NewDB(cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer func() {
		_ = db.Close()
	}()

	redisClient := store.NewRedis(cfg.RedisAddr)

	var limiter auth.LoginLimiter
	if cfg.LoginLimiterStore == "redis" {
		limiter = auth.NewRedisLimiter(redisClient.Client, cfg.LoginMaxFailures, cfg.LoginWindow)
	} else {
		limiter = auth.NewMemoryLimiter(cfg.LoginMaxFailures, cfg.LoginWindow)
	}

	auditRepo := audit.NewRepository(db.Client)
	recorder := audit.NewRecorder(auditRepo)

	hasher := auth.NewHasher(cfg.BcryptCost)
	tokens := auth.NewTokenIssuer(cfg.JWTIssuer, cfg.JWTSigningKey, cfg.TokenTTL)

	userRepo := user.NewRepository(db.Client)
	userService := user.NewService(userRepo, recorder, limiter, hasher, tokens)
	userHandler := user.NewHandler(userService)

	attRepo := attendance.NewRepository(db.Client)
	attService := attendance.NewService(attRepo, recorder)
	attHandler := attendance.NewHandler(attService)

	annRepo := announcement.NewRepository(db.Client)
	annHandler := announcement.NewHandler(annRepo)

	auditHandler := audit.NewHandler(auditRepo)

	requireAuth := auth.RequireAuth(cfg.JWTSigningKey, cfg.JWTIssuer)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		SkipPaths: []string{"/healthz", "/metrics"},
	}))
	r.Use(httpmiddleware.CORS(cfg.FrontendOrigin))
	r.Use(httpmiddleware.SecurityHeaders())
	r.Use(httpmiddleware.NewSimpleTokenBucket(cfg.RateLimitPerMin, cfg.RateLimitPerMin).GinMiddleware())

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.GET("/healthz", func(c *gin.Context) {
		redisHealthy := redisClient.Healthy(c.Request.Context())
		dbHealthy := db.Client.PingContext(c.Request.Context()) == nil
		status := http.StatusOK
		if !dbHealthy {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, gin.H{"status": "ok", "redis": redisHealthy, "db": dbHealthy})
	})

	userHandler.RegisterRoutes(r, requireAuth)
	attHandler.RegisterRoutes(r, requireAuth)
	auditHandler.RegisterRoutes(r, requireAuth)
	annHandler.RegisterRoutes(r, requireAuth)

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Starting server on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Give outstanding requests 10 seconds to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced shutdown: %v", err)
	}

	log.Println("Server exited")
	return nil
}
