package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"golang.org/x/time/rate"

	"locallibrary/internal/catalog"
	"locallibrary/internal/config"
	"locallibrary/internal/db"
	"locallibrary/internal/handler"
	"locallibrary/internal/repository"
)

func main() {
	_ = godotenv.Load(".env.local")

	cfg := config.Load()

	gin.SetMode(cfg.GinMode)

	database := db.ConnectWithRetry(cfg)
	if err := db.Migrate(database); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	svc := catalog.NewService(
		repository.NewGormAuthorRepository(database),
		repository.NewGormBookRepository(database),
		repository.NewGormGenreRepository(database),
		repository.NewGormInstanceRepository(database),
		repository.NewGormStatsRepository(database),
	)

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(handler.SecurityHeaders())
	router.Use(handler.RateLimit(rate.Limit(20), 40))

	router.SetTrustedProxies([]string{
		"127.0.0.1",
		"::1",
	})

	router.SetHTMLTemplate(handler.Templates())
	router.StaticFS("/static", handler.StaticFS())

	handler.NewHomeHandler(svc).RegisterRoutes(router)

	cat := router.Group("/catalog")
	{
		handler.NewAuthorHandler(svc).RegisterRoutes(cat)
		handler.NewBookHandler(svc).RegisterRoutes(cat)
		handler.NewGenreHandler(svc).RegisterRoutes(cat)
		handler.NewInstanceHandler(svc).RegisterRoutes(cat)
	}

	router.GET("/healthz", func(c *gin.Context) {
		sqlDB, err := database.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			c.String(http.StatusServiceUnavailable, "db not ready")
			return
		}
		c.String(http.StatusOK, "ok")
	})

	router.NoRoute(func(c *gin.Context) {
		c.HTML(http.StatusNotFound, "404.html", gin.H{"Title": "Not Found"})
	})

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()
	log.Printf("listening on %s", cfg.Addr)

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
	if sqlDB, err := database.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
