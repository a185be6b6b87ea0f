package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/yeremiapane/food-ordering-app/config"
	"github.com/yeremiapane/food-ordering-app/database"
	"github.com/yeremiapane/food-ordering-app/hub"
	"github.com/yeremiapane/food-ordering-app/router"
	"github.com/yeremiapane/food-ordering-app/utils"
)

const shutdownTimeout = 5 * time.Second

func main() {
	cfg := config.Load()
	utils.InitLogger(cfg.LogLevel)

	if cfg.GinMode == gin.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Open(cfg)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		utils.ErrorLogger.Fatalf("Failed to AutoMigrate: %v", err)
	}

	blacklist, closeBlacklist := newBlacklist(cfg)
	defer closeBlacklist()

	r := router.SetupRouter(router.Deps{
		DB:        db,
		Config:    cfg,
		Blacklist: blacklist,
		Hub:       hub.New(),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		utils.InfoLogger.Printf("Listening on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			utils.ErrorLogger.Fatal(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	utils.InfoLogger.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		utils.ErrorLogger.Errorf("Server forced to shutdown: %v", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
	utils.InfoLogger.Println("Server exited")
}

// newBlacklist uses redis when configured so revocations survive restarts
// and are shared between instances.
func newBlacklist(cfg *config.Config) (utils.TokenBlacklist, func()) {
	if cfg.RedisAddr == "" {
		mem := utils.NewMemoryBlacklist()
		stop := make(chan struct{})
		go func() {
			ticker := time.NewTicker(time.Hour)
			defer ticker.Stop()
			for {
				select {
				case <-ticker.C:
					mem.Cleanup()
				case <-stop:
					return
				}
			}
		}()
		return mem, func() { close(stop) }
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to redis: %v", err)
	}
	utils.InfoLogger.Printf("Token blacklist backed by redis at %s", cfg.RedisAddr)
	return utils.NewRedisBlacklist(client), func() { client.Close() }
}
