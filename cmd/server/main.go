package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"parking-lot-service/config"
	"parking-lot-service/internal/cache"
	"parking-lot-service/internal/database"
	"parking-lot-service/internal/handler"
	"parking-lot-service/internal/repository"
	"parking-lot-service/internal/server"
	"parking-lot-service/internal/service"
	"parking-lot-service/internal/storage"
	"parking-lot-service/pkg/logger"

	"go.uber.org/zap"
)

func main() {
	os.Exit(run())
}

// run returns the process exit code so deferred cleanup finishes before exit.
func run() int {
	cfg := config.LoadConfig()
	defer logger.Sync()

	if err := logger.SetLevel(cfg.Log.Level); err != nil {
		logger.L.Warn("Invalid log level, keeping info", zap.String("level", cfg.Log.Level), zap.Error(err))
	}
	log := logger.WithComponent("main")

	ctx := context.Background()

	pool, err := database.InitDatabase(ctx, &cfg.Database)
	if err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer pool.Close()

	// 快取預設關閉，開啟時才連線 Redis
	var detailCache cache.ParkingLotCache = cache.NewNoopParkingLotCache()
	if cfg.Cache.Enabled {
		rdb, err := database.InitRedis(ctx, &cfg.Redis)
		if err != nil {
			log.Fatal("Failed to initialize redis", zap.Error(err))
		}
		defer rdb.Close()
		detailCache = cache.NewRedisParkingLotCache(rdb, cfg.Cache.TTL)
	}

	parkingLotService := service.NewParkingLotService(
		pool,
		repository.NewParkingLotRepository(pool),
		repository.NewUserRepository(pool),
		storage.NewLocalFileStore(cfg.Files.Dir),
		detailCache,
	)

	router := server.NewRouter(&cfg.Server, handler.NewParkingLotHandler(parkingLotService))
	srv := server.NewServer(&cfg.Server, router)

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.Run(); !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()
	log.Info("Server started", zap.String("port", cfg.Server.Port))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	select {
	case sig := <-quit:
		log.Info("Shutting down server", zap.String("signal", sig.String()))
	case err := <-serverErr:
		// 監聽失敗（例如埠號被占用）
		log.Error("HTTP server stopped unexpectedly", zap.Error(err))
		return 1
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Stop(shutdownCtx); err != nil {
		log.Error("Failed to stop server", zap.Error(err))
	}

	log.Info("Server stopped")
	return 0
}
