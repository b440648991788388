package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/pedidosapp/order-api/internal/config"
	dbpkg "github.com/pedidosapp/order-api/internal/db"
	"github.com/pedidosapp/order-api/internal/logger"
	"github.com/pedidosapp/order-api/internal/middleware"
	"github.com/pedidosapp/order-api/internal/routes"
)

func main() {

	_ = godotenv.Load()

	cfg := config.Load()

	logger.Init(cfg.Env)
	defer logger.Sync()

	db, err := dbpkg.NewDB(cfg)
	if err != nil {
		logger.L().Fatal("failed to open database", zap.Error(err))
	}

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggingMiddleware())
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.GeneralRateLimit())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg)

	logger.Info("server running", zap.String("addr", cfg.Addr()))
	if err := r.Run(cfg.Addr()); err != nil {
		logger.L().Fatal("failed to start server", zap.Error(err))
	}
}
