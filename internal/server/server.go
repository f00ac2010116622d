package server

import (
	"context"
	"net/http"
	"time"

	"parking-lot-service/config"
	"parking-lot-service/pkg/logger"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
)

// RouteRegistrar is implemented by every HTTP handler group.
type RouteRegistrar interface {
	RegisterRoutes(r *gin.Engine)
}

type Server struct {
	httpServer *http.Server
}

func NewServer(cfg *config.ServerConfig, handler http.Handler) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:         ":" + cfg.Port,
			Handler:      handler,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
	}
}

func (s *Server) Run() error {
	return s.httpServer.ListenAndServe()
}

func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// NewRouter builds the gin engine with access logging, panic recovery and
// a health check, then lets each handler add its own routes.
func NewRouter(cfg *config.ServerConfig, handlers ...RouteRegistrar) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.New()

	log := logger.WithComponent("http")
	router.Use(ginzap.Ginzap(log, time.RFC3339, true))
	router.Use(ginzap.RecoveryWithZap(log, true))

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	for _, h := range handlers {
		h.RegisterRoutes(router)
	}

	return router
}
