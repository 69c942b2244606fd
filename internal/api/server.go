package api

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/SUBHODEEP-bot/certi-gen-smart-certs/internal/api/middleware"
	"github.com/SUBHODEEP-bot/certi-gen-smart-certs/internal/pkg/logger"
	"github.com/SUBHODEEP-bot/certi-gen-smart-certs/internal/pkg/tracing"
)

type Server struct {
	Router   *gin.Engine
	Handlers *Handlers
	server   *http.Server

	adminToken string
}

func NewServer(handlers *Handlers, adminToken string) *Server {
	router := gin.New()

	router.MaxMultipartMemory = 8 << 20 // 8 MiB

	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.PrometheusMiddleware())
	router.Use(tracing.GinTracingMiddleware())

	// Per-request deadline; certificate rendering is CPU-bound and short.
	router.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	})

	return &Server{
		Router:     router,
		Handlers:   handlers,
		adminToken: adminToken,
	}
}

func (s *Server) SetupRoutes() {
	s.Router.GET("/health", s.Handlers.Health)
	s.Router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Public verification endpoint, the target of every QR code.
	s.Router.GET("/verify", s.Handlers.Verify.Verify)

	v1 := s.Router.Group("/api/v1")
	{
		v1.POST("/certificates", s.Handlers.Certificate.Generate)
		v1.GET("/certificates/preview", s.Handlers.Certificate.Preview)
		v1.GET("/verify", s.Handlers.Verify.Verify)

		admin := v1.Group("/admin", middleware.AdminAuth(s.adminToken))
		{
			admin.GET("/certificates", s.Handlers.Admin.List)
			admin.DELETE("/certificates/:cert_id", s.Handlers.Admin.Delete)
			admin.POST("/certificates/bulk", s.Handlers.Admin.BulkGenerate)
			admin.GET("/stats", s.Handlers.Admin.Stats)
		}
	}
}

func (s *Server) Start(addr string) error {
	s.server = &http.Server{
		Addr:           addr,
		Handler:        s.Router,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   30 * time.Second,
		MaxHeaderBytes: 1 << 20, // 1 MB
	}

	errChan := make(chan error, 1)

	go func() {
		logger.Info("Starting server", zap.String("addr", addr))
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		return err
	case sig := <-quit:
		logger.Info("Received signal", zap.String("signal", sig.String()))
		return s.Stop()
	}
}

func (s *Server) Stop() error {
	if s.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		logger.Info("Shutting down server")

		if err := s.server.Shutdown(ctx); err != nil {
			logger.Error("Server forced to shutdown", zap.Error(err))
			return err
		}
	}
	return nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
