// File: internal/app/server.go
package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"devlink_backend/internal/config"
	"devlink_backend/internal/firebase"
	"devlink_backend/internal/jobs"
	"devlink_backend/internal/middleware"
	platformes "devlink_backend/internal/platform/elasticsearch"
	"devlink_backend/internal/profile"
	"devlink_backend/internal/shared"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Server struct holds the dependencies for the HTTP server.
type Server struct {
	httpServer *http.Server
	router     *gin.Engine
	cfg        *config.Config
	logger     *zap.Logger

	profileHandler *profile.Handler

	searchSyncJob *jobs.ProfileSearchSyncJob

	authMW gin.HandlerFunc

	// Exposed for startup tasks such as index creation.
	ESClient  *platformes.ESClientWrapper
	AppLogger *zap.Logger
}

// NewServer creates a new instance of our application server.
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	profileHandler *profile.Handler,
	searchSyncJob *jobs.ProfileSearchSyncJob,
	firebaseService *firebase.FirebaseService,
	userService shared.Service,
	esClient *platformes.ESClientWrapper,
) (*Server, error) {
	gin.SetMode(cfg.GinMode)
	router := gin.New()

	// --- Global Middleware ---
	router.Use(middleware.ZapLogger(logger, cfg))
	router.Use(middleware.ErrorHandler(logger))
	router.Use(gin.Recovery())

	// CORS Middleware
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"*"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader}
	corsConfig.AllowCredentials = true
	corsConfig.ExposeHeaders = []string{"Content-Length", middleware.RequestIDHeader}
	router.Use(cors.New(corsConfig))

	authMW := middleware.AuthMiddleware(firebaseService, userService, logger.Named("AuthMiddleware"))

	// --- Setup Routes ---
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP", "message": "DevLink API is healthy!"})
	})

	api := router.Group("/api")
	profileHandler.RegisterRoutes(api, authMW)

	addr := fmt.Sprintf("%s:%s", cfg.ServerHost, cfg.ServerPort)
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return &Server{
		httpServer:     httpServer,
		router:         router,
		cfg:            cfg,
		logger:         logger,
		profileHandler: profileHandler,
		searchSyncJob:  searchSyncJob,
		authMW:         authMW,
		ESClient:       esClient,
		AppLogger:      logger,
	}, nil
}

func (s *Server) Start() error {
	if s.searchSyncJob != nil {
		if err := s.searchSyncJob.SetupAndStart(); err != nil {
			s.logger.Error("Failed to setup and start profile search sync job", zap.Error(err))
		}
	} else {
		s.logger.Info("Profile search sync job is not configured, skipping start.")
	}

	s.logger.Info("HTTP Server starting",
		zap.String("address", s.httpServer.Addr),
		zap.String("gin_mode", s.cfg.GinMode),
	)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		s.logger.Error("Failed to start HTTP server", zap.Error(err))
		return err
	}
	s.logger.Info("HTTP Server stopped gracefully or an error occurred")
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Attempting graceful server shutdown...")
	if s.searchSyncJob != nil {
		s.searchSyncJob.Stop()
	}
	return s.httpServer.Shutdown(ctx)
}
