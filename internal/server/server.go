package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"optifuel/api/internal/config"
	"optifuel/api/internal/handler"
	"optifuel/api/internal/middleware"
	"optifuel/api/internal/service"
	"optifuel/api/internal/store"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Server represents the HTTP server
type Server struct {
	router     *gin.Engine
	httpServer *http.Server
	config     *config.Config
	db         *gorm.DB
	redis      *redis.Client
	jetstream  *service.JetStreamService
	eventSub   *nats.Subscription
	wsHub      *handler.WSHub
	logger     *slog.Logger
}

// NewServer creates a new server instance. redisClient and jetstream may be nil.
func NewServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, jetstream *service.JetStreamService, logger *slog.Logger) *Server {
	return &Server{
		config:    cfg,
		db:        db,
		redis:     redisClient,
		jetstream: jetstream,
		logger:    logger,
	}
}

// Setup initializes routes and handlers
func (s *Server) Setup() error {
	// Initialize services
	tokens := service.NewTokenService(s.config.JWTSecret, s.config.JWTIssuer, s.config.JWTAudience, s.config.JWTTTL)
	authService := service.NewAuthService(store.NewUserStore(s.db), tokens)
	voyageStore := store.NewVoyageStore(s.db)
	predictor := service.NewPredictionClient(s.config.MLServiceURL, s.config.MLServiceTimeout)

	var cache service.Cache
	if s.redis != nil {
		cache = service.NewRedisCache(s.redis)
	}
	analyticsService := service.NewAnalyticsService(voyageStore, cache, s.config.AnalyticsCacheTTL, s.logger)

	var events service.EventPublisher
	if s.jetstream.IsEnabled() {
		events = s.jetstream
	}
	voyageService := service.NewVoyageService(voyageStore, predictor, events, analyticsService, s.logger)

	// Initialize WebSocket hub
	s.wsHub = handler.NewWSHub(s.logger)
	go s.wsHub.Run()
	if s.jetstream.IsEnabled() {
		sub, err := s.jetstream.SubscribeVoyageEvents(s.wsHub.Dispatch)
		if err != nil {
			return fmt.Errorf("subscribe voyage events: %w", err)
		}
		s.eventSub = sub
	}
	s.logger.Info("websocket hub started", "events", s.jetstream.IsEnabled())

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService, tokens)
	voyageHandler := handler.NewVoyageHandler(voyageService)
	historyHandler := handler.NewHistoryHandler(voyageService)
	analyticsHandler := handler.NewAnalyticsHandler(analyticsService)
	wsHandler := handler.NewWSHandler(s.wsHub, tokens, s.config.CORSOrigin)

	// Setup Gin router
	s.router = gin.New()
	s.router.Use(gin.Logger(), gin.Recovery(), s.logErrors())
	s.router.Use(cors(s.config.CORSOrigin))

	rateLimit := func(c *gin.Context) { c.Next() }
	if s.config.RateLimit.Enabled && s.redis != nil {
		defaultRule := s.config.RateLimit.DefaultRule
		rateLimit = middleware.NewRateLimitGroup(
			middleware.NewRedisRateLimiter(s.redis), &defaultRule, s.config.RateLimitRules()...,
		).Middleware()
	}

	// Swagger UI
	s.router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Public routes
	s.router.GET("/health", s.health)
	s.router.GET("/ws/voyages", wsHandler.HandleVoyages)

	public := s.router.Group("/api")
	public.Use(rateLimit)
	{
		public.POST("/auth/register", authHandler.Register)
		public.POST("/auth/login", authHandler.Login)
		public.POST("/predict", voyageHandler.Predict)
	}

	// Protected routes
	api := s.router.Group("/api")
	api.Use(authHandler.AuthMiddleware(), rateLimit)
	{
		// Auth
		api.GET("/auth/me", authHandler.GetMe)

		// Voyages
		api.GET("/voyages", voyageHandler.List)
		api.POST("/voyages/create", voyageHandler.Create)
		api.GET("/voyages/:id", voyageHandler.Get)
		api.PUT("/voyages/:id", voyageHandler.Update)
		api.POST("/voyages/:id/explain", voyageHandler.Explain)

		// History
		api.GET("/history", historyHandler.List)
		api.GET("/history/export", historyHandler.Export)

		// Analytics
		api.GET("/analytics/summary", analyticsHandler.Summary)
		api.GET("/analytics/charts", analyticsHandler.Charts)

		api.GET("/ws/stats", wsHandler.GetStats)
	}
	return nil
}

// cors answers preflight requests and sets the allowed origin
func cors(origin string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "Content-Disposition, Location, Retry-After")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// logErrors logs the errors handlers attached to the context
func (s *Server) logErrors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		for _, err := range c.Errors {
			s.logger.Error("request failed",
				"method", c.Request.Method,
				"path", c.FullPath(),
				"status", c.Writer.Status(),
				"error", err.Err,
			)
		}
	}
}

func (s *Server) health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := http.StatusOK
	health := gin.H{"status": "ok"}

	if err := store.Ping(ctx, s.db); err != nil {
		status = http.StatusServiceUnavailable
		health["status"] = "degraded"
		health["database"] = "unreachable"
	} else {
		health["database"] = "ok"
	}

	switch {
	case s.redis == nil:
		health["redis"] = "disabled"
	case s.redis.Ping(ctx).Err() != nil:
		health["redis"] = "unreachable"
	default:
		health["redis"] = "ok"
	}

	if s.jetstream.IsEnabled() {
		health["jetstream"] = "enabled"
		if info, err := s.jetstream.GetStreamInfo(); err == nil {
			health["jetstream_voyages"] = gin.H{
				"messages": info.State.Msgs,
				"bytes":    info.State.Bytes,
			}
		}
	} else {
		health["jetstream"] = "disabled"
	}
	health["ws_clients"] = s.wsHub.GetClientCount()

	c.JSON(status, health)
}

// Run starts the HTTP server and blocks until it stops
func (s *Server) Run(addr string) error {
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.logger.Info("http server listening", "addr", addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// GetRouter returns the gin router for testing
func (s *Server) GetRouter() *gin.Engine {
	return s.router
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	if s.httpServer != nil {
		err = s.httpServer.Shutdown(ctx)
	}
	if s.eventSub != nil {
		s.eventSub.Unsubscribe()
	}
	if s.wsHub != nil {
		s.wsHub.Stop()
		s.logger.Info("websocket hub stopped")
	}
	if s.jetstream.IsEnabled() {
		s.jetstream.Close()
		s.logger.Info("jetstream connection drained")
	}
	return err
}
