package api

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/knotworthy/knotworthy/internal/api/handlers"
	"github.com/knotworthy/knotworthy/internal/api/middleware"
	"github.com/knotworthy/knotworthy/internal/config"
	"github.com/knotworthy/knotworthy/internal/domains"
	"github.com/knotworthy/knotworthy/internal/hostname"
	"github.com/knotworthy/knotworthy/internal/metrics"
	"github.com/knotworthy/knotworthy/internal/queue"
	"github.com/knotworthy/knotworthy/internal/rsvp"
	"github.com/knotworthy/knotworthy/internal/storage/postgres"
	"github.com/knotworthy/knotworthy/internal/storage/redis"
)

type Server struct {
	Config     *config.Config
	Router     *gin.Engine
	DB         *postgres.DB
	Cache      *redis.Client
	Queue      *queue.RedisQueue
	Logger     *zap.Logger
	Metrics    *metrics.Collector
	Classifier *hostname.Classifier
}

func NewServer(cfg *config.Config, db *postgres.DB, cache *redis.Client, q *queue.RedisQueue, logger *zap.Logger) *Server {
	gin.SetMode(cfg.Server.Mode)
	router := gin.New()

	// Middleware
	router.Use(middleware.Logger(logger))
	router.Use(gin.Recovery())
	router.Use(middleware.CORS())

	server := &Server{
		Config:  cfg,
		Router:  router,
		DB:      db,
		Cache:   cache,
		Queue:   q,
		Logger:  logger,
		Metrics: metrics.NewCollector(),
		Classifier: hostname.NewClassifier(
			cfg.Platform.ApexDomain,
			cfg.Platform.LegacyApexDomains,
			cfg.Platform.ReservedSubdomains,
		),
	}

	server.setupRoutes()
	return server
}

func (s *Server) setupRoutes() {
	// Health and metrics, served on every host
	s.Router.GET("/health", handlers.HealthCheck)
	s.Router.GET("/ready", handlers.Ready(s.DB))
	s.Router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Auth routes
	authHandler := handlers.NewAuthHandler(s.DB, s.Config, s.Classifier)
	auth := s.Router.Group("/api/v1/auth")
	{
		auth.POST("/signup", authHandler.SignUp)
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.RefreshToken)
	}

	// Couple dashboard API (protected)
	api := s.Router.Group("/api/v1")
	api.Use(middleware.AuthRequired(s.Config.Auth.JWTSecret))

	siteHandler := handlers.NewSiteHandler(s.DB, s.Cache, s.Config)
	{
		api.GET("/site", siteHandler.GetMySite)
		api.PUT("/site", siteHandler.UpdateSite)
		api.GET("/site/stats", siteHandler.GetStats)
	}

	guestHandler := handlers.NewGuestHandler(s.DB)
	{
		api.GET("/site/invitations", guestHandler.ListInvitations)
		api.POST("/site/invitations", guestHandler.CreateInvitation)
		api.PUT("/site/invitations/:id", guestHandler.UpdateInvitation)
		api.DELETE("/site/invitations/:id", guestHandler.DeleteInvitation)
		api.GET("/site/rsvps", guestHandler.ListRSVPs)
	}

	verifier := domains.NewVerifier(s.Config.Platform.VerificationTarget)
	domainHandler := handlers.NewDomainHandler(s.DB, s.Cache, verifier, s.Logger)
	{
		api.GET("/site/domain", domainHandler.GetDomainStatus)
		api.PUT("/site/domain", domainHandler.SetCustomDomain)
		api.POST("/site/domain/verify", domainHandler.VerifyDomain)
	}

	// Public wedding-site surface, dispatched by Host header
	rsvpService := rsvp.NewService(s.DB, s.Queue, s.Logger)
	rsvpHandler := handlers.NewRSVPHandler(rsvpService, s.Metrics)

	public := s.Router.Group("/api")
	public.Use(middleware.SiteResolver(s.Config, s.Classifier, s.DB, s.Cache, s.Metrics, s.Logger))
	{
		public.GET("/site", siteHandler.GetPublicSite)

		form := public.Group("/rsvp")
		form.Use(middleware.RateLimit(s.Config.Platform.RSVPRateLimit, s.Config.Platform.RSVPRateBurst))
		{
			form.POST("/lookup", rsvpHandler.Lookup)
			form.POST("", rsvpHandler.Submit)
		}
	}
}
