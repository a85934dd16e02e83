package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/contentfactory/panel-api/api/swagger"
	"github.com/contentfactory/panel-api/internal/backend"
	"github.com/contentfactory/panel-api/internal/handler"
	"github.com/contentfactory/panel-api/internal/middleware"
	"github.com/contentfactory/panel-api/internal/repository"
	"github.com/contentfactory/panel-api/internal/service"
	"github.com/contentfactory/panel-api/pkg/cache"
	"github.com/contentfactory/panel-api/pkg/config"
	"github.com/contentfactory/panel-api/pkg/logger"
	corsmiddleware "github.com/contentfactory/panel-api/pkg/middleware/cors"
	reqidmiddleware "github.com/contentfactory/panel-api/pkg/middleware/requestid"
)

// @title Content Factory Panel API
// @version 0.1.0
// @description Control panel gateway for the content factory backend
// @BasePath /api/v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	metricsSvc := service.NewMetricsService()

	var cacheRepo service.CacheRepository
	cacheEnabled := false
	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Warn("redis unavailable, caching disabled", zap.Error(err))
	} else {
		cacheRepo = repository.NewCacheRepository(redisClient, logr)
		cacheEnabled = true
		defer redisClient.Close() //nolint:errcheck
	}
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Capabilities.CacheTTL, logr, cacheEnabled)

	backendClient, err := backend.New(cfg.Backend, logr, metricsSvc)
	if err != nil {
		logr.Fatal("failed to init backend client", zap.Error(err))
	}

	validate := validator.New()

	calendarSvc := service.NewCalendarService(backendClient, validate, logr)
	capabilitySvc := service.NewCapabilityService(backendClient, cacheSvc, cfg.Video.AllowedClientSlugs, cfg.Video.DevMode, logr)
	analyticsSvc := service.NewAnalyticsService(backendClient, cacheSvc, cfg.Polling.SnapshotCacheTTL, logr)
	exportSvc := service.NewExportService(backendClient)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Polling.Enabled {
		pollers := service.NewAnalyticsPollers(analyticsSvc, cfg.Polling, logr)
		for _, p := range pollers {
			p.Start(ctx)
		}
		defer func() {
			for _, p := range pollers {
				p.Stop()
			}
		}()
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	registerRoutes(r, cfg, capabilitySvc, routeHandlers{
		auth:      handler.NewAuthHandler(backendClient, capabilitySvc),
		client:    handler.NewClientHandler(backendClient, capabilitySvc),
		calendar:  handler.NewCalendarHandler(calendarSvc, exportSvc),
		posts:     handler.NewPostHandler(backendClient, capabilitySvc),
		topics:    handler.NewTopicHandler(backendClient),
		templates: handler.NewTemplateHandler(backendClient),
		schedules: handler.NewScheduleHandler(backendClient),
		trends:    handler.NewTrendHandler(backendClient),
		seo:       handler.NewSEOHandler(backendClient),
		analytics: handler.NewAnalyticsHandler(analyticsSvc),
		accounts:  handler.NewAccountHandler(backendClient),
		vk:        handler.NewVkHandler(backendClient, cfg.VK),
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: r,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Warn("shutdown incomplete", zap.Error(err))
	}
}

type routeHandlers struct {
	auth      *handler.AuthHandler
	client    *handler.ClientHandler
	calendar  *handler.CalendarHandler
	posts     *handler.PostHandler
	topics    *handler.TopicHandler
	templates *handler.TemplateHandler
	schedules *handler.ScheduleHandler
	trends    *handler.TrendHandler
	seo       *handler.SEOHandler
	analytics *handler.AnalyticsHandler
	accounts  *handler.AccountHandler
	vk        *handler.VkHandler
}

func registerRoutes(r *gin.Engine, cfg *config.Config, caps *service.CapabilityService, h routeHandlers) {
	api := r.Group(cfg.APIPrefix)
	edit := middleware.RequireEdit(caps)

	auth := api.Group("/auth")
	{
		auth.POST("/telegram", h.auth.Login)
		auth.PUT("/telegram", h.auth.DevLogin)
		auth.DELETE("/telegram", h.auth.Logout)
		auth.POST("/refresh", h.auth.Refresh)
	}

	api.GET("/capabilities", h.client.Capabilities)
	api.POST("/capabilities/refresh", h.client.RefreshCapabilities)

	client := api.Group("/client")
	{
		client.GET("/settings", h.client.Settings)
		client.PATCH("/settings", edit, h.client.UpdateSettings)
		client.GET("/summary", h.client.Summary)
	}

	calendar := api.Group("/calendar")
	{
		calendar.GET("", h.calendar.View)
		calendar.POST("/move", edit, h.calendar.Move)
		calendar.POST("/plan-week", edit, h.calendar.PlanWeek)
		calendar.DELETE("/items/:id", edit, h.calendar.DeleteItem)
		if cfg.Export.Enabled {
			calendar.GET("/export", h.calendar.Export)
		}
	}

	posts := api.Group("/posts")
	{
		posts.GET("", h.posts.List)
		posts.POST("", edit, h.posts.Create)
		posts.GET("/:id", h.posts.Get)
		posts.PATCH("/:id", edit, h.posts.Update)
		posts.DELETE("/:id", edit, h.posts.Delete)
		posts.POST("/:id/generate-image", edit, h.posts.GenerateImage)
		posts.POST("/:id/generate-video", edit, h.posts.GenerateVideo)
		posts.POST("/:id/regenerate-text", edit, h.posts.RegenerateText)
		posts.POST("/:id/quick-publish", edit, h.posts.QuickPublish)
	}

	topics := api.Group("/topics")
	{
		topics.GET("", h.topics.List)
		topics.POST("", edit, h.topics.Create)
		topics.PATCH("/:id", edit, h.topics.Update)
		topics.DELETE("/:id", edit, h.topics.Delete)
		topics.POST("/:id/discover-content", edit, h.topics.DiscoverContent)
		topics.POST("/:id/generate-posts", edit, h.topics.GeneratePosts)
		topics.POST("/:id/generate-seo", edit, h.topics.GenerateSEO)
	}

	templates := api.Group("/templates")
	{
		templates.GET("", h.templates.List)
		templates.POST("", edit, h.templates.Create)
	}

	schedules := api.Group("/schedules")
	{
		schedules.GET("", h.schedules.List)
		schedules.PATCH("/:id", edit, h.schedules.Update)
		schedules.DELETE("/:id", edit, h.schedules.Delete)
	}

	if cfg.Trends.Enabled {
		trends := api.Group("/trends")
		{
			trends.GET("", h.trends.List)
			trends.POST("/:id/create-topic", edit, h.trends.CreateTopic)
			trends.POST("/:id/dismiss", edit, h.trends.Dismiss)
		}
	}

	seo := api.Group("/seo-keywords")
	{
		seo.GET("", h.seo.List)
		seo.POST("", edit, h.seo.Create)
		seo.POST("/generate", edit, h.seo.Generate)
	}

	analyses := api.Group("/channel-analyses")
	{
		analyses.GET("", h.analytics.List)
		analyses.GET("/validate", h.analytics.Validate)
		analyses.GET("/:id", h.analytics.Get)
		analyses.POST("", edit, h.analytics.Start)
		analyses.POST("/:id/merge-audience", edit, h.analytics.MergeAudience)
	}

	accounts := api.Group("/social-accounts")
	{
		accounts.GET("", h.accounts.List)
		accounts.POST("", edit, h.accounts.Create)
		accounts.DELETE("/:id", edit, h.accounts.Delete)
	}

	if cfg.VK.Enabled {
		vk := api.Group("/vk")
		{
			vk.GET("/integrations", h.vk.ListIntegrations)
			vk.DELETE("/integrations/:id", edit, h.vk.DeleteIntegration)
			vk.POST("/post-with-photos", edit, h.vk.PostWithPhotos)
			vk.GET("/connect", h.vk.Connect)
		}
	}
}
