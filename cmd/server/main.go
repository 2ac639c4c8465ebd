package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	communityapp "github.com/agrihub/backend/internal/application/community"
	farmapp "github.com/agrihub/backend/internal/application/farm"
	financeapp "github.com/agrihub/backend/internal/application/finance"
	gameapp "github.com/agrihub/backend/internal/application/gamification"
	identityapp "github.com/agrihub/backend/internal/application/identity"
	knowledgeapp "github.com/agrihub/backend/internal/application/knowledge"
	marketapp "github.com/agrihub/backend/internal/application/marketplace"
	mediaapp "github.com/agrihub/backend/internal/application/media"
	voiceapp "github.com/agrihub/backend/internal/application/voice"
	"github.com/agrihub/backend/internal/infrastructure/ai"
	"github.com/agrihub/backend/internal/infrastructure/auth"
	"github.com/agrihub/backend/internal/infrastructure/cache"
	"github.com/agrihub/backend/internal/infrastructure/config"
	"github.com/agrihub/backend/internal/infrastructure/event"
	"github.com/agrihub/backend/internal/infrastructure/exchange"
	"github.com/agrihub/backend/internal/infrastructure/logger"
	"github.com/agrihub/backend/internal/infrastructure/persistence"
	"github.com/agrihub/backend/internal/infrastructure/scheduler"
	"github.com/agrihub/backend/internal/infrastructure/storage"
	"github.com/agrihub/backend/internal/infrastructure/telemetry"
	"github.com/agrihub/backend/internal/infrastructure/weather"
	"github.com/agrihub/backend/internal/interfaces/http/handler"
	"github.com/agrihub/backend/internal/interfaces/http/middleware"
	"github.com/agrihub/backend/internal/interfaces/http/router"
)

//	@title			AgriHub Backend API
//	@version		1.0
//	@description	Farm management backend: fields, finances, marketplace, community and gamification for smallholder farmers.

//	@contact.name	API Support
//	@contact.url	https://github.com/agrihub/backend

//	@license.name	Apache 2.0
//	@license.url	http://www.apache.org/licenses/LICENSE-2.0.html

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting AgriHub Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Initialize database connection
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, logger.MapGormLogLevel(cfg.Log.Level))
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Telemetry providers (no-op when disabled)
	ctx := context.Background()
	tracerProvider, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	meterProvider, err := telemetry.NewMeterProvider(ctx, telemetry.MetricsConfig{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize meter provider", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := meterProvider.Shutdown(shutdownCtx); err != nil {
			log.Error("Error shutting down meter provider", zap.Error(err))
		}
	}()

	// Database query tracing
	dbTracing := telemetry.NewDBTracingPlugin(telemetry.DBTracingConfig{
		Enabled:          cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled,
		LogFullSQL:       cfg.Telemetry.DBLogFullSQL,
		SlowQueryThresh:  cfg.Telemetry.DBSlowQueryThresh,
		DBSystem:         "postgresql",
		WithoutVariables: !cfg.Telemetry.DBLogFullSQL,
	}, log)
	if err := dbTracing.RegisterOtelGorm(db.DB); err != nil {
		log.Fatal("Failed to register database tracing", zap.Error(err))
	}

	// Initialize repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	fieldRepo := persistence.NewGormFieldRepository(db.DB)
	taskRepo := persistence.NewGormFarmTaskRepository(db.DB)
	harvestRepo := persistence.NewGormHarvestRepository(db.DB)
	binRepo := persistence.NewGormStorageBinRepository(db.DB)
	notificationRepo := persistence.NewGormNotificationRepository(db.DB)
	expenseRepo := persistence.NewGormExpenseRepository(db.DB)
	incomeRepo := persistence.NewGormIncomeRepository(db.DB)
	listingRepo := persistence.NewGormListingRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	reviewRepo := persistence.NewGormReviewRepository(db.DB)
	postRepo := persistence.NewGormPostRepository(db.DB)
	commentRepo := persistence.NewGormCommentRepository(db.DB)
	reactionRepo := persistence.NewGormReactionRepository(db.DB)
	articleRepo := persistence.NewGormArticleRepository(db.DB)
	missionRepo := persistence.NewGormMissionRepository(db.DB)
	progressRepo := persistence.NewGormProgressRepository(db.DB)
	streakRepo := persistence.NewGormStreakRepository(db.DB)
	profileRepo := persistence.NewGormProfileRepository(db.DB)
	metricsReader := persistence.NewGormMetricsReader(db.DB)

	// Shared Redis client for token blacklist, checkout idempotency and
	// exchange rate caching. Falls back to in-memory stores when Redis
	// is unreachable outside production.
	redisClient := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     10,
		MinIdleConns: 3,
	})
	redisAvailable := true
	pingCtx, pingCancel := context.WithTimeout(ctx, 5*time.Second)
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		if cfg.App.Env == "production" {
			pingCancel()
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		log.Warn("Redis unavailable, using in-memory stores", zap.Error(err))
		redisAvailable = false
	}
	pingCancel()

	var blacklist auth.TokenBlacklist
	if redisAvailable {
		blacklist = auth.NewRedisTokenBlacklistWithClient(redisClient)
	} else {
		blacklist = auth.NewInMemoryTokenBlacklist()
	}

	idempotencyFactory := cache.NewIdempotencyStoreFactory(cfg.Redis,
		cache.WithInMemoryFallback(cfg.App.Env != "production"),
	)
	idempotencyStore, err := idempotencyFactory.CreateStore()
	if err != nil {
		log.Fatal("Failed to create idempotency store", zap.Error(err))
	}

	// Currency conversion: HTTP rate provider behind a Redis cache
	var rateProvider exchange.RateProvider = exchange.NewHTTPRateProvider(cfg.Exchange)
	if redisAvailable {
		rateProvider = exchange.NewCachedRateProvider(rateProvider, redisClient, cfg.Exchange.CacheTTL, log)
	}
	converter := exchange.NewConverter(rateProvider, cfg.Exchange.BaseCurrency, log)

	// Business metrics on the OTel meter
	businessMetrics, err := telemetry.NewBusinessMetrics(telemetry.BusinessMetricsConfig{
		Meter:               meterProvider.Meter("agrihub-backend"),
		Logger:              log,
		MarketplaceProvider: metricsReader,
	})
	if err != nil {
		log.Fatal("Failed to initialize business metrics", zap.Error(err))
	}
	if cfg.Telemetry.Enabled {
		businessMetrics.StartPeriodicCollection(ctx, 5*time.Minute)
		defer businessMetrics.Stop()
	}

	// Initialize event bus
	eventBus := event.NewInMemoryEventBus(log)

	// Initialize application services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(
		userRepo, streakRepo, profileRepo, missionRepo, progressRepo,
		jwtService, blacklist, eventBus,
		identityapp.DefaultAuthServiceConfig(), log,
	)

	fieldService := farmapp.NewFieldService(fieldRepo, eventBus, log)
	taskService := farmapp.NewTaskService(taskRepo, fieldRepo, eventBus, log)
	binService := farmapp.NewBinService(binRepo, log)
	harvestService := farmapp.NewHarvestService(
		harvestRepo, fieldRepo, binRepo, expenseRepo, incomeRepo, eventBus, log,
	)
	notificationService := farmapp.NewNotificationService(notificationRepo, log)

	expenseService := financeapp.NewExpenseService(expenseRepo, fieldRepo, eventBus, log)
	incomeService := financeapp.NewIncomeService(incomeRepo, fieldRepo, eventBus, log)
	summaryService := financeapp.NewSummaryService(
		expenseRepo, incomeRepo, converter, cfg.Exchange.BaseCurrency, log,
	)

	listingService := marketapp.NewListingService(listingRepo, eventBus, log)
	orderService := marketapp.NewOrderService(
		orderRepo, listingRepo, idempotencyStore, businessMetrics, eventBus, log,
	)
	reviewService := marketapp.NewReviewService(reviewRepo, orderRepo, listingRepo, log)

	postService := communityapp.NewPostService(postRepo, reactionRepo, eventBus, log)
	commentService := communityapp.NewCommentService(commentRepo, postRepo, log)

	articleService := knowledgeapp.NewArticleService(articleRepo, log)

	missionService := gameapp.NewMissionService(
		missionRepo, progressRepo, profileRepo, businessMetrics, eventBus, log,
	)
	streakService := gameapp.NewStreakService(streakRepo, profileRepo, eventBus, log)
	leaderboardService := gameapp.NewLeaderboardService(profileRepo, log)

	intentParser := ai.NewIntentClient(cfg.Voice, nil, log)
	dispatchService := voiceapp.NewDispatchService(
		intentParser, taskService, harvestService, expenseService, incomeService,
		fieldRepo, businessMetrics, cfg.Exchange.BaseCurrency, log,
	)

	weatherClient := weather.NewClient(cfg.Weather)

	var objectStore storage.ObjectStorage
	if cfg.Storage.Provider == "s3" {
		objectStore, err = storage.NewS3ObjectStorage(&cfg.Storage)
		if err != nil {
			log.Fatal("Failed to initialize object storage", zap.Error(err))
		}
	} else {
		log.Warn("Using stub object storage", zap.String("provider", cfg.Storage.Provider))
		objectStore = storage.NewStubObjectStorage()
	}
	uploadService := mediaapp.NewUploadService(objectStore, log)

	// Register event handlers for cross-context integration
	// Order delivered -> income settlement
	settlementHandler := financeapp.NewSettlementHandler(incomeRepo, log)
	eventBus.Subscribe(settlementHandler)

	// Activity events -> streak touch + mission step auto-completion
	activityHandler := gameapp.NewActivityHandler(streakService, missionService, missionRepo, log)
	eventBus.Subscribe(activityHandler)

	log.Info("Event handlers registered",
		zap.Strings("settlement_events", settlementHandler.EventTypes()),
		zap.Strings("activity_events", activityHandler.EventTypes()),
	)

	if err := eventBus.Start(ctx); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()

	// Background sweeps: streak expiry, mission bonus expiry and
	// weather-triggered task reminders
	if cfg.Scheduler.Enabled {
		sweeper := scheduler.NewSweeper(cfg.Scheduler, log)

		streakSweep := scheduler.NewStreakSweepJob(streakRepo, notificationRepo, cfg.Gamification.SweepBatchSize, log)
		if err := sweeper.Register(streakSweep, cfg.Scheduler.StreakSweepSchedule); err != nil {
			log.Fatal("Failed to register streak sweep", zap.Error(err))
		}

		bonusSweep := scheduler.NewBonusSweepJob(progressRepo, cfg.Gamification.SweepBatchSize, log)
		if err := sweeper.Register(bonusSweep, cfg.Scheduler.BonusSweepSchedule); err != nil {
			log.Fatal("Failed to register bonus sweep", zap.Error(err))
		}

		reminderSweep := scheduler.NewTaskReminderJob(
			taskRepo, notificationRepo, userRepo, weatherClient,
			cfg.Gamification.SweepBatchSize, log,
		)
		if err := sweeper.Register(reminderSweep, cfg.Scheduler.WeatherSweepSchedule); err != nil {
			log.Fatal("Failed to register task reminder sweep", zap.Error(err))
		}

		if err := sweeper.Start(ctx); err != nil {
			log.Fatal("Failed to start sweeper", zap.Error(err))
		}
		defer func() {
			if err := sweeper.Stop(context.Background()); err != nil {
				log.Error("Error stopping sweeper", zap.Error(err))
			}
		}()
		log.Info("Background sweeper started",
			zap.Int("max_concurrent_jobs", cfg.Scheduler.MaxConcurrentJobs),
			zap.Duration("job_timeout", cfg.Scheduler.JobTimeout),
		)
	}

	// Initialize HTTP handlers
	authHandler := handler.NewAuthHandler(authService)
	fieldHandler := handler.NewFieldHandler(fieldService)
	taskHandler := handler.NewTaskHandler(taskService)
	binHandler := handler.NewBinHandler(binService)
	harvestHandler := handler.NewHarvestHandler(harvestService)
	notificationHandler := handler.NewNotificationHandler(notificationService)
	financeHandler := handler.NewFinanceHandler(expenseService, incomeService, summaryService)
	listingHandler := handler.NewListingHandler(listingService)
	orderHandler := handler.NewOrderHandler(orderService)
	reviewHandler := handler.NewReviewHandler(reviewService)
	postHandler := handler.NewPostHandler(postService)
	commentHandler := handler.NewCommentHandler(commentService)
	articleHandler := handler.NewArticleHandler(articleService)
	gamificationHandler := handler.NewGamificationHandler(missionService, streakService, leaderboardService)
	voiceHandler := handler.NewVoiceHandler(dispatchService)
	mediaHandler := handler.NewMediaHandler(uploadService)
	weatherHandler := handler.NewWeatherHandler(weatherClient)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	middleware.SetupValidator()

	engine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Middleware stack: request ID, recovery, tracing, logging, metrics,
	// security headers, CORS, body limit, rate limiting
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     cfg.Telemetry.Enabled,
	}))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.HTTPMetricsWithMeter(meterProvider.Meter("agrihub-http"), cfg.Telemetry.Enabled))
	engine.Use(middleware.Secure())

	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(rateLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	// Health check endpoint (outside API versioning)
	engine.GET("/health", healthHandler(db, log))

	// Setup API routes
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	jwtConfig := middleware.JWTMiddlewareConfig{
		JWTService:     jwtService,
		TokenBlacklist: blacklist,
		SkipPaths: []string{
			"/api/v1/auth/signup",
			"/api/v1/auth/login",
			"/api/v1/auth/refresh",
			"/api/v1/ping",
		},
		Logger: log,
	}
	r.Use(middleware.JWTAuthMiddlewareWithConfig(jwtConfig))

	// Identity
	authRoutes := router.NewDomainGroup("auth", "/auth")
	if cfg.HTTP.AuthRateLimitEnabled {
		authLimiter := middleware.NewRateLimiter(cfg.HTTP.AuthRateLimitRequests, cfg.HTTP.AuthRateLimitWindow)
		authRoutes.Use(middleware.RateLimitByKey(authLimiter, func(c *gin.Context) string {
			return c.ClientIP()
		}))
	}
	authRoutes.POST("/signup", authHandler.Signup)
	authRoutes.POST("/login", authHandler.Login)
	authRoutes.POST("/refresh", authHandler.Refresh)
	authRoutes.POST("/logout", authHandler.Logout)
	authRoutes.GET("/me", authHandler.Me)
	authRoutes.PUT("/me", authHandler.UpdateProfile)
	authRoutes.PUT("/password", authHandler.ChangePassword)

	// Farm domain (fields, tasks, bins, harvests)
	farmRoutes := router.NewDomainGroup("farm", "/farm")
	farmRoutes.POST("/fields", fieldHandler.Create)
	farmRoutes.GET("/fields", fieldHandler.List)
	farmRoutes.GET("/fields/:id", fieldHandler.GetByID)
	farmRoutes.PUT("/fields/:id", fieldHandler.Update)
	farmRoutes.DELETE("/fields/:id", fieldHandler.Delete)
	farmRoutes.POST("/fields/:id/plant", fieldHandler.RecordPlanting)
	farmRoutes.POST("/fields/:id/growing", fieldHandler.MarkGrowing)
	farmRoutes.POST("/fields/:id/harvested", fieldHandler.MarkHarvested)
	farmRoutes.POST("/fields/:id/fallow", fieldHandler.MarkFallow)
	farmRoutes.POST("/fields/:id/season", fieldHandler.StartSeason)

	farmRoutes.POST("/tasks", taskHandler.Create)
	farmRoutes.GET("/tasks", taskHandler.List)
	farmRoutes.GET("/tasks/:id", taskHandler.GetByID)
	farmRoutes.PUT("/tasks/:id", taskHandler.Update)
	farmRoutes.DELETE("/tasks/:id", taskHandler.Delete)
	farmRoutes.POST("/tasks/:id/complete", taskHandler.Complete)
	farmRoutes.POST("/tasks/:id/reopen", taskHandler.Reopen)

	farmRoutes.POST("/bins", binHandler.Create)
	farmRoutes.GET("/bins", binHandler.List)
	farmRoutes.GET("/bins/:id", binHandler.GetByID)
	farmRoutes.PUT("/bins/:id", binHandler.Update)
	farmRoutes.DELETE("/bins/:id", binHandler.Delete)
	farmRoutes.POST("/bins/:id/deposit", binHandler.Deposit)
	farmRoutes.POST("/bins/:id/withdraw", binHandler.Withdraw)

	farmRoutes.POST("/harvests", harvestHandler.Record)
	farmRoutes.GET("/harvests", harvestHandler.List)
	farmRoutes.GET("/harvests/summary", harvestHandler.Summary)
	farmRoutes.GET("/harvests/:id", harvestHandler.GetByID)
	farmRoutes.PUT("/harvests/:id", harvestHandler.Update)
	farmRoutes.DELETE("/harvests/:id", harvestHandler.Delete)

	// Finance domain
	financeRoutes := router.NewDomainGroup("finance", "/finance")
	financeRoutes.POST("/expenses", financeHandler.RecordExpense)
	financeRoutes.GET("/expenses", financeHandler.ListExpenses)
	financeRoutes.GET("/expenses/:id", financeHandler.GetExpense)
	financeRoutes.PUT("/expenses/:id", financeHandler.UpdateExpense)
	financeRoutes.DELETE("/expenses/:id", financeHandler.DeleteExpense)
	financeRoutes.POST("/income", financeHandler.RecordIncome)
	financeRoutes.GET("/income", financeHandler.ListIncome)
	financeRoutes.GET("/income/:id", financeHandler.GetIncome)
	financeRoutes.PUT("/income/:id", financeHandler.UpdateIncome)
	financeRoutes.DELETE("/income/:id", financeHandler.DeleteIncome)
	financeRoutes.GET("/summary", financeHandler.Summary)

	// Marketplace domain
	marketRoutes := router.NewDomainGroup("market", "/market")
	marketRoutes.POST("/listings", listingHandler.Create)
	marketRoutes.GET("/listings", listingHandler.Browse)
	marketRoutes.GET("/listings/mine", listingHandler.ListMine)
	marketRoutes.GET("/listings/:id", listingHandler.GetByID)
	marketRoutes.PUT("/listings/:id", listingHandler.Update)
	marketRoutes.POST("/listings/:id/restock", listingHandler.Restock)
	marketRoutes.POST("/listings/:id/delist", listingHandler.Delist)
	marketRoutes.GET("/listings/:id/reviews", reviewHandler.ListForListing)

	marketRoutes.POST("/orders", orderHandler.Checkout)
	marketRoutes.GET("/orders/purchases", orderHandler.ListPurchases)
	marketRoutes.GET("/orders/sales", orderHandler.ListSales)
	marketRoutes.GET("/orders/:id", orderHandler.GetByID)
	marketRoutes.POST("/orders/:id/confirm", orderHandler.Confirm)
	marketRoutes.POST("/orders/:id/ship", orderHandler.Ship)
	marketRoutes.POST("/orders/:id/deliver", orderHandler.Deliver)
	marketRoutes.POST("/orders/:id/cancel", orderHandler.Cancel)

	marketRoutes.POST("/reviews", reviewHandler.Create)
	marketRoutes.PUT("/reviews/:id", reviewHandler.UpdateComment)

	// Community domain
	communityRoutes := router.NewDomainGroup("community", "/community")
	communityRoutes.POST("/posts", postHandler.Create)
	communityRoutes.GET("/posts", postHandler.Feed)
	communityRoutes.GET("/posts/bookmarks", postHandler.Bookmarks)
	communityRoutes.GET("/posts/:id", postHandler.GetByID)
	communityRoutes.PUT("/posts/:id", postHandler.Update)
	communityRoutes.DELETE("/posts/:id", postHandler.Delete)
	communityRoutes.POST("/posts/:id/like", postHandler.ToggleLike)
	communityRoutes.POST("/posts/:id/bookmark", postHandler.ToggleBookmark)
	communityRoutes.POST("/posts/:id/comments", commentHandler.Create)
	communityRoutes.GET("/posts/:id/comments", commentHandler.ListForPost)
	communityRoutes.PUT("/comments/:id", commentHandler.Update)
	communityRoutes.DELETE("/comments/:id", commentHandler.Delete)

	// Knowledge domain
	knowledgeRoutes := router.NewDomainGroup("knowledge", "/knowledge")
	knowledgeRoutes.POST("/articles", articleHandler.Create)
	knowledgeRoutes.GET("/articles", articleHandler.Browse)
	knowledgeRoutes.GET("/articles/mine", articleHandler.ListMine)
	knowledgeRoutes.GET("/articles/:id", articleHandler.Read)
	knowledgeRoutes.PUT("/articles/:id", articleHandler.Update)
	knowledgeRoutes.DELETE("/articles/:id", articleHandler.Delete)
	knowledgeRoutes.POST("/articles/:id/publish", articleHandler.Publish)
	knowledgeRoutes.POST("/articles/:id/archive", articleHandler.Archive)

	// Gamification domain
	gamificationRoutes := router.NewDomainGroup("gamification", "/gamification")
	gamificationRoutes.GET("/missions", gamificationHandler.ListMissions)
	gamificationRoutes.GET("/missions/:id", gamificationHandler.GetMission)
	gamificationRoutes.POST("/missions/:id/start", gamificationHandler.StartMission)
	gamificationRoutes.POST("/missions/:id/steps", gamificationHandler.CompleteStep)
	gamificationRoutes.GET("/progress", gamificationHandler.ListProgress)
	gamificationRoutes.GET("/streak", gamificationHandler.GetStreak)
	gamificationRoutes.GET("/leaderboard", gamificationHandler.Leaderboard)
	gamificationRoutes.GET("/profile", gamificationHandler.Profile)

	// Voice capture
	voiceRoutes := router.NewDomainGroup("voice", "/voice")
	voiceRoutes.POST("/dispatch", voiceHandler.Dispatch)

	// Weather
	weatherRoutes := router.NewDomainGroup("weather", "/weather")
	weatherRoutes.GET("/forecast", weatherHandler.Forecast)

	// Media uploads
	mediaRoutes := router.NewDomainGroup("media", "/media")
	mediaRoutes.POST("/uploads", mediaHandler.RequestUpload)
	mediaRoutes.POST("/uploads/confirm", mediaHandler.ConfirmUpload)
	mediaRoutes.DELETE("/uploads", mediaHandler.Delete)
	mediaRoutes.GET("/downloads", mediaHandler.DownloadURL)

	// Notifications
	notificationRoutes := router.NewDomainGroup("notifications", "/notifications")
	notificationRoutes.GET("", notificationHandler.List)
	notificationRoutes.GET("/unread-count", notificationHandler.UnreadCount)
	notificationRoutes.POST("/:id/read", notificationHandler.MarkRead)

	r.Register(authRoutes).
		Register(farmRoutes).
		Register(financeRoutes).
		Register(marketRoutes).
		Register(communityRoutes).
		Register(knowledgeRoutes).
		Register(gamificationRoutes).
		Register(voiceRoutes).
		Register(weatherRoutes).
		Register(mediaRoutes).
		Register(notificationRoutes)

	r.Setup()

	// Simple ping at root API level for basic health checks
	engine.GET("/api/v1/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// healthHandler returns a handler for health check endpoints
func healthHandler(db *persistence.Database, _ *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLog := logger.GetGinLogger(c)
		if err := db.Ping(); err != nil {
			reqLog.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
