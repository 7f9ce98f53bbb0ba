package routes

import (
	"civicpulse-backend/internal/api/handlers"
	"civicpulse-backend/internal/api/middleware"
	"civicpulse-backend/internal/config"
	"civicpulse-backend/internal/repository"
	"civicpulse-backend/internal/services"
	"civicpulse-backend/internal/triage"
	"civicpulse-backend/internal/ws"
	"civicpulse-backend/pkg/cache"
	"civicpulse-backend/pkg/jwt"
	"civicpulse-backend/pkg/ratelimit"
	"civicpulse-backend/pkg/redis"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
)

// Dependencies carries the shared infrastructure the route tree needs.
type Dependencies struct {
	DB        *mongo.Database
	Redis     *redis.Client
	WSManager *ws.Manager
	JWTUtil   *jwt.JWTUtil
	Notifier  services.Notifier
	Config    *config.Config
}

func SetupRoutes(router *gin.Engine, deps Dependencies) {
	// Repositories
	userRepo := repository.NewUserRepository(deps.DB)
	complaintRepo := repository.NewComplaintRepository(deps.DB)
	binRepo := repository.NewBinRepository(deps.DB)
	toiletRepo := repository.NewToiletRepository(deps.DB)
	reviewRepo := repository.NewReviewRepository(deps.DB)
	eventRepo := repository.NewEventRepository(deps.DB)
	alertRepo := repository.NewAlertRepository(deps.DB)
	messageRepo := repository.NewMessageRepository(deps.DB)

	// Services
	classifier := triage.NewClassifier(triage.DefaultTable())
	authService := services.NewAuthService(userRepo, deps.JWTUtil)
	userService := services.NewUserService(userRepo)
	complaintService := services.NewComplaintService(complaintRepo, userRepo, classifier, deps.Notifier)
	binService := services.NewBinService(binRepo, deps.WSManager)
	toiletService := services.NewToiletService(toiletRepo, reviewRepo, userRepo)
	eventService := services.NewEventService(eventRepo, userRepo)
	alertService := services.NewAlertService(alertRepo)
	messageService := services.NewMessageService(messageRepo, complaintRepo, userRepo)
	leaderboardService := services.NewLeaderboardService(userRepo, cache.New(deps.Redis.GetClient(), "civicpulse:"))
	analyticsService := services.NewAnalyticsService(complaintRepo, userRepo, toiletRepo, binRepo)
	chatService := services.NewChatService(deps.Config.Chat.APIURL, deps.Config.Chat.APIKey, deps.Config.Chat.Model)

	limiter := ratelimit.NewDailyLimiter(deps.Redis.GetClient(), deps.Config.ComplaintDailyLimit, "civicpulse:ratelimit:")

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	complaintHandler := handlers.NewComplaintHandler(complaintService)
	triageHandler := handlers.NewTriageHandler(classifier)
	binHandler := handlers.NewBinHandler(binService)
	binFeedHandler := handlers.NewBinWebSocketHandler(deps.WSManager)
	toiletHandler := handlers.NewToiletHandler(toiletService)
	eventHandler := handlers.NewEventHandler(eventService)
	alertHandler := handlers.NewAlertHandler(alertService)
	messageHandler := handlers.NewMessageHandler(messageService)
	leaderboardHandler := handlers.NewLeaderboardHandler(leaderboardService)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService)
	chatHandler := handlers.NewChatHandler(chatService)
	healthHandler := handlers.NewHealthHandler(deps.DB, deps.Redis)

	api := router.Group("/api/v1")

	// Public routes
	api.GET("/health", healthHandler.HealthCheck)
	api.POST("/triage", triageHandler.Analyze)
	api.POST("/chat", chatHandler.Chat)
	api.GET("/leaderboard", leaderboardHandler.GetLeaderboard)

	auth := api.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
	}

	// Websocket bin feed for dashboards
	router.GET("/ws/bins", binFeedHandler.HandleBinFeed)

	// Protected routes
	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware(deps.JWTUtil))
	{
		protected.GET("/auth/profile", authHandler.GetProfile)

		complaints := protected.Group("/complaints")
		{
			complaints.GET("", complaintHandler.GetComplaints)
			complaints.POST("", middleware.DailyLimitMiddleware(limiter), complaintHandler.CreateComplaint)
			complaints.GET("/:id", complaintHandler.GetComplaint)
			complaints.PATCH("/:id/status", middleware.RequireRoles("official", "admin"), complaintHandler.UpdateComplaintStatus)
			complaints.GET("/:id/messages", messageHandler.GetThread)
			complaints.POST("/:id/messages", messageHandler.PostMessage)
		}

		bins := protected.Group("/bins")
		{
			bins.GET("", binHandler.GetBins)
			bins.POST("", middleware.RequireRoles("official", "admin"), binHandler.CreateBin)
			bins.PATCH("/:id/empty", middleware.RequireRoles("official", "admin"), binHandler.EmptyBin)
			bins.GET("/feed/stats", middleware.RequireRoles("admin"), binFeedHandler.GetFeedStats)
		}

		toilets := protected.Group("/toilets")
		{
			toilets.GET("", toiletHandler.GetToilets)
			toilets.POST("", middleware.RequireRoles("official", "admin"), toiletHandler.CreateToilet)
			toilets.GET("/:id", toiletHandler.GetToilet)
			toilets.GET("/:id/reviews", toiletHandler.GetReviews)
			toilets.POST("/:id/reviews", toiletHandler.CreateReview)
		}

		events := protected.Group("/events")
		{
			events.GET("", eventHandler.GetEvents)
			events.POST("", middleware.RequireRoles("official", "admin"), eventHandler.CreateEvent)
			events.POST("/:id/join", eventHandler.JoinEvent)
		}

		alerts := protected.Group("/alerts")
		{
			alerts.GET("", alertHandler.GetActiveAlerts)
			alerts.POST("", middleware.RequireRoles("admin"), alertHandler.CreateAlert)
		}

		users := protected.Group("/users")
		users.Use(middleware.RequireRoles("admin"))
		{
			users.GET("", userHandler.GetUsers)
			users.GET("/:id", userHandler.GetUser)
		}

		analytics := protected.Group("/analytics")
		analytics.Use(middleware.RequireRoles("official", "admin"))
		{
			analytics.GET("/dashboard", analyticsHandler.GetDashboard)
			analytics.GET("/categories", analyticsHandler.GetCategoryBreakdown)
			analytics.GET("/trend", analyticsHandler.GetWeeklyTrend)
		}
	}
}
