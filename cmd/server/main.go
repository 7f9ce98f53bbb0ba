package main

import (
	"log"
	"time"

	"civicpulse-backend/internal/api/routes"
	"civicpulse-backend/internal/config"
	"civicpulse-backend/internal/models"
	"civicpulse-backend/internal/repository"
	"civicpulse-backend/internal/services"
	"civicpulse-backend/internal/simulator"
	"civicpulse-backend/internal/ws"
	"civicpulse-backend/pkg/database"
	"civicpulse-backend/pkg/email"
	"civicpulse-backend/pkg/jwt"
	"civicpulse-backend/pkg/redis"
	"civicpulse-backend/pkg/sms"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Connect to MongoDB
	db, err := database.Connect(cfg.MongoURI)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer database.Disconnect(db.Client())

	// Initialize Redis client
	redisClient := redis.NewClient(cfg.Redis)
	defer redisClient.Close()

	healthStatus := redisClient.HealthCheck()
	if healthStatus.IsConnected {
		log.Printf("Redis connected successfully at %s", healthStatus.ConnectionInfo)
	} else {
		log.Printf("Redis connection failed: %s (will retry automatically)", healthStatus.Error)
	}

	jwtExpiry, err := time.ParseDuration(cfg.JWTExpiry)
	if err != nil {
		jwtExpiry = 24 * time.Hour
	}
	jwtUtil := jwt.NewJWTUtil(cfg.JWTSecret, jwtExpiry)

	// Websocket bin feed
	wsManager := ws.NewManager()
	if err := wsManager.Start(); err != nil {
		log.Fatal("Failed to start websocket manager:", err)
	}
	defer wsManager.Stop()

	// Notification worker
	userRepo := repository.NewUserRepository(db)
	emailService := email.NewEmailService(
		cfg.Email.SMTPHost,
		cfg.Email.SMTPPort,
		cfg.Email.Username,
		cfg.Email.Password,
		cfg.Email.FromEmail,
		cfg.Email.FromName,
		cfg.Email.AppURL,
	)
	smsService := sms.NewSMSService(cfg.SMS.APIKey, cfg.SMS.APIHost, cfg.SMS.APIURL, cfg.SMS.Sender)
	notifier := services.NewNotificationService(userRepo, emailService, smsService)
	notifier.Start()
	defer notifier.Stop()

	// Bin overflow simulator
	if cfg.Simulator.Enabled {
		systemActorID, err := resolveSystemActor(userRepo, cfg.SystemActorEmail)
		if err != nil {
			log.Printf("Simulator disabled, could not resolve system actor %s: %v", cfg.SystemActorEmail, err)
		} else {
			binRepo := repository.NewBinRepository(db)
			complaintRepo := repository.NewComplaintRepository(db)
			sim := simulator.New(binRepo, complaintRepo, wsManager, systemActorID, cfg.Simulator.Interval, cfg.Simulator.BinsPerTick)
			sim.Start()
			defer sim.Stop()
		}
	}

	// Setup Gin router
	router := gin.Default()

	corsConfig := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", "Upgrade", "Connection", "Sec-WebSocket-Key", "Sec-WebSocket-Version", "Sec-WebSocket-Protocol"},
		ExposeHeaders: []string{"Content-Length"},
	}

	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsConfig.AllowAllOrigins = true
		corsConfig.AllowCredentials = false
	} else {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
		corsConfig.AllowCredentials = true
	}

	router.Use(cors.New(corsConfig))

	routes.SetupRoutes(router, routes.Dependencies{
		DB:        db,
		Redis:     redisClient,
		WSManager: wsManager,
		JWTUtil:   jwtUtil,
		Notifier:  notifier,
		Config:    cfg,
	})

	log.Printf("Server starting on port %s", cfg.Port)
	log.Fatal(router.Run(":" + cfg.Port))
}

// resolveSystemActor looks up the account sensor-filed complaints are
// attributed to, provisioning it on first run. The account has no usable
// password, so it cannot log in.
func resolveSystemActor(userRepo *repository.UserRepository, email string) (primitive.ObjectID, error) {
	user, err := userRepo.FindByEmail(email)
	if err == nil {
		return user.ID, nil
	}

	created, err := userRepo.Create(&models.User{
		Name:       "CivicPulse System",
		Email:      email,
		Role:       "admin",
		Department: "None",
		Badges:     []string{},
	})
	if err != nil {
		return primitive.NilObjectID, err
	}

	log.Printf("Provisioned system actor account %s", email)
	return created.ID, nil
}
