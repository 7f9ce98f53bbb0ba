package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port           string
	MongoURI       string
	JWTSecret      string
	JWTExpiry      string
	AllowedOrigins []string

	Redis     RedisConfig
	Simulator SimulatorConfig
	Email     EmailConfig
	SMS       SMSConfig
	Chat      ChatConfig

	// SystemActorEmail identifies the account that sensor-filed complaints
	// are attributed to. Resolved once at startup.
	SystemActorEmail string

	// ComplaintDailyLimit caps complaint submissions per citizen per day.
	ComplaintDailyLimit int
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type SimulatorConfig struct {
	Enabled     bool
	Interval    time.Duration
	BinsPerTick int
}

type EmailConfig struct {
	SMTPHost  string
	SMTPPort  string
	Username  string
	Password  string
	FromEmail string
	FromName  string
	AppURL    string
}

type SMSConfig struct {
	APIURL  string
	APIHost string
	APIKey  string
	Sender  string
}

type ChatConfig struct {
	APIURL string
	APIKey string
	Model  string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		log.Fatal("MONGO_URI environment variable is not set")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	if allowedOrigins == "" {
		allowedOrigins = "http://localhost:5173"
	}

	systemActor := os.Getenv("SYSTEM_ACTOR_EMAIL")
	if systemActor == "" {
		systemActor = "system@civicpulse.local"
	}

	return &Config{
		Port:             port,
		MongoURI:         mongoURI,
		JWTSecret:        os.Getenv("JWT_SECRET"),
		JWTExpiry:        os.Getenv("JWT_EXPIRY"),
		AllowedOrigins:   strings.Split(allowedOrigins, ","),
		SystemActorEmail: systemActor,
		ComplaintDailyLimit: envInt("COMPLAINT_DAILY_LIMIT", 10),
		Redis: RedisConfig{
			Addr:     envDefault("REDIS_ADDR", "localhost:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       envInt("REDIS_DB", 0),
		},
		Simulator: SimulatorConfig{
			Enabled:     envDefault("SIMULATOR_ENABLED", "true") == "true",
			Interval:    envDuration("SIMULATOR_INTERVAL", 30*time.Second),
			BinsPerTick: envInt("SIMULATOR_BINS_PER_TICK", 3),
		},
		Email: EmailConfig{
			SMTPHost:  os.Getenv("SMTP_HOST"),
			SMTPPort:  envDefault("SMTP_PORT", "587"),
			Username:  os.Getenv("SMTP_USERNAME"),
			Password:  os.Getenv("SMTP_PASSWORD"),
			FromEmail: envDefault("EMAIL_FROM", "noreply@civicpulse.local"),
			FromName:  envDefault("EMAIL_FROM_NAME", "CivicPulse"),
			AppURL:    envDefault("APP_URL", "http://localhost:5173"),
		},
		SMS: SMSConfig{
			APIURL:  os.Getenv("SMS_API_URL"),
			APIHost: os.Getenv("SMS_API_HOST"),
			APIKey:  os.Getenv("SMS_API_KEY"),
			Sender:  envDefault("SMS_SENDER", "CivicPulse"),
		},
		Chat: ChatConfig{
			APIURL: os.Getenv("CHAT_API_URL"),
			APIKey: os.Getenv("CHAT_API_KEY"),
			Model:  envDefault("CHAT_MODEL", "gemini-2.5-flash"),
		},
	}
}

func envDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("Invalid value for %s: %q, using %d", key, v, fallback)
		return fallback
	}
	return n
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("Invalid value for %s: %q, using %v", key, v, fallback)
		return fallback
	}
	return d
}
