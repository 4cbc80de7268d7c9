package config

import (
	"os"
	"strconv"
	"strings"

	"earn_webapp/internal/logger"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort     string
	AppVersion  string
	DatabaseURL string
	JWTSecret   string

	// Shared secret every affiliate network must echo in ?secret=
	PostbackSecret string
	// JSON campaign catalog; the built-in catalog is used when empty
	CampaignsFile string
	// Reject unknown cid values instead of falling back to the first campaign
	StrictCampaignResolution bool

	// Telegram notifications
	BotToken      string
	NotifyChatID  int64
	NotifyEnabled bool

	// Redis for postback rate limiting (optional)
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	PostbackRateLimit  int
	PostbackRateWindow int

	LogLevel string
	LogJSON  bool
}

// Загрузка конфига из env
func Load() *Config {
	_ = godotenv.Load()

	logger.Init(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_JSON") == "true")

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		logger.Fatal("DATABASE_URL is not set")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		logger.Fatal("JWT_SECRET is not set")
	}

	postbackSecret := os.Getenv("POSTBACK_SECRET")
	if postbackSecret == "" {
		logger.Fatal("POSTBACK_SECRET is not set")
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	version := os.Getenv("APP_VERSION")
	if version == "" {
		version = "dev"
	}

	var notifyChatID int64
	if v := strings.TrimSpace(os.Getenv("NOTIFY_CHAT_ID")); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			notifyChatID = id
		} else {
			logger.Warn("ignoring invalid NOTIFY_CHAT_ID", "value", v)
		}
	}

	botToken := os.Getenv("BOT_TOKEN")
	// notifications default on whenever a bot token is configured
	notifyEnabled := botToken != ""
	if v := os.Getenv("NOTIFY_ENABLED"); v != "" {
		notifyEnabled = v == "true" && botToken != ""
	}

	return &Config{
		AppPort:                  port,
		AppVersion:               version,
		DatabaseURL:              dbURL,
		JWTSecret:                jwtSecret,
		PostbackSecret:           postbackSecret,
		CampaignsFile:            os.Getenv("CAMPAIGNS_FILE"),
		StrictCampaignResolution: os.Getenv("STRICT_CAMPAIGN_RESOLUTION") == "true",
		BotToken:                 botToken,
		NotifyChatID:             notifyChatID,
		NotifyEnabled:            notifyEnabled,
		RedisAddr:                os.Getenv("REDIS_ADDR"),
		RedisPassword:            os.Getenv("REDIS_PASSWORD"),
		RedisDB:                  envInt("REDIS_DB", 0),
		PostbackRateLimit:        envInt("POSTBACK_RATE_LIMIT", 120), // запросов за окно
		PostbackRateWindow:       envInt("POSTBACK_RATE_WINDOW_SECONDS", 60),
		LogLevel:                 os.Getenv("LOG_LEVEL"),
		LogJSON:                  os.Getenv("LOG_JSON") == "true",
	}
}

// envInt reads a non-negative integer, falling back to def on absence or garbage.
func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return def
	}
	return n
}
