package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration for both portfolio services.
type Config struct {
	Server    ServerConfig
	Store     StoreConfig
	Uploads   UploadsConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Admin     AdminConfig
	RateLimit RateLimitConfig
	Assistant AssistantConfig
	CORS      CORSConfig
}

type ServerConfig struct {
	Port         string
	Host         string
	Environment  string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// StoreConfig selects the portfolio document backend. The file paths are
// always set; MongoURI switches persistence to MongoDB when non-empty.
type StoreConfig struct {
	DataFile     string
	UsersFile    string
	MongoURI     string
	MongoDB      string
	MongoTimeout time.Duration
}

type UploadsConfig struct {
	Dir          string
	PublicPrefix string
	MaxBytes     int64
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret         string
	AccessTokenTTL time.Duration
}

// AdminConfig seeds the single admin account on first startup.
type AdminConfig struct {
	Username string
	Email    string
	Password string
}

type RateLimitConfig struct {
	Enabled       bool
	UseRedis      bool
	RPS           float64
	Burst         int
	WindowSeconds int
}

type AssistantConfig struct {
	APIKey     string
	Model      string
	ResumeFile string
	OwnerName  string
}

type CORSConfig struct {
	Origins []string
}

// LoadConfig loads configuration from environment variables and .env file
func LoadConfig() (*Config, error) {
	_ = godotenv.Load(".env")

	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", "3001")
	viper.SetDefault("SERVER_HOST", "0.0.0.0")
	viper.SetDefault("SERVER_ENVIRONMENT", "development")
	viper.SetDefault("DATA_FILE", "data/portfolio-data.json")
	viper.SetDefault("USERS_FILE", "data/users.json")
	viper.SetDefault("UPLOADS_DIR", "uploads")
	viper.SetDefault("UPLOADS_MAX_MB", 5)
	viper.SetDefault("MONGODB_TIMEOUT", 10)
	viper.SetDefault("MONGODB_DATABASE", "portfolio")
	viper.SetDefault("JWT_ACCESS_TOKEN_TTL", 1440)
	viper.SetDefault("ADMIN_USERNAME", "admin")
	viper.SetDefault("ADMIN_EMAIL", "samuveljohnson1417@gmail.com")
	viper.SetDefault("RATE_LIMIT_RPS", 10.0)
	viper.SetDefault("RATE_LIMIT_BURST", 20)
	viper.SetDefault("RATE_LIMIT_WINDOW_SECONDS", 60)
	viper.SetDefault("GEMINI_MODEL", "gemini-1.5-flash-001")
	viper.SetDefault("RESUME_FILE", "data/resume.json")
	viper.SetDefault("ASSISTANT_OWNER", "Samuvel Johnson")

	cfg := &Config{
		Server: ServerConfig{
			Port:         viper.GetString("SERVER_PORT"),
			Host:         viper.GetString("SERVER_HOST"),
			Environment:  viper.GetString("SERVER_ENVIRONMENT"),
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		Store: StoreConfig{
			DataFile:     viper.GetString("DATA_FILE"),
			UsersFile:    viper.GetString("USERS_FILE"),
			MongoURI:     viper.GetString("MONGODB_URI"),
			MongoDB:      viper.GetString("MONGODB_DATABASE"),
			MongoTimeout: time.Duration(viper.GetInt("MONGODB_TIMEOUT")) * time.Second,
		},
		Uploads: UploadsConfig{
			Dir:          viper.GetString("UPLOADS_DIR"),
			PublicPrefix: "/uploads",
			MaxBytes:     viper.GetInt64("UPLOADS_MAX_MB") << 20,
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       0,
		},
		JWT: JWTConfig{
			Secret:         os.Getenv("JWT_SECRET"),
			AccessTokenTTL: time.Duration(viper.GetInt("JWT_ACCESS_TOKEN_TTL")) * time.Minute,
		},
		Admin: AdminConfig{
			Username: viper.GetString("ADMIN_USERNAME"),
			Email:    viper.GetString("ADMIN_EMAIL"),
			Password: os.Getenv("ADMIN_PASSWORD"),
		},
		RateLimit: RateLimitConfig{
			Enabled:       viper.GetBool("RATE_LIMIT_ENABLED"),
			UseRedis:      viper.GetBool("RATE_LIMIT_USE_REDIS"),
			RPS:           viper.GetFloat64("RATE_LIMIT_RPS"),
			Burst:         viper.GetInt("RATE_LIMIT_BURST"),
			WindowSeconds: viper.GetInt("RATE_LIMIT_WINDOW_SECONDS"),
		},
		Assistant: AssistantConfig{
			APIKey:     os.Getenv("GEMINI_API_KEY"),
			Model:      viper.GetString("GEMINI_MODEL"),
			ResumeFile: viper.GetString("RESUME_FILE"),
			OwnerName:  viper.GetString("ASSISTANT_OWNER"),
		},
		CORS: CORSConfig{
			Origins: viper.GetStringSlice("CORS_ORIGINS"),
		},
	}

	// Insecure fallbacks kept from the original deployment; warn loudly.
	if cfg.JWT.Secret == "" {
		log.Println("WARNING: JWT_SECRET is not set; using an insecure default; set a secure value in production")
		cfg.JWT.Secret = "your-super-secret-jwt-key-change-in-production"
	}
	if cfg.Admin.Password == "" {
		log.Println("WARNING: ADMIN_PASSWORD is not set; using an insecure default; set a secure value in production")
		cfg.Admin.Password = "admin123"
	}

	return cfg, nil
}
