package config

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Port    string
	GinMode string

	DatabaseURL string
	DBHost      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBPort      string
	DBSSLMode   string
	DBLogSQL    bool

	JWTSecret       string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration

	AI      AIConfig
	Storage R2Config

	SeedAdminEmail    string
	SeedAdminPassword string
	SeedAdminName     string
}

type AIConfig struct {
	APIKey string
	Model  string
	// Endpoint overrides the SDK's base URL; empty keeps the default.
	Endpoint string
	UseADC   bool
	Project  string
	Location string
	Timeout  time.Duration
	CacheDir string
	CacheTTL time.Duration
}

// Enabled reports whether any credential for the generative service is configured.
func (c AIConfig) Enabled() bool {
	return c.APIKey != "" || c.UseADC
}

type R2Config struct {
	AccountID       string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	PublicURL       string
	Endpoint        string
	Region          string
	PresignExpiry   time.Duration
}

// Enabled reports whether evidence uploads can be served.
func (c R2Config) Enabled() bool {
	return c.BucketName != "" && c.AccessKeyID != "" && c.SecretAccessKey != "" &&
		(c.AccountID != "" || c.Endpoint != "")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("GIN_MODE", "debug")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_NAME", "freshcheck")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_LOG_SQL", false)
	v.SetDefault("ACCESS_TOKEN_TTL", "24h")
	v.SetDefault("REFRESH_TOKEN_TTL", "720h")
	v.SetDefault("AI_MODEL", "gemini-2.5-flash")
	v.SetDefault("AI_LOCATION", "us-central1")
	v.SetDefault("AI_USE_ADC", false)
	v.SetDefault("AI_TIMEOUT", "20s")
	v.SetDefault("AI_CACHE_TTL", "168h")
	v.SetDefault("R2_REGION", "auto")
	v.SetDefault("R2_PRESIGN_EXPIRY", "15m")
	v.SetDefault("SEED_ADMIN_EMAIL", "admin@freshcheck.com")
	v.SetDefault("SEED_ADMIN_NAME", "System Administrator")
}

// Load reads the given env files (default .env) when present, then the process
// environment. Variables already set in the environment win.
func Load(files ...string) (*Config, error) {
	if err := godotenv.Load(files...); err != nil {
		if len(files) > 0 {
			return nil, fmt.Errorf("load env file: %w", err)
		}
		log.Println("No .env file found, using environment variables")
	}

	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	setDefaults(v)

	return fromViper(v), nil
}

func fromViper(v *viper.Viper) *Config {
	apiKey := v.GetString("GEMINI_API_KEY")
	if apiKey == "" {
		apiKey = v.GetString("AI_API_KEY")
	}

	return &Config{
		Port:    v.GetString("PORT"),
		GinMode: v.GetString("GIN_MODE"),

		DatabaseURL: v.GetString("DATABASE_URL"),
		DBHost:      v.GetString("DB_HOST"),
		DBUser:      v.GetString("DB_USER"),
		DBPassword:  v.GetString("DB_PASSWORD"),
		DBName:      v.GetString("DB_NAME"),
		DBPort:      v.GetString("DB_PORT"),
		DBSSLMode:   v.GetString("DB_SSLMODE"),
		DBLogSQL:    v.GetBool("DB_LOG_SQL"),

		JWTSecret:       v.GetString("JWT_SECRET"),
		AccessTokenTTL:  v.GetDuration("ACCESS_TOKEN_TTL"),
		RefreshTokenTTL: v.GetDuration("REFRESH_TOKEN_TTL"),

		AI: AIConfig{
			APIKey:   apiKey,
			Model:    v.GetString("AI_MODEL"),
			Endpoint: v.GetString("AI_ENDPOINT"),
			UseADC:   v.GetBool("AI_USE_ADC"),
			Project:  v.GetString("AI_PROJECT"),
			Location: v.GetString("AI_LOCATION"),
			Timeout:  v.GetDuration("AI_TIMEOUT"),
			CacheDir: v.GetString("AI_CACHE_DIR"),
			CacheTTL: v.GetDuration("AI_CACHE_TTL"),
		},
		Storage: R2Config{
			AccountID:       v.GetString("R2_ACCOUNT_ID"),
			AccessKeyID:     v.GetString("R2_ACCESS_KEY_ID"),
			SecretAccessKey: v.GetString("R2_SECRET_ACCESS_KEY"),
			BucketName:      v.GetString("R2_BUCKET_NAME"),
			PublicURL:       v.GetString("R2_PUBLIC_URL"),
			Endpoint:        v.GetString("R2_ENDPOINT"),
			Region:          v.GetString("R2_REGION"),
			PresignExpiry:   v.GetDuration("R2_PRESIGN_EXPIRY"),
		},

		SeedAdminEmail:    v.GetString("SEED_ADMIN_EMAIL"),
		SeedAdminPassword: v.GetString("SEED_ADMIN_PASSWORD"),
		SeedAdminName:     v.GetString("SEED_ADMIN_NAME"),
	}
}

// DSN returns DATABASE_URL when set, otherwise a key/value DSN built from DB_*.
func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	dsn := fmt.Sprintf("host=%s user=%s dbname=%s port=%s sslmode=%s",
		c.DBHost, c.DBUser, c.DBName, c.DBPort, c.DBSSLMode)
	if c.DBPassword != "" {
		dsn += fmt.Sprintf(" password=%s", c.DBPassword)
	}
	return dsn
}

// ValidateServe checks the settings the HTTP server cannot run without.
func (c *Config) ValidateServe() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if len(c.JWTSecret) < 16 {
		return errors.New("JWT_SECRET must be at least 16 characters")
	}
	if c.AccessTokenTTL <= 0 || c.RefreshTokenTTL <= 0 {
		return errors.New("token TTLs must be positive")
	}
	return nil
}
