package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const defaultJWTSecret = "stockhaus-secret"

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Auth      AuthConfig
	Storage   StorageConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
	Jobs      JobsConfig
	App       AppConfig
}

type ServerConfig struct {
	Port            string
	CORSOrigins     []string
	BodyLimitBytes  int64
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

type DatabaseConfig struct {
	DSN      string
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	MaxConns int
	MinConns int
}

// ConnString returns DB_DSN when set, otherwise a URL built from the DB_* parts.
func (c DatabaseConfig) ConnString() string {
	if c.DSN != "" {
		return c.DSN
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.Name,
		RawQuery: "sslmode=" + c.SSLMode,
	}
	return u.String()
}

type AuthConfig struct {
	JWTSecret        string
	TokenTTL         time.Duration
	Users            []Credential
	BcryptCost       int
	LoginMaxAttempts int
	LoginWindow      time.Duration
}

// Credential is one AUTH_USERS entry. Password is plaintext or a bcrypt hash.
type Credential struct {
	Username string
	Password string
}

type StorageConfig struct {
	Driver    string
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
	PublicURL string
	UseSSL    bool
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
}

type JobsConfig struct {
	ReconcileSchedule string
}

type AppConfig struct {
	Environment string
	LogLevel    string
	Version     string
}

func (a AppConfig) IsProduction() bool {
	return a.Environment == "production"
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	users, err := ParseCredentials(getEnv("AUTH_USERS", ""))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", getEnv("API_PORT", "4000")),
			CORSOrigins:     splitList(getEnv("CORS_ORIGIN", "http://localhost:5173")),
			BodyLimitBytes:  int64(getEnvAsInt("BODY_LIMIT_MB", 20)) << 20,
			ReadTimeout:     getEnvAsDuration("HTTP_READ_TIMEOUT", 30*time.Second),
			WriteTimeout:    getEnvAsDuration("HTTP_WRITE_TIMEOUT", 60*time.Second),
			ShutdownTimeout: getEnvAsDuration("HTTP_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Database: DatabaseConfig{
			DSN:      getEnv("DB_DSN", ""),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "stockhaus"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			MaxConns: getEnvAsInt("DB_MAX_CONNS", 10),
			MinConns: getEnvAsInt("DB_MIN_CONNS", 2),
		},
		Auth: AuthConfig{
			JWTSecret:        getEnv("JWT_SECRET", defaultJWTSecret),
			TokenTTL:         getEnvAsDuration("JWT_TTL", 12*time.Hour),
			Users:            users,
			BcryptCost:       getEnvAsInt("BCRYPT_COST", 10),
			LoginMaxAttempts: getEnvAsInt("LOGIN_MAX_ATTEMPTS", 5),
			LoginWindow:      getEnvAsDuration("LOGIN_WINDOW", 15*time.Minute),
		},
		Storage: StorageConfig{
			Driver:    strings.ToLower(getEnv("STORAGE_DRIVER", "minio")),
			Endpoint:  getEnv("STORAGE_ENDPOINT", "localhost:9000"),
			Region:    getEnv("STORAGE_REGION", "us-east-1"),
			AccessKey: getEnv("STORAGE_ACCESS_KEY", ""),
			SecretKey: getEnv("STORAGE_SECRET_KEY", ""),
			Bucket:    getEnv("STORAGE_BUCKET", "paintings"),
			PublicURL: strings.TrimRight(getEnv("STORAGE_PUBLIC_URL", "http://localhost:9000"), "/"),
			UseSSL:    getEnvAsBool("STORAGE_USE_SSL", false),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: getEnvAsFloat("RATE_LIMIT_RPS", 20),
			Burst:             getEnvAsInt("RATE_LIMIT_BURST", 40),
		},
		Jobs: JobsConfig{
			ReconcileSchedule: getEnv("JOBS_RECONCILE_SCHEDULE", "0 0 3 * * *"),
		},
		App: AppConfig{
			Environment: getEnv("APP_ENV", "development"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	if c.Database.DSN == "" && c.Database.Host == "" {
		return fmt.Errorf("DB_DSN or DB_HOST is required")
	}

	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.App.IsProduction() && c.Auth.JWTSecret == defaultJWTSecret {
		return fmt.Errorf("JWT_SECRET must be set in production")
	}
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be positive")
	}
	if len(c.Auth.Users) == 0 {
		return fmt.Errorf("AUTH_USERS must contain at least one user")
	}

	switch c.Storage.Driver {
	case "minio", "s3":
	default:
		return fmt.Errorf("STORAGE_DRIVER must be one of minio, s3: got %q", c.Storage.Driver)
	}
	if c.Storage.Bucket == "" {
		return fmt.Errorf("STORAGE_BUCKET is required")
	}

	return nil
}

// ParseCredentials parses "user1:pass1,user2:pass2". Only the first colon
// separates the username, so passwords and bcrypt hashes may contain colons.
func ParseCredentials(raw string) ([]Credential, error) {
	var out []Credential
	seen := make(map[string]struct{})
	for _, entry := range strings.Split(raw, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		username, password, ok := strings.Cut(entry, ":")
		username = strings.TrimSpace(username)
		if !ok || username == "" || password == "" {
			return nil, fmt.Errorf("AUTH_USERS: malformed entry %q", username)
		}
		// users resolve to identities case-insensitively, so Alice and alice collide
		key := strings.ToLower(username)
		if _, dup := seen[key]; dup {
			return nil, fmt.Errorf("AUTH_USERS: duplicate user %q", username)
		}
		seen[key] = struct{}{}
		out = append(out, Credential{Username: username, Password: password})
	}
	return out, nil
}

func splitList(raw string) []string {
	var out []string
	for _, v := range strings.Split(raw, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer for %s, using default: %d", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		log.Printf("Warning: Invalid number for %s, using default: %v", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid duration for %s, using default: %s", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid boolean for %s, using default: %t", key, defaultValue)
		return defaultValue
	}

	return value
}
