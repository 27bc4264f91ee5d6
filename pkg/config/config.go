package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const defaultAPIURL = "http://localhost:8080/api"

type APIConfig struct {
	// BaseURL is read from NEXT_PUBLIC_API_URL so the console and this client share one setting.
	BaseURL string
	// Timeout of zero leaves the transport default in place.
	Timeout time.Duration
}

type StorageConfig struct {
	Driver   string
	FilePath string
}

type RedisConfig struct {
	Address  string
	Password string
	DB       int
	Prefix   string
}

type JWTConfig struct {
	SecretKey      string
	AccessTokenTTL time.Duration
}

type ServerConfig struct {
	Port string
}

type LogConfig struct {
	Level string
}

type Config struct {
	API     APIConfig
	Storage StorageConfig
	Redis   RedisConfig
	JWT     JWTConfig
	Server  ServerConfig
	Log     LogConfig
}

func New() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("warning: .env file not found or could not be loaded")
	}
	return FromEnv()
}

// FromEnv builds the config from the process environment only.
func FromEnv() *Config {
	return &Config{
		API: APIConfig{
			BaseURL: getEnv("NEXT_PUBLIC_API_URL", defaultAPIURL),
			Timeout: getDuration("API_TIMEOUT", 0),
		},
		Storage: StorageConfig{
			Driver:   getEnv("STORAGE_DRIVER", "file"),
			FilePath: getEnv("STORAGE_FILE", defaultStorageFile()),
		},
		Redis: RedisConfig{
			Address:  getEnv("REDIS_ADDRESS", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getInt("REDIS_DB", 0),
			Prefix:   getEnv("REDIS_PREFIX", "console:session:"),
		},
		JWT: JWTConfig{
			SecretKey:      getEnv("JWT_SECRET_KEY", "dev-secret-change-me"),
			AccessTokenTTL: time.Hour * 24,
		},
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8080"),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}
}

func defaultStorageFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "cleaning-console", "session.json")
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) int {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("warning: %s=%q is not an integer, using %d", key, value, fallback)
		return fallback
	}
	return n
}

func getDuration(key string, fallback time.Duration) time.Duration {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("warning: %s=%q is not a duration, using %s", key, value, fallback)
		return fallback
	}
	return d
}
