package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"prompt-app/internal/logger"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// AppConfig holds all application configuration
type AppConfig struct {
	Server  ServerConfig
	Storage StorageConfig
	LLM     LLMConfig
	Auth    AuthConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port string
}

// StorageConfig holds the flat-file storage layout
type StorageConfig struct {
	DataDir         string
	HistoryDir      string
	AnalyticsFile   string
	UsersFile       string
	ActivityLogFile string
}

// LLMConfig holds OpenRouter provider configuration
type LLMConfig struct {
	APIKeys             []string
	DefaultSystemPrompt string
	MaxTokens           int
	Temperature         float64
	RequestTimeout      time.Duration
}

// AuthConfig holds authentication configuration
type AuthConfig struct {
	JWTSecret       []byte
	TokenExpiration time.Duration
}

// apiKeyPrefix is the prefix OpenRouter keys are expected to carry.
const apiKeyPrefix = "sk-or-v1-"

// LoadConfig loads and validates application configuration from environment
func LoadConfig() (*AppConfig, error) {
	// Local .env is optional; real deployments set the environment directly
	if err := godotenv.Load(); err == nil {
		logger.Log.Debug("Loaded configuration from .env file")
	}

	config := &AppConfig{}

	// Load Server config
	config.Server = ServerConfig{
		Port: getEnvOrDefault("SERVER_PORT", "8080"),
	}

	// Load Storage config
	dataDir := getEnvOrDefault("DATA_DIR", "data")
	config.Storage = StorageConfig{
		DataDir:         dataDir,
		HistoryDir:      filepath.Join(dataDir, "conversation_history"),
		AnalyticsFile:   filepath.Join(dataDir, "analytics_data.json"),
		UsersFile:       filepath.Join(dataDir, "users.csv"),
		ActivityLogFile: filepath.Join(dataDir, "user_log.csv"),
	}

	// Load LLM config
	apiKeys := loadAPIKeys()
	if len(apiKeys) == 0 {
		logger.Log.Warn("No OPENROUTER_API_KEY_N environment variables set")
	}

	config.LLM = LLMConfig{
		APIKeys:             apiKeys,
		DefaultSystemPrompt: getEnvOrDefault("OPENROUTER_SYSTEM_PROMPT", "You are a helpful assistant."),
		MaxTokens:           getEnvAsInt("OPENROUTER_MAX_TOKENS", 4000),
		Temperature:         getEnvAsFloat("OPENROUTER_TEMPERATURE", 0.9),
		RequestTimeout:      getEnvAsDuration("OPENROUTER_REQUEST_TIMEOUT", 30*time.Second),
	}

	// Load Auth config
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable must be set")
	}
	if len(jwtSecret) < 32 {
		return nil, fmt.Errorf("JWT_SECRET must be at least 32 characters (current length: %d)", len(jwtSecret))
	}

	config.Auth = AuthConfig{
		JWTSecret:       []byte(jwtSecret),
		TokenExpiration: getEnvAsDuration("JWT_TOKEN_EXPIRATION", 24*time.Hour),
	}

	return config, nil
}

// loadAPIKeys reads the OpenRouter key pool from OPENROUTER_API_KEY_1..4,
// skipping keys that do not carry the expected prefix.
func loadAPIKeys() []string {
	var keys []string
	for i := 1; i <= 4; i++ {
		key := os.Getenv(fmt.Sprintf("OPENROUTER_API_KEY_%d", i))
		if key == "" {
			continue
		}
		if !ValidAPIKey(key) {
			logger.Log.WithField("index", i).Warn("Ignoring API key with unexpected format")
			continue
		}
		keys = append(keys, key)
	}
	return keys
}

// ValidAPIKey reports whether a key looks like an OpenRouter API key
func ValidAPIKey(key string) bool {
	return len(key) > len(apiKeyPrefix) && key[:len(apiKeyPrefix)] == apiKeyPrefix
}

// Helper functions for environment variable parsing

func getEnvOrDefault(key, defaultValue string) string {
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
		logger.Log.WithFields(logrus.Fields{"key": key, "default": defaultValue}).Warn("Invalid integer value, using default")
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
		logger.Log.WithFields(logrus.Fields{"key": key, "default": defaultValue}).Warn("Invalid float value, using default")
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
		logger.Log.WithFields(logrus.Fields{"key": key, "default": defaultValue}).Warn("Invalid duration value, using default")
		return defaultValue
	}
	return value
}
