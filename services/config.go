package services

import (
	"log/slog"

	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Auth      AuthConfig
	WebSocket WebSocketConfig
}

type ServerConfig struct {
	Port string
}

type DatabaseConfig struct {
	URL          string
	Seed         bool
	LogLevel     string
	MaxIdleConns int
	MaxOpenConns int
}

type AuthConfig struct {
	JWTSecret      string
	PasswordPolicy string // "basic" (length only) or "strict"
	LoginPath      string // redirect target for unauthenticated requests
}

type WebSocketConfig struct {
	AllowedOrigins string
}

// LoadConfig loads configuration from environment variables and config files
func LoadConfig() *Config {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	// Set defaults
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("database.url", "")
	viper.SetDefault("database.seed", "true")
	viper.SetDefault("database.log_level", "silent")
	viper.SetDefault("database.max_idle_conns", "10")
	viper.SetDefault("database.max_open_conns", "100")
	viper.SetDefault("auth.jwt_secret", "")
	viper.SetDefault("auth.password_policy", "basic")
	viper.SetDefault("auth.login_path", "/login")
	viper.SetDefault("websocket.allowed_origins", "")

	// Map environment variables to config keys
	viper.BindEnv("server.port", "SERVER_PORT")
	viper.BindEnv("database.url", "DATABASE_URL")
	viper.BindEnv("database.seed", "DATABASE_SEED")
	viper.BindEnv("database.log_level", "DATABASE_LOG_LEVEL")
	viper.BindEnv("database.max_idle_conns", "DATABASE_MAX_IDLE_CONNS")
	viper.BindEnv("database.max_open_conns", "DATABASE_MAX_OPEN_CONNS")
	viper.BindEnv("auth.jwt_secret", "JWT_SECRET")
	viper.BindEnv("auth.password_policy", "PASSWORD_POLICY")
	viper.BindEnv("auth.login_path", "LOGIN_PATH")
	viper.BindEnv("websocket.allowed_origins", "WEBSOCKET_ALLOWED_ORIGINS")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			slog.Warn("Config file not found, using defaults and environment variables")
		} else {
			slog.Error("Error reading config file", "error", err)
		}
	}

	return &Config{
		Server: ServerConfig{
			Port: viper.GetString("server.port"),
		},
		Database: DatabaseConfig{
			URL:          viper.GetString("database.url"),
			Seed:         viper.GetBool("database.seed"),
			LogLevel:     viper.GetString("database.log_level"),
			MaxIdleConns: viper.GetInt("database.max_idle_conns"),
			MaxOpenConns: viper.GetInt("database.max_open_conns"),
		},
		Auth: AuthConfig{
			JWTSecret:      viper.GetString("auth.jwt_secret"),
			PasswordPolicy: viper.GetString("auth.password_policy"),
			LoginPath:      viper.GetString("auth.login_path"),
		},
		WebSocket: WebSocketConfig{
			AllowedOrigins: viper.GetString("websocket.allowed_origins"),
		},
	}
}
