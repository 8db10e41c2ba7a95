package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all runtime settings. Values come from config.yaml when
// present, overridden by TEAMTASK_* environment variables
// (e.g. TEAMTASK_SERVER_PORT, TEAMTASK_JWT_SECRET).
type Config struct {
	Server struct {
		Port string
	}
	Database struct {
		Path string
	}
	JWT struct {
		Secret   string
		Issuer   string
		Audience string
	}
	SMTP struct {
		Host     string
		Port     int
		Username string
		Password string
		From     string
	}
	Notifications struct {
		// Timezone is the fixed zone used by the deadline-reminder sweep
		// to decide what "tomorrow" means.
		Timezone      string
		VisibilityTTL time.Duration
	}
	Logging struct {
		Level  string
		Format string
	}
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("server.port", ":8008")
	v.SetDefault("database.path", "teamtask.db")
	v.SetDefault("jwt.secret", "development-insecure-secret-change-me")
	v.SetDefault("jwt.issuer", "teamtask-api")
	v.SetDefault("jwt.audience", "teamtask-clients")
	v.SetDefault("smtp.host", "")
	v.SetDefault("smtp.port", 587)
	v.SetDefault("smtp.from", "noreply@teamtask.local")
	v.SetDefault("notifications.timezone", "Asia/Bangkok")
	v.SetDefault("notifications.visibility_ttl", 5*time.Minute)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	v.SetEnvPrefix("TEAMTASK")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")
	if err := v.ReadInConfig(); err != nil {
		// Config file is optional; env vars and defaults still apply.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	cfg := &Config{}
	cfg.Server.Port = v.GetString("server.port")
	cfg.Database.Path = v.GetString("database.path")
	cfg.JWT.Secret = v.GetString("jwt.secret")
	cfg.JWT.Issuer = v.GetString("jwt.issuer")
	cfg.JWT.Audience = v.GetString("jwt.audience")
	cfg.SMTP.Host = v.GetString("smtp.host")
	cfg.SMTP.Port = v.GetInt("smtp.port")
	cfg.SMTP.Username = v.GetString("smtp.username")
	cfg.SMTP.Password = v.GetString("smtp.password")
	cfg.SMTP.From = v.GetString("smtp.from")
	cfg.Notifications.Timezone = v.GetString("notifications.timezone")
	cfg.Notifications.VisibilityTTL = v.GetDuration("notifications.visibility_ttl")
	cfg.Logging.Level = v.GetString("logging.level")
	cfg.Logging.Format = v.GetString("logging.format")

	return cfg, nil
}
