package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// AppConfig 汇总运行服务所需的基础配置。
type AppConfig struct {
	ListenAddr           string
	Port                 string
	APIBaseURL           string
	APITimeout           time.Duration
	UserID               int
	DatabasePath         string
	LocalStoreDir        string
	SessionSecret        string
	SessionTTL           time.Duration
	GinMode              string
	DashboardRefresh     time.Duration
	ReminderPollInterval time.Duration
}

// Load 读取 steward.yaml（可选）与 STEWARD_ 前缀的环境变量，并为缺失项提供默认值。
func Load() (AppConfig, error) {
	return load(viper.New())
}

func load(v *viper.Viper) (AppConfig, error) {
	v.SetDefault("port", "8080")
	v.SetDefault("listen_addr", "")
	v.SetDefault("api_base_url", "http://127.0.0.1:8000/api")
	v.SetDefault("api_timeout", time.Duration(0))
	v.SetDefault("user_id", 1)
	v.SetDefault("database_path", "data/lifesteward.db")
	v.SetDefault("local_store_dir", "data/local")
	v.SetDefault("session_secret", "lifesteward-dev-secret")
	v.SetDefault("session_ttl", 12*time.Hour)
	v.SetDefault("gin_mode", "release")
	v.SetDefault("dashboard_refresh", 30*time.Second)
	v.SetDefault("reminder_poll_interval", 15*time.Second)

	v.SetConfigName("steward")
	v.SetEnvPrefix("STEWARD")
	v.AutomaticEnv()

	if override := strings.TrimSpace(os.Getenv("STEWARD_CONFIG_PATH")); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return AppConfig{}, fmt.Errorf("read config: %w", err)
		}
	}

	port := strings.TrimSpace(v.GetString("port"))
	if port == "" {
		port = "8080"
	}
	listenAddr := strings.TrimSpace(v.GetString("listen_addr"))
	if listenAddr == "" {
		listenAddr = fmt.Sprintf(":%s", port)
	}

	cfg := AppConfig{
		ListenAddr:           listenAddr,
		Port:                 port,
		APIBaseURL:           strings.TrimRight(strings.TrimSpace(v.GetString("api_base_url")), "/"),
		APITimeout:           v.GetDuration("api_timeout"),
		UserID:               v.GetInt("user_id"),
		DatabasePath:         strings.TrimSpace(v.GetString("database_path")),
		LocalStoreDir:        strings.TrimSpace(v.GetString("local_store_dir")),
		SessionSecret:        v.GetString("session_secret"),
		SessionTTL:           v.GetDuration("session_ttl"),
		GinMode:              strings.TrimSpace(v.GetString("gin_mode")),
		DashboardRefresh:     v.GetDuration("dashboard_refresh"),
		ReminderPollInterval: v.GetDuration("reminder_poll_interval"),
	}

	if cfg.UserID <= 0 {
		return AppConfig{}, fmt.Errorf("invalid user id %d", cfg.UserID)
	}
	if cfg.APIBaseURL == "" {
		return AppConfig{}, errors.New("api base url is required")
	}
	return cfg, nil
}
