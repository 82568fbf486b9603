package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Port             int
	DBPath           string
	AI               AI
	Mail             Mail
	Log              Log
	ReminderInterval time.Duration
}

type AI struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

type Mail struct {
	SendGridKey string
	From        string
}

type Log struct {
	Level  string
	Format string
	File   string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", 8080)
	v.SetDefault("db_path", ":memory:")
	v.SetDefault("ai_model", "gemini-2.5-flash")
	v.SetDefault("ai_base_url", "https://generativelanguage.googleapis.com/v1beta")
	v.SetDefault("ai_timeout", "30s")
	v.SetDefault("mail_from", "notifications@nexus.co")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
	v.SetDefault("reminder_interval", "30s")
}

// Load reads envFiles (a missing .env is fine) and then the process
// environment. Keys are the upper-case env names, e.g. API_KEY, DB_PATH.
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load env file: %w", err)
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Port:   v.GetInt("port"),
		DBPath: v.GetString("db_path"),
		AI: AI{
			APIKey:  v.GetString("api_key"),
			Model:   v.GetString("ai_model"),
			BaseURL: v.GetString("ai_base_url"),
			Timeout: v.GetDuration("ai_timeout"),
		},
		Mail: Mail{
			SendGridKey: v.GetString("sendgrid_api_key"),
			From:        v.GetString("mail_from"),
		},
		Log: Log{
			Level:  v.GetString("log_level"),
			Format: v.GetString("log_format"),
			File:   v.GetString("log_file"),
		},
		ReminderInterval: v.GetDuration("reminder_interval"),
	}

	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("invalid PORT %d", cfg.Port)
	}
	if cfg.ReminderInterval <= 0 {
		return nil, fmt.Errorf("invalid REMINDER_INTERVAL %s", cfg.ReminderInterval)
	}
	return cfg, nil
}
