// Package config предоставляет управление конфигурацией botctl
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

// Telegram содержит параметры подключения к Bot API
type Telegram struct {
	Token       string `yaml:"token"`
	APIEndpoint string `yaml:"api_endpoint"`
	// HTTPTimeoutSeconds ограничивает один HTTP-запрос. Должен превышать
	// timeout long polling в getUpdates. 0 - без ограничений.
	HTTPTimeoutSeconds int `yaml:"http_timeout_seconds"`
}

// Logging содержит конфигурацию логирования
type Logging struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, text
}

// Config содержит конфигурацию приложения
type Config struct {
	Telegram Telegram `yaml:"telegram"`
	Logging  Logging  `yaml:"logging"`
}

// defaultConfig возвращает конфигурацию со значениями по умолчанию
func defaultConfig() *Config {
	return &Config{
		Telegram: Telegram{
			APIEndpoint:        DefaultAPIEndpoint,
			HTTPTimeoutSeconds: int(DefaultHTTPTimeout / time.Second),
		},
		Logging: Logging{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}

// LoadConfig загружает конфигурацию: значения по умолчанию, затем YAML-файл
// (если он существует), затем переменные окружения и .env файл.
// Пустой path означает DefaultConfigFile.
func LoadConfig(path string) (*Config, error) {
	// .env необязателен, переменные окружения могут быть заданы напрямую
	_ = godotenv.Load()

	explicit := path != ""
	if !explicit {
		path = DefaultConfigFile
	}

	cfg := defaultConfig()
	if err := loadFromYAML(path, cfg); err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	if err := loadFromEnv(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadFromYAML накладывает значения из YAML-файла на cfg
func loadFromYAML(filename string, cfg *Config) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", filename, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse YAML config %s: %w", filename, err)
	}

	return nil
}

// loadFromEnv накладывает значения переменных окружения на cfg
func loadFromEnv(cfg *Config) error {
	cfg.Telegram.Token = getEnv("TELEGRAM_BOT_TOKEN", cfg.Telegram.Token)
	cfg.Telegram.APIEndpoint = getEnv("TELEGRAM_API_ENDPOINT", cfg.Telegram.APIEndpoint)
	cfg.Logging.Level = getEnv("LOG_LEVEL", cfg.Logging.Level)
	cfg.Logging.Format = getEnv("LOG_FORMAT", cfg.Logging.Format)

	if v := os.Getenv("TELEGRAM_HTTP_TIMEOUT_SECONDS"); v != "" {
		timeout, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid TELEGRAM_HTTP_TIMEOUT_SECONDS: %w", err)
		}
		cfg.Telegram.HTTPTimeoutSeconds = timeout
	}

	return nil
}

// HTTPTimeout возвращает таймаут HTTP-клиента
func (c *Config) HTTPTimeout() time.Duration {
	return time.Duration(c.Telegram.HTTPTimeoutSeconds) * time.Second
}

// Validate проверяет, являются ли значения конфигурации допустимыми
func (c *Config) Validate() error {
	if c.Telegram.Token == "" {
		return fmt.Errorf("telegram.token is not configured")
	}
	if !strings.Contains(c.Telegram.Token, ":") {
		return fmt.Errorf("telegram.token must look like <bot_id>:<secret>")
	}

	if !strings.HasPrefix(c.Telegram.APIEndpoint, "http://") && !strings.HasPrefix(c.Telegram.APIEndpoint, "https://") {
		return fmt.Errorf("telegram.api_endpoint must be an http(s) URL")
	}

	if c.Telegram.HTTPTimeoutSeconds < 0 {
		return fmt.Errorf("telegram.http_timeout_seconds must be non-negative (0 for no limit)")
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		// all good
	default:
		return fmt.Errorf("logging.level must be one of: debug, info, warn, error")
	}

	switch c.Logging.Format {
	case "json", "text":
	default:
		return fmt.Errorf("logging.format must be one of: json, text")
	}

	return nil
}

// getEnv извлекает значение переменной окружения или возвращает значение по умолчанию, если она не установлена
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
