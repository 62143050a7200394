package config

import (
	"errors"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Провайдеры генерации
const (
	ProviderGemini   = "gemini"
	ProviderDeepSeek = "deepseek"
)

// Config - основная конфигурация приложения
type Config struct {
	Server ServerConfig `yaml:"server"`
	AI     AIConfig     `yaml:"ai"`
	Log    LogConfig    `yaml:"log"`
	Report ReportConfig `yaml:"report"`
}

// ServerConfig - настройки HTTP-сервера
type ServerConfig struct {
	Port      string `yaml:"port"`
	StaticDir string `yaml:"static_dir"` // index.html и report.html
	Mode      string `yaml:"mode"`       // debug, release, test
}

// AIConfig - настройки внешнего сервиса генерации
type AIConfig struct {
	Provider       string        `yaml:"provider"` // "gemini" или "deepseek"
	APIKey         string        `yaml:"api_key"`
	Model          string        `yaml:"model"`
	BaseURL        string        `yaml:"base_url"` // только для deepseek
	MaxTokens      int           `yaml:"max_tokens"`
	Temperature    float32       `yaml:"temperature"`
	RequestTimeout time.Duration `yaml:"request_timeout"` // 0 - без ограничения
}

// LogConfig - настройки логирования
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // "json" или "console"
}

// ReportConfig - настройки PDF-отчёта
type ReportConfig struct {
	FontPath string `yaml:"font_path"` // TTF с поддержкой ₹ и деванагари; пусто - встроенный Helvetica
}

// HasCredential сообщает, задан ли ключ внешнего сервиса
func (c AIConfig) HasCredential() bool {
	return strings.TrimSpace(c.APIKey) != ""
}

// Default возвращает конфигурацию по умолчанию
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:      "5000",
			StaticDir: "./templates",
			Mode:      "release",
		},
		AI: AIConfig{
			Provider:  ProviderGemini,
			Model:     "gemini-2.5-flash",
			MaxTokens: 4096,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load загружает конфигурацию из YAML-файла.
// Отсутствие файла не ошибка: используются значения по умолчанию и переменные окружения.
func Load(path string) (*Config, error) {
	// .env кладут рядом с бинарником при локальном запуске
	_ = godotenv.Load()

	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return nil, err
	}

	applyEnv(cfg)
	return cfg, nil
}

// applyEnv - переопределение из переменных окружения
func applyEnv(cfg *Config) {
	if envPort := os.Getenv("PORT"); envPort != "" {
		cfg.Server.Port = envPort
	}
	if envMode := os.Getenv("GIN_MODE"); envMode != "" {
		cfg.Server.Mode = envMode
	}
	if envProvider := os.Getenv("AI_PROVIDER"); envProvider != "" {
		cfg.AI.Provider = strings.ToLower(envProvider)
	}
	if envModel := os.Getenv("AI_MODEL"); envModel != "" {
		cfg.AI.Model = envModel
	}

	// Ключ берётся из переменной, соответствующей провайдеру
	switch cfg.AI.Provider {
	case ProviderDeepSeek:
		if key := os.Getenv("DEEPSEEK_API_KEY"); key != "" {
			cfg.AI.APIKey = key
		}
	default:
		if key := os.Getenv("GOOGLE_API_KEY"); key != "" {
			cfg.AI.APIKey = key
		}
	}

	if envLevel := os.Getenv("LOG_LEVEL"); envLevel != "" {
		cfg.Log.Level = envLevel
	}
	if envFormat := os.Getenv("LOG_FORMAT"); envFormat != "" {
		cfg.Log.Format = envFormat
	}
}
