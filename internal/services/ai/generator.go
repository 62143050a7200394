package ai

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/user/fin-planner-api/internal/config"
	"go.uber.org/zap"
)

// ErrNotConfigured - ключ внешнего сервиса не задан
var ErrNotConfigured = errors.New("AI клиент не инициализирован: нет API ключа")

// Generator - внешний сервис генерации текста в режиме JSON.
// Возвращает сырой текст ответа; разбор и проверку выполняет вызывающий.
type Generator interface {
	GenerateJSON(ctx context.Context, prompt string, schema *Schema) (string, error)
}

// NewGenerator создаёт клиент выбранного провайдера.
// Без ключа возвращается отключённый генератор: процесс стартует, а запросы получают ErrNotConfigured.
func NewGenerator(ctx context.Context, cfg config.AIConfig, logger *zap.Logger) (Generator, error) {
	if !cfg.HasCredential() {
		logger.Warn("API ключ не указан, генерация планов недоступна",
			zap.String("provider", cfg.Provider))
		return disabled{}, nil
	}

	switch cfg.Provider {
	case config.ProviderGemini, "":
		return NewGeminiClient(ctx, cfg, logger)
	case config.ProviderDeepSeek:
		return NewDeepSeekClient(cfg, logger), nil
	default:
		return nil, fmt.Errorf("неизвестный AI провайдер: %q", cfg.Provider)
	}
}

// Close закрывает генератор, если он держит соединения
func Close(g Generator) error {
	if c, ok := g.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

type disabled struct{}

func (disabled) GenerateJSON(context.Context, string, *Schema) (string, error) {
	return "", ErrNotConfigured
}
