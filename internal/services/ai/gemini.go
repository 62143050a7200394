package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/user/fin-planner-api/internal/config"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

// Модели Gemini
const (
	ModelGeminiFlash = "gemini-2.5-flash"
)

// GeminiClient - клиент Gemini в режиме JSON-ответа
type GeminiClient struct {
	client      *genai.Client
	model       string
	maxTokens   int32
	temperature float32
	logger      *zap.Logger
}

// NewGeminiClient создаёт клиент Gemini; соединение живёт всё время работы процесса
func NewGeminiClient(ctx context.Context, cfg config.AIConfig, logger *zap.Logger) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("ошибка создания клиента Gemini: %w", err)
	}

	model := cfg.Model
	if model == "" {
		model = ModelGeminiFlash
	}

	logger.Info("Клиент Gemini инициализирован", zap.String("model", model))

	return &GeminiClient{
		client:      client,
		model:       model,
		maxTokens:   int32(cfg.MaxTokens),
		temperature: cfg.Temperature,
		logger:      logger,
	}, nil
}

// Close закрывает клиент
func (c *GeminiClient) Close() error {
	return c.client.Close()
}

// GenerateJSON отправляет промпт и возвращает текст ответа
func (c *GeminiClient) GenerateJSON(ctx context.Context, prompt string, schema *Schema) (string, error) {
	model := c.client.GenerativeModel(c.model)
	model.ResponseMIMEType = "application/json"
	if schema != nil {
		model.ResponseSchema = schema.Genai()
	}
	if c.maxTokens > 0 {
		model.SetMaxOutputTokens(c.maxTokens)
	}
	if c.temperature > 0 {
		model.SetTemperature(c.temperature)
	}

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("ошибка запроса к Gemini: %w", err)
	}

	text, err := responseText(resp)
	if err != nil {
		return "", err
	}

	if resp.UsageMetadata != nil {
		c.logger.Debug("Ответ Gemini получен",
			zap.Int32("input_tokens", resp.UsageMetadata.PromptTokenCount),
			zap.Int32("output_tokens", resp.UsageMetadata.CandidatesTokenCount))
	}
	return text, nil
}

// responseText собирает текстовые части первого кандидата
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", errors.New("пустой ответ от Gemini")
	}

	cand := resp.Candidates[0]
	if cand.Content == nil || len(cand.Content.Parts) == 0 {
		return "", fmt.Errorf("ответ Gemini без содержимого (finish_reason: %s)", cand.FinishReason)
	}

	var sb strings.Builder
	for _, part := range cand.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	if sb.Len() == 0 {
		return "", errors.New("ответ Gemini не содержит текста")
	}
	return sb.String(), nil
}
