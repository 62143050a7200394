package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/user/fin-planner-api/internal/config"
	"go.uber.org/zap"
)

const (
	// DeepSeek API endpoint (OpenAI-совместимый)
	DefaultBaseURL = "https://api.deepseek.com"

	// Для JSON-ответов нужна chat-модель: reasoner не поддерживает response_format
	ModelChatV3 = "deepseek-chat"
)

// DeepSeekClient - клиент для работы с DeepSeek API
type DeepSeekClient struct {
	httpClient  *http.Client
	apiKey      string
	baseURL     string
	model       string
	maxTokens   int
	temperature float32
	logger      *zap.Logger
}

// NewDeepSeekClient создаёт новый клиент DeepSeek
func NewDeepSeekClient(cfg config.AIConfig, logger *zap.Logger) *DeepSeekClient {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	model := cfg.Model
	if model == "" || model == ModelGeminiFlash {
		model = ModelChatV3
	}

	logger.Info("Клиент DeepSeek инициализирован",
		zap.String("model", model), zap.Int("max_tokens", cfg.MaxTokens))

	return &DeepSeekClient{
		// Таймаут запроса задаётся контекстом вызывающего
		httpClient:  &http.Client{},
		apiKey:      cfg.APIKey,
		baseURL:     baseURL,
		model:       model,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
		logger:      logger,
	}
}

// ChatMessage - сообщение в чате
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ResponseFormat - формат ответа (json_object для JSON-режима)
type ResponseFormat struct {
	Type string `json:"type"`
}

// ChatRequest - запрос к DeepSeek API
type ChatRequest struct {
	Model          string          `json:"model"`
	Messages       []ChatMessage   `json:"messages"`
	MaxTokens      int             `json:"max_tokens,omitempty"`
	Temperature    float32         `json:"temperature,omitempty"`
	ResponseFormat *ResponseFormat `json:"response_format,omitempty"`
	Stream         bool            `json:"stream"`
}

// ChatResponse - ответ от DeepSeek API
type ChatResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Index   int `json:"index"`
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

// GenerateJSON отправляет промпт в JSON-режиме и возвращает текст ответа.
// Схема передаётся текстом в системном сообщении: API принимает только json_object.
func (c *DeepSeekClient) GenerateJSON(ctx context.Context, prompt string, schema *Schema) (string, error) {
	if c.apiKey == "" {
		return "", ErrNotConfigured
	}

	req := ChatRequest{
		Model: c.model,
		Messages: []ChatMessage{
			{Role: "system", Content: systemPrompt(schema)},
			{Role: "user", Content: prompt},
		},
		MaxTokens:      c.maxTokens,
		Temperature:    c.temperature,
		ResponseFormat: &ResponseFormat{Type: "json_object"},
		Stream:         false,
	}

	reqBody, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("ошибка сериализации запроса: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(reqBody))
	if err != nil {
		return "", fmt.Errorf("ошибка создания запроса: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("ошибка отправки запроса: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("ошибка чтения ответа: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ошибка API (статус %d): %s", resp.StatusCode, string(body))
	}

	var chatResp ChatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return "", fmt.Errorf("ошибка парсинга ответа: %w", err)
	}

	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("пустой ответ от DeepSeek")
	}

	c.logger.Debug("Ответ DeepSeek получен",
		zap.Int("input_tokens", chatResp.Usage.PromptTokens),
		zap.Int("output_tokens", chatResp.Usage.CompletionTokens),
		zap.String("finish_reason", chatResp.Choices[0].FinishReason))

	return chatResp.Choices[0].Message.Content, nil
}
