package ai

import (
	"encoding/json"
	"errors"
	"strings"
)

// ErrNoJSON - в ответе модели не найден JSON-документ
var ErrNoJSON = errors.New("ошибка парсинга ответа AI: JSON не найден в ответе")

// ExtractJSON достаёт JSON-документ из ответа модели.
// Даже в JSON-режиме модель иногда оборачивает ответ в маркдаун-блок (```json ... ```)
// или добавляет текст вокруг.
func ExtractJSON(response string) ([]byte, error) {
	response = strings.TrimSpace(response)
	if response == "" {
		return nil, errors.New("ошибка парсинга ответа AI: пустой ответ")
	}

	// Попытка 1: прямой JSON
	if json.Valid([]byte(response)) {
		return []byte(response), nil
	}

	// Попытка 2: маркдаун-блок ```json ... ```
	if idx := strings.Index(response, "```json"); idx != -1 {
		start := idx + len("```json")
		if end := strings.Index(response[start:], "```"); end != -1 {
			if doc := strings.TrimSpace(response[start : start+end]); json.Valid([]byte(doc)) {
				return []byte(doc), nil
			}
		}
	}

	// Попытка 3: блок ``` ... ```
	if idx := strings.Index(response, "```"); idx != -1 {
		start := idx + 3
		if end := strings.Index(response[start:], "```"); end != -1 {
			if doc := strings.TrimSpace(response[start : start+end]); json.Valid([]byte(doc)) {
				return []byte(doc), nil
			}
		}
	}

	// Попытка 4: первый { ... } блок в тексте
	if idx := strings.Index(response, "{"); idx != -1 {
		if end := strings.LastIndex(response, "}"); end > idx {
			if doc := response[idx : end+1]; json.Valid([]byte(doc)) {
				return []byte(doc), nil
			}
		}
	}

	return nil, ErrNoJSON
}
