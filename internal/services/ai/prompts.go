package ai

import "fmt"

// JSONSystemPrompt - системный промпт для провайдеров без нативной схемы ответа
const JSONSystemPrompt = `You are a backend service that answers ONLY with a single valid JSON document.
Do not wrap the JSON in Markdown code fences and do not add any commentary.`

// schemaInstructionTemplate - дополнение к системному промпту со схемой ответа
const schemaInstructionTemplate = `
The JSON document MUST conform to this JSON Schema:
%s`

// systemPrompt собирает системный промпт с учётом схемы
func systemPrompt(schema *Schema) string {
	if schema == nil {
		return JSONSystemPrompt
	}
	return JSONSystemPrompt + fmt.Sprintf(schemaInstructionTemplate, schema.String())
}
