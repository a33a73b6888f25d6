package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"google.golang.org/genai"
)

const defaultModel = "gemini-2.0-flash"

// maxExtractRunes caps the registry text sent for extraction. Statements
// run to dozens of pages; everything relevant sits near the top.
const maxExtractRunes = 30000

const dutiesPrompt = `Ты — HR-директор. Напиши 5-7 обязанностей для должности: %s.
Стиль: Строгий, официальный.
Формат: Только маркированный список.`

const extractPrompt = `Ты — алгоритм обработки ЕГРЮЛ. Извлеки данные и ОТФОРМАТИРУЙ их.

ВХОДНОЙ ТЕКСТ:
%s

ИНСТРУКЦИЯ (СТРОГО):
1. Преобразуй ВЕСЬ текст из CAPS LOCK в обычный (Title Case).
2. Исключения (оставь большими): ООО, АО, ИНН, КПП, ОГРН.

ВЕРНИ ТОЛЬКО JSON с ключами:
- "opf": ОПФ (Например: "Общество с ограниченной ответственностью")
- "name": Название без кавычек (Например: Альянс)
- "short_name": Сокращенное наименование (Например: ООО "Альянс")
- "inn": ИНН
- "kpp": КПП (9 цифр)
- "ogrn": ОГРН
- "address": Адрес
- "boss_name": ФИО директора
- "boss_pos": Должность`

// Gemini is the model-backed implementation of DutyGenerator and Extractor.
type Gemini struct {
	client *genai.Client
	model  string
}

// NewGemini builds a Gemini collaborator. The API key is read from the
// GEMINI_API_KEY environment variable when empty. A missing key is not an
// error here; it yields a nil client and both collaborators degrade.
func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	if model == "" {
		model = defaultModel
	}
	if apiKey == "" {
		return &Gemini{model: model}, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("creating model client: %w", err)
	}
	return &Gemini{client: client, model: model}, nil
}

// GenerateDuties returns a bulleted duty list for a position, an empty
// string when no client is configured, or a short diagnostic on error.
func (g *Gemini) GenerateDuties(ctx context.Context, position string) string {
	if g == nil || g.client == nil {
		return ""
	}

	prompt := fmt.Sprintf(dutiesPrompt, position)
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt),
		&genai.GenerateContentConfig{Temperature: genai.Ptr[float32](0.6)})
	if err != nil {
		return fmt.Sprintf("Ошибка AI: %v", err)
	}
	return strings.TrimSpace(resp.Text())
}

// ExtractEntityFields asks the model for employer requisites found in raw
// registry statement text. Nil means the fields could not be extracted.
func (g *Gemini) ExtractEntityFields(ctx context.Context, rawText string) map[string]string {
	if g == nil || g.client == nil {
		return nil
	}
	if runes := []rune(rawText); len(runes) > maxExtractRunes {
		rawText = string(runes[:maxExtractRunes])
	}

	prompt := fmt.Sprintf(extractPrompt, rawText)
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt),
		&genai.GenerateContentConfig{Temperature: genai.Ptr[float32](0.1)})
	if err != nil {
		return nil
	}

	var out map[string]string
	if err := json.Unmarshal([]byte(SanitizeJSON(resp.Text())), &out); err != nil {
		return nil
	}
	return out
}
