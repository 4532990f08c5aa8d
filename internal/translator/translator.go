package translator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

var (
	ErrTranslatorUnavailable = errors.New("translator is not configured")
	ErrEmptyTranslation      = errors.New("translator returned an empty name")
)

const systemPrompt = "You are a professional translator specialized in restaurant menus. Always respond with valid JSON."

// Text is a name/description pair in one language.
type Text struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Translator translates Croatian menu content into a target language given
// by its display name (e.g. "German").
type Translator interface {
	TranslateMenuItem(ctx context.Context, source Text, language string) (Text, error)
	TranslateCategory(ctx context.Context, name, language string) (string, error)
}

// ChatCompleter is the part of the OpenAI client the translator needs.
type ChatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// OpenAI translates with chat completions in JSON mode
type OpenAI struct {
	client      ChatCompleter
	model       string
	temperature float32
}

// NewOpenAI creates a translator for the given API key and model
func NewOpenAI(apiKey, model string) *OpenAI {
	return NewOpenAIWithClient(openai.NewClient(apiKey), model)
}

// NewOpenAIWithClient creates a translator on top of an existing client
func NewOpenAIWithClient(client ChatCompleter, model string) *OpenAI {
	return &OpenAI{
		client:      client,
		model:       model,
		temperature: 0.3,
	}
}

// TranslateMenuItem translates a dish name and description
func (t *OpenAI) TranslateMenuItem(ctx context.Context, source Text, language string) (Text, error) {
	prompt := fmt.Sprintf(`Translate the following restaurant menu item from Croatian to %s.
Keep the translation natural and appetizing for a restaurant menu.

Croatian Name: %s
Croatian Description: %s

Provide the translation in the following JSON format:
{
    "name": "translated name",
    "description": "translated description"
}`, language, source.Name, source.Description)

	var out Text
	if err := t.complete(ctx, prompt, &out); err != nil {
		return Text{}, err
	}
	return out, nil
}

// TranslateCategory translates a category name
func (t *OpenAI) TranslateCategory(ctx context.Context, name, language string) (string, error) {
	prompt := fmt.Sprintf(`Translate the following restaurant menu category name from Croatian to %s.
Keep the translation natural and appropriate for a restaurant menu category.

Croatian Category Name: %s

Provide the translation in the following JSON format:
{
    "name": "translated category name"
}`, language, name)

	var out Text
	if err := t.complete(ctx, prompt, &out); err != nil {
		return "", err
	}
	return out.Name, nil
}

func (t *OpenAI) complete(ctx context.Context, prompt string, out *Text) error {
	resp, err := t.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: t.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: t.temperature,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return fmt.Errorf("chat completion: no choices returned")
	}

	return parseText(resp.Choices[0].Message.Content, out)
}

func parseText(content string, out *Text) error {
	if err := json.Unmarshal([]byte(content), out); err != nil {
		return fmt.Errorf("decode translation: %w", err)
	}
	out.Name = strings.TrimSpace(out.Name)
	out.Description = strings.TrimSpace(out.Description)
	if out.Name == "" {
		return ErrEmptyTranslation
	}
	return nil
}

// Disabled is used when no API key is configured; every call fails with
// ErrTranslatorUnavailable.
type Disabled struct{}

// TranslateMenuItem always fails
func (Disabled) TranslateMenuItem(context.Context, Text, string) (Text, error) {
	return Text{}, ErrTranslatorUnavailable
}

// TranslateCategory always fails
func (Disabled) TranslateCategory(context.Context, string, string) (string, error) {
	return "", ErrTranslatorUnavailable
}

// New returns the OpenAI translator, or Disabled when apiKey is empty.
func New(apiKey, model string) Translator {
	if strings.TrimSpace(apiKey) == "" {
		return Disabled{}
	}
	return NewOpenAI(apiKey, model)
}
