package models

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/uptrace/bun"
)

// Translation is a menu item's name and description in another language.
type Translation struct {
	bun.BaseModel `bun:"table:translations,alias:t"`

	ID            int64   `bun:"id,pk,autoincrement" json:"id"`
	MenuItemID    int64   `bun:"menu_item_id,notnull,unique:item_language" json:"menu_item_id"`
	LanguageCode  string  `bun:"language_code,notnull,unique:item_language" json:"language_code"`
	LanguageName  string  `bun:"language_name,notnull" json:"language_name"`
	Name          string  `bun:"name,notnull" json:"name"`
	Description   *string `bun:"description" json:"description"`
	IsAIGenerated bool    `bun:"is_ai_generated,notnull" json:"is_ai_generated"`
}

// CategoryTranslation is a category name in another language.
type CategoryTranslation struct {
	bun.BaseModel `bun:"table:category_translations,alias:ct"`

	ID            int64  `bun:"id,pk,autoincrement" json:"id"`
	CategoryID    int64  `bun:"category_id,notnull,unique:category_language" json:"category_id"`
	LanguageCode  string `bun:"language_code,notnull,unique:category_language" json:"language_code"`
	LanguageName  string `bun:"language_name,notnull" json:"language_name"`
	Name          string `bun:"name,notnull" json:"name"`
	IsAIGenerated bool   `bun:"is_ai_generated,notnull" json:"is_ai_generated"`
}

// TranslationInput is the body of a manual translation create request.
type TranslationInput struct {
	ParentID     int64   `json:"parent_id"`
	LanguageCode string  `json:"language_code"`
	Name         string  `json:"name"`
	Description  *string `json:"description,omitempty"`
}

// Validate checks the manual translation input.
func (in TranslationInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.ParentID, validation.Required, validation.Min(int64(1))),
		validation.Field(&in.LanguageCode, validation.Required, validation.Length(2, 10)),
		validation.Field(&in.Name, validation.Required),
	)
}

// TranslationUpdate is the body of translation update requests.
type TranslationUpdate struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

// Validate rejects updates that would blank the translated name.
func (in TranslationUpdate) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Name, validation.NilOrNotEmpty, validation.By(notBlank)),
	)
}

// GeneratedTranslation reports one successful AI generation.
type GeneratedTranslation struct {
	LanguageCode string `json:"language_code"`
	LanguageName string `json:"language_name"`
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
}

// GenerateResult is the response of a per-item or per-category generation.
type GenerateResult struct {
	Success      bool                   `json:"success"`
	Translations []GeneratedTranslation `json:"translations"`
	Errors       []string               `json:"errors"`
}

// BatchFailure describes one failed generation in a batch run.
type BatchFailure struct {
	MenuItem string `json:"menu_item"`
	Language string `json:"language"`
	Error    string `json:"error"`
}

// BatchResult is the response of a batch generation.
type BatchResult struct {
	Success        bool           `json:"success"`
	TotalGenerated int            `json:"total_generated"`
	TotalErrors    int            `json:"total_errors"`
	Results        []BatchFailure `json:"results"`
}

// NormalizeLanguageCodes trims, lowercases and de-duplicates codes, keeping
// the first occurrence order.
func NormalizeLanguageCodes(codes []string) []string {
	seen := make(map[string]bool, len(codes))
	out := make([]string, 0, len(codes))
	for _, code := range codes {
		code = strings.ToLower(strings.TrimSpace(code))
		if code == "" || seen[code] {
			continue
		}
		seen[code] = true
		out = append(out, code)
	}
	return out
}
