package models

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Language is a supported translation target.
type Language struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// Normalize lowercases the code and trims both fields.
func (l *Language) Normalize() {
	l.Code = strings.ToLower(strings.TrimSpace(l.Code))
	l.Name = strings.TrimSpace(l.Name)
}

// Validate checks a language definition.
func (l Language) Validate() error {
	return validation.ValidateStruct(&l,
		validation.Field(&l.Code, validation.Required, validation.Length(2, 10)),
		validation.Field(&l.Name, validation.Required, validation.Length(1, 50)),
	)
}
