package languages

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/Lixing-Zhang/menu-cms/internal/models"
)

var (
	ErrLanguageNotFound = errors.New("language not found")
	ErrLanguageExists   = errors.New("language already exists")
)

// Defaults is the language set used until the file is first written.
var Defaults = map[string]string{
	"en": "English",
	"de": "German",
	"it": "Italian",
	"fr": "French",
	"es": "Spanish",
	"sl": "Slovenian",
	"cs": "Czech",
	"pl": "Polish",
	"hu": "Hungarian",
}

// Store keeps the supported translation languages in a JSON file
// (code -> display name).
type Store struct {
	mu    sync.RWMutex
	path  string
	langs map[string]string
}

// Open loads the store from path, falling back to Defaults when the file does
// not exist yet.
func Open(path string) (*Store, error) {
	s := &Store{path: path, langs: make(map[string]string, len(Defaults))}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		s.useDefaults()
		return s, nil
	case err != nil:
		return nil, fmt.Errorf("read languages file: %w", err)
	}

	if err := json.Unmarshal(data, &s.langs); err != nil {
		return nil, fmt.Errorf("parse languages file %s: %w", path, err)
	}
	// A file holding null decodes to a nil map.
	if s.langs == nil {
		s.useDefaults()
	}
	return s, nil
}

func (s *Store) useDefaults() {
	s.langs = make(map[string]string, len(Defaults))
	for code, name := range Defaults {
		s.langs[code] = name
	}
}

// List returns the languages sorted by code
func (s *Store) List() []models.Language {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Language, 0, len(s.langs))
	for code, name := range s.langs {
		out = append(out, models.Language{Code: code, Name: name})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

// Get returns the display name for code
func (s *Store) Get(code string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	name, ok := s.langs[code]
	return name, ok
}

// Add registers a new language and persists the file
func (s *Store) Add(lang models.Language) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.langs[lang.Code]; ok {
		return ErrLanguageExists
	}
	s.langs[lang.Code] = lang.Name
	if err := s.save(); err != nil {
		delete(s.langs, lang.Code)
		return err
	}
	return nil
}

// Remove drops a language and persists the file. It returns the removed
// display name.
func (s *Store) Remove(code string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	name, ok := s.langs[code]
	if !ok {
		return "", ErrLanguageNotFound
	}
	delete(s.langs, code)
	if err := s.save(); err != nil {
		s.langs[code] = name
		return "", err
	}
	return name, nil
}

// save writes through a temp file so a crash never leaves a truncated file.
func (s *Store) save() error {
	data, err := json.MarshalIndent(s.langs, "", "  ")
	if err != nil {
		return fmt.Errorf("encode languages: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create languages dir: %w", err)
		}
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write languages file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace languages file: %w", err)
	}
	return nil
}
