package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/Lixing-Zhang/menu-cms/internal/database/dbtest"
	"github.com/Lixing-Zhang/menu-cms/internal/languages"
	"github.com/Lixing-Zhang/menu-cms/internal/repository"
	"github.com/Lixing-Zhang/menu-cms/internal/translator"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func strPtr(s string) *string     { return &s }
func floatPtr(f float64) *float64 { return &f }
func boolPtr(b bool) *bool        { return &b }

// fakeTranslator prefixes names with the language; names listed in fail
// produce an error. onCall, when set, runs at the start of every call.
type fakeTranslator struct {
	fail   map[string]bool
	onCall func()

	mu       sync.Mutex
	calls    int
	inFlight int32
	maxSeen  int32
}

func (f *fakeTranslator) enter() func() {
	n := atomic.AddInt32(&f.inFlight, 1)
	f.mu.Lock()
	f.calls++
	if n > f.maxSeen {
		f.maxSeen = n
	}
	hook := f.onCall
	f.mu.Unlock()
	if hook != nil {
		hook()
	}
	return func() { atomic.AddInt32(&f.inFlight, -1) }
}

func (f *fakeTranslator) TranslateMenuItem(_ context.Context, src translator.Text, language string) (translator.Text, error) {
	defer f.enter()()
	if f.fail[language] {
		return translator.Text{}, errors.New("upstream unavailable")
	}
	out := translator.Text{Name: language + ": " + src.Name}
	if src.Description != "" {
		out.Description = language + ": " + src.Description
	}
	return out, nil
}

func (f *fakeTranslator) TranslateCategory(_ context.Context, name, language string) (string, error) {
	defer f.enter()()
	if f.fail[language] {
		return "", errors.New("upstream unavailable")
	}
	return strings.ToLower(language) + " " + name, nil
}

// countingCache is an in-memory MenuCache that counts invalidations. afterGet,
// when set, runs after every lookup.
type countingCache struct {
	mu            sync.Mutex
	gen           int64
	entries       map[string][]byte
	invalidations int
	afterGet      func()
}

func newCountingCache() *countingCache {
	return &countingCache{entries: make(map[string][]byte)}
}

func (c *countingCache) Generation(context.Context) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gen, nil
}

func (c *countingCache) Get(_ context.Context, gen int64, lang string) ([]byte, bool, error) {
	c.mu.Lock()
	data, ok := c.entries[entryKey(gen, lang)]
	hook := c.afterGet
	c.mu.Unlock()

	if hook != nil {
		hook()
	}
	return data, ok, nil
}

func (c *countingCache) Set(_ context.Context, gen int64, lang string, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[entryKey(gen, lang)] = data
	return nil
}

func (c *countingCache) Invalidate(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	c.invalidations++
	return nil
}

// current returns the entry readers would see for lang right now
func (c *countingCache) current(lang string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	data, ok := c.entries[entryKey(c.gen, lang)]
	return data, ok
}

func entryKey(gen int64, lang string) string {
	return fmt.Sprintf("%d:%s", gen, lang)
}

func (c *countingCache) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.invalidations
}

// memImages is an ImageStore keeping file names in memory
type memImages struct {
	saved   map[string]string
	deleted []string
	next    int
}

func newMemImages() *memImages {
	return &memImages{saved: make(map[string]string)}
}

func (m *memImages) Save(filename string, r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	m.next++
	path := "/static/images/" + strings.Repeat("x", m.next) + filepath.Ext(filename)
	m.saved[path] = string(data)
	return path, nil
}

func (m *memImages) Delete(path string) error {
	delete(m.saved, path)
	m.deleted = append(m.deleted, path)
	return nil
}

type fixture struct {
	categories   *CategoryService
	menu         *MenuService
	translations *TranslationService
	languages    *LanguageService
	restaurant   *RestaurantService
	analytics    *AnalyticsService
	public       *PublicMenuService

	categoryRepo    *repository.BunCategoryRepository
	itemRepo        *repository.BunMenuItemRepository
	translationRepo *repository.BunTranslationRepository
	translator      *fakeTranslator
	cache           *countingCache
	images          *memImages
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := dbtest.New(t)
	log := discardLogger()

	catalog, err := languages.Open(filepath.Join(t.TempDir(), "languages.json"))
	if err != nil {
		t.Fatalf("open languages: %v", err)
	}

	f := &fixture{
		categoryRepo:    repository.NewBunCategoryRepository(db),
		itemRepo:        repository.NewBunMenuItemRepository(db),
		translationRepo: repository.NewBunTranslationRepository(db),
		translator:      &fakeTranslator{fail: map[string]bool{}},
		cache:           newCountingCache(),
		images:          newMemImages(),
	}
	restaurantRepo := repository.NewBunRestaurantRepository(db)

	f.categories = NewCategoryService(f.categoryRepo, f.cache, log)
	f.menu = NewMenuService(f.itemRepo, f.images, f.cache, log)
	f.translations = NewTranslationService(f.itemRepo, f.categoryRepo, f.translationRepo, catalog, f.translator, 2, f.cache, log)
	f.languages = NewLanguageService(catalog, f.translationRepo, f.cache, log)
	f.restaurant = NewRestaurantService(restaurantRepo, f.cache, log)
	f.analytics = NewAnalyticsService(f.itemRepo, f.categoryRepo)
	f.public = NewPublicMenuService(f.categoryRepo, f.itemRepo, f.restaurant, f.cache, log)
	return f
}
