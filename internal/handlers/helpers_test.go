package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/Lixing-Zhang/menu-cms/internal/auth"
	"github.com/Lixing-Zhang/menu-cms/internal/cache"
	"github.com/Lixing-Zhang/menu-cms/internal/database/dbtest"
	"github.com/Lixing-Zhang/menu-cms/internal/images"
	"github.com/Lixing-Zhang/menu-cms/internal/languages"
	"github.com/Lixing-Zhang/menu-cms/internal/repository"
	"github.com/Lixing-Zhang/menu-cms/internal/service"
	"github.com/Lixing-Zhang/menu-cms/internal/translator"
)

const testPassword = "secret-pass"

type echoTranslator struct{}

func (echoTranslator) TranslateMenuItem(_ context.Context, src translator.Text, language string) (translator.Text, error) {
	return translator.Text{Name: language + ": " + src.Name, Description: src.Description}, nil
}

func (echoTranslator) TranslateCategory(_ context.Context, name, language string) (string, error) {
	return language + ": " + name, nil
}

// slowTranslator delays every call, ignoring cancellation like a slow upstream
type slowTranslator struct {
	echoTranslator
	delay time.Duration
}

func (s slowTranslator) TranslateMenuItem(ctx context.Context, src translator.Text, language string) (translator.Text, error) {
	time.Sleep(s.delay)
	return s.echoTranslator.TranslateMenuItem(ctx, src, language)
}

type testServer struct {
	handler   http.Handler
	token     string
	staticDir string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	return newTestServerWith(t, echoTranslator{}, RouterOptions{})
}

func newTestServerWith(t *testing.T, tr translator.Translator, opts RouterOptions) *testServer {
	t.Helper()

	db := dbtest.New(t)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	staticDir := t.TempDir()

	catalog, err := languages.Open(filepath.Join(t.TempDir(), "languages.json"))
	if err != nil {
		t.Fatalf("open languages: %v", err)
	}
	imageStore, err := images.NewStore(staticDir)
	if err != nil {
		t.Fatalf("image store: %v", err)
	}
	authService, err := auth.NewService(testPassword, "test-secret", time.Hour)
	if err != nil {
		t.Fatalf("auth service: %v", err)
	}

	categoryRepo := repository.NewBunCategoryRepository(db)
	itemRepo := repository.NewBunMenuItemRepository(db)
	translationRepo := repository.NewBunTranslationRepository(db)
	menuCache := cache.Noop{}

	restaurant := service.NewRestaurantService(repository.NewBunRestaurantRepository(db), menuCache, log)
	svc := Services{
		Auth:         authService,
		Categories:   service.NewCategoryService(categoryRepo, menuCache, log),
		MenuItems:    service.NewMenuService(itemRepo, imageStore, menuCache, log),
		Translations: service.NewTranslationService(itemRepo, categoryRepo, translationRepo, catalog, tr, 2, menuCache, log),
		Languages:    service.NewLanguageService(catalog, translationRepo, menuCache, log),
		Restaurant:   restaurant,
		Analytics:    service.NewAnalyticsService(itemRepo, categoryRepo),
		QR:           service.NewQRService("https://menu.example"),
		PublicMenu:   service.NewPublicMenuService(categoryRepo, itemRepo, restaurant, menuCache, log),
		DB:           db,
	}

	opts.AllowedOrigins = []string{"*"}
	opts.StaticDir = staticDir

	token, err := authService.Login(testPassword)
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	return &testServer{
		handler:   NewRouter(svc, opts, log),
		token:     token,
		staticDir: staticDir,
	}
}

// do sends a request; body is JSON encoded unless it is already a []byte.
// Admin requests carry the bearer token.
func (s *testServer) do(t *testing.T, method, path string, body interface{}, admin bool) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case []byte:
		reader = bytes.NewReader(b)
	default:
		data, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("failed to marshal request: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if admin {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}
	w := httptest.NewRecorder()
	s.handler.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(dst); err != nil {
		t.Fatalf("failed to decode response %q: %v", w.Body.String(), err)
	}
}
