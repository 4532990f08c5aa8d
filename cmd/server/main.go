package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Lixing-Zhang/menu-cms/internal/auth"
	"github.com/Lixing-Zhang/menu-cms/internal/cache"
	"github.com/Lixing-Zhang/menu-cms/internal/config"
	"github.com/Lixing-Zhang/menu-cms/internal/database"
	"github.com/Lixing-Zhang/menu-cms/internal/handlers"
	"github.com/Lixing-Zhang/menu-cms/internal/images"
	"github.com/Lixing-Zhang/menu-cms/internal/languages"
	"github.com/Lixing-Zhang/menu-cms/internal/repository"
	"github.com/Lixing-Zhang/menu-cms/internal/service"
	"github.com/Lixing-Zhang/menu-cms/internal/translator"
	"github.com/Lixing-Zhang/menu-cms/pkg/logger"
)

func main() {
	// Load configuration from environment
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize structured logger
	log := logger.NewWithOptions(logger.Options{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
	})
	slog.SetDefault(log)

	log.Info("starting menu cms api server",
		"port", cfg.Server.Port,
		"host", cfg.Server.Host,
		"log_level", cfg.Log.Level,
		"db_driver", cfg.Database.Driver,
	)

	ctx := context.Background()

	db, err := database.Open(ctx, cfg.Database, log)
	if err != nil {
		log.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(ctx, db); err != nil {
		log.Error("failed to migrate database", "error", err)
		os.Exit(1)
	}

	menuCache, closeCache := newMenuCache(ctx, cfg.Redis, log)
	defer closeCache()

	catalog, err := languages.Open(cfg.Storage.LanguagesFile)
	if err != nil {
		log.Error("failed to load supported languages", "error", err)
		os.Exit(1)
	}

	imageStore, err := images.NewStore(cfg.Storage.StaticDir)
	if err != nil {
		log.Error("failed to prepare image storage", "error", err)
		os.Exit(1)
	}

	if cfg.Auth.SecretGenerated {
		log.Warn("JWT_SECRET is not set, using a random secret; admin sessions end on restart")
	}

	authService, err := auth.NewService(cfg.Auth.AdminPassword, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	if err != nil {
		log.Error("failed to initialize auth", "error", err)
		os.Exit(1)
	}

	tr := translator.New(cfg.Translator.APIKey, cfg.Translator.Model)
	if _, disabled := tr.(translator.Disabled); disabled {
		log.Warn("OPENAI_API_KEY is not set, translation generation is disabled")
	}

	// Initialize repositories
	categoryRepo := repository.NewBunCategoryRepository(db)
	itemRepo := repository.NewBunMenuItemRepository(db)
	translationRepo := repository.NewBunTranslationRepository(db)
	restaurantRepo := repository.NewBunRestaurantRepository(db)

	// Initialize services
	categoryService := service.NewCategoryService(categoryRepo, menuCache, log)
	restaurantService := service.NewRestaurantService(restaurantRepo, menuCache, log)

	seeded, err := categoryService.SeedIfEmpty(ctx)
	if err != nil {
		log.Error("failed to seed categories", "error", err)
		os.Exit(1)
	}
	if seeded > 0 {
		log.Info("seeded predefined categories", "count", seeded)
	}

	router := handlers.NewRouter(handlers.Services{
		Auth:         authService,
		Categories:   categoryService,
		MenuItems:    service.NewMenuService(itemRepo, imageStore, menuCache, log),
		Translations: service.NewTranslationService(itemRepo, categoryRepo, translationRepo, catalog, tr, cfg.Translator.Concurrency, menuCache, log),
		Languages:    service.NewLanguageService(catalog, translationRepo, menuCache, log),
		Restaurant:   restaurantService,
		Analytics:    service.NewAnalyticsService(itemRepo, categoryRepo),
		QR:           service.NewQRService(cfg.Menu.PublicURL),
		PublicMenu:   service.NewPublicMenuService(categoryRepo, itemRepo, restaurantService, menuCache, log),
		DB:           db,
	}, handlers.RouterOptions{
		AllowedOrigins:    cfg.Server.AllowedOrigins,
		StaticDir:         cfg.Storage.StaticDir,
		RequestTimeout:    time.Duration(cfg.Server.WriteTimeout) * time.Second,
		GenerationTimeout: time.Duration(cfg.Server.GenerationTimeout) * time.Second,
	}, log)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped gracefully")
}

// newMenuCache connects to Redis when configured. Without Redis, or when it
// is unreachable, the public menu is rendered on every request.
func newMenuCache(ctx context.Context, cfg config.RedisConfig, log *slog.Logger) (cache.MenuCache, func()) {
	if cfg.Addr == "" {
		log.Info("public menu cache disabled")
		return cache.Noop{}, func() {}
	}

	client, err := cache.NewClient(ctx, cfg.Addr, cfg.Password, cfg.DB)
	if err != nil {
		log.Warn("redis unavailable, public menu cache disabled", "addr", cfg.Addr, "error", err)
		return cache.Noop{}, func() {}
	}

	log.Info("public menu cache enabled", "addr", cfg.Addr, "ttl", cfg.TTL)
	return cache.NewRedisMenuCache(client, cfg.TTL), func() { _ = client.Close() }
}
