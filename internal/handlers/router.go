package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/Lixing-Zhang/menu-cms/internal/auth"
	"github.com/Lixing-Zhang/menu-cms/internal/middleware"
	"github.com/Lixing-Zhang/menu-cms/internal/service"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Services bundles everything the HTTP layer talks to
type Services struct {
	Auth         *auth.Service
	Categories   *service.CategoryService
	MenuItems    *service.MenuService
	Translations *service.TranslationService
	Languages    *service.LanguageService
	Restaurant   *service.RestaurantService
	Analytics    *service.AnalyticsService
	QR           *service.QRService
	PublicMenu   *service.PublicMenuService
	DB           Pinger
}

// RouterOptions holds transport level settings. GenerationTimeout bounds the
// AI translation endpoints, which call the translator once per language and
// item; RequestTimeout bounds everything else.
type RouterOptions struct {
	AllowedOrigins    []string
	StaticDir         string
	RequestTimeout    time.Duration
	GenerationTimeout time.Duration
}

// NewRouter wires every endpoint onto a chi router
func NewRouter(svc Services, opts RouterOptions, logger *slog.Logger) http.Handler {
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 60 * time.Second
	}
	if opts.GenerationTimeout <= 0 {
		opts.GenerationTimeout = 10 * time.Minute
	}

	healthHandler := NewHealthHandler(svc.DB, logger)
	authHandler := NewAuthHandler(svc.Auth, logger)
	categoryHandler := NewCategoryHandler(svc.Categories, logger)
	menuItemHandler := NewMenuItemHandler(svc.MenuItems, logger)
	translationHandler := NewTranslationHandler(svc.Translations, logger)
	languageHandler := NewLanguageHandler(svc.Languages, logger)
	restaurantHandler := NewRestaurantHandler(svc.Restaurant, logger)
	analyticsHandler := NewAnalyticsHandler(svc.Analytics, logger)
	qrHandler := NewQRHandler(svc.QR, logger)
	publicMenuHandler := NewPublicMenuHandler(svc.PublicMenu, logger)

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(logger))
	r.Use(chimiddleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Group(func(r chi.Router) {
		r.Use(chimiddleware.Timeout(opts.RequestTimeout))

		r.Get("/", Root(logger))
		r.Get("/health", healthHandler.ServeHTTP)
		r.Post("/admin/login", authHandler.Login)

		if opts.StaticDir != "" {
			r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir(opts.StaticDir))))
		}
	})

	r.Route("/api", func(r chi.Router) {
		// Public reads
		r.Group(func(r chi.Router) {
			r.Use(chimiddleware.Timeout(opts.RequestTimeout))

			r.Get("/menu", publicMenuHandler.GetMenu)
			r.Get("/restaurant-info", restaurantHandler.GetInfo)
			r.Get("/supported-languages", languageHandler.ListLanguages)
			r.Get("/qr-code", qrHandler.GetQRCode)
			r.Get("/qr-code.png", qrHandler.GetQRCodePNG)

			r.Get("/categories", categoryHandler.ListCategories)
			r.Get("/categories-with-translations", categoryHandler.ListWithTranslations)
			r.Get("/categories/by-name/{name}", categoryHandler.GetByName)

			r.Get("/menu-items", menuItemHandler.ListMenuItems)
			r.Get("/menu-items-with-translations", menuItemHandler.ListWithTranslations)
			r.Get("/menu-items/{id}", menuItemHandler.GetMenuItem)

			r.Get("/translations/{id}", translationHandler.ListForItem)
		})

		// Admin only
		r.Group(func(r chi.Router) {
			r.Use(middleware.AdminAuth(svc.Auth))

			// AI generation
			r.Group(func(r chi.Router) {
				r.Use(middleware.WriteDeadline(opts.GenerationTimeout))
				r.Use(chimiddleware.Timeout(opts.GenerationTimeout))

				r.Post("/translations/batch-generate", translationHandler.BatchGenerate)
				r.Post("/translations/generate/{id}", translationHandler.GenerateForItem)
				r.Post("/category-translations/generate/{id}", translationHandler.GenerateForCategory)
			})

			r.Group(func(r chi.Router) {
				r.Use(chimiddleware.Timeout(opts.RequestTimeout))

				r.Get("/analytics", analyticsHandler.GetAnalytics)
				r.Post("/restaurant-info", restaurantHandler.SaveInfo)

				r.Post("/categories", categoryHandler.CreateCategory)
				r.Put("/categories/reorder", categoryHandler.ReorderCategories)
				r.Post("/categories/initialize", categoryHandler.InitializeCategories)
				r.Put("/categories/{id}", categoryHandler.UpdateCategory)
				r.Delete("/categories/{id}", categoryHandler.DeleteCategory)

				r.Post("/menu-items", menuItemHandler.CreateMenuItem)
				r.Put("/menu-items/{id}", menuItemHandler.UpdateMenuItem)
				r.Delete("/menu-items/{id}", menuItemHandler.DeleteMenuItem)

				r.Post("/translations", translationHandler.CreateItemTranslation)
				r.Put("/translations/{id}", translationHandler.UpdateItemTranslation)
				r.Delete("/translations/{id}", translationHandler.DeleteItemTranslation)

				r.Post("/category-translations", translationHandler.CreateCategoryTranslation)
				r.Put("/category-translations/{id}", translationHandler.UpdateCategoryTranslation)
				r.Delete("/category-translations/{id}", translationHandler.DeleteCategoryTranslation)

				r.Post("/languages/add", languageHandler.AddLanguage)
				r.Delete("/languages/remove/{code}", languageHandler.RemoveLanguage)
			})
		})
	})

	return r
}
