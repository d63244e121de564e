package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/linemk/storefront/internal/app"
	"github.com/linemk/storefront/internal/app/handlers"
	"github.com/linemk/storefront/internal/config"
	"github.com/linemk/storefront/internal/jwt-new/jwtmiddleware"
	"github.com/linemk/storefront/internal/lib/logger"
	"github.com/linemk/storefront/internal/lib/logger/handlers/urllog"
	"github.com/linemk/storefront/internal/service"
	"github.com/linemk/storefront/internal/storage"
	"github.com/pkg/errors"
)

func main() {
	// загрузка конфигурации
	cfg := config.MustLoad()

	// инициализация логгера, зависит от настройки окружения
	log := logger.SetupLogger(cfg.Env)
	log.Info("starting storefront", slog.String("env", cfg.Env))

	// объект приложения с конфигом и подключением к БД
	application, err := app.NewApp(log, cfg)
	if err != nil {
		log.Error("failed to initialize app", slog.Any("error", err))
		panic(errors.Wrap(err, "failed to initialize app"))
	}
	defer application.DB.Close()

	srv := &http.Server{
		Addr:         cfg.HTTPServer.Address,
		Handler:      newRouter(application),
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	go func() {
		log.Info("starting server", slog.String("address", cfg.HTTPServer.Address))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", slog.Any("error", err))
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	stopSign := <-stop
	log.Info("received shutdown signal", slog.String("signal", stopSign.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server shutdown failed", slog.Any("error", err))
	}
	log.Info("server gracefully stopped")
}

func newRouter(application *app.App) http.Handler {
	log := application.Logger
	db := application.DB

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(urllog.CustomLoggerMiddleware(log))
	router.Use(middleware.Recoverer)

	// слой работы с БД
	userRepo := storage.NewUserRepository(db)
	productRepo := storage.NewProductRepository(db)
	cartRepo := storage.NewCartRepository(db)
	orderRepo := storage.NewOrderRepository(db)
	reportRepo := storage.NewReportRepository(db)

	tokenTTL := time.Duration(application.Config.JWT.TokenTTL) * time.Minute

	authService := service.NewAuthService(log, userRepo, tokenTTL)
	catalogService := service.NewCatalogService(log, productRepo)
	cartService := service.NewCartService(log, db, cartRepo, productRepo)
	checkoutService := service.NewCheckoutService(log, db, cartRepo, productRepo, orderRepo)
	orderService := service.NewOrderService(log, orderRepo)
	profileService := service.NewProfileService(log, userRepo)
	adminService := service.NewAdminService(log, userRepo, reportRepo)

	router.Route("/api", func(r chi.Router) {
		// открытые эндпоинты
		r.Post("/auth/register", handlers.RegisterHandler(log, authService))
		r.Post("/auth/login", handlers.LoginHandler(log, authService))
		r.Get("/products", handlers.SearchProductsHandler(log, catalogService))
		r.Get("/products/{id}", handlers.GetProductHandler(log, catalogService))

		r.Group(func(r chi.Router) {
			r.Use(jwtmiddleware.NewJWTMiddleware())

			r.Get("/cart", handlers.GetCartHandler(log, cartService))
			r.Post("/cart/items", handlers.AddToCartHandler(log, cartService))
			r.Put("/cart/items/{itemID}", handlers.UpdateCartItemHandler(log, cartService))
			r.Delete("/cart/products/{productID}", handlers.RemoveFromCartHandler(log, cartService))

			r.Post("/checkout", handlers.CheckoutHandler(log, checkoutService))

			r.Get("/orders", handlers.ListOrdersHandler(log, orderService))
			r.Get("/orders/{id}", handlers.GetOrderHandler(log, orderService))

			r.Get("/profile", handlers.GetProfileHandler(log, profileService))
			r.Put("/profile", handlers.UpdateProfileHandler(log, profileService))

			// администрирование
			r.Route("/admin", func(r chi.Router) {
				r.Use(jwtmiddleware.NewAdminMiddleware(log, userRepo))

				r.Get("/users", handlers.ListUsersHandler(log, adminService))
				r.Delete("/users/{id}", handlers.DeleteUserHandler(log, adminService))
				r.Get("/sales_report", handlers.SalesReportHandler(log, adminService))
			})
		})
	})

	return router
}
