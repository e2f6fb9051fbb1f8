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
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sickfits/storefront-go/internal/config"
	"github.com/sickfits/storefront-go/internal/handler"
	"github.com/sickfits/storefront-go/internal/mail"
	"github.com/sickfits/storefront-go/internal/middleware"
	"github.com/sickfits/storefront-go/internal/payment"
	"github.com/sickfits/storefront-go/internal/repository"
	"github.com/sickfits/storefront-go/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	cfg := config.Load()

	db, err := repository.NewDB(cfg.DatabaseDSN)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	userRepo := repository.NewUserRepository(db)
	itemRepo := repository.NewItemRepository(db)
	cartRepo := repository.NewCartRepository(db)
	orderRepo := repository.NewOrderRepository(db)

	var mailer mail.Mailer = mail.LogMailer{}
	if cfg.SMTPHost != "" {
		mailer = mail.NewSMTPMailer(mail.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
			From:     cfg.SMTPFrom,
		})
	}

	authService := service.NewAuthService(userRepo, mailer, cfg.AppSecret, cfg.FrontendURL)
	itemService := service.NewItemService(itemRepo)
	cartService := service.NewCartService(cartRepo, itemRepo)
	orderService := service.NewOrderService(cartRepo, orderRepo, payment.NewStripeProcessor(cfg.StripeSecretKey))

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(authService)
	itemHandler := handler.NewItemHandler(itemService)
	cartHandler := handler.NewCartHandler(cartService)
	orderHandler := handler.NewOrderHandler(orderService)

	r := chi.NewRouter()
	r.Use(middleware.Metrics)
	r.Use(middleware.Logger)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(middleware.Session(cfg.AppSecret, userRepo))

		// Credential endpoints get a per-IP rate limit on top.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RateLimit(5, 10))
			r.Post("/api/v1/auth/signup", authHandler.HandleSignup)
			r.Post("/api/v1/auth/signin", authHandler.HandleSignin)
			r.Post("/api/v1/auth/request-reset", authHandler.HandleRequestReset)
		})

		r.Post("/api/v1/auth/signout", authHandler.HandleSignout)
		r.Post("/api/v1/auth/reset-password", authHandler.HandleResetPassword)
		r.Get("/api/v1/auth/me", authHandler.HandleMe)

		r.Get("/api/v1/users", userHandler.HandleListUsers)
		r.Put("/api/v1/users/{user_id}/permissions", userHandler.HandleUpdatePermissions)

		r.Get("/api/v1/items", itemHandler.HandleListItems)
		r.Get("/api/v1/items/{item_id}", itemHandler.HandleGetItem)
		r.Post("/api/v1/items", itemHandler.HandleCreateItem)
		r.Put("/api/v1/items/{item_id}", itemHandler.HandleUpdateItem)
		r.Delete("/api/v1/items/{item_id}", itemHandler.HandleDeleteItem)

		r.Get("/api/v1/cart", cartHandler.HandleListCart)
		r.Post("/api/v1/cart", cartHandler.HandleAddToCart)
		r.Delete("/api/v1/cart/{cart_item_id}", cartHandler.HandleRemoveFromCart)

		r.Post("/api/v1/orders", orderHandler.HandleCheckout)
		r.Get("/api/v1/orders", orderHandler.HandleListOrders)
		r.Get("/api/v1/orders/{order_id}", orderHandler.HandleGetOrder)
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}
