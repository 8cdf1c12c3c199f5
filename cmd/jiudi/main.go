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

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/jiudi-gallery/jiudi-gallery/internal/app"
	"github.com/jiudi-gallery/jiudi-gallery/internal/auth"
	"github.com/jiudi-gallery/jiudi-gallery/internal/catalog/items"
	"github.com/jiudi-gallery/jiudi-gallery/internal/catalog/products"
	"github.com/jiudi-gallery/jiudi-gallery/internal/catalog/suppliers"
	"github.com/jiudi-gallery/jiudi-gallery/internal/contact"
	"github.com/jiudi-gallery/jiudi-gallery/internal/dashboard"
	"github.com/jiudi-gallery/jiudi-gallery/internal/platform/db"
	"github.com/jiudi-gallery/jiudi-gallery/internal/sales/customers"
	"github.com/jiudi-gallery/jiudi-gallery/internal/sales/orders"
	"github.com/jiudi-gallery/jiudi-gallery/internal/shared"
	"github.com/jiudi-gallery/jiudi-gallery/internal/storefront"
	"github.com/jiudi-gallery/jiudi-gallery/jobs"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", slog.Any("error", err))
		os.Exit(1)
	}
}

type contactNotifier struct {
	client *jobs.Client
}

func (n *contactNotifier) EnqueueContactNotify(ctx context.Context, payload jobs.ContactNotifyPayload) error {
	_, err := n.client.EnqueueContactNotify(ctx, payload)
	return err
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger := app.NewLogger(cfg)
	slog.SetDefault(logger)

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer pool.Close()

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer redisClient.Close()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}

	sessions := shared.NewSessionManager(redisClient, "jiudi_session", cfg.SessionSecret, cfg.SessionTTL, cfg.IsProduction())

	queueClient := jobs.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer queueClient.Close()

	orderService := orders.NewService(orders.NewRepository(pool))
	itemService := items.NewService(items.NewRepository(pool))
	productService := products.NewService(products.NewRepository(pool))
	supplierService := suppliers.NewService(suppliers.NewRepository(pool))
	customerService := customers.NewService(customers.NewRepository(pool))
	dashboardService := dashboard.NewService(dashboard.NewRepository(pool))
	storefrontService := storefront.NewService(storefront.NewRepository(pool))
	contactService := contact.NewService(contact.NewRepository(pool), &contactNotifier{client: queueClient}, logger)
	authService := auth.NewService(cfg.AdminPasswordHash)

	router := app.NewRouter(app.RouterParams{
		Middleware: app.MiddlewareStack(app.MiddlewareConfig{
			Logger:         logger,
			Config:         cfg,
			SessionManager: sessions,
		}),
		Auth:       auth.NewHandler(logger, authService, sessions),
		Products:   products.NewHandler(logger, productService),
		Items:      items.NewHandler(logger, itemService),
		Suppliers:  suppliers.NewHandler(logger, supplierService),
		Customers:  customers.NewHandler(logger, customerService),
		Orders:     orders.NewHandler(logger, orderService),
		Dashboard:  dashboard.NewHandler(logger, dashboardService),
		Storefront: storefront.NewHandler(logger, storefrontService),
		Contact:    contact.NewHandler(logger, contactService),
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", cfg.AppAddr))
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
