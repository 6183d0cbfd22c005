package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/sakuratei/order-system/internal/config"
	"github.com/sakuratei/order-system/internal/handlers"
	"github.com/sakuratei/order-system/internal/middleware"
	"github.com/sakuratei/order-system/internal/notify"
	"github.com/sakuratei/order-system/internal/repository"
	"github.com/sakuratei/order-system/internal/service"
	"github.com/sakuratei/order-system/pkg/logger"
)

func main() {
	// Load configuration from environment
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize structured logger
	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log)

	log.Info("starting table ordering server",
		"port", cfg.Server.Port,
		"host", cfg.Server.Host,
		"log_level", cfg.LogLevel,
	)

	ctx := context.Background()

	// Order store: Postgres when configured, in-memory otherwise.
	var orderRepo repository.OrderRepository
	if cfg.Database.URL != "" {
		pgRepo, err := repository.NewPostgresOrderRepository(ctx, cfg.Database.URL)
		if err != nil {
			log.Error("failed to connect to order store", "error", err)
			os.Exit(1)
		}
		defer pgRepo.Close()
		orderRepo = pgRepo
		log.Info("order store connected", "backend", "postgres")
	} else {
		orderRepo = repository.NewInMemoryOrderRepository()
		log.Info("order store connected", "backend", "memory")
	}

	// Status-event broker for the kitchen and admin boards.
	var notifier notify.Notifier = notify.Noop{}
	if cfg.RabbitMQ.URL != "" {
		amqpNotifier, err := notify.NewAMQPNotifier(cfg.RabbitMQ.URL, log)
		if err != nil {
			log.Error("failed to connect to rabbitmq", "error", err)
			os.Exit(1)
		}
		defer amqpNotifier.Close()
		notifier = amqpNotifier
		log.Info("status notifier connected", "exchange", "order_status_fanout")
	}

	// Initialize repositories
	menuRepo := repository.NewInMemoryMenuRepository()
	tableRepo := repository.NewInMemoryTableRepository(cfg.QRBaseURL)

	// Initialize services
	menuService := service.NewMenuService(menuRepo)
	tableService := service.NewTableService(tableRepo)
	orderService := service.NewOrderService(orderRepo, menuService, tableService, notifier, log)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(log)
	menuHandler := handlers.NewMenuHandler(menuService, log)
	tableHandler := handlers.NewTableHandler(tableService, log)
	orderHandler := handlers.NewOrderHandler(orderService, log)
	receiptHandler := handlers.NewReceiptHandler(orderService, log)

	// Create router
	r := chi.NewRouter()

	// Apply middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(log))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	// CORS configuration
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Staff-Name"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Register health check endpoint
	r.Get("/health", healthHandler.ServeHTTP)

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Route("/menu", func(r chi.Router) {
			r.Get("/", menuHandler.ListAvailable)
			r.Get("/search", menuHandler.Search)
			r.Get("/category/{category}", menuHandler.ByCategory)
			r.Get("/{itemID}", menuHandler.GetItem)
		})

		r.Route("/tables", func(r chi.Router) {
			r.Get("/", tableHandler.ListTables)
			r.Get("/available", tableHandler.ListAvailable)
			r.Get("/number/{tableNumber}", tableHandler.ResolveByNumber)
			r.Get("/qr/{payload}", tableHandler.ResolveByQR)
			r.Patch("/{tableNumber}/status", tableHandler.UpdateStatus)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Post("/", orderHandler.Submit)
			r.Get("/", orderHandler.ListOrders)
			r.Get("/active", orderHandler.ListActive)
			r.Get("/kitchen", orderHandler.ListKitchen)
			r.Get("/today", orderHandler.ListToday)
			r.Get("/table/{tableNumber}", orderHandler.ListByTable)
			r.Get("/{orderID}", orderHandler.GetOrder)
			r.Get("/{orderID}/history", orderHandler.History)
			r.Post("/{orderID}/items", orderHandler.AttachItem)
			r.Patch("/{orderID}/items/{itemID}/status", orderHandler.TransitionItem)
			r.Patch("/{orderID}/{transition}", orderHandler.Transition)
		})

		r.Get("/receipts/{orderID}/text", receiptHandler.Text)
	})

	// Create HTTP server
	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	// Create shutdown context with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	// Attempt graceful shutdown
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped gracefully")
}
