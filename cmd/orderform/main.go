package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"orderform/cmd/orderform/clients"
	"orderform/cmd/orderform/config"
	"orderform/cmd/orderform/handlers"
	"orderform/cmd/orderform/logger"
	"orderform/cmd/orderform/order"
	"orderform/cmd/orderform/routing"
	"orderform/cmd/orderform/session"
	db "orderform/cmd/orderform/storage"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func main() {
	c := config.NewConfig()
	if err := config.Init(c); err != nil {
		log.Fatalf("Failed to initialize config: %v", err)
	}

	sugarLogger, err := logger.NewLogger(c.LogLevel)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = sugarLogger.Sync() }()

	s, err := db.NewStorage(c)
	if err != nil {
		sugarLogger.Fatalf("Failed to initialize storage: %v", err)
	}
	defer func() { _ = s.Close() }()

	sessionService, err := session.NewSessionService(c.SessionSecret, false)
	if err != nil {
		sugarLogger.Fatalf("Failed to initialize session: %v", err)
	}

	webhookClient, err := clients.NewWebhookClient(c.Webhook, sugarLogger)
	if err != nil {
		sugarLogger.Fatalf("Failed to initialize webhook client: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Deliveries outlive the signal so the queue can drain on shutdown.
	deliveryCtx, cancelDelivery := context.WithCancel(context.Background())
	defer cancelDelivery()

	wp := clients.NewWorkerPool(webhookClient, c.Webhook.NumWorkers, c.Webhook.MaxRequestsPerMin, c.Webhook.Queue, sugarLogger)
	wp.Start(deliveryCtx)

	orderService := order.NewService(s, wp, c.Webhook.URL, c.Webhook.Secret, sugarLogger)
	ctrl := handlers.NewController(c, s, sessionService, orderService, sugarLogger)

	r := chi.NewRouter()

	routing.InitMiddleware(r, c, ctrl)
	routing.Routing(r, ctrl)

	srv := &http.Server{
		Addr:              c.Addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       time.Duration(c.Timeout) * time.Second,
		WriteTimeout:      time.Duration(c.Timeout+5) * time.Second,
		IdleTimeout:       time.Minute,
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		sugarLogger.Infof("Listening on %s", c.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		sugarLogger.Info("Shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			sugarLogger.Errorf("Server shutdown: %v", err)
		}
		if err := wp.Stop(shutdownCtx); err != nil {
			sugarLogger.Errorf("Webhook queue did not drain: %v", err)
		}
		cancelDelivery()
		return nil
	})

	if err := g.Wait(); err != nil {
		sugarLogger.Fatalf("Failed to start server: %v", err)
	}
}
