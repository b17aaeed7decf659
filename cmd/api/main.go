package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"toyshop/internal/catalog"
	"toyshop/internal/config"
	couponresolver "toyshop/internal/coupon"
	"toyshop/internal/db"
	"toyshop/internal/httpserver"
	"toyshop/internal/orderclient"
	couponrepo "toyshop/internal/repository/coupon"
	"toyshop/internal/repository/storage"
	cartsvc "toyshop/internal/service/cart"
	checkoutsvc "toyshop/internal/service/checkout"
	"toyshop/internal/tracking"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	store := storage.NewPostgres(dbpool)
	resolver := couponresolver.New(couponrepo.NewPostgres(dbpool), logger)
	catalogClient := catalog.New(cfg.CatalogURL)
	orderClient := orderclient.New(cfg.OrderServiceURL)

	var tracker tracking.Tracker = tracking.NewNoop()
	if cfg.TrackingURL != "" {
		tracker = tracking.NewHTTP(cfg.TrackingURL, logger)
	}

	cartService := cartsvc.New(store, catalogClient, resolver, tracker, logger)
	checkoutService := checkoutsvc.New(store, cartService, orderClient, tracker, cfg.Pricing, logger)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		CartSvc:     cartService,
		CheckoutSvc: checkoutService,
	}, cfg.CORSOrigins)
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}
