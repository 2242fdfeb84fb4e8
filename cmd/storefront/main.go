package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/nDmitry/storefront/internal/api/rest"
	"github.com/nDmitry/storefront/internal/app"
	"github.com/nDmitry/storefront/internal/cache"
	"github.com/nDmitry/storefront/internal/catalog"
	"github.com/nDmitry/storefront/internal/config"
	"github.com/nDmitry/storefront/internal/entity"
	"github.com/nDmitry/storefront/internal/promo"
	"github.com/nDmitry/storefront/internal/rates"
	"github.com/nDmitry/storefront/internal/upstream"
)

func main() {
	logger := app.Logger()
	slog.SetDefault(logger)

	// Create a cancellable context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Setup signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		logger.Info("Received first shutdown signal, starting graceful shutdown...")
		cancel()

		// If we receive a second signal, exit immediately
		<-sigChan
		logger.Info("Received second shutdown signal, exiting immediately...")
		os.Exit(1)
	}()

	cfg, err := config.Load(os.Getenv("STOREFRONT_CONFIG"))

	if err != nil {
		logger.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	// One store shared by every service, swept until shutdown
	store := cache.NewMemory()

	var wg sync.WaitGroup
	wg.Add(1)

	go func() {
		defer wg.Done()
		store.Run(ctx, cfg.Cache.SweepInterval)
	}()

	feedCache, err := newFeedCache(ctx, cfg, store)

	if err != nil {
		logger.Error("Failed to connect to Redis", "error", err)
		os.Exit(1)
	}

	defer feedCache.Close()

	scraper, err := catalog.NewScraper(cfg.Upstream.CatalogURL, cfg.Upstream.Timeout)

	if err != nil {
		logger.Error("Invalid catalog configuration", "error", err)
		os.Exit(1)
	}

	server := rest.NewServer(rest.Deps{
		Cache:     feedCache,
		Catalog:   catalog.NewService(scraper, store),
		Generator: &catalog.Generator{Link: cfg.Upstream.CatalogURL},
		Rates:     rates.NewService(upstream.NewClient(cfg.Upstream.RatesURL, cfg.Upstream.Timeout), store),
		Promos:    promo.NewService(upstream.NewClient(cfg.Upstream.PromoURL, cfg.Upstream.Timeout), store),
	}, cfg.HTTP.Port)

	if err := server.Run(ctx); err != nil {
		logger.Error("Server error", "error", err)
		cancel()
		wg.Wait()
		os.Exit(1)
	}

	wg.Wait()

	logger.Info("Server exited gracefully")
}

// newFeedCache picks the store for rendered feeds
func newFeedCache(ctx context.Context, cfg *entity.Config, store *cache.Memory) (cache.Cache, error) {
	if cfg.Cache.Backend == entity.CacheBackendRedis {
		return cache.NewRedisCache(ctx, cfg.Redis.Address, cfg.Redis.Password, cfg.Redis.DB)
	}

	return cache.NewMemoryCache(store), nil
}
