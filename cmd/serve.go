package cmd

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"debt-planner/config"
	httpLayer "debt-planner/http"
	"debt-planner/payoff"
	"debt-planner/repository"
	"debt-planner/service"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cache, closeCache := buildCache(ctx, cfg)
	defer closeCache()

	var narrator service.Narrator
	if cfg.OpenAI.APIKey != "" {
		narrator = service.NewOpenAINarrator(cfg.OpenAI.APIKey, cfg.OpenAI.Model, cfg.Planner.CurrencySymbol)
	}

	loanService := service.NewLoanService(repository.NewLoanRepositoryMemory(0))
	strategyService := service.NewDebtStrategyService(
		payoff.NewNormalizer(nil),
		cache,
		cfg.Redis.CacheTTL,
		narrator,
		cfg.PayoffOptions(),
	)

	rateLimiter := httpLayer.NewRateLimiter(cfg.RateLimit.Capacity, cfg.RateLimit.Refill)
	go rateLimiter.RunCleanup(ctx)

	handler := httpLayer.NewRouter(httpLayer.Handlers{
		Loan:         httpLayer.NewLoanHandler(loanService),
		DebtStrategy: httpLayer.NewDebtStrategyHandler(strategyService),
	}, rateLimiter)

	server := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.WithField("addr", cfg.HTTP.Addr).Info("API listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
		log.Info("Shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("error during server shutdown")
	}

	log.Info("Server exited")
	return nil
}

// buildCache prefers Redis and falls back to an in-memory cache when Redis
// is not configured or not reachable.
func buildCache(ctx context.Context, cfg *config.Config) (repository.CacheRepository, func()) {
	if cfg.Redis.Addr == "" {
		log.Info("REDIS_ADDR not set, caching comparisons in memory")
		return repository.NewMemoryCache(), func() {}
	}

	redisCache := repository.NewRedisCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := redisCache.Ping(pingCtx); err != nil {
		log.WithError(err).WithField("addr", cfg.Redis.Addr).Warn("redis unavailable, caching comparisons in memory")
		_ = redisCache.Close()
		return repository.NewMemoryCache(), func() {}
	}

	log.WithField("addr", cfg.Redis.Addr).Info("caching comparisons in redis")
	return redisCache, func() {
		if err := redisCache.Close(); err != nil {
			log.WithError(err).Warn("error closing redis")
		}
	}
}
