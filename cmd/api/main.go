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

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"devevents/config"
	_ "devevents/docs"
	"devevents/internal/adapters/email"
	"devevents/internal/adapters/sessionize"
	deliveryhttp "devevents/internal/delivery/http"
	"devevents/internal/delivery/http/controllers"
	"devevents/internal/domain"
	"devevents/internal/pkg/metrics"
	"devevents/internal/repository/postgres"
	redisrepo "devevents/internal/repository/redis"
	"devevents/internal/services"
)

const shutdownTimeout = 10 * time.Second

// @title Dev Events API
// @version 1.0
// @description Catalog of developer conference events and their speakers.
// @BasePath /
func main() {
	logger := config.NewLogger()
	if err := run(logger); err != nil {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := postgres.NewDB(ctx, cfg.DBUrl)
	if err != nil {
		return err
	}
	defer db.Close()

	if cfg.MigrationsPath != "" {
		if err := postgres.RunMigrations(db, cfg.MigrationsPath); err != nil {
			return err
		}
		logger.Info("migrations applied", "path", cfg.MigrationsPath)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewDBStatsCollector(db, "devevents"),
	)
	m := metrics.NewWithRegistry(reg)

	var cache domain.EventCache
	if cfg.RedisEnabled() {
		client, err := redisrepo.NewClient(ctx, redisrepo.Config{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			return err
		}
		defer client.Close()
		cache = redisrepo.NewEventCache(client, cfg.CacheTTL)
		logger.Info("event cache enabled", "addr", cfg.RedisAddr, "ttl", cfg.CacheTTL)
	}

	mailer := email.NewMailer(logger, email.MailerConfig{
		Provider:    cfg.EmailProvider,
		FromAddress: cfg.EmailFromAddress,
		FromName:    cfg.EmailFromName,
		SES: email.SESConfig{
			Region:             cfg.AWSRegion,
			AccessKeyID:        cfg.AWSAccessKeyID,
			SecretAccessKey:    cfg.AWSSecretAccessKey,
			InsecureSkipVerify: cfg.SESInsecureSkipVerify,
		},
	})
	notifications := services.NewNotificationService(logger, mailer, email.NewTemplateRenderer())
	fetcher := sessionize.NewHTTPFetcher(&http.Client{Timeout: cfg.ContextTimeout}, cfg.SessionizeBaseURL)

	eventService := services.NewEventService(logger,
		postgres.NewEventRepository(db),
		cache,
		notifications,
		cfg.OrganizerEmail,
		fetcher,
		m,
		cfg.ContextTimeout,
	)

	router := deliveryhttp.NewRouter(deliveryhttp.RouterConfig{
		Logger:           logger,
		EventController:  controllers.NewEventController(logger, eventService),
		HealthController: controllers.NewHealthController(logger, db, cfg.ContextTimeout),
		Metrics:          m,
		Gatherer:         reg,
		AllowedOrigins:   cfg.CORSAllowedOrigins,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", srv.Addr, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
