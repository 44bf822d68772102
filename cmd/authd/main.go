// Command authd runs the authentication service: the auth engine wired to
// Redis, Postgres, and an SMTP mailer, exposed over HTTP.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/eshoplabs/auth"
	"github.com/eshoplabs/auth/httpd"
	"github.com/eshoplabs/auth/internal/identity"
	"github.com/eshoplabs/auth/internal/mailer"
)

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	_ = godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	if err := run(logger); err != nil {
		logger.Fatal("authd exited", zap.Error(err))
	}
}

func run(logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rdb := redis.NewClient(&redis.Options{
		Addr:     env("REDIS_ADDR", "localhost:6379"),
		Password: os.Getenv("REDIS_PASSWORD"),
	})
	defer rdb.Close()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return err
	}

	pool, err := pgxpool.New(ctx, os.Getenv("DATABASE_URL"))
	if err != nil {
		return err
	}
	defer pool.Close()

	store := identity.NewPostgres(pool)
	if err := store.Migrate(ctx); err != nil {
		return err
	}

	smtpMailer := mailer.NewSMTP(
		env("SMTP_HOST", "smtp.gmail.com"),
		env("SMTP_PORT", "465"),
		os.Getenv("SMTP_USER"),
		os.Getenv("SMTP_PASSWORD"),
		os.Getenv("SMTP_FROM"),
	)

	cfg := auth.DefaultConfig()
	cfg.Token.AccessSecret = []byte(os.Getenv("ACCESS_JWT_SECRET"))
	cfg.Token.RefreshSecret = []byte(os.Getenv("REFRESH_JWT_SECRET"))

	engine, err := auth.New().
		WithConfig(cfg).
		WithRedis(rdb).
		WithIdentityStore(store).
		WithMailer(smtpMailer).
		WithLogger(logger).
		Build()
	if err != nil {
		return err
	}

	handler := httpd.New(engine, logger, httpd.Options{
		AllowedOrigins: splitOrigins(env("ALLOWED_ORIGINS", "http://localhost:3000")),
	})

	srv := &http.Server{
		Addr:              ":" + env("PORT", "6001"),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("authd listening", zap.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func splitOrigins(raw string) []string {
	parts := strings.Split(raw, ",")
	out := parts[:0]
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
