package cmd

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

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/abhisek/permitpal/internal/config"
	"github.com/abhisek/permitpal/internal/llm"
	"github.com/abhisek/permitpal/internal/payment"
	"github.com/abhisek/permitpal/internal/retention"
	"github.com/abhisek/permitpal/internal/server"
	"github.com/abhisek/permitpal/internal/sessions"
	"github.com/abhisek/permitpal/internal/studyplan"
	"github.com/abhisek/permitpal/internal/tutor"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.Server.Addr = addr
		}
		return runServer(cmd.Context(), cfg)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides server.addr)")
}

func runServer(ctx context.Context, cfg config.Config) error {
	logger := newLogger(cfg)
	slog.SetDefault(logger)

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	provider, err := llm.NewProviderFromEnv(ctx, st.EventRepo(), logger)
	if err != nil {
		return fmt.Errorf("LLM provider not configured: %w", err)
	}

	health := map[string]server.HealthCheck{
		"database": func(ctx context.Context) error { return st.DB().PingContext(ctx) },
	}

	sessionTTL := config.Duration(cfg.Sessions.TTL, 2*time.Hour)
	var sessionStore sessions.Store
	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer client.Close()
		rs := sessions.NewRedisStore(client, sessionTTL, cfg.Redis.Prefix)
		health["redis"] = rs.Ping
		sessionStore = rs
	} else {
		logger.Info("redis not configured, keeping sessions in memory")
		sessionStore = sessions.NewMemoryStore(sessionTTL)
	}

	var gateway payment.Gateway
	success, cancelURL := cfg.CheckoutURLs()
	stripeGateway, err := payment.NewStripeGateway(payment.StripeConfig{
		SecretKey:         cfg.Stripe.SecretKey,
		PriceID:           cfg.Stripe.PriceID,
		SuccessURL:        success,
		CancelURL:         cancelURL,
		MaxNetworkRetries: 2,
	})
	switch {
	case err == nil:
		gateway = stripeGateway
	case errors.Is(err, payment.ErrNotConfigured):
		logger.Warn("stripe not configured, checkout is disabled")
	default:
		return err
	}

	auth, err := server.NewAuthenticator(cfg.Auth.JWTSecret, config.Duration(cfg.Auth.TokenTTL, 0))
	if err != nil {
		return fmt.Errorf("%w (set auth.jwt_secret or PERMITPAL_JWT_SECRET)", err)
	}

	pruner := retention.New(st.EventRepo(), retention.Config{
		Window: config.Duration(cfg.Retention.Window, retention.DefaultWindow),
		At:     cfg.Retention.At,
	}, logger)
	if err := pruner.Start(ctx); err != nil {
		return err
	}
	defer pruner.Stop()

	handler := server.New(server.Deps{
		Tutor:    tutor.NewService(provider, tutor.DefaultConfig(), logger),
		Planner:  studyplan.NewPlanner(provider, studyplan.DefaultConfig()),
		Sessions: sessionStore,
		Attempts: st.AttemptRepo(),
		Paywall:  payment.NewPaywall(gateway, st.AccessRepo(), logger),
		Auth:     auth,
		Logger:   logger,
		Health:   health,
	})

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      handler,
		ReadTimeout:  config.Duration(cfg.Server.ReadTimeout, 15*time.Second),
		WriteTimeout: config.Duration(cfg.Server.WriteTimeout, 120*time.Second),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting permitpal", slog.String("addr", srv.Addr), slog.String("model", provider.ModelID()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(stop)

	select {
	case err := <-errCh:
		return fmt.Errorf("server: %w", err)
	case <-stop:
		logger.Info("shutting down server")
	case <-ctx.Done():
		logger.Info("context canceled, shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.Duration(cfg.Server.ShutdownTimeout, 10*time.Second))
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
