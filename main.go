package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rakesh3649/Fitness/app"
	"github.com/rakesh3649/Fitness/bg"
	"github.com/rakesh3649/Fitness/configs"
	"github.com/rakesh3649/Fitness/models"
	"github.com/rakesh3649/Fitness/notify"
	"github.com/rakesh3649/Fitness/repository"
	"github.com/rakesh3649/Fitness/repository/memrepo"
	"github.com/spf13/pflag"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "fitnessgym:", err)
		os.Exit(1)
	}
}

func run() error {
	envFile := pflag.String("env-file", ".env", "dotenv file loaded before reading the environment")
	port := pflag.StringP("port", "p", "", "listen port (overrides PORT)")
	storeKind := pflag.String("store", "", "storage backend, mongo or memory (overrides STORE)")
	grantAdmin := pflag.String("grant-admin", "", "promote the account with this email to admin and exit")
	pflag.Parse()

	cfg, err := configs.Load(*envFile)
	if err != nil {
		return err
	}
	if *port != "" {
		cfg.Port = *port
	}
	if *storeKind != "" {
		cfg.Store = *storeKind
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	logger := configs.NewLogger(cfg, os.Stderr)
	slog.SetDefault(logger)
	if cfg.EphemeralSecret {
		logger.Warn("JWT_SECRET is not set, using a random secret for this process only; tokens will not survive a restart")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	if *grantAdmin != "" {
		if err := store.Accounts.SetRole(ctx, *grantAdmin, models.RoleAdmin); err != nil {
			return fmt.Errorf("grant admin to %s: %w", *grantAdmin, err)
		}
		logger.Info("account promoted to admin", "email", *grantAdmin)
		return nil
	}

	runner := &bg.Tracked{}
	var mailer notify.Mailer
	if cfg.Email.Configured() {
		m, err := notify.NewSMTPMailer(cfg.Email)
		if err != nil {
			logger.Warn("email disabled, smtp client could not be created", "error", err)
		} else {
			mailer = m
		}
	} else {
		logger.Info("email not configured, notifications disabled")
	}
	notifier := notify.New(mailer, runner, cfg.Email.Sender(), logger)

	server := app.New(app.Options{
		Config:   cfg,
		Store:    store,
		Notifier: notifier,
		Logger:   logger,
	})

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "port", cfg.Port, "store", cfg.Store)
		errCh <- server.Listen(":" + cfg.Port)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	if err := server.ShutdownWithTimeout(shutdownTimeout); err != nil {
		logger.Error("shutdown", "error", err)
	}
	runner.Wait()
	return nil
}

// openStore returns the configured backend and a function releasing it.
// An unreachable MongoDB is logged and the server starts anyway.
func openStore(ctx context.Context, cfg configs.Config, logger *slog.Logger) (*repository.Store, func(), error) {
	if cfg.Store == configs.StoreMemory {
		logger.Warn("using in-memory store, data is lost on exit")
		return memrepo.New(), func() {}, nil
	}

	client, err := configs.ConnectDB(ctx, cfg.MongoURI)
	if client == nil {
		return nil, nil, err
	}
	if err != nil {
		logger.Warn("mongodb unreachable, continuing without it", "error", err)
	} else {
		logger.Info("connected to mongodb", "database", cfg.MongoDB)
	}

	db := client.Database(cfg.MongoDB)
	if err == nil {
		idxCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		if err := repository.EnsureIndexes(idxCtx, db); err != nil {
			logger.Warn("index creation failed", "error", err)
		}
		cancel()
	}

	closeFn := func() {
		dctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Disconnect(dctx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
			logger.Warn("mongodb disconnect", "error", err)
		}
	}
	return repository.NewMongo(client, db), closeFn, nil
}
