package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	_ "github.com/lib/pq"
	"golang.org/x/sync/errgroup"

	"medibook/internal/accessgate"
	accountHandler "medibook/internal/account/handler"
	accountService "medibook/internal/account/service"
	accountStore "medibook/internal/account/store"
	"medibook/internal/assistant"
	"medibook/internal/audit"
	bookingHandler "medibook/internal/booking/handler"
	bookingService "medibook/internal/booking/service"
	bookingStore "medibook/internal/booking/store"
	"medibook/internal/platform/config"
	"medibook/internal/platform/httpserver"
	"medibook/internal/platform/logger"
	"medibook/internal/platform/metrics"
	platformredis "medibook/internal/platform/redis"
	"medibook/internal/session"
	httptransport "medibook/internal/transport/http"
)

// main wires high-level dependencies and keeps the server lifecycle small.
// Business logic lives in the internal services packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	// Stores: postgres and redis when configured, memory otherwise.
	var users accountStore.Store = accountStore.NewInMemoryStore()
	var appointments bookingStore.Store = bookingStore.NewInMemoryStore()
	if cfg.DatabaseURL != "" {
		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			log.Error("open database", "error", err)
			os.Exit(1)
		}
		defer db.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		userStore := accountStore.NewPostgres(db)
		apptStore := bookingStore.NewPostgres(db)
		if err := userStore.EnsureSchema(ctx); err != nil {
			log.Error("ensure schema", "error", err)
			os.Exit(1)
		}
		if err := apptStore.EnsureSchema(ctx); err != nil {
			log.Error("ensure schema", "error", err)
			os.Exit(1)
		}
		users, appointments = userStore, apptStore
	}

	var sessions session.Store = session.NewInMemoryStore()
	redisClient, err := platformredis.New(cfg.RedisURL)
	if err != nil {
		log.Error("connect redis", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
		sessions = session.NewRedisStore(redisClient.Client)
	}

	m := metrics.New()
	auditor := audit.NewPublisher(256)
	auditWorker := audit.NewWorker(audit.NewInMemoryStore(), auditor)

	sessionManager := session.NewManager(cfg.JWTSigningKey, cfg.SessionTTL, sessions)
	gate := accessgate.NewMiddleware(sessionManager, auditor, log, m)

	accounts := accountService.New(users, sessionManager, auditor, m, log)
	bookings := bookingService.New(appointments, auditor, m, log)

	deps := httptransport.Deps{
		Gate:     gate,
		Accounts: accountHandler.New(accounts, m, log),
		Bookings: bookingHandler.New(bookings, m, log),
	}
	if llm := assistant.NewOpenAIClient(); llm != nil {
		deps.Assistant = assistant.NewHandler(assistant.New(llm, bookings, log), log)
	}

	srv := httpserver.New(cfg.Addr, httptransport.NewRouter(deps, cfg.AllowedOrigin))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		log.Info("starting medibook", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		if err := auditWorker.Run(groupCtx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-groupCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
