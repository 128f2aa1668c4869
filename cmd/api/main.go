package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/BruksfildServices01/room-scheduler/internal/audit"
	"github.com/BruksfildServices01/room-scheduler/internal/config"
	dbpkg "github.com/BruksfildServices01/room-scheduler/internal/db"
	"github.com/BruksfildServices01/room-scheduler/internal/notify"
	"github.com/BruksfildServices01/room-scheduler/internal/routes"
	"github.com/BruksfildServices01/room-scheduler/internal/timezone"
)

func main() {

	cfg := config.Load()

	zerolog.TimeFieldFormat = time.RFC3339
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}

	timezone.SetDefault(cfg.Timezone)

	db := dbpkg.NewDB(cfg)
	if err := dbpkg.SeedAdmin(db, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		log.Fatal().Err(err).Msg("failed to seed administrator")
	}

	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid REDIS_URL")
	}
	rdb := redis.NewClient(redisOpts)
	defer rdb.Close()

	pingCtx, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		log.Warn().Err(err).Msg("redis unreachable, sessions and CEP cache will fail until it recovers")
	}
	cancelPing()

	var sender notify.Sender = notify.LogSender{}
	if cfg.SMTP.Enabled() {
		sender = notify.NewSMTPSender(cfg.SMTP)
	}
	mailer := notify.NewMailer(sender)
	dispatcher := audit.NewDispatcher(audit.New(db))

	r := gin.New()
	r.Use(gin.Recovery())

	routes.RegisterRoutes(r, routes.Deps{
		DB:     db,
		Redis:  rdb,
		Config: cfg,
		Audit:  dispatcher,
		Mailer: mailer,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info().Str("addr", cfg.Addr()).Msg("server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}

	dispatcher.Close()
	mailer.Close()
}
