package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/quejasboyaca/complaint-service/internal/auth"
	"github.com/quejasboyaca/complaint-service/internal/captcha"
	"github.com/quejasboyaca/complaint-service/internal/config"
	"github.com/quejasboyaca/complaint-service/internal/database"
	"github.com/quejasboyaca/complaint-service/internal/handler"
	"github.com/quejasboyaca/complaint-service/internal/logger"
	"github.com/quejasboyaca/complaint-service/internal/notification"
	"github.com/quejasboyaca/complaint-service/internal/queue"
	"github.com/quejasboyaca/complaint-service/internal/render"
	"github.com/quejasboyaca/complaint-service/internal/repository"
	"github.com/quejasboyaca/complaint-service/internal/router"
	"github.com/quejasboyaca/complaint-service/internal/service"
	"github.com/quejasboyaca/complaint-service/internal/upstream"
	"github.com/quejasboyaca/complaint-service/internal/worker"
)

const captchaTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		boot := zerolog.New(os.Stderr)
		boot.Fatal().Err(err).Msg("configuration")
	}
	log := logger.New(cfg.LogLevel, cfg.IsDevelopment())

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatal().Err(err).Str("host", cfg.DBHost).Msg("database connection failed")
	}
	defer db.Close()

	poolCfg := worker.DefaultConfig()
	poolCfg.Concurrency = cfg.Notify.Workers
	poolCfg.QueueSize = cfg.Notify.QueueSize
	poolCfg.TaskTimeout = cfg.Notify.Timeout
	pool, err := worker.New(poolCfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("worker pool")
	}
	pool.Start()

	var authSvc auth.Service
	switch cfg.AuthMode {
	case config.AuthModeRemote:
		authSvc = auth.NewRemoteService(cfg.AuthServiceURL, upstream.New("auth", cfg.AuthTimeout), log)
	default:
		authSvc = auth.NewStoreService(repository.NewUserRepo(db), log)
	}
	log.Info().Str("mode", cfg.AuthMode).Msg("auth strategy selected")

	var events service.EventSink
	if cfg.EventsEnabled {
		events = queue.NewEmitter(queue.NewPublisher(queue.ResolveURL(cfg.RabbitMQURL), log), pool)
		log.Info().Str("queue", queue.QueueName).Msg("audit events enabled")
	}

	complaints := service.NewComplaintService(
		repository.NewComplaintRepo(db),
		repository.NewEntityRepo(db),
		repository.NewCommentRepo(db),
		authSvc,
		events,
		log,
	)

	factory := notification.NewFactory(cfg.Mail.Provider, notification.Credentials{
		User:     cfg.Mail.User,
		Password: cfg.Mail.Password,
	}, log)
	notifier := notification.NewNotifier(factory, log)
	if _, err := notifier.Service(); err != nil {
		log.Warn().Err(err).Msg("email notifications unavailable until configured")
	}

	templates, err := render.New(log)
	if err != nil {
		log.Fatal().Err(err).Msg("templates")
	}

	rlCfg, err := config.LoadRateLimitConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("rate limit configuration")
	}
	rdb := config.NewRedisClient()
	if rdb == nil {
		if rlCfg.Enabled {
			log.Warn().Msg("redis unreachable; rate limiting disabled")
		}
	} else {
		defer rdb.Close()
	}

	e := router.New(router.Deps{
		Complaints: complaints,
		Auth:       handler.NewAuthHandler(authSvc),
		Captcha: handler.NewCaptchaHandler(
			captcha.NewVerifier(cfg.RecaptchaURL, cfg.RecaptchaSecret, upstream.New("recaptcha", captchaTimeout), log),
			log,
		),
		Notifier:  notifier,
		Pool:      pool,
		Renderer:  templates,
		RateLimit: rlCfg,
		Redis:     rdb,
		Logger:    log,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		addr := ":" + cfg.Port
		log.Info().Str("addr", addr).Str("env", cfg.Env).Msg("listening")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server stopped")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}
	// In-flight notifications and events get the pool's shutdown window.
	pool.Stop()
	log.Info().Msg("bye")
}
