// Command server runs the LimpopoConnect web frontend.
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/iliyamo/limpopo-connect-web/internal/app"
	"github.com/iliyamo/limpopo-connect-web/internal/config"
	"github.com/iliyamo/limpopo-connect-web/internal/queue"
)

func main() {
	_ = godotenv.Load() // a missing .env is fine; real deployments use the environment

	cfg := config.Load()
	cfg.ConfigureLogging()

	rdb := config.NewRedisClient() // nil when Redis is unreachable
	var events queue.Publisher = queue.Noop{}
	if cfg.EventsEnabled {
		events = queue.NewAMQPPublisher(cfg.AMQPURL)
	}

	e, err := app.New(cfg, app.Deps{
		Redis:     rdb,
		Events:    events,
		RateLimit: config.LoadRateLimitConfig(),
		RefCache:  config.LoadRefDataCacheConfig(),
	})
	if err != nil {
		log.WithError(err).Fatal("startup failed")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	addr := ":" + cfg.Port
	go func() {
		log.WithFields(log.Fields{"addr": addr, "env": cfg.Env, "backend": cfg.BackendURL}).Info("listening")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server stopped")
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("graceful shutdown failed")
	}
	if err := queue.Drain(shutdownCtx); err != nil {
		log.WithError(err).Warn("activity events still publishing at shutdown")
	}
	if rdb != nil {
		_ = rdb.Close()
	}
}
