package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/marcelsud/troquecommerce-bridge/config"
	"github.com/marcelsud/troquecommerce-bridge/internal/http/chi"
	"github.com/marcelsud/troquecommerce-bridge/metrics"
	"github.com/marcelsud/troquecommerce-bridge/millennium"
	"github.com/marcelsud/troquecommerce-bridge/troquecommerce"
	"github.com/marcelsud/troquecommerce-bridge/webhook"
	"github.com/marcelsud/troquecommerce-bridge/webhook/memory"
	redisstore "github.com/marcelsud/troquecommerce-bridge/webhook/redis"
	"github.com/marcelsud/troquecommerce-bridge/webhook/secret"
)

const TIMEOUT = 30 * time.Second

/*
 * main wires everything: config, event store, ERP lookups, metrics and the HTTP server.
 * Imports only go downwards: cmd imports the business packages, which import storage.
 */

func main() {
	cfg, err := config.GetConfig()
	if err != nil {
		fmt.Println(err)
		return
	}
	logger := cfg.Logger("troquecommerce-bridge")

	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT,
	)
	defer stop()

	allow, err := webhook.ParseAllowList(cfg.AcceptedEvents)
	if err != nil {
		logger.Error().Err(err).Msg("parsing ACCEPTED_EVENTS")
		return
	}
	for _, code := range allow.Codes() {
		if !webhook.Known(code) {
			logger.Warn().Str("event_code", code).Msg("accepted event code is not in the catalog")
		}
	}

	repo, err := openStore(cfg)
	if err != nil {
		logger.Error().Err(err).Str("store", cfg.EventStore).Msg("opening event store")
		return
	}
	defer repo.Close(context.Background())
	s := webhook.NewService(repo)

	erp, err := millennium.NewClient(cfg.MillenniumBaseURL, cfg.MillenniumVitrine, &http.Client{Timeout: cfg.LookupTimeout})
	if err != nil {
		logger.Error().Err(err).Msg("creating Millennium client")
		return
	}

	var dispatcher *millennium.Dispatcher
	collector := metrics.NewStoreCollector(repo, cfg.EventLogCapacity, func() int {
		if dispatcher == nil {
			return 0
		}
		return dispatcher.QueueLen()
	})
	exporter, err := metrics.NewOTelExporter(collector, nil)
	if err != nil {
		logger.Error().Err(err).Msg("creating metrics exporter")
		return
	}
	defer exporter.Shutdown(context.Background())

	dispatcher = millennium.NewDispatcher(
		millennium.NewLookup(erp, logger),
		cfg.LookupWorkers, cfg.LookupQueueSize, cfg.LookupTimeout,
		exporter, logger,
	)

	webhookSecret := secret.New(cfg.WebhookToken)
	if webhookSecret.Open() {
		logger.Warn().Msg("WEBHOOK_TOKEN is empty, inbound webhooks are accepted without authentication")
	}

	requestTimeout := cfg.ProxyTimeout + 5*time.Second
	r := chi.Handlers(ctx, chi.Deps{
		Prefix:         cfg.APIPrefix,
		Secret:         webhookSecret,
		AllowList:      allow,
		Events:         s,
		Lookups:        dispatcher,
		Proxy:          troquecommerce.NewClient(&http.Client{Timeout: cfg.ProxyTimeout}),
		Recorder:       exporter,
		Metrics:        exporter.ServeHTTP(),
		Logger:         logger,
		MaxBodyBytes:   cfg.MaxBodyBytes,
		RequestTimeout: requestTimeout,
		StartedAt:      time.Now(),
	})
	srv := &http.Server{
		ReadTimeout:  30 * time.Second,
		WriteTimeout: requestTimeout + 5*time.Second,
		Addr:         ":" + cfg.Port,
		Handler:      r,
	}

	errShutdown := make(chan error, 1)
	go shutdown(srv, ctx, errShutdown)
	logger.Info().
		Str("port", cfg.Port).
		Str("prefix", cfg.APIPrefix).
		Strs("accepted_events", allow.Codes()).
		Str("store", cfg.EventStore).
		Msg("Troquecommerce webhook server listening")
	err = srv.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		logger.Error().Err(err).Msg("serving HTTP")
		return
	}
	err = <-errShutdown
	if err != nil {
		logger.Error().Err(err).Msg("shutting down")
	}

	ctxDrain, cancel := context.WithTimeout(context.Background(), TIMEOUT)
	defer cancel()
	if err := dispatcher.Drain(ctxDrain); err != nil {
		logger.Warn().Err(err).Int("pending", dispatcher.QueueLen()).Msg("abandoning pending ERP lookups")
	}
}

func openStore(cfg *config.Config) (webhook.Repository, error) {
	switch cfg.EventStore {
	case config.StoreRedis:
		return redisstore.NewRepository(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.RedisKey, cfg.EventLogCapacity)
	default:
		return memory.NewRepository(cfg.EventLogCapacity)
	}
}

func shutdown(server *http.Server, ctxShutdown context.Context, errShutdown chan error) {
	<-ctxShutdown.Done()

	ctxTimeout, stop := context.WithTimeout(context.Background(), TIMEOUT)
	defer stop()

	err := server.Shutdown(ctxTimeout)
	switch err {
	case nil:
		fmt.Printf("\nShutting down server...\n")
		errShutdown <- nil
	case context.DeadlineExceeded:
		errShutdown <- fmt.Errorf("Forcing closing the server")
	default:
		errShutdown <- fmt.Errorf("Forcing closing the server")
	}
}
