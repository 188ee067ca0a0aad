package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/dmarais/go-autoquote/internal/core"
	transporthttp "github.com/dmarais/go-autoquote/internal/http"
	"github.com/dmarais/go-autoquote/internal/http/handlers"
	"github.com/dmarais/go-autoquote/internal/http/health"
	"github.com/dmarais/go-autoquote/internal/jobs"
	"github.com/dmarais/go-autoquote/internal/middleware"
	"github.com/dmarais/go-autoquote/internal/platform/config"
	"github.com/dmarais/go-autoquote/internal/platform/logging"
	"github.com/dmarais/go-autoquote/internal/store/dynamo"
	"github.com/dmarais/go-autoquote/internal/store/mongo"
)

func main() {
	cfg := config.MustLoad()
	log := logging.New(cfg.Env)
	log.Info("starting autoquote API", "port", cfg.Port, "env", cfg.Env, "db", cfg.DBType)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rating, err := core.NewRatingConfig(cfg.VINPattern,
		cfg.MinDriverAge, cfg.MaxDriverAge, cfg.MaxVehicleAge, cfg.MaxDrivers,
		cfg.BasePremium)
	if err != nil {
		log.Error("invalid rating config", "err", err)
		os.Exit(1)
	}

	var (
		repo   core.QuoteRepo
		pinger health.Pinger
	)
	switch cfg.DBType {
	case "mongo":
		client, err := mongo.NewClient(cfg)
		if err != nil {
			log.Error("mongo connect failed", "err", err)
			os.Exit(1)
		}
		defer client.Close(context.Background())
		repo = mongo.NewQuoteRepo(client.DB, time.Duration(cfg.MongoOpTimeoutMs)*time.Millisecond)
		pinger = client
	default:
		client, err := dynamo.NewClient(ctx, dynamo.Config{
			Region:          cfg.AWSRegion,
			Endpoint:        cfg.DynamoDBEndpoint,
			AccessKeyID:     cfg.AWSAccessKeyID,
			SecretAccessKey: cfg.AWSSecretAccessKey,
		})
		if err != nil {
			log.Error("dynamodb connect failed", "err", err)
			os.Exit(1)
		}
		if err := dynamo.EnsureTables(ctx, client.DB, log); err != nil {
			log.Error("dynamodb table setup failed", "err", err)
			os.Exit(1)
		}
		repo = dynamo.NewQuoteRepo(client.DB)
		pinger = client
	}

	calcCache := core.NewCalcCache(time.Duration(cfg.CalcCacheTTLSec) * time.Second)
	svc := core.NewQuoteService(repo, rating, calcCache, log)

	janitor := jobs.NewCacheJanitor(calcCache,
		time.Duration(cfg.JanitorInterval)*time.Second, log)
	go janitor.Start(ctx)

	limiter := middleware.NewRateLimiter(cfg.RateLimitRPM, time.Minute)
	defer limiter.Stop()

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(time.Duration(cfg.HTTPRequestTimeoutSec) * time.Second))
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.LimitRequestBody(middleware.MaxBodySize))
	r.Use(middleware.APIKey(cfg.APIKey))
	r.Use(limiter.Handler)

	r.Mount("/", transporthttp.NewRouter(transporthttp.Deps{
		Mounts: []handlers.Mountable{
			handlers.NewQuoteHandler(svc, log),
		},
	}))
	hh := health.New(log, pinger, 2*time.Second)
	r.Handle("/health", hh)
	r.Handle("/readyz", hh)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTPReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTPWriteTimeoutSec) * time.Second,
		IdleTimeout:  time.Duration(cfg.HTTPIdleTimeoutSec) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("server shutdown failed", "err", err)
		}
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			log.Error("server failed", "err", err)
			os.Exit(1)
		}
	}
}
