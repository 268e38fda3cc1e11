package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/iam"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/twmb/franz-go/pkg/kgo"

	"github.com/Specter099/aws-iam-root-user-activity-monitor/internal/monitor/alias"
	"github.com/Specter099/aws-iam-root-user-activity-monitor/internal/monitor/classifier"
	"github.com/Specter099/aws-iam-root-user-activity-monitor/internal/monitor/dispatcher"
	"github.com/Specter099/aws-iam-root-user-activity-monitor/internal/monitor/handler"
	"github.com/Specter099/aws-iam-root-user-activity-monitor/internal/monitor/metrics"
	"github.com/Specter099/aws-iam-root-user-activity-monitor/internal/monitor/service"
	"github.com/Specter099/aws-iam-root-user-activity-monitor/internal/platform/config"
	"github.com/Specter099/aws-iam-root-user-activity-monitor/internal/platform/httpserver"
	"github.com/Specter099/aws-iam-root-user-activity-monitor/internal/platform/logger"
)

// main wires the long-running mode: the bus delivers events to POST /events
// and the server exposes health and metrics. Business logic lives in the
// internal/monitor packages.
func main() {
	ctx := context.Background()
	log := logger.New()
	cfg := config.FromEnv()

	table := classifier.DefaultTable()
	var err error
	if cfg.SeverityTablePath != "" {
		table, err = classifier.LoadTable(cfg.SeverityTablePath)
		if err != nil {
			fatal(log, "load severity table", "error", err)
		}
	}
	cls, err := classifier.New(table)
	if err != nil {
		fatal(log, "invalid severity table", "error", err)
	}

	disp, resolver, cleanup, err := buildChannel(ctx, cfg, log)
	if err != nil {
		fatal(log, "configure notification channel", "error", err)
	}
	defer cleanup()

	svc, err := service.New(cls, resolver, disp,
		service.WithLogger(log),
		service.WithMetrics(metrics.New()),
	)
	if err != nil {
		fatal(log, "configure service", "error", err)
	}

	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())
	handler.New(svc, log).Register(r)

	srv := httpserver.New(cfg.Addr, r)

	log.Info("starting root activity monitor", "addr", cfg.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fatal(log, "server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit

	shCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shCtx); err != nil {
		fatal(log, "graceful shutdown failed", "error", err)
	}
}

// buildChannel selects the notification channel and alias resolver from
// configuration: SNS_TOPIC_ARN wins, otherwise KAFKA_BROKERS, otherwise the
// deployment is misconfigured.
func buildChannel(ctx context.Context, cfg config.Config, log *slog.Logger) (dispatcher.Dispatcher, alias.Resolver, func(), error) {
	noop := func() {}

	var resolver alias.Resolver
	if cfg.AccountAliases != nil {
		resolver = alias.NewStatic(cfg.AccountAliases)
	}

	if cfg.TopicARN != "" {
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, nil, noop, err
		}
		if resolver == nil {
			resolver = alias.NewIAM(iam.NewFromConfig(awsCfg),
				alias.WithLookupTimeout(cfg.AliasLookupTimeout))
		}
		disp, err := dispatcher.NewSNS(sns.NewFromConfig(awsCfg), cfg.TopicARN)
		return disp, resolver, noop, err
	}

	if len(cfg.KafkaBrokers) > 0 {
		if resolver == nil {
			// No IAM access in self-hosted mode; incidents carry the raw ID.
			resolver = alias.NewStatic(nil)
		}
		client, err := kgo.NewClient(
			kgo.SeedBrokers(cfg.KafkaBrokers...),
			kgo.DefaultProduceTopic(cfg.KafkaTopic),
		)
		if err != nil {
			return nil, nil, noop, err
		}
		disp, err := dispatcher.NewKafka(client, cfg.KafkaTopic)
		return disp, resolver, client.Close, err
	}

	log.Error("no notification channel configured")
	return nil, nil, noop, errors.New("set SNS_TOPIC_ARN or KAFKA_BROKERS")
}

func fatal(log *slog.Logger, msg string, args ...any) {
	log.Error(msg, args...)
	os.Exit(1)
}
