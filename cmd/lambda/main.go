package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/iam"
	"github.com/aws/aws-sdk-go-v2/service/sns"

	"github.com/Specter099/aws-iam-root-user-activity-monitor/internal/monitor/alias"
	"github.com/Specter099/aws-iam-root-user-activity-monitor/internal/monitor/classifier"
	"github.com/Specter099/aws-iam-root-user-activity-monitor/internal/monitor/dispatcher"
	"github.com/Specter099/aws-iam-root-user-activity-monitor/internal/monitor/service"
	"github.com/Specter099/aws-iam-root-user-activity-monitor/internal/platform/config"
	"github.com/Specter099/aws-iam-root-user-activity-monitor/internal/platform/logger"
)

// main wires the Lambda entrypoint. The host invokes the handler once per
// forwarded event and owns retries and dead-lettering; configuration problems
// are fatal at startup, never per event.
func main() {
	ctx := context.Background()
	log := logger.New()
	cfg := config.FromEnv()

	if cfg.TopicARN == "" {
		fatal(log, "SNS_TOPIC_ARN must be set")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		fatal(log, "load aws config", "error", err)
	}

	table := classifier.DefaultTable()
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

	var resolver alias.Resolver
	if cfg.AccountAliases != nil {
		resolver = alias.NewStatic(cfg.AccountAliases)
	} else {
		resolver = alias.NewIAM(iam.NewFromConfig(awsCfg),
			alias.WithLookupTimeout(cfg.AliasLookupTimeout))
	}

	disp, err := dispatcher.NewSNS(sns.NewFromConfig(awsCfg), cfg.TopicARN)
	if err != nil {
		fatal(log, "configure sns dispatcher", "error", err)
	}

	svc, err := service.New(cls, resolver, disp, service.WithLogger(log))
	if err != nil {
		fatal(log, "configure service", "error", err)
	}

	lambda.Start(svc.Handle)
}

func fatal(log *slog.Logger, msg string, args ...any) {
	log.Error(msg, args...)
	os.Exit(1)
}
