// Package service orchestrates the monitor pipeline: extract, classify,
// resolve, compose, render, dispatch. One event is processed start-to-finish
// per invocation with no shared mutable state; classification, composition,
// and rendering complete fully in memory before the single dispatch call, so
// no partial notification is ever sent.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Specter099/aws-iam-root-user-activity-monitor/internal/monitor/alias"
	"github.com/Specter099/aws-iam-root-user-activity-monitor/internal/monitor/classifier"
	"github.com/Specter099/aws-iam-root-user-activity-monitor/internal/monitor/composer"
	"github.com/Specter099/aws-iam-root-user-activity-monitor/internal/monitor/dispatcher"
	"github.com/Specter099/aws-iam-root-user-activity-monitor/internal/monitor/extractor"
	"github.com/Specter099/aws-iam-root-user-activity-monitor/internal/monitor/metrics"
	"github.com/Specter099/aws-iam-root-user-activity-monitor/internal/monitor/models"
	"github.com/Specter099/aws-iam-root-user-activity-monitor/internal/monitor/renderer"
	"github.com/Specter099/aws-iam-root-user-activity-monitor/pkg/platform/sentinel"
)

// Service is the incident classifier and notifier.
type Service struct {
	classifier *classifier.Classifier
	resolver   alias.Resolver
	dispatcher dispatcher.Dispatcher
	logger     *slog.Logger
	metrics    *metrics.Metrics
}

// Option configures the Service.
type Option func(*Service)

// WithLogger sets a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithMetrics sets the metrics collector.
func WithMetrics(m *Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// Metrics is re-exported so callers configure the service without importing
// the metrics package directly.
type Metrics = metrics.Metrics

// New constructs the service with required dependencies.
func New(c *classifier.Classifier, r alias.Resolver, d dispatcher.Dispatcher, opts ...Option) (*Service, error) {
	if c == nil {
		return nil, fmt.Errorf("classifier is required")
	}
	if r == nil {
		return nil, fmt.Errorf("alias resolver is required")
	}
	if d == nil {
		return nil, fmt.Errorf("dispatcher is required")
	}

	svc := &Service{
		classifier: c,
		resolver:   r,
		dispatcher: d,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// Handle processes one activity event end to end.
//
// Failure policy: the root-identity precondition and alias lookups degrade
// locally and never surface; a channel error is the single abnormal exit,
// returned wrapped in sentinel.ErrDispatchFailed so the host routes the
// invocation to its dead-letter mechanism.
func (s *Service) Handle(ctx context.Context, ev models.ActivityEvent) error {
	fields, err := extractor.Extract(ev)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotRootActivity) {
			s.logger.WarnContext(ctx, "event failed root-identity precondition, skipping",
				"event_id", ev.ID,
				"identity_type", ev.Detail.UserIdentity.Type,
				"account", ev.AccountID,
			)
			if s.metrics != nil {
				s.metrics.IncNonRootRejected()
			}
			return nil
		}
		return err
	}

	severity := s.classifier.ClassifyEvent(fields.Action, fields.EventCategory)

	accountAlias := s.resolveAlias(ctx, fields.AccountID)

	incident := composer.Compose(fields, severity, accountAlias)
	payload, err := renderer.Render(incident)
	if err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "root activity detected",
		"action", fields.Action,
		"severity", severity.String(),
		"account", fields.AccountID,
		"region", fields.Region,
		"source_ip", fields.SourceIP,
	)

	if err := s.dispatcher.Dispatch(ctx, payload); err != nil {
		if s.metrics != nil {
			s.metrics.IncDispatchFailure()
		}
		s.logger.ErrorContext(ctx, "notification dispatch failed",
			"action", fields.Action,
			"account", fields.AccountID,
			"error", err,
		)
		return fmt.Errorf("%w: %v", sentinel.ErrDispatchFailed, err)
	}

	if s.metrics != nil {
		s.metrics.IncProcessed(severity)
	}
	return nil
}

// resolveAlias degrades to the raw account ID on any lookup failure; alias
// resolution must never abort the pipeline.
func (s *Service) resolveAlias(ctx context.Context, accountID string) string {
	resolved, err := s.resolver.Resolve(ctx, accountID)
	if err != nil || resolved == "" {
		s.logger.WarnContext(ctx, "alias resolution degraded to account id",
			"account", accountID,
			"error", err,
		)
		if s.metrics != nil {
			s.metrics.IncAliasFallback()
		}
		return accountID
	}
	return resolved
}
