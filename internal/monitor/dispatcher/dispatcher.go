// Package dispatcher delivers rendered notifications to the external
// channel. Implementations do not retry: a failed publish surfaces so the
// host's retry/dead-letter mechanism engages.
package dispatcher

import (
	"context"

	"github.com/Specter099/aws-iam-root-user-activity-monitor/internal/monitor/models"
)

// Dispatcher publishes one notification per invocation.
type Dispatcher interface {
	Dispatch(ctx context.Context, payload models.NotificationPayload) error
}
