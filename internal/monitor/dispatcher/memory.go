package dispatcher

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/Specter099/aws-iam-root-user-activity-monitor/internal/monitor/models"
)

// Delivery is one notification accepted by the in-memory channel.
type Delivery struct {
	MessageID string
	Payload   models.NotificationPayload
}

// MemoryDispatcher records notifications in memory. Used by tests and local
// runs; FailWith injects channel errors to exercise the dead-letter path.
type MemoryDispatcher struct {
	mu         sync.Mutex
	deliveries []Delivery
	failErr    error
}

// NewMemory creates an empty in-memory dispatcher.
func NewMemory() *MemoryDispatcher {
	return &MemoryDispatcher{}
}

// FailWith makes every subsequent Dispatch return err. Pass nil to restore
// normal delivery.
func (d *MemoryDispatcher) FailWith(err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.failErr = err
}

// Dispatch records the payload under a fresh message ID.
func (d *MemoryDispatcher) Dispatch(_ context.Context, payload models.NotificationPayload) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.failErr != nil {
		return d.failErr
	}
	d.deliveries = append(d.deliveries, Delivery{
		MessageID: uuid.NewString(),
		Payload:   payload,
	})
	return nil
}

// Deliveries returns a snapshot of everything dispatched so far.
func (d *MemoryDispatcher) Deliveries() []Delivery {
	d.mu.Lock()
	defer d.mu.Unlock()

	out := make([]Delivery, len(d.deliveries))
	copy(out, d.deliveries)
	return out
}
