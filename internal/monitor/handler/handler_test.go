package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Specter099/aws-iam-root-user-activity-monitor/internal/monitor/alias"
	"github.com/Specter099/aws-iam-root-user-activity-monitor/internal/monitor/classifier"
	"github.com/Specter099/aws-iam-root-user-activity-monitor/internal/monitor/dispatcher"
	"github.com/Specter099/aws-iam-root-user-activity-monitor/internal/monitor/models"
	"github.com/Specter099/aws-iam-root-user-activity-monitor/internal/monitor/service"
	"github.com/Specter099/aws-iam-root-user-activity-monitor/pkg/platform/sentinel"
)

func newEventRouter(t *testing.T) (chi.Router, *dispatcher.MemoryDispatcher) {
	t.Helper()

	cls, err := classifier.New(classifier.DefaultTable())
	if err != nil {
		t.Fatalf("building classifier: %v", err)
	}
	channel := dispatcher.NewMemory()
	svc, err := service.New(cls, alias.NewStatic(nil), channel)
	if err != nil {
		t.Fatalf("building service: %v", err)
	}

	r := chi.NewRouter()
	New(svc, slog.New(slog.NewTextHandler(io.Discard, nil))).Register(r)
	return r, channel
}

func rootEventBody(t *testing.T) []byte {
	t.Helper()

	ev := models.ActivityEvent{
		ID:         "evt-1",
		DetailType: models.DetailTypeAPICall,
		AccountID:  "123456789012",
		Time:       time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC),
		Region:     "us-east-1",
		Detail: models.ActivityDetail{
			UserIdentity: models.UserIdentity{Type: models.RootIdentityType},
			EventName:    "StopLogging",
		},
	}
	body, err := json.Marshal(ev)
	if err != nil {
		t.Fatalf("marshaling event: %v", err)
	}
	return body
}

func TestEventDelivered(t *testing.T) {
	router, channel := newEventRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/events", bytes.NewReader(rootEventBody(t)))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	deliveries := channel.Deliveries()
	if len(deliveries) != 1 {
		t.Fatalf("expected 1 delivery, got %d", len(deliveries))
	}
	if deliveries[0].Payload.Severity != models.SeverityHigh {
		t.Fatalf("expected HIGH severity, got %s", deliveries[0].Payload.Severity)
	}
}

func TestMalformedEnvelopeRejected(t *testing.T) {
	router, channel := newEventRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/events", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed envelope, got %d", rec.Code)
	}
	if len(channel.Deliveries()) != 0 {
		t.Fatal("malformed envelope must not dispatch")
	}
}

func TestDispatchFailureTriggersRedelivery(t *testing.T) {
	router, channel := newEventRouter(t)
	channel.FailWith(sentinel.ErrDispatchFailed)

	req := httptest.NewRequest(http.MethodPost, "/events", bytes.NewReader(rootEventBody(t)))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 so the subscription redelivers, got %d", rec.Code)
	}
}

func TestNonRootEventAccepted(t *testing.T) {
	router, channel := newEventRouter(t)

	ev := models.ActivityEvent{
		DetailType: models.DetailTypeAPICall,
		AccountID:  "123456789012",
		Detail: models.ActivityDetail{
			UserIdentity: models.UserIdentity{Type: "IAMUser"},
			EventName:    "ConsoleLogin",
		},
	}
	body, _ := json.Marshal(ev)

	req := httptest.NewRequest(http.MethodPost, "/events", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	// The precondition rejection is swallowed: redelivering a non-root
	// event would never succeed, so the bus sees success.
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204 for filtered event, got %d", rec.Code)
	}
	if len(channel.Deliveries()) != 0 {
		t.Fatal("non-root event must not dispatch")
	}
}
