// Package extractor normalizes raw bus events into the flat field set the
// rest of the pipeline works with, and re-verifies the root-identity
// precondition. The bus is supposed to forward only root events, but a
// misconfigured filter is a realistic failure mode, so the check fails closed.
package extractor

import (
	"fmt"
	"time"

	"github.com/Specter099/aws-iam-root-user-activity-monitor/internal/monitor/models"
	"github.com/Specter099/aws-iam-root-user-activity-monitor/pkg/platform/sentinel"
)

// Unknown is the placeholder for fields the record did not carry.
const Unknown = "Unknown"

// Fields is the normalized view of one ActivityEvent.
type Fields struct {
	Action            string
	IdentityType      string
	IdentityARN       string
	AccountID         string
	Time              string
	SourceIP          string
	UserAgent         string
	Region            string
	EventCategory     string
	ErrorCode         string
	ErrorMessage      string
	RequestParameters map[string]any
	ResponseElements  map[string]any
}

// Extract normalizes the event fields, falling back from the CloudTrail
// detail to the envelope where the detail is silent. Returns
// sentinel.ErrNotRootActivity when the identity type is absent or not Root;
// the caller must not proceed to classification or notification.
func Extract(ev models.ActivityEvent) (*Fields, error) {
	identityType := ev.Detail.UserIdentity.Type
	if identityType != models.RootIdentityType {
		return nil, fmt.Errorf("%w: identity type %q", sentinel.ErrNotRootActivity, identityType)
	}

	f := &Fields{
		Action:            fallback(ev.Detail.EventName, Unknown),
		IdentityType:      identityType,
		IdentityARN:       ev.Detail.UserIdentity.ARN,
		AccountID:         fallback(ev.AccountID, ev.Detail.UserIdentity.AccountID),
		Time:              eventTime(ev),
		SourceIP:          fallback(ev.Detail.SourceIPAddress, Unknown),
		UserAgent:         fallback(ev.Detail.UserAgent, Unknown),
		Region:            fallback(ev.Detail.AWSRegion, fallback(ev.Region, Unknown)),
		EventCategory:     fallback(ev.DetailType, Unknown),
		ErrorCode:         ev.Detail.ErrorCode,
		ErrorMessage:      ev.Detail.ErrorMessage,
		RequestParameters: ev.Detail.RequestParameters,
		ResponseElements:  ev.Detail.ResponseElements,
	}
	if f.AccountID == "" {
		f.AccountID = Unknown
	}
	return f, nil
}

// eventTime prefers the CloudTrail timestamp, then the envelope timestamp,
// both normalized to ISO-8601 UTC.
func eventTime(ev models.ActivityEvent) string {
	if ev.Detail.EventTime != "" {
		if t, err := time.Parse(time.RFC3339, ev.Detail.EventTime); err == nil {
			return t.UTC().Format(time.RFC3339)
		}
		return ev.Detail.EventTime
	}
	if !ev.Time.IsZero() {
		return ev.Time.UTC().Format(time.RFC3339)
	}
	return Unknown
}

func fallback(v, alt string) string {
	if v != "" {
		return v
	}
	return alt
}
