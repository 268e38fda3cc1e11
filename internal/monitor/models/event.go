package models

import "time"

// Event category detail-types as they arrive from the audit-log pipeline.
// The bus forwards three recognized categories; anything else is still
// processed but classified purely by event name.
const (
	DetailTypeAPICall       = "AWS API Call via CloudTrail"
	DetailTypeConsoleSignIn = "AWS Console Sign In via CloudTrail"
	DetailTypeServiceEvent  = "AWS Service Event via CloudTrail"
)

// RootIdentityType is the userIdentity.type value CloudTrail assigns to
// actions performed with root credentials.
const RootIdentityType = "Root"

// ActivityEvent is the bus envelope carrying one CloudTrail record. The shape
// is external and immutable; json tags follow the EventBridge wire format.
type ActivityEvent struct {
	Version    string         `json:"version"`
	ID         string         `json:"id"`
	DetailType string         `json:"detail-type"`
	Source     string         `json:"source"`
	AccountID  string         `json:"account"`
	Time       time.Time      `json:"time"`
	Region     string         `json:"region"`
	Resources  []string       `json:"resources,omitempty"`
	Detail     ActivityDetail `json:"detail"`
}

// ActivityDetail is the CloudTrail record inside the envelope. Request and
// response parameters stay untyped: their shape varies per API action and the
// pipeline only passes them through.
type ActivityDetail struct {
	EventVersion      string         `json:"eventVersion,omitempty"`
	UserIdentity      UserIdentity   `json:"userIdentity"`
	EventTime         string         `json:"eventTime,omitempty"`
	EventSource       string         `json:"eventSource,omitempty"`
	EventName         string         `json:"eventName"`
	AWSRegion         string         `json:"awsRegion,omitempty"`
	SourceIPAddress   string         `json:"sourceIPAddress,omitempty"`
	UserAgent         string         `json:"userAgent,omitempty"`
	ErrorCode         string         `json:"errorCode,omitempty"`
	ErrorMessage      string         `json:"errorMessage,omitempty"`
	RequestParameters map[string]any `json:"requestParameters,omitempty"`
	ResponseElements  map[string]any `json:"responseElements,omitempty"`
	EventID           string         `json:"eventID,omitempty"`
	EventType         string         `json:"eventType,omitempty"`
}

// UserIdentity identifies the principal behind the CloudTrail record.
type UserIdentity struct {
	Type        string `json:"type,omitempty"`
	PrincipalID string `json:"principalId,omitempty"`
	ARN         string `json:"arn,omitempty"`
	AccountID   string `json:"accountId,omitempty"`
	InvokedBy   string `json:"invokedBy,omitempty"`
}
