package models

// IncidentRecord is the enriched, ephemeral view of one root activity event.
// It exists only for the duration of one invocation; both notification
// renderings are derived from it alone.
type IncidentRecord struct {
	Severity          Severity       `json:"severity"`
	AccountID         string         `json:"account_id"`
	AccountAlias      string         `json:"account_alias"`
	Action            string         `json:"action"`
	EventCategory     string         `json:"event_category"`
	IdentityARN       string         `json:"identity_arn,omitempty"`
	Time              string         `json:"time"`
	SourceIP          string         `json:"source_ip"`
	UserAgent         string         `json:"user_agent"`
	Region            string         `json:"region"`
	ErrorCode         string         `json:"error_code,omitempty"`
	ErrorMessage      string         `json:"error_message,omitempty"`
	RequestParameters map[string]any `json:"request_parameters,omitempty"`
	ResponseElements  map[string]any `json:"response_elements,omitempty"`
	Remediation       []string       `json:"remediation"`
}

// NotificationPayload carries the two renderings of an IncidentRecord plus
// the routing attributes channels need (severity tag, originating account).
// StructuredBody is a lossless JSON encoding of the IncidentRecord.
type NotificationPayload struct {
	Subject        string
	TextBody       string
	StructuredBody []byte
	Severity       Severity
	AccountID      string
}
