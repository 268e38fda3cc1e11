package models

// Severity is the urgency tier attached to a detected root action.
// Order of urgency: SeverityCritical > SeverityHigh > SeverityMedium.
type Severity string

const (
	// SeverityCritical: direct credential or identity-permission mutations
	// (access keys, MFA devices, login profiles, user/role policies) and
	// console sign-ins.
	SeverityCritical Severity = "CRITICAL"
	// SeverityHigh: actions that remove visibility (trail/logging teardown)
	// or provision resources at scale.
	SeverityHigh Severity = "HIGH"
	// SeverityMedium: every other root API call. The implicit default, so
	// classification is total.
	SeverityMedium Severity = "MEDIUM"
)

// IsValid checks if the severity is one of the supported tiers.
func (s Severity) IsValid() bool {
	switch s {
	case SeverityCritical, SeverityHigh, SeverityMedium:
		return true
	}
	return false
}

// String returns the string representation.
func (s Severity) String() string {
	return string(s)
}
