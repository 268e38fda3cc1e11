// Package composer assembles the enriched IncidentRecord from extracted
// fields, the classified severity, and the resolved account alias. Pure: no
// network, no randomness, no clock.
package composer

import (
	"github.com/Specter099/aws-iam-root-user-activity-monitor/internal/monitor/extractor"
	"github.com/Specter099/aws-iam-root-user-activity-monitor/internal/monitor/models"
)

// remediation maps each tier to its recommended response actions, rendered in
// declared order. Static and read-only after init.
var remediation = map[models.Severity][]string{
	models.SeverityCritical: {
		"Verify this activity was authorized immediately",
		"If unauthorized, rotate root credentials and enable MFA",
		"Review CloudTrail logs for related activity",
		"Consider enabling AWS Organizations SCP to deny root actions",
	},
	models.SeverityHigh: {
		"Confirm the action was performed by an authorized operator",
		"Review CloudTrail for the full session activity",
		"Validate no security controls were weakened",
	},
	models.SeverityMedium: {
		"Review whether root usage was necessary",
		"Consider using IAM roles with least-privilege instead",
	},
}

// Remediation returns the response actions for a tier. Unknown tiers get the
// MEDIUM guidance so the notification never ships without advice.
func Remediation(severity models.Severity) []string {
	if steps, ok := remediation[severity]; ok {
		return steps
	}
	return remediation[models.SeverityMedium]
}

// Compose builds the IncidentRecord. Error fields mirror the input: absent on
// successful API calls, present verbatim on failed ones.
func Compose(f *extractor.Fields, severity models.Severity, accountAlias string) models.IncidentRecord {
	if accountAlias == "" {
		accountAlias = f.AccountID
	}
	return models.IncidentRecord{
		Severity:          severity,
		AccountID:         f.AccountID,
		AccountAlias:      accountAlias,
		Action:            f.Action,
		EventCategory:     f.EventCategory,
		IdentityARN:       f.IdentityARN,
		Time:              f.Time,
		SourceIP:          f.SourceIP,
		UserAgent:         f.UserAgent,
		Region:            f.Region,
		ErrorCode:         f.ErrorCode,
		ErrorMessage:      f.ErrorMessage,
		RequestParameters: f.RequestParameters,
		ResponseElements:  f.ResponseElements,
		Remediation:       Remediation(severity),
	}
}
