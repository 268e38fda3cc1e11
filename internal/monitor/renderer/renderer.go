// Package renderer produces the notification payloads for one
// IncidentRecord: a bounded subject line, a human-readable text body, and a
// lossless structured encoding. Rendering is pure and deterministic; the host
// may redeliver an event, and identical input must yield an identical
// notification.
package renderer

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/mssola/useragent"

	"github.com/Specter099/aws-iam-root-user-activity-monitor/internal/monitor/models"
)

// MaxSubjectLength is the hard limit imposed by the notification channel.
const MaxSubjectLength = 100

// Render derives both notification bodies from the incident alone.
func Render(inc models.IncidentRecord) (models.NotificationPayload, error) {
	structured, err := json.Marshal(inc)
	if err != nil {
		return models.NotificationPayload{}, fmt.Errorf("encode incident: %w", err)
	}
	return models.NotificationPayload{
		Subject:        Subject(inc),
		TextBody:       textBody(inc),
		StructuredBody: structured,
		Severity:       inc.Severity,
		AccountID:      inc.AccountID,
	}, nil
}

// Subject renders "[{severity}] Root: {action} in {accountAliasOrID}",
// truncated to MaxSubjectLength. The fixed prefix is built first and trailing
// context appended only as far as it fits, so the severity tag and action
// name survive even a very long account alias.
func Subject(inc models.IncidentRecord) string {
	prefix := fmt.Sprintf("[%s] Root: %s in ", inc.Severity, inc.Action)
	s := prefix + inc.AccountAlias
	if len(s) > MaxSubjectLength {
		// Back off to a rune boundary so truncation never leaves a
		// partial multi-byte character in the subject.
		cut := MaxSubjectLength
		for cut > 0 && !utf8.RuneStart(s[cut]) {
			cut--
		}
		s = s[:cut]
	}
	return s
}

func textBody(inc models.IncidentRecord) string {
	divider := strings.Repeat("=", 60)
	lines := []string{
		divider,
		fmt.Sprintf("  ROOT USER ACTIVITY DETECTED - Severity: %s", inc.Severity),
		divider,
		"",
		fmt.Sprintf("Account:       %s (%s)", inc.AccountAlias, inc.AccountID),
		fmt.Sprintf("Action:        %s", inc.Action),
		fmt.Sprintf("Event Type:    %s", inc.EventCategory),
		fmt.Sprintf("Time (UTC):    %s", inc.Time),
		fmt.Sprintf("Region:        %s", inc.Region),
		fmt.Sprintf("Source IP:     %s", inc.SourceIP),
		fmt.Sprintf("User Agent:    %s", displayUserAgent(inc.UserAgent)),
	}

	if inc.IdentityARN != "" {
		lines = append(lines, fmt.Sprintf("Identity ARN:  %s", inc.IdentityARN))
	}
	if inc.ErrorCode != "" {
		lines = append(lines, fmt.Sprintf("Error Code:    %s", inc.ErrorCode))
	}
	if inc.ErrorMessage != "" {
		lines = append(lines, fmt.Sprintf("Error Message: %s", inc.ErrorMessage))
	}

	lines = append(lines, "", "--- Recommended Actions ---")
	for i, step := range inc.Remediation {
		lines = append(lines, fmt.Sprintf("%d. %s", i+1, step))
	}

	if len(inc.RequestParameters) > 0 {
		lines = append(lines, "", "--- Request Parameters ---")
		lines = append(lines, keyValueBlock(inc.RequestParameters, "")...)
	}

	return strings.Join(lines, "\n")
}

// keyValueBlock renders an untyped parameter map as indented "key: value"
// lines with sorted keys, staying human-legible instead of re-serializing
// JSON into the email body.
func keyValueBlock(params map[string]any, indent string) []string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var lines []string
	for _, k := range keys {
		switch v := params[k].(type) {
		case map[string]any:
			lines = append(lines, fmt.Sprintf("%s%s:", indent, k))
			lines = append(lines, keyValueBlock(v, indent+"  ")...)
		case []any:
			lines = append(lines, fmt.Sprintf("%s%s:", indent, k))
			for _, item := range v {
				if m, ok := item.(map[string]any); ok {
					lines = append(lines, keyValueBlock(m, indent+"  ")...)
					continue
				}
				lines = append(lines, fmt.Sprintf("%s  - %v", indent, item))
			}
		default:
			lines = append(lines, fmt.Sprintf("%s%s: %v", indent, k, v))
		}
	}
	return lines
}

// displayUserAgent humanizes browser user agents ("Chrome 120 on Mac OS X")
// for console sign-ins. SDK and CLI agents pass through verbatim.
func displayUserAgent(raw string) string {
	if raw == "" || raw == "Unknown" {
		return "Unknown"
	}
	ua := useragent.New(raw)
	name, version := ua.Browser()
	if name == "" || ua.Bot() {
		return raw
	}
	if major, _, ok := strings.Cut(version, "."); ok && major != "" {
		version = major
	}
	display := name
	if version != "" {
		display += " " + version
	}
	if os := ua.OS(); os != "" {
		display += " on " + os
	}
	return fmt.Sprintf("%s (%s)", display, raw)
}
