// Package classifier maps root API action names to severity tiers.
//
// The tier tables are configuration data, not behavior: deployments extend
// them through a JSON table file without code changes. Disjointness of the
// CRITICAL and HIGH sets is validated once at construction, never per event.
package classifier

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/Specter099/aws-iam-root-user-activity-monitor/internal/monitor/models"
)

// Table is the editable severity taxonomy. Actions absent from both sets
// classify as MEDIUM, so classification is total.
type Table struct {
	Critical []string `json:"critical"`
	High     []string `json:"high"`
}

// Classifier performs membership tests against a validated Table.
// Safe for concurrent use; never mutated after construction.
type Classifier struct {
	critical map[string]struct{}
	high     map[string]struct{}
}

// New builds a Classifier from a table, rejecting overlapping sets. An action
// in both sets would silently resolve to CRITICAL by check order; treating
// the overlap as a configuration error keeps the taxonomy honest.
func New(t Table) (*Classifier, error) {
	c := &Classifier{
		critical: toSet(t.Critical),
		high:     toSet(t.High),
	}

	var overlap []string
	for action := range c.high {
		if _, ok := c.critical[action]; ok {
			overlap = append(overlap, action)
		}
	}
	if len(overlap) > 0 {
		sort.Strings(overlap)
		return nil, fmt.Errorf("severity table invalid: actions in both CRITICAL and HIGH sets: %s",
			strings.Join(overlap, ", "))
	}
	return c, nil
}

// Classify resolves an action name to its tier: CRITICAL set first, then
// HIGH, else MEDIUM. Pure and total.
func (c *Classifier) Classify(action string) models.Severity {
	if _, ok := c.critical[action]; ok {
		return models.SeverityCritical
	}
	if _, ok := c.high[action]; ok {
		return models.SeverityHigh
	}
	return models.SeverityMedium
}

// ClassifyEvent resolves severity for an action in the context of its event
// category. Console sign-ins are CRITICAL regardless of table membership:
// any interactive root session is an incident on its own.
func (c *Classifier) ClassifyEvent(action, detailType string) models.Severity {
	if strings.Contains(detailType, "Console Sign In") {
		return models.SeverityCritical
	}
	return c.Classify(action)
}

// LoadTable reads a severity table from a JSON file. Used when deployments
// override the seed taxonomy; the result still goes through New for
// validation.
func LoadTable(path string) (Table, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Table{}, fmt.Errorf("read severity table: %w", err)
	}
	var t Table
	if err := json.Unmarshal(b, &t); err != nil {
		return Table{}, fmt.Errorf("parse severity table %s: %w", path, err)
	}
	if len(t.Critical) == 0 && len(t.High) == 0 {
		return Table{}, fmt.Errorf("severity table %s is empty", path)
	}
	return t, nil
}

func toSet(actions []string) map[string]struct{} {
	set := make(map[string]struct{}, len(actions))
	for _, a := range actions {
		set[a] = struct{}{}
	}
	return set
}
