// Package alias translates opaque account IDs into human-assigned display
// names. Resolution is best-effort: the pipeline degrades to the raw account
// ID whenever a resolver errors, so implementations report failures honestly
// instead of guessing.
package alias

import (
	"context"
	"fmt"
	"sync"

	"github.com/Specter099/aws-iam-root-user-activity-monitor/pkg/platform/sentinel"
)

// Resolver looks up the display name for an account.
type Resolver interface {
	Resolve(ctx context.Context, accountID string) (string, error)
}

// StaticResolver serves aliases from a fixed map. Used in tests and in
// deployments that prefer a pinned account directory over live IAM lookups.
type StaticResolver struct {
	mu      sync.RWMutex
	aliases map[string]string
}

// NewStatic creates a resolver over a copy of the given alias map.
func NewStatic(aliases map[string]string) *StaticResolver {
	copied := make(map[string]string, len(aliases))
	for k, v := range aliases {
		copied[k] = v
	}
	return &StaticResolver{aliases: copied}
}

// Resolve returns the configured alias, or sentinel.ErrAliasUnavailable when
// the account has none.
func (r *StaticResolver) Resolve(_ context.Context, accountID string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if alias, ok := r.aliases[accountID]; ok && alias != "" {
		return alias, nil
	}
	return "", fmt.Errorf("%w: no alias for account %s", sentinel.ErrAliasUnavailable, accountID)
}
