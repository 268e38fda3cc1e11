package alias

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/iam"

	"github.com/Specter099/aws-iam-root-user-activity-monitor/pkg/platform/sentinel"
)

// DefaultLookupTimeout bounds the IAM call independently of the invocation
// deadline, so a throttled lookup cannot eat the time budget the dispatch
// still needs.
const DefaultLookupTimeout = 3 * time.Second

// IAMAPI is the slice of the IAM client the resolver uses.
type IAMAPI interface {
	ListAccountAliases(ctx context.Context, params *iam.ListAccountAliasesInput, optFns ...func(*iam.Options)) (*iam.ListAccountAliasesOutput, error)
}

// IAMResolver resolves the alias of the monitored account through the IAM
// ListAccountAliases API. An account has at most one alias; the lookup
// ignores the accountID argument because IAM only answers for the calling
// account (the cross-account role the host assumes).
type IAMResolver struct {
	client  IAMAPI
	timeout time.Duration
}

// IAMOption configures the IAMResolver.
type IAMOption func(*IAMResolver)

// WithLookupTimeout overrides the per-lookup timeout.
func WithLookupTimeout(d time.Duration) IAMOption {
	return func(r *IAMResolver) {
		if d > 0 {
			r.timeout = d
		}
	}
}

// NewIAM creates an IAM-backed resolver.
func NewIAM(client IAMAPI, opts ...IAMOption) *IAMResolver {
	r := &IAMResolver{
		client:  client,
		timeout: DefaultLookupTimeout,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the first account alias, or sentinel.ErrAliasUnavailable on
// permission errors, throttling, or an empty alias list.
func (r *IAMResolver) Resolve(ctx context.Context, accountID string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	out, err := r.client.ListAccountAliases(ctx, &iam.ListAccountAliasesInput{})
	if err != nil {
		return "", fmt.Errorf("%w: list account aliases: %v", sentinel.ErrAliasUnavailable, err)
	}
	if len(out.AccountAliases) == 0 {
		return "", fmt.Errorf("%w: account %s has no alias", sentinel.ErrAliasUnavailable, accountID)
	}
	return out.AccountAliases[0], nil
}
