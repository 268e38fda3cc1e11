package sentinel

import "errors"

// Sentinel errors for pipeline facts. Collaborator-facing layers return these
// (optionally wrapped) so the service and entrypoints can decide policy:
//
// - ErrNotRootActivity: event identity is absent or not the root user; the
//   pipeline refuses to classify. Logged, never escalated to the host.
// - ErrAliasUnavailable: the account alias lookup failed or returned nothing;
//   callers degrade to the raw account ID.
// - ErrDispatchFailed: the notification channel rejected the publish; this is
//   the only error allowed to terminate an invocation abnormally so the host
//   retry/dead-letter mechanism engages.
var (
	ErrNotRootActivity  = errors.New("not root activity")
	ErrAliasUnavailable = errors.New("account alias unavailable")
	ErrDispatchFailed   = errors.New("dispatch failed")
)
