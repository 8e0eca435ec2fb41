// Package identity defines the collaborator for pushing profile changes
// back to the external identity provider. Token verification is NOT done
// here; the provider issues credentials and the middleware only verifies
// them. Sync calls are best-effort: callers log failures and never fail the
// primary operation on them.
package identity

import "context"

// Syncer mirrors profile mutations to the identity provider.
type Syncer interface {
	// SyncProfile pushes display name and photo URL changes. Empty strings
	// leave the provider-side value untouched.
	SyncProfile(ctx context.Context, uid, displayName, photoURL string) error

	// SetDisabled enables or disables sign-in for the user.
	SetDisabled(ctx context.Context, uid string, disabled bool) error

	// Delete removes the user from the provider entirely.
	Delete(ctx context.Context, uid string) error
}

// Noop is a Syncer that does nothing, for deployments where the provider
// is the source of truth for profiles (or for tests).
type Noop struct{}

func (Noop) SyncProfile(context.Context, string, string, string) error { return nil }
func (Noop) SetDisabled(context.Context, string, bool) error           { return nil }
func (Noop) Delete(context.Context, string) error                      { return nil }
