package mount

import (
	"context"

	"github.com/avasek/skyhook/pkg/config"
	"github.com/avasek/skyhook/pkg/prompt"
	"github.com/avasek/skyhook/pkg/system"
	"github.com/avasek/skyhook/pkg/types"
)

// Collector solicits connection fields from the operator. Satisfied by
// *prompt.Collector; tests substitute a scripted implementation.
type Collector interface {
	Collect(req prompt.Request) (prompt.Fields, error)
}

// Env bundles the capabilities a provider reconciles with. Everything
// a provider touches on the machine goes through Effector or FS.
type Env struct {
	Effector  types.Effector
	FS        types.FS
	Collector Collector
	Settings  *config.Settings

	// User is the invoking operator, used for mount ownership and
	// group membership.
	User system.Account
}

// Outcome reports what one provider run changed. All fields false
// means everything was already in place.
type Outcome struct {
	Kind types.MountKind
	Spec types.MountSpec

	// Skipped is true when a guard short-circuited the whole manager
	// (an active mount already covers the target).
	Skipped bool

	Installed   bool
	SecretAdded bool
	FstabAdded  bool
	Mounted     bool
}

// Provider reconciles one remote-storage protocol end to end: client
// tooling, credentials, persisted entries, and the live mount. hooks
// are the install actions the registry attached for this provider.
type Provider interface {
	Kind() types.MountKind
	Ensure(ctx context.Context, env Env, hooks Hooks) (Outcome, error)
}

// Hooks are optional per-provider actions run around client package
// installation. They replace kind-based branching in the shared install
// flow: whatever a protocol needs before or after its package lands is
// attached here at registration time.
type Hooks struct {
	PreInstall  func(ctx context.Context, env Env) error
	PostInstall func(ctx context.Context, env Env) error
}

// Registration couples a provider with its install hooks.
type Registration struct {
	Provider Provider
	Hooks    Hooks
}
