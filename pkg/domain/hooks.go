package domain

import "context"

// HookFunc is a setup or teardown action scoped to a group.
// The engine awaits each hook to completion before proceeding; a non-nil
// error marks the hook as failed.
type HookFunc func(ctx context.Context) error

// BodyFunc is the executable body of an example. A nil body marks the
// example as pending and is never invoked.
type BodyFunc func(ctx context.Context) error

// Hooks holds the ordered hook sequences declared on a group.
// Each slice preserves declaration order. Hooks are pure data: the engine
// owns their invocation, never their definition.
type Hooks struct {
	BeforeAll  []HookFunc
	BeforeEach []HookFunc
	AfterEach  []HookFunc
	AfterAll   []HookFunc
}

// IsZero reports whether no hooks are declared.
func (h Hooks) IsZero() bool {
	return len(h.BeforeAll) == 0 && len(h.BeforeEach) == 0 &&
		len(h.AfterEach) == 0 && len(h.AfterAll) == 0
}
