package runner

import "github.com/specvital/gospec/pkg/domain"

// scopedHook pairs a hook with the description of the group that declared
// it, for failure messages.
type scopedHook struct {
	group string
	fn    domain.HookFunc
}

// hookChain is the effective per-example hook set accumulated from a
// group's ancestry. Both slices are ordered outermost first; beforeEach
// hooks run in that order, afterEach hooks run in reverse.
//
// extend copies on append so sibling scopes never share backing arrays.
type hookChain struct {
	beforeEach []scopedHook
	afterEach  []scopedHook
}

// extend returns the chain for a child scope: the parent's hooks with the
// given group's own Each hooks nested inside.
func (c hookChain) extend(group string, hooks domain.Hooks) hookChain {
	child := hookChain{
		beforeEach: make([]scopedHook, 0, len(c.beforeEach)+len(hooks.BeforeEach)),
		afterEach:  make([]scopedHook, 0, len(c.afterEach)+len(hooks.AfterEach)),
	}
	child.beforeEach = append(child.beforeEach, c.beforeEach...)
	for _, fn := range hooks.BeforeEach {
		child.beforeEach = append(child.beforeEach, scopedHook{group: group, fn: fn})
	}
	child.afterEach = append(child.afterEach, c.afterEach...)
	for _, fn := range hooks.AfterEach {
		child.afterEach = append(child.afterEach, scopedHook{group: group, fn: fn})
	}
	return child
}
