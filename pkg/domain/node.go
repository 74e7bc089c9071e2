// Package domain defines the declarative test tree, its transforms, and the
// result tree produced by a run.
//
// A suite is a forest of [Node] values: [Example] leaves, [Group] internal
// nodes, their focused counterparts, and transient hook marker nodes emitted
// by a builder. Markers must be folded into the enclosing group's [Hooks]
// (see [Fold]) before the forest is handed to an execution engine.
package domain

// PendingReason is the skip reason recorded for examples declared as
// pending. Reporters use it to distinguish explicit pending skips from any
// future skip causes.
const PendingReason = "marked as pending"

// Node is one node of the declarative test tree.
//
// The set of kinds is closed: *Example, *FocusedExample, *Group,
// *FocusedGroup, and the four hook marker kinds. Consumers switch
// exhaustively over these types; a new kind must update every consumer.
type Node interface {
	// node restricts implementations to this package.
	node()
}

// Example is a single test case.
type Example struct {
	// Description names the example.
	Description string
	// Body is the deferred executable. A nil Body marks the example as
	// pending: it is never invoked and the example is recorded as skipped.
	Body BodyFunc
	// Meta carries tags and traits.
	Meta Metadata
}

// FocusedExample is an example marked for opt-in-only execution.
// When any focused node exists in a forest, only focused subtrees run.
type FocusedExample struct {
	Description string
	Body        BodyFunc
	Meta        Metadata
}

// Group is a named collection of examples and subgroups.
type Group struct {
	// Description names the group.
	Description string
	// GroupHooks holds the folded hook sequences for this group.
	GroupHooks Hooks
	// Children are processed strictly in declaration order.
	// The slice is exclusively owned by this group.
	Children []Node
	// Meta carries tags and traits. Tags accumulate down the tree.
	Meta Metadata
}

// FocusedGroup is a group marked for opt-in-only execution.
type FocusedGroup struct {
	Description string
	GroupHooks  Hooks
	Children    []Node
	Meta        Metadata
}

// BeforeAllNode is a declaration-time marker for a beforeAll hook.
// It must never reach an execution engine.
type BeforeAllNode struct{ Fn HookFunc }

// BeforeEachNode is a declaration-time marker for a beforeEach hook.
type BeforeEachNode struct{ Fn HookFunc }

// AfterEachNode is a declaration-time marker for an afterEach hook.
type AfterEachNode struct{ Fn HookFunc }

// AfterAllNode is a declaration-time marker for an afterAll hook.
type AfterAllNode struct{ Fn HookFunc }

func (*Example) node()        {}
func (*FocusedExample) node() {}
func (*Group) node()          {}
func (*FocusedGroup) node()   {}
func (*BeforeAllNode) node()  {}
func (*BeforeEachNode) node() {}
func (*AfterEachNode) node()  {}
func (*AfterAllNode) node()   {}

// Pending reports whether the example was declared without a body.
func (e *Example) Pending() bool { return e.Body == nil }

// IsHookMarker reports whether the node is a transient hook marker.
func IsHookMarker(n Node) bool {
	switch n.(type) {
	case *BeforeAllNode, *BeforeEachNode, *AfterEachNode, *AfterAllNode:
		return true
	default:
		return false
	}
}
