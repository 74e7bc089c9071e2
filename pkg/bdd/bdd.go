// Package bdd is the author-facing builder for test forests.
//
// Suites are declared with Describe/Context/It in the usual BDD shape:
//
//	suite := bdd.Describe("cache",
//		bdd.BeforeEach(func(ctx context.Context) error { ... }),
//		bdd.It("stores a value", func(ctx context.Context) error { ... }),
//		bdd.Context("when full",
//			bdd.It("evicts the oldest entry", func(ctx context.Context) error { ... }),
//		),
//	)
//
// Hook declarations are folded into the enclosing group at construction
// time, so every forest the builder produces is legal engine input.
package bdd

import (
	"fmt"

	"github.com/specvital/gospec/pkg/domain"
)

// Tags attaches tag labels to the node it decorates.
type Tags []string

// Trait attaches one key/value annotation to the node it decorates.
type Trait struct {
	Key   string
	Value string
}

// Describe declares a group. Arguments may be child nodes (from It,
// Describe, hook constructors) and Tags/Trait decorators; anything else
// panics, since a malformed declaration is a programming error in the
// suite, not a test failure.
func Describe(description string, args ...any) *domain.Group {
	children, meta := splitArgs("Describe", args)
	group := &domain.Group{
		Description: description,
		Children:    children,
		Meta:        meta,
	}
	folded, err := domain.Fold([]domain.Node{group})
	if err != nil {
		panic(fmt.Sprintf("bdd: Describe %q: %v", description, err))
	}
	return folded[0].(*domain.Group)
}

// Context is an alias for Describe.
func Context(description string, args ...any) *domain.Group {
	return Describe(description, args...)
}

// FDescribe declares a focused group: when any focused node exists in a
// forest, only focused subtrees run.
func FDescribe(description string, args ...any) *domain.FocusedGroup {
	g := Describe(description, args...)
	return &domain.FocusedGroup{
		Description: g.Description,
		GroupHooks:  g.GroupHooks,
		Children:    g.Children,
		Meta:        g.Meta,
	}
}

// It declares an example. Arguments may only be Tags/Trait decorators.
func It(description string, body domain.BodyFunc, args ...any) *domain.Example {
	children, meta := splitArgs("It", args)
	if len(children) > 0 {
		panic(fmt.Sprintf("bdd: It %q: examples cannot have children", description))
	}
	return &domain.Example{Description: description, Body: body, Meta: meta}
}

// FIt declares a focused example.
func FIt(description string, body domain.BodyFunc, args ...any) *domain.FocusedExample {
	ex := It(description, body, args...)
	return &domain.FocusedExample{Description: ex.Description, Body: ex.Body, Meta: ex.Meta}
}

// XIt declares a pending example. The body is accepted for symmetry with It
// but is never invoked; the example is recorded as skipped.
func XIt(description string, _ domain.BodyFunc, args ...any) *domain.Example {
	return Pending(description, args...)
}

// Pending declares a pending example without a body.
func Pending(description string, args ...any) *domain.Example {
	ex := It(description, nil, args...)
	return ex
}

// BeforeAll declares a hook that runs once before any example in the
// enclosing group.
func BeforeAll(fn domain.HookFunc) domain.Node { return &domain.BeforeAllNode{Fn: fn} }

// BeforeEach declares a hook that runs before every example beneath the
// enclosing group, after ancestor beforeEach hooks.
func BeforeEach(fn domain.HookFunc) domain.Node { return &domain.BeforeEachNode{Fn: fn} }

// AfterEach declares a hook that runs after every example beneath the
// enclosing group, before ancestor afterEach hooks.
func AfterEach(fn domain.HookFunc) domain.Node { return &domain.AfterEachNode{Fn: fn} }

// AfterAll declares a hook that runs once after all examples in the
// enclosing group.
func AfterAll(fn domain.HookFunc) domain.Node { return &domain.AfterAllNode{Fn: fn} }

func splitArgs(caller string, args []any) ([]domain.Node, domain.Metadata) {
	var (
		children []domain.Node
		tags     []string
		traits   map[string]string
	)
	for _, a := range args {
		switch a := a.(type) {
		case domain.Node:
			children = append(children, a)
		case Tags:
			tags = append(tags, a...)
		case Trait:
			if traits == nil {
				traits = make(map[string]string)
			}
			traits[a.Key] = a.Value
		default:
			panic(fmt.Sprintf("bdd: %s: unexpected argument of type %T", caller, a))
		}
	}
	return children, domain.NewMetadata(tags, traits)
}
