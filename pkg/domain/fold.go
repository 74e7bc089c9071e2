package domain

import "errors"

// ErrDanglingHook is returned by Fold when a hook marker appears at the top
// level of a forest, outside any group.
var ErrDanglingHook = errors.New("domain: hook marker outside a group")

// Fold rewrites a declaration-time forest into legal engine input by folding
// every hook marker node into the enclosing group's Hooks, in declaration
// order. The input forest is not mutated.
//
// A marker at the top level has no enclosing group and is a builder contract
// error: Fold returns ErrDanglingHook.
func Fold(forest []Node) ([]Node, error) {
	out := make([]Node, 0, len(forest))
	for _, n := range forest {
		if IsHookMarker(n) {
			return nil, ErrDanglingHook
		}
		out = append(out, foldNode(n))
	}
	return out, nil
}

func foldNode(n Node) Node {
	switch n := n.(type) {
	case *Group:
		hooks, kids := foldChildren(n.GroupHooks, n.Children)
		return &Group{
			Description: n.Description,
			GroupHooks:  hooks,
			Children:    kids,
			Meta:        n.Meta,
		}
	case *FocusedGroup:
		hooks, kids := foldChildren(n.GroupHooks, n.Children)
		return &FocusedGroup{
			Description: n.Description,
			GroupHooks:  hooks,
			Children:    kids,
			Meta:        n.Meta,
		}
	default:
		return n
	}
}

func foldChildren(hooks Hooks, children []Node) (Hooks, []Node) {
	kids := make([]Node, 0, len(children))
	for _, c := range children {
		switch c := c.(type) {
		case *BeforeAllNode:
			hooks.BeforeAll = append(hooks.BeforeAll, c.Fn)
		case *BeforeEachNode:
			hooks.BeforeEach = append(hooks.BeforeEach, c.Fn)
		case *AfterEachNode:
			hooks.AfterEach = append(hooks.AfterEach, c.Fn)
		case *AfterAllNode:
			hooks.AfterAll = append(hooks.AfterAll, c.Fn)
		default:
			kids = append(kids, foldNode(c))
		}
	}
	return hooks, kids
}
