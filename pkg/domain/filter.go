package domain

// FilterFocused applies global focus semantics to a forest.
//
// If any node anywhere in the forest is focused, the forest is rewritten to
// contain only the focused subtrees: focused nodes are converted to their
// plain counterparts and groups with no surviving descendant are pruned.
// If no focused node exists, the forest is returned unchanged.
//
// Focus is global, not per-subtree: a focused node nested several levels
// deep suppresses sibling subtrees at every ancestor level.
func FilterFocused(forest []Node) []Node {
	if !anyFocused(forest) {
		return forest
	}
	return keepFocused(forest)
}

func anyFocused(nodes []Node) bool {
	for _, n := range nodes {
		switch n := n.(type) {
		case *FocusedExample, *FocusedGroup:
			return true
		case *Group:
			if anyFocused(n.Children) {
				return true
			}
		}
	}
	return false
}

// keepFocused rewrites one level of the forest, keeping focused subtrees and
// groups that contain one. Hook markers survive alongside a surviving group
// so that a pre-fold forest filters cleanly; the group itself is kept only
// when a non-marker child survives.
func keepFocused(nodes []Node) []Node {
	var out []Node
	for _, n := range nodes {
		switch n := n.(type) {
		case *FocusedExample:
			out = append(out, &Example{Description: n.Description, Body: n.Body, Meta: n.Meta})
		case *FocusedGroup:
			out = append(out, &Group{
				Description: n.Description,
				GroupHooks:  n.GroupHooks,
				Children:    defocus(n.Children),
				Meta:        n.Meta,
			})
		case *Group:
			kids := keepFocused(n.Children)
			if hasRunnable(kids) {
				out = append(out, &Group{
					Description: n.Description,
					GroupHooks:  n.GroupHooks,
					Children:    kids,
					Meta:        n.Meta,
				})
			}
		case *Example:
			// Unfocused leaf outside any focused subtree: pruned.
		default:
			out = append(out, n)
		}
	}
	return out
}

// defocus converts every focused node in a kept subtree to its plain
// counterpart. Focus is a run-time selector, not a persistent property.
func defocus(nodes []Node) []Node {
	out := make([]Node, 0, len(nodes))
	for _, n := range nodes {
		switch n := n.(type) {
		case *FocusedExample:
			out = append(out, &Example{Description: n.Description, Body: n.Body, Meta: n.Meta})
		case *FocusedGroup:
			out = append(out, &Group{
				Description: n.Description,
				GroupHooks:  n.GroupHooks,
				Children:    defocus(n.Children),
				Meta:        n.Meta,
			})
		case *Group:
			out = append(out, &Group{
				Description: n.Description,
				GroupHooks:  n.GroupHooks,
				Children:    defocus(n.Children),
				Meta:        n.Meta,
			})
		default:
			out = append(out, n)
		}
	}
	return out
}

func hasRunnable(nodes []Node) bool {
	for _, n := range nodes {
		if !IsHookMarker(n) {
			return true
		}
	}
	return false
}

// FilterByTags keeps the nodes whose effective tag set is a superset of the
// requested tags. An empty tag list is a no-op.
//
// Tags accumulate down the tree: a node's effective set is its own declared
// tags unioned with all ancestor tags. A group survives when it satisfies
// the filter itself (its whole subtree is kept) or when at least one
// descendant survives. Hook marker nodes are always dropped.
func FilterByTags(tags []string, forest []Node) []Node {
	want := NormalizeTags(tags)
	if len(want) == 0 {
		return forest
	}
	return filterTags(want, forest, nil)
}

func filterTags(want []string, nodes []Node, inherited []string) []Node {
	var out []Node
	for _, n := range nodes {
		switch n := n.(type) {
		case *Example:
			if containsAll(unionTags(inherited, n.Meta.Tags), want) {
				out = append(out, n)
			}
		case *FocusedExample:
			if containsAll(unionTags(inherited, n.Meta.Tags), want) {
				out = append(out, n)
			}
		case *Group:
			effective := unionTags(inherited, n.Meta.Tags)
			if containsAll(effective, want) {
				out = append(out, &Group{
					Description: n.Description,
					GroupHooks:  n.GroupHooks,
					Children:    dropMarkers(n.Children),
					Meta:        n.Meta,
				})
				continue
			}
			if kids := filterTags(want, n.Children, effective); len(kids) > 0 {
				out = append(out, &Group{
					Description: n.Description,
					GroupHooks:  n.GroupHooks,
					Children:    kids,
					Meta:        n.Meta,
				})
			}
		case *FocusedGroup:
			effective := unionTags(inherited, n.Meta.Tags)
			if containsAll(effective, want) {
				out = append(out, &FocusedGroup{
					Description: n.Description,
					GroupHooks:  n.GroupHooks,
					Children:    dropMarkers(n.Children),
					Meta:        n.Meta,
				})
				continue
			}
			if kids := filterTags(want, n.Children, effective); len(kids) > 0 {
				out = append(out, &FocusedGroup{
					Description: n.Description,
					GroupHooks:  n.GroupHooks,
					Children:    kids,
					Meta:        n.Meta,
				})
			}
		default:
			// Hook markers carry no tags and cannot survive.
		}
	}
	return out
}

// dropMarkers removes hook marker nodes from a kept subtree, recursively.
func dropMarkers(nodes []Node) []Node {
	out := make([]Node, 0, len(nodes))
	for _, n := range nodes {
		switch n := n.(type) {
		case *Group:
			out = append(out, &Group{
				Description: n.Description,
				GroupHooks:  n.GroupHooks,
				Children:    dropMarkers(n.Children),
				Meta:        n.Meta,
			})
		case *FocusedGroup:
			out = append(out, &FocusedGroup{
				Description: n.Description,
				GroupHooks:  n.GroupHooks,
				Children:    dropMarkers(n.Children),
				Meta:        n.Meta,
			})
		default:
			if !IsHookMarker(n) {
				out = append(out, n)
			}
		}
	}
	return out
}

func containsAll(set, want []string) bool {
	for _, w := range want {
		found := false
		for _, s := range set {
			if s == w {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
