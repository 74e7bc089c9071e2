package domain

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noopBody(context.Context) error { return nil }

func ex(desc string, tags ...string) *Example {
	return &Example{Description: desc, Body: noopBody, Meta: NewMetadata(tags, nil)}
}

func fex(desc string, tags ...string) *FocusedExample {
	return &FocusedExample{Description: desc, Body: noopBody, Meta: NewMetadata(tags, nil)}
}

func grp(desc string, children ...Node) *Group {
	return &Group{Description: desc, Children: children}
}

func taggedGrp(desc string, tags []string, children ...Node) *Group {
	return &Group{Description: desc, Children: children, Meta: NewMetadata(tags, nil)}
}

func fgrp(desc string, children ...Node) *FocusedGroup {
	return &FocusedGroup{Description: desc, Children: children}
}

func exampleDescriptions(nodes []Node) []string {
	var out []string
	for _, n := range nodes {
		switch n := n.(type) {
		case *Example:
			out = append(out, n.Description)
		case *FocusedExample:
			out = append(out, n.Description)
		case *Group:
			out = append(out, exampleDescriptions(n.Children)...)
		case *FocusedGroup:
			out = append(out, exampleDescriptions(n.Children)...)
		}
	}
	return out
}

func TestFilterFocused_NoFocusIsIdentity(t *testing.T) {
	forest := []Node{
		grp("a", ex("e1"), grp("b", ex("e2"))),
		ex("e3"),
	}

	got := FilterFocused(forest)

	// Identity, not a rebuilt copy.
	assert.Equal(t, forest, got)
	assert.Same(t, forest[0], got[0])
}

func TestFilterFocused_FocusedExampleSuppressesSiblings(t *testing.T) {
	forest := []Node{
		grp("a",
			ex("plain"),
			fex("focused"),
		),
		grp("b", ex("other")),
	}

	got := FilterFocused(forest)

	assert.Equal(t, []string{"focused"}, exampleDescriptions(got))
	// Sibling group with no focused descendant is pruned entirely.
	require.Len(t, got, 1)
}

func TestFilterFocused_DeepFocusSuppressesAtEveryLevel(t *testing.T) {
	forest := []Node{
		grp("l1",
			ex("cut1"),
			grp("l2",
				ex("cut2"),
				grp("l3", fex("keep")),
			),
		),
		ex("cut3"),
	}

	got := FilterFocused(forest)

	assert.Equal(t, []string{"keep"}, exampleDescriptions(got))
}

func TestFilterFocused_ConvertsFocusToPlain(t *testing.T) {
	forest := []Node{
		fgrp("fg", ex("inner"), fex("nested")),
	}

	got := FilterFocused(forest)

	require.Len(t, got, 1)
	g, ok := got[0].(*Group)
	require.True(t, ok, "focused group should be converted to a plain group")
	require.Len(t, g.Children, 2)
	_, ok = g.Children[0].(*Example)
	assert.True(t, ok)
	_, ok = g.Children[1].(*Example)
	assert.True(t, ok, "nested focused example should be converted too")
}

func TestFilterFocused_FocusedGroupKeepsWholeSubtree(t *testing.T) {
	forest := []Node{
		fgrp("fg", ex("one"), grp("sub", ex("two"))),
		grp("other", ex("cut")),
	}

	got := FilterFocused(forest)

	assert.Equal(t, []string{"one", "two"}, exampleDescriptions(got))
}

func TestFilterFocused_Exclusivity(t *testing.T) {
	forest := []Node{
		grp("a", fex("f1"), ex("p1")),
		fgrp("b", ex("p2")),
		ex("p3"),
	}

	got := FilterFocused(forest)

	assert.LessOrEqual(t, CountExamples(got), CountExamples(forest))
	assert.Equal(t, []string{"f1", "p2"}, exampleDescriptions(got))
}

func TestFilterFocused_KeepsMarkersOfSurvivingGroups(t *testing.T) {
	marker := &BeforeEachNode{Fn: func(context.Context) error { return nil }}
	forest := []Node{
		grp("a", marker, fex("keep")),
	}

	got := FilterFocused(forest)

	require.Len(t, got, 1)
	g := got[0].(*Group)
	require.Len(t, g.Children, 2)
	assert.True(t, IsHookMarker(g.Children[0]))
}

func TestFilterByTags_EmptyFilterIsIdentity(t *testing.T) {
	forest := []Node{grp("a", ex("e1", "slow"))}

	assert.Equal(t, forest, FilterByTags(nil, forest))
	assert.Equal(t, forest, FilterByTags([]string{}, forest))
	assert.Equal(t, forest, FilterByTags([]string{" ", ""}, forest))
}

func TestFilterByTags_TagInheritance(t *testing.T) {
	forest := []Node{
		taggedGrp("A", []string{"x"}, ex("e")),
	}

	kept := FilterByTags([]string{"x"}, forest)
	assert.Equal(t, []string{"e"}, exampleDescriptions(kept))

	removed := FilterByTags([]string{"y"}, forest)
	assert.Empty(t, removed)
}

func TestFilterByTags_LeafMustSatisfyIndividually(t *testing.T) {
	forest := []Node{
		grp("a",
			ex("fast"),
			ex("slow one", "slow"),
		),
	}

	got := FilterByTags([]string{"slow"}, forest)

	assert.Equal(t, []string{"slow one"}, exampleDescriptions(got))
}

func TestFilterByTags_AccumulatesDownTheTree(t *testing.T) {
	forest := []Node{
		taggedGrp("outer", []string{"net"},
			taggedGrp("inner", []string{"slow"},
				ex("both"),
			),
			ex("net only"),
		),
	}

	got := FilterByTags([]string{"net", "slow"}, forest)

	assert.Equal(t, []string{"both"}, exampleDescriptions(got))
}

func TestFilterByTags_SupersetSatisfies(t *testing.T) {
	forest := []Node{
		ex("e", "a", "b", "c"),
	}

	got := FilterByTags([]string{"a", "c"}, forest)

	assert.Equal(t, []string{"e"}, exampleDescriptions(got))
}

func TestFilterByTags_NormalizesRequestedTags(t *testing.T) {
	forest := []Node{ex("e", "slow")}

	got := FilterByTags([]string{" SLOW "}, forest)

	assert.Equal(t, []string{"e"}, exampleDescriptions(got))
}

func TestFilterByTags_DropsHookMarkers(t *testing.T) {
	marker := &AfterEachNode{Fn: func(context.Context) error { return nil }}
	forest := []Node{
		taggedGrp("a", []string{"x"}, marker, ex("e")),
	}

	got := FilterByTags([]string{"x"}, forest)

	require.Len(t, got, 1)
	g := got[0].(*Group)
	require.Len(t, g.Children, 1)
	assert.False(t, IsHookMarker(g.Children[0]))
}

func TestFilterByTags_PreservesFocusKind(t *testing.T) {
	forest := []Node{
		&FocusedGroup{Description: "fg", Meta: NewMetadata([]string{"x"}, nil), Children: []Node{ex("e")}},
	}

	got := FilterByTags([]string{"x"}, forest)

	require.Len(t, got, 1)
	_, ok := got[0].(*FocusedGroup)
	assert.True(t, ok)
}

func TestFilterByTags_GroupSurvivesOnOwnMatch(t *testing.T) {
	forest := []Node{
		taggedGrp("matching", []string{"x"},
			ex("child without tags"),
		),
	}

	got := FilterByTags([]string{"x"}, forest)

	assert.Equal(t, []string{"child without tags"}, exampleDescriptions(got))
}
