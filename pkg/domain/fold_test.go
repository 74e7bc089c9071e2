package domain

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFold_MovesMarkersIntoGroupHooks(t *testing.T) {
	var order []string
	hook := func(name string) HookFunc {
		return func(context.Context) error {
			order = append(order, name)
			return nil
		}
	}

	forest := []Node{
		grp("g",
			&BeforeAllNode{Fn: hook("ba1")},
			&BeforeEachNode{Fn: hook("be1")},
			ex("e"),
			&BeforeAllNode{Fn: hook("ba2")},
			&AfterEachNode{Fn: hook("ae1")},
			&AfterAllNode{Fn: hook("aa1")},
		),
	}

	folded, err := Fold(forest)
	require.NoError(t, err)
	require.Len(t, folded, 1)

	g := folded[0].(*Group)
	assert.Len(t, g.GroupHooks.BeforeAll, 2)
	assert.Len(t, g.GroupHooks.BeforeEach, 1)
	assert.Len(t, g.GroupHooks.AfterEach, 1)
	assert.Len(t, g.GroupHooks.AfterAll, 1)
	require.Len(t, g.Children, 1)
	assert.Equal(t, "e", g.Children[0].(*Example).Description)

	// Declaration order preserved within each sequence.
	for _, fn := range g.GroupHooks.BeforeAll {
		require.NoError(t, fn(context.Background()))
	}
	assert.Equal(t, []string{"ba1", "ba2"}, order)
}

func TestFold_RecursesIntoNestedGroups(t *testing.T) {
	forest := []Node{
		grp("outer",
			grp("inner",
				&BeforeEachNode{Fn: func(context.Context) error { return nil }},
				ex("e"),
			),
		),
	}

	folded, err := Fold(forest)
	require.NoError(t, err)

	inner := folded[0].(*Group).Children[0].(*Group)
	assert.Len(t, inner.GroupHooks.BeforeEach, 1)
	assert.Len(t, inner.Children, 1)
}

func TestFold_PreservesFocusedGroups(t *testing.T) {
	forest := []Node{
		fgrp("fg",
			&AfterAllNode{Fn: func(context.Context) error { return nil }},
			ex("e"),
		),
	}

	folded, err := Fold(forest)
	require.NoError(t, err)

	fg, ok := folded[0].(*FocusedGroup)
	require.True(t, ok)
	assert.Len(t, fg.GroupHooks.AfterAll, 1)
	assert.Len(t, fg.Children, 1)
}

func TestFold_DanglingTopLevelMarker(t *testing.T) {
	forest := []Node{
		&BeforeEachNode{Fn: func(context.Context) error { return nil }},
	}

	_, err := Fold(forest)

	assert.ErrorIs(t, err, ErrDanglingHook)
}

func TestFold_DoesNotMutateInput(t *testing.T) {
	original := grp("g",
		&BeforeAllNode{Fn: func(context.Context) error { return nil }},
		ex("e"),
	)

	_, err := Fold([]Node{original})
	require.NoError(t, err)

	assert.Len(t, original.Children, 2, "input group children must be untouched")
	assert.True(t, original.GroupHooks.IsZero())
}

func TestFold_AppendsAfterExistingHooks(t *testing.T) {
	existing := func(context.Context) error { return nil }
	g := &Group{
		Description: "g",
		GroupHooks:  Hooks{BeforeEach: []HookFunc{existing}},
		Children: []Node{
			&BeforeEachNode{Fn: func(context.Context) error { return nil }},
		},
	}

	folded, err := Fold([]Node{g})
	require.NoError(t, err)

	assert.Len(t, folded[0].(*Group).GroupHooks.BeforeEach, 2)
}
