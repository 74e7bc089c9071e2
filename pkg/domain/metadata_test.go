package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewMetadata_NormalizesTags(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "lowercases and trims",
			in:   []string{" Slow ", "NETWORK"},
			want: []string{"slow", "network"},
		},
		{
			name: "deduplicates preserving first occurrence",
			in:   []string{"slow", "network", "SLOW", "slow "},
			want: []string{"slow", "network"},
		},
		{
			name: "drops empty and whitespace tags silently",
			in:   []string{"", "   ", "db"},
			want: []string{"db"},
		},
		{
			name: "all empty yields nil",
			in:   []string{"", "  "},
			want: nil,
		},
		{
			name: "nil input",
			in:   nil,
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta := NewMetadata(tt.in, nil)
			assert.Equal(t, tt.want, meta.Tags)
		})
	}
}

func TestMetadata_HasTag(t *testing.T) {
	meta := NewMetadata([]string{"Slow", "network"}, nil)

	assert.True(t, meta.HasTag("slow"))
	assert.True(t, meta.HasTag(" SLOW "))
	assert.True(t, meta.HasTag("network"))
	assert.False(t, meta.HasTag("fast"))
	assert.False(t, meta.HasTag(""))
}

func TestMetadata_Traits(t *testing.T) {
	meta := NewMetadata(nil, map[string]string{"owner": "platform"})

	assert.Equal(t, "platform", meta.Traits["owner"])
}

func TestUnionTags(t *testing.T) {
	tests := []struct {
		name   string
		parent []string
		child  []string
		want   []string
	}{
		{
			name:   "disjoint sets concatenate",
			parent: []string{"a"},
			child:  []string{"b"},
			want:   []string{"a", "b"},
		},
		{
			name:   "overlap deduplicates",
			parent: []string{"a", "b"},
			child:  []string{"b", "c"},
			want:   []string{"a", "b", "c"},
		},
		{
			name:   "empty child returns parent",
			parent: []string{"a"},
			child:  nil,
			want:   []string{"a"},
		},
		{
			name:   "empty parent returns child",
			parent: nil,
			child:  []string{"c"},
			want:   []string{"c"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, unionTags(tt.parent, tt.child))
		})
	}
}

func TestUnionTags_DoesNotMutateParent(t *testing.T) {
	parent := make([]string, 1, 4)
	parent[0] = "a"

	_ = unionTags(parent, []string{"b"})

	assert.Equal(t, []string{"a"}, parent)
	assert.Equal(t, 1, len(parent))
}
