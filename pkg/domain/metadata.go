package domain

import "strings"

// Metadata carries the tags and traits attached to a node.
//
// Tags are normalized on construction: lowercased, trimmed, deduplicated.
// Insertion order is preserved for display; membership checks are
// order-insensitive. Traits are free-form key/value annotations that the
// engine never interprets.
type Metadata struct {
	// Tags contains the normalized tag labels in declaration order.
	Tags []string
	// Traits maps trait names to values.
	Traits map[string]string
}

// NewMetadata builds a Metadata value with normalized tags.
// Empty and whitespace-only tags are dropped silently.
func NewMetadata(tags []string, traits map[string]string) Metadata {
	return Metadata{
		Tags:   NormalizeTags(tags),
		Traits: traits,
	}
}

// HasTag reports whether the metadata contains the given tag.
// The argument is normalized before comparison.
func (m Metadata) HasTag(tag string) bool {
	tag = normalizeTag(tag)
	if tag == "" {
		return false
	}
	for _, t := range m.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// NormalizeTags lowercases, trims, and deduplicates tags while preserving
// first-occurrence order. Empty results are dropped.
func NormalizeTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}

	seen := make(map[string]bool, len(tags))
	normalized := make([]string, 0, len(tags))
	for _, t := range tags {
		t = normalizeTag(t)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		normalized = append(normalized, t)
	}

	if len(normalized) == 0 {
		return nil
	}
	return normalized
}

func normalizeTag(tag string) string {
	return strings.ToLower(strings.TrimSpace(tag))
}

// unionTags appends the child tags that are not already present in parent,
// preserving order. The parent slice is never mutated in place.
func unionTags(parent, child []string) []string {
	if len(child) == 0 {
		return parent
	}
	if len(parent) == 0 {
		return child
	}

	merged := make([]string, len(parent), len(parent)+len(child))
	copy(merged, parent)
	for _, t := range child {
		found := false
		for _, p := range merged {
			if p == t {
				found = true
				break
			}
		}
		if !found {
			merged = append(merged, t)
		}
	}
	return merged
}
