// Package outline statically discovers suite declarations in Go source
// files without executing them.
//
// The scanner walks a directory tree for spec files, parses each with
// tree-sitter, and records every Describe/Context/It declaration it finds,
// preserving focus and pending markers. The result is an inventory of
// bodiless suite outlines suitable for listing and counting.
package outline

import (
	"github.com/specvital/gospec/pkg/domain"
)

// Status describes the declared execution behavior of an outlined node.
type Status string

const (
	// StatusActive indicates a normal declaration that runs.
	StatusActive Status = "active"
	// StatusFocused indicates a focused declaration (FIt, FDescribe).
	StatusFocused Status = "focused"
	// StatusPending indicates a pending declaration (XIt, Pending).
	StatusPending Status = "pending"
)

// Location is a position in source code. Lines are 1-based.
type Location struct {
	File      string `json:"file"`
	StartLine int    `json:"startLine"`
	EndLine   int    `json:"endLine"`
	StartCol  int    `json:"startCol,omitempty"`
	EndCol    int    `json:"endCol,omitempty"`
}

// Node is one outlined declaration: a group or an example.
type Node struct {
	// Description is the declared description string.
	Description string `json:"description"`
	// Status records focus/pending markers.
	Status Status `json:"status"`
	// Children contains nested declarations, groups only.
	Children []Node `json:"children,omitempty"`
	// Tags contains the tag decorators declared on this node.
	Tags []string `json:"tags,omitempty"`
	// Group distinguishes groups from examples.
	Group bool `json:"group"`
	// Location is the declaration site.
	Location Location `json:"location"`
}

// CountExamples returns the number of examples beneath this node,
// including itself when it is an example.
func (n Node) CountExamples() int {
	if !n.Group {
		return 1
	}
	count := 0
	for _, c := range n.Children {
		count += c.CountExamples()
	}
	return count
}

// FileOutline represents the declarations found in one spec file.
type FileOutline struct {
	// Path is the file path relative to the scanned root.
	Path string `json:"path"`
	// Nodes contains the top-level declarations in source order.
	Nodes []Node `json:"nodes,omitempty"`
}

// CountExamples returns the total number of examples in this file.
func (f FileOutline) CountExamples() int {
	count := 0
	for _, n := range f.Nodes {
		count += n.CountExamples()
	}
	return count
}

// Inventory is the collection of outlined spec files under a root.
type Inventory struct {
	// Files contains all outlined files, sorted by path.
	Files []FileOutline `json:"files"`
	// RootPath is the scanned root directory.
	RootPath string `json:"rootPath"`
}

// CountExamples returns the total number of examples across all files.
func (inv Inventory) CountExamples() int {
	count := 0
	for _, f := range inv.Files {
		count += f.CountExamples()
	}
	return count
}

// Forest converts a file's outline into a bodiless domain forest, so tree
// transforms and counters apply to outlined suites as well.
func (f FileOutline) Forest() []domain.Node {
	return toForest(f.Nodes)
}

func toForest(nodes []Node) []domain.Node {
	out := make([]domain.Node, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, toDomain(n))
	}
	return out
}

func toDomain(n Node) domain.Node {
	meta := domain.NewMetadata(n.Tags, nil)
	if n.Group {
		if n.Status == StatusFocused {
			return &domain.FocusedGroup{Description: n.Description, Children: toForest(n.Children), Meta: meta}
		}
		return &domain.Group{Description: n.Description, Children: toForest(n.Children), Meta: meta}
	}
	if n.Status == StatusFocused {
		return &domain.FocusedExample{Description: n.Description, Meta: meta}
	}
	// Pending and active examples are both bodiless here; an outline
	// carries no executables.
	return &domain.Example{Description: n.Description, Meta: meta}
}
