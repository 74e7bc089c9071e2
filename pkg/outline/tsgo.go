package outline

import (
	"context"
	"fmt"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"
)

// maxTreeDepth is the maximum recursion depth when walking AST trees.
const maxTreeDepth = 1000

var (
	goLang     *sitter.Language
	goLangOnce sync.Once
)

func goLanguage() *sitter.Language {
	goLangOnce.Do(func() {
		goLang = golang.GetLanguage()
	})
	return goLang
}

// parseGo parses Go source using a fresh parser.
//
// Parsers are not pooled: when a context is cancelled during ParseCtx the
// parser's internal cancel flag is set but not reset, and subsequent parses
// fail with "operation limit was hit". Fresh parsers avoid this.
//
// Caller MUST call tree.Close() to free resources.
func parseGo(ctx context.Context, source []byte) (*sitter.Tree, error) {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(goLanguage())

	tree, err := parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, fmt.Errorf("parse go source: %w", err)
	}
	return tree, nil
}

// nodeText returns the source text for the given AST node.
// Returns empty string if the node's byte range exceeds the source length.
func nodeText(node *sitter.Node, source []byte) (result string) {
	start := node.StartByte()
	end := node.EndByte()
	sourceLen := uint32(len(source))

	if start > sourceLen || end > sourceLen {
		return ""
	}

	// Content can panic when tree-sitter's internal C code reads past the
	// slice bounds; recover and return the documented empty string.
	defer func() {
		if r := recover(); r != nil {
			result = ""
		}
	}()

	return node.Content(source)
}

// nodeLocation converts a tree-sitter node position to a Location.
// Line numbers are converted to 1-based indexing.
func nodeLocation(node *sitter.Node, filename string) Location {
	start := node.StartPoint()
	end := node.EndPoint()

	return Location{
		File:      filename,
		StartLine: int(start.Row) + 1,
		EndLine:   int(end.Row) + 1,
		StartCol:  int(start.Column),
		EndCol:    int(end.Column),
	}
}
