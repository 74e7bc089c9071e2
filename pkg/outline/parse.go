package outline

import (
	"context"
	"strconv"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

const (
	nodeCallExpression           = "call_expression"
	nodeSelectorExpression       = "selector_expression"
	nodeIdentifier               = "identifier"
	nodeInterpretedStringLiteral = "interpreted_string_literal"
	nodeRawStringLiteral         = "raw_string_literal"
	nodeCompositeLiteral         = "composite_literal"
)

// tagsTypeName is the decorator type whose literal elements become tags.
const tagsTypeName = "Tags"

// DSL call names recognized by the outliner.
const (
	funcDescribe  = "Describe"
	funcContext   = "Context"
	funcFDescribe = "FDescribe"
	funcIt        = "It"
	funcFIt       = "FIt"
	funcXIt       = "XIt"
	funcPending   = "Pending"
)

// ParseSource outlines one Go source file already read into memory.
func ParseSource(ctx context.Context, source []byte, filename string) ([]Node, error) {
	tree, err := parseGo(ctx, source)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	return collectDecls(tree.RootNode(), source, filename, 0), nil
}

// collectDecls descends the AST gathering DSL declarations. Descent stops
// at a recognized call; its nested declarations are collected from its own
// argument list, so a declaration is never counted twice.
func collectDecls(node *sitter.Node, source []byte, filename string, depth int) []Node {
	if node == nil || depth > maxTreeDepth {
		return nil
	}

	if node.Type() == nodeCallExpression {
		if decl, ok := buildDecl(node, source, filename, depth); ok {
			return []Node{decl}
		}
	}

	var out []Node
	for i := 0; i < int(node.NamedChildCount()); i++ {
		out = append(out, collectDecls(node.NamedChild(i), source, filename, depth+1)...)
	}
	return out
}

func buildDecl(call *sitter.Node, source []byte, filename string, depth int) (Node, bool) {
	name := dslCallName(call, source)
	if name == "" {
		return Node{}, false
	}

	args := call.ChildByFieldName("arguments")
	if args == nil {
		return Node{}, false
	}

	desc := firstStringArg(args, source)
	if desc == "" {
		return Node{}, false
	}

	decl := Node{
		Description: desc,
		Status:      StatusActive,
		Tags:        collectTags(args, source),
		Location:    nodeLocation(call, filename),
	}

	switch name {
	case funcDescribe, funcContext, funcFDescribe:
		decl.Group = true
		if name == funcFDescribe {
			decl.Status = StatusFocused
		}
		for i := 0; i < int(args.NamedChildCount()); i++ {
			decl.Children = append(decl.Children, collectDecls(args.NamedChild(i), source, filename, depth+1)...)
		}
	case funcFIt:
		decl.Status = StatusFocused
	case funcXIt, funcPending:
		decl.Status = StatusPending
	case funcIt:
		// Active example.
	}

	return decl, true
}

// dslCallName returns the recognized DSL function name for a call, whether
// invoked as a plain identifier (dot import) or as a package selector like
// bdd.Describe. Returns empty for anything else.
func dslCallName(call *sitter.Node, source []byte) string {
	fn := call.ChildByFieldName("function")
	if fn == nil {
		return ""
	}

	var name string
	switch fn.Type() {
	case nodeIdentifier:
		name = nodeText(fn, source)
	case nodeSelectorExpression:
		field := fn.ChildByFieldName("field")
		if field == nil {
			return ""
		}
		name = nodeText(field, source)
	default:
		return ""
	}

	switch name {
	case funcDescribe, funcContext, funcFDescribe, funcIt, funcFIt, funcXIt, funcPending:
		return name
	default:
		return ""
	}
}

// collectTags gathers string literals from Tags{...} decorator arguments,
// whether written as Tags{...} (dot import) or bdd.Tags{...}.
func collectTags(args *sitter.Node, source []byte) []string {
	var tags []string
	for i := 0; i < int(args.NamedChildCount()); i++ {
		arg := args.NamedChild(i)
		if arg.Type() != nodeCompositeLiteral {
			continue
		}
		typ := arg.ChildByFieldName("type")
		if typ == nil {
			continue
		}
		name := nodeText(typ, source)
		if name != tagsTypeName && !strings.HasSuffix(name, "."+tagsTypeName) {
			continue
		}
		tags = append(tags, stringLiterals(arg.ChildByFieldName("body"), source)...)
	}
	return tags
}

// stringLiterals collects every string literal beneath node, in source order.
func stringLiterals(node *sitter.Node, source []byte) []string {
	if node == nil {
		return nil
	}
	switch node.Type() {
	case nodeInterpretedStringLiteral:
		if unquoted, err := strconv.Unquote(nodeText(node, source)); err == nil {
			return []string{unquoted}
		}
		return nil
	case nodeRawStringLiteral:
		return []string{strings.Trim(nodeText(node, source), "`")}
	}
	var out []string
	for i := 0; i < int(node.NamedChildCount()); i++ {
		out = append(out, stringLiterals(node.NamedChild(i), source)...)
	}
	return out
}

func firstStringArg(args *sitter.Node, source []byte) string {
	for i := 0; i < int(args.NamedChildCount()); i++ {
		arg := args.NamedChild(i)
		switch arg.Type() {
		case nodeInterpretedStringLiteral:
			text := nodeText(arg, source)
			unquoted, err := strconv.Unquote(text)
			if err != nil {
				return ""
			}
			return unquoted
		case nodeRawStringLiteral:
			return strings.Trim(nodeText(arg, source), "`")
		}
	}
	return ""
}
