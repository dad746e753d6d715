package tags

import (
	"context"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
)

// SitterExtractor is the built-in fallback: it parses the buffer in-process
// with tree-sitter instead of shelling out, and emits the same table shape
// the ctags path emits. Used when no ctags binary is available.
type SitterExtractor struct{}

// Extract parses the lines as Python source and collects class, function and
// method definitions.
func (SitterExtractor) Extract(ctx context.Context, lines []string) (*Table, error) {
	src := []byte(strings.Join(lines, "\n"))

	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(python.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, &ExtractionError{Kind: FailOutput, Err: err}
	}
	defer tree.Close()

	var raw []Tag
	collect(tree.RootNode(), src, lines, "", &raw)
	return NewTable(raw), nil
}

// collect walks the AST and appends one tag per definition. owner is the
// name of the nearest enclosing definition, empty at module level.
func collect(node *sitter.Node, src []byte, lines []string, owner string, out *[]Tag) {
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		switch child.Type() {
		case "decorated_definition":
			// The tag points at the def/class line, not the decorator.
			if def := child.ChildByFieldName("definition"); def != nil {
				appendDef(def, src, lines, owner, out)
			}
		case "class_definition", "function_definition":
			appendDef(child, src, lines, owner, out)
		default:
			// Definitions can hide under module-level if/try blocks.
			collect(child, src, lines, owner, out)
		}
	}
}

func appendDef(node *sitter.Node, src []byte, lines []string, owner string, out *[]Tag) {
	name := node.ChildByFieldName("name")
	if name == nil {
		return
	}

	kind := "function"
	switch {
	case node.Type() == "class_definition":
		kind = "class"
	case owner != "":
		kind = "member"
	}

	startLine := line(node)
	tag := Tag{
		Name:      name.Content(src),
		Kind:      kind,
		StartLine: startLine,
		IndentCol: headerIndent(lines, startLine),
		Owner:     owner,
	}
	*out = append(*out, tag)

	if body := node.ChildByFieldName("body"); body != nil {
		collect(body, src, lines, tag.Name, out)
	}
}

// headerIndent computes the expanded indentation column of a 1-indexed line.
// The accumulator starts at 2, the same baseline patternIndent produces, so
// both extraction paths feed the resolver identical columns.
func headerIndent(lines []string, startLine int) int {
	col := 2
	if startLine < 1 || startLine > len(lines) {
		return col
	}
	for _, r := range lines[startLine-1] {
		switch r {
		case '\t':
			col += TabStop
		case ' ', '\v', '\f':
			col++
		default:
			return col
		}
	}
	return col
}

func line(node *sitter.Node) int {
	return int(node.StartPoint().Row) + 1 // 1-indexed
}
