package extract

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"

	"aegis/internal/diag"
	"aegis/internal/sig"
	"aegis/internal/source"
)

// treeSitter parses the source with the tree-sitter-python grammar.
type treeSitter struct{}

func (treeSitter) Name() string { return EngineTreeSitter }

func (treeSitter) Extract(ctx context.Context, file *source.File, opts Options) (*sig.Signature, error) {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(python.GetLanguage())

	code := file.Content
	tree, err := parser.ParseCtx(ctx, nil, code)
	if err != nil {
		return nil, fmt.Errorf("tree-sitter: %w", err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		bad := firstErrorNode(root)
		msg := "invalid syntax"
		if bad != nil && bad.IsMissing() {
			msg = fmt.Sprintf("invalid syntax: missing %s", bad.Type())
		}
		return nil, &ParseError{Engine: EngineTreeSitter, Bag: singleError(file, diag.SynUnexpectedToken, nodeSpan(file, bad), msg)}
	}
	// The tree-sitter grammar accepts code that Python rejects
	// (top-level indent, del 1, 0777, f(**k, *a)), so the native parser
	// still has the final say on syntax.
	if _, _, bag := ParseModule(file, opts.MaxErrors); bag.HasErrors() {
		return nil, &ParseError{Engine: EngineTreeSitter, Bag: bag}
	}

	def := firstFunction(root, opts.IncludeAsync)
	if def == nil {
		return nil, ErrNoDefinition
	}
	return tsSignature(file, def)
}

// tsItem is a walk queue entry. Handler nodes (except, case) add a level,
// like ExceptHandler in Python's ast. rest holds elif/else not yet expanded.
type tsItem struct {
	node *sitter.Node
	rest []*sitter.Node
}

// firstFunction finds a function_definition breadth-first in ast.walk order.
// Blocks are transparent and an elif nests in the orelse of the previous if.
func firstFunction(root *sitter.Node, includeAsync bool) *sitter.Node {
	queue := []tsItem{{node: root}}
	for len(queue) > 0 {
		it := queue[0]
		queue = queue[1:]
		n := it.node
		if n.Type() == "function_definition" && (includeAsync || !isAsync(n)) {
			return n
		}
		queue = appendStmtChildren(queue, it)
	}
	return nil
}

func appendStmtChildren(queue []tsItem, it tsItem) []tsItem {
	n := it.node
	stmts := func(block *sitter.Node) {
		if block == nil {
			return
		}
		for i := 0; i < int(block.NamedChildCount()); i++ {
			child := block.NamedChild(i)
			if child.Type() == "decorated_definition" {
				if def := child.ChildByFieldName("definition"); def != nil {
					child = def
				}
			}
			queue = append(queue, tsItem{node: child})
		}
	}
	// orelse: the first elif is a nested if; an else body is on this level
	orElse := func(alts []*sitter.Node) {
		if len(alts) == 0 {
			return
		}
		if alts[0].Type() == "elif_clause" {
			queue = append(queue, tsItem{node: alts[0], rest: alts[1:]})
			return
		}
		stmts(alts[0].ChildByFieldName("body"))
	}

	switch n.Type() {
	case "module":
		stmts(n)
	case "function_definition", "class_definition", "with_statement":
		stmts(n.ChildByFieldName("body"))
	case "if_statement":
		stmts(n.ChildByFieldName("consequence"))
		orElse(childrenOfType(n, "elif_clause", "else_clause"))
	case "elif_clause":
		stmts(n.ChildByFieldName("consequence"))
		orElse(it.rest)
	case "for_statement", "while_statement":
		stmts(n.ChildByFieldName("body"))
		if alt := n.ChildByFieldName("alternative"); alt != nil {
			stmts(alt.ChildByFieldName("body"))
		}
	case "try_statement":
		stmts(n.ChildByFieldName("body"))
		for _, clause := range childrenOfType(n, "except_clause", "except_group_clause") {
			queue = append(queue, tsItem{node: clause})
		}
		for _, clause := range childrenOfType(n, "else_clause") {
			stmts(clause.ChildByFieldName("body"))
		}
		for _, clause := range childrenOfType(n, "finally_clause") {
			stmts(firstOfType(clause, "block"))
		}
	case "except_clause", "except_group_clause":
		stmts(firstOfType(n, "block"))
	case "match_statement":
		body := n.ChildByFieldName("body")
		if body == nil {
			break
		}
		for _, c := range childrenOfType(body, "case_clause") {
			queue = append(queue, tsItem{node: c})
		}
	case "case_clause":
		stmts(n.ChildByFieldName("consequence"))
	}
	return queue
}

func isAsync(def *sitter.Node) bool {
	return def.ChildCount() > 0 && def.Child(0).Type() == "async"
}

func childrenOfType(n *sitter.Node, types ...string) []*sitter.Node {
	var out []*sitter.Node
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		for _, t := range types {
			if child.Type() == t {
				out = append(out, child)
				break
			}
		}
	}
	return out
}

func firstOfType(n *sitter.Node, typ string) *sitter.Node {
	if found := childrenOfType(n, typ); len(found) > 0 {
		return found[0]
	}
	return nil
}

func firstErrorNode(n *sitter.Node) *sitter.Node {
	if n.IsError() || n.IsMissing() {
		return n
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		if found := firstErrorNode(n.Child(i)); found != nil {
			return found
		}
	}
	return nil
}

func nodeSpan(file *source.File, n *sitter.Node) source.Span {
	if n == nil {
		return source.Span{File: file.ID}
	}
	return source.Span{File: file.ID, Start: n.StartByte(), End: n.EndByte()}
}

func nodeText(code []byte, n *sitter.Node) string {
	return string(code[n.StartByte():n.EndByte()])
}

// tsSignature collects parameters from a parameters node.
func tsSignature(file *source.File, def *sitter.Node) (*sig.Signature, error) {
	code := file.Content
	out := &sig.Signature{
		Async:   isAsync(def),
		Returns: sig.Any(),
		Span:    nodeSpan(file, def),
	}
	if name := def.ChildByFieldName("name"); name != nil {
		out.Name = nodeText(code, name)
	}
	if ret := def.ChildByFieldName("return_type"); ret != nil {
		out.Returns = sig.ParseAnnotation(nodeText(code, ret))
	}
	params := def.ChildByFieldName("parameters")
	if params == nil {
		return out, nil
	}

	kind := sig.PositionalOrKeyword
	seenDefault := false
	for i := 0; i < int(params.NamedChildCount()); i++ {
		child := params.NamedChild(i)
		p := sig.Param{Kind: kind, Type: sig.Any(), Span: nodeSpan(file, child)}
		var nameNode, typeNode *sitter.Node

		switch child.Type() {
		case "identifier":
			nameNode = child
		case "typed_parameter":
			typeNode = child.ChildByFieldName("type")
			inner := child.NamedChild(0)
			switch inner.Type() {
			case "list_splat_pattern":
				p.Kind = sig.VarPositional
				nameNode = firstOfType(inner, "identifier")
			case "dictionary_splat_pattern":
				p.Kind = sig.VarKeyword
				nameNode = firstOfType(inner, "identifier")
			default:
				nameNode = inner
			}
		case "default_parameter", "typed_default_parameter":
			nameNode = child.ChildByFieldName("name")
			typeNode = child.ChildByFieldName("type")
			p.HasDefault = true
		case "list_splat_pattern":
			p.Kind = sig.VarPositional
			nameNode = firstOfType(child, "identifier")
		case "dictionary_splat_pattern":
			p.Kind = sig.VarKeyword
			nameNode = firstOfType(child, "identifier")
		case "positional_separator":
			for j := range out.Params {
				out.Params[j].Kind = sig.PositionalOnly
			}
			continue
		case "keyword_separator":
			kind = sig.KeywordOnly
			continue
		default:
			continue // comments
		}
		if nameNode == nil {
			return nil, &ParseError{Engine: EngineTreeSitter, Bag: singleError(file, diag.SynExpectIdentifier, p.Span, "expected parameter name")}
		}
		p.Name = nodeText(code, nameNode)

		switch p.Kind {
		case sig.VarPositional:
			kind = sig.KeywordOnly
		case sig.PositionalOrKeyword:
			if p.HasDefault {
				seenDefault = true
			} else if seenDefault {
				return nil, &ParseError{Engine: EngineTreeSitter, Bag: singleError(file, diag.SynNonDefaultAfterDefault, p.Span,
					"parameter without a default follows parameter with a default")}
			}
		}
		if typeNode != nil {
			p.Type = sig.ParseAnnotation(nodeText(code, typeNode))
		}
		if p.HasDefault {
			p.Type = sig.Optional(p.Type)
		}
		out.Params = append(out.Params, p)
	}
	return out, nil
}
