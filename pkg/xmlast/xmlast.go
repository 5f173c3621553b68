// Package xmlast loads a SOL25 program from its XML-serialized AST
// form and converts it into the pkg/ast tree the evaluator consumes.
// It hands back an ast.Program or rejects the structural faults Load
// lists with StructureError; it performs no semantic checking (unresolved parents, missing Main,
// duplicate classes are all the driver's concern).
package xmlast

import (
	"encoding/xml"
	"io"

	"sol25/pkg/ast"
	"sol25/pkg/runtime"
)

type xmlProgram struct {
	XMLName  xml.Name   `xml:"program"`
	Language string     `xml:"language,attr"`
	Classes  []xmlClass `xml:"class"`
}

type xmlClass struct {
	Name    string      `xml:"name,attr"`
	Parent  string      `xml:"parent,attr"`
	Methods []xmlMethod `xml:"method"`
}

type xmlMethod struct {
	Selector string   `xml:"selector,attr"`
	Block    xmlBlock `xml:"block"`
}

type xmlBlock struct {
	Parameters []xmlParameter `xml:"parameter"`
	Assigns    []xmlAssign    `xml:"assign"`
}

type xmlParameter struct {
	Name string `xml:"name,attr"`
}

type xmlAssign struct {
	Var  xmlVarRef `xml:"var"`
	Expr xmlExpr   `xml:"expr"`
}

type xmlVarRef struct {
	Name string `xml:"name,attr"`
}

// xmlExpr mirrors the grammar's "exactly one child element" rule: at
// most one of these four fields is populated by encoding/xml, and
// toExpr rejects zero or more than one.
type xmlExpr struct {
	Literal *xmlLiteral `xml:"literal"`
	Var     *xmlVarRef  `xml:"var"`
	Send    *xmlSend    `xml:"send"`
	Block   *xmlBlock   `xml:"block"`
}

type xmlLiteral struct {
	Class string `xml:"class,attr"`
	Value string `xml:"value,attr"`
}

type xmlSend struct {
	Selector string  `xml:"selector,attr"`
	Receiver xmlExpr `xml:"expr"`
	Args     []xmlArg `xml:"arg"`
}

type xmlArg struct {
	Expr xmlExpr `xml:"expr"`
}

var builtinLiteralClasses = map[string]bool{
	"Integer": true,
	"String":  true,
	"True":    true,
	"False":   true,
	"Nil":     true,
}

// Load parses a SOL25 XML AST document from r and converts it into an
// *ast.Program. Malformed XML, a root other than <program>, a language
// other than SOL25, a missing class name, method selector, parameter
// name, assign target, var name, literal class or send selector, an
// <expr> without exactly one of its four child kinds, and a
// selector/argument-count mismatch fail with runtime.StructureError.
// Elements that encoding/xml does not map to a field (unknown element
// names) are ignored rather than rejected, and a <method> without a
// <block> loads as an empty parameterless block.
func Load(r io.Reader) (*ast.Program, error) {
	var raw xmlProgram
	decoder := xml.NewDecoder(r)
	if err := decoder.Decode(&raw); err != nil {
		return nil, runtime.NewError(runtime.StructureError, "malformed XML AST: %v", err)
	}
	if raw.XMLName.Local != "program" {
		return nil, runtime.NewError(runtime.StructureError, "root element must be <program>, got <%s>", raw.XMLName.Local)
	}
	if raw.Language != "SOL25" {
		return nil, runtime.NewError(runtime.StructureError, "unsupported AST language %q", raw.Language)
	}

	classes := make([]*ast.Class, 0, len(raw.Classes))
	for _, c := range raw.Classes {
		class, err := toClass(c)
		if err != nil {
			return nil, err
		}
		classes = append(classes, class)
	}
	return ast.NewProgram(classes), nil
}

func toClass(c xmlClass) (*ast.Class, error) {
	if c.Name == "" {
		return nil, runtime.NewError(runtime.StructureError, "<class> is missing a name attribute")
	}
	methods := make([]*ast.Method, 0, len(c.Methods))
	for _, m := range c.Methods {
		method, err := toMethod(m)
		if err != nil {
			return nil, err
		}
		methods = append(methods, method)
	}
	return ast.NewClass(c.Name, c.Parent, methods), nil
}

func toMethod(m xmlMethod) (*ast.Method, error) {
	if m.Selector == "" {
		return nil, runtime.NewError(runtime.StructureError, "<method> is missing a selector attribute")
	}
	block, err := toBlock(m.Block)
	if err != nil {
		return nil, err
	}
	if ast.ArityOf(m.Selector) != len(block.ParamNames) {
		return nil, runtime.NewError(runtime.StructureError, "method %q declares %d parameter(s) but its selector implies %d", m.Selector, len(block.ParamNames), ast.ArityOf(m.Selector))
	}
	return ast.NewMethod(m.Selector, block), nil
}

func toBlock(b xmlBlock) (*ast.Block, error) {
	params := make([]string, 0, len(b.Parameters))
	for _, p := range b.Parameters {
		if p.Name == "" {
			return nil, runtime.NewError(runtime.StructureError, "<parameter> is missing a name attribute")
		}
		params = append(params, p.Name)
	}
	statements := make([]*ast.Statement, 0, len(b.Assigns))
	for _, a := range b.Assigns {
		stmt, err := toStatement(a)
		if err != nil {
			return nil, err
		}
		statements = append(statements, stmt)
	}
	return ast.NewBlock(params, statements), nil
}

func toStatement(a xmlAssign) (*ast.Statement, error) {
	if a.Var.Name == "" {
		return nil, runtime.NewError(runtime.StructureError, "<assign> is missing its <var> target")
	}
	expr, err := toExpr(a.Expr)
	if err != nil {
		return nil, err
	}
	return ast.NewStatement(a.Var.Name, expr), nil
}

func toExpr(e xmlExpr) (ast.Expression, error) {
	present := 0
	if e.Literal != nil {
		present++
	}
	if e.Var != nil {
		present++
	}
	if e.Send != nil {
		present++
	}
	if e.Block != nil {
		present++
	}
	if present != 1 {
		return nil, runtime.NewError(runtime.StructureError, "<expr> must contain exactly one of literal/var/send/block, found %d", present)
	}

	switch {
	case e.Literal != nil:
		return toLiteral(*e.Literal)
	case e.Var != nil:
		if e.Var.Name == "" {
			return nil, runtime.NewError(runtime.StructureError, "<var> is missing a name attribute")
		}
		return ast.NewVariable(e.Var.Name), nil
	case e.Send != nil:
		return toSend(*e.Send)
	default:
		block, err := toBlock(*e.Block)
		if err != nil {
			return nil, err
		}
		return ast.NewBlockLiteral(block), nil
	}
}

// toLiteral recognizes the five built-in literal classes by name; any
// other class attribute names a user or built-in class used as a bare
// expression (e.g. `String` in `String read`), which evalLiteral
// resolves against the class registry rather than parsing as a value.
func toLiteral(l xmlLiteral) (ast.Expression, error) {
	if l.Class == "" {
		return nil, runtime.NewError(runtime.StructureError, "<literal> is missing a class attribute")
	}
	if builtinLiteralClasses[l.Class] {
		return ast.NewLiteral(l.Class, l.Value), nil
	}
	return ast.NewLiteral("class", l.Class), nil
}

func toSend(s xmlSend) (*ast.Send, error) {
	if s.Selector == "" {
		return nil, runtime.NewError(runtime.StructureError, "<send> is missing a selector attribute")
	}
	receiver, err := toExpr(s.Receiver)
	if err != nil {
		return nil, err
	}
	args := make([]ast.Expression, 0, len(s.Args))
	for _, a := range s.Args {
		argExpr, err := toExpr(a.Expr)
		if err != nil {
			return nil, err
		}
		args = append(args, argExpr)
	}
	if ast.ArityOf(s.Selector) != len(args) {
		return nil, runtime.NewError(runtime.StructureError, "send %q declares %d argument(s) but its selector implies %d", s.Selector, len(args), ast.ArityOf(s.Selector))
	}
	return ast.NewSend(receiver, s.Selector, args), nil
}
