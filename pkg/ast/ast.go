// Package ast defines the tagged AST node types for SOL25 programs.
//
// The node set is deliberately closed: a Program is a list of Classes, a
// Class carries a selector->Method table, a Method is either a user Block
// or (conceptually, at this layer) absent — native methods are registered
// directly against runtime classes and never appear here — and a Block's
// Statements evaluate one Expression each. Expression is a four-shape
// tagged union (Literal, Variable, BlockLiteral, Send), matched with an
// explicit type switch everywhere it is consumed rather than through
// virtual dispatch.
package ast

// NodeType identifies the concrete shape of a Node for diagnostics and
// for the type switches that walk the tree.
type NodeType string

const (
	NodeProgram      NodeType = "Program"
	NodeClass        NodeType = "Class"
	NodeMethod       NodeType = "Method"
	NodeBlock        NodeType = "Block"
	NodeStatement    NodeType = "Statement"
	NodeLiteral      NodeType = "Literal"
	NodeVariable     NodeType = "Variable"
	NodeBlockLiteral NodeType = "BlockLiteral"
	NodeSend         NodeType = "Send"
)

// Node is the common interface implemented by every AST type.
type Node interface {
	NodeType() NodeType
	isNode()
}

type nodeImpl struct {
	Type NodeType
}

func newNodeImpl(kind NodeType) nodeImpl {
	return nodeImpl{Type: kind}
}

func (n nodeImpl) NodeType() NodeType { return n.Type }
func (nodeImpl) isNode()              {}

// Expression is the marker interface for the four expression shapes.
type Expression interface {
	Node
	expressionNode()
}

type expressionMarker struct{}

func (expressionMarker) expressionNode() {}

// Program is the root of a parsed SOL25 AST: an unordered bag of class
// declarations. Execution starts at Main#run (see pkg/driver).
type Program struct {
	nodeImpl

	Classes []*Class
}

func NewProgram(classes []*Class) *Program {
	return &Program{nodeImpl: newNodeImpl(NodeProgram), Classes: classes}
}

// Class is one `class Name : Parent { ... }` declaration. ParentName is
// always present in the AST (the grammar requires every class to name a
// superclass); an empty ParentName is treated as "no parent" by the
// driver's parent resolution (see pkg/driver).
type Class struct {
	nodeImpl

	Name       string
	ParentName string
	Methods    []*Method
}

func NewClass(name, parentName string, methods []*Method) *Class {
	return &Class{nodeImpl: newNodeImpl(NodeClass), Name: name, ParentName: parentName, Methods: methods}
}

// Method is a single selector definition inside a class body. Selector is
// the full message name including trailing colons (e.g. "ifTrue:ifFalse:").
// Body is the method's block; its ParamNames must already match the
// colon-count of Selector (the parser enforces this, see ArityOf).
type Method struct {
	nodeImpl

	Selector string
	Body     *Block
}

func NewMethod(selector string, body *Block) *Method {
	return &Method{nodeImpl: newNodeImpl(NodeMethod), Selector: selector, Body: body}
}

// Block is an ordered parameter list plus an ordered statement list. It
// backs both method bodies and block literals; the distinction only
// matters once a Block is reified as a runtime.Value (see pkg/runtime).
type Block struct {
	nodeImpl

	ParamNames []string
	Statements []*Statement
}

func NewBlock(params []string, statements []*Statement) *Block {
	return &Block{nodeImpl: newNodeImpl(NodeBlock), ParamNames: params, Statements: statements}
}

// Statement assigns the result of Expr to Target in the enclosing
// environment's current frame.
type Statement struct {
	nodeImpl

	Target string
	Expr   Expression
}

func NewStatement(target string, expr Expression) *Statement {
	return &Statement{nodeImpl: newNodeImpl(NodeStatement), Target: target, Expr: expr}
}

// Literal is a (class name, raw text) pair. ClassName is one of Integer,
// String, True, False, Nil, or "class" for a bare class-identifier used
// as an expression (e.g. `String` in `String read`); RawValue holds
// the literal's textual form exactly as it appeared in the source (or
// the XML `value` attribute) for the first five, and the referenced
// class's name for the "class" case. Integer literals are parsed at
// evaluation time, not parse time, so a syntactically valid-looking
// literal that overflows is a runtime concern, not a front-end one.
type Literal struct {
	nodeImpl
	expressionMarker

	ClassName string
	RawValue  string
}

func NewLiteral(className, rawValue string) *Literal {
	return &Literal{nodeImpl: newNodeImpl(NodeLiteral), ClassName: className, RawValue: rawValue}
}

// Variable is a reference to a name resolved against the current
// environment at evaluation time.
type Variable struct {
	nodeImpl
	expressionMarker

	Name string
}

func NewVariable(name string) *Variable {
	return &Variable{nodeImpl: newNodeImpl(NodeVariable), Name: name}
}

// BlockLiteral wraps a Block so it can appear where an Expression is
// expected; evaluating one reifies the Block together with the
// environment active at that point into a runtime.Value of class Block.
type BlockLiteral struct {
	nodeImpl
	expressionMarker

	Body *Block
}

func NewBlockLiteral(body *Block) *BlockLiteral {
	return &BlockLiteral{nodeImpl: newNodeImpl(NodeBlockLiteral), Body: body}
}

// Send is a message send: Receiver <Selector> Args..., with Args
// evaluated left to right after Receiver.
type Send struct {
	nodeImpl
	expressionMarker

	Receiver Expression
	Selector string
	Args     []Expression
}

func NewSend(receiver Expression, selector string, args []Expression) *Send {
	return &Send{nodeImpl: newNodeImpl(NodeSend), Receiver: receiver, Selector: selector, Args: args}
}

// ArityOf returns the number of colon-delimited argument slots encoded in
// a selector. A selector with no colon is a unary message (arity 0); one
// or more "name:" segments each contribute one argument.
func ArityOf(selector string) int {
	n := 0
	for _, c := range selector {
		if c == ':' {
			n++
		}
	}
	return n
}
