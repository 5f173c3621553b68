// Package parser implements a recursive-descent parser over
// pkg/lexer's token stream, producing the same pkg/ast.Program that
// pkg/xmlast builds from an XML document. It is grounded in the
// concrete grammar SOL25 source is originally written in, corrected
// where that grammar's expression-tail rule was too narrow to parse
// the language's own worked examples (see DESIGN.md).
package parser

import (
	"math/big"
	"strings"

	"sol25/pkg/ast"
	"sol25/pkg/lexer"
	"sol25/pkg/runtime"
)

// Parse tokenizes and parses SOL25 source text into a Program.
func Parse(src string) (*ast.Program, error) {
	tokens, err := lexer.Lex(src)
	if err != nil {
		return nil, err
	}
	p := &parser{tokens: tokens}
	return p.parseProgram()
}

type parser struct {
	tokens []lexer.Token
	pos    int
}

func (p *parser) current() lexer.Token {
	return p.tokens[p.pos]
}

func (p *parser) peek() lexer.Token {
	if p.pos+1 >= len(p.tokens) {
		return lexer.Token{Kind: lexer.EOF}
	}
	return p.tokens[p.pos+1]
}

func (p *parser) advance() lexer.Token {
	tok := p.current()
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return tok
}

func (p *parser) expect(kind lexer.Kind, what string) (lexer.Token, error) {
	if p.current().Kind != kind {
		return lexer.Token{}, runtime.NewError(runtime.StructureError, "expected %s at token %d", what, p.pos)
	}
	return p.advance(), nil
}

func (p *parser) parseProgram() (*ast.Program, error) {
	var classes []*ast.Class
	for p.current().Kind != lexer.EOF {
		if _, err := p.expect(lexer.ClassKw, "'class'"); err != nil {
			return nil, err
		}
		class, err := p.parseClass()
		if err != nil {
			return nil, err
		}
		classes = append(classes, class)
	}
	return ast.NewProgram(classes), nil
}

func (p *parser) parseClass() (*ast.Class, error) {
	name, err := p.expect(lexer.ClassIdentifier, "a class name")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.Colon, "':'"); err != nil {
		return nil, err
	}
	parent, err := p.parseParentName()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.LBrace, "'{'"); err != nil {
		return nil, err
	}
	var methods []*ast.Method
	for p.current().Kind != lexer.RBrace {
		method, err := p.parseMethod()
		if err != nil {
			return nil, err
		}
		methods = append(methods, method)
	}
	if _, err := p.expect(lexer.RBrace, "'}'"); err != nil {
		return nil, err
	}
	return ast.NewClass(name.Value, parent, methods), nil
}

// parseParentName accepts either a built-in class name or any user
// class name as a parent reference, whether that class is declared
// before or after this one; resolving it is left to the driver. The
// original grammar restricted this to built-ins only, but SOL25
// programs routinely subclass user classes (see DESIGN.md).
func (p *parser) parseParentName() (string, error) {
	tok := p.current()
	if tok.Kind == lexer.BuiltinClass || tok.Kind == lexer.ClassIdentifier {
		p.advance()
		return tok.Value, nil
	}
	return "", runtime.NewError(runtime.StructureError, "expected a parent class name at token %d", p.pos)
}

func (p *parser) parseMethod() (*ast.Method, error) {
	first, err := p.expect(lexer.Identifier, "a method selector")
	if err != nil {
		return nil, err
	}
	selector := first.Value
	if p.current().Kind == lexer.Colon {
		selector += ":"
		p.advance()
		for p.current().Kind != lexer.LBracket {
			part, err := p.expect(lexer.Identifier, "a keyword-selector segment")
			if err != nil {
				return nil, err
			}
			selector += part.Value
			if _, err := p.expect(lexer.Colon, "':'"); err != nil {
				return nil, err
			}
			selector += ":"
		}
	}
	block, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	if ast.ArityOf(selector) != len(block.ParamNames) {
		return nil, runtime.NewError(runtime.StructureError, "method %q declares %d parameter(s) but its selector implies %d", selector, len(block.ParamNames), ast.ArityOf(selector))
	}
	return ast.NewMethod(selector, block), nil
}

func (p *parser) parseBlock() (*ast.Block, error) {
	if _, err := p.expect(lexer.LBracket, "'['"); err != nil {
		return nil, err
	}
	var params []string
	for p.current().Kind != lexer.Pipe {
		if _, err := p.expect(lexer.Colon, "':'"); err != nil {
			return nil, err
		}
		name, err := p.expect(lexer.Identifier, "a parameter name")
		if err != nil {
			return nil, err
		}
		params = append(params, name.Value)
	}
	if _, err := p.expect(lexer.Pipe, "'|'"); err != nil {
		return nil, err
	}
	var statements []*ast.Statement
	for p.current().Kind != lexer.RBracket {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		statements = append(statements, stmt)
	}
	if _, err := p.expect(lexer.RBracket, "']'"); err != nil {
		return nil, err
	}
	return ast.NewBlock(params, statements), nil
}

func (p *parser) parseStatement() (*ast.Statement, error) {
	target, err := p.expect(lexer.Identifier, "an assignment target")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.Assign, "':='"); err != nil {
		return nil, err
	}
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.Dot, "'.'"); err != nil {
		return nil, err
	}
	return ast.NewStatement(target.Value, expr), nil
}

// parseExpression implements standard Smalltalk-style message
// precedence: zero or more unary sends bind to the base expression
// first, then at most one keyword send (covering every "name:"
// segment in a single selector) wraps the result.
func (p *parser) parseExpression() (ast.Expression, error) {
	expr, err := p.parseUnaryChain()
	if err != nil {
		return nil, err
	}
	if p.current().Kind == lexer.Identifier && p.peek().Kind == lexer.Colon {
		return p.parseKeywordSend(expr)
	}
	return expr, nil
}

func (p *parser) parseUnaryChain() (ast.Expression, error) {
	expr, err := p.parseExpressionBase()
	if err != nil {
		return nil, err
	}
	for p.current().Kind == lexer.Identifier && p.peek().Kind != lexer.Colon {
		name := p.advance().Value
		expr = ast.NewSend(expr, name, nil)
	}
	return expr, nil
}

func (p *parser) parseKeywordSend(receiver ast.Expression) (ast.Expression, error) {
	var parts []string
	var args []ast.Expression
	for p.current().Kind == lexer.Identifier && p.peek().Kind == lexer.Colon {
		name := p.advance().Value
		p.advance() // colon
		arg, err := p.parseUnaryChain()
		if err != nil {
			return nil, err
		}
		parts = append(parts, name+":")
		args = append(args, arg)
	}
	return ast.NewSend(receiver, strings.Join(parts, ""), args), nil
}

func (p *parser) parseExpressionBase() (ast.Expression, error) {
	tok := p.current()
	switch tok.Kind {
	case lexer.Integer:
		p.advance()
		text := strings.TrimPrefix(tok.Value, "+")
		if _, ok := new(big.Int).SetString(text, 10); !ok {
			return nil, runtime.NewError(runtime.StructureError, "malformed integer literal %q", tok.Value)
		}
		return ast.NewLiteral("Integer", text), nil
	case lexer.String:
		p.advance()
		return ast.NewLiteral("String", tok.Value), nil
	case lexer.TrueKw:
		p.advance()
		return ast.NewLiteral("True", ""), nil
	case lexer.FalseKw:
		p.advance()
		return ast.NewLiteral("False", ""), nil
	case lexer.NilKw:
		p.advance()
		return ast.NewLiteral("Nil", ""), nil
	case lexer.SelfKw:
		p.advance()
		return ast.NewVariable("self"), nil
	case lexer.SuperKw:
		return nil, runtime.NewError(runtime.StructureError, "'super' is not supported")
	case lexer.BuiltinClass, lexer.ClassIdentifier:
		p.advance()
		return ast.NewLiteral("class", tok.Value), nil
	case lexer.Identifier:
		p.advance()
		return ast.NewVariable(tok.Value), nil
	case lexer.LParen:
		p.advance()
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.RParen, "')'"); err != nil {
			return nil, err
		}
		return expr, nil
	case lexer.LBracket:
		block, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		return ast.NewBlockLiteral(block), nil
	default:
		return nil, runtime.NewError(runtime.StructureError, "unexpected token at position %d while parsing an expression", p.pos)
	}
}
