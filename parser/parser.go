// Package parser implements a recursive-descent parser with
// precedence climbing for expressions, turning a stream.Stream into a
// source AST (ast.Program).
package parser

import (
	"strconv"

	"github.com/dolthub/swiss"

	"github.com/skx/cc/ast"
	"github.com/skx/cc/stream"
	"github.com/skx/cc/token"
)

// Parser holds the parser's state: the single stream.Stream it reads
// from. Not reentrant; a Parser parses exactly one program.
type Parser struct {
	s *stream.Stream
}

// New creates a Parser reading tokens from s.
func New(s *stream.Stream) *Parser {
	return &Parser{s: s}
}

// binopPrecedence is the precedence-climbing table of spec.md §4.B:
// higher binds tighter, every entry is left-associative.
var binopPrecedence = map[token.Type]int{
	token.ASTERISK: 50,
	token.SLASH:    50,
	token.PERCENT:  50,

	token.PLUS:  45,
	token.MINUS: 45,

	token.SHL: 40,
	token.SHR: 40,

	token.LT: 35,
	token.LE: 35,
	token.GT: 35,
	token.GE: 35,

	token.EQ: 30,
	token.NE: 30,

	token.AMP: 25,

	token.CARET: 20,

	token.PIPE: 15,

	token.AMPAMP: 10,

	token.PIPEPIPE: 5,
}

// Parse parses a whole program: Function*. An unexpected leading token
// where a new function declaration is expected ends the top-level loop
// cleanly instead of failing - the loop simply stops once the next
// token isn't a type keyword, as spec.md §4.B specifies.
func (p *Parser) Parse() (*ast.Program, error) {
	prog := &ast.Program{}
	seen := swiss.NewMap[string, struct{}](4)

	for p.startsFunction(p.s.Peek(0)) {
		fn, err := p.parseFunction()
		if err != nil {
			return nil, err
		}
		if seen.Has(fn.Name) {
			return nil, syntaxErrorf(fn.Pos, "function %q redeclared", fn.Name)
		}
		seen.Put(fn.Name, struct{}{})
		prog.Functions = append(prog.Functions, fn)
	}

	return prog, nil
}

func (p *Parser) startsFunction(tok token.Token) bool {
	return tok.Type == token.INT || tok.Type == token.VOID
}

func (p *Parser) parseType() (ast.TypeTag, token.Pos, error) {
	tok := p.s.Consume()
	switch tok.Type {
	case token.INT:
		return ast.Integer, tok.Pos, nil
	case token.VOID:
		return ast.Void, tok.Pos, nil
	default:
		return "", tok.Pos, syntaxErrorf(tok.Pos, "expected a type, got %q", tok.Literal)
	}
}

func (p *Parser) parseFunction() (*ast.Function, error) {
	retType, pos, err := p.parseType()
	if err != nil {
		return nil, err
	}

	name := p.s.Consume()
	if name.Type != token.IDENT {
		return nil, syntaxErrorf(name.Pos, "expected a function name, got %q", name.Literal)
	}

	if tok := p.s.Consume(); tok.Type != token.LPAREN {
		return nil, syntaxErrorf(tok.Pos, "expected '(' after %q, got %q", name.Literal, tok.Literal)
	}

	args, err := p.parseArgs()
	if err != nil {
		return nil, err
	}

	if tok := p.s.Consume(); tok.Type != token.RPAREN {
		return nil, syntaxErrorf(tok.Pos, "expected ')' after arguments, got %q", tok.Literal)
	}

	body, err := p.parseBlock(retType)
	if err != nil {
		return nil, err
	}

	return &ast.Function{
		Name:       name.Literal,
		ReturnType: retType,
		Args:       args,
		Body:       body,
		Pos:        pos,
	}, nil
}

// parseArgs parses "( Type NAME (',' Type NAME)* )?" without consuming
// the surrounding parentheses, which the caller already owns.
func (p *Parser) parseArgs() ([]ast.FunctionArgument, error) {
	var args []ast.FunctionArgument

	if p.s.Peek(0).Type == token.RPAREN {
		return args, nil
	}

	for {
		argType, pos, err := p.parseType()
		if err != nil {
			return nil, err
		}
		argName := p.s.Consume()
		if argName.Type != token.IDENT {
			return nil, syntaxErrorf(argName.Pos, "expected a parameter name, got %q", argName.Literal)
		}
		args = append(args, ast.FunctionArgument{Type: argType, Name: argName.Literal, Pos: pos})

		if p.s.Peek(0).Type != token.COMMA {
			break
		}
		p.s.Consume()
	}

	return args, nil
}

// parseBlock parses "{ Statement* }". retType is the enclosing
// function's declared return type, stamped onto each statement.
func (p *Parser) parseBlock(retType ast.TypeTag) (*ast.StatementBlock, error) {
	if tok := p.s.Consume(); tok.Type != token.LBRACE {
		return nil, syntaxErrorf(tok.Pos, "expected '{', got %q", tok.Literal)
	}

	block := &ast.StatementBlock{}
	for p.s.Peek(0).Type != token.RBRACE && p.s.Peek(0).Type != token.EOF {
		stmt, err := p.parseStatement(retType)
		if err != nil {
			return nil, err
		}
		block.Statements = append(block.Statements, stmt)
	}

	if tok := p.s.Consume(); tok.Type != token.RBRACE {
		return nil, syntaxErrorf(tok.Pos, "expected '}', got %q", tok.Literal)
	}

	return block, nil
}

func (p *Parser) parseStatement(retType ast.TypeTag) (*ast.Statement, error) {
	ret := p.s.Consume()
	if ret.Type != token.RETURN {
		return nil, syntaxErrorf(ret.Pos, "expected 'return', got %q", ret.Literal)
	}

	expr, err := p.parseExpr(0)
	if err != nil {
		return nil, err
	}

	if tok := p.s.Consume(); tok.Type != token.SEMICOLON {
		return nil, syntaxErrorf(tok.Pos, "expected ';' after return expression, got %q", tok.Literal)
	}

	return &ast.Statement{TypeTag: retType, Expr: expr, Pos: ret.Pos}, nil
}

// parseExpr implements precedence climbing: it parses a Factor, then
// repeatedly folds in a binary operator whose precedence is strictly
// greater than minPrec, recursing with prec+1 so that equal-precedence
// operators stay left-associative.
func (p *Parser) parseExpr(minPrec int) (*ast.Expression, error) {
	left, err := p.parseFactor()
	if err != nil {
		return nil, err
	}

	for {
		tok := p.s.Peek(0)
		prec, ok := binopPrecedence[tok.Type]
		if !ok || prec <= minPrec {
			return left, nil
		}

		p.s.Consume()
		right, err := p.parseExpr(prec + 1)
		if err != nil {
			return nil, err
		}
		left = ast.BinaryExpr(ast.BinaryOp(tok.Type), left, right, tok.Pos)
	}
}

// parseFactor parses INT | Unop Factor | '(' Expr(0) ')'.
func (p *Parser) parseFactor() (*ast.Expression, error) {
	tok := p.s.Peek(0)

	switch tok.Type {
	case token.NUMBER:
		p.s.Consume()
		n, err := strconv.ParseInt(tok.Literal, 10, 64)
		if err != nil {
			return nil, syntaxErrorf(tok.Pos, "invalid integer literal %q", tok.Literal)
		}
		return ast.IntegerExpr(n, tok.Pos), nil

	case token.TILDE, token.MINUS, token.BANG:
		p.s.Consume()
		operand, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		return ast.UnaryExpr(ast.UnaryOp(tok.Type), operand, tok.Pos), nil

	case token.LPAREN:
		p.s.Consume()
		inner, err := p.parseExpr(0)
		if err != nil {
			return nil, err
		}
		if close := p.s.Consume(); close.Type != token.RPAREN {
			return nil, syntaxErrorf(close.Pos, "expected ')' to close expression, got %q", close.Literal)
		}
		return inner, nil

	default:
		return nil, syntaxErrorf(tok.Pos, "expected an expression, got %q", tok.Literal)
	}
}
