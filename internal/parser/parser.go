// Package parser implements the recursive-descent parser for Slate.
//
// The parser consumes the precomputed token list with single-token
// lookahead. eat asserts and consumes a token, optionalEat is a no-op on
// mismatch, and any unexpected token aborts parsing with a positioned
// syntax error.
package parser

import (
	"fmt"

	"github.com/cwbudde/go-slate/internal/ast"
	"github.com/cwbudde/go-slate/internal/errors"
	"github.com/cwbudde/go-slate/internal/lexer"
)

// Parser holds the token cursor for one parse.
type Parser struct {
	tokens []lexer.Token
	pos    int
}

// New creates a Parser over a token list. The list must be terminated by
// an EOF token, as produced by lexer.Tokenize.
func New(tokens []lexer.Token) *Parser {
	if len(tokens) == 0 {
		tokens = []lexer.Token{{Type: lexer.EOF}}
	}
	return &Parser{tokens: tokens}
}

// parseAbort carries a syntax error out of the descent; Parse recovers
// it. Parsing stops at the first error.
type parseAbort struct {
	err *errors.CompilerError
}

// Parse parses the whole token stream into a Program. The returned error
// is a *errors.CompilerError positioned at the offending token.
func (p *Parser) Parse() (prog *ast.Program, err error) {
	defer func() {
		if r := recover(); r != nil {
			abort, ok := r.(parseAbort)
			if !ok {
				panic(r)
			}
			prog = nil
			err = abort.err
		}
	}()
	return p.program(), nil
}

// cur returns the current token.
func (p *Parser) cur() lexer.Token {
	return p.tokens[p.pos]
}

// advance moves to the next token, clamping at the trailing EOF.
func (p *Parser) advance() {
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
}

// curIs reports whether the current token has the given type.
func (p *Parser) curIs(t lexer.TokenType) bool {
	return p.cur().Type == t
}

// curIsOp reports whether the current token is the given operator.
func (p *Parser) curIsOp(op string) bool {
	return p.cur().Type == lexer.OPERATOR && p.cur().Literal == op
}

// curIsKeyword reports whether the current token is the given keyword.
func (p *Parser) curIsKeyword(kw string) bool {
	return p.cur().Type == lexer.KEYWORD && p.cur().Literal == kw
}

// eat asserts the current token has type t (and literal value, when
// non-empty) and consumes it. On mismatch it aborts with a syntax error.
func (p *Parser) eat(t lexer.TokenType, value string) lexer.Token {
	tok := p.cur()
	if tok.Type == t && (value == "" || tok.Literal == value) {
		p.advance()
		return tok
	}
	expected := t.String()
	if value != "" {
		expected += fmt.Sprintf(" %q", value)
	}
	p.errorf("expected %s, got %s (%q)", expected, tok.Type, tok.Literal)
	return tok
}

// eatOp consumes the given operator token.
func (p *Parser) eatOp(op string) lexer.Token {
	return p.eat(lexer.OPERATOR, op)
}

// optionalEatOp consumes the operator if present; otherwise does
// nothing.
func (p *Parser) optionalEatOp(op string) {
	if p.curIsOp(op) {
		p.advance()
	}
}

// errorf aborts parsing with a syntax error at the current token.
func (p *Parser) errorf(format string, args ...any) {
	tok := p.cur()
	panic(parseAbort{err: errors.New(errors.StageSyntax, tok.Pos, fmt.Sprintf(format, args...))})
}

// program parses the whole file: comments, imports, functions and
// classes until EOF.
func (p *Parser) program() *ast.Program {
	prog := &ast.Program{}
	for !p.curIs(lexer.EOF) {
		switch {
		case p.curIs(lexer.COMMENT):
			prog.Declarations = append(prog.Declarations, p.comment())
		case p.curIsKeyword("import"):
			prog.Declarations = append(prog.Declarations, p.importDecl())
		case p.curIsKeyword("fn"):
			prog.Declarations = append(prog.Declarations, p.functionDecl())
		case p.curIsKeyword("class"):
			prog.Declarations = append(prog.Declarations, p.classDecl())
		case p.curIs(lexer.KEYWORD):
			p.errorf("unexpected keyword %q at top level", p.cur().Literal)
		case p.curIs(lexer.ILLEGAL):
			panic(parseAbort{err: errors.New(errors.StageLexical, p.cur().Pos,
				fmt.Sprintf("unrecognized character %q", p.cur().Literal))})
		default:
			p.errorf("invalid statement at top level")
		}
	}
	return prog
}

// comment consumes a COMMENT token into a Comment node.
func (p *Parser) comment() *ast.Comment {
	tok := p.eat(lexer.COMMENT, "")
	return &ast.Comment{Token: tok, Text: tok.Literal}
}
