package parser

import (
	"github.com/cwbudde/go-slate/internal/ast"
	"github.com/cwbudde/go-slate/internal/lexer"
)

// compoundStmt parses a braced statement block.
func (p *Parser) compoundStmt() *ast.CompoundStmt {
	tok := p.eatOp("{")
	block := &ast.CompoundStmt{Token: tok}
	for !p.curIsOp("}") {
		if p.curIs(lexer.EOF) {
			p.errorf("unterminated block")
		}
		block.Statements = append(block.Statements, p.statement())
	}
	p.eatOp("}")
	return block
}

// statement parses a single statement inside a compound block.
func (p *Parser) statement() ast.Statement {
	switch {
	case p.curIs(lexer.COMMENT):
		return p.comment()
	case p.curIs(lexer.KEYWORD):
		switch {
		case lexer.TypeKeywords[p.cur().Literal]:
			return p.varDecl()
		case p.curIsKeyword("return"):
			return p.returnStmt()
		case p.curIsKeyword("if"):
			return p.ifStmt()
		case p.curIsKeyword("for"):
			return p.forStmt()
		case p.curIsKeyword("break"):
			tok := p.eat(lexer.KEYWORD, "break")
			p.optionalEatOp(";")
			return &ast.BreakStmt{Token: tok}
		case p.curIsKeyword("continue"):
			tok := p.eat(lexer.KEYWORD, "continue")
			p.optionalEatOp(";")
			return &ast.ContinueStmt{Token: tok}
		default:
			p.errorf("unexpected keyword %q in function body", p.cur().Literal)
			return nil
		}
	default:
		tok := p.cur()
		expr := p.expression()
		p.optionalEatOp(";")
		return &ast.ExpressionStmt{Token: tok, Expression: expr}
	}
}

// varDecl parses `type name` with an optional initializer and optional
// trailing semicolon, e.g. `list<int> xs = [1, 2, 3];`.
func (p *Parser) varDecl() *ast.VarDecl {
	typeTok := p.cur()
	typeName := p.parseType()
	if !p.curIs(lexer.IDENT) {
		p.errorf("expected variable name after type")
	}
	name := p.cur().Literal
	p.advance()

	var init ast.Expression
	if p.curIsOp("=") {
		p.eatOp("=")
		init = p.expression()
	}

	p.optionalEatOp(";")
	return &ast.VarDecl{Token: typeTok, TypeName: typeName, Name: name, Init: init}
}

// returnStmt parses `return` with an optional value expression.
func (p *Parser) returnStmt() *ast.ReturnStmt {
	tok := p.eat(lexer.KEYWORD, "return")
	stmt := &ast.ReturnStmt{Token: tok}
	if !p.curIsOp(";") && !p.curIsOp("}") {
		stmt.Value = p.expression()
	}
	p.optionalEatOp(";")
	return stmt
}

// ifStmt parses `if (cond) { ... }` with any number of elif arms and an
// optional else branch.
func (p *Parser) ifStmt() *ast.IfStmt {
	tok := p.eat(lexer.KEYWORD, "if")
	p.eatOp("(")
	cond := p.expression()
	p.eatOp(")")
	then := p.compoundStmt()

	stmt := &ast.IfStmt{Token: tok, Cond: cond, Then: then}
	for p.curIsKeyword("elif") {
		elifTok := p.eat(lexer.KEYWORD, "elif")
		p.eatOp("(")
		elifCond := p.expression()
		p.eatOp(")")
		body := p.compoundStmt()
		stmt.Elifs = append(stmt.Elifs, &ast.ElifBranch{Token: elifTok, Cond: elifCond, Body: body})
	}
	if p.curIsKeyword("else") {
		p.eat(lexer.KEYWORD, "else")
		stmt.Else = p.compoundStmt()
	}
	return stmt
}

// forStmt parses `for (init?; cond?; update?) { ... }`. Each of the
// three header components may be empty.
func (p *Parser) forStmt() *ast.ForStmt {
	tok := p.eat(lexer.KEYWORD, "for")
	p.eatOp("(")

	stmt := &ast.ForStmt{Token: tok}

	// initializer
	if p.curIsOp(";") {
		p.eatOp(";")
	} else if p.curIs(lexer.KEYWORD) && lexer.TypeKeywords[p.cur().Literal] {
		stmt.Init = p.varDecl() // consumes the separating semicolon
	} else {
		stmt.Init = p.expression()
		p.eatOp(";")
	}

	// condition
	if !p.curIsOp(";") {
		stmt.Cond = p.expression()
	}
	p.eatOp(";")

	// update
	if !p.curIsOp(")") {
		stmt.Update = p.updateExpression()
	}
	p.eatOp(")")

	stmt.Body = p.compoundStmt()
	return stmt
}

// updateExpression parses the update component of a for header. This is
// the one place where postfix ++ and -- are recognized.
func (p *Parser) updateExpression() ast.Expression {
	expr := p.expression()

	if p.curIsOp("++") || p.curIsOp("--") {
		switch expr.(type) {
		case *ast.Variable, *ast.IndexAccess:
			tok := p.cur()
			p.advance()
			return &ast.UnaryOp{Token: tok, Operator: tok.Literal, Operand: expr, IsPrefix: false}
		default:
			p.errorf("invalid operand for postfix %q", p.cur().Literal)
		}
	}
	return expr
}
