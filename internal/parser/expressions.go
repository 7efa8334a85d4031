package parser

import (
	"github.com/cwbudde/go-slate/internal/ast"
	"github.com/cwbudde/go-slate/internal/lexer"
)

// assignmentOps are the operators accepted at assignment level.
var assignmentOps = map[string]bool{
	"=": true, "+=": true, "-=": true, "*=": true, "/=": true,
}

// expression parses a full expression; the entry point is assignment,
// the lowest-precedence level.
func (p *Parser) expression() ast.Expression {
	return p.assignment()
}

// assignment parses `target op value` where op is =, +=, -=, *= or /=.
// Assignment is right-associative; the target must be a variable or an
// index access.
func (p *Parser) assignment() ast.Expression {
	expr := p.logicalOr()

	if p.curIs(lexer.OPERATOR) && assignmentOps[p.cur().Literal] {
		switch expr.(type) {
		case *ast.Variable, *ast.IndexAccess:
			tok := p.cur()
			p.advance()
			value := p.assignment()
			return &ast.Assignment{Token: tok, Target: expr, Operator: tok.Literal, Value: value}
		}
	}
	return expr
}

// logicalOr parses `a || b || ...` (left-associative).
func (p *Parser) logicalOr() ast.Expression {
	expr := p.logicalAnd()
	for p.curIsOp("||") {
		tok := p.cur()
		p.advance()
		right := p.logicalAnd()
		expr = &ast.BinaryOp{Token: tok, Left: expr, Operator: tok.Literal, Right: right}
	}
	return expr
}

// logicalAnd parses `a && b && ...` (left-associative).
func (p *Parser) logicalAnd() ast.Expression {
	expr := p.equality()
	for p.curIsOp("&&") {
		tok := p.cur()
		p.advance()
		right := p.equality()
		expr = &ast.BinaryOp{Token: tok, Left: expr, Operator: tok.Literal, Right: right}
	}
	return expr
}

// equality parses == and != chains.
func (p *Parser) equality() ast.Expression {
	expr := p.relational()
	for p.curIsOp("==") || p.curIsOp("!=") {
		tok := p.cur()
		p.advance()
		right := p.relational()
		expr = &ast.BinaryOp{Token: tok, Left: expr, Operator: tok.Literal, Right: right}
	}
	return expr
}

// relational parses <, >, <= and >= chains.
func (p *Parser) relational() ast.Expression {
	expr := p.additive()
	for p.curIsOp("<") || p.curIsOp(">") || p.curIsOp("<=") || p.curIsOp(">=") {
		tok := p.cur()
		p.advance()
		right := p.additive()
		expr = &ast.BinaryOp{Token: tok, Left: expr, Operator: tok.Literal, Right: right}
	}
	return expr
}

// additive parses + and - chains.
func (p *Parser) additive() ast.Expression {
	expr := p.multiplicative()
	for p.curIsOp("+") || p.curIsOp("-") {
		tok := p.cur()
		p.advance()
		right := p.multiplicative()
		expr = &ast.BinaryOp{Token: tok, Left: expr, Operator: tok.Literal, Right: right}
	}
	return expr
}

// multiplicative parses *, / and % chains.
func (p *Parser) multiplicative() ast.Expression {
	expr := p.unary()
	for p.curIsOp("*") || p.curIsOp("/") || p.curIsOp("%") {
		tok := p.cur()
		p.advance()
		right := p.unary()
		expr = &ast.BinaryOp{Token: tok, Left: expr, Operator: tok.Literal, Right: right}
	}
	return expr
}

// unary parses prefix !, -, ++ and --, then falls through to primary
// with its postfix chain.
func (p *Parser) unary() ast.Expression {
	if p.curIsOp("!") || p.curIsOp("-") || p.curIsOp("++") || p.curIsOp("--") {
		tok := p.cur()
		p.advance()
		operand := p.unary()
		return &ast.UnaryOp{Token: tok, Operator: tok.Literal, Operand: operand, IsPrefix: true}
	}
	return p.postfix(p.primary())
}

// postfix applies call and index suffixes to a primary expression.
func (p *Parser) postfix(expr ast.Expression) ast.Expression {
	for {
		switch {
		case p.curIsOp("("):
			v, ok := expr.(*ast.Variable)
			if !ok {
				p.errorf("only simple function names are supported for function calls")
			}
			expr = p.functionCall(v)
		case p.curIsOp("["):
			tok := p.eatOp("[")
			index := p.expression()
			p.eatOp("]")
			expr = &ast.IndexAccess{Token: tok, Collection: expr, Index: index}
		default:
			return expr
		}
	}
}

// primary parses literals, variables, parenthesized expressions, tuple
// literals and list literals.
func (p *Parser) primary() ast.Expression {
	tok := p.cur()

	switch {
	case p.curIs(lexer.INT):
		p.advance()
		return &ast.Literal{Token: tok, TypeTag: "int", Value: tok.Literal}
	case p.curIs(lexer.FLOAT):
		p.advance()
		return &ast.Literal{Token: tok, TypeTag: "float", Value: tok.Literal}
	case p.curIs(lexer.BOOL):
		p.advance()
		return &ast.Literal{Token: tok, TypeTag: "bool", Value: tok.Literal}
	case p.curIs(lexer.STRING):
		p.advance()
		return &ast.Literal{Token: tok, TypeTag: "str", Value: unquote(tok.Literal)}
	case p.curIsKeyword("nil"):
		p.advance()
		return &ast.Literal{Token: tok, TypeTag: "nil", Value: "nil"}
	case p.curIs(lexer.IDENT):
		p.advance()
		return &ast.Variable{Token: tok, Name: tok.Literal}
	case p.curIsOp("("):
		return p.parenExpression()
	case p.curIsOp("["):
		return p.listLiteral()
	default:
		p.errorf("unexpected token in primary expression")
		return nil
	}
}

// parenExpression parses a parenthesized form: one element is a grouped
// expression, two or more make a tuple literal, zero is illegal.
func (p *Parser) parenExpression() ast.Expression {
	tok := p.eatOp("(")
	var elements []ast.Expression
	if !p.curIsOp(")") {
		elements = append(elements, p.expression())
		for p.curIsOp(",") {
			p.advance()
			elements = append(elements, p.expression())
		}
	}
	p.eatOp(")")

	switch len(elements) {
	case 0:
		p.errorf("empty parentheses are not an expression")
		return nil
	case 1:
		return elements[0]
	default:
		return &ast.TupleLiteral{Token: tok, Elements: elements}
	}
}

// listLiteral parses `[e1, e2, ...]`. Emptiness is a semantic error, not
// a parse error.
func (p *Parser) listLiteral() *ast.ListLiteral {
	tok := p.eatOp("[")
	lit := &ast.ListLiteral{Token: tok}
	if !p.curIsOp("]") {
		lit.Elements = append(lit.Elements, p.expression())
		for p.curIsOp(",") {
			p.advance()
			lit.Elements = append(lit.Elements, p.expression())
		}
	}
	p.eatOp("]")
	return lit
}

// functionCall parses the argument list of a call to a named function.
func (p *Parser) functionCall(fn *ast.Variable) *ast.FunctionCall {
	p.eatOp("(")
	call := &ast.FunctionCall{Token: fn.Token, Name: fn.Name}
	if !p.curIsOp(")") {
		call.Arguments = append(call.Arguments, p.expression())
		for p.curIsOp(",") {
			p.advance()
			call.Arguments = append(call.Arguments, p.expression())
		}
	}
	p.eatOp(")")
	return call
}
