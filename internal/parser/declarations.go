package parser

import (
	"unicode"

	"github.com/cwbudde/go-slate/internal/ast"
	"github.com/cwbudde/go-slate/internal/lexer"
)

// importDecl parses `import "mod"` or `import ("a" "b")`. The trailing
// semicolon is optional.
func (p *Parser) importDecl() *ast.ImportDecl {
	tok := p.eat(lexer.KEYWORD, "import")
	decl := &ast.ImportDecl{Token: tok}

	switch {
	case p.curIsOp("("):
		p.eatOp("(")
		for p.curIs(lexer.STRING) {
			decl.Modules = append(decl.Modules, unquote(p.cur().Literal))
			p.advance()
		}
		p.eatOp(")")
	case p.curIs(lexer.STRING):
		decl.Modules = append(decl.Modules, unquote(p.cur().Literal))
		p.advance()
	default:
		p.errorf("expected string literal or '(' after 'import'")
	}

	p.optionalEatOp(";")
	return decl
}

// functionDecl parses `fn name(params) -> type { ... }`.
func (p *Parser) functionDecl() *ast.FunctionDecl {
	tok := p.eat(lexer.KEYWORD, "fn")
	if !p.curIs(lexer.IDENT) {
		p.errorf("expected function name after 'fn'")
	}
	name := p.cur().Literal
	p.advance()

	p.eatOp("(")
	params := p.parameterList()
	p.eatOp(")")
	p.eatOp("->")
	returnType := p.parseType()
	body := p.compoundStmt()

	return &ast.FunctionDecl{Token: tok, Name: name, ReturnType: returnType, Params: params, Body: body}
}

// parameterList parses zero or more `name:type` entries separated by
// commas, stopping before the closing parenthesis.
func (p *Parser) parameterList() []*ast.Parameter {
	var params []*ast.Parameter
	if p.curIsOp(")") {
		return params
	}
	for {
		if !p.curIs(lexer.IDENT) {
			p.errorf("expected parameter name")
		}
		nameTok := p.cur()
		p.advance()
		p.eatOp(":")
		typeName := p.parseType()
		params = append(params, &ast.Parameter{Token: nameTok, Name: nameTok.Literal, TypeName: typeName})

		if p.curIsOp(",") {
			p.advance()
			continue
		}
		break
	}
	return params
}

// classDecl parses `class Name [Base]? { members }`.
func (p *Parser) classDecl() *ast.ClassDecl {
	tok := p.eat(lexer.KEYWORD, "class")
	if !p.curIs(lexer.IDENT) {
		p.errorf("expected class name after 'class'")
	}
	name := p.cur().Literal
	p.advance()

	base := ""
	if p.curIsOp("[") {
		p.eatOp("[")
		if !p.curIs(lexer.IDENT) {
			p.errorf("expected base class name inside '[]'")
		}
		base = p.cur().Literal
		p.advance()
		p.eatOp("]")
	}

	return &ast.ClassDecl{Token: tok, Name: name, Base: base, Members: p.classBody()}
}

// classBody parses the braced member list of a class declaration.
func (p *Parser) classBody() []ast.Node {
	p.eatOp("{")
	var members []ast.Node
	for !p.curIsOp("}") {
		switch {
		case p.curIs(lexer.COMMENT):
			members = append(members, p.comment())
		case p.curIsKeyword("fn"):
			members = append(members, p.memberFunctionDecl())
		case p.curIs(lexer.KEYWORD) && lexer.TypeKeywords[p.cur().Literal]:
			members = append(members, p.memberVarDecl())
		case p.curIs(lexer.KEYWORD):
			p.errorf("unexpected keyword %q in class body", p.cur().Literal)
		default:
			p.errorf("invalid member in class body")
		}
		p.optionalEatOp(";")
	}
	p.eatOp("}")
	return members
}

// memberVarDecl parses a class field; visibility follows from the
// capitalization of the name.
func (p *Parser) memberVarDecl() *ast.MemberVarDecl {
	typeTok := p.cur()
	typeName := p.parseType()
	if !p.curIs(lexer.IDENT) {
		p.errorf("expected member variable name after type")
	}
	name := p.cur().Literal
	p.advance()

	var init ast.Expression
	if p.curIsOp("=") {
		p.eatOp("=")
		init = p.expression()
	}

	return &ast.MemberVarDecl{
		Token:    typeTok,
		TypeName: typeName,
		Name:     name,
		Init:     init,
		IsPublic: isPublicName(name),
	}
}

// memberFunctionDecl parses a class method; visibility follows from the
// capitalization of the name.
func (p *Parser) memberFunctionDecl() *ast.MemberFunctionDecl {
	tok := p.eat(lexer.KEYWORD, "fn")
	if !p.curIs(lexer.IDENT) {
		p.errorf("expected method name after 'fn'")
	}
	name := p.cur().Literal
	p.advance()

	p.eatOp("(")
	params := p.parameterList()
	p.eatOp(")")
	p.eatOp("->")
	returnType := p.parseType()
	body := p.compoundStmt()

	return &ast.MemberFunctionDecl{
		Token:      tok,
		Name:       name,
		ReturnType: returnType,
		Params:     params,
		Body:       body,
		IsPublic:   isPublicName(name),
	}
}

// isPublicName reports whether a member name starts with an uppercase
// letter, the convention that makes a member public.
func isPublicName(name string) bool {
	for _, r := range name {
		return unicode.IsUpper(r)
	}
	return false
}

// unquote strips the surrounding quote characters from a string-literal
// token. Escape sequences are kept as written.
func unquote(lit string) string {
	if len(lit) >= 2 {
		return lit[1 : len(lit)-1]
	}
	return lit
}
