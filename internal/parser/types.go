package parser

import (
	"strings"

	"github.com/cwbudde/go-slate/internal/lexer"
)

// parseType parses a type spelling, including generic forms such as
// list<int> and tuple<int, str, float>, and returns its canonical
// string. Tuples keep every type argument; any other generic keeps only
// the first.
func (p *Parser) parseType() string {
	if !p.curIs(lexer.KEYWORD) && !p.curIs(lexer.IDENT) {
		p.errorf("expected type name")
	}
	base := p.cur().Literal
	p.advance()

	if !p.curIsOp("<") {
		return base
	}
	p.eatOp("<")

	args := []string{p.parseType()}
	for p.curIsOp(",") {
		p.advance()
		args = append(args, p.parseType())
	}
	p.eatOp(">")

	if base == "tuple" {
		return "tuple<" + strings.Join(args, ", ") + ">"
	}
	return base + "<" + args[0] + ">"
}
