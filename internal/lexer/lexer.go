// Package lexer implements the regex-driven tokenizer for Slate source
// code. The whole input is matched against one alternation of named
// groups; alternatives are ordered so that comments win over operators
// and multi-character operators win over their prefixes.
package lexer

import (
	"regexp"
	"sort"
	"strings"
)

// operators, longest first so the alternation prefers maximal munch.
var operators = []string{
	"+=", "-=", "*=", "/=", "==", "!=", "<=", ">=", "&&", "||",
	"++", "--", "->", "=>", "::",
	"+", "-", "*", "/", "%", "=", "<", ">", "!", "&", "|", "^",
	"~", "?", ":", ";", ",", ".", "(", ")", "{", "}", "[", "]",
}

var tokenRegexp = compileTokenRegexp()

func compileTokenRegexp() *regexp.Regexp {
	ops := make([]string, len(operators))
	copy(ops, operators)
	sort.Slice(ops, func(i, j int) bool { return len(ops[i]) > len(ops[j]) })
	for i, op := range ops {
		ops[i] = regexp.QuoteMeta(op)
	}

	spec := []struct{ name, pattern string }{
		{"COMMENT", `//[^\n]*|/\*(?s:.*?)\*/`},
		{"STRING", `"(\\.|[^"\\])*"|'(\\.|[^'\\])*'`},
		{"FLOAT", `\d+\.\d*([eE][+-]?\d+)?|\d*\.\d+([eE][+-]?\d+)?`},
		{"INT", `\d+`},
		{"IDENT", `[A-Za-z_][A-Za-z0-9_]*`},
		{"OPERATOR", strings.Join(ops, "|")},
		{"SKIP", `[ \t\r\n]+`},
		{"MISMATCH", `.`},
	}

	parts := make([]string, len(spec))
	for i, s := range spec {
		parts[i] = "(?P<" + s.name + ">" + s.pattern + ")"
	}
	return regexp.MustCompile(strings.Join(parts, "|"))
}

// Lexer tokenizes a complete source text.
type Lexer struct {
	input string
}

// New creates a Lexer for the given source text.
func New(input string) *Lexer {
	return &Lexer{input: input}
}

// Tokenize scans the whole input and returns the token list, terminated
// by a single EOF token. Unrecognized characters become ILLEGAL tokens;
// no error aborts the scan.
func (l *Lexer) Tokenize() []Token {
	var tokens []Token
	groups := tokenRegexp.SubexpNames()

	line, column := 1, 1
	pos := 0
	for pos < len(l.input) {
		m := tokenRegexp.FindStringSubmatchIndex(l.input[pos:])
		if m == nil {
			break
		}

		var kind, text string
		for gi, name := range groups {
			if name == "" || m[2*gi] < 0 {
				continue
			}
			kind = name
			text = l.input[pos+m[2*gi] : pos+m[2*gi+1]]
			break
		}

		start := Position{Line: line, Column: column}
		switch kind {
		case "COMMENT":
			tokens = append(tokens, Token{Type: COMMENT, Literal: text, Pos: start})
		case "STRING":
			tokens = append(tokens, Token{Type: STRING, Literal: text, Pos: start})
		case "FLOAT":
			tokens = append(tokens, Token{Type: FLOAT, Literal: text, Pos: start})
		case "INT":
			tokens = append(tokens, Token{Type: INT, Literal: text, Pos: start})
		case "IDENT":
			switch {
			case text == "true" || text == "false":
				tokens = append(tokens, Token{Type: BOOL, Literal: text, Pos: start})
			case IsKeyword(text):
				tokens = append(tokens, Token{Type: KEYWORD, Literal: text, Pos: start})
			default:
				tokens = append(tokens, Token{Type: IDENT, Literal: text, Pos: start})
			}
		case "OPERATOR":
			tokens = append(tokens, Token{Type: OPERATOR, Literal: text, Pos: start})
		case "SKIP":
			// whitespace carries no token
		case "MISMATCH":
			tokens = append(tokens, Token{Type: ILLEGAL, Literal: text, Pos: start})
		}

		line, column = advance(line, column, text)
		pos += len(text)
	}

	tokens = append(tokens, Token{Type: EOF, Literal: "", Pos: Position{Line: line, Column: column}})
	return tokens
}

// advance moves a line/column pair across the given text.
func advance(line, column int, text string) (int, int) {
	for _, r := range text {
		if r == '\n' {
			line++
			column = 1
		} else {
			column++
		}
	}
	return line, column
}
