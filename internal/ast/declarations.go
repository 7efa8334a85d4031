package ast

import (
	"bytes"
	"strings"

	"github.com/cwbudde/go-slate/internal/lexer"
)

// ImportDecl represents an import statement: one module or a
// parenthesized group. Imports are recognized and otherwise ignored.
type ImportDecl struct {
	Token   lexer.Token // the 'import' keyword
	Modules []string
}

func (id *ImportDecl) declarationNode()     {}
func (id *ImportDecl) TokenLiteral() string { return id.Token.Literal }
func (id *ImportDecl) Pos() lexer.Position  { return id.Token.Pos }
func (id *ImportDecl) String() string {
	if len(id.Modules) == 1 {
		return "import \"" + id.Modules[0] + "\""
	}
	var out bytes.Buffer
	out.WriteString("import (")
	for i, m := range id.Modules {
		if i > 0 {
			out.WriteString(" ")
		}
		out.WriteString("\"" + m + "\"")
	}
	out.WriteString(")")
	return out.String()
}

// Parameter is a single function parameter: name and declared type.
type Parameter struct {
	Token    lexer.Token // the parameter name token
	Name     string
	TypeName string
}

func (p *Parameter) TokenLiteral() string { return p.Token.Literal }
func (p *Parameter) String() string       { return p.Name + ":" + p.TypeName }
func (p *Parameter) Pos() lexer.Position  { return p.Token.Pos }

// FunctionDecl represents a top-level function definition.
type FunctionDecl struct {
	Token      lexer.Token // the 'fn' keyword
	Name       string
	ReturnType string
	Params     []*Parameter
	Body       *CompoundStmt
}

func (fd *FunctionDecl) declarationNode()     {}
func (fd *FunctionDecl) TokenLiteral() string { return fd.Token.Literal }
func (fd *FunctionDecl) Pos() lexer.Position  { return fd.Token.Pos }
func (fd *FunctionDecl) String() string {
	params := make([]string, len(fd.Params))
	for i, p := range fd.Params {
		params[i] = p.String()
	}
	var out bytes.Buffer
	out.WriteString("fn " + fd.Name + "(" + strings.Join(params, ", ") + ") -> " + fd.ReturnType + " ")
	out.WriteString(fd.Body.String())
	return out.String()
}

// ClassDecl represents a class definition with an optional base class
// (spelled class Name [Base] { ... }). Classes are recognized and
// type-checked but never lowered or executed.
type ClassDecl struct {
	Token   lexer.Token // the 'class' keyword
	Name    string
	Base    string // empty when the class has no base
	Members []Node // *MemberVarDecl, *MemberFunctionDecl, *Comment
}

func (cd *ClassDecl) declarationNode()     {}
func (cd *ClassDecl) TokenLiteral() string { return cd.Token.Literal }
func (cd *ClassDecl) Pos() lexer.Position  { return cd.Token.Pos }
func (cd *ClassDecl) String() string {
	var out bytes.Buffer
	out.WriteString("class " + cd.Name)
	if cd.Base != "" {
		out.WriteString(" [" + cd.Base + "]")
	}
	out.WriteString(" {\n")
	for _, m := range cd.Members {
		out.WriteString("  " + m.String() + "\n")
	}
	out.WriteString("}")
	return out.String()
}

// MemberVarDecl is a class field. Visibility derives from the first
// character of the name: uppercase means public.
type MemberVarDecl struct {
	Token    lexer.Token // the type token
	TypeName string
	Name     string
	Init     Expression // nil when there is no initializer
	IsPublic bool
}

func (mv *MemberVarDecl) TokenLiteral() string { return mv.Token.Literal }
func (mv *MemberVarDecl) Pos() lexer.Position  { return mv.Token.Pos }
func (mv *MemberVarDecl) String() string {
	s := mv.TypeName + " " + mv.Name
	if mv.Init != nil {
		s += " = " + mv.Init.String()
	}
	return s
}

// MemberFunctionDecl is a class method. Visibility derives from the first
// character of the name, the same way as for fields.
type MemberFunctionDecl struct {
	Token      lexer.Token // the 'fn' keyword
	Name       string
	ReturnType string
	Params     []*Parameter
	Body       *CompoundStmt
	IsPublic   bool
}

func (mf *MemberFunctionDecl) TokenLiteral() string { return mf.Token.Literal }
func (mf *MemberFunctionDecl) Pos() lexer.Position  { return mf.Token.Pos }
func (mf *MemberFunctionDecl) String() string {
	params := make([]string, len(mf.Params))
	for i, p := range mf.Params {
		params[i] = p.String()
	}
	return "fn " + mf.Name + "(" + strings.Join(params, ", ") + ") -> " + mf.ReturnType + " " + mf.Body.String()
}
