package ast

import (
	"bytes"
	"strings"

	"github.com/cwbudde/go-slate/internal/lexer"
)

// Literal is a literal value carrying its type tag directly: one of
// "int", "float", "bool", "str", "nil". Value holds the normalized text
// (string literals without their quotes).
type Literal struct {
	Token   lexer.Token
	TypeTag string
	Value   string
}

func (l *Literal) expressionNode()      {}
func (l *Literal) TokenLiteral() string { return l.Token.Literal }
func (l *Literal) Pos() lexer.Position  { return l.Token.Pos }
func (l *Literal) String() string {
	if l.TypeTag == "str" {
		return "\"" + l.Value + "\""
	}
	return l.Value
}

// Variable is a reference to a named variable.
type Variable struct {
	Token lexer.Token // the IDENT token
	Name  string
}

func (v *Variable) expressionNode()      {}
func (v *Variable) TokenLiteral() string { return v.Token.Literal }
func (v *Variable) Pos() lexer.Position  { return v.Token.Pos }
func (v *Variable) String() string       { return v.Name }

// BinaryOp is a binary operation, e.g. a + b, x < y, p && q.
type BinaryOp struct {
	Token    lexer.Token // the operator token
	Left     Expression
	Operator string
	Right    Expression
}

func (bo *BinaryOp) expressionNode()      {}
func (bo *BinaryOp) TokenLiteral() string { return bo.Token.Literal }
func (bo *BinaryOp) Pos() lexer.Position  { return bo.Token.Pos }
func (bo *BinaryOp) String() string {
	var out bytes.Buffer
	out.WriteString("(")
	out.WriteString(bo.Left.String())
	out.WriteString(" " + bo.Operator + " ")
	out.WriteString(bo.Right.String())
	out.WriteString(")")
	return out.String()
}

// UnaryOp is a unary operation: !x, -x, or ++x/--x. IsPrefix
// distinguishes ++/-- written before the operand from the postfix form
// recognized in for-loop updates; both update in place.
type UnaryOp struct {
	Token    lexer.Token // the operator token
	Operator string
	Operand  Expression
	IsPrefix bool
}

func (uo *UnaryOp) expressionNode()      {}
func (uo *UnaryOp) TokenLiteral() string { return uo.Token.Literal }
func (uo *UnaryOp) Pos() lexer.Position  { return uo.Token.Pos }
func (uo *UnaryOp) String() string {
	if uo.Operator == "++" || uo.Operator == "--" {
		if uo.IsPrefix {
			return "(" + uo.Operator + uo.Operand.String() + ")"
		}
		return "(" + uo.Operand.String() + uo.Operator + ")"
	}
	return "(" + uo.Operator + uo.Operand.String() + ")"
}

// Assignment assigns Value to Target with one of the operators
// =, +=, -=, *=, /=. The target must be a variable or an index access.
type Assignment struct {
	Token    lexer.Token // the operator token
	Target   Expression
	Operator string
	Value    Expression
}

func (a *Assignment) expressionNode()      {}
func (a *Assignment) TokenLiteral() string { return a.Token.Literal }
func (a *Assignment) Pos() lexer.Position  { return a.Token.Pos }
func (a *Assignment) String() string {
	return a.Target.String() + " " + a.Operator + " " + a.Value.String()
}

// FunctionCall calls a named function with argument expressions.
type FunctionCall struct {
	Token     lexer.Token // the function name token
	Name      string
	Arguments []Expression
}

func (fc *FunctionCall) expressionNode()      {}
func (fc *FunctionCall) TokenLiteral() string { return fc.Token.Literal }
func (fc *FunctionCall) Pos() lexer.Position  { return fc.Token.Pos }
func (fc *FunctionCall) String() string {
	args := make([]string, len(fc.Arguments))
	for i, a := range fc.Arguments {
		args[i] = a.String()
	}
	return fc.Name + "(" + strings.Join(args, ", ") + ")"
}

// ListLiteral is a bracketed list literal: [1, 2, 3].
type ListLiteral struct {
	Token    lexer.Token // the '[' token
	Elements []Expression
}

func (ll *ListLiteral) expressionNode()      {}
func (ll *ListLiteral) TokenLiteral() string { return ll.Token.Literal }
func (ll *ListLiteral) Pos() lexer.Position  { return ll.Token.Pos }
func (ll *ListLiteral) String() string {
	elems := make([]string, len(ll.Elements))
	for i, e := range ll.Elements {
		elems[i] = e.String()
	}
	return "[" + strings.Join(elems, ", ") + "]"
}

// TupleLiteral is a parenthesized tuple literal with at least two
// elements: (1, "a").
type TupleLiteral struct {
	Token    lexer.Token // the '(' token
	Elements []Expression
}

func (tl *TupleLiteral) expressionNode()      {}
func (tl *TupleLiteral) TokenLiteral() string { return tl.Token.Literal }
func (tl *TupleLiteral) Pos() lexer.Position  { return tl.Token.Pos }
func (tl *TupleLiteral) String() string {
	elems := make([]string, len(tl.Elements))
	for i, e := range tl.Elements {
		elems[i] = e.String()
	}
	return "(" + strings.Join(elems, ", ") + ")"
}

// IndexAccess reads or addresses one element of a list or tuple.
type IndexAccess struct {
	Token      lexer.Token // the '[' token
	Collection Expression
	Index      Expression
}

func (ia *IndexAccess) expressionNode()      {}
func (ia *IndexAccess) TokenLiteral() string { return ia.Token.Literal }
func (ia *IndexAccess) Pos() lexer.Position  { return ia.Token.Pos }
func (ia *IndexAccess) String() string {
	return ia.Collection.String() + "[" + ia.Index.String() + "]"
}
