// Package printer renders a Slate AST as an indented tree, the format
// shown by the CLI's -a listing. The format is implementation-defined
// but stable, so it can be snapshot-tested.
package printer

import (
	"fmt"
	"strings"

	"github.com/cwbudde/go-slate/internal/ast"
)

// Print renders the whole program.
func Print(prog *ast.Program) string {
	var sb strings.Builder
	sb.WriteString("Program:\n")
	for _, decl := range prog.Declarations {
		printNode(&sb, decl, 1)
	}
	return sb.String()
}

func line(sb *strings.Builder, indent int, format string, args ...any) {
	sb.WriteString(strings.Repeat("  ", indent))
	fmt.Fprintf(sb, format, args...)
	sb.WriteString("\n")
}

func printNode(sb *strings.Builder, node ast.Node, indent int) {
	switch n := node.(type) {
	case *ast.Comment:
		line(sb, indent, "Comment:")
		line(sb, indent, "  value: %s", n.Text)
	case *ast.ImportDecl:
		line(sb, indent, "Import:")
		line(sb, indent, "  modules: [%s]", strings.Join(n.Modules, ", "))
	case *ast.FunctionDecl:
		line(sb, indent, "FunctionDecl:")
		line(sb, indent, "  return_type: %s", n.ReturnType)
		line(sb, indent, "  name: %s", n.Name)
		line(sb, indent, "  params:")
		for _, p := range n.Params {
			printNode(sb, p, indent+2)
		}
		line(sb, indent, "  body:")
		printNode(sb, n.Body, indent+2)
	case *ast.Parameter:
		line(sb, indent, "Parameter:")
		line(sb, indent, "  type: %s", n.TypeName)
		line(sb, indent, "  name: %s", n.Name)
	case *ast.ClassDecl:
		line(sb, indent, "ClassDecl:")
		line(sb, indent, "  name: %s", n.Name)
		if n.Base != "" {
			line(sb, indent, "  base: %s", n.Base)
		}
		line(sb, indent, "  members:")
		for _, m := range n.Members {
			printNode(sb, m, indent+2)
		}
	case *ast.MemberVarDecl:
		line(sb, indent, "MemberVarDecl (access: %s):", access(n.IsPublic))
		line(sb, indent, "  var_type: %s", n.TypeName)
		line(sb, indent, "  name: %s", n.Name)
		if n.Init != nil {
			line(sb, indent, "  init_value:")
			printNode(sb, n.Init, indent+2)
		}
	case *ast.MemberFunctionDecl:
		line(sb, indent, "MemberFunctionDecl (access: %s):", access(n.IsPublic))
		line(sb, indent, "  return_type: %s", n.ReturnType)
		line(sb, indent, "  name: %s", n.Name)
		line(sb, indent, "  params:")
		for _, p := range n.Params {
			printNode(sb, p, indent+2)
		}
		line(sb, indent, "  body:")
		printNode(sb, n.Body, indent+2)
	case *ast.CompoundStmt:
		line(sb, indent, "CompoundStmt:")
		for _, stmt := range n.Statements {
			printNode(sb, stmt, indent+1)
		}
	case *ast.VarDecl:
		line(sb, indent, "VarDecl:")
		line(sb, indent, "  var_type: %s", n.TypeName)
		line(sb, indent, "  name: %s", n.Name)
		if n.Init != nil {
			line(sb, indent, "  init_value:")
			printNode(sb, n.Init, indent+2)
		}
	case *ast.ReturnStmt:
		line(sb, indent, "ReturnStmt:")
		if n.Value != nil {
			line(sb, indent, "  expr:")
			printNode(sb, n.Value, indent+2)
		}
	case *ast.ExpressionStmt:
		line(sb, indent, "ExpressionStmt:")
		printNode(sb, n.Expression, indent+1)
	case *ast.IfStmt:
		line(sb, indent, "IfStmt:")
		line(sb, indent, "  condition:")
		printNode(sb, n.Cond, indent+2)
		line(sb, indent, "  then_branch:")
		printNode(sb, n.Then, indent+2)
		for _, e := range n.Elifs {
			printNode(sb, e, indent+1)
		}
		if n.Else != nil {
			line(sb, indent, "  else_branch:")
			printNode(sb, n.Else, indent+2)
		}
	case *ast.ElifBranch:
		line(sb, indent, "ElifBranch:")
		line(sb, indent, "  condition:")
		printNode(sb, n.Cond, indent+2)
		line(sb, indent, "  body:")
		printNode(sb, n.Body, indent+2)
	case *ast.ForStmt:
		line(sb, indent, "ForStmt:")
		if n.Init != nil {
			line(sb, indent, "  initializer:")
			printNode(sb, n.Init, indent+2)
		}
		if n.Cond != nil {
			line(sb, indent, "  condition:")
			printNode(sb, n.Cond, indent+2)
		}
		if n.Update != nil {
			line(sb, indent, "  update:")
			printNode(sb, n.Update, indent+2)
		}
		line(sb, indent, "  body:")
		printNode(sb, n.Body, indent+2)
	case *ast.BreakStmt:
		line(sb, indent, "BreakStmt")
	case *ast.ContinueStmt:
		line(sb, indent, "ContinueStmt")
	case *ast.Literal:
		line(sb, indent, "Literal:")
		line(sb, indent, "  type: %s", n.TypeTag)
		line(sb, indent, "  value: %s", n.Value)
	case *ast.Variable:
		line(sb, indent, "Variable:")
		line(sb, indent, "  name: %s", n.Name)
	case *ast.BinaryOp:
		line(sb, indent, "BinaryOp:")
		line(sb, indent, "  left:")
		printNode(sb, n.Left, indent+2)
		line(sb, indent, "  operator: %s", n.Operator)
		line(sb, indent, "  right:")
		printNode(sb, n.Right, indent+2)
	case *ast.UnaryOp:
		line(sb, indent, "UnaryOp:")
		line(sb, indent, "  operator: %s", n.Operator)
		line(sb, indent, "  operand:")
		printNode(sb, n.Operand, indent+2)
		line(sb, indent, "  is_prefix: %t", n.IsPrefix)
	case *ast.Assignment:
		line(sb, indent, "Assignment:")
		line(sb, indent, "  target:")
		printNode(sb, n.Target, indent+2)
		line(sb, indent, "  operator: %s", n.Operator)
		line(sb, indent, "  value:")
		printNode(sb, n.Value, indent+2)
	case *ast.FunctionCall:
		line(sb, indent, "FunctionCall:")
		line(sb, indent, "  name: %s", n.Name)
		line(sb, indent, "  arguments:")
		for _, arg := range n.Arguments {
			printNode(sb, arg, indent+2)
		}
	case *ast.ListLiteral:
		line(sb, indent, "ListLiteral:")
		for _, e := range n.Elements {
			printNode(sb, e, indent+1)
		}
	case *ast.TupleLiteral:
		line(sb, indent, "TupleLiteral:")
		for _, e := range n.Elements {
			printNode(sb, e, indent+1)
		}
	case *ast.IndexAccess:
		line(sb, indent, "IndexAccess:")
		line(sb, indent, "  collection:")
		printNode(sb, n.Collection, indent+2)
		line(sb, indent, "  index:")
		printNode(sb, n.Index, indent+2)
	default:
		line(sb, indent, "%T", node)
	}
}

func access(public bool) string {
	if public {
		return "public"
	}
	return "private"
}
