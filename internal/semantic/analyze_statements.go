package semantic

import (
	"github.com/cwbudde/go-slate/internal/ast"
	"github.com/cwbudde/go-slate/internal/types"
)

// compound checks a braced block inside a fresh scope.
func (a *Analyzer) compound(block *ast.CompoundStmt) {
	a.pushScope()
	for _, stmt := range block.Statements {
		a.statement(stmt)
	}
	a.popScope()
}

// statement dispatches one statement.
func (a *Analyzer) statement(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.Comment:
		// nothing to check
	case *ast.VarDecl:
		a.varDecl(s)
	case *ast.CompoundStmt:
		a.compound(s)
	case *ast.ReturnStmt:
		a.returnStmt(s)
	case *ast.ExpressionStmt:
		a.expression(s.Expression)
	case *ast.IfStmt:
		a.ifStmt(s)
	case *ast.ForStmt:
		a.forStmt(s)
	case *ast.BreakStmt, *ast.ContinueStmt:
		// loop containment is enforced at lowering time, not here
	default:
		a.errorf(stmt, "unexpected statement %T", stmt)
	}
}

// varDecl defines the variable and checks its initializer.
func (a *Analyzer) varDecl(vd *ast.VarDecl) {
	varType := types.Parse(vd.TypeName)
	if a.scope.IsDeclaredInCurrentScope(vd.Name) {
		a.errorf(vd, "variable '%s' already defined in current scope", vd.Name)
	}
	a.scope.Define(&Symbol{Name: vd.Name, Kind: SymbolVariable, Type: varType})

	if vd.Init != nil {
		initType := a.expression(vd.Init)
		if !types.Assignable(varType, initType) {
			a.errorf(vd, "type mismatch in variable initialization: expected '%s', got '%s'", varType.Name(), initType.Name())
		}
	}
}

// returnStmt checks a return against the enclosing function signature.
func (a *Analyzer) returnStmt(rs *ast.ReturnStmt) {
	if a.currentFunction == nil {
		a.errorf(rs, "return statement outside of function")
	}
	returnType := a.currentFunction.Type

	if rs.Value != nil {
		valueType := a.expression(rs.Value)
		if !types.Assignable(returnType, valueType) {
			a.errorf(rs, "return type mismatch: expected '%s', got '%s'", returnType.Name(), valueType.Name())
		}
		return
	}
	if !types.IsVoid(returnType) {
		a.errorf(rs, "return type mismatch: expected '%s', got 'void'", returnType.Name())
	}
}

// ifStmt checks the condition chain and all branches.
func (a *Analyzer) ifStmt(is *ast.IfStmt) {
	condType := a.expression(is.Cond)
	if !condType.Equals(types.BOOL) {
		a.errorf(is, "if statement condition must be 'bool', got '%s'", condType.Name())
	}
	a.compound(is.Then)
	for _, e := range is.Elifs {
		elifType := a.expression(e.Cond)
		if !elifType.Equals(types.BOOL) {
			a.errorf(e, "elif statement condition must be 'bool', got '%s'", elifType.Name())
		}
		a.compound(e.Body)
	}
	if is.Else != nil {
		a.compound(is.Else)
	}
}

// forStmt checks the loop header and body. The initializer variable is
// defined in the enclosing scope; the body opens its own.
func (a *Analyzer) forStmt(fs *ast.ForStmt) {
	if fs.Init != nil {
		switch init := fs.Init.(type) {
		case *ast.VarDecl:
			a.varDecl(init)
		case ast.Expression:
			a.expression(init)
		default:
			a.errorf(fs, "invalid for-loop initializer %T", fs.Init)
		}
	}
	if fs.Cond != nil {
		condType := a.expression(fs.Cond)
		if !condType.Equals(types.BOOL) {
			a.errorf(fs, "for loop condition must be 'bool', got '%s'", condType.Name())
		}
	}
	if fs.Update != nil {
		a.expression(fs.Update)
	}
	a.compound(fs.Body)
}
