// Package semantic implements the Slate semantic analyzer: scope and
// symbol resolution, expression typing, and statement checks. Analysis
// stops at the first error.
package semantic

import (
	"fmt"

	"github.com/cwbudde/go-slate/internal/ast"
	"github.com/cwbudde/go-slate/internal/errors"
	"github.com/cwbudde/go-slate/internal/types"
)

// Analyzer walks the AST with a stack of scopes and resolves types.
type Analyzer struct {
	global          *SymbolTable
	scope           *SymbolTable
	currentFunction *Symbol
}

// NewAnalyzer creates an analyzer whose global scope is seeded with the
// library functions: print (variadic, returns void) and
// input(prompt: str) -> str.
func NewAnalyzer() *Analyzer {
	global := NewSymbolTable()
	global.Define(&Symbol{
		Name:       "print",
		Kind:       SymbolFunction,
		Type:       types.VOID,
		IsVariadic: true,
	})
	global.Define(&Symbol{
		Name:   "input",
		Kind:   SymbolFunction,
		Type:   types.STR,
		Params: []Param{{Name: "prompt", Type: types.STR}},
	})
	return &Analyzer{global: global, scope: global}
}

// analyzeAbort carries a semantic error out of the walk; Analyze
// recovers it.
type analyzeAbort struct {
	err *errors.CompilerError
}

// Analyze checks the whole program. The returned error is a
// *errors.CompilerError positioned at the offending node.
func (a *Analyzer) Analyze(prog *ast.Program) (err error) {
	defer func() {
		if r := recover(); r != nil {
			abort, ok := r.(analyzeAbort)
			if !ok {
				panic(r)
			}
			err = abort.err
		}
	}()

	for _, decl := range prog.Declarations {
		a.declaration(decl)
	}
	return nil
}

// errorf aborts analysis with a semantic error at the given node.
func (a *Analyzer) errorf(node ast.Node, format string, args ...any) {
	panic(analyzeAbort{err: errors.New(errors.StageSemantic, node.Pos(), fmt.Sprintf(format, args...))})
}

// pushScope enters a nested scope.
func (a *Analyzer) pushScope() {
	a.scope = NewEnclosedSymbolTable(a.scope)
}

// popScope returns to the enclosing scope.
func (a *Analyzer) popScope() {
	a.scope = a.scope.Outer()
}

// declaration dispatches one top-level declaration.
func (a *Analyzer) declaration(decl ast.Declaration) {
	switch d := decl.(type) {
	case *ast.Comment:
		// nothing to check
	case *ast.ImportDecl:
		// imports are recognized and otherwise ignored
	case *ast.FunctionDecl:
		a.functionDecl(d)
	case *ast.ClassDecl:
		a.classDecl(d)
	default:
		a.errorf(decl, "unexpected declaration %T", decl)
	}
}

// functionDecl defines the function symbol in the current scope, then
// checks the body with the parameters bound in a fresh scope.
func (a *Analyzer) functionDecl(fn *ast.FunctionDecl) {
	returnType := types.Parse(fn.ReturnType)
	params := make([]Param, len(fn.Params))
	for i, p := range fn.Params {
		params[i] = Param{Name: p.Name, Type: types.Parse(p.TypeName)}
	}

	if _, exists := a.scope.Resolve(fn.Name); exists {
		a.errorf(fn, "function '%s' already defined in current scope", fn.Name)
	}
	sym := &Symbol{Name: fn.Name, Kind: SymbolFunction, Type: returnType, Params: params}
	a.scope.Define(sym)

	enclosing := a.currentFunction
	a.currentFunction = sym
	a.pushScope()
	for _, p := range params {
		if err := a.scope.Define(&Symbol{Name: p.Name, Kind: SymbolVariable, Type: p.Type}); err != nil {
			a.errorf(fn, "duplicate parameter '%s' in function '%s'", p.Name, fn.Name)
		}
	}

	a.compound(fn.Body)

	a.popScope()
	a.currentFunction = enclosing
}

// classDecl defines the class symbol and checks its members inside a
// member scope. Classes are recognized but inert: nothing instantiates
// or lowers them.
func (a *Analyzer) classDecl(cd *ast.ClassDecl) {
	if _, exists := a.scope.Resolve(cd.Name); exists {
		a.errorf(cd, "class '%s' already defined", cd.Name)
	}
	a.scope.Define(&Symbol{Name: cd.Name, Kind: SymbolClass, Type: &types.Basic{TypeName: cd.Name}})

	a.pushScope()
	for _, member := range cd.Members {
		switch m := member.(type) {
		case *ast.Comment:
		case *ast.MemberVarDecl:
			a.memberVarDecl(m)
		case *ast.MemberFunctionDecl:
			a.memberFunctionDecl(m)
		}
	}
	a.popScope()
}

func (a *Analyzer) memberVarDecl(mv *ast.MemberVarDecl) {
	varType := types.Parse(mv.TypeName)
	if a.scope.IsDeclaredInCurrentScope(mv.Name) {
		a.errorf(mv, "member '%s' already defined in class", mv.Name)
	}
	a.scope.Define(&Symbol{Name: mv.Name, Kind: SymbolVariable, Type: varType})
	if mv.Init != nil {
		initType := a.expression(mv.Init)
		if !types.Assignable(varType, initType) {
			a.errorf(mv, "type mismatch in member initialization: expected '%s', got '%s'", varType.Name(), initType.Name())
		}
	}
}

func (a *Analyzer) memberFunctionDecl(mf *ast.MemberFunctionDecl) {
	returnType := types.Parse(mf.ReturnType)
	params := make([]Param, len(mf.Params))
	for i, p := range mf.Params {
		params[i] = Param{Name: p.Name, Type: types.Parse(p.TypeName)}
	}

	if a.scope.IsDeclaredInCurrentScope(mf.Name) {
		a.errorf(mf, "method '%s' already defined in class", mf.Name)
	}
	sym := &Symbol{Name: mf.Name, Kind: SymbolFunction, Type: returnType, Params: params}
	a.scope.Define(sym)

	enclosing := a.currentFunction
	a.currentFunction = sym
	a.pushScope()
	for _, p := range params {
		a.scope.Define(&Symbol{Name: p.Name, Kind: SymbolVariable, Type: p.Type})
	}
	a.compound(mf.Body)
	a.popScope()
	a.currentFunction = enclosing
}
