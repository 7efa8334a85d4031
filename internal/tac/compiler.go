package tac

import (
	"fmt"

	"github.com/cwbudde/go-slate/internal/ast"
	"github.com/cwbudde/go-slate/internal/errors"
)

// compareFlip maps each comparison operator to its logical negation.
// The compiler emits the flipped opcode with the operands in source
// order; the VM executes comparison opcodes in inverse sense, so the
// two flips cancel and the stored result equals the source predicate.
// Changing one half without the other breaks every comparison.
var compareFlip = map[string]string{
	"<=": ">",
	">=": "<",
	"<":  ">=",
	">":  "<=",
	"==": "!=",
	"!=": "==",
}

// loopContext holds the jump targets of one enclosing loop: continue
// binds to the update label, break to the end label.
type loopContext struct {
	continueTarget string
	breakTarget    string
}

// Compiler lowers an analyzed AST into a TAC program.
type Compiler struct {
	code       *Program
	tempCount  int
	labelCount int
	vars       map[string]bool // known names, existence checks only
	tupleVars  map[string]bool // names known to hold tuple references
	loopStack  []loopContext
	hasReturn  bool
}

// NewCompiler creates an empty compiler.
func NewCompiler() *Compiler {
	return &Compiler{
		code:      &Program{},
		vars:      make(map[string]bool),
		tupleVars: make(map[string]bool),
	}
}

// compileAbort carries a lowering error out of the walk; Compile
// recovers it.
type compileAbort struct {
	err *errors.CompilerError
}

// Compile lowers the program. Declarations are reordered: non-function
// declarations first in source order, then main if present, then the
// remaining functions in source order, so execution deterministically
// starts at the main label.
func (c *Compiler) Compile(prog *ast.Program) (code *Program, err error) {
	defer func() {
		if r := recover(); r != nil {
			abort, ok := r.(compileAbort)
			if !ok {
				panic(r)
			}
			code = nil
			err = abort.err
		}
	}()

	var globals []ast.Declaration
	var mainDecl *ast.FunctionDecl
	var otherFuncs []*ast.FunctionDecl

	for _, decl := range prog.Declarations {
		if fn, ok := decl.(*ast.FunctionDecl); ok {
			if fn.Name == "main" {
				mainDecl = fn
			} else {
				otherFuncs = append(otherFuncs, fn)
			}
			continue
		}
		globals = append(globals, decl)
	}

	for _, g := range globals {
		c.declaration(g)
	}
	if mainDecl != nil {
		c.functionDecl(mainDecl)
	}
	for _, fn := range otherFuncs {
		c.functionDecl(fn)
	}

	return c.code, nil
}

// errorf aborts lowering with a positioned error.
func (c *Compiler) errorf(node ast.Node, format string, args ...any) {
	panic(compileAbort{err: errors.New(errors.StageIR, node.Pos(), fmt.Sprintf(format, args...))})
}

// newTemp allocates the next temporary name.
func (c *Compiler) newTemp() string {
	name := fmt.Sprintf("t%d", c.tempCount)
	c.tempCount++
	return name
}

// newLabel allocates the next control-flow label name.
func (c *Compiler) newLabel() string {
	name := fmt.Sprintf("L%d", c.labelCount)
	c.labelCount++
	return name
}

// emit appends an instruction.
func (c *Compiler) emit(instr *Instruction) {
	c.code.Add(instr)
}

// declaration lowers one non-function declaration. Imports, comments
// and class declarations produce no code.
func (c *Compiler) declaration(decl ast.Declaration) {
	switch decl.(type) {
	case *ast.Comment, *ast.ImportDecl, *ast.ClassDecl:
		// no code
	default:
		c.errorf(decl, "cannot lower declaration %T", decl)
	}
}

// functionDecl lowers a function: a labeled entry carrying the
// parameter names, the body, and an implicit bare return when the body
// can run off the end.
func (c *Compiler) functionDecl(fn *ast.FunctionDecl) {
	label := &Label{Name: fn.Name}
	for _, p := range fn.Params {
		label.Params = append(label.Params, p.Name)
		c.vars[p.Name] = true
	}
	c.code.Add(label)

	c.hasReturn = false
	c.compound(fn.Body)

	// A return nested in a branch or loop does not stop the body from
	// running off the end; only a trailing return does.
	if n := len(fn.Body.Statements); n > 0 {
		if _, ok := fn.Body.Statements[n-1].(*ast.ReturnStmt); !ok {
			c.hasReturn = false
		}
	}
	if !c.hasReturn {
		c.emit(&Instruction{Opcode: OpReturn})
	}

	for _, p := range fn.Params {
		delete(c.vars, p.Name)
	}
}
