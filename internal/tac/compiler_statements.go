package tac

import (
	"github.com/cwbudde/go-slate/internal/ast"
)

// compound lowers each statement of a block in order.
func (c *Compiler) compound(block *ast.CompoundStmt) {
	for _, stmt := range block.Statements {
		c.statement(stmt)
	}
}

// statement lowers one statement.
func (c *Compiler) statement(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.Comment:
		// no code
	case *ast.VarDecl:
		c.varDecl(s)
	case *ast.CompoundStmt:
		c.compound(s)
	case *ast.ReturnStmt:
		c.returnStmt(s)
	case *ast.ExpressionStmt:
		c.expression(s.Expression)
	case *ast.IfStmt:
		c.ifStmt(s)
	case *ast.ForStmt:
		c.forStmt(s)
	case *ast.BreakStmt:
		if len(c.loopStack) == 0 {
			c.errorf(s, "break statement not in loop")
		}
		c.emit(&Instruction{Opcode: OpGoto, Arg1: c.loopStack[len(c.loopStack)-1].breakTarget})
	case *ast.ContinueStmt:
		if len(c.loopStack) == 0 {
			c.errorf(s, "continue statement not in loop")
		}
		c.emit(&Instruction{Opcode: OpGoto, Arg1: c.loopStack[len(c.loopStack)-1].continueTarget})
	default:
		c.errorf(stmt, "cannot lower statement %T", stmt)
	}
}

// varDecl registers the name and lowers the initializer into an assign.
func (c *Compiler) varDecl(vd *ast.VarDecl) {
	c.vars[vd.Name] = true
	if vd.Init == nil {
		return
	}
	value := c.expression(vd.Init)
	if c.tupleVars[value] {
		c.tupleVars[vd.Name] = true
	}
	c.emit(&Instruction{Opcode: OpAssign, Arg1: value, Result: vd.Name})
}

// returnStmt lowers a return and records that the current function has
// one; functionDecl also checks that the body ends with a return before
// it omits the implicit trailing return.
func (c *Compiler) returnStmt(rs *ast.ReturnStmt) {
	c.hasReturn = true
	ret := ""
	if rs.Value != nil {
		ret = c.expression(rs.Value)
	}
	c.emit(&Instruction{Opcode: OpReturn, Arg1: ret})
}

// ifStmt lowers a conditional. The layout places the false path first:
//
//	t = cond
//	if t goto Ltrue
//	<else / elif chain>
//	goto Lend
//	Ltrue:
//	<then>
//	Lend:
//
// if_goto jumps when the condition is true, so together with the
// comparison-inversion pair the branch taken matches the source.
func (c *Compiler) ifStmt(is *ast.IfStmt) {
	cond := c.expression(is.Cond)

	trueLabel := c.newLabel()
	endLabel := c.newLabel()

	c.emit(&Instruction{Opcode: OpIfGoto, Arg1: cond, Arg2: trueLabel})

	// False path: elif arms behave as a nested if chain, then else.
	if len(is.Elifs) > 0 {
		c.elifChain(is.Elifs, is.Else)
	} else if is.Else != nil {
		c.compound(is.Else)
	}
	c.emit(&Instruction{Opcode: OpGoto, Arg1: endLabel})

	c.code.Add(&Label{Name: trueLabel})
	c.compound(is.Then)
	c.code.Add(&Label{Name: endLabel})
}

// elifChain lowers the remaining elif arms (and trailing else) with the
// same layout as ifStmt.
func (c *Compiler) elifChain(elifs []*ast.ElifBranch, elseBranch *ast.CompoundStmt) {
	arm := elifs[0]
	cond := c.expression(arm.Cond)

	trueLabel := c.newLabel()
	endLabel := c.newLabel()

	c.emit(&Instruction{Opcode: OpIfGoto, Arg1: cond, Arg2: trueLabel})
	if len(elifs) > 1 {
		c.elifChain(elifs[1:], elseBranch)
	} else if elseBranch != nil {
		c.compound(elseBranch)
	}
	c.emit(&Instruction{Opcode: OpGoto, Arg1: endLabel})

	c.code.Add(&Label{Name: trueLabel})
	c.compound(arm.Body)
	c.code.Add(&Label{Name: endLabel})
}

// forStmt lowers a loop:
//
//	<init>
//	Lstart:
//	t = <exit test>
//	if t goto Lend
//	<body>
//	Lupdate:
//	<update>
//	goto Lstart
//	Lend:
//
// The condition is lowered as an exit test (true when the source
// condition is false): comparison conditions emit the plain source
// opcode, which the inverse-sense VM evaluates as the negation; any
// other condition is negated explicitly. A missing condition loops
// forever. continue binds to Lupdate, break to Lend.
func (c *Compiler) forStmt(fs *ast.ForStmt) {
	startLabel := c.newLabel()
	endLabel := c.newLabel()
	updateLabel := c.newLabel()

	c.loopStack = append(c.loopStack, loopContext{continueTarget: updateLabel, breakTarget: endLabel})

	if fs.Init != nil {
		switch init := fs.Init.(type) {
		case *ast.VarDecl:
			c.varDecl(init)
		case ast.Expression:
			c.expression(init)
		}
	}

	c.code.Add(&Label{Name: startLabel})

	if fs.Cond != nil {
		exit := c.exitTest(fs.Cond)
		c.emit(&Instruction{Opcode: OpIfGoto, Arg1: exit, Arg2: endLabel})
	}

	c.compound(fs.Body)

	c.code.Add(&Label{Name: updateLabel})
	if fs.Update != nil {
		c.expression(fs.Update)
	}
	c.emit(&Instruction{Opcode: OpGoto, Arg1: startLabel})

	c.code.Add(&Label{Name: endLabel})

	c.loopStack = c.loopStack[:len(c.loopStack)-1]
}

// exitTest lowers a loop condition into a temporary that is true when
// the loop must stop.
func (c *Compiler) exitTest(cond ast.Expression) string {
	if bo, ok := cond.(*ast.BinaryOp); ok {
		if _, isComparison := compareFlip[bo.Operator]; isComparison {
			// The plain opcode runs in inverse sense on the VM, which
			// is exactly the negated predicate.
			left := c.expression(bo.Left)
			right := c.expression(bo.Right)
			temp := c.newTemp()
			c.emit(&Instruction{Opcode: bo.Operator, Arg1: left, Arg2: right, Result: temp})
			return temp
		}
	}
	value := c.expression(cond)
	temp := c.newTemp()
	c.emit(&Instruction{Opcode: OpNot, Arg1: value, Result: temp})
	return temp
}
